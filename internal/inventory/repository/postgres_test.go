package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fekuna/smart-inventory/internal/inventory"
	"github.com/fekuna/smart-inventory/internal/inventory/dto"
	"github.com/fekuna/smart-inventory/internal/model"
)

var productColumns = []string{
	"id", "name", "price", "qty", "reorder_point", "reorder_quantity", "supplier", "created_at", "updated_at",
}

func newMockRepo(t *testing.T) (*PGRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPGRepository(sqlx.NewDb(db, "pgx")), mock
}

func TestWithinTransaction_CommitsSale(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM product WHERE name = $1 FOR UPDATE`)).
		WithArgs("Widget").
		WillReturnRows(sqlmock.NewRows(productColumns).
			AddRow("p1", "Widget", 2.5, 50, 10, nil, "Acme", now, now))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE product SET qty = $1, updated_at = $2 WHERE id = $3`)).
		WithArgs(5, sqlmock.AnyArg(), "p1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO sales`)).
		WithArgs("s1", "p1", 45, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT reorder_point FROM product WHERE id = $1`)).
		WithArgs("p1").
		WillReturnRows(sqlmock.NewRows([]string{"reorder_point"}).AddRow(10))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO reorder`)).
		WithArgs("r1", "p1", 100, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.WithinTransaction(context.Background(), func(tx inventory.Repository) error {
		p, err := tx.LockProductByName(context.Background(), "Widget")
		require.NoError(t, err)
		require.NotNil(t, p)
		assert.Nil(t, p.ReorderQuantity)
		assert.Equal(t, 50, p.Quantity)

		if err := tx.UpdateQuantity(context.Background(), p.ID, 5, now); err != nil {
			return err
		}
		if err := tx.CreateSale(context.Background(), &model.Sale{ID: "s1", ProductID: "p1", Quantity: 45, SaleDate: now}); err != nil {
			return err
		}
		point, err := tx.GetReorderPoint(context.Background(), "p1")
		if err != nil {
			return err
		}
		assert.Equal(t, 10, point)
		return tx.CreateReorder(context.Background(), &model.Reorder{ID: "r1", ProductID: "p1", Quantity: 100, ReorderDate: now})
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithinTransaction_RollsBackOnError(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE product SET qty`)).
		WithArgs(5, sqlmock.AnyArg(), "p1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO sales`)).
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	err := repo.WithinTransaction(context.Background(), func(tx inventory.Repository) error {
		if err := tx.UpdateQuantity(context.Background(), "p1", 5, time.Now()); err != nil {
			return err
		}
		return tx.CreateSale(context.Background(), &model.Sale{ID: "s1", ProductID: "p1", Quantity: 45})
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to record sale")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithinTransaction_CommitFailure(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectCommit().WillReturnError(errors.New("serialization failure"))

	err := repo.WithinTransaction(context.Background(), func(inventory.Repository) error { return nil })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to commit transaction")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLockProductByName_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(`FOR UPDATE`)).
		WithArgs("Gadget").
		WillReturnRows(sqlmock.NewRows(productColumns))

	p, err := repo.LockProductByName(context.Background(), "Gadget")
	require.NoError(t, err)
	assert.Nil(t, p)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateQuantity_NoRow(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE product SET qty`)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateQuantity(context.Background(), "missing", 1, time.Now())
	assert.ErrorContains(t, err, "0 rows affected")
}

func TestListReorders_FilterAndLimit(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now()

	mock.ExpectQuery(`WHERE p.name = \$1 ORDER BY r.reorder_date DESC, r.id LIMIT \$2`).
		WithArgs("Widget", 5).
		WillReturnRows(sqlmock.NewRows([]string{"id", "product_id", "product_name", "quantity", "reorder_date"}).
			AddRow("r1", "p1", "Widget", 100, now))

	out, err := repo.ListReorders(context.Background(), &dto.ReorderFilters{ProductName: "Widget", Limit: 5})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Widget", out[0].ProductName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListLowStock(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM product WHERE qty <= reorder_point ORDER BY name`)).
		WillReturnRows(sqlmock.NewRows(productColumns).
			AddRow("p2", "Gizmo", 1.0, 2, 5, 30, "", now, now))

	out, err := repo.ListLowStock(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.NotNil(t, out[0].ReorderQuantity)
	assert.Equal(t, 30, *out[0].ReorderQuantity)
}

func TestMarkEventProcessed(t *testing.T) {
	repo, mock := newMockRepo(t)
	at := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	query := regexp.QuoteMeta(`INSERT INTO processed_events (event_id, sale_id, processed_at) VALUES ($1, $2, $3)`)

	mock.ExpectExec(query).WithArgs("evt-1", "s1", at).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(query).WithArgs("evt-1", "s2", at).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(query).WithArgs("evt-2", "s3", at).WillReturnError(errors.New("conn reset"))

	claimed, err := repo.MarkEventProcessed(context.Background(), "evt-1", "s1", at)
	require.NoError(t, err)
	assert.True(t, claimed)

	claimed, err = repo.MarkEventProcessed(context.Background(), "evt-1", "s2", at)
	require.NoError(t, err)
	assert.False(t, claimed)

	_, err = repo.MarkEventProcessed(context.Background(), "evt-2", "s3", at)
	assert.Error(t, err)

	require.NoError(t, mock.ExpectationsWereMet())
}
