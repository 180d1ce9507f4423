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
)

func newMockRepo(t *testing.T) (*PGRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPGRepository(sqlx.NewDb(db, "pgx")), mock
}

func TestListSalesByProductName(t *testing.T) {
	repo, mock := newMockRepo(t)
	d := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(`ORDER BY s.sale_date, s.id`)).
		WithArgs("Widget").
		WillReturnRows(sqlmock.NewRows([]string{"id", "product_id", "quantity", "sale_date"}).
			AddRow("s1", "p1", 10, d).
			AddRow("s2", "p1", 12, d.AddDate(0, 0, 1)))

	sales, err := repo.ListSalesByProductName(context.Background(), "Widget")
	require.NoError(t, err)
	require.Len(t, sales, 2)
	assert.Equal(t, 12, sales[1].Quantity)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindProductByName(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM product WHERE name = $1 LIMIT 1`)).
		WithArgs("Gadget").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))

	p, err := repo.FindProductByName(context.Background(), "Gadget")
	require.NoError(t, err)
	assert.Nil(t, p)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM product`)).
		WillReturnError(errors.New("connection refused"))
	_, err = repo.FindProductByName(context.Background(), "Widget")
	assert.Error(t, err)
}
