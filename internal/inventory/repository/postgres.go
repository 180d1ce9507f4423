package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/fekuna/smart-inventory/internal/inventory"
	"github.com/fekuna/smart-inventory/internal/inventory/dto"
	"github.com/fekuna/smart-inventory/internal/model"
)

type PGRepository struct {
	DB *sqlx.DB

	q  sqlx.ExtContext
	tx *sqlx.Tx
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db, q: db}
}

func (r *PGRepository) WithinTransaction(ctx context.Context, fn func(repo inventory.Repository) error) error {
	if r.tx != nil {
		return fn(r)
	}

	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(&PGRepository{DB: r.DB, q: tx, tx: tx}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// LockProductByName holds the row until the surrounding transaction ends so
// concurrent sales of one product serialize.
func (r *PGRepository) LockProductByName(ctx context.Context, name string) (*model.Product, error) {
	var product model.Product
	query := `SELECT * FROM product WHERE name = $1 FOR UPDATE`
	err := sqlx.GetContext(ctx, r.q, &product, query, name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

func (r *PGRepository) UpdateQuantity(ctx context.Context, productID string, qty int, updatedAt time.Time) error {
	query := `UPDATE product SET qty = $1, updated_at = $2 WHERE id = $3`
	res, err := r.q.ExecContext(ctx, query, qty, updatedAt, productID)
	if err != nil {
		return fmt.Errorf("failed to update quantity: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update quantity: %w", err)
	}
	if n != 1 {
		return fmt.Errorf("failed to update quantity: %d rows affected", n)
	}
	return nil
}

func (r *PGRepository) GetReorderPoint(ctx context.Context, productID string) (int, error) {
	var point int
	query := `SELECT reorder_point FROM product WHERE id = $1`
	if err := sqlx.GetContext(ctx, r.q, &point, query, productID); err != nil {
		return 0, fmt.Errorf("failed to read reorder point: %w", err)
	}
	return point, nil
}

func (r *PGRepository) ListLowStock(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	query := `SELECT * FROM product WHERE qty <= reorder_point ORDER BY name`
	if err := sqlx.SelectContext(ctx, r.q, &products, query); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *PGRepository) CreateSale(ctx context.Context, s *model.Sale) error {
	query := `INSERT INTO sales (id, product_id, quantity, sale_date) VALUES ($1, $2, $3, $4)`
	if _, err := r.q.ExecContext(ctx, query, s.ID, s.ProductID, s.Quantity, s.SaleDate); err != nil {
		return fmt.Errorf("failed to record sale: %w", err)
	}
	return nil
}

func (r *PGRepository) MarkEventProcessed(ctx context.Context, eventID, saleID string, at time.Time) (bool, error) {
	query := `INSERT INTO processed_events (event_id, sale_id, processed_at) VALUES ($1, $2, $3)
        ON CONFLICT (event_id) DO NOTHING`
	res, err := r.q.ExecContext(ctx, query, eventID, saleID, at)
	if err != nil {
		return false, fmt.Errorf("failed to mark event processed: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to mark event processed: %w", err)
	}
	return n == 1, nil
}

func (r *PGRepository) CreateReorder(ctx context.Context, ro *model.Reorder) error {
	query := `INSERT INTO reorder (id, product_id, quantity, reorder_date) VALUES ($1, $2, $3, $4)`
	if _, err := r.q.ExecContext(ctx, query, ro.ID, ro.ProductID, ro.Quantity, ro.ReorderDate); err != nil {
		return fmt.Errorf("failed to record reorder: %w", err)
	}
	return nil
}

func (r *PGRepository) ListReorders(ctx context.Context, f *dto.ReorderFilters) ([]model.Reorder, error) {
	query := `
        SELECT r.id, r.product_id, p.name AS product_name, r.quantity, r.reorder_date
        FROM reorder r
        JOIN product p ON p.id = r.product_id
    `
	args := []interface{}{}
	if f != nil && f.ProductName != "" {
		args = append(args, f.ProductName)
		query += fmt.Sprintf(" WHERE p.name = $%d", len(args))
	}
	query += " ORDER BY r.reorder_date DESC, r.id"
	if f != nil && f.Limit > 0 {
		args = append(args, f.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	var reorders []model.Reorder
	if err := sqlx.SelectContext(ctx, r.q, &reorders, query, args...); err != nil {
		return nil, err
	}
	return reorders, nil
}
