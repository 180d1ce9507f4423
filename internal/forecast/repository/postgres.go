package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/fekuna/smart-inventory/internal/model"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) FindProductByName(ctx context.Context, name string) (*model.Product, error) {
	var product model.Product
	query := `SELECT * FROM product WHERE name = $1 LIMIT 1`
	err := r.DB.GetContext(ctx, &product, query, name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

func (r *PGRepository) ListSalesByProductName(ctx context.Context, name string) ([]model.Sale, error) {
	query := `
        SELECT s.id, s.product_id, s.quantity, s.sale_date
        FROM sales s
        JOIN product p ON p.id = s.product_id
        WHERE p.name = $1
        ORDER BY s.sale_date, s.id
    `
	var sales []model.Sale
	if err := r.DB.SelectContext(ctx, &sales, query, name); err != nil {
		return nil, err
	}
	return sales, nil
}
