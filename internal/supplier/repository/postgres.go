package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/fekuna/smart-inventory/internal/model"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

// Suppliers are free text on the product row, so they are derived rather
// than stored.
func (r *PGRepository) ListSuppliers(ctx context.Context) ([]model.Supplier, error) {
	query := `
        SELECT supplier, count(*) AS product_count
        FROM product
        WHERE supplier <> ''
        GROUP BY supplier
        ORDER BY supplier
    `
	var suppliers []model.Supplier
	if err := r.DB.SelectContext(ctx, &suppliers, query); err != nil {
		return nil, err
	}
	return suppliers, nil
}
