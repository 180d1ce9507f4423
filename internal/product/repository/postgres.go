package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"

	"github.com/fekuna/smart-inventory/internal/model"
	"github.com/fekuna/smart-inventory/internal/product/dto"
)

const uniqueViolation = "23505"

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, p *model.Product) error {
	query := `
        INSERT INTO product (
            id, name, price, qty, reorder_point, reorder_quantity, supplier, created_at, updated_at
        )
        VALUES (
            :id, :name, :price, :qty, :reorder_point, :reorder_quantity, :supplier, :created_at, :updated_at
        )
    `
	_, err := r.DB.NamedExecContext(ctx, query, p)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return model.ErrProductExists
		}
		return err
	}
	return nil
}

func (r *PGRepository) FindByName(ctx context.Context, name string) (*model.Product, error) {
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

func (r *PGRepository) FindAll(ctx context.Context, f *dto.ProductFilters) ([]model.Product, int, error) {
	var products []model.Product
	var count int

	conditions := []string{}
	args := map[string]interface{}{}

	if f.Supplier != "" {
		conditions = append(conditions, "supplier = :supplier")
		args["supplier"] = f.Supplier
	}
	if f.SearchQuery != "" {
		conditions = append(conditions, "name ILIKE :search")
		args["search"] = "%" + f.SearchQuery + "%"
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := "SELECT count(*) FROM product" + whereClause
	rows, err := r.DB.NamedQueryContext(ctx, countQuery, args)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	if rows.Next() {
		if err := rows.Scan(&count); err != nil {
			return nil, 0, err
		}
	}

	// Whitelisted to keep user input out of ORDER BY
	orderBy := "name"
	switch f.SortBy {
	case "price":
		orderBy = "price"
	case "qty":
		orderBy = "qty"
	}
	if strings.ToLower(f.SortOrder) == "desc" {
		orderBy += " DESC"
	} else {
		orderBy += " ASC"
	}

	query := fmt.Sprintf("SELECT * FROM product%s ORDER BY %s", whereClause, orderBy)
	if f.PageSize > 0 {
		page := f.Page
		if page < 1 {
			page = 1
		}
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, (page-1)*f.PageSize)
	}

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	defer nstmt.Close()

	if err := nstmt.SelectContext(ctx, &products, args); err != nil {
		return nil, 0, err
	}
	return products, count, nil
}

func (r *PGRepository) IsNameUnique(ctx context.Context, name string) (bool, error) {
	var count int
	err := r.DB.GetContext(ctx, &count, `SELECT count(*) FROM product WHERE name = $1`, name)
	if err != nil {
		return false, err
	}
	return count == 0, nil
}

func (r *PGRepository) SalesReport(ctx context.Context) ([]model.SalesReportLine, error) {
	query := `
        SELECT p.name, SUM(s.quantity) AS total_qty, SUM(s.quantity * p.price) AS total_revenue
        FROM sales s
        JOIN product p ON s.product_id = p.id
        GROUP BY p.name
        ORDER BY total_revenue DESC
    `
	var lines []model.SalesReportLine
	if err := r.DB.SelectContext(ctx, &lines, query); err != nil {
		return nil, err
	}
	return lines, nil
}
