// Package presenter renders usecase results as localized plain text for the
// HTTP front end and the message field of gRPC responses.
package presenter

import (
	"fmt"
	"strings"
	"time"

	"github.com/fekuna/smart-inventory/internal/i18n"
	"github.com/fekuna/smart-inventory/internal/model"
)

const (
	dateTimeLayout = "2006-01-02 15:04:05"
	dateLayout     = "2006-01-02 15:04"
)

func money(v float64) string { return fmt.Sprintf("%.2f", v) }

// Error is the user-facing text for err. Store failures stay generic.
func Error(lang string, err error) string {
	return i18n.ErrorMessage(lang, err)
}

func ProductAdded(lang string, p *model.Product) string {
	return i18n.T(lang, "ProductAdded", nil) + "\n" + Product(lang, p)
}

func Product(lang string, p *model.Product) string {
	return i18n.T(lang, "ProductDetails", map[string]any{
		"Name":         p.Name,
		"Price":        money(p.Price),
		"Quantity":     p.Quantity,
		"ReorderPoint": p.ReorderPoint,
		"Supplier":     p.Supplier,
	})
}

func Catalog(lang string, products []model.Product) string {
	if len(products) == 0 {
		return i18n.T(lang, "CatalogEmpty", nil)
	}
	blocks := []string{i18n.T(lang, "CatalogHeader", nil)}
	for i := range products {
		blocks = append(blocks, Product(lang, &products[i]))
	}
	return strings.Join(blocks, "\n\n")
}

func Sale(lang string, r *model.SaleResult) string {
	msg := i18n.T(lang, "SaleProcessed", map[string]any{
		"Name":      r.Product.Name,
		"Quantity":  r.Sale.Quantity,
		"Remaining": r.NewQuantity(),
	})
	if r.Reorder != nil {
		msg += "\n" + i18n.T(lang, "ReorderTriggered", map[string]any{
			"Quantity": r.Reorder.Quantity,
			"Supplier": r.Product.Supplier,
		})
	}
	return msg
}

// Forecast prints quantities with two decimals, negative values included.
func Forecast(lang string, f *model.Forecast) string {
	lines := []string{i18n.T(lang, "ForecastHeader", nil)}
	for _, p := range f.Points {
		lines = append(lines, i18n.T(lang, "ForecastLine", map[string]any{
			"Day":      p.Day,
			"Quantity": fmt.Sprintf("%.2f", p.Quantity),
		}))
	}
	return strings.Join(lines, "\n")
}

func LowStock(lang string, products []model.Product) string {
	if len(products) == 0 {
		return i18n.T(lang, "LowStockEmpty", nil)
	}
	lines := []string{i18n.T(lang, "LowStockHeader", nil)}
	for _, p := range products {
		lines = append(lines, i18n.T(lang, "LowStockLine", map[string]any{
			"Name":         p.Name,
			"Quantity":     p.Quantity,
			"ReorderPoint": p.ReorderPoint,
		}))
	}
	return strings.Join(lines, "\n")
}

func SalesReport(lang string, report []model.SalesReportLine) string {
	if len(report) == 0 {
		return i18n.T(lang, "ReportEmpty", nil)
	}
	blocks := []string{i18n.T(lang, "ReportHeader", nil)}
	for _, l := range report {
		blocks = append(blocks, i18n.T(lang, "ReportLine", map[string]any{
			"Name":     l.ProductName,
			"Quantity": l.TotalQuantity,
			"Revenue":  money(l.TotalRevenue),
		}))
	}
	return strings.Join(blocks, "\n\n")
}

func Bill(lang string, b *model.Bill) string {
	return strings.Join([]string{
		i18n.T(lang, "BillHeader", nil),
		i18n.T(lang, "BillDate", map[string]any{"Date": b.IssuedAt.Format(dateTimeLayout)}),
		i18n.T(lang, "BillLine", map[string]any{
			"Name":     b.ProductName,
			"Quantity": b.Quantity,
			"Price":    money(b.UnitPrice),
			"Total":    money(b.Total),
		}),
		i18n.T(lang, "BillSeparator", nil),
		i18n.T(lang, "BillTotal", map[string]any{"Total": money(b.Total)}),
	}, "\n")
}

func Suppliers(lang string, suppliers []model.Supplier) string {
	if len(suppliers) == 0 {
		return i18n.T(lang, "SuppliersEmpty", nil)
	}
	lines := []string{i18n.T(lang, "SuppliersHeader", nil)}
	for _, s := range suppliers {
		lines = append(lines, i18n.T(lang, "SupplierLine", map[string]any{"Name": s.Name, "Count": s.ProductCount}))
	}
	return strings.Join(lines, "\n")
}

func Reorders(lang string, reorders []model.Reorder, loc *time.Location) string {
	if len(reorders) == 0 {
		return i18n.T(lang, "ReordersEmpty", nil)
	}
	if loc == nil {
		loc = time.Local
	}
	lines := []string{i18n.T(lang, "ReordersHeader", nil)}
	for _, r := range reorders {
		lines = append(lines, i18n.T(lang, "ReorderLine", map[string]any{
			"Date":     r.ReorderDate.In(loc).Format(dateLayout),
			"Name":     r.ProductName,
			"Quantity": r.Quantity,
		}))
	}
	return strings.Join(lines, "\n")
}
