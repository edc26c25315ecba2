// internal/repository/postgres/browse_repository.go
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/ordatech/procost/internal/domain"
	"github.com/ordatech/procost/internal/repository"
)

type browseRepository struct {
	db *DB
}

func NewBrowseRepository(db *DB) *browseRepository {
	return &browseRepository{db: db}
}

// componentSortColumns whitelists the sortable columns; anything else falls
// back to supplier_model.
var componentSortColumns = map[string]string{
	"supplier_model":       "supplier_model",
	"internal_description": "internal_description",
	"brand":                "brand",
	"category":             "category",
	"created_at":           "created_at",
}

var supplierSortColumns = map[string]string{
	"supplier_name": "supplier_name",
	"supplier_code": "supplier_code",
	"created_at":    "created_at",
}

func orderClause(filter domain.ListFilter, allowed map[string]string, fallback string) string {
	column, ok := allowed[filter.SortBy]
	if !ok {
		column = fallback
	}
	direction := "ASC"
	if filter.SortDir == "desc" {
		direction = "DESC"
	}
	return fmt.Sprintf("ORDER BY %s %s, id ASC", column, direction)
}

func (r *browseRepository) ListComponents(ctx context.Context, filter domain.ListFilter) ([]*domain.Component, int, error) {
	where := `WHERE ($1 = '' OR supplier_model ILIKE '%' || $1 || '%'
		OR internal_description ILIKE '%' || $1 || '%'
		OR brand ILIKE '%' || $1 || '%')`

	var total int
	countQuery := `SELECT COUNT(*) FROM components ` + where
	if err := sqlx.GetContext(ctx, r.db, &total, countQuery, filter.Search); err != nil {
		return nil, 0, fmt.Errorf("failed to count components: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT id, supplier_model, internal_description, brand, category, created_at, updated_at
		FROM components
		%s
		%s
		LIMIT $2 OFFSET $3
	`, where, orderClause(filter, componentSortColumns, "supplier_model"))

	var components []*domain.Component
	if err := sqlx.SelectContext(ctx, r.db, &components, query, filter.Search, filter.Limit(), filter.Offset()); err != nil {
		return nil, 0, fmt.Errorf("failed to list components: %w", err)
	}

	return components, total, nil
}

func (r *browseRepository) ListSuppliers(ctx context.Context, filter domain.ListFilter) ([]*domain.Supplier, int, error) {
	where := `WHERE ($1 = '' OR supplier_name ILIKE '%' || $1 || '%' OR supplier_code ILIKE '%' || $1 || '%')`

	var total int
	countQuery := `SELECT COUNT(*) FROM suppliers ` + where
	if err := sqlx.GetContext(ctx, r.db, &total, countQuery, filter.Search); err != nil {
		return nil, 0, fmt.Errorf("failed to count suppliers: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT id, supplier_name, supplier_code, created_at, updated_at
		FROM suppliers
		%s
		%s
		LIMIT $2 OFFSET $3
	`, where, orderClause(filter, supplierSortColumns, "supplier_name"))

	var suppliers []*domain.Supplier
	if err := sqlx.SelectContext(ctx, r.db, &suppliers, query, filter.Search, filter.Limit(), filter.Offset()); err != nil {
		return nil, 0, fmt.Errorf("failed to list suppliers: %w", err)
	}

	return suppliers, total, nil
}

func (r *browseRepository) GetPurchaseOrder(ctx context.Context, poID int64) (*repository.PurchaseOrderDetail, error) {
	detail := &repository.PurchaseOrderDetail{}

	query := `
		SELECT id, po_number, po_date, currency, exchange_rate, status, quote_id, created_at, updated_at
		FROM purchase_orders
		WHERE id = $1
	`
	if err := sqlx.GetContext(ctx, r.db, &detail.Order, query, poID); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get purchase order %d: %w", poID, err)
	}

	query = `
		SELECT id, po_id, component_id, quantity, unit_cost
		FROM purchase_line_items
		WHERE po_id = $1
		ORDER BY id
	`
	if err := sqlx.SelectContext(ctx, r.db, &detail.Lines, query, poID); err != nil {
		return nil, fmt.Errorf("failed to get purchase order lines: %w", err)
	}

	query = `
		SELECT id, po_id, cost_category, amount, payment_date, created_at
		FROM po_cost_entries
		WHERE po_id = $1
		ORDER BY id
	`
	if err := sqlx.SelectContext(ctx, r.db, &detail.CostEntries, query, poID); err != nil {
		return nil, fmt.Errorf("failed to get purchase order cost entries: %w", err)
	}

	return detail, nil
}

func (r *browseRepository) ListQuotesForComponent(ctx context.Context, componentID int64) ([]*domain.PriceQuote, error) {
	query := `
		SELECT DISTINCT q.id, q.supplier_id, q.quote_date, q.currency, q.status, q.created_at, q.updated_at
		FROM price_quotes q
		JOIN price_quote_line_items l ON l.quote_id = q.id
		WHERE l.component_id = $1
		ORDER BY q.quote_date DESC, q.id DESC
	`

	var quotes []*domain.PriceQuote
	if err := sqlx.SelectContext(ctx, r.db, &quotes, query, componentID); err != nil {
		return nil, fmt.Errorf("failed to list quotes for component %d: %w", componentID, err)
	}

	return quotes, nil
}
