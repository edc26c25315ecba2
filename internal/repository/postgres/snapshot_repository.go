// internal/repository/postgres/snapshot_repository.go
package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/ordatech/procost/internal/analytics"
	"github.com/ordatech/procost/internal/domain"
)

type snapshotRepository struct {
	db *DB
}

func NewSnapshotRepository(db *DB) *snapshotRepository {
	return &snapshotRepository{db: db}
}

// LoadSnapshot reads all seven tables and indexes them. Stable ordering by
// primary key keeps repeated reports byte-identical for identical data.
func (r *snapshotRepository) LoadSnapshot(ctx context.Context) (*analytics.Snapshot, error) {
	var components []domain.Component
	query := `
		SELECT id, supplier_model, internal_description, brand, category, created_at, updated_at
		FROM components
		ORDER BY id
	`
	if err := sqlx.SelectContext(ctx, r.db, &components, query); err != nil {
		return nil, fmt.Errorf("failed to load components: %w", err)
	}

	var suppliers []domain.Supplier
	query = `
		SELECT id, supplier_name, supplier_code, created_at, updated_at
		FROM suppliers
		ORDER BY id
	`
	if err := sqlx.SelectContext(ctx, r.db, &suppliers, query); err != nil {
		return nil, fmt.Errorf("failed to load suppliers: %w", err)
	}

	var quotes []domain.PriceQuote
	query = `
		SELECT id, supplier_id, quote_date, currency, status, created_at, updated_at
		FROM price_quotes
		ORDER BY id
	`
	if err := sqlx.SelectContext(ctx, r.db, &quotes, query); err != nil {
		return nil, fmt.Errorf("failed to load quotes: %w", err)
	}

	var quoteLines []domain.PriceQuoteLineItem
	query = `
		SELECT id, quote_id, component_id, quantity, unit_price, currency
		FROM price_quote_line_items
		ORDER BY id
	`
	if err := sqlx.SelectContext(ctx, r.db, &quoteLines, query); err != nil {
		return nil, fmt.Errorf("failed to load quote line items: %w", err)
	}

	var orders []domain.PurchaseOrder
	query = `
		SELECT id, po_number, po_date, currency, exchange_rate, status, quote_id, created_at, updated_at
		FROM purchase_orders
		ORDER BY id
	`
	if err := sqlx.SelectContext(ctx, r.db, &orders, query); err != nil {
		return nil, fmt.Errorf("failed to load purchase orders: %w", err)
	}

	var purchaseLines []domain.PurchaseLineItem
	query = `
		SELECT id, po_id, component_id, quantity, unit_cost
		FROM purchase_line_items
		ORDER BY id
	`
	if err := sqlx.SelectContext(ctx, r.db, &purchaseLines, query); err != nil {
		return nil, fmt.Errorf("failed to load purchase line items: %w", err)
	}

	var costEntries []domain.CostEntry
	query = `
		SELECT id, po_id, cost_category, amount, payment_date, created_at
		FROM po_cost_entries
		ORDER BY id
	`
	if err := sqlx.SelectContext(ctx, r.db, &costEntries, query); err != nil {
		return nil, fmt.Errorf("failed to load cost entries: %w", err)
	}

	return analytics.NewSnapshot(components, suppliers, quotes, quoteLines, orders, purchaseLines, costEntries), nil
}
