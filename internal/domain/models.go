// internal/domain/models.go
package domain

import "time"

// ReportingCurrency is the currency every cost entry amount is stored in.
const ReportingCurrency = "IDR"

// Supplier represents a vendor that issues quotes and receives purchase orders.
type Supplier struct {
	ID           int64     `json:"id" db:"id"`
	SupplierName string    `json:"supplier_name" db:"supplier_name"`
	SupplierCode string    `json:"supplier_code" db:"supplier_code"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// Component represents a purchasable part. Descriptive only; the analytics
// layer never mutates it.
type Component struct {
	ID                  int64     `json:"id" db:"id"`
	SupplierModel       string    `json:"supplier_model" db:"supplier_model"`
	InternalDescription string    `json:"internal_description" db:"internal_description"`
	Brand               string    `json:"brand" db:"brand"`
	Category            string    `json:"category" db:"category"`
	CreatedAt           time.Time `json:"created_at" db:"created_at"`
	UpdatedAt           time.Time `json:"updated_at" db:"updated_at"`
}

// PriceQuote is a quote header from a supplier.
type PriceQuote struct {
	ID         int64     `json:"id" db:"id"`
	SupplierID int64     `json:"supplier_id" db:"supplier_id"`
	QuoteDate  time.Time `json:"quote_date" db:"quote_date"`
	Currency   string    `json:"currency" db:"currency"`
	Status     string    `json:"status" db:"status"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

// PriceQuoteLineItem is a single quoted component on a quote.
type PriceQuoteLineItem struct {
	ID          int64   `json:"id" db:"id"`
	QuoteID     int64   `json:"quote_id" db:"quote_id"`
	ComponentID int64   `json:"component_id" db:"component_id"`
	Quantity    float64 `json:"quantity" db:"quantity"`
	UnitPrice   float64 `json:"unit_price" db:"unit_price"`
	Currency    string  `json:"currency" db:"currency"`
}

// PurchaseOrder is an order header. ExchangeRate converts the order currency
// into the reporting currency and may be absent for reporting-currency orders.
type PurchaseOrder struct {
	ID           int64     `json:"id" db:"id"`
	PONumber     string    `json:"po_number" db:"po_number"`
	PODate       time.Time `json:"po_date" db:"po_date"`
	Currency     string    `json:"currency" db:"currency"`
	ExchangeRate *float64  `json:"exchange_rate" db:"exchange_rate"`
	Status       string    `json:"status" db:"status"`
	QuoteID      *int64    `json:"quote_id" db:"quote_id"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// PurchaseLineItem belongs to exactly one purchase order. UnitCost is in the
// order's currency.
type PurchaseLineItem struct {
	ID          int64   `json:"id" db:"id"`
	POID        int64   `json:"po_id" db:"po_id"`
	ComponentID int64   `json:"component_id" db:"component_id"`
	Quantity    float64 `json:"quantity" db:"quantity"`
	UnitCost    float64 `json:"unit_cost" db:"unit_cost"`
}

// CostEntry records money spent against a purchase order: payments, bank
// fees, taxes and landed costs. Amount is already in the reporting currency.
type CostEntry struct {
	ID          int64        `json:"id" db:"id"`
	POID        int64        `json:"po_id" db:"po_id"`
	Category    CostCategory `json:"cost_category" db:"cost_category"`
	Amount      float64      `json:"amount" db:"amount"`
	PaymentDate *time.Time   `json:"payment_date" db:"payment_date"`
	CreatedAt   time.Time    `json:"created_at" db:"created_at"`
}

// ListFilter carries search/sort/pagination options for the browsing queries.
type ListFilter struct {
	Search   string `json:"search"`
	SortBy   string `json:"sort_by"`
	SortDir  string `json:"sort_dir"`
	Page     int    `json:"page"`
	PageSize int    `json:"page_size"`
}

// Limit derives the SQL page size with the handler defaults applied.
func (f ListFilter) Limit() int {
	if f.PageSize <= 0 {
		return 50
	}
	if f.PageSize > 200 {
		return 200
	}
	return f.PageSize
}

// Offset derives the SQL offset for the requested page.
func (f ListFilter) Offset() int {
	page := f.Page
	if page < 1 {
		page = 1
	}
	return (page - 1) * f.Limit()
}
