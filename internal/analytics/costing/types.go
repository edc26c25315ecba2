package costing

import "github.com/ordatech/procost/internal/domain"

// Row warnings. These are advisory and never abort the computation.
const (
	WarnNoPayments          = "no payments recorded"
	WarnMissingExchangeRate = "missing exchange rate"
	WarnZeroPOTotal         = "PO total is zero"
)

// ClassTotals holds the per-order cost entry sums by class. Tax entries are
// read during classification but never summed anywhere.
type ClassTotals struct {
	Principal float64 `json:"principal"`
	BankFees  float64 `json:"bank_fees"`
	Landed    float64 `json:"landed"`
}

// Allocation is the true-cost breakdown for one purchase line item. Amounts
// carry full precision; rounding happens at the presentation edge only.
type Allocation struct {
	Order          *domain.PurchaseOrder    `json:"po"`
	Line           *domain.PurchaseLineItem `json:"item"`
	LineShare      float64                  `json:"line_share"`
	AllocPrincipal float64                  `json:"alloc_principal"`
	AllocBankFees  float64                  `json:"alloc_bank_fees"`
	AllocLanded    float64                  `json:"alloc_landed"`
	TotalAllocated float64                  `json:"total_allocated"`
	TrueUnitCost   float64                  `json:"true_unit_cost"`
	Warnings       []string                 `json:"warnings"`
}

// QuoteLine pairs a quote line item with its header and supplier for the
// quote-side report. No allocation applies; LineTotal is quantity times the
// quoted unit price.
type QuoteLine struct {
	Quote     *domain.PriceQuote         `json:"quote"`
	Supplier  *domain.Supplier           `json:"supplier"`
	Line      *domain.PriceQuoteLineItem `json:"line"`
	LineTotal float64                    `json:"line_total"`
}

// SkippedLine records a purchase line item the allocator could not process,
// with the identifier of the broken reference. One bad row never blocks the
// rest of the report.
type SkippedLine struct {
	LineID int64  `json:"line_id"`
	POID   int64  `json:"po_id"`
	Reason string `json:"reason"`
}

// Report is the full cost view for one component.
type Report struct {
	Component   *domain.Component `json:"component"`
	QuoteLines  []QuoteLine       `json:"quote_line_items"`
	Allocations []Allocation      `json:"allocations"`
	Skipped     []SkippedLine     `json:"skipped"`
}
