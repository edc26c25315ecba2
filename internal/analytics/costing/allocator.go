// Package costing apportions the money actually spent on a purchase order
// (payments, bank fees, landed costs) across its line items, proportionally
// to each line's share of the order's value. Tax entries are excluded; all
// amounts are assumed tax-exclusive.
package costing

import (
	"github.com/ordatech/procost/internal/analytics"
	"github.com/ordatech/procost/internal/domain"
)

// BuildReport produces the cost report for one component: its quote history
// and a true-unit-cost breakdown for every purchase line item referencing it.
// Pure function of the snapshot; no I/O, no clock, no mutation.
func BuildReport(snap *analytics.Snapshot, componentID int64) Report {
	report := Report{
		Component:   snap.ComponentByID(componentID),
		QuoteLines:  []QuoteLine{},
		Allocations: []Allocation{},
	}

	for _, line := range snap.QuoteLinesForComponent(componentID) {
		ql := QuoteLine{
			Line:      line,
			LineTotal: line.Quantity * line.UnitPrice,
		}
		if quote := snap.QuoteByID(line.QuoteID); quote != nil {
			ql.Quote = quote
			ql.Supplier = snap.SupplierByID(quote.SupplierID)
		}
		report.QuoteLines = append(report.QuoteLines, ql)
	}

	for _, line := range snap.PurchaseLinesForComponent(componentID) {
		order := snap.OrderByID(line.POID)
		if order == nil {
			report.Skipped = append(report.Skipped, SkippedLine{
				LineID: line.ID,
				POID:   line.POID,
				Reason: "purchase order not found",
			})
			continue
		}
		report.Allocations = append(report.Allocations, allocate(snap, order, line))
	}

	return report
}

// allocate computes the breakdown for a single line of an order.
func allocate(snap *analytics.Snapshot, order *domain.PurchaseOrder, line *domain.PurchaseLineItem) Allocation {
	alloc := Allocation{
		Order:    order,
		Line:     line,
		Warnings: []string{},
	}

	// 1. Total order value over positive-quantity lines only.
	var totalPoValueForeign float64
	for _, l := range snap.LinesForOrder(order.ID) {
		if l.Quantity > 0 {
			totalPoValueForeign += l.UnitCost * l.Quantity
		}
	}

	// 2. This line's fractional share of the order value. Zero-value orders
	// allocate nothing rather than dividing by zero.
	lineValueForeign := line.UnitCost * line.Quantity
	if totalPoValueForeign != 0 {
		alloc.LineShare = lineValueForeign / totalPoValueForeign
	}

	// 3. Sum the order's cost entries by class. Tax entries never join any
	// total.
	totals := SumCostsByClass(snap.CostsForOrder(order.ID))

	// 4. Apportion each class by the line's share.
	alloc.AllocPrincipal = alloc.LineShare * totals.Principal
	alloc.AllocBankFees = alloc.LineShare * totals.BankFees
	alloc.AllocLanded = alloc.LineShare * totals.Landed
	alloc.TotalAllocated = alloc.AllocPrincipal + alloc.AllocBankFees + alloc.AllocLanded

	// 5. True per-unit cost; a zero-quantity line yields zero, not a panic.
	if line.Quantity > 0 {
		alloc.TrueUnitCost = alloc.TotalAllocated / line.Quantity
	}

	if totals.Principal == 0 {
		alloc.Warnings = append(alloc.Warnings, WarnNoPayments)
	}
	if order.Currency != domain.ReportingCurrency && order.ExchangeRate == nil {
		alloc.Warnings = append(alloc.Warnings, WarnMissingExchangeRate)
	}
	if totalPoValueForeign == 0 {
		alloc.Warnings = append(alloc.Warnings, WarnZeroPOTotal)
	}

	return alloc
}

// SumCostsByClass totals cost entries into the three allocatable classes.
// Taxes are classified and dropped.
func SumCostsByClass(entries []*domain.CostEntry) ClassTotals {
	var totals ClassTotals
	for _, entry := range entries {
		switch domain.ClassifyCostCategory(entry.Category) {
		case domain.ClassPrincipal:
			totals.Principal += entry.Amount
		case domain.ClassBankFee:
			totals.BankFees += entry.Amount
		case domain.ClassLanded:
			totals.Landed += entry.Amount
		case domain.ClassTax:
			// taxes never join a total
		}
	}
	return totals
}
