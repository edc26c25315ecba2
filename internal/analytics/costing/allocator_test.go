package costing

import (
	"math"
	"testing"
	"time"

	"github.com/ordatech/procost/internal/analytics"
	"github.com/ordatech/procost/internal/domain"
)

const tolerance = 1e-9

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := date(y, m, d)
	return &t
}

func floatPtr(v float64) *float64 { return &v }

// twoLineSnapshot builds the order from the worked example: line A
// (unit_cost=10, qty=5) and line B (unit_cost=20, qty=5), with 1500 principal
// and 30 bank fees recorded, plus any extra cost entries the caller appends.
func twoLineSnapshot(extraCosts ...domain.CostEntry) *analytics.Snapshot {
	components := []domain.Component{
		{ID: 1, SupplierModel: "MX-100", InternalDescription: "Motor bracket"},
		{ID: 2, SupplierModel: "MX-200", InternalDescription: "Motor housing"},
	}
	orders := []domain.PurchaseOrder{
		{ID: 10, PONumber: "PO-2025-001", PODate: date(2025, 1, 10), Currency: "USD", ExchangeRate: floatPtr(16500)},
	}
	lines := []domain.PurchaseLineItem{
		{ID: 100, POID: 10, ComponentID: 1, Quantity: 5, UnitCost: 10},
		{ID: 101, POID: 10, ComponentID: 2, Quantity: 5, UnitCost: 20},
	}
	costs := []domain.CostEntry{
		{ID: 1000, POID: 10, Category: domain.CategoryDownPayment, Amount: 500, PaymentDate: datePtr(2025, 1, 12)},
		{ID: 1001, POID: 10, Category: domain.CategoryBalancePayment, Amount: 1000, PaymentDate: datePtr(2025, 2, 1)},
		{ID: 1002, POID: 10, Category: domain.CategoryTelexBankFee, Amount: 30},
	}
	costs = append(costs, extraCosts...)

	return analytics.NewSnapshot(components, nil, nil, nil, orders, lines, costs)
}

func TestBuildReport_WorkedExample(t *testing.T) {
	snap := twoLineSnapshot()

	reportA := BuildReport(snap, 1)
	reportB := BuildReport(snap, 2)

	if len(reportA.Allocations) != 1 || len(reportB.Allocations) != 1 {
		t.Fatalf("expected one allocation per component, got %d and %d",
			len(reportA.Allocations), len(reportB.Allocations))
	}

	a := reportA.Allocations[0]
	b := reportB.Allocations[0]

	if math.Abs(a.LineShare-1.0/3.0) > tolerance {
		t.Errorf("lineShare(A) = %v, want 1/3", a.LineShare)
	}
	if math.Abs(b.LineShare-2.0/3.0) > tolerance {
		t.Errorf("lineShare(B) = %v, want 2/3", b.LineShare)
	}
	if math.Abs(a.AllocPrincipal-500) > tolerance {
		t.Errorf("allocPrincipal(A) = %v, want 500", a.AllocPrincipal)
	}
	if math.Abs(b.AllocPrincipal-1000) > tolerance {
		t.Errorf("allocPrincipal(B) = %v, want 1000", b.AllocPrincipal)
	}
	if math.Abs(a.TrueUnitCost-102) > tolerance {
		t.Errorf("trueUnitCost(A) = %v, want 102", a.TrueUnitCost)
	}
	if math.Abs(b.TrueUnitCost-204) > tolerance {
		t.Errorf("trueUnitCost(B) = %v, want 204", b.TrueUnitCost)
	}
	if len(a.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", a.Warnings)
	}
}

func TestBuildReport_SharesSumToOne(t *testing.T) {
	snap := twoLineSnapshot()

	var sum float64
	for _, componentID := range []int64{1, 2} {
		report := BuildReport(snap, componentID)
		for _, alloc := range report.Allocations {
			sum += alloc.LineShare
		}
	}

	if math.Abs(sum-1.0) > tolerance {
		t.Errorf("line shares sum to %v, want 1.0", sum)
	}
}

func TestBuildReport_Conservation(t *testing.T) {
	snap := twoLineSnapshot(domain.CostEntry{
		ID: 1003, POID: 10, Category: domain.CategoryLocalDelivery, Amount: 75,
	})

	var principal, bankFees, landed float64
	for _, componentID := range []int64{1, 2} {
		report := BuildReport(snap, componentID)
		for _, alloc := range report.Allocations {
			principal += alloc.AllocPrincipal
			bankFees += alloc.AllocBankFees
			landed += alloc.AllocLanded
		}
	}

	if math.Abs(principal-1500) > tolerance {
		t.Errorf("allocated principal = %v, want 1500", principal)
	}
	if math.Abs(bankFees-30) > tolerance {
		t.Errorf("allocated bank fees = %v, want 30", bankFees)
	}
	if math.Abs(landed-75) > tolerance {
		t.Errorf("allocated landed = %v, want 75", landed)
	}
}

func TestBuildReport_TaxExclusion(t *testing.T) {
	base := twoLineSnapshot()
	withVAT := twoLineSnapshot(
		domain.CostEntry{ID: 1003, POID: 10, Category: domain.CategoryLocalVAT, Amount: 165},
		domain.CostEntry{ID: 1004, POID: 10, Category: domain.CategoryLocalIncomeTax, Amount: 50},
	)

	for _, componentID := range []int64{1, 2} {
		before := BuildReport(base, componentID).Allocations[0]
		after := BuildReport(withVAT, componentID).Allocations[0]

		if before.AllocPrincipal != after.AllocPrincipal ||
			before.AllocBankFees != after.AllocBankFees ||
			before.AllocLanded != after.AllocLanded ||
			before.TrueUnitCost != after.TrueUnitCost {
			t.Errorf("component %d: tax entries changed the allocation", componentID)
		}
	}
}

func TestBuildReport_ZeroQuantityLine(t *testing.T) {
	components := []domain.Component{{ID: 1}}
	orders := []domain.PurchaseOrder{
		{ID: 10, PONumber: "PO-2025-002", Currency: domain.ReportingCurrency},
	}
	lines := []domain.PurchaseLineItem{
		{ID: 100, POID: 10, ComponentID: 1, Quantity: 0, UnitCost: 10},
		{ID: 101, POID: 10, ComponentID: 1, Quantity: 4, UnitCost: 25},
	}
	costs := []domain.CostEntry{
		{ID: 1000, POID: 10, Category: domain.CategoryBalancePayment, Amount: 200, PaymentDate: datePtr(2025, 3, 1)},
	}
	snap := analytics.NewSnapshot(components, nil, nil, nil, orders, lines, costs)

	report := BuildReport(snap, 1)
	if len(report.Allocations) != 2 {
		t.Fatalf("expected 2 allocations, got %d", len(report.Allocations))
	}

	zero := report.Allocations[0]
	if zero.LineShare != 0 {
		t.Errorf("zero-quantity line share = %v, want 0", zero.LineShare)
	}
	if zero.TrueUnitCost != 0 {
		t.Errorf("zero-quantity line trueUnitCost = %v, want 0", zero.TrueUnitCost)
	}

	// The remaining line carries the whole order.
	full := report.Allocations[1]
	if math.Abs(full.LineShare-1.0) > tolerance {
		t.Errorf("remaining line share = %v, want 1.0", full.LineShare)
	}
	if math.Abs(full.AllocPrincipal-200) > tolerance {
		t.Errorf("remaining line principal = %v, want 200", full.AllocPrincipal)
	}
}

func TestBuildReport_ZeroValueOrder(t *testing.T) {
	components := []domain.Component{{ID: 1}}
	orders := []domain.PurchaseOrder{
		{ID: 10, PONumber: "PO-2025-003", Currency: domain.ReportingCurrency},
	}
	lines := []domain.PurchaseLineItem{
		{ID: 100, POID: 10, ComponentID: 1, Quantity: 5, UnitCost: 0},
	}
	snap := analytics.NewSnapshot(components, nil, nil, nil, orders, lines, nil)

	report := BuildReport(snap, 1)
	if len(report.Allocations) != 1 {
		t.Fatalf("expected 1 allocation, got %d", len(report.Allocations))
	}

	alloc := report.Allocations[0]
	if alloc.LineShare != 0 || alloc.TrueUnitCost != 0 {
		t.Errorf("zero-value order: share=%v cost=%v, want 0/0", alloc.LineShare, alloc.TrueUnitCost)
	}
	if !hasWarning(alloc, WarnZeroPOTotal) {
		t.Errorf("missing %q warning, got %v", WarnZeroPOTotal, alloc.Warnings)
	}
	if !hasWarning(alloc, WarnNoPayments) {
		t.Errorf("missing %q warning, got %v", WarnNoPayments, alloc.Warnings)
	}
}

func TestBuildReport_MissingExchangeRateWarning(t *testing.T) {
	components := []domain.Component{{ID: 1}}
	orders := []domain.PurchaseOrder{
		{ID: 10, PONumber: "PO-2025-004", Currency: "USD"}, // no rate
		{ID: 11, PONumber: "PO-2025-005", Currency: domain.ReportingCurrency},
	}
	lines := []domain.PurchaseLineItem{
		{ID: 100, POID: 10, ComponentID: 1, Quantity: 2, UnitCost: 50},
		{ID: 101, POID: 11, ComponentID: 1, Quantity: 2, UnitCost: 50},
	}
	costs := []domain.CostEntry{
		{ID: 1000, POID: 10, Category: domain.CategoryDownPayment, Amount: 100},
		{ID: 1001, POID: 11, Category: domain.CategoryDownPayment, Amount: 100},
	}
	snap := analytics.NewSnapshot(components, nil, nil, nil, orders, lines, costs)

	report := BuildReport(snap, 1)
	if len(report.Allocations) != 2 {
		t.Fatalf("expected 2 allocations, got %d", len(report.Allocations))
	}

	if !hasWarning(report.Allocations[0], WarnMissingExchangeRate) {
		t.Error("foreign-currency order without a rate should warn")
	}
	if hasWarning(report.Allocations[1], WarnMissingExchangeRate) {
		t.Error("reporting-currency order should not warn about the rate")
	}
}

func TestBuildReport_DanglingLineIsIsolated(t *testing.T) {
	components := []domain.Component{{ID: 1}}
	orders := []domain.PurchaseOrder{
		{ID: 10, PONumber: "PO-2025-006", Currency: domain.ReportingCurrency},
	}
	lines := []domain.PurchaseLineItem{
		{ID: 100, POID: 10, ComponentID: 1, Quantity: 5, UnitCost: 10},
		{ID: 101, POID: 999, ComponentID: 1, Quantity: 3, UnitCost: 10}, // broken reference
	}
	costs := []domain.CostEntry{
		{ID: 1000, POID: 10, Category: domain.CategoryBalancePayment, Amount: 55, PaymentDate: datePtr(2025, 4, 1)},
	}
	snap := analytics.NewSnapshot(components, nil, nil, nil, orders, lines, costs)

	report := BuildReport(snap, 1)
	if len(report.Allocations) != 1 {
		t.Fatalf("valid line should still allocate, got %d allocations", len(report.Allocations))
	}
	if len(report.Skipped) != 1 {
		t.Fatalf("expected 1 skipped line, got %d", len(report.Skipped))
	}
	if report.Skipped[0].LineID != 101 || report.Skipped[0].POID != 999 {
		t.Errorf("skipped row should name the offending identifiers, got %+v", report.Skipped[0])
	}
}

func TestBuildReport_QuoteLines(t *testing.T) {
	components := []domain.Component{{ID: 1, SupplierModel: "MX-100"}}
	suppliers := []domain.Supplier{{ID: 5, SupplierName: "Shenzhen Parts Co", SupplierCode: "SZP"}}
	quotes := []domain.PriceQuote{
		{ID: 20, SupplierID: 5, QuoteDate: date(2024, 11, 3), Currency: "USD", Status: "received"},
	}
	quoteLines := []domain.PriceQuoteLineItem{
		{ID: 200, QuoteID: 20, ComponentID: 1, Quantity: 100, UnitPrice: 2.5, Currency: "USD"},
	}
	snap := analytics.NewSnapshot(components, suppliers, quotes, quoteLines, nil, nil, nil)

	report := BuildReport(snap, 1)
	if len(report.QuoteLines) != 1 {
		t.Fatalf("expected 1 quote line, got %d", len(report.QuoteLines))
	}

	ql := report.QuoteLines[0]
	if math.Abs(ql.LineTotal-250) > tolerance {
		t.Errorf("quote line total = %v, want 250", ql.LineTotal)
	}
	if ql.Supplier == nil || ql.Supplier.SupplierName != "Shenzhen Parts Co" {
		t.Errorf("quote line should resolve its supplier, got %+v", ql.Supplier)
	}
}

func TestBuildReport_Deterministic(t *testing.T) {
	snap := twoLineSnapshot()

	first := BuildReport(snap, 1)
	second := BuildReport(snap, 1)

	if len(first.Allocations) != len(second.Allocations) {
		t.Fatal("repeated runs disagree on allocation count")
	}
	for i := range first.Allocations {
		if first.Allocations[i].TrueUnitCost != second.Allocations[i].TrueUnitCost {
			t.Errorf("allocation %d differs between identical runs", i)
		}
	}
}

func hasWarning(alloc Allocation, warning string) bool {
	for _, w := range alloc.Warnings {
		if w == warning {
			return true
		}
	}
	return false
}
