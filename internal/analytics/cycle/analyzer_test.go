package cycle

import (
	"testing"
	"time"

	"github.com/ordatech/procost/internal/analytics"
	"github.com/ordatech/procost/internal/domain"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := date(y, m, d)
	return &t
}

// settledOrder builds an order with one line for the component and a balance
// payment dated settledOn.
func settledOrder(id int64, componentID int64, settledOn time.Time, qty float64) (domain.PurchaseOrder, domain.PurchaseLineItem, domain.CostEntry) {
	order := domain.PurchaseOrder{
		ID:       id,
		PONumber: "PO-" + settledOn.Format("20060102"),
		PODate:   settledOn.AddDate(0, 0, -45),
		Currency: domain.ReportingCurrency,
	}
	line := domain.PurchaseLineItem{
		ID: id * 10, POID: id, ComponentID: componentID, Quantity: qty, UnitCost: 10,
	}
	cost := domain.CostEntry{
		ID: id * 100, POID: id, Category: domain.CategoryBalancePayment, Amount: qty * 10, PaymentDate: &settledOn,
	}
	return order, line, cost
}

func buildSnapshot(components []domain.Component, orders []domain.PurchaseOrder, lines []domain.PurchaseLineItem, costs []domain.CostEntry) *analytics.Snapshot {
	return analytics.NewSnapshot(components, nil, nil, nil, orders, lines, costs)
}

func TestBuildReport_WorkedExample(t *testing.T) {
	// Settlements on 2025-01-01, 2025-03-02 (60 days), 2025-04-01 (30 days).
	components := []domain.Component{{ID: 1, SupplierModel: "MX-100"}}
	var orders []domain.PurchaseOrder
	var lines []domain.PurchaseLineItem
	var costs []domain.CostEntry
	for i, settled := range []time.Time{date(2025, 1, 1), date(2025, 3, 2), date(2025, 4, 1)} {
		o, l, c := settledOrder(int64(10+i), 1, settled, 5)
		orders = append(orders, o)
		lines = append(lines, l)
		costs = append(costs, c)
	}

	report := BuildReport(buildSnapshot(components, orders, lines, costs))
	if len(report.Components) != 1 {
		t.Fatalf("expected 1 component, got %d", len(report.Components))
	}

	cc := report.Components[0]
	if cc.AvgCycle != 45 {
		t.Errorf("avgCycle = %d, want 45", cc.AvgCycle)
	}
	if cc.MinCycle != 30 {
		t.Errorf("minCycle = %d, want 30", cc.MinCycle)
	}
	if cc.MaxCycle != 60 {
		t.Errorf("maxCycle = %d, want 60", cc.MaxCycle)
	}
	if cc.CycleCount != 2 {
		t.Errorf("cycleCount = %d, want 2", cc.CycleCount)
	}

	// Entries come back newest-first; only the chronologically later entries
	// carry gaps.
	if !cc.Entries[0].SettledDate.Equal(date(2025, 4, 1)) {
		t.Errorf("first display entry = %v, want newest settlement", cc.Entries[0].SettledDate)
	}
	if cc.Entries[0].CycleGap == nil || *cc.Entries[0].CycleGap != 30 {
		t.Errorf("newest entry gap = %v, want 30", cc.Entries[0].CycleGap)
	}
	if cc.Entries[2].CycleGap != nil {
		t.Errorf("earliest entry should have no gap, got %v", *cc.Entries[2].CycleGap)
	}
}

func TestBuildReport_MinimumCycleThreshold(t *testing.T) {
	components := []domain.Component{{ID: 1}, {ID: 2}}

	o1, l1, c1 := settledOrder(10, 1, date(2025, 1, 1), 5)
	o2, l2, c2 := settledOrder(11, 2, date(2025, 1, 1), 5)
	o3, l3, c3 := settledOrder(12, 2, date(2025, 2, 1), 5)

	report := BuildReport(buildSnapshot(components,
		[]domain.PurchaseOrder{o1, o2, o3},
		[]domain.PurchaseLineItem{l1, l2, l3},
		[]domain.CostEntry{c1, c2, c3},
	))

	if len(report.Components) != 1 {
		t.Fatalf("expected only the two-order component, got %d entries", len(report.Components))
	}
	cc := report.Components[0]
	if cc.Component.ID != 2 {
		t.Errorf("component %d reported, want 2", cc.Component.ID)
	}
	if cc.CycleCount != 1 {
		t.Errorf("cycleCount = %d, want 1", cc.CycleCount)
	}
	if cc.AvgCycle != 31 || cc.MinCycle != 31 || cc.MaxCycle != 31 {
		t.Errorf("single-gap stats = %d/%d/%d, want 31/31/31", cc.AvgCycle, cc.MinCycle, cc.MaxCycle)
	}
}

func TestSettlementDate_LatestBalancePaymentWins(t *testing.T) {
	entries := []*domain.CostEntry{
		{Category: domain.CategoryBalancePayment, PaymentDate: datePtr(2025, 2, 1)},
		{Category: domain.CategoryAdditionalBalancePayment, PaymentDate: datePtr(2025, 2, 20)},
		{Category: domain.CategoryDownPayment, PaymentDate: datePtr(2025, 3, 15)}, // not a balance entry
	}

	when, ok := settlementDate(entries)
	if !ok {
		t.Fatal("order with dated balance payments should be settled")
	}
	if !when.Equal(date(2025, 2, 20)) {
		t.Errorf("settledDate = %v, want 2025-02-20", when)
	}
}

func TestSettlementDate_RequiresPaymentDate(t *testing.T) {
	entries := []*domain.CostEntry{
		{Category: domain.CategoryBalancePayment}, // recorded but unpaid
		{Category: domain.CategoryDownPayment, PaymentDate: datePtr(2025, 1, 5)},
	}

	if _, ok := settlementDate(entries); ok {
		t.Error("order without a dated balance payment must not settle")
	}
}

func TestBuildReport_RankingAndSummary(t *testing.T) {
	components := []domain.Component{{ID: 1}, {ID: 2}}

	// Component 1: gaps of 90 days. Component 2: gaps of 20 days.
	var orders []domain.PurchaseOrder
	var lines []domain.PurchaseLineItem
	var costs []domain.CostEntry
	id := int64(10)
	for _, settled := range []time.Time{date(2025, 1, 1), date(2025, 4, 1)} {
		o, l, c := settledOrder(id, 1, settled, 5)
		orders, lines, costs = append(orders, o), append(lines, l), append(costs, c)
		id++
	}
	for _, settled := range []time.Time{date(2025, 1, 1), date(2025, 1, 21)} {
		o, l, c := settledOrder(id, 2, settled, 5)
		orders, lines, costs = append(orders, o), append(lines, l), append(costs, c)
		id++
	}

	report := BuildReport(buildSnapshot(components, orders, lines, costs))
	if len(report.Components) != 2 {
		t.Fatalf("expected 2 components, got %d", len(report.Components))
	}
	if report.Components[0].Component.ID != 2 {
		t.Errorf("fastest-turning component should rank first, got %d", report.Components[0].Component.ID)
	}

	s := report.Summary
	if s.TotalGaps != 2 {
		t.Errorf("totalGaps = %d, want 2", s.TotalGaps)
	}
	if s.MinGap != 20 || s.MaxGap != 90 {
		t.Errorf("min/max gap = %d/%d, want 20/90", s.MinGap, s.MaxGap)
	}
	if s.AvgGap != 55 {
		t.Errorf("avgGap = %d, want 55", s.AvgGap)
	}
	if s.FastestID != 2 || s.SlowestID != 1 {
		t.Errorf("fastest/slowest = %d/%d, want 2/1", s.FastestID, s.SlowestID)
	}
}

func TestBuildReport_UnsettledOrdersExcluded(t *testing.T) {
	components := []domain.Component{{ID: 1}}

	o1, l1, c1 := settledOrder(10, 1, date(2025, 1, 1), 5)
	o2, l2, c2 := settledOrder(11, 1, date(2025, 2, 1), 5)
	// Third order has only a down payment: no settlement signal.
	o3 := domain.PurchaseOrder{ID: 12, PONumber: "PO-OPEN", Currency: domain.ReportingCurrency}
	l3 := domain.PurchaseLineItem{ID: 120, POID: 12, ComponentID: 1, Quantity: 5, UnitCost: 10}
	c3 := domain.CostEntry{ID: 1200, POID: 12, Category: domain.CategoryDownPayment, Amount: 25, PaymentDate: datePtr(2025, 3, 1)}

	report := BuildReport(buildSnapshot(components,
		[]domain.PurchaseOrder{o1, o2, o3},
		[]domain.PurchaseLineItem{l1, l2, l3},
		[]domain.CostEntry{c1, c2, c3},
	))

	if len(report.Components) != 1 {
		t.Fatalf("expected 1 component, got %d", len(report.Components))
	}
	if got := len(report.Components[0].Entries); got != 2 {
		t.Errorf("unsettled order leaked into entries: got %d, want 2", got)
	}
}

func TestWholeDays_RoundsNearestDay(t *testing.T) {
	almostMidnight := date(2025, 1, 1).Add(23*time.Hour + 50*time.Minute)
	gap := wholeDays(date(2025, 1, 31).Sub(almostMidnight))
	if gap != 29 {
		t.Errorf("gap = %d, want 29", gap)
	}

	justPast := date(2025, 1, 1).Add(10 * time.Minute)
	gap = wholeDays(date(2025, 1, 31).Sub(justPast))
	if gap != 30 {
		t.Errorf("gap = %d, want 30", gap)
	}
}

func TestBand(t *testing.T) {
	tests := []struct {
		days int
		want string
	}{
		{1, BandVeryFast},
		{30, BandVeryFast},
		{31, BandFast},
		{60, BandFast},
		{61, BandModerate},
		{120, BandModerate},
		{121, BandSlow},
	}
	for _, tt := range tests {
		if got := Band(tt.days); got != tt.want {
			t.Errorf("Band(%d) = %q, want %q", tt.days, got, tt.want)
		}
	}
}
