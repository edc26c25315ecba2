package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ordatech/procost/internal/analytics"
	"github.com/ordatech/procost/internal/analytics/costing"
	"github.com/ordatech/procost/internal/analytics/cycle"
	"github.com/ordatech/procost/internal/domain"
)

type stubSnapshotRepo struct {
	snap  *analytics.Snapshot
	calls int
}

func (s *stubSnapshotRepo) LoadSnapshot(ctx context.Context) (*analytics.Snapshot, error) {
	s.calls++
	return s.snap, nil
}

type memReportCache struct {
	cost   map[int64]*costing.Report
	cycles *cycle.Report
}

func newMemReportCache() *memReportCache {
	return &memReportCache{cost: make(map[int64]*costing.Report)}
}

func (m *memReportCache) GetCostReport(ctx context.Context, componentID int64) (*costing.Report, bool, error) {
	report, ok := m.cost[componentID]
	return report, ok, nil
}

func (m *memReportCache) SetCostReport(ctx context.Context, componentID int64, report *costing.Report) error {
	m.cost[componentID] = report
	return nil
}

func (m *memReportCache) GetCycleReport(ctx context.Context) (*cycle.Report, bool, error) {
	return m.cycles, m.cycles != nil, nil
}

func (m *memReportCache) SetCycleReport(ctx context.Context, report *cycle.Report) error {
	m.cycles = report
	return nil
}

func (m *memReportCache) InvalidateAll(ctx context.Context) error {
	m.cost = make(map[int64]*costing.Report)
	m.cycles = nil
	return nil
}

func testSnapshot() *analytics.Snapshot {
	rate := 1.0
	payment := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	return analytics.NewSnapshot(
		[]domain.Component{{ID: 1, SupplierModel: "RX-100"}},
		[]domain.Supplier{{ID: 10, SupplierName: "Acme", SupplierCode: "ACM"}},
		nil,
		nil,
		[]domain.PurchaseOrder{
			{ID: 100, PONumber: "PO-001", PODate: time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), Currency: "IDR", ExchangeRate: &rate},
		},
		[]domain.PurchaseLineItem{
			{ID: 1000, POID: 100, ComponentID: 1, Quantity: 10, UnitCost: 50},
		},
		[]domain.CostEntry{
			{ID: 1, POID: 100, Category: domain.CategoryBalancePayment, Amount: 500, PaymentDate: &payment},
		},
	)
}

func TestGetCostReport_UnknownComponent(t *testing.T) {
	svc := NewReportService(&stubSnapshotRepo{snap: testSnapshot()}, nil)

	_, err := svc.GetCostReport(context.Background(), 999)
	if !errors.Is(err, ErrComponentNotFound) {
		t.Fatalf("expected ErrComponentNotFound, got %v", err)
	}
}

func TestGetCostReport_CachesResult(t *testing.T) {
	repo := &stubSnapshotRepo{snap: testSnapshot()}
	svc := NewReportService(repo, newMemReportCache())

	first, err := svc.GetCostReport(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.Component == nil || first.Component.ID != 1 {
		t.Fatalf("expected component 1 in report, got %+v", first.Component)
	}
	if len(first.Allocations) != 1 {
		t.Fatalf("expected 1 allocation, got %d", len(first.Allocations))
	}

	if _, err := svc.GetCostReport(context.Background(), 1); err != nil {
		t.Fatalf("unexpected error on second call: %v", err)
	}
	if repo.calls != 1 {
		t.Fatalf("expected snapshot loaded once, got %d loads", repo.calls)
	}
}

func TestGetCycleReport(t *testing.T) {
	svc := NewReportService(&stubSnapshotRepo{snap: testSnapshot()}, nil)

	report, err := svc.GetCycleReport(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// A single settled order never yields a cycle entry.
	if len(report.Components) != 0 {
		t.Fatalf("expected no cycle components, got %d", len(report.Components))
	}
}

func TestWarmCostReports(t *testing.T) {
	repo := &stubSnapshotRepo{snap: testSnapshot()}
	cache := newMemReportCache()
	svc := NewReportService(repo, cache)

	if err := svc.WarmCostReports(context.Background(), 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, ok := cache.cost[1]; !ok {
		t.Fatal("expected cost report for component 1 to be cached")
	}
	if cache.cycles == nil {
		t.Fatal("expected cycle report to be cached")
	}
}
