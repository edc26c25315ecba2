package analytics

import (
	"testing"

	"github.com/ordatech/procost/internal/domain"
)

func TestNewSnapshot_Indexes(t *testing.T) {
	components := []domain.Component{{ID: 1}, {ID: 2}}
	suppliers := []domain.Supplier{{ID: 5, SupplierCode: "SZP"}}
	quotes := []domain.PriceQuote{{ID: 20, SupplierID: 5}}
	quoteLines := []domain.PriceQuoteLineItem{
		{ID: 200, QuoteID: 20, ComponentID: 1},
		{ID: 201, QuoteID: 20, ComponentID: 2},
	}
	orders := []domain.PurchaseOrder{{ID: 10}, {ID: 11}}
	lines := []domain.PurchaseLineItem{
		{ID: 100, POID: 10, ComponentID: 1},
		{ID: 101, POID: 10, ComponentID: 2},
		{ID: 102, POID: 11, ComponentID: 1},
	}
	costs := []domain.CostEntry{
		{ID: 1000, POID: 10, Category: domain.CategoryDownPayment},
		{ID: 1001, POID: 11, Category: domain.CategoryBalancePayment},
	}

	snap := NewSnapshot(components, suppliers, quotes, quoteLines, orders, lines, costs)

	if snap.ComponentByID(2) == nil || snap.ComponentByID(2).ID != 2 {
		t.Error("component index broken")
	}
	if snap.SupplierByID(5) == nil || snap.SupplierByID(5).SupplierCode != "SZP" {
		t.Error("supplier index broken")
	}
	if snap.QuoteByID(20) == nil {
		t.Error("quote index broken")
	}
	if snap.OrderByID(11) == nil {
		t.Error("order index broken")
	}
	if got := len(snap.LinesForOrder(10)); got != 2 {
		t.Errorf("order 10 has %d lines, want 2", got)
	}
	if got := len(snap.CostsForOrder(11)); got != 1 {
		t.Errorf("order 11 has %d cost entries, want 1", got)
	}
	if got := len(snap.PurchaseLinesForComponent(1)); got != 2 {
		t.Errorf("component 1 appears on %d purchase lines, want 2", got)
	}
	if got := len(snap.QuoteLinesForComponent(2)); got != 1 {
		t.Errorf("component 2 appears on %d quote lines, want 1", got)
	}
}

func TestSnapshot_MissingLookupsReturnNil(t *testing.T) {
	snap := NewSnapshot(nil, nil, nil, nil, nil, nil, nil)

	if snap.ComponentByID(99) != nil {
		t.Error("missing component should be nil")
	}
	if snap.OrderByID(99) != nil {
		t.Error("missing order should be nil")
	}
	if lines := snap.LinesForOrder(99); len(lines) != 0 {
		t.Error("missing order should have no lines")
	}
	if lines := snap.PurchaseLinesForComponent(99); len(lines) != 0 {
		t.Error("missing component should have no purchase lines")
	}
}

func TestSnapshot_PreservesInputOrder(t *testing.T) {
	orders := []domain.PurchaseOrder{{ID: 10}}
	lines := []domain.PurchaseLineItem{
		{ID: 102, POID: 10, ComponentID: 1},
		{ID: 100, POID: 10, ComponentID: 1},
		{ID: 101, POID: 10, ComponentID: 1},
	}

	snap := NewSnapshot(nil, nil, nil, nil, orders, lines, nil)

	got := snap.LinesForOrder(10)
	for i, wantID := range []int64{102, 100, 101} {
		if got[i].ID != wantID {
			t.Fatalf("line %d has id %d, want %d (input order must be preserved)", i, got[i].ID, wantID)
		}
	}
}
