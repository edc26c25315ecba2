// internal/analytics/snapshot.go
package analytics

import (
	"github.com/ordatech/procost/internal/domain"
)

// Snapshot is an immutable in-memory view of the procurement tables, loaded
// once per computation. The analyzers read it and never write back; indexes
// are built eagerly so per-row lookups stay O(1) instead of rescanning the
// flat slices.
type Snapshot struct {
	Components    []domain.Component
	Suppliers     []domain.Supplier
	Quotes        []domain.PriceQuote
	QuoteLines    []domain.PriceQuoteLineItem
	Orders        []domain.PurchaseOrder
	PurchaseLines []domain.PurchaseLineItem
	CostEntries   []domain.CostEntry

	componentByID            map[int64]*domain.Component
	supplierByID             map[int64]*domain.Supplier
	quoteByID                map[int64]*domain.PriceQuote
	orderByID                map[int64]*domain.PurchaseOrder
	linesByOrder             map[int64][]*domain.PurchaseLineItem
	costsByOrder             map[int64][]*domain.CostEntry
	quoteLinesByComponent    map[int64][]*domain.PriceQuoteLineItem
	purchaseLinesByComponent map[int64][]*domain.PurchaseLineItem
}

// NewSnapshot indexes the supplied tables. The slices are referenced, not
// copied; callers must not mutate them while the snapshot is in use.
func NewSnapshot(
	components []domain.Component,
	suppliers []domain.Supplier,
	quotes []domain.PriceQuote,
	quoteLines []domain.PriceQuoteLineItem,
	orders []domain.PurchaseOrder,
	purchaseLines []domain.PurchaseLineItem,
	costEntries []domain.CostEntry,
) *Snapshot {
	s := &Snapshot{
		Components:    components,
		Suppliers:     suppliers,
		Quotes:        quotes,
		QuoteLines:    quoteLines,
		Orders:        orders,
		PurchaseLines: purchaseLines,
		CostEntries:   costEntries,

		componentByID:            make(map[int64]*domain.Component, len(components)),
		supplierByID:             make(map[int64]*domain.Supplier, len(suppliers)),
		quoteByID:                make(map[int64]*domain.PriceQuote, len(quotes)),
		orderByID:                make(map[int64]*domain.PurchaseOrder, len(orders)),
		linesByOrder:             make(map[int64][]*domain.PurchaseLineItem),
		costsByOrder:             make(map[int64][]*domain.CostEntry),
		quoteLinesByComponent:    make(map[int64][]*domain.PriceQuoteLineItem),
		purchaseLinesByComponent: make(map[int64][]*domain.PurchaseLineItem),
	}

	for i := range components {
		s.componentByID[components[i].ID] = &components[i]
	}
	for i := range suppliers {
		s.supplierByID[suppliers[i].ID] = &suppliers[i]
	}
	for i := range quotes {
		s.quoteByID[quotes[i].ID] = &quotes[i]
	}
	for i := range orders {
		s.orderByID[orders[i].ID] = &orders[i]
	}
	for i := range purchaseLines {
		line := &purchaseLines[i]
		s.linesByOrder[line.POID] = append(s.linesByOrder[line.POID], line)
		s.purchaseLinesByComponent[line.ComponentID] = append(s.purchaseLinesByComponent[line.ComponentID], line)
	}
	for i := range costEntries {
		entry := &costEntries[i]
		s.costsByOrder[entry.POID] = append(s.costsByOrder[entry.POID], entry)
	}
	for i := range quoteLines {
		line := &quoteLines[i]
		s.quoteLinesByComponent[line.ComponentID] = append(s.quoteLinesByComponent[line.ComponentID], line)
	}

	return s
}

// ComponentByID returns the component with the given id, or nil.
func (s *Snapshot) ComponentByID(id int64) *domain.Component {
	return s.componentByID[id]
}

// SupplierByID returns the supplier with the given id, or nil.
func (s *Snapshot) SupplierByID(id int64) *domain.Supplier {
	return s.supplierByID[id]
}

// QuoteByID returns the quote header with the given id, or nil.
func (s *Snapshot) QuoteByID(id int64) *domain.PriceQuote {
	return s.quoteByID[id]
}

// OrderByID returns the purchase order with the given id, or nil.
func (s *Snapshot) OrderByID(id int64) *domain.PurchaseOrder {
	return s.orderByID[id]
}

// LinesForOrder returns every purchase line item belonging to the order.
func (s *Snapshot) LinesForOrder(poID int64) []*domain.PurchaseLineItem {
	return s.linesByOrder[poID]
}

// CostsForOrder returns every cost entry recorded against the order.
func (s *Snapshot) CostsForOrder(poID int64) []*domain.CostEntry {
	return s.costsByOrder[poID]
}

// PurchaseLinesForComponent returns every purchase line item referencing the
// component, across all orders.
func (s *Snapshot) PurchaseLinesForComponent(componentID int64) []*domain.PurchaseLineItem {
	return s.purchaseLinesByComponent[componentID]
}

// QuoteLinesForComponent returns every quote line item referencing the
// component, across all quotes.
func (s *Snapshot) QuoteLinesForComponent(componentID int64) []*domain.PriceQuoteLineItem {
	return s.quoteLinesByComponent[componentID]
}
