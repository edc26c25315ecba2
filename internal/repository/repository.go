// internal/repository/repository.go
package repository

import (
	"context"
	"time"

	"github.com/ordatech/procost/internal/analytics"
	"github.com/ordatech/procost/internal/domain"
)

// SnapshotRepository materializes the full procurement dataset for the
// analytics layer. The snapshot is a point-in-time copy; the analyzers never
// write back.
type SnapshotRepository interface {
	LoadSnapshot(ctx context.Context) (*analytics.Snapshot, error)
}

// BrowseRepository backs the read-only browsing screens: search, sort and
// pagination over the master tables, plus order detail.
type BrowseRepository interface {
	ListComponents(ctx context.Context, filter domain.ListFilter) ([]*domain.Component, int, error)
	ListSuppliers(ctx context.Context, filter domain.ListFilter) ([]*domain.Supplier, int, error)
	GetPurchaseOrder(ctx context.Context, poID int64) (*PurchaseOrderDetail, error)
	ListQuotesForComponent(ctx context.Context, componentID int64) ([]*domain.PriceQuote, error)
}

// PurchaseOrderDetail is an order with its lines and cost entries resolved.
type PurchaseOrderDetail struct {
	Order       domain.PurchaseOrder      `json:"order"`
	Lines       []domain.PurchaseLineItem `json:"lines"`
	CostEntries []domain.CostEntry        `json:"cost_entries"`
}

// IngestedDocument records a quote PDF pulled from the shared Drive folder.
type IngestedDocument struct {
	ID         int64     `json:"id" db:"id"`
	DriveID    string    `json:"drive_id" db:"drive_id"`
	FileName   string    `json:"file_name" db:"file_name"`
	ArchiveKey string    `json:"archive_key" db:"archive_key"`
	DraftJSON  string    `json:"draft_json" db:"draft_json"`
	IngestedAt time.Time `json:"ingested_at" db:"ingested_at"`
}

// DocumentRepository tracks which quote documents have been ingested and
// stores the extraction drafts awaiting review.
type DocumentRepository interface {
	IsIngested(ctx context.Context, driveID string) (bool, error)
	SaveDocument(ctx context.Context, doc *IngestedDocument) error
	ListDocuments(ctx context.Context, limit, offset int) ([]*IngestedDocument, error)
}
