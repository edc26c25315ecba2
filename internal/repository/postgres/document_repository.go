// internal/repository/postgres/document_repository.go
package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/ordatech/procost/internal/repository"
)

type documentRepository struct {
	db *DB
}

func NewDocumentRepository(db *DB) *documentRepository {
	return &documentRepository{db: db}
}

func (r *documentRepository) IsIngested(ctx context.Context, driveID string) (bool, error) {
	var count int
	query := `SELECT COUNT(*) FROM ingested_documents WHERE drive_id = $1`
	if err := sqlx.GetContext(ctx, r.db, &count, query, driveID); err != nil {
		return false, fmt.Errorf("failed to check ingested document: %w", err)
	}
	return count > 0, nil
}

func (r *documentRepository) SaveDocument(ctx context.Context, doc *repository.IngestedDocument) error {
	query := `
		INSERT INTO ingested_documents (drive_id, file_name, archive_key, draft_json, ingested_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (drive_id) DO UPDATE SET
			file_name = EXCLUDED.file_name,
			archive_key = EXCLUDED.archive_key,
			draft_json = EXCLUDED.draft_json,
			ingested_at = NOW()
		RETURNING id, ingested_at
	`
	if err := r.db.QueryRowxContext(ctx, query, doc.DriveID, doc.FileName, doc.ArchiveKey, doc.DraftJSON).
		Scan(&doc.ID, &doc.IngestedAt); err != nil {
		return fmt.Errorf("failed to save ingested document: %w", err)
	}
	return nil
}

func (r *documentRepository) ListDocuments(ctx context.Context, limit, offset int) ([]*repository.IngestedDocument, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT id, drive_id, file_name, archive_key, draft_json, ingested_at
		FROM ingested_documents
		ORDER BY ingested_at DESC
		LIMIT $1 OFFSET $2
	`

	var docs []*repository.IngestedDocument
	if err := sqlx.SelectContext(ctx, r.db, &docs, query, limit, offset); err != nil {
		return nil, fmt.Errorf("failed to list ingested documents: %w", err)
	}

	return docs, nil
}
