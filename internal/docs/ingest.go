package docs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path"

	"github.com/ordatech/procost/internal/extract"
	"github.com/ordatech/procost/internal/repository"
	"github.com/ordatech/procost/internal/storage"
	"github.com/rs/zerolog/log"
)

const archivePrefix = "quotes"

// IngestResult summarizes one folder sweep.
type IngestResult struct {
	Ingested int      `json:"ingested"`
	Skipped  int      `json:"skipped"`
	Failed   []string `json:"failed"`
}

type IngestService struct {
	driveService *Service
	extractor    *extract.Client
	archive      storage.ObjectStorage
	repo         repository.DocumentRepository
}

func NewIngestService(driveService *Service, extractor *extract.Client, archive storage.ObjectStorage, repo repository.DocumentRepository) *IngestService {
	return &IngestService{
		driveService: driveService,
		extractor:    extractor,
		archive:      archive,
		repo:         repo,
	}
}

// IngestFolder sweeps the inbox folder: every PDF not seen before is
// downloaded, archived, extracted and recorded. A failed file is reported
// and skipped; the sweep continues.
func (s *IngestService) IngestFolder(ctx context.Context, folderPath string) (*IngestResult, error) {
	folderID, err := s.driveService.FindFolderByPath(folderPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve folder %q: %w", folderPath, err)
	}

	files, err := s.driveService.ListPDFs(folderID)
	if err != nil {
		return nil, err
	}

	result := &IngestResult{Failed: make([]string, 0)}
	for _, f := range files {
		ingested, err := s.repo.IsIngested(ctx, f.ID)
		if err != nil {
			return nil, err
		}
		if ingested {
			result.Skipped++
			continue
		}

		if err := s.IngestFile(ctx, f.ID, f.Name); err != nil {
			log.Error().Err(err).Str("file", f.Name).Msg("docs: failed to ingest quote document")
			result.Failed = append(result.Failed, f.Name)
			continue
		}
		result.Ingested++
	}

	return result, nil
}

// IngestFile processes a single quote PDF.
func (s *IngestService) IngestFile(ctx context.Context, fileID, fileName string) error {
	// 1. Download the PDF from Drive
	var buf bytes.Buffer
	if err := s.driveService.DownloadFile(fileID, &buf); err != nil {
		return fmt.Errorf("failed to download %s: %w", fileName, err)
	}
	pdf := buf.Bytes()

	// 2. Archive the original
	archiveKey := path.Join(archivePrefix, fileID, fileName)
	if err := s.archive.UploadObject(ctx, archiveKey, pdf); err != nil {
		return fmt.Errorf("failed to archive %s: %w", fileName, err)
	}

	// 3. Extract a structured draft
	draft, err := s.extractor.ExtractQuote(ctx, fileName, pdf)
	if err != nil {
		return fmt.Errorf("failed to extract %s: %w", fileName, err)
	}

	draftJSON, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("failed to encode draft for %s: %w", fileName, err)
	}

	// 4. Record the document. The draft waits for review; nothing is written
	// to the quote tables here.
	doc := &repository.IngestedDocument{
		DriveID:    fileID,
		FileName:   fileName,
		ArchiveKey: archiveKey,
		DraftJSON:  string(draftJSON),
	}
	if err := s.repo.SaveDocument(ctx, doc); err != nil {
		return err
	}

	log.Info().
		Str("file", fileName).
		Str("archive_key", archiveKey).
		Int("line_items", len(draft.LineItems)).
		Msg("docs: quote document ingested")

	return nil
}
