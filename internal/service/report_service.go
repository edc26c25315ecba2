package service

import (
	"context"
	"fmt"

	"github.com/ordatech/procost/internal/analytics/costing"
	"github.com/ordatech/procost/internal/analytics/cycle"
	"github.com/ordatech/procost/internal/cache"
	"github.com/ordatech/procost/internal/repository"
	"github.com/rs/zerolog/log"
)

// ErrComponentNotFound is returned when a cost report is requested for a
// component id that is not in the dataset.
var ErrComponentNotFound = fmt.Errorf("component not found")

type ReportService struct {
	repo  repository.SnapshotRepository
	cache cache.ReportCache
}

func NewReportService(repo repository.SnapshotRepository, cacheImpl cache.ReportCache) *ReportService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopReportCache()
	}
	return &ReportService{repo: repo, cache: cacheImpl}
}

// GetCostReport builds the allocated-cost report for one component. Cache
// errors degrade to a recompute, never to a failed request.
func (s *ReportService) GetCostReport(ctx context.Context, componentID int64) (*costing.Report, error) {
	if report, ok, err := s.cache.GetCostReport(ctx, componentID); err == nil && ok {
		return report, nil
	} else if err != nil {
		log.Warn().Err(err).Int64("component_id", componentID).Msg("reports: cache get cost report failed")
	}

	snap, err := s.repo.LoadSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	if snap.ComponentByID(componentID) == nil {
		return nil, ErrComponentNotFound
	}

	report := costing.BuildReport(snap, componentID)

	if err := s.cache.SetCostReport(ctx, componentID, &report); err != nil {
		log.Warn().Err(err).Int64("component_id", componentID).Msg("reports: cache set cost report failed")
	}

	return &report, nil
}

// GetCycleReport builds the reorder-cycle report across all components.
func (s *ReportService) GetCycleReport(ctx context.Context) (*cycle.Report, error) {
	if report, ok, err := s.cache.GetCycleReport(ctx); err == nil && ok {
		return report, nil
	} else if err != nil {
		log.Warn().Err(err).Msg("reports: cache get cycle report failed")
	}

	snap, err := s.repo.LoadSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	report := cycle.BuildReport(snap)

	if err := s.cache.SetCycleReport(ctx, &report); err != nil {
		log.Warn().Err(err).Msg("reports: cache set cycle report failed")
	}

	return &report, nil
}

// Invalidate drops all cached reports. Called after seeding or ingestion.
func (s *ReportService) Invalidate(ctx context.Context) error {
	return s.cache.InvalidateAll(ctx)
}
