package service

import (
	"context"
	"sync"

	"github.com/ordatech/procost/internal/analytics/costing"
	"github.com/ordatech/procost/internal/domain"
	"github.com/rs/zerolog/log"
)

// WarmCostReports precomputes and caches the cost report for every component
// using a bounded worker pool, plus the single cycle report. Intended to run
// after seeding or at startup so first requests hit warm cache entries.
func (s *ReportService) WarmCostReports(ctx context.Context, workerCount int) error {
	if workerCount < 1 {
		workerCount = 4
	}

	snap, err := s.repo.LoadSnapshot(ctx)
	if err != nil {
		return err
	}

	jobChan := make(chan *domain.Component, len(snap.Components))
	var wg sync.WaitGroup

	for i := 0; i < workerCount; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for component := range jobChan {
				report := costing.BuildReport(snap, component.ID)
				if err := s.cache.SetCostReport(ctx, component.ID, &report); err != nil {
					log.Warn().Err(err).Int64("component_id", component.ID).Msg("reports: warm-up cache set failed")
				}
			}
		}()
	}

	for i := range snap.Components {
		select {
		case <-ctx.Done():
			close(jobChan)
			wg.Wait()
			return ctx.Err()
		case jobChan <- &snap.Components[i]:
		}
	}
	close(jobChan)
	wg.Wait()

	if _, err := s.GetCycleReport(ctx); err != nil {
		return err
	}

	log.Info().Int("components", len(snap.Components)).Msg("reports: cache warm-up complete")
	return nil
}
