package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/ordatech/procost/internal/analytics/costing"
	"github.com/ordatech/procost/internal/analytics/cycle"
	"github.com/ordatech/procost/internal/config"
	"github.com/redis/go-redis/v9"
)

const (
	costReportKeyPrefix  = "report:cost"
	cycleReportKeyPrefix = "report:cycle"
	scanBatchSize        = 100
)

// ReportCache keeps derived analytics reports warm between data changes.
// Misses are not errors; callers recompute and set.
type ReportCache interface {
	GetCostReport(ctx context.Context, componentID int64) (*costing.Report, bool, error)
	SetCostReport(ctx context.Context, componentID int64, report *costing.Report) error
	GetCycleReport(ctx context.Context) (*cycle.Report, bool, error)
	SetCycleReport(ctx context.Context, report *cycle.Report) error
	InvalidateAll(ctx context.Context) error
}

type redisReportCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopReportCache struct{}

func NewReportCache(cfg config.CacheConfig) (ReportCache, error) {
	if !cfg.Enabled {
		return &noopReportCache{}, nil
	}

	client, ttl, err := newRedisClient(cfg)
	if err != nil {
		return nil, err
	}

	return &redisReportCache{
		client: client,
		ttl:    ttl,
	}, nil
}

func NewNoopReportCache() ReportCache {
	return &noopReportCache{}
}

func (c *redisReportCache) GetCostReport(ctx context.Context, componentID int64) (*costing.Report, bool, error) {
	key := costReportKeyPrefix + ":" + strconv.FormatInt(componentID, 10)

	payload, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var report costing.Report
	if err := json.Unmarshal(payload, &report); err != nil {
		return nil, false, fmt.Errorf("decode cost report cache: %w", err)
	}

	return &report, true, nil
}

func (c *redisReportCache) SetCostReport(ctx context.Context, componentID int64, report *costing.Report) error {
	key := costReportKeyPrefix + ":" + strconv.FormatInt(componentID, 10)
	payload, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("encode cost report cache: %w", err)
	}

	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}

	return nil
}

func (c *redisReportCache) GetCycleReport(ctx context.Context) (*cycle.Report, bool, error) {
	payload, err := c.client.Get(ctx, cycleReportKeyPrefix).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var report cycle.Report
	if err := json.Unmarshal(payload, &report); err != nil {
		return nil, false, fmt.Errorf("decode cycle report cache: %w", err)
	}

	return &report, true, nil
}

func (c *redisReportCache) SetCycleReport(ctx context.Context, report *cycle.Report) error {
	payload, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("encode cycle report cache: %w", err)
	}

	if err := c.client.Set(ctx, cycleReportKeyPrefix, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}

	return nil
}

func (c *redisReportCache) InvalidateAll(ctx context.Context) error {
	if err := deleteKeysWithPrefix(ctx, c.client, costReportKeyPrefix, scanBatchSize); err != nil {
		return err
	}
	return deleteKeysWithPrefix(ctx, c.client, cycleReportKeyPrefix, scanBatchSize)
}

func (n *noopReportCache) GetCostReport(ctx context.Context, componentID int64) (*costing.Report, bool, error) {
	return nil, false, nil
}

func (n *noopReportCache) SetCostReport(ctx context.Context, componentID int64, report *costing.Report) error {
	return nil
}

func (n *noopReportCache) GetCycleReport(ctx context.Context) (*cycle.Report, bool, error) {
	return nil, false, nil
}

func (n *noopReportCache) SetCycleReport(ctx context.Context, report *cycle.Report) error {
	return nil
}

func (n *noopReportCache) InvalidateAll(ctx context.Context) error {
	return nil
}
