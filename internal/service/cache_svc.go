package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"
)

const (
	ReportCacheTTL     = 15 * time.Minute
	ReportListCacheTTL = 5 * time.Minute
)

var (
	cacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "reportsys_cache_hits_total",
		Help: "Total Redis cache hits.",
	})
	cacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "reportsys_cache_misses_total",
		Help: "Total Redis cache misses.",
	})
)

// CacheService provides a Redis cache-aside layer for report lookups and
// listings. Listings change on every generation run, so they get the shorter
// TTL and explicit invalidation on writes.
type CacheService struct {
	rdb *redis.Client
}

// NewCacheService creates a new CacheService. If redisURL is empty or the
// connection fails, it returns a CacheService with a nil client (cache
// operations become no-ops).
func NewCacheService(redisURL string) *CacheService {
	if redisURL == "" {
		log.Println("redis: no URL configured, caching disabled")
		return &CacheService{}
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Printf("redis: invalid URL %q, caching disabled: %v", redisURL, err)
		return &CacheService{}
	}

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("redis: connection failed, caching disabled: %v", err)
		return &CacheService{}
	}

	log.Println("redis: connected, caching enabled")
	return &CacheService{rdb: rdb}
}

// Client returns the underlying Redis client (for health checks). May be nil.
func (c *CacheService) Client() *redis.Client {
	return c.rdb
}

// GetReport retrieves a cached report. Returns nil if not cached or disabled.
func (c *CacheService) GetReport(ctx context.Context, reportID string) ([]byte, error) {
	if c.rdb == nil {
		return nil, nil
	}
	data, err := c.rdb.Get(ctx, reportKey(reportID)).Bytes()
	if err == redis.Nil {
		cacheMisses.Inc()
		return nil, nil
	}
	if err == nil {
		cacheHits.Inc()
	}
	return data, err
}

// SetReport stores a report in cache.
func (c *CacheService) SetReport(ctx context.Context, reportID string, data interface{}) error {
	if c.rdb == nil {
		return nil
	}
	b, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, reportKey(reportID), b, ReportCacheTTL).Err()
}

// InvalidateReport removes a report from cache.
func (c *CacheService) InvalidateReport(ctx context.Context, reportID string) error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Del(ctx, reportKey(reportID)).Err()
}

// GetReportList retrieves a cached report listing for the given limit.
func (c *CacheService) GetReportList(ctx context.Context, limit int) ([]byte, error) {
	if c.rdb == nil {
		return nil, nil
	}
	data, err := c.rdb.Get(ctx, reportListKey(limit)).Bytes()
	if err == redis.Nil {
		cacheMisses.Inc()
		return nil, nil
	}
	if err == nil {
		cacheHits.Inc()
	}
	return data, err
}

// SetReportList stores a report listing.
func (c *CacheService) SetReportList(ctx context.Context, limit int, data interface{}) error {
	if c.rdb == nil {
		return nil
	}
	b, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, reportListKey(limit), b, ReportListCacheTTL).Err()
}

// InvalidateReportLists drops every cached listing (called after any report
// create or delete).
func (c *CacheService) InvalidateReportLists(ctx context.Context) error {
	if c.rdb == nil {
		return nil
	}
	iter := c.rdb.Scan(ctx, 0, "reports:list:*", 0).Iterator()
	for iter.Next(ctx) {
		if err := c.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

// Close shuts down the Redis connection.
func (c *CacheService) Close() error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}

func reportKey(reportID string) string {
	return fmt.Sprintf("report:%s", reportID)
}

func reportListKey(limit int) string {
	return fmt.Sprintf("reports:list:%d", limit)
}
