// Package report computes the admin aggregates over paid jobs.
package report

import (
	"context"
	"fmt"
	"time"

	"jobpay/internal/repositories"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const (
	MaxClientLimit = 100
	MinClientLimit = 1

	// KeyPattern matches every cached report.
	KeyPattern = "report:*"

	// GenerationKey counts invalidations. It sits outside KeyPattern so
	// clearing the reports never resets it.
	GenerationKey = "report-generation"
)

// Cache is the subset of the cache service reports need.
type Cache interface {
	SetWithTTL(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	DeletePattern(ctx context.Context, pattern string) error
	Incr(ctx context.Context, key string) (int64, error)
}

// MetricsCollector records cache effectiveness.
type MetricsCollector interface {
	RecordCacheHit(report string)
	RecordCacheMiss(report string)
}

type Service interface {
	// BestProfession returns nil when no job was paid in the range.
	BestProfession(ctx context.Context, r repositories.DateRange) (*repositories.ProfessionTotal, error)
	BestClients(ctx context.Context, r repositories.DateRange, limit int) ([]repositories.ClientTotal, error)
	Invalidate(ctx context.Context) error
}

type service struct {
	repo    repositories.ReportRepository
	cache   Cache
	ttl     time.Duration
	metrics MetricsCollector
	logger  *zap.Logger
	tracer  trace.Tracer
}

func NewService(repo repositories.ReportRepository, cache Cache, ttl time.Duration, metrics MetricsCollector, logger *zap.Logger) Service {
	if repo == nil {
		panic("repo is required")
	}
	if cache == nil {
		panic("cache is required")
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if metrics == nil {
		metrics = noopMetrics{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &service{
		repo:    repo,
		cache:   cache,
		ttl:     ttl,
		metrics: metrics,
		logger:  logger.Named("report"),
		tracer:  otel.Tracer("jobpay/internal/services/report"),
	}
}

// professionResult wraps the nullable result so an empty range is cached
// too.
type professionResult struct {
	Best *repositories.ProfessionTotal `json:"best"`
}

func (s *service) BestProfession(ctx context.Context, r repositories.DateRange) (*repositories.ProfessionTotal, error) {
	ctx, span := s.tracer.Start(ctx, "report.best_profession")
	defer span.End()

	gen, cached := s.generation(ctx)
	key := cacheKey("profession", gen, r)
	var hit professionResult
	if cached && s.lookup(ctx, "profession", key, &hit) {
		return hit.Best, nil
	}

	best, err := s.repo.BestProfession(ctx, r)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	if cached {
		s.store(ctx, key, professionResult{Best: best})
	}
	return best, nil
}

func (s *service) BestClients(ctx context.Context, r repositories.DateRange, limit int) ([]repositories.ClientTotal, error) {
	ctx, span := s.tracer.Start(ctx, "report.best_clients")
	defer span.End()

	if limit < MinClientLimit || limit > MaxClientLimit {
		return nil, fmt.Errorf("%w: limit must be between %d and %d", ErrInvalidLimit, MinClientLimit, MaxClientLimit)
	}

	gen, cached := s.generation(ctx)
	key := fmt.Sprintf("%s:%d", cacheKey("clients", gen, r), limit)
	var hit []repositories.ClientTotal
	if cached && s.lookup(ctx, "clients", key, &hit) {
		return hit, nil
	}

	clients, err := s.repo.BestClients(ctx, r, limit)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	if cached {
		s.store(ctx, key, clients)
	}
	return clients, nil
}

// Invalidate moves reports to a new generation and then drops the old
// entries. A query that read the previous generation can only store under
// a key no later lookup uses.
func (s *service) Invalidate(ctx context.Context) error {
	if _, err := s.cache.Incr(ctx, GenerationKey); err != nil {
		return fmt.Errorf("failed to advance report generation: %w", err)
	}
	return s.cache.DeletePattern(ctx, KeyPattern)
}

// generation reads the current cache generation before a report is
// computed. ok is false when it cannot be read; the report then bypasses
// the cache.
func (s *service) generation(ctx context.Context) (gen int64, ok bool) {
	if _, err := s.cache.Get(ctx, GenerationKey, &gen); err != nil {
		s.logger.Warn("report generation read failed", zap.Error(err))
		return 0, false
	}
	return gen, true
}

// lookup reports a cache hit. Cache errors count as misses.
func (s *service) lookup(ctx context.Context, report, key string, dest interface{}) bool {
	found, err := s.cache.Get(ctx, key, dest)
	if err != nil {
		s.logger.Warn("report cache read failed", zap.String("key", key), zap.Error(err))
	}
	if err != nil || !found {
		s.metrics.RecordCacheMiss(report)
		return false
	}
	s.metrics.RecordCacheHit(report)
	return true
}

func (s *service) store(ctx context.Context, key string, value interface{}) {
	if err := s.cache.SetWithTTL(ctx, key, value, s.ttl); err != nil {
		s.logger.Warn("report cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func cacheKey(report string, gen int64, r repositories.DateRange) string {
	return fmt.Sprintf("report:%s:%d:%s:%s", report, gen, bound(r.Start), bound(r.End))
}

func bound(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.UTC().Format(time.RFC3339Nano)
}

type noopMetrics struct{}

func (noopMetrics) RecordCacheHit(string)  {}
func (noopMetrics) RecordCacheMiss(string) {}
