package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/gpsbazar/school-records-api/internal/models"
	appErrors "github.com/gpsbazar/school-records-api/pkg/errors"
)

const dashboardCacheKey = "dashboard:stats"

// CacheRepository abstracts persistence for cached payloads.
type CacheRepository interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// DashboardService aggregates roster statistics with a short-lived
// cache in front.
type DashboardService struct {
	repo   studentRepository
	cache  CacheRepository
	logger *zap.Logger
	ttl    time.Duration
}

// NewDashboardService constructs the dashboard service.
func NewDashboardService(repo studentRepository, cache CacheRepository, ttl time.Duration, logger *zap.Logger) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &DashboardService{repo: repo, cache: cache, logger: logger, ttl: ttl}
}

// Stats returns dashboard figures. The second return reports a cache hit.
func (s *DashboardService) Stats(ctx context.Context) (*models.DashboardStats, bool, error) {
	if s.cache != nil {
		var cached models.DashboardStats
		err := s.cache.Get(ctx, dashboardCacheKey, &cached)
		if err == nil {
			return &cached, true, nil
		}
		if !errors.Is(err, appErrors.ErrCacheMiss) {
			s.logger.Warn("dashboard cache get failed", zap.Error(err))
		}
	}

	students, err := s.repo.LoadAll(ctx)
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load students")
	}

	stats := computeStats(students)

	if s.cache != nil {
		if err := s.cache.Set(ctx, dashboardCacheKey, stats, s.ttl); err != nil {
			s.logger.Warn("dashboard cache set failed", zap.Error(err))
		}
	}
	return stats, false, nil
}

// Invalidate drops the cached dashboard after roster mutations.
func (s *DashboardService) Invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, dashboardCacheKey); err != nil {
		s.logger.Warn("dashboard cache invalidation failed", zap.Error(err))
	}
}

func computeStats(students []models.Student) *models.DashboardStats {
	stats := &models.DashboardStats{TotalStudents: len(students)}
	counts := make(map[models.Grade]int, len(models.Grades))
	for _, student := range students {
		counts[student.Grade]++
		if student.Results.Sem1 != nil {
			stats.WithSem1Results++
		}
		if student.Results.Sem2 != nil {
			stats.WithSem2Results++
		}
	}
	for _, grade := range models.Grades {
		stats.GradeDistribution = append(stats.GradeDistribution, models.GradeCount{Grade: grade, Count: counts[grade]})
	}
	return stats
}
