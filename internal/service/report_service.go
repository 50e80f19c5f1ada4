package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"eng_assess_backend/internal/model"
	"eng_assess_backend/internal/repository"
	"eng_assess_backend/pkg/cache"
	"eng_assess_backend/pkg/logger"

	"go.uber.org/zap"
)

const (
	overviewCacheKey = "report:overview"
	statsCacheKey    = "report:stats"

	activeWindow = 30 * 24 * time.Hour
)

// AssessmentStat 单个测评的统计
type AssessmentStat struct {
	ID           uint   `json:"id"`
	Title        string `json:"title"`
	Submissions  int64  `json:"submissions"`
	AverageScore int    `json:"averageScore"`
	PassRate     int    `json:"passRate"`
}

// Overview 管理端总览
type Overview struct {
	TotalSubmissions int64            `json:"totalSubmissions"`
	AverageScore     int              `json:"averageScore"`
	HighestScore     int              `json:"highestScore"`
	LowestScore      int              `json:"lowestScore"`
	AssessmentStats  []AssessmentStat `json:"assessmentStats"`
}

// PlatformStats 管理端首页指标
type PlatformStats struct {
	TotalStudents  int64  `json:"totalStudents"`
	ActiveCourses  int64  `json:"activeCourses"`
	CompletionRate string `json:"completionRate"`
	ActiveUsers    int64  `json:"activeUsers"`
}

// PassRate 通过人数占比（百分比取整），分母至少为 1
func PassRate(passed, total int64) int {
	denominator := total
	if denominator < 1 {
		denominator = 1
	}
	return int(math.Round(float64(passed) / float64(denominator) * 100))
}

type ReportStore interface {
	SubmissionTotals(ctx context.Context) (*repository.SubmissionTotals, error)
	AssessmentBreakdown(ctx context.Context, passingScore int) ([]repository.AssessmentAggregate, error)
	CountUsersByRole(ctx context.Context, role model.UserRole) (int64, error)
	CountActiveUsers(ctx context.Context, since time.Time) (int64, error)
	CountCategories(ctx context.Context) (int64, error)
	CountSubmissions(ctx context.Context, passingScore int) (int64, int64, error)
}

type ReportService struct {
	Store ReportStore
	Cache cache.Cache
	TTL   time.Duration
	Now   func() time.Time
}

func NewReportService(store ReportStore, c cache.Cache, ttl time.Duration) *ReportService {
	if c == nil {
		c = cache.NopCache{}
	}
	return &ReportService{
		Store: store,
		Cache: c,
		TTL:   ttl,
		Now:   time.Now,
	}
}

// 读取缓存，未命中或出错都按未命中处理
func (s *ReportService) cached(ctx context.Context, key string, dest interface{}) bool {
	err := s.Cache.Get(ctx, key, dest)
	if err == nil {
		return true
	}
	if !errors.Is(err, cache.ErrMiss) {
		logger.Log.Warn("Report cache read failed", zap.String("key", key), zap.Error(err))
	}
	return false
}

func (s *ReportService) store(ctx context.Context, key string, value interface{}) {
	if s.TTL <= 0 {
		return
	}
	if err := s.Cache.Set(ctx, key, value, s.TTL); err != nil {
		logger.Log.Warn("Report cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func (s *ReportService) Overview(ctx context.Context) (*Overview, error) {
	var overview Overview
	if s.cached(ctx, overviewCacheKey, &overview) {
		return &overview, nil
	}

	totals, err := s.Store.SubmissionTotals(ctx)
	if err != nil {
		return nil, fmt.Errorf("submission totals: %w", err)
	}

	rows, err := s.Store.AssessmentBreakdown(ctx, PassingScore)
	if err != nil {
		return nil, fmt.Errorf("assessment breakdown: %w", err)
	}

	stats := make([]AssessmentStat, 0, len(rows))
	for _, row := range rows {
		stats = append(stats, AssessmentStat{
			ID:           row.ID,
			Title:        row.Title,
			Submissions:  row.Submissions,
			AverageScore: int(math.Round(row.AverageScore)),
			PassRate:     PassRate(row.Passed, row.Submissions),
		})
	}

	overview = Overview{
		TotalSubmissions: totals.Total,
		AverageScore:     int(math.Round(totals.Average)),
		HighestScore:     totals.Highest,
		LowestScore:      totals.Lowest,
		AssessmentStats:  stats,
	}

	s.store(ctx, overviewCacheKey, overview)
	return &overview, nil
}

func (s *ReportService) Stats(ctx context.Context) (*PlatformStats, error) {
	var stats PlatformStats
	if s.cached(ctx, statsCacheKey, &stats) {
		return &stats, nil
	}

	students, err := s.Store.CountUsersByRole(ctx, model.Student)
	if err != nil {
		return nil, fmt.Errorf("count students: %w", err)
	}

	courses, err := s.Store.CountCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("count categories: %w", err)
	}

	total, passed, err := s.Store.CountSubmissions(ctx, PassingScore)
	if err != nil {
		return nil, fmt.Errorf("count submissions: %w", err)
	}

	active, err := s.Store.CountActiveUsers(ctx, s.Now().Add(-activeWindow))
	if err != nil {
		return nil, fmt.Errorf("count active users: %w", err)
	}

	stats = PlatformStats{
		TotalStudents:  students,
		ActiveCourses:  courses,
		CompletionRate: fmt.Sprintf("%d%%", PassRate(passed, total)),
		ActiveUsers:    active,
	}

	s.store(ctx, statsCacheKey, stats)
	return &stats, nil
}

// Invalidate 新提交或数据变更后清除统计缓存
func (s *ReportService) Invalidate(ctx context.Context) {
	if err := s.Cache.Delete(ctx, overviewCacheKey, statsCacheKey); err != nil {
		logger.Log.Warn("Report cache invalidation failed", zap.Error(err))
	}
}
