package service

import (
	"context"
	"sync"
	"time"

	"eng_assess_backend/internal/model"
	"eng_assess_backend/internal/repository"
	"eng_assess_backend/pkg/cache"

	"gorm.io/gorm"
)

type stubAssessments struct {
	items map[uint]*model.Assessment
}

func newStubAssessments(items ...model.Assessment) *stubAssessments {
	s := &stubAssessments{items: make(map[uint]*model.Assessment)}
	for i := range items {
		a := items[i]
		s.items[a.ID] = &a
	}
	return s
}

func (s *stubAssessments) Create(_ context.Context, a *model.Assessment) error {
	a.ID = uint(len(s.items) + 1)
	s.items[a.ID] = a
	return nil
}

func (s *stubAssessments) FindByID(_ context.Context, id uint) (*model.Assessment, error) {
	a, ok := s.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *a
	return &cp, nil
}

func (s *stubAssessments) List(context.Context) ([]model.Assessment, error) {
	out := make([]model.Assessment, 0, len(s.items))
	for _, a := range s.items {
		out = append(out, *a)
	}
	return out, nil
}

func (s *stubAssessments) Update(_ context.Context, a *model.Assessment) error {
	if _, ok := s.items[a.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	s.items[a.ID] = a
	return nil
}

func (s *stubAssessments) Delete(_ context.Context, id uint) error {
	if _, ok := s.items[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(s.items, id)
	return nil
}

type stubSubmissions struct {
	mu      sync.Mutex
	created []model.AssessmentSubmission
	err     error
}

func (s *stubSubmissions) Create(_ context.Context, sub *model.AssessmentSubmission) error {
	if s.err != nil {
		return s.err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	sub.ID = model.GenerateUUID()
	s.created = append(s.created, *sub)
	return nil
}

type countingInvalidator struct {
	calls int
}

func (c *countingInvalidator) Invalidate(context.Context) {
	c.calls++
}

// memoryCache 测试用的内存缓存
type memoryCache struct {
	data map[string]interface{}
	hits int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{data: make(map[string]interface{})}
}

func (m *memoryCache) Get(_ context.Context, key string, dest interface{}) error {
	v, ok := m.data[key]
	if !ok {
		return cache.ErrMiss
	}
	m.hits++
	switch d := dest.(type) {
	case *Overview:
		*d = v.(Overview)
	case *PlatformStats:
		*d = v.(PlatformStats)
	}
	return nil
}

func (m *memoryCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	m.data[key] = value
	return nil
}

func (m *memoryCache) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(m.data, k)
	}
	return nil
}

type stubReportStore struct {
	totals    repository.SubmissionTotals
	rows      []repository.AssessmentAggregate
	students  int64
	active    int64
	since     time.Time
	courses   int64
	total     int64
	passed    int64
	breakdown int
}

func (s *stubReportStore) SubmissionTotals(context.Context) (*repository.SubmissionTotals, error) {
	t := s.totals
	return &t, nil
}

func (s *stubReportStore) AssessmentBreakdown(_ context.Context, _ int) ([]repository.AssessmentAggregate, error) {
	s.breakdown++
	return s.rows, nil
}

func (s *stubReportStore) CountUsersByRole(context.Context, model.UserRole) (int64, error) {
	return s.students, nil
}

func (s *stubReportStore) CountActiveUsers(_ context.Context, since time.Time) (int64, error) {
	s.since = since
	return s.active, nil
}

func (s *stubReportStore) CountCategories(context.Context) (int64, error) {
	return s.courses, nil
}

func (s *stubReportStore) CountSubmissions(context.Context, int) (int64, int64, error) {
	return s.total, s.passed, nil
}
