package service

import (
	"context"
	"testing"
	"time"

	"eng_assess_backend/internal/repository"
)

func TestPassRate(t *testing.T) {
	tests := []struct {
		passed, total int64
		want          int
	}{
		{0, 0, 0},
		{3, 4, 75},
		{1, 3, 33},
		{2, 3, 67},
		{5, 5, 100},
	}
	for _, tt := range tests {
		if got := PassRate(tt.passed, tt.total); got != tt.want {
			t.Errorf("PassRate(%d, %d) = %d, want %d", tt.passed, tt.total, got, tt.want)
		}
	}
}

func TestOverview(t *testing.T) {
	store := &stubReportStore{
		totals: repository.SubmissionTotals{Total: 3, Average: 71.666, Highest: 100, Lowest: 40},
		rows: []repository.AssessmentAggregate{
			{ID: 1, Title: "Statics", Submissions: 3, AverageScore: 71.666, Passed: 2},
			{ID: 2, Title: "Circuits", Submissions: 0, AverageScore: 0, Passed: 0},
		},
	}
	svc := NewReportService(store, nil, 0)

	got, err := svc.Overview(context.Background())
	if err != nil {
		t.Fatalf("Overview: %v", err)
	}
	if got.TotalSubmissions != 3 || got.AverageScore != 72 || got.HighestScore != 100 || got.LowestScore != 40 {
		t.Errorf("unexpected totals %+v", got)
	}
	if len(got.AssessmentStats) != 2 {
		t.Fatalf("stats = %d, want 2", len(got.AssessmentStats))
	}
	if s := got.AssessmentStats[0]; s.PassRate != 67 || s.AverageScore != 72 {
		t.Errorf("first stat = %+v", s)
	}
	if s := got.AssessmentStats[1]; s.PassRate != 0 || s.Submissions != 0 {
		t.Errorf("assessment without submissions = %+v", s)
	}
}

func TestStats(t *testing.T) {
	now := time.Date(2026, 3, 31, 12, 0, 0, 0, time.UTC)
	store := &stubReportStore{students: 12, courses: 4, total: 8, passed: 6, active: 5}
	svc := NewReportService(store, nil, 0)
	svc.Now = func() time.Time { return now }

	got, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	want := PlatformStats{TotalStudents: 12, ActiveCourses: 4, CompletionRate: "75%", ActiveUsers: 5}
	if *got != want {
		t.Errorf("stats = %+v, want %+v", *got, want)
	}
	if !store.since.Equal(now.Add(-30 * 24 * time.Hour)) {
		t.Errorf("active window since = %v", store.since)
	}
}

func TestStatsWithoutSubmissions(t *testing.T) {
	svc := NewReportService(&stubReportStore{}, nil, 0)
	got, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if got.CompletionRate != "0%" {
		t.Errorf("completion rate = %q, want 0%%", got.CompletionRate)
	}
}

func TestOverviewCachedUntilInvalidated(t *testing.T) {
	store := &stubReportStore{
		rows: []repository.AssessmentAggregate{{ID: 1, Title: "Statics"}},
	}
	c := newMemoryCache()
	svc := NewReportService(store, c, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := svc.Overview(ctx); err != nil {
			t.Fatalf("Overview: %v", err)
		}
	}
	if store.breakdown != 1 {
		t.Fatalf("breakdown queries = %d, want 1", store.breakdown)
	}

	svc.Invalidate(ctx)
	if _, err := svc.Overview(ctx); err != nil {
		t.Fatalf("Overview: %v", err)
	}
	if store.breakdown != 2 {
		t.Errorf("breakdown queries after invalidate = %d, want 2", store.breakdown)
	}
}
