package repository

import (
	"testing"
	"time"

	"eng_assess_backend/internal/model"
)

func sub(id string, assessmentID uint, at time.Time) model.AssessmentSubmission {
	s := model.AssessmentSubmission{AssessmentID: assessmentID}
	s.ID = id
	s.CreatedAt = at
	return s
}

func TestFirstPerAssessmentBreaksTies(t *testing.T) {
	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	// 已按 created_at DESC, id DESC 排序，assessment 1 有两条同一时刻的记录
	rows := []model.AssessmentSubmission{
		sub("c", 1, at),
		sub("b", 1, at),
		sub("a", 2, at.Add(-time.Hour)),
	}

	got := FirstPerAssessment(rows)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2: %+v", len(got), got)
	}
	if got[0].ID != "c" || got[1].ID != "a" {
		t.Errorf("ids = %s,%s, want c,a", got[0].ID, got[1].ID)
	}
}

func TestFirstPerAssessmentEmpty(t *testing.T) {
	if got := FirstPerAssessment(nil); len(got) != 0 {
		t.Errorf("got %v", got)
	}
}
