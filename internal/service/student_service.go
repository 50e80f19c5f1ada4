package service

import (
	"context"
	"math"
	"time"

	"eng_assess_backend/internal/model"
	"eng_assess_backend/internal/repository"
)

// SubmissionView 学生端历史记录，测评不带正确答案
type SubmissionView struct {
	ID             string                   `json:"id"`
	Assessment     *model.StudentAssessment `json:"assessment"`
	Score          int                      `json:"score"`
	Status         model.SubmissionStatus   `json:"status"`
	TimeSpent      int                      `json:"timeSpent"`
	CreatedAt      time.Time                `json:"createdAt"`
	CorrectAnswers int                      `json:"correctAnswers"`
	TotalQuestions int                      `json:"totalQuestions"`
	AttemptNumber  int                      `json:"attemptNumber,omitempty"`
}

// StudentStats 学生个人统计，timeSpent 单位为小时
type StudentStats struct {
	TotalAssessments     int64 `json:"totalAssessments"`
	CompletedAssessments int64 `json:"completedAssessments"`
	AverageScore         int   `json:"averageScore"`
	TimeSpent            int   `json:"timeSpent"`
}

type SubmissionReader interface {
	ListByUser(ctx context.Context, userID uint) ([]model.AssessmentSubmission, error)
	LatestPerAssessment(ctx context.Context, userID uint) ([]model.AssessmentSubmission, error)
	TotalsByUser(ctx context.Context, userID uint) (*repository.StudentTotals, error)
}

type AssessmentCounter interface {
	CountAssessments(ctx context.Context) (int64, error)
}

type StudentService struct {
	Submissions SubmissionReader
	Assessments AssessmentCounter
}

func NewStudentService(submissions SubmissionReader, assessments AssessmentCounter) *StudentService {
	return &StudentService{
		Submissions: submissions,
		Assessments: assessments,
	}
}

func toView(sub *model.AssessmentSubmission) SubmissionView {
	view := SubmissionView{
		ID:             sub.ID,
		Score:          sub.Score,
		Status:         sub.Status,
		TimeSpent:      sub.TimeSpent,
		CreatedAt:      sub.CreatedAt,
		CorrectAnswers: sub.CorrectAnswers,
		TotalQuestions: sub.TotalQuestions,
	}
	if sub.Assessment != nil {
		a := sub.Assessment.ForStudent()
		view.Assessment = &a
	}
	return view
}

// History 全部提交，最新在前；attemptNumber 按同一测评从旧到新编号
func (s *StudentService) History(ctx context.Context, userID uint) ([]SubmissionView, error) {
	submissions, err := s.Submissions.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	views := make([]SubmissionView, len(submissions))
	attempts := make(map[uint]int)
	for i := len(submissions) - 1; i >= 0; i-- {
		sub := &submissions[i]
		attempts[sub.AssessmentID]++
		views[i] = toView(sub)
		views[i].AttemptNumber = attempts[sub.AssessmentID]
	}
	return views, nil
}

// Latest 每个测评最近的一次提交
func (s *StudentService) Latest(ctx context.Context, userID uint) ([]SubmissionView, error) {
	submissions, err := s.Submissions.LatestPerAssessment(ctx, userID)
	if err != nil {
		return nil, err
	}

	views := make([]SubmissionView, len(submissions))
	for i := range submissions {
		views[i] = toView(&submissions[i])
	}
	return views, nil
}

func (s *StudentService) Stats(ctx context.Context, userID uint) (*StudentStats, error) {
	total, err := s.Assessments.CountAssessments(ctx)
	if err != nil {
		return nil, err
	}

	totals, err := s.Submissions.TotalsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &StudentStats{
		TotalAssessments:     total,
		CompletedAssessments: totals.Submissions,
		AverageScore:         int(math.Round(totals.AverageScore)),
		TimeSpent:            int(math.Round(float64(totals.TotalTimeSpent) / 3600)),
	}, nil
}
