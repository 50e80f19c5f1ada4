package repository

import (
	"context"

	"eng_assess_backend/internal/model"

	"gorm.io/gorm"
)

// StudentTotals 单个学生的提交汇总
type StudentTotals struct {
	Submissions    int64
	AverageScore   float64
	TotalTimeSpent int64
}

// SubmissionRepository 提交记录只增不改，因此不提供 Update
type SubmissionRepository struct {
	DB *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) *SubmissionRepository {
	return &SubmissionRepository{DB: db}
}

func (r *SubmissionRepository) Create(ctx context.Context, submission *model.AssessmentSubmission) error {
	return r.DB.WithContext(ctx).Create(submission).Error
}

// 测评被删除后历史记录仍需展示标题
func preloadAssessment(db *gorm.DB) *gorm.DB {
	return db.Preload("Assessment", func(tx *gorm.DB) *gorm.DB {
		return tx.Unscoped()
	})
}

// ListByUser 学生全部提交，最新在前
func (r *SubmissionRepository) ListByUser(ctx context.Context, userID uint) ([]model.AssessmentSubmission, error) {
	var submissions []model.AssessmentSubmission
	err := preloadAssessment(r.DB.WithContext(ctx)).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&submissions).Error
	return submissions, err
}

// FinishedByUser 已完成或自动提交的记录，最新在前
func (r *SubmissionRepository) FinishedByUser(ctx context.Context, userID uint) ([]model.AssessmentSubmission, error) {
	var submissions []model.AssessmentSubmission
	err := preloadAssessment(r.DB.WithContext(ctx)).
		Where("user_id = ? AND status IN ?", userID, model.FinishedStatuses).
		Order("created_at DESC").
		Find(&submissions).Error
	return submissions, err
}

// LatestPerAssessment 每个测评只取创建时间最大的一条；创建时间相同时按 id 取较大者
func (r *SubmissionRepository) LatestPerAssessment(ctx context.Context, userID uint) ([]model.AssessmentSubmission, error) {
	var submissions []model.AssessmentSubmission
	db := r.DB.WithContext(ctx)

	subquery := db.Model(&model.AssessmentSubmission{}).
		Select("assessment_id, MAX(created_at) AS max_created").
		Where("user_id = ?", userID).
		Group("assessment_id")

	err := preloadAssessment(db).
		Joins("INNER JOIN (?) AS latest ON assessment_submissions.assessment_id = latest.assessment_id AND assessment_submissions.created_at = latest.max_created", subquery).
		Where("assessment_submissions.user_id = ?", userID).
		Order("assessment_submissions.created_at DESC").
		Order("assessment_submissions.id DESC").
		Find(&submissions).Error

	if err != nil {
		return nil, err
	}

	return FirstPerAssessment(submissions), nil
}

// FirstPerAssessment 保留每个测评第一次出现的记录，输入需已排好序
func FirstPerAssessment(submissions []model.AssessmentSubmission) []model.AssessmentSubmission {
	seen := make(map[uint]bool, len(submissions))
	out := submissions[:0]
	for _, sub := range submissions {
		if seen[sub.AssessmentID] {
			continue
		}
		seen[sub.AssessmentID] = true
		out = append(out, sub)
	}
	return out
}

func (r *SubmissionRepository) TotalsByUser(ctx context.Context, userID uint) (*StudentTotals, error) {
	var totals StudentTotals
	err := r.DB.WithContext(ctx).Model(&model.AssessmentSubmission{}).
		Select("COUNT(*) AS submissions, " +
			"COALESCE(AVG(score), 0) AS average_score, " +
			"COALESCE(SUM(time_spent), 0) AS total_time_spent").
		Where("user_id = ?", userID).
		Scan(&totals).Error
	if err != nil {
		return nil, err
	}
	return &totals, nil
}
