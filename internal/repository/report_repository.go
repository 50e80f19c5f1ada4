package repository

import (
	"context"
	"time"

	"eng_assess_backend/internal/model"

	"gorm.io/gorm"
)

// SubmissionTotals 全部提交的分数汇总
type SubmissionTotals struct {
	Total   int64
	Average float64
	Highest int
	Lowest  int
}

// AssessmentAggregate 单个测评的提交统计，通过率在服务层计算
type AssessmentAggregate struct {
	ID           uint
	Title        string
	Submissions  int64
	AverageScore float64
	Passed       int64
}

// ReportRepository 管理端只读统计
type ReportRepository struct {
	DB *gorm.DB
}

func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{DB: db}
}

func (r *ReportRepository) SubmissionTotals(ctx context.Context) (*SubmissionTotals, error) {
	var totals SubmissionTotals
	err := r.DB.WithContext(ctx).Model(&model.AssessmentSubmission{}).
		Select("COUNT(*) AS total, " +
			"COALESCE(AVG(score), 0) AS average, " +
			"COALESCE(MAX(score), 0) AS highest, " +
			"COALESCE(MIN(score), 0) AS lowest").
		Scan(&totals).Error
	if err != nil {
		return nil, err
	}
	return &totals, nil
}

// AssessmentBreakdown 以测评为主表左连接，没有提交的测评也会出现
func (r *ReportRepository) AssessmentBreakdown(ctx context.Context, passingScore int) ([]AssessmentAggregate, error) {
	var rows []AssessmentAggregate
	err := r.DB.WithContext(ctx).Model(&model.Assessment{}).
		Select("assessments.id AS id, assessments.title AS title, "+
			"COUNT(assessment_submissions.id) AS submissions, "+
			"COALESCE(AVG(assessment_submissions.score), 0) AS average_score, "+
			"COALESCE(SUM(CASE WHEN assessment_submissions.score >= ? THEN 1 ELSE 0 END), 0) AS passed", passingScore).
		Joins("LEFT JOIN assessment_submissions ON assessment_submissions.assessment_id = assessments.id").
		Group("assessments.id, assessments.title").
		Order("assessments.id ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *ReportRepository) CountUsersByRole(ctx context.Context, role model.UserRole) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.User{}).Where("role = ?", role).Count(&count).Error
	return count, err
}

func (r *ReportRepository) CountActiveUsers(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.User{}).Where("last_active >= ?", since).Count(&count).Error
	return count, err
}

func (r *ReportRepository) CountCategories(ctx context.Context) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.Category{}).Count(&count).Error
	return count, err
}

func (r *ReportRepository) CountAssessments(ctx context.Context) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.Assessment{}).Count(&count).Error
	return count, err
}

// CountSubmissions 返回提交总数与达到及格线的数量
func (r *ReportRepository) CountSubmissions(ctx context.Context, passingScore int) (total int64, passed int64, err error) {
	var row struct {
		Total  int64
		Passed int64
	}
	err = r.DB.WithContext(ctx).Model(&model.AssessmentSubmission{}).
		Select("COUNT(*) AS total, COALESCE(SUM(CASE WHEN score >= ? THEN 1 ELSE 0 END), 0) AS passed", passingScore).
		Scan(&row).Error
	return row.Total, row.Passed, err
}
