package repository

import (
	"context"

	"eng_assess_backend/internal/model"

	"gorm.io/gorm"
)

type AssessmentRepository struct {
	DB *gorm.DB
}

func NewAssessmentRepository(db *gorm.DB) *AssessmentRepository {
	return &AssessmentRepository{DB: db}
}

func (r *AssessmentRepository) Create(ctx context.Context, assessment *model.Assessment) error {
	return r.DB.WithContext(ctx).Create(assessment).Error
}

func (r *AssessmentRepository) FindByID(ctx context.Context, id uint) (*model.Assessment, error) {
	var assessment model.Assessment
	err := r.DB.WithContext(ctx).First(&assessment, id).Error
	return &assessment, err
}

// List 按创建时间倒序
func (r *AssessmentRepository) List(ctx context.Context) ([]model.Assessment, error) {
	var assessments []model.Assessment
	err := r.DB.WithContext(ctx).Order("created_at DESC").Find(&assessments).Error
	return assessments, err
}

// Update 仅更新标题、难度、时长与题目，工程方向创建后不变
func (r *AssessmentRepository) Update(ctx context.Context, assessment *model.Assessment) error {
	result := r.DB.WithContext(ctx).Model(assessment).
		Select("title", "level", "duration", "questions").
		Updates(assessment)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *AssessmentRepository) Delete(ctx context.Context, id uint) error {
	result := r.DB.WithContext(ctx).Delete(&model.Assessment{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
