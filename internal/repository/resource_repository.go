package repository

import (
	"context"

	"eng_assess_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ResourceRepository struct {
	DB *gorm.DB
}

func NewResourceRepository(db *gorm.DB) *ResourceRepository {
	return &ResourceRepository{DB: db}
}

// 只带出测评标题
func preloadAssessmentTitle(db *gorm.DB) *gorm.DB {
	return db.Preload("Assessment", func(tx *gorm.DB) *gorm.DB {
		return tx.Unscoped().Select("id", "title")
	})
}

func (r *ResourceRepository) Create(ctx context.Context, resource *model.Resource) error {
	return r.DB.WithContext(ctx).Create(resource).Error
}

func (r *ResourceRepository) FindByID(ctx context.Context, id uint) (*model.Resource, error) {
	var resource model.Resource
	err := preloadAssessmentTitle(r.DB.WithContext(ctx)).First(&resource, id).Error
	return &resource, err
}

func (r *ResourceRepository) ListByAssessment(ctx context.Context, assessmentID uint) ([]model.Resource, error) {
	var resources []model.Resource
	err := r.DB.WithContext(ctx).
		Where("assessment_id = ?", assessmentID).
		Order("created_at DESC").
		Find(&resources).Error
	return resources, err
}

// Latest 最近创建的若干资源
func (r *ResourceRepository) Latest(ctx context.Context, limit int) ([]model.Resource, error) {
	var resources []model.Resource
	err := preloadAssessmentTitle(r.DB.WithContext(ctx)).
		Order("created_at DESC").
		Limit(limit).
		Find(&resources).Error
	return resources, err
}

func (r *ResourceRepository) Update(ctx context.Context, resource *model.Resource) error {
	result := r.DB.WithContext(ctx).Model(resource).
		Omit(clause.Associations).
		Select("title", "description", "type", "category", "difficulty", "url", "tags", "author", "thumbnail", "duration").
		Updates(resource)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *ResourceRepository) Delete(ctx context.Context, id uint) error {
	result := r.DB.WithContext(ctx).Delete(&model.Resource{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
