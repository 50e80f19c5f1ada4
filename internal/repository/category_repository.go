package repository

import (
	"context"
	"strings"

	"eng_assess_backend/internal/model"

	"gorm.io/gorm"
)

type CategoryRepository struct {
	DB *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{DB: db}
}

// escapeLike 转义 LIKE 通配符
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func (r *CategoryRepository) Create(ctx context.Context, category *model.Category) error {
	return r.DB.WithContext(ctx).Create(category).Error
}

func (r *CategoryRepository) FindByID(ctx context.Context, id uint) (*model.Category, error) {
	var category model.Category
	err := r.DB.WithContext(ctx).First(&category, id).Error
	return &category, err
}

// List 按难度排序
func (r *CategoryRepository) List(ctx context.Context) ([]model.Category, error) {
	var categories []model.Category
	err := r.DB.WithContext(ctx).Order("level ASC, id ASC").Find(&categories).Error
	return categories, err
}

func (r *CategoryRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.Category{}).Count(&count).Error
	return count, err
}

func (r *CategoryRepository) Update(ctx context.Context, category *model.Category) error {
	result := r.DB.WithContext(ctx).Model(category).
		Select("name", "description", "engineering_field", "level", "topics", "recommended_duration", "resource_url", "video_resources").
		Updates(category)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *CategoryRepository) Delete(ctx context.Context, id uint) error {
	result := r.DB.WithContext(ctx).Delete(&model.Category{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// FindByFieldAndLevel 名称包含工程方向（不区分大小写）且难度一致的分类
func (r *CategoryRepository) FindByFieldAndLevel(ctx context.Context, field string, level model.Level) ([]model.Category, error) {
	var categories []model.Category
	err := r.DB.WithContext(ctx).
		Where("LOWER(name) LIKE ? AND level = ?", "%"+escapeLike(strings.ToLower(field))+"%", level).
		Order("id ASC").
		Find(&categories).Error
	return categories, err
}

// BeginnerCourses 名称匹配任一方向的入门分类
func (r *CategoryRepository) BeginnerCourses(ctx context.Context, fields []string) ([]model.Category, error) {
	var categories []model.Category

	match := r.DB.Where("1 = 0")
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		match = match.Or("LOWER(name) LIKE ?", "%"+escapeLike(strings.ToLower(f))+"%")
	}

	err := r.DB.WithContext(ctx).
		Select("id", "name", "description", "recommended_duration", "video_resources").
		Where("level = ?", model.Beginner).
		Where(match).
		Order("id ASC").
		Find(&categories).Error
	return categories, err
}
