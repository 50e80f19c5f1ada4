package service

import (
	"context"
	"errors"

	"eng_assess_backend/internal/model"
	"eng_assess_backend/internal/util"
	"eng_assess_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type CategoryRequest struct {
	Name                string                `json:"name" binding:"required"`
	Description         string                `json:"description"`
	EngineeringField    string                `json:"engineeringField" binding:"required"`
	Level               model.Level           `json:"level" binding:"required,level"`
	Topics              []string              `json:"topics"`
	RecommendedDuration int                   `json:"recommendedDuration" binding:"min=0"`
	ResourceURL         string                `json:"resourceUrl" binding:"omitempty,url"`
	VideoResources      []model.VideoResource `json:"videoResources" binding:"omitempty,dive"`
}

// CategorySummary 排查推荐问题时查看的分类概要
type CategorySummary struct {
	Name        string      `json:"name"`
	Field       string      `json:"field"`
	Level       model.Level `json:"level"`
	VideosCount int         `json:"videosCount"`
}

type CategoryCheck struct {
	Count      int               `json:"count"`
	Categories []CategorySummary `json:"categories"`
}

type SeedResult struct {
	Message    string           `json:"message"`
	Count      int64            `json:"count"`
	Categories []model.Category `json:"categories,omitempty"`
}

type CategoryStore interface {
	Create(ctx context.Context, category *model.Category) error
	FindByID(ctx context.Context, id uint) (*model.Category, error)
	List(ctx context.Context) ([]model.Category, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, category *model.Category) error
	Delete(ctx context.Context, id uint) error
	BeginnerCourses(ctx context.Context, fields []string) ([]model.Category, error)
}

type CategoryService struct {
	Categories CategoryStore
	Reports    ReportInvalidator
	Defaults   func() []model.Category
}

func NewCategoryService(categories CategoryStore, reports ReportInvalidator, defaults func() []model.Category) *CategoryService {
	return &CategoryService{
		Categories: categories,
		Reports:    reports,
		Defaults:   defaults,
	}
}

func (req *CategoryRequest) apply(c *model.Category) {
	c.Name = req.Name
	c.Description = req.Description
	c.EngineeringField = req.EngineeringField
	c.Level = req.Level
	c.Topics = datatypes.JSONSlice[string](req.Topics)
	c.RecommendedDuration = req.RecommendedDuration
	c.ResourceURL = req.ResourceURL
	c.VideoResources = datatypes.JSONSlice[model.VideoResource](req.VideoResources)
}

func (s *CategoryService) List(ctx context.Context) ([]model.Category, error) {
	return s.Categories.List(ctx)
}

func (s *CategoryService) Create(ctx context.Context, req *CategoryRequest) (*model.Category, error) {
	category := &model.Category{}
	req.apply(category)
	if err := s.Categories.Create(ctx, category); err != nil {
		return nil, err
	}
	s.Reports.Invalidate(ctx)
	return category, nil
}

func (s *CategoryService) Update(ctx context.Context, id uint, req *CategoryRequest) (*model.Category, error) {
	category, err := s.Categories.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCategoryNotFound
		}
		return nil, err
	}

	req.apply(category)
	if err := s.Categories.Update(ctx, category); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCategoryNotFound
		}
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) Delete(ctx context.Context, id uint) error {
	if err := s.Categories.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrCategoryNotFound
		}
		return err
	}
	s.Reports.Invalidate(ctx)
	return nil
}

func (s *CategoryService) Check(ctx context.Context) (*CategoryCheck, error) {
	categories, err := s.Categories.List(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]CategorySummary, 0, len(categories))
	for _, c := range categories {
		summaries = append(summaries, CategorySummary{
			Name:        c.Name,
			Field:       c.EngineeringField,
			Level:       c.Level,
			VideosCount: len(c.VideoResources),
		})
	}
	return &CategoryCheck{Count: len(categories), Categories: summaries}, nil
}

// Initialize 分类为空时写入默认数据，已有数据时返回 ErrCategoriesExist 与现有数量
func (s *CategoryService) Initialize(ctx context.Context) (*SeedResult, error) {
	count, err := s.Categories.Count(ctx)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return &SeedResult{Message: util.ErrCategoriesExist.Error(), Count: count}, util.ErrCategoriesExist
	}

	categories := s.Defaults()
	for i := range categories {
		if err := s.Categories.Create(ctx, &categories[i]); err != nil {
			return nil, err
		}
	}
	s.Reports.Invalidate(ctx)

	logger.Log.Info("Categories initialized", zap.Int("count", len(categories)))
	return &SeedResult{
		Message:    "Categories initialized successfully",
		Count:      int64(len(categories)),
		Categories: categories,
	}, nil
}

func (s *CategoryService) BeginnerCourses(ctx context.Context, fields []string) ([]model.Category, error) {
	return s.Categories.BeginnerCourses(ctx, fields)
}
