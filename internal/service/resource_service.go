package service

import (
	"context"
	"errors"

	"eng_assess_backend/internal/model"
	"eng_assess_backend/internal/util"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// latestResourcesLimit 管理端资源列表只展示最近的若干条
const latestResourcesLimit = 9

type ResourceRequest struct {
	Title       string             `json:"title" binding:"required"`
	Description string             `json:"description" binding:"required"`
	Type        model.ResourceType `json:"type" binding:"required,oneof=video article book exercise"`
	Category    string             `json:"category" binding:"required"`
	Difficulty  int                `json:"difficulty" binding:"required,min=1,max=5"`
	URL         string             `json:"url" binding:"required"`
	Tags        []string           `json:"tags"`
	Author      string             `json:"author"`
	Thumbnail   string             `json:"thumbnail"`
	Duration    float64            `json:"duration" binding:"min=0"`
}

type ResourceStore interface {
	Create(ctx context.Context, resource *model.Resource) error
	FindByID(ctx context.Context, id uint) (*model.Resource, error)
	ListByAssessment(ctx context.Context, assessmentID uint) ([]model.Resource, error)
	Latest(ctx context.Context, limit int) ([]model.Resource, error)
	Update(ctx context.Context, resource *model.Resource) error
	Delete(ctx context.Context, id uint) error
}

type AssessmentFinder interface {
	FindByID(ctx context.Context, id uint) (*model.Assessment, error)
}

type ResourceService struct {
	Resources   ResourceStore
	Assessments AssessmentFinder
}

func NewResourceService(resources ResourceStore, assessments AssessmentFinder) *ResourceService {
	return &ResourceService{
		Resources:   resources,
		Assessments: assessments,
	}
}

func (req *ResourceRequest) apply(r *model.Resource) {
	r.Title = req.Title
	r.Description = req.Description
	r.Type = req.Type
	r.Category = req.Category
	r.Difficulty = req.Difficulty
	r.URL = req.URL
	r.Tags = datatypes.JSONSlice[string](req.Tags)
	r.Author = req.Author
	r.Thumbnail = req.Thumbnail
	r.Duration = req.Duration
}

func (s *ResourceService) notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return util.ErrResourceNotFound
	}
	return err
}

// Create 资源必须挂在已存在的测评下
func (s *ResourceService) Create(ctx context.Context, assessmentID uint, req *ResourceRequest, createdBy uint) (*model.Resource, error) {
	if _, err := s.Assessments.FindByID(ctx, assessmentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrAssessmentNotFound
		}
		return nil, err
	}

	resource := &model.Resource{
		AssessmentID: assessmentID,
		CreatedBy:    createdBy,
	}
	req.apply(resource)

	if err := s.Resources.Create(ctx, resource); err != nil {
		return nil, err
	}
	return resource, nil
}

func (s *ResourceService) ListByAssessment(ctx context.Context, assessmentID uint) ([]model.Resource, error) {
	return s.Resources.ListByAssessment(ctx, assessmentID)
}

func (s *ResourceService) Latest(ctx context.Context) ([]model.Resource, error) {
	return s.Resources.Latest(ctx, latestResourcesLimit)
}

func (s *ResourceService) Get(ctx context.Context, id uint) (*model.Resource, error) {
	resource, err := s.Resources.FindByID(ctx, id)
	if err != nil {
		return nil, s.notFound(err)
	}
	return resource, nil
}

func (s *ResourceService) Update(ctx context.Context, id uint, req *ResourceRequest) (*model.Resource, error) {
	resource, err := s.Resources.FindByID(ctx, id)
	if err != nil {
		return nil, s.notFound(err)
	}

	req.apply(resource)
	if err := s.Resources.Update(ctx, resource); err != nil {
		return nil, s.notFound(err)
	}
	return resource, nil
}

func (s *ResourceService) Delete(ctx context.Context, id uint) error {
	if err := s.Resources.Delete(ctx, id); err != nil {
		return s.notFound(err)
	}
	return nil
}
