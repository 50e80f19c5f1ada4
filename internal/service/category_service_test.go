package service

import (
	"context"
	"errors"
	"testing"

	"eng_assess_backend/internal/model"
	"eng_assess_backend/internal/util"

	"gorm.io/gorm"
)

type stubCategories struct {
	items []model.Category
}

func (s *stubCategories) Create(_ context.Context, c *model.Category) error {
	c.ID = uint(len(s.items) + 1)
	s.items = append(s.items, *c)
	return nil
}

func (s *stubCategories) FindByID(_ context.Context, id uint) (*model.Category, error) {
	for i := range s.items {
		if s.items[i].ID == id {
			c := s.items[i]
			return &c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubCategories) List(context.Context) ([]model.Category, error) {
	return s.items, nil
}

func (s *stubCategories) Count(context.Context) (int64, error) {
	return int64(len(s.items)), nil
}

func (s *stubCategories) Update(_ context.Context, c *model.Category) error {
	for i := range s.items {
		if s.items[i].ID == c.ID {
			s.items[i] = *c
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (s *stubCategories) Delete(_ context.Context, id uint) error {
	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (s *stubCategories) BeginnerCourses(context.Context, []string) ([]model.Category, error) {
	return nil, nil
}

func defaults() []model.Category {
	return []model.Category{
		{Name: "Computer Science Fundamentals", Level: model.Beginner},
		{Name: "Advanced Programming", Level: model.Intermediate},
	}
}

func TestInitializeSeedsOnce(t *testing.T) {
	store := &stubCategories{}
	inv := &countingInvalidator{}
	svc := NewCategoryService(store, inv, defaults)
	ctx := context.Background()

	got, err := svc.Initialize(ctx)
	if err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	if got.Count != 2 || len(store.items) != 2 {
		t.Fatalf("seeded %d, stored %d", got.Count, len(store.items))
	}

	again, err := svc.Initialize(ctx)
	if !errors.Is(err, util.ErrCategoriesExist) {
		t.Fatalf("err = %v, want ErrCategoriesExist", err)
	}
	if again.Count != 2 || again.Message != "Categories already exist" {
		t.Errorf("second result = %+v", again)
	}
	if len(store.items) != 2 {
		t.Errorf("categories duplicated: %d", len(store.items))
	}
	if inv.calls != 1 {
		t.Errorf("invalidations = %d, want 1", inv.calls)
	}
}

func TestCheckSummarizesCategories(t *testing.T) {
	store := &stubCategories{items: []model.Category{{
		Name:             "Computer Science Fundamentals",
		EngineeringField: "Computer Science",
		Level:            model.Beginner,
		VideoResources:   []model.VideoResource{{Title: "a"}, {Title: "b"}},
	}}}

	got, err := NewCategoryService(store, &countingInvalidator{}, defaults).Check(context.Background())
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if got.Count != 1 || got.Categories[0].VideosCount != 2 || got.Categories[0].Field != "Computer Science" {
		t.Errorf("check = %+v", got)
	}
}

func TestUpdateMissingCategory(t *testing.T) {
	svc := NewCategoryService(&stubCategories{}, &countingInvalidator{}, defaults)
	_, err := svc.Update(context.Background(), 5, &CategoryRequest{Name: "x", Level: model.Beginner})
	if !errors.Is(err, util.ErrCategoryNotFound) {
		t.Fatalf("err = %v, want ErrCategoryNotFound", err)
	}
}
