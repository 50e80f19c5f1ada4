package service

import (
	"context"
	"errors"

	"eng_assess_backend/internal/model"
	"eng_assess_backend/internal/util"

	"gorm.io/gorm"
)

type StudentDirectory interface {
	FindByID(ctx context.Context, id uint) (*model.User, error)
	ListByRole(ctx context.Context, role model.UserRole) ([]model.User, error)
	Delete(ctx context.Context, id uint) error
}

// UserService 管理端学生管理
type UserService struct {
	Users   StudentDirectory
	Reports ReportInvalidator
}

func NewUserService(users StudentDirectory, reports ReportInvalidator) *UserService {
	return &UserService{
		Users:   users,
		Reports: reports,
	}
}

func (s *UserService) ListStudents(ctx context.Context) ([]model.User, error) {
	return s.Users.ListByRole(ctx, model.Student)
}

// DeleteStudent 只允许删除学生账号
func (s *UserService) DeleteStudent(ctx context.Context, id uint) error {
	user, err := s.Users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrUserNotFound
		}
		return err
	}
	if user.Role != model.Student {
		return util.ErrNotStudent
	}

	if err := s.Users.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrUserNotFound
		}
		return err
	}
	s.Reports.Invalidate(ctx)
	return nil
}
