package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"eng_assess_backend/internal/config"
	"eng_assess_backend/internal/model"
	"eng_assess_backend/internal/util"
	"eng_assess_backend/pkg/logger"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type RegisterRequest struct {
	Username string         `json:"username" binding:"required"`
	Email    string         `json:"email" binding:"required,email"`
	Password string         `json:"password" binding:"required,min=6"`
	Role     model.UserRole `json:"role" binding:"omitempty,oneof=student admin"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse 注册与登录的返回体
type AuthResponse struct {
	Success bool        `json:"success"`
	User    *model.User `json:"user"`
	Token   string      `json:"token"`
}

// FieldErrors 注册时的字段级冲突
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, m := range e {
		msgs = append(msgs, m)
	}
	return strings.Join(msgs, "; ")
}

type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id uint) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByName(ctx context.Context, name string) (*model.User, error)
	UpdateLastActive(ctx context.Context, id uint, at time.Time) error
}

type AuthService struct {
	Users UserStore
	Cfg   *config.Config
	Now   func() time.Time
}

func NewAuthService(users UserStore, cfg *config.Config) *AuthService {
	return &AuthService{
		Users: users,
		Cfg:   cfg,
		Now:   time.Now,
	}
}

func (s *AuthService) exists(err error) (bool, error) {
	if err == nil {
		return true, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return false, err
}

// conflicts 查询邮箱与用户名是否已被占用
func (s *AuthService) conflicts(ctx context.Context, email, username string) (FieldErrors, error) {
	conflicts := FieldErrors{}

	_, err := s.Users.FindByEmail(ctx, email)
	found, err := s.exists(err)
	if err != nil {
		return nil, err
	}
	if found {
		conflicts["email"] = util.ErrEmailRegistered.Error()
	}

	_, err = s.Users.FindByName(ctx, username)
	found, err = s.exists(err)
	if err != nil {
		return nil, err
	}
	if found {
		conflicts["username"] = util.ErrUsernameTaken.Error()
	}
	return conflicts, nil
}

// Register 邮箱与用户名都不能重复，冲突时返回 FieldErrors
func (s *AuthService) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	username := strings.TrimSpace(req.Username)

	conflicts, err := s.conflicts(ctx, email, username)
	if err != nil {
		return nil, err
	}
	if len(conflicts) > 0 {
		return nil, conflicts
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	role := req.Role
	if role == "" {
		role = model.Student
	}

	user := &model.User{
		Name:       username,
		Email:      email,
		Password:   string(hashedPassword),
		Role:       role,
		LastActive: s.Now(),
	}
	if err := s.Users.Create(ctx, user); err != nil {
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, err
		}
		// 并发注册越过了前面的检查，由唯一索引兜底
		conflicts, lookupErr := s.conflicts(ctx, email, username)
		if lookupErr != nil {
			return nil, lookupErr
		}
		if len(conflicts) == 0 {
			conflicts["username"] = util.ErrUsernameTaken.Error()
		}
		return nil, conflicts
	}

	token, err := util.GenerateJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
	if err != nil {
		return nil, err
	}

	logger.Log.Info("User registered", zap.Uint("user_id", user.ID), zap.String("role", string(user.Role)))
	return &AuthResponse{Success: true, User: user, Token: token}, nil
}

// Login 校验密码并刷新最近活跃时间
func (s *AuthService) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	user, err := s.Users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, util.ErrInvalidCredentials
	}

	now := s.Now()
	if err := s.Users.UpdateLastActive(ctx, user.ID, now); err != nil {
		return nil, err
	}
	user.LastActive = now

	token, err := util.GenerateJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{Success: true, User: user, Token: token}, nil
}

// ResolveUser 认证中间件用来确认令牌对应的用户仍然存在
func (s *AuthService) ResolveUser(ctx context.Context, id uint) (*model.User, error) {
	user, err := s.Users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
