package controller

import (
	"errors"
	"net/http"

	"eng_assess_backend/internal/service"
	"eng_assess_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	AuthService *service.AuthService
}

func NewAuthController(authService *service.AuthService) *AuthController {
	return &AuthController{AuthService: authService}
}

// Register godoc
// @Summary 注册新用户
// @Description 使用用户名、邮箱和密码注册，角色默认为 student
// @Tags 认证
// @Accept  json
// @Produce  json
// @Param   body body service.RegisterRequest true "用户注册信息"
// @Success 201 {object} service.AuthResponse "创建成功"
// @Failure 400 {object} util.ValidationErrorResponse "字段校验失败"
// @Failure 500 {object} util.ErrorResponse "服务器内部错误"
// @Router /auth/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req service.RegisterRequest
	if !util.BindJSON(ctx, &req) {
		return
	}

	resp, err := c.AuthService.Register(ctx.Request.Context(), &req)
	if err != nil {
		var conflicts service.FieldErrors
		if errors.As(err, &conflicts) {
			util.ValidationFailed(ctx, conflicts)
			return
		}
		util.LogInternalError(ctx, "Registration failed. Please try again.", err)
		return
	}

	util.Created(ctx, resp)
}

// Login godoc
// @Summary 用户登录
// @Description 校验邮箱和密码，返回 24 小时有效的令牌
// @Tags 认证
// @Accept  json
// @Produce  json
// @Param   body body service.LoginRequest true "登录信息"
// @Success 200 {object} service.AuthResponse "登录成功"
// @Failure 400 {object} util.ValidationErrorResponse "字段校验失败"
// @Failure 401 {object} util.ErrorResponse "邮箱或密码错误"
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req service.LoginRequest
	if !util.BindJSON(ctx, &req) {
		return
	}

	resp, err := c.AuthService.Login(ctx.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, util.ErrInvalidCredentials) {
			util.Error(ctx, http.StatusUnauthorized, err.Error())
			return
		}
		util.LogInternalError(ctx, "Server error", err)
		return
	}

	util.Success(ctx, resp)
}
