package controller

import (
	"errors"

	"eng_assess_backend/internal/service"
	"eng_assess_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// UserController 管理端学生管理
type UserController struct {
	UserService *service.UserService
}

func NewUserController(userService *service.UserService) *UserController {
	return &UserController{UserService: userService}
}

// ListStudents godoc
// @Summary 学生列表
// @Tags 管理-学生
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} model.User
// @Router /dashboard/students [get]
func (c *UserController) ListStudents(ctx *gin.Context) {
	students, err := c.UserService.ListStudents(ctx.Request.Context())
	if err != nil {
		util.LogInternalError(ctx, "Error fetching students", err)
		return
	}
	util.Success(ctx, students)
}

// DeleteStudent godoc
// @Summary 删除学生
// @Description 只能删除学生账号
// @Tags 管理-学生
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "用户ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} util.ErrorResponse
// @Failure 404 {object} util.ErrorResponse
// @Router /dashboard/students/{id} [delete]
func (c *UserController) DeleteStudent(ctx *gin.Context) {
	id, ok := util.ParseIDParam(ctx, "id")
	if !ok {
		return
	}

	err := c.UserService.DeleteStudent(ctx.Request.Context(), id)
	switch {
	case err == nil:
		util.Success(ctx, gin.H{"message": "Student deleted successfully"})
	case errors.Is(err, util.ErrUserNotFound):
		util.NotFound(ctx, "Student not found")
	case errors.Is(err, util.ErrNotStudent):
		util.BadRequest(ctx, err.Error())
	default:
		util.LogInternalError(ctx, "Error deleting student", err)
	}
}
