package controller

import (
	"errors"

	"eng_assess_backend/internal/util"

	"github.com/gin-gonic/gin"
)

var notFoundErrors = []error{
	util.ErrAssessmentNotFound,
	util.ErrCategoryNotFound,
	util.ErrResourceNotFound,
}

// respondError 把领域错误映射为对应状态码，其余按 500 处理
func respondError(c *gin.Context, message string, err error) {
	for _, target := range notFoundErrors {
		if errors.Is(err, target) {
			util.NotFound(c, target.Error())
			return
		}
	}

	switch {
	case errors.Is(err, util.ErrInvalidFileType):
		util.BadRequest(c, err.Error())
	case errors.Is(err, util.ErrEmptyAssessment):
		util.LogInternalError(c, "Assessment is misconfigured", err)
	default:
		util.LogInternalError(c, message, err)
	}
}

// currentUserID 认证中间件之后调用
func currentUserID(c *gin.Context) uint {
	if claims := util.GetUserFromContext(c); claims != nil {
		return claims.UserID
	}
	return 0
}
