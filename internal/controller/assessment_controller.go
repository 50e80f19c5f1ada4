package controller

import (
	"eng_assess_backend/internal/service"
	"eng_assess_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// AssessmentController 管理端测评维护
type AssessmentController struct {
	AssessmentService *service.AssessmentService
}

func NewAssessmentController(assessmentService *service.AssessmentService) *AssessmentController {
	return &AssessmentController{AssessmentService: assessmentService}
}

// List godoc
// @Summary 测评列表（含答案）
// @Tags 管理-测评
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} model.Assessment
// @Router /dashboard/assessments [get]
func (c *AssessmentController) List(ctx *gin.Context) {
	assessments, err := c.AssessmentService.List(ctx.Request.Context())
	if err != nil {
		respondError(ctx, "Error fetching assessments", err)
		return
	}
	util.Success(ctx, assessments)
}

// Create godoc
// @Summary 创建测评
// @Description 每道题四个选项，correctAnswer 必须是合法下标
// @Tags 管理-测评
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.AssessmentRequest true "测评"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} util.ValidationErrorResponse
// @Router /dashboard/assessments [post]
func (c *AssessmentController) Create(ctx *gin.Context) {
	var req service.AssessmentRequest
	if !util.BindJSON(ctx, &req) {
		return
	}

	assessment, err := c.AssessmentService.Create(ctx.Request.Context(), &req, currentUserID(ctx))
	if err != nil {
		respondError(ctx, "Error creating assessment", err)
		return
	}

	util.Created(ctx, gin.H{
		"message":    "Assessment created successfully",
		"assessment": assessment,
	})
}

// Get godoc
// @Summary 测评详情
// @Tags 管理-测评
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "测评ID"
// @Success 200 {object} model.Assessment
// @Failure 404 {object} util.ErrorResponse
// @Router /dashboard/assessments/{id} [get]
func (c *AssessmentController) Get(ctx *gin.Context) {
	id, ok := util.ParseIDParam(ctx, "id")
	if !ok {
		return
	}

	assessment, err := c.AssessmentService.Get(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, "Error fetching assessment", err)
		return
	}
	util.Success(ctx, assessment)
}

// Update godoc
// @Summary 更新测评
// @Description 工程方向不可修改
// @Tags 管理-测评
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "测评ID"
// @Param body body service.UpdateAssessmentRequest true "测评"
// @Success 200 {object} model.Assessment
// @Failure 400 {object} util.ValidationErrorResponse
// @Failure 404 {object} util.ErrorResponse
// @Router /dashboard/assessments/{id} [put]
func (c *AssessmentController) Update(ctx *gin.Context) {
	id, ok := util.ParseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req service.UpdateAssessmentRequest
	if !util.BindJSON(ctx, &req) {
		return
	}

	assessment, err := c.AssessmentService.Update(ctx.Request.Context(), id, &req)
	if err != nil {
		respondError(ctx, "Error updating assessment", err)
		return
	}
	util.Success(ctx, assessment)
}

// Delete godoc
// @Summary 删除测评
// @Tags 管理-测评
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "测评ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} util.ErrorResponse
// @Router /dashboard/assessments/{id} [delete]
func (c *AssessmentController) Delete(ctx *gin.Context) {
	id, ok := util.ParseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.AssessmentService.Delete(ctx.Request.Context(), id); err != nil {
		respondError(ctx, "Error deleting assessment", err)
		return
	}
	util.Success(ctx, gin.H{"message": "Assessment deleted successfully"})
}
