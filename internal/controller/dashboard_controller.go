package controller

import (
	"errors"

	"eng_assess_backend/internal/service"
	"eng_assess_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// DashboardController 推荐与管理端统计
type DashboardController struct {
	RecommendationService *service.RecommendationService
	ReportService         *service.ReportService
	CategoryService       *service.CategoryService
}

func NewDashboardController(recommendations *service.RecommendationService, reports *service.ReportService, categories *service.CategoryService) *DashboardController {
	return &DashboardController{
		RecommendationService: recommendations,
		ReportService:         reports,
		CategoryService:       categories,
	}
}

// Recommendations godoc
// @Summary 个性化学习推荐
// @Description 高分推荐下一难度，低分推荐同难度巩固；无完成记录时返回空列表
// @Tags 仪表盘
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} service.RecommendationResult
// @Failure 500 {object} util.ErrorResponse
// @Router /dashboard/recommendations [get]
func (c *DashboardController) Recommendations(ctx *gin.Context) {
	result, err := c.RecommendationService.ForUser(ctx.Request.Context(), currentUserID(ctx))
	if err != nil {
		util.LogInternalError(ctx, "Error fetching recommendations", err)
		return
	}
	util.Success(ctx, result)
}

// Stats godoc
// @Summary 平台指标
// @Tags 仪表盘
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} service.PlatformStats
// @Failure 403 {object} util.ErrorResponse
// @Router /dashboard/stats [get]
func (c *DashboardController) Stats(ctx *gin.Context) {
	stats, err := c.ReportService.Stats(ctx.Request.Context())
	if err != nil {
		util.LogInternalError(ctx, "Error fetching stats", err)
		return
	}
	util.Success(ctx, stats)
}

// Overview godoc
// @Summary 测评总览
// @Description 全部提交的平均/最高/最低分，以及每个测评的提交数、平均分和通过率
// @Tags 仪表盘
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} service.Overview
// @Failure 403 {object} util.ErrorResponse
// @Router /dashboard/overview [get]
func (c *DashboardController) Overview(ctx *gin.Context) {
	overview, err := c.ReportService.Overview(ctx.Request.Context())
	if err != nil {
		util.LogInternalError(ctx, "Error fetching overview", err)
		return
	}
	util.Success(ctx, overview)
}

// CheckCategories godoc
// @Summary 查看分类概况
// @Tags 仪表盘
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} service.CategoryCheck
// @Router /dashboard/check-categories [get]
func (c *DashboardController) CheckCategories(ctx *gin.Context) {
	check, err := c.CategoryService.Check(ctx.Request.Context())
	if err != nil {
		util.LogInternalError(ctx, "Error checking categories", err)
		return
	}
	util.Success(ctx, check)
}

// InitializeCategories godoc
// @Summary 初始化默认分类
// @Description 分类为空时写入默认学习路径，已有数据时直接返回数量
// @Tags 仪表盘
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} service.SeedResult
// @Router /dashboard/initialize-categories [post]
func (c *DashboardController) InitializeCategories(ctx *gin.Context) {
	result, err := c.CategoryService.Initialize(ctx.Request.Context())
	if err != nil && !errors.Is(err, util.ErrCategoriesExist) {
		util.LogInternalError(ctx, "Error initializing categories", err)
		return
	}
	util.Success(ctx, result)
}
