package controller

import (
	"errors"
	"strings"

	"eng_assess_backend/internal/service"
	"eng_assess_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// CategoryController 管理端学习路径分类
type CategoryController struct {
	CategoryService *service.CategoryService
}

func NewCategoryController(categoryService *service.CategoryService) *CategoryController {
	return &CategoryController{CategoryService: categoryService}
}

// List godoc
// @Summary 分类列表
// @Tags 管理-分类
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} model.Category
// @Router /dashboard/categories [get]
func (c *CategoryController) List(ctx *gin.Context) {
	categories, err := c.CategoryService.List(ctx.Request.Context())
	if err != nil {
		respondError(ctx, "Error fetching categories", err)
		return
	}
	util.Success(ctx, categories)
}

// Create godoc
// @Summary 创建分类
// @Tags 管理-分类
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.CategoryRequest true "分类"
// @Success 201 {object} model.Category
// @Failure 400 {object} util.ValidationErrorResponse
// @Router /dashboard/categories [post]
func (c *CategoryController) Create(ctx *gin.Context) {
	var req service.CategoryRequest
	if !util.BindJSON(ctx, &req) {
		return
	}

	category, err := c.CategoryService.Create(ctx.Request.Context(), &req)
	if err != nil {
		respondError(ctx, "Error creating category", err)
		return
	}
	util.Created(ctx, category)
}

// Update godoc
// @Summary 更新分类
// @Tags 管理-分类
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "分类ID"
// @Param body body service.CategoryRequest true "分类"
// @Success 200 {object} model.Category
// @Failure 404 {object} util.ErrorResponse
// @Router /dashboard/categories/{id} [put]
func (c *CategoryController) Update(ctx *gin.Context) {
	id, ok := util.ParseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req service.CategoryRequest
	if !util.BindJSON(ctx, &req) {
		return
	}

	category, err := c.CategoryService.Update(ctx.Request.Context(), id, &req)
	if err != nil {
		respondError(ctx, "Error updating category", err)
		return
	}
	util.Success(ctx, category)
}

// Delete godoc
// @Summary 删除分类
// @Tags 管理-分类
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "分类ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} util.ErrorResponse
// @Router /dashboard/categories/{id} [delete]
func (c *CategoryController) Delete(ctx *gin.Context) {
	id, ok := util.ParseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.CategoryService.Delete(ctx.Request.Context(), id); err != nil {
		respondError(ctx, "Error deleting category", err)
		return
	}
	util.Success(ctx, gin.H{"message": "Category deleted successfully"})
}

// Init godoc
// @Summary 初始化默认分类
// @Tags 管理-分类
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} service.SeedResult
// @Router /dashboard/categories/init [post]
func (c *CategoryController) Init(ctx *gin.Context) {
	result, err := c.CategoryService.Initialize(ctx.Request.Context())
	if err != nil && !errors.Is(err, util.ErrCategoriesExist) {
		util.LogInternalError(ctx, "Error initializing categories", err)
		return
	}
	util.Success(ctx, result)
}

// BeginnerCourses godoc
// @Summary 入门课程
// @Description 名称匹配任一方向的 beginner 分类
// @Tags 管理-分类
// @Produce json
// @Security ApiKeyAuth
// @Param fields query string true "逗号分隔的方向"
// @Success 200 {array} model.Category
// @Failure 400 {object} util.ErrorResponse
// @Router /dashboard/categories/beginner-courses [get]
func (c *CategoryController) BeginnerCourses(ctx *gin.Context) {
	raw := strings.TrimSpace(ctx.Query("fields"))
	if raw == "" {
		util.BadRequest(ctx, "fields is required")
		return
	}

	courses, err := c.CategoryService.BeginnerCourses(ctx.Request.Context(), strings.Split(raw, ","))
	if err != nil {
		respondError(ctx, "Error fetching beginner courses", err)
		return
	}
	util.Success(ctx, courses)
}
