package controller

import (
	"net/http"

	"eng_assess_backend/internal/service"
	"eng_assess_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// ResourceController 管理端学习资源
type ResourceController struct {
	ResourceService *service.ResourceService
	ContentService  *service.ContentService
}

func NewResourceController(resourceService *service.ResourceService, contentService *service.ContentService) *ResourceController {
	return &ResourceController{
		ResourceService: resourceService,
		ContentService:  contentService,
	}
}

// CreateForAssessment godoc
// @Summary 为测评添加资源
// @Tags 管理-资源
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "测评ID"
// @Param body body service.ResourceRequest true "资源"
// @Success 201 {object} model.Resource
// @Failure 400 {object} util.ValidationErrorResponse
// @Failure 404 {object} util.ErrorResponse
// @Router /dashboard/assessments/{id}/resources [post]
func (c *ResourceController) CreateForAssessment(ctx *gin.Context) {
	id, ok := util.ParseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req service.ResourceRequest
	if !util.BindJSON(ctx, &req) {
		return
	}

	resource, err := c.ResourceService.Create(ctx.Request.Context(), id, &req, currentUserID(ctx))
	if err != nil {
		respondError(ctx, "Error adding resource", err)
		return
	}
	util.Created(ctx, resource)
}

// ListForAssessment godoc
// @Summary 测评下的资源
// @Tags 管理-资源
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "测评ID"
// @Success 200 {array} model.Resource
// @Router /dashboard/assessments/{id}/resources [get]
func (c *ResourceController) ListForAssessment(ctx *gin.Context) {
	id, ok := util.ParseIDParam(ctx, "id")
	if !ok {
		return
	}

	resources, err := c.ResourceService.ListByAssessment(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, "Error fetching resources", err)
		return
	}
	util.Success(ctx, resources)
}

// Latest godoc
// @Summary 最近添加的资源
// @Description 最多 9 条，附带所属测评标题
// @Tags 管理-资源
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} model.Resource
// @Router /dashboard/resources [get]
func (c *ResourceController) Latest(ctx *gin.Context) {
	resources, err := c.ResourceService.Latest(ctx.Request.Context())
	if err != nil {
		respondError(ctx, "Error fetching resources", err)
		return
	}
	util.Success(ctx, resources)
}

// Get godoc
// @Summary 资源详情
// @Tags 管理-资源
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "资源ID"
// @Success 200 {object} model.Resource
// @Failure 404 {object} util.ErrorResponse
// @Router /dashboard/resources/{id} [get]
func (c *ResourceController) Get(ctx *gin.Context) {
	id, ok := util.ParseIDParam(ctx, "id")
	if !ok {
		return
	}

	resource, err := c.ResourceService.Get(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, "Error fetching resource", err)
		return
	}
	util.Success(ctx, resource)
}

// Update godoc
// @Summary 更新资源
// @Tags 管理-资源
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "资源ID"
// @Param body body service.ResourceRequest true "资源"
// @Success 200 {object} model.Resource
// @Failure 404 {object} util.ErrorResponse
// @Router /dashboard/resources/{id} [put]
func (c *ResourceController) Update(ctx *gin.Context) {
	id, ok := util.ParseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req service.ResourceRequest
	if !util.BindJSON(ctx, &req) {
		return
	}

	resource, err := c.ResourceService.Update(ctx.Request.Context(), id, &req)
	if err != nil {
		respondError(ctx, "Error updating resource", err)
		return
	}
	util.Success(ctx, resource)
}

// Delete godoc
// @Summary 删除资源
// @Tags 管理-资源
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "资源ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} util.ErrorResponse
// @Router /dashboard/resources/{id} [delete]
func (c *ResourceController) Delete(ctx *gin.Context) {
	id, ok := util.ParseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.ResourceService.Delete(ctx.Request.Context(), id); err != nil {
		respondError(ctx, "Error deleting resource", err)
		return
	}
	util.Success(ctx, gin.H{"message": "Resource deleted successfully"})
}

// Upload godoc
// @Summary 上传资源文件
// @Description 图片自动生成缩略图，视频读取时长并抓取封面
// @Tags 管理-资源
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param file formData file true "资源文件"
// @Success 201 {object} service.UploadResult
// @Failure 400 {object} util.ErrorResponse
// @Router /dashboard/resources/upload [post]
func (c *ResourceController) Upload(ctx *gin.Context) {
	ctx.Request.Body = http.MaxBytesReader(ctx.Writer, ctx.Request.Body, util.MaxUploadSize)

	file, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "File is required")
		return
	}

	result, err := c.ContentService.Upload(ctx.Request.Context(), file)
	if err != nil {
		respondError(ctx, "Error uploading file", err)
		return
	}
	util.Created(ctx, result)
}
