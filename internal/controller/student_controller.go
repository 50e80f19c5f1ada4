package controller

import (
	"eng_assess_backend/internal/service"
	"eng_assess_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// StudentController 学生端测评与历史记录
type StudentController struct {
	AssessmentService *service.AssessmentService
	StudentService    *service.StudentService
}

func NewStudentController(assessmentService *service.AssessmentService, studentService *service.StudentService) *StudentController {
	return &StudentController{
		AssessmentService: assessmentService,
		StudentService:    studentService,
	}
}

// ListAssessments godoc
// @Summary 测评列表
// @Description 返回全部测评，不含正确答案
// @Tags 学生
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} model.StudentAssessment
// @Failure 401 {object} util.ErrorResponse
// @Router /student/assessments [get]
func (c *StudentController) ListAssessments(ctx *gin.Context) {
	assessments, err := c.AssessmentService.ListForStudent(ctx.Request.Context())
	if err != nil {
		respondError(ctx, "Error fetching assessments", err)
		return
	}
	util.Success(ctx, assessments)
}

// StartAssessment godoc
// @Summary 开始测评
// @Tags 学生
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "测评ID"
// @Success 200 {object} model.StudentAssessment
// @Failure 404 {object} util.ErrorResponse
// @Router /student/assessments/{id}/start [get]
func (c *StudentController) StartAssessment(ctx *gin.Context) {
	id, ok := util.ParseIDParam(ctx, "id")
	if !ok {
		return
	}

	assessment, err := c.AssessmentService.Start(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, "Error starting assessment", err)
		return
	}
	util.Success(ctx, assessment)
}

// SubmitAssessment godoc
// @Summary 提交测评
// @Description 判分并保存一条新的提交记录；isAutoSubmit 表示倒计时结束自动提交
// @Tags 学生
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "测评ID"
// @Param body body service.SubmitRequest true "答案"
// @Success 200 {object} service.SubmitResult
// @Failure 400 {object} util.ErrorResponse
// @Failure 404 {object} util.ErrorResponse
// @Failure 500 {object} util.ErrorResponse
// @Router /student/assessments/{id}/submit [post]
func (c *StudentController) SubmitAssessment(ctx *gin.Context) {
	id, ok := util.ParseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req service.SubmitRequest
	if !util.BindJSON(ctx, &req) {
		return
	}

	result, err := c.AssessmentService.Submit(ctx.Request.Context(), currentUserID(ctx), id, &req)
	if err != nil {
		respondError(ctx, "Error submitting assessment", err)
		return
	}
	util.Success(ctx, result)
}

// Submissions godoc
// @Summary 我的提交记录
// @Description 最新在前，attemptNumber 为同一测评的第几次作答
// @Tags 学生
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} service.SubmissionView
// @Router /student/submissions [get]
func (c *StudentController) Submissions(ctx *gin.Context) {
	views, err := c.StudentService.History(ctx.Request.Context(), currentUserID(ctx))
	if err != nil {
		respondError(ctx, "Error fetching submissions", err)
		return
	}
	util.Success(ctx, views)
}

// LatestSubmissions godoc
// @Summary 每个测评最近一次提交
// @Tags 学生
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} service.SubmissionView
// @Router /student/submissions/latest [get]
func (c *StudentController) LatestSubmissions(ctx *gin.Context) {
	views, err := c.StudentService.Latest(ctx.Request.Context(), currentUserID(ctx))
	if err != nil {
		respondError(ctx, "Error fetching submissions", err)
		return
	}
	util.Success(ctx, views)
}

// Stats godoc
// @Summary 个人统计
// @Tags 学生
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} service.StudentStats
// @Router /student/stats [get]
func (c *StudentController) Stats(ctx *gin.Context) {
	stats, err := c.StudentService.Stats(ctx.Request.Context(), currentUserID(ctx))
	if err != nil {
		respondError(ctx, "Error fetching stats", err)
		return
	}
	util.Success(ctx, stats)
}
