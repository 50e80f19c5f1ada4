package service

import (
	"context"
	"errors"

	"eng_assess_backend/internal/model"
	"eng_assess_backend/internal/util"
	"eng_assess_backend/pkg/logger"
	"eng_assess_backend/pkg/monitoring"
	"eng_assess_backend/pkg/tracing"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AssessmentRequest 创建测评
type AssessmentRequest struct {
	Title            string                 `json:"title" binding:"required"`
	EngineeringField model.EngineeringField `json:"engineeringField" binding:"required,engfield"`
	Level            model.Level            `json:"level" binding:"required,level"`
	Duration         int                    `json:"duration" binding:"required,min=1"`
	Questions        []model.Question       `json:"questions" binding:"required,min=1,dive"`
}

// UpdateAssessmentRequest 工程方向创建后不可修改
type UpdateAssessmentRequest struct {
	Title     string           `json:"title" binding:"required"`
	Level     model.Level      `json:"level" binding:"required,level"`
	Duration  int              `json:"duration" binding:"required,min=1"`
	Questions []model.Question `json:"questions" binding:"required,min=1,dive"`
}

// SubmitRequest 学生提交答案，answers 为 题号 -> 选项下标
type SubmitRequest struct {
	Answers      model.AnswerSheet `json:"answers"`
	TimeSpent    int               `json:"timeSpent" binding:"min=0"`
	IsAutoSubmit bool              `json:"isAutoSubmit"`
}

type SubmitDetails struct {
	TotalQuestions int    `json:"totalQuestions"`
	CorrectAnswers int    `json:"correctAnswers"`
	TimeSpent      int    `json:"timeSpent"`
	SubmissionID   string `json:"submissionId"`
}

type SubmitResult struct {
	Success bool                   `json:"success"`
	Message string                 `json:"message"`
	Score   int                    `json:"score"`
	Status  model.SubmissionStatus `json:"status"`
	Details SubmitDetails          `json:"details"`
}

type AssessmentStore interface {
	Create(ctx context.Context, assessment *model.Assessment) error
	FindByID(ctx context.Context, id uint) (*model.Assessment, error)
	List(ctx context.Context) ([]model.Assessment, error)
	Update(ctx context.Context, assessment *model.Assessment) error
	Delete(ctx context.Context, id uint) error
}

type SubmissionWriter interface {
	Create(ctx context.Context, submission *model.AssessmentSubmission) error
}

// ReportInvalidator 提交后需要让统计缓存失效
type ReportInvalidator interface {
	Invalidate(ctx context.Context)
}

type AssessmentService struct {
	Assessments AssessmentStore
	Submissions SubmissionWriter
	Reports     ReportInvalidator
}

func NewAssessmentService(assessments AssessmentStore, submissions SubmissionWriter, reports ReportInvalidator) *AssessmentService {
	return &AssessmentService{
		Assessments: assessments,
		Submissions: submissions,
		Reports:     reports,
	}
}

func (s *AssessmentService) find(ctx context.Context, id uint) (*model.Assessment, error) {
	assessment, err := s.Assessments.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrAssessmentNotFound
		}
		return nil, err
	}
	return assessment, nil
}

func (s *AssessmentService) Create(ctx context.Context, req *AssessmentRequest, createdBy uint) (*model.Assessment, error) {
	assessment := &model.Assessment{
		Title:            req.Title,
		EngineeringField: req.EngineeringField,
		Level:            req.Level,
		Duration:         req.Duration,
		Questions:        datatypes.JSONSlice[model.Question](req.Questions),
		CreatedBy:        createdBy,
	}
	if err := s.Assessments.Create(ctx, assessment); err != nil {
		return nil, err
	}
	s.Reports.Invalidate(ctx)
	return assessment, nil
}

// Get 管理端视图，包含正确答案
func (s *AssessmentService) Get(ctx context.Context, id uint) (*model.Assessment, error) {
	return s.find(ctx, id)
}

// List 管理端列表，最新在前
func (s *AssessmentService) List(ctx context.Context) ([]model.Assessment, error) {
	return s.Assessments.List(ctx)
}

func (s *AssessmentService) Update(ctx context.Context, id uint, req *UpdateAssessmentRequest) (*model.Assessment, error) {
	assessment, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	assessment.Title = req.Title
	assessment.Level = req.Level
	assessment.Duration = req.Duration
	assessment.Questions = datatypes.JSONSlice[model.Question](req.Questions)

	if err := s.Assessments.Update(ctx, assessment); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrAssessmentNotFound
		}
		return nil, err
	}
	s.Reports.Invalidate(ctx)
	return assessment, nil
}

func (s *AssessmentService) Delete(ctx context.Context, id uint) error {
	if err := s.Assessments.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrAssessmentNotFound
		}
		return err
	}
	s.Reports.Invalidate(ctx)
	return nil
}

// ListForStudent 去掉正确答案
func (s *AssessmentService) ListForStudent(ctx context.Context) ([]model.StudentAssessment, error) {
	assessments, err := s.Assessments.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]model.StudentAssessment, 0, len(assessments))
	for i := range assessments {
		out = append(out, assessments[i].ForStudent())
	}
	return out, nil
}

func (s *AssessmentService) Start(ctx context.Context, id uint) (*model.StudentAssessment, error) {
	assessment, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	view := assessment.ForStudent()
	return &view, nil
}

// Submit 判分并写入一条新的提交记录，测评本身不做修改。
// 服务端不校验作答时长，超时只记录日志
func (s *AssessmentService) Submit(ctx context.Context, userID, assessmentID uint, req *SubmitRequest) (*SubmitResult, error) {
	ctx, span := tracing.StartSpan(ctx, "AssessmentService.Submit")
	defer span.End()

	assessment, err := s.find(ctx, assessmentID)
	if err != nil {
		return nil, err
	}

	answers := req.Answers
	if answers == nil {
		answers = model.AnswerSheet{}
	}

	result, err := ScoreAnswers(assessment.Questions, answers)
	if err != nil {
		logger.Log.Error("Assessment cannot be scored",
			zap.Uint("assessment_id", assessment.ID),
			zap.Error(err),
		)
		return nil, err
	}

	if limit := assessment.Duration * 60; limit > 0 && req.TimeSpent > limit {
		logger.Log.Warn("Submission exceeded time limit",
			zap.Uint("user_id", userID),
			zap.Uint("assessment_id", assessment.ID),
			zap.Int("time_spent", req.TimeSpent),
			zap.Int("limit_seconds", limit),
		)
	}

	submission := &model.AssessmentSubmission{
		UserID:         userID,
		AssessmentID:   assessment.ID,
		Answers:        datatypes.NewJSONType(answers),
		Score:          result.Score,
		Status:         StatusFor(req.IsAutoSubmit),
		TimeSpent:      req.TimeSpent,
		TotalQuestions: result.TotalQuestions,
		CorrectAnswers: result.CorrectAnswers,
	}
	if err := s.Submissions.Create(ctx, submission); err != nil {
		return nil, err
	}

	span.SetAttributes(
		attribute.Int("score", result.Score),
		attribute.String("status", string(submission.Status)),
	)
	monitoring.RecordSubmission(string(submission.Status), result.Score)
	s.Reports.Invalidate(ctx)

	logger.Log.Info("Assessment submitted",
		zap.Uint("user_id", userID),
		zap.Uint("assessment_id", assessment.ID),
		zap.Int("score", result.Score),
		zap.String("status", string(submission.Status)),
	)
	if result.Score < PassingScore {
		logger.Log.Debug("Low score detected",
			zap.String("field", string(assessment.EngineeringField)),
			zap.String("level", string(assessment.Level)),
		)
	}

	return &SubmitResult{
		Success: true,
		Message: "Assessment submitted successfully",
		Score:   result.Score,
		Status:  submission.Status,
		Details: SubmitDetails{
			TotalQuestions: result.TotalQuestions,
			CorrectAnswers: result.CorrectAnswers,
			TimeSpent:      req.TimeSpent,
			SubmissionID:   submission.ID,
		},
	}, nil
}
