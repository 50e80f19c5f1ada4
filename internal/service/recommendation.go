package service

import (
	"context"
	"fmt"
	"strings"

	"eng_assess_backend/internal/model"
	"eng_assess_backend/pkg/logger"
	"eng_assess_backend/pkg/monitoring"
	"eng_assess_backend/pkg/tracing"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

const (
	msgNoHistory       = "Complete some assessments to get recommendations."
	msgRecommendations = "Here are your personalized learning recommendations:"
)

// Criterion 一条推荐条件：方向、目标难度与推荐理由
type Criterion struct {
	Field  model.EngineeringField
	Level  model.Level
	Reason string
}

// Recommendation 返回给前端的推荐条目
type Recommendation struct {
	ID               uint                  `json:"id"`
	Title            string                `json:"title"`
	Description      string                `json:"description"`
	EngineeringField string                `json:"engineeringField"`
	Level            model.Level           `json:"level"`
	Topics           []string              `json:"topics"`
	Duration         int                   `json:"duration"`
	VideoResources   []model.VideoResource `json:"videoResources"`
	Reason           string                `json:"reason"`
}

type RecommendationResult struct {
	Success         bool             `json:"success"`
	Message         string           `json:"message"`
	Recommendations []Recommendation `json:"recommendations"`
}

// NextLevel beginner -> intermediate -> expert，expert 之后没有下一级
func NextLevel(level model.Level) (model.Level, bool) {
	return level.Next()
}

// BuildCriteria 高分（>=70）推荐下一难度，低分推荐同难度巩固。
// 先输出全部高分条件，再输出低分条件，组内保持提交顺序
func BuildCriteria(submissions []model.AssessmentSubmission) []Criterion {
	var high, low []Criterion

	for _, sub := range submissions {
		if sub.Assessment == nil {
			continue
		}
		a := sub.Assessment

		if sub.Score >= PassingScore {
			next, ok := NextLevel(a.Level)
			if !ok {
				continue
			}
			high = append(high, Criterion{
				Field:  a.EngineeringField,
				Level:  next,
				Reason: fmt.Sprintf("Based on your excellent score of %d%% in %s level", sub.Score, a.Level),
			})
			continue
		}

		low = append(low, Criterion{
			Field:  a.EngineeringField,
			Level:  a.Level,
			Reason: fmt.Sprintf("To improve your score of %d%%", sub.Score),
		})
	}

	return append(high, low...)
}

// ToRecommendation 分类名中括号前的部分作为方向展示
func ToRecommendation(c model.Category, reason string) Recommendation {
	topics := []string(c.Topics)
	if topics == nil {
		topics = []string{}
	}
	videos := []model.VideoResource(c.VideoResources)
	if videos == nil {
		videos = []model.VideoResource{}
	}
	return Recommendation{
		ID:               c.ID,
		Title:            c.Name,
		Description:      c.Description,
		EngineeringField: strings.TrimSpace(strings.SplitN(c.Name, "(", 2)[0]),
		Level:            c.Level,
		Topics:           topics,
		Duration:         c.RecommendedDuration,
		VideoResources:   videos,
		Reason:           reason,
	}
}

type FinishedSubmissionStore interface {
	FinishedByUser(ctx context.Context, userID uint) ([]model.AssessmentSubmission, error)
}

type CategoryMatcher interface {
	FindByFieldAndLevel(ctx context.Context, field string, level model.Level) ([]model.Category, error)
}

type RecommendationService struct {
	Submissions FinishedSubmissionStore
	Categories  CategoryMatcher
}

func NewRecommendationService(submissions FinishedSubmissionStore, categories CategoryMatcher) *RecommendationService {
	return &RecommendationService{
		Submissions: submissions,
		Categories:  categories,
	}
}

// ForUser 根据学生的已完成提交生成推荐；单条条件查询失败时跳过该条件
func (s *RecommendationService) ForUser(ctx context.Context, userID uint) (*RecommendationResult, error) {
	ctx, span := tracing.StartSpan(ctx, "RecommendationService.ForUser")
	defer span.End()

	submissions, err := s.Submissions.FinishedByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if len(submissions) == 0 {
		return &RecommendationResult{
			Success:         true,
			Message:         msgNoHistory,
			Recommendations: []Recommendation{},
		}, nil
	}

	criteria := BuildCriteria(submissions)
	logger.Log.Debug("Recommendation criteria built",
		zap.Uint("user_id", userID),
		zap.Int("submissions", len(submissions)),
		zap.Int("criteria", len(criteria)),
	)

	recommendations := make([]Recommendation, 0, len(criteria))
	for _, c := range criteria {
		matches, err := s.Categories.FindByFieldAndLevel(ctx, string(c.Field), c.Level)
		if err != nil {
			logger.Log.Warn("Category lookup failed",
				zap.String("field", string(c.Field)),
				zap.String("level", string(c.Level)),
				zap.Error(err),
			)
			continue
		}
		for _, m := range matches {
			recommendations = append(recommendations, ToRecommendation(m, c.Reason))
		}
	}

	span.SetAttributes(attribute.Int("recommendations", len(recommendations)))
	monitoring.RecordRecommendations(len(recommendations))

	return &RecommendationResult{
		Success:         true,
		Message:         msgRecommendations,
		Recommendations: recommendations,
	}, nil
}
