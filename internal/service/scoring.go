package service

import (
	"math"

	"eng_assess_backend/internal/model"
	"eng_assess_backend/internal/util"
)

// PassingScore 及格线，同时用于推荐分组与通过率统计
const PassingScore = 70

// ScoreResult 一次作答的判分结果
type ScoreResult struct {
	Score          int `json:"score"`
	CorrectAnswers int `json:"correctAnswers"`
	TotalQuestions int `json:"totalQuestions"`
}

// ScoreAnswers 按题目顺序逐题比对，未作答视为错误。题目为空时返回 ErrEmptyAssessment
func ScoreAnswers(questions []model.Question, answers model.AnswerSheet) (ScoreResult, error) {
	total := len(questions)
	if total == 0 {
		return ScoreResult{}, util.ErrEmptyAssessment
	}

	correct := 0
	for i, q := range questions {
		if selected, ok := answers[i]; ok && selected == q.CorrectAnswer {
			correct++
		}
	}

	return ScoreResult{
		Score:          int(math.Round(float64(correct) / float64(total) * 100)),
		CorrectAnswers: correct,
		TotalQuestions: total,
	}, nil
}

// StatusFor 超时自动提交与主动提交都是终态
func StatusFor(isAutoSubmit bool) model.SubmissionStatus {
	if isAutoSubmit {
		return model.StatusAutoSubmitted
	}
	return model.StatusCompleted
}
