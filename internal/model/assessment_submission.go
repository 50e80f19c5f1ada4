package model

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"

	"gorm.io/datatypes"
)

type SubmissionStatus string

const (
	StatusNotStarted    SubmissionStatus = "not_started"
	StatusInProgress    SubmissionStatus = "in_progress"
	StatusCompleted     SubmissionStatus = "completed"
	StatusAutoSubmitted SubmissionStatus = "auto_submitted"
)

// FinishedStatuses 已完成（含超时自动提交）的状态
var FinishedStatuses = []SubmissionStatus{StatusCompleted, StatusAutoSubmitted}

// AnswerSheet 题目下标 -> 所选选项下标
type AnswerSheet map[int]int

// UnmarshalJSON 接受对象或数组两种形式。null、非整数与无法识别的题号都按未作答处理，不报错
func (a *AnswerSheet) UnmarshalJSON(data []byte) error {
	sheet := AnswerSheet{}
	trimmed := bytes.TrimSpace(data)

	switch {
	case len(trimmed) > 0 && trimmed[0] == '[':
		var items []json.RawMessage
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return err
		}
		for i, raw := range items {
			if v, ok := optionIndex(raw); ok {
				sheet[i] = v
			}
		}
	case len(trimmed) > 0 && trimmed[0] == '{':
		var items map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return err
		}
		for key, raw := range items {
			i, err := strconv.Atoi(key)
			if err != nil || i < 0 {
				continue
			}
			if v, ok := optionIndex(raw); ok {
				sheet[i] = v
			}
		}
	}

	*a = sheet
	return nil
}

// optionIndex 只有 JSON 数字且为整数时才算作答
func optionIndex(raw json.RawMessage) (int, bool) {
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return 0, false
	}
	f, ok := v.(float64)
	if !ok || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}

// AssessmentSubmission 一次作答记录，创建后不再修改
// swagger:model AssessmentSubmission
type AssessmentSubmission struct {
	UUIDBase
	UserID         uint                            `gorm:"index:idx_submission_user_assessment,priority:1;not null" json:"userId"`
	AssessmentID   uint                            `gorm:"index:idx_submission_user_assessment,priority:2;not null" json:"assessmentId"`
	Assessment     *Assessment                     `gorm:"foreignKey:AssessmentID" json:"assessment,omitempty"`
	Answers        datatypes.JSONType[AnswerSheet] `json:"answers"`
	Score          int                             `gorm:"not null" json:"score"`
	Status         SubmissionStatus                `gorm:"size:20;not null;default:'not_started'" json:"status"`
	TimeSpent      int                             `gorm:"not null" json:"timeSpent"` // 秒
	TotalQuestions int                             `gorm:"not null" json:"totalQuestions"`
	CorrectAnswers int                             `gorm:"not null" json:"correctAnswers"`
}

func (AssessmentSubmission) TableName() string {
	return "assessment_submissions"
}
