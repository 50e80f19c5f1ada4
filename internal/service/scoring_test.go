package service

import (
	"encoding/json"
	"errors"
	"testing"

	"eng_assess_backend/internal/model"
	"eng_assess_backend/internal/util"
)

func questions(correct ...int) []model.Question {
	qs := make([]model.Question, len(correct))
	for i, c := range correct {
		qs[i] = model.Question{
			QuestionText:  "q",
			Options:       []string{"a", "b", "c", "d"},
			CorrectAnswer: c,
		}
	}
	return qs
}

func TestScoreAnswers(t *testing.T) {
	tests := []struct {
		name        string
		questions   []model.Question
		answers     model.AnswerSheet
		wantScore   int
		wantCorrect int
	}{
		{
			name:        "three of four",
			questions:   questions(1, 0, 2, 3),
			answers:     model.AnswerSheet{0: 1, 1: 0, 2: 2, 3: 1},
			wantScore:   75,
			wantCorrect: 3,
		},
		{
			name:        "all correct",
			questions:   questions(1, 0, 2, 3),
			answers:     model.AnswerSheet{0: 1, 1: 0, 2: 2, 3: 3},
			wantScore:   100,
			wantCorrect: 4,
		},
		{
			name:        "no answers",
			questions:   questions(1, 0, 2),
			answers:     model.AnswerSheet{},
			wantScore:   0,
			wantCorrect: 0,
		},
		{
			name:        "rounds two of three",
			questions:   questions(0, 0, 0),
			answers:     model.AnswerSheet{0: 0, 1: 0, 2: 3},
			wantScore:   67,
			wantCorrect: 2,
		},
		{
			name:        "ignores answers for unknown questions",
			questions:   questions(2),
			answers:     model.AnswerSheet{0: 2, 5: 1},
			wantScore:   100,
			wantCorrect: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ScoreAnswers(tt.questions, tt.answers)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Score != tt.wantScore {
				t.Errorf("score = %d, want %d", got.Score, tt.wantScore)
			}
			if got.CorrectAnswers != tt.wantCorrect {
				t.Errorf("correct = %d, want %d", got.CorrectAnswers, tt.wantCorrect)
			}
			if got.TotalQuestions != len(tt.questions) {
				t.Errorf("total = %d, want %d", got.TotalQuestions, len(tt.questions))
			}
		})
	}
}

func TestScoreAnswersDecodedNullsAreIncorrect(t *testing.T) {
	var req SubmitRequest
	if err := json.Unmarshal([]byte(`{"answers":{"0":null,"1":null}}`), &req); err != nil {
		t.Fatalf("decode: %v", err)
	}
	got, err := ScoreAnswers(questions(0, 0), req.Answers)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.CorrectAnswers != 0 || got.Score != 0 {
		t.Errorf("result = %+v, want nothing correct", got)
	}
}

func TestScoreAnswersEmptyAssessment(t *testing.T) {
	_, err := ScoreAnswers(nil, model.AnswerSheet{0: 1})
	if !errors.Is(err, util.ErrEmptyAssessment) {
		t.Fatalf("err = %v, want ErrEmptyAssessment", err)
	}
}

func TestStatusFor(t *testing.T) {
	if got := StatusFor(false); got != model.StatusCompleted {
		t.Errorf("manual submit status = %s", got)
	}
	if got := StatusFor(true); got != model.StatusAutoSubmitted {
		t.Errorf("auto submit status = %s", got)
	}
}
