package util

import (
	"errors"
	"testing"

	"eng_assess_backend/internal/model"

	"github.com/gin-gonic/gin/binding"
)

type signup struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type quiz struct {
	EngineeringField model.EngineeringField `json:"engineeringField" binding:"required,engfield"`
	Level            model.Level            `json:"level" binding:"required,level"`
	Questions        []model.Question       `json:"questions" binding:"required,min=1,dive"`
}

func validate(t *testing.T, obj interface{}) map[string]string {
	t.Helper()
	if err := RegisterValidators(); err != nil {
		t.Fatalf("RegisterValidators: %v", err)
	}
	err := binding.Validator.ValidateStruct(obj)
	if err == nil {
		return nil
	}
	errs, ok := FieldErrors(err)
	if !ok {
		t.Fatalf("not a validation error: %v", err)
	}
	return errs
}

func TestFieldErrorsMessages(t *testing.T) {
	errs := validate(t, &signup{Email: "nope", Password: "123"})

	want := map[string]string{
		"username": "Username is required",
		"email":    "Please provide a valid email address",
		"password": "Password must be at least 6 characters long",
	}
	for k, v := range want {
		if errs[k] != v {
			t.Errorf("%s = %q, want %q", k, errs[k], v)
		}
	}
}

func TestQuestionValidation(t *testing.T) {
	valid := model.Question{QuestionText: "2+2?", Options: []string{"1", "2", "3", "4"}, CorrectAnswer: 3}
	if errs := validate(t, &quiz{EngineeringField: model.ComputerScience, Level: model.Beginner, Questions: []model.Question{valid}}); errs != nil {
		t.Fatalf("unexpected errors %v", errs)
	}

	outOfRange := valid
	outOfRange.CorrectAnswer = 4
	threeOptions := valid
	threeOptions.Options = []string{"1", "2", "3"}
	threeOptions.CorrectAnswer = 0

	errs := validate(t, &quiz{
		EngineeringField: "Underwater Basket Weaving",
		Level:            "guru",
		Questions:        []model.Question{outOfRange, threeOptions},
	})

	if errs["engineeringField"] != "Invalid engineering field" {
		t.Errorf("engineeringField = %q", errs["engineeringField"])
	}
	if errs["level"] == "" {
		t.Errorf("level error missing: %v", errs)
	}
	if errs["questions[0].correctAnswer"] == "" {
		t.Errorf("correct answer error missing: %v", errs)
	}
	if errs["questions[1].options"] != "Options must contain exactly 4 items" {
		t.Errorf("options = %q", errs["questions[1].options"])
	}
}

func TestFieldErrorsIgnoresOtherErrors(t *testing.T) {
	if _, ok := FieldErrors(errors.New("boom")); ok {
		t.Fatal("plain errors should not be treated as validation errors")
	}
}
