package util

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"eng_assess_backend/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerOnce sync.Once

// RegisterValidators 在 gin 的校验引擎上注册自定义规则
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("unexpected validator engine")
	}

	var err error
	registerOnce.Do(func() {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})

		if err = v.RegisterValidation("engfield", func(fl validator.FieldLevel) bool {
			return model.EngineeringField(fl.Field().String()).Valid()
		}); err != nil {
			return
		}
		if err = v.RegisterValidation("level", func(fl validator.FieldLevel) bool {
			return model.Level(fl.Field().String()).Valid()
		}); err != nil {
			return
		}

		v.RegisterStructValidation(validateQuestion, model.Question{})
	})
	return err
}

// 正确答案必须是选项的合法下标
func validateQuestion(sl validator.StructLevel) {
	q := sl.Current().Interface().(model.Question)
	if q.CorrectAnswer < 0 || q.CorrectAnswer >= len(q.Options) {
		sl.ReportError(q.CorrectAnswer, "correctAnswer", "CorrectAnswer", "correctanswer", "")
	}
}

// FieldErrors 把校验错误转换为 字段 -> 提示 的映射，非校验错误返回 false
func FieldErrors(err error) (map[string]string, bool) {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return nil, false
	}

	out := make(map[string]string, len(ve))
	for _, fe := range ve {
		key := fieldKey(fe)
		if _, exists := out[key]; exists {
			continue
		}
		out[key] = fieldMessage(fe)
	}
	return out, true
}

// BindJSON 绑定请求体，失败时直接写入 400 响应
func BindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		if errs, ok := FieldErrors(err); ok {
			ValidationFailed(c, errs)
			return false
		}
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Success: false,
			Message: "Invalid request body",
			Error:   err.Error(),
		})
		return false
	}
	return true
}

func fieldKey(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func fieldLabel(name string) string {
	if name == "" {
		return "Field"
	}
	return strings.ToUpper(name[:1]) + name[1:]
}

func fieldMessage(fe validator.FieldError) string {
	label := fieldLabel(fe.Field())

	switch fe.Tag() {
	case "required":
		return label + " is required"
	case "email":
		return "Please provide a valid email address"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters long", label, fe.Param())
		}
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("%s must contain at least %s items", label, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", label, fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters long", label, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", label, fe.Param())
	case "len":
		return fmt.Sprintf("%s must contain exactly %s items", label, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", label, fe.Param())
	case "url":
		return label + " must be a valid URL"
	case "engfield":
		return "Invalid engineering field"
	case "level":
		return "Level must be beginner, intermediate or expert"
	case "correctanswer":
		return "Correct answer must be a valid option index"
	}
	return label + " is invalid"
}
