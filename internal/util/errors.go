package util

import "errors"

var (
	ErrUserNotFound       = errors.New("User not found")
	ErrEmailRegistered    = errors.New("Email already registered")
	ErrUsernameTaken      = errors.New("Username already taken")
	ErrInvalidCredentials = errors.New("Invalid email or password")
	ErrNotStudent         = errors.New("Can only delete student accounts")
	ErrTokenExpired       = errors.New("Token expired")
	ErrInvalidToken       = errors.New("Not authorized")
	ErrPermissionDenied   = errors.New("permission denied")

	ErrAssessmentNotFound = errors.New("Assessment not found")
	ErrEmptyAssessment    = errors.New("assessment has no questions")
	ErrCategoryNotFound   = errors.New("Category not found")
	ErrCategoriesExist    = errors.New("Categories already exist")
	ErrResourceNotFound   = errors.New("Resource not found")
	ErrInvalidFileType    = errors.New("invalid file type")
)
