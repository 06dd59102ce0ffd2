package usererrors

import (
	"go-comdir/internal/shared/apperror"
	"net/http"
)

var (
	ErrUserNotFound = apperror.New(
		apperror.CodeNotFound,
		"User not found",
		http.StatusNotFound,
	)
	ErrEmailAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Email already exists",
		http.StatusConflict,
	)
	ErrInvalidDOB = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid dob format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
)
