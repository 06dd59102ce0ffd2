package companyerrors

import (
	"go-comdir/internal/shared/apperror"
	"net/http"
)

var (
	ErrCompanyNotFound = apperror.New(
		apperror.CodeNotFound,
		"Company not found",
		http.StatusNotFound,
	)
	ErrCompanyAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Company with this name and address already exists",
		http.StatusConflict,
	)
)
