package timesheeterrors

import (
	"go-wfm/internal/shared/apperror"
	"net/http"
)

var (
	ErrInvalidRange = apperror.New(
		apperror.CodeInvalidInput,
		"to must be after from",
		http.StatusBadRequest,
	)
	ErrNoEntries = apperror.New(
		apperror.CodeNotFound,
		"No time entries in the requested range",
		http.StatusNotFound,
	)
	ErrExportFailed = apperror.New(
		apperror.CodeInternalError,
		"Failed to generate export file",
		http.StatusInternalServerError,
	)
)
