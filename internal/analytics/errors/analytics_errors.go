package analyticserrors

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
	ErrSnapshotUnavailable = apperror.New(
		apperror.CodeServiceUnavailable,
		"Analytics snapshot is currently unavailable",
		http.StatusServiceUnavailable,
	)
)
