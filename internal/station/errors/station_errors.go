package stationerrors

import (
	"go-wfm/internal/shared/apperror"
	"net/http"
)

var (
	ErrStationNotFound = apperror.New(
		apperror.CodeNotFound,
		"Station not found",
		http.StatusNotFound,
	)
	ErrStationNameTaken = apperror.New(
		apperror.CodeConflict,
		"Station with the same name already exists",
		http.StatusConflict,
	)
)
