package timelogerrors

import (
	"go-wfm/internal/shared/apperror"
	"net/http"
)

var (
	ErrAlreadyClockedIn = apperror.New(
		apperror.CodeConflict,
		"Already clocked in at another station",
		http.StatusConflict,
	)
	ErrAlreadyOnBreak = apperror.New(
		apperror.CodeConflict,
		"Already on break",
		http.StatusConflict,
	)
	ErrNoActiveWorkSession = apperror.New(
		apperror.CodeConflict,
		"Cannot start break without an active work session",
		http.StatusConflict,
	)
	ErrNoActiveBreak = apperror.New(
		apperror.CodeConflict,
		"No active break found",
		http.StatusConflict,
	)
	ErrOverlap = apperror.New(
		apperror.CodeConflict,
		"Time entry overlaps with existing record",
		http.StatusConflict,
	)
	ErrInvalidPin = apperror.New(
		apperror.CodeUnauthorized,
		"Invalid PIN",
		http.StatusUnauthorized,
	)
	ErrPinLength = apperror.New(
		apperror.CodeInvalidInput,
		"PIN must be between 4 and 6 characters",
		http.StatusBadRequest,
	)
	ErrStationRequired = apperror.New(
		apperror.CodeInvalidInput,
		"Select a station to clock in",
		http.StatusBadRequest,
	)
	ErrEndBeforeStart = apperror.New(
		apperror.CodeInvalidInput,
		"End time must be after start time",
		http.StatusBadRequest,
	)
	ErrTimeLogNotFound = apperror.New(
		apperror.CodeNotFound,
		"Time log not found",
		http.StatusNotFound,
	)
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)
)
