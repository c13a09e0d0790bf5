package timelog

import "time"

type ClockInRequest struct {
	EmployeeID string `json:"employee_id" binding:"required,uuid"`
	StationID  string `json:"station_id" binding:"required,uuid"`
	Method     string `json:"method" binding:"omitempty,oneof=PIN CARD BIOMETRIC MANUAL"`
}

type ClockOutRequest struct {
	LogID string `json:"log_id" binding:"required,uuid"`
}

type PinToggleRequest struct {
	Pin       string  `json:"pin" binding:"required,min=4,max=6"`
	StationID *string `json:"station_id" binding:"omitempty,uuid"`
}

type BreakRequest struct {
	EmployeeID string `json:"employee_id" binding:"required,uuid"`
}

type CreateCorrectionRequest struct {
	EmployeeID string     `json:"employee_id" binding:"required,uuid"`
	StationID  *string    `json:"station_id" binding:"omitempty,uuid"`
	LogType    string     `json:"log_type" binding:"required,oneof=WORK BREAK"`
	StartTime  time.Time  `json:"start_time" binding:"required"`
	EndTime    *time.Time `json:"end_time"`
	Note       *string    `json:"note"`
	Reason     string     `json:"reason" binding:"required"`
	IsAddition bool       `json:"is_addition"`
}

type EditCorrectionRequest struct {
	StationID *string    `json:"station_id" binding:"omitempty,uuid"`
	StartTime *time.Time `json:"start_time"`
	EndTime   *time.Time `json:"end_time"`
	Note      *string    `json:"note"`
	Reason    string     `json:"reason" binding:"required"`
}

type DeleteCorrectionRequest struct {
	Reason string `json:"reason" binding:"required"`
}

type BulkCreateCorrectionsRequest struct {
	Entries []CreateCorrectionRequest `json:"entries" binding:"required,min=1,dive"`
}

type UpdateEntryRequest struct {
	StationID *string    `json:"station_id" binding:"omitempty,uuid"`
	StartTime *time.Time `json:"start_time"`
	EndTime   *time.Time `json:"end_time"`
	Note      *string    `json:"note"`
}

type ToggleResponse struct {
	Message string `json:"message"`
	LogID   string `json:"log_id,omitempty"`
	Action  string `json:"action,omitempty"` // CLOCKED_IN or CLOCKED_OUT
}

type TimeLogResponse struct {
	ID          string  `json:"id"`
	EmployeeID  string  `json:"employee_id"`
	StationID   *string `json:"station_id,omitempty"`
	LogType     string  `json:"log_type"`
	StartTime   string  `json:"start_time"`
	EndTime     *string `json:"end_time,omitempty"`
	Note        *string `json:"note,omitempty"`
	ClockMethod string  `json:"clock_method"`
	CorrectedBy *string `json:"corrected_by,omitempty"`
	DeletedAt   *string `json:"deleted_at,omitempty"`
}
