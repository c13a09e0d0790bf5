package kiosk

type ClockInRequest struct {
	EmployeeID string `json:"employee_id" binding:"required,uuid"`
	StationID  string `json:"station_id" binding:"required,uuid"`
	Method     string `json:"method" binding:"omitempty,oneof=PIN CARD BIOMETRIC"`
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

type DeleteTimeLogRequest struct {
	LogID string `json:"log_id" binding:"required,uuid"`
	// ActorID is the badge id of the supervisor approving the deletion at
	// the terminal.
	ActorID string `json:"actor_id" binding:"required,uuid"`
	Reason  string `json:"reason" binding:"required"`
}

// KioskResponse is the terminal-facing envelope. Kiosk firmware predates the
// internal API envelope and only understands this shape.
type KioskResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}
