package events

import "time"

const TimeLogCorrectedTopic = "wfm.timelog.audit.v1"

type TimeLogCorrectedEvent struct {
	EventType  string    `json:"event_type"`
	RequestID  string    `json:"request_id,omitempty"`
	TimeLogID  string    `json:"time_log_id"`
	EmployeeID string    `json:"employee_id"`
	Action     string    `json:"action"`
	ActorID    string    `json:"actor_id"`
	Reason     string    `json:"reason,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
