package timelog

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	TypeWork  = "WORK"
	TypeBreak = "BREAK"
)

const (
	MethodPin       = "PIN"
	MethodCard      = "CARD"
	MethodBiometric = "BIOMETRIC"
	MethodManual    = "MANUAL"
)

const (
	AuditActionCreate = "CORRECTION_CREATE"
	AuditActionEdit   = "CORRECTION_EDIT"
	AuditActionDelete = "CORRECTION_DELETE"
)

type TimeLog struct {
	ID          uuid.UUID      `gorm:"column:id;type:uuid;primaryKey"`
	EmployeeID  uuid.UUID      `gorm:"column:employee_id;type:uuid;not null;index"`
	StationID   *uuid.UUID     `gorm:"column:station_id;type:uuid"`
	LogType     string         `gorm:"column:log_type;type:varchar(10);not null;default:WORK"`
	StartTime   time.Time      `gorm:"column:start_time;type:timestamptz;not null"`
	EndTime     *time.Time     `gorm:"column:end_time;type:timestamptz"`
	Note        *string        `gorm:"column:note;type:text"`
	ClockMethod string         `gorm:"column:clock_method;type:varchar(20);not null;default:MANUAL"`
	CorrectedBy *uuid.UUID     `gorm:"column:corrected_by;type:uuid"`
	CreatedAt   time.Time      `gorm:"column:created_at"`
	UpdatedAt   time.Time      `gorm:"column:updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (TimeLog) TableName() string {
	return "time_logs"
}

// TimeLogAudit is the structured correction trail: one row per manual
// mutation, written in the same transaction as the mutation itself.
type TimeLogAudit struct {
	ID         uuid.UUID  `gorm:"column:id;type:uuid;primaryKey"`
	TimeLogID  uuid.UUID  `gorm:"column:time_log_id;type:uuid;not null;index"`
	Action     string     `gorm:"column:action;type:varchar(30);not null"`
	ActorID    *uuid.UUID `gorm:"column:actor_id;type:uuid"`
	Reason     *string    `gorm:"column:reason;type:text"`
	OccurredAt time.Time  `gorm:"column:occurred_at;type:timestamptz;not null"`
}

func (TimeLogAudit) TableName() string {
	return "time_log_audits"
}

// EmployeeRef is the slice of the employees table the clock engine needs.
type EmployeeRef struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey"`
	FullName      string     `gorm:"column:full_name"`
	PinHash       *string    `gorm:"column:pin_hash"`
	LastStationID *uuid.UUID `gorm:"column:last_station_id;type:uuid"`
	Status        string     `gorm:"column:status"`
}

func (EmployeeRef) TableName() string {
	return "employees"
}
