package employee

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusActive     = "ACTIVE"
	StatusInactive   = "INACTIVE"
	StatusOnLeave    = "ON_LEAVE"
	StatusTerminated = "TERMINATED"
)

type Employee struct {
	ID             uuid.UUID      `gorm:"column:id;type:uuid;primaryKey"`
	EmployeeNumber string         `gorm:"column:employee_number;uniqueIndex"`
	FullName       string         `gorm:"column:full_name;not null"`
	Email          string         `gorm:"column:email;uniqueIndex"`
	PinHash        *string        `gorm:"column:pin_hash"`
	LastStationID  *uuid.UUID     `gorm:"column:last_station_id;type:uuid"`
	DailyHourCap   *float64       `gorm:"column:daily_hour_cap"`
	WeeklyHourCap  *float64       `gorm:"column:weekly_hour_cap"`
	Status         string         `gorm:"column:status;type:varchar(20);not null;default:ACTIVE"`
	HireDate       time.Time      `gorm:"column:hire_date;type:date"`
	CreatedAt      time.Time      `gorm:"column:created_at"`
	UpdatedAt      time.Time      `gorm:"column:updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (Employee) TableName() string {
	return "employees"
}
