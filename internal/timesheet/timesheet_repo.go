package timesheet

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Entry is one non-deleted time log joined with the employee name, the raw
// material for all timesheet aggregation.
type Entry struct {
	LogID        uuid.UUID
	EmployeeID   uuid.UUID
	EmployeeName string
	LogType      string
	StartTime    time.Time
	EndTime      *time.Time
}

//go:generate mockgen -source=timesheet_repo.go -destination=mock/timesheet_repo_mock.go -package=mock
type Repository interface {
	ListEntries(ctx context.Context, employeeID *string, from, to time.Time) ([]Entry, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ListEntries(ctx context.Context, employeeID *string, from, to time.Time) ([]Entry, error) {
	var rows []Entry
	q := r.db.WithContext(ctx).
		Table("time_logs").
		Select("time_logs.id AS log_id, time_logs.employee_id, employees.full_name AS employee_name, time_logs.log_type, time_logs.start_time, time_logs.end_time").
		Joins("JOIN employees ON employees.id = time_logs.employee_id").
		Where("time_logs.deleted_at IS NULL").
		Where("time_logs.start_time < ?", to).
		Where("time_logs.end_time > ? OR time_logs.end_time IS NULL", from).
		Order("time_logs.employee_id, time_logs.start_time")
	if employeeID != nil && *employeeID != "" {
		q = q.Where("time_logs.employee_id = ?", *employeeID)
	}
	err := q.Scan(&rows).Error
	return rows, err
}
