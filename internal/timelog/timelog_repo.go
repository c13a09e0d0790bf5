package timelog

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

//go:generate mockgen -source=timelog_repo.go -destination=mock/timelog_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, l *TimeLog) error
	Update(ctx context.Context, l *TimeLog) error
	FindByID(ctx context.Context, id string) (*TimeLog, error)
	FindByIDUnscoped(ctx context.Context, id string) (*TimeLog, error)
	FindOpenLog(ctx context.Context, employeeID, logType string) (*TimeLog, error)
	FindAllByEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]TimeLog, error)
	HasOverlap(ctx context.Context, employeeID string, start time.Time, end *time.Time, excludeID *string, workOnly bool) (bool, error)
	SoftDelete(ctx context.Context, id string, actorID *uuid.UUID, note string) error
	CreateAudit(ctx context.Context, a *TimeLogAudit) error
	FindEmployee(ctx context.Context, id string) (*EmployeeRef, error)
	ListPinHolders(ctx context.Context) ([]EmployeeRef, error)
	UpdateEmployeeLastStation(ctx context.Context, employeeID, stationID string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// WithTx rebinds the repository onto an open *sql.Tx so that reads inside a
// service transaction observe rows written earlier in the same transaction.
func (r *repository) WithTx(tx *sql.Tx) Repository {
	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: tx}), &gorm.Config{})
	if err != nil {
		return r
	}
	return &repository{db: gdb}
}

func (r *repository) Create(ctx context.Context, l *TimeLog) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *repository) Update(ctx context.Context, l *TimeLog) error {
	return r.db.WithContext(ctx).Save(l).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*TimeLog, error) {
	var l TimeLog
	err := r.db.WithContext(ctx).First(&l, "id = ?", id).Error
	return &l, err
}

// FindByIDUnscoped also returns soft-deleted rows, for audit/history reads.
func (r *repository) FindByIDUnscoped(ctx context.Context, id string) (*TimeLog, error) {
	var l TimeLog
	err := r.db.WithContext(ctx).Unscoped().First(&l, "id = ?", id).Error
	return &l, err
}

func (r *repository) FindOpenLog(ctx context.Context, employeeID, logType string) (*TimeLog, error) {
	var l TimeLog
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("log_type = ?", logType).
		Where("end_time IS NULL").
		First(&l).Error
	return &l, err
}

func (r *repository) FindAllByEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]TimeLog, error) {
	var rows []TimeLog
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("start_time >= ? AND start_time < ?", from, to).
		Order("start_time ASC").
		Find(&rows).Error
	return rows, err
}

// HasOverlap reports whether any non-deleted log for the employee intersects
// the candidate interval [start, end). A nil end means the candidate is open
// and unbounded going forward; an open existing log is likewise unbounded.
func (r *repository) HasOverlap(ctx context.Context, employeeID string, start time.Time, end *time.Time, excludeID *string, workOnly bool) (bool, error) {
	db := r.db.WithContext(ctx).
		Model(&TimeLog{}).
		Where("employee_id = ?", employeeID).
		Where("end_time > ? OR end_time IS NULL", start)

	if end != nil {
		db = db.Where("start_time < ?", *end)
	}
	if workOnly {
		db = db.Where("log_type = ?", TypeWork)
	}
	if excludeID != nil && *excludeID != "" {
		db = db.Where("id <> ?", *excludeID)
	}

	var count int64
	err := db.Count(&count).Error
	return count > 0, err
}

// SoftDelete stamps the actor and deletion note, then marks the row deleted.
// The row stays in place for audit queries via Unscoped.
func (r *repository) SoftDelete(ctx context.Context, id string, actorID *uuid.UUID, note string) error {
	updates := map[string]any{"note": note}
	if actorID != nil {
		updates["corrected_by"] = *actorID
	}
	res := r.db.WithContext(ctx).
		Model(&TimeLog{}).
		Where("id = ?", id).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return r.db.WithContext(ctx).Delete(&TimeLog{}, "id = ?", id).Error
}

func (r *repository) CreateAudit(ctx context.Context, a *TimeLogAudit) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *repository) FindEmployee(ctx context.Context, id string) (*EmployeeRef, error) {
	var e EmployeeRef
	err := r.db.WithContext(ctx).
		Where("deleted_at IS NULL").
		First(&e, "id = ?", id).Error
	return &e, err
}

func (r *repository) ListPinHolders(ctx context.Context) ([]EmployeeRef, error) {
	var rows []EmployeeRef
	err := r.db.WithContext(ctx).
		Where("pin_hash IS NOT NULL").
		Where("status = ?", "ACTIVE").
		Where("deleted_at IS NULL").
		Find(&rows).Error
	return rows, err
}

func (r *repository) UpdateEmployeeLastStation(ctx context.Context, employeeID, stationID string) error {
	res := r.db.WithContext(ctx).
		Table("employees").
		Where("id = ?", employeeID).
		Where("deleted_at IS NULL").
		Update("last_station_id", stationID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
