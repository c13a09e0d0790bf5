package analytics

import (
	"context"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=analytics_repo.go -destination=mock/analytics_repo_mock.go -package=mock
type Repository interface {
	HoursByStation(ctx context.Context, from, to time.Time) ([]StationHours, error)
	HoursByDay(ctx context.Context, from, to time.Time) ([]DayHours, error)
	CountActiveNow(ctx context.Context) (int64, error)
	CountHeadcount(ctx context.Context) (int64, error)
	CorrectionStats(ctx context.Context, from, to time.Time) ([]CorrectionStat, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// workedSeconds clips each WORK log to [from, to) and treats open logs as
// running until to.
const workedSeconds = "SUM(EXTRACT(EPOCH FROM (LEAST(COALESCE(time_logs.end_time, ?), ?) - GREATEST(time_logs.start_time, ?))))"

func (r *repository) HoursByStation(ctx context.Context, from, to time.Time) ([]StationHours, error) {
	var rows []StationHours
	err := r.db.WithContext(ctx).
		Table("time_logs").
		Select("stations.id AS station_id, stations.name AS station_name, stations.zone, "+workedSeconds+" / 3600.0 AS hours", to, to, from).
		Joins("JOIN stations ON stations.id = time_logs.station_id").
		Where("time_logs.deleted_at IS NULL").
		Where("time_logs.log_type = ?", "WORK").
		Where("time_logs.start_time < ?", to).
		Where("time_logs.end_time > ? OR time_logs.end_time IS NULL", from).
		Group("stations.id, stations.name, stations.zone").
		Order("hours DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *repository) HoursByDay(ctx context.Context, from, to time.Time) ([]DayHours, error) {
	var rows []DayHours
	err := r.db.WithContext(ctx).
		Table("time_logs").
		Select("TO_CHAR(DATE_TRUNC('day', time_logs.start_time), 'YYYY-MM-DD') AS date, "+workedSeconds+" / 3600.0 AS hours", to, to, from).
		Where("time_logs.deleted_at IS NULL").
		Where("time_logs.log_type = ?", "WORK").
		Where("time_logs.start_time < ?", to).
		Where("time_logs.end_time > ? OR time_logs.end_time IS NULL", from).
		Group("DATE_TRUNC('day', time_logs.start_time)").
		Order("date ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *repository) CountActiveNow(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("time_logs").
		Where("deleted_at IS NULL").
		Where("log_type = ?", "WORK").
		Where("end_time IS NULL").
		Distinct("employee_id").
		Count(&count).Error
	return count, err
}

func (r *repository) CountHeadcount(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("employees").
		Where("deleted_at IS NULL").
		Where("status = ?", "ACTIVE").
		Count(&count).Error
	return count, err
}

func (r *repository) CorrectionStats(ctx context.Context, from, to time.Time) ([]CorrectionStat, error) {
	var rows []CorrectionStat
	err := r.db.WithContext(ctx).
		Table("correction_daily_stats").
		Select("TO_CHAR(stat_date, 'YYYY-MM-DD') AS date, action, count").
		Where("stat_date >= ? AND stat_date < ?", from, to).
		Order("stat_date ASC, action ASC").
		Scan(&rows).Error
	return rows, err
}
