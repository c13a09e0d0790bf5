package timesheet

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	timesheeterrors "go-wfm/internal/timesheet/errors"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

//go:generate mockgen -source=timesheet_service.go -destination=mock/timesheet_service_mock.go -package=mock
type Service interface {
	GetDaily(ctx context.Context, employeeID *string, from, to time.Time) ([]DailySummary, error)
	GetWeekly(ctx context.Context, employeeID *string, from, to time.Time) ([]WeeklySummary, error)
	ExportXLSX(ctx context.Context, employeeID *string, from, to time.Time) (*bytes.Buffer, string, error)
}

type service struct {
	repo   Repository
	now    func() time.Time
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	return NewServiceWithClock(repo, time.Now, logger...)
}

// NewServiceWithClock pins the clock used to value open sessions.
func NewServiceWithClock(repo Repository, now func() time.Time, logger ...*zap.Logger) Service {
	l := zap.L().Named("timesheet.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("timesheet.service")
	}
	return &service{repo: repo, now: now, logger: l}
}

type dayKey struct {
	employeeID string
	date       string
}

// GetDaily sums non-deleted WORK time per employee per calendar day (UTC) and
// subtracts BREAK time. Entries spanning the range edges are clipped, and an
// open session is clipped at now so managers see hours accrued so far.
func (s *service) GetDaily(ctx context.Context, employeeID *string, from, to time.Time) ([]DailySummary, error) {
	if !to.After(from) {
		return nil, timesheeterrors.ErrInvalidRange
	}

	entries, err := s.repo.ListEntries(ctx, employeeID, from, to)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	totals := make(map[dayKey]*DailySummary)

	for _, e := range entries {
		end := now
		open := true
		if e.EndTime != nil {
			end = *e.EndTime
			open = false
		}

		// Walk the entry day by day so a shift crossing midnight is
		// attributed to both days.
		cur := maxTime(e.StartTime, from)
		stop := minTime(end, to)
		for cur.Before(stop) {
			dayEnd := cur.UTC().Truncate(24 * time.Hour).Add(24 * time.Hour)
			segEnd := minTime(dayEnd, stop)
			minutes := segEnd.Sub(cur).Minutes()

			key := dayKey{e.EmployeeID.String(), cur.UTC().Format("2006-01-02")}
			row := totals[key]
			if row == nil {
				row = &DailySummary{
					EmployeeID:   e.EmployeeID.String(),
					EmployeeName: e.EmployeeName,
					Date:         key.date,
				}
				totals[key] = row
			}
			switch e.LogType {
			case "WORK":
				row.WorkMinutes += minutes
			case "BREAK":
				row.BreakMinutes += minutes
			}
			if open {
				row.OpenSession = true
			}
			cur = segEnd
		}
	}

	res := make([]DailySummary, 0, len(totals))
	for _, row := range totals {
		row.NetMinutes = row.WorkMinutes - row.BreakMinutes
		res = append(res, *row)
	}
	sort.Slice(res, func(i, j int) bool {
		if res[i].EmployeeName != res[j].EmployeeName {
			return res[i].EmployeeName < res[j].EmployeeName
		}
		return res[i].Date < res[j].Date
	})
	return res, nil
}

func (s *service) GetWeekly(ctx context.Context, employeeID *string, from, to time.Time) ([]WeeklySummary, error) {
	daily, err := s.GetDaily(ctx, employeeID, from, to)
	if err != nil {
		return nil, err
	}

	type weekKey struct {
		employeeID string
		weekStart  string
	}
	totals := make(map[weekKey]*WeeklySummary)
	for _, d := range daily {
		day, err := time.Parse("2006-01-02", d.Date)
		if err != nil {
			continue
		}
		// ISO weeks, Monday start
		offset := (int(day.Weekday()) + 6) % 7
		ws := day.AddDate(0, 0, -offset).Format("2006-01-02")

		key := weekKey{d.EmployeeID, ws}
		row := totals[key]
		if row == nil {
			row = &WeeklySummary{
				EmployeeID:   d.EmployeeID,
				EmployeeName: d.EmployeeName,
				WeekStart:    ws,
			}
			totals[key] = row
		}
		row.WorkMinutes += d.WorkMinutes
		row.BreakMinutes += d.BreakMinutes
		row.NetMinutes += d.NetMinutes
	}

	res := make([]WeeklySummary, 0, len(totals))
	for _, row := range totals {
		res = append(res, *row)
	}
	sort.Slice(res, func(i, j int) bool {
		if res[i].EmployeeName != res[j].EmployeeName {
			return res[i].EmployeeName < res[j].EmployeeName
		}
		return res[i].WeekStart < res[j].WeekStart
	})
	return res, nil
}

func (s *service) ExportXLSX(ctx context.Context, employeeID *string, from, to time.Time) (*bytes.Buffer, string, error) {
	daily, err := s.GetDaily(ctx, employeeID, from, to)
	if err != nil {
		return nil, "", err
	}
	if len(daily) == 0 {
		return nil, "", timesheeterrors.ErrNoEntries
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Timesheet"
	idx, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, "", timesheeterrors.ErrExportFailed
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(sheetName, "A", "A", 28)
	f.SetColWidth(sheetName, "B", "B", 12)
	f.SetColWidth(sheetName, "C", "E", 14)
	f.SetColWidth(sheetName, "F", "F", 10)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	headers := []string{"Employee", "Date", "Work (h)", "Break (h)", "Net (h)", "Open"}
	for i, h := range headers {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetCellValue(sheetName, fmt.Sprintf("%s1", col), h)
		f.SetCellStyle(sheetName, fmt.Sprintf("%s1", col), fmt.Sprintf("%s1", col), headerStyle)
	}

	row := 2
	for _, d := range daily {
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), d.EmployeeName)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), d.Date)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), round2(d.WorkMinutes/60))
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), round2(d.BreakMinutes/60))
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), round2(d.NetMinutes/60))
		if d.OpenSession {
			f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), "yes")
		}
		row++
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("write xlsx failed", zap.Error(err))
		return nil, "", timesheeterrors.ErrExportFailed
	}

	filename := fmt.Sprintf("timesheet_%s_%s.xlsx", from.Format("20060102"), to.Format("20060102"))
	return buf, filename, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func maxTime(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func minTime(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
