package timelog_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"go-wfm/internal/timelog"
	timelogerrors "go-wfm/internal/timelog/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// memRepo is an in-memory Repository so state-machine tests can observe the
// same rows across calls, the way the real store would inside a transaction.
type memRepo struct {
	logs            map[string]*timelog.TimeLog
	audits          []timelog.TimeLogAudit
	employees       map[string]*timelog.EmployeeRef
	lastStations    map[string]string
	failLastStation bool
	failCreate      bool
}

func newMemRepo() *memRepo {
	return &memRepo{
		logs:         make(map[string]*timelog.TimeLog),
		employees:    make(map[string]*timelog.EmployeeRef),
		lastStations: make(map[string]string),
	}
}

func (m *memRepo) WithTx(tx *sql.Tx) timelog.Repository { return m }

func (m *memRepo) Create(ctx context.Context, l *timelog.TimeLog) error {
	if m.failCreate {
		return errors.New("insert failed")
	}
	cp := *l
	m.logs[l.ID.String()] = &cp
	return nil
}

func (m *memRepo) Update(ctx context.Context, l *timelog.TimeLog) error {
	cp := *l
	m.logs[l.ID.String()] = &cp
	return nil
}

func (m *memRepo) FindByID(ctx context.Context, id string) (*timelog.TimeLog, error) {
	l, ok := m.logs[id]
	if !ok || l.DeletedAt.Valid {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *l
	return &cp, nil
}

func (m *memRepo) FindByIDUnscoped(ctx context.Context, id string) (*timelog.TimeLog, error) {
	l, ok := m.logs[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *l
	return &cp, nil
}

func (m *memRepo) FindOpenLog(ctx context.Context, employeeID, logType string) (*timelog.TimeLog, error) {
	for _, l := range m.logs {
		if l.DeletedAt.Valid {
			continue
		}
		if l.EmployeeID.String() == employeeID && l.LogType == logType && l.EndTime == nil {
			cp := *l
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memRepo) FindAllByEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]timelog.TimeLog, error) {
	var res []timelog.TimeLog
	for _, l := range m.logs {
		if l.DeletedAt.Valid || l.EmployeeID.String() != employeeID {
			continue
		}
		if l.StartTime.Before(from) || !l.StartTime.Before(to) {
			continue
		}
		res = append(res, *l)
	}
	return res, nil
}

func (m *memRepo) HasOverlap(ctx context.Context, employeeID string, start time.Time, end *time.Time, excludeID *string, workOnly bool) (bool, error) {
	for _, l := range m.logs {
		if l.DeletedAt.Valid || l.EmployeeID.String() != employeeID {
			continue
		}
		if workOnly && l.LogType != timelog.TypeWork {
			continue
		}
		if excludeID != nil && l.ID.String() == *excludeID {
			continue
		}
		// same predicate as the SQL: existing end > candidate start (or open),
		// and existing start < candidate end (or candidate open)
		if l.EndTime != nil && !l.EndTime.After(start) {
			continue
		}
		if end != nil && !l.StartTime.Before(*end) {
			continue
		}
		return true, nil
	}
	return false, nil
}

func (m *memRepo) SoftDelete(ctx context.Context, id string, actorID *uuid.UUID, note string) error {
	l, ok := m.logs[id]
	if !ok || l.DeletedAt.Valid {
		return gorm.ErrRecordNotFound
	}
	l.Note = &note
	l.CorrectedBy = actorID
	l.DeletedAt = gorm.DeletedAt{Time: time.Now().UTC(), Valid: true}
	return nil
}

func (m *memRepo) CreateAudit(ctx context.Context, a *timelog.TimeLogAudit) error {
	m.audits = append(m.audits, *a)
	return nil
}

func (m *memRepo) FindEmployee(ctx context.Context, id string) (*timelog.EmployeeRef, error) {
	e, ok := m.employees[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return e, nil
}

func (m *memRepo) ListPinHolders(ctx context.Context) ([]timelog.EmployeeRef, error) {
	var res []timelog.EmployeeRef
	for _, e := range m.employees {
		if e.PinHash != nil && e.Status == "ACTIVE" {
			res = append(res, *e)
		}
	}
	return res, nil
}

func (m *memRepo) UpdateEmployeeLastStation(ctx context.Context, employeeID, stationID string) error {
	if m.failLastStation {
		return errors.New("update failed")
	}
	if _, ok := m.employees[employeeID]; !ok {
		return gorm.ErrRecordNotFound
	}
	m.lastStations[employeeID] = stationID
	return nil
}

type testDeps struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	repo    *memRepo
	service timelog.Service
}

func setupServiceTest(t *testing.T) *testDeps {
	t.Helper()
	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := newMemRepo()
	return &testDeps{
		db:      db,
		sqlMock: sqlMock,
		repo:    repo,
		service: timelog.NewService(db, repo),
	}
}

func (d *testDeps) addEmployee(t *testing.T, pin string) *timelog.EmployeeRef {
	t.Helper()
	e := &timelog.EmployeeRef{
		ID:       uuid.New(),
		FullName: "Dana Reyes",
		Status:   "ACTIVE",
	}
	if pin != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.MinCost)
		require.NoError(t, err)
		s := string(hash)
		e.PinHash = &s
	}
	d.repo.employees[e.ID.String()] = e
	return e
}

func ptr[T any](v T) *T { return &v }

func TestClockIn(t *testing.T) {
	ctx := context.Background()

	t.Run("opens work log and updates last station", func(t *testing.T) {
		deps := setupServiceTest(t)
		emp := deps.addEmployee(t, "")
		stationID := uuid.New().String()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		resp, err := deps.service.ClockIn(ctx, emp.ID.String(), stationID, "")

		assert.NoError(t, err)
		assert.Equal(t, "CLOCKED_IN", resp.Action)
		assert.NotEmpty(t, resp.LogID)
		assert.Equal(t, stationID, deps.repo.lastStations[emp.ID.String()])

		row := deps.repo.logs[resp.LogID]
		require.NotNil(t, row)
		assert.Equal(t, timelog.TypeWork, row.LogType)
		assert.Equal(t, timelog.MethodPin, row.ClockMethod)
		assert.Nil(t, row.EndTime)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("rejects second clock-in while a session is open", func(t *testing.T) {
		deps := setupServiceTest(t)
		emp := deps.addEmployee(t, "")
		stationID := uuid.New().String()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()
		_, err := deps.service.ClockIn(ctx, emp.ID.String(), stationID, "")
		require.NoError(t, err)

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()
		_, err = deps.service.ClockIn(ctx, emp.ID.String(), uuid.New().String(), "")

		assert.ErrorIs(t, err, timelogerrors.ErrAlreadyClockedIn)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("rolls back the log insert when the station pointer update fails", func(t *testing.T) {
		deps := setupServiceTest(t)
		emp := deps.addEmployee(t, "")
		deps.repo.failLastStation = true

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		_, err := deps.service.ClockIn(ctx, emp.ID.String(), uuid.New().String(), "")

		assert.Error(t, err)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("requires a station", func(t *testing.T) {
		deps := setupServiceTest(t)
		emp := deps.addEmployee(t, "")

		_, err := deps.service.ClockIn(ctx, emp.ID.String(), "", "")

		assert.ErrorIs(t, err, timelogerrors.ErrStationRequired)
	})
}

func TestPinToggle(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects out-of-range pin length", func(t *testing.T) {
		deps := setupServiceTest(t)

		_, err := deps.service.PinToggle(ctx, "123", nil)
		assert.ErrorIs(t, err, timelogerrors.ErrPinLength)

		_, err = deps.service.PinToggle(ctx, "1234567", nil)
		assert.ErrorIs(t, err, timelogerrors.ErrPinLength)
	})

	t.Run("rejects unknown pin", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.addEmployee(t, "4821")

		_, err := deps.service.PinToggle(ctx, "9999", nil)

		assert.ErrorIs(t, err, timelogerrors.ErrInvalidPin)
	})

	t.Run("clock in then out with the same pin", func(t *testing.T) {
		deps := setupServiceTest(t)
		emp := deps.addEmployee(t, "4821")
		stationID := uuid.New().String()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()
		in, err := deps.service.PinToggle(ctx, "4821", ptr(stationID))
		require.NoError(t, err)
		assert.Equal(t, "CLOCKED_IN", in.Action)
		assert.Contains(t, in.Message, "clocked in")

		out, err := deps.service.PinToggle(ctx, "4821", nil)
		require.NoError(t, err)
		assert.Equal(t, "CLOCKED_OUT", out.Action)
		assert.Equal(t, in.LogID, out.LogID)
		assert.Contains(t, out.Message, emp.FullName)

		row := deps.repo.logs[in.LogID]
		require.NotNil(t, row)
		assert.NotNil(t, row.EndTime)
	})

	t.Run("falls back to the employee's last station", func(t *testing.T) {
		deps := setupServiceTest(t)
		emp := deps.addEmployee(t, "4821")
		last := uuid.New()
		emp.LastStationID = &last

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		resp, err := deps.service.PinToggle(ctx, "4821", nil)

		require.NoError(t, err)
		row := deps.repo.logs[resp.LogID]
		require.NotNil(t, row)
		require.NotNil(t, row.StationID)
		assert.Equal(t, last.String(), row.StationID.String())
	})

	t.Run("asks for a station when none is known", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.addEmployee(t, "4821")

		_, err := deps.service.PinToggle(ctx, "4821", nil)

		assert.ErrorIs(t, err, timelogerrors.ErrStationRequired)
	})
}

func TestBreaks(t *testing.T) {
	ctx := context.Background()

	clockIn := func(t *testing.T, deps *testDeps, emp *timelog.EmployeeRef) string {
		t.Helper()
		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()
		resp, err := deps.service.ClockIn(ctx, emp.ID.String(), uuid.New().String(), "")
		require.NoError(t, err)
		return resp.LogID
	}

	t.Run("break requires an open work session", func(t *testing.T) {
		deps := setupServiceTest(t)
		emp := deps.addEmployee(t, "")

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		_, err := deps.service.StartBreak(ctx, emp.ID.String())

		assert.ErrorIs(t, err, timelogerrors.ErrNoActiveWorkSession)
	})

	t.Run("break inherits the work session's station", func(t *testing.T) {
		deps := setupServiceTest(t)
		emp := deps.addEmployee(t, "")
		workID := clockIn(t, deps, emp)

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		resp, err := deps.service.StartBreak(ctx, emp.ID.String())

		require.NoError(t, err)
		work := deps.repo.logs[workID]
		brk := deps.repo.logs[resp.LogID]
		require.NotNil(t, brk)
		assert.Equal(t, timelog.TypeBreak, brk.LogType)
		assert.Equal(t, work.StationID.String(), brk.StationID.String())
	})

	t.Run("breaks do not nest", func(t *testing.T) {
		deps := setupServiceTest(t)
		emp := deps.addEmployee(t, "")
		clockIn(t, deps, emp)

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()
		_, err := deps.service.StartBreak(ctx, emp.ID.String())
		require.NoError(t, err)

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()
		_, err = deps.service.StartBreak(ctx, emp.ID.String())

		assert.ErrorIs(t, err, timelogerrors.ErrAlreadyOnBreak)
	})

	t.Run("end break closes only the break", func(t *testing.T) {
		deps := setupServiceTest(t)
		emp := deps.addEmployee(t, "")
		workID := clockIn(t, deps, emp)

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()
		started, err := deps.service.StartBreak(ctx, emp.ID.String())
		require.NoError(t, err)

		ended, err := deps.service.EndBreak(ctx, emp.ID.String())
		require.NoError(t, err)
		assert.Equal(t, started.LogID, ended.LogID)

		assert.NotNil(t, deps.repo.logs[started.LogID].EndTime)
		assert.Nil(t, deps.repo.logs[workID].EndTime)
	})

	t.Run("end break without one fails", func(t *testing.T) {
		deps := setupServiceTest(t)
		emp := deps.addEmployee(t, "")

		_, err := deps.service.EndBreak(ctx, emp.ID.String())

		assert.ErrorIs(t, err, timelogerrors.ErrNoActiveBreak)
	})
}

func TestCreateCorrection(t *testing.T) {
	ctx := context.Background()
	actorID := uuid.New().String()
	base := time.Date(2026, 8, 24, 8, 0, 0, 0, time.UTC)

	seedClosedWork := func(deps *testDeps, employeeID uuid.UUID, start, end time.Time) *timelog.TimeLog {
		row := &timelog.TimeLog{
			ID:          uuid.New(),
			EmployeeID:  employeeID,
			LogType:     timelog.TypeWork,
			StartTime:   start,
			EndTime:     &end,
			ClockMethod: timelog.MethodPin,
		}
		deps.repo.logs[row.ID.String()] = row
		return row
	}

	t.Run("rejects end before start", func(t *testing.T) {
		deps := setupServiceTest(t)
		emp := deps.addEmployee(t, "")

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		_, err := deps.service.CreateCorrection(ctx, actorID, timelog.CreateCorrectionRequest{
			EmployeeID: emp.ID.String(),
			LogType:    timelog.TypeWork,
			StartTime:  base,
			EndTime:    ptr(base.Add(-time.Hour)),
			Reason:     "typo",
		})

		assert.ErrorIs(t, err, timelogerrors.ErrEndBeforeStart)
	})

	t.Run("rejects overlap with an existing entry", func(t *testing.T) {
		deps := setupServiceTest(t)
		emp := deps.addEmployee(t, "")
		seedClosedWork(deps, emp.ID, base, base.Add(4*time.Hour))

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		_, err := deps.service.CreateCorrection(ctx, actorID, timelog.CreateCorrectionRequest{
			EmployeeID: emp.ID.String(),
			LogType:    timelog.TypeWork,
			StartTime:  base.Add(2 * time.Hour),
			EndTime:    ptr(base.Add(6 * time.Hour)),
			Reason:     "missed shift",
		})

		assert.ErrorIs(t, err, timelogerrors.ErrOverlap)
	})

	t.Run("touching intervals do not overlap", func(t *testing.T) {
		deps := setupServiceTest(t)
		emp := deps.addEmployee(t, "")
		seedClosedWork(deps, emp.ID, base, base.Add(4*time.Hour))

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		_, err := deps.service.CreateCorrection(ctx, actorID, timelog.CreateCorrectionRequest{
			EmployeeID: emp.ID.String(),
			LogType:    timelog.TypeWork,
			StartTime:  base.Add(4 * time.Hour),
			EndTime:    ptr(base.Add(8 * time.Hour)),
			Reason:     "second shift",
		})

		assert.NoError(t, err)
	})

	t.Run("other employees' entries never conflict", func(t *testing.T) {
		deps := setupServiceTest(t)
		emp := deps.addEmployee(t, "")
		other := deps.addEmployee(t, "")
		seedClosedWork(deps, other.ID, base, base.Add(8*time.Hour))

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		_, err := deps.service.CreateCorrection(ctx, actorID, timelog.CreateCorrectionRequest{
			EmployeeID: emp.ID.String(),
			LogType:    timelog.TypeWork,
			StartTime:  base,
			EndTime:    ptr(base.Add(4 * time.Hour)),
			Reason:     "missed punch",
		})

		assert.NoError(t, err)
	})

	t.Run("an open entry blocks every later interval", func(t *testing.T) {
		deps := setupServiceTest(t)
		emp := deps.addEmployee(t, "")
		deps.repo.logs["open"] = &timelog.TimeLog{
			ID:          uuid.New(),
			EmployeeID:  emp.ID,
			LogType:     timelog.TypeWork,
			StartTime:   base,
			ClockMethod: timelog.MethodPin,
		}

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		_, err := deps.service.CreateCorrection(ctx, actorID, timelog.CreateCorrectionRequest{
			EmployeeID: emp.ID.String(),
			LogType:    timelog.TypeWork,
			StartTime:  base.Add(48 * time.Hour),
			EndTime:    ptr(base.Add(50 * time.Hour)),
			Reason:     "extra shift",
		})

		assert.ErrorIs(t, err, timelogerrors.ErrOverlap)
	})

	t.Run("is_addition overrides the overlap guard", func(t *testing.T) {
		deps := setupServiceTest(t)
		emp := deps.addEmployee(t, "")
		seedClosedWork(deps, emp.ID, base, base.Add(4*time.Hour))

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		resp, err := deps.service.CreateCorrection(ctx, actorID, timelog.CreateCorrectionRequest{
			EmployeeID: emp.ID.String(),
			LogType:    timelog.TypeWork,
			StartTime:  base.Add(2 * time.Hour),
			EndTime:    ptr(base.Add(6 * time.Hour)),
			Reason:     "split shift",
			IsAddition: true,
		})

		assert.NoError(t, err)
		assert.NotEmpty(t, resp.ID)
	})

	t.Run("stamps the manual method, the actor and an audit record", func(t *testing.T) {
		deps := setupServiceTest(t)
		emp := deps.addEmployee(t, "")

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		resp, err := deps.service.CreateCorrection(ctx, actorID, timelog.CreateCorrectionRequest{
			EmployeeID: emp.ID.String(),
			LogType:    timelog.TypeWork,
			StartTime:  base,
			EndTime:    ptr(base.Add(4 * time.Hour)),
			Note:       ptr("forgot badge"),
			Reason:     "missed punch",
		})

		require.NoError(t, err)
		assert.Equal(t, timelog.MethodManual, resp.ClockMethod)
		require.NotNil(t, resp.CorrectedBy)
		assert.Equal(t, actorID, *resp.CorrectedBy)
		require.NotNil(t, resp.Note)
		assert.Equal(t, "missed punch: forgot badge", *resp.Note)

		require.Len(t, deps.repo.audits, 1)
		assert.Equal(t, timelog.AuditActionCreate, deps.repo.audits[0].Action)
		require.NotNil(t, deps.repo.audits[0].Reason)
		assert.Equal(t, "missed punch", *deps.repo.audits[0].Reason)
	})
}

func TestDeleteCorrection(t *testing.T) {
	ctx := context.Background()
	actorID := uuid.New().String()
	base := time.Date(2026, 8, 24, 8, 0, 0, 0, time.UTC)

	t.Run("unknown id", func(t *testing.T) {
		deps := setupServiceTest(t)

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		err := deps.service.DeleteCorrection(ctx, actorID, uuid.New().String(), "duplicate")

		assert.ErrorIs(t, err, timelogerrors.ErrTimeLogNotFound)
	})

	t.Run("soft delete hides the row and frees the interval", func(t *testing.T) {
		deps := setupServiceTest(t)
		emp := deps.addEmployee(t, "")
		end := base.Add(4 * time.Hour)
		row := &timelog.TimeLog{
			ID:          uuid.New(),
			EmployeeID:  emp.ID,
			LogType:     timelog.TypeWork,
			StartTime:   base,
			EndTime:     &end,
			Note:        ptr("original note"),
			ClockMethod: timelog.MethodPin,
		}
		deps.repo.logs[row.ID.String()] = row

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		err := deps.service.DeleteCorrection(ctx, actorID, row.ID.String(), "duplicate entry")
		require.NoError(t, err)

		// hidden from scoped reads
		_, err = deps.repo.FindByID(ctx, row.ID.String())
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

		// audit trail retained
		stored := deps.repo.logs[row.ID.String()]
		assert.True(t, stored.DeletedAt.Valid)
		assert.Equal(t, "duplicate entry: original note", *stored.Note)
		require.Len(t, deps.repo.audits, 1)
		assert.Equal(t, timelog.AuditActionDelete, deps.repo.audits[0].Action)

		// the interval is reusable again
		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()
		_, err = deps.service.CreateCorrection(ctx, actorID, timelog.CreateCorrectionRequest{
			EmployeeID: emp.ID.String(),
			LogType:    timelog.TypeWork,
			StartTime:  base,
			EndTime:    &end,
			Reason:     "re-entered",
		})
		assert.NoError(t, err)
	})
}

func TestBulkCreateCorrections(t *testing.T) {
	ctx := context.Background()
	actorID := uuid.New().String()
	base := time.Date(2026, 8, 24, 8, 0, 0, 0, time.UTC)

	t.Run("all entries land in one commit", func(t *testing.T) {
		deps := setupServiceTest(t)
		emp := deps.addEmployee(t, "")

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		res, err := deps.service.BulkCreateCorrections(ctx, actorID, []timelog.CreateCorrectionRequest{
			{
				EmployeeID: emp.ID.String(),
				LogType:    timelog.TypeWork,
				StartTime:  base,
				EndTime:    ptr(base.Add(4 * time.Hour)),
				Reason:     "import",
			},
			{
				EmployeeID: emp.ID.String(),
				LogType:    timelog.TypeWork,
				StartTime:  base.Add(5 * time.Hour),
				EndTime:    ptr(base.Add(9 * time.Hour)),
				Reason:     "import",
			},
		})

		require.NoError(t, err)
		assert.Len(t, res, 2)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("an entry conflicting with an earlier batch entry fails the whole batch", func(t *testing.T) {
		deps := setupServiceTest(t)
		emp := deps.addEmployee(t, "")

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		res, err := deps.service.BulkCreateCorrections(ctx, actorID, []timelog.CreateCorrectionRequest{
			{
				EmployeeID: emp.ID.String(),
				LogType:    timelog.TypeWork,
				StartTime:  base,
				EndTime:    ptr(base.Add(4 * time.Hour)),
				Reason:     "import",
			},
			{
				EmployeeID: emp.ID.String(),
				LogType:    timelog.TypeWork,
				StartTime:  base.Add(2 * time.Hour),
				EndTime:    ptr(base.Add(6 * time.Hour)),
				Reason:     "import",
			},
		})

		assert.ErrorIs(t, err, timelogerrors.ErrOverlap)
		assert.Nil(t, res)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestUpdateEntry(t *testing.T) {
	ctx := context.Background()
	actorID := uuid.New().String()
	base := time.Date(2026, 8, 24, 8, 0, 0, 0, time.UTC)

	seed := func(deps *testDeps, employeeID uuid.UUID, logType string, start, end time.Time) *timelog.TimeLog {
		row := &timelog.TimeLog{
			ID:          uuid.New(),
			EmployeeID:  employeeID,
			LogType:     logType,
			StartTime:   start,
			EndTime:     &end,
			ClockMethod: timelog.MethodPin,
		}
		deps.repo.logs[row.ID.String()] = row
		return row
	}

	t.Run("end before start fails before any query", func(t *testing.T) {
		deps := setupServiceTest(t)

		_, err := deps.service.UpdateEntry(ctx, actorID, uuid.New().String(), timelog.UpdateEntryRequest{
			StartTime: ptr(base),
			EndTime:   ptr(base.Add(-time.Minute)),
		})

		assert.ErrorIs(t, err, timelogerrors.ErrEndBeforeStart)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("moving a work entry onto a neighbour is rejected", func(t *testing.T) {
		deps := setupServiceTest(t)
		emp := deps.addEmployee(t, "")
		seed(deps, emp.ID, timelog.TypeWork, base, base.Add(4*time.Hour))
		target := seed(deps, emp.ID, timelog.TypeWork, base.Add(5*time.Hour), base.Add(9*time.Hour))

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		_, err := deps.service.UpdateEntry(ctx, actorID, target.ID.String(), timelog.UpdateEntryRequest{
			StartTime: ptr(base.Add(3 * time.Hour)),
		})

		assert.ErrorIs(t, err, timelogerrors.ErrOverlap)
	})

	t.Run("an entry can keep its own interval", func(t *testing.T) {
		deps := setupServiceTest(t)
		emp := deps.addEmployee(t, "")
		target := seed(deps, emp.ID, timelog.TypeWork, base, base.Add(4*time.Hour))

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		resp, err := deps.service.UpdateEntry(ctx, actorID, target.ID.String(), timelog.UpdateEntryRequest{
			StartTime: ptr(base),
			Note:      ptr("adjusted"),
		})

		require.NoError(t, err)
		require.NotNil(t, resp.CorrectedBy)
		assert.Equal(t, actorID, *resp.CorrectedBy)
	})

	t.Run("break rows slide without overlap checks", func(t *testing.T) {
		deps := setupServiceTest(t)
		emp := deps.addEmployee(t, "")
		seed(deps, emp.ID, timelog.TypeWork, base, base.Add(8*time.Hour))
		brk := seed(deps, emp.ID, timelog.TypeBreak, base.Add(3*time.Hour), base.Add(4*time.Hour))

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		_, err := deps.service.UpdateEntry(ctx, actorID, brk.ID.String(), timelog.UpdateEntryRequest{
			StartTime: ptr(base.Add(2 * time.Hour)),
			EndTime:   ptr(base.Add(3 * time.Hour)),
		})

		assert.NoError(t, err)
	})
}

func TestGetByEmployee(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2026, 8, 24, 8, 0, 0, 0, time.UTC)

	deps := setupServiceTest(t)
	emp := deps.addEmployee(t, "")
	end := base.Add(4 * time.Hour)
	deps.repo.logs["a"] = &timelog.TimeLog{
		ID:          uuid.New(),
		EmployeeID:  emp.ID,
		LogType:     timelog.TypeWork,
		StartTime:   base,
		EndTime:     &end,
		ClockMethod: timelog.MethodPin,
	}

	res, err := deps.service.GetByEmployee(ctx, emp.ID.String(), base.Add(-time.Hour), base.Add(24*time.Hour))

	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, timelog.TypeWork, res[0].LogType)
	assert.NotNil(t, res[0].EndTime)
}
