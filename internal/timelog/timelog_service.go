package timelog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go-wfm/internal/events"
	"go-wfm/internal/messaging/kafka"
	"go-wfm/internal/shared/contextutil"
	timelogerrors "go-wfm/internal/timelog/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

//go:generate mockgen -source=timelog_service.go -destination=mock/timelog_service_mock.go -package=mock
type Service interface {
	ClockIn(ctx context.Context, employeeID, stationID, method string) (ToggleResponse, error)
	ClockOut(ctx context.Context, logID string) (ToggleResponse, error)
	PinToggle(ctx context.Context, pin string, stationID *string) (ToggleResponse, error)
	StartBreak(ctx context.Context, employeeID string) (ToggleResponse, error)
	EndBreak(ctx context.Context, employeeID string) (ToggleResponse, error)
	CreateCorrection(ctx context.Context, actorID string, req CreateCorrectionRequest) (TimeLogResponse, error)
	EditCorrection(ctx context.Context, actorID, logID string, req EditCorrectionRequest) (TimeLogResponse, error)
	DeleteCorrection(ctx context.Context, actorID, logID, reason string) error
	BulkCreateCorrections(ctx context.Context, actorID string, reqs []CreateCorrectionRequest) ([]TimeLogResponse, error)
	UpdateEntry(ctx context.Context, actorID, logID string, req UpdateEntryRequest) (TimeLogResponse, error)
	GetByEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]TimeLogResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	outbox kafka.OutboxRepository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(db, repo, nil, logger...)
}

func NewServiceWithOutbox(db *sql.DB, repo Repository, outboxRepo kafka.OutboxRepository, logger ...*zap.Logger) Service {
	l := zap.L().Named("timelog.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("timelog.service")
	}
	return &service{db: db, repo: repo, outbox: outboxRepo, logger: l}
}

func (s *service) ClockIn(ctx context.Context, employeeID, stationID, method string) (ToggleResponse, error) {
	if employeeID == "" {
		return ToggleResponse{}, timelogerrors.ErrEmployeeNotFound
	}
	if stationID == "" {
		return ToggleResponse{}, timelogerrors.ErrStationRequired
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ToggleResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	row, err := s.openWorkLog(ctx, qtx, employeeID, stationID, method)
	if err != nil {
		return ToggleResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return ToggleResponse{}, err
	}

	s.logger.Info("clock in",
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.String("employee_id", employeeID),
		zap.String("station_id", stationID),
	)
	return ToggleResponse{Message: "Clocked in successfully", LogID: row.ID.String(), Action: "CLOCKED_IN"}, nil
}

// openWorkLog performs the atomic clock-in inside an already-open transaction:
// the open-log precondition check, the WORK row insert, and the last-station
// pointer update all commit or roll back together.
func (s *service) openWorkLog(ctx context.Context, qtx Repository, employeeID, stationID, method string) (*TimeLog, error) {
	_, err := qtx.FindOpenLog(ctx, employeeID, TypeWork)
	if err == nil {
		return nil, timelogerrors.ErrAlreadyClockedIn
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if method == "" {
		method = MethodPin
	}
	stationUUID, err := uuid.Parse(stationID)
	if err != nil {
		return nil, timelogerrors.ErrStationRequired
	}

	now := time.Now().UTC()
	row := &TimeLog{
		ID:          uuid.New(),
		EmployeeID:  uuid.MustParse(employeeID),
		StationID:   &stationUUID,
		LogType:     TypeWork,
		StartTime:   now,
		ClockMethod: method,
	}
	if err := qtx.Create(ctx, row); err != nil {
		return nil, err
	}
	if err := qtx.UpdateEmployeeLastStation(ctx, employeeID, stationID); err != nil {
		return nil, err
	}
	return row, nil
}

// ClockOut closes any open log by id. It deliberately does not check the log
// type or owner: callers are trusted to pass a valid open log id.
func (s *service) ClockOut(ctx context.Context, logID string) (ToggleResponse, error) {
	if logID == "" {
		return ToggleResponse{}, timelogerrors.ErrTimeLogNotFound
	}

	row, err := s.repo.FindByID(ctx, logID)
	if err != nil {
		return ToggleResponse{}, err
	}

	now := time.Now().UTC()
	row.EndTime = &now
	if err := s.repo.Update(ctx, row); err != nil {
		return ToggleResponse{}, err
	}

	s.logger.Info("clock out",
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.String("log_id", logID),
	)
	return ToggleResponse{Message: "Clocked out successfully", LogID: logID, Action: "CLOCKED_OUT"}, nil
}

// PinToggle resolves the employee by comparing the supplied PIN against every
// stored hash. The scan is sequential on purpose: the hash comparison, not the
// plaintext, is authoritative, so a colliding plaintext can only be resolved
// by verifying against each hash in turn.
func (s *service) PinToggle(ctx context.Context, pin string, stationID *string) (ToggleResponse, error) {
	if len(pin) < 4 || len(pin) > 6 {
		return ToggleResponse{}, timelogerrors.ErrPinLength
	}

	holders, err := s.repo.ListPinHolders(ctx)
	if err != nil {
		return ToggleResponse{}, err
	}

	var emp *EmployeeRef
	for i := range holders {
		if holders[i].PinHash == nil {
			continue
		}
		if bcrypt.CompareHashAndPassword([]byte(*holders[i].PinHash), []byte(pin)) == nil {
			emp = &holders[i]
			break
		}
	}
	if emp == nil {
		s.logger.Warn("pin toggle rejected", zap.String("request_id", contextutil.GetRequestID(ctx)))
		return ToggleResponse{}, timelogerrors.ErrInvalidPin
	}

	open, err := s.repo.FindOpenLog(ctx, emp.ID.String(), TypeWork)
	if err == nil {
		now := time.Now().UTC()
		open.EndTime = &now
		if err := s.repo.Update(ctx, open); err != nil {
			return ToggleResponse{}, err
		}
		s.logger.Info("pin clock out", zap.String("employee_id", emp.ID.String()))
		return ToggleResponse{
			Message: fmt.Sprintf("%s clocked out successfully", emp.FullName),
			LogID:   open.ID.String(),
			Action:  "CLOCKED_OUT",
		}, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return ToggleResponse{}, err
	}

	// Station resolution: explicit station first, then the employee's last
	// known station, otherwise the kiosk has to ask.
	effStation := ""
	if stationID != nil && *stationID != "" {
		effStation = *stationID
	} else if emp.LastStationID != nil {
		effStation = emp.LastStationID.String()
	}
	if effStation == "" {
		return ToggleResponse{}, timelogerrors.ErrStationRequired
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ToggleResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	row, err := s.openWorkLog(ctx, qtx, emp.ID.String(), effStation, MethodPin)
	if err != nil {
		return ToggleResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return ToggleResponse{}, err
	}

	s.logger.Info("pin clock in",
		zap.String("employee_id", emp.ID.String()),
		zap.String("station_id", effStation),
	)
	return ToggleResponse{
		Message: fmt.Sprintf("%s clocked in successfully", emp.FullName),
		LogID:   row.ID.String(),
		Action:  "CLOCKED_IN",
	}, nil
}

func (s *service) StartBreak(ctx context.Context, employeeID string) (ToggleResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ToggleResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	work, err := qtx.FindOpenLog(ctx, employeeID, TypeWork)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ToggleResponse{}, timelogerrors.ErrNoActiveWorkSession
		}
		return ToggleResponse{}, err
	}

	_, err = qtx.FindOpenLog(ctx, employeeID, TypeBreak)
	if err == nil {
		return ToggleResponse{}, timelogerrors.ErrAlreadyOnBreak
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return ToggleResponse{}, err
	}

	// Break inherits the station of the active work session
	row := &TimeLog{
		ID:          uuid.New(),
		EmployeeID:  work.EmployeeID,
		StationID:   work.StationID,
		LogType:     TypeBreak,
		StartTime:   time.Now().UTC(),
		ClockMethod: work.ClockMethod,
	}
	if err := qtx.Create(ctx, row); err != nil {
		return ToggleResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return ToggleResponse{}, err
	}

	s.logger.Info("break started", zap.String("employee_id", employeeID))
	return ToggleResponse{Message: "Break started", LogID: row.ID.String(), Action: "BREAK_STARTED"}, nil
}

func (s *service) EndBreak(ctx context.Context, employeeID string) (ToggleResponse, error) {
	row, err := s.repo.FindOpenLog(ctx, employeeID, TypeBreak)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ToggleResponse{}, timelogerrors.ErrNoActiveBreak
		}
		return ToggleResponse{}, err
	}

	now := time.Now().UTC()
	row.EndTime = &now
	if err := s.repo.Update(ctx, row); err != nil {
		return ToggleResponse{}, err
	}

	s.logger.Info("break ended", zap.String("employee_id", employeeID))
	return ToggleResponse{Message: "Break ended", LogID: row.ID.String(), Action: "BREAK_ENDED"}, nil
}

func (s *service) CreateCorrection(ctx context.Context, actorID string, req CreateCorrectionRequest) (TimeLogResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return TimeLogResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	row, err := s.createCorrectionTx(ctx, qtx, s.outboxTx(tx), actorID, req)
	if err != nil {
		return TimeLogResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return TimeLogResponse{}, err
	}
	return mapToResponse(*row), nil
}

func (s *service) createCorrectionTx(ctx context.Context, qtx Repository, otx kafka.OutboxRepository, actorID string, req CreateCorrectionRequest) (*TimeLog, error) {
	if req.EndTime != nil && req.EndTime.Before(req.StartTime) {
		return nil, timelogerrors.ErrEndBeforeStart
	}

	overlap, err := qtx.HasOverlap(ctx, req.EmployeeID, req.StartTime, req.EndTime, nil, false)
	if err != nil {
		return nil, err
	}
	if overlap && !req.IsAddition {
		s.logger.Warn("correction overlap detected",
			zap.String("request_id", contextutil.GetRequestID(ctx)),
			zap.String("employee_id", req.EmployeeID),
			zap.Time("start_time", req.StartTime),
		)
		return nil, timelogerrors.ErrOverlap
	}

	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return nil, timelogerrors.ErrEmployeeNotFound
	}

	row := &TimeLog{
		ID:          uuid.New(),
		EmployeeID:  uuid.MustParse(req.EmployeeID),
		LogType:     req.LogType,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Note:        composeNote(req.Reason, req.Note),
		ClockMethod: MethodManual,
		CorrectedBy: &actorUUID,
	}
	if req.StationID != nil && *req.StationID != "" {
		stationUUID, err := uuid.Parse(*req.StationID)
		if err != nil {
			return nil, timelogerrors.ErrStationRequired
		}
		row.StationID = &stationUUID
	}

	if err := qtx.Create(ctx, row); err != nil {
		return nil, err
	}
	if err := s.writeAudit(ctx, qtx, otx, row, AuditActionCreate, actorUUID, req.Reason); err != nil {
		return nil, err
	}
	return row, nil
}

func (s *service) EditCorrection(ctx context.Context, actorID, logID string, req EditCorrectionRequest) (TimeLogResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return TimeLogResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	row, err := qtx.FindByID(ctx, logID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TimeLogResponse{}, timelogerrors.ErrTimeLogNotFound
		}
		return TimeLogResponse{}, err
	}

	if req.StartTime != nil || req.EndTime != nil {
		// Fall back to the stored value for whichever endpoint was omitted
		effStart := row.StartTime
		if req.StartTime != nil {
			effStart = *req.StartTime
		}
		effEnd := row.EndTime
		if req.EndTime != nil {
			effEnd = req.EndTime
		}

		exclude := logID
		overlap, err := qtx.HasOverlap(ctx, row.EmployeeID.String(), effStart, effEnd, &exclude, false)
		if err != nil {
			return TimeLogResponse{}, err
		}
		if overlap {
			return TimeLogResponse{}, timelogerrors.ErrOverlap
		}

		row.StartTime = effStart
		row.EndTime = effEnd
	}

	if req.StationID != nil && *req.StationID != "" {
		stationUUID, err := uuid.Parse(*req.StationID)
		if err != nil {
			return TimeLogResponse{}, timelogerrors.ErrStationRequired
		}
		row.StationID = &stationUUID
	}
	if req.Note != nil {
		row.Note = composeNote(req.Reason, req.Note)
	}

	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return TimeLogResponse{}, timelogerrors.ErrEmployeeNotFound
	}
	row.CorrectedBy = &actorUUID

	if err := qtx.Update(ctx, row); err != nil {
		return TimeLogResponse{}, err
	}
	if err := s.writeAudit(ctx, qtx, s.outboxTx(tx), row, AuditActionEdit, actorUUID, req.Reason); err != nil {
		return TimeLogResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return TimeLogResponse{}, err
	}
	return mapToResponse(*row), nil
}

func (s *service) DeleteCorrection(ctx context.Context, actorID, logID, reason string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	row, err := qtx.FindByID(ctx, logID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return timelogerrors.ErrTimeLogNotFound
		}
		return err
	}

	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return timelogerrors.ErrEmployeeNotFound
	}

	// The deletion reason leads the note so history screens show it first
	note := reason
	if row.Note != nil && *row.Note != "" {
		note = reason + ": " + *row.Note
	}
	if err := qtx.SoftDelete(ctx, logID, &actorUUID, note); err != nil {
		return err
	}
	if err := s.writeAudit(ctx, qtx, s.outboxTx(tx), row, AuditActionDelete, actorUUID, reason); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.logger.Info("time log soft deleted",
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.String("log_id", logID),
		zap.String("actor_id", actorID),
	)
	return nil
}

// BulkCreateCorrections inserts all entries in one transaction. Every entry
// is overlap-checked against the live transactional view, so an entry also
// conflicts with earlier entries of the same batch; any failure rolls back
// the whole batch.
func (s *service) BulkCreateCorrections(ctx context.Context, actorID string, reqs []CreateCorrectionRequest) ([]TimeLogResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	otx := s.outboxTx(tx)
	res := make([]TimeLogResponse, 0, len(reqs))
	for _, req := range reqs {
		row, err := s.createCorrectionTx(ctx, qtx, otx, actorID, req)
		if err != nil {
			return nil, err
		}
		res = append(res, mapToResponse(*row))
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *service) UpdateEntry(ctx context.Context, actorID, logID string, req UpdateEntryRequest) (TimeLogResponse, error) {
	// Fail fast before touching the store
	if req.StartTime != nil && req.EndTime != nil && req.EndTime.Before(*req.StartTime) {
		return TimeLogResponse{}, timelogerrors.ErrEndBeforeStart
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return TimeLogResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	row, err := qtx.FindByID(ctx, logID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TimeLogResponse{}, timelogerrors.ErrTimeLogNotFound
		}
		return TimeLogResponse{}, err
	}

	effStart := row.StartTime
	if req.StartTime != nil {
		effStart = *req.StartTime
	}
	effEnd := row.EndTime
	if req.EndTime != nil {
		effEnd = req.EndTime
	}
	if effEnd != nil && effEnd.Before(effStart) {
		return TimeLogResponse{}, timelogerrors.ErrEndBeforeStart
	}

	// Direct edits only guard WORK intervals; break rows may slide freely
	// inside their session.
	if row.LogType == TypeWork && (req.StartTime != nil || req.EndTime != nil) {
		exclude := logID
		overlap, err := qtx.HasOverlap(ctx, row.EmployeeID.String(), effStart, effEnd, &exclude, true)
		if err != nil {
			return TimeLogResponse{}, err
		}
		if overlap {
			return TimeLogResponse{}, timelogerrors.ErrOverlap
		}
	}

	row.StartTime = effStart
	row.EndTime = effEnd
	if req.StationID != nil && *req.StationID != "" {
		stationUUID, err := uuid.Parse(*req.StationID)
		if err != nil {
			return TimeLogResponse{}, timelogerrors.ErrStationRequired
		}
		row.StationID = &stationUUID
	}
	if req.Note != nil {
		row.Note = req.Note
	}

	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return TimeLogResponse{}, timelogerrors.ErrEmployeeNotFound
	}
	row.CorrectedBy = &actorUUID

	if err := qtx.Update(ctx, row); err != nil {
		return TimeLogResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return TimeLogResponse{}, err
	}
	return mapToResponse(*row), nil
}

func (s *service) GetByEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]TimeLogResponse, error) {
	rows, err := s.repo.FindAllByEmployee(ctx, employeeID, from, to)
	if err != nil {
		return nil, err
	}
	res := make([]TimeLogResponse, len(rows))
	for i, r := range rows {
		res[i] = mapToResponse(r)
	}
	return res, nil
}

func (s *service) outboxTx(tx *sql.Tx) kafka.OutboxRepository {
	if s.outbox == nil {
		return nil
	}
	return s.outbox.WithTx(tx)
}

func (s *service) writeAudit(ctx context.Context, qtx Repository, otx kafka.OutboxRepository, row *TimeLog, action string, actorUUID uuid.UUID, reason string) error {
	now := time.Now().UTC()
	audit := &TimeLogAudit{
		ID:         uuid.New(),
		TimeLogID:  row.ID,
		Action:     action,
		ActorID:    &actorUUID,
		OccurredAt: now,
	}
	if reason != "" {
		audit.Reason = &reason
	}
	if err := qtx.CreateAudit(ctx, audit); err != nil {
		return err
	}

	if otx == nil {
		return nil
	}

	rid := contextutil.GetRequestID(ctx)
	event := events.TimeLogCorrectedEvent{
		EventType:  "timelog_corrected",
		RequestID:  rid,
		TimeLogID:  row.ID.String(),
		EmployeeID: row.EmployeeID.String(),
		Action:     action,
		ActorID:    actorUUID.String(),
		Reason:     reason,
		OccurredAt: now,
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return otx.Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     rid,
		AggregateType: "timelog",
		AggregateID:   row.ID.String(),
		EventType:     event.EventType,
		Topic:         events.TimeLogCorrectedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func composeNote(reason string, note *string) *string {
	v := reason
	if note != nil && *note != "" {
		v = reason + ": " + *note
	}
	if v == "" {
		return nil
	}
	return &v
}

func mapToResponse(l TimeLog) TimeLogResponse {
	resp := TimeLogResponse{
		ID:          l.ID.String(),
		EmployeeID:  l.EmployeeID.String(),
		LogType:     l.LogType,
		StartTime:   l.StartTime.Format(time.RFC3339),
		Note:        l.Note,
		ClockMethod: l.ClockMethod,
	}
	if l.StationID != nil {
		v := l.StationID.String()
		resp.StationID = &v
	}
	if l.EndTime != nil {
		v := l.EndTime.Format(time.RFC3339)
		resp.EndTime = &v
	}
	if l.CorrectedBy != nil {
		v := l.CorrectedBy.String()
		resp.CorrectedBy = &v
	}
	if l.DeletedAt.Valid {
		v := l.DeletedAt.Time.Format(time.RFC3339)
		resp.DeletedAt = &v
	}
	return resp
}
