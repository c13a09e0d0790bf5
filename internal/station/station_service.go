package station

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	stationerrors "go-wfm/internal/station/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

//go:generate mockgen -source=station_service.go -destination=mock/station_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateStationRequest) (StationResponse, error)
	GetAll(ctx context.Context, activeOnly bool) ([]StationResponse, error)
	GetByID(ctx context.Context, id string) (StationResponse, error)
	Update(ctx context.Context, id string, req UpdateStationRequest) (StationResponse, error)
	Deactivate(ctx context.Context, id string) error
}

type service struct {
	db   *sql.DB
	repo Repository
}

func NewService(db *sql.DB, repo Repository) Service {
	return &service{db: db, repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateStationRequest) (StationResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return StationResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	capacity := req.Capacity
	if capacity == 0 {
		capacity = 1
	}

	st := &Station{
		ID:       uuid.New(),
		Name:     req.Name,
		Category: req.Category,
		Zone:     req.Zone,
		Capacity: capacity,
		Active:   true,
	}

	if err := qtx.Create(ctx, st); err != nil {
		return StationResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return StationResponse{}, err
	}

	return mapToResponse(*st), nil
}

func (s *service) GetAll(ctx context.Context, activeOnly bool) ([]StationResponse, error) {
	rows, err := s.repo.FindAll(ctx, activeOnly)
	if err != nil {
		return nil, err
	}
	res := make([]StationResponse, len(rows))
	for i, st := range rows {
		res[i] = mapToResponse(st)
	}
	return res, nil
}

func (s *service) GetByID(ctx context.Context, id string) (StationResponse, error) {
	st, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return StationResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*st), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateStationRequest) (StationResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return StationResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	st, err := qtx.FindByID(ctx, id)
	if err != nil {
		return StationResponse{}, mapRepositoryError(err)
	}

	if req.Name != nil {
		st.Name = *req.Name
	}
	if req.Category != nil {
		st.Category = *req.Category
	}
	if req.Zone != nil {
		st.Zone = *req.Zone
	}
	if req.Capacity != nil {
		st.Capacity = *req.Capacity
	}
	if req.Active != nil {
		st.Active = *req.Active
	}

	if err := qtx.Update(ctx, st); err != nil {
		return StationResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return StationResponse{}, err
	}

	return mapToResponse(*st), nil
}

// Deactivate flips the active flag instead of deleting the row so
// historical time logs keep a valid station reference.
func (s *service) Deactivate(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	st, err := qtx.FindByID(ctx, id)
	if err != nil {
		return mapRepositoryError(err)
	}

	st.Active = false
	if err := qtx.Update(ctx, st); err != nil {
		return mapRepositoryError(err)
	}

	return tx.Commit()
}

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return stationerrors.ErrStationNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return stationerrors.ErrStationNameTaken
	}
	if strings.Contains(strings.ToLower(err.Error()), "duplicate key value") {
		return stationerrors.ErrStationNameTaken
	}
	return err
}

func mapToResponse(st Station) StationResponse {
	return StationResponse{
		ID:       st.ID.String(),
		Name:     st.Name,
		Category: st.Category,
		Zone:     st.Zone,
		Capacity: st.Capacity,
		Active:   st.Active,
	}
}
