package station_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"go-wfm/internal/station"
	stationerrors "go-wfm/internal/station/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type memStationRepo struct {
	rows       map[string]*station.Station
	createErr  error
	activeOnly bool
}

func newMemStationRepo() *memStationRepo {
	return &memStationRepo{rows: make(map[string]*station.Station)}
}

func (m *memStationRepo) WithTx(tx *sql.Tx) station.Repository { return m }

func (m *memStationRepo) Create(ctx context.Context, st *station.Station) error {
	if m.createErr != nil {
		return m.createErr
	}
	cp := *st
	m.rows[st.ID.String()] = &cp
	return nil
}

func (m *memStationRepo) FindAll(ctx context.Context, activeOnly bool) ([]station.Station, error) {
	m.activeOnly = activeOnly
	var res []station.Station
	for _, st := range m.rows {
		if activeOnly && !st.Active {
			continue
		}
		res = append(res, *st)
	}
	return res, nil
}

func (m *memStationRepo) FindByID(ctx context.Context, id string) (*station.Station, error) {
	st, ok := m.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *st
	return &cp, nil
}

func (m *memStationRepo) Update(ctx context.Context, st *station.Station) error {
	cp := *st
	m.rows[st.ID.String()] = &cp
	return nil
}

func setupStationTest(t *testing.T) (*memStationRepo, sqlmock.Sqlmock, station.Service) {
	t.Helper()
	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := newMemStationRepo()
	return repo, sqlMock, station.NewService(db, repo)
}

func TestStationService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults capacity to one", func(t *testing.T) {
		repo, sqlMock, svc := setupStationTest(t)

		sqlMock.ExpectBegin()
		sqlMock.ExpectCommit()

		resp, err := svc.Create(ctx, station.CreateStationRequest{
			Name:     "Pack 1",
			Category: station.CategoryPacking,
			Zone:     "OUTBOUND",
		})

		require.NoError(t, err)
		assert.Equal(t, 1, resp.Capacity)
		assert.True(t, resp.Active)
		assert.Len(t, repo.rows, 1)
	})

	t.Run("duplicate name maps to conflict", func(t *testing.T) {
		repo, sqlMock, svc := setupStationTest(t)
		repo.createErr = errors.New(`duplicate key value violates unique constraint "uq_station_name"`)

		sqlMock.ExpectBegin()
		sqlMock.ExpectRollback()

		_, err := svc.Create(ctx, station.CreateStationRequest{
			Name:     "Pack 1",
			Category: station.CategoryPacking,
		})

		assert.ErrorIs(t, err, stationerrors.ErrStationNameTaken)
	})
}

func TestStationService_Deactivate(t *testing.T) {
	ctx := context.Background()

	t.Run("keeps the row, flips the flag", func(t *testing.T) {
		repo, sqlMock, svc := setupStationTest(t)
		st := &station.Station{ID: uuid.New(), Name: "Dock 3", Category: station.CategoryReceiving, Active: true}
		repo.rows[st.ID.String()] = st

		sqlMock.ExpectBegin()
		sqlMock.ExpectCommit()

		err := svc.Deactivate(ctx, st.ID.String())

		require.NoError(t, err)
		assert.False(t, repo.rows[st.ID.String()].Active)
	})

	t.Run("unknown station", func(t *testing.T) {
		_, sqlMock, svc := setupStationTest(t)

		sqlMock.ExpectBegin()
		sqlMock.ExpectRollback()

		err := svc.Deactivate(ctx, uuid.New().String())

		assert.ErrorIs(t, err, stationerrors.ErrStationNotFound)
	})
}

func TestStationService_GetAll(t *testing.T) {
	ctx := context.Background()

	repo, _, svc := setupStationTest(t)
	active := &station.Station{ID: uuid.New(), Name: "Pick 1", Category: station.CategoryPicking, Active: true}
	inactive := &station.Station{ID: uuid.New(), Name: "Pick 2", Category: station.CategoryPicking}
	repo.rows[active.ID.String()] = active
	repo.rows[inactive.ID.String()] = inactive

	res, err := svc.GetAll(ctx, true)

	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, "Pick 1", res[0].Name)
	assert.True(t, repo.activeOnly)
}
