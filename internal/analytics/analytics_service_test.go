package analytics_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-wfm/internal/analytics"
	analyticserrors "go-wfm/internal/analytics/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAnalyticsRepo struct {
	loads      int
	stationErr error
	stations   []analytics.StationHours
	days       []analytics.DayHours
	activeNow  int64
	headcount  int64
	corrStats  []analytics.CorrectionStat
}

func (f *fakeAnalyticsRepo) HoursByStation(ctx context.Context, from, to time.Time) ([]analytics.StationHours, error) {
	f.loads++
	if f.stationErr != nil {
		return nil, f.stationErr
	}
	return f.stations, nil
}

func (f *fakeAnalyticsRepo) HoursByDay(ctx context.Context, from, to time.Time) ([]analytics.DayHours, error) {
	return f.days, nil
}

func (f *fakeAnalyticsRepo) CountActiveNow(ctx context.Context) (int64, error) {
	return f.activeNow, nil
}

func (f *fakeAnalyticsRepo) CountHeadcount(ctx context.Context) (int64, error) {
	return f.headcount, nil
}

func (f *fakeAnalyticsRepo) CorrectionStats(ctx context.Context, from, to time.Time) ([]analytics.CorrectionStat, error) {
	return f.corrStats, nil
}

func TestAnalyticsService_GetSnapshot(t *testing.T) {
	ctx := context.Background()
	from := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 7)

	t.Run("serves repeat reads from the cache until the TTL lapses", func(t *testing.T) {
		clock := from
		repo := &fakeAnalyticsRepo{activeNow: 12, headcount: 80}
		svc := analytics.NewService(repo, nil,
			analytics.WithClock(func() time.Time { return clock }),
			analytics.WithTTL(time.Minute),
		)

		_, err := svc.GetSnapshot(ctx, from, to)
		require.NoError(t, err)
		_, err = svc.GetSnapshot(ctx, from, to)
		require.NoError(t, err)
		assert.Equal(t, 1, repo.loads)

		// advance past the TTL, the next read recomputes
		clock = clock.Add(2 * time.Minute)
		snap, err := svc.GetSnapshot(ctx, from, to)
		require.NoError(t, err)
		assert.Equal(t, 2, repo.loads)
		assert.Equal(t, int64(12), snap.ActiveNow)
		assert.Equal(t, int64(80), snap.Headcount)
	})

	t.Run("distinct ranges are cached separately", func(t *testing.T) {
		repo := &fakeAnalyticsRepo{}
		svc := analytics.NewService(repo, nil, analytics.WithTTL(time.Minute))

		_, err := svc.GetSnapshot(ctx, from, to)
		require.NoError(t, err)
		_, err = svc.GetSnapshot(ctx, from, from.AddDate(0, 0, 1))
		require.NoError(t, err)

		assert.Equal(t, 2, repo.loads)
	})

	t.Run("zone rollup aggregates station hours", func(t *testing.T) {
		repo := &fakeAnalyticsRepo{stations: []analytics.StationHours{
			{StationID: "a", StationName: "Pack 1", Zone: "OUTBOUND", Hours: 10},
			{StationID: "b", StationName: "Pack 2", Zone: "OUTBOUND", Hours: 6},
			{StationID: "c", StationName: "Dock 1", Hours: 4},
		}}
		svc := analytics.NewService(repo, nil)

		snap, err := svc.GetSnapshot(ctx, from, to)

		require.NoError(t, err)
		require.Len(t, snap.HoursByZone, 2)
		assert.Equal(t, "OUTBOUND", snap.HoursByZone[0].Zone)
		assert.Equal(t, 16.0, snap.HoursByZone[0].Hours)
		assert.Equal(t, "UNZONED", snap.HoursByZone[1].Zone)
	})

	t.Run("a failed load is surfaced, not masked", func(t *testing.T) {
		repo := &fakeAnalyticsRepo{stationErr: errors.New("db down")}
		svc := analytics.NewService(repo, nil)

		_, err := svc.GetSnapshot(ctx, from, to)

		assert.EqualError(t, err, "db down")
	})

	t.Run("inverted range", func(t *testing.T) {
		svc := analytics.NewService(&fakeAnalyticsRepo{}, nil)

		_, err := svc.GetSnapshot(ctx, to, from)

		assert.ErrorIs(t, err, analyticserrors.ErrInvalidRange)
	})
}

func TestAnalyticsService_Refresh(t *testing.T) {
	ctx := context.Background()
	from := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 7)

	repo := &fakeAnalyticsRepo{}
	svc := analytics.NewService(repo, nil, analytics.WithTTL(time.Hour))

	_, err := svc.GetSnapshot(ctx, from, to)
	require.NoError(t, err)

	_, err = svc.Refresh(ctx, from, to)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.loads)

	// the refreshed value is re-cached
	_, err = svc.GetSnapshot(ctx, from, to)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.loads)
}
