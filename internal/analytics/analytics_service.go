package analytics

import (
	"context"
	"sort"
	"time"

	analyticserrors "go-wfm/internal/analytics/errors"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const DefaultSnapshotTTL = 60 * time.Second

//go:generate mockgen -source=analytics_service.go -destination=mock/analytics_service_mock.go -package=mock
type Service interface {
	GetSnapshot(ctx context.Context, from, to time.Time) (Snapshot, error)
	Refresh(ctx context.Context, from, to time.Time) (Snapshot, error)
	GetCorrectionStats(ctx context.Context, from, to time.Time) ([]CorrectionStat, error)
}

type service struct {
	repo   Repository
	cache  *snapshotCache
	sf     *singleflight.Group
	now    func() time.Time
	logger *zap.Logger
}

// Option customizes the service, mainly so tests can pin the clock.
type Option func(*service)

func WithClock(now func() time.Time) Option {
	return func(s *service) {
		s.now = now
		s.cache.now = now
	}
}

func WithTTL(ttl time.Duration) Option {
	return func(s *service) { s.cache.ttl = ttl }
}

func NewService(repo Repository, logger *zap.Logger, opts ...Option) Service {
	l := zap.L()
	if logger != nil {
		l = logger
	}
	s := &service{
		repo:   repo,
		cache:  newSnapshotCache(DefaultSnapshotTTL, time.Now),
		sf:     &singleflight.Group{},
		now:    time.Now,
		logger: l.Named("analytics.service"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func rangeKey(from, to time.Time) string {
	return from.UTC().Format(time.RFC3339) + "|" + to.UTC().Format(time.RFC3339)
}

// GetSnapshot serves dashboard aggregates from the TTL cache, falling
// through to SQL behind singleflight on a miss. A failed load is returned
// to the caller as-is, never papered over with stale or synthetic data.
func (s *service) GetSnapshot(ctx context.Context, from, to time.Time) (Snapshot, error) {
	if !to.After(from) {
		return Snapshot{}, analyticserrors.ErrInvalidRange
	}

	key := rangeKey(from, to)
	if snap, ok := s.cache.Get(key); ok {
		return snap, nil
	}

	v, err, _ := s.sf.Do(key, func() (any, error) {
		if snap, ok := s.cache.Get(key); ok {
			return snap, nil
		}
		return s.load(ctx, key, from, to)
	})
	if err != nil {
		return Snapshot{}, err
	}
	return v.(Snapshot), nil
}

// Refresh bypasses the cache and recomputes the snapshot.
func (s *service) Refresh(ctx context.Context, from, to time.Time) (Snapshot, error) {
	if !to.After(from) {
		return Snapshot{}, analyticserrors.ErrInvalidRange
	}
	s.cache.Invalidate()
	return s.load(ctx, rangeKey(from, to), from, to)
}

func (s *service) GetCorrectionStats(ctx context.Context, from, to time.Time) ([]CorrectionStat, error) {
	if !to.After(from) {
		return nil, analyticserrors.ErrInvalidRange
	}
	return s.repo.CorrectionStats(ctx, from, to)
}

func (s *service) load(ctx context.Context, key string, from, to time.Time) (Snapshot, error) {
	byStation, err := s.repo.HoursByStation(ctx, from, to)
	if err != nil {
		s.logger.Error("load hours by station failed", zap.Error(err))
		return Snapshot{}, err
	}
	byDay, err := s.repo.HoursByDay(ctx, from, to)
	if err != nil {
		s.logger.Error("load hours by day failed", zap.Error(err))
		return Snapshot{}, err
	}
	activeNow, err := s.repo.CountActiveNow(ctx)
	if err != nil {
		s.logger.Error("load active-now count failed", zap.Error(err))
		return Snapshot{}, err
	}
	headcount, err := s.repo.CountHeadcount(ctx)
	if err != nil {
		s.logger.Error("load headcount failed", zap.Error(err))
		return Snapshot{}, err
	}

	snap := Snapshot{
		GeneratedAt:    s.now().UTC().Format(time.RFC3339),
		From:           from.UTC().Format(time.RFC3339),
		To:             to.UTC().Format(time.RFC3339),
		ActiveNow:      activeNow,
		Headcount:      headcount,
		HoursByStation: byStation,
		HoursByZone:    rollupZones(byStation),
		HoursByDay:     byDay,
	}
	s.cache.Set(key, snap)
	return snap, nil
}

func rollupZones(byStation []StationHours) []ZoneHours {
	totals := make(map[string]float64)
	for _, row := range byStation {
		zone := row.Zone
		if zone == "" {
			zone = "UNZONED"
		}
		totals[zone] += row.Hours
	}
	res := make([]ZoneHours, 0, len(totals))
	for zone, hours := range totals {
		res = append(res, ZoneHours{Zone: zone, Hours: hours})
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Hours > res[j].Hours })
	return res
}
