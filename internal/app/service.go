// Package service assembles matchup projections from the loaded datasets and
// implements the dependencies required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/edgefinder/internal/adapters/cache"
	"github.com/okian/edgefinder/internal/adapters/repository"
	"github.com/okian/edgefinder/internal/adapters/worker"
	"github.com/okian/edgefinder/internal/config"
	"github.com/okian/edgefinder/internal/domain/form"
	"github.com/okian/edgefinder/internal/domain/identity"
	"github.com/okian/edgefinder/internal/domain/model"
	"github.com/okian/edgefinder/internal/domain/quarters"
	"github.com/okian/edgefinder/internal/domain/rating"
	"github.com/okian/edgefinder/internal/domain/totals"
	"github.com/okian/edgefinder/internal/domain/types"
	"github.com/okian/edgefinder/pkg/logger"
	"github.com/okian/edgefinder/pkg/metrics"
)

// Rating table sources.
const (
	RatingsFromFile  = config.RatingsFromFile
	RatingsFromGames = config.RatingsFromGames
)

// RatingCache stores built rating tables keyed by a fingerprint of their input rows.
type RatingCache interface {
	Get(ctx context.Context, key string) ([]rating.Entry, bool, error)
	Set(ctx context.Context, key string, entries []rating.Entry) error
}

// Service computes analyses, exports and listings. Every call reads a fresh
// snapshot from the store, so results follow the files on disk.
type Service struct {
	mu sync.RWMutex

	// Core components
	store      repository.Store
	resolver   *identity.Resolver
	cache      RatingCache
	pool       *worker.Pool
	summarizer *form.Summarizer
	formOpts   []form.Option

	// Configuration
	workerCount   int
	regressionK   float64
	tiltK         float64
	ratingsSource string
	eloParams     rating.EloParams
	now           func() time.Time

	// State
	started   bool
	analyses  atomic.Int64
	exports   atomic.Int64
	lastLoad  atomic.Int64
	lastError atomic.Value

	// Logging
	logger logger.Logger
}

// New creates a Service. A store must be provided with WithStore before Start.
func New(opts ...Option) *Service {
	s := &Service{
		resolver:      identity.NewResolver(identity.NBA()),
		workerCount:   runtime.NumCPU(),
		regressionK:   quarters.DefaultK,
		tiltK:         totals.DefaultTiltCoefficient,
		ratingsSource: RatingsFromFile,
		eloParams:     rating.DefaultEloParams(),
		now:           time.Now,
		logger:        logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.summarizer = form.NewSummarizer(s.formOpts...)
	s.pool = worker.NewPool(s.workerCount,
		worker.WithName("export"),
		worker.WithLogger(s.logger),
	)
	return s
}

// Start verifies that the datasets can be loaded.
func (s *Service) Start(ctx context.Context) error {
	const op = "service.Start"
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.store == nil {
		return fmt.Errorf("%s: %w", op, ErrNoStore)
	}

	snap, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.started = true
	s.logger.Info(ctx, "projection service started",
		logger.Int("games", len(snap.Games)),
		logger.Int("ratings", len(snap.Ratings)),
		logger.Int("teams", len(snap.Standings)),
		logger.Int("scheduled", len(snap.Schedule)),
		logger.Int("workers", s.pool.Size()),
		logger.String("ratingsSource", s.ratingsSource),
		logger.Bool("ratingCache", s.cache != nil),
	)
	return nil
}

// Stop marks the service as stopped.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.started = false
	s.logger.Info(context.Background(), "projection service stopped")
}

// snapshot loads every dataset.
func (s *Service) snapshot(ctx context.Context) (*model.Snapshot, error) {
	if s.store == nil {
		return nil, ErrNoStore
	}
	snap, err := s.store.Load(ctx)
	if err != nil {
		s.lastError.Store(err.Error())
		metrics.RecordErrorByComponent("service", "load")
		return nil, err
	}
	s.lastLoad.Store(s.now().Unix())
	return snap, nil
}

// ratingTable builds the rating table of snap, going through the cache when
// one is configured. Cache failures only cost a rebuild.
func (s *Service) ratingTable(ctx context.Context, snap *model.Snapshot) *rating.Table {
	rows := snap.Ratings
	if s.ratingsSource == RatingsFromGames {
		rows = rating.BuildElo(snap.Games, s.eloParams)
	}
	if s.cache == nil {
		return rating.Build(rows, s.resolver)
	}

	key := cache.Key(rows)
	entries, ok, err := s.cache.Get(ctx, key)
	switch {
	case err != nil:
		metrics.RecordRatingCacheError()
		s.logger.Warn(ctx, "rating cache read failed", logger.Error(err))
	case ok:
		metrics.RecordRatingCacheHit()
		return rating.FromEntries(entries, s.resolver)
	default:
		metrics.RecordRatingCacheMiss()
	}

	table := rating.Build(rows, s.resolver)
	if err := s.cache.Set(ctx, key, table.Entries()); err != nil {
		metrics.RecordRatingCacheError()
		s.logger.Warn(ctx, "rating cache write failed", logger.Error(err))
	}
	return table
}

// Rankings returns the sorted rating table.
func (s *Service) Rankings(ctx context.Context) ([]rating.Entry, error) {
	const op = "service.Rankings"
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return s.ratingTable(ctx, snap).Entries(), nil
}

// QuarterStandings returns per-quarter scoring splits for every team of the game log.
func (s *Service) QuarterStandings(ctx context.Context) ([]quarters.TeamStanding, error) {
	const op = "service.QuarterStandings"
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return quarters.Standings(snap.Games), nil
}

// Standings returns the league standings ordered by overall rank.
func (s *Service) Standings(ctx context.Context) ([]types.StandingsRow, error) {
	const op = "service.Standings"
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	ranks := overallRanks(snap.Standings)
	out := make([]types.StandingsRow, 0, len(snap.Standings))
	for _, t := range snap.Standings {
		out = append(out, types.StandingsRow{StandingsTeam: t, OverallRank: ranks[t.ID]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].OverallRank < out[j].OverallRank })
	return out, nil
}

// GamesToday returns the daily schedule.
func (s *Service) GamesToday(ctx context.Context) ([]model.ScheduledGame, error) {
	const op = "service.GamesToday"
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if snap.Schedule == nil {
		return []model.ScheduledGame{}, nil
	}
	return snap.Schedule, nil
}

// Games returns the raw game log in file order.
func (s *Service) Games(ctx context.Context) ([]types.GameLogRow, error) {
	const op = "service.Games"
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	out := make([]types.GameLogRow, 0, len(snap.Games))
	for _, g := range snap.Games {
		out = append(out, types.NewGameLogRow(g))
	}
	return out, nil
}

// LeagueReport returns the league-wide injury report and statistical leaders.
func (s *Service) LeagueReport(ctx context.Context) (types.LeagueReport, error) {
	const op = "service.LeagueReport"
	snap, err := s.snapshot(ctx)
	if err != nil {
		return types.LeagueReport{}, fmt.Errorf("%s: %w", op, err)
	}
	return types.NewLeagueReport(snap.Injuries, snap.Leaders), nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":         s.started,
		"workerCount":     s.pool.Size(),
		"ratingsSource":   s.ratingsSource,
		"regressionK":     s.regressionK,
		"tiltCoefficient": s.tiltK,
		"ratingCache":     s.cache != nil,
		"analyses":        s.analyses.Load(),
		"exports":         s.exports.Load(),
	}
	if ts := s.lastLoad.Load(); ts > 0 {
		stats["lastLoad"] = time.Unix(ts, 0).UTC().Format(time.RFC3339)
	}
	if msg, ok := s.lastError.Load().(string); ok {
		stats["lastError"] = msg
	}
	return stats
}

// overallRanks ranks teams league-wide by win percentage, ties keeping feed order.
func overallRanks(teams []model.StandingsTeam) map[string]int {
	sorted := make([]model.StandingsTeam, len(teams))
	copy(sorted, teams)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].WinPct > sorted[j].WinPct })
	ranks := make(map[string]int, len(sorted))
	for i, t := range sorted {
		if _, ok := ranks[t.ID]; !ok {
			ranks[t.ID] = i + 1
		}
	}
	return ranks
}
