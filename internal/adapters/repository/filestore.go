package repository

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/okian/edgefinder/internal/domain/model"
	"github.com/okian/edgefinder/pkg/logger"
	"github.com/okian/edgefinder/pkg/metrics"
)

// FileStore reads datasets from local CSV and JSON files.
type FileStore struct {
	paths map[string]string
	log   logger.Logger
}

var _ Store = (*FileStore)(nil)

var optional = map[string]bool{
	DatasetInjuries: true,
	DatasetLeaders:  true,
}

// NewFileStore creates a FileStore. Paths are set through options.
func NewFileStore(opts ...Option) *FileStore {
	s := &FileStore{paths: make(map[string]string, 6), log: logger.Nop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load reads every configured dataset concurrently. Optional datasets that
// are missing on disk load as empty.
func (s *FileStore) Load(ctx context.Context) (*model.Snapshot, error) {
	const op = "repository.FileStore.Load"
	snap := &model.Snapshot{}
	g, gctx := errgroup.WithContext(ctx)

	s.spawn(g, gctx, DatasetGames, func(b []byte) (int, error) {
		games, err := parseGames(b)
		snap.Games = games
		return len(games), err
	})
	s.spawn(g, gctx, DatasetRatings, func(b []byte) (int, error) {
		rows, err := parseRatings(b)
		snap.Ratings = rows
		return len(rows), err
	})
	s.spawn(g, gctx, DatasetStandings, func(b []byte) (int, error) {
		teams, err := parseStandings(b)
		snap.Standings = teams
		return len(teams), err
	})
	s.spawn(g, gctx, DatasetSchedule, func(b []byte) (int, error) {
		games, err := parseSchedule(b)
		snap.Schedule = games
		return len(games), err
	})
	s.spawn(g, gctx, DatasetInjuries, func(b []byte) (int, error) {
		inj, err := parseInjuries(b)
		snap.Injuries = inj
		return len(inj), err
	})
	s.spawn(g, gctx, DatasetLeaders, func(b []byte) (int, error) {
		leaders, err := parseLeaders(b)
		snap.Leaders = leaders
		return len(leaders), err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return snap, nil
}

// spawn reads one dataset on the group. Each parse callback writes a
// distinct Snapshot field, so no locking is needed.
func (s *FileStore) spawn(g *errgroup.Group, ctx context.Context, dataset string, parse func([]byte) (int, error)) {
	path := s.paths[dataset]
	if path == "" {
		return
	}
	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		start := time.Now()
		b, err := os.ReadFile(path)
		if err != nil {
			if optional[dataset] && errors.Is(err, fs.ErrNotExist) {
				s.log.Warn(ctx, "optional dataset missing", logger.String("dataset", dataset), logger.String("path", path))
				return nil
			}
			metrics.RecordDatasetLoadError(dataset)
			s.log.Error(ctx, "dataset read failed", logger.String("dataset", dataset), logger.Error(err))
			return fmt.Errorf("%w: %s: %w", ErrLoad, dataset, err)
		}
		n, err := parse(b)
		if err != nil {
			metrics.RecordDatasetLoadError(dataset)
			s.log.Error(ctx, "dataset parse failed", logger.String("dataset", dataset), logger.Error(err))
			return fmt.Errorf("%w: %s: %w", ErrLoad, dataset, err)
		}
		elapsed := time.Since(start)
		metrics.RecordDatasetLoad(dataset, n, float64(elapsed.Microseconds())/1000)
		s.log.Debug(ctx, "dataset loaded", logger.String("dataset", dataset), logger.Int("rows", n), logger.Duration("took", elapsed))
		return nil
	})
}
