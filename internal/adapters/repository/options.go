package repository

import "github.com/okian/edgefinder/pkg/logger"

// Option applies a configuration option to the FileStore.
type Option func(*FileStore)

// WithGamesFile sets the game log CSV.
func WithGamesFile(path string) Option {
	return func(s *FileStore) { s.paths[DatasetGames] = path }
}

// WithRatingsFile sets the rating table CSV. An empty path skips the
// dataset, leaving the caller to derive ratings elsewhere.
func WithRatingsFile(path string) Option {
	return func(s *FileStore) { s.paths[DatasetRatings] = path }
}

// WithStandingsFile sets the standings JSON.
func WithStandingsFile(path string) Option {
	return func(s *FileStore) { s.paths[DatasetStandings] = path }
}

// WithScheduleFile sets the daily schedule JSON.
func WithScheduleFile(path string) Option {
	return func(s *FileStore) { s.paths[DatasetSchedule] = path }
}

// WithInjuriesFile sets the injury report JSON. It is optional.
func WithInjuriesFile(path string) Option {
	return func(s *FileStore) { s.paths[DatasetInjuries] = path }
}

// WithLeadersFile sets the statistical leaders JSON. It is optional.
func WithLeadersFile(path string) Option {
	return func(s *FileStore) { s.paths[DatasetLeaders] = path }
}

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return func(s *FileStore) {
		if l != nil {
			s.log = l
		}
	}
}
