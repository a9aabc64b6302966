package service

import (
	"time"

	"github.com/okian/edgefinder/internal/adapters/repository"
	"github.com/okian/edgefinder/internal/domain/form"
	"github.com/okian/edgefinder/internal/domain/identity"
	"github.com/okian/edgefinder/internal/domain/rating"
	"github.com/okian/edgefinder/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithStore sets the dataset store.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		s.store = store
	}
}

// WithDictionary replaces the built-in alias tables used for rating lookups.
func WithDictionary(dict *identity.Dictionary) Option {
	return func(s *Service) {
		if dict != nil {
			s.resolver = identity.NewResolver(dict)
		}
	}
}

// WithRatingCache enables caching of built rating tables.
func WithRatingCache(c RatingCache) Option {
	return func(s *Service) {
		s.cache = c
	}
}

// WithWorkerCount sets how many matchups an export computes concurrently.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithClock sets the time source used by the recency windows.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithRegressionK sets the league-average weight of the quarter estimates.
func WithRegressionK(k float64) Option {
	return func(s *Service) {
		if k > 0 {
			s.regressionK = k
		}
	}
}

// WithTiltCoefficient sets the points awarded per rating point of difference.
func WithTiltCoefficient(k float64) Option {
	return func(s *Service) {
		s.tiltK = k
	}
}

// WithFormOptions configures the form windows.
func WithFormOptions(opts ...form.Option) Option {
	return func(s *Service) {
		s.formOpts = append(s.formOpts, opts...)
	}
}

// WithRatingsSource selects RatingsFromFile or RatingsFromGames.
func WithRatingsSource(source string) Option {
	return func(s *Service) {
		if source == RatingsFromFile || source == RatingsFromGames {
			s.ratingsSource = source
		}
	}
}

// WithEloParams sets the parameters used when ratings are rebuilt from games.
func WithEloParams(p rating.EloParams) Option {
	return func(s *Service) {
		s.eloParams = p
	}
}

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}
