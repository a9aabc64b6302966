package service

import (
	"fmt"
	"time"

	"github.com/okian/edgefinder/internal/adapters/repository"
	"github.com/okian/edgefinder/internal/config"
	"github.com/okian/edgefinder/internal/domain/form"
	"github.com/okian/edgefinder/internal/domain/identity"
	"github.com/okian/edgefinder/pkg/logger"
)

// OptionsFromConfig returns the options wiring a Service to the datasets and
// tuning values of cfg. The rating cache is left to the caller.
func OptionsFromConfig(cfg *config.Config, log logger.Logger) ([]Option, error) {
	const op = "service.OptionsFromConfig"
	if log == nil {
		log = logger.Nop()
	}

	dict := identity.NBA()
	if cfg.DictionaryFile != "" {
		d, err := identity.LoadDictionary(cfg.Path(cfg.DictionaryFile))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		dict = d
	}

	ratingsFile := cfg.Path(cfg.RatingsFile)
	if cfg.RatingsSource == RatingsFromGames {
		ratingsFile = ""
	}
	store := repository.NewFileStore(
		repository.WithGamesFile(cfg.Path(cfg.GamesFile)),
		repository.WithRatingsFile(ratingsFile),
		repository.WithStandingsFile(cfg.Path(cfg.StandingsFile)),
		repository.WithScheduleFile(cfg.Path(cfg.ScheduleFile)),
		repository.WithInjuriesFile(cfg.Path(cfg.InjuriesFile)),
		repository.WithLeadersFile(cfg.Path(cfg.LeadersFile)),
		repository.WithLogger(log.Named("repository")),
	)

	return []Option{
		WithStore(store),
		WithDictionary(dict),
		WithLogger(log.Named("service")),
		WithWorkerCount(cfg.ExportWorkers),
		WithRegressionK(cfg.RegressionK),
		WithTiltCoefficient(cfg.TiltCoefficient),
		WithRatingsSource(cfg.RatingsSource),
		WithFormOptions(
			form.WithRecentGames(cfg.FormRecentGames),
			form.WithContextGames(cfg.FormContextGames),
			form.WithWindowDays(cfg.FormWindowDays),
		),
		WithClock(time.Now),
	}, nil
}
