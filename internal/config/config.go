// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - New() returns the defaults; Load layers a YAML file and env vars on top.
// - Validate reports ErrInvalidConfig wrapped with the offending key.
package config

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
	"time"
)

// Rating sources.
const (
	RatingsFromFile  = "file"
	RatingsFromGames = "games"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects "text" or "json" output.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// DataDir holds every dataset file named below.
	DataDir       string `koanf:"data_dir"`
	GamesFile     string `koanf:"games_file"`
	RatingsFile   string `koanf:"ratings_file"`
	StandingsFile string `koanf:"standings_file"`
	ScheduleFile  string `koanf:"schedule_file"`
	InjuriesFile  string `koanf:"injuries_file"`
	LeadersFile   string `koanf:"leaders_file"`

	// RatingsSource is "file" to read the rating table or "games" to rebuild
	// it from the game log.
	RatingsSource string `koanf:"ratings_source"`

	// DictionaryFile optionally replaces the built-in alias tables.
	DictionaryFile string `koanf:"dictionary_file"`

	// RegressionK is the league-average weight of the quarter estimates.
	RegressionK float64 `koanf:"regression_k"`

	// TiltCoefficient converts rating points into projected points.
	TiltCoefficient float64 `koanf:"tilt_coefficient"`

	// Form window sizes.
	FormRecentGames  int `koanf:"form_recent_games"`
	FormContextGames int `koanf:"form_context_games"`
	FormWindowDays   int `koanf:"form_window_days"`

	// ExportWorkers bounds the matchups computed concurrently by an export.
	ExportWorkers int `koanf:"export_workers"`

	// ExportSchedule is a cron spec for writing the export to ExportDir.
	// Empty disables the job.
	ExportSchedule string `koanf:"export_schedule"`
	ExportDir      string `koanf:"export_dir"`

	// RedisAddr enables the rating table cache when set.
	RedisAddr         string `koanf:"redis_addr"`
	RedisPassword     string `koanf:"redis_password"`
	RedisDB           int    `koanf:"redis_db"`
	RatingCacheTTLSec int    `koanf:"rating_cache_ttl_sec"`
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:          "info",
		LogFormat:         "text",
		Addr:              ":9080",
		DataDir:           "data",
		GamesFile:         "quarters_2025_REG.csv",
		RatingsFile:       "nba_elo_ranking_2025.csv",
		StandingsFile:     "standings.json",
		ScheduleFile:      "games_today.json",
		InjuriesFile:      "injuries_active.json",
		LeadersFile:       "leaders_raw.json",
		RatingsSource:     RatingsFromFile,
		RegressionK:       10,
		TiltCoefficient:   0.02,
		FormRecentGames:   10,
		FormContextGames:  5,
		FormWindowDays:    5,
		ExportWorkers:     runtime.NumCPU(),
		ExportDir:         "exports",
		RatingCacheTTLSec: 300,
	}
}

// Path joins a dataset file name with DataDir. Absolute names are kept.
func (c *Config) Path(name string) string {
	if name == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.DataDir, name)
}

// RatingCacheTTL returns the cache TTL as a duration.
func (c *Config) RatingCacheTTL() time.Duration {
	return time.Duration(c.RatingCacheTTLSec) * time.Second
}

// Validate checks the values that would otherwise fail at request time.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Addr) == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case strings.TrimSpace(c.DataDir) == "":
		return fmt.Errorf("%w: data_dir must not be empty", ErrInvalidConfig)
	case c.GamesFile == "" || c.StandingsFile == "" || c.ScheduleFile == "":
		return fmt.Errorf("%w: games_file, standings_file and schedule_file are required", ErrInvalidConfig)
	case c.RegressionK <= 0:
		return fmt.Errorf("%w: regression_k must be positive", ErrInvalidConfig)
	case c.FormRecentGames <= 0 || c.FormContextGames <= 0 || c.FormWindowDays <= 0:
		return fmt.Errorf("%w: form windows must be positive", ErrInvalidConfig)
	case c.ExportWorkers <= 0:
		return fmt.Errorf("%w: export_workers must be positive", ErrInvalidConfig)
	case c.RatingCacheTTLSec < 0:
		return fmt.Errorf("%w: rating_cache_ttl_sec must not be negative", ErrInvalidConfig)
	}
	switch c.RatingsSource {
	case RatingsFromFile:
		if c.RatingsFile == "" {
			return fmt.Errorf("%w: ratings_file is required when ratings_source is %q", ErrInvalidConfig, RatingsFromFile)
		}
	case RatingsFromGames:
	default:
		return fmt.Errorf("%w: ratings_source must be %q or %q", ErrInvalidConfig, RatingsFromFile, RatingsFromGames)
	}
	return nil
}
