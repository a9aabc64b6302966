package config_test

import (
	"errors"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/okian/edgefinder/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.RegressionK, convey.ShouldEqual, 10)
			convey.So(cfg.TiltCoefficient, convey.ShouldEqual, 0.02)
			convey.So(cfg.FormRecentGames, convey.ShouldEqual, 10)
			convey.So(cfg.FormContextGames, convey.ShouldEqual, 5)
			convey.So(cfg.FormWindowDays, convey.ShouldEqual, 5)
			convey.So(cfg.ExportWorkers, convey.ShouldEqual, runtime.NumCPU())
			convey.So(cfg.RatingsSource, convey.ShouldEqual, config.RatingsFromFile)
			convey.So(cfg.RatingCacheTTL(), convey.ShouldEqual, 5*time.Minute)
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})

		convey.Convey("Then dataset paths are resolved under the data dir", func() {
			convey.So(cfg.Path(cfg.GamesFile), convey.ShouldEqual, filepath.Join("data", "quarters_2025_REG.csv"))
			convey.So(cfg.Path("/abs/file.json"), convey.ShouldEqual, "/abs/file.json")
			convey.So(cfg.Path(""), convey.ShouldEqual, "")
		})
	})
}

func TestConfig_Validate(t *testing.T) {
	convey.Convey("Given invalid configurations", t, func() {
		cases := map[string]func(*config.Config){
			"empty addr":          func(c *config.Config) { c.Addr = "" },
			"empty data dir":      func(c *config.Config) { c.DataDir = " " },
			"missing games file":  func(c *config.Config) { c.GamesFile = "" },
			"zero k":              func(c *config.Config) { c.RegressionK = 0 },
			"zero form window":    func(c *config.Config) { c.FormWindowDays = 0 },
			"no workers":          func(c *config.Config) { c.ExportWorkers = 0 },
			"negative ttl":        func(c *config.Config) { c.RatingCacheTTLSec = -1 },
			"unknown source":      func(c *config.Config) { c.RatingsSource = "web" },
			"file without a name": func(c *config.Config) { c.RatingsFile = "" },
		}
		for _, mutate := range cases {
			cfg := config.New()
			mutate(cfg)
			err := cfg.Validate()
			convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
		}

		convey.Convey("Then rebuilding ratings from games needs no ratings file", func() {
			cfg := config.New()
			cfg.RatingsSource = config.RatingsFromGames
			cfg.RatingsFile = ""
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}
