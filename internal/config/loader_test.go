package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/edgefinder/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestConfigLoader(t *testing.T) {
	ctx := context.Background()

	convey.Convey("Given defaults only", t, func() {
		cfg, err := config.Load(ctx)

		convey.Convey("Then they load unchanged", func() {
			convey.So(err, convey.ShouldBeNil)
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.RegressionK, convey.ShouldEqual, 10)
		})
	})

	convey.Convey("Given environment variables", t, func() {
		t.Setenv("EDGEFINDER_ADDR", ":8080")
		t.Setenv("EDGEFINDER_REGRESSION_K", "12.5")
		t.Setenv("EDGEFINDER_EXPORT_WORKERS", "3")
		t.Setenv("EDGEFINDER_REDIS_ADDR", "localhost:6379")

		cfg, err := config.Load(ctx)

		convey.Convey("Then they override defaults", func() {
			convey.So(err, convey.ShouldBeNil)
			convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
			convey.So(cfg.RegressionK, convey.ShouldEqual, 12.5)
			convey.So(cfg.ExportWorkers, convey.ShouldEqual, 3)
			convey.So(cfg.RedisAddr, convey.ShouldEqual, "localhost:6379")
			convey.So(cfg.GamesFile, convey.ShouldEqual, "quarters_2025_REG.csv")
		})
	})

	convey.Convey("Given a YAML file and env vars", t, func() {
		path := writeConfig(t, `
addr: ":9090"
data_dir: /srv/nba
ratings_source: games
export_schedule: "0 */6 * * *"
form_window_days: 7
`)
		t.Setenv("EDGEFINDER_CONFIG", path)
		t.Setenv("EDGEFINDER_ADDR", ":7070")

		cfg, err := config.Load(ctx)

		convey.Convey("Then env wins over the file and the file over defaults", func() {
			convey.So(err, convey.ShouldBeNil)
			convey.So(cfg.Addr, convey.ShouldEqual, ":7070")
			convey.So(cfg.DataDir, convey.ShouldEqual, "/srv/nba")
			convey.So(cfg.RatingsSource, convey.ShouldEqual, config.RatingsFromGames)
			convey.So(cfg.ExportSchedule, convey.ShouldEqual, "0 */6 * * *")
			convey.So(cfg.FormWindowDays, convey.ShouldEqual, 7)
			convey.So(cfg.FormRecentGames, convey.ShouldEqual, 10)
		})
	})

	convey.Convey("Given a broken YAML file", t, func() {
		t.Setenv("EDGEFINDER_CONFIG", writeConfig(t, "invalid: yaml: content: ["))

		cfg, err := config.Load(ctx)

		convey.Convey("Then loading fails", func() {
			convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			convey.So(cfg, convey.ShouldBeNil)
		})
	})

	convey.Convey("Given a missing file", t, func() {
		t.Setenv("EDGEFINDER_CONFIG", "/non/existent/file.yaml")
		_, err := config.Load(ctx)
		convey.So(err, convey.ShouldNotBeNil)
	})

	convey.Convey("Given an empty addr", t, func() {
		t.Setenv("EDGEFINDER_ADDR", "")

		cfg, err := config.Load(ctx)

		convey.Convey("Then validation fails", func() {
			convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			convey.So(err.Error(), convey.ShouldContainSubstring, "addr must not be empty")
			convey.So(cfg, convey.ShouldBeNil)
		})
	})

	convey.Convey("Given a cancelled context", t, func() {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := config.Load(cctx)
		convey.So(errors.Is(err, context.Canceled), convey.ShouldBeTrue)
	})
}
