// Command export writes today's matchup summaries as CSV or JSON.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	app "github.com/okian/edgefinder/internal/app"
	"github.com/okian/edgefinder/internal/config"
	"github.com/okian/edgefinder/pkg/logger"
)

const defaultTimeout = 2 * time.Minute

func main() {
	var (
		format  = flag.String("format", "csv", "Output format: csv or json")
		output  = flag.String("output", "", "Output file (default: stdout)")
		toDir   = flag.Bool("to-export-dir", false, "Write a timestamped CSV into export_dir instead of -output")
		timeout = flag.Duration("timeout", defaultTimeout, "Time allowed for the export")
		verbose = flag.Bool("verbose", false, "Enable debug logging")
	)
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()

	if err := run(ctx, *format, *output, *toDir, *verbose); err != nil {
		os.Stderr.WriteString("export failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}

func run(ctx context.Context, format, output string, toDir, verbose bool) error {
	if format != "csv" && format != "json" {
		return fmt.Errorf("unknown format %q", format)
	}

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}
	if err := logger.Init(logger.WithWriter(os.Stderr), logger.WithFormat(cfg.LogFormat)); err != nil {
		return err
	}
	level := cfg.LogLevel
	if verbose {
		level = "debug"
	}
	_ = logger.SetLevelString(level)
	log := logger.Get()

	opts, err := app.OptionsFromConfig(cfg, log)
	if err != nil {
		return err
	}
	svc := app.New(opts...)

	if toDir {
		path, err := app.NewScheduler(svc, "", cfg.ExportDir, app.WithSchedulerLogger(log)).RunOnce(ctx)
		if err != nil {
			return err
		}
		fmt.Println(path)
		return nil
	}

	var w io.Writer = os.Stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	return write(ctx, svc, w, format)
}

func write(ctx context.Context, svc *app.Service, w io.Writer, format string) error {
	if format == "csv" {
		_, err := svc.ExportCSV(ctx, w)
		return err
	}
	rows, err := svc.Export(ctx)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(map[string]any{"games": rows})
}
