package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/okian/edgefinder/internal/adapters/worker"
	"github.com/okian/edgefinder/internal/domain/model"
	"github.com/okian/edgefinder/internal/domain/types"
	"github.com/okian/edgefinder/pkg/logger"
	"github.com/okian/edgefinder/pkg/metrics"
)

// ExportFilename is the name suggested for downloaded exports.
const ExportFilename = "edgefinder_upcoming_analysis.csv"

// Export summarizes every game of the daily schedule, in schedule order.
// Matchups are computed on the worker pool.
func (s *Service) Export(ctx context.Context) ([]types.ExportRow, error) {
	const op = "service.Export"
	start := time.Now()

	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	in := s.inputs(ctx, snap)

	rows, err := worker.Map(ctx, s.pool, snap.Schedule, func(ctx context.Context, g model.ScheduledGame) (types.ExportRow, error) {
		return s.exportRow(ctx, in, g), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.exports.Add(1)
	metrics.RecordExport(len(rows), float64(time.Since(start).Milliseconds()))
	s.logger.Debug(ctx, "export computed",
		logger.Int("rows", len(rows)),
		logger.Duration("took", time.Since(start)),
	)
	return rows, nil
}

func (s *Service) exportRow(ctx context.Context, in *matchupInputs, g model.ScheduledGame) types.ExportRow {
	homeRank, homeRating := s.lookupRating(ctx, in, "home", g.Home.Name, g.Home.Alias)
	awayRank, awayRating := s.lookupRating(ctx, in, "away", g.Away.Name, g.Away.Alias)
	proj := s.projection(in, g.Home.ID, g.Away.ID, homeRating, awayRating)
	hf := s.summarizer.Summarize(in.snap.Games, g.Home.ID, model.ContextHome, in.now)
	af := s.summarizer.Summarize(in.snap.Games, g.Away.ID, model.ContextAway, in.now)

	return types.ExportRow{
		GameID:         g.ID,
		Title:          g.Title,
		Scheduled:      g.Scheduled,
		HomeName:       g.Home.Name,
		HomeAlias:      g.Home.Alias,
		AwayName:       g.Away.Name,
		AwayAlias:      g.Away.Alias,
		HomeRatingRank: homeRank,
		AwayRatingRank: awayRank,
		HomeRating:     homeRating,
		AwayRating:     awayRating,
		ProjHome:       proj.RatingAdjusted.Home,
		ProjAway:       proj.RatingAdjusted.Away,
		ProjTotal:      proj.RatingAdjusted.Total,
		ProjMargin:     proj.RatingAdjusted.Margin,
		BaselineTotal:  proj.Simple.Total,
		HomeLast10W:    hf.Last10.Wins,
		HomeLast10L:    hf.Last10.Losses,
		AwayLast10W:    af.Last10.Wins,
		AwayLast10L:    af.Last10.Losses,
		HomeLast5CtxW:  hf.Last5Context.Wins,
		HomeLast5CtxL:  hf.Last5Context.Losses,
		AwayLast5CtxW:  af.Last5Context.Wins,
		AwayLast5CtxL:  af.Last5Context.Losses,
		HomeLast5DaysW: hf.Last5Days.Wins,
		HomeLast5DaysL: hf.Last5Days.Losses,
		AwayLast5DaysW: af.Last5Days.Wins,
		AwayLast5DaysL: af.Last5Days.Losses,
	}
}

// WriteCSV writes rows with a header line.
func WriteCSV(w io.Writer, rows []types.ExportRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(types.ExportColumns); err != nil {
		return err
	}
	for _, r := range rows {
		if err := cw.Write(r.Record()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportCSV computes the export and writes it to w as CSV.
func (s *Service) ExportCSV(ctx context.Context, w io.Writer) (int, error) {
	rows, err := s.Export(ctx)
	if err != nil {
		return 0, err
	}
	if err := WriteCSV(w, rows); err != nil {
		return 0, fmt.Errorf("service.ExportCSV: %w", err)
	}
	return len(rows), nil
}
