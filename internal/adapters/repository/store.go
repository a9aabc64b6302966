// Package repository reads the datasets a projection is computed from.
package repository

import (
	"context"

	"github.com/okian/edgefinder/internal/domain/model"
)

// Dataset names, used in errors, logs and metrics.
const (
	DatasetGames     = "games"
	DatasetRatings   = "ratings"
	DatasetStandings = "standings"
	DatasetSchedule  = "schedule"
	DatasetInjuries  = "injuries"
	DatasetLeaders   = "leaders"
)

// Store provides a consistent snapshot of every dataset.
type Store interface {
	// Load reads all datasets. A mandatory dataset that cannot be read or
	// parsed fails the whole load with ErrLoad.
	Load(ctx context.Context) (*model.Snapshot, error)
}
