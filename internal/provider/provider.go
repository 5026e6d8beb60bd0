// Package provider declares the data-provider contract the engine consumes.
// Implementations own transport, retries and storage formats; the engine
// treats them as black boxes and propagates their errors unchanged.
package provider

import (
	"context"

	"github.com/gridstats/player-engine/internal/model"
)

// Stat types routed by player position. The tracking family covers the
// first three; the advanced family additionally serves defense.
const (
	StatTypePassing   = "passing"
	StatTypeRushing   = "rushing"
	StatTypeReceiving = "receiving"
	StatTypeDefense   = "defense"
)

// DataProvider supplies raw tabular rows for the roster, the identifier
// crosswalk and the per-season stat families. Every call blocks until the
// rows are available or the context is done.
type DataProvider interface {
	LoadRoster(ctx context.Context) ([]model.RosterRow, error)
	LoadIDCrosswalk(ctx context.Context) ([]model.CrosswalkRow, error)
	LoadSeasonStats(ctx context.Context, seasons []int) ([]model.WeeklyStatRow, error)
	LoadTrackingStats(ctx context.Context, seasons []int, statType string) ([]model.TrackingStatRow, error)
	LoadAdvancedStats(ctx context.Context, seasons []int, statType string) ([]model.AdvancedStatRow, error)
}
