// Package roster lazily loads and memoizes the roster and identifier
// crosswalk tables for the process lifetime.
package roster

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/gridstats/player-engine/internal/metrics"
	"github.com/gridstats/player-engine/internal/model"
	"github.com/gridstats/player-engine/internal/provider"
)

// Cache memoizes the roster table, the crosswalk table and their left join.
// A single mutex guards first loads so concurrent first callers trigger
// exactly one provider invocation per table; failed loads are not cached
// and the next caller retries. Safe for concurrent reads once loaded.
type Cache struct {
	provider provider.DataProvider
	log      zerolog.Logger

	mu        sync.Mutex
	roster    []model.RosterRow
	crosswalk []model.CrosswalkRow
	combined  []model.CombinedRow
	rosterOK  bool
	xwalkOK   bool
}

func New(p provider.DataProvider, logger zerolog.Logger) *Cache {
	l := logger.With().Str("component", "roster_cache").Logger()
	return &Cache{provider: p, log: l}
}

// Roster returns the memoized player directory.
func (c *Cache) Roster(ctx context.Context) ([]model.RosterRow, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rosterLocked(ctx)
}

// Crosswalk returns the memoized cross-platform identifier table.
func (c *Cache) Crosswalk(ctx context.Context) ([]model.CrosswalkRow, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.crosswalkLocked(ctx)
}

// Combined returns the left join of roster and crosswalk on canonical id.
// A roster row with several crosswalk entries yields several combined rows.
func (c *Cache) Combined(ctx context.Context) ([]model.CombinedRow, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.combined != nil {
		metrics.CacheHits.WithLabelValues("combined").Inc()
		return c.combined, nil
	}
	metrics.CacheMisses.WithLabelValues("combined").Inc()

	roster, err := c.rosterLocked(ctx)
	if err != nil {
		return nil, err
	}
	xwalk, err := c.crosswalkLocked(ctx)
	if err != nil {
		return nil, err
	}

	byID := make(map[string][]*model.CrosswalkRow, len(xwalk))
	for i := range xwalk {
		row := &xwalk[i]
		byID[row.GsisID] = append(byID[row.GsisID], row)
	}

	combined := make([]model.CombinedRow, 0, len(roster))
	for _, r := range roster {
		matches := byID[r.GsisID]
		if len(matches) == 0 {
			combined = append(combined, model.CombinedRow{Roster: r})
			continue
		}
		for _, cw := range matches {
			combined = append(combined, model.CombinedRow{Roster: r, Crosswalk: cw})
		}
	}
	c.combined = combined
	c.log.Debug().Int("roster_rows", len(roster)).Int("combined_rows", len(combined)).Msg("combined table built")
	return combined, nil
}

func (c *Cache) rosterLocked(ctx context.Context) ([]model.RosterRow, error) {
	if c.rosterOK {
		metrics.CacheHits.WithLabelValues("roster").Inc()
		return c.roster, nil
	}
	metrics.CacheMisses.WithLabelValues("roster").Inc()
	metrics.ProviderLoads.WithLabelValues("roster").Inc()
	rows, err := c.provider.LoadRoster(ctx)
	if err != nil {
		c.log.Error().Err(err).Msg("roster load failed")
		return nil, err
	}
	c.roster = rows
	c.rosterOK = true
	return rows, nil
}

func (c *Cache) crosswalkLocked(ctx context.Context) ([]model.CrosswalkRow, error) {
	if c.xwalkOK {
		metrics.CacheHits.WithLabelValues("crosswalk").Inc()
		return c.crosswalk, nil
	}
	metrics.CacheMisses.WithLabelValues("crosswalk").Inc()
	metrics.ProviderLoads.WithLabelValues("crosswalk").Inc()
	rows, err := c.provider.LoadIDCrosswalk(ctx)
	if err != nil {
		c.log.Error().Err(err).Msg("crosswalk load failed")
		return nil, err
	}
	c.crosswalk = rows
	c.xwalkOK = true
	return rows, nil
}
