package stats

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/gridstats/player-engine/internal/metrics"
	"github.com/gridstats/player-engine/internal/model"
	"github.com/gridstats/player-engine/internal/provider"
)

// Aggregator builds season-level aggregates for one resolved player.
// The per-instance cache is keyed by (family, season set); entries are
// written only after a fetch fully succeeds, so a failed or abandoned fetch
// never replaces a good entry. Designed for a single caller goroutine.
type Aggregator struct {
	profile      model.ProfileSnapshot
	provider     provider.DataProvider
	log          zerolog.Logger
	latestSeason int

	defensive   bool
	relevant    []string
	statType    string
	advStatType string

	cache map[string][]model.SeasonStatRecord
}

// ErrMissingPfrID marks advanced-family requests for players the crosswalk
// never mapped to a Pro Football Reference id.
var ErrMissingPfrID = errors.New("missing pfr id")

// Option configures an Aggregator at construction.
type Option func(*Aggregator)

// WithLatestSeason overrides the newest season considered available, for
// deployments that lag the current season or run against frozen datasets.
func WithLatestSeason(season int) Option {
	return func(a *Aggregator) { a.latestSeason = season }
}

func NewAggregator(profile model.ProfileSnapshot, p provider.DataProvider, logger zerolog.Logger, opts ...Option) *Aggregator {
	defensive := IsDefensivePosition(profile.Position, profile.PositionGroup)
	a := &Aggregator{
		profile:      profile,
		provider:     p,
		log:          logger.With().Str("component", "aggregator").Str("player_id", profile.CanonicalID).Logger(),
		latestSeason: DefaultLatestSeason,
		defensive:    defensive,
		relevant:     relevantColumns(defensive),
		statType:     trackingStatType(profile.Position),
		advStatType:  advancedStatType(profile.Position, defensive),
		cache:        make(map[string][]model.SeasonStatRecord),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// IsDefensive reports whether the player's position is defensive.
func (a *Aggregator) IsDefensive() bool { return a.defensive }

// RelevantColumns returns the stat columns that matter for the player's
// position. Callers wanting the full unioned column set use the AllColumns
// master-table option or CareerTotalsAll instead.
func (a *Aggregator) RelevantColumns() []string {
	out := make([]string, len(a.relevant))
	copy(out, a.relevant)
	return out
}

// TrackingStatType returns the tracking category routed from the position.
func (a *Aggregator) TrackingStatType() string { return a.statType }

// AdvancedStatType returns the advanced category routed from the position;
// defensive players route to the source's defense category.
func (a *Aggregator) AdvancedStatType() string { return a.advStatType }

// FetchSeasons validates the requested seasons against the family's range,
// then fetches and aggregates one record per (season, game context).
// All-or-nothing: any out-of-range season fails the whole call. Identical
// repeat calls are served from the cache without touching the provider.
func (a *Aggregator) FetchSeasons(ctx context.Context, seasons []int, family Family) ([]model.SeasonStatRecord, error) {
	if len(seasons) == 0 {
		return nil, fmt.Errorf("no seasons requested")
	}
	if err := validateSeasons(seasons, family, a.latestSeason); err != nil {
		return nil, err
	}
	key := cacheKey(family, seasons)
	if recs, ok := a.cache[key]; ok {
		metrics.CacheHits.WithLabelValues("seasons").Inc()
		return cloneRecords(recs), nil
	}
	metrics.CacheMisses.WithLabelValues("seasons").Inc()
	return a.fetchAndStore(ctx, seasons, family, key)
}

// Refetch bypasses the cache and replaces the entry wholesale on success.
// On failure the previously cached entry stays intact.
func (a *Aggregator) Refetch(ctx context.Context, seasons []int, family Family) ([]model.SeasonStatRecord, error) {
	if err := validateSeasons(seasons, family, a.latestSeason); err != nil {
		return nil, err
	}
	return a.fetchAndStore(ctx, seasons, family, cacheKey(family, seasons))
}

func (a *Aggregator) fetchAndStore(ctx context.Context, seasons []int, family Family, key string) ([]model.SeasonStatRecord, error) {
	var (
		recs []model.SeasonStatRecord
		err  error
	)
	switch family {
	case FamilyTracking:
		recs, err = a.fetchTracking(ctx, seasons)
	case FamilyAdvanced:
		recs, err = a.fetchAdvanced(ctx, seasons)
	default:
		recs, err = a.fetchBasic(ctx, seasons)
	}
	if err != nil {
		return nil, err
	}
	a.cache[key] = recs
	return cloneRecords(recs), nil
}

func (a *Aggregator) fetchBasic(ctx context.Context, seasons []int) ([]model.SeasonStatRecord, error) {
	metrics.ProviderLoads.WithLabelValues("season_stats").Inc()
	rows, err := a.provider.LoadSeasonStats(ctx, seasons)
	if err != nil {
		return nil, err
	}

	groups := make(map[recordKey]*model.SeasonStatRecord)
	for _, row := range rows {
		if row.PlayerID != a.profile.CanonicalID {
			continue
		}
		k := recordKey{row.Season, row.SeasonType}
		rec, ok := groups[k]
		if !ok {
			rec = &model.SeasonStatRecord{
				PlayerID:   row.PlayerID,
				PlayerName: row.PlayerName,
				Season:     row.Season,
				SeasonType: row.SeasonType,
				Values:     make(map[string]float64),
			}
			groups[k] = rec
		}
		rec.GamesPlayed++
		for col, v := range row.Values {
			if isRateColumn(col) {
				continue // summed weekly rates are meaningless; derive instead
			}
			rec.Values[col] += v
		}
	}
	return sortedRecords(groups), nil
}

// fetchTracking matches by display name because the tracking source carries
// no canonical id. Two players sharing a display name collide here; this
// layer does not disambiguate, callers needing precision filter TrackingRows.
func (a *Aggregator) fetchTracking(ctx context.Context, seasons []int) ([]model.SeasonStatRecord, error) {
	rows, err := a.TrackingRows(ctx, seasons, a.statType)
	if err != nil {
		return nil, err
	}

	type agg struct {
		rec    *model.SeasonStatRecord
		counts map[string]int
	}
	groups := make(map[int]*agg)
	for _, row := range rows {
		g, ok := groups[row.Season]
		if !ok {
			g = &agg{
				rec: &model.SeasonStatRecord{
					PlayerID:   a.profile.CanonicalID,
					PlayerName: row.PlayerDisplayName,
					Season:     row.Season,
					SeasonType: SeasonTypeRegular,
					Values:     make(map[string]float64),
				},
				counts: make(map[string]int),
			}
			groups[row.Season] = g
		}
		g.rec.GamesPlayed++
		for col, v := range row.Values {
			key := "ngs_" + col
			g.rec.Values[key] += v
			g.counts[key]++
		}
	}

	out := make(map[recordKey]*model.SeasonStatRecord, len(groups))
	for season, g := range groups {
		for col, n := range g.counts {
			raw := strings.TrimPrefix(col, "ngs_")
			if !isTrackingCountingColumn(raw) && n > 0 {
				g.rec.Values[col] /= float64(n)
			}
		}
		out[recordKey{season, SeasonTypeRegular}] = g.rec
	}
	return sortedRecords(out), nil
}

// fetchAdvanced matches season-level film-room rows by the player's PFR id.
// A season normally has one row; a mid-season trade yields one per team
// stint, so counting columns sum and rate columns average across stints.
func (a *Aggregator) fetchAdvanced(ctx context.Context, seasons []int) ([]model.SeasonStatRecord, error) {
	pfrID := a.profile.ExternalIDs["pfr"]
	if pfrID == "" || pfrID == model.UnknownID {
		return nil, fmt.Errorf("%w: advanced stats for %s need a PFR id for matching", ErrMissingPfrID, a.profile.FullName)
	}
	metrics.ProviderLoads.WithLabelValues("advanced_stats").Inc()
	rows, err := a.provider.LoadAdvancedStats(ctx, seasons, a.advStatType)
	if err != nil {
		return nil, err
	}

	type agg struct {
		rec    *model.SeasonStatRecord
		counts map[string]int
	}
	groups := make(map[int]*agg)
	for _, row := range rows {
		if row.PfrID != pfrID {
			continue
		}
		g, ok := groups[row.Season]
		if !ok {
			g = &agg{
				rec: &model.SeasonStatRecord{
					PlayerID:   a.profile.CanonicalID,
					PlayerName: a.profile.FullName,
					Season:     row.Season,
					SeasonType: SeasonTypeRegular,
					Values:     make(map[string]float64),
				},
				counts: make(map[string]int),
			}
			groups[row.Season] = g
		}
		g.rec.GamesPlayed += row.Games
		for col, v := range row.Values {
			key := "pfr_" + col
			g.rec.Values[key] += v
			g.counts[key]++
		}
	}

	out := make(map[recordKey]*model.SeasonStatRecord, len(groups))
	for season, g := range groups {
		for col, n := range g.counts {
			raw := strings.TrimPrefix(col, "pfr_")
			if isRateColumn(raw) && n > 0 {
				g.rec.Values[col] /= float64(n)
			}
		}
		out[recordKey{season, SeasonTypeRegular}] = g.rec
	}
	return sortedRecords(out), nil
}

// TrackingRows surfaces the raw name-matched tracking rows so callers can
// apply their own filtering when display names collide.
func (a *Aggregator) TrackingRows(ctx context.Context, seasons []int, statType string) ([]model.TrackingStatRow, error) {
	metrics.ProviderLoads.WithLabelValues("tracking_stats").Inc()
	rows, err := a.provider.LoadTrackingStats(ctx, seasons, statType)
	if err != nil {
		return nil, err
	}
	var matched []model.TrackingStatRow
	for _, row := range rows {
		if strings.EqualFold(row.PlayerDisplayName, a.profile.FullName) {
			matched = append(matched, row)
		}
	}
	return matched, nil
}

// CareerTotals sums the position-relevant columns across every season the
// player was active in the family's range. Null columns sum null-safely:
// a season missing a column simply contributes nothing.
func (a *Aggregator) CareerTotals(ctx context.Context, family Family) (model.CareerTotals, error) {
	return a.careerTotals(ctx, family, false)
}

// CareerTotalsAll is the position-agnostic override: it sums every numeric
// column seen in the family instead of the position-aware set.
func (a *Aggregator) CareerTotalsAll(ctx context.Context, family Family) (model.CareerTotals, error) {
	return a.careerTotals(ctx, family, true)
}

func (a *Aggregator) careerTotals(ctx context.Context, family Family, allColumns bool) (model.CareerTotals, error) {
	recs, err := a.FetchSeasons(ctx, a.activeSpan(family), family)
	if err != nil {
		return model.CareerTotals{}, err
	}
	totals := model.CareerTotals{Totals: make(map[string]float64)}
	if allColumns {
		for _, rec := range recs {
			totals.GamesPlayed += rec.GamesPlayed
			for col, v := range rec.Values {
				totals.Totals[col] += v
			}
		}
		return totals, nil
	}
	columns := totalsColumns(a.defensive)
	for _, rec := range recs {
		totals.GamesPlayed += rec.GamesPlayed
		for label, col := range columns {
			if v, ok := rec.Value(col); ok {
				totals.Totals[label] += v
			}
		}
	}
	return totals, nil
}

// MasterTableOptions controls master-table assembly.
type MasterTableOptions struct {
	// Seasons to include; nil means every season the player was active,
	// clamped to the basic family's range.
	Seasons []int
	// IncludeTracking merges tracking columns for seasons in range.
	IncludeTracking bool
	// IncludeAdvanced merges film-room columns for seasons in the advanced
	// family's era. Fails when the player has no PFR id.
	IncludeAdvanced bool
	// IncludePostseason keeps postseason rows as separate records; when
	// false postseason rows are excluded entirely.
	IncludePostseason bool
	// AllColumns keeps the full unioned column set instead of the
	// position-relevant subset.
	AllColumns bool
}

// MasterTable assembles one row per season (or per season+context when the
// postseason is split out) with the union of family columns. Seasons before
// the tracking family's range still produce rows; their tracking columns
// are null. Count-like columns are season sums; rate columns are excluded
// from sums by design and must be derived from the summed components.
func (a *Aggregator) MasterTable(ctx context.Context, opts MasterTableOptions) (model.MasterTable, error) {
	seasons := opts.Seasons
	if len(seasons) == 0 {
		seasons = a.activeSpan(FamilyBasic)
	}

	basic, err := a.FetchSeasons(ctx, seasons, FamilyBasic)
	if err != nil {
		return model.MasterTable{}, err
	}

	rows := make([]model.SeasonStatRecord, 0, len(basic))
	for _, rec := range basic {
		if rec.SeasonType == SeasonTypePost && !opts.IncludePostseason {
			continue
		}
		rows = append(rows, cloneRecord(rec))
	}

	if opts.IncludeTracking {
		if err := a.mergeFamily(ctx, rows, seasons, FamilyTracking); err != nil {
			return model.MasterTable{}, err
		}
	}
	if opts.IncludeAdvanced {
		if err := a.mergeFamily(ctx, rows, seasons, FamilyAdvanced); err != nil {
			return model.MasterTable{}, err
		}
	}

	return model.MasterTable{
		Columns: a.masterColumns(rows, opts.IncludePostseason, opts.AllColumns),
		Rows:    rows,
	}, nil
}

// mergeFamily overlays a secondary family's columns onto the regular-season
// rows for the requested seasons inside that family's range.
func (a *Aggregator) mergeFamily(ctx context.Context, rows []model.SeasonStatRecord, seasons []int, family Family) error {
	var inRange []int
	earliest, latest := seasonRange(family, a.latestSeason)
	for _, s := range seasons {
		if s >= earliest && s <= latest {
			inRange = append(inRange, s)
		}
	}
	if len(inRange) == 0 {
		return nil
	}
	recs, err := a.FetchSeasons(ctx, inRange, family)
	if err != nil {
		return err
	}
	bySeason := make(map[int]model.SeasonStatRecord, len(recs))
	for _, rec := range recs {
		bySeason[rec.Season] = rec
	}
	for i := range rows {
		if rows[i].SeasonType != SeasonTypeRegular {
			continue
		}
		if rec, ok := bySeason[rows[i].Season]; ok {
			for col, v := range rec.Values {
				rows[i].Values[col] = v
			}
		}
	}
	return nil
}

// masterColumns fixes a stable ordering: identity columns first, then every
// stat column sorted by name, secondary-family columns interleaved under
// their ngs_/pfr_ prefixes.
func (a *Aggregator) masterColumns(rows []model.SeasonStatRecord, postseason, allColumns bool) []string {
	head := []string{"season"}
	if postseason {
		head = append(head, "season_type")
	}
	head = append(head, "games_played", "player_name", "player_id")

	keep := func(string) bool { return true }
	if !allColumns {
		allowed := make(map[string]bool, len(a.relevant))
		for _, col := range a.relevant {
			allowed[col] = true
		}
		keep = func(col string) bool {
			return allowed[col] || strings.HasPrefix(col, "ngs_") || strings.HasPrefix(col, "pfr_")
		}
	}

	seen := make(map[string]bool)
	var cols []string
	for _, rec := range rows {
		for col := range rec.Values {
			if !seen[col] && keep(col) {
				seen[col] = true
				cols = append(cols, col)
			}
		}
	}
	sort.Strings(cols)
	return append(head, cols...)
}

// activeSpan returns the player's active seasons clamped to the family's
// supported range, falling back to the full range when the roster snapshot
// lacks rookie/last season values.
func (a *Aggregator) activeSpan(family Family) []int {
	earliest, latest := seasonRange(family, a.latestSeason)
	from, to := earliest, latest
	if a.profile.RookieSeason > earliest {
		from = a.profile.RookieSeason
	}
	if a.profile.LastSeason != 0 && a.profile.LastSeason < latest {
		to = a.profile.LastSeason
	}
	if from > to {
		from = to
	}
	span := make([]int, 0, to-from+1)
	for s := from; s <= to; s++ {
		span = append(span, s)
	}
	return span
}

func cacheKey(family Family, seasons []int) string {
	uniq := make(map[int]bool, len(seasons))
	for _, s := range seasons {
		uniq[s] = true
	}
	sorted := make([]int, 0, len(uniq))
	for s := range uniq {
		sorted = append(sorted, s)
	}
	sort.Ints(sorted)
	var b strings.Builder
	b.WriteString(string(family))
	for _, s := range sorted {
		fmt.Fprintf(&b, ":%d", s)
	}
	return b.String()
}

func cloneRecord(rec model.SeasonStatRecord) model.SeasonStatRecord {
	values := make(map[string]float64, len(rec.Values))
	for k, v := range rec.Values {
		values[k] = v
	}
	rec.Values = values
	return rec
}

func cloneRecords(recs []model.SeasonStatRecord) []model.SeasonStatRecord {
	out := make([]model.SeasonStatRecord, len(recs))
	for i, rec := range recs {
		out[i] = cloneRecord(rec)
	}
	return out
}

type recordKey struct {
	season int
	stype  string
}

func sortedRecords(groups map[recordKey]*model.SeasonStatRecord) []model.SeasonStatRecord {
	out := make([]model.SeasonStatRecord, 0, len(groups))
	for _, rec := range groups {
		out = append(out, *rec)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Season != out[j].Season {
			return out[i].Season < out[j].Season
		}
		return contextRank(out[i].SeasonType) < contextRank(out[j].SeasonType)
	})
	return out
}

// contextRank keeps regular-season rows ahead of postseason rows.
func contextRank(seasonType string) int {
	if seasonType == SeasonTypePost {
		return 1
	}
	return 0
}
