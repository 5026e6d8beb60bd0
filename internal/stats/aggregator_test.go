package stats_test

import (
	"context"
	"errors"
	"io"
	"sort"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridstats/player-engine/internal/model"
	"github.com/gridstats/player-engine/internal/provider/fixture"
	"github.com/gridstats/player-engine/internal/stats"
)

// countingProvider wraps the fixture provider and records stat loads, with
// an optional failure switch for cache-consistency tests.
type countingProvider struct {
	*fixture.Provider
	seasonCalls   int
	trackingCalls int
	advancedCalls int
	fail          bool
}

func (c *countingProvider) LoadSeasonStats(ctx context.Context, seasons []int) ([]model.WeeklyStatRow, error) {
	c.seasonCalls++
	if c.fail {
		return nil, errors.New("upstream unavailable")
	}
	return c.Provider.LoadSeasonStats(ctx, seasons)
}

func (c *countingProvider) LoadTrackingStats(ctx context.Context, seasons []int, statType string) ([]model.TrackingStatRow, error) {
	c.trackingCalls++
	if c.fail {
		return nil, errors.New("upstream unavailable")
	}
	return c.Provider.LoadTrackingStats(ctx, seasons, statType)
}

func (c *countingProvider) LoadAdvancedStats(ctx context.Context, seasons []int, statType string) ([]model.AdvancedStatRow, error) {
	c.advancedCalls++
	if c.fail {
		return nil, errors.New("upstream unavailable")
	}
	return c.Provider.LoadAdvancedStats(ctx, seasons, statType)
}

func qbProfile() model.ProfileSnapshot {
	return model.ProfileSnapshot{
		CanonicalID:  fixture.QBAllenID,
		FullName:     "Josh Allen",
		Position:     "QB",
		RookieSeason: 2018,
		LastSeason:   2025,
		ExternalIDs:  map[string]string{"pfr": "AlleJo02"},
	}
}

func lbProfile() model.ProfileSnapshot {
	return model.ProfileSnapshot{
		CanonicalID:  fixture.LBAllenID,
		FullName:     "Josh Allen",
		Position:     "LB",
		RookieSeason: 2019,
		LastSeason:   2025,
		ExternalIDs:  map[string]string{"pfr": "AlleJo03"},
	}
}

func newAggregator(profile model.ProfileSnapshot) (*stats.Aggregator, *countingProvider) {
	prov := &countingProvider{Provider: fixture.New()}
	agg := stats.NewAggregator(profile, prov, zerolog.New(io.Discard))
	return agg, prov
}

func TestFetchSeasons_AllOrNothingValidation(t *testing.T) {
	agg, prov := newAggregator(qbProfile())

	_, err := agg.FetchSeasons(context.Background(), []int{1990, 1999, 2000}, stats.FamilyBasic)
	require.Error(t, err)
	assert.True(t, errors.Is(err, stats.ErrSeasonNotAvailable))

	var snae *stats.SeasonNotAvailableError
	require.True(t, errors.As(err, &snae))
	assert.Equal(t, []int{1990}, snae.Invalid)
	assert.Equal(t, stats.EarliestBasicSeason, snae.Earliest)

	// The invalid request must not reach the provider.
	assert.Zero(t, prov.seasonCalls)
}

func TestFetchSeasons_TrackingRangeStartsLater(t *testing.T) {
	agg, _ := newAggregator(qbProfile())

	_, err := agg.FetchSeasons(context.Background(), []int{2015, 2022}, stats.FamilyTracking)
	require.Error(t, err)

	var snae *stats.SeasonNotAvailableError
	require.True(t, errors.As(err, &snae))
	assert.Equal(t, []int{2015}, snae.Invalid)
	assert.Equal(t, stats.EarliestTrackingSeason, snae.Earliest)
}

func TestFetchSeasons_IdempotentAndCached(t *testing.T) {
	agg, prov := newAggregator(qbProfile())
	ctx := context.Background()

	first, err := agg.FetchSeasons(ctx, []int{2022}, stats.FamilyBasic)
	require.NoError(t, err)
	second, err := agg.FetchSeasons(ctx, []int{2022}, stats.FamilyBasic)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, prov.seasonCalls)

	// Season order in the request does not defeat the cache key.
	_, err = agg.FetchSeasons(ctx, []int{2023, 2022}, stats.FamilyBasic)
	require.NoError(t, err)
	_, err = agg.FetchSeasons(ctx, []int{2022, 2023}, stats.FamilyBasic)
	require.NoError(t, err)
	assert.Equal(t, 2, prov.seasonCalls)
}

func TestRefetch_BypassesCacheButKeepsGoodEntryOnFailure(t *testing.T) {
	agg, prov := newAggregator(qbProfile())
	ctx := context.Background()

	cached, err := agg.FetchSeasons(ctx, []int{2022}, stats.FamilyBasic)
	require.NoError(t, err)
	require.Equal(t, 1, prov.seasonCalls)

	_, err = agg.Refetch(ctx, []int{2022}, stats.FamilyBasic)
	require.NoError(t, err)
	assert.Equal(t, 2, prov.seasonCalls)

	// A failed refetch must leave the previous entry intact.
	prov.fail = true
	_, err = agg.Refetch(ctx, []int{2022}, stats.FamilyBasic)
	require.Error(t, err)

	prov.fail = false
	again, err := agg.FetchSeasons(ctx, []int{2022}, stats.FamilyBasic)
	require.NoError(t, err)
	assert.Equal(t, cached, again)
	assert.Equal(t, 3, prov.seasonCalls) // the failed refetch, no extra load
}

func TestFetchSeasons_AggregatesWeeksAndDropsRateColumns(t *testing.T) {
	agg, _ := newAggregator(qbProfile())

	recs, err := agg.FetchSeasons(context.Background(), []int{2022}, stats.FamilyBasic)
	require.NoError(t, err)
	require.Len(t, recs, 2) // REG and POST

	reg := recs[0]
	assert.Equal(t, "REG", reg.SeasonType)
	assert.Equal(t, 2, reg.GamesPlayed)
	yards, ok := reg.Value("passing_yards")
	require.True(t, ok)
	assert.InDelta(t, 614, yards, 0.001)
	tds, _ := reg.Value("passing_tds")
	assert.InDelta(t, 7, tds, 0.001)

	// Weekly completion percentages must not be summed into the season.
	_, ok = reg.Value("completion_percentage")
	assert.False(t, ok)

	post := recs[1]
	assert.Equal(t, "POST", post.SeasonType)
	assert.Equal(t, 1, post.GamesPlayed)
}

func TestCareerTotals_PositionAwareColumnSets(t *testing.T) {
	lbAgg, _ := newAggregator(lbProfile())
	defTotals, err := lbAgg.CareerTotals(context.Background(), stats.FamilyBasic)
	require.NoError(t, err)

	assert.Equal(t, 2, defTotals.GamesPlayed)
	assert.InDelta(t, 8, defTotals.Totals["tackles_solo"], 0.001)
	assert.InDelta(t, 3, defTotals.Totals["sacks"], 0.001)
	assert.NotContains(t, defTotals.Totals, "receiving_yards")
	assert.NotContains(t, defTotals.Totals, "passing_yards")

	qbAgg, _ := newAggregator(qbProfile())
	offTotals, err := qbAgg.CareerTotals(context.Background(), stats.FamilyBasic)
	require.NoError(t, err)

	// 2022 REG + POST + 2023 REG.
	assert.Equal(t, 4, offTotals.GamesPlayed)
	assert.InDelta(t, 1202, offTotals.Totals["passing_yards"], 0.001)
	assert.NotContains(t, offTotals.Totals, "tackles_solo")
}

func TestCareerTotalsAll_IgnoresPositionRouting(t *testing.T) {
	agg, _ := newAggregator(qbProfile())

	totals, err := agg.CareerTotalsAll(context.Background(), stats.FamilyBasic)
	require.NoError(t, err)
	// sack_fumbles is outside the offensive set but present in the data.
	assert.Contains(t, totals.Totals, "sack_fumbles")
}

func TestMasterTable_RowPerSeasonWithNullTrackingBeforeRange(t *testing.T) {
	agg, _ := newAggregator(qbProfile())

	table, err := agg.MasterTable(context.Background(), stats.MasterTableOptions{
		Seasons:         []int{2022, 2023},
		IncludeTracking: true,
	})
	require.NoError(t, err)
	require.Len(t, table.Rows, 2)

	row2022 := table.Rows[0]
	assert.Equal(t, 2022, row2022.Season)
	att, ok := row2022.Value("ngs_attempts")
	require.True(t, ok)
	assert.InDelta(t, 69, att, 0.001) // counting tracking column: summed
	ttt, ok := row2022.Value("ngs_avg_time_to_throw")
	require.True(t, ok)
	assert.InDelta(t, 2.91, ttt, 0.001) // rate tracking column: averaged

	// The fixture has no 2023 tracking rows; the row still exists and the
	// tracking columns are null for it.
	row2023 := table.Rows[1]
	assert.Equal(t, 2023, row2023.Season)
	_, ok = row2023.Value("ngs_attempts")
	assert.False(t, ok)

	assert.Contains(t, table.Columns, "passing_yards")
	assert.NotContains(t, table.Columns, "completion_percentage")
}

func TestMasterTable_PostseasonSplit(t *testing.T) {
	agg, _ := newAggregator(qbProfile())
	ctx := context.Background()

	split, err := agg.MasterTable(ctx, stats.MasterTableOptions{
		Seasons:           []int{2022, 2023},
		IncludePostseason: true,
	})
	require.NoError(t, err)
	require.Len(t, split.Rows, 3)
	assert.Contains(t, split.Columns, "season_type")
	assert.Equal(t, "REG", split.Rows[0].SeasonType)
	assert.Equal(t, "POST", split.Rows[1].SeasonType)
	assert.Equal(t, 2023, split.Rows[2].Season)

	regOnly, err := agg.MasterTable(ctx, stats.MasterTableOptions{Seasons: []int{2022, 2023}})
	require.NoError(t, err)
	require.Len(t, regOnly.Rows, 2)
	assert.NotContains(t, regOnly.Columns, "season_type")
}

func TestMasterTable_AllColumnsOverridesPositionSelection(t *testing.T) {
	agg, _ := newAggregator(qbProfile())
	ctx := context.Background()

	defaultTable, err := agg.MasterTable(ctx, stats.MasterTableOptions{Seasons: []int{2022}})
	require.NoError(t, err)
	assert.NotContains(t, defaultTable.Columns, "sack_fumbles")

	fullTable, err := agg.MasterTable(ctx, stats.MasterTableOptions{Seasons: []int{2022}, AllColumns: true})
	require.NoError(t, err)
	assert.Contains(t, fullTable.Columns, "sack_fumbles")
}

func TestMasterTable_DefaultsToActiveSpan(t *testing.T) {
	agg, prov := newAggregator(qbProfile())

	table, err := agg.MasterTable(context.Background(), stats.MasterTableOptions{})
	require.NoError(t, err)

	// The fixture only has 2022 and 2023 rows for him, but the request
	// must cover his active span without erroring on empty seasons.
	require.Len(t, table.Rows, 2)
	assert.Equal(t, 1, prov.seasonCalls)
}

func TestTrackingRows_SurfaceNameCollisions(t *testing.T) {
	// The linebacker shares his display name with the quarterback; the
	// tracking source has no canonical id, so his name-matched rows are the
	// quarterback's. The layer surfaces them raw instead of guessing.
	agg, _ := newAggregator(lbProfile())

	rows, err := agg.TrackingRows(context.Background(), []int{2022}, "passing")
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestAggregator_PositionRouting(t *testing.T) {
	lbAgg, _ := newAggregator(lbProfile())
	assert.True(t, lbAgg.IsDefensive())
	assert.Contains(t, lbAgg.RelevantColumns(), "def_sacks")
	assert.Equal(t, "defense", lbAgg.AdvancedStatType())

	qbAgg, _ := newAggregator(qbProfile())
	assert.False(t, qbAgg.IsDefensive())
	assert.Equal(t, "passing", qbAgg.TrackingStatType())
	assert.Equal(t, "passing", qbAgg.AdvancedStatType())

	wrAgg := stats.NewAggregator(model.ProfileSnapshot{Position: "WR"}, fixture.New(), zerolog.New(io.Discard))
	assert.Equal(t, "receiving", wrAgg.TrackingStatType())
}

func TestFetchSeasons_AdvancedEraLimitedAtBothEnds(t *testing.T) {
	agg, prov := newAggregator(qbProfile())
	ctx := context.Background()

	_, err := agg.FetchSeasons(ctx, []int{2017, 2022}, stats.FamilyAdvanced)
	require.Error(t, err)
	var snae *stats.SeasonNotAvailableError
	require.True(t, errors.As(err, &snae))
	assert.Equal(t, []int{2017}, snae.Invalid)
	assert.Equal(t, stats.EarliestAdvancedSeason, snae.Earliest)

	// The upper bound is the family's last published season, not the
	// engine-wide latest season.
	_, err = agg.FetchSeasons(ctx, []int{2025}, stats.FamilyAdvanced)
	require.Error(t, err)
	require.True(t, errors.As(err, &snae))
	assert.Equal(t, stats.LatestAdvancedSeason, snae.Latest)

	assert.Zero(t, prov.advancedCalls)
}

func TestFetchSeasons_AdvancedMatchesByPfrID(t *testing.T) {
	agg, _ := newAggregator(qbProfile())

	recs, err := agg.FetchSeasons(context.Background(), []int{2022}, stats.FamilyAdvanced)
	require.NoError(t, err)
	require.Len(t, recs, 1)

	rec := recs[0]
	assert.Equal(t, fixture.QBAllenID, rec.PlayerID)
	assert.Equal(t, 16, rec.GamesPlayed)
	pressured, ok := rec.Value("pfr_times_pressured")
	require.True(t, ok)
	assert.InDelta(t, 145, pressured, 0.001)
	// Season-level rates pass through (single stint, average of one).
	dropPct, ok := rec.Value("pfr_drop_pct")
	require.True(t, ok)
	assert.InDelta(t, 4.4, dropPct, 0.001)
}

func TestFetchSeasons_AdvancedDefensiveRouting(t *testing.T) {
	agg, _ := newAggregator(lbProfile())

	recs, err := agg.FetchSeasons(context.Background(), []int{2022}, stats.FamilyAdvanced)
	require.NoError(t, err)
	require.Len(t, recs, 1)

	pressures, ok := recs[0].Value("pfr_pressures")
	require.True(t, ok)
	assert.InDelta(t, 25, pressures, 0.001)
	assert.NotContains(t, recs[0].Values, "pfr_times_pressured")
}

func TestFetchSeasons_AdvancedRequiresPfrID(t *testing.T) {
	profile := qbProfile()
	profile.ExternalIDs = map[string]string{"pfr": model.UnknownID}
	agg, prov := newAggregator(profile)

	_, err := agg.FetchSeasons(context.Background(), []int{2022}, stats.FamilyAdvanced)
	require.Error(t, err)
	assert.True(t, errors.Is(err, stats.ErrMissingPfrID))
	assert.Zero(t, prov.advancedCalls)
}

func TestMasterTable_IncludeAdvancedMergesEraColumns(t *testing.T) {
	agg, _ := newAggregator(qbProfile())

	table, err := agg.MasterTable(context.Background(), stats.MasterTableOptions{
		Seasons:         []int{2022, 2023},
		IncludeAdvanced: true,
	})
	require.NoError(t, err)
	require.Len(t, table.Rows, 2)
	assert.Contains(t, table.Columns, "pfr_times_pressured")

	pressured, ok := table.Rows[0].Value("pfr_times_pressured")
	require.True(t, ok)
	assert.InDelta(t, 145, pressured, 0.001)

	// No 2023 advanced rows in the fixture; the row stays with nulls.
	_, ok = table.Rows[1].Value("pfr_times_pressured")
	assert.False(t, ok)
}

func TestMasterTable_StatColumnsSortedByName(t *testing.T) {
	agg, _ := newAggregator(qbProfile())

	table, err := agg.MasterTable(context.Background(), stats.MasterTableOptions{
		Seasons:         []int{2022},
		IncludeTracking: true,
		IncludeAdvanced: true,
	})
	require.NoError(t, err)

	// Four identity columns, then every stat column in plain name order.
	head := []string{"season", "games_played", "player_name", "player_id"}
	require.Greater(t, len(table.Columns), len(head))
	assert.Equal(t, head, table.Columns[:len(head)])
	assert.True(t, sort.StringsAreSorted(table.Columns[len(head):]))
}

func TestFetchSeasons_SeasonWithNoRowsYieldsNoRecord(t *testing.T) {
	agg, _ := newAggregator(qbProfile())

	// 2021 is in range but the source has no rows for him; the request
	// succeeds and simply produces no record for that season.
	recs, err := agg.FetchSeasons(context.Background(), []int{2021}, stats.FamilyBasic)
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestWithLatestSeason_TightensUpperBound(t *testing.T) {
	prov := &countingProvider{Provider: fixture.New()}
	agg := stats.NewAggregator(qbProfile(), prov, zerolog.New(io.Discard), stats.WithLatestSeason(2023))

	_, err := agg.FetchSeasons(context.Background(), []int{2024}, stats.FamilyBasic)
	require.Error(t, err)

	var snae *stats.SeasonNotAvailableError
	require.True(t, errors.As(err, &snae))
	assert.Equal(t, []int{2024}, snae.Invalid)
	assert.Equal(t, 2023, snae.Latest)
}
