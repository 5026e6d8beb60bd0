// Package fixture implements an in-memory data provider with a small
// deterministic dataset, useful for local runs and as a test backend.
package fixture

import (
	"context"

	"github.com/gridstats/player-engine/internal/model"
	"github.com/gridstats/player-engine/internal/provider"
)

// Provider serves static rows. Loads never fail and ignore the context
// beyond the signature contract.
type Provider struct{}

func New() *Provider { return &Provider{} }

var _ provider.DataProvider = (*Provider)(nil)

func intp(v int) *int { return &v }

// Canonical ids used across the fixture tables.
const (
	QBAllenID   = "00-0034857" // Josh Allen, Buffalo quarterback
	LBAllenID   = "00-0035236" // Josh Allen, Jacksonville linebacker
	MahomesID   = "00-0033873"
	PalmerID    = "00-0036915" // Joshua Palmer, also known as Josh Palmer
	RetiredWRID = "00-0027944" // Jordy Nelson, retired
)

func (p *Provider) LoadRoster(_ context.Context) ([]model.RosterRow, error) {
	return []model.RosterRow{
		{
			GsisID: QBAllenID, DisplayName: "Josh Allen", FullName: "Joshua Patrick Allen",
			FirstName: "Josh", LastName: "Allen", FootballName: "Josh", ShortName: "J.Allen",
			BirthDate: "1996-05-21", College: "Wyoming",
			Position: "QB", PositionGroup: "QB",
			HeightIn: intp(77), WeightLb: intp(237),
			DraftYear: intp(2018), DraftRound: intp(1), DraftPick: intp(7), DraftTeam: "BUF",
			LatestTeam: "BUF", Status: "ACT", YearsExp: intp(8),
			RookieSeason: intp(2018), LastSeason: intp(2025),
		},
		{
			// Roster snapshot predates his legal change to "Josh Hines-Allen";
			// the resolver's token fallback covers queries using the new name.
			GsisID: LBAllenID, DisplayName: "Josh Allen", FullName: "Joshua Allen",
			FirstName: "Josh", LastName: "Allen", FootballName: "Josh", ShortName: "J.Allen",
			BirthDate: "1997-07-13", College: "Kentucky",
			Position: "LB", PositionGroup: "LB",
			HeightIn: intp(77), WeightLb: intp(255),
			DraftYear: intp(2019), DraftRound: intp(1), DraftPick: intp(7), DraftTeam: "JAX",
			LatestTeam: "JAX", Status: "ACT", YearsExp: intp(7),
			RookieSeason: intp(2019), LastSeason: intp(2025),
		},
		{
			GsisID: MahomesID, DisplayName: "Patrick Mahomes", FullName: "Patrick Lavon Mahomes",
			FirstName: "Patrick", LastName: "Mahomes", FootballName: "Patrick", ShortName: "P.Mahomes",
			BirthDate: "1995-09-17", College: "Texas Tech",
			Position: "QB", PositionGroup: "QB",
			HeightIn: intp(74), WeightLb: intp(225),
			DraftYear: intp(2017), DraftRound: intp(1), DraftPick: intp(10), DraftTeam: "KC",
			LatestTeam: "KC", Status: "ACT", YearsExp: intp(9),
			RookieSeason: intp(2017), LastSeason: intp(2025),
		},
		{
			GsisID: PalmerID, DisplayName: "Joshua Palmer", FullName: "Joshua Palmer",
			FirstName: "Joshua", LastName: "Palmer", FootballName: "Joshua", ShortName: "J.Palmer",
			BirthDate: "1999-09-22", College: "Tennessee",
			Position: "WR", PositionGroup: "WR",
			HeightIn: intp(73), WeightLb: intp(210),
			DraftYear: intp(2021), DraftRound: intp(3), DraftPick: intp(77), DraftTeam: "LAC",
			LatestTeam: "BUF", Status: "ACT", YearsExp: intp(5),
			RookieSeason: intp(2021), LastSeason: intp(2025),
		},
		{
			GsisID: RetiredWRID, DisplayName: "Jordy Nelson", FullName: "Jordy Ray Nelson",
			FirstName: "Jordy", LastName: "Nelson", FootballName: "Jordy", ShortName: "J.Nelson",
			BirthDate: "1985-05-31", College: "Kansas State",
			Position: "WR", PositionGroup: "WR",
			HeightIn: intp(75), WeightLb: intp(217),
			DraftYear: intp(2008), DraftRound: intp(2), DraftPick: intp(36), DraftTeam: "GB",
			LatestTeam: "LV", Status: "RET", YearsExp: intp(11),
			RookieSeason: intp(2008), LastSeason: intp(2018),
		},
	}, nil
}

func (p *Provider) LoadIDCrosswalk(_ context.Context) ([]model.CrosswalkRow, error) {
	return []model.CrosswalkRow{
		{
			GsisID: QBAllenID, Name: "Josh Allen", MergeName: "josh allen", Team: "BUF",
			DraftYear:   intp(2018),
			ExternalIDs: map[string]string{"espn": "3918298", "pfr": "AlleJo02", "pff": "11642"},
		},
		{
			GsisID: LBAllenID, Name: "Josh Allen", MergeName: "josh allen", Team: "JAX",
			DraftYear:   intp(2019),
			ExternalIDs: map[string]string{"espn": "4035577", "pfr": "AlleJo03"},
		},
		// Mahomes appears twice on purpose: the join must tolerate and the
		// resolver must dedupe multi-source crosswalk rows.
		{
			GsisID: MahomesID, Name: "Patrick Mahomes", MergeName: "patrick mahomes", Team: "KC",
			DraftYear:   intp(2017),
			ExternalIDs: map[string]string{"espn": "3139477", "pfr": "MahoPa00"},
		},
		{
			GsisID: MahomesID, Name: "Patrick Mahomes II", MergeName: "patrick mahomes", Team: "KC",
			DraftYear:   intp(2017),
			ExternalIDs: map[string]string{"sportradar": "11cad59d-90dd-449c-a839-dddaba4fe16c"},
		},
		{
			GsisID: PalmerID, Name: "Josh Palmer", MergeName: "josh palmer", Team: "BUF",
			DraftYear:   intp(2021),
			ExternalIDs: map[string]string{"espn": "4242433", "pfr": "PalmJo01"},
		},
	}, nil
}

func (p *Provider) LoadSeasonStats(_ context.Context, seasons []int) ([]model.WeeklyStatRow, error) {
	all := []model.WeeklyStatRow{
		{
			PlayerID: QBAllenID, PlayerName: "Josh Allen", Season: 2022, Week: 1, SeasonType: "REG",
			Team: "BUF", OpponentTeam: "LA",
			Values: map[string]float64{
				"completions": 26, "attempts": 31, "passing_yards": 297, "passing_tds": 3,
				"interceptions": 2, "carries": 10, "rushing_yards": 56, "rushing_tds": 1,
				"sack_fumbles": 1, "fantasy_points": 30.7, "completion_percentage": 83.9,
			},
		},
		{
			PlayerID: QBAllenID, PlayerName: "Josh Allen", Season: 2022, Week: 2, SeasonType: "REG",
			Team: "BUF", OpponentTeam: "TEN",
			Values: map[string]float64{
				"completions": 26, "attempts": 38, "passing_yards": 317, "passing_tds": 4,
				"interceptions": 0, "carries": 6, "rushing_yards": 47, "rushing_tds": 0,
				"fantasy_points": 32.4, "completion_percentage": 68.4,
			},
		},
		{
			PlayerID: QBAllenID, PlayerName: "Josh Allen", Season: 2022, Week: 19, SeasonType: "POST",
			Team: "BUF", OpponentTeam: "MIA",
			Values: map[string]float64{
				"completions": 23, "attempts": 39, "passing_yards": 352, "passing_tds": 3,
				"interceptions": 2, "carries": 8, "rushing_yards": 20, "rushing_tds": 0,
				"fantasy_points": 28.2, "completion_percentage": 59.0,
			},
		},
		{
			PlayerID: QBAllenID, PlayerName: "Josh Allen", Season: 2023, Week: 1, SeasonType: "REG",
			Team: "BUF", OpponentTeam: "NYJ",
			Values: map[string]float64{
				"completions": 29, "attempts": 41, "passing_yards": 236, "passing_tds": 1,
				"interceptions": 3, "carries": 6, "rushing_yards": 36, "rushing_tds": 0,
				"fantasy_points": 15.6, "completion_percentage": 70.7,
			},
		},
		{
			PlayerID: LBAllenID, PlayerName: "Josh Allen", Season: 2022, Week: 1, SeasonType: "REG",
			Team: "JAX", OpponentTeam: "WAS",
			Values: map[string]float64{
				"def_tackles_solo": 5, "def_tackle_assists": 2, "def_sacks": 1,
				"def_tackles_for_loss": 1, "def_pass_defended": 1, "def_fumbles_forced": 1,
			},
		},
		{
			PlayerID: LBAllenID, PlayerName: "Josh Allen", Season: 2022, Week: 2, SeasonType: "REG",
			Team: "JAX", OpponentTeam: "IND",
			Values: map[string]float64{
				"def_tackles_solo": 3, "def_tackle_assists": 1, "def_sacks": 2,
				"def_interceptions": 1, "def_tds": 1,
			},
		},
		{
			PlayerID: MahomesID, PlayerName: "Patrick Mahomes", Season: 2018, Week: 1, SeasonType: "REG",
			Team: "KC", OpponentTeam: "LAC",
			Values: map[string]float64{
				"completions": 15, "attempts": 27, "passing_yards": 256, "passing_tds": 4,
				"interceptions": 0, "fantasy_points": 28.0, "completion_percentage": 55.6,
			},
		},
	}

	want := make(map[int]bool, len(seasons))
	for _, s := range seasons {
		want[s] = true
	}
	var out []model.WeeklyStatRow
	for _, row := range all {
		if want[row.Season] {
			out = append(out, row)
		}
	}
	return out, nil
}

func (p *Provider) LoadTrackingStats(_ context.Context, seasons []int, statType string) ([]model.TrackingStatRow, error) {
	all := []model.TrackingStatRow{
		{
			PlayerDisplayName: "Josh Allen", PlayerPosition: "QB", TeamAbbr: "BUF",
			Season: 2022, Week: 1, SeasonType: "REG",
			Values: map[string]float64{
				"attempts": 31, "completions": 26, "pass_yards": 297, "pass_touchdowns": 3,
				"avg_time_to_throw": 2.81, "aggressiveness": 12.9,
				"completion_percentage_above_expectation": 9.4,
			},
		},
		{
			PlayerDisplayName: "Josh Allen", PlayerPosition: "QB", TeamAbbr: "BUF",
			Season: 2022, Week: 2, SeasonType: "REG",
			Values: map[string]float64{
				"attempts": 38, "completions": 26, "pass_yards": 317, "pass_touchdowns": 4,
				"avg_time_to_throw": 3.01, "aggressiveness": 18.3,
				"completion_percentage_above_expectation": 2.2,
			},
		},
		{
			PlayerDisplayName: "Patrick Mahomes", PlayerPosition: "QB", TeamAbbr: "KC",
			Season: 2018, Week: 1, SeasonType: "REG",
			Values: map[string]float64{
				"attempts": 27, "completions": 15, "pass_yards": 256, "pass_touchdowns": 4,
				"avg_time_to_throw": 2.92, "aggressiveness": 14.1,
			},
		},
	}

	want := make(map[int]bool, len(seasons))
	for _, s := range seasons {
		want[s] = true
	}
	var out []model.TrackingStatRow
	for _, row := range all {
		if want[row.Season] && statType == provider.StatTypePassing {
			out = append(out, row)
		}
	}
	return out, nil
}

func (p *Provider) LoadAdvancedStats(_ context.Context, seasons []int, statType string) ([]model.AdvancedStatRow, error) {
	all := map[string][]model.AdvancedStatRow{
		provider.StatTypePassing: {
			{
				PfrID: "AlleJo02", PlayerName: "Josh Allen", Team: "BUF", Season: 2022, Games: 16,
				Values: map[string]float64{
					"times_pressured": 145, "times_blitzed": 152, "times_hurried": 83,
					"bad_throws": 70, "drops": 23, "throwaways": 18,
					"drop_pct": 4.4, "on_tgt_pct": 77.5,
				},
			},
			{
				PfrID: "MahoPa00", PlayerName: "Patrick Mahomes", Team: "KC", Season: 2018, Games: 16,
				Values: map[string]float64{
					"times_pressured": 118, "times_blitzed": 131, "times_hurried": 67,
					"bad_throws": 81, "drops": 31, "throwaways": 12,
					"drop_pct": 5.3, "on_tgt_pct": 79.1,
				},
			},
		},
		provider.StatTypeDefense: {
			{
				PfrID: "AlleJo03", PlayerName: "Josh Allen", Team: "JAX", Season: 2022, Games: 16,
				Values: map[string]float64{
					"pressures": 25, "times_blitzed": 38, "qb_knockdowns": 6,
					"missed_tackles": 5, "missed_tackle_pct": 7.1,
				},
			},
		},
	}

	want := make(map[int]bool, len(seasons))
	for _, s := range seasons {
		want[s] = true
	}
	var out []model.AdvancedStatRow
	for _, row := range all[statType] {
		if want[row.Season] {
			out = append(out, row)
		}
	}
	return out, nil
}
