package stats

import (
	"strings"

	"github.com/gridstats/player-engine/internal/provider"
)

var defensivePositions = map[string]bool{
	"DB": true, "LB": true, "DL": true, "CB": true, "S": true, "DE": true,
	"DT": true, "OLB": true, "ILB": true, "MLB": true, "FS": true, "SS": true,
	"NT": true, "EDGE": true,
}

var defensiveGroups = map[string]bool{"DB": true, "LB": true, "DL": true}

// IsDefensivePosition reports whether a position or position group belongs
// to the defensive side of the ball.
func IsDefensivePosition(position, group string) bool {
	if defensivePositions[strings.ToUpper(position)] {
		return true
	}
	return defensiveGroups[strings.ToUpper(group)]
}

// Position-aware career-total column sets: friendly label -> source column.
// Derived once per aggregator from the player's position, not per call.
var defensiveTotals = map[string]string{
	"tackles_solo":      "def_tackles_solo",
	"tackle_assists":    "def_tackle_assists",
	"tackles_for_loss":  "def_tackles_for_loss",
	"sacks":             "def_sacks",
	"interceptions":     "def_interceptions",
	"passes_defended":   "def_pass_defended",
	"fumbles_forced":    "def_fumbles_forced",
	"fumble_recoveries": "fumble_recovery_opp",
	"defensive_tds":     "def_tds",
	"safeties":          "def_safeties",
}

var offensiveTotals = map[string]string{
	"passing_yards":        "passing_yards",
	"passing_tds":          "passing_tds",
	"interceptions_thrown": "interceptions",
	"rushing_yards":        "rushing_yards",
	"rushing_tds":          "rushing_tds",
	"receiving_yards":      "receiving_yards",
	"receiving_tds":        "receiving_tds",
	"receptions":           "receptions",
	"targets":              "targets",
	"fantasy_points":       "fantasy_points",
}

var defensiveRelevant = []string{
	"def_tackles_solo", "def_tackle_assists", "def_tackles_for_loss",
	"def_sacks", "def_interceptions", "def_pass_defended",
	"def_fumbles_forced", "def_tds",
}

var offensiveRelevant = []string{
	"completions", "attempts", "passing_yards", "passing_tds", "interceptions",
	"carries", "rushing_yards", "rushing_tds",
	"receptions", "targets", "receiving_yards", "receiving_tds",
	"fantasy_points",
}

func relevantColumns(defensive bool) []string {
	src := offensiveRelevant
	if defensive {
		src = defensiveRelevant
	}
	out := make([]string, len(src))
	copy(out, src)
	return out
}

func totalsColumns(defensive bool) map[string]string {
	if defensive {
		return defensiveTotals
	}
	return offensiveTotals
}

// trackingStatType routes a position to the tracking source's stat type.
func trackingStatType(position string) string {
	switch strings.ToUpper(position) {
	case "RB", "FB":
		return provider.StatTypeRushing
	case "WR", "TE":
		return provider.StatTypeReceiving
	default:
		return provider.StatTypePassing
	}
}

// advancedStatType routes like the tracking family but the advanced source
// also publishes a defensive category.
func advancedStatType(position string, defensive bool) string {
	if defensive {
		return provider.StatTypeDefense
	}
	return trackingStatType(position)
}

// Rate and average columns must never be summed across weekly rows: the sum
// of weekly percentages is meaningless. They are excluded from season sums;
// callers derive season rates from the summed numerators and denominators
// (see derive.go).
var rateColumns = map[string]bool{
	"completion_percentage": true,
	"catch_percentage":      true,
	"passer_rating":         true,
	"yards_per_carry":       true,
	"yards_per_attempt":     true,
	"yards_per_reception":   true,
	"pocket_time":           true,
}

func isRateColumn(name string) bool {
	lower := strings.ToLower(name)
	if rateColumns[lower] {
		return true
	}
	return strings.HasPrefix(lower, "avg_") ||
		strings.HasPrefix(lower, "percent_") ||
		strings.HasSuffix(lower, "_percentage") ||
		strings.HasSuffix(lower, "_pct")
}

// Tracking columns that accumulate; everything else in the tracking family
// is a per-week rate and is averaged across the season instead.
var trackingCountingKeywords = []string{
	"attempts", "completions", "carries", "targets", "receptions",
	"yards", "touchdowns",
}

func isTrackingCountingColumn(name string) bool {
	lower := strings.ToLower(name)
	if isRateColumn(lower) {
		return false
	}
	for _, kw := range trackingCountingKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
