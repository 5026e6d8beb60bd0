// Package model contains domain entities and DTOs used across layers.
// Data shapes only, no behavior beyond construction and read helpers.
package model

// RosterRow is one raw row from the provider's player directory.
// Optional numeric fields are pointers: nil means the source had no value,
// which is not the same as zero (an undrafted player has a nil DraftPick).
type RosterRow struct {
	GsisID        string
	DisplayName   string
	FullName      string
	FirstName     string
	LastName      string
	FootballName  string // preferred on-field name, e.g. "Josh" for "Joshua"
	ShortName     string // e.g. "J.Allen"
	BirthDate     string // ISO 8601, may be empty
	College       string
	Position      string
	PositionGroup string
	HeightIn      *int
	WeightLb      *int
	DraftYear     *int
	DraftRound    *int
	DraftPick     *int // overall selection number
	DraftTeam     string
	LatestTeam    string
	Status        string // "ACT" for currently active
	YearsExp      *int
	RookieSeason  *int
	LastSeason    *int
}

// CrosswalkRow maps a canonical id to identifier values on other platforms.
// It also carries the alternate name and draft fields some crosswalk sources
// ship, used as fallbacks when the roster row is missing them.
type CrosswalkRow struct {
	GsisID      string
	Name        string
	MergeName   string
	Team        string
	DraftYear   *int
	ExternalIDs map[string]string // source -> identifier value
}

// CombinedRow is one row of the roster x crosswalk left join. A roster entry
// with several crosswalk rows legally produces several combined rows.
type CombinedRow struct {
	Roster    RosterRow
	Crosswalk *CrosswalkRow // nil when the join found no crosswalk row
}

// WeeklyStatRow is one raw week-level row of the basic box-score family.
type WeeklyStatRow struct {
	PlayerID     string
	PlayerName   string
	Season       int
	Week         int
	SeasonType   string // "REG" or "POST"
	Team         string
	OpponentTeam string
	Values       map[string]float64 // wide numeric columns; absent key = null
}

// TrackingStatRow is one raw week-level row of the advanced tracking family.
// The tracking source carries no canonical id, only the display name.
type TrackingStatRow struct {
	PlayerDisplayName string
	PlayerPosition    string
	TeamAbbr          string
	Season            int
	Week              int
	SeasonType        string
	Values            map[string]float64
}

// AdvancedStatRow is one season-level row of the film-room analytics family.
// The source keys rows by Pro Football Reference id; a player traded
// mid-season appears once per team stint.
type AdvancedStatRow struct {
	PfrID      string
	PlayerName string
	Team       string
	Season     int
	Games      int
	Values     map[string]float64
}

// SeasonStatRecord is one aggregated row per (player, season, game context).
// Records are never mutated after construction; a re-fetch builds new ones.
type SeasonStatRecord struct {
	PlayerID    string
	PlayerName  string
	Season      int
	SeasonType  string
	GamesPlayed int
	Values      map[string]float64 // absent key = null, not zero
}

// Value returns a column value and whether the column is present.
func (r SeasonStatRecord) Value(column string) (float64, bool) {
	v, ok := r.Values[column]
	return v, ok
}

// MasterTable is an ordered union of season records across stat families.
// Columns fixes the display/export ordering; a row lacking a column holds
// null there (the key is simply absent from Values).
type MasterTable struct {
	Columns []string
	Rows    []SeasonStatRecord
}

// CareerTotals holds summed statistics across a set of seasons.
type CareerTotals struct {
	GamesPlayed int
	Totals      map[string]float64
}

// SearchCriteria is the resolver input. Never mutated after construction.
type SearchCriteria struct {
	Name      string `validate:"required"`
	Team      string
	DraftYear int `validate:"omitempty,gte=1936,lte=2100"`
	DraftTeam string
	Position  string
}
