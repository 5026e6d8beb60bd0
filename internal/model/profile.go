package model

import (
	"sort"
	"strconv"
	"time"
)

// IDSources lists every cross-platform identifier the profile carries.
// Absent identifiers are filled with UnknownID so consumers never have to
// distinguish a missing key from a missing value.
var IDSources = []string{"gsis", "espn", "pfr", "pff", "sportradar", "esb", "otc", "nfl"}

// UnknownID marks an identifier the crosswalk could not supply.
const UnknownID = "unknown"

// ProfileSnapshot is the immutable record of a resolved player's identity
// and biographical attributes, built once per resolution. Zero-valued
// numeric fields mean the source had no value.
type ProfileSnapshot struct {
	CanonicalID   string
	FullName      string
	PreferredName string
	ShortName     string
	BirthDate     string // ISO 8601 or empty
	College       string
	Position      string
	PositionGroup string
	HeightIn      int
	WeightLb      int
	DraftYear     int
	DraftRound    int
	DraftPick     int
	DraftTeam     string
	LatestTeam    string
	RookieSeason  int
	LastSeason    int
	ExternalIDs   map[string]string // every IDSources key present
}

// NewProfile builds a snapshot from a combined roster+crosswalk row.
// Missing fields are null-filled explicitly; crosswalk values backfill
// roster gaps (some crosswalk sources know draft data the roster lacks).
func NewProfile(row CombinedRow) ProfileSnapshot {
	r := row.Roster

	p := ProfileSnapshot{
		CanonicalID:   r.GsisID,
		FullName:      firstNonEmpty(r.DisplayName, r.FullName, r.FirstName+" "+r.LastName),
		PreferredName: firstNonEmpty(r.FootballName, r.FirstName),
		ShortName:     r.ShortName,
		BirthDate:     normalizeDate(r.BirthDate),
		College:       r.College,
		Position:      r.Position,
		PositionGroup: r.PositionGroup,
		HeightIn:      intOrZero(r.HeightIn),
		WeightLb:      intOrZero(r.WeightLb),
		DraftYear:     intOrZero(r.DraftYear),
		DraftRound:    intOrZero(r.DraftRound),
		DraftPick:     intOrZero(r.DraftPick),
		DraftTeam:     r.DraftTeam,
		LatestTeam:    r.LatestTeam,
		RookieSeason:  intOrZero(r.RookieSeason),
		LastSeason:    intOrZero(r.LastSeason),
	}

	ids := make(map[string]string, len(IDSources))
	for _, src := range IDSources {
		ids[src] = UnknownID
	}
	if r.GsisID != "" {
		ids["gsis"] = r.GsisID
	}
	if cw := row.Crosswalk; cw != nil {
		for src, val := range cw.ExternalIDs {
			if val != "" {
				ids[src] = val
			}
		}
		if p.DraftYear == 0 && cw.DraftYear != nil {
			p.DraftYear = *cw.DraftYear
		}
	}
	p.ExternalIDs = ids
	return p
}

// ToMap flattens the snapshot into a fresh string map for display or
// serialization. Numeric zeros and empty strings render as UnknownID.
func (p ProfileSnapshot) ToMap() map[string]string {
	out := map[string]string{
		"canonical_id":   orUnknown(p.CanonicalID),
		"full_name":      orUnknown(p.FullName),
		"preferred_name": orUnknown(p.PreferredName),
		"short_name":     orUnknown(p.ShortName),
		"birth_date":     orUnknown(p.BirthDate),
		"college":        orUnknown(p.College),
		"position":       orUnknown(p.Position),
		"position_group": orUnknown(p.PositionGroup),
		"height_in":      intOrUnknown(p.HeightIn),
		"weight_lb":      intOrUnknown(p.WeightLb),
		"draft_year":     intOrUnknown(p.DraftYear),
		"draft_round":    intOrUnknown(p.DraftRound),
		"draft_pick":     intOrUnknown(p.DraftPick),
		"draft_team":     orUnknown(p.DraftTeam),
		"latest_team":    orUnknown(p.LatestTeam),
		"rookie_season":  intOrUnknown(p.RookieSeason),
		"last_season":    intOrUnknown(p.LastSeason),
	}
	keys := make([]string, 0, len(p.ExternalIDs))
	for src := range p.ExternalIDs {
		keys = append(keys, src)
	}
	sort.Strings(keys)
	for _, src := range keys {
		out[src+"_id"] = p.ExternalIDs[src]
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" && v != " " {
			return v
		}
	}
	return ""
}

func intOrZero(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

func orUnknown(s string) string {
	if s == "" {
		return UnknownID
	}
	return s
}

func intOrUnknown(v int) string {
	if v == 0 {
		return UnknownID
	}
	return strconv.Itoa(v)
}

// normalizeDate keeps only values that parse as ISO dates; anything else
// is treated as absent rather than passed through malformed.
func normalizeDate(s string) string {
	if s == "" {
		return ""
	}
	if _, err := time.Parse("2006-01-02", s); err != nil {
		return ""
	}
	return s
}
