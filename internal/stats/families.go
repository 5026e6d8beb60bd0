// Package stats fetches, validates, caches and aggregates per-season
// statistics for a resolved player across stat families.
package stats

import (
	"errors"
	"fmt"
	"sort"
)

// Family is a distinct statistics source with its own supported season
// range and column set.
type Family string

const (
	// FamilyBasic is the week-level box-score family.
	FamilyBasic Family = "basic"
	// FamilyTracking is the advanced player-tracking family. Its source
	// keys rows by display name, not canonical id.
	FamilyTracking Family = "tracking"
	// FamilyAdvanced is the film-room analytics family: season-level rows
	// keyed by Pro Football Reference id, published for a fixed era.
	FamilyAdvanced Family = "advanced"
)

// Season availability bounds. The latest season advances as new data lands
// and is overridable per aggregator; the advanced family is era-limited at
// both ends and never extends past its last published season.
const (
	EarliestBasicSeason    = 1999
	EarliestTrackingSeason = 2016
	EarliestAdvancedSeason = 2018
	LatestAdvancedSeason   = 2024
	DefaultLatestSeason    = 2025
)

// Game contexts carried on weekly rows and season records.
const (
	SeasonTypeRegular = "REG"
	SeasonTypePost    = "POST"
)

// ErrSeasonNotAvailable is the marker error for out-of-range season requests.
var ErrSeasonNotAvailable = errors.New("season not available")

// SeasonNotAvailableError names every offending season and the valid range
// so the caller can correct the request in one step.
type SeasonNotAvailableError struct {
	Family   Family
	Invalid  []int
	Earliest int
	Latest   int
}

func (e *SeasonNotAvailableError) Error() string {
	return fmt.Sprintf("%s stats unavailable for seasons %v; supported range is %d-%d",
		e.Family, e.Invalid, e.Earliest, e.Latest)
}

func (e *SeasonNotAvailableError) Unwrap() error { return ErrSeasonNotAvailable }

// seasonRange returns the inclusive supported bounds for a family.
func seasonRange(family Family, latest int) (int, int) {
	switch family {
	case FamilyTracking:
		return EarliestTrackingSeason, latest
	case FamilyAdvanced:
		if latest > LatestAdvancedSeason {
			latest = LatestAdvancedSeason
		}
		return EarliestAdvancedSeason, latest
	default:
		return EarliestBasicSeason, latest
	}
}

// validateSeasons applies the all-or-nothing contract: if any requested
// season falls outside the family's range the whole request is rejected,
// naming every invalid season.
func validateSeasons(seasons []int, family Family, latest int) error {
	earliest, last := seasonRange(family, latest)
	var invalid []int
	for _, s := range seasons {
		if s < earliest || s > last {
			invalid = append(invalid, s)
		}
	}
	if len(invalid) == 0 {
		return nil
	}
	sort.Ints(invalid)
	return &SeasonNotAvailableError{Family: family, Invalid: invalid, Earliest: earliest, Latest: last}
}
