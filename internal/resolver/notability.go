package resolver

import (
	"sort"

	"github.com/gridstats/player-engine/internal/model"
)

const undraftedPick = 1 << 20 // sorts below every real overall selection

// sortByNotability orders candidates best-first so index 0 is the pick for
// auto-disambiguation. The ordering is total: active status, then career
// experience, then most recent active season, then draft capital, with the
// canonical id as the final tie-break so identical inputs always produce
// the same winner.
func sortByNotability(rows []model.CombinedRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i].Roster, rows[j].Roster

		if aa, ba := isActive(a), isActive(b); aa != ba {
			return aa
		}
		if ae, be := experience(a), experience(b); ae != be {
			return ae > be
		}
		if al, bl := lastActiveSeason(a), lastActiveSeason(b); al != bl {
			return al > bl
		}
		if ap, bp := draftCapital(a), draftCapital(b); ap != bp {
			return ap < bp
		}
		return a.GsisID < b.GsisID
	})
}

func isActive(r model.RosterRow) bool { return r.Status == "ACT" }

func experience(r model.RosterRow) int {
	if r.YearsExp == nil {
		return 0
	}
	return *r.YearsExp
}

// lastActiveSeason falls back through draft and rookie season when the
// roster snapshot has no last-season value.
func lastActiveSeason(r model.RosterRow) int {
	switch {
	case r.LastSeason != nil:
		return *r.LastSeason
	case r.DraftYear != nil:
		return *r.DraftYear
	case r.RookieSeason != nil:
		return *r.RookieSeason
	default:
		return 0
	}
}

func draftCapital(r model.RosterRow) int {
	if r.DraftPick == nil || *r.DraftPick <= 0 {
		return undraftedPick
	}
	return *r.DraftPick
}
