package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridstats/player-engine/internal/model"
)

func intp(v int) *int { return &v }

func TestNewProfile_FullRow(t *testing.T) {
	row := model.CombinedRow{
		Roster: model.RosterRow{
			GsisID: "00-0000001", DisplayName: "Test Player", FullName: "Testing Player",
			FootballName: "Test", ShortName: "T.Player",
			BirthDate: "1990-01-15", College: "State",
			Position: "WR", PositionGroup: "WR",
			HeightIn: intp(72), WeightLb: intp(200),
			DraftYear: intp(2012), DraftRound: intp(2), DraftPick: intp(40), DraftTeam: "GB",
			LatestTeam: "GB", RookieSeason: intp(2012), LastSeason: intp(2020),
		},
		Crosswalk: &model.CrosswalkRow{
			GsisID:      "00-0000001",
			ExternalIDs: map[string]string{"espn": "1234", "pfr": "PlayTe00"},
		},
	}

	p := model.NewProfile(row)
	assert.Equal(t, "00-0000001", p.CanonicalID)
	assert.Equal(t, "Test Player", p.FullName)
	assert.Equal(t, "Test", p.PreferredName)
	assert.Equal(t, 40, p.DraftPick)
	assert.Equal(t, "1234", p.ExternalIDs["espn"])
	assert.Equal(t, "00-0000001", p.ExternalIDs["gsis"])

	// Every identifier source is present; absent ones are explicit.
	for _, src := range model.IDSources {
		require.Contains(t, p.ExternalIDs, src)
	}
	assert.Equal(t, model.UnknownID, p.ExternalIDs["otc"])
}

func TestNewProfile_NullFillsSparseRow(t *testing.T) {
	p := model.NewProfile(model.CombinedRow{
		Roster: model.RosterRow{GsisID: "00-0000002", DisplayName: "Sparse Guy"},
	})

	assert.Equal(t, 0, p.DraftPick)
	assert.Equal(t, 0, p.HeightIn)
	assert.Empty(t, p.BirthDate)
	for _, src := range model.IDSources {
		if src == "gsis" {
			continue
		}
		assert.Equal(t, model.UnknownID, p.ExternalIDs[src])
	}
}

func TestNewProfile_CrosswalkBackfillsDraftYear(t *testing.T) {
	p := model.NewProfile(model.CombinedRow{
		Roster: model.RosterRow{GsisID: "00-0000003", DisplayName: "Late Fill"},
		Crosswalk: &model.CrosswalkRow{
			GsisID:    "00-0000003",
			DraftYear: intp(2015),
		},
	})
	assert.Equal(t, 2015, p.DraftYear)
}

func TestNewProfile_RejectsMalformedBirthDate(t *testing.T) {
	p := model.NewProfile(model.CombinedRow{
		Roster: model.RosterRow{GsisID: "00-0000004", DisplayName: "Bad Date", BirthDate: "01/15/1990"},
	})
	assert.Empty(t, p.BirthDate)
}

func TestToMap_FlattensWithExplicitUnknowns(t *testing.T) {
	p := model.NewProfile(model.CombinedRow{
		Roster: model.RosterRow{GsisID: "00-0000005", DisplayName: "Mapped Player", Position: "QB"},
	})

	m := p.ToMap()
	assert.Equal(t, "00-0000005", m["canonical_id"])
	assert.Equal(t, "QB", m["position"])
	assert.Equal(t, model.UnknownID, m["draft_pick"])
	assert.Equal(t, model.UnknownID, m["college"])
	assert.Contains(t, m, "espn_id")

	// The map is a copy; mutating it must not touch the snapshot.
	m["position"] = "K"
	assert.Equal(t, "QB", p.Position)
}

func TestSeasonStatRecord_Value(t *testing.T) {
	rec := model.SeasonStatRecord{Values: map[string]float64{"passing_yards": 614}}
	v, ok := rec.Value("passing_yards")
	assert.True(t, ok)
	assert.Equal(t, 614.0, v)

	// Absent column means null, not zero.
	_, ok = rec.Value("receiving_yards")
	assert.False(t, ok)
}
