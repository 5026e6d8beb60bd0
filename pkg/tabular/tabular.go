// Package tabular shapes engine outputs into header+rows string tables for
// display or delimited export by the embedding application.
package tabular

import (
	"sort"
	"strconv"

	"github.com/gridstats/player-engine/internal/model"
)

// MasterHeader returns the single header row of a master table.
func MasterHeader(t model.MasterTable) []string {
	out := make([]string, len(t.Columns))
	copy(out, t.Columns)
	return out
}

// MasterRows renders every season record against the table's column
// ordering. Null columns render as empty cells, never as "0".
func MasterRows(t model.MasterTable) [][]string {
	rows := make([][]string, 0, len(t.Rows))
	for _, rec := range t.Rows {
		row := make([]string, 0, len(t.Columns))
		for _, col := range t.Columns {
			row = append(row, cell(rec, col))
		}
		rows = append(rows, row)
	}
	return rows
}

func cell(rec model.SeasonStatRecord, col string) string {
	switch col {
	case "season":
		return strconv.Itoa(rec.Season)
	case "season_type":
		return rec.SeasonType
	case "games_played":
		return strconv.Itoa(rec.GamesPlayed)
	case "player_name":
		return rec.PlayerName
	case "player_id":
		return rec.PlayerID
	}
	if v, ok := rec.Value(col); ok {
		return formatValue(v)
	}
	return ""
}

// ProfileRows flattens a snapshot into sorted key/value pairs.
func ProfileRows(p model.ProfileSnapshot) [][2]string {
	m := p.ToMap()
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([][2]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, [2]string{k, m[k]})
	}
	return out
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
