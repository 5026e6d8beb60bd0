// Package resolver turns a free-text player query into a single resolved
// profile: exact name pass, token fallback, filter application, then
// deterministic notability scoring when several candidates survive.
package resolver

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/rs/zerolog"

	"github.com/gridstats/player-engine/internal/metrics"
	"github.com/gridstats/player-engine/internal/model"
	"github.com/gridstats/player-engine/internal/roster"
	"github.com/gridstats/player-engine/internal/teams"
)

const maxSuggestions = 5

var tokenSplit = regexp.MustCompile(`[^a-z0-9]+`)

// Resolver matches search criteria against the combined roster+crosswalk
// table. One caller goroutine per instance; the underlying caches handle
// their own first-load synchronization.
type Resolver struct {
	cache    *roster.Cache
	teams    *teams.Directory
	validate *validator.Validate
	log      zerolog.Logger
}

func New(cache *roster.Cache, directory *teams.Directory, logger zerolog.Logger) *Resolver {
	l := logger.With().Str("component", "resolver").Logger()
	return &Resolver{
		cache:    cache,
		teams:    directory,
		validate: validator.New(),
		log:      l,
	}
}

// Resolve returns the single most plausible player for the criteria,
// auto-disambiguating multiple matches by notability score.
func (r *Resolver) Resolve(ctx context.Context, criteria model.SearchCriteria) (model.ProfileSnapshot, error) {
	return r.resolve(ctx, criteria, false)
}

// ResolveStrict behaves like Resolve but fails with AmbiguousQueryError
// instead of auto-disambiguating when several candidates survive.
func (r *Resolver) ResolveStrict(ctx context.Context, criteria model.SearchCriteria) (model.ProfileSnapshot, error) {
	return r.resolve(ctx, criteria, true)
}

func (r *Resolver) resolve(ctx context.Context, criteria model.SearchCriteria, strict bool) (model.ProfileSnapshot, error) {
	criteria.Name = strings.TrimSpace(criteria.Name)
	criteria.Team = strings.TrimSpace(criteria.Team)
	criteria.DraftTeam = strings.TrimSpace(criteria.DraftTeam)
	if err := r.validate.Struct(criteria); err != nil {
		return model.ProfileSnapshot{}, fmt.Errorf("%w: %v", ErrInvalidQuery, err)
	}

	dataset, err := r.cache.Combined(ctx)
	if err != nil {
		return model.ProfileSnapshot{}, err
	}

	// Exact pass first. The token fallback only activates on an empty
	// exact set and never narrows or overrides exact matches.
	matched := exactMatches(dataset, criteria.Name)
	if len(matched) == 0 {
		matched = fallbackMatches(dataset, criteria.Name)
	}
	candidates := dedupeByID(matched)

	hadFilters := criteria.Team != "" || criteria.DraftTeam != "" || criteria.DraftYear != 0 || criteria.Position != ""
	if len(candidates) > 0 && hadFilters {
		candidates, err = r.applyFilters(candidates, criteria)
		if err != nil {
			return model.ProfileSnapshot{}, err
		}
		if len(candidates) == 0 {
			// Filters were supplied and matched nothing; reverting to the
			// unfiltered set would silently answer a different question.
			metrics.Resolutions.WithLabelValues(metrics.OutcomeNotFound).Inc()
			return model.ProfileSnapshot{}, &PlayerNotFoundError{Query: criteria.Name}
		}
	}

	switch len(candidates) {
	case 0:
		metrics.Resolutions.WithLabelValues(metrics.OutcomeNotFound).Inc()
		return model.ProfileSnapshot{}, &PlayerNotFoundError{
			Query:       criteria.Name,
			Suggestions: suggestNames(dataset, criteria.Name),
		}
	case 1:
		metrics.Resolutions.WithLabelValues(metrics.OutcomeResolved).Inc()
		return model.NewProfile(candidates[0]), nil
	}

	sortByNotability(candidates)
	if strict {
		metrics.Resolutions.WithLabelValues(metrics.OutcomeAmbiguous).Inc()
		return model.ProfileSnapshot{}, &AmbiguousQueryError{
			Query:      criteria.Name,
			Candidates: summarize(candidates),
		}
	}
	winner := candidates[0]
	r.log.Debug().
		Str("query", criteria.Name).
		Int("candidates", len(candidates)).
		Str("selected", winner.Roster.GsisID).
		Msg("auto-disambiguated")
	metrics.Resolutions.WithLabelValues(metrics.OutcomeResolved).Inc()
	return model.NewProfile(winner), nil
}

// nameFields returns every name variant a combined row is known by.
func nameFields(row model.CombinedRow) []string {
	fields := []string{
		row.Roster.DisplayName,
		row.Roster.FullName,
		row.Roster.FootballName + " " + row.Roster.LastName,
		row.Roster.ShortName,
	}
	if row.Crosswalk != nil {
		fields = append(fields, row.Crosswalk.Name, row.Crosswalk.MergeName)
	}
	return fields
}

func exactMatches(dataset []model.CombinedRow, name string) []model.CombinedRow {
	want := strings.ToLower(name)
	var out []model.CombinedRow
	for _, row := range dataset {
		for _, field := range nameFields(row) {
			if field != "" && strings.ToLower(strings.TrimSpace(field)) == want {
				out = append(out, row)
				break
			}
		}
	}
	return out
}

// fallbackMatches handles names the roster snapshot spells differently, such
// as a surname gaining a hyphenated half after a legal name change. A row
// matches when its name tokens contain every query token, or all but one.
func fallbackMatches(dataset []model.CombinedRow, name string) []model.CombinedRow {
	queryTokens := tokenize(name)
	if len(queryTokens) == 0 {
		return nil
	}
	var out []model.CombinedRow
	for _, row := range dataset {
		rowTokens := make(map[string]bool)
		for _, field := range nameFields(row) {
			for _, tok := range tokenize(field) {
				rowTokens[tok] = true
			}
		}
		shared := 0
		for _, tok := range queryTokens {
			if rowTokens[tok] {
				shared++
			}
		}
		if shared == len(queryTokens) || (len(queryTokens) >= 2 && shared == len(queryTokens)-1) {
			out = append(out, row)
		}
	}
	return out
}

func tokenize(s string) []string {
	var out []string
	for _, tok := range tokenSplit.Split(strings.ToLower(s), -1) {
		if tok != "" {
			out = append(out, tok)
		}
	}
	return out
}

// dedupeByID collapses the multi-row join to one row per canonical id,
// merging identifier values from duplicate crosswalk rows so the profile
// keeps every id source seen for the player.
func dedupeByID(rows []model.CombinedRow) []model.CombinedRow {
	seen := make(map[string]int)
	var out []model.CombinedRow
	for _, row := range rows {
		idx, ok := seen[row.Roster.GsisID]
		if !ok {
			seen[row.Roster.GsisID] = len(out)
			out = append(out, row)
			continue
		}
		if row.Crosswalk == nil {
			continue
		}
		kept := out[idx]
		if kept.Crosswalk == nil {
			out[idx].Crosswalk = row.Crosswalk
			continue
		}
		// Copy before merging; the join rows belong to the shared cache.
		merged := *kept.Crosswalk
		merged.ExternalIDs = make(map[string]string, len(kept.Crosswalk.ExternalIDs)+len(row.Crosswalk.ExternalIDs))
		for k, v := range kept.Crosswalk.ExternalIDs {
			merged.ExternalIDs[k] = v
		}
		for k, v := range row.Crosswalk.ExternalIDs {
			if _, dup := merged.ExternalIDs[k]; !dup {
				merged.ExternalIDs[k] = v
			}
		}
		out[idx].Crosswalk = &merged
	}
	return out
}

func (r *Resolver) applyFilters(candidates []model.CombinedRow, criteria model.SearchCriteria) ([]model.CombinedRow, error) {
	if criteria.Team != "" {
		code, err := r.teams.Normalize(criteria.Team)
		if err != nil {
			return nil, err
		}
		candidates = filter(candidates, func(row model.CombinedRow) bool {
			if strings.EqualFold(row.Roster.LatestTeam, code) {
				return true
			}
			return row.Crosswalk != nil && strings.EqualFold(row.Crosswalk.Team, code)
		})
	}
	if criteria.DraftTeam != "" {
		code, err := r.teams.Normalize(criteria.DraftTeam)
		if err != nil {
			return nil, err
		}
		candidates = filter(candidates, func(row model.CombinedRow) bool {
			return strings.EqualFold(row.Roster.DraftTeam, code)
		})
	}
	if criteria.DraftYear != 0 {
		candidates = filter(candidates, func(row model.CombinedRow) bool {
			if row.Roster.DraftYear != nil && *row.Roster.DraftYear == criteria.DraftYear {
				return true
			}
			return row.Crosswalk != nil && row.Crosswalk.DraftYear != nil && *row.Crosswalk.DraftYear == criteria.DraftYear
		})
	}
	if criteria.Position != "" {
		candidates = filter(candidates, func(row model.CombinedRow) bool {
			return strings.EqualFold(row.Roster.Position, criteria.Position) ||
				strings.EqualFold(row.Roster.PositionGroup, criteria.Position)
		})
	}
	return candidates, nil
}

func filter(rows []model.CombinedRow, keep func(model.CombinedRow) bool) []model.CombinedRow {
	var out []model.CombinedRow
	for _, row := range rows {
		if keep(row) {
			out = append(out, row)
		}
	}
	return out
}

// suggestNames ranks roster display names by Levenshtein distance to the
// failed query and returns the closest few.
func suggestNames(dataset []model.CombinedRow, query string) []string {
	q := strings.ToLower(query)
	type ranked struct {
		name string
		dist int
	}
	best := make(map[string]int)
	for _, row := range dataset {
		name := row.Roster.DisplayName
		if name == "" {
			continue
		}
		dist := fuzzy.LevenshteinDistance(q, strings.ToLower(name))
		if dist > len(q)/2 || dist > 4 {
			continue
		}
		if prev, ok := best[name]; !ok || dist < prev {
			best[name] = dist
		}
	}
	all := make([]ranked, 0, len(best))
	for name, dist := range best {
		all = append(all, ranked{name, dist})
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].dist != all[j].dist {
			return all[i].dist < all[j].dist
		}
		return all[i].name < all[j].name
	})
	if len(all) > maxSuggestions {
		all = all[:maxSuggestions]
	}
	out := make([]string, len(all))
	for i, r := range all {
		out[i] = r.name
	}
	return out
}

func summarize(rows []model.CombinedRow) []Candidate {
	out := make([]Candidate, 0, len(rows))
	for _, row := range rows {
		c := Candidate{
			CanonicalID: row.Roster.GsisID,
			DisplayName: row.Roster.DisplayName,
			Position:    row.Roster.Position,
			LatestTeam:  row.Roster.LatestTeam,
			DraftTeam:   row.Roster.DraftTeam,
		}
		if row.Roster.DraftYear != nil {
			c.DraftYear = *row.Roster.DraftYear
		}
		out = append(out, c)
	}
	return out
}
