package resolver

import (
	"errors"
	"fmt"
	"strings"
)

// Marker errors for resolution failures. Callers branch with errors.Is and
// pull details off the concrete types below.
var (
	ErrPlayerNotFound = errors.New("player not found")
	ErrAmbiguousQuery = errors.New("ambiguous query")
	ErrInvalidQuery   = errors.New("invalid query")
)

// Candidate is a compact summary of one roster row surviving a resolution
// pass, carried on ambiguity errors so the caller can refine the query.
type Candidate struct {
	CanonicalID string
	DisplayName string
	Position    string
	LatestTeam  string
	DraftYear   int
	DraftTeam   string
}

// PlayerNotFoundError reports a query matching no roster entity. When close
// name matches exist they are carried as suggestions.
type PlayerNotFoundError struct {
	Query       string
	Suggestions []string
}

func (e *PlayerNotFoundError) Error() string {
	if len(e.Suggestions) == 0 {
		return fmt.Sprintf("no player matched %q; try relaxing filters or checking the spelling", e.Query)
	}
	return fmt.Sprintf("no player matched %q; close names: %s", e.Query, strings.Join(e.Suggestions, ", "))
}

func (e *PlayerNotFoundError) Unwrap() error { return ErrPlayerNotFound }

// AmbiguousQueryError reports >1 surviving candidates when the caller opted
// out of auto-disambiguation. Candidates preserve notability order.
type AmbiguousQueryError struct {
	Query      string
	Candidates []Candidate
}

func (e *AmbiguousQueryError) Error() string {
	return fmt.Sprintf("query %q matched %d players; add filters or allow auto-disambiguation", e.Query, len(e.Candidates))
}

func (e *AmbiguousQueryError) Unwrap() error { return ErrAmbiguousQuery }
