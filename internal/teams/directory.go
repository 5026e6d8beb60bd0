// Package teams normalizes free-text team identifiers to canonical codes.
package teams

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownTeam is the marker error for identifiers matching no variant.
var ErrUnknownTeam = errors.New("unknown team")

// UnknownTeamError carries the identifier that failed to normalize so the
// caller can decide between a hard failure and dropping the filter.
type UnknownTeamError struct {
	Identifier string
}

func (e *UnknownTeamError) Error() string {
	return fmt.Sprintf("unknown team identifier %q", e.Identifier)
}

func (e *UnknownTeamError) Unwrap() error { return ErrUnknownTeam }

// Directory maps every known team name and abbreviation variant, including
// historical ones, to the franchise's current canonical code. Immutable
// after construction, safe for concurrent reads.
type Directory struct {
	index   map[string]string
	compact map[string]string
}

// NewDirectory builds the lookup index from the static franchise catalog.
// Variants shared by two franchises (bare "New York", "Los Angeles") are
// dropped from the index rather than resolved arbitrarily.
func NewDirectory() *Directory {
	d := &Directory{
		index:   make(map[string]string),
		compact: make(map[string]string),
	}
	ambiguous := make(map[string]bool)
	add := func(variant, code string) {
		key := normalizeKey(variant)
		if key == "" {
			return
		}
		if prev, ok := d.index[key]; ok && prev != code {
			ambiguous[key] = true
			return
		}
		d.index[key] = code
	}

	for _, f := range catalog {
		add(f.Code, f.Code)
		add(f.Location, f.Code)
		add(f.Nickname, f.Code)
		add(f.Location+" "+f.Nickname, f.Code)
		for _, alias := range f.Aliases {
			add(alias, f.Code)
		}
	}
	for key := range ambiguous {
		delete(d.index, key)
	}
	for key, code := range d.index {
		d.compact[compactKey(key)] = code
	}
	return d
}

// Normalize maps an identifier to its canonical code. Matching is
// case-insensitive, trims whitespace and retries with punctuation stripped.
func (d *Directory) Normalize(identifier string) (string, error) {
	key := normalizeKey(identifier)
	if key == "" {
		return "", &UnknownTeamError{Identifier: identifier}
	}
	if code, ok := d.index[key]; ok {
		return code, nil
	}
	if code, ok := d.compact[compactKey(key)]; ok {
		return code, nil
	}
	return "", &UnknownTeamError{Identifier: identifier}
}

func normalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func compactKey(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
