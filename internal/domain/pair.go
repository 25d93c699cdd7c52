package domain

import (
	"fmt"
	"strings"
)

// Pair is one matching-exercise pair in canonical single-value form.
type Pair struct {
	Left    string
	Right   string
	Source  string
	License string
	Level   Level
}

// NewPair validates a canonical pair: both cells single-valued and
// non-empty. Pipe-delimited cells belong to the deprecated
// set-per-row format and are rejected here.
func NewPair(left, right string) (Pair, error) {
	if strings.TrimSpace(left) == "" || strings.TrimSpace(right) == "" {
		return Pair{}, fmt.Errorf("pair cells must be non-empty")
	}
	if strings.Contains(left, "|") || strings.Contains(right, "|") {
		return Pair{}, fmt.Errorf("%w: %q / %q", ErrMultiValueCell, left, right)
	}
	return Pair{Left: strings.TrimSpace(left), Right: strings.TrimSpace(right)}, nil
}

// Key identifies the pair for duplicate detection.
func (p Pair) Key() string {
	return strings.ToLower(p.Left) + "\x00" + strings.ToLower(p.Right)
}

// Set is a runtime grouping of pairs whose right-hand values are
// pairwise distinct. Duplicate rights inside one set would make the
// exercise unsolvable.
type Set struct {
	pairs  []Pair
	rights map[string]bool
}

// NewSet creates an empty set.
func NewSet() *Set {
	return &Set{rights: make(map[string]bool)}
}

// Add appends the pair if its right value is not yet present.
func (s *Set) Add(p Pair) bool {
	key := strings.ToLower(p.Right)
	if s.rights[key] {
		return false
	}
	s.rights[key] = true
	s.pairs = append(s.pairs, p)
	return true
}

// HasRight reports whether a pair with this right value is present.
func (s *Set) HasRight(right string) bool {
	return s.rights[strings.ToLower(right)]
}

// Pairs returns the pairs in insertion order.
func (s *Set) Pairs() []Pair { return s.pairs }

// Len returns the number of pairs in the set.
func (s *Set) Len() int { return len(s.pairs) }
