// Package matching partitions a flat pool of vocabulary pairs into
// bounded practice sets whose right-hand values are unique, so a set
// is always solvable as a one-to-one matching exercise.
package matching

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/lexikit/packgen/internal/domain"
	"github.com/lexikit/packgen/internal/seed"
)

// Set size bounds.
const (
	MinSetSize     = 2
	MaxSetSize     = 12
	DefaultSetSize = 6
)

// Drop categories for the legacy expansion path.
const (
	DropDeprecatedSetPerRow = "deprecated_set_per_row"
	DropInvalidFormat       = "invalid_format"
	DropDuplicatePair       = "duplicatePair"
)

// Service groups matching pairs deterministically.
type Service struct {
	setSize int
	minEmit int
	drops   *domain.Drops
	log     *zap.Logger
}

// New creates a grouping service. Out-of-range sizes are clamped into
// [MinSetSize, MaxSetSize]; zero selects the default. minEmit is the
// size below which a trailing set is flagged to the caller; zero
// selects MinSetSize.
func New(setSize, minEmit int, log *zap.Logger) *Service {
	switch {
	case setSize <= 0:
		setSize = DefaultSetSize
	case setSize < MinSetSize:
		setSize = MinSetSize
	case setSize > MaxSetSize:
		setSize = MaxSetSize
	}
	if minEmit <= 0 {
		minEmit = MinSetSize
	}
	if minEmit > setSize {
		minEmit = setSize
	}
	return &Service{setSize: setSize, minEmit: minEmit, drops: domain.NewDrops(), log: log}
}

// Drops returns the accumulated expansion drops.
func (s *Service) Drops() *domain.Drops { return s.drops }

// Group partitions pairs into right-unique sets of at most the target
// size. The pool is seed-shuffled once, then pairs are dequeued
// greedily into the current set; a pair whose right value is already
// present is deferred to a spillover queue that is requeued at the
// front when the set is emitted. Every input pair lands in exactly one
// output set. When only conflicting pairs remain, each one is emitted
// as its own set rather than reshuffled forever.
func (s *Service) Group(pairs []domain.Pair, seedKey string) []*domain.Set {
	queue := seed.Shuffle(pairs, seedKey)

	var sets []*domain.Set
	for len(queue) > 0 {
		current := domain.NewSet()
		var spill []domain.Pair
		for i, p := range queue {
			if current.Len() == s.setSize {
				spill = append(spill, queue[i:]...)
				break
			}
			if !current.Add(p) {
				spill = append(spill, p)
			}
		}
		// current always absorbs at least the first queued pair, so the
		// loop terminates: the queue strictly shrinks.
		sets = append(sets, current)
		queue = spill
	}

	if n := len(sets); n > 0 && sets[n-1].Len() < s.minEmit {
		s.log.Debug("trailing matching set below minimum size",
			zap.Int("size", sets[n-1].Len()),
			zap.Int("sets", n),
		)
	}
	return sets
}

// Rows flattens grouped sets back into canonical one-pair-per-row
// output. The count column carries the size of the set the pair was
// grouped into.
type Row struct {
	Level   string
	Type    string
	Left    string
	Right   string
	Source  string
	License string
	Count   int
}

// Rows renders the sets in emission order.
func (s *Service) Rows(sets []*domain.Set, level domain.Level) []Row {
	var rows []Row
	for _, set := range sets {
		for _, p := range set.Pairs() {
			lvl := string(p.Level)
			if lvl == "" {
				lvl = string(level)
			}
			rows = append(rows, Row{
				Level:   lvl,
				Type:    "matching",
				Left:    p.Left,
				Right:   p.Right,
				Source:  p.Source,
				License: p.License,
				Count:   set.Len(),
			})
		}
	}
	return rows
}

// GroupSeed composes the canonical grouping seed from run context, so
// parallel shards cannot collide.
func GroupSeed(file string, level domain.Level, pairCount int) string {
	return fmt.Sprintf("matching|%s|%s|%d", file, level, pairCount)
}
