package matching

import (
	"strings"

	"go.uber.org/zap"

	"github.com/lexikit/packgen/internal/domain"
)

// RawRow is a matching input row before canonicalization. Left and
// Right may still be pipe-delimited multi-value lists in the
// historical set-per-row format.
type RawRow struct {
	Left    string
	Right   string
	Source  string
	License string
	Level   string
}

// Expand canonicalizes raw rows into single pairs. Canonical rows pass
// through; legacy set-per-row cells are split into individual pairs
// and counted as deprecated_set_per_row; rows whose halves cannot be
// zipped are counted as invalid_format and skipped. Duplicate
// (left,right) pairs are dropped and counted. The result feeds the
// same grouping algorithm as canonical input.
func (s *Service) Expand(rows []RawRow) []domain.Pair {
	var pairs []domain.Pair
	seen := make(map[string]bool)

	add := func(left, right string, row RawRow) {
		p, err := domain.NewPair(left, right)
		if err != nil {
			s.drops.Record(DropInvalidFormat, left+" / "+right)
			return
		}
		p.Source, p.License = row.Source, row.License
		if row.Level != "" {
			if lvl, err := domain.ParseLevel(row.Level); err == nil {
				p.Level = lvl
			}
		}
		if seen[p.Key()] {
			s.drops.Record(DropDuplicatePair, p.Left+" / "+p.Right)
			return
		}
		seen[p.Key()] = true
		pairs = append(pairs, p)
	}

	for _, row := range rows {
		lefts := splitCell(row.Left)
		rights := splitCell(row.Right)

		switch {
		case len(lefts) == 1 && len(rights) == 1:
			add(row.Left, row.Right, row)
		case len(lefts) == len(rights) && len(lefts) > 1:
			s.drops.Record(DropDeprecatedSetPerRow, row.Left)
			s.log.Debug("expanding deprecated set-per-row matching row",
				zap.Int("pairs", len(lefts)),
			)
			for i := range lefts {
				add(lefts[i], rights[i], row)
			}
		default:
			s.drops.Record(DropInvalidFormat, row.Left+" / "+row.Right)
		}
	}
	return pairs
}

func splitCell(cell string) []string {
	parts := strings.Split(cell, "|")
	out := parts[:0]
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
