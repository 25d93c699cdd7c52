package validate

import (
	"fmt"
	"strings"

	"github.com/lexikit/packgen/internal/domain"
)

// matchingFile validates canonical matching rows: exactly one pair per
// row. Multi-value cells are rejected as invalid_format here — legacy
// expansion is a generator-time behavior, never a validator-time one.
func (s *Service) matchingFile(table Table, report *FileReport) {
	if !table.HasColumn("left") || !table.HasColumn("right") {
		report.Fatal = fmt.Sprintf("%s: left/right", domain.ErrMissingColumn)
		return
	}

	seen := make(map[string]bool)

	for _, rec := range table.Records() {
		report.Total++
		left, right := rec["left"], rec["right"]

		pair, err := domain.NewPair(left, right)
		if err != nil {
			s.drop(report, DropInvalidFormat, left+" / "+right)
			continue
		}

		if seen[pair.Key()] {
			s.drop(report, DropDuplicatePair, pair.Left+" / "+pair.Right)
			continue
		}
		seen[pair.Key()] = true

		if _, ok := s.rowLevel(rec, report); !ok {
			continue
		}

		if !s.screen(report, pair.Left+" "+pair.Right) {
			continue
		}

		report.Kept++
	}
}

// Sets re-derives the right-uniqueness invariant over grouped sets,
// for callers that validate grouped output rather than flat rows.
func (s *Service) Sets(sets []*domain.Set, report *FileReport) {
	for _, set := range sets {
		rights := make(map[string]bool, set.Len())
		for _, p := range set.Pairs() {
			report.Total++
			key := strings.ToLower(p.Right)
			if rights[key] {
				s.drop(report, DropDuplicatePair, p.Right)
				continue
			}
			rights[key] = true
			report.Kept++
		}
	}
}
