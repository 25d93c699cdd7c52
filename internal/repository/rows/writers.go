package rows

import (
	"fmt"
	"io"
	"strings"

	"github.com/lexikit/packgen/internal/usecase/generate"
	"github.com/lexikit/packgen/internal/usecase/matching"
)

// Column layouts of the emitted exercise files.
var (
	GapFillHeader  = []string{"level", "type", "prompt", "answer", "source", "license", "gap_mode", "bank", "hints", "bank_quality", "bank_meta"}
	MatchingHeader = []string{"level", "type", "left", "right", "source", "license", "count"}
	MCQHeader      = []string{"type", "prompt", "options", "answer", "source", "license"}
)

// WriteGapFill emits gap-fill rows as BOM-prefixed CSV. Banks are
// pipe-joined, hints semicolon-joined, bank metadata JSON-encoded.
func WriteGapFill(w io.Writer, rowsIn []generate.GapFillRow) error {
	cw, err := NewWriter(w, GapFillHeader)
	if err != nil {
		return err
	}
	for _, r := range rowsIn {
		cells := []string{
			r.Level,
			r.Type,
			r.Prompt,
			r.Answer,
			r.Source,
			r.License,
			r.GapMode,
			strings.Join(r.Bank, "|"),
			strings.Join(r.Hints, ";"),
			r.BankQuality,
			r.BankMeta,
		}
		if err := cw.Write(cells); err != nil {
			return err
		}
	}
	return cw.Flush()
}

// WriteMatching emits canonical one-pair-per-row matching CSV.
func WriteMatching(w io.Writer, rowsIn []matching.Row) error {
	cw, err := NewWriter(w, MatchingHeader)
	if err != nil {
		return err
	}
	for _, r := range rowsIn {
		cells := []string{
			r.Level,
			r.Type,
			r.Left,
			r.Right,
			r.Source,
			r.License,
			fmt.Sprintf("%d", r.Count),
		}
		if err := cw.Write(cells); err != nil {
			return err
		}
	}
	return cw.Flush()
}

// WriteMCQ emits multiple-choice rows with pipe-joined options.
func WriteMCQ(w io.Writer, rowsIn []generate.MCQRow) error {
	cw, err := NewWriter(w, MCQHeader)
	if err != nil {
		return err
	}
	for _, r := range rowsIn {
		cells := []string{
			r.Type,
			r.Prompt,
			strings.Join(r.Options, "|"),
			r.Answer,
			r.Source,
			r.License,
		}
		if err := cw.Write(cells); err != nil {
			return err
		}
	}
	return cw.Flush()
}
