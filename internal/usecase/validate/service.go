// Package validate independently re-derives the structural and quality
// invariants over already-generated exercise rows. It never trusts
// generator-time guarantees: every check, including the safety
// screening, runs again from the emitted data.
package validate

import (
	"fmt"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/lexikit/packgen/internal/domain"
)

// Validator-side drop categories.
const (
	DropEmptyField      = "emptyField"
	DropUnknownLevel    = "unknownLevel"
	DropBlankCount      = "blankCount"
	DropPromptLength    = "promptLength"
	DropAttribution     = "attribution"
	DropDuplicatePrompt = "duplicatePrompt"
	DropNearDupPrompt   = "nearDuplicatePrompt"
	DropBankSize        = "bankSize"
	DropBankAnswer      = "bankAnswer"
	DropBankDuplicate   = "bankDuplicate"
	DropBankStopword    = "bankStopword"
	DropBankMorph       = "bankMorph"
	DropOptionCount     = "optionCount"
	DropAnswerCount     = "answerCount"
	DropInvalidFormat   = "invalid_format"
	DropDuplicatePair   = "duplicatePair"
)

// Options configures one validation run.
type Options struct {
	// GrammarMode allows stopwords and paradigm duplicates in banks.
	GrammarMode bool
	// BlankMarker is the blank token expected in prompts.
	BlankMarker string
	// BankMin overrides the per-level bank minimum (level string key).
	BankMin map[string]int
	// DefaultLevel applies to rows without a level column.
	DefaultLevel domain.Level
}

func (o *Options) applyDefaults() {
	if o.BlankMarker == "" {
		o.BlankMarker = "_____"
	}
	if o.DefaultLevel == "" {
		o.DefaultLevel = domain.LevelA2
	}
}

// Service is the pack validator.
type Service struct {
	guard     Screener
	opts      Options
	guardHits *prometheus.CounterVec
	log       *zap.Logger
}

// New creates a validator sharing the generator's guard.
func New(g Screener, opts Options, log *zap.Logger) *Service {
	opts.applyDefaults()
	return &Service{guard: g, opts: opts, log: log}
}

// WithGuardMetrics mirrors guard hits into a Prometheus counter
// labeled by category.
func (s *Service) WithGuardMetrics(vec *prometheus.CounterVec) *Service {
	s.guardHits = vec
	return s
}

// File validates one parsed CSV table of the given exercise type.
// Structural problems (missing required columns) mark the file fatal
// and abort it; everything else is a categorized, non-fatal drop.
func (s *Service) File(name, exerciseType string, table Table) FileReport {
	report := FileReport{
		File:    name,
		Type:    exerciseType,
		Drops:   make(map[string]*domain.DropDetail),
		Filters: make(map[string]int),
	}

	switch exerciseType {
	case "gapfill":
		s.gapFillFile(table, &report)
	case "matching":
		s.matchingFile(table, &report)
	case "mcq":
		s.mcqFile(table, &report)
	default:
		report.Fatal = fmt.Sprintf("%s: %q", domain.ErrUnsupportedType, exerciseType)
	}

	s.log.Info("validated file",
		zap.String("file", name),
		zap.String("type", exerciseType),
		zap.Int("total", report.Total),
		zap.Int("kept", report.Kept),
		zap.String("fatal", report.Fatal),
	)
	return report
}

// drop records a categorized rejection on the report.
func (s *Service) drop(report *FileReport, category, sample string) {
	detail := report.Drops[category]
	if detail == nil {
		detail = &domain.DropDetail{}
		report.Drops[category] = detail
	}
	detail.Count++
	if sample != "" && len(detail.Samples) < domain.MaxDropSamples {
		detail.Samples = append(detail.Samples, sample)
	}
}

// screen re-runs the shared guard pipeline over a reconstructed
// sentence, recording both the drop and the guard-hit filter count.
func (s *Service) screen(report *FileReport, text string) bool {
	v := s.guard.Screen(text)
	if v.OK {
		return true
	}
	report.Filters[v.Category]++
	if s.guardHits != nil {
		s.guardHits.WithLabelValues(v.Category).Inc()
	}
	s.drop(report, v.Category, v.Term)
	return false
}

// rowLevel parses the level cell, falling back to the configured
// default when the column is absent.
func (s *Service) rowLevel(rec map[string]string, report *FileReport) (domain.Level, bool) {
	raw := rec["level"]
	if raw == "" {
		return s.opts.DefaultLevel, true
	}
	lvl, err := domain.ParseLevel(raw)
	if err != nil {
		s.drop(report, DropUnknownLevel, raw)
		return "", false
	}
	return lvl, true
}

// minBankFor resolves the bank minimum for a level, config overrides
// first.
func (s *Service) minBankFor(lvl domain.Level) int {
	if n, ok := s.opts.BankMin[string(lvl)]; ok && n > 0 {
		return n
	}
	return lvl.MinBankSize()
}

// answerOf returns the answer cell, accepting both the answers and
// answer spellings of the column.
func answerOf(rec map[string]string) string {
	if a := rec["answers"]; a != "" {
		return a
	}
	return rec["answer"]
}

func splitOptions(cell string) []string {
	if cell == "" {
		return nil
	}
	parts := strings.Split(cell, "|")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
