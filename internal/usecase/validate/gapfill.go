package validate

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/lexikit/packgen/internal/domain"
	"github.com/lexikit/packgen/internal/domain/token"
)

// gapFillFile re-derives every gap-fill invariant from the emitted
// rows: structure, prompt band, blank count, duplicates, bank
// integrity, and a fresh pass through the safety guards.
func (s *Service) gapFillFile(table Table, report *FileReport) {
	if !table.HasColumn("prompt") || !(table.HasColumn("answer") || table.HasColumn("answers")) {
		report.Fatal = fmt.Sprintf("%s: prompt/answer", domain.ErrMissingColumn)
		return
	}

	telemetry := domain.NewTelemetry()
	seenPrompts := make(map[string]bool)

	for _, rec := range table.Records() {
		report.Total++
		prompt := rec["prompt"]
		answer := answerOf(rec)

		if strings.TrimSpace(prompt) == "" || strings.TrimSpace(answer) == "" {
			s.drop(report, DropEmptyField, prompt)
			continue
		}

		lvl, ok := s.rowLevel(rec, report)
		if !ok {
			continue
		}

		blanks := strings.Count(prompt, s.opts.BlankMarker)
		if blanks < 1 || blanks > lvl.MaxBlanks() {
			s.drop(report, DropBlankCount, prompt)
			continue
		}

		if len(prompt) < domain.MinPromptLen || len(prompt) > domain.MaxPromptLen {
			s.drop(report, DropPromptLength, prompt)
			continue
		}

		if strings.TrimSpace(rec["source"]) == "" || strings.TrimSpace(rec["license"]) == "" {
			s.drop(report, DropAttribution, answer)
			continue
		}

		norm := token.Normalize(prompt)
		if seenPrompts[norm] {
			s.drop(report, DropDuplicatePrompt, prompt)
			continue
		}
		seenPrompts[norm] = true

		if bankCell := rec["bank"]; bankCell != "" {
			if !s.checkBank(report, rec, bankCell, answer, lvl, telemetry) {
				continue
			}
		}

		// Content may have been edited after generation; re-screen the
		// reconstructed sentence through the shared guards.
		sentence := domain.ReconstructSentence(prompt, answer, s.opts.BlankMarker)
		if !s.screen(report, sentence) {
			continue
		}

		report.Kept++
	}

	report.Telemetry = telemetry
}

// checkBank validates an attached option bank: size, answer
// membership, duplicates, stopwords, and morphological consistency.
func (s *Service) checkBank(report *FileReport, rec map[string]string, bankCell, answer string, lvl domain.Level, telemetry *domain.Telemetry) bool {
	options := splitOptions(bankCell)

	if len(options) < s.minBankFor(lvl) {
		s.drop(report, DropBankSize, bankCell)
		return false
	}

	answerHits := 0
	seen := make(map[string]bool, len(options))
	for _, opt := range options {
		key := strings.ToLower(opt)
		if seen[key] {
			s.drop(report, DropBankDuplicate, opt)
			return false
		}
		seen[key] = true
		if strings.EqualFold(opt, answer) {
			answerHits++
		}
	}
	if answerHits != 1 {
		s.drop(report, DropBankAnswer, answer)
		return false
	}

	answerStem := token.Stem(answer)
	morph := s.bankMorph(rec, answer)
	for _, opt := range options {
		if strings.EqualFold(opt, answer) {
			continue
		}
		if !s.opts.GrammarMode && token.IsStopword(opt) {
			s.drop(report, DropBankStopword, opt)
			return false
		}
		if !s.opts.GrammarMode && token.Stem(opt) == answerStem {
			// inflected duplicate of the answer lemma
			s.drop(report, DropBankDuplicate, opt)
			return false
		}
		// grammar banks mix buckets on purpose
		if !s.opts.GrammarMode && token.MorphBucket(opt) != morph {
			s.drop(report, DropBankMorph, opt)
			return false
		}
	}

	telemetry.ObserveBank(len(options), s.bankTags(rec), s.bankUsedRelax(rec))
	return true
}

// bankMorph returns the expected morphology bucket: the recorded slot
// metadata when present, otherwise inferred from the answer's suffix.
func (s *Service) bankMorph(rec map[string]string, answer string) string {
	if meta, ok := s.bankMeta(rec); ok {
		if slot, err := domain.ParseSlot(meta.Slot); err == nil && slot.Morph != "" {
			return slot.Morph
		}
	}
	return token.MorphBucket(answer)
}

func (s *Service) bankTags(rec map[string]string) []string {
	if meta, ok := s.bankMeta(rec); ok {
		return meta.Tags
	}
	return nil
}

func (s *Service) bankUsedRelax(rec map[string]string) bool {
	meta, ok := s.bankMeta(rec)
	return ok && meta.UsedRelax
}

func (s *Service) bankMeta(rec map[string]string) (domain.BankMeta, bool) {
	cell := rec["bank_meta"]
	if cell == "" {
		return domain.BankMeta{}, false
	}
	var meta domain.BankMeta
	if err := json.Unmarshal([]byte(cell), &meta); err != nil {
		return domain.BankMeta{}, false
	}
	return meta, true
}
