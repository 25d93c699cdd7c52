package validate

import (
	"fmt"
	"strings"

	"github.com/lexikit/packgen/internal/domain"
	"github.com/lexikit/packgen/internal/domain/token"
)

// nearDupPromptDistance bounds the edit-distance check between a
// prompt and every prior prompt in the file. Quadratic, but file
// scoped: acceptable at pack scale.
const nearDupPromptDistance = 3

// mcqFile validates multiple-choice rows: option count, exactly one
// answer match, duplicate and near-duplicate prompts, and the shared
// guard re-screen.
func (s *Service) mcqFile(table Table, report *FileReport) {
	if !table.HasColumn("prompt") || !table.HasColumn("options") ||
		!(table.HasColumn("answer") || table.HasColumn("answers")) {
		report.Fatal = fmt.Sprintf("%s: prompt/options/answer", domain.ErrMissingColumn)
		return
	}

	seenPrompts := make(map[string]bool)
	var priorPrompts []string

	for _, rec := range table.Records() {
		report.Total++
		prompt := rec["prompt"]
		answer := answerOf(rec)

		if strings.TrimSpace(prompt) == "" || strings.TrimSpace(answer) == "" {
			s.drop(report, DropEmptyField, prompt)
			continue
		}

		options := splitOptions(rec["options"])
		if len(options) < 4 {
			s.drop(report, DropOptionCount, prompt)
			continue
		}

		answerHits := 0
		for _, opt := range options {
			if strings.EqualFold(opt, answer) {
				answerHits++
			}
		}
		if answerHits != 1 {
			s.drop(report, DropAnswerCount, answer)
			continue
		}

		norm := token.Normalize(prompt)
		if seenPrompts[norm] {
			s.drop(report, DropDuplicatePrompt, prompt)
			continue
		}
		seenPrompts[norm] = true

		if hasNearDupPrompt(norm, priorPrompts) {
			s.drop(report, DropNearDupPrompt, prompt)
			continue
		}
		priorPrompts = append(priorPrompts, norm)

		sentence := domain.ReconstructSentence(prompt, answer, s.opts.BlankMarker)
		if !s.screen(report, sentence) {
			continue
		}

		report.Kept++
	}
}

func hasNearDupPrompt(norm string, priors []string) bool {
	for _, prior := range priors {
		if token.EditDistance(norm, prior, nearDupPromptDistance) <= nearDupPromptDistance {
			return true
		}
	}
	return false
}
