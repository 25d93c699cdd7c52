package domain

import (
	"fmt"
	"strings"

	"github.com/lexikit/packgen/internal/domain/token"
)

// Prompt character band. Attempts outside the band are rejected, not
// repaired: the caller moves on to the next example sentence.
const (
	MinPromptLen = 40
	MaxPromptLen = 120
)

// Cloze is an ephemeral gap-fill attempt: one token of an example
// sentence replaced by a blank marker.
type Cloze struct {
	Prompt      string
	Answer      string // the surface form that was blanked
	Sentence    string
	Tokens      []token.Token
	TargetIndex int
}

// NewCloze locates an inflected occurrence of lemma in sentence and
// replaces it with marker. The match is case-insensitive; the blanked
// surface form becomes the answer.
func NewCloze(sentence, lemma string, pos POS, marker string) (Cloze, error) {
	tokens := token.Tokenize(sentence)
	forms := make(map[string]bool)
	for _, f := range token.Inflections(lemma, string(pos)) {
		forms[f] = true
	}

	target := -1
	for i, t := range tokens {
		if forms[strings.ToLower(t.Text)] {
			target = i
			break
		}
	}
	if target < 0 {
		return Cloze{}, fmt.Errorf("%w: %q in %q", ErrLemmaNotFound, lemma, sentence)
	}

	t := tokens[target]
	prompt := sentence[:t.Start] + marker + sentence[t.End:]
	if len(prompt) < MinPromptLen || len(prompt) > MaxPromptLen {
		return Cloze{}, fmt.Errorf("%w: %d chars", ErrPromptBand, len(prompt))
	}

	return Cloze{
		Prompt:      prompt,
		Answer:      t.Text,
		Sentence:    sentence,
		Tokens:      tokens,
		TargetIndex: target,
	}, nil
}

// Reconstruct substitutes the answer back into a prompt, yielding the
// sentence that must pass the safety guards. Every blank marker is
// replaced.
func ReconstructSentence(prompt, answer, marker string) string {
	return strings.ReplaceAll(prompt, marker, answer)
}
