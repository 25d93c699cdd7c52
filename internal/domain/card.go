package domain

import "fmt"

// POS is a coarse part-of-speech tag.
type POS string

const (
	POSNoun POS = "NOUN"
	POSVerb POS = "VERB"
	POSAdj  POS = "ADJ"
	POSAdv  POS = "ADV"
)

// ParsePOS validates a part-of-speech string.
func ParsePOS(s string) (POS, error) {
	switch POS(s) {
	case POSNoun, POSVerb, POSAdj, POSAdv:
		return POS(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPOS, s)
}

// Collocation is one mined collocation entry on a card.
type Collocation struct {
	Anchor  string
	Partner string
	Score   float64
	Slot    string
}

// CaseStats carries the corpus casing statistics for a lemma, consumed
// by the proper-noun guard.
type CaseStats struct {
	// ProperRatio is the fraction of corpus occurrences POS-tagged as a
	// proper noun.
	ProperRatio float64
	// CapitalizedRatio is the fraction of corpus occurrences written
	// with a leading capital.
	CapitalizedRatio float64
}

// FlagAvoidAsBlank marks a card whose lemma should not be blanked.
const FlagAvoidAsBlank = "avoid_as_blank"

// Card is a read-only lexical unit: lemma, level-appropriate example
// sentences, and mined collocation statistics.
type Card struct {
	lemma        string
	pos          POS
	freqZipf     *float64
	examples     []string
	collocations []Collocation
	distractors  []string
	flags        []string
	source       string
	license      string
	caseStats    CaseStats
}

// NewCard validates and creates a Card. Cards with no examples or fewer
// than two collocations are excluded upstream; this constructor
// enforces the same invariant for direct callers.
func NewCard(lemma string, pos POS, examples []string, collocations []Collocation) (Card, error) {
	if lemma == "" {
		return Card{}, fmt.Errorf("card lemma is required")
	}
	if _, err := ParsePOS(string(pos)); err != nil {
		return Card{}, err
	}
	if len(examples) == 0 {
		return Card{}, fmt.Errorf("%w: %q", ErrNoExamples, lemma)
	}
	if len(collocations) < 2 {
		return Card{}, fmt.Errorf("%w: %q", ErrTooFewCollocations, lemma)
	}
	return Card{
		lemma:        lemma,
		pos:          pos,
		examples:     append([]string(nil), examples...),
		collocations: append([]Collocation(nil), collocations...),
	}, nil
}

// Reconstruct creates a Card without validation (corpus hydration).
func Reconstruct(
	lemma string, pos POS, freqZipf *float64,
	examples []string, collocations []Collocation, distractors []string,
	flags []string, source, license string, stats CaseStats,
) Card {
	return Card{
		lemma: lemma, pos: pos, freqZipf: freqZipf,
		examples: examples, collocations: collocations, distractors: distractors,
		flags: flags, source: source, license: license, caseStats: stats,
	}
}

// Lemma returns the dictionary form.
func (c *Card) Lemma() string { return c.lemma }

// POS returns the part of speech.
func (c *Card) POS() POS { return c.pos }

// FreqZipf returns the Zipf frequency, or nil when unknown.
func (c *Card) FreqZipf() *float64 { return c.freqZipf }

// Examples returns the ordered example sentences.
func (c *Card) Examples() []string { return c.examples }

// Collocations returns the mined collocation entries.
func (c *Card) Collocations() []Collocation { return c.collocations }

// Distractors returns the pre-seeded distractor list, if any.
func (c *Card) Distractors() []string { return c.distractors }

// Source returns the attribution source.
func (c *Card) Source() string { return c.source }

// License returns the attribution license.
func (c *Card) License() string { return c.license }

// CaseStats returns the corpus casing statistics.
func (c *Card) CaseStats() CaseStats { return c.caseStats }

// HasFlag reports whether the card carries the given flag.
func (c *Card) HasFlag(flag string) bool {
	for _, f := range c.flags {
		if f == flag {
			return true
		}
	}
	return false
}

// PartnerFor returns the collocation whose partner appears among the
// given sentence tokens (lowercased), strongest first, and whether one
// was found.
func (c *Card) PartnerFor(lowerTokens map[string]bool) (Collocation, bool) {
	var best Collocation
	found := false
	for _, col := range c.collocations {
		if !lowerTokens[col.Partner] {
			continue
		}
		if !found || col.Score > best.Score {
			best = col
			found = true
		}
	}
	return best, found
}
