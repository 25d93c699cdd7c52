package guard

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/lexikit/packgen/internal/domain"
	"github.com/lexikit/packgen/internal/domain/token"
)

// properStatsThreshold is the majority cutoff for the corpus-statistics
// rules: a lemma counts as proper when more than half of its corpus
// occurrences are proper-tagged or capitalized.
const properStatsThreshold = 0.5

var numericOrdinalRegex = regexp.MustCompile(`^[0-9]+(?:st|nd|rd|th)$`)

var wordOrdinals = map[string]bool{
	"first": true, "second": true, "third": true, "fourth": true,
	"fifth": true, "sixth": true, "seventh": true, "eighth": true,
	"ninth": true, "tenth": true,
}

// IsProperNoun applies the four proper-noun rules to the token at
// index in the sentence. The rules are independently sufficient; the
// detector is a logical OR over all of them:
//
//	(a) Title-cased or ALL-CAPS outside sentence-initial position,
//	(b) an ordinal adjacent to a proper-noun-context word (gazetteer
//	    of institutional/geographic nouns plus nationalities),
//	(c) the lemma is majority proper-tagged in the corpus,
//	(d) the lemma's corpus case distribution is majority capitalized.
//
// Rules (c) and (d) only apply when stats are supplied.
func (g *Guard) IsProperNoun(sentence string, index int, stats *domain.CaseStats) bool {
	return g.isProperNounAt(token.Tokenize(sentence), index, stats)
}

func (g *Guard) isProperNounAt(tokens []token.Token, i int, stats *domain.CaseStats) bool {
	if i < 0 || i >= len(tokens) {
		return false
	}
	prev, next := "", ""
	if i > 0 {
		prev = tokens[i-1].Text
	}
	if i+1 < len(tokens) {
		next = tokens[i+1].Text
	}
	return g.isProperNounToken(tokens[i].Text, i, prev, next, stats)
}

func (g *Guard) isProperNounToken(tok string, index int, prev, next string, stats *domain.CaseStats) bool {
	// (a) casing outside sentence-initial position
	if index > 0 && (isTitleCased(tok) || isAllCaps(tok)) {
		return true
	}

	// (b) ordinal next to a proper-noun-context word
	if isOrdinal(tok) && (g.isProperContext(prev) || g.isProperContext(next)) {
		return true
	}

	// (c) corpus POS statistics
	if stats != nil && stats.ProperRatio > properStatsThreshold {
		return true
	}

	// (d) corpus case distribution
	if stats != nil && stats.CapitalizedRatio > properStatsThreshold {
		return true
	}

	return false
}

func (g *Guard) isProperContext(word string) bool {
	if word == "" {
		return false
	}
	w := strings.ToLower(word)
	return g.properContext[w] || g.nationalities[w]
}

func isOrdinal(tok string) bool {
	lower := strings.ToLower(tok)
	return numericOrdinalRegex.MatchString(lower) || wordOrdinals[lower]
}

func isTitleCased(tok string) bool {
	runes := []rune(tok)
	if len(runes) < 2 || !unicode.IsUpper(runes[0]) {
		return false
	}
	for _, r := range runes[1:] {
		if unicode.IsLower(r) {
			return true
		}
	}
	return false
}

func isAllCaps(tok string) bool {
	letters := 0
	for _, r := range tok {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) {
			letters++
		}
	}
	return letters >= 2
}
