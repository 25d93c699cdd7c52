// Package token holds the crude lexical heuristics the pipeline is
// built on: regex tokenization, suffix-based POS guessing, morphology
// buckets and a bounded edit distance. These are intentionally not a
// linguistic parser; downstream behavior depends on this exact rule
// set.
package token

import (
	"regexp"
	"strings"
)

// Token is one tokenized span of a sentence.
type Token struct {
	Text  string
	Start int // byte offset in the source sentence
	End   int
}

var wordRegex = regexp.MustCompile(`[A-Za-z]+(?:['’_-][A-Za-z0-9]+)*|[0-9]+(?:st|nd|rd|th)?`)

// Tokenize splits a sentence into word tokens with byte offsets.
// Punctuation is skipped, hyphenated and apostrophe forms stay whole.
func Tokenize(sentence string) []Token {
	matches := wordRegex.FindAllStringIndex(sentence, -1)
	tokens := make([]Token, 0, len(matches))
	for _, m := range matches {
		tokens = append(tokens, Token{Text: sentence[m[0]:m[1]], Start: m[0], End: m[1]})
	}
	return tokens
}

// Words returns the lowercased token texts of a sentence.
func Words(sentence string) []string {
	toks := Tokenize(sentence)
	out := make([]string, len(toks))
	for i, t := range toks {
		out[i] = strings.ToLower(t.Text)
	}
	return out
}

// WordSet returns the lowercased token texts as a set.
func WordSet(sentence string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range Words(sentence) {
		set[w] = true
	}
	return set
}

// Normalize lowercases and collapses whitespace for duplicate checks.
func Normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(s))), " ")
}

// nounSuffixes, verbSuffixes and adjSuffixes drive the POS guess.
// Longest-match wins; -ly is checked first as the adverb signal.
var (
	nounSuffixes = []string{"tion", "sion", "ment", "ness", "ity", "ance", "ence", "ship", "hood", "ism", "ist"}
	verbSuffixes = []string{"ize", "ise", "ify", "ate"}
	adjSuffixes  = []string{"ous", "ful", "ive", "able", "ible", "ish", "less", "ic", "al"}
)

// GuessPOS guesses a coarse POS tag from word suffixes. The default
// for an unrecognized word is NOUN, the most common open class.
func GuessPOS(word string) string {
	w := strings.ToLower(word)
	if strings.HasSuffix(w, "ly") && len(w) > 4 {
		return "ADV"
	}
	for _, s := range nounSuffixes {
		if strings.HasSuffix(w, s) && len(w) > len(s)+1 {
			return "NOUN"
		}
	}
	for _, s := range verbSuffixes {
		if strings.HasSuffix(w, s) && len(w) > len(s)+1 {
			return "VERB"
		}
	}
	for _, s := range adjSuffixes {
		if strings.HasSuffix(w, s) && len(w) > len(s)+1 {
			return "ADJ"
		}
	}
	return "NOUN"
}

// Morph buckets. A bucket names the inflectional shape of a surface
// form, not its syntactic role.
const (
	MorphBase   = "base"
	MorphPlural = "plural"
	MorphIng    = "ing"
	MorphPast   = "past"
	MorphCompar = "compar"
	MorphSuperl = "superl"
)

// MorphBucket infers the morphology bucket of a surface form.
func MorphBucket(word string) string {
	w := strings.ToLower(word)
	switch {
	case strings.HasSuffix(w, "ing") && len(w) > 4:
		return MorphIng
	case strings.HasSuffix(w, "ed") && len(w) > 3:
		return MorphPast
	case strings.HasSuffix(w, "est") && len(w) > 4:
		return MorphSuperl
	case strings.HasSuffix(w, "er") && len(w) > 3:
		return MorphCompar
	case strings.HasSuffix(w, "s") && !strings.HasSuffix(w, "ss") && len(w) > 2:
		return MorphPlural
	default:
		return MorphBase
	}
}

// Stem strips the common inflectional suffixes so that "running",
// "runs" and "run" collapse to one family key. Deliberately crude.
func Stem(word string) string {
	w := strings.ToLower(word)
	for _, s := range []string{"ing", "ied", "ies", "est", "ed", "es", "er", "s"} {
		if strings.HasSuffix(w, s) && len(w) > len(s)+2 {
			w = strings.TrimSuffix(w, s)
			break
		}
	}
	// doubled final consonant after stripping ("running" -> "runn")
	if n := len(w); n > 2 && w[n-1] == w[n-2] && !isVowel(w[n-1]) {
		w = w[:n-1]
	}
	return w
}

func isVowel(b byte) bool {
	switch b {
	case 'a', 'e', 'i', 'o', 'u':
		return true
	}
	return false
}

// Inflections generates the plausible surface forms of a lemma for the
// given POS tag, lemma first. The generation is heuristic and
// over-produces; callers match against real text.
func Inflections(lemma, pos string) []string {
	l := strings.ToLower(lemma)
	forms := []string{l}
	add := func(f string) {
		for _, x := range forms {
			if x == f {
				return
			}
		}
		forms = append(forms, f)
	}

	esTail := strings.HasSuffix(l, "s") || strings.HasSuffix(l, "sh") ||
		strings.HasSuffix(l, "ch") || strings.HasSuffix(l, "x") || strings.HasSuffix(l, "z")

	switch pos {
	case "NOUN":
		switch {
		case strings.HasSuffix(l, "y") && len(l) > 2 && !isVowel(l[len(l)-2]):
			add(l[:len(l)-1] + "ies")
		case esTail:
			add(l + "es")
		default:
			add(l + "s")
		}
	case "VERB":
		switch {
		case strings.HasSuffix(l, "e") && !strings.HasSuffix(l, "ee"):
			add(l + "s")
			add(l[:len(l)-1] + "ing")
			add(l + "d")
		case strings.HasSuffix(l, "y") && len(l) > 2 && !isVowel(l[len(l)-2]):
			add(l[:len(l)-1] + "ies")
			add(l + "ing")
			add(l[:len(l)-1] + "ied")
		default:
			if esTail {
				add(l + "es")
			} else {
				add(l + "s")
			}
			if n := len(l); n > 2 && !isVowel(l[n-1]) && isVowel(l[n-2]) && !isVowel(l[n-3]) {
				// single-syllable consonant doubling ("run" -> "running")
				add(l + string(l[n-1]) + "ing")
				add(l + string(l[n-1]) + "ed")
			} else {
				add(l + "ing")
				add(l + "ed")
			}
		}
	case "ADJ":
		if len(l) <= 6 {
			switch {
			case strings.HasSuffix(l, "y") && len(l) > 2 && !isVowel(l[len(l)-2]):
				add(l[:len(l)-1] + "ier")
				add(l[:len(l)-1] + "iest")
			case strings.HasSuffix(l, "e"):
				add(l + "r")
				add(l + "st")
			default:
				add(l + "er")
				add(l + "est")
			}
		}
	}
	return forms
}

// EditDistance computes the Levenshtein distance between a and b,
// stopping early once the distance provably exceeds max (the returned
// value is then max+1).
func EditDistance(a, b string, max int) int {
	if a == b {
		return 0
	}
	la, lb := len(a), len(b)
	if la-lb > max || lb-la > max {
		return max + 1
	}
	prev := make([]int, lb+1)
	cur := make([]int, lb+1)
	for j := 0; j <= lb; j++ {
		prev[j] = j
	}
	for i := 1; i <= la; i++ {
		cur[0] = i
		rowMin := cur[0]
		for j := 1; j <= lb; j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			cur[j] = min3(prev[j]+1, cur[j-1]+1, prev[j-1]+cost)
			if cur[j] < rowMin {
				rowMin = cur[j]
			}
		}
		if rowMin > max {
			return max + 1
		}
		prev, cur = cur, prev
	}
	if prev[lb] > max {
		return max + 1
	}
	return prev[lb]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}

// stopwords are excluded as distractors outside grammar mode.
var stopwords = map[string]bool{
	"a": true, "an": true, "the": true, "of": true, "in": true, "on": true,
	"at": true, "to": true, "for": true, "with": true, "by": true, "from": true,
	"and": true, "or": true, "but": true, "if": true, "so": true, "as": true,
	"is": true, "are": true, "was": true, "were": true, "be": true, "been": true,
	"am": true, "do": true, "does": true, "did": true, "have": true, "has": true,
	"had": true, "will": true, "would": true, "can": true, "could": true,
	"shall": true, "should": true, "may": true, "might": true, "must": true,
	"i": true, "you": true, "he": true, "she": true, "it": true, "we": true,
	"they": true, "this": true, "that": true, "these": true, "those": true,
	"not": true, "no": true, "than": true, "then": true, "there": true,
}

// IsStopword reports whether the lowercased word is a function word.
func IsStopword(word string) bool {
	return stopwords[strings.ToLower(word)]
}
