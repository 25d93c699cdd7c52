// Package guard is the shared safety and quality pipeline. The
// generator consults it before emitting a blank or distractor and the
// validator re-checks already-emitted rows through the exact same
// code, so the two sides can never drift apart.
package guard

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/lexikit/packgen/internal/domain"
	"github.com/lexikit/packgen/internal/domain/token"
)

// SFW levels. strict additionally loads the anatomy, general and
// orientation block tiers.
const (
	SFWOff     = "off"
	SFWDefault = "default"
	SFWStrict  = "strict"
)

// Drop categories shared by generator and validator.
const (
	CategoryUnsafe          = "unsafe"
	CategoryProperNoun      = "properNoun"
	CategoryAcronym         = "acronym"
	CategoryFormulaArtifact = "formulaArtifact"
)

// Config selects the guard behavior. Zero values mean: default SFW
// tier, keep proper nouns, acronym minimum 3.
type Config struct {
	SFWLevel        string
	DropProperNouns bool
	AcronymMinLen   int

	// Optional override files, one pattern per line, # comments.
	BlockListPath     string
	AllowListPath     string
	ProperContextPath string
	NationalityPath   string
}

// Verdict is the outcome of a guard check.
type Verdict struct {
	OK       bool
	Category string
	Term     string
}

func reject(category, term string) Verdict {
	return Verdict{Category: category, Term: term}
}

var okVerdict = Verdict{OK: true}

// Guard holds the compiled detector state. Build once, share between
// generator and validator.
type Guard struct {
	cfg           Config
	blockPatterns []*regexp.Regexp
	allowPatterns []*regexp.Regexp
	properContext map[string]bool
	nationalities map[string]bool
	acronymAllow  map[string]bool
}

var formulaArtifactRegex = regexp.MustCompile(`^formula_[0-9]+$`)

// New compiles a Guard from configuration, loading override files when
// configured and falling back to the embedded defaults otherwise.
func New(cfg Config) (*Guard, error) {
	if cfg.SFWLevel == "" {
		cfg.SFWLevel = SFWDefault
	}
	switch cfg.SFWLevel {
	case SFWOff, SFWDefault, SFWStrict:
	default:
		return nil, fmt.Errorf("unknown sfw level %q", cfg.SFWLevel)
	}
	if cfg.AcronymMinLen <= 0 {
		cfg.AcronymMinLen = 3
	}

	g := &Guard{cfg: cfg, acronymAllow: defaultAcronymAllow}

	blockTerms := make([]string, 0, 32)
	if cfg.SFWLevel != SFWOff {
		blockTerms = append(blockTerms, blockTierDefault...)
		if cfg.SFWLevel == SFWStrict {
			blockTerms = append(blockTerms, blockTierAnatomy...)
			blockTerms = append(blockTerms, blockTierGeneral...)
			blockTerms = append(blockTerms, blockTierOrientation...)
		}
	}
	allowTerms := append([]string(nil), allowListDefault...)

	var err error
	if blockTerms, err = appendListFile(blockTerms, cfg.BlockListPath); err != nil {
		return nil, fmt.Errorf("load block list: %w", err)
	}
	if allowTerms, err = appendListFile(allowTerms, cfg.AllowListPath); err != nil {
		return nil, fmt.Errorf("load allow list: %w", err)
	}
	if g.blockPatterns, err = compilePatterns(blockTerms); err != nil {
		return nil, fmt.Errorf("compile block list: %w", err)
	}
	if g.allowPatterns, err = compilePatterns(allowTerms); err != nil {
		return nil, fmt.Errorf("compile allow list: %w", err)
	}

	if g.properContext, err = loadWordSet(properContextDefault, cfg.ProperContextPath); err != nil {
		return nil, fmt.Errorf("load proper-context list: %w", err)
	}
	if g.nationalities, err = loadWordSet(nationalityDefault, cfg.NationalityPath); err != nil {
		return nil, fmt.Errorf("load nationality list: %w", err)
	}

	return g, nil
}

// Screen checks a whole sentence or option string: unsafe content and
// formula artifacts over the full text, acronym and proper-noun rules
// per token.
func (g *Guard) Screen(text string) Verdict {
	if term, hit := g.Unsafe(text); hit {
		return reject(CategoryUnsafe, term)
	}
	tokens := token.Tokenize(text)
	for i, t := range tokens {
		if g.IsFormulaArtifact(t.Text) {
			return reject(CategoryFormulaArtifact, t.Text)
		}
		if g.IsAcronym(t.Text) {
			return reject(CategoryAcronym, t.Text)
		}
		if g.cfg.DropProperNouns && g.isProperNounAt(tokens, i, nil) {
			return reject(CategoryProperNoun, t.Text)
		}
	}
	return okVerdict
}

// ScreenCandidate checks a single candidate surface form (a blank
// target or distractor option), with optional corpus casing stats.
// Candidates are screened as if mid-sentence, so any title-casing
// counts against them.
func (g *Guard) ScreenCandidate(surface string, stats *domain.CaseStats) Verdict {
	if term, hit := g.Unsafe(surface); hit {
		return reject(CategoryUnsafe, term)
	}
	if g.IsFormulaArtifact(surface) {
		return reject(CategoryFormulaArtifact, surface)
	}
	if g.IsAcronym(surface) {
		return reject(CategoryAcronym, surface)
	}
	if g.cfg.DropProperNouns && g.isProperNounToken(surface, 1, "", "", stats) {
		return reject(CategoryProperNoun, surface)
	}
	return okVerdict
}

// IsFormulaArtifact reports corpus-cleanup leftovers (formula_<digits>).
func (g *Guard) IsFormulaArtifact(tok string) bool {
	return formulaArtifactRegex.MatchString(strings.ToLower(tok))
}

// IsAcronym reports whether the token's letters-only form is fully
// uppercase, at least max(2, AcronymMinLen) letters long, and not on
// the allow-list.
func (g *Guard) IsAcronym(tok string) bool {
	letters := lettersOnly(tok)
	minLen := g.cfg.AcronymMinLen
	if minLen < 2 {
		minLen = 2
	}
	if len(letters) < minLen {
		return false
	}
	if letters != strings.ToUpper(letters) {
		return false
	}
	return !g.acronymAllow[letters]
}

func lettersOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
