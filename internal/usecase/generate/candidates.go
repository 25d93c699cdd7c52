package generate

import (
	"strings"

	"github.com/lexikit/packgen/internal/domain"
	"github.com/lexikit/packgen/internal/domain/token"
)

// candidate is one staged distractor candidate with its score
// components. score = collocation strength + POS/morph confidence +
// frequency proximity + orthographic similarity - duplicate penalty.
type candidate struct {
	surface  string
	lemma    string
	tag      string
	colloc   float64
	posMorph float64
	freqProx float64
	ortho    float64
	dupPen   float64
}

func (c candidate) score() float64 {
	return c.colloc + c.posMorph + c.freqProx + c.ortho - c.dupPen
}

// Base collocation-strength weights per candidate source. Collocation
// candidates override with their mined score.
var sourceWeights = map[string]float64{
	domain.TagFamily:   1.0,
	domain.TagColloc:   0.8,
	domain.TagNeighbor: 0.5,
	domain.TagParadigm: 0.4,
	domain.TagCurated:  0.3,
}

// stageCandidates builds the merged, deduplicated candidate list for
// one blank, in priority order: family confusables, collocation
// confusables, distribution neighbours, paradigm forms (grammar mode),
// curated POS pools. The relax fallback is applied later, only when
// the bank is still short.
func (s *Service) stageCandidates(card *domain.Card, cloze domain.Cloze, slot domain.Slot, partner domain.Collocation, partnerFound bool) []candidate {
	answerLemma := strings.ToLower(card.Lemma())
	answerStem := token.Stem(answerLemma)
	seen := map[string]bool{strings.ToLower(cloze.Answer): true}

	var out []candidate
	acceptSurface := func(lemma, surface, tag string, collocScore float64) {
		key := strings.ToLower(surface)
		if seen[key] {
			return
		}
		if !s.passesFilters(lemma, surface, tag, answerStem, slot) {
			return
		}
		seen[key] = true
		out = append(out, s.scored(card, lemma, surface, tag, collocScore))
	}
	accept := func(lemma, tag string, collocScore float64) {
		surface, ok := s.agreeMorph(lemma, slot)
		if !ok {
			return
		}
		acceptSurface(lemma, surface, tag, collocScore)
	}

	// 1. family confusables keyed by the recognized collocation head.
	// The groups are object-noun sets, so they only apply to noun slots.
	if partnerFound && slot.POS == domain.POSNoun {
		for _, member := range familyGroups[strings.ToLower(partner.Partner)] {
			if member != answerLemma {
				accept(member, domain.TagFamily, sourceWeights[domain.TagFamily])
			}
		}
	}

	// 2. collocation confusables: lemmas sharing the same partner
	if partnerFound {
		for _, lemma := range s.index.LemmasSharingPartner(partner.Partner) {
			if lemma != answerLemma {
				accept(lemma, domain.TagColloc, collocStrength(partner.Score))
			}
		}
	}

	// 3. distribution neighbours: lemmas co-occurring with the same
	// partners elsewhere in the corpus
	for _, lemma := range s.index.Neighbors(card) {
		accept(lemma, domain.TagNeighbor, sourceWeights[domain.TagNeighbor])
	}

	// 4. paradigm forms, grammar mode only. The forms deliberately sit
	// in other morph buckets, so they bypass the slot agreement.
	if s.opts.Mode == ModeGrammar {
		for _, form := range token.Inflections(answerLemma, string(card.POS())) {
			if !strings.EqualFold(form, cloze.Answer) {
				acceptSurface(answerLemma, form, domain.TagParadigm, sourceWeights[domain.TagParadigm])
			}
		}
	}

	// 5. curated POS pools, plus any pre-seeded card distractors
	for _, d := range card.Distractors() {
		accept(d, domain.TagCurated, sourceWeights[domain.TagCurated])
	}
	for _, lemma := range posPools[string(slot.POS)] {
		if lemma != answerLemma {
			accept(lemma, domain.TagCurated, sourceWeights[domain.TagCurated])
		}
	}

	return out
}

// agreeMorph inflects a candidate lemma into the slot's morphology
// bucket, rejecting lemmas that cannot reach it. Paradigm forms pass
// through unchanged when they already sit in a bucket.
func (s *Service) agreeMorph(lemma string, slot domain.Slot) (string, bool) {
	if token.MorphBucket(lemma) == slot.Morph {
		return lemma, true
	}
	for _, form := range token.Inflections(lemma, string(slot.POS)) {
		if token.MorphBucket(form) == slot.Morph {
			return form, true
		}
	}
	return "", false
}

// passesFilters applies the hard candidate filters: POS agreement,
// stopword exclusion outside grammar mode, no duplicate of the answer
// lemma unless morphology itself is under test, minimum surface
// length, and the shared safety guards.
func (s *Service) passesFilters(lemma, surface, tag, answerStem string, slot domain.Slot) bool {
	grammar := s.opts.Mode == ModeGrammar

	if !grammar && token.Stem(lemma) == answerStem {
		return false
	}
	if !grammar && token.IsStopword(surface) {
		return false
	}
	if !grammar && len(surface) < 3 {
		return false
	}
	// Index-backed candidates carry an authoritative POS tag; curated
	// sources are already POS-keyed and the paradigm stage reuses the
	// answer lemma itself.
	if tag == domain.TagColloc || tag == domain.TagNeighbor {
		if other, ok := s.index.Card(lemma); !ok || other.POS() != slot.POS {
			return false
		}
	}
	if v := s.guard.ScreenCandidate(surface, s.statsFor(lemma)); !v.OK {
		return false
	}
	return true
}

func (s *Service) statsFor(lemma string) *domain.CaseStats {
	if card, ok := s.index.Card(lemma); ok {
		stats := card.CaseStats()
		return &stats
	}
	return nil
}

// scored fills the candidate score components.
func (s *Service) scored(card *domain.Card, lemma, surface, tag string, collocScore float64) candidate {
	c := candidate{
		surface: surface,
		lemma:   strings.ToLower(lemma),
		tag:     tag,
		colloc:  collocScore,
		dupPen:  float64(s.cooldown[strings.ToLower(surface)]) * 0.05,
	}

	if token.GuessPOS(lemma) == string(card.POS()) {
		c.posMorph = 1.0
	} else {
		c.posMorph = 0.5
	}

	c.freqProx = 0.5
	if card.FreqZipf() != nil {
		if other, ok := s.index.Card(lemma); ok && other.FreqZipf() != nil {
			delta := *card.FreqZipf() - *other.FreqZipf()
			if delta < 0 {
				delta = -delta
			}
			if delta > 3 {
				delta = 3
			}
			c.freqProx = 1 - delta/3
		}
	}

	c.ortho = orthoSimilarity(strings.ToLower(card.Lemma()), c.lemma)
	return c
}

// collocStrength normalizes a mined collocation score into [0,1].
func collocStrength(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 10 {
		return 1
	}
	return score / 10
}

// orthoSimilarity is the shared-prefix ratio of two lemmas.
func orthoSimilarity(a, b string) float64 {
	maxLen := len(a)
	if len(b) > maxLen {
		maxLen = len(b)
	}
	if maxLen == 0 {
		return 0
	}
	common := 0
	for common < len(a) && common < len(b) && a[common] == b[common] {
		common++
	}
	return float64(common) / float64(maxLen)
}
