package generate

import (
	"sort"
	"strings"

	"github.com/lexikit/packgen/internal/domain"
	"github.com/lexikit/packgen/internal/domain/token"
	"github.com/lexikit/packgen/internal/seed"
)

// selectDistractors turns the staged candidate list into the final
// distractor set: seeded shuffle for tie-break order, score-descending
// stable sort, one candidate per lemma family (outside grammar mode),
// per-pack cooldown, then truncation to want. Returns the chosen
// candidates in selection order.
func (s *Service) selectDistractors(cands []candidate, want int, seedKey string) []candidate {
	if want <= 0 || len(cands) == 0 {
		return nil
	}

	shuffled := seed.Shuffle(cands, seedKey+"|rank")
	sort.SliceStable(shuffled, func(i, j int) bool {
		return shuffled[i].score() > shuffled[j].score()
	})

	grammar := s.opts.Mode == ModeGrammar
	familySeen := make(map[string]bool)
	var chosen []candidate
	for _, c := range shuffled {
		if len(chosen) == want {
			break
		}
		surfaceKey := strings.ToLower(c.surface)
		if s.cooldown[surfaceKey] >= s.opts.Cooldown {
			continue
		}
		if !grammar {
			family := token.Stem(c.lemma)
			if familySeen[family] {
				continue
			}
			familySeen[family] = true
		}
		chosen = append(chosen, c)
	}

	for _, c := range chosen {
		s.cooldown[strings.ToLower(c.surface)]++
	}
	return chosen
}

// relaxFiller produces the single relax-fallback option: another
// inflection of the answer lemma in grammar mode, otherwise a
// high-frequency generic of the slot POS inflected into the slot's
// morph bucket. Returns false when nothing usable remains.
func (s *Service) relaxFiller(card *domain.Card, answer string, slot domain.Slot, taken map[string]bool, seedKey string) (string, bool) {
	if s.opts.Mode == ModeGrammar {
		for _, form := range token.Inflections(strings.ToLower(card.Lemma()), string(card.POS())) {
			if !taken[form] && !strings.EqualFold(form, answer) {
				return form, true
			}
		}
		return "", false
	}

	pool := relaxGenerics[string(slot.POS)]
	ordered := seed.Shuffle(pool, seedKey+"|relax")
	for _, g := range ordered {
		surface, ok := s.agreeMorph(g, slot)
		if !ok {
			continue
		}
		if taken[strings.ToLower(surface)] || strings.EqualFold(surface, answer) {
			continue
		}
		if v := s.guard.ScreenCandidate(surface, nil); !v.OK {
			continue
		}
		return surface, true
	}
	return "", false
}
