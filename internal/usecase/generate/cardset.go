package generate

import (
	"sort"
	"strings"

	"github.com/lexikit/packgen/internal/domain"
)

// CardSet is the in-memory card index for one pipeline run: lemma
// lookup plus the partner inversion used by the collocation and
// neighbour candidate stages. All derived lists are sorted so that
// staging order is deterministic.
type CardSet struct {
	cards     []domain.Card
	byLemma   map[string]int
	byPartner map[string][]string
}

// NewCardSet indexes the given cards.
func NewCardSet(cards []domain.Card) *CardSet {
	cs := &CardSet{
		cards:     cards,
		byLemma:   make(map[string]int, len(cards)),
		byPartner: make(map[string][]string),
	}
	for i := range cards {
		lemma := strings.ToLower(cards[i].Lemma())
		cs.byLemma[lemma] = i
		for _, col := range cards[i].Collocations() {
			partner := strings.ToLower(col.Partner)
			cs.byPartner[partner] = appendUnique(cs.byPartner[partner], lemma)
		}
	}
	for partner := range cs.byPartner {
		sort.Strings(cs.byPartner[partner])
	}
	return cs
}

// Cards returns the indexed cards.
func (cs *CardSet) Cards() []domain.Card { return cs.cards }

// Len returns the card count.
func (cs *CardSet) Len() int { return len(cs.cards) }

// Card looks a card up by lemma.
func (cs *CardSet) Card(lemma string) (*domain.Card, bool) {
	if i, ok := cs.byLemma[strings.ToLower(lemma)]; ok {
		return &cs.cards[i], true
	}
	return nil, false
}

// LemmasSharingPartner returns the lemmas carrying a collocation with
// the given partner, sorted.
func (cs *CardSet) LemmasSharingPartner(partner string) []string {
	return cs.byPartner[strings.ToLower(partner)]
}

// Neighbors returns the lemmas that share at least one collocation
// partner with the card, sorted, the card's own lemma excluded.
func (cs *CardSet) Neighbors(card *domain.Card) []string {
	self := strings.ToLower(card.Lemma())
	seen := map[string]bool{self: true}
	var out []string
	for _, col := range card.Collocations() {
		for _, lemma := range cs.byPartner[strings.ToLower(col.Partner)] {
			if !seen[lemma] {
				seen[lemma] = true
				out = append(out, lemma)
			}
		}
	}
	sort.Strings(out)
	return out
}

func appendUnique(list []string, s string) []string {
	for _, x := range list {
		if x == s {
			return list
		}
	}
	return append(list, s)
}
