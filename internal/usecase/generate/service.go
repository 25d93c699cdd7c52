package generate

import (
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/lexikit/packgen/internal/domain"
	"github.com/lexikit/packgen/internal/domain/token"
	"github.com/lexikit/packgen/internal/metrics"
	"github.com/lexikit/packgen/internal/seed"
)

// Mode selects what the exercises test.
type Mode string

const (
	// ModeVocabulary blanks content words and excludes inflected
	// duplicates of the answer.
	ModeVocabulary Mode = "vocabulary"
	// ModeGrammar puts morphology itself under test: paradigm forms
	// become distractors and stopwords are allowed.
	ModeGrammar Mode = "grammar"
)

// Exercise types emitted by the generator.
const (
	TypeGapFill  = "gapfill"
	TypeMatching = "matching"
	TypeMCQ      = "mcq"
)

// Generator-side drop categories (guard categories come from the guard
// package).
const (
	DropAvoidFlag       = "avoidFlag"
	DropNoUsableExample = "noUsableExample"
	DropNearDuplicate   = "nearDuplicate"
	DropTooFewOptions   = "tooFewOptions"
)

// Options configures one generation run.
type Options struct {
	Mode        Mode
	Level       domain.Level
	Seed        string // run seed, composed by the caller (level, file, ...)
	BlankMarker string

	BankSize    int // requested bank size, answer included
	BankMin     int // level minimum (config override or level default)
	MaxBankSize int // hard cap on the bank size (config banks.max_size)
	Cooldown    int // per-pack reuse cap for a single distractor surface

	MCQCombinations int // bound on the distractor-triple search
}

func (o *Options) applyDefaults() {
	if o.Mode == "" {
		o.Mode = ModeVocabulary
	}
	if o.BlankMarker == "" {
		o.BlankMarker = "_____"
	}
	if o.BankMin <= 0 {
		o.BankMin = o.Level.MinBankSize()
	}
	if o.BankSize <= 0 {
		o.BankSize = o.BankMin + 2
	}
	if o.MaxBankSize > 0 && o.BankSize > o.MaxBankSize {
		o.BankSize = o.MaxBankSize
	}
	if o.Cooldown <= 0 {
		o.Cooldown = 20
	}
	if o.MCQCombinations <= 0 {
		o.MCQCombinations = 12
	}
}

// GapFillRow is one emitted gap-fill exercise.
type GapFillRow struct {
	Level       string
	Type        string
	Prompt      string
	Answer      string
	Source      string
	License     string
	GapMode     string
	Bank        []string
	Hints       []string // ordered key=value pairs
	BankQuality string
	BankMeta    string
}

// MCQRow is one emitted multiple-choice exercise.
type MCQRow struct {
	Type    string
	Prompt  string
	Options []string
	Answer  string
	Source  string
	License string
}

// Service is the candidate staging and scoring engine. One Service
// owns the state of exactly one generated pack: the distractor
// cooldown counters and the drop/telemetry accumulators are scoped to
// it, never shared across runs.
type Service struct {
	index     *CardSet
	guard     Screener
	opts      Options
	cooldown  map[string]int
	drops     *domain.Drops
	telemetry *domain.Telemetry
	log       *zap.Logger
}

// New creates a staging engine for one pack.
func New(index *CardSet, g Screener, opts Options, log *zap.Logger) *Service {
	opts.applyDefaults()
	return &Service{
		index:     index,
		guard:     g,
		opts:      opts,
		cooldown:  make(map[string]int),
		drops:     domain.NewDrops(),
		telemetry: domain.NewTelemetry(),
		log:       log,
	}
}

// Drops returns the generation-time drop accumulator.
func (s *Service) Drops() *domain.Drops { return s.drops }

// Telemetry returns the bank telemetry accumulator.
func (s *Service) Telemetry() *domain.Telemetry { return s.telemetry }

// GapFillRows generates gap-fill rows for every card in the index.
// Unproducible cards are skipped and recorded, never fatal. Output
// order is deterministic: sorted by answer, then prompt.
func (s *Service) GapFillRows() []GapFillRow {
	var rows []GapFillRow
	for i := range s.index.Cards() {
		card := &s.index.Cards()[i]
		if row, ok := s.GapFill(card, i); ok {
			rows = append(rows, *row)
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Answer != rows[j].Answer {
			return rows[i].Answer < rows[j].Answer
		}
		return rows[i].Prompt < rows[j].Prompt
	})
	return rows
}

// GapFill generates one gap-fill row for a card, or records a drop.
func (s *Service) GapFill(card *domain.Card, seq int) (*GapFillRow, bool) {
	key := fmt.Sprintf("%s|%s|%s|%d", s.opts.Seed, TypeGapFill, card.Lemma(), seq)

	cloze, partner, partnerFound, ok := s.stageCloze(card)
	if !ok {
		return nil, false
	}

	slot := domain.Slot{POS: card.POS(), Morph: token.MorphBucket(cloze.Answer)}
	bank, ok := s.buildBank(card, cloze, slot, partner, partnerFound, key)
	if !ok {
		return nil, false
	}

	gapMode := string(s.opts.Mode)
	hints := []string{"pos=" + string(card.POS())}
	if partnerFound {
		gapMode = "collocation"
		hints = append(hints, "colloc="+partner.Partner)
	}

	meta, err := bank.Meta()
	if err != nil {
		s.log.Warn("bank meta marshal failed", zap.String("lemma", card.Lemma()), zap.Error(err))
		meta = ""
	}

	quality := bank.Quality(s.opts.BankMin)
	s.telemetry.ObserveBank(bank.Size(), bank.Tags(), bank.UsedRelax())
	metrics.BanksEmittedTotal.WithLabelValues(quality).Inc()
	metrics.BankSize.Observe(float64(bank.Size()))
	if bank.UsedRelax() {
		metrics.RelaxUsedTotal.Inc()
	}

	return &GapFillRow{
		Level:       string(s.opts.Level),
		Type:        TypeGapFill,
		Prompt:      cloze.Prompt,
		Answer:      cloze.Answer,
		Source:      card.Source(),
		License:     card.License(),
		GapMode:     gapMode,
		Bank:        seed.Shuffle(bank.Options(), key+"|order"),
		Hints:       hints,
		BankQuality: quality,
		BankMeta:    meta,
	}, true
}

// stageCloze walks the card's example sentences in order and returns
// the first attempt that fits the prompt band and passes the shared
// guards. Attempts are rejected, not repaired.
func (s *Service) stageCloze(card *domain.Card) (domain.Cloze, domain.Collocation, bool, bool) {
	if card.HasFlag(domain.FlagAvoidAsBlank) {
		s.drops.Record(DropAvoidFlag, card.Lemma())
		return domain.Cloze{}, domain.Collocation{}, false, false
	}

	lastCategory := DropNoUsableExample
	for _, example := range card.Examples() {
		cloze, err := domain.NewCloze(example, card.Lemma(), card.POS(), s.opts.BlankMarker)
		if err != nil {
			continue
		}
		if v := s.guard.Screen(cloze.Sentence); !v.OK {
			lastCategory = v.Category
			continue
		}
		stats := card.CaseStats()
		if v := s.guard.ScreenCandidate(cloze.Answer, &stats); !v.OK {
			lastCategory = v.Category
			continue
		}
		partner, found := card.PartnerFor(token.WordSet(cloze.Sentence))
		return cloze, partner, found, true
	}

	s.drops.Record(lastCategory, card.Lemma())
	return domain.Cloze{}, domain.Collocation{}, false, false
}

// buildBank assembles the option bank for one blank: staged
// candidates, diversity-limited selection, and at most one relax
// filler when the bank is still below the level minimum.
func (s *Service) buildBank(card *domain.Card, cloze domain.Cloze, slot domain.Slot, partner domain.Collocation, partnerFound bool, key string) (domain.Bank, bool) {
	cands := s.stageCandidates(card, cloze, slot, partner, partnerFound)
	chosen := s.selectDistractors(cands, s.opts.BankSize-1, key)

	distractors := make([]string, 0, len(chosen)+1)
	tags := make([]string, 0, len(chosen)+1)
	taken := map[string]bool{strings.ToLower(cloze.Answer): true}
	for _, c := range chosen {
		distractors = append(distractors, c.surface)
		tags = append(tags, c.tag)
		taken[strings.ToLower(c.surface)] = true
	}

	usedRelax := false
	if len(distractors)+1 < s.opts.BankMin {
		if filler, ok := s.relaxFiller(card, cloze.Answer, slot, taken, key); ok {
			distractors = append(distractors, filler)
			tags = append(tags, domain.TagRelaxed)
			usedRelax = true
		}
	}

	bank, err := domain.NewBank(cloze.Answer, distractors, tags, slot, usedRelax)
	if err != nil {
		s.log.Warn("bank build failed", zap.String("lemma", card.Lemma()), zap.Error(err))
		return domain.Bank{}, false
	}
	return bank, true
}

// MCQRows generates multiple-choice rows for every card in the index,
// sorted by answer then prompt.
func (s *Service) MCQRows() []MCQRow {
	var rows []MCQRow
	for i := range s.index.Cards() {
		card := &s.index.Cards()[i]
		if row, ok := s.MCQ(card, i); ok {
			rows = append(rows, *row)
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Answer != rows[j].Answer {
			return rows[i].Answer < rows[j].Answer
		}
		return rows[i].Prompt < rows[j].Prompt
	})
	return rows
}

// MCQ generates one multiple-choice row: 3 distractors plus the
// answer. Candidate triples are tried in seeded-shuffle order, bounded
// by MCQCombinations; a triple is accepted only if no pairwise
// near-duplication exists among the options and the answer.
func (s *Service) MCQ(card *domain.Card, seq int) (*MCQRow, bool) {
	key := fmt.Sprintf("%s|%s|%s|%d", s.opts.Seed, TypeMCQ, card.Lemma(), seq)

	cloze, partner, partnerFound, ok := s.stageCloze(card)
	if !ok {
		return nil, false
	}

	slot := domain.Slot{POS: card.POS(), Morph: token.MorphBucket(cloze.Answer)}
	cands := s.stageCandidates(card, cloze, slot, partner, partnerFound)
	if len(cands) < 3 {
		s.drops.Record(DropTooFewOptions, card.Lemma())
		return nil, false
	}

	pool := seed.Shuffle(cands, key+"|pool")
	if len(pool) > 8 {
		pool = pool[:8] // keep the combination walk bounded
	}

	for _, combo := range seed.Combinations(len(pool), 3, s.opts.MCQCombinations) {
		triple := []string{pool[combo[0]].surface, pool[combo[1]].surface, pool[combo[2]].surface}
		if hasNearDuplicate(triple, cloze.Answer) {
			continue
		}
		for _, idx := range combo {
			s.cooldown[strings.ToLower(pool[idx].surface)]++
		}
		options := seed.Shuffle(append(triple, cloze.Answer), key+"|order")
		return &MCQRow{
			Type:    TypeMCQ,
			Prompt:  cloze.Prompt,
			Options: options,
			Answer:  cloze.Answer,
			Source:  card.Source(),
			License: card.License(),
		}, true
	}

	s.drops.Record(DropNearDuplicate, card.Lemma())
	return nil, false
}

// hasNearDuplicate checks every option pair (co-options and answer)
// for near-duplication: edit distance at most 1, or one option being a
// short substring of the other.
func hasNearDuplicate(triple []string, answer string) bool {
	all := append(append([]string(nil), triple...), answer)
	for i := 0; i < len(all); i++ {
		for j := i + 1; j < len(all); j++ {
			if nearDuplicate(all[i], all[j]) {
				return true
			}
		}
	}
	return false
}

func nearDuplicate(a, b string) bool {
	la, lb := strings.ToLower(a), strings.ToLower(b)
	if token.EditDistance(la, lb, 1) <= 1 {
		return true
	}
	short, long := la, lb
	if len(short) > len(long) {
		short, long = long, short
	}
	return len(short) <= 5 && len(short) < len(long) && strings.Contains(long, short)
}
