package generate

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lexikit/packgen/internal/domain"
	"github.com/lexikit/packgen/internal/domain/token"
	"github.com/lexikit/packgen/internal/guard"
	"github.com/lexikit/packgen/internal/metrics"
)

func zipf(v float64) *float64 { return &v }

func testCards(t *testing.T) []domain.Card {
	t.Helper()
	return []domain.Card{
		domain.Reconstruct("decision", domain.POSNoun, zipf(4.5),
			[]string{"They had to make a big decision about the project."},
			[]domain.Collocation{
				{Anchor: "decision", Partner: "make", Score: 7.1, Slot: "VERB_OBJ"},
				{Anchor: "decision", Partner: "difficult", Score: 4.0, Slot: "ADJ_NOUN"},
			},
			nil, nil, "tatoeba", "CC-BY", domain.CaseStats{}),
		domain.Reconstruct("choice", domain.POSNoun, zipf(4.2),
			[]string{"It was hard for her to make the right choice quickly."},
			[]domain.Collocation{
				{Anchor: "choice", Partner: "make", Score: 6.0, Slot: "VERB_OBJ"},
				{Anchor: "choice", Partner: "right", Score: 3.5, Slot: "ADJ_NOUN"},
			},
			nil, nil, "tatoeba", "CC-BY", domain.CaseStats{}),
		domain.Reconstruct("mistake", domain.POSNoun, zipf(4.0),
			[]string{"He admitted that he had made a serious mistake at work."},
			[]domain.Collocation{
				{Anchor: "mistake", Partner: "make", Score: 5.5, Slot: "VERB_OBJ"},
				{Anchor: "mistake", Partner: "costly", Score: 3.0, Slot: "ADJ_NOUN"},
			},
			nil, nil, "tatoeba", "CC-BY", domain.CaseStats{}),
	}
}

func newTestService(t *testing.T, opts Options) *Service {
	t.Helper()
	g, err := guard.New(guard.Config{})
	require.NoError(t, err)
	if opts.Level == "" {
		opts.Level = domain.LevelA2
	}
	if opts.Seed == "" {
		opts.Seed = "test-seed"
	}
	return New(NewCardSet(testCards(t)), g, opts, zap.NewNop())
}

func TestGapFill_CollocationFamilyBank(t *testing.T) {
	svc := newTestService(t, Options{})
	card, ok := svc.index.Card("decision")
	require.True(t, ok)

	row, ok := svc.GapFill(card, 0)
	require.True(t, ok, "drops: %v", svc.Drops().Categories())

	assert.Equal(t, "They had to make a big _____ about the project.", row.Prompt)
	assert.Equal(t, "decision", row.Answer)
	assert.Equal(t, "collocation", row.GapMode)
	assert.Contains(t, row.Hints, "pos=NOUN")
	assert.Contains(t, row.Hints, "colloc=make")

	// answer appears exactly once; bank meets the A2 minimum
	hits := 0
	for _, opt := range row.Bank {
		if strings.EqualFold(opt, "decision") {
			hits++
		}
	}
	assert.Equal(t, 1, hits)
	assert.GreaterOrEqual(t, len(row.Bank), domain.LevelA2.MinBankSize())
	assert.Equal(t, domain.QualitySolid, row.BankQuality)
}

func TestGapFill_NeighborFallbackWithoutPartner(t *testing.T) {
	// "made" is not the partner surface "make": no collocation head is
	// recognized, so the bank comes from neighbours and curated pools.
	svc := newTestService(t, Options{})
	card, ok := svc.index.Card("mistake")
	require.True(t, ok)

	row, ok := svc.GapFill(card, 2)
	require.True(t, ok)

	assert.Equal(t, "mistake", row.Answer)
	assert.Equal(t, string(ModeVocabulary), row.GapMode)
	assert.NotContains(t, row.Hints, "colloc=make")
}

func TestGapFill_AvoidFlagDropsCard(t *testing.T) {
	svc := newTestService(t, Options{})
	card := domain.Reconstruct("weapon", domain.POSNoun, nil,
		[]string{"The museum displayed an ancient ceremonial weapon from the north."},
		nil, nil, []string{domain.FlagAvoidAsBlank}, "tatoeba", "CC-BY", domain.CaseStats{})

	_, ok := svc.GapFill(&card, 9)
	assert.False(t, ok)
	assert.Equal(t, 1, svc.Drops().Count(DropAvoidFlag))
}

func TestGapFillRows_Deterministic(t *testing.T) {
	a := newTestService(t, Options{Seed: "pack-7"}).GapFillRows()
	b := newTestService(t, Options{Seed: "pack-7"}).GapFillRows()
	require.Equal(t, a, b)

	// sorted output order
	for i := 1; i < len(a); i++ {
		assert.LessOrEqual(t, a[i-1].Answer, a[i].Answer)
	}
}

func TestSelectDistractors_CooldownBlocksReuse(t *testing.T) {
	svc := newTestService(t, Options{Cooldown: 1})

	decision, _ := svc.index.Card("decision")
	first, ok := svc.GapFill(decision, 0)
	require.True(t, ok)

	choice, _ := svc.index.Card("choice")
	second, ok := svc.GapFill(choice, 1)
	require.True(t, ok)

	used := make(map[string]bool)
	for _, opt := range first.Bank {
		used[strings.ToLower(opt)] = true
	}
	for _, opt := range second.Bank {
		if strings.EqualFold(opt, second.Answer) {
			continue
		}
		assert.False(t, used[strings.ToLower(opt)], "distractor %q reused under cooldown 1", opt)
	}
}

func TestSelectDistractors_OnePerFamily(t *testing.T) {
	svc := newTestService(t, Options{})
	cands := []candidate{
		{surface: "running", lemma: "run", tag: domain.TagColloc, colloc: 0.9},
		{surface: "runs", lemma: "runs", tag: domain.TagColloc, colloc: 0.8},
		{surface: "choice", lemma: "choice", tag: domain.TagFamily, colloc: 0.7},
	}

	chosen := svc.selectDistractors(cands, 3, "k")
	families := make(map[string]int)
	for _, c := range chosen {
		families[c.lemma]++
	}
	assert.Len(t, chosen, 2, "runs and running share a stem family")
}

func TestMCQ_NoNearDuplicateOptions(t *testing.T) {
	svc := newTestService(t, Options{})
	card, ok := svc.index.Card("decision")
	require.True(t, ok)

	row, ok := svc.MCQ(card, 0)
	require.True(t, ok, "drops: %v", svc.Drops().Categories())

	require.Len(t, row.Options, 4)
	hits := 0
	for _, opt := range row.Options {
		if strings.EqualFold(opt, row.Answer) {
			hits++
		}
	}
	assert.Equal(t, 1, hits)

	for i := 0; i < len(row.Options); i++ {
		for j := i + 1; j < len(row.Options); j++ {
			assert.False(t, nearDuplicate(row.Options[i], row.Options[j]),
				"%q / %q", row.Options[i], row.Options[j])
		}
	}
}

func TestNearDuplicate(t *testing.T) {
	assert.True(t, nearDuplicate("run", "ran"))
	assert.True(t, nearDuplicate("cat", "cats"))
	assert.True(t, nearDuplicate("art", "artwork")) // short substring
	assert.False(t, nearDuplicate("decision", "mistake"))
	assert.False(t, nearDuplicate("understand", "understanding")) // long forms differ by 3+
}

func TestOptions_BankSizeCappedByMax(t *testing.T) {
	opts := Options{Level: domain.LevelC1, BankSize: 11, MaxBankSize: 8}
	opts.applyDefaults()
	assert.Equal(t, 8, opts.BankSize)

	// the default BankMin+2 derivation is capped too
	opts = Options{Level: domain.LevelC1, MaxBankSize: 6}
	opts.applyDefaults()
	assert.Equal(t, 6, opts.BankSize)

	// no cap configured: the request stands
	opts = Options{Level: domain.LevelC1, BankSize: 11}
	opts.applyDefaults()
	assert.Equal(t, 11, opts.BankSize)
}

func TestRelaxFiller_AgreesWithSlotMorph(t *testing.T) {
	svc := newTestService(t, Options{})
	card, ok := svc.index.Card("decision")
	require.True(t, ok)

	slot := domain.Slot{POS: domain.POSNoun, Morph: token.MorphPlural}
	filler, ok := svc.relaxFiller(card, "decisions", slot, map[string]bool{}, "k")
	require.True(t, ok)
	assert.Equal(t, token.MorphPlural, token.MorphBucket(filler), "filler %q", filler)

	slot.Morph = token.MorphBase
	filler, ok = svc.relaxFiller(card, "decision", slot, map[string]bool{}, "k")
	require.True(t, ok)
	assert.Equal(t, token.MorphBase, token.MorphBucket(filler), "filler %q", filler)
}

func TestGapFill_RecordsBankMetrics(t *testing.T) {
	banksBefore := testutil.ToFloat64(metrics.BanksEmittedTotal.WithLabelValues(domain.QualitySolid))
	relaxBefore := testutil.ToFloat64(metrics.RelaxUsedTotal)
	var m dto.Metric
	require.NoError(t, metrics.BankSize.Write(&m))
	sizeBefore := m.Histogram.GetSampleCount()

	svc := newTestService(t, Options{})
	card, ok := svc.index.Card("decision")
	require.True(t, ok)
	row, ok := svc.GapFill(card, 0)
	require.True(t, ok)
	require.Equal(t, domain.QualitySolid, row.BankQuality)

	assert.Equal(t, 1.0,
		testutil.ToFloat64(metrics.BanksEmittedTotal.WithLabelValues(domain.QualitySolid))-banksBefore)
	// a solid bank needed no relax filler
	assert.Equal(t, 0.0, testutil.ToFloat64(metrics.RelaxUsedTotal)-relaxBefore)

	m.Reset()
	require.NoError(t, metrics.BankSize.Write(&m))
	assert.Equal(t, uint64(1), m.Histogram.GetSampleCount()-sizeBefore)
}

func TestGrammarMode_ParadigmDistractors(t *testing.T) {
	card := domain.Reconstruct("walk", domain.POSVerb, zipf(4.8),
		[]string{"Every single morning they walk together across the old bridge."},
		[]domain.Collocation{
			{Anchor: "walk", Partner: "slowly", Score: 3.0},
			{Anchor: "walk", Partner: "bridge", Score: 2.0},
		},
		nil, nil, "tatoeba", "CC-BY", domain.CaseStats{})

	g, err := guard.New(guard.Config{})
	require.NoError(t, err)
	svc := New(NewCardSet([]domain.Card{card}), g, Options{
		Mode: ModeGrammar, Level: domain.LevelB1, Seed: "g",
	}, zap.NewNop())

	c, ok := svc.index.Card("walk")
	require.True(t, ok)
	row, ok := svc.GapFill(c, 0)
	require.True(t, ok, "drops: %v", svc.Drops().Categories())

	// paradigm forms of the answer lemma serve as distractors
	assert.Contains(t, row.Bank, row.Answer)
	paradigm := 0
	for _, opt := range row.Bank {
		if opt != row.Answer && strings.HasPrefix(strings.ToLower(opt), "walk") {
			paradigm++
		}
	}
	assert.GreaterOrEqual(t, paradigm, 2, "bank %v should carry inflected forms", row.Bank)
}
