package domain

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Bank quality labels. Quality is a pure function of the final bank
// size relative to the level minimum and whether the relax fallback
// fired.
const (
	QualitySolid       = "solid"
	QualitySoft        = "soft"
	QualityNeedsReview = "needs_review"
)

// Bank provenance tags.
const (
	TagFamily   = "family"
	TagColloc   = "colloc"
	TagNeighbor = "neighbor"
	TagCurated  = "curated"
	TagParadigm = "paradigm"
	TagRelaxed  = "relaxed"
)

// highPlausibilityTags mark candidate sources strong enough to label a
// bank solid.
var highPlausibilityTags = map[string]bool{
	TagFamily:   true,
	TagColloc:   true,
	TagNeighbor: true,
}

// Slot is the POS + morphology bucket a blank or distractor must match.
type Slot struct {
	POS   POS
	Morph string
}

// String renders the slot signature, e.g. "NOUN:base".
func (s Slot) String() string { return string(s.POS) + ":" + s.Morph }

// ParseSlot parses a "POS:morph" signature.
func ParseSlot(s string) (Slot, error) {
	pos, morph, ok := strings.Cut(s, ":")
	if !ok {
		return Slot{}, fmt.Errorf("invalid slot signature %q", s)
	}
	p, err := ParsePOS(pos)
	if err != nil {
		return Slot{}, err
	}
	return Slot{POS: p, Morph: morph}, nil
}

// Bank is an ordered, deduplicated option list for a gap-fill or MCQ
// item. It always contains the correct answer exactly once.
type Bank struct {
	answer    string
	options   []string
	tags      []string
	slot      Slot
	usedRelax bool
}

// NewBank creates a Bank from the answer and distractor list. Options
// are deduplicated case-insensitively; a distractor equal to the
// answer is dropped rather than doubled.
func NewBank(answer string, distractors []string, tags []string, slot Slot, usedRelax bool) (Bank, error) {
	if answer == "" {
		return Bank{}, fmt.Errorf("bank answer is required")
	}
	seen := map[string]bool{strings.ToLower(answer): true}
	options := []string{answer}
	for _, d := range distractors {
		key := strings.ToLower(d)
		if d == "" || seen[key] {
			continue
		}
		seen[key] = true
		options = append(options, d)
	}

	uniqTags := dedupeTags(tags)
	if usedRelax && !containsTag(uniqTags, TagRelaxed) {
		uniqTags = append(uniqTags, TagRelaxed)
	}

	return Bank{
		answer:    answer,
		options:   options,
		tags:      uniqTags,
		slot:      slot,
		usedRelax: usedRelax,
	}, nil
}

// Answer returns the correct option.
func (b *Bank) Answer() string { return b.answer }

// Options returns the option list, answer included, in build order.
// Callers shuffle for presentation.
func (b *Bank) Options() []string { return b.options }

// Tags returns the provenance tags.
func (b *Bank) Tags() []string { return b.tags }

// Slot returns the POS/morphology signature.
func (b *Bank) Slot() Slot { return b.slot }

// UsedRelax reports whether the relax fallback fired.
func (b *Bank) UsedRelax() bool { return b.usedRelax }

// Size returns the option count, answer included.
func (b *Bank) Size() int { return len(b.options) }

// Quality classifies the bank against the level minimum:
// needs_review when more than one short even after relaxation, soft
// when exactly one short or the relax fallback fired, solid when the
// minimum is met and at least one option came from a high-plausibility
// source. A full bank from weak sources only is still soft.
func (b *Bank) Quality(minForLevel int) string {
	switch {
	case b.Size() < minForLevel-1:
		return QualityNeedsReview
	case b.Size() < minForLevel || b.usedRelax:
		return QualitySoft
	}
	for _, t := range b.tags {
		if highPlausibilityTags[t] {
			return QualitySolid
		}
	}
	return QualitySoft
}

// BankMeta is the serialized bank metadata carried in the bank_meta
// column.
type BankMeta struct {
	Tags      []string `json:"tags"`
	Slot      string   `json:"slot"`
	Size      int      `json:"size"`
	UsedRelax bool     `json:"usedRelax"`
}

// Meta returns the bank_meta JSON document.
func (b *Bank) Meta() (string, error) {
	tags := append([]string(nil), b.tags...)
	sort.Strings(tags)
	data, err := json.Marshal(BankMeta{
		Tags:      tags,
		Slot:      b.slot.String(),
		Size:      b.Size(),
		UsedRelax: b.usedRelax,
	})
	if err != nil {
		return "", fmt.Errorf("marshal bank meta: %w", err)
	}
	return string(data), nil
}

func dedupeTags(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

func containsTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}
