// Package cards hydrates lexical cards from JSON Lines corpora. One
// card per line; blank lines are skipped; a malformed line fails the
// load with its line number.
package cards

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/lexikit/packgen/internal/domain"
)

// maxLineBytes bounds a single card line. Example sentences are short;
// a megabyte catches concatenated corpora and similar corruption.
const maxLineBytes = 1 << 20

type collocationDTO struct {
	Anchor  string  `json:"anchor"`
	Partner string  `json:"partner"`
	Score   float64 `json:"score"`
	Slot    string  `json:"slot"`
}

type cardDTO struct {
	Lemma            string           `json:"lemma"`
	POS              string           `json:"pos"`
	FreqZipf         *float64         `json:"freq_zipf"`
	Examples         []string         `json:"examples"`
	Collocations     []collocationDTO `json:"collocations"`
	Distractors      []string         `json:"distractors"`
	Flags            []string         `json:"flags"`
	Source           string           `json:"source"`
	License          string           `json:"license"`
	ProperRatio      float64          `json:"proper_ratio"`
	CapitalizedRatio float64          `json:"capitalized_ratio"`
}

// Read parses a JSONL card corpus.
func Read(r io.Reader) ([]domain.Card, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	var cards []domain.Card
	line := 0
	for scanner.Scan() {
		line++
		raw := strings.TrimSpace(scanner.Text())
		if raw == "" {
			continue
		}

		var dto cardDTO
		if err := json.Unmarshal([]byte(raw), &dto); err != nil {
			return nil, fmt.Errorf("line %d: decode card: %w", line, err)
		}

		card, err := hydrate(dto)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		cards = append(cards, card)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan cards: %w", err)
	}
	return cards, nil
}

// ReadFile opens and parses a JSONL card corpus from disk.
func ReadFile(path string) ([]domain.Card, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open cards: %w", err)
	}
	defer f.Close()

	cards, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cards, nil
}

func hydrate(dto cardDTO) (domain.Card, error) {
	if dto.Lemma == "" {
		return domain.Card{}, fmt.Errorf("card lemma is required")
	}
	pos, err := domain.ParsePOS(dto.POS)
	if err != nil {
		return domain.Card{}, fmt.Errorf("%q: %w", dto.Lemma, err)
	}

	collocations := make([]domain.Collocation, 0, len(dto.Collocations))
	for _, c := range dto.Collocations {
		collocations = append(collocations, domain.Collocation{
			Anchor:  c.Anchor,
			Partner: strings.ToLower(c.Partner),
			Score:   c.Score,
			Slot:    c.Slot,
		})
	}

	stats := domain.CaseStats{
		ProperRatio:      dto.ProperRatio,
		CapitalizedRatio: dto.CapitalizedRatio,
	}
	return domain.Reconstruct(
		dto.Lemma, pos, dto.FreqZipf,
		dto.Examples, collocations, dto.Distractors,
		dto.Flags, dto.Source, dto.License, stats,
	), nil
}
