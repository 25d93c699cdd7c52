package domain

import (
	"errors"
	"testing"
)

func TestNewPair(t *testing.T) {
	p, err := NewPair(" apple ", "Apfel")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Left != "apple" || p.Right != "Apfel" {
		t.Errorf("pair = %+v", p)
	}

	if _, err := NewPair("", "Apfel"); err == nil {
		t.Error("expected error for empty left cell")
	}
	if _, err := NewPair("apple|pear", "Apfel|Birne"); !errors.Is(err, ErrMultiValueCell) {
		t.Errorf("error = %v, want ErrMultiValueCell", err)
	}
}

func TestPairKey_CaseInsensitive(t *testing.T) {
	a, _ := NewPair("Apple", "Apfel")
	b, _ := NewPair("apple", "APFEL")
	if a.Key() != b.Key() {
		t.Errorf("keys differ: %q vs %q", a.Key(), b.Key())
	}
}

func TestSet_RejectsDuplicateRight(t *testing.T) {
	s := NewSet()
	p1, _ := NewPair("big", "gross")
	p2, _ := NewPair("large", "Gross")

	if !s.Add(p1) {
		t.Fatal("first add rejected")
	}
	if s.Add(p2) {
		t.Error("duplicate right accepted")
	}
	if s.Len() != 1 {
		t.Errorf("len = %d, want 1", s.Len())
	}
	if !s.HasRight("GROSS") {
		t.Error("HasRight should be case-insensitive")
	}
}
