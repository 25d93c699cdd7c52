package domain

import "testing"

func TestParseLevel(t *testing.T) {
	for _, l := range Levels {
		got, err := ParseLevel(string(l))
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", l, err)
		}
		if got != l {
			t.Errorf("ParseLevel(%q) = %q", l, got)
		}
	}

	if _, err := ParseLevel("b1"); err == nil {
		t.Error("expected error for lowercase level")
	}
	if _, err := ParseLevel("D1"); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestMinBankSize(t *testing.T) {
	want := map[Level]int{
		LevelA1: 3, LevelA2: 3,
		LevelB1: 4, LevelB2: 4,
		LevelC1: 5, LevelC2: 5,
	}
	for l, n := range want {
		if got := l.MinBankSize(); got != n {
			t.Errorf("%s.MinBankSize() = %d, want %d", l, got, n)
		}
	}
}

func TestMaxBlanks(t *testing.T) {
	for _, l := range []Level{LevelA1, LevelA2, LevelB1} {
		if got := l.MaxBlanks(); got != 1 {
			t.Errorf("%s.MaxBlanks() = %d, want 1", l, got)
		}
	}
	for _, l := range []Level{LevelB2, LevelC1, LevelC2} {
		if got := l.MaxBlanks(); got != 2 {
			t.Errorf("%s.MaxBlanks() = %d, want 2", l, got)
		}
	}
}
