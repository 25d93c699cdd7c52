package token

import "testing"

func TestTokenize_OffsetsAndForms(t *testing.T) {
	toks := Tokenize("She didn't see the well-known formula_42 on the 3rd page.")
	want := []string{"She", "didn't", "see", "the", "well-known", "formula_42", "on", "the", "3rd", "page"}
	if len(toks) != len(want) {
		t.Fatalf("tokens = %d, want %d", len(toks), len(want))
	}
	for i, w := range want {
		if toks[i].Text != w {
			t.Errorf("token[%d] = %q, want %q", i, toks[i].Text, w)
		}
	}
	// byte offsets must slice the original text exactly
	src := "She didn't see the well-known formula_42 on the 3rd page."
	for _, tok := range toks {
		if src[tok.Start:tok.End] != tok.Text {
			t.Errorf("offset mismatch for %q", tok.Text)
		}
	}
}

func TestNormalize(t *testing.T) {
	if got := Normalize("  They  Made\ta Choice "); got != "they made a choice" {
		t.Errorf("got %q", got)
	}
}

func TestGuessPOS(t *testing.T) {
	tests := map[string]string{
		"quickly":    "ADV",
		"decision":   "NOUN",
		"management": "NOUN",
		"organize":   "VERB",
		"clarify":    "VERB",
		"famous":     "ADJ",
		"helpful":    "ADJ",
		"table":      "NOUN", // default class
	}
	for word, want := range tests {
		if got := GuessPOS(word); got != want {
			t.Errorf("GuessPOS(%q) = %q, want %q", word, got, want)
		}
	}
}

func TestMorphBucket(t *testing.T) {
	tests := map[string]string{
		"run":      MorphBase,
		"runs":     MorphPlural,
		"running":  MorphIng,
		"walked":   MorphPast,
		"faster":   MorphCompar,
		"fastest":  MorphSuperl,
		"class":    MorphBase, // -ss is not plural
		"decision": MorphBase,
	}
	for word, want := range tests {
		if got := MorphBucket(word); got != want {
			t.Errorf("MorphBucket(%q) = %q, want %q", word, got, want)
		}
	}
}

func TestStem_CollapsesFamily(t *testing.T) {
	for _, w := range []string{"run", "runs", "running"} {
		if got := Stem(w); got != "run" {
			t.Errorf("Stem(%q) = %q, want run", w, got)
		}
	}
	if Stem("decided") == Stem("decision") {
		t.Error("distinct families collapsed")
	}
}

func TestInflections(t *testing.T) {
	has := func(forms []string, want string) bool {
		for _, f := range forms {
			if f == want {
				return true
			}
		}
		return false
	}

	verbs := Inflections("run", "VERB")
	for _, want := range []string{"run", "runs", "running"} {
		if !has(verbs, want) {
			t.Errorf("Inflections(run) missing %q: %v", want, verbs)
		}
	}

	if forms := Inflections("make", "VERB"); !has(forms, "making") {
		t.Errorf("e-drop failed: %v", forms)
	}
	if forms := Inflections("carry", "VERB"); !has(forms, "carries") || !has(forms, "carried") {
		t.Errorf("y-inflection failed: %v", forms)
	}
	if forms := Inflections("city", "NOUN"); !has(forms, "cities") {
		t.Errorf("noun plural failed: %v", forms)
	}
	if forms := Inflections("easy", "ADJ"); !has(forms, "easier") || !has(forms, "easiest") {
		t.Errorf("adjective forms: %v", forms)
	}
	if forms := Inflections("comprehensive", "ADJ"); len(forms) != 1 {
		// long adjectives take more/most, never -er
		t.Errorf("long adjective should stay base only: %v", forms)
	}
}

func TestEditDistance_Bounded(t *testing.T) {
	if d := EditDistance("run", "run", 1); d != 0 {
		t.Errorf("identical = %d", d)
	}
	if d := EditDistance("run", "ran", 1); d != 1 {
		t.Errorf("run/ran = %d, want 1", d)
	}
	if d := EditDistance("run", "walked", 1); d != 2 {
		t.Errorf("overflow = %d, want max+1", d)
	}
	if d := EditDistance("kitten", "sitting", 3); d != 3 {
		t.Errorf("kitten/sitting = %d, want 3", d)
	}
}

func TestIsStopword(t *testing.T) {
	if !IsStopword("The") {
		t.Error("The should be a stopword")
	}
	if IsStopword("decision") {
		t.Error("decision is not a stopword")
	}
}
