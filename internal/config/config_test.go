package config

import (
	"os"
	"strings"
	"testing"
)

func TestApplyDefaults(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()

	if cfg.Guards.SFWLevel != "default" {
		t.Errorf("sfw_level = %q", cfg.Guards.SFWLevel)
	}
	if cfg.Guards.AcronymMinLen != 3 {
		t.Errorf("acronym_min_len = %d", cfg.Guards.AcronymMinLen)
	}
	if cfg.Banks.MaxSize != 8 || cfg.Banks.Cooldown != 20 || cfg.Banks.MCQCombinations != 12 {
		t.Errorf("banks = %+v", cfg.Banks)
	}
	if cfg.Matching.SetSize != 6 || cfg.Matching.MinEmitSize != 2 {
		t.Errorf("matching = %+v", cfg.Matching)
	}
	if cfg.IO.BlankMarker != "_____" {
		t.Errorf("blank_marker = %q", cfg.IO.BlankMarker)
	}
}

func TestValidate_InvalidSFWLevel(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()
	cfg.Guards.SFWLevel = "paranoid"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for invalid sfw level")
	}
	if !strings.Contains(err.Error(), "guards.sfw_level") {
		t.Errorf("unexpected error message: %v", err)
	}
}

func TestValidate_SetSizeBounds(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()
	cfg.Matching.SetSize = 13

	if err := cfg.Validate(); err == nil {
		t.Error("expected error for set_size 13")
	}
}

func TestValidate_BankMinVersusMax(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()
	cfg.Banks.MinSize = map[string]int{"C1": 9}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for min above max")
	}
	if !strings.Contains(err.Error(), "banks.min_size.C1") {
		t.Errorf("unexpected error message: %v", err)
	}
}

func TestValidate_BlankMarkerSeparator(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()
	cfg.IO.BlankMarker = "__|__"

	if err := cfg.Validate(); err == nil {
		t.Error("expected error for marker containing the bank separator")
	}
}

func TestExpandEnvVars(t *testing.T) {
	os.Setenv("PACKGEN_TEST_LEVEL", "strict")
	defer os.Unsetenv("PACKGEN_TEST_LEVEL")

	in := []byte("sfw_level: ${PACKGEN_TEST_LEVEL}\nmarker: ${PACKGEN_TEST_MISSING:-_____}\n")
	out := string(expandEnvVars(in))

	if !strings.Contains(out, "sfw_level: strict") {
		t.Errorf("env substitution failed: %s", out)
	}
	if !strings.Contains(out, "marker: _____") {
		t.Errorf("default substitution failed: %s", out)
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load("does-not-exist")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Guards.SFWLevel != "default" {
		t.Errorf("sfw_level = %q", cfg.Guards.SFWLevel)
	}
}
