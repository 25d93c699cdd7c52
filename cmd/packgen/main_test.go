package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/lexikit/packgen/internal/config"
	"github.com/lexikit/packgen/internal/domain"
)

const testCardLine = `{"lemma":"decision","pos":"NOUN","freq_zipf":4.5,` +
	`"examples":["They had to make a big decision about the project."],` +
	`"collocations":[{"anchor":"decision","partner":"make","score":7.1,"slot":"VERB_OBJ"}],` +
	`"source":"tatoeba","license":"CC-BY"}`

func testConfig() config.Config {
	var cfg config.Config
	cfg.ApplyDefaults()
	return cfg
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestCmdGenerate_MultiLevelOutputs(t *testing.T) {
	dir := t.TempDir()
	cardsPath := writeFile(t, dir, "cards.jsonl", testCardLine+"\n")
	out := filepath.Join(dir, "pack.csv")

	code := cmdGenerate([]string{
		"-cards", cardsPath, "-out", out, "-level", "A2,B1",
	}, testConfig(), zap.NewNop())
	if code != exitOK {
		t.Fatalf("exit = %d, want %d", code, exitOK)
	}

	for _, lvl := range []string{"A2", "B1"} {
		path := filepath.Join(dir, "pack_"+lvl+".csv")
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("missing per-level output: %v", err)
		}
		if !strings.Contains(string(data), "decision") {
			t.Errorf("%s carries no generated row", path)
		}
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Errorf("unsuffixed path must not be written for a multi-level run")
	}
}

func TestCmdGenerate_RepeatedLevelServedFromCache(t *testing.T) {
	dir := t.TempDir()
	cardsPath := writeFile(t, dir, "cards.jsonl", testCardLine+"\n")

	code := cmdGenerate([]string{
		"-cards", cardsPath,
		"-out", filepath.Join(dir, "pack.csv"),
		"-level", "A2,A2",
		"-seed", "fixed",
	}, testConfig(), zap.NewNop())
	if code != exitOK {
		t.Fatalf("exit = %d, want %d", code, exitOK)
	}
	if _, err := os.Stat(filepath.Join(dir, "pack_A2.csv")); err != nil {
		t.Fatal(err)
	}
}

func TestCmdValidate_ExitCodes(t *testing.T) {
	dir := t.TempDir()
	report := filepath.Join(dir, "report.json")

	// structurally broken: unsupported exercise type
	badPath := writeFile(t, dir, "mystery.csv", "type,prompt\npoem,whatever\n")
	code := cmdValidate([]string{"-report", report, badPath}, testConfig(), zap.NewNop())
	if code != exitFatal {
		t.Errorf("unsupported type: exit = %d, want %d", code, exitFatal)
	}

	// guard hit: dropped but structurally sound
	flagged := "prompt,answer,source,license\n" +
		"The detective finally solved the _____ case after many years.,murder,tatoeba,CC-BY\n"
	flaggedPath := writeFile(t, dir, "gapfill.csv", flagged)

	code = cmdValidate([]string{"-report", report, flaggedPath}, testConfig(), zap.NewNop())
	if code != exitOK {
		t.Errorf("guard hit without -strict: exit = %d, want %d", code, exitOK)
	}
	code = cmdValidate([]string{"-report", report, "-strict", flaggedPath}, testConfig(), zap.NewNop())
	if code != exitStrict {
		t.Errorf("guard hit with -strict: exit = %d, want %d", code, exitStrict)
	}

	// clean file passes in strict mode
	clean := "prompt,answer,source,license\n" +
		"They had to make a big _____ about the project tomorrow.,decision,tatoeba,CC-BY\n"
	cleanPath := writeFile(t, dir, "gapfill_clean.csv", clean)
	code = cmdValidate([]string{"-report", report, "-strict", cleanPath}, testConfig(), zap.NewNop())
	if code != exitOK {
		t.Errorf("clean strict run: exit = %d, want %d", code, exitOK)
	}
}

func TestParseLevels(t *testing.T) {
	levels, err := parseLevels("A2, B1,C1")
	if err != nil {
		t.Fatal(err)
	}
	want := []domain.Level{domain.LevelA2, domain.LevelB1, domain.LevelC1}
	if len(levels) != len(want) {
		t.Fatalf("levels = %v", levels)
	}
	for i := range want {
		if levels[i] != want[i] {
			t.Errorf("levels[%d] = %q, want %q", i, levels[i], want[i])
		}
	}

	if _, err := parseLevels("A2,Z9"); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestLevelOutPath(t *testing.T) {
	if got := levelOutPath("pack.csv", domain.LevelA2, false); got != "pack.csv" {
		t.Errorf("single level: %q", got)
	}
	if got := levelOutPath("out/pack.csv", domain.LevelB1, true); got != "out/pack_B1.csv" {
		t.Errorf("multi level: %q", got)
	}
}
