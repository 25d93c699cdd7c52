package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/lexikit/packgen/internal/config"
	"github.com/lexikit/packgen/internal/domain"
	"github.com/lexikit/packgen/internal/guard"
	logpkg "github.com/lexikit/packgen/internal/logger"
	"github.com/lexikit/packgen/internal/metrics"
	"github.com/lexikit/packgen/internal/packcache"
	"github.com/lexikit/packgen/internal/repository/cards"
	"github.com/lexikit/packgen/internal/repository/report"
	"github.com/lexikit/packgen/internal/repository/rows"
	chiTransport "github.com/lexikit/packgen/internal/transport/chi"
	"github.com/lexikit/packgen/internal/usecase/generate"
	matchinguc "github.com/lexikit/packgen/internal/usecase/matching"
	"github.com/lexikit/packgen/internal/usecase/validate"
	"github.com/lexikit/packgen/internal/version"
)

// Exit codes: 0 clean, 1 fatal structural error (bad input, I/O,
// missing required columns), 2 strict-mode guard failure.
const (
	exitOK     = 0
	exitFatal  = 1
	exitStrict = 2
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		usage()
		return exitFatal
	}

	env := config.GetEnv()
	cfg, err := config.Load(env)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load config:", err)
		return exitFatal
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to create logger:", err)
		return exitFatal
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting packgen",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.String("command", args[0]),
	)

	metrics.RegisterPackMetrics()

	var metricsSrv *chiTransport.Server
	if cfg.Metrics.Addr != "" {
		metricsSrv = chiTransport.NewServer(cfg.Metrics.Addr, logger)
		metricsSrv.Start()
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = metricsSrv.Shutdown(ctx)
		}()
	}

	switch args[0] {
	case "generate":
		return cmdGenerate(args[1:], cfg, logger)
	case "matching":
		return cmdMatching(args[1:], cfg, logger)
	case "validate":
		return cmdValidate(args[1:], cfg, logger)
	case "version":
		fmt.Printf("packgen %s (%s)\n", version.Version, version.Commit)
		return exitOK
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n", args[0])
		usage()
		return exitFatal
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: packgen <command> [flags]

commands:
  generate   generate gap-fill and MCQ exercises from a card corpus
  matching   group matching pairs into right-unique sets
  validate   validate emitted exercise files and write a run report
  version    print version information`)
}

func newGuard(cfg config.Config) (*guard.Guard, error) {
	return guard.New(guard.Config{
		SFWLevel:          cfg.Guards.SFWLevel,
		DropProperNouns:   cfg.Guards.DropProperNouns,
		AcronymMinLen:     cfg.Guards.AcronymMinLen,
		BlockListPath:     cfg.Guards.BlockListPath,
		AllowListPath:     cfg.Guards.AllowListPath,
		ProperContextPath: cfg.Guards.ProperContextPath,
		NationalityPath:   cfg.Guards.NationalityPath,
	})
}

func cmdGenerate(args []string, cfg config.Config, logger *zap.Logger) int {
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	cardsPath := fs.String("cards", "", "path to the JSONL card corpus (required)")
	out := fs.String("out", "pack.csv", "output CSV path (per-level suffix when several levels)")
	levelFlag := fs.String("level", "A2", "CEFR level, or a comma-separated list (A1..C2)")
	mode := fs.String("mode", "vocabulary", "generation mode: vocabulary or grammar")
	seedFlag := fs.String("seed", "", "run seed (default: derived from level and corpus file)")
	exType := fs.String("type", "gapfill", "exercise type: gapfill or mcq")
	bankSize := fs.Int("bank-size", 0, "bank size including the answer (default: level minimum + 2)")
	if err := fs.Parse(args); err != nil {
		return exitFatal
	}
	if *cardsPath == "" {
		fmt.Fprintln(os.Stderr, "generate: -cards is required")
		return exitFatal
	}

	levels, err := parseLevels(*levelFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, "generate:", err)
		return exitFatal
	}

	deck, err := cards.ReadFile(*cardsPath)
	if err != nil {
		logger.Error("Failed to read cards", zap.Error(err))
		return exitFatal
	}
	index := generate.NewCardSet(deck)

	g, err := newGuard(cfg)
	if err != nil {
		logger.Error("Failed to build guard", zap.Error(err))
		return exitFatal
	}

	// One process builds every requested level from one corpus; the
	// cache keys generated artifacts by (level, type, seed) so a level
	// listed twice is generated once.
	gapCache := packcache.New[[]generate.GapFillRow]()
	mcqCache := packcache.New[[]generate.MCQRow]()

	for _, level := range levels {
		runSeed := *seedFlag
		if runSeed == "" {
			runSeed = fmt.Sprintf("%s|%s|%d", level, filepath.Base(*cardsPath), len(deck))
		}
		cacheKey := packcache.Key{Level: string(level), Type: *exType, Seed: runSeed}

		newService := func() *generate.Service {
			return generate.New(index, g, generate.Options{
				Mode:            generate.Mode(*mode),
				Level:           level,
				Seed:            runSeed,
				BlankMarker:     cfg.IO.BlankMarker,
				BankSize:        *bankSize,
				MaxBankSize:     cfg.Banks.MaxSize,
				BankMin:         cfg.Banks.MinSize[string(level)],
				Cooldown:        cfg.Banks.Cooldown,
				MCQCombinations: cfg.Banks.MCQCombinations,
			}, logger)
		}

		path := levelOutPath(*out, level, len(levels) > 1)
		f, err := os.Create(path)
		if err != nil {
			logger.Error("Failed to create output", zap.Error(err))
			return exitFatal
		}

		var emitted, dropped int
		switch *exType {
		case generate.TypeGapFill:
			generated, err := gapCache.GetOrFill(cacheKey, func() ([]generate.GapFillRow, error) {
				svc := newService()
				built := svc.GapFillRows()
				dropped = svc.Drops().Total()
				recordDropMetrics("generate", svc.Drops())
				return built, nil
			})
			if err == nil {
				emitted = len(generated)
				err = rows.WriteGapFill(f, generated)
			}
			if err != nil {
				logger.Error("Failed to write output", zap.Error(err))
				f.Close()
				return exitFatal
			}
		case generate.TypeMCQ:
			generated, err := mcqCache.GetOrFill(cacheKey, func() ([]generate.MCQRow, error) {
				svc := newService()
				built := svc.MCQRows()
				dropped = svc.Drops().Total()
				recordDropMetrics("generate", svc.Drops())
				return built, nil
			})
			if err == nil {
				emitted = len(generated)
				err = rows.WriteMCQ(f, generated)
			}
			if err != nil {
				logger.Error("Failed to write output", zap.Error(err))
				f.Close()
				return exitFatal
			}
		default:
			fmt.Fprintf(os.Stderr, "generate: unknown type %q\n", *exType)
			f.Close()
			return exitFatal
		}
		if err := f.Close(); err != nil {
			logger.Error("Failed to close output", zap.Error(err))
			return exitFatal
		}

		metrics.RowsEmittedTotal.WithLabelValues(*exType).Add(float64(emitted))

		logger.Info("Generation complete",
			zap.String("out", path),
			zap.String("type", *exType),
			zap.String("seed", runSeed),
			zap.Int("cards", len(deck)),
			zap.Int("emitted", emitted),
			zap.Int("dropped", dropped),
		)
	}
	return exitOK
}

func cmdMatching(args []string, cfg config.Config, logger *zap.Logger) int {
	fs := flag.NewFlagSet("matching", flag.ContinueOnError)
	in := fs.String("in", "", "input matching CSV (required)")
	out := fs.String("out", "matching_sets.csv", "output CSV path")
	levelFlag := fs.String("level", "A2", "CEFR level for rows without one")
	setSize := fs.Int("set-size", 0, "target set size (default: config)")
	if err := fs.Parse(args); err != nil {
		return exitFatal
	}
	if *in == "" {
		fmt.Fprintln(os.Stderr, "matching: -in is required")
		return exitFatal
	}

	level, err := domain.ParseLevel(*levelFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, "matching:", err)
		return exitFatal
	}

	table, err := readTable(*in)
	if err != nil {
		logger.Error("Failed to read input", zap.Error(err))
		return exitFatal
	}
	if !table.HasColumn("left") || !table.HasColumn("right") {
		logger.Error("Input is missing left/right columns", zap.String("in", *in))
		return exitFatal
	}

	raw := make([]matchinguc.RawRow, 0, len(table.Records()))
	for _, rec := range table.Records() {
		raw = append(raw, matchinguc.RawRow{
			Left:    rec["left"],
			Right:   rec["right"],
			Source:  rec["source"],
			License: rec["license"],
			Level:   rec["level"],
		})
	}

	size := *setSize
	if size == 0 {
		size = cfg.Matching.SetSize
	}
	svc := matchinguc.New(size, cfg.Matching.MinEmitSize, logger)
	pairs := svc.Expand(raw)
	sets := svc.Group(pairs, matchinguc.GroupSeed(filepath.Base(*in), level, len(pairs)))

	f, err := os.Create(*out)
	if err != nil {
		logger.Error("Failed to create output", zap.Error(err))
		return exitFatal
	}
	defer f.Close()

	outRows := svc.Rows(sets, level)
	if err := rows.WriteMatching(f, outRows); err != nil {
		logger.Error("Failed to write output", zap.Error(err))
		return exitFatal
	}

	metrics.RowsEmittedTotal.WithLabelValues("matching").Add(float64(len(outRows)))
	recordDropMetrics("generate", svc.Drops())

	logger.Info("Matching grouping complete",
		zap.String("out", *out),
		zap.Int("pairs", len(pairs)),
		zap.Int("sets", len(sets)),
		zap.Int("dropped", svc.Drops().Total()),
	)
	return exitOK
}

func cmdValidate(args []string, cfg config.Config, logger *zap.Logger) int {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	out := fs.String("report", "", "write the JSON run report to this path (default: stdout)")
	strict := fs.Bool("strict", false, "fail the run on any guard hit")
	grammar := fs.Bool("grammar", false, "grammar mode: allow stopwords and paradigm forms in banks")
	levelFlag := fs.String("level", "A2", "default CEFR level for rows without one")
	if err := fs.Parse(args); err != nil {
		return exitFatal
	}
	if fs.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "validate: at least one input file is required")
		return exitFatal
	}

	level, err := domain.ParseLevel(*levelFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, "validate:", err)
		return exitFatal
	}

	g, err := newGuard(cfg)
	if err != nil {
		logger.Error("Failed to build guard", zap.Error(err))
		return exitFatal
	}

	svc := validate.New(g, validate.Options{
		GrammarMode:  *grammar,
		BlankMarker:  cfg.IO.BlankMarker,
		BankMin:      cfg.Banks.MinSize,
		DefaultLevel: level,
	}, logger).WithGuardMetrics(metrics.GuardHitsTotal)

	run := validate.NewRunReport()
	for _, path := range fs.Args() {
		table, err := readTable(path)
		if err != nil {
			logger.Error("Failed to read input", zap.String("file", path), zap.Error(err))
			return exitFatal
		}
		fr := svc.File(filepath.Base(path), typeOf(path, table), table)
		for _, category := range sortedKeys(fr.Drops) {
			metrics.RowsDroppedTotal.WithLabelValues("validate", category).
				Add(float64(fr.Drops[category].Count))
		}
		run.Add(fr)
	}

	if *out == "" {
		err = report.Write(os.Stdout, run)
	} else {
		err = report.WriteFile(*out, run)
	}
	if err != nil {
		logger.Error("Failed to write report", zap.Error(err))
		return exitFatal
	}

	switch {
	case run.HasFatal():
		logger.Warn("Validation failed", zap.Int("files", len(run.Files)))
		return exitFatal
	case *strict && run.GuardHits() > 0:
		logger.Warn("Strict validation failed",
			zap.Int("guard_hits", run.GuardHits()),
		)
		return exitStrict
	}
	logger.Info("Validation passed", zap.Int("files", len(run.Files)))
	return exitOK
}

func readTable(path string) (*rows.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return rows.Read(f)
}

// parseLevels parses a comma-separated CEFR level list.
func parseLevels(raw string) ([]domain.Level, error) {
	var levels []domain.Level
	for _, part := range strings.Split(raw, ",") {
		lvl, err := domain.ParseLevel(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		levels = append(levels, lvl)
	}
	return levels, nil
}

// levelOutPath suffixes the output path with the level when one run
// emits several files.
func levelOutPath(out string, level domain.Level, multi bool) string {
	if !multi {
		return out
	}
	ext := filepath.Ext(out)
	return strings.TrimSuffix(out, ext) + "_" + string(level) + ext
}

// typeOf resolves a file's exercise type: the type column when present
// and uniform, the file name prefix otherwise.
func typeOf(path string, table *rows.Table) string {
	if table.HasColumn("type") {
		for _, rec := range table.Records() {
			if t := strings.TrimSpace(rec["type"]); t != "" {
				return strings.ToLower(t)
			}
		}
	}
	name := strings.ToLower(filepath.Base(path))
	for _, t := range []string{generate.TypeGapFill, generate.TypeMatching, generate.TypeMCQ} {
		if strings.HasPrefix(name, t) {
			return t
		}
	}
	return generate.TypeGapFill
}

func recordDropMetrics(stage string, drops *domain.Drops) {
	for _, category := range drops.Categories() {
		metrics.RowsDroppedTotal.WithLabelValues(stage, category).
			Add(float64(drops.Count(category)))
	}
}

func sortedKeys(m map[string]*domain.DropDetail) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
