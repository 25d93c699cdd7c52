package guard

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strings"
)

// Unsafe tests text against the compiled block patterns, after the
// allow-list override. Allow patterns short-circuit: an allowed match
// is removed from consideration before any block pattern runs.
// Returns the matched block term when hit.
func (g *Guard) Unsafe(text string) (string, bool) {
	if len(g.blockPatterns) == 0 {
		return "", false
	}
	screened := text
	for _, allow := range g.allowPatterns {
		screened = allow.ReplaceAllString(screened, " ")
	}
	for _, block := range g.blockPatterns {
		if m := block.FindString(screened); m != "" {
			return strings.ToLower(strings.TrimSpace(m)), true
		}
	}
	return "", false
}

// compilePatterns turns list terms into case-insensitive regexes.
// A term prefixed with "re:" is compiled verbatim; anything else is
// matched as a whole word.
func compilePatterns(terms []string) ([]*regexp.Regexp, error) {
	out := make([]*regexp.Regexp, 0, len(terms))
	for _, term := range terms {
		var expr string
		if raw, ok := strings.CutPrefix(term, "re:"); ok {
			expr = "(?i)" + raw
		} else {
			expr = `(?i)\b` + regexp.QuoteMeta(term) + `\b`
		}
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("pattern %q: %w", term, err)
		}
		out = append(out, re)
	}
	return out, nil
}

// appendListFile appends the patterns of an override file (one per
// line, # comments, blank lines ignored) to terms. An empty path is a
// no-op.
func appendListFile(terms []string, path string) ([]string, error) {
	if path == "" {
		return terms, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		terms = append(terms, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return terms, nil
}

// loadWordSet builds a lowercase word set from the defaults plus an
// optional override file.
func loadWordSet(defaults []string, path string) (map[string]bool, error) {
	words, err := appendListFile(append([]string(nil), defaults...), path)
	if err != nil {
		return nil, err
	}
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[strings.ToLower(w)] = true
	}
	return set, nil
}
