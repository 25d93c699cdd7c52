package generate

import (
	"github.com/lexikit/packgen/internal/domain"
	"github.com/lexikit/packgen/internal/guard"
)

// Screener defines the safety-guard contract consumed by the staging
// engine. *guard.Guard satisfies it; the validator consumes the same
// implementation so rejection behavior cannot drift.
type Screener interface {
	Screen(text string) guard.Verdict
	ScreenCandidate(surface string, stats *domain.CaseStats) guard.Verdict
}
