package validate

import (
	"github.com/lexikit/packgen/internal/domain"
	"github.com/lexikit/packgen/internal/guard"
)

// Screener defines the safety-guard contract. The validator consumes
// the same *guard.Guard instance as the generator, so a string
// rejected at generation time is rejected identically here.
type Screener interface {
	Screen(text string) guard.Verdict
	ScreenCandidate(surface string, stats *domain.CaseStats) guard.Verdict
}

// Table is the parsed CSV contract consumed by the validator:
// a header row plus name-addressable records. Unknown columns are
// carried through and ignored.
type Table interface {
	HasColumn(name string) bool
	Records() []map[string]string
}
