package validate

import (
	"github.com/lexikit/packgen/internal/domain"
)

// FileReport is the validation outcome for one file.
type FileReport struct {
	File  string `json:"file"`
	Type  string `json:"type"`
	Fatal string `json:"fatal,omitempty"`
	Total int    `json:"total"`
	Kept  int    `json:"kept"`

	// Drops holds the categorized non-fatal rejections.
	Drops map[string]*domain.DropDetail `json:"drops"`

	// Filters holds per-category guard-hit counts.
	Filters map[string]int `json:"filters"`

	// Telemetry aggregates bank statistics for gap-fill files.
	Telemetry *domain.Telemetry `json:"telemetry,omitempty"`
}

// RunReport is the single JSON document produced per validator run.
type RunReport struct {
	Files         []FileReport      `json:"files"`
	Filters       map[string]int    `json:"filters"`
	BankTelemetry *domain.Telemetry `json:"bankTelemetry"`
}

// NewRunReport creates an empty run report.
func NewRunReport() *RunReport {
	return &RunReport{
		Filters:       make(map[string]int),
		BankTelemetry: domain.NewTelemetry(),
	}
}

// Add folds a file report into the run aggregate.
func (r *RunReport) Add(fr FileReport) {
	r.Files = append(r.Files, fr)
	for category, n := range fr.Filters {
		r.Filters[category] += n
	}
	if fr.Telemetry != nil {
		r.BankTelemetry.Merge(fr.Telemetry)
	}
}

// HasFatal reports whether any file failed structurally.
func (r *RunReport) HasFatal() bool {
	for _, f := range r.Files {
		if f.Fatal != "" {
			return true
		}
	}
	return false
}

// GuardHits returns the total guard-hit count across the run.
func (r *RunReport) GuardHits() int {
	total := 0
	for _, n := range r.Filters {
		total += n
	}
	return total
}

// Failed decides the process outcome: fatal structural errors always
// fail; in strict mode any non-zero guard-hit total fails as well.
// Ordinary drops never do.
func (r *RunReport) Failed(strict bool) bool {
	if r.HasFatal() {
		return true
	}
	return strict && r.GuardHits() > 0
}
