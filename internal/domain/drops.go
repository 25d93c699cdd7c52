package domain

import "sort"

// MaxDropSamples caps the recorded examples per drop category so the
// report stays bounded.
const MaxDropSamples = 5

// DropDetail is the aggregate for one drop category.
type DropDetail struct {
	Count   int      `json:"count"`
	Samples []string `json:"sample,omitempty"`
}

// Drops accumulates categorized, purely observational drop records.
// Already-emitted rows are never mutated; a drop only explains why a
// row or option was withheld. One owner per pipeline run.
type Drops struct {
	byCategory map[string]*DropDetail
}

// NewDrops creates an empty accumulator.
func NewDrops() *Drops {
	return &Drops{byCategory: make(map[string]*DropDetail)}
}

// Record counts one drop in the category, keeping at most
// MaxDropSamples sample values.
func (d *Drops) Record(category, sample string) {
	detail := d.byCategory[category]
	if detail == nil {
		detail = &DropDetail{}
		d.byCategory[category] = detail
	}
	detail.Count++
	if sample != "" && len(detail.Samples) < MaxDropSamples {
		detail.Samples = append(detail.Samples, sample)
	}
}

// Count returns the drop count for a category.
func (d *Drops) Count(category string) int {
	if detail := d.byCategory[category]; detail != nil {
		return detail.Count
	}
	return 0
}

// Total returns the drop count across all categories.
func (d *Drops) Total() int {
	total := 0
	for _, detail := range d.byCategory {
		total += detail.Count
	}
	return total
}

// Categories returns the recorded categories sorted for stable output.
func (d *Drops) Categories() []string {
	cats := make([]string, 0, len(d.byCategory))
	for c := range d.byCategory {
		cats = append(cats, c)
	}
	sort.Strings(cats)
	return cats
}

// ByCategory returns the detail map for report serialization.
func (d *Drops) ByCategory() map[string]*DropDetail { return d.byCategory }

// Merge folds other into d. Samples are still capped.
func (d *Drops) Merge(other *Drops) {
	if other == nil {
		return
	}
	for _, cat := range other.Categories() {
		detail := other.byCategory[cat]
		mine := d.byCategory[cat]
		if mine == nil {
			mine = &DropDetail{}
			d.byCategory[cat] = mine
		}
		mine.Count += detail.Count
		for _, s := range detail.Samples {
			if len(mine.Samples) >= MaxDropSamples {
				break
			}
			mine.Samples = append(mine.Samples, s)
		}
	}
}
