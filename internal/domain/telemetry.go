package domain

// Telemetry accumulates aggregate, non-fatal bank statistics across a
// generation or validation run. It is an explicit value with a single
// owner, merged upward per file and per run.
type Telemetry struct {
	BanksEmitted int            `json:"banksEmitted"`
	RelaxUsed    int            `json:"relaxUsed"`
	TagCounts    map[string]int `json:"tagCounts,omitempty"`
	SizeBuckets  map[string]int `json:"sizeBuckets,omitempty"`
}

// NewTelemetry creates an empty accumulator.
func NewTelemetry() *Telemetry {
	return &Telemetry{
		TagCounts:   make(map[string]int),
		SizeBuckets: make(map[string]int),
	}
}

// ObserveBank records one emitted bank.
func (t *Telemetry) ObserveBank(size int, tags []string, usedRelax bool) {
	t.BanksEmitted++
	if usedRelax {
		t.RelaxUsed++
	}
	for _, tag := range tags {
		t.TagCounts[tag]++
	}
	t.SizeBuckets[SizeBucket(size)]++
}

// SizeBucket maps a bank size onto a histogram bucket label.
func SizeBucket(size int) string {
	switch {
	case size <= 2:
		return "<=2"
	case size <= 4:
		return "3-4"
	case size <= 6:
		return "5-6"
	default:
		return "7+"
	}
}

// Merge folds other into t.
func (t *Telemetry) Merge(other *Telemetry) {
	if other == nil {
		return
	}
	t.BanksEmitted += other.BanksEmitted
	t.RelaxUsed += other.RelaxUsed
	for tag, n := range other.TagCounts {
		t.TagCounts[tag] += n
	}
	for bucket, n := range other.SizeBuckets {
		t.SizeBuckets[bucket] += n
	}
}
