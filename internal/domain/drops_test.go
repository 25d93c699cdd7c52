package domain

import "testing"

func TestDrops_SampleCap(t *testing.T) {
	d := NewDrops()
	for i := 0; i < MaxDropSamples+3; i++ {
		d.Record("bankSize", "sample")
	}
	d.Record("bankSize", "") // empty samples are counted but not stored

	detail := d.ByCategory()["bankSize"]
	if detail.Count != MaxDropSamples+4 {
		t.Errorf("count = %d, want %d", detail.Count, MaxDropSamples+4)
	}
	if len(detail.Samples) != MaxDropSamples {
		t.Errorf("samples = %d, want %d", len(detail.Samples), MaxDropSamples)
	}
}

func TestDrops_Merge(t *testing.T) {
	a := NewDrops()
	a.Record("unsafe", "x")
	b := NewDrops()
	b.Record("unsafe", "y")
	b.Record("properNoun", "London")

	a.Merge(b)
	if a.Count("unsafe") != 2 {
		t.Errorf("unsafe = %d, want 2", a.Count("unsafe"))
	}
	if a.Total() != 3 {
		t.Errorf("total = %d, want 3", a.Total())
	}

	cats := a.Categories()
	if len(cats) != 2 || cats[0] != "properNoun" || cats[1] != "unsafe" {
		t.Errorf("categories = %v", cats)
	}
}

func TestTelemetry_ObserveAndMerge(t *testing.T) {
	a := NewTelemetry()
	a.ObserveBank(4, []string{"family", "colloc"}, false)
	a.ObserveBank(2, []string{"relaxed"}, true)

	b := NewTelemetry()
	b.ObserveBank(7, []string{"family"}, false)
	a.Merge(b)

	if a.BanksEmitted != 3 {
		t.Errorf("banksEmitted = %d, want 3", a.BanksEmitted)
	}
	if a.RelaxUsed != 1 {
		t.Errorf("relaxUsed = %d, want 1", a.RelaxUsed)
	}
	if a.TagCounts["family"] != 2 {
		t.Errorf("family = %d, want 2", a.TagCounts["family"])
	}
	if a.SizeBuckets["3-4"] != 1 || a.SizeBuckets["<=2"] != 1 || a.SizeBuckets["7+"] != 1 {
		t.Errorf("sizeBuckets = %v", a.SizeBuckets)
	}
}
