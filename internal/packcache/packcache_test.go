package packcache

import (
	"errors"
	"sync"
	"testing"
)

func TestCache_PutGet(t *testing.T) {
	c := New[[]string]()
	key := Key{Level: "A2", Type: "gapfill", Seed: "s1"}

	if _, ok := c.Get(key); ok {
		t.Fatal("unexpected hit on empty cache")
	}

	c.Put(key, []string{"row"})
	got, ok := c.Get(key)
	if !ok || len(got) != 1 {
		t.Fatalf("got %v, %v", got, ok)
	}

	other := Key{Level: "A2", Type: "gapfill", Seed: "s2"}
	if _, ok := c.Get(other); ok {
		t.Error("seed must be part of the key")
	}
}

func TestCache_GetOrFill(t *testing.T) {
	c := New[int]()
	key := Key{Level: "B1", Type: "mcq", Seed: "s"}

	calls := 0
	fill := func() (int, error) {
		calls++
		return 42, nil
	}

	v, err := c.GetOrFill(key, fill)
	if err != nil || v != 42 {
		t.Fatalf("got %d, %v", v, err)
	}
	if _, err := c.GetOrFill(key, fill); err != nil {
		t.Fatal(err)
	}
	if calls != 1 {
		t.Errorf("fill ran %d times, want 1", calls)
	}

	wantErr := errors.New("boom")
	_, err = c.GetOrFill(Key{Seed: "other"}, func() (int, error) { return 0, wantErr })
	if !errors.Is(err, wantErr) {
		t.Errorf("error = %v", err)
	}
	if c.Len() != 1 {
		t.Errorf("len = %d, failed fills must not be cached", c.Len())
	}
}

func TestCache_ConcurrentAccess(t *testing.T) {
	c := New[int]()
	key := Key{Level: "A1", Type: "matching", Seed: "s"}

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, _ = c.GetOrFill(key, func() (int, error) { return n, nil })
		}(i)
	}
	wg.Wait()

	if c.Len() != 1 {
		t.Errorf("len = %d, want 1", c.Len())
	}
}
