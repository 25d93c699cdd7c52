// Package seed provides the deterministic ordering primitive used
// everywhere the pipeline needs pseudo-randomness. There is no RNG
// state: every ordering is a pure function of a string key, so the
// same inputs always produce byte-identical output across runs and
// across reimplementations that share the hash definition.
package seed

import (
	"sort"
	"strconv"
)

// FNV-1a 32-bit parameters. The exact definition is a compatibility
// contract: exported CSV files must stay diff-stable for a given key.
const (
	offset32 = 2166136261
	prime32  = 16777619
)

// Hash computes the 32-bit FNV-1a hash of s.
func Hash(s string) uint32 {
	h := uint32(offset32)
	for i := 0; i < len(s); i++ {
		h ^= uint32(s[i])
		h *= prime32
	}
	return h
}

// Permutation returns the indices 0..n-1 sorted by Hash(key+":"+index),
// ties broken by index. The result is a stable pseudo-random order.
func Permutation(n int, key string) []int {
	idx := make([]int, n)
	keys := make([]uint32, n)
	for i := range idx {
		idx[i] = i
		keys[i] = Hash(key + ":" + strconv.Itoa(i))
	}
	sort.SliceStable(idx, func(a, b int) bool {
		if keys[idx[a]] != keys[idx[b]] {
			return keys[idx[a]] < keys[idx[b]]
		}
		return idx[a] < idx[b]
	})
	return idx
}

// Shuffle returns a new slice with values reordered by the permutation
// derived from key. The input slice is not modified.
func Shuffle[T any](values []T, key string) []T {
	perm := Permutation(len(values), key)
	out := make([]T, len(values))
	for i, p := range perm {
		out[i] = values[p]
	}
	return out
}

// Pick returns values[Hash(key) mod len(values)], or the zero value for
// an empty slice.
func Pick[T any](values []T, key string) T {
	var zero T
	if len(values) == 0 {
		return zero
	}
	return values[int(Hash(key)%uint32(len(values)))]
}

// Combinations enumerates all k-element index combinations of 0..n-1 in
// lexicographic order, stopping after limit combinations (limit <= 0
// means no cap).
func Combinations(n, k, limit int) [][]int {
	if k <= 0 || k > n {
		return nil
	}
	var out [][]int
	comb := make([]int, k)
	for i := range comb {
		comb[i] = i
	}
	for {
		if limit > 0 && len(out) == limit {
			return out
		}
		out = append(out, append([]int(nil), comb...))

		// advance to the next combination
		i := k - 1
		for i >= 0 && comb[i] == n-k+i {
			i--
		}
		if i < 0 {
			return out
		}
		comb[i]++
		for j := i + 1; j < k; j++ {
			comb[j] = comb[j-1] + 1
		}
	}
}
