package asset

import (
	"slices"
	"sort"
)

// NormalizeSet deduplicates and sorts a string set. Sets of strings are
// logically unordered; the stable sorted order keeps serialization
// deterministic and comparisons idempotent.
func NormalizeSet(set []string) []string {
	if len(set) == 0 {
		return nil
	}
	out := make([]string, 0, len(set))
	seen := make(map[string]struct{}, len(set))
	for _, s := range set {
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	if len(out) == 0 {
		return nil
	}
	sort.Strings(out)
	return out
}

// AddToSet returns the set with the values added, normalized.
func AddToSet(set []string, values ...string) []string {
	return NormalizeSet(append(set, values...))
}

// RemoveFromSet returns the set with the values removed, normalized.
func RemoveFromSet(set []string, values ...string) []string {
	out := NormalizeSet(set)
	for _, v := range values {
		if i, ok := slices.BinarySearch(out, v); ok {
			out = slices.Delete(out, i, i+1)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
