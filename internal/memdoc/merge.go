// Package memdoc implements the merge-patch operation for per-user memory
// documents. A memory document is an arbitrary JSON-shaped value as produced
// by encoding/json: map[string]any, []any and scalars.
//
// This is deliberately not an RFC 7396 merge: lists are combined as a
// stable set-union (base entries first, then patch entries not already
// present) instead of being replaced.
package memdoc

import "reflect"

// Merge combines patch into base and returns a new document. Inputs are
// never mutated.
//
// Per patch key:
//   - map onto map: merged recursively, patch wins on conflicting leaves;
//   - list onto list: concatenated with duplicates removed, first
//     occurrence order preserved;
//   - anything else (scalar, type mismatch, new key): the patch value
//     replaces the base value.
func Merge(base, patch map[string]any) map[string]any {
	merged := make(map[string]any, len(base)+len(patch))
	for k, v := range base {
		merged[k] = v
	}

	for k, v := range patch {
		if pm, ok := v.(map[string]any); ok {
			if bm, ok := merged[k].(map[string]any); ok {
				merged[k] = Merge(bm, pm)
				continue
			}
		}
		if pl, ok := v.([]any); ok {
			if bl, ok := merged[k].([]any); ok {
				merged[k] = unionLists(bl, pl)
				continue
			}
		}
		merged[k] = v
	}

	return merged
}

// unionLists appends entries of patch not already present in base.
// Distinctness is by full-value equality, so nested maps and lists
// dedupe as whole values.
func unionLists(base, patch []any) []any {
	out := make([]any, 0, len(base)+len(patch))
	for _, v := range base {
		if !containsValue(out, v) {
			out = append(out, v)
		}
	}
	for _, v := range patch {
		if !containsValue(out, v) {
			out = append(out, v)
		}
	}
	return out
}

func containsValue(list []any, v any) bool {
	for _, e := range list {
		if reflect.DeepEqual(e, v) {
			return true
		}
	}
	return false
}
