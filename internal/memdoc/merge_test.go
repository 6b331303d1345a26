package memdoc

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

// doc parses a JSON object literal, so tests operate on exactly the value
// shapes encoding/json produces at runtime.
func doc(t *testing.T, s string) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(s), &m))
	return m
}

func TestMerge_EmptyPatchReturnsEqualCopy(t *testing.T) {
	base := doc(t, `{"preferences": {"style": "concise"}, "known_triggers": ["caffeine"]}`)

	got := Merge(base, map[string]any{})

	require.Equal(t, base, got)

	// Must be a fresh top-level document, not the same map.
	got["extra"] = true
	require.NotContains(t, base, "extra")
}

func TestMerge_ListUnionKeepsOrderAndDropsDuplicates(t *testing.T) {
	base := doc(t, `{"known_triggers": ["a", "b"]}`)
	patch := doc(t, `{"known_triggers": ["b", "c"]}`)

	got := Merge(base, patch)

	require.Equal(t, []any{"a", "b", "c"}, got["known_triggers"])
}

func TestMerge_TypeMismatchReplacesWholeValue(t *testing.T) {
	base := doc(t, `{"x": {"y": 1}}`)
	patch := doc(t, `{"x": 5}`)

	got := Merge(base, patch)

	require.Equal(t, float64(5), got["x"])
}

func TestMerge_DeepRecursionPreservesSiblings(t *testing.T) {
	base := doc(t, `{
		"recurring_patterns": {
			"sleep": {"weekday": {"quality": "poor", "hours": 6}},
			"hydration": {"glasses": 4}
		}
	}`)
	patch := doc(t, `{
		"recurring_patterns": {
			"sleep": {"weekday": {"quality": "fair"}}
		}
	}`)

	got := Merge(base, patch)

	want := doc(t, `{
		"recurring_patterns": {
			"sleep": {"weekday": {"quality": "fair", "hours": 6}},
			"hydration": {"glasses": 4}
		}
	}`)
	require.Equal(t, want, got)
}

func TestMerge_NewTopLevelKeysAddedVerbatim(t *testing.T) {
	base := doc(t, `{"preferences": {}}`)
	patch := doc(t, `{"helpful_actions": ["walk"], "checkin_hour": 9}`)

	got := Merge(base, patch)

	require.Equal(t, []any{"walk"}, got["helpful_actions"])
	require.Equal(t, float64(9), got["checkin_hour"])
	require.Equal(t, map[string]any{}, got["preferences"])
}

func TestMerge_InnerTypeMismatchReplacesOnlyThatSubtree(t *testing.T) {
	base := doc(t, `{"a": {"keep": 1, "swap": [1, 2]}}`)
	patch := doc(t, `{"a": {"swap": {"now": "map"}}}`)

	got := Merge(base, patch)

	want := doc(t, `{"a": {"keep": 1, "swap": {"now": "map"}}}`)
	require.Equal(t, want, got)
}

func TestMerge_ListOfObjectsDedupesByFullValue(t *testing.T) {
	base := doc(t, `{"log": [{"tag": "fatigue"}]}`)
	patch := doc(t, `{"log": [{"tag": "fatigue"}, {"tag": "stress"}]}`)

	got := Merge(base, patch)

	want := doc(t, `{"log": [{"tag": "fatigue"}, {"tag": "stress"}]}`)
	require.Equal(t, want, got)
}

func TestMerge_DoesNotMutatePatch(t *testing.T) {
	base := doc(t, `{"tags": ["a"]}`)
	patch := doc(t, `{"tags": ["b"]}`)

	_ = Merge(base, patch)

	require.Equal(t, doc(t, `{"tags": ["b"]}`), patch)
	require.Equal(t, doc(t, `{"tags": ["a"]}`), base)
}
