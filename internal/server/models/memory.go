package models

// NewMemoryDocument is the document every account starts with. All later
// mutation goes through the merge-patch operation.
func NewMemoryDocument() map[string]any {
	return map[string]any{
		"preferences":        map[string]any{},
		"recurring_patterns": map[string]any{},
	}
}
