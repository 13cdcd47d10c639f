// Package wizard drives the paginated questionnaire flow: one draft
// and one page cursor per questionnaire per session, with submission
// gated on the terminal page.
package wizard

import (
	"encoding/json"
	"strings"
)

// Draft holds the in-progress answers for one open questionnaire.
// It is owned by a Session and mutated only under the session lock.
type Draft map[string]any

// NewDraft returns an empty draft.
func NewDraft() Draft {
	return make(Draft)
}

// HydrateDraft builds a draft from a persisted row, decoding values
// that were stored as JSON text back into native lists and maps so
// callers see one shape regardless of how the row was written.
func HydrateDraft(row map[string]any) Draft {
	d := make(Draft, len(row))
	for field, value := range row {
		d[field] = normalizeValue(value)
	}
	return d
}

func normalizeValue(value any) any {
	s, ok := value.(string)
	if !ok {
		return value
	}
	trimmed := strings.TrimSpace(s)
	if len(trimmed) == 0 {
		return value
	}
	switch trimmed[0] {
	case '[':
		var list []any
		if err := json.Unmarshal([]byte(trimmed), &list); err == nil {
			return list
		}
	case '{':
		var m map[string]any
		if err := json.Unmarshal([]byte(trimmed), &m); err == nil {
			return m
		}
	}
	return value
}

// Get returns the current value for a field, or nil when unset.
func (d Draft) Get(field string) any {
	return d[field]
}

// Set merges a partial update into the draft, last write wins per
// field. Nil values clear the field.
func (d Draft) Set(fields map[string]any) {
	for field, value := range fields {
		if value == nil {
			delete(d, field)
			continue
		}
		d[field] = value
	}
}

// Snapshot returns a shallow copy safe to hand to callers.
func (d Draft) Snapshot() map[string]any {
	out := make(map[string]any, len(d))
	for field, value := range d {
		out[field] = value
	}
	return out
}
