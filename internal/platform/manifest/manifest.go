// Package manifest maps questionnaire field names to database columns.
// Each questionnaire carries a versioned manifest so the service can
// tolerate drift between the forms surveyors fill in and the schema the
// records land in: unknown fields are dropped with a warning instead of
// failing the write.
package manifest

import (
	"fmt"
	"sort"

	"github.com/rs/zerolog/log"
)

// Manifest describes one questionnaire's persistable fields.
type Manifest struct {
	Questionnaire string
	Version       int
	// Columns maps a draft field name to its database column.
	Columns map[string]string
	// Required lists the fields a submission must carry.
	Required []string
}

// Validate checks internal consistency. Every required field must have
// a column mapping, and no column may be mapped twice.
func (m Manifest) Validate() error {
	if m.Questionnaire == "" {
		return fmt.Errorf("manifest has no questionnaire name")
	}
	if m.Version < 1 {
		return fmt.Errorf("manifest %s: version must be >= 1, got %d", m.Questionnaire, m.Version)
	}
	if len(m.Columns) == 0 {
		return fmt.Errorf("manifest %s: no column mappings", m.Questionnaire)
	}
	for _, field := range m.Required {
		if _, ok := m.Columns[field]; !ok {
			return fmt.Errorf("manifest %s v%d: required field %q has no column mapping",
				m.Questionnaire, m.Version, field)
		}
	}
	seen := make(map[string]string, len(m.Columns))
	for field, col := range m.Columns {
		if col == "" {
			return fmt.Errorf("manifest %s v%d: field %q maps to empty column",
				m.Questionnaire, m.Version, field)
		}
		if prev, dup := seen[col]; dup {
			return fmt.Errorf("manifest %s v%d: fields %q and %q both map to column %q",
				m.Questionnaire, m.Version, prev, field, col)
		}
		seen[col] = field
	}
	return nil
}

// Filter splits a draft into the values covered by the manifest and the
// field names that were dropped. Dropped fields are logged once per
// call so schema drift is visible without breaking the save.
func (m Manifest) Filter(draft map[string]any) (known map[string]any, dropped []string) {
	known = make(map[string]any, len(draft))
	for field, value := range draft {
		if _, ok := m.Columns[field]; ok {
			known[field] = value
			continue
		}
		dropped = append(dropped, field)
	}
	sort.Strings(dropped)
	if len(dropped) > 0 {
		log.Warn().
			Str("questionnaire", m.Questionnaire).
			Int("manifest_version", m.Version).
			Strs("dropped_fields", dropped).
			Msg("Dropping draft fields without a column mapping")
	}
	return known, dropped
}

// Missing returns the required fields absent or empty in the draft,
// sorted for stable error payloads.
func (m Manifest) Missing(draft map[string]any) []string {
	return MissingFields(m.Required, draft)
}

// MissingFields is the presence check behind Missing, shared with the
// wizard's submit gate. Zero is a present value; only an absent field,
// nil or the empty string counts as missing, because instrument scores
// can legitimately be 0.
func MissingFields(required []string, draft map[string]any) []string {
	var missing []string
	for _, field := range required {
		v, ok := draft[field]
		if !ok || v == nil || v == "" {
			missing = append(missing, field)
		}
	}
	sort.Strings(missing)
	return missing
}

// ValidateAll checks a set of manifests at startup, failing fast on the
// first inconsistent one.
func ValidateAll(manifests ...Manifest) error {
	for _, m := range manifests {
		if err := m.Validate(); err != nil {
			return err
		}
	}
	return nil
}
