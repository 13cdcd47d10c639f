package wizard

import (
	"context"
	"fmt"
	"strings"

	"github.com/bluefood/survey/internal/platform/auth"
	"github.com/bluefood/survey/internal/platform/manifest"
)

// Questionnaire is implemented by each survey domain. The wizard only
// needs page geometry, the required-field list, and the two
// persistence hooks around a session.
type Questionnaire interface {
	Name() string
	TotalPages() int
	RequiredFields() []string
	// Hydrate loads the resident's persisted row as draft fields, or
	// an empty map when no row exists yet.
	Hydrate(ctx context.Context, id auth.Identity) (map[string]any, error)
	// Derive recomputes instrument totals and other computed fields
	// from the raw answers. Called after every draft update so the
	// shell always renders current scores.
	Derive(draft map[string]any) map[string]any
	// Persist freezes the draft into a record, upserts it and marks
	// the questionnaire complete for the resident.
	Persist(ctx context.Context, id auth.Identity, draft map[string]any) error
}

// ValidationError reports which required fields a submission is
// missing. The draft and cursor are left untouched.
type ValidationError struct {
	MissingFields []string
}

func (e *ValidationError) Error() string {
	return "missing required fields: " + strings.Join(e.MissingFields, ", ")
}

// PersistenceError wraps a failed write. The draft and cursor survive
// so the surveyor can retry the submit.
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string {
	return "persisting questionnaire: " + e.Err.Error()
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// Machine tracks the page cursor and draft of one open questionnaire.
// It is not safe for concurrent use; the owning Session serializes
// access.
type Machine struct {
	q      Questionnaire
	cursor int
	draft  Draft
	// derived holds the keys the last Derive call produced, so a
	// recompute can clear scores whose inputs were since removed.
	derived map[string]struct{}
}

func newMachine(q Questionnaire, draft Draft) *Machine {
	return &Machine{q: q, cursor: 1, draft: draft, derived: make(map[string]struct{})}
}

// refreshDerived recomputes the questionnaire's derived fields into the
// draft. Keys produced by an earlier recompute that the questionnaire
// no longer derives are dropped, so clearing an input also clears the
// score it fed. Hydrated values the questionnaire cannot re-derive are
// left alone.
func (m *Machine) refreshDerived() {
	next := m.q.Derive(m.draft.Snapshot())
	for key := range m.derived {
		if _, ok := next[key]; !ok {
			delete(m.draft, key)
		}
	}
	m.derived = make(map[string]struct{}, len(next))
	for key := range next {
		m.derived[key] = struct{}{}
	}
	m.draft.Set(next)
}

// Page returns the 1-based cursor, always within [1, TotalPages].
func (m *Machine) Page() int {
	return m.cursor
}

// Draft returns the machine's draft for mutation.
func (m *Machine) Draft() Draft {
	return m.draft
}

// Next advances the cursor. Intermediate pages carry no validation
// gate, but the last page only submits.
func (m *Machine) Next() error {
	if m.cursor >= m.q.TotalPages() {
		return fmt.Errorf("already on the last page (%d)", m.cursor)
	}
	m.cursor++
	return nil
}

// Back decrements the cursor. Disallowed on page 1.
func (m *Machine) Back() error {
	if m.cursor <= 1 {
		return fmt.Errorf("already on the first page")
	}
	m.cursor--
	return nil
}

// Submit validates required fields and persists the draft. Allowed
// only from the last page. On success the caller discards the machine.
func (m *Machine) Submit(ctx context.Context, id auth.Identity) error {
	if m.cursor != m.q.TotalPages() {
		return fmt.Errorf("submit only allowed from page %d, on page %d", m.q.TotalPages(), m.cursor)
	}
	if missing := manifest.MissingFields(m.q.RequiredFields(), m.draft); len(missing) > 0 {
		return &ValidationError{MissingFields: missing}
	}
	if err := m.q.Persist(ctx, id, m.draft.Snapshot()); err != nil {
		return &PersistenceError{Err: err}
	}
	return nil
}
