package wizard

import (
	"context"
	"fmt"
	"sync"

	"github.com/bluefood/survey/internal/platform/auth"
)

// Session owns the wizard state of one authenticated identity triple:
// at most one cursor and draft per questionnaire. All operations are
// serialized under the session lock, matching the one-action-at-a-time
// flow of a single surveyor.
type Session struct {
	mu       sync.Mutex
	identity auth.Identity
	machines map[string]*Machine
}

// State is what the shell renders after any wizard operation.
type State struct {
	Questionnaire string         `json:"questionnaire"`
	Page          int            `json:"page"`
	TotalPages    int            `json:"total_pages"`
	Draft         map[string]any `json:"draft"`
}

func newSession(id auth.Identity) *Session {
	return &Session{identity: id, machines: make(map[string]*Machine)}
}

// Identity returns the immutable triple the session was opened with.
func (s *Session) Identity() auth.Identity {
	return s.identity
}

// Open returns the questionnaire's wizard state, hydrating the draft
// from the persisted row on first open. Reopening an already-open
// questionnaire resumes it without rehydrating.
func (s *Session) Open(ctx context.Context, q Questionnaire) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.machines[q.Name()]
	if !ok {
		row, err := q.Hydrate(ctx, s.identity)
		if err != nil {
			return State{}, fmt.Errorf("hydrating %s draft: %w", q.Name(), err)
		}
		m = newMachine(q, HydrateDraft(row))
		m.refreshDerived()
		s.machines[q.Name()] = m
	}
	return s.state(m), nil
}

// UpdateDraft merges a partial field update into an open
// questionnaire's draft.
func (s *Session) UpdateDraft(questionnaire string, fields map[string]any) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.machine(questionnaire)
	if err != nil {
		return State{}, err
	}
	m.Draft().Set(fields)
	m.refreshDerived()
	return s.state(m), nil
}

// Next advances the open questionnaire's cursor.
func (s *Session) Next(questionnaire string) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.machine(questionnaire)
	if err != nil {
		return State{}, err
	}
	if err := m.Next(); err != nil {
		return State{}, err
	}
	return s.state(m), nil
}

// Back decrements the open questionnaire's cursor.
func (s *Session) Back(questionnaire string) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.machine(questionnaire)
	if err != nil {
		return State{}, err
	}
	if err := m.Back(); err != nil {
		return State{}, err
	}
	return s.state(m), nil
}

// Home abandons the open questionnaire, discarding the draft without
// persisting. Closing a questionnaire that is not open is a no-op.
func (s *Session) Home(questionnaire string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.machines, questionnaire)
}

// Submit commits the open questionnaire from its last page. On success
// the wizard state is dropped; reopening rehydrates from the freshly
// written row. Validation and persistence failures leave the state
// intact for retry.
func (s *Session) Submit(ctx context.Context, questionnaire string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.machine(questionnaire)
	if err != nil {
		return err
	}
	if err := m.Submit(ctx, s.identity); err != nil {
		return err
	}
	delete(s.machines, questionnaire)
	return nil
}

func (s *Session) machine(questionnaire string) (*Machine, error) {
	m, ok := s.machines[questionnaire]
	if !ok {
		return nil, fmt.Errorf("questionnaire %s is not open", questionnaire)
	}
	return m, nil
}

func (s *Session) state(m *Machine) State {
	return State{
		Questionnaire: m.q.Name(),
		Page:          m.Page(),
		TotalPages:    m.q.TotalPages(),
		Draft:         m.Draft().Snapshot(),
	}
}

// Registry hands out one Session per session subject.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

func NewRegistry() *Registry {
	return &Registry{sessions: make(map[string]*Session)}
}

// Session returns the session for a subject, creating it on first use.
func (r *Registry) Session(subject string, id auth.Identity) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[subject]
	if !ok {
		s = newSession(id)
		r.sessions[subject] = s
	}
	return s
}

// Drop removes a subject's session and all of its wizard state.
func (r *Registry) Drop(subject string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, subject)
}
