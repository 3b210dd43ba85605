package services

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Workspace errors.
var (
	ErrInvalidTransition = errors.New("invalid screen transition")
	ErrNotEditing        = errors.New("invoice is being previewed")
	ErrWorkspaceNotFound = errors.New("workspace not found")
)

// ScreenState is the state of the invoice screen.
type ScreenState string

const (
	StateEditing    ScreenState = "editing"
	StatePreviewing ScreenState = "previewing"
)

// Workspace is one user's invoice being edited or previewed. Profile is the
// issuer Document was generated with; downloads print it rather than the
// currently saved profile. Markup is the HTML of Document shown in the
// preview frame.
type Workspace struct {
	ID        string
	Invoice   *Invoice
	State     ScreenState
	Document  *RenderedDocument
	Profile   CompanyProfile
	Markup    string
	UpdatedAt time.Time
}

// NewWorkspace returns a workspace in the editing state holding a blank
// invoice dated now.
func NewWorkspace(id string, now time.Time) *Workspace {
	return &Workspace{
		ID:        id,
		Invoice:   NewInvoice(now),
		State:     StateEditing,
		UpdatedAt: now,
	}
}

// Edit applies fn to the invoice. Edits are only accepted while editing.
func (w *Workspace) Edit(fn func(inv *Invoice) error) error {
	if w.State != StateEditing {
		return ErrNotEditing
	}
	return fn(w.Invoice)
}

// Generate renders the invoice issued by profile and moves to previewing.
func (w *Workspace) Generate(now time.Time, profile CompanyProfile) (*RenderedDocument, error) {
	if w.State != StateEditing {
		return nil, fmt.Errorf("generate from %s: %w", w.State, ErrInvalidTransition)
	}
	doc, err := RenderDocument(w.Invoice, now)
	if err != nil {
		return nil, err
	}
	w.Document = doc
	w.Profile = profile
	w.Markup = ""
	w.State = StatePreviewing
	return doc, nil
}

// MarkupFunc renders a generated document as HTML.
type MarkupFunc func(doc *RenderedDocument, profile CompanyProfile) (string, error)

// Preview generates the invoice and keeps its markup for the preview frame.
// If markup fails the workspace is left exactly as it was: still editing,
// with the previous document, profile and markup.
func (w *Workspace) Preview(now time.Time, profile CompanyProfile, markup MarkupFunc) (*RenderedDocument, error) {
	prev := *w
	doc, err := w.Generate(now, profile)
	if err != nil {
		return nil, err
	}
	html, err := markup(doc, profile)
	if err != nil {
		w.Document, w.Profile, w.Markup = prev.Document, prev.Profile, prev.Markup
		w.State = prev.State
		return nil, err
	}
	w.Markup = html
	return doc, nil
}

// Back returns from the preview to editing. The last rendered document is
// kept for downloads.
func (w *Workspace) Back() error {
	if w.State != StatePreviewing {
		return fmt.Errorf("back from %s: %w", w.State, ErrInvalidTransition)
	}
	w.State = StateEditing
	return nil
}

// Reset replaces the invoice and returns to editing.
func (w *Workspace) Reset(inv *Invoice) {
	w.Invoice = inv
	w.Document = nil
	w.Profile = CompanyProfile{}
	w.Markup = ""
	w.State = StateEditing
}

// clone copies the workspace so callers can read it outside the store lock.
func (w *Workspace) clone() *Workspace {
	c := *w
	c.Invoice = w.Invoice.Clone()
	return &c
}

// WorkspaceStore keeps workspaces in memory, keyed by session id.
type WorkspaceStore struct {
	mu         sync.Mutex
	workspaces map[string]*Workspace
	ttl        time.Duration
}

// NewWorkspaceStore returns an empty store. Workspaces idle for longer than
// ttl are removed by Sweep; a zero ttl disables eviction.
func NewWorkspaceStore(ttl time.Duration) *WorkspaceStore {
	return &WorkspaceStore{
		workspaces: make(map[string]*Workspace),
		ttl:        ttl,
	}
}

// Create adds a new workspace with a random id.
func (s *WorkspaceStore) Create(now time.Time) *Workspace {
	w := NewWorkspace(uuid.NewString(), now)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.workspaces[w.ID] = w
	return w.clone()
}

// Get returns a copy of the workspace with the given id.
func (s *WorkspaceStore) Get(id string) (*Workspace, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, ok := s.workspaces[id]
	if !ok {
		return nil, ErrWorkspaceNotFound
	}
	return w.clone(), nil
}

// Update runs fn on the workspace under the store lock and touches it.
// The returned copy reflects fn's changes even when fn fails.
func (s *WorkspaceStore) Update(id string, now time.Time, fn func(w *Workspace) error) (*Workspace, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, ok := s.workspaces[id]
	if !ok {
		return nil, ErrWorkspaceNotFound
	}
	err := fn(w)
	w.UpdatedAt = now
	return w.clone(), err
}

// Delete removes a workspace.
func (s *WorkspaceStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.workspaces, id)
}

// Sweep removes workspaces idle since before now minus the TTL and returns
// how many were removed.
func (s *WorkspaceStore) Sweep(now time.Time) int {
	if s.ttl <= 0 {
		return 0
	}
	cutoff := now.Add(-s.ttl)

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, w := range s.workspaces {
		if w.UpdatedAt.Before(cutoff) {
			delete(s.workspaces, id)
			removed++
		}
	}
	return removed
}

// Len returns the number of live workspaces.
func (s *WorkspaceStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.workspaces)
}
