package board

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/hireboard/internal/common"
	"github.com/dmitrijs2005/hireboard/internal/models"
)

// Draft is the editor's working copy. CVURL is shown but not edited through
// the draft; it changes only when a résumé is attached.
type Draft struct {
	models.CandidateDetails
	CVURL string
}

// Editor is an editing session over one candidate. It stays open until
// Close is called or the candidate is deleted.
type Editor struct {
	store  *Store
	id     int64
	draft  Draft
	closed bool
}

// Open starts an editing session for id. Any session already open is
// closed and its draft discarded.
func (s *Store) Open(id int64) (*Editor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return nil, fmt.Errorf("candidate %d: %w", id, common.ErrorNotFound)
	}
	if s.editor != nil {
		s.editor.closed = true
	}

	c := s.candidates[idx]
	s.editor = &Editor{
		store: s,
		id:    id,
		draft: Draft{CandidateDetails: c.Details(), CVURL: c.CVURL},
	}
	return s.editor, nil
}

// Editor returns the open editing session, or nil.
func (s *Store) Editor() *Editor {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.editor
}

func (e *Editor) ID() int64 { return e.id }

// Draft returns a copy of the current draft.
func (e *Editor) Draft() Draft {
	e.store.mu.Lock()
	defer e.store.mu.Unlock()
	return e.draft
}

// Update edits the draft in place. Nothing reaches the store until Save.
func (e *Editor) Update(fn func(d *models.CandidateDetails)) error {
	e.store.mu.Lock()
	defer e.store.mu.Unlock()
	if e.closed {
		return common.ErrEditorClosed
	}
	fn(&e.draft.CandidateDetails)
	return nil
}

// SetField sets one draft field by name: name, email, linkedin or notes.
func (e *Editor) SetField(field, value string) error {
	var set func(d *models.CandidateDetails)
	switch strings.ToLower(field) {
	case "name":
		set = func(d *models.CandidateDetails) { d.Name = value }
	case "email":
		set = func(d *models.CandidateDetails) { d.Email = value }
	case "linkedin", "link", "linkedin_url":
		set = func(d *models.CandidateDetails) { d.LinkedinURL = value }
	case "notes":
		set = func(d *models.CandidateDetails) { d.Notes = value }
	default:
		return fmt.Errorf("%w: unknown field %q", common.ErrorValidation, field)
	}
	return e.Update(set)
}

// Save commits the whole draft, replacing the stored editable fields.
// The session stays open.
func (e *Editor) Save(ctx context.Context) error {
	e.store.mu.Lock()
	if e.closed {
		e.store.mu.Unlock()
		return common.ErrEditorClosed
	}
	details := e.draft.CandidateDetails
	e.store.mu.Unlock()

	return e.store.SaveDetails(ctx, e.id, details)
}

// AttachResume uploads a résumé for the edited candidate.
func (e *Editor) AttachResume(ctx context.Context, fileName string, data []byte) (string, error) {
	if e.Closed() {
		return "", common.ErrEditorClosed
	}
	return e.store.AttachResume(ctx, e.id, fileName, data)
}

// Uploading reports whether a résumé upload is running for this candidate.
func (e *Editor) Uploading() bool {
	return e.store.Uploading(e.id)
}

// Close ends the session and drops the draft. Closing twice is harmless.
func (e *Editor) Close() {
	e.store.mu.Lock()
	defer e.store.mu.Unlock()
	e.closed = true
	if e.store.editor == e {
		e.store.editor = nil
	}
}

func (e *Editor) Closed() bool {
	e.store.mu.Lock()
	defer e.store.mu.Unlock()
	return e.closed
}
