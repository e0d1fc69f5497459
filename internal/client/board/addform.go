package board

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/hireboard/internal/common"
	"github.com/dmitrijs2005/hireboard/internal/models"
)

// AddForm is the draft behind the "add candidate" panel.
type AddForm struct {
	Open        bool
	Name        string
	Email       string
	LinkedinURL string
}

// Toggle opens or closes the panel without touching the draft.
func (f *AddForm) Toggle() { f.Open = !f.Open }

// Reset clears the draft and closes the panel.
func (f *AddForm) Reset() { *f = AddForm{} }

// Submit adds the drafted candidate to the store's job. On success the form
// is reset; on failure the draft is kept so the user can retry.
func (f *AddForm) Submit(ctx context.Context, s *Store) (*models.Candidate, error) {
	if strings.TrimSpace(f.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", common.ErrorValidation)
	}

	created, err := s.Add(ctx, models.NewCandidate{
		JobID:       s.JobID(),
		Name:        strings.TrimSpace(f.Name),
		Email:       strings.TrimSpace(f.Email),
		LinkedinURL: strings.TrimSpace(f.LinkedinURL),
	})
	if err != nil {
		return nil, err
	}

	f.Reset()
	return created, nil
}
