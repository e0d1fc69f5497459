// Package models holds the domain types shared by the board client and the
// HireBoard server.
package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/hireboard/internal/common"
)

// Candidate is one applicant on a job's pipeline board.
type Candidate struct {
	ID          int64     `json:"id"`
	JobID       int64     `json:"job_id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	LinkedinURL string    `json:"linkedin_url"`
	Notes       string    `json:"notes"`
	CVURL       string    `json:"cv_url"`
	Status      Stage     `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// HasNotes and HasResume drive the card badges.
func (c Candidate) HasNotes() bool  { return strings.TrimSpace(c.Notes) != "" }
func (c Candidate) HasResume() bool { return c.CVURL != "" }

// Details returns the editable field set of c.
func (c Candidate) Details() CandidateDetails {
	return CandidateDetails{Name: c.Name, Email: c.Email, LinkedinURL: c.LinkedinURL, Notes: c.Notes}
}

// WithDetails returns a copy of c with the editable fields replaced by d.
// Identity, stage, résumé and creation time are kept.
func (c Candidate) WithDetails(d CandidateDetails) Candidate {
	c.Name = d.Name
	c.Email = d.Email
	c.LinkedinURL = d.LinkedinURL
	c.Notes = d.Notes
	return c
}

// NewCandidate is the insert payload. Status is always StageNew and is not
// part of the payload.
type NewCandidate struct {
	JobID       int64  `json:"job_id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	LinkedinURL string `json:"linkedin_url"`
}

// Validate checks the fields the gateway relies on.
func (n NewCandidate) Validate() error {
	if n.JobID <= 0 {
		return fmt.Errorf("%w: job id is required", common.ErrorValidation)
	}
	if strings.TrimSpace(n.Name) == "" {
		return fmt.Errorf("%w: name is required", common.ErrorValidation)
	}
	return nil
}

// CandidateDetails is the set of fields committed by a detail save.
type CandidateDetails struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	LinkedinURL string `json:"linkedin_url"`
	Notes       string `json:"notes"`
}

// Job is the posting a board belongs to. The board only reads it.
type Job struct {
	ID     int64  `json:"id"`
	Title  string `json:"title"`
	Status string `json:"status"`
}

// UploadTicket is the server's answer to an upload request: where to PUT the
// bytes and the URL the stored object will be reachable at.
type UploadTicket struct {
	Key       string `json:"key"`
	UploadURL string `json:"upload_url"`
	PublicURL string `json:"public_url"`
}
