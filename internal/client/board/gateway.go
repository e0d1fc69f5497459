package board

import (
	"context"

	"github.com/dmitrijs2005/hireboard/internal/models"
)

// Gateway is the remote persistence service the board reads from and writes
// to. Any backend satisfying it is interchangeable.
type Gateway interface {
	FetchJob(ctx context.Context, jobID int64) (*models.Job, error)
	// FetchCandidates returns the job's candidates, newest first.
	FetchCandidates(ctx context.Context, jobID int64) ([]models.Candidate, error)
	InsertCandidate(ctx context.Context, fields models.NewCandidate) (*models.Candidate, error)
	UpdateCandidateStatus(ctx context.Context, id int64, stage models.Stage) error
	UpdateCandidateDetails(ctx context.Context, id int64, details models.CandidateDetails) error
	DeleteCandidate(ctx context.Context, id int64) error
	// UploadFile stores data under scopeID and returns a public URL for it.
	UploadFile(ctx context.Context, scopeID string, fileName string, data []byte) (string, error)
	SetCandidateResume(ctx context.Context, id int64, url string) error
}

// Notifier shows a blocking message to the user. It is used only for the
// failures the user must see: add, detail save and résumé upload.
type Notifier interface {
	Alert(ctx context.Context, msg string)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ctx context.Context, msg string)

func (f NotifierFunc) Alert(ctx context.Context, msg string) { f(ctx, msg) }
