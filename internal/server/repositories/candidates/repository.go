package candidates

import (
	"context"

	"github.com/dmitrijs2005/hireboard/internal/models"
)

type Repository interface {
	ListByJob(ctx context.Context, jobID int64) ([]models.Candidate, error)
	Get(ctx context.Context, id int64) (*models.Candidate, error)
	Create(ctx context.Context, c models.NewCandidate) (*models.Candidate, error)
	UpdateStatus(ctx context.Context, id int64, stage models.Stage) error
	UpdateDetails(ctx context.Context, id int64, d models.CandidateDetails) error
	SetResume(ctx context.Context, id int64, url string) error
	Delete(ctx context.Context, id int64) error
}
