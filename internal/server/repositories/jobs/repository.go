package jobs

import (
	"context"

	"github.com/dmitrijs2005/hireboard/internal/models"
)

type Repository interface {
	Get(ctx context.Context, id int64) (*models.Job, error)
	Create(ctx context.Context, title string) (*models.Job, error)
}
