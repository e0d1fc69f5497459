// Package jobs reads job postings. Jobs are owned by another part of the
// hiring system; the board only needs their header and the create call used
// for seeding.
package jobs

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/hireboard/internal/common"
	"github.com/dmitrijs2005/hireboard/internal/dbx"
	"github.com/dmitrijs2005/hireboard/internal/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Get(ctx context.Context, id int64) (*models.Job, error) {
	query := `SELECT id, title, status FROM jobs WHERE id = $1`

	job := &models.Job{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&job.ID, &job.Title, &job.Status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return job, nil
}

func (r *PostgresRepository) Create(ctx context.Context, title string) (*models.Job, error) {
	query := `INSERT INTO jobs (title) VALUES ($1) RETURNING id, title, status`

	job := &models.Job{}
	if err := r.db.QueryRowContext(ctx, query, title).Scan(&job.ID, &job.Title, &job.Status); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return job, nil
}
