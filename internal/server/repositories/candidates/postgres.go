// Package candidates stores pipeline candidates in PostgreSQL.
package candidates

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/hireboard/internal/common"
	"github.com/dmitrijs2005/hireboard/internal/dbx"
	"github.com/dmitrijs2005/hireboard/internal/models"
)

const columns = `id, job_id, name, email, linkedin_url, notes, cv_url, status, created_at`

// PostgresRepository implements Repository over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanCandidate(row scanner) (models.Candidate, error) {
	var c models.Candidate
	var status string
	err := row.Scan(&c.ID, &c.JobID, &c.Name, &c.Email, &c.LinkedinURL, &c.Notes, &c.CVURL, &status, &c.CreatedAt)
	c.Status = models.Stage(status)
	return c, err
}

// ListByJob returns the job's candidates, newest first.
func (r *PostgresRepository) ListByJob(ctx context.Context, jobID int64) ([]models.Candidate, error) {
	query := `SELECT ` + columns + ` FROM candidates
		WHERE job_id = $1
		ORDER BY created_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to select candidates: %w", err)
	}
	defer rows.Close()

	result := []models.Candidate{}
	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id int64) (*models.Candidate, error) {
	query := `SELECT ` + columns + ` FROM candidates WHERE id = $1`

	c, err := scanCandidate(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &c, nil
}

// Create inserts a candidate in the "new" stage and returns the stored row.
func (r *PostgresRepository) Create(ctx context.Context, n models.NewCandidate) (*models.Candidate, error) {
	query := `INSERT INTO candidates (job_id, name, email, linkedin_url, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + columns

	c, err := scanCandidate(r.db.QueryRowContext(ctx, query,
		n.JobID, n.Name, n.Email, n.LinkedinURL, string(models.StageNew)))
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &c, nil
}

func (r *PostgresRepository) UpdateStatus(ctx context.Context, id int64, stage models.Stage) error {
	query := `UPDATE candidates SET status = $1 WHERE id = $2`
	return execOne(ctx, r.db, query, string(stage), id)
}

// UpdateDetails overwrites the four editable fields.
func (r *PostgresRepository) UpdateDetails(ctx context.Context, id int64, d models.CandidateDetails) error {
	query := `UPDATE candidates SET name = $1, email = $2, linkedin_url = $3, notes = $4 WHERE id = $5`
	return execOne(ctx, r.db, query, d.Name, d.Email, d.LinkedinURL, d.Notes, id)
}

func (r *PostgresRepository) SetResume(ctx context.Context, id int64, url string) error {
	query := `UPDATE candidates SET cv_url = $1 WHERE id = $2`
	return execOne(ctx, r.db, query, url, id)
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM candidates WHERE id = $1`
	return execOne(ctx, r.db, query, id)
}

// execOne runs a statement that must touch exactly one row. Zero rows means
// the candidate does not exist.
func execOne(ctx context.Context, db dbx.DBTX, query string, args ...any) error {
	res, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	switch n {
	case 1:
		return nil
	case 0:
		return common.ErrorNotFound
	default:
		return fmt.Errorf("unexpected rows affected: %d", n)
	}
}
