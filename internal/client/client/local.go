package client

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dmitrijs2005/hireboard/internal/client/board"
	"github.com/dmitrijs2005/hireboard/internal/common"
	"github.com/dmitrijs2005/hireboard/internal/dbx"
	"github.com/dmitrijs2005/hireboard/internal/filex"
	"github.com/dmitrijs2005/hireboard/internal/models"
	"github.com/google/uuid"
)

// timeLayout is fixed-width so created_at sorts correctly as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

const candidateColumns = `id, job_id, name, email, linkedin_url, notes, cv_url, status, created_at`

// LocalGateway keeps the board in SQLite and uploaded files on disk.
type LocalGateway struct {
	db       *sql.DB
	filesDir string
	now      func() time.Time
}

var _ board.Gateway = (*LocalGateway)(nil)

func NewLocalGateway(db *sql.DB, filesDir string) *LocalGateway {
	return &LocalGateway{db: db, filesDir: filesDir, now: time.Now}
}

func (g *LocalGateway) Close() error {
	return g.db.Close()
}

// EnsureJob creates job id with title unless it already exists.
func (g *LocalGateway) EnsureJob(ctx context.Context, id int64, title string) error {
	_, err := g.db.ExecContext(ctx, `INSERT OR IGNORE INTO jobs (id, title) VALUES (?, ?)`, id, title)
	if err != nil {
		return fmt.Errorf("ensure job: %w", err)
	}
	return nil
}

func (g *LocalGateway) FetchJob(ctx context.Context, jobID int64) (*models.Job, error) {
	j := &models.Job{}
	err := g.db.QueryRowContext(ctx, `SELECT id, title, status FROM jobs WHERE id = ?`, jobID).Scan(&j.ID, &j.Title, &j.Status)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, err
	}
	return j, nil
}

func scanCandidate(row interface{ Scan(...any) error }) (models.Candidate, error) {
	var c models.Candidate
	var status, created string
	if err := row.Scan(&c.ID, &c.JobID, &c.Name, &c.Email, &c.LinkedinURL, &c.Notes, &c.CVURL, &status, &created); err != nil {
		return c, err
	}
	c.Status = models.Stage(status)
	t, err := time.Parse(timeLayout, created)
	if err != nil {
		return c, fmt.Errorf("created_at: %w", err)
	}
	c.CreatedAt = t
	return c, nil
}

func (g *LocalGateway) FetchCandidates(ctx context.Context, jobID int64) ([]models.Candidate, error) {
	rows, err := g.db.QueryContext(ctx,
		`SELECT `+candidateColumns+` FROM candidates WHERE job_id = ? ORDER BY created_at DESC, id DESC`, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to select candidates: %w", err)
	}
	defer rows.Close()

	out := []models.Candidate{}
	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (g *LocalGateway) InsertCandidate(ctx context.Context, fields models.NewCandidate) (*models.Candidate, error) {
	fields.Name = strings.TrimSpace(fields.Name)
	if err := fields.Validate(); err != nil {
		return nil, err
	}
	created := g.now().UTC().Format(timeLayout)

	return dbx.WithTxResult(ctx, g.db, nil, func(ctx context.Context, tx dbx.DBTX) (*models.Candidate, error) {
		res, err := tx.ExecContext(ctx,
			`INSERT INTO candidates (job_id, name, email, linkedin_url, status, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
			fields.JobID, fields.Name, fields.Email, fields.LinkedinURL, string(models.StageNew), created)
		if err != nil {
			return nil, fmt.Errorf("insert candidate: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return nil, err
		}
		c, err := scanCandidate(tx.QueryRowContext(ctx, `SELECT `+candidateColumns+` FROM candidates WHERE id = ?`, id))
		if err != nil {
			return nil, err
		}
		return &c, nil
	})
}

// execOne runs a single-row update and reports a missing row as not found.
func (g *LocalGateway) execOne(ctx context.Context, query string, args ...any) error {
	res, err := g.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (g *LocalGateway) UpdateCandidateStatus(ctx context.Context, id int64, stage models.Stage) error {
	if !stage.Valid() {
		return fmt.Errorf("%w: %q", common.ErrInvalidStage, stage)
	}
	return g.execOne(ctx, `UPDATE candidates SET status = ? WHERE id = ?`, string(stage), id)
}

func (g *LocalGateway) UpdateCandidateDetails(ctx context.Context, id int64, d models.CandidateDetails) error {
	if strings.TrimSpace(d.Name) == "" {
		return fmt.Errorf("%w: name is required", common.ErrorValidation)
	}
	return g.execOne(ctx,
		`UPDATE candidates SET name = ?, email = ?, linkedin_url = ?, notes = ? WHERE id = ?`,
		d.Name, d.Email, d.LinkedinURL, d.Notes, id)
}

func (g *LocalGateway) DeleteCandidate(ctx context.Context, id int64) error {
	return g.execOne(ctx, `DELETE FROM candidates WHERE id = ?`, id)
}

func (g *LocalGateway) SetCandidateResume(ctx context.Context, id int64, cvURL string) error {
	return g.execOne(ctx, `UPDATE candidates SET cv_url = ? WHERE id = ?`, cvURL, id)
}

// UploadFile writes data under <filesDir>/candidates/<scopeID>/ with a
// random name and returns its file:// URL.
func (g *LocalGateway) UploadFile(ctx context.Context, scopeID string, fileName string, data []byte) (string, error) {
	ext, err := filex.ResumeExt(fileName)
	if err != nil {
		return "", err
	}
	if scopeID == "" || strings.ContainsAny(scopeID, `/\`) || scopeID == ".." || scopeID == "." {
		return "", fmt.Errorf("%w: bad scope %q", common.ErrorValidation, scopeID)
	}

	dir, err := filex.EnsureSubdDir(filepath.Join(g.filesDir, "candidates", scopeID))
	if err != nil {
		return "", err
	}

	path := filepath.Join(dir, uuid.NewString()+ext)
	if err := os.WriteFile(path, data, 0o640); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}

	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(path)}).String(), nil
}
