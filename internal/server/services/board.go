// Package services holds the server-side board logic: candidate CRUD over
// the repositories and presigned résumé uploads to S3-compatible storage.
package services

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/hireboard/internal/common"
	"github.com/dmitrijs2005/hireboard/internal/dbx"
	"github.com/dmitrijs2005/hireboard/internal/filex"
	"github.com/dmitrijs2005/hireboard/internal/logging"
	"github.com/dmitrijs2005/hireboard/internal/models"
	sc "github.com/dmitrijs2005/hireboard/internal/server/config"
	"github.com/dmitrijs2005/hireboard/internal/server/repositories/repomanager"
	"github.com/google/uuid"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}

	newStorageID = func() string { return uuid.NewString() }
)

type BoardService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	config      *sc.Config
	logger      logging.Logger
}

func NewBoardService(db *sql.DB, repomanager repomanager.RepositoryManager, config *sc.Config, logger logging.Logger) *BoardService {
	return &BoardService{
		db:          db,
		repomanager: repomanager,
		config:      config,
		logger:      logger.With("module", "board_service"),
	}
}

func (s *BoardService) GetJob(ctx context.Context, id int64) (*models.Job, error) {
	return s.repomanager.Jobs(s.db).Get(ctx, id)
}

// ListCandidates returns the job's candidates, newest first.
func (s *BoardService) ListCandidates(ctx context.Context, jobID int64) ([]models.Candidate, error) {
	return s.repomanager.Candidates(s.db).ListByJob(ctx, jobID)
}

// CreateCandidate inserts a candidate in the "new" stage. The job must
// exist; the check and the insert share a transaction.
func (s *BoardService) CreateCandidate(ctx context.Context, n models.NewCandidate) (*models.Candidate, error) {
	n.Name = strings.TrimSpace(n.Name)
	n.Email = strings.TrimSpace(n.Email)
	n.LinkedinURL = strings.TrimSpace(n.LinkedinURL)
	if err := n.Validate(); err != nil {
		return nil, err
	}

	created, err := dbx.WithTxResult(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) (*models.Candidate, error) {
		if _, err := s.repomanager.Jobs(tx).Get(ctx, n.JobID); err != nil {
			return nil, fmt.Errorf("job %d: %w", n.JobID, err)
		}
		return s.repomanager.Candidates(tx).Create(ctx, n)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "candidate created", "candidate_id", created.ID, "job_id", created.JobID)
	return created, nil
}

// UpdateStatus moves a candidate to any of the four stages.
func (s *BoardService) UpdateStatus(ctx context.Context, id int64, stage models.Stage) error {
	if !stage.Valid() {
		return fmt.Errorf("%w: %q", common.ErrInvalidStage, stage)
	}
	if err := s.repomanager.Candidates(s.db).UpdateStatus(ctx, id, stage); err != nil {
		return err
	}
	s.logger.Debug(ctx, "status updated", "candidate_id", id, "status", stage)
	return nil
}

func (s *BoardService) UpdateDetails(ctx context.Context, id int64, d models.CandidateDetails) error {
	if strings.TrimSpace(d.Name) == "" {
		return fmt.Errorf("%w: name is required", common.ErrorValidation)
	}
	return s.repomanager.Candidates(s.db).UpdateDetails(ctx, id, d)
}

func (s *BoardService) SetResume(ctx context.Context, id int64, cvURL string) error {
	if _, err := url.ParseRequestURI(cvURL); err != nil {
		return fmt.Errorf("%w: cv url: %v", common.ErrorValidation, err)
	}
	return s.repomanager.Candidates(s.db).SetResume(ctx, id, cvURL)
}

func (s *BoardService) DeleteCandidate(ctx context.Context, id int64) error {
	if err := s.repomanager.Candidates(s.db).Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info(ctx, "candidate deleted", "candidate_id", id)
	return nil
}

// StorageKey names the object for an uploaded résumé: a random name under
// the candidate's scope, keeping the original extension.
func StorageKey(scopeID, fileName string) (string, error) {
	ext, err := filex.ResumeExt(fileName)
	if err != nil {
		return "", err
	}
	scopeID = strings.Trim(scopeID, "/ ")
	if scopeID == "" || strings.ContainsAny(scopeID, "/\\") || scopeID == ".." {
		return "", fmt.Errorf("%w: bad scope %q", common.ErrorValidation, scopeID)
	}
	return "candidates/" + scopeID + "/" + newStorageID() + ext, nil
}

func (s *BoardService) getPresignClient(ctx context.Context) (*s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(s.config.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
		o.UsePathStyle = true
	})

	return newS3PresignClient(client), nil
}

// PublicURL is where an uploaded object can be read back.
func (s *BoardService) PublicURL(key string) string {
	base := s.config.PublicBaseURL
	if base == "" {
		base = strings.TrimRight(s.config.S3BaseEndpoint, "/") + "/" + s.config.S3Bucket
	}
	return strings.TrimRight(base, "/") + "/" + key
}

// RequestUpload validates the file name and returns a presigned PUT URL for
// a fresh object plus the URL the object will be served from.
func (s *BoardService) RequestUpload(ctx context.Context, scopeID, fileName, contentType string) (*models.UploadTicket, error) {
	key, err := StorageKey(scopeID, fileName)
	if err != nil {
		return nil, err
	}

	presignClient, err := s.getPresignClient(ctx)
	if err != nil {
		return nil, err
	}

	in := &s3.PutObjectInput{
		Bucket: aws.String(s.config.S3Bucket),
		Key:    aws.String(key),
	}
	if contentType != "" {
		in.ContentType = aws.String(contentType)
	}

	expiry := s.config.PresignExpiry
	if expiry <= 0 {
		expiry = 15 * time.Minute
	}

	req, err := presignPutObject(presignClient, ctx, in, s3.WithPresignExpires(expiry))
	if err != nil {
		return nil, err
	}

	s.logger.Debug(ctx, "upload presigned", "key", key, "expires_in", expiry)
	return &models.UploadTicket{Key: key, UploadURL: req.URL, PublicURL: s.PublicURL(key)}, nil
}

// CreateJob adds a job; the server uses it to seed a board at startup.
func (s *BoardService) CreateJob(ctx context.Context, title string) (*models.Job, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("%w: job title is required", common.ErrorValidation)
	}
	job, err := s.repomanager.Jobs(s.db).Create(ctx, title)
	if err != nil {
		return nil, err
	}
	s.logger.Info(ctx, "job created", "job_id", job.ID, "title", job.Title)
	return job, nil
}
