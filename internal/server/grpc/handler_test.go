package grpc

import (
	"context"
	"errors"
	"fmt"
	"net"
	"testing"
	"time"

	"github.com/dmitrijs2005/hireboard/internal/common"
	"github.com/dmitrijs2005/hireboard/internal/models"
	"github.com/dmitrijs2005/hireboard/internal/server/auth"
	"github.com/dmitrijs2005/hireboard/internal/transport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// ---- fakes ----

type fakeBoard struct {
	candidates map[int64]models.Candidate
	statuses   map[int64]models.Stage
	details    map[int64]models.CandidateDetails
	resumes    map[int64]string
	deleted    []int64
	err        error
}

func newFakeBoard() *fakeBoard {
	return &fakeBoard{
		candidates: map[int64]models.Candidate{
			1: {ID: 1, JobID: 1, Name: "Alice", Status: models.StageNew, CreatedAt: time.Date(2025, 1, 1, 8, 0, 0, 0, time.UTC)},
		},
		statuses: map[int64]models.Stage{},
		details:  map[int64]models.CandidateDetails{},
		resumes:  map[int64]string{},
	}
}

func (f *fakeBoard) GetJob(ctx context.Context, id int64) (*models.Job, error) {
	if id != 1 {
		return nil, fmt.Errorf("job %d: %w", id, common.ErrorNotFound)
	}
	return &models.Job{ID: 1, Title: "Backend Engineer", Status: "open"}, nil
}

func (f *fakeBoard) ListCandidates(ctx context.Context, jobID int64) ([]models.Candidate, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []models.Candidate
	for _, c := range f.candidates {
		if c.JobID == jobID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeBoard) CreateCandidate(ctx context.Context, n models.NewCandidate) (*models.Candidate, error) {
	if err := n.Validate(); err != nil {
		return nil, err
	}
	c := models.Candidate{ID: 2, JobID: n.JobID, Name: n.Name, Email: n.Email, Status: models.StageNew}
	f.candidates[c.ID] = c
	return &c, nil
}

func (f *fakeBoard) UpdateStatus(ctx context.Context, id int64, stage models.Stage) error {
	f.statuses[id] = stage
	return f.err
}

func (f *fakeBoard) UpdateDetails(ctx context.Context, id int64, d models.CandidateDetails) error {
	f.details[id] = d
	return f.err
}

func (f *fakeBoard) SetResume(ctx context.Context, id int64, cvURL string) error {
	f.resumes[id] = cvURL
	return f.err
}

func (f *fakeBoard) DeleteCandidate(ctx context.Context, id int64) error {
	if _, ok := f.candidates[id]; !ok {
		return common.ErrorNotFound
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeBoard) RequestUpload(ctx context.Context, scopeID, fileName, contentType string) (*models.UploadTicket, error) {
	if fileName == "cv.exe" {
		return nil, common.ErrUnsupportedFile
	}
	key := "candidates/" + scopeID + "/k.pdf"
	return &models.UploadTicket{Key: key, UploadURL: "http://s3/put?sig=1", PublicURL: "http://s3/" + key}, nil
}

// ---- helpers ----

const testSecret = "k"

// dial serves s over an in-memory listener and returns an authenticated
// client.
func dial(t *testing.T, board *fakeBoard) (transport.BoardClient, context.Context) {
	t.Helper()

	s := NewGRPCServer("bufconn", nopLogger{}, board, testSecret)
	lis := bufconn.Listen(1 << 20)
	srv := s.newServer()
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	token, err := auth.GenerateToken("recruiter-1", []byte(testSecret), time.Hour)
	require.NoError(t, err)
	ctx := metadata.AppendToOutgoingContext(context.Background(), common.AccessTokenHeaderName, token)

	return transport.NewBoardClient(conn), ctx
}

// ---- tests ----

func TestPing_OK(t *testing.T) {
	client, _ := dial(t, newFakeBoard())

	resp, err := client.Ping(context.Background(), &emptypb.Empty{})
	require.NoError(t, err)
	assert.Equal(t, transport.PingOK, resp.GetValue())
}

func TestRoundTrip_RequiresToken(t *testing.T) {
	client, _ := dial(t, newFakeBoard())

	_, err := client.ListCandidates(context.Background(), wrapperspb.Int64(1))
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
}

func TestRoundTrip_JobAndCandidates(t *testing.T) {
	client, ctx := dial(t, newFakeBoard())

	js, err := client.GetJob(ctx, wrapperspb.Int64(1))
	require.NoError(t, err)
	job, err := transport.DecodeJob(js)
	require.NoError(t, err)
	assert.Equal(t, "Backend Engineer", job.Title)

	_, err = client.GetJob(ctx, wrapperspb.Int64(5))
	assert.Equal(t, codes.NotFound, status.Code(err))

	ls, err := client.ListCandidates(ctx, wrapperspb.Int64(1))
	require.NoError(t, err)
	list, err := transport.DecodeCandidates(ls)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Alice", list[0].Name)
}

func TestRoundTrip_CreateCandidate(t *testing.T) {
	client, ctx := dial(t, newFakeBoard())

	in, err := transport.EncodeNewCandidate(models.NewCandidate{JobID: 1, Name: "Jane", Email: "jane@x.com"})
	require.NoError(t, err)

	out, err := client.CreateCandidate(ctx, in)
	require.NoError(t, err)
	c, err := transport.DecodeCandidate(out)
	require.NoError(t, err)
	assert.Equal(t, int64(2), c.ID)
	assert.Equal(t, models.StageNew, c.Status)

	blank, err := transport.EncodeNewCandidate(models.NewCandidate{JobID: 1})
	require.NoError(t, err)
	_, err = client.CreateCandidate(ctx, blank)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestRoundTrip_Writes(t *testing.T) {
	board := newFakeBoard()
	client, ctx := dial(t, board)

	st, err := transport.EncodeStatus(1, models.StageOffer)
	require.NoError(t, err)
	_, err = client.UpdateStatus(ctx, st)
	require.NoError(t, err)
	assert.Equal(t, models.StageOffer, board.statuses[1])

	d := models.CandidateDetails{Name: "Alice B", Notes: "call back"}
	ds, err := transport.EncodeDetails(1, d)
	require.NoError(t, err)
	_, err = client.UpdateDetails(ctx, ds)
	require.NoError(t, err)
	assert.Equal(t, d, board.details[1])

	rs, err := transport.EncodeResume(1, "http://s3/cv.pdf")
	require.NoError(t, err)
	_, err = client.SetResume(ctx, rs)
	require.NoError(t, err)
	assert.Equal(t, "http://s3/cv.pdf", board.resumes[1])

	_, err = client.DeleteCandidate(ctx, wrapperspb.Int64(1))
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, board.deleted)

	_, err = client.DeleteCandidate(ctx, wrapperspb.Int64(77))
	assert.Equal(t, codes.NotFound, status.Code(err))
}

func TestRoundTrip_BadStageRejected(t *testing.T) {
	board := newFakeBoard()
	client, ctx := dial(t, board)

	bad, err := structpb.NewStruct(map[string]any{transport.FieldID: "1", transport.FieldStatus: "archived"})
	require.NoError(t, err)

	_, err = client.UpdateStatus(ctx, bad)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
	assert.Empty(t, board.statuses)
}

func TestRoundTrip_RequestUpload(t *testing.T) {
	client, ctx := dial(t, newFakeBoard())

	req, err := transport.EncodeUploadRequest(transport.UploadRequest{ScopeID: "1", FileName: "cv.pdf", ContentType: "application/pdf"})
	require.NoError(t, err)
	out, err := client.RequestUpload(ctx, req)
	require.NoError(t, err)
	ticket, err := transport.DecodeUploadTicket(out)
	require.NoError(t, err)
	assert.Equal(t, "http://s3/candidates/1/k.pdf", ticket.PublicURL)

	exe, err := transport.EncodeUploadRequest(transport.UploadRequest{ScopeID: "1", FileName: "cv.exe"})
	require.NoError(t, err)
	_, err = client.RequestUpload(ctx, exe)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestToStatus_HidesInternalErrors(t *testing.T) {
	board := newFakeBoard()
	board.err = errors.New("pq: connection refused")
	client, ctx := dial(t, board)

	_, err := client.ListCandidates(ctx, wrapperspb.Int64(1))
	assert.Equal(t, codes.Internal, status.Code(err))
	assert.Equal(t, "internal error", status.Convert(err).Message())
}
