package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/dmitrijs2005/hireboard/internal/client/board"
	"github.com/dmitrijs2005/hireboard/internal/common"
	"github.com/dmitrijs2005/hireboard/internal/models"
	"github.com/dmitrijs2005/hireboard/internal/netx"
	"github.com/dmitrijs2005/hireboard/internal/transport"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

type GRPCClient struct {
	endpointURL string
	conn        *grpc.ClientConn
	client      transport.BoardClient
	accessToken string
	timeout     time.Duration
	httpClient  *http.Client
}

var _ board.Gateway = (*GRPCClient)(nil)

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Delete(common.AccessTokenHeaderName)
	md.Set(common.AccessTokenHeaderName, token)

	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply any,
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	if s.accessToken != "" {
		ctx = withAccessToken(ctx, s.accessToken)
	}
	return invoker(ctx, method, req, reply, cc, opts...)
}

// NewGRPCClient connects lazily to endpointURL. A zero timeout leaves
// requests bounded only by the caller's context.
func NewGRPCClient(endpointURL, accessToken string, timeout time.Duration) (*GRPCClient, error) {
	c := &GRPCClient{
		endpointURL: endpointURL,
		accessToken: accessToken,
		timeout:     timeout,
		httpClient:  &http.Client{},
	}
	if err := c.InitGRPCClient(); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *GRPCClient) InitGRPCClient(opts ...grpc.DialOption) error {
	opts = append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(s.accessTokenInterceptor),
	}, opts...)

	conn, err := grpc.NewClient(s.endpointURL, opts...)
	if err != nil {
		return err
	}
	s.conn = conn
	s.client = transport.NewBoardClient(conn)
	return nil
}

func (s *GRPCClient) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}

func (s *GRPCClient) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.timeout)
}

func (s *GRPCClient) Ping(ctx context.Context) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.Ping(ctx, &emptypb.Empty{})
	if err != nil {
		return s.mapError(err)
	}

	if resp.GetValue() != transport.PingOK {
		return ErrUnavailable
	}

	return nil
}

func (s *GRPCClient) FetchJob(ctx context.Context, jobID int64) (*models.Job, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.GetJob(ctx, wrapperspb.Int64(jobID))
	if err != nil {
		return nil, s.mapError(err)
	}

	job, err := transport.DecodeJob(resp)
	if err != nil {
		return nil, err
	}
	return &job, nil
}

func (s *GRPCClient) FetchCandidates(ctx context.Context, jobID int64) ([]models.Candidate, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.ListCandidates(ctx, wrapperspb.Int64(jobID))
	if err != nil {
		return nil, s.mapError(err)
	}
	return transport.DecodeCandidates(resp)
}

func (s *GRPCClient) InsertCandidate(ctx context.Context, fields models.NewCandidate) (*models.Candidate, error) {
	req, err := transport.EncodeNewCandidate(fields)
	if err != nil {
		return nil, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.CreateCandidate(ctx, req)
	if err != nil {
		return nil, s.mapError(err)
	}

	c, err := transport.DecodeCandidate(resp)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *GRPCClient) UpdateCandidateStatus(ctx context.Context, id int64, stage models.Stage) error {
	req, err := transport.EncodeStatus(id, stage)
	if err != nil {
		return err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	_, err = s.client.UpdateStatus(ctx, req)
	return s.mapError(err)
}

func (s *GRPCClient) UpdateCandidateDetails(ctx context.Context, id int64, details models.CandidateDetails) error {
	req, err := transport.EncodeDetails(id, details)
	if err != nil {
		return err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	_, err = s.client.UpdateDetails(ctx, req)
	return s.mapError(err)
}

func (s *GRPCClient) DeleteCandidate(ctx context.Context, id int64) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	_, err := s.client.DeleteCandidate(ctx, wrapperspb.Int64(id))
	return s.mapError(err)
}

// UploadFile asks the server for a presigned PUT URL, sends data straight
// to object storage and returns the URL the file is served from.
func (s *GRPCClient) UploadFile(ctx context.Context, scopeID string, fileName string, data []byte) (string, error) {
	contentType := netx.ContentType(fileName)

	req, err := transport.EncodeUploadRequest(transport.UploadRequest{ScopeID: scopeID, FileName: fileName, ContentType: contentType})
	if err != nil {
		return "", err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.RequestUpload(ctx, req)
	if err != nil {
		return "", s.mapError(err)
	}

	ticket, err := transport.DecodeUploadTicket(resp)
	if err != nil {
		return "", err
	}

	if err := netx.UploadToPresignedURL(ctx, s.httpClient, ticket.UploadURL, data, contentType); err != nil {
		return "", err
	}

	return ticket.PublicURL, nil
}

func (s *GRPCClient) SetCandidateResume(ctx context.Context, id int64, url string) error {
	req, err := transport.EncodeResume(id, url)
	if err != nil {
		return err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	_, err = s.client.SetResume(ctx, req)
	return s.mapError(err)
}

func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, _ := status.FromError(err)
	switch st.Code() {
	case codes.Unauthenticated, codes.PermissionDenied:
		if st.Message() == common.ErrTokenExpired.Error() {
			return fmt.Errorf("%w: %w", ErrUnauthorized, common.ErrTokenExpired)
		}
		return ErrUnauthorized
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	case codes.NotFound:
		return fmt.Errorf("%w: %s", common.ErrorNotFound, st.Message())
	case codes.InvalidArgument:
		return fmt.Errorf("%w: %s", common.ErrorValidation, st.Message())
	default:
		if errors.Is(err, context.DeadlineExceeded) {
			return ErrUnavailable
		}
		return fmt.Errorf("rpc error: %w", err)
	}
}
