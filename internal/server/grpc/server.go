// Package grpc exposes the board service over gRPC.
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/hireboard/internal/logging"
	"github.com/dmitrijs2005/hireboard/internal/models"
	"github.com/dmitrijs2005/hireboard/internal/transport"
	"google.golang.org/grpc"
)

// boardSvc is the part of services.BoardService the handlers use.
type boardSvc interface {
	GetJob(ctx context.Context, id int64) (*models.Job, error)
	ListCandidates(ctx context.Context, jobID int64) ([]models.Candidate, error)
	CreateCandidate(ctx context.Context, n models.NewCandidate) (*models.Candidate, error)
	UpdateStatus(ctx context.Context, id int64, stage models.Stage) error
	UpdateDetails(ctx context.Context, id int64, d models.CandidateDetails) error
	SetResume(ctx context.Context, id int64, cvURL string) error
	DeleteCandidate(ctx context.Context, id int64) error
	RequestUpload(ctx context.Context, scopeID, fileName, contentType string) (*models.UploadTicket, error)
}

type GRPCServer struct {
	address   string
	board     boardSvc
	logger    logging.Logger
	jwtSecret []byte
}

var _ transport.BoardServer = (*GRPCServer)(nil)

func NewGRPCServer(a string, l logging.Logger, board boardSvc, secretKey string) *GRPCServer {
	return &GRPCServer{
		address:   a,
		logger:    l.With("module", "grpc_server"),
		board:     board,
		jwtSecret: []byte(secretKey),
	}
}

// newServer builds the grpc.Server with the interceptor chain and the board
// service registered.
func (s *GRPCServer) newServer(opts ...grpc.ServerOption) *grpc.Server {
	opts = append(opts, grpc.ChainUnaryInterceptor(s.loggingInterceptor, s.accessTokenInterceptor))
	srv := grpc.NewServer(opts...)
	transport.RegisterBoardServer(srv, s)
	return srv
}

func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := s.newServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", s.address)

	// starts accepting incoming connections
	if err := srv.Serve(listen); err != nil {
		return err
	}

	return nil
}
