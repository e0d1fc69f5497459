package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/hireboard/internal/common"
	"github.com/dmitrijs2005/hireboard/internal/transport"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// toStatus maps service errors onto gRPC codes. Internal errors keep their
// text out of the reply.
func toStatus(err error) error {
	switch {
	case errors.Is(err, common.ErrorNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, common.ErrorValidation),
		errors.Is(err, common.ErrInvalidStage),
		errors.Is(err, common.ErrUnsupportedFile),
		errors.Is(err, common.ErrEmptyFile):
		return status.Error(codes.InvalidArgument, err.Error())
	default:
		return status.Error(codes.Internal, "internal error")
	}
}

func (s *GRPCServer) Ping(ctx context.Context, _ *emptypb.Empty) (*wrapperspb.StringValue, error) {
	return wrapperspb.String(transport.PingOK), nil
}

func (s *GRPCServer) GetJob(ctx context.Context, req *wrapperspb.Int64Value) (*structpb.Struct, error) {
	job, err := s.board.GetJob(ctx, req.GetValue())
	if err != nil {
		return nil, toStatus(err)
	}
	return transport.EncodeJob(*job)
}

func (s *GRPCServer) ListCandidates(ctx context.Context, req *wrapperspb.Int64Value) (*structpb.Struct, error) {
	list, err := s.board.ListCandidates(ctx, req.GetValue())
	if err != nil {
		return nil, toStatus(err)
	}
	return transport.EncodeCandidates(list)
}

func (s *GRPCServer) CreateCandidate(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	n, err := transport.DecodeNewCandidate(req)
	if err != nil {
		return nil, toStatus(err)
	}

	created, err := s.board.CreateCandidate(ctx, n)
	if err != nil {
		return nil, toStatus(err)
	}

	s.logger.Info(ctx, "Candidate created", "candidate_id", created.ID, "user_id", ctx.Value(UserIDKey))
	return transport.EncodeCandidate(*created)
}

func (s *GRPCServer) UpdateStatus(ctx context.Context, req *structpb.Struct) (*emptypb.Empty, error) {
	id, stage, err := transport.DecodeStatus(req)
	if err != nil {
		return nil, toStatus(err)
	}
	if err := s.board.UpdateStatus(ctx, id, stage); err != nil {
		return nil, toStatus(err)
	}
	return &emptypb.Empty{}, nil
}

func (s *GRPCServer) UpdateDetails(ctx context.Context, req *structpb.Struct) (*emptypb.Empty, error) {
	id, d, err := transport.DecodeDetails(req)
	if err != nil {
		return nil, toStatus(err)
	}
	if err := s.board.UpdateDetails(ctx, id, d); err != nil {
		return nil, toStatus(err)
	}
	return &emptypb.Empty{}, nil
}

func (s *GRPCServer) DeleteCandidate(ctx context.Context, req *wrapperspb.Int64Value) (*emptypb.Empty, error) {
	if err := s.board.DeleteCandidate(ctx, req.GetValue()); err != nil {
		return nil, toStatus(err)
	}
	s.logger.Info(ctx, "Candidate deleted", "candidate_id", req.GetValue(), "user_id", ctx.Value(UserIDKey))
	return &emptypb.Empty{}, nil
}

func (s *GRPCServer) RequestUpload(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	r, err := transport.DecodeUploadRequest(req)
	if err != nil {
		return nil, toStatus(err)
	}

	ticket, err := s.board.RequestUpload(ctx, r.ScopeID, r.FileName, r.ContentType)
	if err != nil {
		return nil, toStatus(err)
	}
	return transport.EncodeUploadTicket(*ticket)
}

func (s *GRPCServer) SetResume(ctx context.Context, req *structpb.Struct) (*emptypb.Empty, error) {
	id, url, err := transport.DecodeResume(req)
	if err != nil {
		return nil, toStatus(err)
	}
	if err := s.board.SetResume(ctx, id, url); err != nil {
		return nil, toStatus(err)
	}
	return &emptypb.Empty{}, nil
}
