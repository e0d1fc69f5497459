package transport

import (
	"context"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// echoServer answers every method with something derived from its input.
type echoServer struct {
	deleted []int64
}

func (e *echoServer) Ping(context.Context, *emptypb.Empty) (*wrapperspb.StringValue, error) {
	return wrapperspb.String(PingOK), nil
}

func (e *echoServer) GetJob(_ context.Context, in *wrapperspb.Int64Value) (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]any{FieldID: formatID(in.GetValue()), FieldTitle: "t"})
}

func (e *echoServer) ListCandidates(context.Context, *wrapperspb.Int64Value) (*structpb.Struct, error) {
	return nil, status.Error(codes.NotFound, "no job")
}

func (e *echoServer) CreateCandidate(_ context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	return in, nil
}

func (e *echoServer) UpdateStatus(context.Context, *structpb.Struct) (*emptypb.Empty, error) {
	return &emptypb.Empty{}, nil
}

func (e *echoServer) UpdateDetails(context.Context, *structpb.Struct) (*emptypb.Empty, error) {
	return &emptypb.Empty{}, nil
}

func (e *echoServer) DeleteCandidate(_ context.Context, in *wrapperspb.Int64Value) (*emptypb.Empty, error) {
	e.deleted = append(e.deleted, in.GetValue())
	return &emptypb.Empty{}, nil
}

func (e *echoServer) RequestUpload(_ context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	return in, nil
}

func (e *echoServer) SetResume(context.Context, *structpb.Struct) (*emptypb.Empty, error) {
	return &emptypb.Empty{}, nil
}

func dial(t *testing.T, srv BoardServer, opts ...grpc.ServerOption) BoardClient {
	t.Helper()

	lis := bufconn.Listen(1 << 20)
	s := grpc.NewServer(opts...)
	RegisterBoardServer(s, srv)
	go func() { _ = s.Serve(lis) }()
	t.Cleanup(s.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return NewBoardClient(conn)
}

func TestFullMethod(t *testing.T) {
	assert.Equal(t, "/hireboard.v1.BoardService/Ping", FullMethod(MethodPing))
}

func TestServiceDesc_RoundTrip(t *testing.T) {
	srv := &echoServer{}
	c := dial(t, srv)
	ctx := context.Background()

	pong, err := c.Ping(ctx, &emptypb.Empty{})
	require.NoError(t, err)
	assert.Equal(t, PingOK, pong.GetValue())

	job, err := c.GetJob(ctx, wrapperspb.Int64(12))
	require.NoError(t, err)
	assert.Equal(t, "12", job.GetFields()[FieldID].GetStringValue())

	req, err := EncodeUploadRequest(UploadRequest{ScopeID: "1", FileName: "a.pdf"})
	require.NoError(t, err)
	echoed, err := c.RequestUpload(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "a.pdf", echoed.GetFields()[FieldFileName].GetStringValue())

	_, err = c.DeleteCandidate(ctx, wrapperspb.Int64(5))
	require.NoError(t, err)
	assert.Equal(t, []int64{5}, srv.deleted)

	_, err = c.ListCandidates(ctx, wrapperspb.Int64(1))
	assert.Equal(t, codes.NotFound, status.Code(err))
}

func TestServiceDesc_InterceptorSeesFullMethod(t *testing.T) {
	var seen []string
	record := func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		seen = append(seen, info.FullMethod)
		return handler(ctx, req)
	}

	c := dial(t, &echoServer{}, grpc.ChainUnaryInterceptor(record))
	ctx := context.Background()

	_, err := c.Ping(ctx, &emptypb.Empty{})
	require.NoError(t, err)
	_, err = c.UpdateStatus(ctx, &structpb.Struct{})
	require.NoError(t, err)

	assert.Equal(t, []string{FullMethod(MethodPing), FullMethod(MethodUpdateStatus)}, seen)
}
