package transport

import (
	"context"

	"github.com/dmitrijs2005/hireboard/internal/common"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// Method names of the board service.
const (
	MethodPing            = "Ping"
	MethodGetJob          = "GetJob"
	MethodListCandidates  = "ListCandidates"
	MethodCreateCandidate = "CreateCandidate"
	MethodUpdateStatus    = "UpdateStatus"
	MethodUpdateDetails   = "UpdateDetails"
	MethodDeleteCandidate = "DeleteCandidate"
	MethodRequestUpload   = "RequestUpload"
	MethodSetResume       = "SetResume"
)

// PingOK is the Ping reply of a healthy server.
const PingOK = "OK"

// FullMethod returns the gRPC method path, e.g. /hireboard.v1.BoardService/Ping.
func FullMethod(name string) string {
	return "/" + common.ServiceName + "/" + name
}

// BoardServer is implemented by the server side of the board service.
type BoardServer interface {
	Ping(context.Context, *emptypb.Empty) (*wrapperspb.StringValue, error)
	GetJob(context.Context, *wrapperspb.Int64Value) (*structpb.Struct, error)
	ListCandidates(context.Context, *wrapperspb.Int64Value) (*structpb.Struct, error)
	CreateCandidate(context.Context, *structpb.Struct) (*structpb.Struct, error)
	UpdateStatus(context.Context, *structpb.Struct) (*emptypb.Empty, error)
	UpdateDetails(context.Context, *structpb.Struct) (*emptypb.Empty, error)
	DeleteCandidate(context.Context, *wrapperspb.Int64Value) (*emptypb.Empty, error)
	RequestUpload(context.Context, *structpb.Struct) (*structpb.Struct, error)
	SetResume(context.Context, *structpb.Struct) (*emptypb.Empty, error)
}

// unary builds a method descriptor that decodes the request into a fresh
// Req and dispatches to call, going through the server's interceptor chain.
func unary[Req, Resp any](name string, call func(BoardServer, context.Context, *Req) (Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				resp, err := call(srv.(BoardServer), ctx, in)
				return resp, err
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: FullMethod(name)}
			handler := func(ctx context.Context, req any) (any, error) {
				resp, err := call(srv.(BoardServer), ctx, req.(*Req))
				return resp, err
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// BoardServiceDesc describes the board service for grpc.Server.
var BoardServiceDesc = grpc.ServiceDesc{
	ServiceName: common.ServiceName,
	HandlerType: (*BoardServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(MethodPing, BoardServer.Ping),
		unary(MethodGetJob, BoardServer.GetJob),
		unary(MethodListCandidates, BoardServer.ListCandidates),
		unary(MethodCreateCandidate, BoardServer.CreateCandidate),
		unary(MethodUpdateStatus, BoardServer.UpdateStatus),
		unary(MethodUpdateDetails, BoardServer.UpdateDetails),
		unary(MethodDeleteCandidate, BoardServer.DeleteCandidate),
		unary(MethodRequestUpload, BoardServer.RequestUpload),
		unary(MethodSetResume, BoardServer.SetResume),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "hireboard/v1/board",
}

func RegisterBoardServer(s grpc.ServiceRegistrar, srv BoardServer) {
	s.RegisterService(&BoardServiceDesc, srv)
}

// BoardClient is the client side of the board service.
type BoardClient interface {
	Ping(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*wrapperspb.StringValue, error)
	GetJob(ctx context.Context, in *wrapperspb.Int64Value, opts ...grpc.CallOption) (*structpb.Struct, error)
	ListCandidates(ctx context.Context, in *wrapperspb.Int64Value, opts ...grpc.CallOption) (*structpb.Struct, error)
	CreateCandidate(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	UpdateStatus(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*emptypb.Empty, error)
	UpdateDetails(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*emptypb.Empty, error)
	DeleteCandidate(ctx context.Context, in *wrapperspb.Int64Value, opts ...grpc.CallOption) (*emptypb.Empty, error)
	RequestUpload(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	SetResume(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*emptypb.Empty, error)
}

type boardClient struct {
	cc grpc.ClientConnInterface
}

func NewBoardClient(cc grpc.ClientConnInterface) BoardClient {
	return &boardClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	if err := cc.Invoke(ctx, FullMethod(method), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *boardClient) Ping(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*wrapperspb.StringValue, error) {
	return invoke[wrapperspb.StringValue](ctx, c.cc, MethodPing, in, opts)
}

func (c *boardClient) GetJob(ctx context.Context, in *wrapperspb.Int64Value, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return invoke[structpb.Struct](ctx, c.cc, MethodGetJob, in, opts)
}

func (c *boardClient) ListCandidates(ctx context.Context, in *wrapperspb.Int64Value, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return invoke[structpb.Struct](ctx, c.cc, MethodListCandidates, in, opts)
}

func (c *boardClient) CreateCandidate(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return invoke[structpb.Struct](ctx, c.cc, MethodCreateCandidate, in, opts)
}

func (c *boardClient) UpdateStatus(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	return invoke[emptypb.Empty](ctx, c.cc, MethodUpdateStatus, in, opts)
}

func (c *boardClient) UpdateDetails(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	return invoke[emptypb.Empty](ctx, c.cc, MethodUpdateDetails, in, opts)
}

func (c *boardClient) DeleteCandidate(ctx context.Context, in *wrapperspb.Int64Value, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	return invoke[emptypb.Empty](ctx, c.cc, MethodDeleteCandidate, in, opts)
}

func (c *boardClient) RequestUpload(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return invoke[structpb.Struct](ctx, c.cc, MethodRequestUpload, in, opts)
}

func (c *boardClient) SetResume(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	return invoke[emptypb.Empty](ctx, c.cc, MethodSetResume, in, opts)
}
