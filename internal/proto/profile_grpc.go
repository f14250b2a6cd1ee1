package proto

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	ProfileService_Ping_FullMethodName          = "/profilesync.v1.ProfileService/Ping"
	ProfileService_GetProfile_FullMethodName    = "/profilesync.v1.ProfileService/GetProfile"
	ProfileService_CreateProfile_FullMethodName = "/profilesync.v1.ProfileService/CreateProfile"
	ProfileService_ReplaceImage_FullMethodName  = "/profilesync.v1.ProfileService/ReplaceImage"
)

// ProfileServiceClient is the client API for ProfileService.
type ProfileServiceClient interface {
	Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error)
	GetProfile(ctx context.Context, in *GetProfileRequest, opts ...grpc.CallOption) (*GetProfileResponse, error)
	CreateProfile(ctx context.Context, in *CreateProfileRequest, opts ...grpc.CallOption) (grpc.ServerStreamingClient[ProfileEvent], error)
	ReplaceImage(ctx context.Context, in *ReplaceImageRequest, opts ...grpc.CallOption) (grpc.ServerStreamingClient[ProfileEvent], error)
}

type profileServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewProfileServiceClient(cc grpc.ClientConnInterface) ProfileServiceClient {
	return &profileServiceClient{cc}
}

func callOptions(opts []grpc.CallOption) []grpc.CallOption {
	return append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
}

func (c *profileServiceClient) Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error) {
	out := new(PingResponse)
	err := c.cc.Invoke(ctx, ProfileService_Ping_FullMethodName, in, out, callOptions(opts)...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *profileServiceClient) GetProfile(ctx context.Context, in *GetProfileRequest, opts ...grpc.CallOption) (*GetProfileResponse, error) {
	out := new(GetProfileResponse)
	err := c.cc.Invoke(ctx, ProfileService_GetProfile_FullMethodName, in, out, callOptions(opts)...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *profileServiceClient) CreateProfile(ctx context.Context, in *CreateProfileRequest, opts ...grpc.CallOption) (grpc.ServerStreamingClient[ProfileEvent], error) {
	return c.serverStream(ctx, &ProfileService_ServiceDesc.Streams[0], ProfileService_CreateProfile_FullMethodName, in, opts)
}

func (c *profileServiceClient) ReplaceImage(ctx context.Context, in *ReplaceImageRequest, opts ...grpc.CallOption) (grpc.ServerStreamingClient[ProfileEvent], error) {
	return c.serverStream(ctx, &ProfileService_ServiceDesc.Streams[1], ProfileService_ReplaceImage_FullMethodName, in, opts)
}

func (c *profileServiceClient) serverStream(ctx context.Context, desc *grpc.StreamDesc, method string, in any, opts []grpc.CallOption) (grpc.ServerStreamingClient[ProfileEvent], error) {
	stream, err := c.cc.NewStream(ctx, desc, method, callOptions(opts)...)
	if err != nil {
		return nil, err
	}
	x := &grpc.GenericClientStream[any, ProfileEvent]{ClientStream: stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}

// ProfileServiceServer is the server API for ProfileService.
// Implementations must embed UnimplementedProfileServiceServer.
type ProfileServiceServer interface {
	Ping(context.Context, *PingRequest) (*PingResponse, error)
	GetProfile(context.Context, *GetProfileRequest) (*GetProfileResponse, error)
	CreateProfile(*CreateProfileRequest, grpc.ServerStreamingServer[ProfileEvent]) error
	ReplaceImage(*ReplaceImageRequest, grpc.ServerStreamingServer[ProfileEvent]) error
	mustEmbedUnimplementedProfileServiceServer()
}

type UnimplementedProfileServiceServer struct{}

func (UnimplementedProfileServiceServer) Ping(context.Context, *PingRequest) (*PingResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Ping not implemented")
}
func (UnimplementedProfileServiceServer) GetProfile(context.Context, *GetProfileRequest) (*GetProfileResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetProfile not implemented")
}
func (UnimplementedProfileServiceServer) CreateProfile(*CreateProfileRequest, grpc.ServerStreamingServer[ProfileEvent]) error {
	return status.Errorf(codes.Unimplemented, "method CreateProfile not implemented")
}
func (UnimplementedProfileServiceServer) ReplaceImage(*ReplaceImageRequest, grpc.ServerStreamingServer[ProfileEvent]) error {
	return status.Errorf(codes.Unimplemented, "method ReplaceImage not implemented")
}
func (UnimplementedProfileServiceServer) mustEmbedUnimplementedProfileServiceServer() {}

func RegisterProfileServiceServer(s grpc.ServiceRegistrar, srv ProfileServiceServer) {
	s.RegisterService(&ProfileService_ServiceDesc, srv)
}

func _ProfileService_Ping_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(PingRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ProfileServiceServer).Ping(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: ProfileService_Ping_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ProfileServiceServer).Ping(ctx, req.(*PingRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _ProfileService_GetProfile_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(GetProfileRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ProfileServiceServer).GetProfile(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: ProfileService_GetProfile_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ProfileServiceServer).GetProfile(ctx, req.(*GetProfileRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _ProfileService_CreateProfile_Handler(srv any, stream grpc.ServerStream) error {
	m := new(CreateProfileRequest)
	if err := stream.RecvMsg(m); err != nil {
		return err
	}
	return srv.(ProfileServiceServer).CreateProfile(m, &grpc.GenericServerStream[CreateProfileRequest, ProfileEvent]{ServerStream: stream})
}

func _ProfileService_ReplaceImage_Handler(srv any, stream grpc.ServerStream) error {
	m := new(ReplaceImageRequest)
	if err := stream.RecvMsg(m); err != nil {
		return err
	}
	return srv.(ProfileServiceServer).ReplaceImage(m, &grpc.GenericServerStream[ReplaceImageRequest, ProfileEvent]{ServerStream: stream})
}

// ProfileService_ServiceDesc is the grpc.ServiceDesc for ProfileService.
var ProfileService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "profilesync.v1.ProfileService",
	HandlerType: (*ProfileServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Ping",
			Handler:    _ProfileService_Ping_Handler,
		},
		{
			MethodName: "GetProfile",
			Handler:    _ProfileService_GetProfile_Handler,
		},
	},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "CreateProfile",
			Handler:       _ProfileService_CreateProfile_Handler,
			ServerStreams: true,
		},
		{
			StreamName:    "ReplaceImage",
			Handler:       _ProfileService_ReplaceImage_Handler,
			ServerStreams: true,
		},
	},
	Metadata: "profilesync/v1/profile",
}
