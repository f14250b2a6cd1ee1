package client

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/dmitrijs2005/profilesync/internal/common"
	pb "github.com/dmitrijs2005/profilesync/internal/proto"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type GRPCClient struct {
	endpointURL string
	conn        *grpc.ClientConn
	client      pb.ProfileServiceClient
	accessToken string
}

func withAccessToken(ctx context.Context, token string) context.Context {
	if token == "" {
		return ctx
	}
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
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
	return invoker(withAccessToken(ctx, s.accessToken), method, req, reply, cc, opts...)
}

func (s *GRPCClient) streamAccessTokenInterceptor(
	ctx context.Context,
	desc *grpc.StreamDesc,
	cc *grpc.ClientConn,
	method string,
	streamer grpc.Streamer,
	opts ...grpc.CallOption,
) (grpc.ClientStream, error) {
	return streamer(withAccessToken(ctx, s.accessToken), desc, cc, method, opts...)
}

func NewProfileClientService(endpointURL, accessToken string) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL, accessToken: accessToken}
	err := c.InitGRPCClient()
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (s *GRPCClient) InitGRPCClient() error {

	conn, err := grpc.NewClient(s.endpointURL,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(s.accessTokenInterceptor),
		grpc.WithStreamInterceptor(s.streamAccessTokenInterceptor),
	)
	if err != nil {
		return err
	}
	s.conn = conn
	s.client = pb.NewProfileServiceClient(conn)
	return nil
}

func (s *GRPCClient) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}

func (s *GRPCClient) Ping(ctx context.Context) error {
	_, err := s.client.Ping(ctx, &pb.PingRequest{})
	return s.mapError(err)
}

func (s *GRPCClient) GetProfile(ctx context.Context) (*pb.GetProfileResponse, error) {
	resp, err := s.client.GetProfile(ctx, &pb.GetProfileRequest{})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

func (s *GRPCClient) CreateProfile(ctx context.Context, fields *pb.ProfileFields, image *pb.Image, onProgress func(float64)) (*pb.Profile, error) {
	stream, err := s.client.CreateProfile(ctx, &pb.CreateProfileRequest{Fields: fields, Image: image})
	if err != nil {
		return nil, s.mapError(err)
	}

	result, err := receive(stream, onProgress)
	if err != nil {
		return nil, s.mapError(err)
	}
	return result.GetProfile(), nil
}

func (s *GRPCClient) ReplaceImage(ctx context.Context, image *pb.Image, onProgress func(float64)) (string, error) {
	stream, err := s.client.ReplaceImage(ctx, &pb.ReplaceImageRequest{Image: image})
	if err != nil {
		return "", s.mapError(err)
	}

	result, err := receive(stream, onProgress)
	if err != nil {
		return "", s.mapError(err)
	}
	return result.GetImageRef(), nil
}

// receive reads the stream to the end, passing progress events to
// onProgress and returning the final result event.
func receive(stream grpc.ServerStreamingClient[pb.ProfileEvent], onProgress func(float64)) (*pb.ProfileEvent, error) {
	var result *pb.ProfileEvent
	for {
		ev, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if ev.GetProfile() != nil || ev.GetImageRef() != "" {
			result = ev
			continue
		}
		if onProgress != nil {
			onProgress(ev.GetProgress())
		}
	}
	if result == nil {
		return nil, ErrNoResult
	}
	return result, nil
}

func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return err
	}
	switch st.Code() {
	case codes.Unauthenticated, codes.PermissionDenied:
		return fmt.Errorf("%w: %s", ErrUnauthorized, st.Message())
	case codes.Unavailable, codes.DeadlineExceeded:
		return fmt.Errorf("%w: %s", ErrUnavailable, st.Message())
	case codes.InvalidArgument:
		return fmt.Errorf("%w: %s", ErrInvalidArgument, st.Message())
	case codes.NotFound:
		return fmt.Errorf("%w: %s", common.ErrNotFound, st.Message())
	case codes.Aborted:
		return fmt.Errorf("%w: %s", common.ErrBusy, st.Message())
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}
