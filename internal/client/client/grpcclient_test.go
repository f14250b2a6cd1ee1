package client

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/dmitrijs2005/profilesync/internal/common"
	pb "github.com/dmitrijs2005/profilesync/internal/proto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

/*************
 * Fake pb client
 *************/

type fakeStream struct {
	grpc.ClientStream
	events []*pb.ProfileEvent
	err    error
}

func (f *fakeStream) Recv() (*pb.ProfileEvent, error) {
	if len(f.events) == 0 {
		if f.err != nil {
			return nil, f.err
		}
		return nil, io.EOF
	}
	ev := f.events[0]
	f.events = f.events[1:]
	return ev, nil
}

type fakePB struct {
	lastCreateReq  *pb.CreateProfileRequest
	lastReplaceReq *pb.ReplaceImageRequest

	pingErr error

	getResp *pb.GetProfileResponse
	getErr  error

	stream    *fakeStream
	streamErr error
}

func (f *fakePB) Ping(ctx context.Context, in *pb.PingRequest, opts ...grpc.CallOption) (*pb.PingResponse, error) {
	return &pb.PingResponse{Status: "OK"}, f.pingErr
}

func (f *fakePB) GetProfile(ctx context.Context, in *pb.GetProfileRequest, opts ...grpc.CallOption) (*pb.GetProfileResponse, error) {
	return f.getResp, f.getErr
}

func (f *fakePB) CreateProfile(ctx context.Context, in *pb.CreateProfileRequest, opts ...grpc.CallOption) (grpc.ServerStreamingClient[pb.ProfileEvent], error) {
	f.lastCreateReq = in
	if f.streamErr != nil {
		return nil, f.streamErr
	}
	return f.stream, nil
}

func (f *fakePB) ReplaceImage(ctx context.Context, in *pb.ReplaceImageRequest, opts ...grpc.CallOption) (grpc.ServerStreamingClient[pb.ProfileEvent], error) {
	f.lastReplaceReq = in
	if f.streamErr != nil {
		return nil, f.streamErr
	}
	return f.stream, nil
}

func newTestClient(f *fakePB) *GRPCClient {
	return &GRPCClient{client: f, accessToken: "tok"}
}

/*************
 * Tests
 *************/

func TestCreateProfile_ForwardsProgressAndReturnsProfile(t *testing.T) {
	f := &fakePB{stream: &fakeStream{events: []*pb.ProfileEvent{
		{Progress: 0.5},
		{Progress: 1},
		{Profile: &pb.Profile{OwnerId: "u1", ImageRef: "http://assets/profileImages/u1"}, ImageRef: "http://assets/profileImages/u1"},
	}}}
	c := newTestClient(f)

	var progress []float64
	fields := &pb.ProfileFields{FirstName: "Ann"}
	image := &pb.Image{Name: "me.jpg", Data: []byte{1}}

	p, err := c.CreateProfile(context.Background(), fields, image, func(v float64) { progress = append(progress, v) })
	require.NoError(t, err)
	assert.Equal(t, "u1", p.GetOwnerId())
	assert.Equal(t, []float64{0.5, 1}, progress)
	assert.Same(t, fields, f.lastCreateReq.GetFields())
	assert.Same(t, image, f.lastCreateReq.GetImage())
}

func TestCreateProfile_StreamError(t *testing.T) {
	f := &fakePB{stream: &fakeStream{
		events: []*pb.ProfileEvent{{Progress: 0.5}},
		err:    status.Error(codes.Unavailable, "upload profileImages/u1 failed: reset"),
	}}

	_, err := newTestClient(f).CreateProfile(context.Background(), nil, nil, nil)
	require.ErrorIs(t, err, ErrUnavailable)
	assert.Contains(t, err.Error(), "reset")
}

func TestReplaceImage_ReturnsRef(t *testing.T) {
	f := &fakePB{stream: &fakeStream{events: []*pb.ProfileEvent{{Progress: 1}, {ImageRef: "ref"}}}}

	ref, err := newTestClient(f).ReplaceImage(context.Background(), &pb.Image{Data: []byte{1}}, nil)
	require.NoError(t, err)
	assert.Equal(t, "ref", ref)
}

func TestReplaceImage_NoResult(t *testing.T) {
	f := &fakePB{stream: &fakeStream{events: []*pb.ProfileEvent{{Progress: 1}}}}

	_, err := newTestClient(f).ReplaceImage(context.Background(), &pb.Image{Data: []byte{1}}, nil)
	require.ErrorIs(t, err, ErrNoResult)
}

func TestGetProfile(t *testing.T) {
	f := &fakePB{getResp: &pb.GetProfileResponse{Profile: &pb.Profile{Id: "doc-1"}}}
	resp, err := newTestClient(f).GetProfile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "doc-1", resp.GetProfile().GetId())

	f.getErr = status.Error(codes.NotFound, "profile of u1: not found")
	_, err = newTestClient(f).GetProfile(context.Background())
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestMapError(t *testing.T) {
	c := &GRPCClient{}

	tests := []struct {
		name string
		err  error
		want error
	}{
		{"unauthenticated", status.Error(codes.Unauthenticated, "token expired"), ErrUnauthorized},
		{"permission", status.Error(codes.PermissionDenied, "no"), ErrUnauthorized},
		{"unavailable", status.Error(codes.Unavailable, "down"), ErrUnavailable},
		{"deadline", status.Error(codes.DeadlineExceeded, "slow"), ErrUnavailable},
		{"invalid", status.Error(codes.InvalidArgument, "validation failed: age is required"), ErrInvalidArgument},
		{"not found", status.Error(codes.NotFound, "nope"), common.ErrNotFound},
		{"busy", status.Error(codes.Aborted, "operation already in progress"), common.ErrBusy},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.ErrorIs(t, c.mapError(tt.err), tt.want)
		})
	}

	assert.NoError(t, c.mapError(nil))

	plain := errors.New("plain")
	assert.Same(t, plain, c.mapError(plain))

	internal := status.Error(codes.Internal, "boom")
	assert.ErrorIs(t, c.mapError(internal), internal)
}

func TestAccessTokenInterceptor_AddsMetadata(t *testing.T) {
	c := &GRPCClient{accessToken: "tok-1"}

	var got []string
	invoker := func(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, opts ...grpc.CallOption) error {
		md, _ := metadata.FromOutgoingContext(ctx)
		got = md.Get(common.AccessTokenHeaderName)
		return nil
	}

	ctx := metadata.AppendToOutgoingContext(context.Background(), common.AccessTokenHeaderName, "stale")
	require.NoError(t, c.accessTokenInterceptor(ctx, "/m", nil, nil, nil, invoker))
	assert.Equal(t, []string{"tok-1"}, got)
}

func TestStreamAccessTokenInterceptor_NoTokenLeavesContext(t *testing.T) {
	c := &GRPCClient{}

	streamer := func(ctx context.Context, desc *grpc.StreamDesc, cc *grpc.ClientConn, method string, opts ...grpc.CallOption) (grpc.ClientStream, error) {
		_, ok := metadata.FromOutgoingContext(ctx)
		assert.False(t, ok)
		return nil, nil
	}

	_, err := c.streamAccessTokenInterceptor(context.Background(), &grpc.StreamDesc{}, nil, "/m", streamer)
	require.NoError(t, err)
}

func TestClose_NoConnection(t *testing.T) {
	assert.NoError(t, (&GRPCClient{}).Close())
}
