package grpc

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/profilesync/internal/common"
	"github.com/dmitrijs2005/profilesync/internal/logging"
	pb "github.com/dmitrijs2005/profilesync/internal/proto"
	"github.com/dmitrijs2005/profilesync/internal/server/auth"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// helper to build server
func newTestServer(secret string) *GRPCServer {
	return NewGRPCServer("", logging.Nop{}, &fakeProfiles{}, nil, secret)
}

func tokenContext(t *testing.T, secret string, id auth.Identity, ttl time.Duration) context.Context {
	t.Helper()
	tok, err := auth.GenerateToken(id, []byte(secret), ttl)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	md := metadata.New(map[string]string{common.AccessTokenHeaderName: tok})
	return metadata.NewIncomingContext(context.Background(), md)
}

func TestInterceptor_Ping_AllowsWithoutToken(t *testing.T) {
	s := newTestServer("secret")

	info := &grpc.UnaryServerInfo{FullMethod: pb.ProfileService_Ping_FullMethodName}
	handlerCalled := false

	h := func(ctx context.Context, req any) (any, error) {
		handlerCalled = true
		return "ok", nil
	}

	resp, err := s.accessTokenInterceptor(context.Background(), nil, info, h)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !handlerCalled {
		t.Fatal("handler was not called")
	}
	if resp != "ok" {
		t.Fatalf("unexpected handler resp: %v", resp)
	}
}

func TestInterceptor_MissingToken(t *testing.T) {
	s := newTestServer("secret")

	info := &grpc.UnaryServerInfo{FullMethod: pb.ProfileService_GetProfile_FullMethodName}

	h := func(ctx context.Context, req any) (any, error) {
		t.Fatal("handler should not be called when token missing")
		return nil, nil
	}

	_, err := s.accessTokenInterceptor(context.Background(), nil, info, h)
	if status.Code(err) != codes.Unauthenticated {
		t.Fatalf("expected Unauthenticated, got %v", status.Code(err))
	}
}

func TestInterceptor_InvalidToken(t *testing.T) {
	s := newTestServer("secret")

	md := metadata.New(map[string]string{
		common.AccessTokenHeaderName: "not-a-valid-jwt",
	})
	ctx := metadata.NewIncomingContext(context.Background(), md)
	info := &grpc.UnaryServerInfo{FullMethod: pb.ProfileService_GetProfile_FullMethodName}

	h := func(ctx context.Context, req any) (any, error) {
		t.Fatal("handler should not be called on invalid token")
		return nil, nil
	}

	_, err := s.accessTokenInterceptor(ctx, nil, info, h)
	if status.Code(err) != codes.Unauthenticated {
		t.Fatalf("expected Unauthenticated, got %v", status.Code(err))
	}
}

func TestInterceptor_ExpiredToken(t *testing.T) {
	s := newTestServer("secret")

	ctx := tokenContext(t, "secret", auth.Identity{OwnerID: "u1"}, -time.Second)
	info := &grpc.UnaryServerInfo{FullMethod: pb.ProfileService_GetProfile_FullMethodName}

	_, err := s.accessTokenInterceptor(ctx, nil, info, func(ctx context.Context, req any) (any, error) {
		t.Fatal("handler should not be called on expired token")
		return nil, nil
	})
	if status.Code(err) != codes.Unauthenticated {
		t.Fatalf("expected Unauthenticated, got %v", status.Code(err))
	}
	if msg := status.Convert(err).Message(); msg != common.ErrTokenExpired.Error() {
		t.Fatalf("unexpected message %q", msg)
	}
}

func TestInterceptor_ValidToken_PutsIdentityInContext(t *testing.T) {
	s := newTestServer("secret")

	want := auth.Identity{OwnerID: "u1", Email: "ann@x.io"}
	ctx := tokenContext(t, "secret", want, time.Hour)
	info := &grpc.UnaryServerInfo{FullMethod: pb.ProfileService_GetProfile_FullMethodName}

	var got auth.Identity
	h := func(ctx context.Context, req any) (any, error) {
		id, ok := identityFromContext(ctx)
		if !ok {
			t.Fatal("identity missing from context")
		}
		got = id
		return "ok", nil
	}

	if _, err := s.accessTokenInterceptor(ctx, nil, info, h); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != want {
		t.Fatalf("identity = %+v, want %+v", got, want)
	}
}

type fakeServerStream struct {
	grpc.ServerStream
	ctx context.Context
}

func (f *fakeServerStream) Context() context.Context { return f.ctx }

func TestStreamInterceptor(t *testing.T) {
	s := newTestServer("secret")
	info := &grpc.StreamServerInfo{FullMethod: pb.ProfileService_ReplaceImage_FullMethodName, IsServerStream: true}

	err := s.streamAccessTokenInterceptor(nil, &fakeServerStream{ctx: context.Background()}, info, func(srv any, ss grpc.ServerStream) error {
		t.Fatal("handler should not be called when token missing")
		return nil
	})
	if status.Code(err) != codes.Unauthenticated {
		t.Fatalf("expected Unauthenticated, got %v", status.Code(err))
	}

	ctx := tokenContext(t, "secret", auth.Identity{OwnerID: "u7"}, time.Hour)
	err = s.streamAccessTokenInterceptor(nil, &fakeServerStream{ctx: ctx}, info, func(srv any, ss grpc.ServerStream) error {
		id, ok := identityFromContext(ss.Context())
		if !ok || id.OwnerID != "u7" {
			t.Fatalf("unexpected identity %+v (ok=%v)", id, ok)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
