package grpc

import (
	"context"

	"github.com/dmitrijs2005/profilesync/internal/common"
	pb "github.com/dmitrijs2005/profilesync/internal/proto"
	"github.com/dmitrijs2005/profilesync/internal/server/auth"
	middleware "github.com/grpc-ecosystem/go-grpc-middleware/v2"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
)

type ctxKey string

const identityKey ctxKey = "identity"

// publicMethods are served without an access token.
var publicMethods = map[string]bool{
	pb.ProfileService_Ping_FullMethodName: true,
}

func (s *GRPCServer) accessTokenInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	if publicMethods[info.FullMethod] {
		return handler(ctx, req)
	}

	ctx, err := s.authenticate(ctx)
	if err != nil {
		return nil, toStatus(err)
	}

	return handler(ctx, req)
}

func (s *GRPCServer) streamAccessTokenInterceptor(srv any, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
	if publicMethods[info.FullMethod] {
		return handler(srv, ss)
	}

	ctx, err := s.authenticate(ss.Context())
	if err != nil {
		return toStatus(err)
	}

	wrapped := middleware.WrapServerStream(ss)
	wrapped.WrappedContext = ctx
	return handler(srv, wrapped)
}

// authenticate reads the access token from incoming metadata and stores
// the caller identity in the returned context.
func (s *GRPCServer) authenticate(ctx context.Context) (context.Context, error) {
	var accessToken string
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		values := md.Get(common.AccessTokenHeaderName)
		if len(values) > 0 {
			accessToken = values[0]
		}
	}
	if len(accessToken) == 0 {
		return ctx, common.ErrUnauthorized
	}

	id, err := auth.ParseToken(accessToken, s.jwtSecret)
	if err != nil {
		return ctx, err
	}

	return context.WithValue(ctx, identityKey, id), nil
}

func identityFromContext(ctx context.Context) (auth.Identity, bool) {
	id, ok := ctx.Value(identityKey).(auth.Identity)
	return id, ok
}
