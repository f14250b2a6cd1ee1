package grpc

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/profilesync/internal/logging"
	grpclogging "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// interceptorLogger adapts logging.Logger to the middleware logger.
func interceptorLogger(l logging.Logger) grpclogging.Logger {
	return grpclogging.LoggerFunc(func(ctx context.Context, lvl grpclogging.Level, msg string, fields ...any) {
		switch lvl {
		case grpclogging.LevelDebug:
			l.Debug(ctx, msg, fields...)
		case grpclogging.LevelInfo:
			l.Info(ctx, msg, fields...)
		case grpclogging.LevelWarn:
			l.Warn(ctx, msg, fields...)
		case grpclogging.LevelError:
			l.Error(ctx, msg, fields...)
		default:
			l.Error(ctx, fmt.Sprintf("unknown level %v: %s", lvl, msg), fields...)
		}
	})
}

func (s *GRPCServer) recoverPanic(ctx context.Context, p any) error {
	s.logger.Error(ctx, "Recovered from panic", "panic", fmt.Sprint(p))
	return status.Error(codes.Internal, "internal error")
}
