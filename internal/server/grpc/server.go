package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/profilesync/internal/logging"
	pb "github.com/dmitrijs2005/profilesync/internal/proto"
	"github.com/dmitrijs2005/profilesync/internal/server/inflight"
	"github.com/dmitrijs2005/profilesync/internal/server/models"
	"github.com/dmitrijs2005/profilesync/internal/server/upload"
	grpclogging "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"
	"google.golang.org/grpc"
)

// ProfileService is the business layer behind the gRPC API.
// *services.ProfileService implements it.
type ProfileService interface {
	CreateProfile(ctx context.Context, ownerID, email string, fields models.ProfileFields, image *upload.Payload, onProgress func(float64)) (*models.ProfileRecord, error)
	FetchProfile(ctx context.Context, ownerID string) (*models.ProfileView, error)
	ReplaceImage(ctx context.Context, ownerID string, p upload.Payload, onProgress func(float64)) (string, error)
}

type GRPCServer struct {
	pb.UnimplementedProfileServiceServer
	address   string
	profiles  ProfileService
	guard     inflight.Guard
	logger    logging.Logger
	jwtSecret []byte
}

func NewGRPCServer(a string, l logging.Logger, ps ProfileService, g inflight.Guard, secretKey string) *GRPCServer {
	if g == nil {
		g = inflight.NewMemoryGuard()
	}
	return &GRPCServer{
		address:   a,
		logger:    l.With("module", "grpc_server"),
		profiles:  ps,
		guard:     g,
		jwtSecret: []byte(secretKey),
	}
}

// newServer builds a grpc.Server with the interceptor chain and the
// profile service registered.
func (s *GRPCServer) newServer() *grpc.Server {
	recoveryOpt := recovery.WithRecoveryHandlerContext(s.recoverPanic)
	logger := interceptorLogger(s.logger)
	logOpt := grpclogging.WithLogOnEvents(grpclogging.FinishCall)

	srv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			recovery.UnaryServerInterceptor(recoveryOpt),
			grpclogging.UnaryServerInterceptor(logger, logOpt),
			s.accessTokenInterceptor,
		),
		grpc.ChainStreamInterceptor(
			recovery.StreamServerInterceptor(recoveryOpt),
			grpclogging.StreamServerInterceptor(logger, logOpt),
			s.streamAccessTokenInterceptor,
		),
	)

	pb.RegisterProfileServiceServer(srv, s)
	return srv
}

func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	return s.serve(ctx, listen)
}

func (s *GRPCServer) serve(ctx context.Context, listen net.Listener) error {
	srv := s.newServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", listen.Addr().String())

	// starts accepting incoming connections
	if err := srv.Serve(listen); err != nil {
		return err
	}

	return nil
}
