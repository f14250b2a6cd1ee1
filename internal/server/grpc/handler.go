package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/profilesync/internal/common"
	"github.com/dmitrijs2005/profilesync/internal/logging"
	pb "github.com/dmitrijs2005/profilesync/internal/proto"
	"github.com/dmitrijs2005/profilesync/internal/server/models"
	"github.com/dmitrijs2005/profilesync/internal/server/upload"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/timestamppb"
)

func (s *GRPCServer) Ping(ctx context.Context, req *pb.PingRequest) (*pb.PingResponse, error) {

	return &pb.PingResponse{Status: "OK"}, nil

}

func (s *GRPCServer) GetProfile(ctx context.Context, req *pb.GetProfileRequest) (*pb.GetProfileResponse, error) {

	id, ok := identityFromContext(ctx)
	if !ok {
		return nil, toStatus(common.ErrUnauthorized)
	}

	view, err := s.profiles.FetchProfile(ctx, id.OwnerID)
	if err != nil {
		return nil, toStatus(err)
	}

	resp := &pb.GetProfileResponse{Profile: profileToProto(view.Profile)}
	if view.ImageErr != nil {
		resp.ImageError = view.ImageErr.Error()
	}
	return resp, nil

}

// CreateProfile streams upload progress, then one event with the stored
// profile. At most one create or replace runs per owner at a time.
func (s *GRPCServer) CreateProfile(req *pb.CreateProfileRequest, stream grpc.ServerStreamingServer[pb.ProfileEvent]) error {
	ctx := stream.Context()

	id, ok := identityFromContext(ctx)
	if !ok {
		return toStatus(common.ErrUnauthorized)
	}

	release, err := s.guard.Acquire(ctx, id.OwnerID)
	if err != nil {
		return toStatus(err)
	}
	defer release()

	var image *upload.Payload
	if img := req.GetImage(); len(img.GetData()) > 0 {
		p := imageToPayload(img)
		image = &p
	}

	rec, err := s.profiles.CreateProfile(ctx, id.OwnerID, id.Email, fieldsFromProto(req.GetFields()), image, s.progressSender(ctx, stream))
	if err != nil {
		return toStatus(err)
	}

	return stream.Send(&pb.ProfileEvent{Profile: profileToProto(rec), ImageRef: rec.ImageRef})
}

// ReplaceImage streams upload progress, then one event with the new image reference.
func (s *GRPCServer) ReplaceImage(req *pb.ReplaceImageRequest, stream grpc.ServerStreamingServer[pb.ProfileEvent]) error {
	ctx := stream.Context()

	id, ok := identityFromContext(ctx)
	if !ok {
		return toStatus(common.ErrUnauthorized)
	}

	release, err := s.guard.Acquire(ctx, id.OwnerID)
	if err != nil {
		return toStatus(err)
	}
	defer release()

	ref, err := s.profiles.ReplaceImage(ctx, id.OwnerID, imageToPayload(req.GetImage()), s.progressSender(ctx, stream))
	if err != nil {
		return toStatus(err)
	}

	return stream.Send(&pb.ProfileEvent{ImageRef: ref})
}

// progressSender forwards progress values to the stream until the first
// send fails; the upload itself is stopped by the stream context.
func (s *GRPCServer) progressSender(ctx context.Context, stream grpc.ServerStreamingServer[pb.ProfileEvent]) func(float64) {
	var sendErr error
	return func(v float64) {
		if sendErr != nil {
			return
		}
		if sendErr = stream.Send(&pb.ProfileEvent{Progress: v}); sendErr != nil {
			s.logger.Warn(ctx, "progress not delivered", logging.Err(sendErr))
		}
	}
}

// toStatus maps service errors to gRPC status errors.
func toStatus(err error) error {
	var (
		ve *common.ValidationError
		ue *common.UploadError
		se *common.StorageError
	)
	switch {
	case errors.As(err, &ve):
		return status.Error(codes.InvalidArgument, ve.Error())
	case errors.Is(err, common.ErrUnauthorized),
		errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrTokenExpired):
		return status.Error(codes.Unauthenticated, err.Error())
	case errors.Is(err, common.ErrBusy):
		return status.Error(codes.Aborted, err.Error())
	case errors.Is(err, common.ErrInvalidPayload):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	case errors.Is(err, common.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.As(err, &ue):
		return status.Error(codes.Unavailable, ue.Error())
	case errors.As(err, &se):
		return status.Error(codes.Internal, "storage "+se.Op+" failed")
	default:
		return status.Error(codes.Internal, "internal error")
	}
}

func fieldsFromProto(f *pb.ProfileFields) models.ProfileFields {
	return models.ProfileFields{
		FirstName:  f.GetFirstName(),
		LastName:   f.GetLastName(),
		Address:    f.GetAddress(),
		Profession: f.GetProfession(),
		Age:        f.GetAge(),
	}
}

func imageToPayload(img *pb.Image) upload.Payload {
	return upload.BytesPayload(img.GetName(), img.GetContentType(), img.GetData())
}

func profileToProto(rec *models.ProfileRecord) *pb.Profile {
	if rec == nil {
		return nil
	}
	p := &pb.Profile{
		Id:      rec.ID,
		OwnerId: rec.OwnerID,
		Fields: &pb.ProfileFields{
			FirstName:  rec.FirstName,
			LastName:   rec.LastName,
			Address:    rec.Address,
			Profession: rec.Profession,
			Age:        rec.Age,
		},
		Email:    rec.Email,
		ImageRef: rec.ImageRef,
	}
	if !rec.CreatedAt.IsZero() {
		p.CreatedAt = timestamppb.New(rec.CreatedAt)
	}
	return p
}
