package client

import (
	"context"

	pb "github.com/dmitrijs2005/profilesync/internal/proto"
)

type Client interface {
	Close() error
	Ping(ctx context.Context) error
	GetProfile(ctx context.Context) (*pb.GetProfileResponse, error)
	CreateProfile(ctx context.Context, fields *pb.ProfileFields, image *pb.Image, onProgress func(float64)) (*pb.Profile, error)
	ReplaceImage(ctx context.Context, image *pb.Image, onProgress func(float64)) (string, error)
}
