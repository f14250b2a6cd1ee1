package services

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/profilesync/internal/common"
	"github.com/dmitrijs2005/profilesync/internal/logging"
)

// Event names the operation a notification is about.
type Event string

const (
	EventProfileCreated Event = "profile_created"
	EventImageReplaced  Event = "image_replaced"
)

// Notifier receives the outcome of profile writes, e.g. to show the user
// a success or failure message.
type Notifier interface {
	Succeeded(ctx context.Context, ownerID string, event Event)
	Failed(ctx context.Context, ownerID string, event Event, err error)
}

// LogNotifier reports outcomes to a logger.
type LogNotifier struct {
	Logger logging.Logger
}

func (n LogNotifier) Succeeded(ctx context.Context, ownerID string, event Event) {
	n.Logger.Info(ctx, "profile operation succeeded", "owner_id", ownerID, "event", string(event))
}

func (n LogNotifier) Failed(ctx context.Context, ownerID string, event Event, err error) {
	args := []any{"owner_id", ownerID, "event", string(event), "kind", common.Kind(err), logging.Err(err)}

	var ve *common.ValidationError
	if errors.As(err, &ve) {
		args = append(args, "field", ve.Field)
	}
	n.Logger.Warn(ctx, "profile operation failed", args...)
}
