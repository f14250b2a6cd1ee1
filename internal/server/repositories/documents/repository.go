package documents

import (
	"context"
	"encoding/json"

	"github.com/dmitrijs2005/profilesync/internal/server/models"
)

// Repository is the record store: schemaless documents grouped in
// collections, addressed by generated ids.
type Repository interface {
	Insert(ctx context.Context, collection string, body json.RawMessage) (*models.Document, error)
	QueryEqual(ctx context.Context, collection, field, value string) ([]*models.Document, error)
	Update(ctx context.Context, collection, id string, body json.RawMessage) error
}
