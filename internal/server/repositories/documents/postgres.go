// Package documents implements the record store on a PostgreSQL JSONB table.
package documents

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/profilesync/internal/common"
	"github.com/dmitrijs2005/profilesync/internal/dbx"
	"github.com/dmitrijs2005/profilesync/internal/server/models"
	"github.com/google/uuid"
)

// newID is a seam for deterministic ids in tests.
var newID = uuid.NewString

// PostgresRepository implements Repository over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Insert stores body under a fresh id. The creation timestamp is assigned
// by the database.
func (r *PostgresRepository) Insert(ctx context.Context, collection string, body json.RawMessage) (*models.Document, error) {
	query := `INSERT INTO documents (id, collection, body) VALUES ($1, $2, $3) RETURNING created_at`

	doc := &models.Document{ID: newID(), Collection: collection, Body: body}
	if err := r.db.QueryRowContext(ctx, query, doc.ID, collection, string(body)).Scan(&doc.CreatedAt); err != nil {
		return nil, fmt.Errorf("failed to insert document: %w", err)
	}
	return doc, nil
}

// QueryEqual returns the documents of collection whose top-level field
// equals value, oldest first. Ties on created_at are broken by id so the
// order is stable.
func (r *PostgresRepository) QueryEqual(ctx context.Context, collection, field, value string) ([]*models.Document, error) {
	query := `SELECT id, collection, body, created_at FROM documents
		WHERE collection = $1 AND body->>$2 = $3
		ORDER BY created_at, id`

	rows, err := r.db.QueryContext(ctx, query, collection, field, value)
	if err != nil {
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}
	defer rows.Close()

	var result []*models.Document
	for rows.Next() {
		var (
			item models.Document
			body []byte
		)
		if err := rows.Scan(&item.ID, &item.Collection, &body, &item.CreatedAt); err != nil {
			return nil, err
		}
		item.Body = json.RawMessage(body)
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Update replaces the body of an existing document. common.ErrNotFound is
// returned when no document with that id exists in the collection.
func (r *PostgresRepository) Update(ctx context.Context, collection, id string, body json.RawMessage) error {
	query := `UPDATE documents SET body = $3 WHERE collection = $1 AND id = $2`

	res, err := r.db.ExecContext(ctx, query, collection, id, string(body))
	if err != nil {
		return fmt.Errorf("failed to update document: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	switch n {
	case 1:
		return nil
	case 0:
		return common.ErrNotFound
	default:
		return fmt.Errorf("unexpected rows affected: %d", n)
	}
}
