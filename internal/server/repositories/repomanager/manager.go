package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/profilesync/internal/dbx"
	"github.com/dmitrijs2005/profilesync/internal/server/repositories/documents"
)

// RepositoryManager vends repositories bound to a pool or a transaction
// and owns schema migrations.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Documents(db dbx.DBTX) documents.Repository
}
