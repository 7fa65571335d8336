package repomanager

import (
	"context"
	"database/sql"

	"github.com/vpopov/authgate/internal/dbx"
	"github.com/vpopov/authgate/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a particular database handle
// (connection pool or transaction) and owns schema migrations.
type RepositoryManager interface {
	RunMigrations(ctx context.Context, db *sql.DB) error
	Users(db dbx.DBTX) users.Repository
}
