package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/journalkeeper/internal/dbx"
	"github.com/dmitrijs2005/journalkeeper/internal/server/repositories/eventtypes"
	"github.com/dmitrijs2005/journalkeeper/internal/server/repositories/journalentries"
	"github.com/dmitrijs2005/journalkeeper/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a DBTX, so the same
// repository code runs against *sql.DB for single statements and against
// *sql.Tx inside dbx.WithTx blocks.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	EventTypes(db dbx.DBTX) eventtypes.Repository
	JournalEntries(db dbx.DBTX) journalentries.Repository
}
