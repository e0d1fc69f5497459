package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/hireboard/internal/dbx"
	"github.com/dmitrijs2005/hireboard/internal/server/repositories/candidates"
	"github.com/dmitrijs2005/hireboard/internal/server/repositories/jobs"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Candidates(db dbx.DBTX) candidates.Repository
	Jobs(db dbx.DBTX) jobs.Repository
}
