// Package repomanager hands out user repositories bound either to a plain
// connection or to a transaction, for PostgreSQL and for process memory.
package repomanager

import (
	"context"

	"github.com/dmitrijs2005/gophgate/internal/server/repositories/users"
)

type RepositoryManager interface {
	Users() users.Repository
	// WithinTx runs fn with a repository whose writes commit together,
	// or not at all when fn returns an error.
	WithinTx(ctx context.Context, fn func(ctx context.Context, repo users.Repository) error) error
	Close() error
}
