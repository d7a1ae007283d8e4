// internal/store/store.go
package store

import (
	"database/sql"

	"advisor-workers/internal/common/logger"
)

// Store bundles all advising persistence on one *sql.DB. Methods are split
// across files by entity.
type Store struct {
	db     *sql.DB
	logger logger.Logger
}

func New(db *sql.DB, log logger.Logger) *Store {
	return &Store{
		db:     db,
		logger: log.WithFields(map[string]interface{}{"component": "store"}),
	}
}
