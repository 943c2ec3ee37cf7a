package repository

import (
	"context"
	"database/sql"

	"github.com/EGUS74/SSS-Construction-Reports/internal/application/port"
	"github.com/EGUS74/SSS-Construction-Reports/pkg/database"
)

// TxManager implements port.TransactionManager by threading an open
// transaction through the context for the repositories to pick up.
type TxManager struct {
	db *database.DB
}

// NewTxManager creates a new transaction manager
func NewTxManager(db *database.DB) port.TransactionManager {
	return &TxManager{db: db}
}

// WithTransaction runs fn inside a single transaction.
func (m *TxManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.db.WithTransaction(func(tx *sql.Tx) error {
		return fn(database.WithTx(ctx, tx))
	})
}

// Verify interface compliance
var _ port.TransactionManager = (*TxManager)(nil)
