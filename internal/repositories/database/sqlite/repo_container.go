package sqlite

import (
	"database/sql"
	"log/slog"

	portsrepo "github.com/SscSPs/budget_tracker_app/internal/core/ports/repositories"
)

// NewRepositoryProvider wires the SQLite repositories. Close closes db.
func NewRepositoryProvider(db *sql.DB) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		TransactionRepo: newTransactionRepository(db),
		Close: func() {
			if err := db.Close(); err != nil {
				slog.Error("Error closing SQLite database", slog.String("error", err.Error()))
			}
		},
	}
}
