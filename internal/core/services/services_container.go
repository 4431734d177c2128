package services

import (
	"log/slog"

	portsrepo "github.com/SscSPs/budget_tracker_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/budget_tracker_app/internal/core/ports/services"
	"github.com/SscSPs/budget_tracker_app/internal/platform/config"
)

// statsCacheOwners bounds the number of owners whose stats are kept in memory.
const statsCacheOwners = 10000

// NewServiceContainer creates a new service container with properly initialized dependencies.
// The returned cleanup function releases background resources held by the services.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) (*portssvc.ServiceContainer, func()) {
	container := &portssvc.ServiceContainer{}
	cleanup := func() {}

	var options []TransactionServiceOption
	if cfg.StatsCacheEnabled {
		cache, err := NewStatsCache(statsCacheOwners, cfg.StatsCacheTTL)
		if err != nil {
			// Stats are still correct without the cache, only slower.
			slog.Warn("Stats cache disabled", slog.String("error", err.Error()))
		} else {
			options = append(options, WithStatsCache(cache))
			cleanup = cache.Close
		}
	}

	container.Transaction = NewTransactionService(repos.TransactionRepo, options...)

	return container, cleanup
}
