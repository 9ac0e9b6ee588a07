package ports

import (
	"context"

	"github.com/peerdex-network/peerdex-engine/internal/core/domain"
)

// RepoManager gives access to all the repositories of the storage layer and
// to its transactional facilities.
type RepoManager interface {
	OfferRepository() domain.OfferRepository
	OrderRepository() domain.OrderRepository
	ChatRepository() domain.ChatRepository
	NotificationRepository() domain.NotificationRepository

	Close()

	// RunTransaction runs the handler against a single storage transaction,
	// committed if the handler returns no error.
	RunTransaction(
		ctx context.Context,
		readOnly bool,
		handler func(ctx context.Context) (interface{}, error),
	) (interface{}, error)
}

// Transaction defines the methods to commit or discard a storage transaction.
type Transaction interface {
	Commit() error
	Discard()
}
