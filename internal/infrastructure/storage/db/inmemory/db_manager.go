package inmemory

import (
	"context"
	"sync"

	"github.com/peerdex-network/peerdex-engine/internal/core/domain"
	"github.com/peerdex-network/peerdex-engine/internal/core/ports"
)

type offerInmemoryStore struct {
	offers map[string]domain.Offer
	ids    []string
	locker *sync.Mutex
}

type orderInmemoryStore struct {
	orders map[string]domain.Order
	// insertion order per user, oldest first
	ordersByUser map[string][]string
	ids          []string
	locker       *sync.Mutex
}

type chatInmemoryStore struct {
	// insertion order per order
	messagesByOrder map[string][]domain.ChatMessage
	locker          *sync.Mutex
}

type notificationInmemoryStore struct {
	notifications map[string]domain.Notification
	// insertion order per recipient, oldest first
	notificationsByRecipient map[string][]string
	locker                   *sync.Mutex
}

type repoManager struct {
	offerRepository        domain.OfferRepository
	orderRepository        domain.OrderRepository
	chatRepository         domain.ChatRepository
	notificationRepository domain.NotificationRepository
}

// NewRepoManager returns an ephemeral in-memory implementation of the
// storage layer, mainly used by tests and dev runs.
func NewRepoManager() ports.RepoManager {
	offerStore := &offerInmemoryStore{
		offers: map[string]domain.Offer{},
		locker: &sync.Mutex{},
	}
	orderStore := &orderInmemoryStore{
		orders:       map[string]domain.Order{},
		ordersByUser: map[string][]string{},
		locker:       &sync.Mutex{},
	}
	chatStore := &chatInmemoryStore{
		messagesByOrder: map[string][]domain.ChatMessage{},
		locker:          &sync.Mutex{},
	}
	notificationStore := &notificationInmemoryStore{
		notifications:            map[string]domain.Notification{},
		notificationsByRecipient: map[string][]string{},
		locker:                   &sync.Mutex{},
	}

	return &repoManager{
		offerRepository:        newOfferRepositoryImpl(offerStore),
		orderRepository:        newOrderRepositoryImpl(orderStore),
		chatRepository:         newChatRepositoryImpl(chatStore),
		notificationRepository: newNotificationRepositoryImpl(notificationStore),
	}
}

func (d *repoManager) OfferRepository() domain.OfferRepository {
	return d.offerRepository
}

func (d *repoManager) OrderRepository() domain.OrderRepository {
	return d.orderRepository
}

func (d *repoManager) ChatRepository() domain.ChatRepository {
	return d.chatRepository
}

func (d *repoManager) NotificationRepository() domain.NotificationRepository {
	return d.notificationRepository
}

func (d *repoManager) Close() {}

// RunTransaction executes the handler as-is: the in-memory stores serialize
// every operation with their own locker instead of transactions.
func (d *repoManager) RunTransaction(
	ctx context.Context,
	_ bool,
	handler func(ctx context.Context) (interface{}, error),
) (interface{}, error) {
	return handler(ctx)
}
