package inmemory

import (
	"context"
	"sort"

	"github.com/peerdex-network/peerdex-engine/internal/core/domain"
)

type chatRepositoryImpl struct {
	store *chatInmemoryStore
}

func newChatRepositoryImpl(store *chatInmemoryStore) domain.ChatRepository {
	return &chatRepositoryImpl{store}
}

func (r *chatRepositoryImpl) AddMessage(
	_ context.Context, message *domain.ChatMessage,
) error {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	r.store.messagesByOrder[message.OrderId] = append(
		r.store.messagesByOrder[message.OrderId], *message,
	)
	return nil
}

func (r *chatRepositoryImpl) GetMessages(
	_ context.Context, orderId string,
) ([]domain.ChatMessage, error) {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	stored := r.store.messagesByOrder[orderId]
	messages := make([]domain.ChatMessage, len(stored))
	copy(messages, stored)

	sort.SliceStable(messages, func(i, j int) bool {
		return messages[i].Timestamp < messages[j].Timestamp
	})
	return messages, nil
}

func (r *chatRepositoryImpl) CountMessages(
	_ context.Context, orderId string,
) (int, error) {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	return len(r.store.messagesByOrder[orderId]), nil
}
