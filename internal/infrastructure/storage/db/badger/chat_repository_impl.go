package dbbadger

import (
	"context"
	"sort"

	"github.com/dgraph-io/badger/v3"
	"github.com/timshannon/badgerhold/v4"

	"github.com/peerdex-network/peerdex-engine/internal/core/domain"
)

type chatRepositoryImpl struct {
	db *repoManager
}

func newChatRepositoryImpl(db *repoManager) domain.ChatRepository {
	return chatRepositoryImpl{db}
}

func (r chatRepositoryImpl) AddMessage(
	ctx context.Context, message *domain.ChatMessage,
) error {
	var err error
	if ctx.Value("tx") != nil {
		tx := ctx.Value("tx").(*badger.Txn)
		err = r.db.store.TxInsert(tx, message.Id, message)
	} else {
		err = r.db.store.Insert(message.Id, message)
	}
	if err != nil {
		if err != badgerhold.ErrKeyExists {
			return err
		}
	}
	return nil
}

func (r chatRepositoryImpl) GetMessages(
	ctx context.Context, orderId string,
) ([]domain.ChatMessage, error) {
	query := badgerhold.Where("OrderId").Eq(orderId)

	var messages []domain.ChatMessage
	var err error
	if ctx.Value("tx") != nil {
		tx := ctx.Value("tx").(*badger.Txn)
		err = r.db.store.TxFind(tx, &messages, query)
	} else {
		err = r.db.store.Find(&messages, query)
	}
	if err != nil {
		return nil, err
	}

	sort.SliceStable(messages, func(i, j int) bool {
		return messages[i].Timestamp < messages[j].Timestamp
	})
	return messages, nil
}

func (r chatRepositoryImpl) CountMessages(
	ctx context.Context, orderId string,
) (int, error) {
	messages, err := r.GetMessages(ctx, orderId)
	if err != nil {
		return 0, err
	}
	return len(messages), nil
}
