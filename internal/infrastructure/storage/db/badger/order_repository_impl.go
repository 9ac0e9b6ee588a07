package dbbadger

import (
	"context"
	"errors"
	"sort"

	"github.com/dgraph-io/badger/v3"
	"github.com/timshannon/badgerhold/v4"

	"github.com/peerdex-network/peerdex-engine/internal/core/domain"
)

type orderRepositoryImpl struct {
	db *repoManager
}

func newOrderRepositoryImpl(db *repoManager) domain.OrderRepository {
	return orderRepositoryImpl{db}
}

func (r orderRepositoryImpl) AddOrder(
	ctx context.Context, order *domain.Order,
) error {
	var err error
	if ctx.Value("tx") != nil {
		tx := ctx.Value("tx").(*badger.Txn)
		err = r.db.store.TxInsert(tx, order.Id, order)
	} else {
		err = r.db.store.Insert(order.Id, order)
	}
	if err != nil {
		if err != badgerhold.ErrKeyExists {
			return err
		}
	}
	return nil
}

func (r orderRepositoryImpl) GetOrder(
	ctx context.Context, orderId string,
) (*domain.Order, error) {
	var order domain.Order
	var err error
	if ctx.Value("tx") != nil {
		tx := ctx.Value("tx").(*badger.Txn)
		err = r.db.store.TxGet(tx, orderId, &order)
	} else {
		err = r.db.store.Get(orderId, &order)
	}
	if err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, nil
		}
		return nil, err
	}

	return &order, nil
}

func (r orderRepositoryImpl) GetOrdersForUser(
	ctx context.Context, userId string,
) ([]*domain.Order, error) {
	query := badgerhold.Where("BuyerId").Eq(userId).
		Or(badgerhold.Where("SellerId").Eq(userId))
	orders, err := r.findOrders(ctx, query)
	if err != nil {
		return nil, err
	}

	sortNewestFirst(orders)

	list := make([]*domain.Order, 0, len(orders))
	for i := range orders {
		list = append(list, &orders[i])
	}
	return list, nil
}

func (r orderRepositoryImpl) GetOrdersForOffer(
	ctx context.Context, offerId string,
) ([]*domain.Order, error) {
	query := badgerhold.Where("OfferId").Eq(offerId)
	orders, err := r.findOrders(ctx, query)
	if err != nil {
		return nil, err
	}

	sortNewestFirst(orders)

	list := make([]*domain.Order, 0, len(orders))
	for i := range orders {
		list = append(list, &orders[i])
	}
	return list, nil
}

// sortNewestFirst orders by creation time in unix millis, falling back on
// the id so that same-instant orders keep a deterministic relative order.
func sortNewestFirst(orders []domain.Order) {
	sort.SliceStable(orders, func(i, j int) bool {
		if orders[i].CreatedAt != orders[j].CreatedAt {
			return orders[i].CreatedAt > orders[j].CreatedAt
		}
		return orders[i].Id > orders[j].Id
	})
}

func (r orderRepositoryImpl) UpdateOrder(
	ctx context.Context,
	orderId string,
	updateFn func(o *domain.Order) (*domain.Order, error),
) error {
	return r.db.runInTransaction(ctx, func(ctx context.Context) error {
		currentOrder, err := r.GetOrder(ctx, orderId)
		if err != nil {
			return err
		}
		if currentOrder == nil {
			return errors.New("order not found")
		}

		updatedOrder, err := updateFn(currentOrder)
		if err != nil {
			return err
		}

		tx := ctx.Value("tx").(*badger.Txn)
		return r.db.store.TxUpdate(tx, orderId, *updatedOrder)
	})
}

func (r orderRepositoryImpl) findOrders(
	ctx context.Context, query *badgerhold.Query,
) ([]domain.Order, error) {
	var orders []domain.Order
	var err error
	if ctx.Value("tx") != nil {
		tx := ctx.Value("tx").(*badger.Txn)
		err = r.db.store.TxFind(tx, &orders, query)
	} else {
		err = r.db.store.Find(&orders, query)
	}

	return orders, err
}
