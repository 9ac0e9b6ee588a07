package inmemory

import (
	"context"
	"errors"

	"github.com/peerdex-network/peerdex-engine/internal/core/domain"
)

type orderRepositoryImpl struct {
	store *orderInmemoryStore
}

func newOrderRepositoryImpl(store *orderInmemoryStore) domain.OrderRepository {
	return &orderRepositoryImpl{store}
}

func (r *orderRepositoryImpl) AddOrder(
	_ context.Context, order *domain.Order,
) error {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	if _, ok := r.store.orders[order.Id]; ok {
		return nil
	}
	r.store.orders[order.Id] = *order
	r.store.ids = append(r.store.ids, order.Id)
	r.addOrderByUser(order.BuyerId, order.Id)
	if order.SellerId != order.BuyerId {
		r.addOrderByUser(order.SellerId, order.Id)
	}
	return nil
}

func (r *orderRepositoryImpl) GetOrder(
	_ context.Context, orderId string,
) (*domain.Order, error) {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	return r.getOrder(orderId), nil
}

func (r *orderRepositoryImpl) GetOrdersForUser(
	_ context.Context, userId string,
) ([]*domain.Order, error) {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	ids := r.store.ordersByUser[userId]
	// newest first
	orders := make([]*domain.Order, 0, len(ids))
	for i := len(ids) - 1; i >= 0; i-- {
		order := r.store.orders[ids[i]]
		orders = append(orders, &order)
	}
	return orders, nil
}

func (r *orderRepositoryImpl) GetOrdersForOffer(
	_ context.Context, offerId string,
) ([]*domain.Order, error) {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	orders := make([]*domain.Order, 0)
	for i := len(r.store.ids) - 1; i >= 0; i-- {
		order := r.store.orders[r.store.ids[i]]
		if order.OfferId == offerId {
			orders = append(orders, &order)
		}
	}
	return orders, nil
}

func (r *orderRepositoryImpl) UpdateOrder(
	_ context.Context,
	orderId string,
	updateFn func(o *domain.Order) (*domain.Order, error),
) error {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	currentOrder := r.getOrder(orderId)
	if currentOrder == nil {
		return errors.New("order not found")
	}

	updatedOrder, err := updateFn(currentOrder)
	if err != nil {
		return err
	}

	r.store.orders[orderId] = *updatedOrder
	return nil
}

func (r *orderRepositoryImpl) getOrder(orderId string) *domain.Order {
	order, ok := r.store.orders[orderId]
	if !ok {
		return nil
	}
	return &order
}

func (r *orderRepositoryImpl) addOrderByUser(userId, orderId string) {
	r.store.ordersByUser[userId] = append(r.store.ordersByUser[userId], orderId)
}
