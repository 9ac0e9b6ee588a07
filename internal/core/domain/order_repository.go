package domain

import "context"

// OrderRepository is the abstraction for any kind of database intended to
// persist Orders.
type OrderRepository interface {
	// AddOrder persists a new order.
	AddOrder(ctx context.Context, order *Order) error
	// GetOrder returns the order with the given id, or nil if not found.
	GetOrder(ctx context.Context, orderId string) (*Order, error)
	// GetOrdersForUser returns all the orders where the given user is either
	// the buyer or the seller, newest first.
	GetOrdersForUser(ctx context.Context, userId string) ([]*Order, error)
	// GetOrdersForOffer returns all the orders placed against the given
	// offer, newest first.
	GetOrdersForOffer(ctx context.Context, offerId string) ([]*Order, error)
	// UpdateOrder commits the changes made by updateFn to the order in a
	// transactional way.
	UpdateOrder(
		ctx context.Context,
		orderId string,
		updateFn func(o *Order) (*Order, error),
	) error
}
