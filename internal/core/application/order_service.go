package application

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/peerdex-network/peerdex-engine/internal/core/domain"
	"github.com/peerdex-network/peerdex-engine/internal/core/ports"
)

// liquidityClampFactor trims a request for the whole available amount down
// to 99.9% of the maximum purchasable value. The tolerance absorbs floating
// point rounding at the availability boundary so that a full-amount order is
// clamped instead of rejected. This is intentional behavior, not a bug to
// tighten.
var liquidityClampFactor = decimal.NewFromFloat(0.999)

// OrderService drives the order lifecycle: placement against an offer,
// status transitions, and the coupled chat seeding and notification fan-out.
type OrderService interface {
	PlaceOrder(
		ctx context.Context,
		takerId, offerId string,
		fiatAmount decimal.Decimal,
		paymentMethod string,
	) (*domain.Order, error)
	UpdateOrderStatus(
		ctx context.Context, actorId, orderId string, newStatusCode int,
	) (*domain.Order, error)
	CancelOrder(ctx context.Context, actorId, orderId string) (*domain.Order, error)
	GetOrder(ctx context.Context, orderId string) (*domain.Order, error)
	ListOrdersForUser(ctx context.Context, userId string) ([]*domain.Order, error)
	ListOrdersForOffer(ctx context.Context, actorId, offerId string) ([]*domain.Order, error)
	CountOrdersForUser(ctx context.Context, userId string) (int, error)
}

type orderService struct {
	repoManager     ports.RepoManager
	notificationSvc NotificationService
	chatSvc         ChatService
	paymentWindow   time.Duration
}

// NewOrderService returns an OrderService with the given payment window for
// new orders.
func NewOrderService(
	repoManager ports.RepoManager,
	notificationSvc NotificationService,
	chatSvc ChatService,
	paymentWindow time.Duration,
) OrderService {
	return &orderService{
		repoManager:     repoManager,
		notificationSvc: notificationSvc,
		chatSvc:         chatSvc,
		paymentWindow:   paymentWindow,
	}
}

func (s *orderService) PlaceOrder(
	ctx context.Context,
	takerId, offerId string,
	fiatAmount decimal.Decimal,
	paymentMethod string,
) (*domain.Order, error) {
	if !fiatAmount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	offer, err := s.repoManager.OfferRepository().GetOffer(ctx, offerId)
	if err != nil {
		return nil, err
	}
	if offer == nil {
		return nil, ErrOfferNotFound
	}
	if !offer.Active {
		return nil, domain.ErrOfferInactive
	}

	if paymentMethod == "" {
		paymentMethod = offer.PaymentMethods[0]
	} else if !offer.AcceptsPaymentMethod(paymentMethod) {
		return nil, ErrPaymentMethodNotAccepted
	}

	if fiatAmount.LessThan(offer.Limits.Min) ||
		fiatAmount.GreaterThan(offer.Limits.Max) {
		return nil, ErrAmountOutOfLimits
	}

	cryptoAmount := fiatAmount.Div(offer.Price)
	if !cryptoAmount.LessThan(offer.AvailableAmount) {
		maxFiat := offer.AvailableAmount.Mul(offer.Price).Mul(liquidityClampFactor)
		if fiatAmount.GreaterThan(maxFiat) {
			fiatAmount = maxFiat
			cryptoAmount = fiatAmount.Div(offer.Price)
		}
	}
	if !fiatAmount.IsPositive() || cryptoAmount.GreaterThan(offer.AvailableAmount) {
		return nil, ErrInsufficientLiquidity
	}

	order := domain.NewOrder(
		offer, takerId, fiatAmount, cryptoAmount, paymentMethod, s.paymentWindow,
	)

	// The reservation runs through the repository update function, so two
	// orders racing for the last units of the same offer are serialized by
	// the storage layer instead of both passing the availability check.
	if err := s.repoManager.OfferRepository().UpdateOffer(
		ctx, offerId,
		func(o *domain.Offer) (*domain.Offer, error) {
			if err := o.Reserve(cryptoAmount); err != nil {
				return nil, ErrInsufficientLiquidity
			}
			return o, nil
		},
	); err != nil {
		return nil, err
	}

	if err := s.repoManager.OrderRepository().AddOrder(ctx, order); err != nil {
		return nil, err
	}

	if _, err := s.chatSvc.EnsureSeeded(ctx, order); err != nil {
		return nil, err
	}

	// Self-notification is a policy no-op: a taker trading against their own
	// offer produces no record.
	if offer.OwnerId != takerId {
		message := fmt.Sprintf(
			"New order: %s %s for %s %s",
			order.FiatAmount.StringFixed(2), order.FiatCurrency,
			order.Total.String(), order.CryptoSymbol,
		)
		if _, err := s.notificationSvc.Notify(
			ctx, offer.OwnerId, domain.NotificationTypeNewOrder, message, order.Id,
		); err != nil {
			return nil, err
		}
	}

	log.Debugf(
		"order %s placed against offer %s: %s %s for %s %s",
		order.Id, offer.Id,
		order.FiatAmount.StringFixed(2), order.FiatCurrency,
		order.Total.String(), order.CryptoSymbol,
	)
	return order, nil
}

func (s *orderService) UpdateOrderStatus(
	ctx context.Context, actorId, orderId string, newStatusCode int,
) (*domain.Order, error) {
	current, err := s.repoManager.OrderRepository().GetOrder(ctx, orderId)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, ErrOrderNotFound
	}

	var updated *domain.Order
	if err := s.repoManager.OrderRepository().UpdateOrder(
		ctx, orderId,
		func(o *domain.Order) (*domain.Order, error) {
			if err := o.UpdateStatus(actorId, newStatusCode); err != nil {
				return nil, err
			}
			updated = o
			return o, nil
		},
	); err != nil {
		return nil, err
	}

	if text := domain.TransitionMessageText(updated); text != "" {
		message, err := domain.NewChatMessage(
			updated.Id, domain.SystemSender, text, time.Now().UnixMilli(),
		)
		if err != nil {
			return nil, err
		}
		if err := s.repoManager.ChatRepository().AddMessage(ctx, message); err != nil {
			return nil, err
		}
	}

	recipient := updated.CounterpartyOf(actorId)
	if recipient != actorId {
		notificationType, message := transitionNotification(updated)
		if _, err := s.notificationSvc.Notify(
			ctx, recipient, notificationType, message, updated.Id,
		); err != nil {
			return nil, err
		}
	}

	log.Debugf("order %s moved to status %s", updated.Id, updated.Status)
	return updated, nil
}

// CancelOrder is only legal while the order is pending. The reserved amount
// is not restored to the offer: whether cancellation refunds liquidity is an
// open product decision.
func (s *orderService) CancelOrder(
	ctx context.Context, actorId, orderId string,
) (*domain.Order, error) {
	return s.UpdateOrderStatus(ctx, actorId, orderId, domain.OrderStatusCodeCancelled)
}

func (s *orderService) GetOrder(
	ctx context.Context, orderId string,
) (*domain.Order, error) {
	order, err := s.repoManager.OrderRepository().GetOrder(ctx, orderId)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

func (s *orderService) ListOrdersForUser(
	ctx context.Context, userId string,
) ([]*domain.Order, error) {
	return s.repoManager.OrderRepository().GetOrdersForUser(ctx, userId)
}

// ListOrdersForOffer returns the orders placed against the given offer,
// newest first. Only the advertiser can list them.
func (s *orderService) ListOrdersForOffer(
	ctx context.Context, actorId, offerId string,
) ([]*domain.Order, error) {
	offer, err := s.repoManager.OfferRepository().GetOffer(ctx, offerId)
	if err != nil {
		return nil, err
	}
	if offer == nil {
		return nil, ErrOfferNotFound
	}
	if !offer.IsOwner(actorId) {
		return nil, ErrNotOfferOwner
	}
	return s.repoManager.OrderRepository().GetOrdersForOffer(ctx, offerId)
}

func (s *orderService) CountOrdersForUser(
	ctx context.Context, userId string,
) (int, error) {
	orders, err := s.repoManager.OrderRepository().GetOrdersForUser(ctx, userId)
	if err != nil {
		return 0, err
	}
	return len(orders), nil
}

func transitionNotification(o *domain.Order) (string, string) {
	switch o.Status.Code {
	case domain.OrderStatusCodeAwaitingRelease:
		return domain.NotificationTypeOrderPaid,
			fmt.Sprintf("Order %s was marked as paid", o.ReferenceNumber)
	case domain.OrderStatusCodeCompleted:
		return domain.NotificationTypeOrderCompleted,
			fmt.Sprintf("Order %s was completed", o.ReferenceNumber)
	case domain.OrderStatusCodeCancelled:
		return domain.NotificationTypeOrderCancelled,
			fmt.Sprintf("Order %s was cancelled", o.ReferenceNumber)
	default:
		return domain.NotificationTypeDisputeOpened,
			fmt.Sprintf("A dispute was opened on order %s", o.ReferenceNumber)
	}
}
