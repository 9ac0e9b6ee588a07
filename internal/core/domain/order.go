package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/thanhpk/randstr"
)

// OrderStatus represents the different statuses that an order can assume.
type OrderStatus struct {
	Code int
}

func (s OrderStatus) String() string {
	switch s.Code {
	case OrderStatusCodePending:
		return "pending"
	case OrderStatusCodeAwaitingRelease:
		return "awaiting_release"
	case OrderStatusCodeCompleted:
		return "completed"
	case OrderStatusCodeCancelled:
		return "cancelled"
	case OrderStatusCodeDisputeOpened:
		return "dispute_opened"
	default:
		return "unknown"
	}
}

// legalTransitions is the only source of truth for the order lifecycle.
// No edge returns to pending, terminal statuses have no outgoing edges.
var legalTransitions = map[int][]int{
	OrderStatusCodePending: {
		OrderStatusCodeAwaitingRelease,
		OrderStatusCodeCancelled,
		OrderStatusCodeDisputeOpened,
	},
	OrderStatusCodeAwaitingRelease: {
		OrderStatusCodeCompleted,
		OrderStatusCodeDisputeOpened,
	},
}

// TransitionAllowed returns whether the (from, to) status edge is listed in
// the order transition table.
func TransitionAllowed(from, to int) bool {
	for _, next := range legalTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Order is the data structure representing a trade instance placed against
// an offer. Price, total and payment details are frozen at placement time so
// that later offer edits cannot alter a running trade.
type Order struct {
	Id              string
	OfferId         string
	BuyerId         string
	SellerId        string
	Type            string
	CryptoSymbol    string
	FiatCurrency    string
	FiatAmount      decimal.Decimal
	Total           decimal.Decimal
	Price           decimal.Decimal
	PaymentMethod   string
	PaymentDetails  map[string]string
	Status          OrderStatus
	ReferenceNumber string
	// CreatedAt and PaymentDeadline are unix milliseconds, like every
	// timestamp persisted by the engine.
	CreatedAt       int64
	PaymentDeadline int64
}

// NewOrder returns a pending order against the given offer. The order type
// is the taker's perspective: placing against a sell offer makes the taker
// the buyer, placing against a buy offer makes the taker the seller.
func NewOrder(
	offer *Offer, takerId string,
	fiatAmount, cryptoAmount decimal.Decimal,
	paymentMethod string, paymentWindow time.Duration,
) *Order {
	orderType := TradeTypeBuy
	buyerId, sellerId := takerId, offer.OwnerId
	if offer.Type == TradeTypeBuy {
		orderType = TradeTypeSell
		buyerId, sellerId = offer.OwnerId, takerId
	}

	details := make(map[string]string, len(offer.PaymentDetails))
	for k, v := range offer.PaymentDetails {
		details[k] = v
	}

	now := time.Now()
	return &Order{
		Id:              uuid.New().String(),
		OfferId:         offer.Id,
		BuyerId:         buyerId,
		SellerId:        sellerId,
		Type:            orderType,
		CryptoSymbol:    offer.CryptoSymbol,
		FiatCurrency:    offer.FiatCurrency,
		FiatAmount:      fiatAmount,
		Total:           cryptoAmount,
		Price:           offer.Price,
		PaymentMethod:   paymentMethod,
		PaymentDetails:  details,
		Status:          PendingStatus,
		ReferenceNumber: randstr.String(10, "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"),
		CreatedAt:       now.UnixMilli(),
		PaymentDeadline: now.Add(paymentWindow).UnixMilli(),
	}
}

// MarkPaid brings the order from the Pending to the AwaitingRelease status.
// Only the buyer can perform this action.
func (o *Order) MarkPaid(actorId string) error {
	if !o.IsParticipant(actorId) {
		return ErrOrderNotParticipant
	}
	if !o.IsPending() {
		if o.IsTerminal() {
			return ErrOrderIsTerminal
		}
		return ErrOrderMustBePending
	}
	if actorId != o.BuyerId {
		return ErrOrderOnlyBuyerCanMarkPaid
	}
	o.Status = AwaitingReleaseStatus
	return nil
}

// Release brings the order from the AwaitingRelease to the Completed status.
// Only the seller can perform this action.
func (o *Order) Release(actorId string) error {
	if !o.IsParticipant(actorId) {
		return ErrOrderNotParticipant
	}
	if !o.IsAwaitingRelease() {
		if o.IsTerminal() {
			return ErrOrderIsTerminal
		}
		return ErrOrderMustBeAwaitingRelease
	}
	if actorId != o.SellerId {
		return ErrOrderOnlySellerCanRelease
	}
	o.Status = CompletedStatus
	return nil
}

// Cancel brings the order from the Pending to the Cancelled status. Either
// participant can cancel while the payment was not marked as sent yet.
func (o *Order) Cancel(actorId string) error {
	if !o.IsParticipant(actorId) {
		return ErrOrderNotParticipant
	}
	if !o.IsPending() {
		if o.IsTerminal() {
			return ErrOrderIsTerminal
		}
		return ErrOrderMustBePending
	}
	o.Status = CancelledStatus
	return nil
}

// OpenDispute brings a non-terminal order to the DisputeOpened status.
// Either participant can request it.
func (o *Order) OpenDispute(actorId string) error {
	if !o.IsParticipant(actorId) {
		return ErrOrderNotParticipant
	}
	if o.IsTerminal() {
		return ErrOrderIsTerminal
	}
	o.Status = DisputeOpenedStatus
	return nil
}

// UpdateStatus drives the order to the given status on behalf of the given
// actor, enforcing both the transition table and the role constraints.
func (o *Order) UpdateStatus(actorId string, newStatusCode int) error {
	if !TransitionAllowed(o.Status.Code, newStatusCode) {
		if o.IsTerminal() {
			return ErrOrderIsTerminal
		}
		return ErrOrderIllegalTransition
	}

	switch newStatusCode {
	case OrderStatusCodeAwaitingRelease:
		return o.MarkPaid(actorId)
	case OrderStatusCodeCompleted:
		return o.Release(actorId)
	case OrderStatusCodeCancelled:
		return o.Cancel(actorId)
	case OrderStatusCodeDisputeOpened:
		return o.OpenDispute(actorId)
	default:
		return ErrOrderIllegalTransition
	}
}

// IsPending returns whether the order is in Pending status.
func (o *Order) IsPending() bool {
	return o.Status.Code == OrderStatusCodePending
}

// IsAwaitingRelease returns whether the order is in AwaitingRelease status.
func (o *Order) IsAwaitingRelease() bool {
	return o.Status.Code == OrderStatusCodeAwaitingRelease
}

// IsCompleted returns whether the order is in Completed status.
func (o *Order) IsCompleted() bool {
	return o.Status.Code == OrderStatusCodeCompleted
}

// IsCancelled returns whether the order is in Cancelled status.
func (o *Order) IsCancelled() bool {
	return o.Status.Code == OrderStatusCodeCancelled
}

// IsDisputed returns whether a dispute was opened on the order.
func (o *Order) IsDisputed() bool {
	return o.Status.Code == OrderStatusCodeDisputeOpened
}

// IsTerminal returns whether the order reached a status with no outgoing
// edges. Dispute resolution happens outside of this engine, so DisputeOpened
// is terminal here.
func (o *Order) IsTerminal() bool {
	return len(legalTransitions[o.Status.Code]) == 0
}

// IsParticipant returns whether the given user is the buyer or the seller.
func (o *Order) IsParticipant(userId string) bool {
	return userId == o.BuyerId || userId == o.SellerId
}

// CounterpartyOf returns the other participant of the order.
func (o *Order) CounterpartyOf(userId string) string {
	if userId == o.BuyerId {
		return o.SellerId
	}
	return o.BuyerId
}

// HasPaymentDetails returns whether payment details were copied from the
// offer at placement time.
func (o *Order) HasPaymentDetails() bool {
	return len(o.PaymentDetails) > 0
}
