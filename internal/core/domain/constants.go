package domain

const (
	// OrderStatusCodePending is the initial status of every placed order.
	// The buyer is expected to transfer the fiat amount before the payment
	// deadline.
	OrderStatusCodePending = iota + 1
	// OrderStatusCodeAwaitingRelease means the buyer marked the payment as
	// sent and the seller must release the crypto amount.
	OrderStatusCodeAwaitingRelease
	// OrderStatusCodeCompleted means the seller released the crypto amount.
	OrderStatusCodeCompleted
	// OrderStatusCodeCancelled means the order was cancelled while pending.
	OrderStatusCodeCancelled
	// OrderStatusCodeDisputeOpened means one of the parties opened a dispute.
	// Resolution is delegated to an external arbitration service.
	OrderStatusCodeDisputeOpened
)

const (
	// TradeTypeBuy identifies buy offers and orders.
	TradeTypeBuy = "buy"
	// TradeTypeSell identifies sell offers and orders.
	TradeTypeSell = "sell"
)

const (
	NotificationTypeNewOrder       = "new_order"
	NotificationTypeOrderPaid      = "order_paid"
	NotificationTypeOrderCompleted = "order_completed"
	NotificationTypeOrderCancelled = "order_cancelled"
	NotificationTypeDisputeOpened  = "dispute_opened"
)

// SystemSender is the sender identity of engine-generated chat messages.
const SystemSender = "system"

var (
	PendingStatus         = OrderStatus{Code: OrderStatusCodePending}
	AwaitingReleaseStatus = OrderStatus{Code: OrderStatusCodeAwaitingRelease}
	CompletedStatus       = OrderStatus{Code: OrderStatusCodeCompleted}
	CancelledStatus       = OrderStatus{Code: OrderStatusCodeCancelled}
	DisputeOpenedStatus   = OrderStatus{Code: OrderStatusCodeDisputeOpened}
)
