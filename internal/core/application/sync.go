package application

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/peerdex-network/peerdex-engine/internal/core/ports"
	"github.com/peerdex-network/peerdex-engine/pkg/poller"
)

const (
	EventTypeNewOrders           = "new_orders"
	EventTypeNewChatMessages     = "new_chat_messages"
	EventTypePricesUpdated       = "prices_updated"
	EventTypeUnreadNotifications = "unread_notifications"
)

// NewOrdersEvent signals that the number of orders of a user grew since the
// previous poll.
type NewOrdersEvent struct {
	UserId        string
	Count         int
	PreviousCount int
}

func (e NewOrdersEvent) Type() string { return EventTypeNewOrders }

// NewChatMessagesEvent signals that the chat log of an order grew since the
// previous poll.
type NewChatMessagesEvent struct {
	OrderId       string
	Count         int
	PreviousCount int
}

func (e NewChatMessagesEvent) Type() string { return EventTypeNewChatMessages }

// PricesUpdatedEvent carries the latest spot price snapshot.
type PricesUpdatedEvent struct {
	Prices map[string]decimal.Decimal
}

func (e PricesUpdatedEvent) Type() string { return EventTypePricesUpdated }

// UnreadNotificationsEvent signals that a user has unread notifications.
type UnreadNotificationsEvent struct {
	UserId string
	Unread int
}

func (e UnreadNotificationsEvent) Type() string { return EventTypeUnreadNotifications }

// OrderCountObservable re-fetches the orders of a user and emits a
// NewOrdersEvent only when the count exceeds the remembered previous one.
// Comparing counts instead of payloads keeps identical responses from
// producing duplicate alerts on every tick.
type OrderCountObservable struct {
	UserId       string
	PollInterval time.Duration

	orderSvc OrderService

	mutex     sync.Mutex
	lastCount int
}

func NewOrderCountObservable(
	orderSvc OrderService, userId string, pollInterval time.Duration,
) *OrderCountObservable {
	return &OrderCountObservable{
		UserId:       userId,
		PollInterval: pollInterval,
		orderSvc:     orderSvc,
		lastCount:    -1,
	}
}

func (o *OrderCountObservable) Observe(
	ctx context.Context,
	eventChan chan poller.Event,
	errChan chan error,
	observableStatus *poller.ObservableStatus,
	rateLimiter *rate.Limiter,
) {
	observableStatus.Set(poller.Waiting)
	if err := rateLimiter.Wait(ctx); err != nil {
		errChan <- err
		return
	}

	count, err := o.orderSvc.CountOrdersForUser(ctx, o.UserId)
	if err != nil {
		errChan <- err
		return
	}
	observableStatus.Set(poller.Processed)

	o.mutex.Lock()
	previous := o.lastCount
	o.lastCount = count
	o.mutex.Unlock()

	if previous >= 0 && count > previous {
		eventChan <- NewOrdersEvent{
			UserId:        o.UserId,
			Count:         count,
			PreviousCount: previous,
		}
	}
}

func (o *OrderCountObservable) Key() string { return "orders:" + o.UserId }

func (o *OrderCountObservable) Interval() time.Duration { return o.PollInterval }

// ChatCountObservable re-fetches the message count of one order's chat while
// its view is open. Added on view mount, removed on teardown.
type ChatCountObservable struct {
	OrderId      string
	PollInterval time.Duration

	chatSvc ChatService

	mutex     sync.Mutex
	lastCount int
}

func NewChatCountObservable(
	chatSvc ChatService, orderId string, pollInterval time.Duration,
) *ChatCountObservable {
	return &ChatCountObservable{
		OrderId:      orderId,
		PollInterval: pollInterval,
		chatSvc:      chatSvc,
		lastCount:    -1,
	}
}

func (o *ChatCountObservable) Observe(
	ctx context.Context,
	eventChan chan poller.Event,
	errChan chan error,
	observableStatus *poller.ObservableStatus,
	rateLimiter *rate.Limiter,
) {
	observableStatus.Set(poller.Waiting)
	if err := rateLimiter.Wait(ctx); err != nil {
		errChan <- err
		return
	}

	count, err := o.chatSvc.CountMessages(ctx, o.OrderId)
	if err != nil {
		errChan <- err
		return
	}
	observableStatus.Set(poller.Processed)

	o.mutex.Lock()
	previous := o.lastCount
	o.lastCount = count
	o.mutex.Unlock()

	if previous >= 0 && count > previous {
		eventChan <- NewChatMessagesEvent{
			OrderId:       o.OrderId,
			Count:         count,
			PreviousCount: previous,
		}
	}
}

func (o *ChatCountObservable) Key() string { return "chat:" + o.OrderId }

func (o *ChatCountObservable) Interval() time.Duration { return o.PollInterval }

// PricesObservable re-reads the price cache and emits the snapshot for the
// view layer to reconcile.
type PricesObservable struct {
	PollInterval time.Duration

	priceSvc PriceService
}

func NewPricesObservable(
	priceSvc PriceService, pollInterval time.Duration,
) *PricesObservable {
	return &PricesObservable{PollInterval: pollInterval, priceSvc: priceSvc}
}

func (o *PricesObservable) Observe(
	ctx context.Context,
	eventChan chan poller.Event,
	errChan chan error,
	observableStatus *poller.ObservableStatus,
	rateLimiter *rate.Limiter,
) {
	observableStatus.Set(poller.Waiting)
	if err := rateLimiter.Wait(ctx); err != nil {
		errChan <- err
		return
	}

	prices, err := o.priceSvc.GetCurrentPrices(ctx)
	if err != nil {
		errChan <- err
		return
	}
	observableStatus.Set(poller.Processed)

	eventChan <- PricesUpdatedEvent{Prices: prices}
}

func (o *PricesObservable) Key() string { return "prices" }

func (o *PricesObservable) Interval() time.Duration { return o.PollInterval }

// UnreadNotificationsObservable polls the unread count of a user and emits
// an event whenever it is non-zero.
type UnreadNotificationsObservable struct {
	UserId       string
	PollInterval time.Duration

	notificationSvc NotificationService
}

func NewUnreadNotificationsObservable(
	notificationSvc NotificationService, userId string, pollInterval time.Duration,
) *UnreadNotificationsObservable {
	return &UnreadNotificationsObservable{
		UserId:          userId,
		PollInterval:    pollInterval,
		notificationSvc: notificationSvc,
	}
}

func (o *UnreadNotificationsObservable) Observe(
	ctx context.Context,
	eventChan chan poller.Event,
	errChan chan error,
	observableStatus *poller.ObservableStatus,
	rateLimiter *rate.Limiter,
) {
	observableStatus.Set(poller.Waiting)
	if err := rateLimiter.Wait(ctx); err != nil {
		errChan <- err
		return
	}

	unread, err := o.notificationSvc.CountUnreadForUser(ctx, o.UserId)
	if err != nil {
		errChan <- err
		return
	}
	observableStatus.Set(poller.Processed)

	if unread > 0 {
		eventChan <- UnreadNotificationsEvent{UserId: o.UserId, Unread: unread}
	}
}

func (o *UnreadNotificationsObservable) Key() string {
	return "notifications:" + o.UserId
}

func (o *UnreadNotificationsObservable) Interval() time.Duration {
	return o.PollInterval
}

// SyncListener drains the poller event channel and forwards user-visible
// signals to the alert sink. A listener lives as long as its mount: the
// eager order refresh triggered by unread notifications runs at most once
// per listener to avoid refresh feedback loops.
type SyncListener struct {
	alertSink     ports.AlertSink
	refreshOrders func()
	refreshOnce   sync.Once
}

func NewSyncListener(alertSink ports.AlertSink, refreshOrders func()) *SyncListener {
	return &SyncListener{
		alertSink:     alertSink,
		refreshOrders: refreshOrders,
	}
}

// Listen blocks consuming events until a QuitEvent arrives.
func (l *SyncListener) Listen(eventChan chan poller.Event) {
	for event := range eventChan {
		switch e := event.(type) {
		case poller.QuitEvent:
			return
		case NewOrdersEvent:
			l.alertSink.Alert(
				EventTypeNewOrders,
				fmt.Sprintf("You have %d new order(s)", e.Count-e.PreviousCount),
			)
		case NewChatMessagesEvent:
			l.alertSink.Alert(
				EventTypeNewChatMessages,
				fmt.Sprintf("%d new message(s) in order chat", e.Count-e.PreviousCount),
			)
		case UnreadNotificationsEvent:
			if l.refreshOrders != nil {
				l.refreshOnce.Do(l.refreshOrders)
			}
			l.alertSink.Alert(
				EventTypeUnreadNotifications,
				fmt.Sprintf("You have %d unread notification(s)", e.Unread),
			)
		case PricesUpdatedEvent:
			log.Tracef("price snapshot refreshed with %d symbols", len(e.Prices))
		}
	}
}
