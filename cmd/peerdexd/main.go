package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/peerdex-network/peerdex-engine/internal/config"
	"github.com/peerdex-network/peerdex-engine/internal/core/application"
	"github.com/peerdex-network/peerdex-engine/internal/core/domain"
	"github.com/peerdex-network/peerdex-engine/internal/core/ports"
	"github.com/peerdex-network/peerdex-engine/internal/infrastructure/identity"
	"github.com/peerdex-network/peerdex-engine/internal/infrastructure/pricefeed"
	dbbadger "github.com/peerdex-network/peerdex-engine/internal/infrastructure/storage/db/badger"
	"github.com/peerdex-network/peerdex-engine/internal/infrastructure/storage/db/inmemory"
	"github.com/peerdex-network/peerdex-engine/pkg/paytimer"
	"github.com/peerdex-network/peerdex-engine/pkg/poller"
)

func main() {
	if err := config.InitConfig(); err != nil {
		log.WithError(err).Fatal("invalid config")
	}
	log.SetLevel(log.Level(config.GetInt(config.LogLevelKey)))

	repoManager, priceStore, err := openStorage()
	if err != nil {
		log.WithError(err).Fatal("could not open storage")
	}
	defer repoManager.Close()

	notificationSvc := application.NewNotificationService(repoManager)
	chatSvc := application.NewChatService(repoManager)
	orderSvc := application.NewOrderService(
		repoManager, notificationSvc, chatSvc,
		config.GetSeconds(config.PaymentWindowKey),
	)
	priceSvc := application.NewPriceService(priceStore)

	// Price feed
	var feeder *pricefeed.Service
	if endpoint := config.GetString(config.PriceEndpointKey); endpoint != "" {
		feeder = pricefeed.NewService(
			pricefeed.NewHTTPSource(endpoint, 10*time.Second),
			priceStore,
			config.GetSeconds(config.PriceIntervalKey),
		)
		feeder.Start()
		defer feeder.Stop()
	} else {
		log.Warn("no price endpoint configured, price cache will serve stale prices")
	}

	// Poller
	pollerSvc := poller.NewService(poller.Opts{
		ErrorHandler: func(err error) {
			log.WithError(err).Warn("poll failed")
		},
		RequestsPerSecond: config.GetInt(config.PollRateLimitKey),
		TokenBurst:        config.GetInt(config.PollBurstKey),
	})
	go pollerSvc.Start()
	defer pollerSvc.Stop()

	pollerSvc.AddObservable(application.NewPricesObservable(
		priceSvc, config.GetSeconds(config.PriceIntervalKey),
	))

	ctx := context.Background()
	watcher := &paymentWatcher{
		alertSink: logAlertSink{},
		threshold: config.GetSeconds(config.PaymentExpiryWarningKey),
	}
	defer watcher.stopAll()

	userId, err := identity.NewEnvIdentity().CurrentUserId(ctx)
	if err != nil {
		log.WithError(err).Warn("no session user, observing prices only")
	} else {
		pollerSvc.AddObservable(application.NewOrderCountObservable(
			orderSvc, userId, config.GetSeconds(config.OrderIntervalKey),
		))
		pollerSvc.AddObservable(application.NewUnreadNotificationsObservable(
			notificationSvc, userId, config.GetSeconds(config.NotificationIntervalKey),
		))

		refreshOrders := func() {
			orders, err := orderSvc.ListOrdersForUser(ctx, userId)
			if err != nil {
				log.WithError(err).Warn("could not refresh orders")
				return
			}
			log.Infof("refreshed %d order(s)", len(orders))
			watcher.watch(userId, orders)
		}
		refreshOrders()

		listener := application.NewSyncListener(logAlertSink{}, refreshOrders)
		go listener.Listen(pollerSvc.EventChannel())
	}

	log.Info("engine is running")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)
	<-sigChan

	log.Info("shutting down")
}

func openStorage() (ports.RepoManager, ports.PriceStore, error) {
	if config.GetString(config.DBTypeKey) == config.DBInMemory {
		return inmemory.NewRepoManager(), inmemory.NewPriceStore(), nil
	}
	dbDir := filepath.Join(config.GetDatadir(), config.DbLocation)
	return dbbadger.NewRepoManager(dbDir, log.New())
}

// logAlertSink renders engine alerts on the daemon log. A graphical frontend
// would show a toast here instead.
type logAlertSink struct{}

func (logAlertSink) Alert(kind, message string) {
	log.WithField("kind", kind).Info(message)
}

// paymentWatcher keeps one countdown per pending order the session user has
// to pay, warning on the alert sink shortly before the window closes.
type paymentWatcher struct {
	alertSink ports.AlertSink
	threshold time.Duration

	timers map[string]*paytimer.Timer
}

func (w *paymentWatcher) watch(userId string, orders []*domain.Order) {
	if w.timers == nil {
		w.timers = map[string]*paytimer.Timer{}
	}

	for _, order := range orders {
		if !order.IsPending() || order.BuyerId != userId {
			continue
		}
		if _, ok := w.timers[order.Id]; ok {
			continue
		}

		reference := order.ReferenceNumber
		timer := paytimer.NewWithThreshold(
			time.UnixMilli(order.PaymentDeadline), w.threshold,
			func() {
				w.alertSink.Alert(
					"payment_expiring",
					"Payment window for order "+reference+" is about to close",
				)
			},
		)
		timer.Start()
		w.timers[order.Id] = timer
	}
}

func (w *paymentWatcher) stopAll() {
	for _, timer := range w.timers {
		timer.Stop()
	}
}
