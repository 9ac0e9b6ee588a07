package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/peerdex-network/peerdex-engine/internal/config"
	"github.com/peerdex-network/peerdex-engine/internal/core/application"
	"github.com/peerdex-network/peerdex-engine/internal/core/ports"
	"github.com/peerdex-network/peerdex-engine/internal/infrastructure/identity"
	dbbadger "github.com/peerdex-network/peerdex-engine/internal/infrastructure/storage/db/badger"
	"github.com/peerdex-network/peerdex-engine/internal/infrastructure/storage/db/inmemory"
)

func main() {
	app := cli.NewApp()

	app.Version = "0.1.0"
	app.Name = "peerdex CLI"
	app.Usage = "Command line interface for the peerdex trading engine"
	app.Commands = append(
		app.Commands,
		&postad,
		&editad,
		&deactivatead,
		&listoffers,
		&placeorder,
		&listorders,
		&markpaid,
		&release,
		&cancel,
		&dispute,
		&chat,
		&notifications,
		&prices,
	)

	err := app.Run(os.Args)
	if err != nil {
		fatal(err)
	}
}

// services bundles everything a command action needs, resolved once per
// invocation against the shared datadir.
type services struct {
	repoManager     ports.RepoManager
	priceStore      ports.PriceStore
	offerSvc        application.OfferService
	orderSvc        application.OrderService
	chatSvc         application.ChatService
	notificationSvc application.NotificationService
	priceSvc        application.PriceService
}

func getServices() (*services, func(), error) {
	if err := config.InitConfig(); err != nil {
		return nil, nil, err
	}
	log.SetLevel(log.Level(config.GetInt(config.LogLevelKey)))

	var repoManager ports.RepoManager
	var priceStore ports.PriceStore
	var err error
	if config.GetString(config.DBTypeKey) == config.DBInMemory {
		repoManager, priceStore = inmemory.NewRepoManager(), inmemory.NewPriceStore()
	} else {
		dbDir := filepath.Join(config.GetDatadir(), config.DbLocation)
		repoManager, priceStore, err = dbbadger.NewRepoManager(dbDir, nil)
		if err != nil {
			return nil, nil, err
		}
	}

	notificationSvc := application.NewNotificationService(repoManager)
	chatSvc := application.NewChatService(repoManager)
	svc := &services{
		repoManager: repoManager,
		priceStore:  priceStore,
		offerSvc:    application.NewOfferService(repoManager),
		orderSvc: application.NewOrderService(
			repoManager, notificationSvc, chatSvc,
			config.GetSeconds(config.PaymentWindowKey),
		),
		chatSvc:         chatSvc,
		notificationSvc: notificationSvc,
		priceSvc:        application.NewPriceService(priceStore),
	}
	cleanup := func() { repoManager.Close() }
	return svc, cleanup, nil
}

func getActor(ctx context.Context) (userId, userName string, err error) {
	id := identity.NewEnvIdentity()
	userId, err = id.CurrentUserId(ctx)
	if err != nil {
		return
	}
	userName, err = id.CurrentUserName(ctx)
	return
}

func printRespJSON(resp interface{}) {
	jsonStr, err := json.MarshalIndent(resp, "", "\t")
	if err != nil {
		fmt.Println("unable to encode response: ", err)
		return
	}

	fmt.Println(string(jsonStr))
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "[peerdex] %v\n", application.UserMessage(err))
	os.Exit(1)
}
