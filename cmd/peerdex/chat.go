package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/peerdex-network/peerdex-engine/internal/config"
	"github.com/peerdex-network/peerdex-engine/internal/core/application"
	"github.com/peerdex-network/peerdex-engine/pkg/poller"
)

var chat = cli.Command{
	Name:  "chat",
	Usage: "read, write and follow the chat of an order",
	Subcommands: []*cli.Command{
		{
			Name:  "show",
			Usage: "print the chat log of an order, oldest first",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "order_id",
					Usage:    "the id of the order",
					Required: true,
				},
			},
			Action: chatShowAction,
		},
		{
			Name:  "send",
			Usage: "append a message to the chat of an order",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "order_id",
					Usage:    "the id of the order",
					Required: true,
				},
				&cli.StringFlag{
					Name:     "text",
					Usage:    "the message text",
					Required: true,
				},
			},
			Action: chatSendAction,
		},
		{
			Name:  "watch",
			Usage: "keep printing new chat messages until interrupted",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "order_id",
					Usage:    "the id of the order",
					Required: true,
				},
			},
			Action: chatWatchAction,
		},
	},
}

func chatShowAction(ctx *cli.Context) error {
	svc, cleanup, err := getServices()
	if err != nil {
		return err
	}
	defer cleanup()

	messages, err := svc.chatSvc.GetMessages(
		context.Background(), ctx.String("order_id"),
	)
	if err != nil {
		return err
	}

	for _, message := range messages {
		printChatMessage(message.Timestamp, message.Sender, message.Text)
	}
	return nil
}

func chatSendAction(ctx *cli.Context) error {
	svc, cleanup, err := getServices()
	if err != nil {
		return err
	}
	defer cleanup()

	userId, _, err := getActor(context.Background())
	if err != nil {
		return err
	}

	message, err := svc.chatSvc.AddMessage(
		context.Background(), ctx.String("order_id"), userId, ctx.String("text"),
	)
	if err != nil {
		return err
	}

	printChatMessage(message.Timestamp, message.Sender, message.Text)
	return nil
}

// chatWatchAction polls the chat of the order and prints the tail of the log
// whenever the message count grew.
func chatWatchAction(ctx *cli.Context) error {
	svc, cleanup, err := getServices()
	if err != nil {
		return err
	}
	defer cleanup()

	orderId := ctx.String("order_id")
	messages, err := svc.chatSvc.GetMessages(context.Background(), orderId)
	if err != nil {
		return err
	}
	for _, message := range messages {
		printChatMessage(message.Timestamp, message.Sender, message.Text)
	}

	pollerSvc := poller.NewService(poller.Opts{
		ErrorHandler: func(err error) {
			log.WithError(err).Warn("chat poll failed")
		},
		RequestsPerSecond: config.GetInt(config.PollRateLimitKey),
		TokenBurst:        config.GetInt(config.PollBurstKey),
	})
	go pollerSvc.Start()
	defer pollerSvc.Stop()

	pollerSvc.AddObservable(application.NewChatCountObservable(
		svc.chatSvc, orderId, config.GetSeconds(config.ChatIntervalKey),
	))

	go func() {
		seen := len(messages)
		for event := range pollerSvc.EventChannel() {
			e, ok := event.(application.NewChatMessagesEvent)
			if !ok {
				return
			}

			latest, err := svc.chatSvc.GetMessages(context.Background(), orderId)
			if err != nil {
				log.WithError(err).Warn("could not fetch chat log")
				continue
			}
			for _, message := range latest[seen:] {
				printChatMessage(message.Timestamp, message.Sender, message.Text)
			}
			seen = e.Count
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)
	<-sigChan
	return nil
}

func printChatMessage(timestamp int64, sender, text string) {
	fmt.Printf(
		"[%s] %s: %s\n",
		time.UnixMilli(timestamp).Format(time.RFC3339), sender, text,
	)
}
