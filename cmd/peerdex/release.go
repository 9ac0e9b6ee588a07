package main

import (
	"context"

	"github.com/urfave/cli/v2"

	"github.com/peerdex-network/peerdex-engine/internal/core/domain"
)

var release = cli.Command{
	Name:  "release",
	Usage: "release the crypto amount of an order you sold, completing it",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "order_id",
			Usage:    "the id of the order to release",
			Required: true,
		},
	},
	Action: releaseAction,
}

func releaseAction(ctx *cli.Context) error {
	svc, cleanup, err := getServices()
	if err != nil {
		return err
	}
	defer cleanup()

	userId, _, err := getActor(context.Background())
	if err != nil {
		return err
	}

	order, err := svc.orderSvc.UpdateOrderStatus(
		context.Background(), userId, ctx.String("order_id"),
		domain.OrderStatusCodeCompleted,
	)
	if err != nil {
		return err
	}

	printRespJSON(order)
	return nil
}
