package main

import (
	"context"

	"github.com/urfave/cli/v2"

	"github.com/peerdex-network/peerdex-engine/internal/core/domain"
)

var markpaid = cli.Command{
	Name:  "mark-paid",
	Usage: "declare that you sent the fiat payment for an order",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "order_id",
			Usage:    "the id of the order you paid",
			Required: true,
		},
	},
	Action: markPaidAction,
}

func markPaidAction(ctx *cli.Context) error {
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
		domain.OrderStatusCodeAwaitingRelease,
	)
	if err != nil {
		return err
	}

	printRespJSON(order)
	return nil
}
