package main

import (
	"context"

	"github.com/urfave/cli/v2"

	"github.com/peerdex-network/peerdex-engine/internal/core/domain"
)

var dispute = cli.Command{
	Name:  "dispute",
	Usage: "open a dispute on one of your orders",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "order_id",
			Usage:    "the id of the order to dispute",
			Required: true,
		},
	},
	Action: disputeAction,
}

func disputeAction(ctx *cli.Context) error {
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
		domain.OrderStatusCodeDisputeOpened,
	)
	if err != nil {
		return err
	}

	printRespJSON(order)
	return nil
}
