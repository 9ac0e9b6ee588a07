package main

import (
	"context"

	"github.com/urfave/cli/v2"
)

var cancel = cli.Command{
	Name:  "cancel",
	Usage: "cancel one of your pending orders",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "order_id",
			Usage:    "the id of the order to cancel",
			Required: true,
		},
	},
	Action: cancelAction,
}

func cancelAction(ctx *cli.Context) error {
	svc, cleanup, err := getServices()
	if err != nil {
		return err
	}
	defer cleanup()

	userId, _, err := getActor(context.Background())
	if err != nil {
		return err
	}

	order, err := svc.orderSvc.CancelOrder(
		context.Background(), userId, ctx.String("order_id"),
	)
	if err != nil {
		return err
	}

	printRespJSON(order)
	return nil
}
