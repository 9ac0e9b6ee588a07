package main

import (
	"context"

	"github.com/urfave/cli/v2"
)

var listorders = cli.Command{
	Name:  "list-orders",
	Usage: "list your orders, newest first",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "offer",
			Usage: "list the orders placed against one of your offers instead",
		},
	},
	Action: listOrdersAction,
}

func listOrdersAction(ctx *cli.Context) error {
	svc, cleanup, err := getServices()
	if err != nil {
		return err
	}
	defer cleanup()

	userId, _, err := getActor(context.Background())
	if err != nil {
		return err
	}

	var orders interface{}
	if offerId := ctx.String("offer"); offerId != "" {
		orders, err = svc.orderSvc.ListOrdersForOffer(
			context.Background(), userId, offerId,
		)
	} else {
		orders, err = svc.orderSvc.ListOrdersForUser(context.Background(), userId)
	}
	if err != nil {
		return err
	}

	printRespJSON(orders)
	return nil
}
