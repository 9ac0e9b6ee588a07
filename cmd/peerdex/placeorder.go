package main

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/urfave/cli/v2"
)

var placeorder = cli.Command{
	Name:  "place-order",
	Usage: "take an advertisement for a fiat amount, opening a new order",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "offer_id",
			Usage:    "the id of the advertisement to take",
			Required: true,
		},
		&cli.StringFlag{
			Name:     "amount",
			Usage:    "the fiat amount to trade",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "payment_method",
			Usage: "the payment method to settle with, defaults to the first one of the ad",
		},
	},
	Action: placeOrderAction,
}

func placeOrderAction(ctx *cli.Context) error {
	svc, cleanup, err := getServices()
	if err != nil {
		return err
	}
	defer cleanup()

	userId, _, err := getActor(context.Background())
	if err != nil {
		return err
	}

	fiatAmount, err := decimal.NewFromString(ctx.String("amount"))
	if err != nil {
		return fmt.Errorf("invalid amount: %w", err)
	}

	order, err := svc.orderSvc.PlaceOrder(
		context.Background(),
		userId, ctx.String("offer_id"),
		fiatAmount, ctx.String("payment_method"),
	)
	if err != nil {
		return err
	}

	printRespJSON(order)
	return nil
}
