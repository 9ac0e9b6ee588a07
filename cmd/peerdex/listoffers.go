package main

import (
	"context"

	"github.com/urfave/cli/v2"

	"github.com/peerdex-network/peerdex-engine/internal/core/application"
)

var listoffers = cli.Command{
	Name:  "list-offers",
	Usage: "browse the marketplace advertisements",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "type",
			Usage: "buy, sell or all",
			Value: application.FilterAll,
		},
		&cli.StringFlag{
			Name:  "crypto",
			Usage: "only ads trading this crypto symbol",
			Value: application.FilterAll,
		},
		&cli.StringFlag{
			Name:  "fiat",
			Usage: "only ads trading against this fiat currency",
			Value: application.FilterAll,
		},
		&cli.StringFlag{
			Name:  "payment_method",
			Usage: "only ads accepting this payment method",
			Value: application.FilterAll,
		},
		&cli.StringFlag{
			Name:  "query",
			Usage: "only ads whose advertiser name contains this text",
		},
		&cli.BoolFlag{
			Name:  "mine",
			Usage: "list your own ads instead, inactive ones included",
		},
	},
	Action: listOffersAction,
}

func listOffersAction(ctx *cli.Context) error {
	svc, cleanup, err := getServices()
	if err != nil {
		return err
	}
	defer cleanup()

	if ctx.Bool("mine") {
		userId, _, err := getActor(context.Background())
		if err != nil {
			return err
		}
		offers, err := svc.offerSvc.ListOffersForOwner(context.Background(), userId)
		if err != nil {
			return err
		}
		printRespJSON(offers)
		return nil
	}

	offers, err := svc.offerSvc.ListOffers(
		context.Background(), application.ListOffersFilter{
			Type:          ctx.String("type"),
			Crypto:        ctx.String("crypto"),
			Fiat:          ctx.String("fiat"),
			PaymentMethod: ctx.String("payment_method"),
			Query:         ctx.String("query"),
		},
	)
	if err != nil {
		return err
	}

	printRespJSON(offers)
	return nil
}
