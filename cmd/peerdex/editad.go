package main

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/urfave/cli/v2"

	"github.com/peerdex-network/peerdex-engine/internal/core/domain"
)

var editad = cli.Command{
	Name:  "edit-ad",
	Usage: "update one of your trade advertisements, only the given flags change",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "offer_id",
			Usage:    "the id of the advertisement to edit",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "price",
			Usage: "the new fiat price per crypto unit",
		},
		&cli.StringFlag{
			Name:  "min",
			Usage: "the new smallest fiat amount accepted per order",
		},
		&cli.StringFlag{
			Name:  "max",
			Usage: "the new largest fiat amount accepted per order",
		},
		&cli.StringFlag{
			Name:  "amount",
			Usage: "the new crypto amount available for trading",
		},
		&cli.StringSliceFlag{
			Name:  "payment_method",
			Usage: "replaces the accepted payment methods, repeatable",
		},
		&cli.StringSliceFlag{
			Name:  "payment_detail",
			Usage: "replaces the payment instructions, key=value, repeatable",
		},
		&cli.StringFlag{
			Name:  "terms",
			Usage: "the new free-text trade terms",
		},
	},
	Action: editAdAction,
}

func editAdAction(ctx *cli.Context) error {
	svc, cleanup, err := getServices()
	if err != nil {
		return err
	}
	defer cleanup()

	userId, _, err := getActor(context.Background())
	if err != nil {
		return err
	}

	var patch domain.OfferPatch
	for _, field := range []struct {
		flag   string
		target **decimal.Decimal
	}{
		{"price", &patch.Price},
		{"min", &patch.LimitMin},
		{"max", &patch.LimitMax},
		{"amount", &patch.AvailableAmount},
	} {
		if !ctx.IsSet(field.flag) {
			continue
		}
		value, err := decimal.NewFromString(ctx.String(field.flag))
		if err != nil {
			return fmt.Errorf("invalid %s: %w", field.flag, err)
		}
		*field.target = &value
	}
	if ctx.IsSet("payment_method") {
		patch.PaymentMethods = ctx.StringSlice("payment_method")
	}
	if ctx.IsSet("payment_detail") {
		details, err := parsePaymentDetails(ctx.StringSlice("payment_detail"))
		if err != nil {
			return err
		}
		patch.PaymentDetails = details
	}
	if ctx.IsSet("terms") {
		terms := ctx.String("terms")
		patch.Terms = &terms
	}

	offer, err := svc.offerSvc.UpdateOffer(
		context.Background(), userId, ctx.String("offer_id"), patch,
	)
	if err != nil {
		return err
	}

	printRespJSON(offer)
	return nil
}
