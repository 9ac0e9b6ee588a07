package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/urfave/cli/v2"

	"github.com/peerdex-network/peerdex-engine/internal/core/application"
)

var postad = cli.Command{
	Name:  "post-ad",
	Usage: "publish a new trade advertisement",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "type",
			Usage:    "buy or sell, from the advertiser's perspective",
			Required: true,
		},
		&cli.StringFlag{
			Name:     "crypto",
			Usage:    "the crypto symbol traded, ie. BTC",
			Required: true,
		},
		&cli.StringFlag{
			Name:     "fiat",
			Usage:    "the fiat currency traded against, ie. USD",
			Required: true,
		},
		&cli.StringFlag{
			Name:     "price",
			Usage:    "the fiat price per crypto unit",
			Required: true,
		},
		&cli.StringFlag{
			Name:     "min",
			Usage:    "the smallest fiat amount accepted per order",
			Required: true,
		},
		&cli.StringFlag{
			Name:     "max",
			Usage:    "the largest fiat amount accepted per order",
			Required: true,
		},
		&cli.StringFlag{
			Name:     "amount",
			Usage:    "the crypto amount available for trading",
			Required: true,
		},
		&cli.StringSliceFlag{
			Name:     "payment_method",
			Usage:    "a payment method accepted by the advertiser, repeatable",
			Required: true,
		},
		&cli.StringSliceFlag{
			Name:  "payment_detail",
			Usage: "a key=value payment instruction shared with the counterparty, repeatable",
		},
		&cli.StringFlag{
			Name:  "terms",
			Usage: "free-text trade terms shown on the ad",
		},
	},
	Action: postAdAction,
}

func postAdAction(ctx *cli.Context) error {
	svc, cleanup, err := getServices()
	if err != nil {
		return err
	}
	defer cleanup()

	userId, userName, err := getActor(context.Background())
	if err != nil {
		return err
	}

	price, err := decimal.NewFromString(ctx.String("price"))
	if err != nil {
		return fmt.Errorf("invalid price: %w", err)
	}
	limitMin, err := decimal.NewFromString(ctx.String("min"))
	if err != nil {
		return fmt.Errorf("invalid min limit: %w", err)
	}
	limitMax, err := decimal.NewFromString(ctx.String("max"))
	if err != nil {
		return fmt.Errorf("invalid max limit: %w", err)
	}
	amount, err := decimal.NewFromString(ctx.String("amount"))
	if err != nil {
		return fmt.Errorf("invalid amount: %w", err)
	}
	paymentDetails, err := parsePaymentDetails(ctx.StringSlice("payment_detail"))
	if err != nil {
		return err
	}

	offer, err := svc.offerSvc.CreateOffer(
		context.Background(), application.CreateOfferReq{
			OwnerId:         userId,
			OwnerName:       userName,
			Type:            ctx.String("type"),
			CryptoSymbol:    ctx.String("crypto"),
			FiatCurrency:    ctx.String("fiat"),
			Price:           price,
			LimitMin:        limitMin,
			LimitMax:        limitMax,
			AvailableAmount: amount,
			PaymentMethods:  ctx.StringSlice("payment_method"),
			PaymentDetails:  paymentDetails,
			Terms:           ctx.String("terms"),
		},
	)
	if err != nil {
		return err
	}

	printRespJSON(offer)
	return nil
}

func parsePaymentDetails(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}

	details := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, found := strings.Cut(pair, "=")
		if !found || key == "" {
			return nil, fmt.Errorf(
				"invalid payment detail %q, expected key=value", pair,
			)
		}
		details[key] = value
	}
	return details, nil
}
