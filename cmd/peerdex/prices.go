package main

import (
	"context"

	"github.com/urfave/cli/v2"
)

var prices = cli.Command{
	Name:   "prices",
	Usage:  "print the cached spot prices",
	Action: pricesAction,
}

func pricesAction(_ *cli.Context) error {
	svc, cleanup, err := getServices()
	if err != nil {
		return err
	}
	defer cleanup()

	snapshot, err := svc.priceSvc.GetCurrentPrices(context.Background())
	if err != nil {
		return err
	}

	printRespJSON(snapshot)
	return nil
}
