package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v2"
)

var deactivatead = cli.Command{
	Name:  "deactivate-ad",
	Usage: "hide one of your trade advertisements from the marketplace",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "offer_id",
			Usage:    "the id of the advertisement to deactivate",
			Required: true,
		},
	},
	Action: deactivateAdAction,
}

func deactivateAdAction(ctx *cli.Context) error {
	svc, cleanup, err := getServices()
	if err != nil {
		return err
	}
	defer cleanup()

	userId, _, err := getActor(context.Background())
	if err != nil {
		return err
	}

	if err := svc.offerSvc.DeactivateOffer(
		context.Background(), userId, ctx.String("offer_id"),
	); err != nil {
		return err
	}

	fmt.Println("advertisement is deactivated")
	return nil
}
