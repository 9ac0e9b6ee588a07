package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v2"
)

var notifications = cli.Command{
	Name:  "notifications",
	Usage: "list your notifications and mark them read",
	Subcommands: []*cli.Command{
		{
			Name:   "list",
			Usage:  "print your notifications, newest first",
			Action: notificationsListAction,
		},
		{
			Name:  "read",
			Usage: "mark a notification as read",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "notification_id",
					Usage:    "the id of the notification",
					Required: true,
				},
			},
			Action: notificationsReadAction,
		},
	},
}

func notificationsListAction(_ *cli.Context) error {
	svc, cleanup, err := getServices()
	if err != nil {
		return err
	}
	defer cleanup()

	userId, _, err := getActor(context.Background())
	if err != nil {
		return err
	}

	list, err := svc.notificationSvc.ListForUser(context.Background(), userId)
	if err != nil {
		return err
	}

	printRespJSON(list)
	return nil
}

func notificationsReadAction(ctx *cli.Context) error {
	svc, cleanup, err := getServices()
	if err != nil {
		return err
	}
	defer cleanup()

	if err := svc.notificationSvc.MarkRead(
		context.Background(), ctx.String("notification_id"),
	); err != nil {
		return err
	}

	fmt.Println("notification is read")
	return nil
}
