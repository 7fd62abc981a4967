package main

import (
	"context"

	"github.com/urfave/cli/v2"
)

var list = cli.Command{
	Name:  "list",
	Usage: "list the node's view of the offer book",
	Flags: []cli.Flag{
		nodeFlag,
		&cli.StringFlag{
			Name:  "currency",
			Usage: "only list offers trading the given asset code",
		},
	},
	Action: listAction,
}

func listAction(ctx *cli.Context) error {
	entries, err := getClient(ctx).List(
		context.Background(), ctx.String("currency"),
	)
	if err != nil {
		return err
	}

	printRespJSON(entries)

	return nil
}
