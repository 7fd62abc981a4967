package main

import (
	"context"
	"encoding/hex"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/offerbook-network/offerbook-daemon/pkg/bookclient"
)

var publish = cli.Command{
	Name:  "publish",
	Usage: "publish a serialized offer record to one or more storing nodes",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "record",
			Usage:    "hex of the serialized offer record",
			Required: true,
		},
		&cli.StringSliceFlag{
			Name:  "nodes",
			Usage: "base urls of the storing nodes to publish to",
			Value: cli.NewStringSlice("http://localhost:9945"),
		},
	},
	Action: publishAction,
}

func publishAction(ctx *cli.Context) error {
	wireBytes, err := hex.DecodeString(ctx.String("record"))
	if err != nil {
		return fmt.Errorf("record must be a hex string: %s", err)
	}

	nodes := ctx.StringSlice("nodes")
	if err := bookclient.StoreToMany(
		context.Background(), nodes, wireBytes, requestTimeout,
	); err != nil {
		return err
	}

	fmt.Printf("published to %d node(s)\n", len(nodes))

	return nil
}
