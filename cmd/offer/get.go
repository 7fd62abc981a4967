package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v2"
)

var get = cli.Command{
	Name:      "get",
	Usage:     "fetch a single offer record by its content hash",
	ArgsUsage: "<hash>",
	Flags:     []cli.Flag{nodeFlag},
	Action:    getAction,
}

func getAction(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return fmt.Errorf("missing record hash")
	}

	entry, err := getClient(ctx).Get(context.Background(), ctx.Args().First())
	if err != nil {
		return err
	}

	printRespJSON(entry)

	return nil
}
