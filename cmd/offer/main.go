package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/offerbook-network/offerbook-daemon/pkg/bookclient"
)

const requestTimeout = 30 * time.Second

var nodeFlag = &cli.StringFlag{
	Name:  "node",
	Usage: "base url of the storing node to talk to",
	Value: "http://localhost:9945",
}

func main() {
	app := cli.NewApp()

	app.Version = "0.0.1"
	app.Name = "offer CLI"
	app.Usage = "Command line interface for offerbook daemon users"
	app.Commands = append(
		app.Commands,
		&list,
		&get,
		&publish,
		&remove,
	)

	err := app.Run(os.Args)
	if err != nil {
		fatal(err)
	}
}

func getClient(ctx *cli.Context) *bookclient.Client {
	return bookclient.NewClient(ctx.String("node"), requestTimeout)
}

func printRespJSON(resp interface{}) {
	jsonBytes, err := json.MarshalIndent(resp, "", "\t")
	if err != nil {
		fmt.Println("unable to decode response: ", err)
		return
	}

	fmt.Println(string(jsonBytes))
}

func fatal(err error) {
	_, _ = fmt.Fprintf(os.Stderr, "[offer] %v\n", err)
	os.Exit(1)
}
