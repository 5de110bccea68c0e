package cmd

import (
	"context"
	"fmt"

	"github.com/urfave/cli"

	"github.com/thedakshnailwal/Hospital-Management-System/cmd/common"
)

var (
	forceReset     bool
	resetAnalytics bool

	resetFlags = []cli.Flag{
		cli.BoolFlag{
			Name:        "yes, y",
			Usage:       "skip the confirmation prompt (default: false)",
			Destination: &forceReset,
		},
		cli.BoolFlag{
			Name:        "analytics, a",
			Usage:       "also zero the severity histogram (default: false)",
			Destination: &resetAnalytics,
		},
	}
)

func reset(ctx *cli.Context) error {
	if ctx.Args().First() == "help" {
		return cli.ShowCommandHelp(ctx, ctx.Command.Name)
	}
	if !confirm(command("reset"), forceReset) {
		return nil
	}
	client, err := newClient(context.Background())
	if err != nil {
		common.PrintRuntimeErr(ctx, "reset", "new_client", err)
		return nil
	}
	defer client.Close()

	if err := client.Reset(context.Background(), resetAnalytics); err != nil {
		common.PrintRuntimeErr(ctx, "reset", "reset", err)
		return nil
	}
	if resetAnalytics {
		fmt.Println("Cleared today's queue, served log and severity histogram!")
	} else {
		fmt.Println("Cleared today's queue and served log!")
	}
	return nil
}
