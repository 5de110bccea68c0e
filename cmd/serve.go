package cmd

import (
	"context"
	"fmt"

	"github.com/urfave/cli"

	"github.com/thedakshnailwal/Hospital-Management-System/cmd/common"
)

func serve(ctx *cli.Context) error {
	if ctx.Args().First() == "help" {
		return cli.ShowCommandHelp(ctx, ctx.Command.Name)
	}
	client, err := newClient(context.Background())
	if err != nil {
		common.PrintRuntimeErr(ctx, "serve", "new_client", err)
		return nil
	}
	defer client.Close()

	res, err := client.ServeNext(context.Background())
	if err != nil {
		common.PrintRuntimeErr(ctx, "serve", "serve_next", err)
		return nil
	}
	if res.Empty || res.Served == nil {
		fmt.Println("No patients waiting.")
		return nil
	}
	r := res.Served
	fmt.Printf("Now serving: %s (%s, severity %d)\n", r.Name, r.Department, r.Severity)
	return nil
}
