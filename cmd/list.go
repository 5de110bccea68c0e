package cmd

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli"

	"github.com/thedakshnailwal/Hospital-Management-System/cmd/common"
)

func list(ctx *cli.Context) error {
	if ctx.Args().First() == "help" {
		return cli.ShowCommandHelp(ctx, ctx.Command.Name)
	}
	client, err := newClient(context.Background())
	if err != nil {
		common.PrintRuntimeErr(ctx, "list", "new_client", err)
		return nil
	}
	defer client.Close()

	w, err := client.Waiting(context.Background())
	if err != nil {
		common.PrintRuntimeErr(ctx, "list", "get_waiting", err)
		return nil
	}
	if len(w.Entries) == 0 {
		fmt.Printf("No patients waiting on %s.\n", w.Date)
		return nil
	}
	txt := fmt.Sprintf("Waiting patients on %s:", w.Date)
	txt += "\n\n----------------------------------------------------------------------"
	txt += "\n| Pos |Sev|Ticket|          Name          |       Department       |"
	txt += "\n|-----|---|------|------------------------|------------------------|"
	for i, e := range w.Entries {
		txt += fmt.Sprintf("\n|%s|%3d|%6d|%s|%s|",
			common.Beaut(humanize.Ordinal(i+1), 5),
			e.Severity,
			e.Sequence,
			common.Beaut(common.Clip(e.Name, 22), 24),
			common.Beaut(common.Clip(e.Department, 22), 24),
		)
	}
	txt += "\n----------------------------------------------------------------------"
	fmt.Println(txt)
	return nil
}
