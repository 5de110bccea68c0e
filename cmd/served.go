package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli"

	"github.com/thedakshnailwal/Hospital-Management-System/cmd/common"
)

// timeNow anchors the relative "served" column.
var timeNow = time.Now

func served(ctx *cli.Context) error {
	if ctx.Args().First() == "help" {
		return cli.ShowCommandHelp(ctx, ctx.Command.Name)
	}
	client, err := newClient(context.Background())
	if err != nil {
		common.PrintRuntimeErr(ctx, "served", "new_client", err)
		return nil
	}
	defer client.Close()

	s, err := client.Served(context.Background())
	if err != nil {
		common.PrintRuntimeErr(ctx, "served", "get_served", err)
		return nil
	}
	if len(s.Records) == 0 {
		fmt.Printf("Nobody served yet on %s.\n", s.Date)
		return nil
	}
	now := timeNow()
	txt := fmt.Sprintf("Served on %s:", s.Date)
	txt += "\n\n-------------------------------------------------------------------------------"
	txt += "\n|Num|          Name          |       Department       |Sev|      Served      |"
	txt += "\n|---|------------------------|------------------------|---|------------------|"
	for i, r := range s.Records {
		txt += fmt.Sprintf("\n|%3d|%s|%s|%3d|%s|",
			i+1,
			common.Beaut(common.Clip(r.Name, 22), 24),
			common.Beaut(common.Clip(r.Department, 22), 24),
			r.Severity,
			common.Beaut(humanize.RelTime(r.ServedAt, now, "ago", "from now"), 18),
		)
	}
	txt += "\n-------------------------------------------------------------------------------"
	fmt.Println(txt)
	return nil
}
