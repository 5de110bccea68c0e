package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli"
	"github.com/vbauerster/mpb/v8"

	"github.com/thedakshnailwal/Hospital-Management-System/cmd/common"
)

// statsOutput receives the histogram bars.
var statsOutput io.Writer = os.Stdout

func stats(ctx *cli.Context) error {
	if ctx.Args().First() == "help" {
		return cli.ShowCommandHelp(ctx, ctx.Command.Name)
	}
	client, err := newClient(context.Background())
	if err != nil {
		common.PrintRuntimeErr(ctx, "stats", "new_client", err)
		return nil
	}
	defer client.Close()

	res, err := client.Severity(context.Background())
	if err != nil {
		common.PrintRuntimeErr(ctx, "stats", "get_severity", err)
		return nil
	}
	if len(res.Counts) == 0 {
		fmt.Println("No severity data.")
		return nil
	}
	lo, hi := res.Min, res.Max
	if hi == 0 {
		lo, hi = bounds(res.Counts)
	}
	fmt.Printf("Patients by severity (%d most urgent, %d least):\n", lo, hi)
	p := mpb.New(mpb.WithOutput(statsOutput), mpb.WithWidth(60), mpb.WithAutoRefresh())
	common.InitSeverityBars(p, res.Counts, lo, hi)
	p.Wait()

	if len(res.Departments) == 0 {
		return nil
	}
	names := make([]string, 0, len(res.Departments))
	for d := range res.Departments {
		names = append(names, d)
	}
	sort.Slice(names, func(i, j int) bool {
		ci, cj := res.Departments[names[i]], res.Departments[names[j]]
		if ci != cj {
			return ci > cj
		}
		return names[i] < names[j]
	})
	fmt.Println("\nVisits by department:")
	for _, d := range names {
		fmt.Printf("  %-24s %s\n", common.Clip(d, 24), humanize.Comma(int64(res.Departments[d])))
	}
	return nil
}

func bounds(counts map[int]int) (lo, hi int) {
	first := true
	for s := range counts {
		if first || s < lo {
			lo = s
		}
		if first || s > hi {
			hi = s
		}
		first = false
	}
	return
}
