package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/urfave/cli"

	"github.com/thedakshnailwal/Hospital-Management-System/cmd/common"
	"github.com/thedakshnailwal/Hospital-Management-System/pkg/hmscli"
)

var (
	severity   int
	department string

	admitFlags = []cli.Flag{
		cli.IntFlag{
			Name:        "severity, s",
			Usage:       "severity of the patient's condition, lower is served first (required)",
			Destination: &severity,
		},
		cli.StringFlag{
			Name:        "department, d",
			Usage:       "department the patient is booked into (required)",
			Destination: &department,
		},
	}
)

func admit(ctx *cli.Context) error {
	if ctx.Args().First() == "help" {
		return cli.ShowCommandHelp(ctx, ctx.Command.Name)
	}
	name := strings.TrimSpace(strings.Join(ctx.Args(), " "))
	switch {
	case name == "":
		return common.PrintErrWithCmdHelp(ctx, errors.New("no patient name provided"))
	case !ctx.IsSet("severity"):
		return common.PrintErrWithCmdHelp(ctx, errors.New("--severity is required"))
	case strings.TrimSpace(department) == "":
		return common.PrintErrWithCmdHelp(ctx, errors.New("--department is required"))
	}

	client, err := newClient(context.Background())
	if err != nil {
		common.PrintRuntimeErr(ctx, "admit", "new_client", err)
		return nil
	}
	defer client.Close()

	e, err := client.Admit(context.Background(), name, severity, department)
	switch {
	case hmscli.IsDuplicate(err):
		fmt.Printf("%s: %s is already waiting in %s\n", ctx.App.HelpName, name, department)
		return nil
	case hmscli.IsInvalidParams(err):
		common.PrintRuntimeErr(ctx, "admit", "validate", err)
		return nil
	case err != nil:
		common.PrintRuntimeErr(ctx, "admit", "admit", err)
		return nil
	}
	fmt.Printf("Admitted %s to %s with severity %d (ticket #%d)\n",
		e.Name, e.Department, e.Severity, e.Sequence)
	return nil
}
