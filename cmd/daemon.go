package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli"

	"github.com/thedakshnailwal/Hospital-Management-System/cmd/common"
	"github.com/thedakshnailwal/Hospital-Management-System/internal/config"
)

func daemon(ctx *cli.Context) error {
	if ctx.Args().First() == "help" {
		return cli.ShowCommandHelp(ctx, ctx.Command.Name)
	}
	dir, err := config.Dir()
	if err != nil {
		common.PrintRuntimeErr(ctx, "daemon", "config_dir", err)
		return nil
	}
	c, err := initDaemonComponents(configFs, dir, currentBuildArgs, os.Stderr)
	if err != nil {
		common.PrintRuntimeErr(ctx, "daemon", "init", err)
		return nil
	}
	defer c.Close()

	sctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := c.Run(sctx); err != nil {
		common.PrintRuntimeErr(ctx, "daemon", "run", err)
	}
	return nil
}
