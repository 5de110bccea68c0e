package cmd

import (
	"fmt"
	"runtime"

	"github.com/urfave/cli"

	"github.com/thedakshnailwal/Hospital-Management-System/cmd/common"
)

type BuildArgs struct {
	Version   string
	BuildType string
	Date      string
	Commit    string
}

// currentBuildArgs is reported by the daemon's system.getVersion.
var currentBuildArgs BuildArgs

func Execute(args []string, bArgs BuildArgs) error {
	currentBuildArgs = bArgs
	app := cli.App{
		Name:                  "hms",
		HelpName:              "hms",
		Usage:                 "A hospital admission queue.",
		Version:               fmt.Sprintf("%s-%s", bArgs.Version, bArgs.BuildType),
		UsageText:             "hms <command> [arguments...]",
		Description:           DESCRIPTION,
		CustomAppHelpTemplate: HELP_TEMPL,
		OnUsageError:          common.UsageErrorCallback,
		Commands: []cli.Command{
			{
				Name:               "daemon",
				Usage:              "run the admission daemon",
				Action:             daemon,
				OnUsageError:       common.UsageErrorCallback,
				CustomHelpTemplate: CMD_HELP_TEMPL,
				Description:        DaemonDescription,
			},
			{
				Name:                   "admit",
				Aliases:                []string{"a"},
				Usage:                  "book a patient into the waiting queue",
				UsageText:              "<name> --severity N --department D",
				Action:                 admit,
				OnUsageError:           common.UsageErrorCallback,
				CustomHelpTemplate:     CMD_HELP_TEMPL,
				Description:            AdmitDescription,
				UseShortOptionHandling: true,
				Flags:                  admitFlags,
			},
			{
				Name:               "serve",
				Aliases:            []string{"s"},
				Usage:              "call the next patient",
				Action:             serve,
				OnUsageError:       common.UsageErrorCallback,
				CustomHelpTemplate: CMD_HELP_TEMPL,
				Description:        ServeDescription,
			},
			{
				Name:               "list",
				Aliases:            []string{"l"},
				Usage:              "display the waiting queue",
				Action:             list,
				OnUsageError:       common.UsageErrorCallback,
				CustomHelpTemplate: CMD_HELP_TEMPL,
				Description:        ListDescription,
			},
			{
				Name:               "served",
				Usage:              "display today's served log",
				Action:             served,
				OnUsageError:       common.UsageErrorCallback,
				CustomHelpTemplate: CMD_HELP_TEMPL,
				Description:        ServedDescription,
			},
			{
				Name:                   "reset",
				Usage:                  "empty the queue and the served log",
				Action:                 reset,
				OnUsageError:           common.UsageErrorCallback,
				CustomHelpTemplate:     CMD_HELP_TEMPL,
				Description:            ResetDescription,
				UseShortOptionHandling: true,
				Flags:                  resetFlags,
			},
			{
				Name:               "stats",
				Usage:              "display the severity histogram",
				Action:             stats,
				OnUsageError:       common.UsageErrorCallback,
				CustomHelpTemplate: CMD_HELP_TEMPL,
				Description:        StatsDescription,
			},
			{
				Name:    "help",
				Aliases: []string{"h"},
				Usage:   "prints the help message",
				Action:  common.Help,
			},
			{
				Name:               "version",
				Aliases:            []string{"v"},
				Usage:              "prints installed version of hms",
				UsageText:          " ",
				CustomHelpTemplate: CMD_HELP_TEMPL,
				Action:             common.GetVersion,
			},
		},
		Action:      common.Help,
		HideHelp:    true,
		HideVersion: true,
	}
	common.VersionCmdStr = fmt.Sprintf("%s %s (%s_%s)\nBuild: %s=%s\n",
		app.Name,
		app.Version,
		runtime.GOOS,
		runtime.GOARCH,
		bArgs.Date, bArgs.Commit,
	)
	return app.Run(args)
}
