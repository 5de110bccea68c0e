package cmd

import "time"

const (
	DEF_DIAL_TIMEOUT     = time.Second * 5
	DEF_SHUTDOWN_TIMEOUT = time.Second * 10
)

const DESCRIPTION = `
hms runs the admission desk of a hospital. A background daemon keeps
today's waiting queue ordered by severity and arrival, and every other
command talks to it over JSON-RPC.
`

const (
	DaemonDescription = `The daemon command starts the hms daemon in the foreground.
It restores today's queue from the configured store, serves the
JSON-RPC endpoints and empties the queue when the day rolls over.

Example:
        hms daemon

`
	AdmitDescription = `The admit command books a patient into today's waiting queue.
Lower severities are served first; equal severities are served in
the order they were admitted.

Example:
        hms admit "Jane Doe" --severity 2 --department Cardiology

`
	ServeDescription = `The serve command calls the next patient, removing them from
the waiting queue and recording them in today's served log.

Example:
        hms serve

`
	ListDescription = `The list command displays the waiting queue in the order
patients will be served.

Example:
        hms list

`
	ServedDescription = `The served command displays every patient served today.

Example:
        hms served

`
	ResetDescription = `The reset command empties the waiting queue and the served log
and restarts ticket numbers at zero. Use --analytics to also zero
the severity histogram.

Example:
        hms reset --yes

`
	StatsDescription = `The stats command draws the severity histogram of the patients
currently counted by the analytics tracker, followed by visits per
department.

Example:
        hms stats

`
)

const HELP_TEMPL = `Usage: {{if .UsageText}}{{.UsageText}}{{else}}{{.HelpName}} {{if .VisibleFlags}}[global options]{{end}}{{if .Commands}} command [command options]{{end}} {{if .ArgsUsage}}{{.ArgsUsage}}{{else}}[arguments...]{{end}}{{end}}
{{.Description}}{{if .VisibleCommands}}
Commands:{{range .VisibleCategories}}{{if .Name}}

{{.Name}}:{{range .VisibleCommands}}
  {{join .Names ", "}}{{"\t"}}{{.Usage}}{{end}}{{else}}{{range .VisibleCommands}}
{{"\t"}}{{index .Names 0}}{{"\t:\t"}}{{.Usage}}{{end}}{{end}}{{end}}{{end}}{{if .VisibleFlags}}{{end}}

Use "{{.HelpName}} help <command>" for more information about any command.

`

const CMD_HELP_TEMPL = `{{if .Description}}{{.Description}}{{else}}{{.HelpName}} - {{.Usage}}

{{end}}Usage:
        {{.HelpName}} {{if .UsageText}}{{.UsageText}}{{else}}[arguments...]{{end}}{{if .VisibleFlags}}

Supported Flags:{{range .VisibleFlags}}
  {{.}}{{end}}{{end}}

`
