package commands

import (
	"fmt"
	"io"
	"swdeploy/internal/components/chrono"
	"swdeploy/internal/components/telemetry"
	"swdeploy/internal/config"
	"swdeploy/internal/credentials"
	"swdeploy/internal/restyutil"
	"swdeploy/internal/scrapers/scraperwiki"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(pushCmd)
}

func newClient(cfg config.Config) (*scraperwiki.Client, error) {
	opts := scraperwiki.ClientOptions{
		BaseUrl:           cfg.BaseUrl,
		CookieFile:        cfg.CookieFile,
		CloudflareBypass:  *cfg.CloudflareBypass,
		RequestsPerSecond: cfg.RequestsPerSecond,
		Time:              chrono.NewStandardImpl(),
		Tel:               telemetry.SlogAPI{},
	}
	if cfg.DumpDir != "" {
		out, err := restyutil.NewFilesystemOutput(cfg.DumpDir)
		if err != nil {
			return nil, fmt.Errorf("prepare dump dir: %w", err)
		}
		opts.Dump = out
	}
	return scraperwiki.NewClient(opts)
}

func renderReport(out io.Writer, report scraperwiki.PushReport) {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(out)
	t.SetTitle(report.Scraper)
	t.AppendHeader(table.Row{"Step", "Status", "Duration"})
	for _, step := range report.Steps {
		status := "-"
		if step.Status != 0 {
			status = fmt.Sprint(step.Status)
		}
		t.AppendRow(table.Row{step.Name, status, step.Duration.Round(time.Millisecond).String()})
	}
	t.Render()
}

var pushCmd = &cobra.Command{
	Use:   "push <scraper> <path/to/source>",
	Short: "Replaces the source of a scraperwiki scraper with a local file.",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		creds, err := credentials.Resolve(cfg.Credentials(), credentials.NewTerminalPrompter())
		if err != nil {
			return err
		}

		client, err := newClient(cfg)
		if err != nil {
			return err
		}

		report, err := client.Push(cmd.Context(), creds, args[0], args[1])
		if len(report.Steps) > 0 {
			renderReport(cmd.OutOrStdout(), report)
		}
		return err
	},
}
