package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"swdeploy/internal/components/telemetry"
	"swdeploy/internal/config"

	"github.com/spf13/cobra"
)

var (
	configPath string
	verbose    bool

	cfg config.Config
	tel telemetry.Telemetry
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to the config file, defaults to the nearest "+config.DefaultName+".")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log every request.")
}

var rootCmd = &cobra.Command{
	Use:           "swdeploy",
	Short:         "swdeploy pushes local scraper source code to scraperwiki.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		telemetry.InitSlog(verbose)

		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}

		if cfg.Telemetry != nil {
			tel, err = telemetry.Setup(cmd.Context(), "swdeploy", *cfg.Telemetry)
			if err != nil {
				return fmt.Errorf("setup telemetry: %w", err)
			}
		}
		return nil
	},
}

// ExecuteContext runs the command line and returns the process exit code.
func ExecuteContext(ctx context.Context) int {
	err := rootCmd.ExecuteContext(ctx)

	shutdownErr := tel.Shutdown(context.Background())
	if shutdownErr != nil {
		slog.Warn("failed to flush telemetry", "err", shutdownErr)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
