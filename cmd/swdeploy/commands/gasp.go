package commands

import (
	"log/slog"
	"swdeploy/internal/gasp"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(gaspCmd)
}

var gaspCmd = &cobra.Command{
	Use:   "gasp",
	Short: "Checks the sunlight settings a GASP scraper is started with.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		helper, err := gasp.NewHelper(cfg.Sunlight.ApiKey, cfg.Sunlight.BioguideId)
		if err != nil {
			return err
		}
		slog.Info("gasp helper ready", "bioguide_id", helper.BioguideID)
		return nil
	},
}
