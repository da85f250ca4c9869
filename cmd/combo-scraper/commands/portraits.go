package commands

import (
	"github.com/spf13/cobra"
)

var portraitsInput string

func init() {
	portraitsCmd.Flags().StringVar(&portraitsInput, "in", "", "The scraped combos.json, defaults to the one in the output directory.")
	rootCmd.AddCommand(portraitsCmd)
}

var portraitsCmd = &cobra.Command{
	Use:   "portraits [--in <path/to/combos.json>]",
	Short: "Replaces the portrait directory with the portraits of every character that has combos.",
	RunE: func(cmd *cobra.Command, args []string) error {
		rs := loadResults(portraitsInput)
		client := newClient("")

		_, err := client.SyncPortraits(cmd.Context(), rs, cfg.PortraitUrl(), cfg.PortraitDir)
		return err
	},
}
