package commands

import (
	"combo-scraper/lib/serviceutil"
	"combo-scraper/lib/telemetry"
	"combo-scraper/services/comboscraper"
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	configPath string
	verbose    bool

	// cfg is loaded before any subcommand runs.
	cfg comboscraper.Config
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", comboscraper.ConfigFile, "The config file, a <name>.local.<ext> next to it overrides it.")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging.")
}

var rootCmd = &cobra.Command{
	Use:   "combo-scraper",
	Short: "combo-scraper collects character combos from a combo listing site.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		telemetry.InitSlog(verbose)

		loaded, err := comboscraper.ReadConfig(configPath)
		if err != nil {
			serviceutil.Fatal("failed to read config", err)
		}
		cfg = loaded
	},
	SilenceUsage: true,
}

func ExecuteContext(ctx context.Context) error {
	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	return err
}
