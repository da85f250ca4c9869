package commands

import (
	"combo-scraper/lib/serviceutil"
	"combo-scraper/lib/textutil"
	"combo-scraper/services/comboscraper"
	"combo-scraper/services/comboscraper/db"
	"log/slog"
	"time"

	"github.com/spf13/cobra"
)

var scrapeFlags struct {
	out            string
	characters     string
	characterLimit int
	pageLimit      int
	delay          time.Duration
	timeout        time.Duration
	db             string
	dumpHttp       string
}

func init() {
	flags := scrapeCmd.Flags()
	flags.StringVar(&scrapeFlags.out, "out", "", "The directory combos.json and the icon cache are written to.")
	flags.StringVar(&scrapeFlags.characters, "characters", "", "A comma separated list of characters to scrape instead of the first --character-limit.")
	flags.IntVar(&scrapeFlags.characterLimit, "character-limit", 0, "The number of characters to scrape, 0 scrapes all of them.")
	flags.IntVar(&scrapeFlags.pageLimit, "page-limit", 0, "The number of listing pages read per character, 0 reads until the end.")
	flags.DurationVar(&scrapeFlags.delay, "delay", 0, "The wait between listing pages.")
	flags.DurationVar(&scrapeFlags.timeout, "timeout", 0, "The timeout of each request.")
	flags.StringVar(&scrapeFlags.db, "db", "", "A sqlite database the results are also written to.")
	flags.StringVar(&scrapeFlags.dumpHttp, "dump-http", "", "Write every http exchange to this directory, requires --verbose.")
	rootCmd.AddCommand(scrapeCmd)
}

// applyScrapeFlags overrides cfg with the flags that were given.
func applyScrapeFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	if flags.Changed("out") {
		cfg.OutputDir = scrapeFlags.out
	}
	if flags.Changed("characters") {
		cfg.Characters = textutil.SplitList(scrapeFlags.characters)
	}
	if flags.Changed("character-limit") {
		cfg.CharacterLimit = scrapeFlags.characterLimit
	}
	if flags.Changed("page-limit") {
		cfg.PageLimit = scrapeFlags.pageLimit
	}
	if flags.Changed("delay") {
		cfg.PageDelay = scrapeFlags.delay.String()
	}
	if flags.Changed("timeout") {
		cfg.Timeout = scrapeFlags.timeout.String()
	}
	if flags.Changed("db") {
		cfg.SqlitePath = scrapeFlags.db
	}
}

var scrapeCmd = &cobra.Command{
	Use:   "scrape [--out <dir>] [--characters jin,kazuya] [--db <path/to/output.db>]",
	Short: "Scrapes the combos of every selected character and writes them to combos.json.",
	RunE: func(cmd *cobra.Command, args []string) error {
		applyScrapeFlags(cmd)
		client := newClient(scrapeFlags.dumpHttp)

		opts := comboscraper.RunOptions{
			OutputDir:      cfg.OutputDir,
			CharacterLimit: cfg.CharacterLimit,
			Characters:     cfg.Characters,
		}
		if cfg.SqlitePath != "" {
			store, err := db.Open(cfg.SqlitePath)
			if err != nil {
				serviceutil.Fatal("failed to open db", err)
			}
			defer store.Close()
			opts.Exporter = store
		}

		t1 := time.Now()
		rs, err := comboscraper.Run(cmd.Context(), client, opts)
		if err != nil {
			return err
		}
		t2 := time.Now()

		slog.Info("scraping time", "seconds", t2.Sub(t1).Seconds(), "characters", rs.Len())
		return nil
	},
}
