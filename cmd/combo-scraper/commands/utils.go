package commands

import (
	"combo-scraper/internal/combos"
	"combo-scraper/lib/restyutil"
	"combo-scraper/lib/scrapers/combosite"
	"combo-scraper/lib/serviceutil"
	"os"
	"path/filepath"

	"github.com/jedib0t/go-pretty/v6/table"
)

func newTable() table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(os.Stdout)
	return t
}

// newClient builds a site client from cfg, dumping every exchange to
// dumpDir when it is set.
func newClient(dumpDir string) *combosite.Client {
	var dump restyutil.InstrumentOutput
	if dumpDir != "" {
		output, err := restyutil.NewFilesystemOutput(dumpDir)
		if err != nil {
			serviceutil.Fatal("failed to prepare http dump directory", err)
		}
		dump = output
	}

	opts, err := cfg.ClientOptions(dump)
	if err != nil {
		serviceutil.Fatal("invalid config", err)
	}
	client, err := combosite.NewClient(opts)
	if err != nil {
		serviceutil.Fatal("failed to create client", err)
	}
	return client
}

// loadResults reads the result set at path, defaulting to the one the
// scrape command writes.
func loadResults(path string) *combos.ResultSet {
	if path == "" {
		path = filepath.Join(cfg.OutputDir, combos.ResultFile)
	}
	rs, err := combos.Load(path)
	if err != nil {
		serviceutil.Fatal("failed to read results", err)
	}
	return rs
}
