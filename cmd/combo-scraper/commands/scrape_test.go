package commands

import (
	"combo-scraper/services/comboscraper"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestApplyScrapeFlags(t *testing.T) {
	cfg = comboscraper.DefaultConfig()
	flags := scrapeCmd.Flags()
	require.NoError(t, flags.Set("characters", "Jin, kazuya,,"))
	require.NoError(t, flags.Set("character-limit", "0"))
	require.NoError(t, flags.Set("delay", "2s"))
	require.NoError(t, flags.Set("db", "out/combos.db"))

	applyScrapeFlags(scrapeCmd)

	require.Equal(t, []string{"jin", "kazuya"}, cfg.Characters)
	require.Equal(t, 0, cfg.CharacterLimit)
	require.Equal(t, "2s", cfg.PageDelay)
	require.Equal(t, "out/combos.db", cfg.SqlitePath)
	// untouched flags keep the config value
	require.Equal(t, comboscraper.DefaultConfig().OutputDir, cfg.OutputDir)
	require.Equal(t, 5, cfg.PageLimit)
	require.NoError(t, cfg.Validate())
}
