package commands

import (
	"combo-scraper/internal/combos"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var summaryInput string

func init() {
	summaryCmd.Flags().StringVar(&summaryInput, "in", "", "The scraped combos.json, defaults to the one in the output directory.")
	rootCmd.AddCommand(summaryCmd)
}

var summaryCmd = &cobra.Command{
	Use:   "summary [--in <path/to/combos.json>]",
	Short: "Prints combo counts and the best damage of every scraped character.",
	Run: func(cmd *cobra.Command, args []string) {
		rs := loadResults(summaryInput)

		t := newTable()
		t.AppendHeader(table.Row{"Character", "Combos", "Heat", "Wall", "BnB", "Best damage", "Max hits", "Carry"})
		for _, s := range combos.Summarize(rs) {
			t.AppendRow(table.Row{
				s.Display,
				s.Total,
				s.ByType[combos.ComboHeat],
				s.ByType[combos.ComboWall],
				s.ByType[combos.ComboBnB],
				s.BestDamage,
				s.MaxHits,
				combos.Carry(s.MaxHits),
			})
		}
		t.Render()
	},
}
