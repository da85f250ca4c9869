package commands

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(charactersCmd)
}

var charactersCmd = &cobra.Command{
	Use:   "characters",
	Short: "Lists the characters linked from the landing page.",
	RunE: func(cmd *cobra.Command, args []string) error {
		client := newClient("")
		characters, err := client.Discover(cmd.Context())
		if err != nil {
			return err
		}

		t := newTable()
		t.AppendHeader(table.Row{"#", "Character", "Listing"})
		for i, c := range characters {
			t.AppendRow(table.Row{i + 1, c.Name, c.ListingPath})
		}
		t.Render()
		return nil
	},
}
