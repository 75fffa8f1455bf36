package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var genresCmd = &cobra.Command{
	Use:   "genres",
	Short: "List the genre catalog",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		genres, err := NewClient(serverURL).Genres()
		if err != nil {
			return fmt.Errorf("genres failed: %w", err)
		}
		if jsonOutput {
			return printJSON(cmd, genres)
		}
		for _, g := range genres {
			fmt.Fprintf(cmd.OutOrStdout(), "%6d  %s\n", g.ID, g.Name)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(genresCmd)
}
