package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Run today's refresh of the current year now",
	Long: `Reload the current year, refresh revenue and pre-warm ratings.

The refresh runs at most once per day; if it already ran today this
is a no-op.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		resp, err := NewClient(serverURL).Refresh()
		if err != nil {
			return fmt.Errorf("refresh failed: %w", err)
		}
		if jsonOutput {
			return printJSON(cmd, resp)
		}
		out := cmd.OutOrStdout()
		if resp.Ran {
			fmt.Fprintf(out, "Refresh completed for %s\n", resp.Daily.Date)
		} else {
			fmt.Fprintf(out, "Refresh already %s for %s\n", resp.Daily.State, resp.Daily.Date)
		}
		if resp.Daily.LastError != "" {
			fmt.Fprintf(out, "Last error: %s\n", resp.Daily.LastError)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(refreshCmd)
}
