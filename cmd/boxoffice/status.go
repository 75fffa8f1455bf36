package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Server status, cached years and daily refresh state",
	Args:  cobra.NoArgs,
	RunE:  runStatusCmd,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatusCmd(cmd *cobra.Command, _ []string) error {
	st, err := NewClient(serverURL).Status()
	if err != nil {
		return fmt.Errorf("status check failed: %w", err)
	}

	if jsonOutput {
		return printJSON(cmd, st)
	}
	printStatus(cmd.OutOrStdout(), serverURL, st)
	return nil
}

func printStatus(w io.Writer, server string, s *StatusResponse) {
	fmt.Fprintf(w, "boxoffice v%s | Server: %s | Today: %s\n\n", s.Version, server, s.Today)

	fmt.Fprintln(w, "Cached years")
	if len(s.Years) == 0 {
		fmt.Fprintln(w, "  (none)")
	}
	for _, y := range s.Years {
		state := "fresh"
		if !y.Fresh {
			state = "stale"
		}
		fmt.Fprintf(w, "  %d  %4d movies  %s  updated %s\n", y.Year, y.Movies, state,
			y.LastUpdated.Local().Format("2006-01-02 15:04"))
	}

	if s.Daily != nil {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Daily refresh")
		fmt.Fprintf(w, "  %s: %s\n", s.Daily.Date, s.Daily.State)
		if !s.Daily.LastRun.IsZero() {
			fmt.Fprintf(w, "  Last run:  %s (%s)\n", s.Daily.LastRun.Local().Format("2006-01-02 15:04"), s.Daily.LastReason)
		}
		if s.Daily.LastError != "" {
			fmt.Fprintf(w, "  Error:     %s\n", s.Daily.LastError)
		}
		fmt.Fprintf(w, "  Next run:  %s\n", s.Daily.NextRun.Local().Format("2006-01-02 15:04"))
	}
}
