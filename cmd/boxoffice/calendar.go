package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vmunix/boxoffice/internal/calendar"
)

var calendarCmd = &cobra.Command{
	Use:   "calendar [year] [month]",
	Short: "Monthly calendar of major releases",
	Long: `Print a month grid with the runs of the month's major releases.

Each day shows the letter of the release running that day ('+' when
several overlap). Runs continued from the previous month are marked.

Examples:
  boxoffice calendar            # This month
  boxoffice calendar 2024 12    # December 2024`,
	Args: cobra.RangeArgs(0, 2),
	RunE: runCalendarCmd,
}

func init() {
	rootCmd.AddCommand(calendarCmd)
}

func runCalendarCmd(cmd *cobra.Command, args []string) error {
	now := time.Now()
	year, month := now.Year(), now.Month()
	if len(args) == 1 {
		return fmt.Errorf("give both year and month, or neither")
	}
	if len(args) == 2 {
		y, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid year: %s", args[0])
		}
		m, err := strconv.Atoi(args[1])
		if err != nil || m < 1 || m > 12 {
			return fmt.Errorf("invalid month: %s", args[1])
		}
		year, month = y, time.Month(m)
	}

	view, err := NewClient(serverURL).Calendar(year, month)
	if err != nil {
		return fmt.Errorf("calendar failed: %w", err)
	}

	if jsonOutput {
		return printJSON(cmd, view)
	}
	printCalendar(cmd.OutOrStdout(), view)
	return nil
}

func marker(a calendar.Assignment) byte {
	return byte('a' + a.Rank%26)
}

func printCalendar(w io.Writer, v *calendar.MonthView) {
	title := fmt.Sprintf("%s %d", v.Month, v.Year)
	fmt.Fprintf(w, "%*s\n", 14+len(title)/2, title)
	fmt.Fprintln(w, " Su  Mo  Tu  We  Th  Fr  Sa")

	for _, week := range v.Grid {
		var b strings.Builder
		for _, day := range week {
			if day == 0 {
				b.WriteString("    ")
				continue
			}
			mark := byte(' ')
			switch slots := v.Days[day]; {
			case len(slots) > 1:
				mark = '+'
			case len(slots) == 1:
				mark = byte('a' + slots[0].Rank%26)
				if slots[0].Continued {
					mark = byte('A' + slots[0].Rank%26)
				}
			}
			fmt.Fprintf(&b, " %2d%c", day, mark)
		}
		fmt.Fprintln(w, strings.TrimRight(b.String(), " "))
	}

	if len(v.Assignments) == 0 {
		return
	}
	fmt.Fprintln(w)
	for _, a := range v.Assignments {
		m := marker(a)
		note := ""
		if a.Continued {
			m = m - 'a' + 'A'
			note = "  (continued)"
		}
		fmt.Fprintf(w, "  %c  %-8s  %s  %s to %s%s\n", m, a.Color, a.Movie.Title, a.RunStart, a.RunEnd, note)
	}
}
