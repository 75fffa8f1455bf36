package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vmunix/boxoffice/internal/catalog"
)

var moviesCmd = &cobra.Command{
	Use:   "movies [year]",
	Short: "Top grossing and upcoming movies for a year",
	Long: `List movies for a release year.

Past years show the top grossing titles. The current year shows the
top grossing released titles and the upcoming ones. Future years list
announced titles by release date.

Examples:
  boxoffice movies          # Current year
  boxoffice movies 1999     # Top grossing of 1999`,
	Args: cobra.MaximumNArgs(1),
	RunE: runMoviesCmd,
}

func init() {
	rootCmd.AddCommand(moviesCmd)
}

func runMoviesCmd(cmd *cobra.Command, args []string) error {
	year := 0
	if len(args) > 0 {
		y, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid year: %s", args[0])
		}
		year = y
	}

	resp, err := NewClient(serverURL).Movies(year)
	if err != nil {
		return fmt.Errorf("movies failed: %w", err)
	}

	if jsonOutput {
		return printJSON(cmd, resp)
	}
	printMovies(cmd.OutOrStdout(), resp)
	return nil
}

func printMovies(w io.Writer, r *MoviesResponse) {
	switch r.Kind {
	case catalog.KindCurrent:
		fmt.Fprintf(w, "%d: top grossing released\n", r.Year)
		printMovieTable(w, r.Released, true)
		fmt.Fprintln(w)
		fmt.Fprintf(w, "%d: upcoming\n", r.Year)
		printMovieTable(w, r.Upcoming, false)
	case catalog.KindFuture:
		fmt.Fprintf(w, "%d: announced releases\n", r.Year)
		printMovieTable(w, r.Results, false)
	default:
		fmt.Fprintf(w, "%d: top grossing\n", r.Year)
		printMovieTable(w, r.Results, true)
	}
}

func printMovieTable(w io.Writer, movies []catalog.Movie, withRevenue bool) {
	if len(movies) == 0 {
		fmt.Fprintln(w, "  (none)")
		return
	}
	for i, m := range movies {
		date := m.ReleaseDate
		if date == "" {
			date = "TBA"
		}
		if withRevenue {
			fmt.Fprintf(w, "  %2d. %-10s  %-45s  %s\n", i+1, date, truncate(m.Title, 45), formatMoney(m.RevenueValue()))
		} else {
			fmt.Fprintf(w, "  %2d. %-10s  %s\n", i+1, date, m.Title)
		}
	}
}

// formatMoney renders whole dollars with thousands separators.
func formatMoney(v int64) string {
	s := strconv.FormatInt(v, 10)
	var out []byte
	for i := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, s[i])
	}
	return "$" + string(out)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
