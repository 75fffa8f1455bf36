package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vmunix/boxoffice/internal/ratings"
)

var ratingCmd = &cobra.Command{
	Use:   "rating [title]",
	Short: "Look up a movie's rating",
	Long: `Look up the audience rating, cast and plot of a movie.

Examples:
  boxoffice rating "Dune: Part Two" --year 2024
  boxoffice rating --imdb tt15239678`,
	Args: cobra.ArbitraryArgs,
	RunE: runRatingCmd,
}

func init() {
	rootCmd.AddCommand(ratingCmd)
	ratingCmd.Flags().IntP("year", "y", 0, "Release year")
	ratingCmd.Flags().String("imdb", "", "IMDb id (e.g. tt0133093)")
}

func runRatingCmd(cmd *cobra.Command, args []string) error {
	title := strings.Join(args, " ")
	year, _ := cmd.Flags().GetInt("year")
	imdbID, _ := cmd.Flags().GetString("imdb")
	if title == "" && imdbID == "" {
		return fmt.Errorf("a title or --imdb is required")
	}

	r, err := NewClient(serverURL).Rating(title, year, imdbID)
	if err != nil {
		return fmt.Errorf("rating failed: %w", err)
	}

	if jsonOutput {
		return printJSON(cmd, r)
	}
	printRating(cmd.OutOrStdout(), r)
	return nil
}

func printRating(w io.Writer, r *ratings.Rating) {
	score := "n/a"
	if r.IMDBRating != nil {
		score = *r.IMDBRating + "/10"
	}
	fmt.Fprintf(w, "%s (%s)  IMDb %s\n", r.Title, r.Year, score)
	if r.Unavailable {
		fmt.Fprintln(w, "  rating not available")
	}
	fmt.Fprintf(w, "  Director: %s\n", r.Director)
	fmt.Fprintf(w, "  Writer:   %s\n", r.Writer)
	fmt.Fprintf(w, "  Cast:     %s\n", r.Actors)
	fmt.Fprintf(w, "  Genre:    %s\n", r.Genre)
	fmt.Fprintf(w, "  Runtime:  %s\n", r.Runtime)
	fmt.Fprintf(w, "  Awards:   %s\n", r.Awards)
	for _, s := range r.Ratings {
		fmt.Fprintf(w, "  %s: %s\n", s.Source, s.Value)
	}
	fmt.Fprintf(w, "\n  %s\n", r.Plot)
}
