package ratings

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vmunix/boxoffice/internal/omdb"
)

func TestFromOMDb(t *testing.T) {
	r := FromOMDb(&omdb.Movie{
		Title:      "Dune: Part Two",
		Year:       "2024",
		Director:   "Denis Villeneuve",
		IMDBRating: "8.5",
		IMDBID:     "tt15239678",
		Ratings:    []omdb.Source{{Source: "Rotten Tomatoes", Value: "92%"}},
	})

	require.NotNil(t, r.IMDBRating)
	assert.Equal(t, "8.5", *r.IMDBRating)
	assert.Equal(t, "tt15239678", r.IMDBID)
	assert.False(t, r.Unavailable)
	assert.Len(t, r.Ratings, 1)
}

func TestFromOMDb_NARating(t *testing.T) {
	r := FromOMDb(&omdb.Movie{Title: "Upcoming", IMDBRating: "N/A"})
	assert.Nil(t, r.IMDBRating)
}

func TestUnavailable(t *testing.T) {
	r := Unavailable("Some Film", 2025)

	assert.True(t, r.Unavailable)
	assert.Nil(t, r.IMDBRating)
	assert.Equal(t, "Some Film", r.Title)
	assert.Equal(t, "2025", r.Year)
	assert.Equal(t, fallbackPlot, r.Plot)
	for _, v := range []string{r.Actors, r.Director, r.Writer, r.Genre, r.Runtime, r.Awards} {
		assert.Equal(t, "Not available", v)
	}
}

func TestUnavailable_JSONHasNullRating(t *testing.T) {
	b, err := json.Marshal(Unavailable("Some Film", 0))
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(b, &got))
	v, ok := got["imdbRating"]
	assert.True(t, ok)
	assert.Nil(t, v)
	assert.Equal(t, true, got["unavailable"])
	assert.Equal(t, "", got["Year"])
}
