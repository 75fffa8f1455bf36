package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vmunix/boxoffice/internal/catalog"
)

var today = time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)

func released(id int64, date string, revenue int64) catalog.Movie {
	return catalog.Movie{ID: id, Title: "Movie " + date, ReleaseDate: date}.WithRevenue(revenue)
}

func slotIDs(slots []Slot) []int64 {
	var out []int64
	for _, s := range slots {
		out = append(out, s.MovieID)
	}
	return out
}

func TestMonth_RunWithinMonth(t *testing.T) {
	c := NewComputer(14, 5, []string{"red"})
	movies := []catalog.Movie{released(1, "2026-10-03", 100)}

	view := c.Month(2026, time.October, movies, movies, today)
	require.Len(t, view.Assignments, 1)
	assert.Equal(t, 3, view.Assignments[0].StartDay)
	assert.Equal(t, 16, view.Assignments[0].EndDay)

	for day := 1; day <= 31; day++ {
		slots := view.Days[day]
		if day < 3 || day > 16 {
			assert.Empty(t, slots, "day %d", day)
			continue
		}
		require.Len(t, slots, 1, "day %d", day)
		assert.Equal(t, day == 3, slots[0].IsFirstDayOfRun, "day %d", day)
		assert.Equal(t, "red", slots[0].Color)
	}
}

func TestMonth_CrossMonthContinuation(t *testing.T) {
	c := NewComputer(14, 5, nil)
	movies := []catalog.Movie{released(7, "2026-10-20", 500)}

	oct := c.Month(2026, time.October, movies, movies, today)
	for day := 20; day <= 31; day++ {
		require.Len(t, oct.Days[day], 1, "day %d", day)
		assert.Equal(t, day == 20, oct.Days[day][0].IsFirstDayOfRun, "day %d", day)
	}
	assert.Equal(t, "2026-11-02", oct.Assignments[0].RunEnd)

	nov := c.Month(2026, time.November, movies, movies, today)
	require.Len(t, nov.Assignments, 1)
	a := nov.Assignments[0]
	assert.True(t, a.Continued)
	assert.Equal(t, 1, a.StartDay)
	assert.Equal(t, 2, a.EndDay)

	require.Len(t, nov.Days[1], 1)
	require.Len(t, nov.Days[2], 1)
	assert.True(t, nov.Days[1][0].IsFirstDayOfRun)
	assert.False(t, nov.Days[2][0].IsFirstDayOfRun)
	assert.True(t, nov.Days[1][0].Continued)
	assert.Empty(t, nov.Days[3])
}

func TestMonth_ShortMonthTruncates(t *testing.T) {
	c := NewComputer(14, 5, nil)
	movies := []catalog.Movie{released(1, "2026-02-20", 10)}

	feb := c.Month(2026, time.February, movies, movies, today)
	require.Len(t, feb.Assignments, 1)
	assert.Equal(t, 28, feb.Assignments[0].EndDay)
	assert.Empty(t, feb.Days[29])

	mar := c.Month(2026, time.March, movies, movies, today)
	require.Len(t, mar.Assignments, 1)
	assert.Equal(t, 5, mar.Assignments[0].EndDay)
}

func TestMonth_JanuaryContinuesFromPreviousYear(t *testing.T) {
	c := NewComputer(14, 5, nil)
	prev := []catalog.Movie{released(1, "2025-12-25", 10)}

	jan := c.Month(2026, time.January, nil, prev, today)
	require.Len(t, jan.Assignments, 1)
	assert.Equal(t, 7, jan.Assignments[0].EndDay)
	assert.True(t, jan.Days[1][0].IsFirstDayOfRun)
}

func TestMonth_ContinuationsListedFirst(t *testing.T) {
	c := NewComputer(14, 5, nil)
	movies := []catalog.Movie{
		released(1, "2026-09-25", 10),
		released(2, "2026-10-01", 999),
	}

	view := c.Month(2026, time.October, movies, movies, today)
	assert.Equal(t, []int64{1, 2}, slotIDs(view.Days[1]))
	assert.Equal(t, []int64{1, 2}, slotIDs(view.Days[8]))
	assert.Equal(t, []int64{2}, slotIDs(view.Days[9]))
}

func TestMonth_TopNAndColors(t *testing.T) {
	palette := []string{"c0", "c1", "c2", "c3", "c4"}
	c := NewComputer(14, 6, palette)

	var movies []catalog.Movie
	for i := int64(1); i <= 8; i++ {
		movies = append(movies, released(i, "2026-06-01", i*100))
	}

	view := c.Month(2026, time.June, movies, movies, today)
	require.Len(t, view.Assignments, 6)
	assert.Equal(t, int64(8), view.Assignments[0].Movie.ID)
	assert.Equal(t, "c0", view.Assignments[0].Color)
	assert.Equal(t, "c4", view.Assignments[4].Color)
	assert.Equal(t, "c0", view.Assignments[5].Color, "rank wraps around the palette")
}

func TestMajor_RevenueRankingPutsUnknownLast(t *testing.T) {
	c := NewComputer(14, 5, nil)
	movies := []catalog.Movie{
		{ID: 1, ReleaseDate: "2026-05-01"},
		released(2, "2026-05-02", 0),
		released(3, "2026-05-03", 300),
		released(4, "2026-05-04", 100),
		{ID: 5},
		released(6, "2025-05-04", 900),
	}

	got := c.Major(movies, 2026, time.May, today)
	var ids []int64
	for _, m := range got {
		ids = append(ids, m.ID)
	}
	assert.Equal(t, []int64{3, 4, 1, 2}, ids)
}

func TestMajor_FutureMonthRanksByPopularity(t *testing.T) {
	c := NewComputer(14, 2, nil)
	movies := []catalog.Movie{
		{ID: 1, ReleaseDate: "2026-12-01", Popularity: 10},
		{ID: 2, ReleaseDate: "2026-12-05", Popularity: 80},
		{ID: 3, ReleaseDate: "2026-12-09", Popularity: 40},
	}

	got := c.Major(movies, 2026, time.December, today)
	require.Len(t, got, 2)
	assert.Equal(t, int64(2), got[0].ID)
	assert.Equal(t, int64(3), got[1].ID)
}

func TestIsFutureMonth(t *testing.T) {
	assert.False(t, IsFutureMonth(2026, time.October, today))
	assert.True(t, IsFutureMonth(2026, time.November, today))
	assert.True(t, IsFutureMonth(2027, time.January, today))
	assert.False(t, IsFutureMonth(2025, time.December, today))
}

func TestGrid(t *testing.T) {
	oct := Grid(2026, time.October)
	require.Len(t, oct, 5)
	assert.Equal(t, []int{0, 0, 0, 0, 1, 2, 3}, oct[0])
	assert.Equal(t, []int{25, 26, 27, 28, 29, 30, 31}, oct[4])

	feb := Grid(2026, time.February)
	require.Len(t, feb, 4)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7}, feb[0])

	nov := Grid(2026, time.November)
	require.Len(t, nov, 5)
	assert.Equal(t, []int{29, 30, 0, 0, 0, 0, 0}, nov[4])
}

func TestDaysIn(t *testing.T) {
	assert.Equal(t, 31, DaysIn(2026, time.October))
	assert.Equal(t, 28, DaysIn(2026, time.February))
	assert.Equal(t, 29, DaysIn(2028, time.February))
	assert.Equal(t, 30, DaysIn(2026, time.November))
}
