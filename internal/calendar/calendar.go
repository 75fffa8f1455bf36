// Package calendar lays out the major releases of a month as multi-day runs.
package calendar

import (
	"slices"
	"time"

	"github.com/vmunix/boxoffice/internal/catalog"
)

const fallbackColor = "#808080"

// Slot is one title occupying one day.
type Slot struct {
	MovieID         int64  `json:"movie_id"`
	Title           string `json:"title"`
	Color           string `json:"color"`
	Rank            int    `json:"rank"`
	IsFirstDayOfRun bool   `json:"is_first_day_of_run"`
	Continued       bool   `json:"continued,omitempty"`
}

// Assignment is a ranked title and the days of the month its run covers.
type Assignment struct {
	Movie     catalog.Movie `json:"movie"`
	Rank      int           `json:"rank"`
	Color     string        `json:"color"`
	RunStart  string        `json:"run_start"` // first day of the whole run
	RunEnd    string        `json:"run_end"`   // last day of the whole run
	StartDay  int           `json:"start_day"` // first day inside this month
	EndDay    int           `json:"end_day"`   // last day inside this month
	Continued bool          `json:"continued,omitempty"`
}

// MonthView is the calendar data for one month.
type MonthView struct {
	Year        int            `json:"year"`
	Month       time.Month     `json:"month"`
	Future      bool           `json:"future"`
	Assignments []Assignment   `json:"assignments"`
	Days        map[int][]Slot `json:"days"`
	Grid        [][]int        `json:"grid"`
}

// Computer derives month views from a year's records.
type Computer struct {
	runDays int
	topN    int
	palette []string
}

// NewComputer creates a computer giving the topN releases of a month a run
// of runDays days each, colored by rank from palette.
func NewComputer(runDays, topN int, palette []string) *Computer {
	if runDays <= 0 {
		runDays = 14
	}
	if topN <= 0 {
		topN = 5
	}
	if len(palette) == 0 {
		palette = []string{fallbackColor}
	}
	return &Computer{runDays: runDays, topN: topN, palette: slices.Clone(palette)}
}

// Color returns the palette color for rank.
func (c *Computer) Color(rank int) string {
	return c.palette[rank%len(c.palette)]
}

// Major returns the ranked top releases of (year, month). Months after
// today's month rank by popularity, others by revenue. Undated records
// never rank.
func (c *Computer) Major(movies []catalog.Movie, year int, month time.Month, today time.Time) []catalog.Movie {
	var selected []catalog.Movie
	for _, m := range movies {
		d, ok := m.Released()
		if !ok || d.Year() != year || d.Month() != month {
			continue
		}
		selected = append(selected, m)
	}

	if IsFutureMonth(year, month, today) {
		slices.SortStableFunc(selected, func(a, b catalog.Movie) int {
			return cmpDesc(a.Popularity, b.Popularity)
		})
	} else {
		slices.SortStableFunc(selected, func(a, b catalog.Movie) int {
			return cmpDesc(a.RevenueValue(), b.RevenueValue())
		})
	}

	if len(selected) > c.topN {
		selected = selected[:c.topN]
	}
	return selected
}

// Month builds the view of (year, month). current holds the records of
// year; previous holds the records of the preceding month's year (the same
// slice except in January).
func (c *Computer) Month(year int, month time.Month, current, previous []catalog.Movie, today time.Time) MonthView {
	view := MonthView{
		Year:   year,
		Month:  month,
		Future: IsFutureMonth(year, month, today),
		Days:   make(map[int][]Slot),
		Grid:   Grid(year, month),
	}
	last := DaysIn(year, month)

	// Runs carried over from the previous month come first on shared days.
	prevFirst := time.Date(year, month-1, 1, 0, 0, 0, 0, time.UTC)
	for rank, m := range c.Major(previous, prevFirst.Year(), prevFirst.Month(), today) {
		start, _ := m.Released()
		end := start.AddDate(0, 0, c.runDays-1)
		if end.Year() != year || end.Month() != month {
			continue
		}
		a := Assignment{
			Movie:     m,
			Rank:      rank,
			Color:     c.Color(rank),
			RunStart:  start.Format(time.DateOnly),
			RunEnd:    end.Format(time.DateOnly),
			StartDay:  1,
			EndDay:    min(end.Day(), last),
			Continued: true,
		}
		view.place(a)
	}

	for rank, m := range c.Major(current, year, month, today) {
		start, _ := m.Released()
		end := start.AddDate(0, 0, c.runDays-1)
		endDay := last
		if end.Year() == year && end.Month() == month {
			endDay = end.Day()
		}
		a := Assignment{
			Movie:    m,
			Rank:     rank,
			Color:    c.Color(rank),
			RunStart: start.Format(time.DateOnly),
			RunEnd:   end.Format(time.DateOnly),
			StartDay: start.Day(),
			EndDay:   endDay,
		}
		view.place(a)
	}
	return view
}

func (v *MonthView) place(a Assignment) {
	v.Assignments = append(v.Assignments, a)
	for day := a.StartDay; day <= a.EndDay; day++ {
		v.Days[day] = append(v.Days[day], Slot{
			MovieID:         a.Movie.ID,
			Title:           a.Movie.Title,
			Color:           a.Color,
			Rank:            a.Rank,
			IsFirstDayOfRun: day == a.StartDay,
			Continued:       a.Continued,
		})
	}
}

// IsFutureMonth reports whether (year, month) is after today's month.
func IsFutureMonth(year int, month time.Month, today time.Time) bool {
	if year != today.Year() {
		return year > today.Year()
	}
	return month > today.Month()
}

// DaysIn returns the number of days in (year, month).
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Grid returns the month as Sunday-first weeks of day numbers, with 0 for
// the blanks before day 1 and after the last day.
func Grid(year int, month time.Month) [][]int {
	lead := int(time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Weekday())
	days := DaysIn(year, month)

	var rows [][]int
	week := make([]int, 0, 7)
	for i := 0; i < lead; i++ {
		week = append(week, 0)
	}
	for day := 1; day <= days; day++ {
		week = append(week, day)
		if len(week) == 7 {
			rows = append(rows, week)
			week = make([]int, 0, 7)
		}
	}
	if len(week) > 0 {
		for len(week) < 7 {
			week = append(week, 0)
		}
		rows = append(rows, week)
	}
	return rows
}

func cmpDesc[T int64 | float64](a, b T) int {
	switch {
	case a > b:
		return -1
	case a < b:
		return 1
	default:
		return 0
	}
}
