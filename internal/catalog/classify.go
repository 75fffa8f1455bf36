package catalog

import (
	"slices"
	"time"
)

// Kind is a year's position relative to the current year.
type Kind string

const (
	KindPast    Kind = "past"
	KindCurrent Kind = "current"
	KindFuture  Kind = "future"
)

// KindOf classifies year against currentYear.
func KindOf(year, currentYear int) Kind {
	switch {
	case year > currentYear:
		return KindFuture
	case year == currentYear:
		return KindCurrent
	default:
		return KindPast
	}
}

// YearView is the presentation split of a year's records.
// Future and past years fill Results; the current year fills Released and Upcoming.
type YearView struct {
	Year      int
	Kind      Kind
	Results   []Movie
	Released  []Movie
	Upcoming  []Movie
	UpdatedAt time.Time
}

// Classify derives the view of a year's records as of today.
// Released and past-year lists use the TopGrossing rule with limit topN.
// Undated records are dropped from the current year's split.
func Classify(movies []Movie, year int, today time.Time, topN int) YearView {
	today = DateOf(today)
	view := YearView{Year: year, Kind: KindOf(year, today.Year())}

	switch view.Kind {
	case KindFuture:
		view.Results = SortByReleaseDate(datedOnly(movies))
	case KindCurrent:
		var released, upcoming []Movie
		for _, m := range movies {
			d, ok := m.Released()
			if !ok {
				continue
			}
			if d.After(today) {
				upcoming = append(upcoming, m)
			} else {
				released = append(released, m)
			}
		}
		view.Released = TopGrossing(released, topN)
		view.Upcoming = SortByReleaseDate(upcoming)
	default:
		view.Results = TopGrossing(movies, topN)
	}
	return view
}

// EnrichmentCandidates reports which records of year need a revenue lookup:
// none for future years, released records for the current year, all for past years.
func EnrichmentCandidates(movies []Movie, year int, today time.Time) []int {
	today = DateOf(today)
	var idx []int
	switch KindOf(year, today.Year()) {
	case KindFuture:
		return nil
	case KindCurrent:
		for i, m := range movies {
			if d, ok := m.Released(); ok && !d.After(today) {
				idx = append(idx, i)
			}
		}
	default:
		for i := range movies {
			idx = append(idx, i)
		}
	}
	return idx
}

// TopGrossing keeps records with positive revenue, sorted by revenue
// descending, truncated to n. Equal revenues keep their input order.
func TopGrossing(movies []Movie, n int) []Movie {
	out := make([]Movie, 0, len(movies))
	for _, m := range movies {
		if m.RevenueValue() > 0 {
			out = append(out, m)
		}
	}
	slices.SortStableFunc(out, func(a, b Movie) int {
		switch ra, rb := a.RevenueValue(), b.RevenueValue(); {
		case ra > rb:
			return -1
		case ra < rb:
			return 1
		default:
			return 0
		}
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// SortByReleaseDate returns dated records in ascending release order.
func SortByReleaseDate(movies []Movie) []Movie {
	out := slices.Clone(movies)
	slices.SortStableFunc(out, func(a, b Movie) int {
		da, _ := a.Released()
		db, _ := b.Released()
		return da.Compare(db)
	})
	return out
}

func datedOnly(movies []Movie) []Movie {
	out := make([]Movie, 0, len(movies))
	for _, m := range movies {
		if _, ok := m.Released(); ok {
			out = append(out, m)
		}
	}
	return out
}
