package usecase

import "pms-data-checker/internal/domain"

// DefaultMaxRangeDays is the widest span the upstream API accepts for a
// single report job.
const DefaultMaxRangeDays = 400

// SplitRange splits a range into consecutive sub-ranges whose span
// (end minus start, in days) never exceeds maxDays. The sub-ranges cover the
// input exactly: no gaps, no overlaps, each next range starting the day
// after the previous one ends. A range that already fits is returned as a
// single-element sequence. Pure function, no I/O.
func SplitRange(r domain.DateRange, maxDays int) []domain.DateRange {
	if maxDays <= 0 {
		maxDays = DefaultMaxRangeDays
	}

	var out []domain.DateRange
	start := r.Start
	for {
		end := start.AddDays(maxDays)
		if !end.Time.Before(r.End.Time) {
			out = append(out, domain.DateRange{Start: start, End: r.End})
			return out
		}
		out = append(out, domain.DateRange{Start: start, End: end})
		start = end.AddDays(1)
	}
}
