package service

import "time"

// dateLayout is the calendar date format used across the API surface.
const dateLayout = "2006-01-02"

// BusinessDays returns the calendar days from start (inclusive) to end
// (exclusive) that fall on a weekday, in ascending order.
//
// Only Saturdays and Sundays are excluded. Market holidays are left in on
// purpose: the upstream provider answers holiday dates with the nearest
// prior trading day, so filtering them here would silently drop rows the
// provider is happy to price.
func BusinessDays(start, end time.Time) []time.Time {
	var out []time.Time
	last := truncateToDate(end)

	for d := truncateToDate(start); d.Before(last); d = d.AddDate(0, 0, 1) {
		if wd := d.Weekday(); wd != time.Saturday && wd != time.Sunday {
			out = append(out, d)
		}
	}
	return out
}

func truncateToDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
