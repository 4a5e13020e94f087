// Package report computes the dashboard time-series and window boundaries.
// Everything here is pure calendar arithmetic so it can be tested without a
// database.
package report

import (
	"fmt"
	"time"
)

// monthNames holds the localized (Indonesian) month labels used on the
// dashboard chart.
var monthNames = [12]string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

// MonthBucket is one chart entry: a labeled calendar month and the number
// of completed orders created in it.
type MonthBucket struct {
	Month string `json:"month"`
	Total int    `json:"total"`
}

// SeriesStart returns the first day of the oldest of the 12 calendar
// months ending at now's month, i.e. the same month one year back plus one
// month. time.Date normalizes month overflow across year boundaries.
func SeriesStart(now time.Time) time.Time {
	return time.Date(now.Year()-1, now.Month()+1, 1, 0, 0, 0, 0, now.Location())
}

// MonthStart returns the first instant of now's calendar month.
func MonthStart(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
}

// WeekStart returns the start of the rolling 7x24h window ending at now.
// This is deliberately not a calendar week.
func WeekStart(now time.Time) time.Time {
	return now.Add(-7 * 24 * time.Hour)
}

// MonthlySeries buckets the given completion timestamps into the 12
// calendar months ending at now's month. It always returns exactly 12
// entries in chronological order; months without completions report zero.
// Timestamps outside the window are ignored.
func MonthlySeries(now time.Time, createdAt []time.Time) []MonthBucket {
	start := SeriesStart(now)

	totals := make(map[string]int, len(createdAt))
	for _, t := range createdAt {
		totals[monthLabel(t)]++
	}

	series := make([]MonthBucket, 0, 12)
	for i := 0; i < 12; i++ {
		month := start.AddDate(0, i, 0)
		label := monthLabel(month)
		series = append(series, MonthBucket{Month: label, Total: totals[label]})
	}
	return series
}

func monthLabel(t time.Time) string {
	return fmt.Sprintf("%s %d", monthNames[int(t.Month())-1], t.Year())
}
