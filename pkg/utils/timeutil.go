package utils

import "time"

// DailyTimestamps returns n unix-millisecond timestamps, one per day,
// ending at end truncated to midnight UTC, oldest first. Used by the
// synthetic price generator to lay out a daily series.
func DailyTimestamps(n int, end time.Time) []int64 {
	if n <= 0 {
		return nil
	}
	day := end.UTC().Truncate(24 * time.Hour)
	out := make([]int64, n)
	for i := 0; i < n; i++ {
		out[i] = day.AddDate(0, 0, i-n+1).UnixMilli()
	}
	return out
}
