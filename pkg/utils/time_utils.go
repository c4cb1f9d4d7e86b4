// utils/timeutil.go
package utils

import (
	"time"
	// zone data for minimal images without /usr/share/zoneinfo
	_ "time/tzdata"
)

// India Standard Time (+05:30)
var istLoc = func() *time.Location {
	if loc, err := time.LoadLocation("Asia/Kolkata"); err == nil {
		return loc
	}
	return time.FixedZone("IST", 5*3600+1800)
}()

func IST() *time.Location { return istLoc }

// LoadLocationOrIST resolves a configured zone name, falling back to IST.
func LoadLocationOrIST(name string) *time.Location {
	if name == "" {
		return istLoc
	}
	if loc, err := time.LoadLocation(name); err == nil {
		return loc
	}
	return istLoc
}

// Convert an epoch value in nanoseconds (BaseModel timestamps) to IST.
func FromUnixNanosIST(t int64) time.Time {
	if t <= 0 {
		return time.Time{}
	}
	return time.Unix(0, t).In(istLoc)
}

func FormatRFC3339IST(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.In(istLoc).Format(time.RFC3339)
}

// AddMonths moves t forward by n calendar months. Days that do not exist in
// the target month are clamped to its last day (Jan 31 + 1 month = Feb 28/29).
func AddMonths(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m+time.Month(n), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	last := first.AddDate(0, 1, -1).Day()
	if d > last {
		d = last
	}
	return time.Date(first.Year(), first.Month(), d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// MonthsBetween counts whole calendar months elapsed from start to end.
// It returns 0 when end is before start.
func MonthsBetween(start, end time.Time) int {
	if !end.After(start) {
		return 0
	}
	end = end.In(start.Location())
	months := (end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month())
	if AddMonths(start, months).After(end) {
		months--
	}
	if months < 0 {
		return 0
	}
	return months
}
