package types

import "time"

type Period string

const (
	PeriodDay   Period = "D"
	PeriodWeek  Period = "W"
	PeriodMonth Period = "M"
)

var ConvertPeriod = map[string]Period{
	"D": PeriodDay,
	"W": PeriodWeek,
	"M": PeriodMonth,
}

// PeriodStart truncates t to the start of its bucket in UTC. Weeks start on
// Monday.
func PeriodStart(t time.Time, p Period) time.Time {
	t = t.UTC()
	switch p {
	case PeriodWeek:
		weekday := (int(t.Weekday()) + 6) % 7 // Monday = 0
		return time.Date(t.Year(), t.Month(), t.Day()-weekday, 0, 0, 0, 0, time.UTC)
	case PeriodMonth:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	default:
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	}
}

// NextPeriod returns the start of the bucket following start.
func NextPeriod(start time.Time, p Period) time.Time {
	switch p {
	case PeriodWeek:
		return start.AddDate(0, 0, 7)
	case PeriodMonth:
		return start.AddDate(0, 1, 0)
	default:
		return start.AddDate(0, 0, 1)
	}
}
