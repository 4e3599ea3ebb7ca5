package services

import (
	"time"

	"github.com/terraincognita07/vitalog/internal/models"
)

func DateAtLocation(value time.Time, location *time.Location) time.Time {
	if location == nil {
		location = time.UTC
	}
	localized := value.In(location)
	year, month, day := localized.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, location)
}

func DayRange(value time.Time, location *time.Location) (time.Time, time.Time) {
	start := DateAtLocation(value, location)
	return start, start.AddDate(0, 0, 1)
}

// Window is a half-open range of calendar days: Start is included, End is not.
type Window struct {
	Start time.Time
	End   time.Time
}

func (window Window) Contains(day time.Time) bool {
	return !day.Before(window.Start) && day.Before(window.End)
}

func TodayWindow(today time.Time) Window {
	start, end := DayRange(today, today.Location())
	return Window{Start: start, End: end}
}

// ISOWeekWindow spans Monday through Sunday of the ISO week containing today.
func ISOWeekWindow(today time.Time) Window {
	day := DateAtLocation(today, today.Location())
	sinceMonday := (int(day.Weekday()) + 6) % 7
	start := day.AddDate(0, 0, -sinceMonday)
	return Window{Start: start, End: start.AddDate(0, 0, 7)}
}

func CalendarMonthWindow(today time.Time) Window {
	day := DateAtLocation(today, today.Location())
	start := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, day.Location())
	return Window{Start: start, End: start.AddDate(0, 1, 0)}
}

func WindowForPeriod(period models.Period, today time.Time) (Window, bool) {
	switch period {
	case models.PeriodDaily:
		return TodayWindow(today), true
	case models.PeriodWeekly:
		return ISOWeekWindow(today), true
	case models.PeriodMonthly:
		return CalendarMonthWindow(today), true
	default:
		return Window{}, false
	}
}
