package domain

import (
	"fmt"
	"time"
)

const DateLayout = "2006-01-02"

// WeekBounds maps a calendar date to its Monday week start and Sunday week
// end. Sunday belongs to the week that started the previous Monday.
func WeekBounds(date string) (weekStart, weekEnd string, err error) {
	day, err := time.Parse(DateLayout, date)
	if err != nil {
		return "", "", fmt.Errorf("invalid date %q: %w", date, err)
	}
	offset := (int(day.Weekday()) + 6) % 7
	start := day.AddDate(0, 0, -offset)
	return start.Format(DateLayout), start.AddDate(0, 0, 6).Format(DateLayout), nil
}

// MonthKey truncates a YYYY-MM-DD date to its YYYY-MM month key.
func MonthKey(date string) string {
	if len(date) < 7 {
		return date
	}
	return date[:7]
}

// MonthRange returns the fixed day-key range for a month. The upper bound is
// always day 31: date keys are zero-padded, so lexicographic range checks
// simply never match days past the month's real end.
func MonthRange(month string) (from, to string) {
	return month + "-01", month + "-31"
}

func ValidDate(date string) bool {
	_, err := time.Parse(DateLayout, date)
	return err == nil
}

func ValidMonth(month string) bool {
	_, err := time.Parse("2006-01", month)
	return err == nil
}

// DayName renders the weekday name stored alongside each transaction.
func DayName(t time.Time) string {
	return t.Weekday().String()
}

// ClockTime renders the 12-hour display time stored alongside each
// transaction, e.g. "10:05 AM".
func ClockTime(t time.Time) string {
	return t.Format("03:04 PM")
}
