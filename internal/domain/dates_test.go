package domain

import (
	"testing"
	"time"
)

func TestWeekBoundsStartOnMonday(t *testing.T) {
	cases := []struct {
		date      string
		wantStart string
		wantEnd   string
	}{
		{"2025-03-10", "2025-03-10", "2025-03-16"}, // Monday maps to itself
		{"2025-03-12", "2025-03-10", "2025-03-16"}, // mid-week
		{"2025-03-16", "2025-03-10", "2025-03-16"}, // Sunday closes the week
		{"2025-03-17", "2025-03-17", "2025-03-23"}, // next Monday opens a new one
		{"2025-01-01", "2024-12-30", "2025-01-05"}, // week straddles the year boundary
	}
	for _, tc := range cases {
		start, end, err := WeekBounds(tc.date)
		if err != nil {
			t.Fatalf("WeekBounds(%q): %v", tc.date, err)
		}
		if start != tc.wantStart || end != tc.wantEnd {
			t.Fatalf("WeekBounds(%q) = %s..%s, want %s..%s", tc.date, start, end, tc.wantStart, tc.wantEnd)
		}
	}
}

func TestWeekBoundsRejectsBadDate(t *testing.T) {
	if _, _, err := WeekBounds("12-03-2025"); err == nil {
		t.Fatalf("expected error for malformed date")
	}
}

func TestMonthKey(t *testing.T) {
	if got := MonthKey("2025-03-12"); got != "2025-03" {
		t.Fatalf("MonthKey = %q, want 2025-03", got)
	}
}

func TestMonthRange(t *testing.T) {
	from, to := MonthRange("2025-02")
	if from != "2025-02-01" || to != "2025-02-31" {
		t.Fatalf("MonthRange = %s..%s", from, to)
	}
	// Day keys are zero padded, so "2025-02-28" <= "2025-02-31" holds and
	// nothing from March ever falls inside the range.
	if !("2025-02-28" >= from && "2025-02-28" <= to) {
		t.Fatalf("expected end of February inside range")
	}
	if "2025-03-01" <= to {
		t.Fatalf("expected March outside range")
	}
}

func TestValidators(t *testing.T) {
	if !ValidDate("2025-03-12") || ValidDate("2025-3-12") || ValidDate("2025-03-32") {
		t.Fatalf("ValidDate misbehaved")
	}
	if !ValidMonth("2025-03") || ValidMonth("2025-13") || ValidMonth("2025-03-12") {
		t.Fatalf("ValidMonth misbehaved")
	}
}

func TestClockTime(t *testing.T) {
	at := time.Date(2025, 3, 12, 14, 5, 0, 0, time.UTC)
	if got := ClockTime(at); got != "02:05 PM" {
		t.Fatalf("ClockTime = %q, want 02:05 PM", got)
	}
	if got := DayName(at); got != "Wednesday" {
		t.Fatalf("DayName = %q, want Wednesday", got)
	}
}
