// Package cron maps between user-facing delivery frequencies and the 5-field
// cron expressions the alerts backend schedules on. Both directions are
// best-effort: malformed input degrades to Daily and out-of-range numbers are
// clamped, never rejected. This is settings-screen plumbing, not a validation
// boundary.
package cron

import (
	"fmt"
	"strconv"
	"strings"
)

type Frequency string

const (
	Daily    Frequency = "daily"
	Weekly   Frequency = "weekly"
	BiWeekly Frequency = "bi-weekly"
	Monthly  Frequency = "monthly"
)

const fieldCount = 5

// Classify derives the delivery frequency from a cron spec. Anything that is
// not exactly five whitespace-separated fields, or that matches no known
// pattern, is reported as Daily.
func Classify(spec string) Frequency {
	fields := strings.Fields(spec)
	if len(fields) != fieldCount {
		return Daily
	}

	dayOfMonth, month, dayOfWeek := fields[2], fields[3], fields[4]

	// "MM HH * * *": every day at a fixed time.
	if dayOfMonth == "*" && month == "*" && dayOfWeek == "*" {
		return Daily
	}

	// "MM HH * * D": once a week on day D (0-6).
	if dayOfMonth == "*" && month == "*" && isWeekday(dayOfWeek) {
		return Weekly
	}

	// "MM HH * * D/2": every other week.
	if dayOfMonth == "*" && month == "*" && strings.Contains(dayOfWeek, "/2") {
		return BiWeekly
	}

	// "MM HH D * *": once a month on day D (1-31).
	if isMonthday(dayOfMonth) && month == "*" {
		return Monthly
	}

	return Daily
}

// Params are the slots a generated expression is built from. Zero values are
// not meaningful here; use DefaultParams and override what the user picked.
type Params struct {
	Hour       int // 0-23
	Minute     int // 0-59
	DayOfWeek  int // 0-6, Sunday-Saturday
	DayOfMonth int // 1-31
}

func DefaultParams() Params {
	return Params{Hour: 3, Minute: 30, DayOfWeek: 1, DayOfMonth: 1}
}

// Build renders a cron expression for the frequency. Out-of-range parameters
// are clamped into their valid ranges; an unknown frequency falls back to the
// daily pattern.
func Build(freq Frequency, p Params) string {
	hour := clamp(p.Hour, 0, 23)
	minute := clamp(p.Minute, 0, 59)
	dayOfWeek := clamp(p.DayOfWeek, 0, 6)
	dayOfMonth := clamp(p.DayOfMonth, 1, 31)

	switch freq {
	case Weekly:
		return fmt.Sprintf("%d %d * * %d", minute, hour, dayOfWeek)
	case BiWeekly:
		return fmt.Sprintf("%d %d * * %d/2", minute, hour, dayOfWeek)
	case Monthly:
		return fmt.Sprintf("%d %d %d * *", minute, hour, dayOfMonth)
	default:
		return fmt.Sprintf("%d %d * * *", minute, hour)
	}
}

// BuildDefault renders a cron expression with the default delivery slot.
func BuildDefault(freq Frequency) string {
	return Build(freq, DefaultParams())
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// isWeekday reports whether s is a single digit 0-6.
func isWeekday(s string) bool {
	return len(s) == 1 && s[0] >= '0' && s[0] <= '6'
}

// isMonthday reports whether s is a plain integer 1-31, without sign or
// leading zeros.
func isMonthday(s string) bool {
	n, err := strconv.Atoi(s)
	if err != nil || strconv.Itoa(n) != s {
		return false
	}
	return n >= 1 && n <= 31
}
