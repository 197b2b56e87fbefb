package schedule

import "time"

const (
	dateLayout  = "2006-01-02"
	monthLayout = "2006-01"
)

// Today returns the current calendar date as an ISO date string.
func Today() string {
	return time.Now().Format(dateLayout)
}

// MonthOf extracts the YYYY-MM window key of an ISO date.
func MonthOf(date string) string {
	if len(date) < len(monthLayout) {
		return date
	}
	return date[:len(monthLayout)]
}

// FirstOfMonth returns the first day of a YYYY-MM window.
func FirstOfMonth(ym string) string {
	return ym + "-01"
}

// AdjacentDate shifts an ISO date by delta calendar days. Month and year
// rollovers are handled by real date arithmetic, so the neighbor of
// 2024-05-31 at +1 is 2024-06-01.
func AdjacentDate(date string, delta int) (string, error) {
	t, err := time.Parse(dateLayout, date)
	if err != nil {
		return "", ErrInvalidDate
	}
	return t.AddDate(0, 0, delta).Format(dateLayout), nil
}

// AdjacentMonth shifts a YYYY-MM window key by delta months.
func AdjacentMonth(ym string, delta int) (string, error) {
	t, err := time.Parse(monthLayout, ym)
	if err != nil {
		return "", ErrInvalidMonth
	}
	return t.AddDate(0, delta, 0).Format(monthLayout), nil
}

// ValidDate reports whether s is a well-formed ISO calendar date.
func ValidDate(s string) bool {
	_, err := time.Parse(dateLayout, s)
	return err == nil
}

// ValidMonth reports whether s is a well-formed YYYY-MM window key.
func ValidMonth(s string) bool {
	_, err := time.Parse(monthLayout, s)
	return err == nil
}

// ValidClockTime accepts HH:MM and HH:MM:SS.
func ValidClockTime(s string) bool {
	if _, err := time.Parse("15:04", s); err == nil {
		return true
	}
	_, err := time.Parse("15:04:05", s)
	return err == nil
}

// ClockShort truncates HH:MM:SS to HH:MM for editing and display.
func ClockShort(s string) string {
	if len(s) > 5 {
		return s[:5]
	}
	return s
}
