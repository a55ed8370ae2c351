// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package postdate parses the calendar dates carried by exported posts.
package postdate

import (
	"fmt"
	"time"
)

// Layout is the only accepted publish-date form: YYYY-MM-DD.
const Layout = "2006-01-02"

// DateFormatError reports a date string that does not match Layout.
type DateFormatError struct {
	Value string
	Err   error
}

func (e *DateFormatError) Error() string {
	return fmt.Sprintf("date %q does not match %s", e.Value, Layout)
}

func (e *DateFormatError) Unwrap() error {
	return e.Err
}

// Parse reads s as a YYYY-MM-DD date at midnight in loc. A nil loc means
// time.Local. Any other form, including a full timestamp, yields a
// *DateFormatError.
func Parse(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(Layout, s, loc)
	if err != nil {
		return time.Time{}, &DateFormatError{Value: s, Err: err}
	}
	return t, nil
}

// Format renders t in Layout.
func Format(t time.Time) string {
	return t.Format(Layout)
}

// DaysBetween returns the number of whole days from then to now, truncated
// toward zero. Both times are compared by wall clock, so a daylight-saving
// shift between them does not lose a day.
func DaysBetween(then, now time.Time) int {
	return int(wallClock(now).Sub(wallClock(then)).Hours() / 24)
}

func wallClock(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}
