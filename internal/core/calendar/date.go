// Package calendar turns a reference date and a view granularity into the
// inclusive date range to query, and folds flat assignment lists into the
// per-day and per-project groupings the calendar views render.
//
// Dates are calendar days without a time of day. They are carried as
// time.Time values at UTC midnight and rendered as YYYY-MM-DD.
package calendar

import (
	"fmt"
	"time"

	"github.com/sitecrew/workforce-scheduler/internal/core/domain"
)

// DateLayout is the canonical day format used in queries and payloads.
const DateLayout = "2006-01-02"

// Granularity is the calendar view scale.
type Granularity string

const (
	Day   Granularity = "day"
	Week  Granularity = "week"
	Month Granularity = "month"
)

// ParseGranularity accepts day, week or month. Empty input means day.
func ParseGranularity(s string) (Granularity, error) {
	switch Granularity(s) {
	case "", Day:
		return Day, nil
	case Week, Month:
		return Granularity(s), nil
	}
	return "", fmt.Errorf("%w: unknown view %q", domain.ErrInvalidInput, s)
}

// Direction moves the reference date backwards or forwards.
type Direction string

const (
	Previous Direction = "previous"
	Next     Direction = "next"
)

func ParseDirection(s string) (Direction, error) {
	switch Direction(s) {
	case Previous, Next:
		return Direction(s), nil
	}
	return "", fmt.Errorf("%w: unknown direction %q", domain.ErrInvalidInput, s)
}

// Truncate drops the time of day, keeping t's own calendar date.
func Truncate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", domain.ErrInvalidDate, s)
	}
	return t, nil
}

// ParseDateOr parses s, or returns fallback truncated to a day when s is empty.
func ParseDateOr(s string, fallback time.Time) (time.Time, error) {
	if s == "" {
		return Truncate(fallback), nil
	}
	return ParseDate(s)
}

// Format renders t as YYYY-MM-DD.
func Format(t time.Time) string {
	return t.Format(DateLayout)
}

// Range is a closed interval of calendar days.
type Range struct {
	Start time.Time
	End   time.Time
}

func (r Range) StartDate() string { return Format(r.Start) }
func (r Range) EndDate() string   { return Format(r.End) }

// Days lists every day of r in ascending order.
func (r Range) Days() []time.Time {
	var days []time.Time
	for d := r.Start; !d.After(r.End); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// ComputeRange returns the inclusive range a view anchored on ref covers.
// Weeks start on Sunday. Unknown granularities behave like Day.
func ComputeRange(ref time.Time, g Granularity) Range {
	ref = Truncate(ref)
	switch g {
	case Week:
		start := ref.AddDate(0, 0, -int(ref.Weekday()))
		return Range{Start: start, End: start.AddDate(0, 0, 6)}
	case Month:
		y, m, _ := ref.Date()
		return Range{
			Start: time.Date(y, m, 1, 0, 0, 0, 0, time.UTC),
			// day 0 of the next month is the last day of this one
			End: time.Date(y, m+1, 0, 0, 0, 0, 0, time.UTC),
		}
	default:
		return Range{Start: ref, End: ref}
	}
}

// Navigate moves ref one step of g in direction dir.
//
// Month steps keep the day of month when the target month has it and clamp
// to the target month's last day otherwise: Jan 31 + 1 month is Feb 28 (or
// 29), never Mar 3.
func Navigate(ref time.Time, g Granularity, dir Direction) time.Time {
	ref = Truncate(ref)
	step := 1
	if dir == Previous {
		step = -1
	}
	switch g {
	case Week:
		return ref.AddDate(0, 0, 7*step)
	case Month:
		return addMonthsClamped(ref, step)
	default:
		return ref.AddDate(0, 0, step)
	}
}

func addMonthsClamped(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m+time.Month(n), 1, 0, 0, 0, 0, time.UTC)
	if last := daysIn(first); d > last {
		d = last
	}
	return time.Date(first.Year(), first.Month(), d, 0, 0, 0, 0, time.UTC)
}

func daysIn(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
