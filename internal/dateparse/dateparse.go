// Package dateparse provides the calendar-date value used by tasks, strict
// YYYY-MM-DD parsing, and optional expansion of relative date inputs
// ("today", "+3d", "friday") into that form.
package dateparse

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/marcus/jot/internal/apperr"
)

const (
	isoLayout     = "2006-01-02"
	displayLayout = "Jan 2 2006"
)

// Date is a calendar date with no time component. The zero value is not a
// valid date; use Parse or Of. 0001-01-01 is a real date and is not zero.
type Date struct {
	t   time.Time
	set bool
}

// Of returns the date of t in t's location.
func Of(t time.Time) Date {
	y, m, d := t.Date()
	return Date{t: time.Date(y, m, d, 0, 0, 0, 0, time.UTC), set: true}
}

// Parse parses an exact YYYY-MM-DD date. Calendar-invalid days and months
// are rejected.
func Parse(input string) (Date, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return Date{}, apperr.New(apperr.InvalidDate, "date is empty, use the yyyy-mm-dd format")
	}
	t, err := time.Parse(isoLayout, input)
	if err != nil {
		return Date{}, apperr.Wrap(apperr.InvalidDate, err, "%q is not a valid date, use the yyyy-mm-dd format", input)
	}
	return Date{t: t, set: true}, nil
}

// MustParse is like Parse but panics on error. Intended for tests and constants.
func MustParse(input string) Date {
	d, err := Parse(input)
	if err != nil {
		panic(err)
	}
	return d
}

// IsZero reports whether d is the zero Date, i.e. no date at all.
func (d Date) IsZero() bool { return !d.set }

// String returns the ISO form, e.g. "2026-02-20".
func (d Date) String() string { return d.t.Format(isoLayout) }

// Display returns the human form, e.g. "Feb 20 2026".
func (d Date) Display() string { return d.t.Format(displayLayout) }

// Before reports whether d is strictly earlier than other.
func (d Date) Before(other Date) bool { return d.t.Before(other.t) }

// After reports whether d is strictly later than other.
func (d Date) After(other Date) bool { return d.t.After(other.t) }

// Equal reports whether d and other are the same calendar day.
func (d Date) Equal(other Date) bool { return d.t.Equal(other.t) }

// Within reports whether d lies in [from, to], inclusive on both ends.
func (d Date) Within(from, to Date) bool {
	return !d.Before(from) && !d.After(to)
}

// ParseRelative parses a date input relative to now and returns the
// resulting calendar date.
//
// Supported formats:
//   - Exact dates: "2026-03-01"
//   - Relative days: "+7d"
//   - Relative weeks: "+2w"
//   - Relative months: "+1m"
//   - Day names: "monday", "tuesday", etc. (next occurrence)
//   - Keywords: "today", "tomorrow", "next-week", "next-month"
func ParseRelative(input string, now time.Time) (Date, error) {
	input = strings.TrimSpace(strings.ToLower(input))
	if input == "" {
		return Date{}, apperr.New(apperr.InvalidDate, "date is empty")
	}

	if d, err := Parse(input); err == nil {
		return d, nil
	}

	switch input {
	case "today":
		return Of(now), nil
	case "tomorrow":
		return Of(now.AddDate(0, 0, 1)), nil
	case "next-week":
		// Next Monday
		daysUntilMonday := (int(time.Monday) - int(now.Weekday()) + 7) % 7
		if daysUntilMonday == 0 {
			daysUntilMonday = 7
		}
		return Of(now.AddDate(0, 0, daysUntilMonday)), nil
	case "next-month":
		year, month, _ := now.Date()
		return Of(time.Date(year, month+1, 1, 0, 0, 0, 0, now.Location())), nil
	}

	// Relative offsets: +Nd, +Nw, +Nm
	if strings.HasPrefix(input, "+") && len(input) >= 3 {
		suffix := input[len(input)-1]
		n, err := strconv.Atoi(input[1 : len(input)-1])
		if err == nil && n >= 0 {
			switch suffix {
			case 'd':
				return Of(now.AddDate(0, 0, n)), nil
			case 'w':
				return Of(now.AddDate(0, 0, n*7)), nil
			case 'm':
				return Of(now.AddDate(0, n, 0)), nil
			default:
				return Date{}, apperr.New(apperr.InvalidDate,
					"unknown relative unit %q in %q (use d, w, or m)", string(suffix), input)
			}
		}
	}

	if target, ok := weekdays[input]; ok {
		daysAhead := (int(target) - int(now.Weekday()) + 7) % 7
		if daysAhead == 0 {
			daysAhead = 7 // always advance to next occurrence
		}
		return Of(now.AddDate(0, 0, daysAhead)), nil
	}

	return Date{}, apperr.New(apperr.InvalidDate, "unrecognized date %q", input)
}

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// Expand rewrites a relative date input into YYYY-MM-DD. Inputs it cannot
// interpret are returned unchanged so strict validation reports them.
func Expand(input string, now time.Time) string {
	d, err := ParseRelative(input, now)
	if err != nil {
		return input
	}
	return d.String()
}

// MarshalText implements encoding.TextMarshaler using the ISO form.
func (d Date) MarshalText() ([]byte, error) {
	if d.IsZero() {
		return []byte{}, nil
	}
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Date) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*d = Date{}
		return nil
	}
	parsed, err := Parse(string(b))
	if err != nil {
		return fmt.Errorf("unmarshal date: %w", err)
	}
	*d = parsed
	return nil
}
