// Package timeutil holds the time-of-day arithmetic used for attendance
// accounting, plus the injectable Clock every service reads "now" from.
package timeutil

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/apperror"
)

const (
	// DateLayout is the calendar date format used on the wire and in storage.
	DateLayout = "2006-01-02"

	minutesPerDay  = 24 * 60
	secondsPerDay  = minutesPerDay * 60
	secondsPerHour = 60 * 60
)

// ErrInvalidFormat is returned for time strings that are not HH:mm or HH:mm:ss.
var ErrInvalidFormat = apperror.New(apperror.ErrValidation, "time must be formatted as HH:mm or HH:mm:ss")

// TimeOfDay is a wall-clock time without a date, stored as seconds since midnight.
type TimeOfDay int

// ParseTimeOfDay accepts "HH:mm" or "HH:mm:ss".
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	if len(s) != 5 && len(s) != 8 {
		return 0, fmt.Errorf("%q: %w", s, ErrInvalidFormat)
	}
	if s[2] != ':' || (len(s) == 8 && s[5] != ':') {
		return 0, fmt.Errorf("%q: %w", s, ErrInvalidFormat)
	}

	h, ok := twoDigits(s[0:2], 23)
	if !ok {
		return 0, fmt.Errorf("%q: %w", s, ErrInvalidFormat)
	}
	m, ok := twoDigits(s[3:5], 59)
	if !ok {
		return 0, fmt.Errorf("%q: %w", s, ErrInvalidFormat)
	}
	sec := 0
	if len(s) == 8 {
		sec, ok = twoDigits(s[6:8], 59)
		if !ok {
			return 0, fmt.Errorf("%q: %w", s, ErrInvalidFormat)
		}
	}
	return TimeOfDay(h*secondsPerHour + m*60 + sec), nil
}

// MustParseTimeOfDay is ParseTimeOfDay for constants; it panics on bad input.
func MustParseTimeOfDay(s string) TimeOfDay {
	t, err := ParseTimeOfDay(s)
	if err != nil {
		panic(err)
	}
	return t
}

func twoDigits(s string, max int) (int, bool) {
	if s[0] < '0' || s[0] > '9' || s[1] < '0' || s[1] > '9' {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil || n > max {
		return 0, false
	}
	return n, true
}

// TimeOfDayOf drops the date part of t.
func TimeOfDayOf(t time.Time) TimeOfDay {
	return TimeOfDay(t.Hour()*secondsPerHour + t.Minute()*60 + t.Second())
}

// Seconds since midnight.
func (t TimeOfDay) Seconds() int { return int(t) }

func (t TimeOfDay) String() string {
	s := int(t) % secondsPerDay
	return fmt.Sprintf("%02d:%02d:%02d", s/secondsPerHour, (s%secondsPerHour)/60, s%60)
}

func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *TimeOfDay) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseTimeOfDay(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// MinutesBetween returns end minus start in minutes. When end is earlier
// than start the interval is taken to cross midnight, so the result is never
// negative. Seconds are kept as a fraction of a minute.
func MinutesBetween(start, end TimeOfDay) float64 {
	diff := int(end) - int(start)
	if diff < 0 {
		diff += secondsPerDay
	}
	return float64(diff) / 60
}

// IsAfter reports whether t1 is strictly later in the day than t2.
func IsAfter(t1, t2 TimeOfDay) bool {
	return t1 > t2
}

// Round2 rounds minutes to 1/100.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ParseDate parses a YYYY-MM-DD calendar date in UTC.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, apperror.New(apperror.ErrValidation, fmt.Sprintf("date %q must be formatted as YYYY-MM-DD", s))
	}
	return d, nil
}

// DateOf returns t's calendar date, as seen in t's location, at UTC midnight.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysInclusive counts calendar days from start through end.
func DaysInclusive(start, end time.Time) int {
	return int(DateOf(end).Sub(DateOf(start)).Hours()/24) + 1
}
