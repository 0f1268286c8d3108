// Package runfmt holds the date, clock and distance helpers shared by the
// tracker. Parsers never fail: empty or malformed input reads as zero.
package runfmt

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the calendar day key used for goals and records.
const DateLayout = "2006-01-02"

var (
	leadingInt   = regexp.MustCompile(`^[+-]?\d+`)
	leadingFloat = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)
)

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate parses a day key in the given location.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, strings.TrimSpace(s), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

// ValidDate reports whether s is a well-formed day key.
func ValidDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

// AddDays returns the key of the day n days after date. Invalid input yields "".
func AddDays(date string, n int) string {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return ""
	}
	return FormatDate(t.AddDate(0, 0, n))
}

// Clock is a minutes:seconds pair, used for both elapsed time and pace.
type Clock struct {
	Min int `json:"min"`
	Sec int `json:"sec"`
}

// ParseClock reads "m:ss". Each part takes its leading digits; anything else is 0.
func ParseClock(s string) Clock {
	if s == "" {
		return Clock{}
	}
	parts := strings.Split(s, ":")
	c := Clock{Min: ParseInt(parts[0])}
	if len(parts) > 1 {
		c.Sec = ParseInt(parts[1])
	}
	return c
}

// ClockFromSeconds floors a second count into a Clock.
func ClockFromSeconds(total float64) Clock {
	if total <= 0 || math.IsNaN(total) || math.IsInf(total, 0) {
		return Clock{}
	}
	return Clock{
		Min: int(math.Floor(total / 60)),
		Sec: int(math.Floor(math.Mod(total, 60))),
	}
}

func (c Clock) Seconds() int {
	return c.Min*60 + c.Sec
}

// String renders "m:ss" with the seconds zero-padded.
func (c Clock) String() string {
	return fmt.Sprintf("%d:%02d", c.Min, c.Sec)
}

// Pace derives the per-km pace for a run. Non-positive distance gives "0:00".
func Pace(totalSeconds int, distanceKm float64) string {
	if distanceKm <= 0 {
		return Clock{}.String()
	}
	return ClockFromSeconds(float64(totalSeconds) / distanceKm).String()
}

// ParseInt returns the leading integer of s, or 0.
func ParseInt(s string) int {
	m := leadingInt.FindString(strings.TrimSpace(s))
	if m == "" {
		return 0
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0
	}
	return n
}

// ParseFloat returns the leading decimal number of s, or 0.
func ParseFloat(s string) float64 {
	m := leadingFloat.FindString(strings.TrimSpace(s))
	if m == "" {
		return 0
	}
	f, err := strconv.ParseFloat(m, 64)
	if err != nil || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// WholeKm floors a distance to whole kilometers, as the distance pickers do.
func WholeKm(km float64) int {
	if km <= 0 || math.IsNaN(km) {
		return 0
	}
	return int(math.Floor(km))
}
