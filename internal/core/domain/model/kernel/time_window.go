package kernel

import (
	"errors"
	"fmt"
	"time"

	"lavka/internal/pkg/errs"
	"lavka/internal/pkg/guard"
)

const (
	// MinuteOfDayMin is the first minute of a day (00:00).
	MinuteOfDayMin = 0
	// MinuteOfDayMax is the last minute of a day (23:59).
	MinuteOfDayMax = 24*60 - 1

	timeWindowLayoutLen = len("HH:MM-HH:MM")
)

// ErrInvalidTimeWindow is returned when a text is not a well-formed "HH:MM-HH:MM" window.
var ErrInvalidTimeWindow = errs.NewValueIsInvalidErrorWithCause(
	"time window",
	errors.New("expected HH:MM-HH:MM with start not after end"),
)

// ErrTimeWindowIsNotConstructed is returned when a zero-value TimeWindow is used.
var ErrTimeWindowIsNotConstructed = errs.NewValueIsRequiredError(
	"time window must be created via ParseTimeWindow or NewTimeWindow")

// TimeWindow is a same-day interval [start, end] in minutes since midnight.
// Both ends are inclusive and the window never wraps past midnight.
//
// Example:
//
//	w, err := kernel.ParseTimeWindow("09:00-18:00")
//	if err != nil {
//	    return err
//	}
//	w.Contains(11*60 + 15) // true
//	w.Contains(8 * 60)     // false
type TimeWindow struct { //nolint:recvcheck //using for validation
	start int
	end   int
	guard guard.ConstructorGuard
}

// NewTimeWindow builds a window from minute offsets.
//
// Parameters:
//   - start: first minute of the window, in [MinuteOfDayMin, MinuteOfDayMax]
//   - end: last minute of the window, in [start, MinuteOfDayMax]
//
// Returns:
//   - TimeWindow: a valid window
//   - error: every violated bound, joined
func NewTimeWindow(start int, end int) (TimeWindow, error) {
	w := TimeWindow{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(w.setStart(start), w.setEnd(end)); err != nil {
		return TimeWindow{}, err
	}

	if w.start > w.end {
		return TimeWindow{}, fmt.Errorf("%w: start %s is after end %s",
			ErrInvalidTimeWindow, formatMinute(start), formatMinute(end))
	}

	return w, nil
}

// ParseTimeWindow parses the fixed-width "HH:MM-HH:MM" form.
// The text must be exactly 11 characters, hours are 00..23, minutes 00..59,
// and the start must not be after the end.
func ParseTimeWindow(text string) (TimeWindow, error) {
	if len(text) != timeWindowLayoutLen || text[2] != ':' || text[5] != '-' || text[8] != ':' {
		return TimeWindow{}, fmt.Errorf("%w: %q", ErrInvalidTimeWindow, text)
	}

	start, ok := parseClock(text[0:5])
	if !ok {
		return TimeWindow{}, fmt.Errorf("%w: %q", ErrInvalidTimeWindow, text)
	}

	end, ok := parseClock(text[6:11])
	if !ok {
		return TimeWindow{}, fmt.Errorf("%w: %q", ErrInvalidTimeWindow, text)
	}

	if start > end {
		return TimeWindow{}, fmt.Errorf("%w: %q", ErrInvalidTimeWindow, text)
	}

	return TimeWindow{start: start, end: end, guard: guard.NewConstructorGuard()}, nil
}

// ParseTimeWindows parses every text and reports all malformed entries at once.
// An empty input yields an empty, non-nil slice.
func ParseTimeWindows(texts []string) ([]TimeWindow, error) {
	windows := make([]TimeWindow, 0, len(texts))
	var parseErrs []error

	for _, text := range texts {
		w, err := ParseTimeWindow(text)
		if err != nil {
			parseErrs = append(parseErrs, err)
			continue
		}
		windows = append(windows, w)
	}

	if err := errors.Join(parseErrs...); err != nil {
		return nil, err
	}

	return windows, nil
}

// ValidateTimeWindow reports whether text is a well-formed window.
func ValidateTimeWindow(text string) bool {
	_, err := ParseTimeWindow(text)
	return err == nil
}

// AnyContains reports whether at least one of the windows contains minute.
func AnyContains(windows []TimeWindow, minute int) bool {
	for _, w := range windows {
		if w.Contains(minute) {
			return true
		}
	}
	return false
}

// MinuteOfDay reduces an instant to minutes since midnight UTC.
func MinuteOfDay(t time.Time) int {
	u := t.UTC()
	return u.Hour()*60 + u.Minute()
}

// Contains reports whether start <= minute <= end.
func (w TimeWindow) Contains(minute int) bool {
	return w.start <= minute && minute <= w.end
}

// Start returns the first minute of the window.
func (w TimeWindow) Start() int {
	return w.start
}

// End returns the last minute of the window.
func (w TimeWindow) End() int {
	return w.end
}

// IsEqual compares two windows by their bounds.
func (w TimeWindow) IsEqual(other TimeWindow) bool {
	return w.start == other.start && w.end == other.end
}

// Validate ensures the window was created through a constructor.
func (w TimeWindow) Validate() error {
	return w.guard.Validate(ErrTimeWindowIsNotConstructed)
}

// String renders the window back to "HH:MM-HH:MM".
func (w TimeWindow) String() string {
	return formatMinute(w.start) + "-" + formatMinute(w.end)
}

// FormatTimeWindows renders every window with String.
func FormatTimeWindows(windows []TimeWindow) []string {
	out := make([]string, 0, len(windows))
	for _, w := range windows {
		out = append(out, w.String())
	}
	return out
}

func (w *TimeWindow) setStart(start int) error {
	if start < MinuteOfDayMin || start > MinuteOfDayMax {
		return errs.NewValueIsOutOfRangeError("start", start, MinuteOfDayMin, MinuteOfDayMax)
	}
	w.start = start
	return nil
}

func (w *TimeWindow) setEnd(end int) error {
	if end < MinuteOfDayMin || end > MinuteOfDayMax {
		return errs.NewValueIsOutOfRangeError("end", end, MinuteOfDayMin, MinuteOfDayMax)
	}
	w.end = end
	return nil
}

// parseClock reads "HH:MM" into minutes since midnight.
func parseClock(clock string) (int, bool) {
	hours, ok := parseTwoDigits(clock[0:2])
	if !ok || hours > 23 {
		return 0, false
	}

	minutes, ok := parseTwoDigits(clock[3:5])
	if !ok || minutes > 59 {
		return 0, false
	}

	return hours*60 + minutes, true
}

func parseTwoDigits(s string) (int, bool) {
	if s[0] < '0' || s[0] > '9' || s[1] < '0' || s[1] > '9' {
		return 0, false
	}
	return int(s[0]-'0')*10 + int(s[1]-'0'), true
}

func formatMinute(minute int) string {
	return fmt.Sprintf("%02d:%02d", minute/60, minute%60)
}
