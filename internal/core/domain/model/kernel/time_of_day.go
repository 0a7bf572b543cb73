package kernel

import (
	"fmt"

	"bakery/internal/pkg/errs"
)

// TimeOfDay is a validated wall-clock time without a date, used for order due
// times. The zero value is "unset" and fails IsSet, which lets required-field
// validation distinguish a missing time from midnight.
type TimeOfDay struct {
	hour   int
	minute int
	isSet  bool
}

// NewTimeOfDay creates a TimeOfDay, validating hour and minute ranges.
func NewTimeOfDay(hour, minute int) (TimeOfDay, error) {
	if hour < 0 || hour > 23 {
		return TimeOfDay{}, errs.NewValueIsOutOfRangeError("hour", hour, 0, 23)
	}
	if minute < 0 || minute > 59 {
		return TimeOfDay{}, errs.NewValueIsOutOfRangeError("minute", minute, 0, 59)
	}
	return TimeOfDay{hour: hour, minute: minute, isSet: true}, nil
}

// ParseTimeOfDay parses the "HH:MM" form produced by String.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	var hour, minute int
	if _, err := fmt.Sscanf(s, "%d:%d", &hour, &minute); err != nil {
		return TimeOfDay{}, errs.NewValueIsInvalidErrorWithCause("timeOfDay", err)
	}
	return NewTimeOfDay(hour, minute)
}

// Hour returns the hour in the range 0..23.
func (t TimeOfDay) Hour() int {
	return t.hour
}

// Minute returns the minute in the range 0..59.
func (t TimeOfDay) Minute() int {
	return t.minute
}

// IsSet reports whether the value was constructed, as opposed to being the
// "unset" zero value.
func (t TimeOfDay) IsSet() bool {
	return t.isSet
}

// String formats the time as "HH:MM".
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.hour, t.minute)
}
