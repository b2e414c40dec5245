package Workflow

import (
	"fmt"
	"time"

	"CareBridge/Models"
)

// TimingTolerance is how far either side of the scheduled time still counts as on time.
const TimingTolerance = 15

// ParseClock parses a 24-hour HH:MM value into minutes since midnight. Both
// fields must be two digits, so "9:30" is rejected.
func ParseClock(hhmm string) (int, error) {
	if len(hhmm) != len(Models.TimeLayout) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, hhmm)
	}
	t, err := time.Parse(Models.TimeLayout, hhmm)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, hhmm)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// ClassifyTiming compares the wall-clock minute of completedAt, in its own
// location, with the scheduled HH:MM. Only the time of day is compared, so a
// task finished after midnight reads as early.
func ClassifyTiming(scheduled string, completedAt time.Time) (Models.TaskTiming, error) {
	sched, err := ParseClock(scheduled)
	if err != nil {
		return Models.TimingOnTime, err
	}
	done := completedAt.Hour()*60 + completedAt.Minute()

	delta := done - sched
	switch {
	case delta < -TimingTolerance:
		return Models.TimingEarly, nil
	case delta > TimingTolerance:
		return Models.TimingLate, nil
	default:
		return Models.TimingOnTime, nil
	}
}

// ValidateDate checks a YYYY-MM-DD calendar day.
func ValidateDate(day string) error {
	if _, err := time.Parse(Models.DateLayout, day); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDate, day)
	}
	return nil
}
