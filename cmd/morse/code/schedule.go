package code

import (
	"errors"
	"fmt"
	"time"

	"github.com/samber/lo"
)

// Rate bounds in words per minute.
const (
	MinWPM = 1
	MaxWPM = 60
)

// unitsPerMinute is the PARIS convention: 50 units per word, so one unit
// lasts 1200ms at 1 wpm.
const unitsPerMinute = 1200 * time.Millisecond

var ErrInvalidRate = errors.New("invalid rate")

// Step is one timed interval of a schedule.
type Step struct {
	Active   bool
	Duration time.Duration
}

// Schedule is an ordered sequence of steps ready for playback.
type Schedule []Step

// UnitFor returns the unit duration for a rate. Sub-nanosecond remainders
// are truncated.
func UnitFor(wpm int) (time.Duration, error) {
	if wpm < MinWPM || wpm > MaxWPM {
		return 0, fmt.Errorf("%w: %d wpm (want %d-%d)", ErrInvalidRate, wpm, MinWPM, MaxWPM)
	}
	return unitsPerMinute / time.Duration(wpm), nil
}

// BuildSchedule maps each token to a step of Units()*unit.
func BuildSchedule(tokens []Token, unit time.Duration) (Schedule, error) {
	if unit <= 0 {
		return nil, fmt.Errorf("%w: unit %v", ErrInvalidRate, unit)
	}
	sched := make(Schedule, 0, len(tokens))
	for _, t := range tokens {
		units := t.Units()
		if units == 0 {
			return nil, fmt.Errorf("unknown token %d", t)
		}
		sched = append(sched, Step{
			Active:   t.IsMark(),
			Duration: time.Duration(units) * unit,
		})
	}
	return sched, nil
}

// ScheduleText encodes text and builds its schedule at the given rate.
func ScheduleText(text string, wpm int) (Schedule, error) {
	unit, err := UnitFor(wpm)
	if err != nil {
		return nil, err
	}
	return BuildSchedule(Encode(text), unit)
}

func (s Schedule) Total() time.Duration {
	return lo.SumBy(s, func(st Step) time.Duration { return st.Duration })
}

func (s Schedule) ActiveTime() time.Duration {
	return lo.SumBy(lo.Filter(s, func(st Step, _ int) bool { return st.Active }),
		func(st Step) time.Duration { return st.Duration })
}

func (s Schedule) InactiveTime() time.Duration {
	return s.Total() - s.ActiveTime()
}

// Marks returns the number of active steps.
func (s Schedule) Marks() int {
	return lo.CountBy(s, func(st Step) bool { return st.Active })
}
