package recurrence

import (
	"time"
)

// Type selects which stepping rule the generator applies
type Type int

const (
	TypeDaily   Type = iota // every N days
	TypeWeekly              // selected weekdays in every Nth week
	TypeMonthly             // a day-of-month or ordinal-weekday target in every Nth month
	TypeYearly              // same month and day in every Nth year
)

// String returns the lowercase name of the recurrence type
func (t Type) String() string {
	switch t {
	case TypeDaily:
		return "daily"
	case TypeWeekly:
		return "weekly"
	case TypeMonthly:
		return "monthly"
	case TypeYearly:
		return "yearly"
	default:
		return "unknown"
	}
}

// MonthlyPattern selects how a monthly rule picks its day within each month
type MonthlyPattern int

const (
	PatternByDate    MonthlyPattern = iota // same calendar day-of-month as the start date
	PatternByWeekday                       // same ordinal weekday as the start date ("2nd Tuesday")
)

// String returns a short name for the monthly pattern
func (p MonthlyPattern) String() string {
	if p == PatternByWeekday {
		return "by-weekday"
	}
	return "by-date"
}

// WeekdaySet is a set of weekdays stored as a bitmask indexed by
// time.Weekday (Sunday = bit 0 through Saturday = bit 6)
type WeekdaySet uint8

// NewWeekdaySet builds a set containing the given weekdays
func NewWeekdaySet(days ...time.Weekday) WeekdaySet {
	var s WeekdaySet
	for _, d := range days {
		s.Add(d)
	}
	return s
}

// Has reports whether d is in the set
func (s WeekdaySet) Has(d time.Weekday) bool {
	if d < time.Sunday || d > time.Saturday {
		return false
	}
	return s&(1<<uint(d)) != 0
}

// Add inserts d into the set; out-of-range values are ignored
func (s *WeekdaySet) Add(d time.Weekday) {
	if d < time.Sunday || d > time.Saturday {
		return
	}
	*s |= 1 << uint(d)
}

// Remove deletes d from the set; out-of-range values are ignored
func (s *WeekdaySet) Remove(d time.Weekday) {
	if d < time.Sunday || d > time.Saturday {
		return
	}
	*s &^= 1 << uint(d)
}

// Toggle inserts d if absent, removes it otherwise
func (s *WeekdaySet) Toggle(d time.Weekday) {
	if d < time.Sunday || d > time.Saturday {
		return
	}
	*s ^= 1 << uint(d)
}

// IsEmpty reports whether the set contains no weekdays
func (s WeekdaySet) IsEmpty() bool {
	return s == 0
}

// Days returns the members of the set in ascending weekday order
func (s WeekdaySet) Days() []time.Weekday {
	var days []time.Weekday
	for d := time.Sunday; d <= time.Saturday; d++ {
		if s.Has(d) {
			days = append(days, d)
		}
	}
	return days
}

// Options controls generation limits for an Engine
type Options struct {
	MaxOccurrences int // library ceiling on generated dates, applied even when the configuration sets no cap
	GuardFactor    int // calendar steps allowed per permitted occurrence before generation gives up
}

// DefaultOptions provides sensible defaults for interactive use
var DefaultOptions = Options{
	MaxOccurrences: 50,  // Enough for a preview while guaranteeing termination
	GuardFactor:    100, // Tolerates long runs of skipped months/years (e.g. Feb 29 rules)
}

// Stats reports what a single generation run did. Tests use it to tell a
// guard-truncated result from a legitimately sparse one.
type Stats struct {
	Steps        int  // calendar steps (days/weeks/months/years) advanced
	GuardTripped bool // true if the step budget ran out before the cap or end date was reached
}
