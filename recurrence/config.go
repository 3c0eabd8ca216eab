package recurrence

import (
	"crypto/sha256"
	"fmt"
	"time"

	"github.com/samber/mo"
)

const (
	minInterval = 1
	maxInterval = 999
)

// Config describes a recurrence rule. Fields irrelevant to the current Type
// (e.g. WeeklyDays while Type is monthly) are kept but inert, so switching
// the type back restores prior selections.
//
// Mutate a Config through its setter methods: they normalize out-of-range
// input and invalidate the cached preview. None of them can fail or panic.
type Config struct {
	Type           Type
	Interval       int // step multiplier, always within [1, 999]
	WeeklyDays     WeekdaySet
	MonthlyPattern MonthlyPattern
	StartDate      mo.Option[time.Time]
	EndDate        mo.Option[time.Time] // inclusive; absent means unbounded
	MaxOccurrences mo.Option[int]       // absent means the library ceiling applies

	preview      []time.Time
	previewValid bool
}

// NewConfig creates a configuration with interactive defaults: weekly,
// interval 1, starting today, no end bound.
func NewConfig() *Config {
	return &Config{
		Type:      TypeWeekly,
		Interval:  1,
		StartDate: mo.Some(DateOnly(time.Now())),
	}
}

// DateOnly strips time-of-day and timezone, leaving the calendar date at
// midnight UTC. All dates held by a Config are normalized this way.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// SetType switches the recurrence type. Unknown values are ignored.
// Pattern-specific fields of other types are not cleared, just inert.
func (c *Config) SetType(t Type) {
	if t < TypeDaily || t > TypeYearly {
		return
	}
	c.Type = t
	c.invalidate()
}

// SetInterval sets the step multiplier, clamped into [1, 999]
func (c *Config) SetInterval(n int) {
	if n < minInterval {
		n = minInterval
	}
	if n > maxInterval {
		n = maxInterval
	}
	c.Interval = n
	c.invalidate()
}

// ToggleWeeklyDay inserts d into the weekly day set if absent, removes it
// otherwise. Out-of-range weekdays are ignored.
func (c *Config) ToggleWeeklyDay(d time.Weekday) {
	if d < time.Sunday || d > time.Saturday {
		return
	}
	c.WeeklyDays.Toggle(d)
	c.invalidate()
}

// SetMonthlyPattern selects how monthly rules pick their day. Unknown values
// are ignored.
func (c *Config) SetMonthlyPattern(p MonthlyPattern) {
	if p != PatternByDate && p != PatternByWeekday {
		return
	}
	c.MonthlyPattern = p
	c.invalidate()
}

// SetStartDate sets the earliest candidate date
func (c *Config) SetStartDate(d time.Time) {
	c.StartDate = mo.Some(DateOnly(d))
	c.invalidate()
}

// ClearStartDate removes the start date; generation then yields no dates
func (c *Config) ClearStartDate() {
	c.StartDate = mo.None[time.Time]()
	c.invalidate()
}

// SetEndDate sets the inclusive upper bound. No ordering against the start
// date is enforced here; an end before the start simply yields no dates.
func (c *Config) SetEndDate(d time.Time) {
	c.EndDate = mo.Some(DateOnly(d))
	c.invalidate()
}

// ClearEndDate removes the end bound, leaving only the occurrence cap
func (c *Config) ClearEndDate() {
	c.EndDate = mo.None[time.Time]()
	c.invalidate()
}

// SetMaxOccurrences caps the number of generated dates. Values below 1 are
// clamped to 1. The library ceiling still applies on top of this.
func (c *Config) SetMaxOccurrences(n int) {
	if n < 1 {
		n = 1
	}
	c.MaxOccurrences = mo.Some(n)
	c.invalidate()
}

// ClearMaxOccurrences removes the explicit cap, falling back to the library
// ceiling
func (c *Config) ClearMaxOccurrences() {
	c.MaxOccurrences = mo.None[int]()
	c.invalidate()
}

// GeneratePreview computes the occurrence dates for the current
// configuration and caches them. Calling it again without an intervening
// edit returns the identical cached slice.
func (c *Config) GeneratePreview() []time.Time {
	if !c.previewValid {
		c.preview = Generate(*c)
		c.previewValid = true
	}
	return c.preview
}

// PreviewDates returns the last computed preview without recomputing.
// Returns nil if no preview has been generated since the last edit.
func (c *Config) PreviewDates() []time.Time {
	if !c.previewValid {
		return nil
	}
	return c.preview
}

func (c *Config) invalidate() {
	c.preview = nil
	c.previewValid = false
}

// Fingerprint returns a stable hash of all rule fields, used as a cache key.
// Two configurations with equal rule fields share a fingerprint regardless
// of preview state.
func (c *Config) Fingerprint() string {
	hasher := sha256.New()

	fmt.Fprintf(hasher, "%d|%d|%d|%d|", c.Type, c.Interval, c.WeeklyDays, c.MonthlyPattern)

	if d, ok := c.StartDate.Get(); ok {
		hasher.Write([]byte(d.Format(time.RFC3339)))
	}
	hasher.Write([]byte{'|'})

	if d, ok := c.EndDate.Get(); ok {
		hasher.Write([]byte(d.Format(time.RFC3339)))
	}
	hasher.Write([]byte{'|'})

	if n, ok := c.MaxOccurrences.Get(); ok {
		fmt.Fprintf(hasher, "%d", n)
	}

	return fmt.Sprintf("%x", hasher.Sum(nil))
}
