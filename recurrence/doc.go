/*
Package recurrence computes concrete calendar dates from a structured
recurrence rule: "every 2nd Tuesday of every 3rd month, starting Jan 1 2024,
ending after 50 occurrences or on a given date".

# Basic Usage

Build a configuration through its mutators, then ask for the preview dates:

	cfg := recurrence.NewConfig()
	cfg.SetType(recurrence.TypeWeekly)
	cfg.SetInterval(2)
	cfg.ToggleWeeklyDay(time.Tuesday)
	cfg.ToggleWeeklyDay(time.Thursday)
	cfg.SetStartDate(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	cfg.SetMaxOccurrences(10)

	for _, d := range cfg.GeneratePreview() {
		fmt.Println(d.Format("2006-01-02"))
	}

Mutators are total: out-of-range input is clamped or ignored, never an
error. A configuration that cannot match anything (no start date, end date
before start date, weekly rule with no days selected) generates an empty
sequence rather than failing, since configurations are typically "invalid"
only transiently while a user composes them.

# Engines

Generate and Config.GeneratePreview use a shared default engine capped at
50 occurrences. Construct an Engine for custom limits, debug logging, or a
result cache shared across many configurations:

	engine := recurrence.NewEngineWithConfig(recurrence.EngineConfig{
		Options:      recurrence.Options{MaxOccurrences: 100},
		CacheEnabled: true,
		CacheConfig:  recurrence.DefaultCacheConfig,
	})
	defer engine.Close()

	dates := engine.Generate(*cfg)

# Calendar Irregularities

Impossible targets contribute no occurrence for their period and generation
continues: a monthly day-31 rule skips February, a yearly Feb 29 rule skips
non-leap years, a "5th Monday" rule skips months with only four Mondays.
Dates are calendar dates, normalized to midnight UTC; there is no
time-of-day or timezone handling.
*/
package recurrence
