package recurrence

import (
	"testing"
	"time"

	"github.com/samber/mo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestEngine_Generate(t *testing.T) {
	engine := NewEngine()

	tests := []struct {
		name     string
		cfg      Config
		expected []time.Time
	}{
		{
			name: "Daily stepping by 3",
			cfg: Config{
				Type:           TypeDaily,
				Interval:       3,
				StartDate:      mo.Some(date(2024, 1, 1)),
				MaxOccurrences: mo.Some(4),
			},
			expected: []time.Time{
				date(2024, 1, 1), date(2024, 1, 4), date(2024, 1, 7), date(2024, 1, 10),
			},
		},
		{
			name: "Daily bounded by end date",
			cfg: Config{
				Type:      TypeDaily,
				Interval:  1,
				StartDate: mo.Some(date(2024, 1, 1)),
				EndDate:   mo.Some(date(2024, 1, 5)),
			},
			expected: []time.Time{
				date(2024, 1, 1), date(2024, 1, 2), date(2024, 1, 3),
				date(2024, 1, 4), date(2024, 1, 5),
			},
		},
		{
			name: "Weekly with days before start skipped",
			cfg: Config{
				Type:           TypeWeekly,
				Interval:       1,
				WeeklyDays:     NewWeekdaySet(time.Tuesday, time.Thursday),
				StartDate:      mo.Some(date(2024, 1, 3)), // a Wednesday
				MaxOccurrences: mo.Some(4),
			},
			expected: []time.Time{
				date(2024, 1, 4), date(2024, 1, 9), date(2024, 1, 11), date(2024, 1, 16),
			},
		},
		{
			name: "Weekly every 2 weeks",
			cfg: Config{
				Type:           TypeWeekly,
				Interval:       2,
				WeeklyDays:     NewWeekdaySet(time.Monday),
				StartDate:      mo.Some(date(2024, 1, 1)), // a Monday
				MaxOccurrences: mo.Some(4),
			},
			expected: []time.Time{
				date(2024, 1, 1), date(2024, 1, 15), date(2024, 1, 29), date(2024, 2, 12),
			},
		},
		{
			name: "Weekly with empty day set yields nothing",
			cfg: Config{
				Type:      TypeWeekly,
				Interval:  1,
				StartDate: mo.Some(date(2024, 1, 1)),
			},
			expected: nil,
		},
		{
			name: "Monthly by date skips short months",
			cfg: Config{
				Type:           TypeMonthly,
				Interval:       1,
				MonthlyPattern: PatternByDate,
				StartDate:      mo.Some(date(2024, 1, 31)),
				MaxOccurrences: mo.Some(3),
			},
			expected: []time.Time{
				date(2024, 1, 31), date(2024, 3, 31), date(2024, 5, 31),
			},
		},
		{
			name: "Monthly by date with interval",
			cfg: Config{
				Type:           TypeMonthly,
				Interval:       3,
				MonthlyPattern: PatternByDate,
				StartDate:      mo.Some(date(2024, 1, 15)),
				MaxOccurrences: mo.Some(3),
			},
			expected: []time.Time{
				date(2024, 1, 15), date(2024, 4, 15), date(2024, 7, 15),
			},
		},
		{
			name: "Monthly by weekday follows the 2nd Tuesday",
			cfg: Config{
				Type:           TypeMonthly,
				Interval:       1,
				MonthlyPattern: PatternByWeekday,
				StartDate:      mo.Some(date(2024, 1, 9)), // 2nd Tuesday of January
				MaxOccurrences: mo.Some(3),
			},
			expected: []time.Time{
				date(2024, 1, 9), date(2024, 2, 13), date(2024, 3, 12),
			},
		},
		{
			name: "Monthly by weekday skips months without a 5th occurrence",
			cfg: Config{
				Type:           TypeMonthly,
				Interval:       1,
				MonthlyPattern: PatternByWeekday,
				StartDate:      mo.Some(date(2024, 1, 29)), // 5th Monday of January
				MaxOccurrences: mo.Some(3),
			},
			expected: []time.Time{
				// months with only four Mondays contribute nothing
				date(2024, 1, 29), date(2024, 4, 29), date(2024, 7, 29),
			},
		},
		{
			name: "Yearly",
			cfg: Config{
				Type:           TypeYearly,
				Interval:       2,
				StartDate:      mo.Some(date(2024, 3, 15)),
				MaxOccurrences: mo.Some(3),
			},
			expected: []time.Time{
				date(2024, 3, 15), date(2026, 3, 15), date(2028, 3, 15),
			},
		},
		{
			name: "Yearly Feb 29 skips non-leap years",
			cfg: Config{
				Type:           TypeYearly,
				Interval:       1,
				StartDate:      mo.Some(date(2024, 2, 29)),
				MaxOccurrences: mo.Some(3),
			},
			expected: []time.Time{
				date(2024, 2, 29), date(2028, 2, 29), date(2032, 2, 29),
			},
		},
		{
			name: "Missing start date yields nothing",
			cfg: Config{
				Type:     TypeDaily,
				Interval: 1,
			},
			expected: nil,
		},
		{
			name: "End date before start date yields nothing",
			cfg: Config{
				Type:      TypeDaily,
				Interval:  1,
				StartDate: mo.Some(date(2024, 6, 1)),
				EndDate:   mo.Some(date(2024, 1, 1)),
			},
			expected: nil,
		},
		{
			name: "End date equal to start date yields the start date",
			cfg: Config{
				Type:      TypeDaily,
				Interval:  1,
				StartDate: mo.Some(date(2024, 6, 1)),
				EndDate:   mo.Some(date(2024, 6, 1)),
			},
			expected: []time.Time{date(2024, 6, 1)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := engine.Generate(tt.cfg)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestEngine_Generate_Deterministic(t *testing.T) {
	engine := NewEngine()
	cfg := Config{
		Type:           TypeWeekly,
		Interval:       2,
		WeeklyDays:     NewWeekdaySet(time.Monday, time.Friday),
		StartDate:      mo.Some(date(2024, 1, 3)),
		MaxOccurrences: mo.Some(20),
	}

	first := engine.Generate(cfg)
	second := engine.Generate(cfg)

	require.NotEmpty(t, first)
	assert.Equal(t, first, second)
}

func TestEngine_Generate_Bounds(t *testing.T) {
	engine := NewEngine()

	configs := []Config{
		{Type: TypeDaily, Interval: 5, StartDate: mo.Some(date(2024, 1, 10)), EndDate: mo.Some(date(2024, 4, 1))},
		{Type: TypeWeekly, Interval: 1, WeeklyDays: NewWeekdaySet(time.Sunday, time.Wednesday, time.Saturday), StartDate: mo.Some(date(2024, 2, 2)), EndDate: mo.Some(date(2024, 5, 1))},
		{Type: TypeMonthly, Interval: 2, MonthlyPattern: PatternByDate, StartDate: mo.Some(date(2023, 12, 30)), MaxOccurrences: mo.Some(12)},
		{Type: TypeYearly, Interval: 1, StartDate: mo.Some(date(2020, 2, 29)), MaxOccurrences: mo.Some(8)},
	}

	for _, cfg := range configs {
		got := engine.Generate(cfg)
		require.NotEmpty(t, got)

		start := cfg.StartDate.MustGet()
		for i, d := range got {
			assert.False(t, d.Before(start), "date %v before start %v", d, start)
			if end, ok := cfg.EndDate.Get(); ok {
				assert.False(t, d.After(end), "date %v after end %v", d, end)
			}
			if i > 0 {
				assert.True(t, got[i-1].Before(d), "sequence not strictly increasing at %d", i)
			}
		}
		if n, ok := cfg.MaxOccurrences.Get(); ok {
			assert.LessOrEqual(t, len(got), n)
		}
		assert.LessOrEqual(t, len(got), DefaultOptions.MaxOccurrences)
	}
}

func TestEngine_Generate_LibraryCeiling(t *testing.T) {
	// No end date, no explicit cap: the library ceiling still bounds the run
	engine := NewEngine()
	cfg := Config{
		Type:      TypeDaily,
		Interval:  1,
		StartDate: mo.Some(date(2024, 1, 1)),
	}

	got := engine.Generate(cfg)
	assert.Len(t, got, DefaultOptions.MaxOccurrences)
}

func TestEngine_Generate_ExplicitCapAboveCeiling(t *testing.T) {
	engine := NewEngine()
	cfg := Config{
		Type:           TypeDaily,
		Interval:       1,
		StartDate:      mo.Some(date(2024, 1, 1)),
		MaxOccurrences: mo.Some(10000),
	}

	got := engine.Generate(cfg)
	assert.Len(t, got, DefaultOptions.MaxOccurrences)
}

func TestEngine_GenerateStats_GuardTrips(t *testing.T) {
	// A tight step budget on a sparse rule (Feb 29) truncates the run and
	// reports it, instead of looping onward
	engine := NewEngineWithConfig(EngineConfig{
		Options: Options{MaxOccurrences: 5, GuardFactor: 1},
	})
	cfg := Config{
		Type:      TypeYearly,
		Interval:  1,
		StartDate: mo.Some(date(2024, 2, 29)),
	}

	got, stats := engine.GenerateStats(cfg)

	assert.Equal(t, []time.Time{date(2024, 2, 29), date(2028, 2, 29)}, got)
	assert.True(t, stats.GuardTripped)
	assert.Equal(t, 5, stats.Steps)
}

func TestEngine_GenerateStats_NoGuardOnNormalRun(t *testing.T) {
	engine := NewEngine()
	cfg := Config{
		Type:           TypeDaily,
		Interval:       1,
		StartDate:      mo.Some(date(2024, 1, 1)),
		MaxOccurrences: mo.Some(5),
	}

	got, stats := engine.GenerateStats(cfg)

	assert.Len(t, got, 5)
	assert.False(t, stats.GuardTripped)
}

func TestEngine_Generate_NormalizesTimeOfDay(t *testing.T) {
	engine := NewEngine()
	cfg := Config{
		Type:           TypeDaily,
		Interval:       1,
		StartDate:      mo.Some(time.Date(2024, 1, 1, 17, 30, 45, 0, time.FixedZone("CET", 3600))),
		MaxOccurrences: mo.Some(2),
	}

	got := engine.Generate(cfg)
	assert.Equal(t, []time.Time{date(2024, 1, 1), date(2024, 1, 2)}, got)
}

func TestGenerate_PackageLevel(t *testing.T) {
	cfg := Config{
		Type:           TypeDaily,
		Interval:       1,
		StartDate:      mo.Some(date(2024, 1, 1)),
		MaxOccurrences: mo.Some(3),
	}
	assert.Equal(t, []time.Time{date(2024, 1, 1), date(2024, 1, 2), date(2024, 1, 3)}, Generate(cfg))
}
