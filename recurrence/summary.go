package recurrence

import (
	"fmt"
	"strings"
)

// Describe renders a configuration as a human-readable sentence, e.g.
// "every 2 weeks on Tuesday and Thursday, until 2024-06-30". It is intended
// for preview labels next to the generated dates.
func Describe(cfg Config) string {
	var b strings.Builder

	switch cfg.Type {
	case TypeDaily:
		b.WriteString(every(cfg.Interval, "day"))
	case TypeWeekly:
		if cfg.WeeklyDays.IsEmpty() {
			return "never (no weekdays selected)"
		}
		b.WriteString(every(cfg.Interval, "week"))
		b.WriteString(" on ")
		b.WriteString(weekdayList(cfg.WeeklyDays))
	case TypeMonthly:
		b.WriteString(every(cfg.Interval, "month"))
		if start, ok := cfg.StartDate.Get(); ok {
			if cfg.MonthlyPattern == PatternByWeekday {
				nth := (start.Day()-1)/7 + 1
				fmt.Fprintf(&b, " on the %s %s", ordinal(nth), start.Weekday())
			} else {
				fmt.Fprintf(&b, " on day %d", start.Day())
			}
		}
	case TypeYearly:
		b.WriteString(every(cfg.Interval, "year"))
		if start, ok := cfg.StartDate.Get(); ok {
			fmt.Fprintf(&b, " on %s %d", start.Month(), start.Day())
		}
	default:
		return "unknown recurrence"
	}

	if end, ok := cfg.EndDate.Get(); ok {
		fmt.Fprintf(&b, ", until %s", end.Format("2006-01-02"))
	}
	if n, ok := cfg.MaxOccurrences.Get(); ok {
		fmt.Fprintf(&b, ", up to %d times", n)
	}

	return b.String()
}

func every(interval int, unit string) string {
	if interval == 1 {
		return "every " + unit
	}
	return fmt.Sprintf("every %d %ss", interval, unit)
}

func weekdayList(days WeekdaySet) string {
	names := make([]string, 0, 7)
	for _, d := range days.Days() {
		names = append(names, d.String())
	}
	if len(names) == 1 {
		return names[0]
	}
	return strings.Join(names[:len(names)-1], ", ") + " and " + names[len(names)-1]
}

func ordinal(n int) string {
	switch n {
	case 1:
		return "1st"
	case 2:
		return "2nd"
	case 3:
		return "3rd"
	default:
		return fmt.Sprintf("%dth", n)
	}
}
