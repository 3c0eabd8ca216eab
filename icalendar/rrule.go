// Package icalendar exports recurrence configurations to the iCalendar
// ecosystem: RRULE values, VCALENDAR documents and xCal XML.
package icalendar

import (
	"errors"

	"github.com/teambition/rrule-go"

	"github.com/seralo/librecur/recurrence"
)

// ErrNoStartDate is returned when exporting a configuration that has no
// start date; there is no DTSTART to anchor the rule to.
var ErrNoStartDate = errors.New("recurrence configuration has no start date")

// rruleWeekdays maps time.Weekday indexes (Sunday=0) to rrule weekdays
var rruleWeekdays = [...]rrule.Weekday{
	rrule.SU, rrule.MO, rrule.TU, rrule.WE, rrule.TH, rrule.FR, rrule.SA,
}

// Options maps a configuration onto an rrule.ROption. The option carries the
// explicit occurrence cap only; the library ceiling applied during native
// generation is a generation limit, not part of the rule.
func Options(cfg recurrence.Config) (rrule.ROption, error) {
	start, ok := cfg.StartDate.Get()
	if !ok {
		return rrule.ROption{}, ErrNoStartDate
	}

	opt := rrule.ROption{
		Dtstart:  start,
		Interval: cfg.Interval,
		Wkst:     rrule.SU, // weeks are grouped Sunday-first, matching the native generator
	}

	switch cfg.Type {
	case recurrence.TypeDaily:
		opt.Freq = rrule.DAILY
	case recurrence.TypeWeekly:
		opt.Freq = rrule.WEEKLY
		for _, d := range cfg.WeeklyDays.Days() {
			opt.Byweekday = append(opt.Byweekday, rruleWeekdays[d])
		}
	case recurrence.TypeMonthly:
		opt.Freq = rrule.MONTHLY
		if cfg.MonthlyPattern == recurrence.PatternByWeekday {
			nth := (start.Day()-1)/7 + 1
			opt.Byweekday = []rrule.Weekday{rruleWeekdays[start.Weekday()].Nth(nth)}
		} else {
			opt.Bymonthday = []int{start.Day()}
		}
	case recurrence.TypeYearly:
		opt.Freq = rrule.YEARLY
	default:
		return rrule.ROption{}, errors.New("unknown recurrence type")
	}

	if end, ok := cfg.EndDate.Get(); ok {
		opt.Until = end
	}
	if n, ok := cfg.MaxOccurrences.Get(); ok {
		opt.Count = n
	}

	return opt, nil
}

// RRule builds an rrule.RRule equivalent to the configuration, letting
// CalDAV-style consumers expand or serialize the rule themselves
func RRule(cfg recurrence.Config) (*rrule.RRule, error) {
	opt, err := Options(cfg)
	if err != nil {
		return nil, err
	}
	return rrule.NewRRule(opt)
}

// RRuleString renders the configuration as an RRULE property value
// (without the "RRULE:" prefix or a DTSTART line)
func RRuleString(cfg recurrence.Config) (string, error) {
	opt, err := Options(cfg)
	if err != nil {
		return "", err
	}
	return opt.RRuleString(), nil
}
