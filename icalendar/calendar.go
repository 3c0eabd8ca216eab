package icalendar

import (
	"time"

	"github.com/emersion/go-ical"
	"github.com/google/uuid"

	"github.com/seralo/librecur/recurrence"
)

const prodID = "-//librecur//recurrence export//EN"

// Calendar builds a VCALENDAR containing a single VEVENT that carries the
// configuration's start date and RRULE, with the given summary text. The
// event gets a fresh random UID.
func Calendar(cfg recurrence.Config, summary string) (*ical.Calendar, error) {
	start, ok := cfg.StartDate.Get()
	if !ok {
		return nil, ErrNoStartDate
	}

	rruleValue, err := RRuleString(cfg)
	if err != nil {
		return nil, err
	}

	event := ical.NewEvent()
	event.Props.SetText(ical.PropUID, uuid.New().String())
	event.Props.SetDateTime(ical.PropDateTimeStamp, time.Now().UTC())
	event.Props.SetDateTime(ical.PropDateTimeStart, start)
	if summary != "" {
		event.Props.SetText(ical.PropSummary, summary)
	}

	// SetText would escape the semicolons and commas inside an RRULE value,
	// so the property is set verbatim.
	rruleProp := ical.NewProp(ical.PropRecurrenceRule)
	rruleProp.Value = rruleValue
	event.Props.Set(rruleProp)

	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, prodID)
	cal.Children = append(cal.Children, event.Component)

	return cal, nil
}
