package icalendar

import (
	"time"

	"github.com/beevik/etree"
	"github.com/google/uuid"

	"github.com/seralo/librecur/recurrence"
)

const xcalNamespace = "urn:ietf:params:xml:ns:icalendar-2.0"

// XCal renders a configuration and its generated occurrence dates as an
// xCal (RFC 6321) document: a VEVENT carrying DTSTART and RRULE, with the
// concrete occurrences listed as RDATE date values. Consumers that speak
// XML rather than the iCalendar line format get the same information as
// from Calendar.
func XCal(cfg recurrence.Config, dates []time.Time) (*etree.Document, error) {
	start, ok := cfg.StartDate.Get()
	if !ok {
		return nil, ErrNoStartDate
	}

	rruleValue, err := RRuleString(cfg)
	if err != nil {
		return nil, err
	}

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	icalElem := doc.CreateElement("icalendar")
	icalElem.CreateAttr("xmlns", xcalNamespace)

	vcal := icalElem.CreateElement("vcalendar")

	calProps := vcal.CreateElement("properties")
	calProps.CreateElement("version").CreateElement("text").SetText("2.0")
	calProps.CreateElement("prodid").CreateElement("text").SetText(prodID)

	vevent := vcal.CreateElement("components").CreateElement("vevent")
	props := vevent.CreateElement("properties")

	props.CreateElement("uid").CreateElement("text").SetText(uuid.New().String())
	props.CreateElement("dtstart").CreateElement("date").SetText(start.Format("2006-01-02"))
	props.CreateElement("rrule").CreateElement("text").SetText(rruleValue)

	if len(dates) > 0 {
		rdate := props.CreateElement("rdate")
		for _, d := range dates {
			rdate.CreateElement("date").SetText(d.Format("2006-01-02"))
		}
	}

	return doc, nil
}
