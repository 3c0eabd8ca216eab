// Command example builds a recurrence rule through the configuration
// mutators and prints the preview dates alongside the RRULE export.
package main

import (
	"fmt"
	"log"
	"time"

	"github.com/seralo/librecur/icalendar"
	"github.com/seralo/librecur/recurrence"
)

func main() {
	cfg := recurrence.NewConfig()
	cfg.SetType(recurrence.TypeMonthly)
	cfg.SetMonthlyPattern(recurrence.PatternByWeekday)
	cfg.SetInterval(1)
	cfg.SetStartDate(time.Date(2024, 1, 9, 0, 0, 0, 0, time.UTC)) // 2nd Tuesday
	cfg.SetMaxOccurrences(6)

	fmt.Println(recurrence.Describe(*cfg))
	for _, d := range cfg.GeneratePreview() {
		fmt.Println("  ", d.Format("Mon 2006-01-02"))
	}

	rruleValue, err := icalendar.RRuleString(*cfg)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("RRULE:" + rruleValue)

	doc, err := icalendar.XCal(*cfg, cfg.GeneratePreview())
	if err != nil {
		log.Fatal(err)
	}
	doc.Indent(2)
	xml, err := doc.WriteToString()
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(xml)
}
