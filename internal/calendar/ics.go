package calendar

import (
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"

	"gameplan-service/internal/display"
)

// ProductID identifies the feed producer in exported calendars.
const ProductID = "-//GamePlan//Team Calendar//EN"

// ExportICS renders every agenda occurrence as an all-day VEVENT.
func ExportICS(agenda Agenda, name string, loc *time.Location, now time.Time) (string, error) {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(ProductID)
	cal.SetXWRCalName(name)
	cal.SetXWRTimezone(loc.String())

	for _, day := range agenda.Days() {
		date, err := time.ParseInLocation(display.DayLayout, day, loc)
		if err != nil {
			return "", fmt.Errorf("agenda day %q: %w", day, err)
		}
		for _, item := range agenda.Items[day] {
			ev := cal.AddEvent(fmt.Sprintf("%d-%s@gameplan", item.EventID, day))
			ev.SetDtStampTime(now.UTC())
			ev.SetAllDayStartAt(date)
			ev.SetAllDayEndAt(date.AddDate(0, 0, 1))
			ev.SetSummary(item.Name)
			if item.HasLocation {
				ev.SetLocation(item.Location)
			}
		}
	}
	return cal.Serialize(), nil
}
