// Package calendar turns stored events into the agenda view and the ICS feed.
package calendar

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/teambition/rrule-go"

	"gameplan-service/internal/display"
	"gameplan-service/internal/models"
)

// maxOccurrences caps expansion of a single recurring event.
const maxOccurrences = 500

// MaxWindowDays bounds how many days one agenda read may span.
const MaxWindowDays = 366

// blankLocation is what the agenda shows for an event without a location.
const blankLocation = " "

var ErrInvalidRecurrence = errors.New("invalid recurrence rule")

// Window is an inclusive range of calendar days in a given zone.
type Window struct {
	From time.Time
	To   time.Time
}

// NewWindow parses YYYY-MM-DD bounds in loc. Empty bounds default to today and
// today+horizonDays.
func NewWindow(from, to string, horizonDays int, now time.Time, loc *time.Location) (Window, error) {
	today := startOfDay(now.In(loc))
	w := Window{From: today, To: today.AddDate(0, 0, horizonDays)}

	if from != "" {
		t, err := time.ParseInLocation(display.DayLayout, from, loc)
		if err != nil {
			return Window{}, fmt.Errorf("invalid from day %q", from)
		}
		w.From = t
		if to == "" {
			w.To = t.AddDate(0, 0, horizonDays)
		}
	}
	if to != "" {
		t, err := time.ParseInLocation(display.DayLayout, to, loc)
		if err != nil {
			return Window{}, fmt.Errorf("invalid to day %q", to)
		}
		w.To = t
	}
	if w.To.Before(w.From) {
		return Window{}, errors.New("to is before from")
	}
	if w.To.After(w.From.AddDate(0, 0, MaxWindowDays)) {
		return Window{}, fmt.Errorf("window longer than %d days", MaxWindowDays)
	}
	return w, nil
}

// FromDay is the window start as a day key.
func (w Window) FromDay() string { return w.From.Format(display.DayLayout) }

// ToDay is the window end as a day key.
func (w Window) ToDay() string { return w.To.Format(display.DayLayout) }

// Agenda holds event occurrences keyed by day.
type Agenda struct {
	From  string                         `json:"from"`
	To    string                         `json:"to"`
	Items map[string][]models.AgendaItem `json:"items"`
}

// Days returns the agenda's days in chronological order.
func (a Agenda) Days() []string {
	days := make([]string, 0, len(a.Items))
	for d := range a.Items {
		days = append(days, d)
	}
	sort.Strings(days)
	return days
}

// ValidateRecurrence checks an RRULE string. Empty means a one-off event.
func ValidateRecurrence(rule string) error {
	if strings.TrimSpace(rule) == "" {
		return nil
	}
	if _, err := ruleStartingAt(rule, time.Now()); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRecurrence, err)
	}
	return nil
}

// Build expands events into the window. Items for a day keep the order the
// events were given in.
func Build(events []models.CalendarEvent, w Window, loc *time.Location) Agenda {
	agenda := Agenda{From: w.FromDay(), To: w.ToDay(), Items: map[string][]models.AgendaItem{}}
	for _, ev := range events {
		for _, day := range occurrences(ev, w, loc) {
			agenda.Items[day] = append(agenda.Items[day], itemFor(ev, day))
		}
	}
	return agenda
}

func itemFor(ev models.CalendarEvent, day string) models.AgendaItem {
	location := ev.Location
	if location == "" {
		location = blankLocation
	}
	return models.AgendaItem{EventID: ev.ID, Name: ev.Name, Location: location, HasLocation: ev.Location != "", Day: day}
}

func occurrences(ev models.CalendarEvent, w Window, loc *time.Location) []string {
	start, err := time.ParseInLocation(display.DayLayout, ev.Day, loc)
	if err != nil {
		slog.Error("agenda: bad event day", "event_id", ev.ID, "day", ev.Day, "err", err)
		return nil
	}

	if strings.TrimSpace(ev.Recurrence) == "" {
		if start.Before(w.From) || start.After(w.To) {
			return nil
		}
		return []string{ev.Day}
	}

	r, err := ruleStartingAt(ev.Recurrence, start)
	if err != nil {
		slog.Error("agenda: bad recurrence, showing first day only", "event_id", ev.ID, "rrule", ev.Recurrence, "err", err)
		if start.Before(w.From) || start.After(w.To) {
			return nil
		}
		return []string{ev.Day}
	}

	var days []string
	end := w.To.AddDate(0, 0, 1)
	next := r.Iterator()
	for t, ok := next(); ok && t.Before(end); t, ok = next() {
		if t.Before(w.From) {
			continue
		}
		if len(days) == maxOccurrences {
			slog.Warn("agenda: truncated recurrence", "event_id", ev.ID, "cap", maxOccurrences)
			break
		}
		days = append(days, display.DayKey(t, loc))
	}
	return days
}

// ruleStartingAt anchors rule at start. Events repeat at most daily.
func ruleStartingAt(rule string, start time.Time) (*rrule.RRule, error) {
	opt, err := rrule.StrToROption(rule)
	if err != nil {
		return nil, err
	}
	if opt.Freq > rrule.DAILY {
		return nil, fmt.Errorf("frequency %s is finer than daily", opt.Freq)
	}
	if len(opt.Byhour) > 1 || len(opt.Byminute) > 1 || len(opt.Bysecond) > 1 {
		return nil, errors.New("more than one occurrence per day")
	}
	opt.Dtstart = start
	return rrule.NewRRule(*opt)
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Today is the current day key in loc.
func Today(now time.Time, loc *time.Location) string {
	return display.DayKey(now, loc)
}
