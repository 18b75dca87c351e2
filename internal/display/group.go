package display

import "time"

// DayLayout is the calendar day key format used across the service.
const DayLayout = "2006-01-02"

// RowType tags an entry of a grouped timeline.
type RowType string

const (
	RowSection RowType = "section"
	RowItem    RowType = "item"
)

// Row is either a day section marker or one item of the timeline.
type Row[T any] struct {
	Type RowType `json:"type"`
	Day  string  `json:"day"`
	Item *T      `json:"item,omitempty"`
}

// Section is a contiguous run of items sharing a day.
type Section[T any] struct {
	Day   string `json:"day"`
	Items []T    `json:"items"`
}

// DayKey formats t as a calendar day in loc. A nil loc keeps t's own zone.
func DayKey(t time.Time, loc *time.Location) string {
	if loc != nil {
		t = t.In(loc)
	}
	return t.Format(DayLayout)
}

// GroupByDay walks items once and emits a section marker each time the day
// changes from the previous item. Unsorted input can therefore produce the
// same day more than once, as separate runs.
func GroupByDay[T any](items []T, day func(T) string) []Row[T] {
	rows := make([]Row[T], 0, len(items))
	current := ""
	for i := range items {
		item := items[i]
		d := day(item)
		if i == 0 || d != current {
			rows = append(rows, Row[T]{Type: RowSection, Day: d})
			current = d
		}
		rows = append(rows, Row[T]{Type: RowItem, Day: d, Item: &item})
	}
	return rows
}

// Sections folds grouped rows into one Section per marker.
func Sections[T any](rows []Row[T]) []Section[T] {
	out := make([]Section[T], 0)
	for _, row := range rows {
		switch row.Type {
		case RowSection:
			out = append(out, Section[T]{Day: row.Day, Items: []T{}})
		case RowItem:
			if len(out) == 0 {
				out = append(out, Section[T]{Day: row.Day, Items: []T{}})
			}
			last := &out[len(out)-1]
			last.Items = append(last.Items, *row.Item)
		}
	}
	return out
}
