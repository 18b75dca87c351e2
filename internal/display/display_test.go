package display

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type place struct {
	ID   int
	Name string
}

type note struct {
	Day  string
	Text string
}

func placeName(p place) string { return p.Name }
func noteDay(n note) string    { return n.Day }

func TestFilterMatchesCaseInsensitiveSubstring(t *testing.T) {
	places := []place{{1, "UTD Soccer Field 1"}, {6, "UTD Tennis Courts"}}

	got := Filter(places, "tennis", placeName)

	require.Len(t, got, 1)
	assert.Equal(t, "UTD Tennis Courts", got[0].Name)
}

func TestFilterPreservesOrder(t *testing.T) {
	places := []place{{3, "Field 3"}, {1, "Field 1"}, {2, "Court"}, {4, "field 4"}}

	got := Filter(places, "FIELD", placeName)

	assert.Equal(t, []place{{3, "Field 3"}, {1, "Field 1"}, {4, "field 4"}}, got)
}

func TestFilterEmptyQueryYieldsNothing(t *testing.T) {
	places := []place{{1, "UTD Soccer Field 1"}, {6, "UTD Tennis Courts"}}

	narrowed := Filter(places, "utd", placeName)
	cleared := Filter(places, "", placeName)

	assert.Len(t, narrowed, 2)
	assert.NotNil(t, cleared)
	assert.Empty(t, cleared)
	assert.NotEqual(t, narrowed, cleared)
}

func TestFilterIsRepeatable(t *testing.T) {
	places := []place{{1, "Soccer"}, {2, "Tennis"}}

	first := Filter(places, "ten", placeName)
	second := Filter(places, "ten", placeName)

	assert.Equal(t, first, second)
	assert.Len(t, places, 2)
}

func TestGroupByDaySortedInput(t *testing.T) {
	notes := []note{
		{Day: "2024-12-03", Text: "a"},
		{Day: "2024-12-03", Text: "b"},
		{Day: "2024-12-04", Text: "c"},
	}

	rows := GroupByDay(notes, noteDay)
	sections := Sections(rows)

	require.Len(t, rows, 5)
	assert.Equal(t, RowSection, rows[0].Type)
	assert.Equal(t, RowSection, rows[3].Type)

	require.Len(t, sections, 2)
	assert.Equal(t, "2024-12-03", sections[0].Day)
	assert.Len(t, sections[0].Items, 2)
	assert.Equal(t, "2024-12-04", sections[1].Day)
	assert.Len(t, sections[1].Items, 1)
}

func TestGroupByDayEmitsEachDayOnceAndKeepsAllItems(t *testing.T) {
	notes := []note{
		{Day: "2024-11-09"}, {Day: "2024-11-10"}, {Day: "2024-11-10"},
		{Day: "2024-11-12"}, {Day: "2024-11-12"}, {Day: "2024-11-12"},
	}

	rows := GroupByDay(notes, noteDay)

	var days []string
	items := 0
	for _, row := range rows {
		switch row.Type {
		case RowSection:
			days = append(days, row.Day)
		case RowItem:
			items++
		}
	}
	assert.Equal(t, []string{"2024-11-09", "2024-11-10", "2024-11-12"}, days)
	assert.Equal(t, len(notes), items)
}

func TestGroupByDayUnsortedRepeatsRuns(t *testing.T) {
	notes := []note{{Day: "2024-12-03"}, {Day: "2024-12-04"}, {Day: "2024-12-03"}}

	sections := Sections(GroupByDay(notes, noteDay))

	require.Len(t, sections, 3)
	assert.Equal(t, "2024-12-03", sections[0].Day)
	assert.Equal(t, "2024-12-04", sections[1].Day)
	assert.Equal(t, "2024-12-03", sections[2].Day)
}

func TestGroupByDayEmpty(t *testing.T) {
	assert.Empty(t, GroupByDay([]note{}, noteDay))
	assert.Empty(t, Sections(GroupByDay[note](nil, noteDay)))
}

func TestDayKeyUsesLocation(t *testing.T) {
	ts := time.Date(2024, 12, 4, 3, 0, 0, 0, time.UTC)
	chicago, err := time.LoadLocation("America/Chicago")
	require.NoError(t, err)

	assert.Equal(t, "2024-12-04", DayKey(ts, nil))
	assert.Equal(t, "2024-12-03", DayKey(ts, chicago))
}

func TestSelectionToggle(t *testing.T) {
	sel := NewSelection[string]()

	sel.Toggle("a")
	assert.True(t, sel.Has("a"))
	assert.Equal(t, []string{"a"}, sel.IDs())

	sel.Toggle("a")
	assert.False(t, sel.Has("a"))
	assert.Equal(t, 0, sel.Len())
	assert.Empty(t, sel.IDs())
}

func TestSelectionToggleTwiceRestoresState(t *testing.T) {
	sel := NewSelection[int]()
	sel.Toggle(1)
	sel.Toggle(2)
	before := sel.IDs()

	sel.Toggle(3)
	sel.Toggle(3)

	assert.Equal(t, before, sel.IDs())
}

func TestSelectionClear(t *testing.T) {
	sel := NewSelection[int]()
	sel.Toggle(1)
	sel.Toggle(2)

	sel.Clear()

	assert.Equal(t, 0, sel.Len())
	assert.False(t, sel.Has(1))
	sel.Toggle(1)
	assert.Equal(t, []int{1}, sel.IDs())
}

func TestDeleteSelectedContinuesPastFailures(t *testing.T) {
	sel := NewSelection[int]()
	sel.Toggle(1)
	sel.Toggle(2)
	sel.Toggle(3)

	var removed []int
	results := DeleteSelected(context.Background(), sel, func(_ context.Context, id int) error {
		removed = append(removed, id)
		if id == 2 {
			return errors.New("boom")
		}
		return nil
	})

	assert.ElementsMatch(t, []int{1, 2, 3}, removed)
	require.Len(t, results, 3)
	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			assert.Equal(t, 2, r.ID)
		}
	}
	assert.Equal(t, 1, failed)
}
