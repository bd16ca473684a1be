package agenda

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/silasgubi/painel/internal/model"
)

func TestDayWindow(t *testing.T) {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)

	now := time.Date(2026, time.March, 10, 14, 22, 5, 0, loc)
	from, to := DayWindow(now)

	assert.Equal(t, now, from)
	assert.Equal(t, time.Date(2026, time.March, 10, 23, 59, 59, 0, loc), to)
}

func TestLinesSortsByStartAscending(t *testing.T) {
	base := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
	events := []model.Event{
		{Title: "Tarde", Start: base.Add(15 * time.Hour)},
		{Title: "Manhã", Start: base.Add(9 * time.Hour)},
		{Title: "Meio-dia", Start: base.Add(12 * time.Hour)},
	}

	items := Lines(events)
	require.Len(t, items, 3)
	assert.Equal(t, "09:00", items[0].TimeLabel)
	assert.Equal(t, "Manhã", items[0].Title)
	assert.Equal(t, "12:00", items[1].TimeLabel)
	assert.Equal(t, "15:00", items[2].TimeLabel)
}

func TestLinesAllDayKeepsRawDate(t *testing.T) {
	items := Lines([]model.Event{
		{
			Title:   "Aniversário",
			AllDay:  true,
			Start:   time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC),
			RawDate: "2026-03-10",
		},
	})
	require.Len(t, items, 1)
	assert.Equal(t, "2026-03-10", items[0].TimeLabel)
}

func TestLinesAllDayWithoutRawDateFormatsStart(t *testing.T) {
	items := Lines([]model.Event{
		{AllDay: true, Start: time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC), Title: "Feriado"},
	})
	require.Len(t, items, 1)
	assert.Equal(t, "2026-03-10", items[0].TimeLabel)
}

func TestLinesUntitledFallback(t *testing.T) {
	items := Lines([]model.Event{
		{Start: time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)},
	})
	require.Len(t, items, 1)
	assert.Equal(t, UntitledLabel, items[0].Title)
}

func TestLinesEmptyInput(t *testing.T) {
	assert.Empty(t, Lines(nil))
}
