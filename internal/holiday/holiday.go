// Package holiday answers two questions about a fixed regional holiday
// calendar: is a given date a holiday, and when is the next one this year.
package holiday

import (
	"fmt"
	"strings"
	"time"

	"github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/br"

	"github.com/silasgubi/painel/internal/model"
)

// Calendar wraps a fixed, ordered holiday catalog. Catalog order is the
// tie-break for holidays sharing a date, so it must stay deterministic.
type Calendar struct {
	impl *cal.Calendar
}

// saoPauloHolidays are state-level additions layered on top of the national
// list when the SP subdivision is selected.
var saoPauloHolidays = []*cal.Holiday{
	{
		Name:  "Revolução Constitucionalista",
		Type:  cal.ObservancePublic,
		Month: time.July,
		Day:   9,
		Func:  cal.CalcDayOfMonth,
	},
}

// New builds the holiday calendar for the given country/subdivision.
// Only Brazil (optionally with the SP subdivision) is wired; other regions
// return an error, which the collector maps to the unknown status.
func New(country, subdivision string) (*Calendar, error) {
	if !strings.EqualFold(country, "BR") {
		return nil, fmt.Errorf("holiday: unsupported country %q", country)
	}

	c := &cal.Calendar{Name: "painel"}
	c.AddHoliday(br.Holidays...)

	switch strings.ToUpper(subdivision) {
	case "":
		// national list only
	case "SP":
		c.AddHoliday(saoPauloHolidays...)
	default:
		return nil, fmt.Errorf("holiday: unsupported subdivision %q", subdivision)
	}

	return &Calendar{impl: c}, nil
}

// Status resolves the holiday line for the given date: the holiday falling
// on that date, else the chronologically nearest later holiday in the same
// year, else the none-remaining marker.
func (c *Calendar) Status(today time.Time) model.HolidayStatus {
	if actual, _, h := c.impl.IsHoliday(today); actual && h != nil {
		return model.HolidayStatus{
			Kind: model.HolidayToday,
			Name: h.Name,
			Date: midnight(today),
		}
	}

	todayKey := dateKey(today)
	var (
		bestKey  int
		bestName string
		bestDate time.Time
		found    bool
	)
	for _, h := range c.impl.Holidays {
		actual, _ := h.Calc(today.Year())
		if actual.IsZero() {
			continue
		}
		key := dateKey(actual)
		if key <= todayKey {
			continue
		}
		// Strict < keeps the first catalog entry on a shared date.
		if !found || key < bestKey {
			found = true
			bestKey = key
			bestName = h.Name
			bestDate = actual
		}
	}

	if !found {
		return model.HolidayStatus{Kind: model.NoneRemaining}
	}
	return model.HolidayStatus{
		Kind: model.NextHoliday,
		Name: bestName,
		Date: midnight(bestDate),
	}
}

// dateKey orders dates by calendar day, ignoring clock time and zone offsets
// within the day.
func dateKey(t time.Time) int {
	return t.Year()*10000 + int(t.Month())*100 + t.Day()
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
