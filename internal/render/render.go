// Package render produces the panel HTML document from a snapshot and the
// control catalog. Rendering is pure and deterministic; all externally
// sourced text (event titles, weather summaries) passes through
// html/template's contextual escaping.
package render

import (
	"bytes"
	"embed"
	"html/template"

	"github.com/silasgubi/painel/internal/model"
)

//go:embed panel.html.tmpl
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "panel.html.tmpl"))

// groupView is one button section of the page.
type groupView struct {
	ID       string
	Heading  string
	Controls []model.Control
}

// pageData is the template input.
type pageData struct {
	Title string

	WeekdayLabel string
	DateLabel    string
	TimeLabel    string

	Groups []groupView

	WeatherLine    string
	AgendaItems    []model.AgendaItem
	AgendaFallback string
	NetworkLine    string
	HolidayLine    string
}

// section headings in display order
var groupOrder = []struct {
	group   model.ControlGroup
	id      string
	heading string
}{
	{model.GroupLights, "luzes", "Luzes"},
	{model.GroupDevices, "dispositivos", "Dispositivos"},
	{model.GroupScenes, "cenas", "Cenas"},
}

// Render produces the complete HTML document for the given snapshot and
// catalog. Identical inputs yield byte-identical output.
func Render(title string, snap model.Snapshot, catalog []model.Control) ([]byte, error) {
	data := pageData{
		Title:          title,
		WeekdayLabel:   snap.WeekdayLabel,
		DateLabel:      snap.DateLabel,
		TimeLabel:      snap.TimeLabel,
		WeatherLine:    weatherLine(snap.Weather),
		AgendaItems:    snap.Agenda.Items,
		AgendaFallback: agendaFallback(snap.Agenda),
		NetworkLine:    networkLine(snap.Network),
		HolidayLine:    holidayLine(snap.Holiday),
	}

	for _, g := range groupOrder {
		view := groupView{ID: g.id, Heading: g.heading}
		for _, c := range catalog {
			if c.Group == g.group {
				view.Controls = append(view.Controls, c)
			}
		}
		if len(view.Controls) > 0 {
			data.Groups = append(data.Groups, view)
		}
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
