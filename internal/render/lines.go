package render

import (
	"fmt"

	"github.com/silasgubi/painel/internal/model"
)

// Sentinel texts shown in the info panel when a source is degraded. They are
// plain display data: a degraded source must read as text, never as broken
// layout.
const (
	WeatherUnavailable = "Clima indisponível"
	NoCommitments      = "Nenhum compromisso"
	AgendaUnavailable  = "Agenda indisponível"
	NetworkOffline     = "Velocidade: Offline"
	NoHolidayRemaining = "Sem mais feriados este ano"
	HolidayUnknown     = "Feriados indisponíveis"
)

func weatherLine(s model.WeatherStatus) string {
	if !s.Available {
		return WeatherUnavailable
	}
	return s.Text
}

// agendaFallback returns the sentinel shown when there are no agenda lines,
// distinguishing an empty day from a failed fetch.
func agendaFallback(s model.AgendaStatus) string {
	if s.Failed {
		return AgendaUnavailable
	}
	return NoCommitments
}

func networkLine(s model.NetworkStatus) string {
	if s.Kind != model.NetworkMeasured {
		return NetworkOffline
	}
	line := fmt.Sprintf("Velocidade: %d ↓ / %d ↑", s.DownloadMbps, s.UploadMbps)
	if s.LatencyMs > 0 {
		line += fmt.Sprintf(" · %d ms", s.LatencyMs)
	}
	return line
}

func holidayLine(s model.HolidayStatus) string {
	switch s.Kind {
	case model.HolidayToday:
		return "Feriado: " + s.Name
	case model.NextHoliday:
		return fmt.Sprintf("Sem feriado · próximo: %s (%s)", s.Name, s.Date.Format("02/01"))
	case model.NoneRemaining:
		return NoHolidayRemaining
	default:
		return HolidayUnknown
	}
}
