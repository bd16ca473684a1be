package model

import "time"

// Event is a normalized calendar event inside the agenda window, before
// display shaping. Both the Google and ICS providers produce this type.
type Event struct {
	SourceID string // provider identifier (calendar ID or ICS source ID)
	UID      string

	Title string

	AllDay bool

	// Start is the instance start in the display timezone. For all-day
	// events only the date portion is meaningful; RawDate carries the
	// original date string as delivered by the provider.
	Start   time.Time
	RawDate string
}

// AgendaItem is one display line of today's agenda.
type AgendaItem struct {
	TimeLabel string // "HH:MM" for timed events, raw date for all-day ones
	Title     string
}

// AgendaStatus carries today's agenda lines. Failed distinguishes a fetch
// error from a genuinely empty day.
type AgendaStatus struct {
	Items  []AgendaItem
	Failed bool
}

// HolidayKind enumerates the possible holiday lookup outcomes.
type HolidayKind int

const (
	// HolidayUnknown means the lookup itself could not run.
	HolidayUnknown HolidayKind = iota
	// HolidayToday: today is a holiday; Name is set.
	HolidayToday
	// NextHoliday: today is not a holiday but a later one exists this
	// year; Name and Date are set.
	NextHoliday
	// NoneRemaining: no holiday today and none left this year.
	NoneRemaining
)

// HolidayStatus is the outcome of the holiday lookup for one run.
type HolidayStatus struct {
	Kind HolidayKind
	Name string
	Date time.Time
}

// WeatherStatus is the weather line for the panel. When Available is false,
// Text is ignored and the renderer shows the unavailable sentinel.
type WeatherStatus struct {
	Text      string
	Available bool
}

// NetworkKind enumerates the network probe outcomes.
type NetworkKind int

const (
	// NetworkOffline means the throughput measurement failed at any stage.
	NetworkOffline NetworkKind = iota
	// NetworkMeasured means download/upload rates were obtained.
	NetworkMeasured
)

// NetworkStatus is the internet-link line for the panel. Rates are truncated
// to integer megabits per second. LatencyMs is 0 when latency was not
// measured; a failed latency probe never turns a measured link offline.
type NetworkStatus struct {
	Kind         NetworkKind
	DownloadMbps int
	UploadMbps   int
	LatencyMs    int
}

// Snapshot is the immutable bundle of externally fetched display data for a
// single generation run. It is built once by the collector and discarded
// after rendering; no field is mutated afterwards.
type Snapshot struct {
	GeneratedAt time.Time

	DateLabel    string // "02/01/2006"
	TimeLabel    string // "15:04"
	WeekdayLabel string // pt-BR weekday name

	Holiday HolidayStatus
	Weather WeatherStatus
	Agenda  AgendaStatus
	Network NetworkStatus
}

// ControlGroup enumerates the button sections of the panel.
type ControlGroup string

const (
	GroupLights  ControlGroup = "lights"
	GroupDevices ControlGroup = "devices"
	GroupScenes  ControlGroup = "scenes"
)

// ControlAction describes what a control button does when pressed.
type ControlAction string

const (
	ActionTurnOn  ControlAction = "on"
	ActionTurnOff ControlAction = "off"
	ActionScene   ControlAction = "scene"
)

// Control is one static webhook-trigger button on the panel. The generator
// never calls URL itself; the rendered page fires it client-side.
type Control struct {
	ID     string
	Label  string
	Icon   string // FontAwesome class, e.g. "fas fa-lightbulb"
	Group  ControlGroup
	Action ControlAction
	URL    string
}
