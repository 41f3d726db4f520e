package monitor

import (
	"strings"
	"time"

	"ble-proximity.dev/internal/estimate"
)

// Reading is one proximity sample. Readings are immutable once emitted; a
// missed acquisition still produces a Reading, just without RSSI or distance.
type Reading struct {
	Time        time.Time
	Seq         int
	RSSI        int16
	HasRSSI     bool
	Distance    float64
	HasDistance bool
	Proximity   estimate.Proximity
}

const barSegments = 10

// Bar renders a 10-segment signal strength bar: full at -0 dBm, empty at
// -100 dBm and below.
func (r Reading) Bar() string {
	if !r.HasRSSI {
		return strings.Repeat("░", barSegments)
	}
	filled := (int(r.RSSI) + 100) / 10
	if filled < 0 {
		filled = 0
	}
	if filled > barSegments {
		filled = barSegments
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", barSegments-filled)
}

// Sink receives emitted readings.
type Sink interface {
	Emit(Reading)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(Reading)

func (f SinkFunc) Emit(r Reading) { f(r) }
