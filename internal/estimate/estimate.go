package estimate

import "math"

// Calibration holds the two constants of the log-distance path loss model.
// Values are supplied once at session start and never change during a run.
type Calibration struct {
	TxPower     int     // RSSI at 1 meter (dBm)
	PathLossExp float64 // 2.0 for free space, 2.5-4.0 for indoors
}

// Distance estimates distance in meters from an RSSI sample using the
// log-distance path loss model:
//
//	d = 10^((txPower - rssi) / (10 * n))
//
// The result is rounded to 2 decimal places. An RSSI of exactly zero is
// invalid; it yields (-1, false). Extreme values are not clamped.
func Distance(rssi int16, cal Calibration) (float64, bool) {
	if rssi == 0 {
		return -1, false
	}
	ratio := (float64(cal.TxPower) - float64(rssi)) / (10 * cal.PathLossExp)
	d := math.Pow(10, ratio)
	return math.Round(d*100) / 100, true
}

// Proximity is a human-readable distance category.
type Proximity int

const (
	ProximityUnknown Proximity = iota
	ProximityVeryClose
	ProximityClose
	ProximityNear
	ProximityMedium
	ProximityFar
	ProximityVeryFar
)

// ProximityFor maps a distance in meters onto a category. Bands are
// half-open intervals, inclusive below and exclusive above; negative
// distances (the invalid-RSSI sentinel) map to ProximityUnknown.
func ProximityFor(distance float64) Proximity {
	switch {
	case distance < 0:
		return ProximityUnknown
	case distance < 0.5:
		return ProximityVeryClose
	case distance < 1.0:
		return ProximityClose
	case distance < 2.0:
		return ProximityNear
	case distance < 5.0:
		return ProximityMedium
	case distance < 10.0:
		return ProximityFar
	default:
		return ProximityVeryFar
	}
}

func (p Proximity) String() string {
	switch p {
	case ProximityVeryClose:
		return "Very close"
	case ProximityClose:
		return "Close"
	case ProximityNear:
		return "Near"
	case ProximityMedium:
		return "Medium"
	case ProximityFar:
		return "Far"
	case ProximityVeryFar:
		return "Very far"
	default:
		return "Unknown"
	}
}

// Describe returns the category with its range annotation, e.g. "Near (1-2m)".
func (p Proximity) Describe() string {
	switch p {
	case ProximityVeryClose:
		return "Very close (< 0.5m)"
	case ProximityClose:
		return "Close (< 1m)"
	case ProximityNear:
		return "Near (1-2m)"
	case ProximityMedium:
		return "Medium distance (2-5m)"
	case ProximityFar:
		return "Far (5-10m)"
	case ProximityVeryFar:
		return "Very far (> 10m)"
	default:
		return "Unknown"
	}
}
