package ui

import (
	"strings"
	"testing"
	"unicode/utf8"

	"ble-proximity.dev/internal/bluetooth"
	"ble-proximity.dev/internal/discovery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderRow_TruncatesOnRuneBoundaries(t *testing.T) {
	d := discovery.Device{
		DeviceRecord: bluetooth.DeviceRecord{
			Address: "AA:BB:CC:DD:EE:FF",
			RSSI:    -61,
			HasRSSI: true,
		},
		Label: "Müllers Küchen-Lautsprecher 🔊 im Wohnzimmer",
	}

	// Walk the cut through the multibyte name; every result must stay valid.
	for width := 20; width < 60; width++ {
		row := renderRow(d, 0, width, true)
		require.True(t, utf8.ValidString(row), "width %d", width)
	}
}

func TestRenderPicker_FollowsCursor(t *testing.T) {
	devices := make([]discovery.Device, 20)
	for i := range devices {
		devices[i] = discovery.Device{
			DeviceRecord: bluetooth.DeviceRecord{Address: "AA:BB:CC:DD:EE:00"},
			Label:        "Unknown Device",
		}
	}
	devices[19].Label = "Tail Beacon"

	// A cursor past the viewport must scroll the highlighted row into view.
	out := RenderPicker(devices, 80, 10, 19)
	assert.Contains(t, out, "Tail Beacon")
	assert.Contains(t, out, "20.")
}

func TestRenderPicker_EmptyList(t *testing.T) {
	out := RenderPicker(nil, 80, 24, 0)
	assert.Contains(t, out, "No devices found")
	assert.True(t, utf8.ValidString(out))
	assert.Greater(t, strings.Count(out, "\n"), 0)
}
