package ui

import (
	"fmt"
	"strings"

	"ble-proximity.dev/internal/discovery"
)

// RenderPicker renders the selectable device list. The viewport follows the
// cursor so the highlighted row is always visible.
func RenderPicker(devices []discovery.Device, width, height, cursor int) string {
	if width < 20 {
		width = 20
	}

	title := StyleTitle.Render(fmt.Sprintf("SELECT DEVICE [%d found]", len(devices)))
	help := StyleHelp.Render(" up/down: move   enter: monitor   q: quit")

	rows := height - 3
	if rows < 1 {
		rows = 1
	}
	viewStart := 0
	if cursor >= rows {
		viewStart = cursor - rows + 1
	}

	var b strings.Builder
	b.WriteString(title)
	b.WriteString("\n")

	for i := viewStart; i < len(devices) && i < viewStart+rows; i++ {
		b.WriteString(renderRow(devices[i], i, width, i == cursor))
		b.WriteString("\n")
	}
	if len(devices) == 0 {
		b.WriteString(StyleHelp.Render(" No devices found. Is the peripheral advertising?"))
		b.WriteString("\n")
	}

	b.WriteString(help)
	return b.String()
}

func renderRow(d discovery.Device, index, width int, selected bool) string {
	raw := fmt.Sprintf(" %2d. %s  %s%s  %s",
		index+1, d.Address, d.Label, d.Annotation(), d.RSSIString())
	if runes := []rune(raw); len(runes) > width {
		raw = string(runes[:width])
	}

	if selected {
		return StyleCursorRow.Render(raw)
	}

	return fmt.Sprintf(" %2d. %s  %s%s  %s",
		index+1,
		StyleDeviceMAC.Render(d.Address),
		StyleDeviceLabel.Render(d.Label),
		StyleAnnotation.Render(d.Annotation()),
		StyleDeviceRSSI.Render(d.RSSIString()),
	)
}
