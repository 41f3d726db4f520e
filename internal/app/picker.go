package app

import (
	"ble-proximity.dev/internal/discovery"
	"ble-proximity.dev/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
)

// PickerModel is the Bubble Tea model for target selection after a
// discovery scan. The final model carries the chosen address, if any.
type PickerModel struct {
	devices []discovery.Device
	cursor  int
	width   int
	height  int
	chosen  string
}

// NewPicker builds a picker over the discovered devices.
func NewPicker(devices []discovery.Device) PickerModel {
	return PickerModel{devices: devices, width: 80, height: 24}
}

// Selected returns the chosen address, or "" when the picker was dismissed.
func (m PickerModel) Selected() string {
	return m.chosen
}

func (m PickerModel) Init() tea.Cmd {
	return nil
}

func (m PickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit

		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}

		case "down", "j":
			if m.cursor < len(m.devices)-1 {
				m.cursor++
			}

		case "home":
			m.cursor = 0

		case "end":
			if len(m.devices) > 0 {
				m.cursor = len(m.devices) - 1
			}

		case "enter":
			if len(m.devices) > 0 {
				m.chosen = m.devices[m.cursor].Address
			}
			return m, tea.Quit
		}
	}

	return m, nil
}

func (m PickerModel) View() string {
	return ui.RenderPicker(m.devices, m.width, m.height, m.cursor)
}
