package bluetooth

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"strings"
	"sync"
	"time"
)

// mockTemplates describe the fake neighborhood for demo mode. A mix of
// named devices, nameless Apple gear identified only by manufacturer data,
// and devices carrying nothing but a service UUID, so every classifier rule
// gets exercised.
var mockTemplates = []struct {
	name        string
	mfrID       uint16
	mfrData     []byte
	services    []string
	connectable bool
}{
	{name: "Pixel 9 Pro", mfrID: 224, mfrData: []byte{0x00}, connectable: true},
	{name: "Galaxy Buds Pro", mfrID: 117, mfrData: []byte{0x00}},
	{name: "", mfrID: 76, mfrData: []byte{0x01, 0x19, 0x10}},              // AirPods
	{name: "", mfrID: 76, mfrData: []byte{0x10, 0x05}},                    // AirTag
	{name: "", mfrID: 76, mfrData: []byte{0x06, 0x12}, connectable: true}, // iPhone
	{name: "", mfrID: 76, mfrData: []byte{0x99}},                          // Apple, unknown type
	{name: "", services: []string{"0000180f-0000-1000-8000-00805f9b34fb"}},
	{name: "", services: []string{"00001812-0000-1000-8000-00805f9b34fb"}},
	{name: "ATC_MiThermometer", services: []string{"0000181a-0000-1000-8000-00805f9b34fb"}, connectable: true},
	{name: "Tile Tracker", mfrID: 0x02FF, mfrData: []byte{0x00}},
}

type mockDevice struct {
	address     string
	name        string
	mfrID       uint16
	hasMfr      bool
	mfrData     []byte
	services    []string
	connectable bool
	baseRSSI    float64
	phase       float64
	amplitude   float64
}

func (d *mockDevice) rssiAt(t time.Time) int16 {
	secs := float64(t.UnixMilli()) / 1000
	return int16(d.baseRSSI + d.amplitude*math.Sin(secs*0.5+d.phase))
}

// MockTransport simulates the BLE neighborhood for demo mode and tests.
// No hardware or elevated capabilities required.
type MockTransport struct {
	mu      sync.Mutex
	devices []*mockDevice
}

// NewMockTransport creates a transport populated with fake devices.
func NewMockTransport() *MockTransport {
	devices := make([]*mockDevice, len(mockTemplates))
	for i, tmpl := range mockTemplates {
		devices[i] = &mockDevice{
			address:     randomMAC(),
			name:        tmpl.name,
			mfrID:       tmpl.mfrID,
			hasMfr:      len(tmpl.mfrData) > 0,
			mfrData:     tmpl.mfrData,
			services:    tmpl.services,
			connectable: tmpl.connectable,
			baseRSSI:    -40 - rand.Float64()*50,
			phase:       rand.Float64() * 2 * math.Pi,
			amplitude:   3 + rand.Float64()*8,
		}
	}
	// Anchor one Apple fake on a real Apple prefix so the OUI rule fires.
	devices[5].address = "F8:1E:" + devices[5].address[6:]
	return &MockTransport{devices: devices}
}

func (m *MockTransport) Discover(ctx context.Context, duration time.Duration) ([]DeviceRecord, error) {
	// A real scan takes the full window; demo mode keeps the wait short.
	wait := duration
	if wait > 2*time.Second {
		wait = 2 * time.Second
	}
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(wait):
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	records := make([]DeviceRecord, 0, len(m.devices))
	for _, d := range m.devices {
		records = append(records, DeviceRecord{
			Address:          d.address,
			LocalName:        d.name,
			ManufacturerID:   d.mfrID,
			HasManufacturer:  d.hasMfr,
			ManufacturerData: d.mfrData,
			ServiceUUIDs:     d.services,
			RSSI:             d.rssiAt(now),
			HasRSSI:          true,
			LastSeen:         now,
		})
	}
	return records, nil
}

func (m *MockTransport) Connect(ctx context.Context, address string) (Conn, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	d := m.find(address)
	if d == nil || !d.connectable {
		return nil, fmt.Errorf("connect to %s: device refused connection", address)
	}
	return &mockConn{device: d}, nil
}

func (m *MockTransport) NewSession() (Session, error) {
	return &mockSession{transport: m}, nil
}

func (m *MockTransport) find(address string) *mockDevice {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, d := range m.devices {
		if strings.EqualFold(d.address, address) {
			return d
		}
	}
	return nil
}

type mockConn struct {
	mu     sync.Mutex
	device *mockDevice
	closed bool
}

func (c *mockConn) ReadRSSI() (int16, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return 0, fmt.Errorf("connection closed")
	}
	return c.device.rssiAt(time.Now()), nil
}

func (c *mockConn) Disconnect() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

type mockSession struct {
	transport *MockTransport
	mu        sync.Mutex
	started   bool
}

func (s *mockSession) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return fmt.Errorf("scan session already started")
	}
	s.started = true
	return nil
}

func (s *mockSession) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.started = false
	return nil
}

func (s *mockSession) Lookup(address string) (int16, bool) {
	s.mu.Lock()
	started := s.started
	s.mu.Unlock()
	if !started {
		return 0, false
	}
	d := s.transport.find(address)
	if d == nil {
		return 0, false
	}
	return d.rssiAt(time.Now()), true
}

func (s *mockSession) Err() error { return nil }

func randomMAC() string {
	b := make([]byte, 6)
	for i := range b {
		b[i] = byte(rand.Intn(256))
	}
	return fmt.Sprintf("%02X:%02X:%02X:%02X:%02X:%02X", b[0], b[1], b[2], b[3], b[4], b[5])
}
