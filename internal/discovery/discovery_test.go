package discovery

import (
	"context"
	"errors"
	"testing"
	"time"

	"ble-proximity.dev/internal/bluetooth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type fakeTransport struct {
	records []bluetooth.DeviceRecord
	err     error
}

func (f *fakeTransport) Discover(context.Context, time.Duration) ([]bluetooth.DeviceRecord, error) {
	return f.records, f.err
}

func (f *fakeTransport) Connect(context.Context, string) (bluetooth.Conn, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeTransport) NewSession() (bluetooth.Session, error) {
	return nil, errors.New("not implemented")
}

func TestScan_ClassifiesEveryDevice(t *testing.T) {
	transport := &fakeTransport{records: []bluetooth.DeviceRecord{
		{Address: "11:22:33:44:55:66", LocalName: "Kitchen Beacon", RSSI: -40, HasRSSI: true},
		{Address: "22:33:44:55:66:77", HasManufacturer: true, ManufacturerID: 76, ManufacturerData: []byte{0x10, 0x00}, RSSI: -60, HasRSSI: true},
		{Address: "F8:1E:00:11:22:33", RSSI: -80, HasRSSI: true},
	}}

	devices, err := Scan(context.Background(), transport, time.Second, zaptest.NewLogger(t))
	require.NoError(t, err)
	require.Len(t, devices, 3)

	assert.Equal(t, "Kitchen Beacon", devices[0].Label)
	assert.Equal(t, "Apple AirTag", devices[1].Label)
	assert.Equal(t, "Likely Apple Device", devices[2].Label)
}

func TestScan_Error(t *testing.T) {
	transport := &fakeTransport{err: errors.New("adapter disabled")}
	_, err := Scan(context.Background(), transport, time.Second, zaptest.NewLogger(t))
	assert.Error(t, err)
}

func TestDevice_Annotation(t *testing.T) {
	named := Device{
		DeviceRecord: bluetooth.DeviceRecord{
			LocalName:       "My Headphones",
			HasManufacturer: true,
			ManufacturerID:  0x0087,
		},
		Label: "My Headphones",
	}
	assert.Equal(t, " (Manufacturer: Bose)", named.Annotation())

	unknownVendor := Device{
		DeviceRecord: bluetooth.DeviceRecord{HasManufacturer: true, ManufacturerID: 0xFFFE},
		Label:        "Device",
	}
	assert.Equal(t, " (Manufacturer: 65534)", unknownVendor.Annotation())

	// Classifier already named the vendor; no duplicate annotation.
	apple := Device{
		DeviceRecord: bluetooth.DeviceRecord{HasManufacturer: true, ManufacturerID: 76},
		Label:        "Apple AirTag",
	}
	assert.Empty(t, apple.Annotation())

	bare := Device{Label: "Unknown Device"}
	assert.Empty(t, bare.Annotation())
}

func TestDevice_RSSIString(t *testing.T) {
	assert.Equal(t, "-63 dBm", Device{DeviceRecord: bluetooth.DeviceRecord{RSSI: -63, HasRSSI: true}}.RSSIString())
	assert.Equal(t, "Unknown", Device{}.RSSIString())
}
