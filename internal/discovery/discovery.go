package discovery

import (
	"context"
	"fmt"
	"time"

	"ble-proximity.dev/internal/bluetooth"
	"ble-proximity.dev/internal/classify"
	"go.uber.org/zap"
)

// Device is one discovered peripheral with its classification attached.
type Device struct {
	bluetooth.DeviceRecord
	Label string
}

// Annotation returns the "(Manufacturer: ...)" suffix for a device whose
// label does not already name the vendor: devices that advertised a usable
// local name, and the generic "Device" case. Empty otherwise.
func (d Device) Annotation() string {
	if !d.HasManufacturer {
		return ""
	}
	if d.Label != d.LocalName && d.Label != "Device" {
		return ""
	}
	if name := classify.ManufacturerName(d.ManufacturerID); name != "" {
		return fmt.Sprintf(" (Manufacturer: %s)", name)
	}
	return fmt.Sprintf(" (Manufacturer: %d)", d.ManufacturerID)
}

// RSSIString renders the last observed RSSI, or "Unknown" when the scan
// never carried one.
func (d Device) RSSIString() string {
	if !d.HasRSSI {
		return "Unknown"
	}
	return fmt.Sprintf("%d dBm", d.RSSI)
}

// Scan collects advertisements for the given duration and classifies every
// device seen, strongest signal first.
func Scan(ctx context.Context, transport bluetooth.Transport, duration time.Duration, logger *zap.Logger) ([]Device, error) {
	logger.Info("scanning for devices", zap.Duration("duration", duration))

	records, err := transport.Discover(ctx, duration)
	if err != nil {
		return nil, fmt.Errorf("discovery: %w", err)
	}

	devices := make([]Device, 0, len(records))
	for _, rec := range records {
		devices = append(devices, Device{
			DeviceRecord: rec,
			Label: classify.Label(classify.Attributes{
				Address:          rec.Address,
				LocalName:        rec.LocalName,
				ManufacturerID:   rec.ManufacturerID,
				HasManufacturer:  rec.HasManufacturer,
				ManufacturerData: rec.ManufacturerData,
				ServiceUUIDs:     rec.ServiceUUIDs,
			}),
		})
	}

	logger.Info("scan complete", zap.Int("devices", len(devices)))
	return devices, nil
}
