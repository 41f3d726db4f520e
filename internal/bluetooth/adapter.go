package bluetooth

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"tinygo.org/x/bluetooth"
)

// wellKnownServices are the 16-bit service UUIDs the classifier understands.
// The scan payload API only answers membership queries, so the adapter
// probes this fixed set to build the advertised-service list.
var wellKnownServices = []bluetooth.UUID{
	bluetooth.New16BitUUID(0x1800), // Generic Access
	bluetooth.New16BitUUID(0x180F), // Battery Service
	bluetooth.New16BitUUID(0x180A), // Device Information
	bluetooth.New16BitUUID(0x1812), // HID Service
	bluetooth.New16BitUUID(0x1802), // Immediate Alert
	bluetooth.New16BitUUID(0x1803), // Link Loss
}

// Adapter implements Transport on top of the platform BLE stack.
type Adapter struct {
	adapter *bluetooth.Adapter
	logger  *zap.Logger

	enableOnce sync.Once
	enableErr  error
}

// NewAdapter wraps the default platform adapter.
func NewAdapter(logger *zap.Logger) *Adapter {
	return &Adapter{
		adapter: bluetooth.DefaultAdapter,
		logger:  logger,
	}
}

func (a *Adapter) enable() error {
	a.enableOnce.Do(func() {
		if err := a.adapter.Enable(); err != nil {
			a.enableErr = fmt.Errorf("enable BLE adapter: %w (try running with sudo or setcap cap_net_admin+ep)", err)
		}
	})
	return a.enableErr
}

// Discover collects advertisements for the given duration and returns a
// snapshot of every device seen, strongest signal first.
func (a *Adapter) Discover(ctx context.Context, duration time.Duration) ([]DeviceRecord, error) {
	if err := a.enable(); err != nil {
		return nil, err
	}

	store := NewObservationStore()
	scanErr := make(chan error, 1)
	go func() {
		scanErr <- a.adapter.Scan(func(_ *bluetooth.Adapter, result bluetooth.ScanResult) {
			store.Upsert(recordFromScan(result))
		})
	}()

	select {
	case <-ctx.Done():
	case <-time.After(duration):
	case err := <-scanErr:
		if err != nil {
			return nil, fmt.Errorf("discovery scan: %w", err)
		}
	}
	if err := a.adapter.StopScan(); err != nil {
		a.logger.Warn("stopping discovery scan", zap.Error(err))
	}

	return store.Snapshot(), nil
}

// Connect establishes a connection to the peripheral at the given address.
func (a *Adapter) Connect(ctx context.Context, address string) (Conn, error) {
	if err := a.enable(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	mac, err := bluetooth.ParseMAC(address)
	if err != nil {
		return nil, fmt.Errorf("parse address %q: %w", address, err)
	}

	device, err := a.adapter.Connect(
		bluetooth.Address{MACAddress: bluetooth.MACAddress{MAC: mac}},
		bluetooth.ConnectionParams{},
	)
	if err != nil {
		return nil, fmt.Errorf("connect to %s: %w", address, err)
	}
	return &deviceConn{device: device}, nil
}

// NewSession creates a passive scan session backed by the adapter. The
// caller owns it and must Stop it on every exit path.
func (a *Adapter) NewSession() (Session, error) {
	if err := a.enable(); err != nil {
		return nil, err
	}
	return &scanSession{
		adapter: a.adapter,
		store:   NewObservationStore(),
	}, nil
}

type deviceConn struct {
	device bluetooth.Device
}

// ReadRSSI reports not-supported: the platform connection handle exposes no
// link-level RSSI query, so acquisition has to fall back to passive scanning.
func (c *deviceConn) ReadRSSI() (int16, error) {
	return 0, ErrRSSINotSupported
}

func (c *deviceConn) Disconnect() error {
	return c.device.Disconnect()
}

func recordFromScan(result bluetooth.ScanResult) DeviceRecord {
	rec := DeviceRecord{
		Address:   result.Address.String(),
		LocalName: result.LocalName(),
		RSSI:      result.RSSI,
		HasRSSI:   true,
		LastSeen:  time.Now(),
	}

	if mfrs := result.ManufacturerData(); len(mfrs) > 0 {
		rec.HasManufacturer = true
		rec.ManufacturerID = mfrs[0].CompanyID
		rec.ManufacturerData = append([]byte(nil), mfrs[0].Data...)
	}

	for _, uuid := range wellKnownServices {
		if result.HasServiceUUID(uuid) {
			rec.ServiceUUIDs = append(rec.ServiceUUIDs, uuid.String())
		}
	}

	return rec
}
