package bluetooth

import (
	"context"
	"errors"
	"time"
)

// ErrRSSINotSupported is returned by a Conn whose underlying stack exposes no
// link-level RSSI query. Callers fall back to scan-based acquisition.
var ErrRSSINotSupported = errors.New("link RSSI query not supported")

// ErrSessionLost marks a scan session that has become unusable. Unlike a
// per-sample miss this is fatal for the loop that owns the session.
var ErrSessionLost = errors.New("scan session lost")

// DeviceRecord is a snapshot of one advertised device. Records are created
// fresh per discovery scan and never persisted.
type DeviceRecord struct {
	Address          string
	LocalName        string
	ManufacturerID   uint16
	HasManufacturer  bool
	ManufacturerData []byte
	ServiceUUIDs     []string
	RSSI             int16
	HasRSSI          bool
	LastSeen         time.Time
}

// Conn is a live connection to a peripheral.
type Conn interface {
	// ReadRSSI queries the link for the current RSSI. Implementations
	// return ErrRSSINotSupported when the platform stack has no such query.
	ReadRSSI() (int16, error)
	Disconnect() error
}

// Session is a passive-scan listener owned by exactly one loop at a time.
// It must be started before use and stopped on every exit path.
type Session interface {
	Start() error
	Stop() error
	// Lookup returns the most recent RSSI observed for the address
	// (case-insensitive). A device not seen recently is a miss, not an error.
	Lookup(address string) (int16, bool)
	// Err reports whether the session has become unusable. A non-nil result
	// wraps ErrSessionLost.
	Err() error
}

// Transport is the BLE capability the core consumes: one-shot discovery,
// connection establishment, and passive scan sessions. The discovery scan
// and a monitoring session never share radio time concurrently.
type Transport interface {
	Discover(ctx context.Context, duration time.Duration) ([]DeviceRecord, error)
	Connect(ctx context.Context, address string) (Conn, error)
	NewSession() (Session, error)
}
