package monitor

import (
	"context"
	"errors"
	"time"

	"ble-proximity.dev/internal/bluetooth"
	"go.uber.org/zap"
)

// Source is one acquisition capability. A Sample returns an RSSI, or
// ok=false when the device is not currently visible; absence is a normal
// outcome, not an error. A non-nil error means the source itself failed and
// should no longer be used.
type Source interface {
	Name() string
	Sample(ctx context.Context, address string) (rssi int16, ok bool, err error)
}

// connectedSource queries a live link for its RSSI.
type connectedSource struct {
	conn bluetooth.Conn
}

// NewConnectedSource samples over an established connection.
func NewConnectedSource(conn bluetooth.Conn) Source {
	return &connectedSource{conn: conn}
}

func (s *connectedSource) Name() string { return "connected" }

func (s *connectedSource) Sample(ctx context.Context, _ string) (int16, bool, error) {
	if err := ctx.Err(); err != nil {
		return 0, false, err
	}
	rssi, err := s.conn.ReadRSSI()
	if err != nil {
		return 0, false, err
	}
	return rssi, true, nil
}

// scanningSource waits one scan window, then looks the target up among the
// session's recently observed advertisements.
type scanningSource struct {
	session bluetooth.Session
	window  time.Duration
}

// NewScanningSource samples from a passive scan session. The session is
// owned by the loop, not the source; the source only reads from it.
func NewScanningSource(session bluetooth.Session, window time.Duration) Source {
	return &scanningSource{session: session, window: window}
}

func (s *scanningSource) Name() string { return "scanning" }

func (s *scanningSource) Sample(ctx context.Context, address string) (int16, bool, error) {
	select {
	case <-ctx.Done():
		return 0, false, ctx.Err()
	case <-time.After(s.window):
	}
	if err := s.session.Err(); err != nil {
		return 0, false, err
	}
	rssi, ok := s.session.Lookup(address)
	return rssi, ok, nil
}

// unavailableSource is the terminal state: no sample, forever, until the
// session is restarted from scratch.
type unavailableSource struct{}

// NewUnavailableSource never yields a sample.
func NewUnavailableSource() Source { return unavailableSource{} }

func (unavailableSource) Name() string { return "unavailable" }

func (unavailableSource) Sample(context.Context, string) (int16, bool, error) {
	return 0, false, nil
}

// SourceChain tries sources in a fixed priority order. When the active
// source fails it is demoted permanently; the chain never promotes back to a
// stronger source mid-session.
type SourceChain struct {
	sources []Source
	active  int
	logger  *zap.Logger
}

// NewSourceChain builds a chain from strongest to weakest source.
func NewSourceChain(logger *zap.Logger, sources ...Source) *SourceChain {
	return &SourceChain{sources: sources, logger: logger}
}

// Active names the currently active source.
func (c *SourceChain) Active() string {
	return c.sources[c.active].Name()
}

func (c *SourceChain) Name() string { return "chain" }

// Sample delegates to the active source, falling back on failure. Session
// loss and context cancellation pass through untouched; they are not
// fallback triggers.
func (c *SourceChain) Sample(ctx context.Context, address string) (int16, bool, error) {
	for {
		src := c.sources[c.active]
		rssi, ok, err := src.Sample(ctx, address)
		if err == nil {
			return rssi, ok, nil
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return 0, false, err
		}
		if errors.Is(err, bluetooth.ErrSessionLost) || c.active == len(c.sources)-1 {
			return 0, false, err
		}

		next := c.sources[c.active+1]
		c.logger.Warn("acquisition source failed, falling back",
			zap.String("from", src.Name()),
			zap.String("to", next.Name()),
			zap.Error(err),
		)
		c.active++
	}
}
