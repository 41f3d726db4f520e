package monitor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ble-proximity.dev/internal/bluetooth"
	"ble-proximity.dev/internal/estimate"
	"go.uber.org/zap"
)

// Monitor drives the sampling loop for one target device. It owns the scan
// session for the duration of Run and releases it on every exit path.
type Monitor struct {
	address  string
	interval time.Duration
	budget   time.Duration // 0 means unbounded
	cal      estimate.Calibration
	source   Source
	session  bluetooth.Session // may be nil when no scanning source is in play
	sink     Sink
	logger   *zap.Logger
}

// Options configures a Monitor.
type Options struct {
	Address     string
	Interval    time.Duration
	Budget      time.Duration
	Calibration estimate.Calibration
	Source      Source
	Session     bluetooth.Session
	Sink        Sink
	Logger      *zap.Logger
}

// New creates a Monitor. The session, when present, is started by Run and
// stopped when Run returns.
func New(opts Options) *Monitor {
	return &Monitor{
		address:  opts.Address,
		interval: opts.Interval,
		budget:   opts.Budget,
		cal:      opts.Calibration,
		source:   opts.Source,
		session:  opts.Session,
		sink:     opts.Sink,
		logger:   opts.Logger,
	}
}

// Run executes the sampling loop until the context is cancelled, the
// duration budget is spent, or the scan session is lost. Per-sample faults
// are absorbed: a missing device produces a reading without RSSI and the
// loop keeps going.
func (m *Monitor) Run(ctx context.Context) error {
	if m.session != nil {
		if err := m.session.Start(); err != nil {
			return fmt.Errorf("start scan session: %w", err)
		}
		defer func() {
			if err := m.session.Stop(); err != nil {
				m.logger.Warn("stopping scan session", zap.Error(err))
			}
		}()
	}

	m.logger.Info("monitoring started",
		zap.String("address", m.address),
		zap.Duration("interval", m.interval),
		zap.Duration("budget", m.budget),
		zap.Int("tx_power_dbm", m.cal.TxPower),
		zap.Float64("path_loss_exponent", m.cal.PathLossExp),
	)

	start := time.Now()
	seq := 0
	for {
		if ctx.Err() != nil {
			m.logger.Info("monitoring cancelled", zap.Int("readings", seq))
			return nil
		}
		if m.budget > 0 && time.Since(start) >= m.budget {
			m.logger.Info("monitoring duration reached", zap.Int("readings", seq))
			return nil
		}

		rssi, ok, err := m.source.Sample(ctx, m.address)
		switch {
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			m.logger.Info("monitoring cancelled", zap.Int("readings", seq))
			return nil
		case errors.Is(err, bluetooth.ErrSessionLost):
			m.logger.Error("scan session lost, stopping", zap.Error(err))
			return err
		case err != nil:
			// Source exhausted or misbehaving; report the miss and move on.
			m.logger.Warn("acquisition failed", zap.Error(err))
			ok = false
		}

		seq++
		reading := Reading{Time: time.Now(), Seq: seq, Proximity: estimate.ProximityUnknown}
		if ok {
			reading.RSSI = rssi
			reading.HasRSSI = true
			if d, valid := estimate.Distance(rssi, m.cal); valid {
				reading.Distance = d
				reading.HasDistance = true
				reading.Proximity = estimate.ProximityFor(d)
			}
			m.logger.Debug("reading",
				zap.Int("seq", reading.Seq),
				zap.Int16("rssi_dbm", reading.RSSI),
				zap.Float64("distance_m", reading.Distance),
				zap.String("proximity", reading.Proximity.String()),
			)
		} else {
			m.logger.Debug("device not found in scan results", zap.Int("seq", reading.Seq))
		}
		m.sink.Emit(reading)

		select {
		case <-ctx.Done():
			m.logger.Info("monitoring cancelled", zap.Int("readings", seq))
			return nil
		case <-time.After(m.interval):
		}
	}
}
