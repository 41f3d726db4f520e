package bluetooth

import (
	"fmt"
	"sync"
	"time"

	"tinygo.org/x/bluetooth"
)

// staleAfter bounds how old an observation may be before the session treats
// the device as not currently visible. Older entries are evicted on lookup.
const staleAfter = 10 * time.Second

// scanSession is the adapter-backed Session. One session owns the radio's
// passive scan between Start and Stop.
type scanSession struct {
	adapter *bluetooth.Adapter
	store   *ObservationStore

	mu       sync.Mutex
	started  bool
	stopping bool
	err      error
}

func (s *scanSession) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return fmt.Errorf("scan session already started")
	}
	s.started = true

	go func() {
		err := s.adapter.Scan(func(_ *bluetooth.Adapter, result bluetooth.ScanResult) {
			s.store.Upsert(recordFromScan(result))
		})
		if err != nil {
			s.fail(err)
		}
	}()
	return nil
}

// fail records an unexpected scan termination. A termination caused by Stop
// is not a failure.
func (s *scanSession) fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.stopping {
		s.err = fmt.Errorf("%w: %v", ErrSessionLost, err)
	}
}

func (s *scanSession) Stop() error {
	s.mu.Lock()
	if !s.started || s.stopping {
		s.mu.Unlock()
		return nil
	}
	s.stopping = true
	s.mu.Unlock()

	if err := s.adapter.StopScan(); err != nil {
		return fmt.Errorf("stop scan session: %w", err)
	}
	return nil
}

func (s *scanSession) Lookup(address string) (int16, bool) {
	s.store.Evict(staleAfter)
	rec, ok := s.store.Lookup(address)
	if !ok || !rec.HasRSSI {
		return 0, false
	}
	return rec.RSSI, true
}

func (s *scanSession) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}
