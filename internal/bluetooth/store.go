package bluetooth

import (
	"sort"
	"strings"
	"sync"
	"time"
)

// ObservationStore is a thread-safe store of recently observed
// advertisements, keyed by uppercased MAC address. It backs both the
// discovery scan and the monitoring scan session.
type ObservationStore struct {
	mu      sync.RWMutex
	records map[string]*DeviceRecord
}

// NewObservationStore creates an empty store.
func NewObservationStore() *ObservationStore {
	return &ObservationStore{
		records: make(map[string]*DeviceRecord),
	}
}

// Upsert merges an observation into the store. Later advertisements refresh
// RSSI and LastSeen; fields a later frame omits (name, manufacturer data,
// services) keep their previously observed values.
func (s *ObservationStore) Upsert(rec DeviceRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.ToUpper(rec.Address)
	if rec.LastSeen.IsZero() {
		rec.LastSeen = time.Now()
	}

	existing, ok := s.records[key]
	if !ok {
		cp := rec
		s.records[key] = &cp
		return
	}

	existing.LastSeen = rec.LastSeen
	if rec.HasRSSI {
		existing.RSSI = rec.RSSI
		existing.HasRSSI = true
	}
	if rec.LocalName != "" {
		existing.LocalName = rec.LocalName
	}
	if rec.HasManufacturer {
		existing.HasManufacturer = true
		existing.ManufacturerID = rec.ManufacturerID
		existing.ManufacturerData = rec.ManufacturerData
	}
	if len(rec.ServiceUUIDs) > 0 {
		existing.ServiceUUIDs = mergeUUIDs(existing.ServiceUUIDs, rec.ServiceUUIDs)
	}
}

// Lookup returns a copy of the record for an address, matched
// case-insensitively.
func (s *ObservationStore) Lookup(address string) (DeviceRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[strings.ToUpper(address)]
	if !ok {
		return DeviceRecord{}, false
	}
	return *rec, true
}

// Evict removes records not refreshed within maxAge and returns how many
// were dropped.
func (s *ObservationStore) Evict(maxAge time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().Add(-maxAge)
	count := 0
	for key, rec := range s.records {
		if rec.LastSeen.Before(cutoff) {
			delete(s.records, key)
			count++
		}
	}
	return count
}

// Snapshot returns copies of all records, strongest RSSI first; records
// without an RSSI sort last.
func (s *ObservationStore) Snapshot() []DeviceRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]DeviceRecord, 0, len(s.records))
	for _, rec := range s.records {
		result = append(result, *rec)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].HasRSSI != result[j].HasRSSI {
			return result[i].HasRSSI
		}
		if result[i].RSSI != result[j].RSSI {
			return result[i].RSSI > result[j].RSSI
		}
		return result[i].Address < result[j].Address
	})
	return result
}

// Len returns the number of tracked devices.
func (s *ObservationStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

func mergeUUIDs(have, add []string) []string {
	seen := make(map[string]struct{}, len(have))
	for _, u := range have {
		seen[u] = struct{}{}
	}
	for _, u := range add {
		if _, ok := seen[u]; !ok {
			have = append(have, u)
			seen[u] = struct{}{}
		}
	}
	return have
}
