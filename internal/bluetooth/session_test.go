package bluetooth

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSession() *scanSession {
	return &scanSession{store: NewObservationStore()}
}

func TestScanSession_LookupEvictsStaleObservations(t *testing.T) {
	s := testSession()
	s.store.Upsert(DeviceRecord{
		Address:  "AA:BB:CC:DD:EE:FF",
		RSSI:     -55,
		HasRSSI:  true,
		LastSeen: time.Now(),
	})
	s.store.Upsert(DeviceRecord{
		Address:  "11:22:33:44:55:66",
		RSSI:     -60,
		HasRSSI:  true,
		LastSeen: time.Now().Add(-time.Minute),
	})

	// The device that left reads as absence, not as its last RSSI.
	_, ok := s.Lookup("11:22:33:44:55:66")
	assert.False(t, ok)
	assert.Equal(t, 1, s.store.Len(), "stale observation must be evicted")

	rssi, ok := s.Lookup("aa:bb:cc:dd:ee:ff")
	require.True(t, ok)
	assert.Equal(t, int16(-55), rssi)
}

func TestScanSession_LookupMissesWithoutRSSI(t *testing.T) {
	s := testSession()
	s.store.Upsert(DeviceRecord{Address: "AA:BB:CC:DD:EE:FF", LastSeen: time.Now()})

	_, ok := s.Lookup("AA:BB:CC:DD:EE:FF")
	assert.False(t, ok)
	_, ok = s.Lookup("11:22:33:44:55:66")
	assert.False(t, ok)
}

func TestScanSession_StopBeforeStartIsNoOp(t *testing.T) {
	s := testSession()
	assert.NoError(t, s.Stop())
	assert.NoError(t, s.Stop())
	assert.NoError(t, s.Err())
}

func TestScanSession_FailWrapsSessionLost(t *testing.T) {
	s := testSession()
	s.fail(errors.New("hci device went away"))

	err := s.Err()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSessionLost)
	assert.Contains(t, err.Error(), "hci device went away")
}

func TestScanSession_StopSuppressesScanTermination(t *testing.T) {
	s := testSession()
	s.stopping = true

	s.fail(errors.New("scan aborted"))
	assert.NoError(t, s.Err())
}
