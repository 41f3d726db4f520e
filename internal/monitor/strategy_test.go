package monitor

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"ble-proximity.dev/internal/bluetooth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// fakeSource scripts Sample results and counts invocations.
type fakeSource struct {
	name  string
	rssi  int16
	ok    bool
	err   error
	calls int
}

func (f *fakeSource) Name() string { return f.name }

func (f *fakeSource) Sample(context.Context, string) (int16, bool, error) {
	f.calls++
	return f.rssi, f.ok, f.err
}

func TestSourceChain_FallsBackAndNeverRetries(t *testing.T) {
	broken := &fakeSource{name: "connected", err: errors.New("not connected")}
	scanning := &fakeSource{name: "scanning", rssi: -62, ok: true}
	chain := NewSourceChain(zaptest.NewLogger(t), broken, scanning)

	for i := 0; i < 5; i++ {
		rssi, ok, err := chain.Sample(context.Background(), "AA:BB:CC:DD:EE:FF")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, int16(-62), rssi)
	}

	// The broken source was tried exactly once; every subsequent tick went
	// straight to the weaker source.
	assert.Equal(t, 1, broken.calls)
	assert.Equal(t, 5, scanning.calls)
	assert.Equal(t, "scanning", chain.Active())
}

func TestSourceChain_AbsenceIsNotAFallbackTrigger(t *testing.T) {
	quiet := &fakeSource{name: "scanning", ok: false}
	terminal := &fakeSource{name: "unavailable"}
	chain := NewSourceChain(zaptest.NewLogger(t), quiet, terminal)

	for i := 0; i < 3; i++ {
		_, ok, err := chain.Sample(context.Background(), "AA:BB:CC:DD:EE:FF")
		require.NoError(t, err)
		assert.False(t, ok)
	}
	assert.Equal(t, 3, quiet.calls)
	assert.Zero(t, terminal.calls)
}

func TestSourceChain_SessionLossPassesThrough(t *testing.T) {
	lost := &fakeSource{name: "scanning", err: fmt.Errorf("%w: hci went away", bluetooth.ErrSessionLost)}
	terminal := &fakeSource{name: "unavailable"}
	chain := NewSourceChain(zaptest.NewLogger(t), lost, terminal)

	_, _, err := chain.Sample(context.Background(), "AA:BB:CC:DD:EE:FF")
	assert.ErrorIs(t, err, bluetooth.ErrSessionLost)
	assert.Zero(t, terminal.calls)
}

func TestSourceChain_CancellationIsNotDemotion(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	strong := &fakeSource{name: "connected", err: ctx.Err()}
	weak := &fakeSource{name: "scanning", ok: true}
	chain := NewSourceChain(zaptest.NewLogger(t), strong, weak)

	_, _, err := chain.Sample(ctx, "AA:BB:CC:DD:EE:FF")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, "connected", chain.Active())
	assert.Zero(t, weak.calls)
}

func TestUnavailableSource(t *testing.T) {
	src := NewUnavailableSource()
	for i := 0; i < 3; i++ {
		rssi, ok, err := src.Sample(context.Background(), "AA:BB:CC:DD:EE:FF")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Zero(t, rssi)
	}
}

func TestLastSourceErrorSurfaces(t *testing.T) {
	only := &fakeSource{name: "scanning", err: errors.New("adapter gone")}
	chain := NewSourceChain(zaptest.NewLogger(t), only)

	_, _, err := chain.Sample(context.Background(), "AA:BB:CC:DD:EE:FF")
	assert.Error(t, err)
}
