package simtemp

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/embedded-sdks/simtemp/internal/wallclock"
)

// fakeClock drives the sampler manually: each send on fire delivers one tick.
type fakeClock struct {
	now  time.Time
	fire chan time.Time
}

type fakeTimer struct{ c chan time.Time }

func (c *fakeClock) After(time.Duration) <-chan time.Time { return c.fire }
func (c *fakeClock) Now() time.Time                       { return c.now }

func (c *fakeClock) NewTimer(time.Duration) wallclock.Timer {
	return &fakeTimer{c: c.fire}
}

func (t *fakeTimer) C() <-chan time.Time    { return t.c }
func (t *fakeTimer) Reset(time.Duration) bool { return true }
func (t *fakeTimer) Stop() bool             { return true }

func TestSamplerDeterministicTicks(t *testing.T) {
	clock := &fakeClock{
		now:  time.Unix(1000, 0),
		fire: make(chan time.Time),
	}

	d, err := New(WithClock(clock))
	require.NoError(t, err)
	require.NoError(t, d.Start(context.Background()))
	defer d.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	for i := 1; i <= 3; i++ {
		clock.now = clock.now.Add(100 * time.Millisecond)
		clock.fire <- clock.now

		s, err := d.Read(ctx)
		require.NoError(t, err)
		require.Equal(t, BaseTemperature, s.Temperature)
		require.Equal(t, uint64(i)*uint64(100*time.Millisecond), s.Timestamp)
	}

	require.Equal(t, uint64(3), d.Stats().Updates)
}
