package simtemp

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/embedded-sdks/simtemp/errors"
)

func TestDefaultConfiguration(t *testing.T) {
	cfg := DefaultConfiguration()
	require.Equal(t, 100*time.Millisecond, cfg.SamplingInterval)
	require.Equal(t, int32(45000), cfg.Threshold)
	require.Equal(t, ModeNormal, cfg.Mode)
	require.NoError(t, cfg.Validate())
}

func TestIntervalValidationBoundaries(t *testing.T) {
	requireRejected := func(d time.Duration) {
		err := validateInterval(d)
		require.Error(t, err)
		e, ok := err.(*errors.Error)
		require.True(t, ok)
		require.Equal(t, errors.ConfigurationInvalid, e.Kind)
	}

	requireRejected(0)
	requireRejected(10001 * time.Millisecond)
	requireRejected(-time.Second)

	require.NoError(t, validateInterval(1*time.Millisecond))
	require.NoError(t, validateInterval(10000*time.Millisecond))
}

func TestParseMode(t *testing.T) {
	for s, want := range map[string]Mode{
		"normal": ModeNormal,
		"noisy":  ModeNoisy,
		"ramp":   ModeRamp,
		"ramp\n": ModeRamp,
	} {
		m, err := ParseMode(s)
		require.NoError(t, err)
		require.Equal(t, want, m)
	}

	_, err := ParseMode("sawtooth")
	require.Error(t, err)
	e, ok := err.(*errors.Error)
	require.True(t, ok)
	require.Equal(t, errors.ConfigurationInvalid, e.Kind)
}

func TestModeString(t *testing.T) {
	require.Equal(t, "normal", ModeNormal.String())
	require.Equal(t, "noisy", ModeNoisy.String())
	require.Equal(t, "ramp", ModeRamp.String())
	require.Equal(t, "unknown", Mode(7).String())
}

func TestStatisticsString(t *testing.T) {
	s := Statistics{Updates: 12, Alerts: 3, Errors: 1, LastError: 8}
	require.Equal(t, "updates=12 alerts=3 errors=1 last_error=8", s.String())
}
