package devicetree

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/embedded-sdks/simtemp"
)

func writeFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "simtemp.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadOverrides(t *testing.T) {
	path := writeFile(t, `
sampling-ms: 25
threshold-mC: 24800
mode: ramp
`)

	cfg := Load(path, nil)
	require.Equal(t, 25*time.Millisecond, cfg.SamplingInterval)
	require.Equal(t, int32(24800), cfg.Threshold)
	require.Equal(t, simtemp.ModeRamp, cfg.Mode)
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := writeFile(t, "threshold-mC: -1000\n")

	cfg := Load(path, nil)
	require.Equal(t, simtemp.DefaultSamplingInterval, cfg.SamplingInterval)
	require.Equal(t, int32(-1000), cfg.Threshold)
	require.Equal(t, simtemp.ModeNormal, cfg.Mode)
}

func TestLoadInvalidEntriesFallBack(t *testing.T) {
	path := writeFile(t, `
sampling-ms: 999999
mode: sawtooth
`)

	// Invalid entries are logged and defaulted, never fatal.
	cfg := Load(path, nil)
	require.Equal(t, simtemp.DefaultSamplingInterval, cfg.SamplingInterval)
	require.Equal(t, simtemp.ModeNormal, cfg.Mode)
}

func TestLoadMissingFile(t *testing.T) {
	cfg := Load(filepath.Join(t.TempDir(), "absent.yaml"), nil)
	require.Equal(t, simtemp.DefaultConfiguration(), cfg)
}

func TestLoadMalformedFile(t *testing.T) {
	path := writeFile(t, "::: not yaml {{{")
	cfg := Load(path, nil)
	require.Equal(t, simtemp.DefaultConfiguration(), cfg)
}

func TestWatcherAppliesChanges(t *testing.T) {
	path := writeFile(t, "threshold-mC: 45000\n")

	cfg := simtemp.DefaultConfiguration()
	cfg.SamplingInterval = 10 * time.Second

	dev, err := simtemp.New(simtemp.WithConfig(cfg))
	require.NoError(t, err)
	require.NoError(t, dev.Start(context.Background()))
	t.Cleanup(func() { _ = dev.Stop() })

	w, err := Watch(path, dev, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })

	require.NoError(t, os.WriteFile(path, []byte(`
threshold-mC: 30000
mode: noisy
`), 0o644))

	require.Eventually(t, func() bool {
		c := dev.Config()
		return c.Threshold == 30000 && c.Mode == simtemp.ModeNoisy
	}, 2*time.Second, 10*time.Millisecond)
}

func TestWatcherKeepsPriorValueOnRejectedWrite(t *testing.T) {
	path := writeFile(t, "sampling-ms: 50\n")

	dev, err := simtemp.New()
	require.NoError(t, err)
	require.NoError(t, dev.Start(context.Background()))
	t.Cleanup(func() { _ = dev.Stop() })

	w, err := Watch(path, dev, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })

	require.NoError(t, os.WriteFile(path, []byte("sampling-ms: 999999\n"), 0o644))

	// The rejected interval leaves the last-known-good value in place.
	time.Sleep(200 * time.Millisecond)
	require.Equal(t, simtemp.DefaultSamplingInterval,
		dev.Config().SamplingInterval)
}
