package simtemp

import (
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/embedded-sdks/simtemp/errors"
)

// Mode selects the simulation behavior of the device.
type Mode int

// The available simulation modes.
const (
	// ModeNormal produces the fixed base temperature.
	ModeNormal Mode = iota

	// ModeNoisy produces the base temperature with uniform noise.
	ModeNoisy

	// ModeRamp ramps the temperature up and down, starting toward the
	// threshold so that a crossing occurs within a bounded number of ticks.
	ModeRamp
)

// String returns the mode as its parameter-surface string.
func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModeNoisy:
		return "noisy"
	case ModeRamp:
		return "ramp"
	default:
		return "unknown"
	}
}

// ParseMode parses a parameter-surface mode string.
func ParseMode(s string) (Mode, error) {
	switch strings.TrimSpace(s) {
	case "normal":
		return ModeNormal, nil
	case "noisy":
		return ModeNoisy, nil
	case "ramp":
		return ModeRamp, nil
	default:
		return ModeNormal, &errors.Error{
			Message:       "unrecognized mode",
			Kind:          errors.ConfigurationInvalid,
			PropertyName:  "mode",
			PropertyValue: s,
		}
	}
}

// Configuration is an atomic snapshot of the runtime device parameters.
type Configuration struct {
	// SamplingInterval is the cadence of sample production, within
	// [1ms, 10s].
	SamplingInterval time.Duration

	// Threshold is the alert threshold in milli-degrees Celsius. Any signed
	// value is accepted.
	Threshold int32

	// Mode is the simulation behavior.
	Mode Mode
}

// The runtime configuration defaults and bounds.
const (
	DefaultSamplingInterval = 100 * time.Millisecond
	DefaultThreshold        = int32(45000)

	MinSamplingInterval = time.Millisecond
	MaxSamplingInterval = 10 * time.Second
)

// DefaultConfiguration returns the device defaults.
func DefaultConfiguration() Configuration {
	return Configuration{
		SamplingInterval: DefaultSamplingInterval,
		Threshold:        DefaultThreshold,
		Mode:             ModeNormal,
	}
}

// Validate checks the configuration against the parameter bounds.
func (c Configuration) Validate() error {
	if err := validateInterval(c.SamplingInterval); err != nil {
		return err
	}
	if c.Mode < ModeNormal || c.Mode > ModeRamp {
		return &errors.Error{
			Message:       "unrecognized mode",
			Kind:          errors.ConfigurationInvalid,
			PropertyName:  "mode",
			PropertyValue: int(c.Mode),
		}
	}
	return nil
}

func validateInterval(d time.Duration) error {
	if d < MinSamplingInterval || d > MaxSamplingInterval {
		return &errors.Error{
			Message:       "sampling interval out of range",
			Kind:          errors.ConfigurationInvalid,
			PropertyName:  "sampling_interval",
			PropertyValue: d,
		}
	}
	return nil
}

// configStore holds the runtime configuration. Writers serialize on the
// sleep-capable mutex; the sampler loop only ever loads the atomic snapshot,
// so it can never wait behind a blocked writer.
type configStore struct {
	mu      sync.Mutex
	current atomic.Pointer[Configuration]
}

func (c *configStore) init(cfg Configuration) {
	c.current.Store(&cfg)
}

// snapshot returns the current configuration without locking.
func (c *configStore) snapshot() Configuration {
	return *c.current.Load()
}

// commit publishes an updated configuration. Callers must hold c.mu.
func (c *configStore) commit(cfg Configuration) {
	c.current.Store(&cfg)
}
