package simtemp

import (
	"log/slog"

	"github.com/embedded-sdks/simtemp/internal/options"
	"github.com/embedded-sdks/simtemp/internal/wallclock"
)

type (
	// Option represents a single device option.
	Option interface{ device(*DeviceOptions) }

	// DeviceOptions are the resolved device options.
	DeviceOptions struct {
		Config         Configuration
		BufferCapacity int
		Logger         *slog.Logger
		Clock          wallclock.WallClock
	}

	// WithConfig specifies the startup configuration of the device. It is
	// validated with the same rules as the runtime setters.
	WithConfig Configuration

	// WithBufferCapacity overrides the sample buffer capacity.
	WithBufferCapacity int

	// These options are not used directly; see WithLogger and WithClock.
	withLogger struct{ *slog.Logger }
	withClock  struct{ wallclock.WallClock }
)

// DefaultBufferCapacity is the sample buffer capacity unless overridden.
const DefaultBufferCapacity = 1024

// WithLogger enables logging with the provided slog logger.
func WithLogger(logger *slog.Logger) Option {
	return withLogger{logger}
}

// WithClock overrides the clock used for sampling and timestamps. It is
// intended for test code.
func WithClock(clock wallclock.WallClock) Option {
	return withClock{clock}
}

// Apply resolves the provided list of options.
func (o *DeviceOptions) Apply(
	opts []Option,
	rest ...Option,
) {
	for opt := range options.Apply[Option](opts, rest...) {
		opt.device(o)
	}
}

func (o *DeviceOptions) device(opt *DeviceOptions) {
	if o != nil {
		*opt = *o
	}
}

func (o WithConfig) device(opt *DeviceOptions) {
	opt.Config = Configuration(o)
}

func (o WithBufferCapacity) device(opt *DeviceOptions) {
	opt.BufferCapacity = int(o)
}

func (o withLogger) device(opt *DeviceOptions) {
	opt.Logger = o.Logger
}

func (o withClock) device(opt *DeviceOptions) {
	opt.Clock = o.WallClock
}
