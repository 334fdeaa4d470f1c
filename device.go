// Package simtemp simulates a periodic hardware temperature sensor. A Device
// produces timestamped readings on a configurable cadence, flags threshold
// crossings, and buffers samples for any number of concurrent consumers
// without the producer ever blocking on them.
package simtemp

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/embedded-sdks/simtemp/errors"
	"github.com/embedded-sdks/simtemp/internal/container"
	"github.com/embedded-sdks/simtemp/internal/log"
	"github.com/embedded-sdks/simtemp/internal/wallclock"
)

// Device is a single simulated temperature sensor. All methods are safe for
// concurrent use. The zero value is not usable; construct with New.
type Device struct {
	id     string
	logger log.Logger
	clock  wallclock.WallClock

	config configStore
	engine *engine
	stats  stats
	buf    *container.Ring[Sample]

	// start anchors the monotonic sample timestamps.
	start time.Time

	// reprogram hands a new interval to the sampler loop; capacity 1 with
	// drain-and-replace sends, so only the latest interval is ever pending.
	reprogram chan time.Duration

	// genMu is a fast lock fencing interval changes against in-flight timer
	// fires. The sampler holds it for one bounded cycle; writers hold it for
	// a counter bump. timerGen increments on every interval write, and a
	// fire armed under an older generation is discarded instead of sampled.
	genMu    sync.Mutex
	timerGen uint64

	// readyMu guards the swap of the ready channel. Closing the previous
	// channel broadcasts "buffer non-empty" to all blocked readers, which
	// then re-check availability.
	readyMu sync.Mutex
	ready   chan struct{}

	lifecycleMu sync.Mutex
	started     bool
	stopped     bool
	ctx         context.Context
	cancel      context.CancelFunc
	wg          sync.WaitGroup

	// done is closed once Stop completes; no sample is pushed after that.
	done chan struct{}
}

// New creates a device with the given options. The configuration defaults to
// 100ms sampling, a 45000 mC threshold, and normal mode.
func New(opt ...Option) (*Device, error) {
	opts := DeviceOptions{
		Config:         DefaultConfiguration(),
		BufferCapacity: DefaultBufferCapacity,
		Clock:          wallclock.Instance,
	}
	opts.Apply(opt)

	if err := opts.Config.Validate(); err != nil {
		return nil, err
	}
	if opts.BufferCapacity < 1 {
		return nil, &errors.Error{
			Message:       "buffer capacity must be positive",
			Kind:          errors.ConfigurationInvalid,
			PropertyName:  "buffer_capacity",
			PropertyValue: opts.BufferCapacity,
		}
	}

	id := uuid.NewString()
	logger := opts.Logger
	if logger != nil {
		logger = logger.With(slog.String("device_id", id))
	}

	d := &Device{
		id:        id,
		logger:    log.Wrap(logger),
		clock:     opts.Clock,
		engine:    newEngine(uint64(opts.Clock.Now().UnixNano())),
		buf:       container.NewRing[Sample](opts.BufferCapacity),
		reprogram: make(chan time.Duration, 1),
		ready:     make(chan struct{}),
		done:      make(chan struct{}),
	}
	d.config.init(opts.Config)

	if opts.Config.Mode == ModeRamp {
		d.engine.enterRamp(opts.Config.Threshold)
	}

	return d, nil
}

// ID returns the unique instance ID of the device.
func (d *Device) ID() string {
	return d.id
}

// Start begins periodic sampling. It spawns the sampler goroutine and returns
// immediately. A device can only be started once.
func (d *Device) Start(ctx context.Context) error {
	d.lifecycleMu.Lock()
	defer d.lifecycleMu.Unlock()

	if d.started || d.stopped {
		return &errors.Error{
			Message:      "device already started",
			Kind:         errors.StateInvalid,
			PropertyName: "device",
		}
	}

	d.ctx, d.cancel = context.WithCancel(ctx)
	d.start = d.clock.Now()
	d.started = true

	d.wg.Add(1)
	go d.run()

	cfg := d.config.snapshot()
	d.logger.Info(ctx, "sampler started",
		slog.Duration("sampling_interval", cfg.SamplingInterval),
		slog.Int("threshold_mc", int(cfg.Threshold)),
		slog.String("mode", cfg.Mode.String()),
	)
	return nil
}

// Stop synchronously halts sampling. Once it returns, no further samples are
// produced; buffered samples remain readable until drained. Idempotent.
func (d *Device) Stop() error {
	d.lifecycleMu.Lock()
	if !d.started || d.stopped {
		d.lifecycleMu.Unlock()
		return nil
	}
	d.stopped = true
	d.lifecycleMu.Unlock()

	d.cancel()
	d.wg.Wait()
	close(d.done)

	d.logger.Info(context.Background(), "sampler stopped",
		slog.String("stats", d.stats.snapshot().String()),
		slog.Uint64("buffer_drops", d.buf.Dropped()),
	)
	return nil
}

// Config returns an atomic snapshot of the runtime configuration.
func (d *Device) Config() Configuration {
	return d.config.snapshot()
}

// SetSamplingInterval updates the sampling cadence. Values outside
// [1ms, 10s] are rejected and the prior value is retained. On success the
// pending fire is canceled and the sampler rearms with the new interval.
func (d *Device) SetSamplingInterval(interval time.Duration) error {
	if err := validateInterval(interval); err != nil {
		return err
	}

	d.config.mu.Lock()
	defer d.config.mu.Unlock()

	cfg := d.config.snapshot()
	cfg.SamplingInterval = interval
	d.config.commit(cfg)

	// Invalidate the armed wait. Any fire still pending from the old
	// interval observes the generation mismatch and is discarded; an
	// in-flight cycle holds genMu, so the bump below also waits out its
	// (bounded) completion.
	d.genMu.Lock()
	d.timerGen++
	d.genMu.Unlock()

	d.sendReprogram(interval)
	return nil
}

// SetThreshold updates the alert threshold. Any signed milli-degree value is
// accepted; it takes effect on the next comparison cycle.
func (d *Device) SetThreshold(milliC int32) {
	d.config.mu.Lock()
	defer d.config.mu.Unlock()

	cfg := d.config.snapshot()
	cfg.Threshold = milliC
	d.config.commit(cfg)
}

// SetMode updates the simulation mode. Entering ramp mode from a different
// mode reinitializes the ramp toward the current threshold; every other
// transition leaves the ramp state untouched.
func (d *Device) SetMode(mode Mode) error {
	if mode < ModeNormal || mode > ModeRamp {
		return &errors.Error{
			Message:       "unrecognized mode",
			Kind:          errors.ConfigurationInvalid,
			PropertyName:  "mode",
			PropertyValue: int(mode),
		}
	}

	d.config.mu.Lock()
	defer d.config.mu.Unlock()

	cfg := d.config.snapshot()
	if mode == ModeRamp && cfg.Mode != ModeRamp {
		d.engine.enterRamp(cfg.Threshold)
	}
	cfg.Mode = mode
	d.config.commit(cfg)

	return nil
}

// sendReprogram delivers the latest interval to the sampler loop without ever
// blocking: a stale pending value is drained and replaced.
func (d *Device) sendReprogram(interval time.Duration) {
	for {
		select {
		case d.reprogram <- interval:
			return
		default:
			select {
			case <-d.reprogram:
			default:
			}
		}
	}
}

// notifyReaders broadcasts "buffer non-empty" by closing the current ready
// channel and installing a fresh one.
func (d *Device) notifyReaders() {
	d.readyMu.Lock()
	ch := d.ready
	d.ready = make(chan struct{})
	d.readyMu.Unlock()
	close(ch)
}

// readyCh returns the channel that will be closed on the next notification.
// Readers must take it before re-checking the buffer so a concurrent push
// cannot be missed.
func (d *Device) readyCh() <-chan struct{} {
	d.readyMu.Lock()
	defer d.readyMu.Unlock()
	return d.ready
}

func (d *Device) isStarted() bool {
	d.lifecycleMu.Lock()
	defer d.lifecycleMu.Unlock()
	return d.started
}
