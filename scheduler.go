package simtemp

import (
	"log/slog"

	"github.com/embedded-sdks/simtemp/errors"
)

// run is the sampler loop. It is the only producer context: it fires a
// generate-detect-store cycle at the configured cadence, rearming from
// completion time so an overrunning cycle never accumulates a backlog. It
// takes only fast locks, never the sleep-capable configuration mutex.
func (d *Device) run() {
	defer d.wg.Done()

	interval := d.config.snapshot().SamplingInterval
	timer := d.clock.NewTimer(interval)
	defer timer.Stop()

	d.genMu.Lock()
	gen := d.timerGen
	d.genMu.Unlock()

	for {
		select {
		case <-d.ctx.Done():
			return

		case interval = <-d.reprogram:
			// The armed wait belongs to the old interval; discard any fire
			// it already delivered and arm a fresh one.
			if !timer.Stop() {
				select {
				case <-timer.C():
				default:
				}
			}
			d.genMu.Lock()
			gen = d.timerGen
			d.genMu.Unlock()
			timer.Reset(interval)

		case <-timer.C():
			d.genMu.Lock()
			if d.timerGen != gen {
				// Stale fire: the interval changed while this wait was
				// pending. The reprogram case will rearm; meanwhile use the
				// current snapshot so the loop never stalls.
				gen = d.timerGen
				d.genMu.Unlock()
				interval = d.config.snapshot().SamplingInterval
				timer.Reset(interval)
				continue
			}
			d.cycle()
			d.genMu.Unlock()

			interval = d.config.snapshot().SamplingInterval
			timer.Reset(interval)
		}
	}
}

// cycle runs one generate-detect-store pass. Faults are contained here: the
// cycle is abandoned, the error counters updated, and the next tick proceeds
// normally. The producer never terminates on a fault.
func (d *Device) cycle() {
	defer func() {
		if r := recover(); r != nil {
			d.stats.recordError(int32(errors.InternalLogicError))
			d.logger.Warn(d.ctx, "sampling cycle fault contained",
				slog.Any("fault", r))
		}
	}()

	cfg := d.config.snapshot()

	temp, crossed := d.engine.next(cfg)
	d.stats.incUpdate()

	flags := FlagNewSample
	if crossed {
		flags |= FlagThresholdCrossed
		d.stats.incAlert()
		d.logger.Debug(d.ctx, "threshold crossed",
			slog.Int("temp_mc", int(temp)),
			slog.Int("threshold_mc", int(cfg.Threshold)),
		)
	}

	d.buf.Push(Sample{
		Timestamp:   uint64(d.clock.Now().Sub(d.start)),
		Temperature: temp,
		Flags:       flags,
	})
	d.notifyReaders()
}
