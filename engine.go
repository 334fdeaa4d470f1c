package simtemp

import (
	"math/rand/v2"
	"sync"
)

// The simulation tuning constants, in milli-degrees Celsius where applicable.
const (
	// BaseTemperature is the resting temperature of the simulated sensor.
	BaseTemperature = int32(25000)

	// noiseRange bounds the uniform noise of ModeNoisy to ±1°C.
	noiseRange = 1000

	// rampStep is the per-tick temperature delta of ModeRamp.
	rampStep = int32(200)

	// rampFlipTicks is the number of ticks after which the ramp reverses.
	rampFlipTicks = 10
)

// engine generates temperature readings and detects threshold crossings.
//
// The mutex is fast in the spec's sense: it is only ever held for a bounded
// O(1) section, so the sampler may take it on its time-critical path. The
// ramp state and the previous reading live under it because a mode write and
// a concurrent tick both touch them.
type engine struct {
	mu sync.Mutex

	rng *rand.Rand

	prev        int32 // previous reading, for crossing detection
	rampDir     int32 // -1 or +1
	rampCounter uint64
}

func newEngine(seed uint64) *engine {
	return &engine{
		rng:     rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		prev:    BaseTemperature,
		rampDir: 1,
	}
}

// next produces the reading for one tick under the given configuration
// snapshot and reports whether it crossed the threshold. The previous reading
// is unconditionally replaced.
func (e *engine) next(cfg Configuration) (temp int32, crossed bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch cfg.Mode {
	case ModeNoisy:
		temp = BaseTemperature + int32(e.rng.IntN(2*noiseRange)) - noiseRange

	case ModeRamp:
		e.rampCounter++
		if e.rampCounter > rampFlipTicks {
			e.rampDir = -e.rampDir
			e.rampCounter = 0
		}
		temp = BaseTemperature + int32(e.rampCounter)*e.rampDir*rampStep

	default:
		temp = BaseTemperature
	}

	crossed = thresholdCrossed(e.prev, temp, cfg.Threshold)
	e.prev = temp

	return temp, crossed
}

// thresholdCrossed reports a change of sign of (temp - threshold) between the
// previous and new reading, strict on both sides.
func thresholdCrossed(prev, temp, threshold int32) bool {
	return (temp > threshold) != (prev > threshold)
}

// enterRamp reinitializes the ramp state for a transition into ModeRamp from
// a different mode: the counter restarts and the initial direction moves
// toward the threshold, guaranteeing a crossing within a bounded number of
// ticks. Transitions that stay in or out of ramp leave the state untouched,
// so a resumed ramp continues where it stopped.
func (e *engine) enterRamp(threshold int32) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.rampCounter = 0
	if threshold < BaseTemperature {
		e.rampDir = -1
	} else {
		e.rampDir = 1
	}
}
