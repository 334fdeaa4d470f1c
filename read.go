package simtemp

import (
	"context"

	"github.com/embedded-sdks/simtemp/errors"
)

// Read removes and returns the oldest buffered sample, blocking until one is
// available. Each successful call yields exactly one sample; concurrent
// readers compete for the stream and never receive duplicates. The wait is
// released by ctx cancellation or by Stop once the buffer drains.
func (d *Device) Read(ctx context.Context) (Sample, error) {
	if !d.isStarted() {
		return Sample{}, &errors.Error{
			Message:      "device not started",
			Kind:         errors.StateInvalid,
			PropertyName: "device",
		}
	}

	for {
		// Take the notification channel before checking the buffer so a push
		// landing between the two cannot be missed.
		ready := d.readyCh()

		if s, ok := d.buf.Pop(); ok {
			return s, nil
		}

		select {
		case <-ctx.Done():
			return Sample{}, errors.Context(ctx, "read")

		case <-d.done:
			// Sampling has stopped; hand out whatever is still buffered.
			if s, ok := d.buf.Pop(); ok {
				return s, nil
			}
			return Sample{}, &errors.Error{
				Message:      "device stopped",
				Kind:         errors.StateInvalid,
				PropertyName: "device",
			}

		case <-ready:
			// Availability is re-checked on wake; another reader may have
			// consumed the sample first.
		}
	}
}

// TryRead removes and returns the oldest buffered sample without blocking.
// When the buffer is empty it returns a WouldBlock-kinded error, which is a
// normal control-flow status rather than a fault.
func (d *Device) TryRead() (Sample, error) {
	if s, ok := d.buf.Pop(); ok {
		return s, nil
	}
	return Sample{}, &errors.Error{
		Message: "no sample available",
		Kind:    errors.WouldBlock,
	}
}

// ReadBinary blocks for the next sample and writes its 16-byte binary record
// into p, returning the record size. A buffer smaller than one record is an
// invalid argument.
func (d *Device) ReadBinary(ctx context.Context, p []byte) (int, error) {
	if err := checkRecordBuffer(p); err != nil {
		return 0, err
	}
	s, err := d.Read(ctx)
	if err != nil {
		return 0, err
	}
	_, _ = s.AppendBinary(p[:0])
	return RecordSize, nil
}

// TryReadBinary is the non-blocking form of ReadBinary.
func (d *Device) TryReadBinary(p []byte) (int, error) {
	if err := checkRecordBuffer(p); err != nil {
		return 0, err
	}
	s, err := d.TryRead()
	if err != nil {
		return 0, err
	}
	_, _ = s.AppendBinary(p[:0])
	return RecordSize, nil
}

// PollReady reports whether a sample is currently available, without side
// effects. The answer is a snapshot and may be stale by the time a read is
// issued.
func (d *Device) PollReady() bool {
	return d.buf.Len() > 0
}

// Stats returns a consistent snapshot of the device counters.
func (d *Device) Stats() Statistics {
	return d.stats.snapshot()
}

func checkRecordBuffer(p []byte) error {
	if len(p) < RecordSize {
		return &errors.Error{
			Message:       "buffer smaller than one sample record",
			Kind:          errors.ArgumentInvalid,
			PropertyName:  "len(p)",
			PropertyValue: len(p),
		}
	}
	return nil
}
