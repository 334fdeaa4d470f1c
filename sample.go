package simtemp

import (
	"encoding/binary"

	"github.com/embedded-sdks/simtemp/errors"
)

type (
	// Sample is a single timestamped temperature reading. It is immutable
	// once produced.
	Sample struct {
		// Timestamp is the monotonic time of the reading in nanoseconds
		// since the device started.
		Timestamp uint64

		// Temperature is the reading in milli-degrees Celsius (e.g. 44123
		// represents 44.123°C).
		Temperature int32

		// Flags describe the status of the reading.
		Flags Flags
	}

	// Flags is the bitset of sample status flags.
	Flags uint32
)

const (
	// FlagNewSample is set on every produced sample.
	FlagNewSample Flags = 1 << iota

	// FlagThresholdCrossed is set when the reading crossed the configured
	// threshold relative to the previous reading.
	FlagThresholdCrossed
)

// RecordSize is the size in bytes of the binary sample record.
const RecordSize = 16

// Crossed reports whether the sample carries the threshold-crossed flag.
func (s Sample) Crossed() bool {
	return s.Flags&FlagThresholdCrossed != 0
}

// AppendBinary appends the binary record to b. The wire layout is fixed at 16
// little-endian bytes with no padding: u64 timestamp, i32 temperature, u32
// flags (bit 0 new-sample, bit 1 threshold-crossed).
func (s Sample) AppendBinary(b []byte) ([]byte, error) {
	b = binary.LittleEndian.AppendUint64(b, s.Timestamp)
	b = binary.LittleEndian.AppendUint32(b, uint32(s.Temperature))
	b = binary.LittleEndian.AppendUint32(b, uint32(s.Flags))
	return b, nil
}

// MarshalBinary returns the binary record for the sample.
func (s Sample) MarshalBinary() ([]byte, error) {
	return s.AppendBinary(make([]byte, 0, RecordSize))
}

// UnmarshalBinary parses a binary record into the sample.
func (s *Sample) UnmarshalBinary(data []byte) error {
	if len(data) < RecordSize {
		return &errors.Error{
			Message:       "sample record too short",
			Kind:          errors.ArgumentInvalid,
			PropertyName:  "data",
			PropertyValue: len(data),
		}
	}
	s.Timestamp = binary.LittleEndian.Uint64(data)
	s.Temperature = int32(binary.LittleEndian.Uint32(data[8:]))
	s.Flags = Flags(binary.LittleEndian.Uint32(data[12:]))
	return nil
}
