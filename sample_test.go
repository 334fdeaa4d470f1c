package simtemp

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/embedded-sdks/simtemp/errors"
)

func TestSampleBinaryLayout(t *testing.T) {
	s := Sample{
		Timestamp:   0x0102030405060708,
		Temperature: -1500, // 0xFFFFFA24
		Flags:       FlagNewSample | FlagThresholdCrossed,
	}

	b, err := s.MarshalBinary()
	require.NoError(t, err)

	// 16 bytes, little-endian, no padding.
	require.Equal(t, []byte{
		0x08, 0x07, 0x06, 0x05, 0x04, 0x03, 0x02, 0x01,
		0x24, 0xFA, 0xFF, 0xFF,
		0x03, 0x00, 0x00, 0x00,
	}, b)
}

func TestSampleBinaryRoundTrip(t *testing.T) {
	in := Sample{Timestamp: 42, Temperature: 25000, Flags: FlagNewSample}

	b, err := in.MarshalBinary()
	require.NoError(t, err)
	require.Len(t, b, RecordSize)

	var out Sample
	require.NoError(t, out.UnmarshalBinary(b))
	require.Equal(t, in, out)
}

func TestSampleUnmarshalShort(t *testing.T) {
	var s Sample
	err := s.UnmarshalBinary(make([]byte, RecordSize-1))
	require.Error(t, err)

	e, ok := err.(*errors.Error)
	require.True(t, ok)
	require.Equal(t, errors.ArgumentInvalid, e.Kind)
}

func TestSampleCrossed(t *testing.T) {
	require.False(t, Sample{Flags: FlagNewSample}.Crossed())
	require.True(t, Sample{Flags: FlagNewSample | FlagThresholdCrossed}.Crossed())
}
