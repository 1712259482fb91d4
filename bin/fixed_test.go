package bin

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWidth(t *testing.T) {
	require.Equal(t, 8, Width[uint8]())
	require.Equal(t, 16, Width[int16]())
	require.Equal(t, 32, Width[uint32]())
	require.Equal(t, 64, Width[uint64]())
	require.Equal(t, 32, Width[float32]())
	require.Equal(t, 64, Width[float64]())
}

func TestFromFixed_LittleEndianLayout(t *testing.T) {
	b := FromFixed(uint32(0x12345678))
	require.Equal(t, 32, b.Len())
	require.Equal(t, []byte{0x78, 0x56, 0x34, 0x12}, b.Bytes())

	b = FromFixed(uint8(0x43))
	require.Equal(t, 8, b.Len())
	require.Equal(t, []byte{0x43}, b.Bytes())
}

func roundTripFixed[T Fixed](t *testing.T, v T) {
	t.Helper()

	b := FromFixed(v)
	require.Equal(t, Width[T](), b.Len())

	got, rest, err := SplitFixed[T](b)
	require.NoError(t, err)
	require.Equal(t, v, got)
	require.Equal(t, 0, rest.Len())
}

func TestFixed_RoundTrip(t *testing.T) {
	// Zero, all-ones and alternating bit patterns at every supported width.
	roundTripFixed(t, uint8(0))
	roundTripFixed(t, uint8(0xFF))
	roundTripFixed(t, uint8(0xAA))
	roundTripFixed(t, int8(-1))
	roundTripFixed(t, uint16(0))
	roundTripFixed(t, uint16(0xAAAA))
	roundTripFixed(t, int16(-1))
	roundTripFixed(t, uint32(0))
	roundTripFixed(t, uint32(0xAAAAAAAA))
	roundTripFixed(t, int32(math.MinInt32))
	roundTripFixed(t, uint64(0))
	roundTripFixed(t, uint64(0xAAAAAAAAAAAAAAAA))
	roundTripFixed(t, int64(-1))
	roundTripFixed(t, uint64(123456789))
	roundTripFixed(t, float32(3.14159))
	roundTripFixed(t, float64(3.14159))
	roundTripFixed(t, math.MaxFloat64)
}

func TestSplitFixed_Remainder(t *testing.T) {
	// A fixed-width prefix followed by trailing bits.
	b := FromFixed(uint16(0xBEEF)).Concat(MustNew([]byte{0b101}, 3))

	v, rest, err := SplitFixed[uint16](b)
	require.NoError(t, err)
	require.Equal(t, uint16(0xBEEF), v)
	require.Equal(t, 3, rest.Len())
	require.Equal(t, []byte{0b101}, rest.Bytes())
}

func TestSplitFixed_TooShort(t *testing.T) {
	_, _, err := SplitFixed[uint32](MustNew([]byte{0xFF, 0xFF}, 16))
	require.Error(t, err)
}

func TestBool_RoundTrip(t *testing.T) {
	b := FromBool(true)
	require.Equal(t, 1, b.Len())

	v, rest, err := SplitBool(b)
	require.NoError(t, err)
	require.True(t, v)
	require.Equal(t, 0, rest.Len())

	v, _, err = SplitBool(FromBool(false))
	require.NoError(t, err)
	require.False(t, v)
}

func TestBool_SingleBitInConcat(t *testing.T) {
	// The strobe-bit use case: one bit followed by a byte payload.
	b := FromBool(true).Concat(FromFixed(uint8(0x43)))
	require.Equal(t, 9, b.Len())

	strobe, rest, err := SplitBool(b)
	require.NoError(t, err)
	require.True(t, strobe)

	payload, rest, err := SplitFixed[uint8](rest)
	require.NoError(t, err)
	require.Equal(t, uint8(0x43), payload)
	require.Equal(t, 0, rest.Len())
}
