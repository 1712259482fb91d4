// Package codec turns typed stream packets into bit-precise binary buffers
// and back.
//
// The one-packet binary layout is the only boundary-significant artifact of
// the encoding; any two components that agree on it interoperate:
//
//	bit 0       : strobe (1 = payload present)
//	bit 1..d    : last[0..d-1], one bit per open dimension, insertion order
//	bit d+1..d+w: payload, fixed-width little-endian layout, zero-filled if absent
//
// The dimension depth d and fixed payload width w are out-of-band parameters
// agreed per field by encoder and decoder; they are not self-describing in
// the buffer. The frame package carries them alongside the packet bytes for
// storage.
package codec

import (
	"fmt"

	"github.com/arloliu/tydi/bin"
	"github.com/arloliu/tydi/errs"
	"github.com/arloliu/tydi/stream"
)

// EncodeFunc projects a payload value onto its fixed-width binary form.
type EncodeFunc[T any] func(T) bin.Buffer

// DecodeFunc is the inverse of EncodeFunc. It receives the payload bits of a
// packet and reconstructs the value.
type DecodeFunc[T any] func(bin.Buffer) (T, error)

// ToBinary encodes a single packet: the strobe bit, then the last vector one
// bit per dimension in insertion order, then the payload bits. An absent
// payload encodes as width zero bits.
//
// Parameters:
//   - p: the packet to encode
//   - width: the field's declared fixed payload width in bits
//   - enc: the payload projection
//
// Returns:
//   - bin.Buffer: the packet's binary form, 1+depth+width bits
//   - error: ErrPayloadWidthMismatch if enc's output width differs from the
//     declared width
func ToBinary[T any](p stream.Packet[T], width int, enc EncodeFunc[T]) (bin.Buffer, error) {
	payload := bin.Zero(width)
	if p.Valid {
		payload = enc(p.Data)
		if payload.Len() != width {
			return bin.Buffer{}, fmt.Errorf("%w: payload encodes to %d bits, field declares %d",
				errs.ErrPayloadWidthMismatch, payload.Len(), width)
		}
	}

	return bin.FromBool(p.Valid).Concat(bin.FromBools(p.Last)).Concat(payload), nil
}

// FromBinary decodes a single packet from its binary form: one strobe bit,
// then depth last bits, then the payload bits, which are handed to dec only
// when the strobe was set.
//
// Returns ErrInvalidLength if the buffer is shorter than 1+depth+width bits.
func FromBinary[T any](b bin.Buffer, depth, width int, dec DecodeFunc[T]) (stream.Packet[T], error) {
	var p stream.Packet[T]

	if b.Len() < 1+depth+width {
		return p, fmt.Errorf("%w: packet is %d bits, need %d for depth %d width %d",
			errs.ErrInvalidLength, b.Len(), 1+depth+width, depth, width)
	}

	strobe, rest, err := bin.SplitBool(b)
	if err != nil {
		return p, err
	}

	lastBits, payload, err := rest.Split(depth)
	if err != nil {
		return p, err
	}
	p.Last = lastBits.Bools()

	if !strobe {
		return p, nil
	}

	v, err := dec(payload)
	if err != nil {
		return p, err
	}
	p.Data = v
	p.Valid = true

	return p, nil
}

// Finish encodes a whole stream, one buffer per packet in stream order.
//
// Every packet of a homogeneous stream shares the same depth, so the
// resulting buffers all have the same bit length, which is what lets the
// frame layer store them at fixed stride.
func Finish[T any](s stream.Stream[T], width int, enc EncodeFunc[T]) ([]bin.Buffer, error) {
	out := make([]bin.Buffer, 0, len(s))
	for i, p := range s {
		b, err := ToBinary(p, width, enc)
		if err != nil {
			return nil, fmt.Errorf("packet %d: %w", i, err)
		}
		out = append(out, b)
	}

	return out, nil
}

// PacketsFromBinaries decodes a sequence of packet buffers back into a
// stream, the inverse of Finish.
func PacketsFromBinaries[T any](bufs []bin.Buffer, depth, width int, dec DecodeFunc[T]) (stream.Stream[T], error) {
	out := make(stream.Stream[T], 0, len(bufs))
	for i, b := range bufs {
		p, err := FromBinary(b, depth, width, dec)
		if err != nil {
			return nil, fmt.Errorf("packet %d: %w", i, err)
		}
		out = append(out, p)
	}

	return out, nil
}

// FixedEncoder returns the EncodeFunc for a native fixed-width payload type.
// Pair it with a width of bin.Width[T]().
func FixedEncoder[T bin.Fixed]() EncodeFunc[T] {
	return func(v T) bin.Buffer { return bin.FromFixed(v) }
}

// FixedDecoder returns the DecodeFunc for a native fixed-width payload type.
func FixedDecoder[T bin.Fixed]() DecodeFunc[T] {
	return func(b bin.Buffer) (T, error) {
		v, _, err := bin.SplitFixed[T](b)

		return v, err
	}
}

// ByteEncoder encodes a single 8-bit code unit, the payload form used for
// text fields.
func ByteEncoder(v byte) bin.Buffer {
	return bin.FromFixed(v)
}

// ByteDecoder decodes a single 8-bit code unit.
func ByteDecoder(b bin.Buffer) (byte, error) {
	v, _, err := bin.SplitFixed[byte](b)

	return v, err
}
