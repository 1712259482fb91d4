package bin

import (
	"fmt"
	"unsafe"

	"golang.org/x/exp/constraints"

	"github.com/arloliu/tydi/endian"
	"github.com/arloliu/tydi/errs"
)

// Fixed is the set of native numeric types with a compile-time-known width.
// Their wire form is the little-endian in-memory byte representation, width
// 8*sizeof. Booleans are not Fixed; they occupy a single bit and use
// FromBool/SplitBool instead.
type Fixed interface {
	constraints.Integer | constraints.Float
}

// Width returns the wire width in bits of a Fixed type.
//
// Example:
//
//	bin.Width[uint32]() // 32
func Width[T Fixed]() int {
	var zero T

	return int(unsafe.Sizeof(zero)) * 8
}

// FromFixed lifts a fixed-width native value into a buffer carrying its
// little-endian byte representation, bit length 8*sizeof(value).
//
// The layout is independent of the host byte order: on big-endian hosts the
// bytes are reversed so the wire form stays little-endian.
func FromFixed[T Fixed](v T) Buffer {
	size := int(unsafe.Sizeof(v))
	data := make([]byte, size)
	copy(data, unsafe.Slice((*byte)(unsafe.Pointer(&v)), size))
	if endian.IsNativeBigEndian() {
		reverse(data)
	}

	return Buffer{data: data, bits: size * 8}
}

// SplitFixed splits off the leading 8*sizeof(T) bits of the buffer and
// reinterprets them as a T, returning the decoded value and the remainder.
//
// Returns ErrInvalidLength if the buffer is shorter than the type's width.
func SplitFixed[T Fixed](b Buffer) (T, Buffer, error) {
	var out T

	first, rest, err := b.Split(Width[T]())
	if err != nil {
		return out, Buffer{}, fmt.Errorf("%w: buffer too short for %d-bit value", errs.ErrInvalidLength, Width[T]())
	}

	raw := first.data
	if endian.IsNativeBigEndian() {
		raw = append([]byte(nil), raw...)
		reverse(raw)
	}
	copy(unsafe.Slice((*byte)(unsafe.Pointer(&out)), len(raw)), raw)

	return out, rest, nil
}

// FromBool lifts a boolean into a single-bit buffer.
func FromBool(v bool) Buffer {
	var data byte
	if v {
		data = 1
	}

	return Buffer{data: []byte{data}, bits: 1}
}

// SplitBool splits off the leading bit of the buffer as a boolean.
func SplitBool(b Buffer) (bool, Buffer, error) {
	first, rest, err := b.Split(1)
	if err != nil {
		return false, Buffer{}, err
	}

	return first.data[0] != 0, rest, nil
}

func reverse(data []byte) {
	for i, j := 0, len(data)-1; i < j; i, j = i+1, j-1 {
		data[i], data[j] = data[j], data[i]
	}
}
