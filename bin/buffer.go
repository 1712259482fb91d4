// Package bin implements the bit-precise binary buffer used as the wire form
// of the tydi stream encoding.
//
// A Buffer owns a byte sequence plus an exact bit length. Bits are addressed
// LSB-first within each byte, byte 0 first: bit k lives at bytes[k/8], bit
// position k%8. Buffers are immutable values; Concat and Split return new
// buffers and never modify their operands.
//
// # Bit Ordering
//
// Bit index 0 is the least significant bit of byte 0. String() prints the
// most significant bit first, so the first bit written appears rightmost:
//
//	a := bin.MustNew([]byte{0b101}, 3)
//	b := bin.MustNew([]byte{0b01000011}, 8)
//	a.Concat(b).String() // "0b01000011101", bytes [0x1D, 0x02]
//
// This is the only ordering convention under which Concat, Split and the
// fixed-width lifts round-trip; see the package tests.
package bin

import (
	"fmt"
	"strings"

	"github.com/arloliu/tydi/errs"
)

// Buffer is a bit-precise binary buffer: a byte sequence plus an exact bit
// length. The zero value is the empty buffer.
//
// Buffers are immutable once constructed. All operations return new buffers,
// which keeps the stream codec referentially transparent and makes buffers
// safe to share across goroutines.
type Buffer struct {
	data []byte
	bits int
}

// Empty returns a zero-length buffer.
func Empty() Buffer {
	return Buffer{}
}

// New creates a Buffer from a byte slice and an exact bit length.
//
// The byte slice is copied and normalized: spare whole bytes beyond the bit
// length are dropped and out-of-range bits in the final partial byte are
// masked to zero, so buffers with equal bit content compare equal.
//
// Parameters:
//   - data: the backing bytes, bit k at data[k/8] position k%8
//   - bits: the exact bit length
//
// Returns:
//   - Buffer: the constructed buffer
//   - error: ErrInvalidLength if bits is negative or exceeds 8*len(data)
func New(data []byte, bits int) (Buffer, error) {
	if bits < 0 || bits > 8*len(data) {
		return Buffer{}, fmt.Errorf("%w: %d bits cannot be stored in %d bytes", errs.ErrInvalidLength, bits, len(data))
	}

	return newBuffer(data, bits), nil
}

// MustNew is like New but panics on an invalid length. It is intended for
// constants and tests where the length is known to be valid.
func MustNew(data []byte, bits int) Buffer {
	b, err := New(data, bits)
	if err != nil {
		panic(err)
	}

	return b
}

// newBuffer copies and normalizes: exactly ceil(bits/8) bytes are kept and
// bits beyond the length are cleared.
func newBuffer(data []byte, bits int) Buffer {
	byteLen := (bits + 7) / 8
	owned := make([]byte, byteLen)
	copy(owned, data[:byteLen])
	if rem := bits % 8; rem != 0 {
		owned[byteLen-1] &= 0xFF >> (8 - rem)
	}

	return Buffer{data: owned, bits: bits}
}

// Len returns the length of the buffer in bits.
func (b Buffer) Len() int {
	return b.bits
}

// Bytes returns the backing bytes, ceil(Len()/8) of them. The caller must
// not modify the returned slice.
func (b Buffer) Bytes() []byte {
	return b.data
}

// Bit returns the bit at index i. Panics if i is out of range.
func (b Buffer) Bit(i int) bool {
	if i < 0 || i >= b.bits {
		panic(fmt.Sprintf("bin: bit index %d out of range [0, %d)", i, b.bits))
	}

	return b.data[i/8]&(1<<(i%8)) != 0
}

// Equal reports whether two buffers carry the same bit sequence.
func (b Buffer) Equal(o Buffer) bool {
	if b.bits != o.bits {
		return false
	}
	for i, v := range b.data {
		if o.data[i] != v {
			return false
		}
	}

	return true
}

// Concat returns a buffer whose bit sequence is exactly b's bits followed by
// o's bits, with length b.Len()+o.Len().
//
// When b is byte-aligned this is a plain byte append. Otherwise every byte of
// o is split across the boundary: the low bits of the current byte fill the
// remainder of b's last byte, and the high bits carry into a new byte. The
// final carry byte is only emitted when bits remain for it.
func (b Buffer) Concat(o Buffer) Buffer {
	// An empty left operand contributes nothing, including no implicit byte.
	if b.bits == 0 {
		return o
	}
	if o.bits == 0 {
		return b
	}

	newLen := b.bits + o.bits
	tailBits := b.bits % 8

	// Fast path: b is byte-aligned, append o's bytes directly.
	if tailBits == 0 {
		data := make([]byte, 0, len(b.data)+len(o.data))
		data = append(data, b.data...)
		data = append(data, o.data...)

		return Buffer{data: data, bits: newLen}
	}

	// tailSpace is the number of free bit positions in b's last byte.
	tailSpace := 8 - tailBits

	data := make([]byte, len(b.data), (newLen+7)/8)
	copy(data, b.data)

	for i, ob := range o.data {
		// The low tailSpace bits of ob complete the current last byte.
		data[len(data)-1] |= ob << tailBits

		// The remaining high bits carry into a new byte, but only when o
		// still has bits for it.
		if i < len(o.data)-1 || o.bits-i*8 > tailSpace {
			data = append(data, ob>>tailSpace)
		}
	}

	return Buffer{data: data, bits: newLen}
}

// Split returns (first, second) where first carries the low `at` bits of b
// and second carries the remaining b.Len()-at bits, such that
// first.Concat(second) equals b.
//
// first is built by copying whole bytes and masking the partial trailing
// byte. second is reassembled byte-by-byte from the high bits of the current
// source byte and the low bits of the next; source bytes past the end
// contribute zero.
//
// Returns ErrInvalidLength if at is negative or exceeds the buffer's length.
func (b Buffer) Split(at int) (Buffer, Buffer, error) {
	if at < 0 || at > b.bits {
		return Buffer{}, Buffer{}, fmt.Errorf("%w: split offset %d exceeds buffer length %d", errs.ErrInvalidLength, at, b.bits)
	}
	if at == 0 {
		return Empty(), b, nil
	}
	if at == b.bits {
		return b, Empty(), nil
	}

	fullBytes1 := at / 8
	bitOffset := at % 8

	// First part: whole bytes plus a masked partial byte.
	data1 := make([]byte, 0, fullBytes1+1)
	data1 = append(data1, b.data[:fullBytes1]...)
	if bitOffset > 0 {
		data1 = append(data1, b.data[fullBytes1]&(0xFF>>(8-bitOffset)))
	}
	first := Buffer{data: data1, bits: at}

	// Second part: shift-register reassembly across the bit offset.
	len2 := b.bits - at
	bytesToAdd := (len2 + 7) / 8
	start := fullBytes1
	if bitOffset == 0 {
		start--
	}

	data2 := make([]byte, 0, bytesToAdd)
	for i := start; i < start+bytesToAdd; i++ {
		cur := b.byteAt(i)
		next := b.byteAt(i + 1)

		var nb byte
		if bitOffset == 0 {
			nb = next
		} else {
			nb = cur>>bitOffset | next<<(8-bitOffset)
		}
		data2 = append(data2, nb)
	}
	second := newBuffer(data2, len2)

	return first, second, nil
}

// byteAt returns the i-th backing byte, or zero when i is out of range.
func (b Buffer) byteAt(i int) byte {
	if i < 0 || i >= len(b.data) {
		return 0
	}

	return b.data[i]
}

// Zero returns a buffer of `bits` zero bits. It is the payload substitute
// for packets with an absent payload.
func Zero(bits int) Buffer {
	if bits < 0 {
		panic(fmt.Sprintf("bin: negative bit length %d", bits))
	}

	return Buffer{data: make([]byte, (bits+7)/8), bits: bits}
}

// FromBools packs a boolean sequence into a buffer, one bit per flag, in
// insertion order: flags[0] becomes bit 0. The stream codec uses this to
// pack a packet's last vector.
func FromBools(flags []bool) Buffer {
	data := make([]byte, (len(flags)+7)/8)
	for i, f := range flags {
		if f {
			data[i/8] |= 1 << (i % 8)
		}
	}

	return Buffer{data: data, bits: len(flags)}
}

// Bools unpacks the buffer into a boolean sequence, one flag per bit, the
// inverse of FromBools.
func (b Buffer) Bools() []bool {
	flags := make([]bool, b.bits)
	for i := range flags {
		flags[i] = b.Bit(i)
	}

	return flags
}

// String renders the buffer as a binary literal, most significant bit first,
// so bit 0 appears rightmost. An empty buffer renders as "0b".
func (b Buffer) String() string {
	var sb strings.Builder
	sb.WriteString("0b")

	if b.bits == 0 {
		return sb.String()
	}

	fullBytes := b.bits / 8
	remBits := b.bits % 8

	// The partial high byte first, masked to its live bits.
	if remBits > 0 {
		mask := byte(0xFF >> (8 - remBits))
		fmt.Fprintf(&sb, "%0*b", remBits, b.data[fullBytes]&mask)
	}

	// Then the full bytes, highest first.
	for i := fullBytes - 1; i >= 0; i-- {
		fmt.Fprintf(&sb, "%08b", b.data[i])
	}

	return sb.String()
}

// GoString renders the buffer with its length, bytes and bit string, useful
// when debugging packet layouts with %#v.
func (b Buffer) GoString() string {
	hexParts := make([]string, len(b.data))
	for i, v := range b.data {
		hexParts[len(b.data)-1-i] = fmt.Sprintf("%02x", v)
	}

	return fmt.Sprintf("bin.Buffer{bits: %d, hex: %s, bin: %s}", b.bits, strings.Join(hexParts, " "), b.String())
}
