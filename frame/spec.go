// Package frame serializes a whole field stream's packet buffers into a
// single self-checking byte sequence, and reads them back.
//
// The one-packet bit layout (strobe, last bits, payload bits) deliberately
// carries no self-description: the dimension depth and payload width are
// out-of-band parameters agreed per field. A frame is where those parameters
// live at rest. Its fixed-size header records the field's hashed identifier,
// depth, width and packet count, followed by the packets at a fixed byte
// stride.
//
// A frame is a storage convenience around the structural encoding contract;
// it performs no compression and defines no network protocol.
package frame

import (
	"fmt"

	"github.com/arloliu/tydi/errs"
	"github.com/arloliu/tydi/internal/hash"
)

const (
	// MagicFieldV1 is the version 1 magic number of the field frame format.
	// Its two bytes differ, so a decoder can recover the header byte order
	// from the magic alone.
	MagicFieldV1 uint16 = 0x7479

	// FormatVersion is the current frame format version.
	FormatVersion uint8 = 1

	// HeaderSize is the fixed frame header size in bytes.
	HeaderSize = 20

	// header field offsets
	magicOffset   = 0
	versionOffset = 2
	depthOffset   = 3
	widthOffset   = 4
	fieldIDOffset = 8
	countOffset   = 16
)

// FieldSpec declares the out-of-band parameters of one encoded field: its
// name, the 64-bit identifier derived from the name, the dimension depth of
// its stream, and its fixed payload width in bits.
//
// Encoder and decoder must agree on the same spec per field; the spec is
// what makes the non-self-describing packet layout decodable.
type FieldSpec struct {
	Name  string
	ID    uint64
	Depth uint8
	Width uint16
}

// NewFieldSpec builds a FieldSpec for a named field, deriving the ID from
// the name with xxHash64.
//
// Parameters:
//   - name: the field name, e.g. "posts.tags"
//   - depth: the dimension depth of the field's stream
//   - width: the fixed payload width in bits
func NewFieldSpec(name string, depth int, width int) FieldSpec {
	if depth < 0 || depth > 255 {
		panic(fmt.Sprintf("frame: depth %d out of range [0, 255]", depth))
	}
	if width < 0 || width > 65535 {
		panic(fmt.Sprintf("frame: width %d out of range [0, 65535]", width))
	}

	return FieldSpec{
		Name:  name,
		ID:    hash.ID(name),
		Depth: uint8(depth),
		Width: uint16(width),
	}
}

// PacketBits returns the bit length of one encoded packet of this field:
// the strobe bit, one last bit per dimension, and the payload bits.
func (s FieldSpec) PacketBits() int {
	return 1 + int(s.Depth) + int(s.Width)
}

// PacketSize returns the byte stride of one packet inside a frame. Packets
// are padded to whole bytes at rest.
func (s FieldSpec) PacketSize() int {
	return (s.PacketBits() + 7) / 8
}

// matches reports whether a decoded header agrees with this spec.
func (s FieldSpec) matches(id uint64, depth uint8, width uint16) error {
	if id != s.ID || depth != s.Depth || width != s.Width {
		return fmt.Errorf("%w: header has id=0x%016x depth=%d width=%d, spec %q declares id=0x%016x depth=%d width=%d",
			errs.ErrFieldMismatch, id, depth, width, s.Name, s.ID, s.Depth, s.Width)
	}

	return nil
}
