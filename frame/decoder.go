package frame

import (
	"fmt"

	"github.com/arloliu/tydi/bin"
	"github.com/arloliu/tydi/endian"
	"github.com/arloliu/tydi/errs"
)

// Decode parses a frame produced by Encode and returns its packet buffers,
// each carrying exactly the field's packet bit length.
//
// The header byte order is recovered from the magic number, so frames from
// big-endian producers decode without configuration. The header must agree
// with the given spec (ID, depth, width); a mismatch means the caller paired
// the frame with the wrong field declaration.
//
// Returns:
//   - []bin.Buffer: the packet buffers, in stream order
//   - error: ErrInvalidHeaderSize, ErrInvalidMagicNumber, ErrFieldMismatch,
//     or ErrInvalidPacketCount on a malformed or mispaired frame
func Decode(data []byte, spec FieldSpec) ([]bin.Buffer, error) {
	if len(data) < HeaderSize {
		return nil, fmt.Errorf("%w: frame is %d bytes, header requires %d",
			errs.ErrInvalidHeaderSize, len(data), HeaderSize)
	}

	engine, err := detectEngine(data)
	if err != nil {
		return nil, err
	}

	if v := data[versionOffset]; v != FormatVersion {
		return nil, fmt.Errorf("%w: unsupported format version %d", errs.ErrInvalidMagicNumber, v)
	}

	depth := data[depthOffset]
	width := engine.Uint16(data[widthOffset : widthOffset+2])
	fieldID := engine.Uint64(data[fieldIDOffset : fieldIDOffset+8])
	count := int(engine.Uint32(data[countOffset : countOffset+4]))

	if err := spec.matches(fieldID, depth, width); err != nil {
		return nil, err
	}

	payload := data[HeaderSize:]
	if len(payload) != count*spec.PacketSize() {
		return nil, fmt.Errorf("%w: header declares %d packets of %d bytes, payload is %d bytes",
			errs.ErrInvalidPacketCount, count, spec.PacketSize(), len(payload))
	}

	bufs := make([]bin.Buffer, 0, count)
	stride := spec.PacketSize()
	for i := 0; i < count; i++ {
		chunk := payload[i*stride : (i+1)*stride]
		b, err := bin.New(chunk, spec.PacketBits())
		if err != nil {
			return nil, err
		}
		bufs = append(bufs, b)
	}

	return bufs, nil
}

// detectEngine recovers the header byte order from the magic number. The two
// magic bytes differ, so exactly one order can match.
func detectEngine(data []byte) (endian.EndianEngine, error) {
	le := endian.GetLittleEndianEngine()
	if le.Uint16(data[magicOffset:magicOffset+2]) == MagicFieldV1 {
		return le, nil
	}

	be := endian.GetBigEndianEngine()
	if be.Uint16(data[magicOffset:magicOffset+2]) == MagicFieldV1 {
		return be, nil
	}

	return nil, fmt.Errorf("%w: got 0x%02x%02x, want 0x%04x",
		errs.ErrInvalidMagicNumber, data[magicOffset], data[magicOffset+1], MagicFieldV1)
}
