package frame

import (
	"fmt"

	"github.com/arloliu/tydi/bin"
	"github.com/arloliu/tydi/endian"
	"github.com/arloliu/tydi/errs"
	"github.com/arloliu/tydi/internal/options"
	"github.com/arloliu/tydi/internal/pool"
)

// Option configures a frame Encoder.
type Option = options.Option[*Encoder]

// WithLittleEndian sets the encoder to write header fields in little-endian
// byte order. This is the default.
func WithLittleEndian() Option {
	return options.NoError(func(e *Encoder) {
		e.engine = endian.GetLittleEndianEngine()
	})
}

// WithBigEndian sets the encoder to write header fields in big-endian byte
// order, for interoperability with big-endian consumers. The packet payload
// bytes are byte-order free; only the header is affected.
func WithBigEndian() Option {
	return options.NoError(func(e *Encoder) {
		e.engine = endian.GetBigEndianEngine()
	})
}

// Encoder accumulates the packet buffers of one field stream and assembles
// them into a frame.
//
// The encoder borrows a pooled byte buffer; call Finish when done to return
// it. A typical session:
//
//	encoder, err := frame.NewEncoder(spec)
//	defer encoder.Finish()
//
//	for _, b := range bufs {
//	    if err := encoder.WritePacket(b); err != nil { ... }
//	}
//	data := encoder.Bytes() // copy before Finish
type Encoder struct {
	spec   FieldSpec
	engine endian.EndianEngine
	buf    *pool.ByteBuffer
	count  int
}

// NewEncoder creates a frame encoder for one field.
//
// Parameters:
//   - spec: the field's out-of-band parameters (ID, depth, width)
//   - opts: optional configuration (byte order)
//
// Returns:
//   - *Encoder: the created encoder
//   - error: an error if an option is invalid
func NewEncoder(spec FieldSpec, opts ...Option) (*Encoder, error) {
	e := &Encoder{
		spec:   spec,
		engine: endian.GetLittleEndianEngine(),
		buf:    pool.GetFrameBuffer(),
	}

	if err := options.Apply(e, opts...); err != nil {
		return nil, err
	}

	return e, nil
}

// WritePacket appends one encoded packet to the frame, padded to the field's
// byte stride.
//
// Returns ErrInvalidLength if the buffer's bit length does not equal the
// field's packet bit length.
func (e *Encoder) WritePacket(b bin.Buffer) error {
	if e.buf == nil {
		panic("encoder already finished - cannot write packets after Finish()")
	}

	if b.Len() != e.spec.PacketBits() {
		return fmt.Errorf("%w: packet is %d bits, field %q requires %d",
			errs.ErrInvalidLength, b.Len(), e.spec.Name, e.spec.PacketBits())
	}

	e.buf.Grow(e.spec.PacketSize())
	e.buf.MustWrite(b.Bytes())
	e.count++

	return nil
}

// WriteAll appends a sequence of encoded packets in order.
func (e *Encoder) WriteAll(bufs []bin.Buffer) error {
	if e.buf == nil {
		panic("encoder already finished - cannot write packets after Finish()")
	}

	e.buf.Grow(len(bufs) * e.spec.PacketSize())
	for i, b := range bufs {
		if err := e.WritePacket(b); err != nil {
			return fmt.Errorf("packet %d: %w", i, err)
		}
	}

	return nil
}

// Count returns the number of packets written so far.
func (e *Encoder) Count() int {
	return e.count
}

// Bytes assembles and returns the complete frame: header followed by the
// packet payload. The returned slice is newly allocated and owned by the
// caller; the encoder can keep accepting packets afterwards.
func (e *Encoder) Bytes() []byte {
	if e.buf == nil {
		panic("encoder already finished - cannot access bytes after Finish()")
	}

	out := make([]byte, 0, HeaderSize+e.buf.Len())
	out = e.engine.AppendUint16(out, MagicFieldV1)
	out = append(out, FormatVersion, e.spec.Depth)
	out = e.engine.AppendUint16(out, e.spec.Width)
	out = append(out, 0, 0) // reserved
	out = e.engine.AppendUint64(out, e.spec.ID)
	out = e.engine.AppendUint32(out, uint32(e.count)) //nolint:gosec // count bounded by slice length
	out = append(out, e.buf.Bytes()...)

	return out
}

// Finish returns the internal buffer to the pool. The encoder becomes
// unusable afterwards; create a new one to encode more frames.
func (e *Encoder) Finish() {
	if e.buf == nil {
		return // Already finished
	}

	pool.PutFrameBuffer(e.buf)
	e.buf = nil
}

// Encode assembles a whole field stream's packet buffers into a frame in one
// call. It is the common path for callers that already hold the finished
// buffer sequence.
func Encode(spec FieldSpec, bufs []bin.Buffer, opts ...Option) ([]byte, error) {
	encoder, err := NewEncoder(spec, opts...)
	if err != nil {
		return nil, err
	}
	defer encoder.Finish()

	if err := encoder.WriteAll(bufs); err != nil {
		return nil, err
	}

	return encoder.Bytes(), nil
}
