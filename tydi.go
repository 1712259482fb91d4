// Package tydi encodes arbitrarily nested, variable-length data into flat
// sequences of fixed-width packets, each tagged with a small per-dimension
// end-of-group bitmask, so the nested structure can be reconstructed without
// length prefixes or pointer metadata. This is the encoding used by streaming
// hardware and dataflow interfaces, where data arrives lane-by-lane with a
// "last" signal per nesting level instead of an in-band length field.
//
// # Core Concepts
//
//   - bin.Buffer: a bit-precise binary buffer supporting arbitrary-offset
//     concatenation and splitting, and lifts to/from fixed-width native values
//   - stream.Packet / stream.Stream: an optional payload plus a hierarchical
//     "last" vector, one boolean per open nesting dimension
//   - stream.Drill: expand a stream by one dimension via a per-element
//     expansion function
//   - stream.Vectorize / VectorizeInner: collapse the innermost dimension
//     back into concrete containers
//   - stream.Inject / InjectString: merge a separately decoded child stream
//     into the corresponding field of its reconstructed parent
//   - codec: the one-packet binary layout (strobe bit, last bits, payload
//     bits) lifted over whole streams
//   - frame: a storage format carrying a field's out-of-band parameters
//     (hashed name, depth, width) alongside its packets
//
// # Basic Usage
//
// Encoding one variable-length field of a record sequence:
//
//	posts := stream.Convert(records)
//	titles := stream.DrillString(posts, func(p Post) string { return p.Title })
//
//	spec := frame.NewFieldSpec("posts.title", titles.Depth(), 8)
//	data, _ := tydi.EncodeField(spec, titles, codec.ByteEncoder)
//
// Decoding reverses: per-field frames are decoded back into streams, child
// streams are injected into their parents, and list dimensions are collapsed
// with Vectorize until concrete values remain:
//
//	titles, _ := tydi.DecodeField(data, spec, codec.ByteDecoder)
//	_ = stream.InjectString(posts, func(p *Post) *string { return &p.Title }, titles)
//
// All operations are pure, synchronous transformations over immutable values;
// only Inject mutates, and only the caller-owned parent stream passed to it.
package tydi

import (
	"github.com/arloliu/tydi/bin"
	"github.com/arloliu/tydi/codec"
	"github.com/arloliu/tydi/frame"
	"github.com/arloliu/tydi/internal/hash"
	"github.com/arloliu/tydi/stream"
)

// FieldID converts a field name to its 64-bit hash identifier.
//
// Frames identify fields by xxHash64 of the name rather than the name
// itself, keeping headers fixed-size. The hash is deterministic, so the same
// name always yields the same ID on both sides of the wire.
//
// Example:
//
//	titleID := tydi.FieldID("posts.title")
func FieldID(name string) uint64 {
	return hash.ID(name)
}

// EncodeField encodes a whole field stream into a frame: every packet is
// serialized through the codec with the spec's declared payload width, and
// the resulting buffers are framed with the spec's parameters.
//
// Parameters:
//   - spec: the field's out-of-band parameters; spec.Width is the payload
//     width handed to the codec
//   - s: the field stream, depth spec.Depth
//   - enc: the payload projection for the field's element type
//   - opts: optional frame configuration (byte order)
//
// Returns:
//   - []byte: the encoded frame
//   - error: ErrPayloadWidthMismatch if a payload does not encode to
//     spec.Width bits, or a frame assembly error
func EncodeField[T any](spec frame.FieldSpec, s stream.Stream[T], enc codec.EncodeFunc[T], opts ...frame.Option) ([]byte, error) {
	bufs, err := codec.Finish(s, int(spec.Width), enc)
	if err != nil {
		return nil, err
	}

	return frame.Encode(spec, bufs, opts...)
}

// DecodeField decodes a frame back into a field stream, the inverse of
// EncodeField. The frame header must agree with the given spec.
func DecodeField[T any](data []byte, spec frame.FieldSpec, dec codec.DecodeFunc[T]) (stream.Stream[T], error) {
	bufs, err := frame.Decode(data, spec)
	if err != nil {
		return nil, err
	}

	return codec.PacketsFromBinaries(bufs, int(spec.Depth), int(spec.Width), dec)
}

// FixedFieldSpec builds a FieldSpec for a field whose payload is a native
// fixed-width numeric type, deriving the width from the type.
//
// Example:
//
//	spec := tydi.FixedFieldSpec[uint32]("posts.likes", 1)
func FixedFieldSpec[T bin.Fixed](name string, depth int) frame.FieldSpec {
	return frame.NewFieldSpec(name, depth, bin.Width[T]())
}

// TextFieldSpec builds a FieldSpec for a text field drilled down to 8-bit
// code units at the given depth.
func TextFieldSpec(name string, depth int) frame.FieldSpec {
	return frame.NewFieldSpec(name, depth, 8)
}
