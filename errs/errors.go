// Package errs defines the sentinel errors shared across the tydi packages.
//
// All errors in this package represent structural contract violations: a
// buffer whose declared bit length does not fit its storage, a payload whose
// binary form does not match its declared width, or a pair of streams that
// were not produced from a common parent. None of them are transient; there
// is no retry policy. Callers are expected to match them with errors.Is and
// fix the mismatched field declarations or drill/inject pairing.
package errs

import "errors"

var (
	// ErrInvalidLength indicates that a buffer's declared bit length exceeds
	// its byte storage, or that a split offset exceeds the buffer's length.
	ErrInvalidLength = errors.New("invalid bit length")

	// ErrPayloadWidthMismatch indicates that a payload's fixed-width binary
	// form does not match the width declared for its field.
	ErrPayloadWidthMismatch = errors.New("payload width mismatch")

	// ErrMisalignedStream indicates that a child stream ran out of packets
	// while its parent still expected more, that packets remained after all
	// parents were served, or that an empty-group marker appeared where a
	// payload was expected. The two streams were not produced from a common
	// parent and must not be silently patched over.
	ErrMisalignedStream = errors.New("misaligned stream")

	// ErrInvalidMagicNumber indicates that a field frame does not start with
	// the expected magic number in either byte order.
	ErrInvalidMagicNumber = errors.New("invalid magic number")

	// ErrInvalidHeaderSize indicates that a field frame is too short to
	// contain a complete header.
	ErrInvalidHeaderSize = errors.New("invalid header size")

	// ErrFieldMismatch indicates that a field frame's header does not match
	// the field spec the decoder was given (ID, depth, or width differ).
	ErrFieldMismatch = errors.New("field spec mismatch")

	// ErrInvalidPacketCount indicates that a field frame's payload size does
	// not agree with the packet count declared in its header.
	ErrInvalidPacketCount = errors.New("invalid packet count")
)
