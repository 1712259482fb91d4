// Package stream implements the element/stream abstraction of the tydi
// encoding and the dimension algebra around it: drilling a stream one nesting
// dimension deeper, vectorizing the innermost dimension back into concrete
// containers, and injecting a separately decoded child stream into the
// corresponding field of its reconstructed parent.
//
// A Stream is an ordered sequence of packets. Each packet carries an optional
// payload plus a "last" vector with one boolean per currently open nesting
// dimension; dimension 0 is the outermost group and the highest index the
// most recently opened. The last vectors replace in-band length prefixes:
// nested structure is reconstructed purely from group-end flags, which is how
// streaming hardware interfaces signal structure lane-by-lane.
//
// Streams produced from the same parent by drilling different fields are
// aligned: their group boundaries coincide positionally at every shared
// dimension. Inject relies on that alignment instead of indices.
//
// All operations are pure, synchronous transformations over immutable inputs;
// Inject is the only one that mutates, and only the caller-owned parent
// stream passed to it.
package stream

// Packet is a single logical stream element: an optional payload plus an
// ordered last vector, one entry per open nesting dimension.
//
// Valid=false is the empty-group sentinel: the packet marks a position whose
// nested group is absent, which is distinct from a present-but-zero payload.
// Last[i] is true iff this packet is the final element in dimension i's
// current group.
type Packet[T any] struct {
	Data  T
	Valid bool
	Last  []bool
}

// Depth returns the number of open nesting dimensions of the packet.
func (p Packet[T]) Depth() int {
	return len(p.Last)
}

// innermost reports the last flag of the most recently opened dimension.
func (p Packet[T]) innermost() bool {
	return p.Last[len(p.Last)-1]
}

// Stream is an ordered sequence of packets, conceptually a sequence of
// sequences of ... sequences of T, nested to the depth of the last vectors.
type Stream[T any] []Packet[T]

// Depth returns the dimension depth of the stream, taken from its first
// packet. An empty stream has depth 0.
func (s Stream[T]) Depth() int {
	if len(s) == 0 {
		return 0
	}

	return s[0].Depth()
}

// Convert turns a flat sequence of values into a depth-1 stream: one valid
// packet per value, with the last flag set on the final one. An empty input
// yields the single empty-group marker, an invalid packet whose last flag is
// true.
func Convert[T any](values []T) Stream[T] {
	if len(values) == 0 {
		return Stream[T]{{Valid: false, Last: []bool{true}}}
	}

	out := make(Stream[T], 0, len(values))
	for i, v := range values {
		out = append(out, Packet[T]{Data: v, Valid: true, Last: []bool{i == len(values)-1}})
	}

	return out
}

// ConvertString turns a text value into a depth-1 stream of its code units,
// one byte per packet. The empty string yields the empty-group marker.
func ConvertString(s string) Stream[byte] {
	return Convert([]byte(s))
}

// appendFlag returns a copy of the last vector with one more dimension flag
// appended. Copying keeps packets free of shared mutable state.
func appendFlag(last []bool, flag bool) []bool {
	out := make([]bool, len(last)+1)
	copy(out, last)
	out[len(last)] = flag

	return out
}

// popFlag returns a copy of the last vector without its innermost flag,
// together with the popped flag.
func popFlag(last []bool) ([]bool, bool) {
	n := len(last)
	out := make([]bool, n-1)
	copy(out, last[:n-1])

	return out, last[n-1]
}
