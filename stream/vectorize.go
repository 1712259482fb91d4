package stream

// Vectorize collapses the innermost dimension of a stream, grouping its
// packets into sub-streams one dimension shallower.
//
// Packets are accumulated into a pending group with their innermost flag
// popped off. An empty-group marker (an invalid packet whose popped flag is
// true with nothing accumulated yet) closes its group without contributing
// an element. A placeholder (an invalid packet whose popped flag is false
// with nothing accumulated yet) passes through as an invalid packet one
// dimension shallower, so streams drilled from absent parents collapse back
// to the placeholders they came from. Whenever the popped flag is true the
// pending group (possibly empty) is emitted and a new one starts.
//
// The emitted group packet carries the closing packet's popped last vector,
// so outer dimension flags survive the collapse.
//
// Panics if called on a depth-0 stream.
func Vectorize[T any](s Stream[T]) Stream[Stream[T]] {
	var out Stream[Stream[T]]
	var pending Stream[T]

	for _, p := range s {
		checkDepth(p)
		inner, end := popFlag(p.Last)

		if !p.Valid && len(pending) == 0 {
			if !end {
				out = append(out, Packet[Stream[T]]{Valid: false, Last: inner})

				continue
			}
		} else {
			q := p
			q.Last = inner
			pending = append(pending, q)
		}

		if end {
			out = append(out, Packet[Stream[T]]{Data: pending, Valid: true, Last: inner})
			pending = nil
		}
	}

	return out
}

// VectorizeInner collapses the innermost dimension like Vectorize, but
// materializes each group directly as a single packet carrying the group's
// payload values as a concrete slice. Use it when the reconstruction target
// is a plain list field rather than another stream.
//
// Absent payloads contribute nothing to the materialized slice; an empty
// group materializes as a present, zero-length slice. Placeholders pass
// through invalid, as in Vectorize.
//
// Panics if called on a depth-0 stream.
func VectorizeInner[T any](s Stream[T]) Stream[[]T] {
	var out Stream[[]T]
	pending := []T{}

	for _, p := range s {
		checkDepth(p)
		inner, end := popFlag(p.Last)

		if !p.Valid && !end && len(pending) == 0 {
			out = append(out, Packet[[]T]{Valid: false, Last: inner})

			continue
		}

		if p.Valid {
			pending = append(pending, p.Data)
		}

		if end {
			out = append(out, Packet[[]T]{Data: pending, Valid: true, Last: inner})
			pending = []T{}
		}
	}

	return out
}

// VectorizeString is VectorizeInner specialized to code-unit streams: each
// innermost group materializes as a text value.
func VectorizeString(s Stream[byte]) Stream[string] {
	var out Stream[string]
	var pending []byte

	for _, p := range s {
		checkDepth(p)
		inner, end := popFlag(p.Last)

		if !p.Valid && !end && len(pending) == 0 {
			out = append(out, Packet[string]{Valid: false, Last: inner})

			continue
		}

		if p.Valid {
			pending = append(pending, p.Data)
		}

		if end {
			out = append(out, Packet[string]{Data: string(pending), Valid: true, Last: inner})
			pending = nil
		}
	}

	return out
}

func checkDepth[T any](p Packet[T]) {
	if len(p.Last) == 0 {
		panic("stream: cannot vectorize a depth-0 stream")
	}
}
