package stream

// Drill expands a stream by one nesting dimension: each packet's payload is
// replaced by the flattened output of f over that payload, and every emitted
// packet gains one more last flag for the new (innermost) dimension.
//
// For each input packet, in order:
//   - An invalid packet (absent group) propagates as exactly one invalid
//     packet whose new dimension flag is false; its existing flags are kept
//     unchanged.
//   - A payload for which f yields nothing emits exactly one invalid packet
//     whose new dimension flag is true, the empty-group marker.
//   - Otherwise one packet is emitted per item of f's output, all with the
//     new dimension flag false except the final item of the group.
//
// The outer dimension flags are copied unchanged onto every emitted packet,
// which is what keeps sibling streams drilled from the same parent aligned.
func Drill[T, B any](s Stream[T], f func(T) []B) Stream[B] {
	out := make(Stream[B], 0, len(s))
	for _, p := range s {
		if !p.Valid {
			out = append(out, Packet[B]{Valid: false, Last: appendFlag(p.Last, false)})

			continue
		}

		items := f(p.Data)
		if len(items) == 0 {
			out = append(out, Packet[B]{Valid: false, Last: appendFlag(p.Last, true)})

			continue
		}

		for i, item := range items {
			out = append(out, Packet[B]{
				Data:  item,
				Valid: true,
				Last:  appendFlag(p.Last, i == len(items)-1),
			})
		}
	}

	return out
}

// DrillString is Drill specialized to a text field: the stream is expanded by
// one dimension whose elements are the field's code units.
func DrillString[T any](s Stream[T], f func(T) string) Stream[byte] {
	return Drill(s, func(v T) []byte { return []byte(f(v)) })
}
