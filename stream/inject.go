package stream

import (
	"fmt"

	"github.com/arloliu/tydi/errs"
)

// Inject merges an already-decoded child stream into the chosen sequence
// field of its reconstructed parent stream. The two streams must have been
// produced from a common parent by drilling; alignment is re-established
// purely from the child's innermost last flags, never from indices.
//
// The merge is a two-cursor walk. For each parent packet, in order:
//   - A valid parent consumes child packets from the front, appending their
//     payloads to the field, until the innermost last flag fires. A child
//     group consisting of the single empty-group marker appends nothing.
//   - An invalid parent consumes exactly the one propagated placeholder that
//     drilling its absent group produced (an invalid packet whose innermost
//     flag is false).
//
// The parent stream is mutated in place through the field accessor; the
// child stream is only read. Exhausting the child while a parent still
// expects packets, leaving child packets unconsumed, or taking an absent
// payload where a real one is expected all return ErrMisalignedStream.
func Inject[P, C any](parents Stream[P], field func(*P) *[]C, children Stream[C]) error {
	pos := 0
	for i := range parents {
		if !parents[i].Valid {
			if err := consumePlaceholder(children, &pos); err != nil {
				return err
			}

			continue
		}

		dst := field(&parents[i].Data)
		err := consumeGroup(children, &pos, func(v C) {
			*dst = append(*dst, v)
		})
		if err != nil {
			return err
		}
	}

	return checkDrained(len(children), pos)
}

// InjectString is Inject specialized to text fields: each parent's child
// group is a code-unit sequence reassembled into a string before assignment.
func InjectString[P any](parents Stream[P], field func(*P) *string, children Stream[byte]) error {
	pos := 0
	for i := range parents {
		if !parents[i].Valid {
			if err := consumePlaceholder(children, &pos); err != nil {
				return err
			}

			continue
		}

		var units []byte
		err := consumeGroup(children, &pos, func(v byte) {
			units = append(units, v)
		})
		if err != nil {
			return err
		}

		*field(&parents[i].Data) = string(units)
	}

	return checkDrained(len(children), pos)
}

// consumeGroup takes child packets for one valid parent: payloads are handed
// to visit until the innermost last flag closes the group. A leading
// empty-group marker closes the group immediately with nothing visited.
func consumeGroup[C any](children Stream[C], pos *int, visit func(C)) error {
	visited := false
	for {
		c, err := take(children, pos)
		if err != nil {
			return err
		}

		if !c.Valid {
			if visited || !c.innermost() {
				return fmt.Errorf("%w: unexpected empty marker in child stream at packet %d", errs.ErrMisalignedStream, *pos-1)
			}

			return nil
		}

		visit(c.Data)
		visited = true

		if c.innermost() {
			return nil
		}
	}
}

// consumePlaceholder takes the single packet that drilling an absent parent
// group emitted: invalid, with a non-closing innermost flag.
func consumePlaceholder[C any](children Stream[C], pos *int) error {
	c, err := take(children, pos)
	if err != nil {
		return err
	}

	if c.Valid || c.innermost() {
		return fmt.Errorf("%w: expected placeholder for absent parent group at packet %d", errs.ErrMisalignedStream, *pos-1)
	}

	return nil
}

func take[C any](children Stream[C], pos *int) (Packet[C], error) {
	if *pos >= len(children) {
		return Packet[C]{}, fmt.Errorf("%w: child stream exhausted after %d packets", errs.ErrMisalignedStream, len(children))
	}

	c := children[*pos]
	*pos++

	return c, nil
}

func checkDrained(total, pos int) error {
	if pos != total {
		return fmt.Errorf("%w: %d unconsumed child packets", errs.ErrMisalignedStream, total-pos)
	}

	return nil
}
