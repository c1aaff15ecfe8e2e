// Package handle provides opaque, type-tagged identifiers issued by a
// monotonic counter. The Tag parameter keeps handle families apart at compile
// time even though every handle is a plain integer underneath.
package handle

import (
	"cmp"
	"fmt"
)

// Handle is an opaque identity tagged with a marker type.
// Handles are comparable and can be used as map keys.
type Handle[Tag any] struct {
	raw uint64
}

// Raw returns the underlying integer.
func (h Handle[Tag]) Raw() uint64 {
	return h.raw
}

// Compare returns -1, 0 or +1 following the underlying integers.
func (h Handle[Tag]) Compare(other Handle[Tag]) int {
	return cmp.Compare(h.raw, other.raw)
}

// Less reports whether h was issued before other by the same generator.
func (h Handle[Tag]) Less(other Handle[Tag]) bool {
	return h.raw < other.raw
}

func (h Handle[Tag]) String() string {
	return fmt.Sprintf("#%d", h.raw)
}

// Generator issues handles 0, 1, 2, ... and never reuses a value.
// The zero value is ready to use. A Generator is not safe for concurrent use.
type Generator[Tag any] struct {
	counter uint64
}

// Next returns a handle strictly greater than every handle issued before.
func (g *Generator[Tag]) Next() Handle[Tag] {
	h := Handle[Tag]{raw: g.counter}
	g.counter++
	return h
}
