// Package headers is the ordered (name, value) store used for both a
// message's headers and its trailers. It keeps wire order and
// additionally exposes a flat alternating []string view, the shape
// on_headers/on_headers_complete callbacks receive.
package headers

import (
	"iter"

	"github.com/indigo-web/utils/strcomp"
)

// Pair is a single (name, value) entry, preserving wire case.
type Pair struct {
	Name, Value string
}

// List is an ordered multimap of header/trailer pairs. Lookups are a
// linear scan rather than a map: header counts are small enough that
// this beats map overhead and keeps insertion order for free.
type List struct {
	pairs []Pair
	flat  []string
}

func New() *List {
	return new(List)
}

func NewPrealloc(n int) *List {
	return &List{pairs: make([]Pair, 0, n)}
}

// Add appends a new pair, keeping any previous entries under the same
// name (headers may legally repeat; Value returns the first one seen).
func (l *List) Add(name, value string) *List {
	l.pairs = append(l.pairs, Pair{Name: name, Value: value})
	return l
}

// Value returns the first value stored under name, case-insensitively,
// or "" if absent.
func (l *List) Value(name string) string {
	return l.ValueOr(name, "")
}

func (l *List) ValueOr(name, or string) string {
	for _, p := range l.pairs {
		if strcomp.EqualFold(p.Name, name) {
			return p.Value
		}
	}

	return or
}

// ExtendLast appends suffix to the value of the most recently added
// pair, inserting a single space separator when that value is
// non-empty. It is how a header continuation line (one starting with
// space or tab) gets folded into the field it continues.
func (l *List) ExtendLast(suffix string) {
	if len(l.pairs) == 0 {
		return
	}

	last := &l.pairs[len(l.pairs)-1]
	if last.Value == "" {
		last.Value = suffix
		return
	}

	last.Value = last.Value + " " + suffix
}

// Has reports whether name was seen at least once.
func (l *List) Has(name string) bool {
	for _, p := range l.pairs {
		if strcomp.EqualFold(p.Name, name) {
			return true
		}
	}

	return false
}

// Pairs exposes the underlying slice in wire order for callers, such as
// the framing resolver, that need direct field access rather than the
// iterator shape. Callers must not mutate the returned slice.
func (l *List) Pairs() []Pair {
	return l.pairs
}

// Len returns the number of stored pairs.
func (l *List) Len() int {
	return len(l.pairs)
}

// Flat renders the list as an alternating name, value, name, value...
// sequence, the shape the on_headers/on_headers_complete callbacks
// receive. The backing slice is reused across calls; callers that need
// to retain it must copy.
func (l *List) Flat() []string {
	if l.flat == nil {
		l.flat = make([]string, 0, 2*len(l.pairs))
	}

	l.flat = l.flat[:0]

	for _, p := range l.pairs {
		l.flat = append(l.flat, p.Name, p.Value)
	}

	return l.flat
}

// Iter returns an iterator over the pairs in wire order, using the
// stdlib iter.Seq2 shape.
func (l *List) Iter() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for _, p := range l.pairs {
			if !yield(p.Name, p.Value) {
				return
			}
		}
	}
}

// Reset clears the list while keeping the underlying array, so the next
// message's headers are appended into already-grown capacity.
func (l *List) Reset() {
	l.pairs = l.pairs[:0]
}
