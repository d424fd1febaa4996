// Package nonempty provides containers that are proven, by their type, to
// hold at least one element.
//
// A plain container is classified through MaybeEmpty, converted at a
// boundary (TryFromMaybeEmpty, TryFromSlice, TryFromSeq) and then read
// through total accessors: First, Last, SplitFirst and friends never need
// an emptiness check. Derived values such as chunks and iterators are proven
// non-empty arithmetically instead of being re-scanned.
//
// The unchecked constructors trust the caller. Whether that trust is
// verified depends on the safety backend linked into the build; see package
// safety.
package nonempty

import (
	"errors"
	"fmt"

	"github.com/sooomo/nonempty/safety"
)

// ErrEmpty is the sentinel wrapped by EmptyError.
var ErrEmpty = errors.New("container is empty")

// EmptyError rejects an empty container at a conversion boundary. Items is
// the container exactly as it was offered.
type EmptyError[C any] struct {
	Items C
}

func (e *EmptyError[C]) Error() string {
	return fmt.Sprintf("nonempty: cannot convert %T: %s", e.Items, ErrEmpty)
}

// Unwrap returns ErrEmpty for errors.Is.
func (e *EmptyError[C]) Unwrap() error { return ErrEmpty }

// NonEmpty wraps a container that holds at least one element. It carries
// nothing besides the container: its existence is the proof.
//
// The wrapper offers no operation that can shrink the container. Wrapping
// is only sound for containers whose length is part of the value (slices,
// strings, arrays); a container reached through a pointer or a map can be
// emptied behind the wrapper's back.
//
// The zero value is not a valid NonEmpty.
type NonEmpty[C MaybeEmpty] struct {
	items C
}

// TryFromMaybeEmpty wraps items without copying them. An empty container is
// returned unchanged inside an *EmptyError[C].
func TryFromMaybeEmpty[C MaybeEmpty](items C) (NonEmpty[C], error) {
	if _, ok := items.Cardinality(); !ok {
		return NonEmpty[C]{}, &EmptyError[C]{Items: items}
	}
	return NonEmpty[C]{items: items}, nil
}

// FromMaybeEmptyUnchecked wraps items, which the caller has already proven
// to be non-empty.
func FromMaybeEmptyUnchecked[C MaybeEmpty](items C) NonEmpty[C] {
	safety.RequireFunc(func() bool {
		_, ok := items.Cardinality()
		return ok
	}, safety.ContractNonEmpty)
	return NonEmpty[C]{items: items}
}

// AsInner returns the wrapped container without re-validating it.
func (w NonEmpty[C]) AsInner() C { return w.items }

// IntoInner dissolves the wrapper. It is AsInner under the name used where
// the wrapper is no longer needed.
func (w NonEmpty[C]) IntoInner() C { return w.items }

func (w NonEmpty[C]) Cardinality() (Cardinality, bool) {
	c, ok := w.items.Cardinality()
	return safety.UnwrapOption(c, ok), true
}
