package nonempty

import (
	"cmp"
	"iter"
	"slices"

	"github.com/sooomo/nonempty/safety"
)

// Iterator1 is a sequence that yields at least one value before it ends, or
// never ends.
//
// An Iterator1 built by TryFromSeq is single-pass; one built from a slice
// can be ranged over repeatedly. Methods that consume the sequence say so.
type Iterator1[T any] struct {
	seq iter.Seq[T]
}

// FromSeqUnchecked wraps seq, which the caller has proven to yield at least
// one value. A sequence cannot be inspected without running it, so the
// precondition is verified lazily by the total accessors.
func FromSeqUnchecked[T any](seq iter.Seq[T]) Iterator1[T] {
	return Iterator1[T]{seq: seq}
}

// TryFromSeq peeks the first value of seq. If there is none, seq is
// returned inside an *EmptyError. Otherwise the peeked value is reattached
// in front of the remainder.
//
// The result holds seq open until it is ranged over; range it, even if only
// to break immediately, to release it. It is single-pass: ranging it again
// yields nothing, so a second call to a total accessor violates the
// non-empty contract.
func TryFromSeq[T any](seq iter.Seq[T]) (Iterator1[T], error) {
	next, stop := iter.Pull(seq)
	head, ok := next()
	if !ok {
		stop()
		return Iterator1[T]{}, &EmptyError[iter.Seq[T]]{Items: seq}
	}

	consumed := false
	return FromSeqUnchecked(func(yield func(T) bool) {
		if consumed {
			return
		}
		consumed = true
		defer stop()
		if !yield(head) {
			return
		}
		for {
			v, ok := next()
			if !ok || !yield(v) {
				return
			}
		}
	}), nil
}

// Seq reverts to a plain sequence.
func (it Iterator1[T]) Seq() iter.Seq[T] { return it.values() }

// values keeps the zero Iterator1 rangeable so that its accessors fail on
// the non-empty contract rather than on a nil function.
func (it Iterator1[T]) values() iter.Seq[T] {
	if it.seq == nil {
		return func(func(T) bool) {}
	}
	return it.seq
}

// First consumes the sequence up to its first value.
func (it Iterator1[T]) First() T {
	for v := range it.values() {
		return v
	}
	safety.Unreachable(safety.ContractNonEmpty)
	var zero T
	return zero
}

// Split returns the first value and a plain sequence over the rest.
//
// The rest holds the underlying iteration open until it is ranged over;
// range it, even if only to break immediately, to release it.
func (it Iterator1[T]) Split() (T, iter.Seq[T]) {
	next, stop := iter.Pull(it.values())
	head, ok := next()
	if !ok {
		stop()
	}

	rest := func(yield func(T) bool) {
		defer stop()
		for {
			v, ok := next()
			if !ok || !yield(v) {
				return
			}
		}
	}
	return safety.UnwrapOption(head, ok), rest
}

// Last consumes the whole sequence.
func (it Iterator1[T]) Last() T {
	var (
		last T
		ok   bool
	)
	for v := range it.values() {
		last, ok = v, true
	}
	return safety.UnwrapOption(last, ok)
}

// Count consumes the whole sequence.
func (it Iterator1[T]) Count() PositiveInt {
	n := 0
	for range it.values() {
		n++
	}
	return positiveUnchecked(n)
}

// Reduce folds the sequence into its first value. Unlike a seeded fold it
// needs no initial value, since there is always a first one.
func (it Iterator1[T]) Reduce(f func(acc, item T) T) T {
	var (
		acc     T
		started bool
	)
	for v := range it.values() {
		if !started {
			acc, started = v, true
			continue
		}
		acc = f(acc, v)
	}
	return safety.UnwrapOption(acc, started)
}

// Filter may drop every value, so the result is a plain sequence.
func (it Iterator1[T]) Filter(keep func(T) bool) iter.Seq[T] {
	return func(yield func(T) bool) {
		for v := range it.values() {
			if keep(v) && !yield(v) {
				return
			}
		}
	}
}

// Map applies f to every value. Mapping is one-to-one, so the result stays
// non-empty.
func Map[T, U any](it Iterator1[T], f func(T) U) Iterator1[U] {
	return FromSeqUnchecked(func(yield func(U) bool) {
		for v := range it.values() {
			if !yield(f(v)) {
				return
			}
		}
	})
}

// Chain appends rest, which may be empty, after it.
func Chain[T any](it Iterator1[T], rest iter.Seq[T]) Iterator1[T] {
	return FromSeqUnchecked(func(yield func(T) bool) {
		for v := range it.values() {
			if !yield(v) {
				return
			}
		}
		for v := range rest {
			if !yield(v) {
				return
			}
		}
	})
}

// Max returns the greatest value, the first one among equals.
func Max[T cmp.Ordered](it Iterator1[T]) T {
	return it.Reduce(func(acc, item T) T {
		if cmp.Less(acc, item) {
			return item
		}
		return acc
	})
}

// Min returns the least value, the first one among equals.
func Min[T cmp.Ordered](it Iterator1[T]) T {
	return it.Reduce(func(acc, item T) T {
		if cmp.Less(item, acc) {
			return item
		}
		return acc
	})
}

// Collect consumes the sequence into a new Slice1.
func Collect[T any](it Iterator1[T]) Slice1[T] {
	return FromSliceUnchecked(slices.Collect(it.values()))
}
