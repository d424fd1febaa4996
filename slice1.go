package nonempty

import (
	"errors"
	"fmt"
	"iter"
	"math"
	"math/bits"
	"slices"
	"unsafe"

	"github.com/sooomo/nonempty/safety"
)

// maxRepeatBytes bounds the size of a repetition below the runtime's
// allocation limit, which is 2^48 bytes on most 64-bit platforms.
const maxRepeatBytes uint64 = 1 << 47

var (
	// ErrRepeatOverflow is returned when a repetition would be longer than
	// the largest representable length.
	ErrRepeatOverflow = errors.New("repetition overflows int")

	// ErrNegativeCount is returned for a negative repetition count.
	ErrNegativeCount = errors.New("repetition count is negative")
)

// Slice1 is a slice that holds at least one element.
//
// It is NonEmpty[Slice[T]] under its own method set: converting between the
// two is a plain type conversion. A Slice1 aliases its backing array the
// way a slice does, and none of its methods can change its length.
//
// The zero value is not a valid Slice1.
type Slice1[T any] NonEmpty[Slice[T]]

// TryFromSlice wraps items without copying them. An empty items is returned
// unchanged inside an *EmptyError[[]T].
func TryFromSlice[T any](items []T) (Slice1[T], error) {
	w, err := TryFromMaybeEmpty(Slice[T](items))
	if err != nil {
		return Slice1[T]{}, &EmptyError[[]T]{Items: items}
	}
	return Slice1[T](w), nil
}

// FromSliceUnchecked wraps items, which the caller has proven to be
// non-empty.
func FromSliceUnchecked[T any](items []T) Slice1[T] {
	return Slice1[T](FromMaybeEmptyUnchecked(Slice[T](items)))
}

// Of builds a Slice1 from its elements. Calling it with no arguments does
// not compile.
//
//	ports := nonempty.Of(80, 443)
func Of[T any](first T, rest ...T) Slice1[T] {
	items := make([]T, 0, 1+len(rest))
	items = append(items, first)
	items = append(items, rest...)
	return FromSliceUnchecked(items)
}

// FromRef returns a single-element Slice1 that aliases *p: writes through
// FirstMut are writes to *p. It panics if p is nil.
func FromRef[T any](p *T) Slice1[T] {
	return FromSliceUnchecked(unsafe.Slice(p, 1))
}

// Repeat returns a Slice1 holding count copies of item.
func Repeat[T any](item T, count PositiveInt) Slice1[T] {
	return FromSliceUnchecked(slices.Repeat([]T{item}, count.Get()))
}

func (s Slice1[T]) Cardinality() (Cardinality, bool) { return NonEmpty[Slice[T]](s).Cardinality() }

// Len returns the number of elements, which is always positive.
func (s Slice1[T]) Len() PositiveInt { return positiveUnchecked(len(s.items)) }

// AsSlice returns the plain slice. It shares the backing array.
func (s Slice1[T]) AsSlice() []T { return s.items }

func (s Slice1[T]) First() T { return safety.UnwrapOption(at(s.items, 0)) }

func (s Slice1[T]) FirstMut() *T { return safety.UnwrapOption(ptrAt(s.items, 0)) }

func (s Slice1[T]) Last() T { return safety.UnwrapOption(at(s.items, len(s.items)-1)) }

func (s Slice1[T]) LastMut() *T { return safety.UnwrapOption(ptrAt(s.items, len(s.items)-1)) }

// SplitFirst returns the first element and the possibly empty rest.
func (s Slice1[T]) SplitFirst() (T, []T) {
	head := s.First()
	return head, s.items[1:]
}

// SplitFirstMut is SplitFirst with a pointer to the first element.
func (s Slice1[T]) SplitFirstMut() (*T, []T) {
	head := s.FirstMut()
	return head, s.items[1:]
}

// SplitLast returns the possibly empty init and the last element.
func (s Slice1[T]) SplitLast() ([]T, T) {
	last := s.Last()
	return s.items[:len(s.items)-1], last
}

// At returns the element at index i. It panics if i is out of range, like
// indexing a slice.
func (s Slice1[T]) At(i int) T { return s.items[i] }

// AtMut returns a pointer to the element at index i.
func (s Slice1[T]) AtMut(i int) *T { return &s.items[i] }

// Sub returns s[lo:hi] as a plain slice, which may be empty.
func (s Slice1[T]) Sub(lo, hi int) []T { return s.items[lo:hi] }

// Iter1 iterates over the elements.
func (s Slice1[T]) Iter1() Iterator1[T] {
	return FromSeqUnchecked(slices.Values(s.items))
}

// Iter1Mut iterates over pointers to the elements.
func (s Slice1[T]) Iter1Mut() Iterator1[*T] {
	items := s.items
	return FromSeqUnchecked(func(yield func(*T) bool) {
		for i := range items {
			if !yield(&items[i]) {
				return
			}
		}
	})
}

// Chunks splits s into consecutive chunks of size elements, front to back;
// only the last chunk can be shorter. There are always ceil(len/size)
// chunks, and so at least one. Chunks are clipped: appending to one never
// overwrites its neighbour. Chunks panics if size is less than 1.
func (s Slice1[T]) Chunks(size int) Iterator1[Slice1[T]] {
	chunks := slices.Chunk(s.items, size)
	return FromSeqUnchecked(func(yield func(Slice1[T]) bool) {
		for chunk := range chunks {
			if !yield(FromSliceUnchecked[T](chunk)) {
				return
			}
		}
	})
}

// ChunksMut is Chunks for callers that write through the chunks. Chunks
// share the backing array of s.
func (s Slice1[T]) ChunksMut(size int) Iterator1[Slice1[T]] { return s.Chunks(size) }

// RChunks is Chunks starting from the back: the first chunk holds the last
// size elements and only the final chunk can be shorter.
func (s Slice1[T]) RChunks(size int) Iterator1[Slice1[T]] {
	if size < 1 {
		panic("cannot be less than 1")
	}

	items := s.items
	return FromSeqUnchecked(func(yield func(Slice1[T]) bool) {
		for hi := len(items); hi > 0; hi -= size {
			lo := max(hi-size, 0)
			if !yield(FromSliceUnchecked[T](items[lo:hi:hi])) {
				return
			}
		}
	})
}

// RChunksMut is RChunks for callers that write through the chunks.
func (s Slice1[T]) RChunksMut(size int) Iterator1[Slice1[T]] { return s.RChunks(size) }

// OnceAndThenRepeat returns a new Slice1 holding s followed by n more copies
// of s, len*(n+1) elements in all. It fails with ErrRepeatOverflow instead
// of wrapping around when that length does not fit in an int, or when the
// result would take more than 2^47 bytes.
func (s Slice1[T]) OnceAndThenRepeat(n int) (Slice1[T], error) {
	if n < 0 {
		return Slice1[T]{}, fmt.Errorf("%w: %d", ErrNegativeCount, n)
	}
	if n == math.MaxInt {
		return Slice1[T]{}, fmt.Errorf("%w: count %d", ErrRepeatOverflow, n)
	}

	count := n + 1
	hi, length := bits.Mul64(uint64(len(s.items)), uint64(count))
	if hi != 0 || length > math.MaxInt {
		return Slice1[T]{}, fmt.Errorf("%w: length %d, count %d", ErrRepeatOverflow, len(s.items), count)
	}
	var zero T
	hi, size := bits.Mul64(length, uint64(unsafe.Sizeof(zero)))
	if hi != 0 || size > maxRepeatBytes || size > math.MaxInt {
		return Slice1[T]{}, fmt.Errorf("%w: length %d, count %d, element size %d", ErrRepeatOverflow, len(s.items), count, unsafe.Sizeof(zero))
	}
	return FromSliceUnchecked[T](slices.Repeat(s.items, count)), nil
}

// Clone returns a Slice1 over a new backing array.
func (s Slice1[T]) Clone() Slice1[T] {
	return FromSliceUnchecked[T](slices.Clone(s.items))
}

func (s Slice1[T]) String() string { return fmt.Sprint([]T(s.items)) }

// Values iterates over the elements as a plain sequence.
func (s Slice1[T]) Values() iter.Seq[T] { return slices.Values(s.items) }

func at[S ~[]E, E any](items S, i int) (E, bool) {
	if i < 0 || i >= len(items) {
		var zero E
		return zero, false
	}
	return items[i], true
}

func ptrAt[S ~[]E, E any](items S, i int) (*E, bool) {
	if i < 0 || i >= len(items) {
		return nil, false
	}
	return &items[i], true
}
