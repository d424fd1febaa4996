package nonempty

// Cardinality tells a non-empty container holding exactly one element from
// one holding many. Emptiness is never a Cardinality: MaybeEmpty reports it
// through its ok result.
type Cardinality uint8

const (
	One Cardinality = iota + 1
	Many
)

func (c Cardinality) String() string {
	switch c {
	case One:
		return "one"
	case Many:
		return "many"
	default:
		return "invalid"
	}
}

// MaybeEmpty is implemented by containers that can classify their size
// without mutating themselves and at the cost of a length query.
//
// ok is false if and only if the container is empty. Every guarantee of
// NonEmpty reduces to this method, so an implementation that lies is a
// soundness bug, not a recoverable error.
type MaybeEmpty interface {
	Cardinality() (c Cardinality, ok bool)
}

// CardinalityOf classifies a container of length n.
func CardinalityOf(n int) (Cardinality, bool) {
	switch {
	case n <= 0:
		return 0, false
	case n == 1:
		return One, true
	default:
		return Many, true
	}
}

// Slice is a plain slice that may be empty.
type Slice[T any] []T

func (s Slice[T]) Cardinality() (Cardinality, bool) { return CardinalityOf(len(s)) }
