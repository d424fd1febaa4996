package nonempty

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/sooomo/nonempty/safety"
)

// ErrNotPositive is returned when a PositiveInt is built from n < 1.
var ErrNotPositive = errors.New("value is not positive")

// PositiveInt is an int proven to be at least one, such as the length of a
// non-empty container. The zero value is not a valid PositiveInt.
type PositiveInt struct {
	n int
}

// NewPositiveInt validates n.
func NewPositiveInt(n int) (PositiveInt, error) {
	if n < 1 {
		return PositiveInt{}, fmt.Errorf("%w: %d", ErrNotPositive, n)
	}
	return PositiveInt{n: n}, nil
}

// positiveUnchecked is for counts that cannot be negative, such as lengths,
// and that the caller has proven non-zero.
func positiveUnchecked(n int) PositiveInt {
	return PositiveInt{n: safety.NonZero(n)}
}

func (p PositiveInt) Get() int { return p.n }

func (p PositiveInt) String() string { return strconv.Itoa(p.n) }
