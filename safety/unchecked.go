//go:build nonempty_unchecked

package safety

// backend assumes every precondition holds. A violated precondition is not
// detected here and the caller's result is unspecified.
type backend struct{}

func (backend) Mode() Mode { return Unchecked }

func (backend) Require(bool, Contract) {}

func (backend) RequireFunc(func() bool, Contract) {}

func (backend) Unreachable(Contract) {}
