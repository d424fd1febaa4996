// Package safety holds the precondition primitives the non-empty types are
// built on.
//
// Exactly one backend is compiled into a binary. The checked backend is the
// default: every primitive re-validates its precondition and panics with a
// *ViolationError naming the broken contract. Building with
//
//	go build -tags nonempty_unchecked
//
// links the unchecked backend instead, which trusts the caller and performs
// no validation at all. Both backends behave identically whenever the
// preconditions hold.
package safety

// Contract names a precondition that a primitive relies on.
type Contract string

const (
	ContractSome        Contract = "option must hold a value"
	ContractOk          Contract = "result must not be an error"
	ContractNonZero     Contract = "number must be non-zero"
	ContractUnreachable Contract = "code path must be unreachable"
	ContractVacancy     Contract = "container must have vacant capacity"
	ContractNonEmpty    Contract = "container must be non-empty"
)

// Mode identifies a backend.
type Mode uint8

const (
	Checked Mode = iota + 1
	Unchecked
)

func (m Mode) String() string {
	switch m {
	case Checked:
		return "checked"
	case Unchecked:
		return "unchecked"
	default:
		return "unknown"
	}
}

// Backend is the capability both build variants implement.
type Backend interface {
	Mode() Mode
	// Require asserts that ok holds.
	Require(ok bool, contract Contract)
	// RequireFunc asserts that pred returns true. The unchecked backend
	// never calls pred.
	RequireFunc(pred func() bool, contract Contract)
	Unreachable(contract Contract)
}

var (
	active backend

	_ Backend = backend{}
)

// Active returns the backend linked into this build.
func Active() Backend { return active }

// Require asserts an arbitrary precondition.
func Require(ok bool, contract Contract) { active.Require(ok, contract) }

// RequireFunc asserts a precondition whose evaluation has a cost.
func RequireFunc(pred func() bool, contract Contract) { active.RequireFunc(pred, contract) }

// UnwrapOption returns v, which must be accompanied by ok == true.
//
//	head := safety.UnwrapOption(first(items))
func UnwrapOption[T any](v T, ok bool) T {
	active.Require(ok, ContractSome)
	return v
}

// UnwrapResult returns v, which must be accompanied by a nil error.
func UnwrapResult[T any](v T, err error) T {
	active.Require(err == nil, ContractOk)
	return v
}

// NonZero returns n, which must not be zero.
func NonZero(n int) int {
	active.Require(n != 0, ContractNonZero)
	return n
}

// Unreachable marks a path that the caller's invariants rule out.
func Unreachable(contract Contract) { active.Unreachable(contract) }

// VacancyPusher is implemented by fixed-capacity containers only.
type VacancyPusher[T any] interface {
	Len() int
	Cap() int
	Push(item T)
}

// PushVacant pushes item into c, which must have room for it.
func PushVacant[T any](c VacancyPusher[T], item T) {
	active.RequireFunc(func() bool { return c.Len() < c.Cap() }, ContractVacancy)
	c.Push(item)
}
