package safety

import (
	"errors"
	"fmt"
	"reflect"
	"runtime"
	"strings"
)

// ErrContractViolated is the sentinel wrapped by every ViolationError.
var ErrContractViolated = errors.New("contract violated")

// ViolationError is the panic value of the checked backend.
type ViolationError struct {
	Contract Contract
	// Caller is the first function outside this package on the stack.
	Caller string
}

func (e *ViolationError) Error() string {
	if e.Caller == "" {
		return fmt.Sprintf("safety: contract violated: %s", e.Contract)
	}
	return fmt.Sprintf("safety: contract violated: %s (in %s)", e.Contract, e.Caller)
}

// Unwrap returns ErrContractViolated for errors.Is.
func (e *ViolationError) Unwrap() error { return ErrContractViolated }

const maxCallerDepth = 16

func caller() string {
	pcs := make([]uintptr, maxCallerDepth)
	n := runtime.Callers(2, pcs)
	frames := runtime.CallersFrames(pcs[:n])
	for {
		frame, more := frames.Next()
		if !inThisPackage(frame.Function) {
			return frame.Function
		}
		if !more {
			return ""
		}
	}
}

// pkgPrefix is "github.com/sooomo/nonempty/safety.".
var pkgPrefix = reflect.TypeFor[ViolationError]().PkgPath() + "."

func inThisPackage(function string) bool {
	// Function names look like "github.com/sooomo/nonempty/safety.UnwrapOption[...]".
	return strings.HasPrefix(function, pkgPrefix)
}
