//go:build !nonempty_unchecked

package safety

// backend validates every precondition and panics on violation.
type backend struct{}

func (backend) Mode() Mode { return Checked }

func (backend) Require(ok bool, contract Contract) {
	if !ok {
		violate(contract)
	}
}

func (backend) RequireFunc(pred func() bool, contract Contract) {
	if !pred() {
		violate(contract)
	}
}

func (backend) Unreachable(contract Contract) { violate(contract) }

func violate(contract Contract) {
	err := &ViolationError{Contract: contract, Caller: caller()}
	CurrentReporter().ReportViolation(err)
	panic(err)
}
