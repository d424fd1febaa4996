//go:build !nonempty_unchecked

package safety_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/sooomo/nonempty/safety"
)

func requireViolation(t *testing.T, contract safety.Contract, fn func()) *safety.ViolationError {
	t.Helper()

	var recovered any
	func() {
		defer func() { recovered = recover() }()
		fn()
	}()

	require.NotNil(t, recovered, "expected a contract violation panic")
	err, ok := recovered.(*safety.ViolationError)
	require.Truef(t, ok, "panic value is %T, want *safety.ViolationError", recovered)
	assert.Equal(t, contract, err.Contract)
	assert.ErrorIs(t, err, safety.ErrContractViolated)
	return err
}

func TestActive_IsChecked(t *testing.T) {
	t.Parallel()
	assert.Equal(t, safety.Checked, safety.Active().Mode())
}

func TestChecked_Violations(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		contract safety.Contract
		fn       func()
	}{
		{"unwrap none", safety.ContractSome, func() { safety.UnwrapOption(0, false) }},
		{"unwrap error", safety.ContractOk, func() { safety.UnwrapResult(0, assert.AnError) }},
		{"non-zero from zero", safety.ContractNonZero, func() { safety.NonZero(0) }},
		{"unreachable", safety.ContractUnreachable, func() { safety.Unreachable(safety.ContractUnreachable) }},
		{"require", safety.ContractNonEmpty, func() { safety.Require(false, safety.ContractNonEmpty) }},
		{"require func", safety.ContractNonEmpty, func() {
			safety.RequireFunc(func() bool { return false }, safety.ContractNonEmpty)
		}},
		{"push into full container", safety.ContractVacancy, func() {
			safety.PushVacant[int](&fixedBuf{items: []int{1}, limit: 1}, 2)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			requireViolation(t, tt.contract, tt.fn)
		})
	}
}

func TestChecked_FullContainerIsNotModified(t *testing.T) {
	t.Parallel()

	buf := &fixedBuf{items: []int{1}, limit: 1}
	requireViolation(t, safety.ContractVacancy, func() { safety.PushVacant[int](buf, 2) })
	assert.Equal(t, []int{1}, buf.items)
}

func TestChecked_CallerNamesTheViolatingFunction(t *testing.T) {
	t.Parallel()

	err := requireViolation(t, safety.ContractSome, func() { safety.UnwrapOption("", false) })
	assert.Contains(t, err.Caller, "safety_test.TestChecked_CallerNamesTheViolatingFunction")
}

// Not parallel: installs a global reporter.
func TestChecked_ReportsBeforePanicking(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	safety.SetReporter(safety.ZapReporter{Logger: zap.New(core)})
	t.Cleanup(func() { safety.SetReporter(nil) })

	requireViolation(t, safety.ContractNonZero, func() { safety.NonZero(0) })

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "precondition violated", entry.Message)
	assert.Equal(t, string(safety.ContractNonZero), entry.ContextMap()["contract"])
	assert.Contains(t, entry.ContextMap()["caller"], "safety_test.")
}

type recordingReporter struct {
	got []*safety.ViolationError
}

func (r *recordingReporter) ReportViolation(err *safety.ViolationError) { r.got = append(r.got, err) }

// Not parallel: installs a global reporter.
func TestSetReporter(t *testing.T) {
	rec := &recordingReporter{}
	safety.SetReporter(rec)
	t.Cleanup(func() { safety.SetReporter(nil) })

	assert.Same(t, rec, safety.CurrentReporter())
	requireViolation(t, safety.ContractSome, func() { safety.UnwrapOption(1, false) })
	require.Len(t, rec.got, 1)
	assert.Equal(t, safety.ContractSome, rec.got[0].Contract)

	safety.SetReporter(nil)
	assert.IsType(t, safety.ZapReporter{}, safety.CurrentReporter())
}
