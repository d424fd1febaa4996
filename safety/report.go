package safety

import (
	"sync"

	"go.uber.org/zap"
)

// Reporter receives contract violations before the checked backend panics.
// Implementations must not panic themselves.
type Reporter interface {
	ReportViolation(err *ViolationError)
}

var (
	reporter   Reporter = ZapReporter{}
	reporterMu sync.RWMutex
)

// SetReporter installs r. A nil r restores the default ZapReporter.
func SetReporter(r Reporter) {
	reporterMu.Lock()
	defer reporterMu.Unlock()

	if r == nil {
		r = ZapReporter{}
	}
	reporter = r
}

// CurrentReporter returns the installed reporter.
func CurrentReporter() Reporter {
	reporterMu.RLock()
	defer reporterMu.RUnlock()

	return reporter
}

// ZapReporter logs violations at error level. A nil Logger means zap.L(),
// which is a no-op logger until the application replaces the globals.
type ZapReporter struct {
	Logger *zap.Logger
}

func (r ZapReporter) ReportViolation(err *ViolationError) {
	logger := r.Logger
	if logger == nil {
		logger = zap.L()
	}

	logger.Error("precondition violated",
		zap.String("contract", string(err.Contract)),
		zap.String("caller", err.Caller),
		zap.Stack("stack"),
	)
}
