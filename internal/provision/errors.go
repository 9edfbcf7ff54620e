package provision

import (
	"fmt"
	"time"
)

// PreconditionError reports a missing external requirement: the container
// runtime is unreachable or a required local file does not exist.
type PreconditionError struct {
	Reason string
	Err    error
}

func (e *PreconditionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("precondition failed: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("precondition failed: %s", e.Reason)
}

func (e *PreconditionError) Unwrap() error { return e.Err }

// ReconciliationError reports a failed network or container
// create/start/connect call.
type ReconciliationError struct {
	Op  string
	Err error
}

func (e *ReconciliationError) Error() string {
	return fmt.Sprintf("reconciliation failed: %s: %v", e.Op, e.Err)
}

func (e *ReconciliationError) Unwrap() error { return e.Err }

// TimeoutError reports that the readiness probe never succeeded within
// the bounded attempt count.
type TimeoutError struct {
	Attempts int
	Interval time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("database not ready after %d attempts (%s apart)", e.Attempts, e.Interval)
}

// ExtensionError reports a failed extension-enable statement, carrying
// the failing extension name and the statement's diagnostic output.
type ExtensionError struct {
	Extension string
	Diag      string
	Err       error
}

func (e *ExtensionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("failed to enable extension %s: %v", e.Extension, e.Err)
	}
	return fmt.Sprintf("failed to enable extension %s: %s", e.Extension, e.Diag)
}

func (e *ExtensionError) Unwrap() error { return e.Err }

// ImportError reports a nonzero exit from the import tool, carrying its
// combined output verbatim.
type ImportError struct {
	Diag string
	Err  error
}

func (e *ImportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("import failed: %v", e.Err)
	}
	return fmt.Sprintf("import failed: %s", e.Diag)
}

func (e *ImportError) Unwrap() error { return e.Err }

// RoadsBuildError reports a failed roads-derivation script execution,
// carrying its combined output verbatim.
type RoadsBuildError struct {
	Diag string
	Err  error
}

func (e *RoadsBuildError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("roads build failed: %v", e.Err)
	}
	return fmt.Sprintf("roads build failed: %s", e.Diag)
}

func (e *RoadsBuildError) Unwrap() error { return e.Err }
