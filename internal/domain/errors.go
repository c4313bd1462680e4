package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrRecordNotFound an update or delete addressed an id the local store does not hold
	ErrRecordNotFound = errors.New("record not found")

	// ErrSyncInProgress another backup or restore is still running
	ErrSyncInProgress = errors.New("sync already in progress")
)

// TransportError wraps any failure of a repository or ledger call
// TransportError 本地存储或远端账本调用失败
type TransportError struct {
	Domain Name
	Op     string
	Err    error
}

func NewTransportError(domain Name, op string, err error) *TransportError {
	return &TransportError{Domain: domain, Op: op, Err: err}
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Domain, e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ValidationFailedError is returned instead of syncing when the blocking validation policy is active
// ValidationFailedError 阻断式校验策略下校验未通过
type ValidationFailedError struct {
	Report ValidationReport
}

func (e *ValidationFailedError) Error() string {
	issues := make([]string, 0, len(e.Report.Issues))
	for _, i := range e.Report.Issues {
		issues = append(issues, string(i))
	}
	return fmt.Sprintf("validation failed with %d issue(s): %s", len(issues), strings.Join(issues, "; "))
}
