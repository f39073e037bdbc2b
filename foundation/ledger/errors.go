package ledger

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoSigner is returned from VerifyProject when the client was constructed
// without a signing key. This is a configuration problem, surfaced at call
// time so read-only deployments still start.
var ErrNoSigner = errors.New("no signing key configured")

// UnavailableError indicates the RPC endpoint could not be reached or did
// not answer. The operation is safe to retry.
type UnavailableError struct {
	Method string
	Err    error
}

// Error implements the error interface.
func (ue *UnavailableError) Error() string {
	return fmt.Sprintf("ledger unavailable: %s: %s", ue.Method, ue.Err)
}

// Unwrap exposes the underlying RPC error.
func (ue *UnavailableError) Unwrap() error {
	return ue.Err
}

// RejectedError indicates the ledger itself refused the operation, such as a
// reverted call or transaction. Retrying without changing the inputs will
// fail the same way.
type RejectedError struct {
	Method string
	Err    error
}

// Error implements the error interface.
func (re *RejectedError) Error() string {
	return fmt.Sprintf("ledger rejected: %s: %s", re.Method, re.Err)
}

// Unwrap exposes the underlying contract error.
func (re *RejectedError) Unwrap() error {
	return re.Err
}

// IsUnavailable checks if an error of type UnavailableError exists.
func IsUnavailable(err error) bool {
	var ue *UnavailableError
	return errors.As(err, &ue)
}

// IsRejected checks if an error of type RejectedError exists.
func IsRejected(err error) bool {
	var re *RejectedError
	return errors.As(err, &re)
}

// classify wraps an RPC error as rejected when the node reports the contract
// refused the call, and unavailable otherwise.
func classify(method string, err error) error {
	if strings.Contains(err.Error(), "execution reverted") {
		return &RejectedError{Method: method, Err: err}
	}
	return &UnavailableError{Method: method, Err: err}
}
