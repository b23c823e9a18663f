package port

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthorized indicates the backend rejected the bearer token. The token has already been discarded.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden indicates the caller is authenticated but not allowed to perform the request.
	ErrForbidden = errors.New("forbidden")
	// ErrPendingApproval indicates the account exists but an administrator has not approved it yet.
	ErrPendingApproval = errors.New("account pending approval")
	// ErrNotFound indicates the requested resource does not exist remotely.
	ErrNotFound = errors.New("resource not found")
	// ErrUnsupported is returned for entities or operations with no configured endpoint.
	ErrUnsupported = errors.New("operation unsupported")
	// ErrRemote wraps every other failed backend call.
	ErrRemote = errors.New("remote request failed")
	// ErrMissingSession is returned when a cart call cannot be attributed to a session.
	ErrMissingSession = errors.New("missing session id")
	// ErrInvalidTransition rejects order status changes that move backwards or leave a terminal state.
	ErrInvalidTransition = errors.New("invalid order status transition")
)

// UnauthorizedError carries the login route matching the role of the discarded token.
type UnauthorizedError struct {
	Redirect string
}

func (e *UnauthorizedError) Error() string {
	return fmt.Sprintf("unauthorized, redirect to %s", e.Redirect)
}

func (e *UnauthorizedError) Unwrap() error { return ErrUnauthorized }

// RemoteError describes an unexpected backend status.
type RemoteError struct {
	Status  int
	Message string
}

func (e *RemoteError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("unexpected backend response %d", e.Status)
	}
	return fmt.Sprintf("unexpected backend response %d: %s", e.Status, e.Message)
}

func (e *RemoteError) Unwrap() error { return ErrRemote }
