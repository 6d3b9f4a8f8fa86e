package errors

import (
	"errors"
	"fmt"
)

// RemoteErrorKind classifies failures of the remote catalog/order service.
type RemoteErrorKind string

const (
	// RemoteErrorNetwork means the request never produced a response.
	RemoteErrorNetwork RemoteErrorKind = "NETWORK"
	// RemoteErrorServerRejected means the service answered with a non-2xx status.
	RemoteErrorServerRejected RemoteErrorKind = "SERVER_REJECTED"
)

// RemoteError is returned by the gateway for any failed remote call.
// Detail carries the server's message verbatim for ServerRejected errors.
type RemoteError struct {
	Kind   RemoteErrorKind
	Op     string
	Status int
	Detail string
}

func (e *RemoteError) Error() string {
	if e.Kind == RemoteErrorNetwork {
		return fmt.Sprintf("%s: network error: %s", e.Op, e.Detail)
	}
	return fmt.Sprintf("%s: server rejected (status %d): %s", e.Op, e.Status, e.Detail)
}

// IsNetwork reports whether err is a RemoteError of kind Network.
func IsNetwork(err error) bool {
	var re *RemoteError
	return errors.As(err, &re) && re.Kind == RemoteErrorNetwork
}

// IsServerRejected reports whether err is a RemoteError of kind ServerRejected.
func IsServerRejected(err error) bool {
	var re *RemoteError
	return errors.As(err, &re) && re.Kind == RemoteErrorServerRejected
}

// ErrValidation is raised locally, before any network call is made.
type ErrValidation struct {
	Message string
}

func (e *ErrValidation) Error() string {
	return e.Message
}

// IsValidation reports whether err is a local validation error.
func IsValidation(err error) bool {
	var ve *ErrValidation
	return errors.As(err, &ve)
}

// ErrNotFound indicates a resource is absent from a store's collection.
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ErrUnauthorized indicates a session token that resolves to no session.
type ErrUnauthorized struct {
	Message string
}

func (e *ErrUnauthorized) Error() string {
	return e.Message
}
