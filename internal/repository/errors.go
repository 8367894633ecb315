// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios. For
// example, ErrForbidden indicates that the current user is not
// authorized to perform an operation on a resource owned by
// someone else, while ErrVersionConflict signals that another writer
// updated the same seat between our read and our write.
package repository

import "errors"

// ErrForbidden is returned when the caller attempts an operation
// on a resource they do not own. Handlers should translate this
// into an HTTP 403 response.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when a delete or update cannot be
// performed because of conflicting state, such as attempting to
// delete a floor that still has seats with reservations. Handlers
// should translate this into an HTTP 409 response.
var ErrConflict = errors.New("conflict")

// ErrVersionConflict is returned when an optimistic version check on a
// seat fails because a concurrent request modified the seat first.
// The losing request must not be retried internally; handlers should
// translate this into an HTTP 409 response and let the client decide.
var ErrVersionConflict = errors.New("seat was modified concurrently")
