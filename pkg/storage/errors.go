package storage

import "errors"

// ErrNotFound is returned when a key exists in no partition the requester can
// see.
var ErrNotFound = errors.New("record not found")

// ErrForbidden is returned when the requester's role or ownership does not
// permit the requested access pattern.
var ErrForbidden = errors.New("operation not permitted for requester")

// ErrConflict is returned when a conditional write loses: the record already
// exists, or its state no longer allows the update.
var ErrConflict = errors.New("conditional write failed")

// ErrInvalidTransition is returned when a trip status update is not a legal
// next step for the caller's role.
var ErrInvalidTransition = errors.New("illegal trip status transition")

// ErrReasonRequired is returned when a lorry is rejected or sent back for
// evidence without a reason.
var ErrReasonRequired = errors.New("verification reason required")

// ErrEmailTaken is returned when a user's email already maps to an account.
var ErrEmailTaken = errors.New("email already registered")
