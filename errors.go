package salesbook

import "errors"

// The error taxonomy of the ledger. All of these are recoverable at the
// command boundary: they terminate the current command with a message and
// return control to the operator.
var (
	// ErrInvalidInput reports a non-numeric or out-of-range user-supplied value.
	ErrInvalidInput = errors.New("invalid input")
	// ErrLedgerFull reports that the data region has no empty slot left.
	ErrLedgerFull = errors.New("ledger full")
	// ErrNotFound reports an operation targeting an empty or nonexistent slot.
	ErrNotFound = errors.New("record not found")
	// ErrNoMatch reports search criteria matching zero records. It is an
	// expected outcome of a search, not a failure of the matcher.
	ErrNoMatch = errors.New("no matching record")
	// ErrInvalidSelection reports a selection index outside the match-set bounds.
	ErrInvalidSelection = errors.New("invalid selection")
	// ErrIncompleteRecord reports required fields missing before a derived
	// field recompute.
	ErrIncompleteRecord = errors.New("incomplete record")
	// ErrStorageUnavailable reports a locked, inaccessible or corrupt backing file.
	ErrStorageUnavailable = errors.New("storage unavailable")
)
