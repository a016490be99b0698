package errorz

import "errors"

var (
	// Lookup failures.
	ErrItemNotFound        = errors.New("item not found")
	ErrClubNotFound        = errors.New("club not found")
	ErrUserNotFound        = errors.New("user not found")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrMembershipNotFound  = errors.New("membership not found")

	// Availability violations.
	ErrClubMismatch     = errors.New("item does not belong to this club")
	ErrItemNotAvailable = errors.New("item is not available for borrowing")
	ErrItemNotBorrowed  = errors.New("item is not currently borrowed")

	// Workflow violations.
	ErrInvalidDeadline = errors.New("return date must be in the future")
	ErrNotApproved     = errors.New("item borrowing not approved yet")
	ErrInvalidState    = errors.New("transaction is not awaiting a decision")
	ErrInvalidAction   = errors.New("action is not allowed from the current status")

	// Authorization.
	ErrForbidden    = errors.New("forbidden")
	ErrUnauthorized = errors.New("unauthorized")

	// Validation.
	ErrInvalidName = errors.New("invalid name")
	ErrInvalidRole = errors.New("invalid role")
)
