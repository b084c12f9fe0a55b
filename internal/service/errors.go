package service

import "errors"

// Workflow-level error taxonomy. Transport failures and missing records
// surface as repository.ErrRequestFailed / repository.ErrNotFound wrapped
// into the returned error chains.
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountInactive    = errors.New("user account is inactive")
	ErrDuplicateEmail     = errors.New("a user with this email already exists")
	ErrValidationFailed   = errors.New("validation failed")

	// ErrPurchaseIncomplete marks the known non-atomicity of the purchase
	// workflow: stock was decremented but the follow-up user update failed.
	// There is no compensation; the inconsistency is surfaced, not hidden.
	ErrPurchaseIncomplete = errors.New("purchase incomplete: stock updated without purchase record")
)
