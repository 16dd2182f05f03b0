// Package apperr holds the sentinel errors shared across the service layers.
// Services and middleware wrap these with context via fmt.Errorf("%w: ...");
// the HTTP boundary matches them with errors.Is to pick a status code.
package apperr

import "errors"

var (
	ErrValidation       = errors.New("validation failed")
	ErrInvalidToken     = errors.New("invalid token")
	ErrDecryption       = errors.New("decryption failed")
	ErrNotFound         = errors.New("not found")
	ErrForbidden        = errors.New("not authorized")
	ErrStoreUnavailable = errors.New("store unavailable")
)
