package errors

import "errors"

// Sentinel errors for handlers to map to HTTP status.
//
// Login deliberately collapses "no such account" and "wrong password" into
// ErrInvalidCredentials; ErrNotConfirmed stays distinct to match the
// original UX, a documented enumeration tradeoff.
var (
	ErrEmailTaken            = errors.New("email already registered")
	ErrInvalidCredentials    = errors.New("invalid email or password")
	ErrNotConfirmed          = errors.New("account not confirmed")
	ErrIdentityNotFound      = errors.New("identity not found")
	ErrInvalidToken          = errors.New("invalid or already used token")
	ErrTokenExpired          = errors.New("token expired")
	ErrPasswordMissingDigit  = errors.New("password must contain a digit")
	ErrPasswordMissingLetter = errors.New("password must contain a letter")
	ErrNotificationFailed    = errors.New("could not deliver notification")
	ErrVersionConflict       = errors.New("identity was modified concurrently")
	ErrEntropyUnavailable    = errors.New("system random source unavailable")
)
