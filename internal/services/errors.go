package services

import "errors"

// Service errors. Handlers map these to HTTP status codes with errors.Is;
// anything not listed here is treated as an internal failure.
var (
	ErrDuplicateEmail = errors.New("email is already registered")
	// ErrInvalidCredentials is deliberately identical for "unknown email" and
	// "wrong password" so responses cannot be used to enumerate accounts.
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrInvalidGoogleToken     = errors.New("invalid or expired Google token")
	ErrServerMisconfigured    = errors.New("server is not configured for Google login")
	ErrInvalidTransactionType = errors.New(`transaction type must be "deposit" or "withdraw"`)
	ErrMissingField           = errors.New("required field is missing")
	ErrNotFound               = errors.New("record not found")
	ErrInvalidToken           = errors.New("invalid or expired token")
)
