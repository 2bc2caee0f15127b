package handlers

// API error codes returned in JSON { "error": "...", "code": "..." } for
// stable client handling.
const (
	ErrCodeInvalidCredentials = "invalid_credentials"
	ErrCodeNotConfirmed       = "not_confirmed"
	ErrCodeWeakPassword       = "weak_password"
	ErrCodeInvalidToken       = "invalid_token"
	ErrCodeTokenExpired       = "token_expired"
	ErrCodeUnauthorized       = "unauthorized"
	ErrCodeInvalidRequest     = "invalid_request"
	ErrCodeNotFound           = "not_found"
	ErrCodeConflict           = "conflict"
	ErrCodeForbidden          = "forbidden"
	ErrCodeDeliveryFailed     = "delivery_failed"
	ErrCodeUnavailable        = "service_unavailable"
	ErrCodeInternal           = "internal_error"
)
