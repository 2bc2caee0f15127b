package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// IdentityID is a value object for identity records.
type IdentityID struct{ uuid.UUID }

// NewIdentityID creates a new IdentityID from uuid.
func NewIdentityID(id uuid.UUID) IdentityID { return IdentityID{UUID: id} }

// String returns the canonical string form.
func (i IdentityID) String() string { return i.UUID.String() }

// Identity is a user account as the token engine sees it. Email is stored
// lower-cased. PasswordHash is empty for identities vouched for by an
// external provider. ResetFingerprint/ResetExpiresAt form the active token
// window: both are set or both are nil.
type Identity struct {
	ID               IdentityID
	Email            string
	PasswordHash     string
	FirstName        string
	LastName         string
	Confirmed        bool
	ResetFingerprint *string
	ResetExpiresAt   *time.Time
	// Version guards saves: the store only applies an update whose Version
	// matches the stored row, then increments it.
	Version   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NormalizeEmail lower-cases and trims an email for storage and comparison.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// OpenResetWindow installs a new token window, replacing any prior one.
// Earlier raw tokens become inert because their fingerprint is overwritten.
func (i *Identity) OpenResetWindow(fingerprint string, expiresAt time.Time) {
	i.ResetFingerprint = &fingerprint
	i.ResetExpiresAt = &expiresAt
}

// ClearResetWindow removes the active token window. Idempotent.
func (i *Identity) ClearResetWindow() {
	i.ResetFingerprint = nil
	i.ResetExpiresAt = nil
}

// ResetWindowExpired reports whether the active window has lapsed at now.
// An identity with no window reports false; absence is handled separately.
func (i *Identity) ResetWindowExpired(now time.Time) bool {
	return i.ResetExpiresAt != nil && now.After(*i.ResetExpiresAt)
}
