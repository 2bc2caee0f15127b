package ports

import (
	"context"

	"github.com/lverg/accountkit/internal/domain"
)

// CredentialStore defines persistence for identities. Email lookups are
// case-insensitive (callers pass normalized emails, stores compare on
// lower-case). Get methods return (nil, nil) when no row matches.
type CredentialStore interface {
	Create(ctx context.Context, identity *domain.Identity) error
	GetByEmail(ctx context.Context, email string) (*domain.Identity, error)
	GetByResetFingerprint(ctx context.Context, fingerprint string) (*domain.Identity, error)
	// Save applies the update only if the stored row still carries
	// identity.Version, then increments it; otherwise it returns
	// domain/errors.ErrVersionConflict and leaves the row untouched.
	Save(ctx context.Context, identity *domain.Identity) error
}
