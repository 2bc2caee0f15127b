package account

import (
	"context"
	"time"

	"github.com/lverg/accountkit/internal/application/ports"
	domerrors "github.com/lverg/accountkit/internal/domain/errors"
)

type CompleteResetInput struct {
	Token       string
	NewPassword string
}

type CompleteResetResult struct{}

// CompleteReset consumes a reset token and replaces the password credential.
// Single use by construction: the fingerprint is cleared on success, and an
// expired window is inert even when the fingerprint matches exactly.
type CompleteReset struct {
	store  ports.CredentialStore
	hasher ports.PasswordHasher
}

func NewCompleteReset(store ports.CredentialStore, hasher ports.PasswordHasher) *CompleteReset {
	return &CompleteReset{store: store, hasher: hasher}
}

func (uc *CompleteReset) Execute(ctx context.Context, input CompleteResetInput) (*CompleteResetResult, error) {
	identity, err := uc.store.GetByResetFingerprint(ctx, Fingerprint(input.Token))
	if err != nil {
		return nil, err
	}
	if identity == nil {
		return nil, domerrors.ErrInvalidToken
	}
	if identity.ResetWindowExpired(time.Now()) {
		return nil, domerrors.ErrTokenExpired
	}
	if err := ValidatePassword(input.NewPassword); err != nil {
		return nil, err
	}
	hash, err := uc.hasher.Hash(input.NewPassword)
	if err != nil {
		return nil, err
	}
	identity.PasswordHash = hash
	identity.ClearResetWindow()
	identity.UpdatedAt = time.Now()
	if err := uc.store.Save(ctx, identity); err != nil {
		return nil, err
	}
	return &CompleteResetResult{}, nil
}
