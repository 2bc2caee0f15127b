package account

import (
	"context"
	"time"

	"github.com/lverg/accountkit/internal/application/ports"
	"github.com/lverg/accountkit/internal/domain"
	domerrors "github.com/lverg/accountkit/internal/domain/errors"
)

type ConfirmInput struct {
	Token string
}

type ConfirmResult struct {
	Identity *domain.Identity
}

// Confirm consumes a confirmation token: the fingerprint is the lookup key
// and the capability. Clearing it on success is the single-use guarantee; a
// replay finds no row and fails with ErrInvalidToken.
type Confirm struct {
	store ports.CredentialStore
}

func NewConfirm(store ports.CredentialStore) *Confirm {
	return &Confirm{store: store}
}

func (uc *Confirm) Execute(ctx context.Context, input ConfirmInput) (*ConfirmResult, error) {
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
	identity.Confirmed = true
	identity.ClearResetWindow()
	identity.UpdatedAt = time.Now()
	if err := uc.store.Save(ctx, identity); err != nil {
		return nil, err
	}
	return &ConfirmResult{Identity: identity}, nil
}
