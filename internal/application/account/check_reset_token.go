package account

import (
	"context"
	"time"

	"github.com/lverg/accountkit/internal/application/ports"
)

type CheckResetTokenInput struct {
	Token string
}

type CheckResetTokenResult struct {
	Valid bool
}

// CheckResetToken is a read-only probe a caller uses to decide whether to
// render the reset form. A missing or expired token degrades to Valid=false
// rather than an error; only storage failures propagate. CompleteReset stays
// strict.
type CheckResetToken struct {
	store ports.CredentialStore
}

func NewCheckResetToken(store ports.CredentialStore) *CheckResetToken {
	return &CheckResetToken{store: store}
}

func (uc *CheckResetToken) Execute(ctx context.Context, input CheckResetTokenInput) (*CheckResetTokenResult, error) {
	identity, err := uc.store.GetByResetFingerprint(ctx, Fingerprint(input.Token))
	if err != nil {
		return nil, err
	}
	if identity == nil || identity.ResetWindowExpired(time.Now()) {
		return &CheckResetTokenResult{Valid: false}, nil
	}
	return &CheckResetTokenResult{Valid: true}, nil
}
