package account

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lverg/accountkit/internal/application/ports"
	"github.com/lverg/accountkit/internal/domain"
	domerrors "github.com/lverg/accountkit/internal/domain/errors"
)

// DefaultResetTokenTTL is the reset window length.
const DefaultResetTokenTTL = 10 * time.Minute

type InitiateResetInput struct {
	Email string
}

type InitiateResetResult struct{}

// InitiateReset opens a fresh reset window, overwriting any prior one, and
// delivers the raw token. If delivery fails the window is cleared again: a
// pending reset whose token was never delivered is a dead-end state.
type InitiateReset struct {
	store    ports.CredentialStore
	notifier ports.Notifier
	resetTTL time.Duration
}

func NewInitiateReset(store ports.CredentialStore, notifier ports.Notifier, resetTTL time.Duration) *InitiateReset {
	if resetTTL <= 0 {
		resetTTL = DefaultResetTokenTTL
	}
	return &InitiateReset{store: store, notifier: notifier, resetTTL: resetTTL}
}

func (uc *InitiateReset) Execute(ctx context.Context, input InitiateResetInput) (*InitiateResetResult, error) {
	email := domain.NormalizeEmail(input.Email)
	identity, err := uc.store.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if identity == nil {
		return nil, domerrors.ErrIdentityNotFound
	}
	pair, err := GenerateToken()
	if err != nil {
		return nil, err
	}
	now := time.Now()
	identity.OpenResetWindow(pair.Fingerprint, now.Add(uc.resetTTL))
	identity.UpdatedAt = now
	if err := uc.store.Save(ctx, identity); err != nil {
		return nil, err
	}
	if err := uc.notifier.SendResetInstructions(ctx, identity, pair.Raw); err != nil {
		uc.compensate(ctx, email, pair.Fingerprint)
		return nil, fmt.Errorf("%w: %v", domerrors.ErrNotificationFailed, err)
	}
	return &InitiateResetResult{}, nil
}

// compensate clears the window written above. It runs on a context that
// survives caller cancellation so an abandoned request cannot strand a
// pending window, and it only clears if our fingerprint is still the active
// one: a concurrent InitiateReset that won the race keeps its window.
func (uc *InitiateReset) compensate(ctx context.Context, email, fingerprint string) {
	ctx = context.WithoutCancel(ctx)
	identity, err := uc.store.GetByEmail(ctx, email)
	if err != nil || identity == nil {
		return
	}
	if identity.ResetFingerprint == nil || *identity.ResetFingerprint != fingerprint {
		return
	}
	identity.ClearResetWindow()
	identity.UpdatedAt = time.Now()
	if err := uc.store.Save(ctx, identity); err != nil && !errors.Is(err, domerrors.ErrVersionConflict) {
		return
	}
}
