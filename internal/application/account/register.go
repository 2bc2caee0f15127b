package account

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lverg/accountkit/internal/application/ports"
	"github.com/lverg/accountkit/internal/domain"
	domerrors "github.com/lverg/accountkit/internal/domain/errors"
)

// DefaultConfirmTokenTTL bounds the confirmation window. The original flow
// let confirmation links live forever; every issued token carries an expiry
// here.
const DefaultConfirmTokenTTL = 24 * time.Hour

type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

type RegisterResult struct {
	Identity *domain.Identity
}

// Register creates an unconfirmed identity and sends the confirmation token.
// No session credential is issued; confirmation gates the first login.
type Register struct {
	store      ports.CredentialStore
	hasher     ports.PasswordHasher
	notifier   ports.Notifier
	confirmTTL time.Duration
}

func NewRegister(store ports.CredentialStore, hasher ports.PasswordHasher, notifier ports.Notifier, confirmTTL time.Duration) *Register {
	if confirmTTL <= 0 {
		confirmTTL = DefaultConfirmTokenTTL
	}
	return &Register{store: store, hasher: hasher, notifier: notifier, confirmTTL: confirmTTL}
}

// Execute validates the password, rejects taken emails, persists the identity
// with the confirmation fingerprint, then hands the raw token to the
// notifier. A delivery failure is surfaced but not rolled back: the account
// exists, unconfirmed, until confirmation is re-requested.
func (uc *Register) Execute(ctx context.Context, input RegisterInput) (*RegisterResult, error) {
	if err := ValidatePassword(input.Password); err != nil {
		return nil, err
	}
	email := domain.NormalizeEmail(input.Email)
	existing, err := uc.store.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domerrors.ErrEmailTaken
	}
	hash, err := uc.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}
	pair, err := GenerateToken()
	if err != nil {
		return nil, err
	}
	now := time.Now()
	identity := &domain.Identity{
		ID:           domain.NewIdentityID(uuid.New()),
		Email:        email,
		PasswordHash: hash,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Confirmed:    false,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	identity.OpenResetWindow(pair.Fingerprint, now.Add(uc.confirmTTL))
	if err := uc.store.Create(ctx, identity); err != nil {
		return nil, err
	}
	if err := uc.notifier.SendConfirmation(ctx, identity, pair.Raw); err != nil {
		return nil, fmt.Errorf("%w: %v", domerrors.ErrNotificationFailed, err)
	}
	return &RegisterResult{Identity: identity}, nil
}
