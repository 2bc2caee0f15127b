package account

import (
	"context"

	"github.com/lverg/accountkit/internal/application/ports"
	"github.com/lverg/accountkit/internal/domain"
	domerrors "github.com/lverg/accountkit/internal/domain/errors"
)

type LoginInput struct {
	Email    string
	Password string
}

type LoginResult struct {
	Credential string
	User       Profile
}

// Profile is the sanitized projection returned to callers: no password
// hash, no reset-token fields.
type Profile struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Confirmed bool   `json:"confirmed"`
}

func profileOf(identity *domain.Identity) Profile {
	return Profile{
		ID:        identity.ID.String(),
		Email:     identity.Email,
		FirstName: identity.FirstName,
		LastName:  identity.LastName,
		Confirmed: identity.Confirmed,
	}
}

// Login verifies credentials and issues a session credential keyed to the
// minimal claim set (names only).
type Login struct {
	store  ports.CredentialStore
	hasher ports.PasswordHasher
	issuer ports.SessionIssuer
}

func NewLogin(store ports.CredentialStore, hasher ports.PasswordHasher, issuer ports.SessionIssuer) *Login {
	return &Login{store: store, hasher: hasher, issuer: issuer}
}

// Execute collapses absent identity and password mismatch into
// ErrInvalidCredentials. An identity without a password credential
// (externally vouched) cannot log in with a password.
func (uc *Login) Execute(ctx context.Context, input LoginInput) (*LoginResult, error) {
	identity, err := uc.store.GetByEmail(ctx, domain.NormalizeEmail(input.Email))
	if err != nil {
		return nil, err
	}
	if identity == nil || identity.PasswordHash == "" || !uc.hasher.Verify(input.Password, identity.PasswordHash) {
		return nil, domerrors.ErrInvalidCredentials
	}
	if !identity.Confirmed {
		return nil, domerrors.ErrNotConfirmed
	}
	credential, err := uc.issuer.Issue(identity.FirstName, identity.LastName)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Credential: credential, User: profileOf(identity)}, nil
}
