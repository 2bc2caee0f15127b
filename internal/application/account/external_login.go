package account

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/lverg/accountkit/internal/application/ports"
	"github.com/lverg/accountkit/internal/domain"
)

type ExternalLoginInput struct {
	// Email was already verified by the external identity provider; the core
	// trusts this tuple without re-verification.
	Email     string
	FirstName string
	LastName  string
}

type ExternalLoginResult struct {
	Credential string
	User       Profile
}

// ExternalLogin accepts an externally vouched identity assertion. A new
// identity is created directly in the confirmed state with no password
// credential and no confirmation token: the provider already did the
// verification the confirmation gate exists for.
type ExternalLogin struct {
	store  ports.CredentialStore
	issuer ports.SessionIssuer
}

func NewExternalLogin(store ports.CredentialStore, issuer ports.SessionIssuer) *ExternalLogin {
	return &ExternalLogin{store: store, issuer: issuer}
}

func (uc *ExternalLogin) Execute(ctx context.Context, input ExternalLoginInput) (*ExternalLoginResult, error) {
	email := domain.NormalizeEmail(input.Email)
	identity, err := uc.store.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if identity == nil {
		now := time.Now()
		identity = &domain.Identity{
			ID:        domain.NewIdentityID(uuid.New()),
			Email:     email,
			FirstName: input.FirstName,
			LastName:  input.LastName,
			Confirmed: true,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := uc.store.Create(ctx, identity); err != nil {
			return nil, err
		}
	}
	credential, err := uc.issuer.Issue(identity.FirstName, identity.LastName)
	if err != nil {
		return nil, err
	}
	return &ExternalLoginResult{Credential: credential, User: profileOf(identity)}, nil
}
