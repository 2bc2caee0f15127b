package account

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExternalLoginCreatesConfirmedIdentity(t *testing.T) {
	store := newMemStore()
	uc := NewExternalLogin(store, &stubIssuer{})

	result, err := uc.Execute(context.Background(), ExternalLoginInput{
		Email:     "Ada@Example.com",
		FirstName: "Ada",
		LastName:  "Lovelace",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, result.Credential, "session is issued immediately, no confirmation gate")
	assert.Equal(t, "ada@example.com", result.User.Email)
	assert.True(t, result.User.Confirmed)

	stored, err := store.GetByEmail(context.Background(), "ada@example.com")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.True(t, stored.Confirmed)
	assert.Empty(t, stored.PasswordHash, "externally vouched identity carries no password credential")
	assert.Nil(t, stored.ResetFingerprint, "no confirmation token is issued")
}

func TestExternalLoginExistingIdentity(t *testing.T) {
	store := newMemStore()
	confirmedAccount(t, store, "both@example.com")
	uc := NewExternalLogin(store, &stubIssuer{})

	result, err := uc.Execute(context.Background(), ExternalLoginInput{Email: "both@example.com"})
	require.NoError(t, err)
	assert.NotEmpty(t, result.Credential)

	stored, err := store.GetByEmail(context.Background(), "both@example.com")
	require.NoError(t, err)
	assert.NotEmpty(t, stored.PasswordHash, "existing password credential is untouched")

	// The password path still works after an external login.
	_, err = NewLogin(store, &plainHasher{}, &stubIssuer{}).
		Execute(context.Background(), LoginInput{Email: "both@example.com", Password: "abc123"})
	assert.NoError(t, err)
}
