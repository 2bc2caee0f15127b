package account

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domerrors "github.com/lverg/accountkit/internal/domain/errors"
)

// registerFor seeds an unconfirmed identity and returns the raw confirmation
// token a caller would receive by email.
func registerFor(t *testing.T, store *memStore, email string, ttl time.Duration) string {
	t.Helper()
	notifier := &recordingNotifier{}
	_, err := NewRegister(store, &plainHasher{}, notifier, ttl).Execute(context.Background(), RegisterInput{
		Email:    email,
		Password: "abc123",
	})
	require.NoError(t, err)
	require.Len(t, notifier.confirmTokens, 1)
	return notifier.confirmTokens[0]
}

func TestConfirmRoundTrip(t *testing.T) {
	store := newMemStore()
	raw := registerFor(t, store, "round@example.com", time.Hour)

	result, err := NewConfirm(store).Execute(context.Background(), ConfirmInput{Token: raw})
	require.NoError(t, err)
	assert.True(t, result.Identity.Confirmed)
	assert.Nil(t, result.Identity.ResetFingerprint, "consumed token must be cleared")
	assert.Nil(t, result.Identity.ResetExpiresAt)

	stored, err := store.GetByEmail(context.Background(), "round@example.com")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.True(t, stored.Confirmed)
}

func TestConfirmReplayFails(t *testing.T) {
	store := newMemStore()
	raw := registerFor(t, store, "replay@example.com", time.Hour)

	uc := NewConfirm(store)
	_, err := uc.Execute(context.Background(), ConfirmInput{Token: raw})
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), ConfirmInput{Token: raw})
	assert.ErrorIs(t, err, domerrors.ErrInvalidToken, "second presentation finds no fingerprint")
}

func TestConfirmUnknownToken(t *testing.T) {
	store := newMemStore()
	_, err := NewConfirm(store).Execute(context.Background(), ConfirmInput{Token: "not-a-real-token"})
	assert.ErrorIs(t, err, domerrors.ErrInvalidToken)
}

func TestConfirmExpiredToken(t *testing.T) {
	store := newMemStore()
	raw := registerFor(t, store, "slow@example.com", -time.Minute)

	_, err := NewConfirm(store).Execute(context.Background(), ConfirmInput{Token: raw})
	assert.ErrorIs(t, err, domerrors.ErrTokenExpired)

	stored, err := store.GetByEmail(context.Background(), "slow@example.com")
	require.NoError(t, err)
	assert.False(t, stored.Confirmed, "expired token must not confirm")
}
