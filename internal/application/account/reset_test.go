package account

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domerrors "github.com/lverg/accountkit/internal/domain/errors"
)

func TestResetRoundTrip(t *testing.T) {
	store := newMemStore()
	confirmedAccount(t, store, "reset@example.com")
	notifier := &recordingNotifier{}

	_, err := NewInitiateReset(store, notifier, time.Minute).
		Execute(context.Background(), InitiateResetInput{Email: "reset@example.com"})
	require.NoError(t, err)
	raw := notifier.lastResetToken()
	require.NotEmpty(t, raw)

	_, err = NewCompleteReset(store, &plainHasher{}).
		Execute(context.Background(), CompleteResetInput{Token: raw, NewPassword: "newpass9"})
	require.NoError(t, err)

	login := NewLogin(store, &plainHasher{}, &stubIssuer{})
	_, err = login.Execute(context.Background(), LoginInput{Email: "reset@example.com", Password: "abc123"})
	assert.ErrorIs(t, err, domerrors.ErrInvalidCredentials, "old password must stop working")
	_, err = login.Execute(context.Background(), LoginInput{Email: "reset@example.com", Password: "newpass9"})
	assert.NoError(t, err, "new password must work")
}

func TestResetTokenSingleUse(t *testing.T) {
	store := newMemStore()
	confirmedAccount(t, store, "once@example.com")
	notifier := &recordingNotifier{}

	_, err := NewInitiateReset(store, notifier, time.Minute).
		Execute(context.Background(), InitiateResetInput{Email: "once@example.com"})
	require.NoError(t, err)
	raw := notifier.lastResetToken()

	complete := NewCompleteReset(store, &plainHasher{})
	_, err = complete.Execute(context.Background(), CompleteResetInput{Token: raw, NewPassword: "first1"})
	require.NoError(t, err)
	_, err = complete.Execute(context.Background(), CompleteResetInput{Token: raw, NewPassword: "second2"})
	assert.ErrorIs(t, err, domerrors.ErrInvalidToken)
}

func TestResetExpiredToken(t *testing.T) {
	store := newMemStore()
	confirmedAccount(t, store, "late@example.com")
	notifier := &recordingNotifier{}

	_, err := NewInitiateReset(store, notifier, -time.Second).
		Execute(context.Background(), InitiateResetInput{Email: "late@example.com"})
	require.NoError(t, err)
	raw := notifier.lastResetToken()

	_, err = NewCompleteReset(store, &plainHasher{}).
		Execute(context.Background(), CompleteResetInput{Token: raw, NewPassword: "newpass9"})
	assert.ErrorIs(t, err, domerrors.ErrTokenExpired)
}

func TestResetWeakNewPassword(t *testing.T) {
	store := newMemStore()
	confirmedAccount(t, store, "weak@example.com")
	notifier := &recordingNotifier{}

	_, err := NewInitiateReset(store, notifier, time.Minute).
		Execute(context.Background(), InitiateResetInput{Email: "weak@example.com"})
	require.NoError(t, err)
	raw := notifier.lastResetToken()

	complete := NewCompleteReset(store, &plainHasher{})
	_, err = complete.Execute(context.Background(), CompleteResetInput{Token: raw, NewPassword: "letters"})
	assert.ErrorIs(t, err, domerrors.ErrPasswordMissingDigit)

	// Rejection must not burn the token.
	_, err = complete.Execute(context.Background(), CompleteResetInput{Token: raw, NewPassword: "letters1"})
	assert.NoError(t, err)
}

func TestResetUnknownEmail(t *testing.T) {
	store := newMemStore()
	_, err := NewInitiateReset(store, &recordingNotifier{}, time.Minute).
		Execute(context.Background(), InitiateResetInput{Email: "ghost@example.com"})
	assert.ErrorIs(t, err, domerrors.ErrIdentityNotFound)
}

func TestResetLatestTokenWins(t *testing.T) {
	store := newMemStore()
	confirmedAccount(t, store, "twice@example.com")
	notifier := &recordingNotifier{}
	initiate := NewInitiateReset(store, notifier, time.Minute)

	_, err := initiate.Execute(context.Background(), InitiateResetInput{Email: "twice@example.com"})
	require.NoError(t, err)
	first := notifier.lastResetToken()
	_, err = initiate.Execute(context.Background(), InitiateResetInput{Email: "twice@example.com"})
	require.NoError(t, err)
	second := notifier.lastResetToken()
	require.NotEqual(t, first, second)

	complete := NewCompleteReset(store, &plainHasher{})
	_, err = complete.Execute(context.Background(), CompleteResetInput{Token: first, NewPassword: "stale1"})
	assert.ErrorIs(t, err, domerrors.ErrInvalidToken, "overwritten token must be inert")
	_, err = complete.Execute(context.Background(), CompleteResetInput{Token: second, NewPassword: "fresh2"})
	assert.NoError(t, err)
}

func TestResetDeliveryFailureCompensates(t *testing.T) {
	store := newMemStore()
	confirmedAccount(t, store, "undelivered@example.com")
	notifier := &recordingNotifier{resetErr: errors.New("queue down")}

	_, err := NewInitiateReset(store, notifier, time.Minute).
		Execute(context.Background(), InitiateResetInput{Email: "undelivered@example.com"})
	assert.ErrorIs(t, err, domerrors.ErrNotificationFailed)

	stored, err := store.GetByEmail(context.Background(), "undelivered@example.com")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Nil(t, stored.ResetFingerprint,
		"a window whose token was never delivered must be cleared")
	assert.Nil(t, stored.ResetExpiresAt)
}

func TestCheckResetToken(t *testing.T) {
	store := newMemStore()
	confirmedAccount(t, store, "probe@example.com")
	notifier := &recordingNotifier{}

	_, err := NewInitiateReset(store, notifier, time.Minute).
		Execute(context.Background(), InitiateResetInput{Email: "probe@example.com"})
	require.NoError(t, err)
	raw := notifier.lastResetToken()

	probe := NewCheckResetToken(store)

	result, err := probe.Execute(context.Background(), CheckResetTokenInput{Token: raw})
	require.NoError(t, err)
	assert.True(t, result.Valid)

	result, err = probe.Execute(context.Background(), CheckResetTokenInput{Token: "garbage"})
	require.NoError(t, err, "unknown token is a soft miss, not an error")
	assert.False(t, result.Valid)
}

func TestCheckResetTokenExpired(t *testing.T) {
	store := newMemStore()
	confirmedAccount(t, store, "probe@example.com")
	notifier := &recordingNotifier{}

	_, err := NewInitiateReset(store, notifier, -time.Second).
		Execute(context.Background(), InitiateResetInput{Email: "probe@example.com"})
	require.NoError(t, err)

	result, err := NewCheckResetToken(store).
		Execute(context.Background(), CheckResetTokenInput{Token: notifier.lastResetToken()})
	require.NoError(t, err)
	assert.False(t, result.Valid)
}

func TestCheckResetTokenStorageError(t *testing.T) {
	store := newMemStore()
	store.getErr = errors.New("connection refused")

	_, err := NewCheckResetToken(store).
		Execute(context.Background(), CheckResetTokenInput{Token: "whatever"})
	assert.Error(t, err, "storage failures propagate; only misses degrade to false")
}
