package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "user@example.com", NormalizeEmail("  User@EXAMPLE.com "))
	assert.Equal(t, "user@example.com", NormalizeEmail("user@example.com"))
}

func TestResetWindow(t *testing.T) {
	now := time.Now()
	var identity Identity

	assert.False(t, identity.ResetWindowExpired(now), "no window is never expired")

	identity.OpenResetWindow("fp-1", now.Add(time.Minute))
	assert.False(t, identity.ResetWindowExpired(now))
	assert.True(t, identity.ResetWindowExpired(now.Add(2*time.Minute)))

	identity.OpenResetWindow("fp-2", now.Add(time.Hour))
	assert.Equal(t, "fp-2", *identity.ResetFingerprint, "newer window replaces the old one")
	assert.False(t, identity.ResetWindowExpired(now.Add(2*time.Minute)))

	identity.ClearResetWindow()
	assert.Nil(t, identity.ResetFingerprint)
	assert.Nil(t, identity.ResetExpiresAt)
	assert.False(t, identity.ResetWindowExpired(now))

	identity.ClearResetWindow() // idempotent
	assert.Nil(t, identity.ResetFingerprint)
}
