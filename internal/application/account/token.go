package account

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	domerrors "github.com/lverg/accountkit/internal/domain/errors"
)

// tokenBytes gives 256 bits of entropy; the hex raw token is 64 chars.
const tokenBytes = 32

// TokenPair is an ephemeral raw token plus its storable fingerprint. Raw is
// handed to the notifier and never persisted; Fingerprint is what the store
// keeps and what lookups key on.
type TokenPair struct {
	Raw         string
	Fingerprint string
}

// GenerateToken draws a raw token from the system random source and derives
// its fingerprint. The token itself is the secret, so the fingerprint needs
// no salt or key.
func GenerateToken() (TokenPair, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return TokenPair{}, fmt.Errorf("%w: %v", domerrors.ErrEntropyUnavailable, err)
	}
	raw := hex.EncodeToString(buf)
	return TokenPair{Raw: raw, Fingerprint: Fingerprint(raw)}, nil
}

// Fingerprint re-derives the storage fingerprint of a caller-presented raw
// token. Deterministic; matches the fingerprint GenerateToken produced for
// the same raw value.
func Fingerprint(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
