package ports

// PasswordHasher hashes and verifies passwords (Argon2id).
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

// SessionIssuer signs session credentials for a verified identity. Claims
// are intentionally minimal: display names only, no identifiers that change
// meaning over time.
type SessionIssuer interface {
	Issue(firstName, lastName string) (string, error)
	// Validate parses a credential and returns its name claims.
	Validate(credential string) (firstName, lastName string, err error)
}
