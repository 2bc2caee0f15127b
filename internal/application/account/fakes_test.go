package account

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/lverg/accountkit/internal/domain"
	domerrors "github.com/lverg/accountkit/internal/domain/errors"
)

// memStore is an in-memory CredentialStore with the same versioned-save
// contract the Postgres repository has. Lookups return copies so a test
// holding an aggregate cannot mutate the stored row behind the store's back.
type memStore struct {
	mu      sync.Mutex
	rows    map[string]domain.Identity // keyed by ID
	getErr  error
	saveErr error
}

func newMemStore() *memStore {
	return &memStore{rows: make(map[string]domain.Identity)}
}

func (s *memStore) Create(ctx context.Context, identity *domain.Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, row := range s.rows {
		if row.Email == identity.Email {
			return domerrors.ErrEmailTaken
		}
	}
	s.rows[identity.ID.String()] = *identity
	return nil
}

func (s *memStore) GetByEmail(ctx context.Context, email string) (*domain.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.getErr != nil {
		return nil, s.getErr
	}
	for _, row := range s.rows {
		if row.Email == email {
			cp := row
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *memStore) GetByResetFingerprint(ctx context.Context, fingerprint string) (*domain.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.getErr != nil {
		return nil, s.getErr
	}
	for _, row := range s.rows {
		if row.ResetFingerprint != nil && *row.ResetFingerprint == fingerprint {
			cp := row
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *memStore) Save(ctx context.Context, identity *domain.Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	stored, ok := s.rows[identity.ID.String()]
	if !ok || stored.Version != identity.Version {
		return domerrors.ErrVersionConflict
	}
	identity.Version++
	s.rows[identity.ID.String()] = *identity
	return nil
}

// plainHasher is a transparent PasswordHasher so tests can assert on the
// stored credential directly.
type plainHasher struct {
	hashErr error
}

func (h *plainHasher) Hash(password string) (string, error) {
	if h.hashErr != nil {
		return "", h.hashErr
	}
	return "hashed:" + password, nil
}

func (h *plainHasher) Verify(password, hash string) bool {
	return hash == "hashed:"+password
}

// stubIssuer issues a predictable credential from the name claims.
type stubIssuer struct {
	issueErr error
}

func (i *stubIssuer) Issue(firstName, lastName string) (string, error) {
	if i.issueErr != nil {
		return "", i.issueErr
	}
	return fmt.Sprintf("session(%s %s)", firstName, lastName), nil
}

func (i *stubIssuer) Validate(credential string) (string, string, error) {
	return "", "", errors.New("not implemented")
}

// recordingNotifier captures delivered raw tokens.
type recordingNotifier struct {
	mu            sync.Mutex
	confirmTokens []string
	resetTokens   []string
	confirmErr    error
	resetErr      error
}

func (n *recordingNotifier) SendConfirmation(ctx context.Context, identity *domain.Identity, rawToken string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.confirmErr != nil {
		return n.confirmErr
	}
	n.confirmTokens = append(n.confirmTokens, rawToken)
	return nil
}

func (n *recordingNotifier) SendResetInstructions(ctx context.Context, identity *domain.Identity, rawToken string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.resetErr != nil {
		return n.resetErr
	}
	n.resetTokens = append(n.resetTokens, rawToken)
	return nil
}

func (n *recordingNotifier) lastResetToken() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.resetTokens) == 0 {
		return ""
	}
	return n.resetTokens[len(n.resetTokens)-1]
}
