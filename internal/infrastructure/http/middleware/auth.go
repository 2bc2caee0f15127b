package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/lverg/accountkit/internal/application/ports"
)

// SessionValidator validates the bearer session credential and sets the
// session in context (see SessionFromContext).
type SessionValidator struct {
	issuer ports.SessionIssuer
}

func NewSessionValidator(issuer ports.SessionIssuer) *SessionValidator {
	return &SessionValidator{issuer: issuer}
}

func (m *SessionValidator) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			writeAuthErr(w, "missing or invalid authorization")
			return
		}
		firstName, lastName, err := m.issuer.Validate(strings.TrimPrefix(auth, "Bearer "))
		if err != nil {
			writeAuthErr(w, "invalid session credential")
			return
		}
		ctx := WithSession(r.Context(), &Session{FirstName: firstName, LastName: lastName})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func writeAuthErr(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message, "code": "unauthorized"})
}
