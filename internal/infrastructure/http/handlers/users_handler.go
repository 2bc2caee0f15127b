package handlers

import (
	"net/http"

	"github.com/lverg/accountkit/internal/infrastructure/http/middleware"
)

// UsersHandler serves the session-gated user surface.
type UsersHandler struct{}

func NewUsersHandler() *UsersHandler {
	return &UsersHandler{}
}

// Me echoes the validated session claims. The credential carries names only,
// so that is all this endpoint can return.
func (h *UsersHandler) Me(w http.ResponseWriter, r *http.Request) {
	session := middleware.SessionFromContext(r.Context())
	if session == nil {
		writeErr(w, http.StatusUnauthorized, "", "unauthorized")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"first_name": session.FirstName,
		"last_name":  session.LastName,
	})
}
