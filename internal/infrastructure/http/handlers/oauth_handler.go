package handlers

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
	"github.com/markbates/goth"
	"github.com/markbates/goth/gothic"
	"github.com/markbates/goth/providers/google"

	"github.com/lverg/accountkit/internal/application/account"
)

// InitOAuthProviders registers Goth providers and session store. Call once
// at startup.
func InitOAuthProviders(callbackBaseURL, sessionSecret, googleClientID, googleClientSecret string) {
	if googleClientID != "" && googleClientSecret != "" {
		callbackURL := callbackBaseURL + "/auth/google/callback"
		goth.UseProviders(google.New(googleClientID, googleClientSecret, callbackURL))
	}
	if sessionSecret != "" {
		gothic.Store = sessions.NewCookieStore([]byte(sessionSecret))
	}
}

// OAuthBegin redirects to the OAuth provider. Provider from URL: /auth/{provider}.
func OAuthBegin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		provider := chi.URLParam(r, "provider")
		if provider == "" {
			writeErr(w, http.StatusBadRequest, "", "provider required")
			return
		}
		if _, err := goth.GetProvider(provider); err != nil {
			writeErr(w, http.StatusBadRequest, "", "unknown provider")
			return
		}
		// Gothic expects provider in query
		r2 := r.Clone(r.Context())
		q := r2.URL.Query()
		q.Set("provider", provider)
		r2.URL.RawQuery = q.Encode()
		authURL, err := gothic.GetAuthURL(w, r2)
		if err != nil {
			writeErr(w, http.StatusInternalServerError, "", "internal error")
			return
		}
		http.Redirect(w, r, authURL, http.StatusTemporaryRedirect)
	}
}

// OAuthCallback completes provider auth and hands the verified identity
// assertion to ExternalLogin: the provider already verified the email, so
// the confirmation gate does not apply.
func OAuthCallback(externalLogin *account.ExternalLogin, redirectURL string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		provider := chi.URLParam(r, "provider")
		if provider == "" {
			writeErr(w, http.StatusBadRequest, "", "provider required")
			return
		}
		r2 := r.Clone(r.Context())
		q := r2.URL.Query()
		q.Set("provider", provider)
		r2.URL.RawQuery = q.Encode()
		gothUser, err := gothic.CompleteUserAuth(w, r2)
		if err != nil {
			writeErr(w, http.StatusUnauthorized, "", "oauth failed")
			return
		}
		result, err := externalLogin.Execute(r.Context(), account.ExternalLoginInput{
			Email:     gothUser.Email,
			FirstName: gothUser.FirstName,
			LastName:  gothUser.LastName,
		})
		if err != nil {
			writeErr(w, http.StatusInternalServerError, "", "internal error")
			return
		}
		// Redirect to frontend with the credential in query (client should
		// move it to storage and strip the URL).
		u, _ := url.Parse(redirectURL)
		uq := u.Query()
		uq.Set("token", result.Credential)
		u.RawQuery = uq.Encode()
		http.Redirect(w, r, u.String(), http.StatusTemporaryRedirect)
	}
}
