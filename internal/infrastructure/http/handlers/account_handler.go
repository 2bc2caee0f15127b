package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/lverg/accountkit/internal/application/account"
	"github.com/lverg/accountkit/internal/application/ports"
	domerrors "github.com/lverg/accountkit/internal/domain/errors"
	"github.com/lverg/accountkit/internal/infrastructure/http/middleware"
)

type AccountHandler struct {
	register      *account.Register
	confirm       *account.Confirm
	login         *account.Login
	initiateReset *account.InitiateReset
	completeReset *account.CompleteReset
	checkToken    *account.CheckResetToken
	emitter       ports.WebhookEmitter
	validate      *validator.Validate
	log           zerolog.Logger
}

func NewAccountHandler(register *account.Register, confirm *account.Confirm, login *account.Login, initiateReset *account.InitiateReset, completeReset *account.CompleteReset, checkToken *account.CheckResetToken, emitter ports.WebhookEmitter, log zerolog.Logger) *AccountHandler {
	return &AccountHandler{
		register:      register,
		confirm:       confirm,
		login:         login,
		initiateReset: initiateReset,
		completeReset: completeReset,
		checkToken:    checkToken,
		emitter:       emitter,
		validate:      validator.New(),
		log:           log,
	}
}

func (h *AccountHandler) Register(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email     string `json:"email" validate:"required,email,max=254"`
		Password  string `json:"password" validate:"required,max=128"`
		FirstName string `json:"first_name" validate:"required,max=100"`
		LastName  string `json:"last_name" validate:"required,max=100"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", err.Error())
		return
	}
	email := SanitizeEmail(body.Email)
	password := SanitizePassword(body.Password)
	if email == "" || password == "" {
		writeErr(w, http.StatusBadRequest, "", "invalid email or password length")
		return
	}
	result, err := h.register.Execute(r.Context(), account.RegisterInput{
		Email:     email,
		Password:  password,
		FirstName: SanitizeName(body.FirstName),
		LastName:  SanitizeName(body.LastName),
	})
	if err != nil {
		AuditEmit(h.log, r, h.emitter, "account.register", "", false, err.Error())
		middleware.RecordLifecycleEvent("register", false)
		h.writeLifecycleErr(w, err, "register failed")
		return
	}
	AuditEmit(h.log, r, h.emitter, "account.register", result.Identity.ID.String(), true, "")
	middleware.RecordLifecycleEvent("register", true)
	writeJSON(w, http.StatusCreated, map[string]string{"message": "confirm your email"})
}

func (h *AccountHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	if token == "" {
		writeErr(w, http.StatusBadRequest, "", "token required")
		return
	}
	result, err := h.confirm.Execute(r.Context(), account.ConfirmInput{Token: token})
	if err != nil {
		AuditEmit(h.log, r, h.emitter, "account.confirm", "", false, err.Error())
		middleware.RecordLifecycleEvent("confirm", false)
		h.writeLifecycleErr(w, err, "confirm failed")
		return
	}
	AuditEmit(h.log, r, h.emitter, "account.confirm", result.Identity.ID.String(), true, "")
	middleware.RecordLifecycleEvent("confirm", true)
	writeJSON(w, http.StatusOK, map[string]string{"message": "account confirmed"})
}

func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email" validate:"required,email,max=254"`
		Password string `json:"password" validate:"required,max=128"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", err.Error())
		return
	}
	email := SanitizeEmail(body.Email)
	password := SanitizePassword(body.Password)
	if email == "" || password == "" {
		writeErr(w, http.StatusBadRequest, "", "invalid email or password length")
		return
	}
	result, err := h.login.Execute(r.Context(), account.LoginInput{Email: email, Password: password})
	if err != nil {
		AuditEmit(h.log, r, h.emitter, "account.login", "", false, err.Error())
		middleware.RecordLifecycleEvent("login", false)
		h.writeLifecycleErr(w, err, "login failed")
		return
	}
	AuditEmit(h.log, r, h.emitter, "account.login", result.User.ID, true, "")
	middleware.RecordLifecycleEvent("login", true)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"token": result.Credential,
		"user":  result.User,
	})
}

func (h *AccountHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email string `json:"email" validate:"required,email,max=254"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", err.Error())
		return
	}
	email := SanitizeEmail(body.Email)
	if email == "" {
		writeErr(w, http.StatusBadRequest, "", "invalid email")
		return
	}
	_, err := h.initiateReset.Execute(r.Context(), account.InitiateResetInput{Email: email})
	if err != nil {
		AuditEmit(h.log, r, h.emitter, "account.reset.initiate", "", false, err.Error())
		middleware.RecordLifecycleEvent("reset_initiate", false)
		// Unknown emails get the same 202 as known ones so the endpoint
		// cannot be used to enumerate accounts.
		if errors.Is(err, domerrors.ErrIdentityNotFound) {
			writeJSON(w, http.StatusAccepted, map[string]string{"message": "if an account exists, reset instructions have been sent"})
			return
		}
		h.writeLifecycleErr(w, err, "initiate reset failed")
		return
	}
	AuditEmit(h.log, r, h.emitter, "account.reset.initiate", "", true, "")
	middleware.RecordLifecycleEvent("reset_initiate", true)
	writeJSON(w, http.StatusAccepted, map[string]string{"message": "if an account exists, reset instructions have been sent"})
}

func (h *AccountHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	if token == "" {
		writeErr(w, http.StatusBadRequest, "", "token required")
		return
	}
	var body struct {
		Password string `json:"password" validate:"required,max=128"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", err.Error())
		return
	}
	password := SanitizePassword(body.Password)
	if password == "" {
		writeErr(w, http.StatusBadRequest, "", "invalid password length")
		return
	}
	_, err := h.completeReset.Execute(r.Context(), account.CompleteResetInput{Token: token, NewPassword: password})
	if err != nil {
		AuditEmit(h.log, r, h.emitter, "account.reset.complete", "", false, err.Error())
		middleware.RecordLifecycleEvent("reset_complete", false)
		h.writeLifecycleErr(w, err, "reset failed")
		return
	}
	AuditEmit(h.log, r, h.emitter, "account.reset.complete", "", true, "")
	middleware.RecordLifecycleEvent("reset_complete", true)
	writeJSON(w, http.StatusOK, map[string]string{"message": "password has been reset"})
}

// CheckResetToken tells a frontend whether to render the reset form. A
// missing or expired token answers {"valid": false}, not an error.
func (h *AccountHandler) CheckResetToken(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	if token == "" {
		writeErr(w, http.StatusBadRequest, "", "token required")
		return
	}
	result, err := h.checkToken.Execute(r.Context(), account.CheckResetTokenInput{Token: token})
	if err != nil {
		h.log.Error().Err(err).Msg("check reset token failed")
		writeErr(w, http.StatusInternalServerError, "", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"valid": result.Valid})
}

// writeLifecycleErr maps lifecycle sentinels to HTTP responses.
func (h *AccountHandler) writeLifecycleErr(w http.ResponseWriter, err error, logMsg string) {
	switch {
	case errors.Is(err, domerrors.ErrPasswordMissingDigit), errors.Is(err, domerrors.ErrPasswordMissingLetter):
		writeErr(w, http.StatusBadRequest, ErrCodeWeakPassword, err.Error())
	case errors.Is(err, domerrors.ErrEmailTaken):
		writeErr(w, http.StatusConflict, ErrCodeConflict, err.Error())
	case errors.Is(err, domerrors.ErrInvalidCredentials):
		writeErr(w, http.StatusUnauthorized, ErrCodeInvalidCredentials, err.Error())
	case errors.Is(err, domerrors.ErrNotConfirmed):
		writeErr(w, http.StatusForbidden, ErrCodeNotConfirmed, err.Error())
	case errors.Is(err, domerrors.ErrInvalidToken):
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidToken, err.Error())
	case errors.Is(err, domerrors.ErrTokenExpired):
		writeErr(w, http.StatusBadRequest, ErrCodeTokenExpired, err.Error())
	case errors.Is(err, domerrors.ErrNotificationFailed):
		writeErr(w, http.StatusBadGateway, ErrCodeDeliveryFailed, domerrors.ErrNotificationFailed.Error())
	case errors.Is(err, domerrors.ErrVersionConflict):
		writeErr(w, http.StatusConflict, ErrCodeConflict, "please retry")
	case errors.Is(err, domerrors.ErrEntropyUnavailable):
		writeErr(w, http.StatusServiceUnavailable, ErrCodeUnavailable, "service unavailable")
	default:
		h.log.Error().Err(err).Msg(logMsg)
		writeErr(w, http.StatusInternalServerError, "", "internal error")
	}
}
