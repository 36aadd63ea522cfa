package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sentinelai/sentinel/internal/auth"
	"github.com/sentinelai/sentinel/internal/github"
	"github.com/sentinelai/sentinel/internal/handler/dto"
	"github.com/sentinelai/sentinel/internal/service"
)

// oauthStateCookie is the CSRF cookie set before redirecting to GitHub.
const oauthStateCookie = "oauth_state"

// AuthHandler handles signup, login, OAuth, and the current-account endpoint.
type AuthHandler struct {
	svc         *service.AccountService
	frontendURL string
	logger      *slog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(svc *service.AccountService, frontendURL string, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		svc:         svc,
		frontendURL: strings.TrimSuffix(frontendURL, "/"),
		logger:      logger,
	}
}

// Signup handles POST /api/auth/signup.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req dto.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	result, err := h.svc.Signup(r.Context(), service.SignupInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Plan:     req.Plan,
	})
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("account_created",
		"account_id", result.Account.ID,
		"plan", result.Account.Plan,
	)

	writeJSON(w, http.StatusCreated, dto.AuthResponse{
		Token:   result.Token,
		Account: dto.ToAccountResponse(result.Account),
	})
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	result, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.AuthResponse{
		Token:   result.Token,
		Account: dto.ToAccountResponse(result.Account),
	})
}

// GitHubLogin handles GET /api/auth/github/login.
// Sets a short-lived state cookie and redirects to GitHub's authorize page.
func (h *AuthHandler) GitHubLogin(w http.ResponseWriter, r *http.Request) {
	state, err := github.GenerateState()
	if err != nil {
		h.logger.Error("oauth_state_failed", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
		return
	}

	authURL, err := h.svc.OAuthLoginURL(state)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     oauthStateCookie,
		Value:    state,
		Path:     "/api/auth/github",
		MaxAge:   int((10 * time.Minute).Seconds()),
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, authURL, http.StatusFound)
}

// GitHubCallback handles GET /api/auth/github/callback.
// On success the browser is sent to the frontend with the token in the
// query string; on failure it is sent there with an error code instead.
func (h *AuthHandler) GitHubCallback(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	if errCode := query.Get("error"); errCode != "" {
		// User denied the authorization, or GitHub reported a failure.
		h.redirectWithError(w, r, errCode)
		return
	}

	code := query.Get("code")
	state := query.Get("state")
	if code == "" || state == "" {
		h.redirectWithError(w, r, "missing_code")
		return
	}

	cookie, err := r.Cookie(oauthStateCookie)
	if err != nil || cookie.Value != state {
		h.logger.Warn("oauth_state_mismatch")
		h.redirectWithError(w, r, "state_mismatch")
		return
	}

	// Clear the state cookie; it is single-use.
	http.SetCookie(w, &http.Cookie{
		Name:     oauthStateCookie,
		Value:    "",
		Path:     "/api/auth/github",
		MaxAge:   -1,
		HttpOnly: true,
	})

	result, err := h.svc.CompleteOAuth(r.Context(), code)
	if err != nil {
		h.logger.Error("oauth_callback_failed", "error", err)
		h.redirectWithError(w, r, "oauth_failed")
		return
	}

	h.logger.Info("oauth_login",
		"account_id", result.Account.ID,
		"github_username", result.Account.GitHubUsername,
	)

	target := h.frontendURL + "/auth/callback?token=" + url.QueryEscape(result.Token)
	http.Redirect(w, r, target, http.StatusFound)
}

// Me handles GET /api/auth/me.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	authCtx := auth.AuthFromContext(r.Context())
	if authCtx == nil {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	account, err := h.svc.GetAccount(r.Context(), authCtx.AccountID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToAccountResponse(account))
}

func (h *AuthHandler) redirectWithError(w http.ResponseWriter, r *http.Request, code string) {
	target := h.frontendURL + "/auth/callback?error=" + url.QueryEscape(code)
	http.Redirect(w, r, target, http.StatusFound)
}

// handleServiceError maps service errors to HTTP responses.
func (h *AuthHandler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidEmail):
		writeError(w, http.StatusBadRequest, "INVALID_EMAIL", "Invalid email address")
	case errors.Is(err, service.ErrWeakPassword):
		writeError(w, http.StatusBadRequest, "WEAK_PASSWORD", "Password must be at least 8 characters")
	case errors.Is(err, service.ErrInvalidPlan):
		writeError(w, http.StatusBadRequest, "INVALID_PLAN", "Plan must be individual or team")
	case errors.Is(err, service.ErrEmailExists):
		writeError(w, http.StatusConflict, "EMAIL_EXISTS", "Email already registered")
	case errors.Is(err, service.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password")
	case errors.Is(err, service.ErrAccountNotFound):
		writeError(w, http.StatusNotFound, "ACCOUNT_NOT_FOUND", "Account not found")
	case errors.Is(err, service.ErrOAuthDisabled):
		writeError(w, http.StatusNotImplemented, "OAUTH_DISABLED", "GitHub login is not configured")
	default:
		h.logger.Error("internal_error", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
	}
}
