package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sentinelai/sentinel/internal/auth"
	"github.com/sentinelai/sentinel/internal/model"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRequireAuth(t *testing.T) {
	t.Parallel()

	signer := auth.NewTokenSigner("test-secret-for-middleware", time.Hour)
	otherSigner := auth.NewTokenSigner("a-different-secret", time.Hour)

	account := &model.Account{
		ID:    "01J0TESTACCOUNT0000000000",
		Email: "dev@example.com",
		Plan:  model.PlanIndividual,
	}

	validToken, err := signer.Sign(account)
	if err != nil {
		t.Fatalf("Sign() error = %v", err)
	}

	foreignToken, err := otherSigner.Sign(account)
	if err != nil {
		t.Fatalf("Sign() error = %v", err)
	}

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{
			name:       "valid bearer token",
			authHeader: "Bearer " + validToken,
			wantStatus: http.StatusOK,
		},
		{
			name:       "lowercase scheme accepted",
			authHeader: "bearer " + validToken,
			wantStatus: http.StatusOK,
		},
		{
			name:       "missing header",
			authHeader: "",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "wrong scheme",
			authHeader: "Basic " + validToken,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "empty token",
			authHeader: "Bearer ",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "garbage token",
			authHeader: "Bearer not.a.jwt",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "token signed with different secret",
			authHeader: "Bearer " + foreignToken,
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var gotAuth *model.AuthContext
			var reached bool

			handler := RequireAuth(signer, discardLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				reached = true
				gotAuth = auth.AuthFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}

			if tt.wantStatus == http.StatusOK {
				if !reached {
					t.Fatal("handler was not reached")
				}
				if gotAuth == nil {
					t.Fatal("auth context missing")
				}
				if gotAuth.AccountID != account.ID {
					t.Errorf("AccountID = %q, want %q", gotAuth.AccountID, account.ID)
				}
				if gotAuth.Email != account.Email {
					t.Errorf("Email = %q, want %q", gotAuth.Email, account.Email)
				}
				if gotAuth.Plan != model.PlanIndividual {
					t.Errorf("Plan = %q, want %q", gotAuth.Plan, model.PlanIndividual)
				}
			} else {
				if reached {
					t.Error("handler was reached despite rejection")
				}
				if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
					t.Errorf("Content-Type = %q, want application/json", ct)
				}
				if !strings.Contains(rec.Body.String(), "UNAUTHORIZED") {
					t.Errorf("body %q does not carry UNAUTHORIZED code", rec.Body.String())
				}
			}
		})
	}
}

func TestRequireAuthExpiredToken(t *testing.T) {
	t.Parallel()

	// Negative TTL yields an already-expired token.
	signer := auth.NewTokenSigner("test-secret-for-middleware", -time.Minute)

	token, err := signer.Sign(&model.Account{
		ID:    "01J0TESTACCOUNT0000000000",
		Email: "dev@example.com",
		Plan:  model.PlanTeam,
	})
	if err != nil {
		t.Fatalf("Sign() error = %v", err)
	}

	handler := RequireAuth(signer, discardLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler reached with expired token")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/repos", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}
