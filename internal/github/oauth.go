// Package github integrates with GitHub for OAuth login and repository metadata.
package github

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/oauth2"
	githuboauth "golang.org/x/oauth2/github"
)

// OAuth wraps the GitHub OAuth authorization-code flow.
type OAuth struct {
	config *oauth2.Config
}

// NewOAuth builds the OAuth config. The callback is served by this backend;
// the frontend only receives the final token.
func NewOAuth(clientID, clientSecret, backendURL string) *OAuth {
	return &OAuth{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			Endpoint:     githuboauth.Endpoint,
			RedirectURL:  strings.TrimSuffix(backendURL, "/") + "/api/auth/github/callback",
			Scopes:       []string{"read:user", "user:email"},
		},
	}
}

// AuthCodeURL returns the GitHub authorize URL for the given CSRF state.
func (o *OAuth) AuthCodeURL(state string) string {
	return o.config.AuthCodeURL(state)
}

// Exchange trades an authorization code for an access token.
func (o *OAuth) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	token, err := o.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("oauth exchange: %w", err)
	}
	return token, nil
}

// HTTPClient returns an HTTP client that authenticates with the given token.
func (o *OAuth) HTTPClient(ctx context.Context, token *oauth2.Token) *http.Client {
	return o.config.Client(ctx, token)
}

// GenerateState returns a random URL-safe state value for CSRF protection.
func GenerateState() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate state: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
