package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"

	"github.com/sentinelai/sentinel/internal/model"
)

// Token errors.
var (
	ErrTokenInvalid = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

// AccountClaims is the JWT claim set issued to authenticated accounts.
type AccountClaims struct {
	AccountID string     `json:"account_id"`
	Email     string     `json:"email"`
	Plan      model.Plan `json:"plan"`
	IssuedAt  int64      `json:"iat"`
	ExpiresAt int64      `json:"exp"`
}

// Valid implements jwt.Claims.
func (c AccountClaims) Valid() error {
	if c.AccountID == "" || c.Email == "" {
		return ErrTokenInvalid
	}
	if time.Now().Unix() >= c.ExpiresAt {
		return ErrTokenExpired
	}
	return nil
}

// TokenSigner issues and verifies HMAC-signed bearer tokens.
type TokenSigner struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenSigner creates a TokenSigner with the given secret and token lifetime.
func NewTokenSigner(secret string, ttl time.Duration) *TokenSigner {
	return &TokenSigner{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// Sign issues a signed token for the account.
func (s *TokenSigner) Sign(account *model.Account) (string, error) {
	now := time.Now()
	claims := AccountClaims{
		AccountID: account.ID,
		Email:     account.Email,
		Plan:      account.Plan,
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(s.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return signed, nil
}

// Verify parses and validates a token, returning its claims.
func (s *TokenSigner) Verify(tokenString string) (*AccountClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AccountClaims{}, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %s", t.Method.Alg())
		}
		return s.secret, nil
	})
	if err != nil {
		// jwt wraps claim validation errors; surface expiry distinctly
		if errors.Is(err, ErrTokenExpired) || isExpiryError(err) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}

	claims, ok := token.Claims.(*AccountClaims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}

func isExpiryError(err error) bool {
	var ve *jwt.ValidationError
	if errors.As(err, &ve) {
		return errors.Is(ve.Inner, ErrTokenExpired)
	}
	return false
}
