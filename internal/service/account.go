// Package service provides business logic for the application.
package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/sentinelai/sentinel/internal/auth"
	"github.com/sentinelai/sentinel/internal/github"
	"github.com/sentinelai/sentinel/internal/metrics"
	"github.com/sentinelai/sentinel/internal/model"
	"github.com/sentinelai/sentinel/internal/repository"
)

// Service errors.
var (
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrWeakPassword       = errors.New("password too short")
	ErrInvalidPlan        = errors.New("invalid plan")
	ErrEmailExists        = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountNotFound    = errors.New("account not found")
	ErrOAuthDisabled      = errors.New("github oauth is not configured")
	ErrAlreadyOnWaitlist  = errors.New("email already on waitlist")
)

// minPasswordLength is the minimum accepted password length.
const minPasswordLength = 8

// AccountService handles signup, login, and OAuth account management.
type AccountService struct {
	repo    *repository.Repository
	signer  *auth.TokenSigner
	oauth   *github.OAuth
	gh      *github.Client
	metrics metrics.Recorder
}

// NewAccountService creates a new AccountService.
// oauth may be nil when GitHub credentials are not configured.
func NewAccountService(repo *repository.Repository, signer *auth.TokenSigner, oauth *github.OAuth, gh *github.Client, recorder metrics.Recorder) *AccountService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	if gh == nil {
		gh = github.NewClient()
	}
	return &AccountService{
		repo:    repo,
		signer:  signer,
		oauth:   oauth,
		gh:      gh,
		metrics: recorder,
	}
}

// SignupInput defines input for creating an account.
type SignupInput struct {
	Email    string
	Password string
	Name     string
	Plan     string
}

// AuthResult pairs an account with its freshly issued token.
type AuthResult struct {
	Account *model.Account
	Token   string
}

// Signup creates a password account and issues a token.
func (s *AccountService) Signup(ctx context.Context, input SignupInput) (*AuthResult, error) {
	email, err := normalizeEmail(input.Email)
	if err != nil {
		return nil, err
	}

	if len(input.Password) < minPasswordLength {
		return nil, ErrWeakPassword
	}

	plan := model.PlanIndividual
	if input.Plan != "" {
		plan = model.Plan(input.Plan)
		if !plan.IsValid() {
			return nil, ErrInvalidPlan
		}
	}

	hashed, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	account := &model.Account{
		ID:             ulid.Make().String(),
		Email:          email,
		HashedPassword: hashed,
		Name:           strings.TrimSpace(input.Name),
		Plan:           plan,
		Provider:       model.ProviderPassword,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.repo.CreateAccount(ctx, account); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("create account: %w", err)
	}

	token, err := s.signer.Sign(account)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	s.metrics.IncSignup()

	return &AuthResult{Account: account, Token: token}, nil
}

// Login verifies credentials and issues a token.
// All failure modes return ErrInvalidCredentials to prevent enumeration.
func (s *AccountService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	normalized, err := normalizeEmail(email)
	if err != nil {
		s.metrics.IncLogin("failed")
		return nil, ErrInvalidCredentials
	}

	account, err := s.repo.GetAccountByEmail(ctx, normalized)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			s.metrics.IncLogin("failed")
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup account: %w", err)
	}

	// GitHub-only accounts have no local credential.
	if !account.HasPassword() {
		s.metrics.IncLogin("failed")
		return nil, ErrInvalidCredentials
	}

	match, err := auth.VerifyPassword(password, account.HashedPassword)
	if err != nil || !match {
		s.metrics.IncLogin("failed")
		return nil, ErrInvalidCredentials
	}

	token, err := s.signer.Sign(account)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	s.metrics.IncLogin("success")

	return &AuthResult{Account: account, Token: token}, nil
}

// OAuthLoginURL returns the GitHub authorize URL for the given state.
func (s *AccountService) OAuthLoginURL(state string) (string, error) {
	if s.oauth == nil {
		return "", ErrOAuthDisabled
	}
	return s.oauth.AuthCodeURL(state), nil
}

// CompleteOAuth exchanges the callback code, loads the GitHub profile,
// upserts the account, and issues a token.
func (s *AccountService) CompleteOAuth(ctx context.Context, code string) (*AuthResult, error) {
	if s.oauth == nil {
		return nil, ErrOAuthDisabled
	}

	token, err := s.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchange oauth code: %w", err)
	}

	profile, err := s.gh.FetchUser(ctx, s.oauth.HTTPClient(ctx, token))
	if err != nil {
		return nil, fmt.Errorf("fetch github profile: %w", err)
	}

	email, err := normalizeEmail(profile.Email)
	if err != nil {
		return nil, fmt.Errorf("github profile email: %w", err)
	}

	name := profile.Name
	if name == "" {
		name = profile.Login
	}

	account, err := s.repo.UpsertGitHubAccount(ctx, &model.Account{
		ID:             ulid.Make().String(),
		Email:          email,
		Name:           name,
		Plan:           model.PlanIndividual,
		Provider:       model.ProviderGitHub,
		GitHubUsername: profile.Login,
		AvatarURL:      profile.AvatarURL,
	})
	if err != nil {
		return nil, fmt.Errorf("upsert account: %w", err)
	}

	signed, err := s.signer.Sign(account)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	s.metrics.IncOAuthLogin()

	return &AuthResult{Account: account, Token: signed}, nil
}

// GetAccount loads an account by ID.
func (s *AccountService) GetAccount(ctx context.Context, id string) (*model.Account, error) {
	account, err := s.repo.GetAccountByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return account, nil
}

// JoinWaitlist records an early-access signup.
// Returns ErrAlreadyOnWaitlist when the email was captured before.
func (s *AccountService) JoinWaitlist(ctx context.Context, email string) error {
	normalized, err := normalizeEmail(email)
	if err != nil {
		return err
	}

	entry := &model.WaitlistEntry{
		ID:        ulid.Make().String(),
		Email:     normalized,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.AddWaitlistEntry(ctx, entry); err != nil {
		if errors.Is(err, repository.ErrAlreadyOnWaitlist) {
			return ErrAlreadyOnWaitlist
		}
		return fmt.Errorf("add waitlist entry: %w", err)
	}

	s.metrics.IncWaitlistJoined()

	return nil
}

// normalizeEmail lowercases and validates an email address.
func normalizeEmail(email string) (string, error) {
	trimmed := strings.TrimSpace(strings.ToLower(email))
	if trimmed == "" {
		return "", ErrInvalidEmail
	}

	addr, err := mail.ParseAddress(trimmed)
	if err != nil || addr.Address != trimmed {
		return "", ErrInvalidEmail
	}

	return trimmed, nil
}
