//go:build integration

package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/sentinelai/sentinel/internal/model"
	"github.com/sentinelai/sentinel/internal/testutil"
)

// testDatabaseName keeps integration data away from any real database.
const testDatabaseName = "sentinelai_test"

func newTestEnv(t *testing.T) (context.Context, *Repository) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration tests in short mode")
	}

	ctx := context.Background()
	dbURL := testutil.RequireEnv(t, "DATABASE_URL")

	repo, err := New(ctx, dbURL, testDatabaseName)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	t.Cleanup(func() {
		_ = repo.Close(context.Background())
	})

	if err := testutil.ResetCollections(ctx, repo.Database()); err != nil {
		t.Fatalf("reset collections: %v", err)
	}

	if err := repo.EnsureIndexes(ctx); err != nil {
		t.Fatalf("ensure indexes: %v", err)
	}

	return ctx, repo
}

func TestIntegrationAccountRepository_CreateAndGet(t *testing.T) {
	ctx, repo := newTestEnv(t)

	account := testutil.NewTestAccount(t, testutil.UniqueEmail("create"))

	if err := repo.CreateAccount(ctx, account); err != nil {
		t.Fatalf("CreateAccount failed: %v", err)
	}

	byID, err := repo.GetAccountByID(ctx, account.ID)
	if err != nil {
		t.Fatalf("GetAccountByID failed: %v", err)
	}
	if byID.Email != account.Email {
		t.Errorf("Email mismatch: got %q, want %q", byID.Email, account.Email)
	}

	byEmail, err := repo.GetAccountByEmail(ctx, account.Email)
	if err != nil {
		t.Fatalf("GetAccountByEmail failed: %v", err)
	}
	if byEmail.ID != account.ID {
		t.Errorf("ID mismatch: got %q, want %q", byEmail.ID, account.ID)
	}
}

func TestIntegrationAccountRepository_DuplicateEmail(t *testing.T) {
	ctx, repo := newTestEnv(t)

	email := testutil.UniqueEmail("dup")
	first := testutil.NewTestAccount(t, email)
	second := testutil.NewTestAccount(t, email)

	if err := repo.CreateAccount(ctx, first); err != nil {
		t.Fatalf("CreateAccount (first) failed: %v", err)
	}

	err := repo.CreateAccount(ctx, second)
	if !errors.Is(err, ErrEmailExists) {
		t.Errorf("Expected ErrEmailExists, got: %v", err)
	}
}

func TestIntegrationAccountRepository_NotFound(t *testing.T) {
	ctx, repo := newTestEnv(t)

	if _, err := repo.GetAccountByID(ctx, "missing"); !errors.Is(err, ErrAccountNotFound) {
		t.Errorf("GetAccountByID: expected ErrAccountNotFound, got: %v", err)
	}

	if _, err := repo.GetAccountByEmail(ctx, "missing@example.com"); !errors.Is(err, ErrAccountNotFound) {
		t.Errorf("GetAccountByEmail: expected ErrAccountNotFound, got: %v", err)
	}
}

func TestIntegrationAccountRepository_UpsertGitHubAccount(t *testing.T) {
	ctx, repo := newTestEnv(t)

	email := testutil.UniqueEmail("gh")
	account := testutil.NewTestAccount(t, email)
	account.HashedPassword = ""
	account.Provider = model.ProviderGitHub
	account.GitHubUsername = "octocat"

	created, err := repo.UpsertGitHubAccount(ctx, account)
	if err != nil {
		t.Fatalf("UpsertGitHubAccount (insert) failed: %v", err)
	}
	if created.GitHubUsername != "octocat" {
		t.Errorf("GitHubUsername = %q, want octocat", created.GitHubUsername)
	}

	// Second login with a changed avatar must update, not duplicate.
	account.AvatarURL = "https://avatars.example/octocat.png"
	updated, err := repo.UpsertGitHubAccount(ctx, account)
	if err != nil {
		t.Fatalf("UpsertGitHubAccount (update) failed: %v", err)
	}

	if updated.ID != created.ID {
		t.Errorf("upsert created a second account: %q vs %q", updated.ID, created.ID)
	}
	if updated.AvatarURL != account.AvatarURL {
		t.Errorf("AvatarURL = %q, want %q", updated.AvatarURL, account.AvatarURL)
	}
}

func TestIntegrationAccountRepository_UpsertPreservesPasswordAccount(t *testing.T) {
	ctx, repo := newTestEnv(t)

	email := testutil.UniqueEmail("linked")
	account := testutil.NewTestAccount(t, email)
	if err := repo.CreateAccount(ctx, account); err != nil {
		t.Fatalf("CreateAccount failed: %v", err)
	}

	ghAccount := testutil.NewTestAccount(t, email)
	ghAccount.HashedPassword = ""
	ghAccount.Provider = model.ProviderGitHub
	ghAccount.GitHubUsername = "octocat"

	linked, err := repo.UpsertGitHubAccount(ctx, ghAccount)
	if err != nil {
		t.Fatalf("UpsertGitHubAccount failed: %v", err)
	}

	if linked.ID != account.ID {
		t.Errorf("GitHub login should link to existing account, got new ID %q", linked.ID)
	}
	if !linked.HasPassword() {
		t.Error("linking GitHub must not drop the password credential")
	}
}
