// Package testutil provides helpers for integration tests.
package testutil

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/sentinelai/sentinel/internal/model"
)

// RequireEnv returns an environment variable or skips the test if missing.
func RequireEnv(t testing.TB, key string) string {
	t.Helper()
	value := os.Getenv(key)
	if value == "" {
		t.Skipf("%s not set", key)
	}
	return value
}

// ResetCollections drops the application collections so each integration
// test starts from an empty database. Indexes are rebuilt by the caller.
func ResetCollections(ctx context.Context, db *mongo.Database) error {
	for _, name := range []string{"accounts", "repo_connections", "waitlist"} {
		if err := db.Collection(name).Drop(ctx); err != nil {
			return fmt.Errorf("drop %s: %w", name, err)
		}
	}
	return nil
}

// FlushRedis clears the current Redis database.
func FlushRedis(ctx context.Context, client *redis.Client) error {
	return client.FlushDB(ctx).Err()
}

// ============================================================================
// Test Data Factories
// ============================================================================

// NewTestAccount creates a password account with sensible defaults.
func NewTestAccount(t testing.TB, email string) *model.Account {
	t.Helper()
	now := time.Now().UTC()
	return &model.Account{
		ID:             ulid.Make().String(),
		Email:          email,
		HashedPassword: "$argon2id$v=19$m=65536,t=3,p=4$dGVzdHNhbHQ$dGVzdGhhc2g",
		Name:           "Test Account",
		Plan:           model.PlanIndividual,
		Provider:       model.ProviderPassword,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// NewTestRepoConnection creates a repo connection with sensible defaults.
func NewTestRepoConnection(t testing.TB, accountID, repoFullName string) *model.RepoConnection {
	t.Helper()
	return &model.RepoConnection{
		ID:           ulid.Make().String(),
		AccountID:    accountID,
		Provider:     model.ProviderGitHub,
		RepoFullName: repoFullName,
		CreatedAt:    time.Now().UTC(),
	}
}

// UniqueEmail generates a unique email address for tests.
func UniqueEmail(prefix string) string {
	return fmt.Sprintf("%s-%d@example.com", prefix, time.Now().UnixNano())
}

// UniqueID generates a unique ID for tests.
func UniqueID(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano())
}
