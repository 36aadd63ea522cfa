package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sentinelai/sentinel/internal/model"
)

// Common errors for account repository operations.
var (
	ErrAccountNotFound = errors.New("account not found")
	ErrEmailExists     = errors.New("email already exists")
)

// CreateAccount inserts a new account.
func (r *Repository) CreateAccount(ctx context.Context, account *model.Account) error {
	_, err := r.accounts().InsertOne(ctx, account)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrEmailExists
		}
		return fmt.Errorf("failed to create account: %w", err)
	}

	return nil
}

// GetAccountByID retrieves an account by its ID.
func (r *Repository) GetAccountByID(ctx context.Context, id string) (*model.Account, error) {
	var account model.Account
	err := r.accounts().FindOne(ctx, bson.M{"_id": id}).Decode(&account)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account by ID: %w", err)
	}

	return &account, nil
}

// GetAccountByEmail retrieves an account by its email address.
// Emails are stored lowercased; callers must normalize before lookup.
func (r *Repository) GetAccountByEmail(ctx context.Context, email string) (*model.Account, error) {
	var account model.Account
	err := r.accounts().FindOne(ctx, bson.M{"email": email}).Decode(&account)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account by email: %w", err)
	}

	return &account, nil
}

// UpsertGitHubAccount creates or refreshes an account for a GitHub identity,
// keyed by email. Existing password accounts keep their credential; the GitHub
// profile fields are updated on every login.
func (r *Repository) UpsertGitHubAccount(ctx context.Context, account *model.Account) (*model.Account, error) {
	now := time.Now().UTC()

	filter := bson.M{"email": account.Email}
	update := bson.M{
		"$set": bson.M{
			"github_username": account.GitHubUsername,
			"avatar_url":      account.AvatarURL,
			"updated_at":      now,
		},
		"$setOnInsert": bson.M{
			"_id":        account.ID,
			"email":      account.Email,
			"name":       account.Name,
			"plan":       account.Plan,
			"provider":   model.ProviderGitHub,
			"created_at": now,
		},
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var result model.Account
	if err := r.accounts().FindOneAndUpdate(ctx, filter, update, opts).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to upsert github account: %w", err)
	}

	return &result, nil
}
