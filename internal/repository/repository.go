// Package repository provides database access layer.
package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Collection names.
const (
	accountsCollection        = "accounts"
	repoConnectionsCollection = "repo_connections"
	waitlistCollection        = "waitlist"
)

// Repository provides database access methods.
type Repository struct {
	client *mongo.Client
	db     *mongo.Database
}

// New creates a new Repository connected to the given MongoDB database.
func New(ctx context.Context, databaseURL, databaseName string) (*Repository, error) {
	opts := options.Client().
		ApplyURI(databaseURL).
		SetMaxPoolSize(10).
		SetMinPoolSize(2).
		SetServerSelectionTimeout(5 * time.Second)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Repository{
		client: client,
		db:     client.Database(databaseName),
	}, nil
}

// EnsureIndexes creates the unique indexes the application relies on.
// Safe to call on every startup; index creation is idempotent.
func (r *Repository) EnsureIndexes(ctx context.Context) error {
	accountIdx := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	if _, err := r.accounts().Indexes().CreateMany(ctx, accountIdx); err != nil {
		return fmt.Errorf("create account indexes: %w", err)
	}

	repoIdx := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "account_id", Value: 1},
				{Key: "repo_full_name", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
	}
	if _, err := r.repoConnections().Indexes().CreateMany(ctx, repoIdx); err != nil {
		return fmt.Errorf("create repo connection indexes: %w", err)
	}

	waitlistIdx := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	if _, err := r.waitlist().Indexes().CreateMany(ctx, waitlistIdx); err != nil {
		return fmt.Errorf("create waitlist indexes: %w", err)
	}

	return nil
}

// Ping checks database connectivity.
func (r *Repository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx, readpref.Primary())
}

// Close disconnects the database client.
func (r *Repository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}

// Database returns the underlying database handle.
// Use sparingly - prefer adding methods to Repository.
func (r *Repository) Database() *mongo.Database {
	return r.db
}

func (r *Repository) accounts() *mongo.Collection {
	return r.db.Collection(accountsCollection)
}

func (r *Repository) repoConnections() *mongo.Collection {
	return r.db.Collection(repoConnectionsCollection)
}

func (r *Repository) waitlist() *mongo.Collection {
	return r.db.Collection(waitlistCollection)
}
