package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sentinelai/sentinel/internal/model"
)

// Common errors for repo connection repository operations.
var (
	ErrRepoConnectionNotFound = errors.New("repo connection not found")
	ErrRepoAlreadyConnected   = errors.New("repository already connected")
)

// CreateRepoConnection inserts a new repo connection.
// Returns ErrRepoAlreadyConnected if the account already has this repository.
func (r *Repository) CreateRepoConnection(ctx context.Context, conn *model.RepoConnection) error {
	_, err := r.repoConnections().InsertOne(ctx, conn)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrRepoAlreadyConnected
		}
		return fmt.Errorf("failed to create repo connection: %w", err)
	}

	return nil
}

// GetRepoConnection retrieves a connection by account and repository name.
func (r *Repository) GetRepoConnection(ctx context.Context, accountID, repoFullName string) (*model.RepoConnection, error) {
	filter := bson.M{
		"account_id":     accountID,
		"repo_full_name": repoFullName,
	}

	var conn model.RepoConnection
	if err := r.repoConnections().FindOne(ctx, filter).Decode(&conn); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrRepoConnectionNotFound
		}
		return nil, fmt.Errorf("failed to get repo connection: %w", err)
	}

	return &conn, nil
}

// ListRepoConnections returns all connections for an account, newest first.
func (r *Repository) ListRepoConnections(ctx context.Context, accountID string) ([]*model.RepoConnection, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.repoConnections().Find(ctx, bson.M{"account_id": accountID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list repo connections: %w", err)
	}
	defer cursor.Close(ctx)

	conns := make([]*model.RepoConnection, 0)
	if err := cursor.All(ctx, &conns); err != nil {
		return nil, fmt.Errorf("failed to decode repo connections: %w", err)
	}

	return conns, nil
}
