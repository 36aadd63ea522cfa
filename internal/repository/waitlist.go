package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/sentinelai/sentinel/internal/model"
)

// ErrAlreadyOnWaitlist indicates the email has already joined the waitlist.
var ErrAlreadyOnWaitlist = errors.New("email already on waitlist")

// AddWaitlistEntry inserts a waitlist entry.
// Returns ErrAlreadyOnWaitlist for duplicate emails.
func (r *Repository) AddWaitlistEntry(ctx context.Context, entry *model.WaitlistEntry) error {
	_, err := r.waitlist().InsertOne(ctx, entry)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrAlreadyOnWaitlist
		}
		return fmt.Errorf("failed to add waitlist entry: %w", err)
	}

	return nil
}

// CountWaitlist returns the number of waitlist entries.
func (r *Repository) CountWaitlist(ctx context.Context) (int64, error) {
	count, err := r.waitlist().CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count waitlist: %w", err)
	}

	return count, nil
}
