package model

import "time"

// WaitlistEntry captures an early-access signup, stored in the "waitlist" collection.
type WaitlistEntry struct {
	ID        string    `bson:"_id" json:"id"`
	Email     string    `bson:"email" json:"email"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
