// Package model defines domain entities for the application.
package model

import "time"

// Plan represents the account tier.
type Plan string

const (
	PlanIndividual Plan = "individual"
	PlanTeam       Plan = "team"
)

// IsValid checks if the plan is a known tier.
func (p Plan) IsValid() bool {
	return p == PlanIndividual || p == PlanTeam
}

// Provider represents how an account authenticates.
type Provider string

const (
	ProviderPassword Provider = "password"
	ProviderGitHub   Provider = "github"
)

// Account represents a registered user, stored in the "accounts" collection.
type Account struct {
	ID             string    `bson:"_id" json:"id"`
	Email          string    `bson:"email" json:"email"`
	HashedPassword string    `bson:"hashed_password,omitempty" json:"-"`
	Name           string    `bson:"name,omitempty" json:"name,omitempty"`
	Plan           Plan      `bson:"plan" json:"plan"`
	Provider       Provider  `bson:"provider" json:"provider"`
	GitHubUsername string    `bson:"github_username,omitempty" json:"github_username,omitempty"`
	AvatarURL      string    `bson:"avatar_url,omitempty" json:"avatar_url,omitempty"`
	CreatedAt      time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time `bson:"updated_at" json:"updated_at"`
}

// HasPassword reports whether the account can log in with a password.
// GitHub-only accounts have no local credential.
func (a *Account) HasPassword() bool {
	return a.HashedPassword != ""
}

// AuthContext carries the authenticated identity through a request.
type AuthContext struct {
	AccountID string
	Email     string
	Plan      Plan
}
