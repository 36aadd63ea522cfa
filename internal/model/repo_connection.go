package model

import (
	"regexp"
	"time"
)

// repoFullNameRegex validates "owner/repo" names. Owner and repo segments
// follow GitHub's allowed character set.
var repoFullNameRegex = regexp.MustCompile(`^[A-Za-z0-9](?:[A-Za-z0-9-]{0,38})/[A-Za-z0-9._-]{1,100}$`)

// ValidRepoFullName checks that the name looks like "owner/repo".
func ValidRepoFullName(name string) bool {
	return repoFullNameRegex.MatchString(name)
}

// RepoConnection associates an account with an external repository.
// Stored in the "repo_connections" collection.
type RepoConnection struct {
	ID            string    `bson:"_id" json:"id"`
	AccountID     string    `bson:"account_id" json:"account_id"`
	Provider      Provider  `bson:"provider" json:"provider"`
	RepoFullName  string    `bson:"repo_full_name" json:"repo_full_name"`
	DefaultBranch string    `bson:"default_branch,omitempty" json:"default_branch,omitempty"`
	CreatedAt     time.Time `bson:"created_at" json:"created_at"`
}
