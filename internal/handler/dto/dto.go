// Package dto provides Data Transfer Objects for API requests and responses.
package dto

import (
	"time"

	"github.com/sentinelai/sentinel/internal/model"
)

// SignupRequest represents the request body for creating an account.
type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
	Plan     string `json:"plan,omitempty"`
}

// LoginRequest represents the request body for password login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// WaitlistRequest represents the request body for joining the waitlist.
type WaitlistRequest struct {
	Email string `json:"email"`
}

// ConnectRepoRequest represents the request body for connecting a repository.
type ConnectRepoRequest struct {
	RepoFullName string `json:"repo_full_name"`
}

// AccountResponse represents an account in API responses.
type AccountResponse struct {
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	Name           string    `json:"name,omitempty"`
	Plan           string    `json:"plan"`
	Provider       string    `json:"provider"`
	GitHubUsername string    `json:"github_username,omitempty"`
	AvatarURL      string    `json:"avatar_url,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// AuthResponse pairs a bearer token with the authenticated account.
type AuthResponse struct {
	Token   string           `json:"token"`
	Account *AccountResponse `json:"account"`
}

// NewsItemResponse represents one aggregated feed entry.
type NewsItemResponse struct {
	Title     string `json:"title"`
	Link      string `json:"link"`
	Published string `json:"published,omitempty"`
	Source    string `json:"source"`
}

// NewsResponse represents a page of the aggregated news list.
type NewsResponse struct {
	Items      []NewsItemResponse `json:"items"`
	Page       int                `json:"page"`
	PageSize   int                `json:"page_size"`
	Total      int                `json:"total"`
	TotalPages int                `json:"total_pages"`
}

// RepoConnectionResponse represents a repository connection.
type RepoConnectionResponse struct {
	ID            string    `json:"id"`
	RepoFullName  string    `json:"repo_full_name"`
	Provider      string    `json:"provider"`
	DefaultBranch string    `json:"default_branch,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// RepoListResponse represents the account's repository connections.
type RepoListResponse struct {
	Connections []RepoConnectionResponse `json:"connections"`
}

// WaitlistResponse acknowledges a waitlist signup.
type WaitlistResponse struct {
	Status string `json:"status"`
}

// ErrorResponse represents an API error.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// ToAccountResponse converts an Account model to its API shape.
func ToAccountResponse(account *model.Account) *AccountResponse {
	return &AccountResponse{
		ID:             account.ID,
		Email:          account.Email,
		Name:           account.Name,
		Plan:           string(account.Plan),
		Provider:       string(account.Provider),
		GitHubUsername: account.GitHubUsername,
		AvatarURL:      account.AvatarURL,
		CreatedAt:      account.CreatedAt,
	}
}

// ToNewsResponse converts a page of news items to its API shape.
func ToNewsResponse(items []model.NewsItem, page, pageSize, total, totalPages int) *NewsResponse {
	out := make([]NewsItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, NewsItemResponse{
			Title:     item.Title,
			Link:      item.Link,
			Published: item.Published,
			Source:    item.Source,
		})
	}
	return &NewsResponse{
		Items:      out,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
	}
}

// ToRepoConnectionResponse converts a RepoConnection model to its API shape.
func ToRepoConnectionResponse(conn *model.RepoConnection) *RepoConnectionResponse {
	return &RepoConnectionResponse{
		ID:            conn.ID,
		RepoFullName:  conn.RepoFullName,
		Provider:      string(conn.Provider),
		DefaultBranch: conn.DefaultBranch,
		CreatedAt:     conn.CreatedAt,
	}
}

// ToRepoListResponse converts connections to the list API shape.
func ToRepoListResponse(conns []*model.RepoConnection) *RepoListResponse {
	out := make([]RepoConnectionResponse, 0, len(conns))
	for _, conn := range conns {
		out = append(out, *ToRepoConnectionResponse(conn))
	}
	return &RepoListResponse{Connections: out}
}
