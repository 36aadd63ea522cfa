package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	gogithub "github.com/google/go-github/v68/github"
)

// ErrNoEmail indicates the GitHub account exposes no usable email address.
var ErrNoEmail = errors.New("github account has no verified email")

// UserProfile is the subset of the GitHub user we store on an account.
type UserProfile struct {
	Login     string
	Name      string
	Email     string
	AvatarURL string
}

// Client fetches user and repository metadata from the GitHub API.
type Client struct {
	// baseURL overrides the API endpoint, for tests.
	baseURL string
}

// NewClient creates a Client against the public GitHub API.
func NewClient() *Client {
	return &Client{}
}

// NewClientWithBaseURL creates a Client against a custom API endpoint.
func NewClientWithBaseURL(baseURL string) *Client {
	return &Client{baseURL: baseURL}
}

func (c *Client) api(httpClient *http.Client) (*gogithub.Client, error) {
	gh := gogithub.NewClient(httpClient)
	if c.baseURL != "" {
		return gh.WithEnterpriseURLs(c.baseURL, c.baseURL)
	}
	return gh, nil
}

// FetchUser retrieves the authenticated user's profile. When the public
// profile hides the email, the primary verified address is used instead.
func (c *Client) FetchUser(ctx context.Context, httpClient *http.Client) (*UserProfile, error) {
	gh, err := c.api(httpClient)
	if err != nil {
		return nil, fmt.Errorf("build github client: %w", err)
	}

	user, _, err := gh.Users.Get(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("fetch github user: %w", err)
	}

	profile := &UserProfile{
		Login:     user.GetLogin(),
		Name:      user.GetName(),
		Email:     user.GetEmail(),
		AvatarURL: user.GetAvatarURL(),
	}

	if profile.Email == "" {
		emails, _, err := gh.Users.ListEmails(ctx, nil)
		if err != nil {
			return nil, fmt.Errorf("list github emails: %w", err)
		}
		for _, e := range emails {
			if e.GetPrimary() && e.GetVerified() {
				profile.Email = e.GetEmail()
				break
			}
		}
	}

	if profile.Email == "" {
		return nil, ErrNoEmail
	}

	return profile, nil
}

// LookupDefaultBranch fetches the default branch of a public repository.
// Returns an empty string without error when the repository is not visible;
// connect remains best-effort for private repos.
func (c *Client) LookupDefaultBranch(ctx context.Context, owner, repo string) (string, error) {
	gh, err := c.api(nil)
	if err != nil {
		return "", fmt.Errorf("build github client: %w", err)
	}

	repository, resp, err := gh.Repositories.Get(ctx, owner, repo)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return "", nil
		}
		return "", fmt.Errorf("fetch repository: %w", err)
	}

	return repository.GetDefaultBranch(), nil
}
