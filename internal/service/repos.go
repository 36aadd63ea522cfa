package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/sentinelai/sentinel/internal/github"
	"github.com/sentinelai/sentinel/internal/metrics"
	"github.com/sentinelai/sentinel/internal/model"
	"github.com/sentinelai/sentinel/internal/repository"
)

// ErrInvalidRepoName indicates the name is not of the form "owner/repo".
var ErrInvalidRepoName = errors.New("invalid repository name")

// RepoService manages repository connections.
type RepoService struct {
	repo    *repository.Repository
	gh      *github.Client
	logger  *slog.Logger
	metrics metrics.Recorder
}

// NewRepoService creates a new RepoService.
func NewRepoService(repo *repository.Repository, gh *github.Client, logger *slog.Logger, recorder metrics.Recorder) *RepoService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	if gh == nil {
		gh = github.NewClient()
	}
	return &RepoService{
		repo:    repo,
		gh:      gh,
		logger:  logger.With("component", "service.repos"),
		metrics: recorder,
	}
}

// ConnectResult reports whether the connection was newly created.
type ConnectResult struct {
	Connection *model.RepoConnection
	Created    bool
}

// Connect links a repository to the account. The operation is idempotent:
// connecting an already-linked repository returns the existing connection.
func (s *RepoService) Connect(ctx context.Context, accountID, repoFullName string) (*ConnectResult, error) {
	name := strings.TrimSpace(repoFullName)
	if !model.ValidRepoFullName(name) {
		return nil, ErrInvalidRepoName
	}

	conn := &model.RepoConnection{
		ID:           ulid.Make().String(),
		AccountID:    accountID,
		Provider:     model.ProviderGitHub,
		RepoFullName: name,
		CreatedAt:    time.Now().UTC(),
	}

	// Default branch lookup is best-effort; private repositories are
	// invisible here and still connect fine.
	owner, repo, _ := strings.Cut(name, "/")
	branch, err := s.gh.LookupDefaultBranch(ctx, owner, repo)
	if err != nil {
		s.logger.Warn("default branch lookup failed",
			slog.String("repo", name),
			slog.String("error", err.Error()),
		)
	}
	conn.DefaultBranch = branch

	if err := s.repo.CreateRepoConnection(ctx, conn); err != nil {
		if errors.Is(err, repository.ErrRepoAlreadyConnected) {
			existing, err := s.repo.GetRepoConnection(ctx, accountID, name)
			if err != nil {
				return nil, fmt.Errorf("load existing connection: %w", err)
			}
			return &ConnectResult{Connection: existing, Created: false}, nil
		}
		return nil, fmt.Errorf("create connection: %w", err)
	}

	s.metrics.IncRepoConnected()

	return &ConnectResult{Connection: conn, Created: true}, nil
}

// List returns the account's repository connections, newest first.
func (s *RepoService) List(ctx context.Context, accountID string) ([]*model.RepoConnection, error) {
	conns, err := s.repo.ListRepoConnections(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("list connections: %w", err)
	}
	return conns, nil
}
