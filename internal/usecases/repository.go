package usecases

import (
	"context"
	"fmt"
	"strings"

	"github.com/just-nibble/git-digest/internal/repository"
)

// RegisterRepositoryInput describes a repository to monitor. FullName is
// the "owner/name" form; Name defaults to the short half when empty.
type RegisterRepositoryInput struct {
	Name          string
	FullName      string
	Description   string
	URL           string
	DefaultBranch string
}

type RepositoryUsecase interface {
	RegisterRepository(ctx context.Context, input RegisterRepositoryInput) (*repository.Repository, error)
	GetRepositoryByName(ctx context.Context, name string) (*repository.Repository, error)
	ListRepositories(ctx context.Context) ([]repository.Repository, error)
	SetActive(ctx context.Context, id uint, active bool) error
	DeleteRepository(ctx context.Context, id uint) error
}

type repositoryUsecase struct {
	repositoryStore repository.RepositoryStore
}

func NewRepositoryUsecase(repositoryStore repository.RepositoryStore) RepositoryUsecase {
	return &repositoryUsecase{repositoryStore: repositoryStore}
}

func (u *repositoryUsecase) RegisterRepository(ctx context.Context, input RegisterRepositoryInput) (*repository.Repository, error) {
	if input.FullName == "" {
		return nil, fmt.Errorf("repository full name is required")
	}
	if strings.Count(input.FullName, "/") != 1 {
		return nil, fmt.Errorf("repository full name must be owner/name, got %q", input.FullName)
	}

	name := input.Name
	if name == "" {
		name = input.FullName[strings.Index(input.FullName, "/")+1:]
	}

	branch := input.DefaultBranch
	if branch == "" {
		branch = "main"
	}

	repo := &repository.Repository{
		Name:          name,
		FullName:      input.FullName,
		Description:   input.Description,
		URL:           input.URL,
		DefaultBranch: branch,
		Active:        true,
	}
	if err := u.repositoryStore.CreateRepository(ctx, repo); err != nil {
		return nil, err
	}
	return repo, nil
}

func (u *repositoryUsecase) GetRepositoryByName(ctx context.Context, name string) (*repository.Repository, error) {
	return u.repositoryStore.GetRepositoryByName(ctx, name)
}

func (u *repositoryUsecase) ListRepositories(ctx context.Context) ([]repository.Repository, error) {
	return u.repositoryStore.GetAllRepositories(ctx)
}

// SetActive pauses or resumes monitoring. History survives deactivation.
func (u *repositoryUsecase) SetActive(ctx context.Context, id uint, active bool) error {
	return u.repositoryStore.SetRepositoryActive(ctx, id, active)
}

// DeleteRepository drops the repository and its entire cascade tree.
func (u *repositoryUsecase) DeleteRepository(ctx context.Context, id uint) error {
	return u.repositoryStore.DeleteRepository(ctx, id)
}
