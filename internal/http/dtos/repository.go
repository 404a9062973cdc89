package dtos

import "time"

// RegisterRepositoryRequest is the payload for adding a repository to the
// registry.
type RegisterRepositoryRequest struct {
	Name          string `json:"name"`
	FullName      string `json:"full_name"`
	Description   string `json:"description"`
	URL           string `json:"url"`
	DefaultBranch string `json:"default_branch"`
}

// RepositoryResponse mirrors a registry row
type RepositoryResponse struct {
	ID            uint      `json:"id"`
	Name          string    `json:"name"`
	FullName      string    `json:"full_name"`
	Description   string    `json:"description"`
	URL           string    `json:"url"`
	DefaultBranch string    `json:"default_branch"`
	Active        bool      `json:"active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
