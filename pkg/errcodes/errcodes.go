package errcodes

import "errors"

var (
	// ErrDuplicateCommit is returned when a (repository, sha) pair has
	// already been ingested. Collectors treat it as an idempotent no-op.
	ErrDuplicateCommit = errors.New("commit already ingested for repository")

	// ErrCrossRepositoryReference is returned when a post references a
	// commit belonging to a different repository.
	ErrCrossRepositoryReference = errors.New("commit belongs to a different repository")

	// ErrReferentialViolation is returned when a write references a parent
	// row that does not exist.
	ErrReferentialViolation = errors.New("referenced parent record does not exist")

	// ErrDuplicateRecord is returned for unique-constraint violations other
	// than commit ingestion, e.g. registering a repository name twice.
	ErrDuplicateRecord = errors.New("record already exists")

	ErrNoRecordFound    = errors.New("no record found")
	ErrContextCancelled = errors.New("context cancelled")
)
