package schema

import "errors"

var (
	// ErrInvalidRepo indicates an invalid repository reference.
	ErrInvalidRepo = errors.New("invalid repo")
	// ErrRepoNotFound indicates a repository is not in the tab's list.
	ErrRepoNotFound = errors.New("repo not found")
	// ErrInvalidHost indicates an invalid account host address.
	ErrInvalidHost = errors.New("invalid host address")
	// ErrTabNotFound indicates a requested tab index is not available.
	ErrTabNotFound = errors.New("tab not found")
	// ErrAlreadyInitialized indicates Initialize was called twice.
	ErrAlreadyInitialized = errors.New("already initialized")
	// ErrNotInitialized indicates a tab was activated before it was bound to an account.
	ErrNotInitialized = errors.New("not initialized")
	// ErrDestinationExists indicates the clone destination is already present.
	ErrDestinationExists = errors.New("destination already exists")
	// ErrCloneUnavailable indicates the clone command cannot execute.
	ErrCloneUnavailable = errors.New("clone not available")
	// ErrClonerUnavailable indicates no cloner is configured.
	ErrClonerUnavailable = errors.New("cloner not configured")
)
