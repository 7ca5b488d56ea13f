package core

import (
	"context"

	"pkt.systems/repoclone/schema"
)

// ConnectionManager lists the authenticated accounts. Order decides the primary/secondary tab mapping.
type ConnectionManager interface {
	ListConnections(ctx context.Context) ([]schema.Account, error)
}

// Tab is one repository selection surface owned by the coordinator.
type Tab interface {
	// Initialize binds the tab to an account. The URL tab receives a zero Account.
	Initialize(ctx context.Context, account schema.Account) error
	// Activate loads the tab contents. Called at most once per successful activation.
	Activate(ctx context.Context) error
	// Repository returns the selected repository or nil.
	Repository() *schema.Repository
	// OnRepositoryChanged registers an observer for repository selection changes.
	// Observers must be invoked without holding tab-internal locks.
	OnRepositoryChanged(fn func(*schema.Repository))
}

// CloneService answers destination questions.
type CloneService interface {
	DefaultClonePath() string
	DestinationExists(path string) bool
}

// CloneRequest is handed to the Cloner when the clone command executes.
type CloneRequest struct {
	SessionID  schema.SessionID
	Tab        schema.TabKind
	Account    schema.Account
	Repository schema.Repository
	Path       string
}

// Cloner performs the clone outside of the coordinator.
type Cloner interface {
	Clone(ctx context.Context, req CloneRequest) error
}
