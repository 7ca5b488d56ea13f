package tabs

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"pkt.systems/pslog"
	"pkt.systems/repoclone/internal/logx"
	"pkt.systems/repoclone/schema"
)

// Lister returns the repositories an account can clone.
type Lister interface {
	ListRepositories(ctx context.Context, account schema.Account) ([]schema.Repository, error)
}

// SelectTab picks a repository from the list of one account.
type SelectTab struct {
	lister    Lister
	log       pslog.Logger
	observers observers

	mu           sync.Mutex
	account      schema.Account
	repositories []schema.Repository
	selected     *schema.Repository
}

// NewSelectTab returns a tab that loads its repositories from lister on activation.
func NewSelectTab(lister Lister, logger pslog.Logger) *SelectTab {
	if logger == nil {
		logger = pslog.Ctx(context.Background())
	}
	return &SelectTab{lister: lister, log: logger}
}

// Initialize binds the tab to account.
func (t *SelectTab) Initialize(_ context.Context, account schema.Account) error {
	if account.IsZero() {
		return schema.ErrInvalidHost
	}
	t.mu.Lock()
	t.account = account
	t.mu.Unlock()
	logx.WithAccount(t.log, account).Debug("select tab initialized")
	return nil
}

// Activate loads the repository list of the bound account.
func (t *SelectTab) Activate(ctx context.Context) error {
	if t.lister == nil {
		return errors.New("repository lister is required")
	}
	t.mu.Lock()
	account := t.account
	t.mu.Unlock()
	if account.IsZero() {
		return schema.ErrNotInitialized
	}
	log := logx.WithAccount(t.log, account)
	repos, err := t.lister.ListRepositories(ctx, account)
	if err != nil {
		log.Warn("select tab list failed", "err", err)
		return fmt.Errorf("list repositories for %s: %w", account.Host, err)
	}
	t.mu.Lock()
	t.repositories = append([]schema.Repository(nil), repos...)
	t.mu.Unlock()
	log.Debug("select tab list ok", "count", len(repos))
	return nil
}

// Repositories returns the loaded repository list.
func (t *SelectTab) Repositories() []schema.Repository {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]schema.Repository(nil), t.repositories...)
}

// Account returns the bound account.
func (t *SelectTab) Account() schema.Account {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.account
}

// Select picks a loaded repository by owner and name.
func (t *SelectTab) Select(owner, name string) error {
	t.mu.Lock()
	var found *schema.Repository
	for i := range t.repositories {
		if t.repositories[i].Owner == owner && t.repositories[i].Name == name {
			repo := t.repositories[i]
			found = &repo
			break
		}
	}
	if found == nil {
		t.mu.Unlock()
		return schema.ErrRepoNotFound
	}
	t.selected = found
	t.mu.Unlock()
	t.observers.notify(found)
	return nil
}

// Clear deselects the repository.
func (t *SelectTab) Clear() {
	t.mu.Lock()
	had := t.selected != nil
	t.selected = nil
	t.mu.Unlock()
	if had {
		t.observers.notify(nil)
	}
}

// Repository returns the selected repository or nil.
func (t *SelectTab) Repository() *schema.Repository {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.selected == nil {
		return nil
	}
	repo := *t.selected
	return &repo
}

// OnRepositoryChanged registers fn for selection changes.
func (t *SelectTab) OnRepositoryChanged(fn func(*schema.Repository)) {
	t.observers.add(fn)
}
