package tabs

import (
	"context"
	"strings"
	"sync"

	"pkt.systems/repoclone/internal/repo"
	"pkt.systems/repoclone/schema"
)

// URLTab selects a repository from a raw clone URL.
type URLTab struct {
	observers observers

	mu       sync.Mutex
	url      string
	selected *schema.Repository
}

// NewURLTab returns an empty URL tab.
func NewURLTab() *URLTab {
	return &URLTab{}
}

// Initialize is a no-op; the URL tab is not bound to an account.
func (t *URLTab) Initialize(context.Context, schema.Account) error {
	return nil
}

// Activate is a no-op; there is nothing to load.
func (t *URLTab) Activate(context.Context) error {
	return nil
}

// SetURL parses raw and selects the repository it names. An invalid URL clears the
// selection and returns the parse error. An empty URL only clears the selection.
func (t *URLTab) SetURL(raw string) error {
	trimmed := strings.TrimSpace(raw)
	var parsed *schema.Repository
	var parseErr error
	if trimmed != "" {
		repository, err := repo.ParseRepositoryURL(trimmed)
		if err != nil {
			parseErr = err
		} else {
			parsed = &repository
		}
	}

	t.mu.Lock()
	had := t.selected != nil
	t.url = trimmed
	t.selected = parsed
	t.mu.Unlock()
	if parsed != nil || had {
		t.observers.notify(parsed)
	}
	return parseErr
}

// URL returns the last URL supplied.
func (t *URLTab) URL() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.url
}

// Repository returns the selected repository or nil.
func (t *URLTab) Repository() *schema.Repository {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.selected == nil {
		return nil
	}
	repository := *t.selected
	return &repository
}

// OnRepositoryChanged registers fn for selection changes.
func (t *URLTab) OnRepositoryChanged(fn func(*schema.Repository)) {
	t.observers.add(fn)
}
