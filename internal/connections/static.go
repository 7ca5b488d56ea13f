package connections

import (
	"context"
	"fmt"
	"strings"

	"pkt.systems/repoclone/internal/appconfig"
	"pkt.systems/repoclone/internal/repo"
	"pkt.systems/repoclone/schema"
)

// Static serves accounts and their repositories from configuration, in config order.
type Static struct {
	accounts []schema.Account
	repos    map[schema.HostAddress][]schema.Repository
}

// NewStatic validates the configured accounts and repositories.
func NewStatic(accounts []appconfig.AccountConfig) (*Static, error) {
	s := &Static{repos: make(map[schema.HostAddress][]schema.Repository, len(accounts))}
	for i, account := range accounts {
		host, err := schema.NormalizeHostAddress(account.Host)
		if err != nil {
			return nil, fmt.Errorf("account %d: %w", i, err)
		}
		if _, ok := s.repos[host]; ok {
			return nil, fmt.Errorf("account %s listed twice", host)
		}
		repos := make([]schema.Repository, 0, len(account.Repositories))
		for _, ref := range account.Repositories {
			parsed, err := repo.ParseRepositoryURL(string(host) + "/" + strings.Trim(strings.TrimSpace(ref), "/"))
			if err != nil {
				return nil, fmt.Errorf("account %s repository %q: %w", host, ref, err)
			}
			repos = append(repos, parsed)
		}
		s.accounts = append(s.accounts, schema.Account{Host: host})
		s.repos[host] = repos
	}
	return s, nil
}

// ListConnections returns the configured accounts.
func (s *Static) ListConnections(ctx context.Context) ([]schema.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return append([]schema.Account(nil), s.accounts...), nil
}

// ListRepositories returns the repositories configured for account.
func (s *Static) ListRepositories(ctx context.Context, account schema.Account) ([]schema.Repository, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	repos, ok := s.repos[account.Host]
	if !ok {
		return nil, fmt.Errorf("account %s: %w", account.Host, schema.ErrInvalidHost)
	}
	return append([]schema.Repository(nil), repos...), nil
}
