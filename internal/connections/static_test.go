package connections

import (
	"context"
	"errors"
	"testing"

	"pkt.systems/repoclone/internal/appconfig"
	"pkt.systems/repoclone/schema"
)

func TestStaticListsAccountsInOrder(t *testing.T) {
	s, err := NewStatic([]appconfig.AccountConfig{
		{Host: "github.com", Repositories: []string{"octo/hello", " /octo/world/ "}},
		{Host: "https://Enterprise.com/api"},
	})
	if err != nil {
		t.Fatalf("NewStatic: %v", err)
	}
	ctx := context.Background()
	accounts, err := s.ListConnections(ctx)
	if err != nil {
		t.Fatalf("list connections: %v", err)
	}
	if len(accounts) != 2 || accounts[0].Host != "https://github.com" || accounts[1].Host != "https://enterprise.com" {
		t.Fatalf("unexpected accounts %+v", accounts)
	}

	repos, err := s.ListRepositories(ctx, accounts[0])
	if err != nil {
		t.Fatalf("list repositories: %v", err)
	}
	if len(repos) != 2 {
		t.Fatalf("expected 2 repositories, got %d", len(repos))
	}
	if repos[1].Owner != "octo" || repos[1].Name != "world" || repos[1].CloneURL != "https://github.com/octo/world.git" {
		t.Fatalf("unexpected repository %+v", repos[1])
	}
	if repos, err := s.ListRepositories(ctx, accounts[1]); err != nil || len(repos) != 0 {
		t.Fatalf("expected no repositories for enterprise, got %v (%v)", repos, err)
	}
}

func TestStaticRejectsInvalidEntries(t *testing.T) {
	if _, err := NewStatic([]appconfig.AccountConfig{{Host: ""}}); !errors.Is(err, schema.ErrInvalidHost) {
		t.Fatalf("expected ErrInvalidHost, got %v", err)
	}
	if _, err := NewStatic([]appconfig.AccountConfig{{Host: "github.com", Repositories: []string{"solo"}}}); !errors.Is(err, schema.ErrInvalidRepo) {
		t.Fatalf("expected ErrInvalidRepo, got %v", err)
	}
	if _, err := NewStatic([]appconfig.AccountConfig{{Host: "github.com"}, {Host: "https://github.com"}}); err == nil {
		t.Fatalf("expected duplicate account error")
	}
}

func TestStaticUnknownAccount(t *testing.T) {
	s, err := NewStatic(nil)
	if err != nil {
		t.Fatalf("NewStatic: %v", err)
	}
	if _, err := s.ListRepositories(context.Background(), schema.Account{Host: "https://nowhere.example"}); !errors.Is(err, schema.ErrInvalidHost) {
		t.Fatalf("expected ErrInvalidHost, got %v", err)
	}
}

func TestStaticHonoursCancelledContext(t *testing.T) {
	s, err := NewStatic([]appconfig.AccountConfig{{Host: "github.com"}})
	if err != nil {
		t.Fatalf("NewStatic: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := s.ListConnections(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
