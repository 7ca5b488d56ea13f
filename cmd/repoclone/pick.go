package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"pkt.systems/pslog"
	"pkt.systems/repoclone/core"
	"pkt.systems/repoclone/internal/appconfig"
	"pkt.systems/repoclone/internal/connections"
	"pkt.systems/repoclone/internal/eventbus"
	"pkt.systems/repoclone/internal/repo"
	"pkt.systems/repoclone/internal/tabs"
	"pkt.systems/repoclone/schema"
)

type pickOptions struct {
	configPath string
	envFile    string
	account    string
	tab        int
	repository string
	url        string
	path       string
	clone      bool
}

func newPickCmd() *cobra.Command {
	opts := pickOptions{tab: -1}
	cmd := &cobra.Command{
		Use:   "pick",
		Short: "Run one clone dialog session and print the resulting selection",
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.envFile != "" {
				if err := godotenv.Load(opts.envFile); err != nil {
					return fmt.Errorf("load env file: %w", err)
				}
			}
			return runPick(cmd.Context(), cmd.OutOrStdout(), opts)
		},
	}
	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "config file path (default ~/.repoclone/config.yaml)")
	cmd.Flags().StringVar(&opts.envFile, "env-file", "", "dotenv file loaded before the config")
	cmd.Flags().StringVar(&opts.account, "account", "", "host of the account to preselect")
	cmd.Flags().IntVar(&opts.tab, "tab", -1, "tab index to select after initialization")
	cmd.Flags().StringVar(&opts.repository, "repo", "", "owner/name to select on the selected account tab")
	cmd.Flags().StringVar(&opts.url, "url", "", "clone URL to enter on the url tab")
	cmd.Flags().StringVar(&opts.path, "path", "", "destination path override")
	cmd.Flags().BoolVar(&opts.clone, "clone", false, "execute the clone command")
	return cmd
}

type pickEvent struct {
	Type      string `yaml:"type"`
	Tab       string `yaml:"tab,omitempty"`
	Path      string `yaml:"path,omitempty"`
	PathError string `yaml:"path_error,omitempty"`
	CanClone  bool   `yaml:"can_clone"`
}

type pickClone struct {
	Tab      string `yaml:"tab"`
	Account  string `yaml:"account,omitempty"`
	CloneURL string `yaml:"clone_url"`
	Path     string `yaml:"path"`
}

type pickState struct {
	Session     string      `yaml:"session"`
	Tabs        []string    `yaml:"tabs"`
	SelectedTab string      `yaml:"selected_tab"`
	Path        string      `yaml:"path"`
	PathError   string      `yaml:"path_error,omitempty"`
	CanClone    bool        `yaml:"can_clone"`
	Repository  string      `yaml:"repository,omitempty"`
	Clone       *pickClone  `yaml:"clone,omitempty"`
	Events      []pickEvent `yaml:"events"`
}

// planCloner records the clone request instead of touching the filesystem.
type planCloner struct {
	mu  sync.Mutex
	req *core.CloneRequest
}

func (p *planCloner) Clone(ctx context.Context, req core.CloneRequest) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.req = &req
	return nil
}

func (p *planCloner) planned() *core.CloneRequest {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.req
}

func runPick(ctx context.Context, out io.Writer, opts pickOptions) error {
	logger := pslog.Ctx(ctx)
	cfg, err := appconfig.Load(opts.configPath)
	if err != nil {
		return err
	}
	conns, err := connections.NewStatic(cfg.Accounts)
	if err != nil {
		return err
	}
	clones, err := repo.NewServiceWithLogger(cfg.CloneRoot, logger)
	if err != nil {
		return err
	}

	primary := tabs.NewSelectTab(conns, logger)
	secondary := tabs.NewSelectTab(conns, logger)
	urlTab := tabs.NewURLTab()
	bus := eventbus.New(logger)
	cloner := &planCloner{}

	coordinator, err := core.NewCoordinator(core.CoordinatorDeps{
		Connections:  conns,
		CloneService: clones,
		Primary:      primary,
		Secondary:    secondary,
		URL:          urlTab,
		Cloner:       cloner,
		EventSink:    bus,
		Logger:       logger,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := coordinator.Close(); err != nil {
			logger.Warn("pick close failed", "err", err)
		}
	}()
	events, cancel := bus.Subscribe(coordinator.SessionID())
	defer cancel()

	var preselected schema.HostAddress
	if strings.TrimSpace(opts.account) != "" {
		preselected, err = schema.NormalizeHostAddress(opts.account)
		if err != nil {
			return err
		}
	}
	if err := coordinator.Initialize(ctx, preselected); err != nil {
		return err
	}

	switch {
	case opts.url != "":
		index := tabIndex(coordinator.Tabs(), schema.TabURL)
		if err := coordinator.SetSelectedTabIndex(ctx, index); err != nil {
			return err
		}
		if err := urlTab.SetURL(opts.url); err != nil {
			return fmt.Errorf("url %q: %w", opts.url, err)
		}
	case opts.tab >= 0:
		if err := coordinator.SetSelectedTabIndex(ctx, opts.tab); err != nil {
			return fmt.Errorf("select tab %d: %w", opts.tab, err)
		}
	}

	accountTabs := map[schema.TabKind]*tabs.SelectTab{
		schema.TabPrimary:   primary,
		schema.TabSecondary: secondary,
	}
	if opts.repository != "" && opts.url == "" {
		tab, ok := accountTabs[coordinator.SelectedTab()]
		if !ok {
			return fmt.Errorf("--repo needs an account tab, selected %s", coordinator.SelectedTab())
		}
		owner, name, err := splitRepository(opts.repository)
		if err != nil {
			return err
		}
		if err := tab.Select(owner, name); err != nil {
			return fmt.Errorf("select %s: %w", opts.repository, err)
		}
	}
	if opts.path != "" {
		coordinator.SetPath(opts.path)
	}

	state := pickState{
		Session:     string(coordinator.SessionID()),
		SelectedTab: string(coordinator.SelectedTab()),
		Path:        coordinator.Path(),
		PathError:   coordinator.PathError(),
		CanClone:    coordinator.Clone().CanExecute(),
	}
	for _, kind := range coordinator.Tabs() {
		state.Tabs = append(state.Tabs, string(kind))
	}
	if selected := selectedRepository(coordinator.SelectedTab(), accountTabs, urlTab); selected != nil {
		state.Repository = selected.FullName()
	}

	if opts.clone {
		if err := coordinator.Clone().Execute(ctx); err != nil {
			return err
		}
		if req := cloner.planned(); req != nil {
			state.Clone = &pickClone{
				Tab:      string(req.Tab),
				Account:  string(req.Account.Host),
				CloneURL: req.Repository.CloneURL,
				Path:     req.Path,
			}
		}
	}

	state.Events = drainEvents(events)
	for _, event := range state.Events {
		logger.Debug("pick event", "type", event.Type, "tab", event.Tab, "can_clone", event.CanClone)
	}

	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(state); err != nil {
		return err
	}
	return enc.Close()
}

func tabIndex(kinds []schema.TabKind, kind schema.TabKind) int {
	for i, k := range kinds {
		if k == kind {
			return i
		}
	}
	return -1
}

func splitRepository(value string) (string, string, error) {
	trimmed := strings.Trim(strings.TrimSpace(value), "/")
	idx := strings.LastIndex(trimmed, "/")
	if idx <= 0 || idx == len(trimmed)-1 {
		return "", "", fmt.Errorf("repository %q: %w", value, schema.ErrInvalidRepo)
	}
	return trimmed[:idx], trimmed[idx+1:], nil
}

func selectedRepository(kind schema.TabKind, accountTabs map[schema.TabKind]*tabs.SelectTab, urlTab *tabs.URLTab) *schema.Repository {
	if kind == schema.TabURL {
		return urlTab.Repository()
	}
	if tab, ok := accountTabs[kind]; ok {
		return tab.Repository()
	}
	return nil
}

func drainEvents(ch <-chan schema.CoordinatorEvent) []pickEvent {
	var out []pickEvent
	for {
		select {
		case event, ok := <-ch:
			if !ok {
				return out
			}
			out = append(out, pickEvent{
				Type:      string(event.Type),
				Tab:       string(event.Tab),
				Path:      event.Path,
				PathError: event.PathError,
				CanClone:  event.CanClone,
			})
		default:
			return out
		}
	}
}
