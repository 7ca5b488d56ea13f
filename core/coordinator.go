package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"pkt.systems/pslog"
	"pkt.systems/repoclone/internal/logx"
	"pkt.systems/repoclone/schema"
)

// tabSlot binds one owned tab to its account and lifecycle state.
type tabSlot struct {
	kind       schema.TabKind
	tab        Tab
	account    schema.Account
	state      tabState
	repository *schema.Repository
}

// Coordinator drives one clone dialog session: tab selection, destination path
// inference, destination validation and clone command enablement.
type Coordinator struct {
	id          schema.SessionID
	connections ConnectionManager
	clones      CloneService
	cloner      Cloner
	sink        EventSink
	logger      pslog.Logger
	clone       *CloneCommand

	mu          sync.Mutex
	slots       []*tabSlot
	available   []*tabSlot
	selected    int
	initialized bool
	path        string
	pathGen     uint64
	lastSuffix  *schema.PathSuffix
	pathError   string
	canClone    bool
}

// NewCoordinator constructs a coordinator and subscribes to repository changes on every owned tab.
func NewCoordinator(deps CoordinatorDeps) (*Coordinator, error) {
	if deps.Connections == nil {
		return nil, errors.New("connection manager is required")
	}
	if deps.CloneService == nil {
		return nil, errors.New("clone service is required")
	}
	if deps.Primary == nil || deps.Secondary == nil || deps.URL == nil {
		return nil, errors.New("primary, secondary and url tabs are required")
	}
	logger := deps.Logger
	if logger == nil {
		logger = pslog.Ctx(context.Background())
	}
	c := &Coordinator{
		id:          newSessionID(),
		connections: deps.Connections,
		clones:      deps.CloneService,
		cloner:      deps.Cloner,
		sink:        deps.EventSink,
		slots: []*tabSlot{
			{kind: schema.TabPrimary, tab: deps.Primary},
			{kind: schema.TabSecondary, tab: deps.Secondary},
			{kind: schema.TabURL, tab: deps.URL},
		},
	}
	c.logger = logger.With("session", c.id)
	c.clone = &CloneCommand{c: c}
	c.path = c.clones.DefaultClonePath()
	if c.clones.DestinationExists(c.path) {
		c.pathError = schema.ErrDestinationExists.Error()
	}
	for _, slot := range c.slots {
		slot.repository = cloneRepository(slot.tab.Repository())
	}
	c.canClone = c.canCloneLocked()
	for _, slot := range c.slots {
		slot.tab.OnRepositoryChanged(func(repo *schema.Repository) {
			c.repositoryChanged(slot, repo)
		})
	}
	c.logger.Debug("coordinator created", "path", c.path)
	return c, nil
}

// SessionID returns the dialog session identifier.
func (c *Coordinator) SessionID() schema.SessionID {
	return c.id
}

// Initialize binds account tabs to the listed accounts, selects the tab of the
// preselected account (or the first tab) and activates it.
func (c *Coordinator) Initialize(ctx context.Context, preselected schema.HostAddress) error {
	if ctx == nil {
		return errors.New("missing context")
	}
	log := logx.WithSession(ctx, c.id)
	ctx = logx.ContextWithSessionLogger(ctx, log, c.id)
	if preselected != "" {
		normalized, err := schema.NormalizeHostAddress(string(preselected))
		if err != nil {
			log.Warn("coordinator ignoring invalid preselected host", "preselected", preselected, "err", err)
		}
		preselected = normalized
	}

	c.mu.Lock()
	if c.initialized {
		c.mu.Unlock()
		return schema.ErrAlreadyInitialized
	}
	c.initialized = true
	c.mu.Unlock()

	log.Info("coordinator initialize start", "preselected", preselected)
	accounts, err := c.connections.ListConnections(ctx)
	if err != nil {
		c.mu.Lock()
		c.initialized = false
		c.mu.Unlock()
		log.Warn("coordinator initialize failed", "err", err)
		return fmt.Errorf("list connections: %w", err)
	}
	if len(accounts) > 2 {
		log.Warn("coordinator ignoring extra accounts", "count", len(accounts))
	}

	c.mu.Lock()
	available := make([]*tabSlot, 0, len(c.slots))
	for i, account := range accounts {
		if i >= 2 {
			break
		}
		slot := c.slots[i]
		slot.account = account
		available = append(available, slot)
	}
	available = append(available, c.slots[2])
	c.available = available
	c.selected = 0
	for i, slot := range available {
		if preselected != "" && sameHost(slot.account.Host, preselected) {
			c.selected = i
			break
		}
	}
	selected := available[c.selected]
	index := c.selected
	c.mu.Unlock()
	c.emit([]schema.CoordinatorEvent{c.event(schema.EventTabSelected, selected, index)})

	for _, slot := range available {
		if err := c.initializeTab(ctx, slot); err != nil {
			return err
		}
	}

	// The selection may have moved while tabs were initializing.
	c.mu.Lock()
	index = c.selected
	selected = c.available[index]
	c.mu.Unlock()
	if err := c.activateTab(ctx, selected, index); err != nil {
		return err
	}
	log.Info("coordinator initialize ok", "tabs", len(available), "selected", selected.kind)
	return nil
}

// Tabs returns the kinds of the available tabs in display order.
func (c *Coordinator) Tabs() []schema.TabKind {
	c.mu.Lock()
	defer c.mu.Unlock()
	kinds := make([]schema.TabKind, 0, len(c.available))
	for _, slot := range c.available {
		kinds = append(kinds, slot.kind)
	}
	return kinds
}

// SelectedTabIndex returns the index of the selected tab.
func (c *Coordinator) SelectedTabIndex() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selected
}

// SelectedTab returns the kind of the selected tab, or "" before Initialize.
func (c *Coordinator) SelectedTab() schema.TabKind {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.selected < 0 || c.selected >= len(c.available) {
		return ""
	}
	return c.available[c.selected].kind
}

// SetSelectedTabIndex selects a tab and activates it on first selection.
func (c *Coordinator) SetSelectedTabIndex(ctx context.Context, index int) error {
	if ctx == nil {
		return errors.New("missing context")
	}
	c.mu.Lock()
	if index < 0 || index >= len(c.available) {
		c.mu.Unlock()
		return schema.ErrTabNotFound
	}
	var events []schema.CoordinatorEvent
	slot := c.available[index]
	if c.selected != index {
		c.selected = index
		events = append(events, c.event(schema.EventTabSelected, slot, index))
		events = append(events, c.refreshCanCloneLocked()...)
	}
	c.mu.Unlock()
	c.emit(events)
	return c.activateTab(ctx, slot, index)
}

// Path returns the destination path.
func (c *Coordinator) Path() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.path
}

// SetPath stores a user-typed destination verbatim. The last auto-suffix is kept.
func (c *Coordinator) SetPath(path string) {
	exists := c.clones.DestinationExists(path)
	c.mu.Lock()
	events := c.setPathLocked(path, exists)
	c.mu.Unlock()
	c.emit(events)
}

// PathError returns the destination validation message, or "" when the path is usable.
func (c *Coordinator) PathError() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pathError
}

// Clone returns the clone command.
func (c *Coordinator) Clone() *CloneCommand {
	return c.clone
}

// Close releases tabs that hold resources.
func (c *Coordinator) Close() error {
	var errs []error
	for _, slot := range c.slots {
		if closer, ok := slot.tab.(io.Closer); ok {
			if err := closer.Close(); err != nil {
				errs = append(errs, fmt.Errorf("close %s tab: %w", slot.kind, err))
			}
		}
	}
	c.logger.Debug("coordinator closed")
	return errors.Join(errs...)
}

func (c *Coordinator) initializeTab(ctx context.Context, slot *tabSlot) error {
	c.mu.Lock()
	next, action := transition(slot.state, tabEventInitialize)
	slot.state = next
	account := slot.account
	c.mu.Unlock()
	if action != tabActionInitialize {
		return nil
	}

	log := logx.WithAccount(pslog.Ctx(ctx).With("tab", slot.kind), account)
	err := slot.tab.Initialize(ctx, account)
	c.mu.Lock()
	if err != nil {
		slot.state, _ = transition(slot.state, tabEventFailed)
	} else {
		slot.state, _ = transition(slot.state, tabEventInitialized)
	}
	c.mu.Unlock()
	if err != nil {
		log.Warn("coordinator tab initialize failed", "err", err)
		return fmt.Errorf("initialize %s tab: %w", slot.kind, err)
	}
	log.Debug("coordinator tab initialize ok")
	return nil
}

func (c *Coordinator) activateTab(ctx context.Context, slot *tabSlot, index int) error {
	c.mu.Lock()
	next, action := transition(slot.state, tabEventSelect)
	slot.state = next
	c.mu.Unlock()
	if action != tabActionActivate {
		return nil
	}

	log := logx.WithTab(pslog.Ctx(ctx), slot.kind, index)
	log.Debug("coordinator tab activate start")
	err := slot.tab.Activate(ctx)
	c.mu.Lock()
	if err != nil {
		slot.state, _ = transition(slot.state, tabEventFailed)
	} else {
		slot.state, _ = transition(slot.state, tabEventActivated)
	}
	c.mu.Unlock()
	if err != nil {
		log.Warn("coordinator tab activate failed", "err", err)
		return fmt.Errorf("activate %s tab: %w", slot.kind, err)
	}
	log.Info("coordinator tab activate ok")
	c.emit([]schema.CoordinatorEvent{c.event(schema.EventTabActivated, slot, index)})
	return nil
}

// repositoryChanged records a tab's repository and re-infers the path. The
// destination check runs unlocked; the inference is redone if the path moved
// meanwhile, and dropped if the tab has since reported a newer repository.
func (c *Coordinator) repositoryChanged(slot *tabSlot, repo *schema.Repository) {
	repo = cloneRepository(repo)
	fallback := c.clones.DefaultClonePath()
	c.mu.Lock()
	slot.repository = repo
	var events []schema.CoordinatorEvent
	for repo != nil && slot.repository == repo {
		gen := c.pathGen
		current := c.path
		if strings.TrimSpace(current) == "" {
			current = fallback
		}
		next, last := InferPath(current, c.lastSuffix, repo.Suffix())
		c.mu.Unlock()
		exists := c.clones.DestinationExists(next)
		c.mu.Lock()
		if slot.repository != repo {
			break
		}
		if gen != c.pathGen {
			continue
		}
		c.lastSuffix = last
		events = append(events, c.setPathLocked(next, exists)...)
		break
	}
	events = append(events, c.refreshCanCloneLocked()...)
	path := c.path
	c.mu.Unlock()
	logx.WithRepository(c.logger.With("tab", slot.kind), repo).Debug("coordinator repository changed", "path", path)
	c.emit(events)
}

// setPathLocked stores path together with its destination check result.
func (c *Coordinator) setPathLocked(path string, exists bool) []schema.CoordinatorEvent {
	var events []schema.CoordinatorEvent
	c.pathGen++
	if path != c.path {
		c.path = path
		events = append(events, schema.CoordinatorEvent{SessionID: c.id, Type: schema.EventPathChanged, Path: path})
	}
	previous := c.pathError
	c.pathError = ""
	if exists {
		c.pathError = schema.ErrDestinationExists.Error()
	}
	if previous != c.pathError {
		events = append(events, schema.CoordinatorEvent{SessionID: c.id, Type: schema.EventPathErrorChanged, Path: c.path, PathError: c.pathError})
	}
	return append(events, c.refreshCanCloneLocked()...)
}

func (c *Coordinator) canCloneLocked() bool {
	if c.pathError != "" {
		return false
	}
	_, ok := c.cloneSourceLocked()
	return ok
}

func (c *Coordinator) refreshCanCloneLocked() []schema.CoordinatorEvent {
	next := c.canCloneLocked()
	if next == c.canClone {
		return nil
	}
	c.canClone = next
	return []schema.CoordinatorEvent{{SessionID: c.id, Type: schema.EventCanCloneChanged, CanClone: next}}
}

// cloneSourceLocked prefers the selected tab, then any owned tab in order.
func (c *Coordinator) cloneSourceLocked() (*tabSlot, bool) {
	if c.selected >= 0 && c.selected < len(c.available) {
		if slot := c.available[c.selected]; slot.repository != nil {
			return slot, true
		}
	}
	for _, slot := range c.slots {
		if slot.repository != nil {
			return slot, true
		}
	}
	return nil, false
}

func (c *Coordinator) event(eventType schema.CoordinatorEventType, slot *tabSlot, index int) schema.CoordinatorEvent {
	return schema.CoordinatorEvent{SessionID: c.id, Type: eventType, Tab: slot.kind, TabIndex: index}
}

func (c *Coordinator) emit(events []schema.CoordinatorEvent) {
	if c.sink == nil {
		return
	}
	for _, event := range events {
		c.sink.OnCoordinatorEvent(event)
	}
}

// sameHost compares account hosts after normalization. Unparseable hosts compare verbatim.
func sameHost(a, b schema.HostAddress) bool {
	if na, err := schema.NormalizeHostAddress(string(a)); err == nil {
		a = na
	}
	if nb, err := schema.NormalizeHostAddress(string(b)); err == nil {
		b = nb
	}
	return a == b
}

func cloneRepository(repo *schema.Repository) *schema.Repository {
	if repo == nil || repo.IsZero() {
		return nil
	}
	copied := *repo
	return &copied
}
