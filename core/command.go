package core

import (
	"context"
	"errors"

	"pkt.systems/repoclone/internal/logx"
	"pkt.systems/repoclone/schema"
)

// CloneCommand is the dialog's clone action. Execution is delegated to the Cloner.
type CloneCommand struct {
	c *Coordinator
}

// CanExecute reports whether a repository is selected on some tab and the path is valid.
func (cmd *CloneCommand) CanExecute() bool {
	cmd.c.mu.Lock()
	defer cmd.c.mu.Unlock()
	return cmd.c.canClone
}

// Execute hands the current selection to the Cloner.
func (cmd *CloneCommand) Execute(ctx context.Context) error {
	if ctx == nil {
		return errors.New("missing context")
	}
	c := cmd.c
	c.mu.Lock()
	if !c.canClone {
		c.mu.Unlock()
		return schema.ErrCloneUnavailable
	}
	slot, _ := c.cloneSourceLocked()
	req := CloneRequest{
		SessionID:  c.id,
		Tab:        slot.kind,
		Account:    slot.account,
		Repository: *slot.repository,
		Path:       c.path,
	}
	c.mu.Unlock()
	if c.cloner == nil {
		return schema.ErrClonerUnavailable
	}

	log := logx.WithRepository(logx.WithSession(ctx, c.id).With("tab", req.Tab), &req.Repository)
	log.Info("coordinator clone start", "path", req.Path)
	if err := c.cloner.Clone(ctx, req); err != nil {
		log.Warn("coordinator clone failed", "err", err)
		return err
	}
	log.Info("coordinator clone ok")
	return nil
}
