package repo

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"pkt.systems/pslog"
)

// Service answers destination questions for clone dialogs on the local filesystem.
type Service struct {
	root string
	log  pslog.Logger
}

// NewService returns a Service rooted at the default clone path.
func NewService(root string) (*Service, error) {
	return NewServiceWithLogger(root, nil)
}

// NewServiceWithLogger returns a Service with logging.
func NewServiceWithLogger(root string, logger pslog.Logger) (*Service, error) {
	if strings.TrimSpace(root) == "" {
		return nil, errors.New("clone root is required")
	}
	if logger == nil {
		logger = pslog.Ctx(context.Background())
	}
	root = filepath.Clean(root)
	return &Service{root: root, log: logger.With("clone_root", root)}, nil
}

// DefaultClonePath returns the base directory new clones land under.
func (s *Service) DefaultClonePath() string {
	return s.root
}

// DestinationExists reports whether anything is already present at path.
func (s *Service) DestinationExists(path string) bool {
	if strings.TrimSpace(path) == "" {
		return false
	}
	_, err := os.Lstat(path)
	if err == nil {
		s.log.Trace("repo service destination exists", "path", path)
		return true
	}
	if !errors.Is(err, os.ErrNotExist) {
		s.log.Debug("repo service destination stat failed", "path", path, "err", err)
	}
	return false
}
