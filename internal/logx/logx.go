package logx

import (
	"context"

	"pkt.systems/pslog"
	"pkt.systems/repoclone/schema"
)

type contextKey int

const sessionKey contextKey = iota

// Ctx returns the logger bound to the provided context.
func Ctx(ctx context.Context) pslog.Logger {
	return pslog.Ctx(ctx)
}

// WithSession annotates the logger with the dialog session id if present.
func WithSession(ctx context.Context, sessionID schema.SessionID) pslog.Logger {
	log := pslog.Ctx(ctx)
	if sessionID != "" {
		if current, ok := ctx.Value(sessionKey).(schema.SessionID); ok && current == sessionID {
			return log
		}
		log = log.With("session", sessionID)
	}
	return log
}

// WithTab annotates the logger with the tab kind and index.
func WithTab(log pslog.Logger, kind schema.TabKind, index int) pslog.Logger {
	if kind == "" {
		return log
	}
	return log.With("tab", kind, "tab_index", index)
}

// WithAccount annotates the logger with the account host when available.
func WithAccount(log pslog.Logger, account schema.Account) pslog.Logger {
	if account.Host != "" {
		log = log.With("account", account.Host)
	}
	return log
}

// WithRepository annotates the logger with repository metadata when available.
func WithRepository(log pslog.Logger, repo *schema.Repository) pslog.Logger {
	if repo == nil || repo.IsZero() {
		return log
	}
	log = log.With("repo", repo.FullName())
	if repo.CloneURL != "" {
		log = log.With("clone_url", repo.CloneURL)
	}
	return log
}

// ContextWithSession stores the session marker on the context for log de-duplication.
func ContextWithSession(ctx context.Context, sessionID schema.SessionID) context.Context {
	if ctx == nil || sessionID == "" {
		return ctx
	}
	return context.WithValue(ctx, sessionKey, sessionID)
}

// ContextWithSessionLogger attaches the logger and session marker to the context.
func ContextWithSessionLogger(ctx context.Context, log pslog.Logger, sessionID schema.SessionID) context.Context {
	ctx = pslog.ContextWithLogger(ctx, log)
	return ContextWithSession(ctx, sessionID)
}
