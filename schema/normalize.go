package schema

import (
	"net/url"
	"strings"
)

// NormalizeHostAddress validates a host address and reduces it to scheme://host[:port].
// A missing scheme defaults to https.
func NormalizeHostAddress(raw string) (HostAddress, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", ErrInvalidHost
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	parsed, err := url.Parse(trimmed)
	if err != nil {
		return "", ErrInvalidHost
	}
	scheme := strings.ToLower(parsed.Scheme)
	if scheme != "http" && scheme != "https" {
		return "", ErrInvalidHost
	}
	if parsed.Hostname() == "" || parsed.User != nil {
		return "", ErrInvalidHost
	}
	return HostAddress(scheme + "://" + strings.ToLower(parsed.Host)), nil
}
