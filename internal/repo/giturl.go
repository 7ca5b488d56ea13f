package repo

import (
	"path"
	"strings"

	"github.com/go-git/go-git/v5/plumbing/transport"

	"pkt.systems/repoclone/schema"
)

// ParseRepositoryURL resolves a raw clone URL into a repository with owner, name and a
// normalized clone URL. Shorthand host/owner/name references are treated as https.
// Credentials embedded in http(s) URLs are dropped.
func ParseRepositoryURL(raw string) (schema.Repository, error) {
	input := strings.TrimSpace(raw)
	if input == "" {
		return schema.Repository{}, schema.ErrInvalidRepo
	}
	if isShorthand(input) {
		input = "https://" + input
	}
	endpoint, err := transport.NewEndpoint(input)
	if err != nil {
		return schema.Repository{}, schema.ErrInvalidRepo
	}
	switch endpoint.Protocol {
	case "http", "https":
		endpoint.User = ""
		endpoint.Password = ""
	case "ssh", "git":
		endpoint.Password = ""
	default:
		return schema.Repository{}, schema.ErrInvalidRepo
	}
	if endpoint.Host == "" {
		return schema.Repository{}, schema.ErrInvalidRepo
	}
	owner, name, err := ownerAndName(endpoint.Path)
	if err != nil {
		return schema.Repository{}, err
	}
	endpoint.Path = ensureGitSuffix(strings.TrimSuffix(endpoint.Path, "/"))
	return schema.Repository{Owner: owner, Name: name, CloneURL: endpoint.String()}, nil
}

func isShorthand(input string) bool {
	if strings.Contains(input, "://") || strings.Contains(input, "@") || strings.Contains(input, ":") {
		return false
	}
	host, rest, ok := strings.Cut(input, "/")
	return ok && rest != "" && strings.Contains(host, ".")
}

func ownerAndName(value string) (string, string, error) {
	trimmed := strings.Trim(strings.TrimSuffix(strings.Trim(value, "/"), ".git"), "/")
	if trimmed == "" {
		return "", "", schema.ErrInvalidRepo
	}
	segments := strings.Split(trimmed, "/")
	if len(segments) < 2 {
		return "", "", schema.ErrInvalidRepo
	}
	for _, segment := range segments {
		if !validSegment(segment) {
			return "", "", schema.ErrInvalidRepo
		}
	}
	name := segments[len(segments)-1]
	owner := path.Join(segments[:len(segments)-1]...)
	return owner, name, nil
}

func validSegment(segment string) bool {
	clean := strings.TrimSpace(segment)
	if clean == "" || clean != segment {
		return false
	}
	return clean != "." && clean != ".." && !strings.ContainsAny(clean, `\`)
}

func ensureGitSuffix(value string) string {
	if strings.HasSuffix(value, ".git") {
		return value
	}
	return value + ".git"
}
