package schema

import "path/filepath"

// HostAddress identifies the remote endpoint of an account, e.g. https://github.com.
type HostAddress string

// SessionID identifies one clone dialog session.
type SessionID string

// Account is one authenticated remote endpoint.
type Account struct {
	Host HostAddress `yaml:"host" json:"host"`
}

// IsZero reports whether the account is unset.
func (a Account) IsZero() bool {
	return a.Host == ""
}

// TabKind identifies one of the repository selection surfaces.
type TabKind string

const (
	// TabPrimary is bound to the first account.
	TabPrimary TabKind = "primary"
	// TabSecondary is bound to the second account.
	TabSecondary TabKind = "secondary"
	// TabURL selects a repository from a raw clone URL.
	TabURL TabKind = "url"
)

// Repository is a remote repository that can be cloned.
type Repository struct {
	Owner    string `yaml:"owner" json:"owner"`
	Name     string `yaml:"name" json:"name"`
	CloneURL string `yaml:"clone_url,omitempty" json:"clone_url,omitempty"`
}

// IsZero reports whether the repository is unset.
func (r Repository) IsZero() bool {
	return r.Owner == "" && r.Name == ""
}

// FullName returns owner/name.
func (r Repository) FullName() string {
	return r.Owner + "/" + r.Name
}

// Suffix returns the destination suffix derived from the repository.
func (r Repository) Suffix() PathSuffix {
	return PathSuffix{Owner: r.Owner, Name: r.Name}
}

// PathSuffix is an owner/name pair appended to a destination path.
type PathSuffix struct {
	Owner string
	Name  string
}

// Path returns the suffix joined with the OS path separator.
func (s PathSuffix) Path() string {
	return filepath.Join(s.Owner, s.Name)
}
