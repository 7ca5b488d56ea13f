package core

import (
	"path/filepath"
	"strings"

	"pkt.systems/repoclone/schema"
)

// InferPath derives the destination for next from the current path. When current
// still ends with the previously appended owner/name pair, that pair is replaced;
// otherwise next is appended. The returned suffix is the new last auto-suffix.
func InferPath(current string, last *schema.PathSuffix, next schema.PathSuffix) (string, *schema.PathSuffix) {
	base := current
	if last != nil {
		if prefix, ok := trimPathSuffix(current, last.Path()); ok {
			base = prefix
		}
	}
	recorded := next
	return filepath.Join(base, next.Path()), &recorded
}

// trimPathSuffix strips suffix from p when it matches whole trailing segments.
func trimPathSuffix(p, suffix string) (string, bool) {
	if strings.TrimSpace(p) == "" || suffix == "" {
		return "", false
	}
	clean := filepath.Clean(p)
	if clean == suffix {
		return "", true
	}
	sep := string(filepath.Separator)
	if !strings.HasSuffix(clean, sep+suffix) {
		return "", false
	}
	return clean[:len(clean)-len(suffix)], true
}
