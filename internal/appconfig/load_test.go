package appconfig

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadRejectsUnsupportedConfigVersion(t *testing.T) {
	path := writeConfig(t, `
config_version: 9
clone_root: /src
`)
	if _, err := Load(path); err == nil || !strings.Contains(err.Error(), "unsupported config_version") {
		t.Fatalf("expected config_version error, got %v", err)
	}
}

func TestLoadRequiresConfigVersion(t *testing.T) {
	path := writeConfig(t, `
clone_root: /src
`)
	if _, err := Load(path); err == nil || !strings.Contains(err.Error(), "config_version is required") {
		t.Fatalf("expected config_version required error, got %v", err)
	}
}

func TestLoadReadsAccounts(t *testing.T) {
	t.Setenv("REPOCLONE_TEST_ROOT", "/data")
	path := writeConfig(t, `
config_version: 1
clone_root: $REPOCLONE_TEST_ROOT/src
accounts:
  - host: https://github.com
    repositories:
      - octo/hello
  - host: https://enterprise.com
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.CloneRoot != "/data/src" {
		t.Fatalf("expected expanded clone root, got %q", cfg.CloneRoot)
	}
	if len(cfg.Accounts) != 2 {
		t.Fatalf("expected 2 accounts, got %d", len(cfg.Accounts))
	}
	if cfg.Accounts[0].Host != "https://github.com" || len(cfg.Accounts[0].Repositories) != 1 {
		t.Fatalf("unexpected first account %+v", cfg.Accounts[0])
	}
	if cfg.Accounts[1].Host != "https://enterprise.com" {
		t.Fatalf("unexpected second account %+v", cfg.Accounts[1])
	}
}

func TestLoadRejectsDuplicateAccounts(t *testing.T) {
	path := writeConfig(t, `
config_version: 1
clone_root: /src
accounts:
  - host: https://github.com
  - host: GITHUB.COM
`)
	if _, err := Load(path); err == nil || !strings.Contains(err.Error(), "listed twice") {
		t.Fatalf("expected duplicate host error, got %v", err)
	}
}

func TestLoadRejectsInvalidAccountHost(t *testing.T) {
	path := writeConfig(t, `
config_version: 1
clone_root: /src
accounts:
  - host: ssh://github.com
`)
	if _, err := Load(path); err == nil || !strings.Contains(err.Error(), "accounts[0].host") {
		t.Fatalf("expected host error, got %v", err)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ConfigVersion != CurrentConfigVersion {
		t.Fatalf("expected default version, got %d", cfg.ConfigVersion)
	}
}

func TestExpandEnv(t *testing.T) {
	t.Setenv("FOO", "bar")
	value := expandEnv("$FOO/$UID/$GID/$MISSING")
	if !strings.HasPrefix(value, "bar/") {
		t.Fatalf("expected env expansion, got %q", value)
	}
	if strings.Contains(value, "$UID") || strings.Contains(value, "$GID") {
		t.Fatalf("expected UID/GID expansion, got %q", value)
	}
	if !strings.HasSuffix(value, "/$MISSING") {
		t.Fatalf("expected missing vars to remain, got %q", value)
	}
}

func TestExpandEnvHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	if got, want := expandEnv("~/src"), filepath.Join(home, "src"); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestWriteDefaultRespectsOverwrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	written, err := WriteDefault(path, false)
	if err != nil {
		t.Fatalf("write default: %v", err)
	}
	if written != path {
		t.Fatalf("expected path %q, got %q", path, written)
	}
	if _, err := Load(path); err != nil {
		t.Fatalf("expected written default to load: %v", err)
	}
	if _, err := WriteDefault(path, false); err == nil {
		t.Fatalf("expected error when config exists")
	}
	if _, err := WriteDefault(path, true); err != nil {
		t.Fatalf("expected overwrite to succeed: %v", err)
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(strings.TrimSpace(content)+"\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}
