package doctor

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/eltomello/autopass/internal/config"
)

func TestFailed(t *testing.T) {
	t.Parallel()

	ok := []Check{{Status: OK}, {Status: Warn}}
	if Failed(ok) {
		t.Error("Failed() = true for warnings only")
	}

	bad := []Check{{Status: OK}, {Status: Fail}}
	if !Failed(bad) {
		t.Error("Failed() = false with a failing check")
	}
}

func TestCheckStore(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "site.gpg"), []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg := config.Default()
	cfg.StoreRoot = dir
	c := checkStore(context.Background(), &cfg)
	if c.Status != OK {
		t.Errorf("status = %v, want OK: %s", c.Status, c.Detail)
	}
	if !strings.Contains(c.Detail, "1 entries") {
		t.Errorf("detail = %q, want entry count", c.Detail)
	}

	cfg.StoreRoot = filepath.Join(dir, "missing")
	c = checkStore(context.Background(), &cfg)
	if c.Status != Fail {
		t.Errorf("status = %v, want Fail for a missing store", c.Status)
	}
	if c.Hint == "" {
		t.Error("expected a hint for the missing store")
	}
}

func TestCheckCache(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfg := config.Default()

	cfg.CacheFile = filepath.Join(dir, "cache.gpg")
	c := checkCache(&cfg)
	if c.Status != Warn {
		t.Errorf("status = %v, want Warn before the first sync", c.Status)
	}

	if err := os.WriteFile(cfg.CacheFile, []byte("sealed"), 0o600); err != nil {
		t.Fatal(err)
	}
	c = checkCache(&cfg)
	if c.Status != OK {
		t.Errorf("status = %v, want OK with a cache present", c.Status)
	}
}

func TestCheckAutotypeUnknownBackend(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.Backend = "ydotool"
	c := checkAutotype(&cfg)
	if c.Status != Fail {
		t.Errorf("status = %v, want Fail for unknown backend", c.Status)
	}
}

func TestCheckNotifyDisabled(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.Notify.Enabled = false
	c := checkNotify(&cfg)
	if c.Status != OK || c.Detail != "disabled" {
		t.Errorf("check = %+v, want OK/disabled", c)
	}
}
