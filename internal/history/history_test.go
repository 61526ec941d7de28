package history

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestRecordAccess(t *testing.T) {
	t.Parallel()

	historyFile := filepath.Join(t.TempDir(), "history.json")

	if err := RecordAccess("web/github", historyFile); err != nil {
		t.Fatalf("RecordAccess failed: %v", err)
	}

	h, err := Load(historyFile)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(h.Entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(h.Entries))
	}
	e := h.Entries[0]
	if e.Path != "web/github" {
		t.Errorf("Path = %q, want %q", e.Path, "web/github")
	}
	if e.AccessCount != 1 {
		t.Errorf("AccessCount = %d, want 1", e.AccessCount)
	}
	if e.LastAccess.IsZero() {
		t.Error("LastAccess should not be zero")
	}
}

func TestRecordAccessIncrementsExisting(t *testing.T) {
	t.Parallel()

	historyFile := filepath.Join(t.TempDir(), "history.json")

	if err := RecordAccess("web/github", historyFile); err != nil {
		t.Fatalf("first RecordAccess failed: %v", err)
	}

	time.Sleep(10 * time.Millisecond)

	if err := RecordAccess("web/github", historyFile); err != nil {
		t.Fatalf("second RecordAccess failed: %v", err)
	}

	h, err := Load(historyFile)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(h.Entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(h.Entries))
	}
	if h.Entries[0].AccessCount != 2 {
		t.Errorf("AccessCount = %d, want 2", h.Entries[0].AccessCount)
	}
}

func TestRecordEvictsOldestAtCap(t *testing.T) {
	t.Parallel()

	h := &History{}
	base := time.Now().Add(-time.Hour)
	for i := range maxEntries {
		h.Entries = append(h.Entries, Entry{
			Path:        filepath.Join("dir", string(rune('a'+i%26)), string(rune('0'+i/26))),
			AccessCount: 1,
			LastAccess:  base.Add(time.Duration(i) * time.Second),
		})
	}
	oldest := h.Entries[0].Path

	h.Record("web/new")

	if len(h.Entries) != maxEntries {
		t.Fatalf("expected %d entries, got %d", maxEntries, len(h.Entries))
	}
	if h.Find("web/new") == nil {
		t.Error("new entry not found after cap eviction")
	}
	if h.Find(oldest) != nil {
		t.Errorf("oldest entry %q should have been evicted", oldest)
	}
}

func TestMostRecent(t *testing.T) {
	t.Parallel()

	historyFile := filepath.Join(t.TempDir(), "history.json")

	if err := RecordAccess("web/old", historyFile); err != nil {
		t.Fatalf("RecordAccess failed: %v", err)
	}
	time.Sleep(10 * time.Millisecond)
	if err := RecordAccess("web/new", historyFile); err != nil {
		t.Fatalf("RecordAccess failed: %v", err)
	}

	mostRecent, err := MostRecent(historyFile)
	if err != nil {
		t.Fatalf("MostRecent failed: %v", err)
	}
	if mostRecent != "web/new" {
		t.Errorf("expected %q, got %q", "web/new", mostRecent)
	}
}

func TestMostRecentNoHistory(t *testing.T) {
	t.Parallel()

	mostRecent, err := MostRecent(filepath.Join(t.TempDir(), "nonexistent.json"))
	if err != nil {
		t.Fatalf("MostRecent failed: %v", err)
	}
	if mostRecent != "" {
		t.Errorf("expected empty string, got %q", mostRecent)
	}
}

func TestPrune(t *testing.T) {
	t.Parallel()

	h := &History{
		Entries: []Entry{
			{Path: "web/kept", AccessCount: 1, LastAccess: time.Now()},
			{Path: "web/gone", AccessCount: 1, LastAccess: time.Now()},
		},
	}

	removed := h.Prune(func(path string) bool { return path == "web/kept" })
	if removed != 1 {
		t.Errorf("expected 1 removed, got %d", removed)
	}
	if len(h.Entries) != 1 || h.Entries[0].Path != "web/kept" {
		t.Errorf("entries = %+v, want only web/kept", h.Entries)
	}
}

func TestRemove(t *testing.T) {
	t.Parallel()

	h := &History{
		Entries: []Entry{
			{Path: "web/a"},
			{Path: "web/b"},
			{Path: "web/c"},
		},
	}

	if !h.Remove("web/b") {
		t.Error("expected Remove to return true for existing entry")
	}
	if len(h.Entries) != 2 {
		t.Fatalf("expected 2 entries after removal, got %d", len(h.Entries))
	}
	if h.Find("web/b") != nil {
		t.Error("removed entry should not be findable")
	}

	if h.Remove("web/nonexistent") {
		t.Error("expected Remove to return false for nonexistent entry")
	}
}

func TestLoadNoFile(t *testing.T) {
	t.Parallel()

	h, err := Load(filepath.Join(t.TempDir(), "nonexistent.json"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(h.Entries) != 0 {
		t.Errorf("expected 0 entries for missing file, got %d", len(h.Entries))
	}
}

func TestLoadInvalidJSON(t *testing.T) {
	t.Parallel()

	historyFile := filepath.Join(t.TempDir(), "history.json")
	if err := os.WriteFile(historyFile, []byte("not valid json"), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	if _, err := Load(historyFile); err == nil {
		t.Error("expected error for invalid JSON, got nil")
	}
}

func TestSaveCreatesDirectory(t *testing.T) {
	t.Parallel()

	historyFile := filepath.Join(t.TempDir(), "subdir", "history.json")

	h := &History{
		Entries: []Entry{
			{Path: "web/github", AccessCount: 1, LastAccess: time.Now()},
		},
	}
	if err := h.Save(historyFile); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if _, err := os.Stat(historyFile); os.IsNotExist(err) {
		t.Error("expected history file to be created")
	}
}

func TestDefaultPath(t *testing.T) {
	t.Parallel()

	path, err := DefaultPath()
	if err != nil {
		t.Fatalf("DefaultPath failed: %v", err)
	}
	if !filepath.IsAbs(path) {
		t.Errorf("DefaultPath should return an absolute path, got %q", path)
	}
	if filepath.Base(path) != "history.json" {
		t.Errorf("expected filename 'history.json', got %q", filepath.Base(path))
	}
}
