package main

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/fsnotify/fsnotify"
)

func TestIsStoreEvent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		ev   fsnotify.Event
		want bool
	}{
		{"created entry", fsnotify.Event{Name: "/store/web/github.gpg", Op: fsnotify.Create}, true},
		{"written entry", fsnotify.Event{Name: "/store/web/github.gpg", Op: fsnotify.Write}, true},
		{"removed entry", fsnotify.Event{Name: "/store/old.gpg", Op: fsnotify.Remove}, true},
		{"renamed entry", fsnotify.Event{Name: "/store/old.gpg", Op: fsnotify.Rename}, true},
		{"chmod only", fsnotify.Event{Name: "/store/web/github.gpg", Op: fsnotify.Chmod}, false},
		{"gpg-id file", fsnotify.Event{Name: "/store/.gpg-id", Op: fsnotify.Write}, false},
		{"editor temp file", fsnotify.Event{Name: "/store/web/github.gpg.swp", Op: fsnotify.Write}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := isStoreEvent(tt.ev); got != tt.want {
				t.Errorf("isStoreEvent(%v) = %v, want %v", tt.ev, got, tt.want)
			}
		})
	}
}

func TestAddWatchDirs(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	for _, dir := range []string{"web/sub", "mail", ".git/objects"} {
		if err := os.MkdirAll(filepath.Join(root, dir), 0o755); err != nil {
			t.Fatal(err)
		}
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	if err := addWatchDirs(w, root); err != nil {
		t.Fatalf("addWatchDirs() error = %v", err)
	}

	got := w.WatchList()
	for _, want := range []string{
		root,
		filepath.Join(root, "web"),
		filepath.Join(root, "web", "sub"),
		filepath.Join(root, "mail"),
	} {
		if !slices.Contains(got, want) {
			t.Errorf("watch list %v is missing %s", got, want)
		}
	}
	if slices.Contains(got, filepath.Join(root, ".git")) {
		t.Errorf("watch list %v should skip hidden directories", got)
	}
}
