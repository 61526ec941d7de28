package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/eltomello/autopass/internal/config"
	"github.com/eltomello/autopass/internal/entry"
)

func keyPress(key string) tea.KeyMsg {
	switch key {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "ctrl+p":
		return tea.KeyMsg{Type: tea.KeyCtrlP}
	case "ctrl+u":
		return tea.KeyMsg{Type: tea.KeyCtrlU}
	case "ctrl+o":
		return tea.KeyMsg{Type: tea.KeyCtrlO}
	case "ctrl+t":
		return tea.KeyMsg{Type: tea.KeyCtrlT}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	}
	if rest, ok := strings.CutPrefix(key, "alt+"); ok {
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(rest), Alt: true}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
}

func press(t *testing.T, m pickerModel, keys ...string) pickerModel {
	t.Helper()
	for _, key := range keys {
		updated, _ := m.Update(keyPress(key))
		m = updated.(pickerModel)
	}
	return m
}

func testEntries() []*entry.Entry {
	return []*entry.Entry{
		{Name: "github", Path: "web/github"},
		{Name: "gitlab", Path: "web/gitlab"},
		{Name: "fastmail", Path: "mail/fastmail"},
	}
}

func testPicker(initial string) pickerModel {
	cfg := config.Default()
	return newPickerModel(testEntries(), &cfg, initial)
}

func TestBoundFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		in     string
		action Action
		slot   int
		ok     bool
	}{
		{"primary autotype", "autotype", ActionAutotype, 0, true},
		{"alternate slot", "autotype_2", ActionAutotype, 2, true},
		{"high slot", "autotype_9", ActionAutotype, 9, true},
		{"copy password", "copy_password", ActionCopyPassword, 0, true},
		{"copy otp", "copy_otp", ActionCopyOTP, 0, true},
		{"tan", "tan", ActionTAN, 0, true},
		{"show", "show", ActionShow, 0, true},
		{"slot zero is the bare name", "autotype_0", 0, 0, false},
		{"non-numeric slot", "autotype_x", 0, 0, false},
		{"unknown name", "paste", 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			b, ok := boundFor(tt.in)
			if ok != tt.ok {
				t.Fatalf("boundFor(%q) ok = %v, want %v", tt.in, ok, tt.ok)
			}
			if !ok {
				return
			}
			if b.action != tt.action || b.slot != tt.slot {
				t.Errorf("boundFor(%q) = %+v, want action %v slot %d", tt.in, b, tt.action, tt.slot)
			}
		})
	}
}

func TestPickerSelectsOnEnter(t *testing.T) {
	t.Parallel()

	m := press(t, testPicker(""), "enter")

	if m.result == nil {
		t.Fatal("result = nil, want selection")
	}
	if m.result.Entry.Path != "web/github" {
		t.Errorf("selected %q, want web/github", m.result.Entry.Path)
	}
	if m.result.Action != ActionAutotype || m.result.Slot != 0 {
		t.Errorf("action = %v slot %d, want primary autotype", m.result.Action, m.result.Slot)
	}
}

func TestPickerActionChords(t *testing.T) {
	t.Parallel()

	tests := []struct {
		chord  string
		action Action
		slot   int
	}{
		{"ctrl+p", ActionCopyPassword, 0},
		{"ctrl+u", ActionCopyUsername, 0},
		{"ctrl+o", ActionCopyOTP, 0},
		{"ctrl+t", ActionTAN, 0},
		{"ctrl+s", ActionShow, 0},
		{"alt+1", ActionAutotype, 1},
		{"alt+3", ActionAutotype, 3},
	}

	for _, tt := range tests {
		t.Run(tt.chord, func(t *testing.T) {
			t.Parallel()
			m := press(t, testPicker(""), tt.chord)
			if m.result == nil {
				t.Fatal("result = nil, want selection")
			}
			if m.result.Action != tt.action || m.result.Slot != tt.slot {
				t.Errorf("got action %v slot %d, want %v slot %d",
					m.result.Action, m.result.Slot, tt.action, tt.slot)
			}
		})
	}
}

func TestPickerCursorNavigation(t *testing.T) {
	t.Parallel()

	m := press(t, testPicker(""), "down", "down", "up", "enter")

	if m.result == nil || m.result.Entry.Path != "web/gitlab" {
		t.Fatalf("result = %+v, want web/gitlab", m.result)
	}
}

func TestPickerFilters(t *testing.T) {
	t.Parallel()

	m := press(t, testPicker(""), "g", "l")

	if len(m.filtered) != 1 || m.filtered[0].Path != "web/gitlab" {
		paths := make([]string, 0, len(m.filtered))
		for _, e := range m.filtered {
			paths = append(paths, e.Path)
		}
		t.Fatalf("filtered = %v, want only web/gitlab", paths)
	}

	m = press(t, m, "enter")
	if m.result == nil || m.result.Entry.Path != "web/gitlab" {
		t.Fatalf("result = %+v, want web/gitlab", m.result)
	}
}

func TestPickerEnterWithoutMatches(t *testing.T) {
	t.Parallel()

	m := press(t, testPicker(""), "z", "z", "z")
	if len(m.filtered) != 0 {
		t.Fatalf("filtered = %d entries, want none", len(m.filtered))
	}

	m = press(t, m, "enter")
	if m.result != nil {
		t.Errorf("result = %+v, want nil", m.result)
	}
}

func TestPickerCancelLeavesNoResult(t *testing.T) {
	t.Parallel()

	m := press(t, testPicker(""), "down", "esc")
	if m.result != nil {
		t.Errorf("result = %+v, want nil after cancel", m.result)
	}
}

func TestPickerInitialCursor(t *testing.T) {
	t.Parallel()

	m := press(t, testPicker("mail/fastmail"), "enter")
	if m.result == nil || m.result.Entry.Path != "mail/fastmail" {
		t.Fatalf("result = %+v, want the pre-selected entry", m.result)
	}

	m = press(t, testPicker("gone/entry"), "enter")
	if m.result == nil || m.result.Entry.Path != "web/github" {
		t.Fatalf("result = %+v, want first entry for unknown initial", m.result)
	}
}

func TestPickerViewMarksErroredEntries(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	entries := []*entry.Entry{
		{Name: "ok", Path: "web/ok"},
		{Name: "broken", Path: "web/broken", Invalid: true, Reason: "bad yaml"},
	}
	m := newPickerModel(entries, &cfg, "")

	view := m.View()
	if !strings.Contains(view, "web/broken  (unreadable)") {
		t.Errorf("view does not mark the errored entry:\n%s", view)
	}
	if !strings.Contains(view, "Select entry:") {
		t.Errorf("view is missing the header:\n%s", view)
	}
}
