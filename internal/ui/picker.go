package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"

	"github.com/eltomello/autopass/internal/config"
	"github.com/eltomello/autopass/internal/entry"
)

// Action is what the user asked the picker to do with the chosen entry.
type Action int

const (
	ActionAutotype Action = iota // type the sequence for Result.Slot
	ActionCopyPassword
	ActionCopyUsername
	ActionCopyOTP
	ActionTAN
	ActionShow
)

// Result contains the outcome of the picker.
type Result struct {
	Entry     *entry.Entry
	Action    Action
	Slot      int // autotype slot, meaningful for ActionAutotype
	Cancelled bool
}

// bound is one resolved keybinding target.
type bound struct {
	action Action
	slot   int
}

// boundFor translates a keybinding name from the config into its target.
// autotype_N names bind any slot, not just the built-in ones.
func boundFor(name string) (bound, bool) {
	switch name {
	case "autotype":
		return bound{action: ActionAutotype}, true
	case "copy_password":
		return bound{action: ActionCopyPassword}, true
	case "copy_username":
		return bound{action: ActionCopyUsername}, true
	case "copy_otp":
		return bound{action: ActionCopyOTP}, true
	case "tan":
		return bound{action: ActionTAN}, true
	case "show":
		return bound{action: ActionShow}, true
	}
	if rest, ok := strings.CutPrefix(name, "autotype_"); ok {
		if n, err := strconv.Atoi(rest); err == nil && n >= 1 {
			return bound{action: ActionAutotype, slot: n}, true
		}
	}
	return bound{}, false
}

// actionBindings inverts the config's name -> chord table into the
// chord -> target map the picker matches key events against. Unknown
// binding names are skipped.
func actionBindings(bindings map[string]string) map[string]bound {
	m := make(map[string]bound, len(bindings))
	for name, chord := range bindings {
		if b, ok := boundFor(name); ok {
			m[chord] = b
		}
	}
	return m
}

// pickerModel is the bubbletea model for entry selection.
type pickerModel struct {
	entries   []*entry.Entry
	filtered  []*entry.Entry
	textInput textinput.Model
	bindings  map[string]bound
	cursor    int
	result    *Result
	maxHeight int
}

// entrySource adapts the entry list for fuzzy matching over paths.
type entrySource []*entry.Entry

func (s entrySource) String(i int) string { return s[i].Path }
func (s entrySource) Len() int            { return len(s) }

func newPickerModel(entries []*entry.Entry, cfg *config.Config, initial string) pickerModel {
	ti := textinput.New()
	ti.Placeholder = "Type to filter..."
	ti.Focus()
	ti.CharLimit = 100
	ti.Width = 40
	ti.PromptStyle = cursorStyle

	m := pickerModel{
		entries:   entries,
		filtered:  entries,
		textInput: ti,
		bindings:  actionBindings(cfg.Keybindings),
		maxHeight: 10,
	}
	for i, e := range entries {
		if e.Path == initial {
			m.cursor = i
			break
		}
	}
	return m
}

func (m pickerModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		chord := msg.String()

		switch chord {
		case "ctrl+c", "esc":
			return m, tea.Quit
		}

		// Config bindings win over the spare navigation chords, so a
		// rebound ctrl+p cannot double as cursor movement.
		if b, ok := m.bindings[chord]; ok {
			if len(m.filtered) > 0 && m.cursor < len(m.filtered) {
				m.result = &Result{Entry: m.filtered[m.cursor], Action: b.action, Slot: b.slot}
			}
			return m, tea.Quit
		}

		switch chord {
		case "enter":
			// Unbound enter still confirms with the primary sequence.
			if len(m.filtered) > 0 && m.cursor < len(m.filtered) {
				m.result = &Result{Entry: m.filtered[m.cursor], Action: ActionAutotype}
			}
			return m, tea.Quit

		case "up", "ctrl+k":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil

		case "down", "ctrl+j":
			if m.cursor < len(m.filtered)-1 {
				m.cursor++
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)

	m.filtered = m.filter(m.textInput.Value())
	if m.cursor >= len(m.filtered) {
		m.cursor = max(0, len(m.filtered)-1)
	}

	return m, cmd
}

// filter narrows the list with fuzzy matching over entry paths. An empty
// query keeps the caller's ranked order.
func (m pickerModel) filter(query string) []*entry.Entry {
	if query == "" {
		return m.entries
	}
	matches := fuzzy.FindFrom(query, entrySource(m.entries))
	filtered := make([]*entry.Entry, 0, len(matches))
	for _, match := range matches {
		filtered = append(filtered, m.entries[match.Index])
	}
	return filtered
}

func (m pickerModel) View() string {
	var sb strings.Builder

	sb.WriteString("Select entry:\n")
	sb.WriteString(m.textInput.View())
	sb.WriteString("\n\n")

	if len(m.filtered) == 0 {
		sb.WriteString(dimStyle.Render("  No matches found"))
		sb.WriteString("\n")
	} else {
		start := 0
		end := len(m.filtered)
		if end > m.maxHeight {
			// Keep the cursor centered in the visible window.
			start = m.cursor - m.maxHeight/2
			if start < 0 {
				start = 0
			}
			end = start + m.maxHeight
			if end > len(m.filtered) {
				end = len(m.filtered)
				start = max(0, end-m.maxHeight)
			}
		}

		for i := start; i < end; i++ {
			e := m.filtered[i]
			line := e.Path
			if e.Invalid {
				line += "  (unreadable)"
			}

			if i == m.cursor {
				sb.WriteString(cursorStyle.Render("> "))
				sb.WriteString(selectedStyle.Render(line))
			} else if e.Invalid {
				sb.WriteString("  ")
				sb.WriteString(errorStyle.Render(line))
			} else {
				sb.WriteString("  ")
				sb.WriteString(unselectedStyle.Render(line))
			}
			sb.WriteString("\n")
		}

		if len(m.filtered) > m.maxHeight {
			sb.WriteString(dimStyle.Render(fmt.Sprintf("\n  %d/%d", m.cursor+1, len(m.filtered))))
		}
	}

	sb.WriteString("\n")
	sb.WriteString(dimStyle.Render("↑/↓ navigate • enter autotype • ctrl+p copy • esc cancel"))

	return sb.String()
}

// RunPicker shows the interactive entry picker over a ranked list.
// initial pre-selects the entry with that path, for resuming where the
// last invocation left off. A nil-entry result means cancelled.
func RunPicker(entries []*entry.Entry, cfg *config.Config, initial string) (*Result, error) {
	if len(entries) == 0 {
		return &Result{Cancelled: true}, nil
	}

	model := newPickerModel(entries, cfg, initial)
	p := tea.NewProgram(model)

	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}

	m := finalModel.(pickerModel)
	if m.result != nil {
		return m.result, nil
	}
	return &Result{Cancelled: true}, nil
}
