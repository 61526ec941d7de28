// Package ui provides the interactive terminal components of autopass.
//
// This package uses the Charm libraries (bubbletea, bubbles, lipgloss)
// for the entry picker and small input prompts.
//
// # Picker
//
// [RunPicker] shows the ranked entry list behind a fuzzy filter input.
// Action chords come from the keybindings table in the config, so one
// picker dispatches every flow:
//
//   - enter types the primary sequence (slot 0)
//   - alt+1..3 type the alternate slots
//   - ctrl+p / ctrl+u / ctrl+o copy password, username or a fresh code
//   - ctrl+t starts TAN selection, ctrl+s prints the entry
//
// Error-flagged entries stay visible but are marked, so one broken file
// in the store never hides the rest of the list.
//
// # Prompts
//
// [TANPrompt] adapts a one-line text input to the TAN selection loop,
// re-prompting with the valid index range until the input parses or the
// user dismisses it.
//
// Output assumes a terminal with ANSI colors; callers skip the picker
// when stdout is not a TTY.
package ui
