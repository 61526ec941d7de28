package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// textResult holds the outcome of a one-line input prompt.
type textResult struct {
	Value     string
	Cancelled bool
}

type textModel struct {
	textInput textinput.Model
	prompt    string
	done      bool
	cancelled bool
}

func (m textModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m textModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "enter":
			m.done = true
			return m, tea.Quit
		case "ctrl+c", "esc":
			m.cancelled = true
			m.done = true
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m textModel) View() string {
	if m.done {
		return ""
	}
	return fmt.Sprintf("%s\n%s", m.prompt, m.textInput.View())
}

// textInputPrompt shows a one-line input prompt and returns the entered
// value.
func textInputPrompt(prompt, placeholder string) (textResult, error) {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Focus()
	ti.CharLimit = 16
	ti.Width = 20
	ti.PromptStyle = cursorStyle

	model := textModel{
		textInput: ti,
		prompt:    prompt,
	}
	p := tea.NewProgram(model)
	finalModel, err := p.Run()
	if err != nil {
		return textResult{}, err
	}
	m := finalModel.(textModel)
	return textResult{
		Value:     m.textInput.Value(),
		Cancelled: m.cancelled,
	}, nil
}

// TANPrompt returns the prompt function for TAN selection over n codes.
// Retries mention that the previous input was invalid; a dismissed
// prompt or a broken terminal reports ok=false to abort the loop.
func TANPrompt(n int) func(attempt int) (string, bool) {
	return func(attempt int) (string, bool) {
		prompt := fmt.Sprintf("TAN index (1-%d):", n)
		if attempt > 0 {
			prompt = fmt.Sprintf("Invalid index, try again (1-%d):", n)
		}
		res, err := textInputPrompt(prompt, "1")
		if err != nil || res.Cancelled {
			return "", false
		}
		return res.Value, true
	}
}
