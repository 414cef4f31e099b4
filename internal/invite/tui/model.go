// Package tui renders the invite form in a terminal with bubbletea.
package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/festy23/team_invite/internal/invite/model"
	"github.com/festy23/team_invite/internal/invite/store"
)

// Focus identifies the focused part of the form.
type Focus int

const (
	// FocusInput focuses the email field.
	FocusInput Focus = iota
	// FocusTags focuses the member tag list.
	FocusTags
)

// Model is the bubbletea model of the invite form. All state changes go
// through the store; the model only tracks focus and tag selection.
type Model struct {
	store    *store.Store
	input    textinput.Model
	focus    Focus
	selected int
	styles   Styles
	quitting bool
}

// New creates a form model bound to s.
func New(s *store.Store) Model {
	ti := textinput.New()
	ti.Placeholder = "Enter an email"
	ti.Prompt = ""
	ti.Width = 40
	ti.SetValue(s.State().Text)
	ti.Focus()

	return Model{
		store:  s,
		input:  ti,
		focus:  FocusInput,
		styles: DefaultStyles(),
	}
}

// Init starts the cursor blink.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// State returns the current form state.
func (m Model) State() model.FormState {
	return m.store.State()
}

// Focused returns the focused part of the form.
func (m Model) Focused() Focus {
	return m.focus
}

// Selected returns the index of the selected tag.
func (m Model) Selected() int {
	return m.selected
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch key.String() {
	case "ctrl+c", "esc":
		m.quitting = true
		return m, tea.Quit
	case "tab", "shift+tab":
		return m.toggleFocus(), nil
	}

	if m.focus == FocusTags {
		return m.updateTags(key), nil
	}
	return m.updateInput(key)
}

func (m Model) updateInput(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Type == tea.KeyEnter {
		if m.store.State().Text == "" {
			return m, nil
		}
		state := m.store.Dispatch(model.Submit{})
		m.input.SetValue(state.Text)
		m.input.CursorEnd()
		return m, nil
	}

	var cmd tea.Cmd
	before := m.input.Value()
	m.input, cmd = m.input.Update(key)
	if after := m.input.Value(); after != before {
		m.store.Dispatch(model.ChangeText{Payload: after})
	}
	return m, cmd
}

func (m Model) updateTags(key tea.KeyMsg) Model {
	team := m.store.State().Team
	switch key.String() {
	case "left", "h":
		if m.selected > 0 {
			m.selected--
		}
	case "right", "l":
		if m.selected < len(team)-1 {
			m.selected++
		}
	case "delete", "backspace", "d", "x":
		if m.selected < len(team) {
			state := m.store.Dispatch(model.Remove{Payload: team[m.selected]})
			if m.selected >= len(state.Team) {
				m.selected = len(state.Team) - 1
			}
			if len(state.Team) == 0 {
				m.selected = 0
				m = m.focusInput()
			}
		}
	}
	return m
}

func (m Model) toggleFocus() Model {
	if m.focus == FocusTags || len(m.store.State().Team) == 0 {
		return m.focusInput()
	}
	m.focus = FocusTags
	m.input.Blur()
	if m.selected >= len(m.store.State().Team) {
		m.selected = 0
	}
	return m
}

func (m Model) focusInput() Model {
	m.focus = FocusInput
	m.input.Focus()
	return m
}

// View renders the form.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	state := m.store.State()

	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Invite team members"))
	b.WriteString("\n")

	inputStyle := m.styles.Input
	if state.Error != "" {
		inputStyle = m.styles.InputAlert
	}
	button := m.styles.Button.Render("Send invite")
	if state.Text == "" {
		button = m.styles.ButtonOff.Render("Send invite")
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Center, inputStyle.Render(m.input.View()), " ", button))
	b.WriteString("\n")

	if state.Error != "" {
		b.WriteString(m.styles.Error.Render(state.Error))
		b.WriteString("\n")
	}
	if state.Success != "" {
		b.WriteString(m.styles.Success.Render(state.Success))
		b.WriteString("\n")
	}

	if len(state.Team) > 0 {
		tags := make([]string, 0, len(state.Team))
		for i, email := range state.Team {
			style := m.styles.Tag
			if m.focus == FocusTags && i == m.selected {
				style = m.styles.TagSelected
			}
			tags = append(tags, style.Render(email+" ×"))
		}
		b.WriteString("\n")
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tags...))
		b.WriteString("\n")
	}

	b.WriteString(m.styles.Help.Render(m.help()))
	return b.String()
}

func (m Model) help() string {
	if m.focus == FocusTags {
		return "←/→ select • d remove • tab back to input • esc quit"
	}
	return "enter send • tab members • esc quit"
}
