package components

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/radstar/internal/ui/theme"
)

// Picker is a single-choice list. Enter commits the highlighted option; esc
// cancels.
type Picker struct {
	Prompt    string
	Options   []string
	Selected  int
	Chosen    int
	Done      bool
	Cancelled bool
}

// NewPicker creates a picker with the option at index current highlighted.
func NewPicker(prompt string, options []string, current int) Picker {
	if current < 0 || current >= len(options) {
		current = 0
	}
	return Picker{
		Prompt:   prompt,
		Options:  options,
		Selected: current,
		Chosen:   -1,
	}
}

// Update handles keyboard navigation and selection.
func (p Picker) Update(msg tea.Msg) (Picker, tea.Cmd) {
	if p.Done {
		return p, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if p.Selected > 0 {
			p.Selected--
		}
	case "down", "j":
		if p.Selected < len(p.Options)-1 {
			p.Selected++
		}
	case "enter":
		if len(p.Options) > 0 {
			p.Done = true
			p.Chosen = p.Selected
		}
	case "esc":
		p.Done = true
		p.Cancelled = true
	}

	return p, nil
}

// Value returns the chosen option, if any.
func (p Picker) Value() (string, bool) {
	if !p.Done || p.Cancelled || p.Chosen < 0 || p.Chosen >= len(p.Options) {
		return "", false
	}
	return p.Options[p.Chosen], true
}

// View renders the picker.
func (p Picker) View() string {
	s := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(p.Prompt) + "\n\n"
	for i, opt := range p.Options {
		if i == p.Selected {
			s += lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("▸ "+opt) + "\n"
		} else {
			s += lipgloss.NewStyle().Foreground(theme.Text).Render("  "+opt) + "\n"
		}
	}
	return s
}
