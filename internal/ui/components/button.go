package components

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/radstar/internal/ui/theme"
)

// Button is a styled button component. Active buttons render highlighted
// and respond to enter.
type Button struct {
	Label   string
	Active  bool
	OnPress func() tea.Cmd
}

// NewButton creates a new button.
func NewButton(label string, active bool, onPress func() tea.Cmd) Button {
	return Button{
		Label:   label,
		Active:  active,
		OnPress: onPress,
	}
}

// Update handles key events.
func (b Button) Update(msg tea.Msg) (Button, tea.Cmd) {
	if !b.Active {
		return b, nil
	}

	if kmsg, ok := msg.(tea.KeyMsg); ok {
		if kmsg.String() == "enter" && b.OnPress != nil {
			return b, b.OnPress()
		}
	}

	return b, nil
}

// View renders the button.
func (b Button) View() string {
	if b.Active {
		return theme.ButtonActive.Render("▸ " + b.Label)
	}
	return theme.ButtonInactive.Render(b.Label)
}

// Tabs renders labels as a single row with the active one highlighted.
func Tabs(labels []string, active int) string {
	inactive := lipgloss.NewStyle().Foreground(theme.TextDim).Padding(0, 2)
	parts := make([]string, len(labels))
	for i, l := range labels {
		if i == active {
			parts[i] = theme.ButtonActive.Render("▸ " + l)
		} else {
			parts[i] = inactive.Render(l)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}
