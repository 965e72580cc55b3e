package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/radstar/internal/ui/theme"
)

// MenuItem represents a single item in a navigation menu.
type MenuItem struct {
	Label    string
	Detail   string
	Action   func() tea.Cmd
	Disabled bool
}

// Menu is a vertical navigation menu. Disabled items are shown but never
// selected.
type Menu struct {
	Items    []MenuItem
	Selected int
}

// NewMenu creates a menu with the first enabled item selected.
func NewMenu(items []MenuItem) Menu {
	m := Menu{Items: items}
	m.Selected = m.next(-1, 1)
	if m.Selected < 0 {
		m.Selected = 0
	}
	return m
}

// Select moves the cursor to item i if it exists and is enabled.
func (m *Menu) Select(i int) bool {
	if i < 0 || i >= len(m.Items) || m.Items[i].Disabled {
		return false
	}
	m.Selected = i
	return true
}

// next returns the first enabled index after from in direction dir, or -1.
func (m Menu) next(from, dir int) int {
	for i := from + dir; i >= 0 && i < len(m.Items); i += dir {
		if !m.Items[i].Disabled {
			return i
		}
	}
	return -1
}

// Update handles keyboard navigation.
func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch kmsg.String() {
	case "up", "k":
		m.Select(m.next(m.Selected, -1))
	case "down", "j":
		m.Select(m.next(m.Selected, 1))
	case "home":
		m.Select(m.next(-1, 1))
	case "end":
		m.Select(m.next(len(m.Items), -1))
	case "enter":
		if m.Selected >= 0 && m.Selected < len(m.Items) {
			item := m.Items[m.Selected]
			if item.Action != nil && !item.Disabled {
				return m, item.Action()
			}
		}
	}

	return m, nil
}

// View renders the menu. Items with a Detail show it dimmed on the next line.
func (m Menu) View() string {
	var b strings.Builder
	for i, item := range m.Items {
		switch {
		case item.Disabled:
			b.WriteString(theme.Hint.Italic(false).Render("    " + item.Label))
		case i == m.Selected:
			b.WriteString(theme.Selected.Render("  ▸ " + item.Label))
		default:
			b.WriteString(theme.Unselected.Render("    " + item.Label))
		}
		b.WriteByte('\n')
		if item.Detail != "" {
			b.WriteString(theme.Hint.Render("      " + item.Detail))
			b.WriteByte('\n')
		}
	}
	return b.String()
}
