package components

import (
	"fmt"
	"image/color"
	"strings"
	"sync"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/ansi"

	"github.com/abhisek/radstar/internal/markup"
	"github.com/abhisek/radstar/internal/ui/theme"
)

type rendererKey struct {
	palette string
	width   int
}

var (
	renderersMu sync.Mutex
	renderers   = map[rendererKey]*glamour.TermRenderer{}
)

// RichText renders case markup wrapped to width through glamour: bold and
// term spans are styled, bullets get a hanging indent and hints are set off
// in the accent color.
func RichText(text string, width int) string {
	if width < 10 {
		width = 10
	}

	renderersMu.Lock()
	defer renderersMu.Unlock()

	r, err := renderer(width)
	if err == nil {
		var out string
		if out, err = r.Render(markup.Markdown(text)); err == nil {
			return strings.Trim(out, "\n")
		}
	}
	return lipgloss.NewStyle().Width(width).Render(markup.Strip(text))
}

func renderer(width int) (*glamour.TermRenderer, error) {
	key := rendererKey{palette: theme.Current(), width: width}
	if r, ok := renderers[key]; ok {
		return r, nil
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStyles(markdownStyle()),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	renderers[key] = r
	return r, nil
}

// markdownStyle maps the applied palette onto glamour's style sheet.
func markdownStyle() ansi.StyleConfig {
	var (
		zero   uint
		one    uint = 1
		bold        = true
		italic      = true
		hint        = "→ "
	)
	return ansi.StyleConfig{
		Document: ansi.StyleBlock{
			StylePrimitive: ansi.StylePrimitive{Color: hex(theme.Text)},
			Margin:         &zero,
		},
		Heading: ansi.StyleBlock{
			StylePrimitive: ansi.StylePrimitive{Color: hex(theme.Primary), Bold: &bold},
		},
		Strong: ansi.StylePrimitive{Color: hex(theme.Text), Bold: &bold},
		Emph:   ansi.StylePrimitive{Color: hex(theme.Secondary), Italic: &italic},
		Item:   ansi.StylePrimitive{BlockPrefix: "• ", Color: hex(theme.Secondary)},
		Enumeration: ansi.StylePrimitive{
			BlockPrefix: ". ",
			Color:       hex(theme.Secondary),
		},
		List: ansi.StyleList{LevelIndent: 2},
		BlockQuote: ansi.StyleBlock{
			StylePrimitive: ansi.StylePrimitive{Color: hex(theme.Accent), Italic: &italic},
			Indent:         &one,
			IndentToken:    &hint,
		},
		Code: ansi.StyleBlock{
			StylePrimitive: ansi.StylePrimitive{Color: hex(theme.Accent)},
		},
	}
}

func hex(c color.Color) *string {
	if c == nil {
		return nil
	}
	r, g, b, _ := c.RGBA()
	s := fmt.Sprintf("#%02X%02X%02X", r>>8, g>>8, b>>8)
	return &s
}
