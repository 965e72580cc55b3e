package components

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/radstar/internal/casebook"
	"github.com/abhisek/radstar/internal/ui/theme"
	"github.com/abhisek/radstar/internal/viewer"
)

// NodeKey returns the number key that selects a node.
func NodeKey(n casebook.Node) string {
	switch n {
	case casebook.NodeCentral:
		return "1"
	case casebook.NodeTechnical:
		return "2"
	case casebook.NodeClinical:
		return "3"
	case casebook.NodeAnatomical:
		return "4"
	}
	return ""
}

// NodeHeading is the short upper-case name drawn on a node.
func NodeHeading(n casebook.Node) string {
	if l, ok := n.Lens(); ok {
		return l.String()
	}
	return "CASE"
}

type constellationNode struct {
	node    casebook.Node
	pos     casebook.Point
	heading string
	title   string
	color   color.Color
}

// Constellation draws the four case nodes at their layout positions,
// scaled onto a character grid, with spokes from the central node.
type Constellation struct {
	nodes       []constellationNode
	selected    casebook.Node
	recommended casebook.Node
	visited     map[casebook.Node]bool
}

// NewConstellation builds the graph of a case for a view state.
func NewConstellation(cs casebook.Case, st viewer.ViewState, recommended casebook.Node) Constellation {
	c := Constellation{
		selected:    st.Node,
		recommended: recommended,
		visited:     st.Visited,
	}
	for _, n := range casebook.AllNodes() {
		title := cs.Labels.Of(n).Title
		if title == "" && n == casebook.NodeCentral {
			title = cs.DisplayName
		}
		c.nodes = append(c.nodes, constellationNode{
			node:    n,
			pos:     cs.Layout.At(n),
			heading: NodeHeading(n),
			title:   title,
			color:   theme.NodeColor(cs.Colors.Of(n)),
		})
	}
	return c
}

const (
	styleNone = iota
	styleEdge
	styleNodeBase
)

type cell struct {
	r     rune
	style int
}

// View renders the graph into a width x height block.
func (c Constellation) View(width, height int) string {
	if width < 30 || height < 8 {
		return c.compact()
	}

	grid := make([][]cell, height)
	for y := range grid {
		grid[y] = make([]cell, width)
		for x := range grid[y] {
			grid[y][x] = cell{r: ' '}
		}
	}

	labelWidth := width / 3
	if labelWidth > 28 {
		labelWidth = 28
	}
	centers := c.place(width, height, labelWidth)

	// Spokes first so labels draw over them.
	for i, n := range c.nodes {
		if n.node == casebook.NodeCentral {
			continue
		}
		drawLine(grid, centers[0], centers[i])
	}

	for i, n := range c.nodes {
		lines := []string{c.headingLine(n), truncate(n.title, labelWidth)}
		for dy, text := range lines {
			y := centers[i].Y + dy
			if y < 0 || y >= height {
				continue
			}
			runes := []rune(text)
			x0 := centers[i].X - len(runes)/2
			for k, r := range runes {
				x := x0 + k
				if x >= 0 && x < width {
					grid[y][x] = cell{r: r, style: styleNodeBase + i}
				}
			}
		}
	}

	return c.render(grid)
}

// place maps layout coordinates to grid positions, leaving room for labels.
func (c Constellation) place(width, height, labelWidth int) []casebook.Point {
	minX, maxX := c.nodes[0].pos.X, c.nodes[0].pos.X
	minY, maxY := c.nodes[0].pos.Y, c.nodes[0].pos.Y
	for _, n := range c.nodes[1:] {
		minX = min(minX, n.pos.X)
		maxX = max(maxX, n.pos.X)
		minY = min(minY, n.pos.Y)
		maxY = max(maxY, n.pos.Y)
	}
	spanX := max(maxX-minX, 1)
	spanY := max(maxY-minY, 1)

	// Each label is two lines tall, so the last usable row is height-2.
	usableW := max(width-labelWidth, 1)
	usableH := max(height-2, 1)

	out := make([]casebook.Point, len(c.nodes))
	for i, n := range c.nodes {
		out[i] = casebook.Point{
			X: labelWidth/2 + (n.pos.X-minX)*usableW/spanX,
			Y: (n.pos.Y - minY) * usableH / spanY,
		}
	}
	return out
}

func (c Constellation) headingLine(n constellationNode) string {
	marker := "○"
	switch {
	case n.node == c.selected:
		marker = "◉"
	case c.visited[n.node]:
		marker = "●"
	}
	line := fmt.Sprintf("%s %s %s", marker, NodeKey(n.node), n.heading)
	if n.node == c.recommended && n.node != c.selected {
		line += " ★"
	}
	return line
}

func (c Constellation) render(grid [][]cell) string {
	styles := make([]lipgloss.Style, styleNodeBase+len(c.nodes))
	styles[styleNone] = lipgloss.NewStyle()
	styles[styleEdge] = lipgloss.NewStyle().Foreground(theme.Border)
	for i, n := range c.nodes {
		st := lipgloss.NewStyle().Foreground(n.color)
		if n.node == c.selected {
			st = st.Bold(true).Underline(true)
		}
		styles[styleNodeBase+i] = st
	}

	rows := make([]string, len(grid))
	for y, row := range grid {
		var sb strings.Builder
		start := 0
		for x := 1; x <= len(row); x++ {
			if x == len(row) || row[x].style != row[start].style {
				run := make([]rune, 0, x-start)
				for _, cl := range row[start:x] {
					run = append(run, cl.r)
				}
				if row[start].style == styleNone {
					sb.WriteString(string(run))
				} else {
					sb.WriteString(styles[row[start].style].Render(string(run)))
				}
				start = x
			}
		}
		rows[y] = strings.TrimRight(sb.String(), " ")
	}
	return strings.Join(rows, "\n")
}

// compact lists the nodes when the canvas is too small to draw.
func (c Constellation) compact() string {
	lines := make([]string, 0, len(c.nodes))
	for _, n := range c.nodes {
		st := lipgloss.NewStyle().Foreground(n.color)
		if n.node == c.selected {
			st = st.Bold(true)
		}
		lines = append(lines, st.Render(c.headingLine(n)+"  "+n.title))
	}
	return strings.Join(lines, "\n")
}

// drawLine plots a dotted Bresenham line between two points, leaving the
// end cells free for labels.
func drawLine(grid [][]cell, a, b casebook.Point) {
	dx := abs(b.X - a.X)
	dy := -abs(b.Y - a.Y)
	sx, sy := 1, 1
	if a.X > b.X {
		sx = -1
	}
	if a.Y > b.Y {
		sy = -1
	}
	err := dx + dy
	x, y := a.X, a.Y
	for {
		if (x != a.X || y != a.Y) && (x != b.X || y != b.Y) {
			if y >= 0 && y < len(grid) && x >= 0 && x < len(grid[y]) && grid[y][x].style == styleNone {
				grid[y][x] = cell{r: '·', style: styleEdge}
			}
		}
		if x == b.X && y == b.Y {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func truncate(s string, n int) string {
	r := []rune(s)
	if n <= 1 || len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
