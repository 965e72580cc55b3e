// Package markup reads the small dialect used in case text: **bold**,
// *term*, bullet lines starting with • or -, and hint lines starting with →.
// Text is rewritten as CommonMark and parsed with goldmark.
package markup

import (
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// BlockKind classifies one line of text.
type BlockKind int

const (
	Paragraph BlockKind = iota
	Bullet
	Hint
	Blank
)

func (k BlockKind) String() string {
	switch k {
	case Bullet:
		return "bullet"
	case Hint:
		return "hint"
	case Blank:
		return "blank"
	default:
		return "paragraph"
	}
}

// SpanKind classifies a run of inline text.
type SpanKind int

const (
	Plain SpanKind = iota
	Bold
	Term
)

// Span is a run of text with a single emphasis.
type Span struct {
	Kind SpanKind
	Text string
}

// Block is one parsed line.
type Block struct {
	Kind  BlockKind
	Spans []Span
}

// Text returns the block's text without markup.
func (b Block) Text() string {
	var sb strings.Builder
	for _, s := range b.Spans {
		sb.WriteString(s.Text)
	}
	return sb.String()
}

var md = goldmark.New()

// A star right after a digit is a sequence name (T2*), not emphasis.
var literalStar = regexp.MustCompile(`(\d)\*([^*]|$)`)

// Markdown rewrites case text as CommonMark: • lines become list items and
// → lines become block quotes.
func Markdown(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	lines := strings.Split(s, "\n")
	for i, raw := range lines {
		line := strings.TrimSpace(raw)
		switch {
		case strings.HasPrefix(line, "•"):
			line = "- " + strings.TrimSpace(strings.TrimPrefix(line, "•"))
		case strings.HasPrefix(line, "→"):
			line = "> " + strings.TrimSpace(strings.TrimPrefix(line, "→"))
		}
		lines[i] = literalStar.ReplaceAllString(line, `$1\*$2`)
	}
	return strings.Join(lines, "\n")
}

// Parse splits text into line blocks. Runs of blank lines collapse into one
// Blank block; leading and trailing blank lines are dropped.
func Parse(s string) []Block {
	src := []byte(Markdown(s))
	doc := md.Parser().Parse(text.NewReader(src))

	var blocks []Block
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		if n.HasBlankPreviousLines() && len(blocks) > 0 {
			blocks = append(blocks, Block{Kind: Blank})
		}
		blocks = appendBlocks(blocks, n, Paragraph, src)
	}
	return blocks
}

func appendBlocks(blocks []Block, n ast.Node, kind BlockKind, src []byte) []Block {
	switch n := n.(type) {
	case *ast.List:
		for item := n.FirstChild(); item != nil; item = item.NextSibling() {
			if item != n.FirstChild() && item.HasBlankPreviousLines() {
				blocks = append(blocks, Block{Kind: Blank})
			}
			blocks = appendBlocks(blocks, item, Bullet, src)
		}
	case *ast.Blockquote:
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			blocks = appendBlocks(blocks, c, Hint, src)
		}
	case *ast.ListItem:
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			blocks = appendBlocks(blocks, c, kind, src)
		}
	case *ast.Paragraph, *ast.TextBlock, *ast.Heading:
		blocks = append(blocks, inlineBlocks(n, kind, src)...)
	case *ast.ThematicBreak:
	default:
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			if line := strings.TrimSpace(string(seg.Value(src))); line != "" {
				blocks = append(blocks, Block{Kind: kind, Spans: []Span{{Plain, line}}})
			}
		}
	}
	return blocks
}

// inlineBlocks emits one block per source line of a paragraph.
func inlineBlocks(n ast.Node, kind BlockKind, src []byte) []Block {
	var out []Block
	var cur []Span
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		cur = appendSpans(cur, c, Plain, src)
		if t, ok := c.(*ast.Text); ok && (t.SoftLineBreak() || t.HardLineBreak()) {
			out = append(out, Block{Kind: kind, Spans: finish(cur)})
			cur = nil
		}
	}
	if len(cur) > 0 {
		out = append(out, Block{Kind: kind, Spans: finish(cur)})
	}
	return out
}

// appendSpans flattens nested emphasis into the outermost kind.
func appendSpans(spans []Span, n ast.Node, kind SpanKind, src []byte) []Span {
	switch n := n.(type) {
	case *ast.Text:
		return addSpan(spans, kind, string(n.Segment.Value(src)))
	case *ast.String:
		return addSpan(spans, kind, string(n.Value))
	case *ast.AutoLink:
		return addSpan(spans, kind, string(n.URL(src)))
	case *ast.RawHTML:
		for i := 0; i < n.Segments.Len(); i++ {
			seg := n.Segments.At(i)
			spans = addSpan(spans, kind, string(seg.Value(src)))
		}
		return spans
	case *ast.Emphasis:
		if kind == Plain {
			kind = Term
			if n.Level >= 2 {
				kind = Bold
			}
		}
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		spans = appendSpans(spans, c, kind, src)
	}
	return spans
}

func addSpan(spans []Span, kind SpanKind, s string) []Span {
	if s == "" {
		return spans
	}
	if last := len(spans) - 1; last >= 0 && spans[last].Kind == kind {
		spans[last].Text += s
		return spans
	}
	return append(spans, Span{Kind: kind, Text: s})
}

// finish resolves backslash escapes and trims the line ends.
func finish(spans []Span) []Span {
	out := spans[:0]
	for i, s := range spans {
		s.Text = string(util.UnescapePunctuations([]byte(s.Text)))
		if i == 0 {
			s.Text = strings.TrimLeft(s.Text, " \t")
		}
		if i == len(spans)-1 {
			s.Text = strings.TrimRight(s.Text, " \t")
		}
		if s.Text != "" {
			out = append(out, s)
		}
	}
	return out
}

// ParseSpans splits one line into plain, bold and term runs. Unbalanced
// asterisks are kept as plain text.
func ParseSpans(line string) []Span {
	blocks := Parse(line)
	if len(blocks) == 0 {
		return nil
	}
	return blocks[0].Spans
}

// PlainText renders blocks without markup. Bullets become "- " lines and
// hints "-> " lines.
func PlainText(blocks []Block) string {
	var sb strings.Builder
	for i, b := range blocks {
		if i > 0 {
			sb.WriteByte('\n')
		}
		switch b.Kind {
		case Bullet:
			sb.WriteString("- ")
		case Hint:
			sb.WriteString("-> ")
		}
		sb.WriteString(b.Text())
	}
	return sb.String()
}

// Strip is PlainText(Parse(s)).
func Strip(s string) string {
	return PlainText(Parse(s))
}
