package htmltable

import (
	"strings"

	"go.uber.org/zap"
	"golang.org/x/net/html"
)

// Border is one resolved cell border side.
type Border struct {
	WidthPx float64
	Style   string // CSS border-style keyword, empty when unset
	Color   string // opaque CSS color string, validated only by the builder
}

// Font is the resolved typography of a cell.
type Font struct {
	Family       string
	SizePx       float64
	Weight       string
	Style        string
	Color        string
	LineHeightPx float64
}

// ModelCell is a normalized grid cell annotated with resolved visual style.
type ModelCell struct {
	Cell
	Padding        [4]float64 // pixels
	Border         [4]Border
	Background     string // CSS color string, empty when unset
	TextAlign      string
	VerticalAlign  string
	TextDecoration string
	Font           Font
}

// Model is the style-annotated table: the normalized grid with one
// ModelCell per slot. Built fresh per table per export, read-only after.
type Model struct {
	Rows, Cols int
	Cells      [][]ModelCell
}

// Extract combines the normalized grid with per-element resolved style to
// build the table model. The resolver is injectable; nil means reading
// inline styles (the hand-off contract of the cascade inliner). Slots with
// no source element fall back to the table element's own style.
func Extract(table *html.Node, resolve StyleResolver, log *zap.Logger) *Model {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("table-extract")
	if resolve == nil {
		resolve = InlineStyles
	}

	grid := Normalize(table)
	log.Debug("Normalized table", zap.Int("rows", grid.Rows), zap.Int("cols", grid.Cols))

	m := &Model{Rows: grid.Rows, Cols: grid.Cols}
	m.Cells = make([][]ModelCell, grid.Rows)

	tableStyles := resolve(table)

	// resolved styles per source element; merged regions share one element
	cache := make(map[*html.Node]Styles)
	stylesFor := func(el *html.Node) Styles {
		if el == nil {
			return tableStyles
		}
		if s, ok := cache[el]; ok {
			return s
		}
		s := resolve(el)
		cache[el] = s
		return s
	}

	for r := 0; r < grid.Rows; r++ {
		m.Cells[r] = make([]ModelCell, grid.Cols)
		for c := 0; c < grid.Cols; c++ {
			s := stylesFor(grid.elems[r][c])
			m.Cells[r][c] = materialize(grid.Cells[r][c], s)
		}
	}
	return m
}

// materialize parses a style set into the typed cell model. All lengths
// degrade to 0 and colors pass through as opaque strings; unit conversion
// into document lengths is the builder's job, never done here.
func materialize(cell Cell, s Styles) ModelCell {
	mc := ModelCell{
		Cell:           cell,
		Background:     s.Background,
		TextAlign:      strings.ToLower(strings.TrimSpace(s.TextAlign)),
		VerticalAlign:  strings.ToLower(strings.TrimSpace(s.VerticalAlign)),
		TextDecoration: strings.ToLower(strings.TrimSpace(s.TextDecoration)),
		Font: Font{
			Family:       s.FontFamily,
			SizePx:       ParsePx(s.FontSize),
			Weight:       strings.ToLower(strings.TrimSpace(s.FontWeight)),
			Style:        strings.ToLower(strings.TrimSpace(s.FontStyle)),
			Color:        s.Color,
			LineHeightPx: ParsePx(s.LineHeight),
		},
	}
	for i := range s.Padding {
		mc.Padding[i] = ParsePx(s.Padding[i])
	}
	for i := range s.Border {
		mc.Border[i] = parseBorder(s.Border[i])
	}
	return mc
}

// borderStyles is the set of CSS border-style keywords.
var borderStyles = map[string]bool{
	"none": true, "hidden": true, "dotted": true, "dashed": true,
	"solid": true, "double": true, "groove": true, "ridge": true,
	"inset": true, "outset": true,
}

// parseBorder splits a border shorthand value ("1px solid red") into
// width, style and color. Token order is free in CSS, so classify each
// token instead of relying on position.
func parseBorder(v string) Border {
	var b Border
	v = strings.TrimSpace(v)
	if v == "" {
		return b
	}

	var colorParts []string
	for _, tok := range splitBorderTokens(v) {
		lower := strings.ToLower(tok)
		switch {
		case borderStyles[lower]:
			b.Style = lower
		case lower == "thin":
			b.WidthPx = 1
		case lower == "medium":
			b.WidthPx = 3
		case lower == "thick":
			b.WidthPx = 5
		case looksLikeLength(lower):
			b.WidthPx = ParsePx(lower)
		default:
			colorParts = append(colorParts, tok)
		}
	}
	b.Color = strings.Join(colorParts, " ")
	return b
}

// splitBorderTokens splits on spaces but keeps function notation like
// rgb(1, 2, 3) together.
func splitBorderTokens(v string) []string {
	var out []string
	depth := 0
	start := -1
	for i, r := range v {
		switch {
		case r == '(':
			depth++
		case r == ')':
			if depth > 0 {
				depth--
			}
		case r == ' ' && depth == 0:
			if start >= 0 {
				out = append(out, v[start:i])
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		out = append(out, v[start:])
	}
	return out
}

func looksLikeLength(v string) bool {
	if v == "" {
		return false
	}
	c := v[0]
	return c >= '0' && c <= '9' || c == '.'
}
