package docx

import (
	"strings"

	"go.uber.org/zap"
	"golang.org/x/net/html"

	"hdx/htmltable"
)

var borderStyleMap = map[string]string{
	"dashed": "dashed",
	"dotted": "dotted",
	"double": "double",
	"none":   "none",
}

// BuildTable maps an annotated table model to a word-processor table.
// Only origin cells are emitted; merged continuations are synthesized
// during XML rendering. Nested tables inside cells are not handled here,
// see Builder.FromHTML.
func BuildTable(m *htmltable.Model) *Table {
	t := &Table{}
	for r := 0; r < m.Rows; r++ {
		row := &Row{}
		for c := 0; c < m.Cols; c++ {
			mc := &m.Cells[r][c]
			if !mc.Origin() {
				continue
			}
			cell := buildCell(mc)
			if mc.Header {
				row.Header = true
			}
			row.Cells = append(row.Cells, cell)
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

func buildCell(mc *htmltable.ModelCell) *Cell {
	cell := &Cell{}
	if mc.RowSpan > 1 {
		cell.RowSpan = mc.RowSpan
	}
	if mc.ColSpan > 1 {
		cell.ColSpan = mc.ColSpan
	}
	var margins [4]int
	for side := range mc.Padding {
		margins[side] = PxToTwips(mc.Padding[side])
	}
	cell.Margins = &margins
	for side := range mc.Border {
		cell.Borders[side] = buildBorder(mc.Border[side])
	}
	if hex, ok := NormalizeColor(mc.Background); ok {
		cell.Shading = hex
	}
	switch mc.VerticalAlign {
	case "top":
		cell.VAlign = "top"
	case "bottom":
		cell.VAlign = "bottom"
	default:
		cell.VAlign = "center"
	}
	if mc.Text != "" {
		cell.Paragraphs = append(cell.Paragraphs, buildParagraph(mc))
	}
	return cell
}

func buildBorder(b htmltable.Border) *Border {
	if b.Style == "" && b.WidthPx <= 0 {
		return nil
	}
	style, ok := borderStyleMap[strings.ToLower(b.Style)]
	if !ok {
		style = "single"
	}
	out := &Border{Size: PxToEighths(b.WidthPx), Style: style}
	if hex, ok := NormalizeColor(b.Color); ok {
		out.Color = hex
	}
	return out
}

func buildParagraph(mc *htmltable.ModelCell) *Paragraph {
	p := &Paragraph{}
	switch mc.TextAlign {
	case "center":
		p.Align = "center"
	case "right":
		p.Align = "right"
	case "justify":
		p.Align = "both"
	default:
		p.Align = "left"
	}
	if mc.Font.LineHeightPx > 0 {
		p.Line = PxToTwips(mc.Font.LineHeightPx)
	}
	run := Run{Text: mc.Text}
	run.Bold = mc.Header || isBoldWeight(mc.Font.Weight)
	run.Italic = strings.EqualFold(mc.Font.Style, "italic") || strings.EqualFold(mc.Font.Style, "oblique")
	deco := strings.ToLower(mc.TextDecoration)
	run.Underline = strings.Contains(deco, "underline")
	run.Strike = strings.Contains(deco, "line-through")
	if mc.Font.Family != "" {
		run.Font = firstFontFamily(mc.Font.Family)
	}
	if mc.Font.SizePx > 0 {
		run.Size = PxToHalfPoints(mc.Font.SizePx)
	}
	if hex, ok := NormalizeColor(mc.Font.Color); ok {
		run.Color = hex
	}
	p.Runs = append(p.Runs, run)
	return p
}

func isBoldWeight(w string) bool {
	switch strings.ToLower(w) {
	case "bold", "bolder", "600", "700", "800", "900":
		return true
	}
	return false
}

// firstFontFamily picks the first entry of a CSS font stack and strips quotes.
func firstFontFamily(stack string) string {
	name := stack
	if i := strings.IndexByte(stack, ','); i >= 0 {
		name = stack[:i]
	}
	return strings.Trim(strings.TrimSpace(name), `"'`)
}

// Builder converts whole <table> elements, recursing into nested tables.
type Builder struct {
	// SkipNested drops tables found inside cells instead of converting them.
	SkipNested bool

	log     *zap.Logger
	resolve htmltable.StyleResolver
}

// NewBuilder creates a table builder with the given style resolver. A nil
// resolver falls back to inline style attributes only.
func NewBuilder(resolve htmltable.StyleResolver, log *zap.Logger) *Builder {
	if log == nil {
		log = zap.NewNop()
	}
	return &Builder{log: log.Named("docx-builder"), resolve: resolve}
}

// FromHTML extracts the table model for a <table> element and builds the
// corresponding word-processor table, attaching nested tables recursively.
func (b *Builder) FromHTML(table *html.Node) *Table {
	m := htmltable.Extract(table, b.resolve, b.log)
	if b.log.Core().Enabled(zap.DebugLevel) {
		b.log.Debug("Table model", zap.String("grid", m.Dump()))
	}
	t := BuildTable(m)
	for r := 0; r < m.Rows; r++ {
		rowIdx := 0
		for c := 0; c < m.Cols; c++ {
			mc := &m.Cells[r][c]
			if !mc.Origin() {
				continue
			}
			cell := t.Rows[r].Cells[rowIdx]
			rowIdx++
			if b.SkipNested {
				continue
			}
			for _, nested := range mc.Nested {
				cell.Tables = append(cell.Tables, b.FromHTML(nested))
			}
		}
	}
	return t
}
