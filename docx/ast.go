package docx

import "hdx/htmltable"

// The authored-content path. Editors produce already-structured tables with
// per-cell resolved styles and block children; no HTML parsing or cascade
// resolution is involved.

// Block is a unit of cell content: *TextBlock, *ListBlock or *TableBlock.
type Block interface {
	blocks() []*Paragraph
}

// TextBlock is a single paragraph of text.
type TextBlock struct {
	Text  string
	Align string // left, center, right, justify; "" = inherit cell alignment
	Bold  bool
	Font  string
}

func (b *TextBlock) blocks() []*Paragraph {
	return []*Paragraph{{
		Align: mapAlign(b.Align, ""),
		Runs:  []Run{{Text: b.Text, Bold: b.Bold, Font: b.Font}},
	}}
}

// ListBlock is a flat list rendered as one paragraph per item.
type ListBlock struct {
	Items []string
}

func (b *ListBlock) blocks() []*Paragraph {
	out := make([]*Paragraph, 0, len(b.Items))
	for _, item := range b.Items {
		out = append(out, &Paragraph{Bullet: true, Runs: []Run{{Text: item}}})
	}
	return out
}

// TableBlock nests another authored table inside a cell.
type TableBlock struct {
	Table *ASTTable
}

func (b *TableBlock) blocks() []*Paragraph { return nil }

// ASTCellStyle carries the already-resolved presentation of an authored cell.
type ASTCellStyle struct {
	TextAlign     string
	VerticalAlign string
	Background    string // CSS color, normalized during build
	Border        [4]htmltable.Border
	PaddingPx     [4]float64
}

// ASTCell is one authored cell. ColumnIndex is the cell's grid column;
// gaps before it are filled with empty cells.
type ASTCell struct {
	ColumnIndex int
	RowSpan     int
	ColSpan     int
	Header      bool
	Style       ASTCellStyle
	Children    []Block
}

// ASTRow is one authored row.
type ASTRow struct {
	Header bool
	Cells  []*ASTCell
}

// ASTTable is an authored table with explicit header rows.
type ASTTable struct {
	HeaderRowCount int
	Rows           []ASTRow
}

// BuildASTTable maps an authored table to a word-processor table using the
// same unit and color conversions as the HTML path.
func BuildASTTable(src *ASTTable) *Table {
	t := &Table{}
	for i, row := range src.Rows {
		header := row.Header || i < src.HeaderRowCount
		out := &Row{Header: header}
		col := 0
		for _, c := range row.Cells {
			for col < c.ColumnIndex {
				out.Cells = append(out.Cells, &Cell{VAlign: "center"})
				col++
			}
			cell := buildASTCell(c, header)
			out.Cells = append(out.Cells, cell)
			col += max(1, c.ColSpan)
		}
		t.Rows = append(t.Rows, out)
	}
	return t
}

func buildASTCell(c *ASTCell, headerRow bool) *Cell {
	cell := &Cell{}
	if c.RowSpan > 1 {
		cell.RowSpan = c.RowSpan
	}
	if c.ColSpan > 1 {
		cell.ColSpan = c.ColSpan
	}
	var margins [4]int
	for side := range c.Style.PaddingPx {
		margins[side] = PxToTwips(c.Style.PaddingPx[side])
	}
	cell.Margins = &margins
	for side := range c.Style.Border {
		cell.Borders[side] = buildBorder(c.Style.Border[side])
	}
	if hex, ok := NormalizeColor(c.Style.Background); ok {
		cell.Shading = hex
	}
	switch c.Style.VerticalAlign {
	case "top":
		cell.VAlign = "top"
	case "bottom":
		cell.VAlign = "bottom"
	default:
		cell.VAlign = "center"
	}
	align := mapAlign(c.Style.TextAlign, "left")
	bold := c.Header || headerRow
	for _, block := range c.Children {
		if tb, ok := block.(*TableBlock); ok {
			cell.Tables = append(cell.Tables, BuildASTTable(tb.Table))
			continue
		}
		for _, p := range block.blocks() {
			if p.Align == "" {
				p.Align = align
			}
			if bold {
				for i := range p.Runs {
					p.Runs[i].Bold = true
				}
			}
			cell.Paragraphs = append(cell.Paragraphs, p)
		}
	}
	return cell
}

func mapAlign(v, def string) string {
	switch v {
	case "center":
		return "center"
	case "right":
		return "right"
	case "justify":
		return "both"
	case "left":
		return "left"
	}
	return def
}
