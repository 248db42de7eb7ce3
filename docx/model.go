package docx

import (
	"fmt"

	"github.com/beevik/etree"
)

// Border side order matches htmltable.Side.
const (
	SideTop = iota
	SideRight
	SideBottom
	SideLeft
)

var sideNames = [4]string{"top", "right", "bottom", "left"}

// Border describes one edge of a table cell.
type Border struct {
	Size  int    // eighths of a point
	Style string // single, dashed, dotted, double, none
	Color string // 6-hex without '#', or "auto"
}

// Run is a contiguous span of text with uniform formatting.
type Run struct {
	Text      string
	Bold      bool
	Italic    bool
	Strike    bool
	Underline bool
	Font      string
	Size      int    // half-points, 0 = inherit
	Color     string // 6-hex, "" = inherit
}

// Paragraph holds runs plus paragraph-level properties.
type Paragraph struct {
	Align  string // left, center, right, both; "" = inherit
	Line   int    // twentieths of a point, 0 = default spacing
	Bullet bool
	Runs   []Run
}

// Cell is a table cell at its grid origin. Covered positions of merged
// regions are not stored; vertical continuations are synthesized when the
// table is rendered to XML.
type Cell struct {
	RowSpan    int // emitted only when > 1
	ColSpan    int // emitted only when > 1
	Borders    [4]*Border
	Shading    string // 6-hex fill, "" = no shading
	VAlign     string // top, center, bottom
	Margins    *[4]int // twentieths of a point, nil = inherit
	Paragraphs []*Paragraph
	Tables     []*Table // nested tables, rendered after paragraphs
}

// Row is one table row.
type Row struct {
	Header bool
	Cells  []*Cell
}

// Table is a word-processor table ready for XML emission.
type Table struct {
	Rows []*Row
}

func (c *Cell) span() int {
	if c.ColSpan > 1 {
		return c.ColSpan
	}
	return 1
}

// Element renders the table as a w:tbl element.
func (t *Table) Element() *etree.Element {
	tbl := etree.NewElement("w:tbl")
	pr := tbl.CreateElement("w:tblPr")
	layout := pr.CreateElement("w:tblLayout")
	layout.CreateAttr("w:type", "autofit")

	type pendingMerge struct {
		cell      *Cell
		remaining int
	}
	pending := map[int]*pendingMerge{}

	for _, row := range t.Rows {
		tr := tbl.CreateElement("w:tr")
		if row.Header {
			trPr := tr.CreateElement("w:trPr")
			trPr.CreateElement("w:tblHeader")
		}
		col := 0
		idx := 0
		for {
			if pm, ok := pending[col]; ok {
				tr.AddChild(continuationElement(pm.cell))
				pm.remaining--
				if pm.remaining == 0 {
					delete(pending, col)
				}
				col += pm.cell.span()
				continue
			}
			if idx >= len(row.Cells) {
				break
			}
			cell := row.Cells[idx]
			idx++
			tr.AddChild(cell.element())
			if cell.RowSpan > 1 {
				pending[col] = &pendingMerge{cell: cell, remaining: cell.RowSpan - 1}
			}
			col += cell.span()
		}
	}
	return tbl
}

func (c *Cell) element() *etree.Element {
	tc := etree.NewElement("w:tc")
	pr := tc.CreateElement("w:tcPr")
	if c.ColSpan > 1 {
		span := pr.CreateElement("w:gridSpan")
		span.CreateAttr("w:val", fmt.Sprintf("%d", c.ColSpan))
	}
	if c.RowSpan > 1 {
		merge := pr.CreateElement("w:vMerge")
		merge.CreateAttr("w:val", "restart")
	}
	c.propsInto(pr)
	if len(c.Paragraphs) == 0 && len(c.Tables) == 0 {
		tc.AddChild((&Paragraph{}).element())
		return tc
	}
	for _, p := range c.Paragraphs {
		tc.AddChild(p.element())
	}
	for _, nested := range c.Tables {
		tc.AddChild(nested.Element())
		// a table may not be the last block inside a cell
		tc.AddChild((&Paragraph{}).element())
	}
	return tc
}

// propsInto writes the shared cell properties (borders, shading, margins,
// vertical alignment) used by both origin and continuation cells.
func (c *Cell) propsInto(pr *etree.Element) {
	if c.Borders[0] != nil || c.Borders[1] != nil || c.Borders[2] != nil || c.Borders[3] != nil {
		borders := pr.CreateElement("w:tcBorders")
		for side, b := range c.Borders {
			if b == nil {
				continue
			}
			e := borders.CreateElement("w:" + sideNames[side])
			e.CreateAttr("w:val", b.Style)
			e.CreateAttr("w:sz", fmt.Sprintf("%d", b.Size))
			color := b.Color
			if color == "" {
				color = "auto"
			}
			e.CreateAttr("w:color", color)
		}
	}
	if c.Shading != "" {
		shd := pr.CreateElement("w:shd")
		shd.CreateAttr("w:val", "clear")
		shd.CreateAttr("w:color", "auto")
		shd.CreateAttr("w:fill", c.Shading)
	}
	if c.Margins != nil {
		mar := pr.CreateElement("w:tcMar")
		for side, name := range sideNames {
			e := mar.CreateElement("w:" + name)
			e.CreateAttr("w:w", fmt.Sprintf("%d", c.Margins[side]))
			e.CreateAttr("w:type", "dxa")
		}
	}
	if c.VAlign != "" {
		va := pr.CreateElement("w:vAlign")
		va.CreateAttr("w:val", c.VAlign)
	}
}

func continuationElement(origin *Cell) *etree.Element {
	tc := etree.NewElement("w:tc")
	pr := tc.CreateElement("w:tcPr")
	if origin.ColSpan > 1 {
		span := pr.CreateElement("w:gridSpan")
		span.CreateAttr("w:val", fmt.Sprintf("%d", origin.ColSpan))
	}
	pr.CreateElement("w:vMerge")
	origin.propsInto(pr)
	tc.AddChild((&Paragraph{}).element())
	return tc
}

func (p *Paragraph) element() *etree.Element {
	par := etree.NewElement("w:p")
	if p.Align != "" || p.Line > 0 {
		pr := par.CreateElement("w:pPr")
		if p.Line > 0 {
			spacing := pr.CreateElement("w:spacing")
			spacing.CreateAttr("w:line", fmt.Sprintf("%d", p.Line))
			spacing.CreateAttr("w:lineRule", "atLeast")
		}
		if p.Align != "" {
			jc := pr.CreateElement("w:jc")
			jc.CreateAttr("w:val", p.Align)
		}
	}
	for i, r := range p.Runs {
		par.AddChild(r.element(p.Bullet && i == 0))
	}
	return par
}

func (r Run) element(bullet bool) *etree.Element {
	run := etree.NewElement("w:r")
	if r.Bold || r.Italic || r.Strike || r.Underline || r.Font != "" || r.Size > 0 || r.Color != "" {
		pr := run.CreateElement("w:rPr")
		if r.Font != "" {
			fonts := pr.CreateElement("w:rFonts")
			fonts.CreateAttr("w:ascii", r.Font)
			fonts.CreateAttr("w:hAnsi", r.Font)
		}
		if r.Bold {
			pr.CreateElement("w:b")
		}
		if r.Italic {
			pr.CreateElement("w:i")
		}
		if r.Strike {
			pr.CreateElement("w:strike")
		}
		if r.Underline {
			u := pr.CreateElement("w:u")
			u.CreateAttr("w:val", "single")
		}
		if r.Color != "" {
			color := pr.CreateElement("w:color")
			color.CreateAttr("w:val", r.Color)
		}
		if r.Size > 0 {
			sz := pr.CreateElement("w:sz")
			sz.CreateAttr("w:val", fmt.Sprintf("%d", r.Size))
		}
	}
	text := r.Text
	if bullet {
		text = "• " + text
	}
	t := run.CreateElement("w:t")
	t.CreateAttr("xml:space", "preserve")
	t.SetText(text)
	return run
}
