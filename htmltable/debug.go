package htmltable

import (
	debugutil "hdx/utils/debug"
)

// Dump renders the annotated grid as an indented tree for troubleshooting.
func (m *Model) Dump() string {
	tw := debugutil.NewTreeWriter()
	tw.Line(0, "table %dx%d", m.Rows, m.Cols)
	for r := 0; r < m.Rows; r++ {
		tw.Line(1, "row %d", r)
		for c := 0; c < m.Cols; c++ {
			cell := &m.Cells[r][c]
			if !cell.Origin() {
				tw.Line(2, "cell %d,%d -> covered by %d,%d", r, c, cell.OriginRow, cell.OriginCol)
				continue
			}
			tw.Line(2, "cell %d,%d span %dx%d header=%v nested=%d", r, c, cell.RowSpan, cell.ColSpan, cell.Header, len(cell.Nested))
			tw.TextBlock(3, "text", cell.Text)
			if cell.Background != "" {
				tw.TextBlock(3, "background", cell.Background)
			}
			if cell.TextAlign != "" || cell.VerticalAlign != "" {
				tw.Line(3, "align: %s/%s", cell.TextAlign, cell.VerticalAlign)
			}
		}
	}
	return tw.String()
}
