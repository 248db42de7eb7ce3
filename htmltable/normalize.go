// Package htmltable converts irregular HTML table markup into a dense
// rectangular grid and annotates it with resolved per-cell styling.
//
// Rows and cells may carry arbitrary rowspan/colspan values, including the
// HTML sentinel value 0 ("extend to the end of the row group / table").
// Normalization produces a grid where every (row, column) coordinate holds
// exactly one cell; positions covered by a span all reference the origin of
// the real merged cell.
package htmltable

import (
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"hdx/dom"
)

// Cell is one slot of the normalized grid. Every slot covered by a merged
// region carries the region's origin and span; only the slot at the origin
// represents the rendered cell.
type Cell struct {
	Row, Col             int
	OriginRow, OriginCol int
	RowSpan, ColSpan     int
	Header               bool
	Text                 string
	Nested               []*html.Node // nested <table> subtrees inside this cell
}

// Origin reports whether this slot is the top-left of its merged region.
func (c *Cell) Origin() bool {
	return c.Row == c.OriginRow && c.Col == c.OriginCol
}

// Grid is a dense normalized table: Cells has exactly Rows rows of exactly
// Cols cells. Built once per table and immutable afterwards.
type Grid struct {
	Rows, Cols int
	Cells      [][]Cell

	// element occupying each slot, built by the same placement simulation
	// so it corresponds position for position with Cells; nil for slots
	// synthesized during rectangle padding
	elems [][]*html.Node
}

// rowInfo is a collected table row with the index of the last row in its
// row group, needed to resolve rowspan="0".
type rowInfo struct {
	node     *html.Node
	groupEnd int
}

// Normalize builds the dense grid for a table element. It never fails:
// malformed span attributes degrade to 1, short rows are padded with empty
// cells, nested tables are kept out of the outer grid entirely.
func Normalize(table *html.Node) *Grid {
	rows := collectRows(table)

	g := &Grid{Rows: len(rows)}
	if len(rows) == 0 {
		return g
	}

	// First pass discovers the true column count; colspan="0" cannot be
	// resolved until the width of every row is known.
	g.Cols = simulate(rows, 0, nil, nil)

	g.Cells = make([][]Cell, g.Rows)
	g.elems = make([][]*html.Node, g.Rows)
	for r := range g.Cells {
		g.Cells[r] = make([]Cell, g.Cols)
		g.elems[r] = make([]*html.Node, g.Cols)
	}

	occupied := make([][]bool, g.Rows)
	for r := range occupied {
		occupied[r] = make([]bool, g.Cols)
	}

	// Second pass re-runs the simulation and writes every slot a cell
	// occupies. The tracker releases a column one row before its span
	// actually ends, so placement additionally consults the grid itself;
	// otherwise a cell following an expired tracker entry lands on the
	// merged region's footprint and its content is swallowed.
	taken := func(row, col int) bool {
		return col < g.Cols && occupied[row][col]
	}
	simulate(rows, g.Cols, taken, func(el *html.Node, row, col, rowspan, colspan int, header bool) {
		text := dom.Text(el, isTable)
		nested := nestedTables(el)
		for i := 0; i < rowspan; i++ {
			for j := 0; j < colspan; j++ {
				r, c := row+i, col+j
				if r >= g.Rows || c >= g.Cols || occupied[r][c] {
					continue
				}
				occupied[r][c] = true
				g.Cells[r][c] = Cell{
					Row: r, Col: c,
					OriginRow: row, OriginCol: col,
					RowSpan: rowspan, ColSpan: colspan,
					Header: header,
					Text:   text,
					Nested: nested,
				}
				g.elems[r][c] = el
			}
		}
	})

	// Pad to a perfect rectangle: any slot left unset (short rows) becomes
	// a synthetic empty 1x1 cell owning its own coordinates.
	for r := range occupied {
		for c := range occupied[r] {
			if !occupied[r][c] {
				g.Cells[r][c] = Cell{
					Row: r, Col: c,
					OriginRow: r, OriginCol: c,
					RowSpan: 1, ColSpan: 1,
				}
			}
		}
	}
	return g
}

// simulate runs the column-cursor/span-tracker placement over the rows.
// With cols == 0 it is the measuring pass and returns the discovered column
// count; with cols > 0 spans of 0 resolve against that final width and
// place (if non-nil) is invoked for every source cell with its resolved
// position and spans. taken, when non-nil, marks slots already claimed by
// an earlier cell that the cursor must advance past.
func simulate(rows []rowInfo, cols int, taken func(row, col int) bool, place func(el *html.Node, row, col, rowspan, colspan int, header bool)) int {
	// tracker[c] is the number of additional rows column c stays occupied
	// by a previously placed spanning cell
	var tracker []int
	maxCols := cols

	for r, row := range rows {
		for i := range tracker {
			if tracker[i] > 0 {
				tracker[i]--
			}
		}

		col := 0
		for el := row.node.FirstChild; el != nil; el = el.NextSibling {
			header := dom.IsElement(el, "th")
			if !header && !dom.IsElement(el, "td") {
				continue
			}

			// skip columns still covered by a span from an earlier row
			for (col < len(tracker) && tracker[col] > 0) || (taken != nil && taken(r, col)) {
				col++
			}

			rowspan, zeroRow := parseSpan(dom.Attr(el, "rowspan"))
			if zeroRow {
				rowspan = row.groupEnd - r + 1
			}
			if rowspan > len(rows)-r {
				rowspan = len(rows) - r
			}

			colspan, zeroCol := parseSpan(dom.Attr(el, "colspan"))
			if zeroCol {
				colspan = maxCols - col
				if colspan < 1 {
					colspan = 1
				}
			}

			if col+colspan > maxCols {
				maxCols = col + colspan
			}
			for j := col; j < col+colspan; j++ {
				for j >= len(tracker) {
					tracker = append(tracker, 0)
				}
				if rowspan-1 > tracker[j] {
					tracker[j] = rowspan - 1
				}
			}

			if place != nil {
				place(el, r, col, rowspan, colspan, header)
			}
			col += colspan
		}
	}
	return maxCols
}

// collectRows gathers the rows belonging to this table only, in document
// order, grouped by their immediate parent. Rows of nested tables are never
// reached because traversal stays on direct children.
func collectRows(table *html.Node) []rowInfo {
	var rows []rowInfo
	var parents []*html.Node

	add := func(tr, parent *html.Node) {
		rows = append(rows, rowInfo{node: tr})
		parents = append(parents, parent)
	}

	for c := table.FirstChild; c != nil; c = c.NextSibling {
		switch {
		case dom.IsElement(c, "tr"):
			add(c, table)
		case dom.IsElement(c, "thead"), dom.IsElement(c, "tbody"), dom.IsElement(c, "tfoot"):
			for cc := c.FirstChild; cc != nil; cc = cc.NextSibling {
				if dom.IsElement(cc, "tr") {
					add(cc, c)
				}
			}
		}
	}

	// group end is the last row index sharing the same immediate parent
	last := make(map[*html.Node]int, len(parents))
	for i, p := range parents {
		last[p] = i
	}
	for i, p := range parents {
		rows[i].groupEnd = last[p]
	}
	return rows
}

// parseSpan interprets a rowspan/colspan attribute. 0 is the "extend to
// end" sentinel; anything absent, negative or non-numeric normalizes to 1.
func parseSpan(attr string) (span int, zero bool) {
	attr = strings.TrimSpace(attr)
	if attr == "" {
		return 1, false
	}
	n, err := strconv.Atoi(attr)
	if err != nil || n < 0 {
		return 1, false
	}
	if n == 0 {
		return 1, true
	}
	return n, false
}

func isTable(n *html.Node) bool {
	return dom.IsElement(n, "table")
}

// nestedTables collects table elements inside a cell without descending
// into them, so tables nested within nested tables stay attached to their
// own parent.
func nestedTables(cell *html.Node) []*html.Node {
	var out []*html.Node
	dom.Walk(cell, func(n *html.Node) bool {
		if n != cell && isTable(n) {
			out = append(out, n)
			return false
		}
		return true
	})
	return out
}
