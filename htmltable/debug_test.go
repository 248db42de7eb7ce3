package htmltable_test

import (
	"strings"
	"testing"

	"hdx/htmltable"
)

func TestModelDump(t *testing.T) {
	tbl := parseTable(t, `<table>
		<tr><td rowspan="2">a</td><td>b</td></tr>
		<tr><td>c</td></tr>
	</table>`)
	m := htmltable.Extract(tbl, nil, nil)
	dump := m.Dump()
	for _, want := range []string{"table 2x2", "span 2x1", `text: "a"`, "covered by 0,0"} {
		if !strings.Contains(dump, want) {
			t.Errorf("dump missing %q:\n%s", want, dump)
		}
	}
}
