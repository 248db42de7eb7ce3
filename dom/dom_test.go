package dom_test

import (
	"strings"
	"testing"

	"golang.org/x/net/html"

	"hdx/dom"
)

func parse(t *testing.T, src string) *html.Node {
	t.Helper()
	doc, err := dom.ParseString(src)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return doc
}

func TestAttrAccess(t *testing.T) {
	doc := parse(t, `<div id="a" STYLE="color:red"></div>`)
	divs := dom.Elements(doc, "div")
	if len(divs) != 1 {
		t.Fatalf("expected 1 div, got %d", len(divs))
	}
	n := divs[0]

	if got := dom.Attr(n, "id"); got != "a" {
		t.Errorf("id: got %q", got)
	}
	if got := dom.Attr(n, "style"); got != "color:red" {
		t.Errorf("style (case insensitive): got %q", got)
	}

	dom.SetAttr(n, "style", "color:blue")
	if got := dom.Attr(n, "style"); got != "color:blue" {
		t.Errorf("after SetAttr: got %q", got)
	}

	dom.RemoveAttr(n, "style")
	if got := dom.Attr(n, "style"); got != "" {
		t.Errorf("after RemoveAttr: got %q", got)
	}
}

func TestTextCollapsesWhitespace(t *testing.T) {
	doc := parse(t, "<p>  hello \n\t world  </p>")
	if got := dom.Text(doc, nil); got != "hello world" {
		t.Errorf("got %q", got)
	}
}

func TestTextSkipsExcludedSubtrees(t *testing.T) {
	doc := parse(t, `<td>outer <table><tr><td>inner</td></tr></table> text</td>`)
	got := dom.Text(doc, func(n *html.Node) bool { return dom.IsElement(n, "table") })
	if strings.Contains(got, "inner") {
		t.Errorf("excluded subtree leaked into text: %q", got)
	}
	if got != "outer text" {
		t.Errorf("got %q", got)
	}
}

func TestDetach(t *testing.T) {
	doc := parse(t, `<div><span>x</span></div>`)
	span := dom.Elements(doc, "span")[0]
	dom.Detach(span)
	if len(dom.Elements(doc, "span")) != 0 {
		t.Error("span still present after Detach")
	}
}
