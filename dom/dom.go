// Package dom provides helpers over the x/net/html node tree: parsing with
// charset detection, attribute access and text extraction with subtree
// exclusion. It keeps the rest of the program independent of how the tree
// was produced - a parsed document and a test fixture look the same.
package dom

import (
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"golang.org/x/net/html/charset"
)

// Parse reads and parses an HTML document, decoding legacy encodings based
// on content sniffing and the supplied Content-Type hint (may be empty).
func Parse(r io.Reader, contentType string) (*html.Node, error) {
	cr, err := charset.NewReader(r, contentType)
	if err != nil {
		return nil, err
	}
	return html.Parse(cr)
}

// ParseString parses an HTML fragment or document from a string.
func ParseString(s string) (*html.Node, error) {
	return html.Parse(strings.NewReader(s))
}

// Render serializes the subtree rooted at n back to HTML.
func Render(n *html.Node) (string, error) {
	var sb strings.Builder
	if err := html.Render(&sb, n); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// IsElement reports whether n is an element with the given tag name.
// Name comparison is case insensitive, matching HTML parsing rules.
func IsElement(n *html.Node, name string) bool {
	return n != nil && n.Type == html.ElementNode && strings.EqualFold(n.Data, name)
}

// Attr returns the value of the named attribute, or empty string.
func Attr(n *html.Node, key string) string {
	if n == nil {
		return ""
	}
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, key) {
			return a.Val
		}
	}
	return ""
}

// SetAttr sets the named attribute, replacing an existing value.
func SetAttr(n *html.Node, key, val string) {
	for i := range n.Attr {
		if strings.EqualFold(n.Attr[i].Key, key) {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// RemoveAttr deletes the named attribute if present.
func RemoveAttr(n *html.Node, key string) {
	for i := range n.Attr {
		if strings.EqualFold(n.Attr[i].Key, key) {
			n.Attr = append(n.Attr[:i], n.Attr[i+1:]...)
			return
		}
	}
}

// Detach removes n from its parent, leaving the rest of the tree intact.
func Detach(n *html.Node) {
	if n != nil && n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}

// Walk visits every node in the subtree rooted at n in document order.
// Returning false from fn stops descent into that node's children.
func Walk(n *html.Node, fn func(*html.Node) bool) {
	if n == nil {
		return
	}
	if !fn(n) {
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		Walk(c, fn)
	}
}

// Elements collects all descendant elements with the given tag name,
// including n itself, in document order.
func Elements(n *html.Node, name string) []*html.Node {
	var out []*html.Node
	Walk(n, func(c *html.Node) bool {
		if IsElement(c, name) {
			out = append(out, c)
		}
		return true
	})
	return out
}

// Text returns the concatenated text content of the subtree, skipping any
// descendant subtree for which skip returns true. Whitespace runs are
// collapsed to single spaces and the result is trimmed, which is what the
// table pipeline wants from rendered cell content.
func Text(n *html.Node, skip func(*html.Node) bool) string {
	var sb strings.Builder
	var visit func(*html.Node)
	visit = func(c *html.Node) {
		if skip != nil && c != n && skip(c) {
			return
		}
		if c.Type == html.TextNode {
			sb.WriteString(c.Data)
			return
		}
		// Block-ish separation so "a<br>b" does not merge into "ab".
		if c.Type == html.ElementNode {
			switch c.DataAtom {
			case atom.Br, atom.P, atom.Div, atom.Li, atom.Tr:
				sb.WriteByte(' ')
			}
		}
		for cc := c.FirstChild; cc != nil; cc = cc.NextSibling {
			visit(cc)
		}
	}
	visit(n)
	return strings.Join(strings.Fields(sb.String()), " ")
}
