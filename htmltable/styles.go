package htmltable

import (
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/net/html"

	"hdx/css"
	"hdx/dom"
)

// Side indexes the four box sides in Styles and model cells.
type Side int

const (
	Top Side = iota
	Right
	Bottom
	Left
)

// Styles is the resolved style set for one element. It is a closed
// structure over the properties the pipeline understands; anything else an
// element carries is simply not representable here and cannot leak through.
type Styles struct {
	Color          string
	Background     string
	FontFamily     string
	FontSize       string
	FontWeight     string
	FontStyle      string
	TextDecoration string
	TextAlign      string
	VerticalAlign  string
	LineHeight     string
	Border         [4]string // per side, shorthand already distributed
	Padding        [4]string
}

// StyleResolver supplies resolved style for an element. The production
// resolver reads the inline style attribute the cascade inliner produced;
// tests substitute deterministic stubs.
type StyleResolver func(*html.Node) Styles

// InlineStyles is the default StyleResolver: it interprets the element's
// inline style attribute, distributing padding/border shorthands to sides.
func InlineStyles(n *html.Node) Styles {
	var s Styles
	inline := strings.TrimSpace(dom.Attr(n, "style"))
	if inline == "" {
		return s
	}
	p := css.NewParser(zap.NewNop())
	for _, d := range p.ParseDeclarations([]byte(inline)) {
		s.apply(d.Property, d.Value)
	}
	return s
}

// apply sets one declaration on the style set, expanding shorthands.
// Unknown properties are ignored.
func (s *Styles) apply(property, value string) {
	switch property {
	case "color":
		s.Color = value
	case "background", "background-color":
		s.Background = value
	case "font-family":
		s.FontFamily = value
	case "font-size":
		s.FontSize = value
	case "font-weight":
		s.FontWeight = value
	case "font-style":
		s.FontStyle = value
	case "text-decoration":
		s.TextDecoration = value
	case "text-align":
		s.TextAlign = value
	case "vertical-align":
		s.VerticalAlign = value
	case "line-height":
		s.LineHeight = value
	case "border":
		for i := range s.Border {
			s.Border[i] = value
		}
	case "border-top":
		s.Border[Top] = value
	case "border-right":
		s.Border[Right] = value
	case "border-bottom":
		s.Border[Bottom] = value
	case "border-left":
		s.Border[Left] = value
	case "padding":
		expandBox(value, &s.Padding)
	case "padding-top":
		s.Padding[Top] = value
	case "padding-right":
		s.Padding[Right] = value
	case "padding-bottom":
		s.Padding[Bottom] = value
	case "padding-left":
		s.Padding[Left] = value
	}
}

// expandBox distributes a 1-4 value box shorthand to the four sides using
// the standard CSS top/right/bottom/left expansion.
func expandBox(value string, box *[4]string) {
	parts := strings.Fields(value)
	switch len(parts) {
	case 1:
		box[Top], box[Right], box[Bottom], box[Left] = parts[0], parts[0], parts[0], parts[0]
	case 2:
		box[Top], box[Bottom] = parts[0], parts[0]
		box[Right], box[Left] = parts[1], parts[1]
	case 3:
		box[Top] = parts[0]
		box[Right], box[Left] = parts[1], parts[1]
		box[Bottom] = parts[2]
	case 4:
		box[Top], box[Right], box[Bottom], box[Left] = parts[0], parts[1], parts[2], parts[3]
	}
}

// ParsePx converts a CSS length to pixels. Missing, non-numeric or
// unsupported values resolve to 0 - source HTML is untrusted and length
// parsing must never fail.
func ParsePx(v string) float64 {
	v = strings.ToLower(strings.TrimSpace(v))
	if v == "" {
		return 0
	}

	unit := ""
	for _, u := range []string{"px", "pt", "rem", "em"} {
		if strings.HasSuffix(v, u) {
			unit = u
			v = strings.TrimSpace(strings.TrimSuffix(v, u))
			break
		}
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f < 0 {
		return 0
	}
	switch unit {
	case "pt":
		return f * 96 / 72
	case "em", "rem":
		return f * 16
	default:
		return f
	}
}
