package css

import (
	"github.com/andybalholm/cascadia"
)

// Declaration is a single property declaration as authored, with the
// !important flag already stripped from the value.
type Declaration struct {
	Property  string // lowercased property name
	Value     string // value text with collapsed whitespace
	Important bool
}

// Rule is one selector of a ruleset paired with the ruleset's declarations.
// Grouped selectors (a, b { ... }) produce one Rule per selector so each
// carries its own specificity.
type Rule struct {
	Raw          string // original selector text
	Selector     cascadia.Sel
	Specificity  cascadia.Specificity
	Declarations []Declaration // in source order
}

// Stylesheet is the parse result for one or more <style> blocks.
// Parsing is lenient: anything unsupported lands in Warnings and is
// otherwise skipped, it never fails the whole sheet.
type Stylesheet struct {
	Rules    []Rule
	Warnings []string
}

// tracked is the fixed set of properties the cascade resolver cares about.
// Stylesheet declarations outside this set are ignored entirely; inline
// declarations outside it are preserved verbatim but never contested.
var tracked = map[string]bool{
	"color":            true,
	"background":       true,
	"background-color": true,
	"font-family":      true,
	"font-size":        true,
	"font-weight":      true,
	"font-style":       true,
	"text-decoration":  true,
	"text-align":       true,
	"vertical-align":   true,
	"border":           true,
	"border-top":       true,
	"border-right":     true,
	"border-bottom":    true,
	"border-left":      true,
	"padding":          true,
	"padding-top":      true,
	"padding-right":    true,
	"padding-bottom":   true,
	"padding-left":     true,
	"line-height":      true,
}

// Tracked reports whether the cascade resolver tracks the given property.
func Tracked(property string) bool {
	return tracked[property]
}
