package css

import (
	"regexp"
	"sort"
	"strings"

	"github.com/andybalholm/cascadia"
	"go.uber.org/zap"
	"golang.org/x/net/html"

	"hdx/dom"
)

// inlineSpecificity outranks any selector-based specificity, so inline
// declarations win against stylesheet rules of equal importance.
var inlineSpecificity = cascadia.Specificity{1 << 20, 0, 0}

// declState tracks the current winner for one (element, property) pair.
type declState struct {
	decl  Declaration
	spec  cascadia.Specificity
	order int
}

// Inliner resolves the CSS cascade for a parsed document and materializes
// the winning declarations back onto each element's style attribute.
type Inliner struct {
	log    *zap.Logger
	parser *Parser
}

// NewInliner creates a cascade inliner.
func NewInliner(log *zap.Logger) *Inliner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Inliner{log: log.Named("css-inline"), parser: NewParser(log)}
}

// Process resolves all <style> blocks in the document against the element
// tree, rewrites the affected elements' style attributes with the winning
// declarations and removes the <style> elements. It never fails: malformed
// CSS degrades to whatever could be parsed.
//
// Precedence per (element, property): !important beats non-important, then
// inline beats any selector match, then higher specificity, then later
// source order. The source-order counter is global across all rules, one
// increment per declaration encountered.
func (in *Inliner) Process(doc *html.Node) {
	in.ProcessWithStylesheet(doc, nil)
}

// ProcessWithStylesheet works like Process with extra CSS prepended before
// the document's own <style> blocks, so document rules still override it.
func (in *Inliner) ProcessWithStylesheet(doc *html.Node, extra []byte) {
	styleNodes := dom.Elements(doc, "style")

	var sb strings.Builder
	if len(extra) > 0 {
		sb.Write(extra)
		sb.WriteByte('\n')
	}
	for _, n := range styleNodes {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.TextNode {
				sb.WriteString(c.Data)
				sb.WriteByte('\n')
			}
		}
	}

	sheet := in.parser.Parse([]byte(sb.String()), "style blocks")
	for _, w := range sheet.Warnings {
		in.log.Debug("Stylesheet warning", zap.String("warning", w))
	}

	state := make(map[*html.Node]map[string]*declState)
	order := 0

	for _, rule := range sheet.Rules {
		matched := cascadia.QueryAll(doc, rule.Selector)
		if len(matched) == 0 {
			order += len(rule.Declarations)
			continue
		}
		for _, el := range matched {
			props := in.elementState(state, el)
			o := order
			for _, d := range rule.Declarations {
				o++
				if !Tracked(d.Property) {
					continue
				}
				apply(props, d, rule.Specificity, o)
			}
		}
		order += len(rule.Declarations)
	}

	for el, props := range state {
		dom.SetAttr(el, "style", serialize(props))
	}

	for _, n := range styleNodes {
		dom.Detach(n)
	}
}

// elementState returns the per-property state for an element, seeding it
// with the element's pre-existing inline declarations on first touch.
// Inline declarations keep their authored order among themselves and are
// not filtered by the tracked-property set, so unrelated inline styling
// survives the rewrite untouched.
func (in *Inliner) elementState(state map[*html.Node]map[string]*declState, el *html.Node) map[string]*declState {
	if props, ok := state[el]; ok {
		return props
	}
	props := make(map[string]*declState)
	if inline := strings.TrimSpace(dom.Attr(el, "style")); inline != "" {
		for i, d := range in.parser.ParseDeclarations([]byte(inline)) {
			apply(props, d, inlineSpecificity, i)
		}
	}
	state[el] = props
	return props
}

// apply compares a declaration against the recorded winner and keeps the
// one with higher precedence.
func apply(props map[string]*declState, d Declaration, spec cascadia.Specificity, order int) {
	entry := &declState{decl: d, spec: spec, order: order}
	prev, ok := props[d.Property]
	if !ok {
		props[d.Property] = entry
		return
	}
	if prev.decl.Important != d.Important {
		if d.Important {
			props[d.Property] = entry
		}
		return
	}
	if prev.spec.Less(spec) {
		props[d.Property] = entry
		return
	}
	if spec.Less(prev.spec) {
		return
	}
	if order >= prev.order {
		props[d.Property] = entry
	}
}

// serialize renders the winning declarations as a style attribute value,
// properties sorted alphabetically for determinism.
func serialize(props map[string]*declState) string {
	names := make([]string, 0, len(props))
	for name := range props {
		names = append(names, name)
	}
	sort.Strings(names)

	var sb strings.Builder
	for i, name := range names {
		if i > 0 {
			sb.WriteString("; ")
		}
		st := props[name]
		sb.WriteString(name)
		sb.WriteString(": ")
		sb.WriteString(st.decl.Value)
		if st.decl.Important {
			sb.WriteString(" !important")
		}
	}
	return sb.String()
}

// styleTagPattern matches whole <style> elements including content.
var styleTagPattern = regexp.MustCompile(`(?is)<style\b[^>]*>.*?</style>`)

// StripStyleTags removes <style> blocks from raw HTML text. This is the
// degraded fallback for environments where no document tree is available:
// raw CSS must never leak into rendered output as plain text.
func StripStyleTags(s string) string {
	return styleTagPattern.ReplaceAllString(s, "")
}
