package css

import (
	"bytes"
	"strings"

	"github.com/andybalholm/cascadia"
	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"
)

// Parser parses CSS stylesheet text into structured rules.
type Parser struct {
	log *zap.Logger
}

// NewParser creates a new CSS parser.
func NewParser(log *zap.Logger) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{log: log.Named("css-parser")}
}

// Parse parses CSS text into a Stylesheet.
// The optional source parameter identifies what's being parsed (for debug logging).
//
// At-rules are skipped wholesale, blocks included: rules nested inside
// @media or @supports never participate in the cascade. Selectors that fail
// to parse are recorded as warnings and dropped, never aborting the sheet.
func (p *Parser) Parse(data []byte, source ...string) *Stylesheet {
	sheet := &Stylesheet{}

	if len(source) > 0 && source[0] != "" {
		p.log.Debug("Parsing CSS", zap.String("source", source[0]), zap.Int("bytes", len(data)))
	}

	input := parse.NewInput(bytes.NewReader(data))
	parser := css.NewParser(input, false)

	// Earlier members of a grouped selector arrive as separate qualified
	// rules before the ruleset itself opens.
	var pending []string

	for {
		gt, _, data := parser.Next()

		switch gt {
		case css.ErrorGrammar:
			// End of input or error
			if parser.Err() != nil && parser.Err().Error() != "EOF" {
				p.log.Debug("CSS parse error", zap.Error(parser.Err()))
			}
			return sheet

		case css.BeginAtRuleGrammar:
			// Conditional and other block at-rules are not supported,
			// skip the whole block.
			atRule := string(data)
			p.skipAtRuleBlock(parser)
			sheet.Warnings = append(sheet.Warnings, "skipped at-rule block: "+atRule)
			p.log.Debug("Skipping @-rule block", zap.String("rule", atRule))

		case css.AtRuleGrammar:
			// Simple @-rule without block (e.g., @import, @charset)
			atRule := string(data)
			sheet.Warnings = append(sheet.Warnings, "skipped at-rule: "+atRule)
			p.log.Debug("Skipping @-rule", zap.String("rule", atRule))

		case css.QualifiedRuleGrammar:
			pending = append(pending, p.selectorText(data, parser.Values())...)

		case css.BeginRulesetGrammar:
			selectors := append(pending, p.selectorText(data, parser.Values())...)
			pending = nil
			decls := p.parseDeclarations(parser)
			if len(decls) == 0 {
				continue
			}
			for _, selStr := range selectors {
				sel, err := parseSelector(selStr)
				if err != nil {
					sheet.Warnings = append(sheet.Warnings, "unsupported selector: "+selStr)
					p.log.Debug("Skipping selector", zap.String("selector", selStr), zap.Error(err))
					continue
				}
				if sel.PseudoElement() != "" {
					// Pseudo-element content cannot be expressed as an inline
					// style on the element itself.
					sheet.Warnings = append(sheet.Warnings, "skipped pseudo-element selector: "+selStr)
					continue
				}
				sheet.Rules = append(sheet.Rules, Rule{
					Raw:          selStr,
					Selector:     sel,
					Specificity:  sel.Specificity(),
					Declarations: decls,
				})
			}
		}
	}
}

// ParseDeclarations parses a bare declaration list, the syntax of an inline
// style attribute.
func (p *Parser) ParseDeclarations(data []byte) []Declaration {
	input := parse.NewInput(bytes.NewReader(data))
	parser := css.NewParser(input, true)
	return p.parseDeclarations(parser)
}

// parseSelector parses a single selector string. Pseudo-elements are
// accepted at parse time so they can be reported distinctly from syntax
// errors by the caller.
func parseSelector(selStr string) (cascadia.Sel, error) {
	return cascadia.ParseWithPseudoElement(selStr)
}

// selectorText rebuilds the selector text for a ruleset and splits grouped
// selectors on commas.
func (p *Parser) selectorText(data []byte, values []css.Token) []string {
	var sb strings.Builder
	sb.Write(data)
	for _, v := range values {
		sb.Write(v.Data)
	}

	var selectors []string
	for s := range strings.SplitSeq(sb.String(), ",") {
		s = strings.TrimSpace(s)
		if s != "" {
			selectors = append(selectors, s)
		}
	}
	return selectors
}

// parseDeclarations consumes property declarations until the end of the
// current ruleset (or input, for inline declaration lists).
func (p *Parser) parseDeclarations(parser *css.Parser) []Declaration {
	var decls []Declaration

	for {
		gt, _, data := parser.Next()

		switch gt {
		case css.ErrorGrammar, css.EndRulesetGrammar:
			return decls

		case css.DeclarationGrammar:
			prop := strings.ToLower(string(data))
			value, important := buildValue(parser.Values())
			if prop == "" || value == "" {
				continue
			}
			decls = append(decls, Declaration{Property: prop, Value: value, Important: important})

		case css.CustomPropertyGrammar:
			// CSS custom properties (--var) are not supported
			continue
		}
	}
}

// buildValue reconstructs a declaration value from tokens, detecting and
// stripping a trailing !important.
func buildValue(tokens []css.Token) (string, bool) {
	important := false

	// Strip trailing [!] [important], ignoring whitespace between and after.
	end := len(tokens)
	for end > 0 && tokens[end-1].TokenType == css.WhitespaceToken {
		end--
	}
	if end > 0 && tokens[end-1].TokenType == css.IdentToken &&
		strings.EqualFold(string(tokens[end-1].Data), "important") {
		i := end - 1
		for i > 0 && tokens[i-1].TokenType == css.WhitespaceToken {
			i--
		}
		if i > 0 && tokens[i-1].TokenType == css.DelimToken && string(tokens[i-1].Data) == "!" {
			important = true
			end = i - 1
		}
	}

	// Whitespace inside function notation is consumed by the tokenizer, so
	// commas normalize to ", " to keep a stable serialized form.
	var parts []string
	for _, t := range tokens[:end] {
		switch t.TokenType {
		case css.WhitespaceToken:
			if len(parts) > 0 && parts[len(parts)-1] != " " {
				parts = append(parts, " ")
			}
		case css.CommaToken:
			parts = append(parts, ",", " ")
		default:
			parts = append(parts, string(t.Data))
		}
	}
	return strings.TrimSpace(strings.Join(parts, "")), important
}

// skipAtRuleBlock skips tokens until the matching end of an @-rule block.
func (p *Parser) skipAtRuleBlock(parser *css.Parser) {
	depth := 1
	for depth > 0 {
		gt, _, _ := parser.Next()
		switch gt {
		case css.ErrorGrammar:
			return
		case css.BeginAtRuleGrammar, css.BeginRulesetGrammar:
			depth++
		case css.EndAtRuleGrammar, css.EndRulesetGrammar:
			depth--
		}
	}
}
