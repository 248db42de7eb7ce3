package css_test

import (
	"testing"

	"go.uber.org/zap"

	"hdx/css"
)

func TestParser_SimpleRule(t *testing.T) {
	p := css.NewParser(zap.NewNop())

	sheet := p.Parse([]byte(`td { padding: 4px; color: red }`))
	if len(sheet.Rules) != 1 {
		t.Fatalf("expected 1 rule, got %d", len(sheet.Rules))
	}

	rule := sheet.Rules[0]
	if rule.Raw != "td" {
		t.Errorf("expected selector 'td', got %q", rule.Raw)
	}
	if len(rule.Declarations) != 2 {
		t.Fatalf("expected 2 declarations, got %d", len(rule.Declarations))
	}
	if rule.Declarations[0].Property != "padding" || rule.Declarations[0].Value != "4px" {
		t.Errorf("declaration 0: got %+v", rule.Declarations[0])
	}
	if rule.Declarations[1].Property != "color" || rule.Declarations[1].Value != "red" {
		t.Errorf("declaration 1: got %+v", rule.Declarations[1])
	}
}

func TestParser_GroupedSelectors(t *testing.T) {
	p := css.NewParser(zap.NewNop())

	sheet := p.Parse([]byte(`th, td.wide, #main { text-align: center }`))
	if len(sheet.Rules) != 3 {
		t.Fatalf("expected 3 rules (one per selector), got %d", len(sheet.Rules))
	}
	for _, r := range sheet.Rules {
		if len(r.Declarations) != 1 || r.Declarations[0].Property != "text-align" {
			t.Errorf("rule %q: got declarations %+v", r.Raw, r.Declarations)
		}
	}

	// id > class > type
	if !sheet.Rules[0].Specificity.Less(sheet.Rules[1].Specificity) {
		t.Error("expected 'th' < 'td.wide' specificity")
	}
	if !sheet.Rules[1].Specificity.Less(sheet.Rules[2].Specificity) {
		t.Error("expected 'td.wide' < '#main' specificity")
	}
}

func TestParser_Important(t *testing.T) {
	p := css.NewParser(zap.NewNop())

	sheet := p.Parse([]byte(`p { color: red !important; background: blue }`))
	if len(sheet.Rules) != 1 {
		t.Fatalf("expected 1 rule, got %d", len(sheet.Rules))
	}
	decls := sheet.Rules[0].Declarations
	if len(decls) != 2 {
		t.Fatalf("expected 2 declarations, got %d", len(decls))
	}
	if !decls[0].Important || decls[0].Value != "red" {
		t.Errorf("expected important 'red' with flag stripped from value, got %+v", decls[0])
	}
	if decls[1].Important {
		t.Errorf("background should not be important: %+v", decls[1])
	}
}

func TestParser_SkipsAtRuleBlocks(t *testing.T) {
	p := css.NewParser(zap.NewNop())

	sheet := p.Parse([]byte(`
		@media screen and (max-width: 600px) { td { color: red } }
		td { color: blue }
	`))
	if len(sheet.Rules) != 1 {
		t.Fatalf("expected only the top-level rule, got %d", len(sheet.Rules))
	}
	if sheet.Rules[0].Declarations[0].Value != "blue" {
		t.Errorf("got %+v", sheet.Rules[0].Declarations)
	}
	if len(sheet.Warnings) == 0 {
		t.Error("expected a warning for the skipped @media block")
	}
}

func TestParser_BadSelectorSkipped(t *testing.T) {
	p := css.NewParser(zap.NewNop())

	sheet := p.Parse([]byte(`td[ { color: red } p { color: green }`))
	for _, r := range sheet.Rules {
		if r.Raw != "p" {
			t.Errorf("unexpected rule survived: %q", r.Raw)
		}
	}
}

func TestParser_MultiValueDeclaration(t *testing.T) {
	p := css.NewParser(zap.NewNop())

	sheet := p.Parse([]byte(`td { border: 2px dashed rgb(0, 128, 0) }`))
	if len(sheet.Rules) != 1 {
		t.Fatalf("expected 1 rule, got %d", len(sheet.Rules))
	}
	got := sheet.Rules[0].Declarations[0].Value
	if got != "border" && sheet.Rules[0].Declarations[0].Property != "border" {
		t.Fatalf("expected border declaration, got %+v", sheet.Rules[0].Declarations[0])
	}
	want := "2px dashed rgb(0, 128, 0)"
	if got != want {
		t.Errorf("value: got %q, want %q", got, want)
	}
}

func TestParser_FunctionArgumentSpacing(t *testing.T) {
	p := css.NewParser(zap.NewNop())

	decls := p.ParseDeclarations([]byte(`background-color: rgb(0,128, 0); font-family: Arial,sans-serif`))
	if len(decls) != 2 {
		t.Fatalf("expected 2 declarations, got %d", len(decls))
	}
	if decls[0].Value != "rgb(0, 128, 0)" {
		t.Errorf("function value: got %q, want %q", decls[0].Value, "rgb(0, 128, 0)")
	}
	if decls[1].Value != "Arial, sans-serif" {
		t.Errorf("list value: got %q, want %q", decls[1].Value, "Arial, sans-serif")
	}
}

func TestParser_ParseDeclarations(t *testing.T) {
	p := css.NewParser(zap.NewNop())

	decls := p.ParseDeclarations([]byte(`color: blue; padding-left: 3px !important`))
	if len(decls) != 2 {
		t.Fatalf("expected 2 declarations, got %d", len(decls))
	}
	if decls[0].Property != "color" || decls[0].Value != "blue" || decls[0].Important {
		t.Errorf("declaration 0: %+v", decls[0])
	}
	if decls[1].Property != "padding-left" || decls[1].Value != "3px" || !decls[1].Important {
		t.Errorf("declaration 1: %+v", decls[1])
	}
}

func TestTracked(t *testing.T) {
	for _, prop := range []string{"color", "background-color", "border-left", "padding-top", "line-height"} {
		if !css.Tracked(prop) {
			t.Errorf("%s should be tracked", prop)
		}
	}
	for _, prop := range []string{"display", "position", "z-index", "margin"} {
		if css.Tracked(prop) {
			t.Errorf("%s should not be tracked", prop)
		}
	}
}
