package grammar_test

import (
	"testing"

	"github.com/caranatar/tracerz/grammar"
)

func TestModifierKind_String(t *testing.T) {
	tests := []struct {
		kind     grammar.ModifierKind
		expected string
	}{
		{grammar.ModifierText, "Text"},
		{grammar.ModifierTree, "Tree"},
		{grammar.ModifierNode, "Node"},
		{grammar.ModifierKind(99), "Unknown"},
	}

	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.expected {
			t.Errorf("ModifierKind(%d).String() = %q, want %q", tt.kind, got, tt.expected)
		}
	}
}

func TestNewTextModifier(t *testing.T) {
	mod := grammar.NewTextModifier(1, func(input string, params []string) string {
		return input + params[0]
	})

	if mod.Kind() != grammar.ModifierText {
		t.Errorf("expected text kind, got %v", mod.Kind())
	}

	if mod.Arity() != 1 {
		t.Errorf("expected arity 1, got %d", mod.Arity())
	}
}

func TestGrammar_AddModifier_CustomText(t *testing.T) {
	g := mustGrammar(t, `{"word": "soup"}`)

	g.AddModifier("shout", grammar.NewTextModifier(0,
		func(input string, _ []string) string {
			return input + "!"
		}))

	out, err := g.Flatten("#word.shout#")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out != "soup!" {
		t.Errorf("expected %q, got %q", "soup!", out)
	}
}

func TestGrammar_AddModifier_CustomNode(t *testing.T) {
	g := mustGrammar(t, `{"word": "soup"}`)

	g.AddModifier("rule", grammar.NewNodeModifier(0,
		func(_ *grammar.Node, rule string, _ []string) string {
			return rule
		}))

	out, err := g.Flatten("#word.rule#")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out != "word" {
		t.Errorf("expected rule name output, got %q", out)
	}
}

func TestGrammar_AddModifier_CustomTree(t *testing.T) {
	g := mustGrammar(t, `{"word": "soup"}`)

	var sawRule string

	g.AddModifier("mark", grammar.NewTreeModifier(0,
		func(tree *grammar.Tree, rule string, _ []string) string {
			sawRule = rule

			tree.Symbols().Push("marked", grammar.NewString("yes"))

			return ""
		}))

	tree := g.Tree("#word.mark#")
	if err := tree.ExpandFully(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out, err := tree.Flatten()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out != "" {
		t.Errorf("expected tree modifier to replace output, got %q", out)
	}

	if sawRule != "word" {
		t.Errorf("expected rule name %q, got %q", "word", sawRule)
	}

	if !tree.Symbols().Bound("marked") {
		t.Error("expected tree modifier side effect on symbol table")
	}
}

func TestGrammar_AddModifier_Replaces(t *testing.T) {
	g := mustGrammar(t, `{"word": "soup"}`)

	g.AddModifier("x", grammar.NewTextModifier(0,
		func(string, []string) string { return "first" }))
	g.AddModifier("x", grammar.NewTextModifier(0,
		func(string, []string) string { return "second" }))

	out, err := g.Flatten("#word.x#")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out != "second" {
		t.Errorf("expected later registration to win, got %q", out)
	}
}

func TestGrammar_Modifiers_ApplyLeftToRight(t *testing.T) {
	g := mustGrammar(t, `{"word": "soup"}`)

	g.AddModifier("wrap", grammar.NewTextModifier(0,
		func(input string, _ []string) string {
			return "(" + input + ")"
		}))

	out, err := g.Flatten("#word.wrap.wrap#")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out != "((soup))" {
		t.Errorf("expected nested application, got %q", out)
	}
}
