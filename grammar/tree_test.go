package grammar_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/caranatar/tracerz/english"
	"github.com/caranatar/tracerz/grammar"
)

// scriptedSource replays fixed selection sequences, wrapping around when
// exhausted, so expansion paths are chosen explicitly by the test.
type scriptedSource struct {
	ints   []int
	floats []float64
	i, f   int
}

func (s *scriptedSource) IntN(n int) int {
	if len(s.ints) == 0 {
		return 0
	}

	v := s.ints[s.i%len(s.ints)]
	s.i++

	return v % n
}

func (s *scriptedSource) Float64() float64 {
	if len(s.floats) == 0 {
		return 0
	}

	v := s.floats[s.f%len(s.floats)]
	s.f++

	return v
}

func mustGrammar(t *testing.T, src string, opts ...grammar.Option) *grammar.Grammar {
	t.Helper()

	source, err := grammar.ParseSource([]byte(src))
	if err != nil {
		t.Fatalf("parse source: %v", err)
	}

	g, err := grammar.New(source, opts...)
	if err != nil {
		t.Fatalf("new grammar: %v", err)
	}

	g.AddModifiers(english.Modifiers())

	return g
}

func TestGrammar_Flatten_SingleRule(t *testing.T) {
	g := mustGrammar(t, `{"origin": "output"}`)

	out, err := g.Flatten("#origin#")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out != "output" {
		t.Errorf("expected %q, got %q", "output", out)
	}
}

func TestGrammar_Flatten_NestedRules(t *testing.T) {
	g := mustGrammar(t, `{"origin": "the #animal# sings", "animal": "albatross"}`)

	out, err := g.Flatten("#origin#")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out != "the albatross sings" {
		t.Errorf("expected %q, got %q", "the albatross sings", out)
	}
}

func TestGrammar_Flatten_Alternatives(t *testing.T) {
	g := mustGrammar(t, `{"num": ["one", "two", "three"]}`,
		grammar.WithRandomSource(&scriptedSource{ints: []int{0}}))

	out, err := g.Flatten("#num#")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out != "one" {
		t.Errorf("expected first alternative %q, got %q", "one", out)
	}
}

func TestGrammar_Flatten_EmptyAlternatives(t *testing.T) {
	g := mustGrammar(t, `{"empty": []}`)

	out, err := g.Flatten("#empty#")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out != "" {
		t.Errorf("expected empty output, got %q", out)
	}
}

func TestGrammar_Flatten_Deterministic(t *testing.T) {
	const src = `{"origin": "#animal# and #animal#",
		"animal": ["albatross", "badger", "capybara", "dingo"]}`

	first, err := mustGrammar(t, src, grammar.WithRandomSource(grammar.NewSeededSource(42))).
		Flatten("#origin#")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for range 8 {
		out, err := mustGrammar(t, src, grammar.WithRandomSource(grammar.NewSeededSource(42))).
			Flatten("#origin#")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if out != first {
			t.Fatalf("seeded expansion diverged: %q then %q", first, out)
		}
	}
}

func TestGrammar_Flatten_UndefinedRulePlaceholder(t *testing.T) {
	g := mustGrammar(t, `{"origin": "found #missing# here"}`)

	out, err := g.Flatten("#origin#")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out != "found {{missing}} here" {
		t.Errorf("expected placeholder output, got %q", out)
	}
}

func TestGrammar_Flatten_Modifiers(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		start    string
		expected string
	}{
		{
			"article",
			`{"animal": "albatross"}`,
			"#animal.a#",
			"an albatross",
		},
		{
			"chained",
			`{"animal": "albatross"}`,
			"#animal.a.capitalizeAll#",
			"An Albatross",
		},
		{
			"parametric",
			`{"animal": "albatross"}`,
			"#animal.replace(ross,rite)#",
			"albatrite",
		},
		{
			"empty output skips modifiers",
			`{"empty": ""}`,
			"#empty.a#",
			"",
		},
		{
			"unknown modifier passes through",
			`{"animal": "albatross"}`,
			"#animal.frobnicate#",
			"albatross",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := mustGrammar(t, tt.src).Flatten(tt.start)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if out != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, out)
			}
		})
	}
}

func TestGrammar_Flatten_ModifierArityMismatch(t *testing.T) {
	g := mustGrammar(t, `{"animal": "albatross"}`)

	_, err := g.Flatten("#animal.replace(onlyone)#")
	if !errors.Is(err, grammar.ErrModifierArity) {
		t.Errorf("expected ErrModifierArity, got %v", err)
	}
}

func TestGrammar_Flatten_KeyWithTextAction(t *testing.T) {
	g := mustGrammar(t, `{"origin": "[key:testkey]#getKey#", "getKey": "key is #key#"}`)

	out, err := g.Flatten("#origin#")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out != "key is testkey" {
		t.Errorf("expected %q, got %q", "key is testkey", out)
	}
}

func TestGrammar_Flatten_KeyWithRuleAction(t *testing.T) {
	g := mustGrammar(t, `{"getKey": "key is #key#", "someKey": "testkey"}`)

	out, err := g.Flatten("#[key:#someKey#]getKey#")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out != "key is testkey" {
		t.Errorf("expected %q, got %q", "key is testkey", out)
	}
}

func TestGrammar_Flatten_KeyWithListAction(t *testing.T) {
	g := mustGrammar(t, `{"origin": "[pick:one,two,three]#pick# #pick#"}`,
		grammar.WithRandomSource(&scriptedSource{ints: []int{2, 0}}))

	out, err := g.Flatten("#origin#")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out != "three one" {
		t.Errorf("expected %q, got %q", "three one", out)
	}
}

func TestGrammar_Flatten_KeylessActionSuppressed(t *testing.T) {
	g := mustGrammar(t, `{"name": "alice"}`)

	out, err := g.Flatten("[#name#]")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out != "" {
		t.Errorf("expected keyless action output suppressed, got %q", out)
	}
}

func TestGrammar_Flatten_KeyBindingShadowsRule(t *testing.T) {
	g := mustGrammar(t, `{"k": "fallback"}`)

	out, err := g.Flatten("[k:shadow]#k#")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out != "shadow" {
		t.Errorf("expected binding to shadow rule, got %q", out)
	}
}

func TestGrammar_Flatten_EmptyTextBinding(t *testing.T) {
	g := mustGrammar(t, `{"k": "fallback"}`)

	out, err := g.Flatten("[k:]#k#")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The empty binding shadows the rule and resolves to empty output.
	if out != "" {
		t.Errorf("expected empty-bound key to resolve empty, got %q", out)
	}
}

func TestGrammar_Flatten_DegenerateActionGroup(t *testing.T) {
	g := mustGrammar(t, `{}`)

	out, err := g.Flatten("[]")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out != "[]" {
		t.Errorf("expected unrecognized group verbatim, got %q", out)
	}
}

func TestGrammar_Flatten_PopRestoresFallback(t *testing.T) {
	g := mustGrammar(t, `{"k": "fallback", "popper": "#k.pop!!#"}`)

	out, err := g.Flatten("[k:shadow]#k# #[#popper#]k#")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out != "shadow fallback" {
		t.Errorf("expected pop to restore fallback, got %q", out)
	}
}

func TestGrammar_Flatten_RebindAndPopRoundTrip(t *testing.T) {
	g := mustGrammar(t, `{"k": "fallback", "popper": "#k.pop!!#", "p": "[#popper#]"}`)

	// Two bindings stack on the same key; each pop restores the next one
	// down, ending at the grammar-defined rule.
	out, err := g.Flatten("[k:v1][k:v2]#k# #p##k# #p##k#")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out != "v2 v1 fallback" {
		t.Errorf("expected stacked bindings to unwind in order, got %q", out)
	}
}

func TestGrammar_Flatten_ActionsEvaluateBeforeRule(t *testing.T) {
	g := mustGrammar(t, `{"story": "#hero# wins", "name": "alice"}`)

	out, err := g.Flatten("#[hero:#name#]story#")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out != "alice wins" {
		t.Errorf("expected action binding visible to rule, got %q", out)
	}
}

func TestTree_Step_Converges(t *testing.T) {
	g := mustGrammar(t, `{"origin": "the #animal.a# #verb.ed#",
		"animal": "albatross", "verb": "sing"}`)

	tree := g.Tree("#origin#")

	steps := 0

	for {
		more, err := tree.Step()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !more {
			break
		}

		steps++

		if steps > 100 {
			t.Fatal("expansion did not converge")
		}
	}

	if !tree.Root().Resolved() {
		t.Error("expected root resolved after convergence")
	}

	// Stepping a finished tree stays finished.
	more, err := tree.Step()
	if err != nil || more {
		t.Errorf("expected no further work, got more=%v err=%v", more, err)
	}

	out, err := tree.Flatten()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out != "the an albatross singed" {
		t.Errorf("unexpected output %q", out)
	}
}

func TestTree_Flatten_Idempotent(t *testing.T) {
	g := mustGrammar(t, `{"origin": "[key:bound]#key.capitalize#"}`)

	tree := g.Tree("#origin#")
	if err := tree.ExpandFully(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	first, err := tree.Flatten()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second, err := tree.Flatten()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first != second {
		t.Errorf("flatten not idempotent: %q then %q", first, second)
	}

	if first != "Bound" {
		t.Errorf("unexpected output %q", first)
	}
}

func TestTree_Flatten_PartialState(t *testing.T) {
	g := mustGrammar(t, `{"origin": "a #b# c", "b": "B"}`)

	tree := g.Tree("#origin#")

	// One step expands only the root reference.
	if _, err := tree.Step(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out, err := tree.Flatten()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(out, "#b#") {
		t.Errorf("expected intermediate state to show pending reference, got %q", out)
	}
}

func TestTree_FlattenWith_RevealsHidden(t *testing.T) {
	g := mustGrammar(t, `{}`)

	tree := g.Tree("[key:secret]")
	if err := tree.ExpandFully(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	hidden, err := tree.Flatten()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if hidden != "" {
		t.Errorf("expected hidden suppressed, got %q", hidden)
	}

	revealed, err := tree.FlattenWith(false, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if revealed != "secret" {
		t.Errorf("expected hidden subtree revealed, got %q", revealed)
	}
}

func TestTree_SharedGrammarIndependentTrees(t *testing.T) {
	g := mustGrammar(t, `{"k": "fallback"}`)

	bound := g.Tree("[k:shadow]#k#")
	plain := g.Tree("#k#")

	if err := bound.ExpandFully(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := plain.ExpandFully(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out, err := plain.Flatten()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out != "fallback" {
		t.Errorf("binding leaked across trees: got %q", out)
	}
}

func TestTree_ObjectRuleDispatchesHandler(t *testing.T) {
	g := mustGrammar(t, `{"coin": {
		"handler": "binomial-distribution",
		"success-rate": 0,
		"values": ["heads", "tails"]}}`)

	out, err := g.Flatten("#coin#")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out != "heads" {
		t.Errorf("expected degenerate rate to pick first value, got %q", out)
	}
}

func TestTree_ObjectElementInAlternatives(t *testing.T) {
	g := mustGrammar(t, `{"mixed": [
		{"handler": "binomial-distribution", "success-rate": 1, "values": ["x", "y"]}]}`,
		grammar.WithRandomSource(&scriptedSource{ints: []int{0}, floats: []float64{0.5}}))

	out, err := g.Flatten("#mixed#")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out != "y" {
		t.Errorf("expected handler-backed element, got %q", out)
	}
}

func TestTree_UnregisteredHandler(t *testing.T) {
	g := mustGrammar(t, `{"bad": {"handler": "no-such-handler", "values": ["x"]}}`)

	_, err := g.Flatten("#bad#")
	if !errors.Is(err, grammar.ErrBadHandler) {
		t.Errorf("expected ErrBadHandler, got %v", err)
	}
}

func TestTree_NonStringHandlerResult(t *testing.T) {
	g := mustGrammar(t, `{"bad": {
		"handler": "binomial-distribution",
		"success-rate": 0,
		"values": [1, 2]}}`)

	_, err := g.Flatten("#bad#")
	if !errors.Is(err, grammar.ErrBadHandler) {
		t.Errorf("expected ErrBadHandler, got %v", err)
	}
}

func TestTree_NumericRuleContent(t *testing.T) {
	g := mustGrammar(t, `{"num": 42}`)

	_, err := g.Flatten("#num#")
	if !errors.Is(err, grammar.ErrUnexpectedType) {
		t.Errorf("expected ErrUnexpectedType, got %v", err)
	}
}

func TestGrammar_New_RejectsNonObject(t *testing.T) {
	_, err := grammar.New(grammar.NewString("not an object"))
	if !errors.Is(err, grammar.ErrBadGrammar) {
		t.Errorf("expected ErrBadGrammar, got %v", err)
	}
}

func TestGrammar_New_NilSource(t *testing.T) {
	g, err := grammar.New(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(g.Rules()) != 0 {
		t.Errorf("expected no rules, got %v", g.Rules())
	}

	out, err := g.Flatten("#anything#")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out != "{{anything}}" {
		t.Errorf("expected placeholder, got %q", out)
	}
}

func TestGrammar_Rules(t *testing.T) {
	g := mustGrammar(t, `{"a": "1", "b": "2"}`)

	names := g.Rules()
	if len(names) != 2 {
		t.Fatalf("expected 2 rules, got %v", names)
	}

	found := map[string]bool{}
	for _, name := range names {
		found[name] = true
	}

	if !found["a"] || !found["b"] {
		t.Errorf("expected rules a and b, got %v", names)
	}
}
