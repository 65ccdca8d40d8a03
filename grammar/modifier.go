package grammar

import (
	"log/slog"
)

// ModifierKind selects the input a modifier is invoked with.
type ModifierKind int

const (
	// ModifierText modifiers transform the accumulated flattened string.
	ModifierText ModifierKind = iota

	// ModifierTree modifiers receive the owning tree and the rule name the
	// node was expanded from. They conventionally return the empty string
	// and exist for their side effect on the tree's symbol table.
	ModifierTree

	// ModifierNode modifiers receive the node being flattened and the rule
	// name it was expanded from.
	ModifierNode
)

// String returns a string representation of the modifier kind.
func (k ModifierKind) String() string {
	switch k {
	case ModifierText:
		return "Text"
	case ModifierTree:
		return "Tree"
	case ModifierNode:
		return "Node"
	default:
		return "Unknown"
	}
}

// Modifier is a named post-processing function applied during flattening.
// Each modifier declares exactly one input kind and a fixed parameter arity,
// excluding the input itself.
type Modifier struct {
	kind  ModifierKind
	arity int
	text  func(input string, params []string) string
	tree  func(tree *Tree, rule string, params []string) string
	node  func(node *Node, rule string, params []string) string
}

// NewTextModifier creates a plain-text modifier with the given arity.
func NewTextModifier(arity int, fn func(input string, params []string) string) *Modifier {
	return &Modifier{kind: ModifierText, arity: arity, text: fn}
}

// NewTreeModifier creates a whole-tree modifier with the given arity.
func NewTreeModifier(arity int, fn func(tree *Tree, rule string, params []string) string) *Modifier {
	return &Modifier{kind: ModifierTree, arity: arity, tree: fn}
}

// NewNodeModifier creates a single-node modifier with the given arity.
func NewNodeModifier(arity int, fn func(node *Node, rule string, params []string) string) *Modifier {
	return &Modifier{kind: ModifierNode, arity: arity, node: fn}
}

// Kind returns the modifier's declared input kind.
func (m *Modifier) Kind() ModifierKind { return m.kind }

// Arity returns the modifier's declared parameter count.
func (m *Modifier) Arity() int { return m.arity }

// applyModifiers dispatches the node's recorded modifier tokens, in order,
// over the base string obtained by flattening without modifiers.
//
// An unregistered name is a non-fatal diagnostic and a pass-through: the
// token is skipped rather than failing the flatten, since the earlier policy
// of silent loss can mask grammar typos. A parameter count not matching the
// declared arity is a hard failure.
func (t *Tree) applyModifiers(n *Node, base string) (string, error) {
	output := base

	for _, token := range n.modifiers {
		name, params := parseModifier(token)

		mod, ok := t.grammar.modifiers[name]
		if !ok {
			t.grammar.logger.Warn("unknown modifier",
				slog.String("modifier", name),
				slog.String("rule", n.rule),
			)

			continue
		}

		if len(params) != mod.arity {
			return "", ErrModifierArity.
				With(
					slog.String("modifier", name),
					slog.String("rule", n.rule),
					slog.String("fragment", n.text),
					slog.Int("expected", mod.arity),
					slog.Int("got", len(params)),
				)
		}

		switch mod.kind {
		case ModifierText:
			output = mod.text(output, params)
		case ModifierTree:
			output = mod.tree(t, n.rule, params)
		case ModifierNode:
			output = mod.node(n, n.rule, params)
		}
	}

	return output, nil
}

// builtinModifiers returns a fresh registry holding the modifiers every
// Grammar carries. Explicit construction at Grammar creation avoids hidden
// static registry state.
func builtinModifiers() map[string]*Modifier {
	return map[string]*Modifier{
		// pop!! unwinds the top runtime binding for the rule it is applied
		// to, deleting the key entirely when its stack empties so lookups
		// fall back to the static grammar rule.
		"pop!!": NewTreeModifier(0,
			func(tree *Tree, rule string, _ []string) string {
				tree.Symbols().Pop(rule)

				return ""
			}),
	}
}
