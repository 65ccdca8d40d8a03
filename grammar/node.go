package grammar

import (
	"log/slog"
	"strings"
)

// Node is a single vertex of a parse tree. A node owns its children
// exclusively; the tree owns the root.
//
// Completeness is decided once, at construction: a node is complete iff its
// text contains neither a rule reference nor an action group. Complete nodes
// are never expanded, and a node with children is never re-expanded.
type Node struct {
	text      string
	complete  bool
	hidden    bool
	children  []*Node
	key       *string  // bound symbol-table key; nil means no binding
	modifiers []string // modifier tokens, applied left to right
	rule      string   // rule name this node was expanded from
}

func newNode(text string) *Node {
	return &Node{
		text:     text,
		complete: !containsRule(text) && !onlyActionsRE.MatchString(text),
	}
}

// Text returns the raw fragment this node was created from.
func (n *Node) Text() string { return n.text }

// Complete reports whether the node's text contains neither a rule reference
// nor an action group. It is set at construction and never changes.
func (n *Node) Complete() bool { return n.complete }

// Hidden reports whether this node's rendered text is suppressed from final
// output because it exists only to populate a symbol-table key.
func (n *Node) Hidden() bool { return n.hidden }

// Children returns the node's children in document order.
func (n *Node) Children() []*Node { return n.children }

// Expanded reports whether the node has taken its expansion step: either it
// was complete from construction or its children have been populated.
func (n *Node) Expanded() bool {
	return n.complete || len(n.children) > 0
}

// Key returns the symbol-table key this node's flattened value is bound to
// upon completion, and whether a binding exists at all. The empty string with
// ok true is a real state: bind-but-discard, used by keyless rule actions.
func (n *Node) Key() (string, bool) {
	if n.key == nil {
		return "", false
	}

	return *n.key, true
}

// Modifiers returns the node's recorded modifier tokens.
func (n *Node) Modifiers() []string { return n.modifiers }

// Resolved reports whether the node and its entire subtree are complete,
// making it safe to flatten for a bound key.
func (n *Node) Resolved() bool {
	if n.complete {
		return true
	}

	if len(n.children) == 0 {
		return false
	}

	for _, child := range n.children {
		if !child.Resolved() {
			return false
		}
	}

	return true
}

// addChild appends a child created from text. Children inherit the parent's
// hidden flag so suppression covers the whole action subtree.
func (n *Node) addChild(text string) *Node {
	child := newNode(text)
	child.hidden = n.hidden
	n.children = append(n.children, child)

	return child
}

// pendingChildren returns the children not complete at construction, in
// document order. These are the children the engine must still visit.
func (n *Node) pendingChildren() []*Node {
	var pending []*Node

	for _, child := range n.children {
		if !child.complete {
			pending = append(pending, child)
		}
	}

	return pending
}

// lastExpandableChild returns the last child, scanning right to left, that is
// not complete. The engine uses it to detect when a just-resolved node was
// the deepest remaining work under its parent.
func (n *Node) lastExpandableChild() *Node {
	for i := len(n.children) - 1; i >= 0; i-- {
		if !n.children[i].complete {
			return n.children[i]
		}
	}

	return nil
}

// expand performs one expansion step: classify the node's text and populate
// children accordingly. A node that is complete or already expanded is left
// untouched.
func (n *Node) expand(t *Tree) error {
	if n.complete || len(n.children) > 0 {
		return nil
	}

	switch classify(n.text) {
	case prodOnlyRule:
		return n.expandRule(t)
	case prodOnlyRuleWithActions:
		n.expandRuleWithActions()
	case prodKeylessRuleAction:
		n.expandKeylessAction()
	case prodKeyWithRuleAction:
		n.expandKeyWithRule()
	case prodKeyWithTextAction:
		n.expandKeyWithText(t)
	case prodOnlyActions:
		actions := splitActions(n.text)

		// A lone group matching none of the action forms renders verbatim;
		// re-adding it as a child would never make progress.
		if len(actions) == 1 && actions[0] == n.text {
			return nil
		}

		for _, action := range actions {
			n.addChild(action)
		}
	case prodMixedText:
		for _, segment := range splitMixed(n.text) {
			n.addChild(segment)
		}
	case prodComplete:
		// Unreachable: complete nodes are filtered above.
	}

	return nil
}

// expandRule resolves a single #name(.modifier)*# reference. The symbol table
// shadows the grammar; a name found in neither degrades to a visible
// {{name}} placeholder instead of failing the expansion.
func (n *Node) expandRule(t *Tree) error {
	m := onlyRuleRE.FindStringSubmatch(n.text)
	name, suffix := m[1], m[2]

	n.rule = name
	n.modifiers = append(n.modifiers, splitModifiers(suffix)...)

	content, ok := t.symbols.Lookup(name)
	if !ok {
		t.grammar.logger.Debug("undefined rule",
			slog.String("rule", name),
		)
		n.addChild("{{" + name + "}}")

		return nil
	}

	output, err := t.resolveContent(name, content)
	if err != nil {
		return WrapError(err).
			With(
				slog.String("rule", name),
				slog.String("fragment", n.text),
			)
	}

	n.addChild(output)

	return nil
}

// expandRuleWithActions splits #(action)+name(.modifier)*# into two children:
// the actions first, then the rule re-wrapped in its delimiters, so actions
// are evaluated and bound before the rule that may depend on them.
func (n *Node) expandRuleWithActions() {
	m := onlyRuleWithActionsRE.FindStringSubmatch(n.text)
	actions, name, suffix := m[1], m[2], m[3]

	n.addChild(actions)
	n.addChild("#" + name + suffix + "#")
}

// expandKeylessAction handles [#name#]: the inner rule is resolved for its
// side effects only. The child's key is the empty string, which the engine
// treats as bind-but-discard, and the subtree is hidden from final output.
func (n *Node) expandKeylessAction() {
	m := keylessRuleActionRE.FindStringSubmatch(n.text)

	n.hidden = true
	child := n.addChild(m[1])
	discard := ""
	child.key = &discard
}

// expandKeyWithRule handles [key:#name#]: the node is hidden and its single
// child, the inner rule reference, binds key upon completion.
func (n *Node) expandKeyWithRule() {
	m := keyWithRuleActionRE.FindStringSubmatch(n.text)
	key, rule := m[1], m[2]

	n.hidden = true
	child := n.addChild(rule)
	child.key = &key
}

// expandKeyWithText handles [key:text] and [key:a,b,c]: the key is bound
// immediately to the literal token list, and one child is created per token
// so the action's own subtree reproduces the literal text if flattened.
// Binding to the literal empty string records an empty array, so lookups
// against the key succeed and resolve to empty output.
func (n *Node) expandKeyWithText(t *Tree) {
	m := keyWithTextActionRE.FindStringSubmatch(n.text)
	key, text := m[1], m[2]

	n.hidden = true

	if text == "" {
		t.symbols.Push(key, NewArray())
		n.addChild("")

		return
	}

	tokens := strings.Split(text, ",")

	t.symbols.Push(key, NewStringArray(tokens...))

	for _, token := range tokens {
		n.addChild(token)
	}
}

// flatten serializes the node's subtree to a string.
//
// A node with pending modifiers first flattens itself without them, then
// applies modifier dispatch to the base string. Children always propagate
// ignoreHidden but force ignoreModifiers false: a node's own modifiers must
// not suppress its children's.
func (n *Node) flatten(t *Tree, ignoreHidden, ignoreModifiers bool) (string, error) {
	if len(n.modifiers) > 0 && !ignoreModifiers {
		base, err := n.flatten(t, ignoreHidden, true)
		if err != nil {
			return "", err
		}

		// Modifiers are never applied to empty output.
		if base == "" {
			return "", nil
		}

		return t.applyModifiers(n, base)
	}

	if len(n.children) == 0 {
		if n.hidden && ignoreHidden {
			return "", nil
		}

		return n.text, nil
	}

	var sb strings.Builder

	for _, child := range n.children {
		s, err := child.flatten(t, ignoreHidden, false)
		if err != nil {
			return "", WrapError(err).
				With(slog.String("fragment", n.text))
		}

		sb.WriteString(s)
	}

	return sb.String(), nil
}
