package grammar

import (
	"log/slog"
)

// Tree is the expansion target for a single generation request. It owns the
// root node, a private scoped symbol table backed by the grammar's rules, and
// the stack of in-progress nodes that drives depth-first expansion.
//
// A Tree lives exactly as long as needed to flatten to a string and is then
// discarded; its symbol table and node graph are never shared.
type Tree struct {
	grammar *Grammar
	root    *Node
	symbols *SymbolTable
	stack   []*Node
}

// Root returns the root node of the tree.
func (t *Tree) Root() *Node { return t.root }

// Symbols returns the tree's scoped symbol table. Tree- and node-input
// modifiers use it to read or unwind runtime bindings.
func (t *Tree) Symbols() *SymbolTable { return t.symbols }

// Step performs one increment of depth-first expansion and reports whether
// unfinished work remains. Callers control pacing: a host may interleave
// steps with its own work, observe intermediate state through Root, or stop
// stepping to abandon the expansion.
//
// Each step expands the deepest unfinished node in document order. When a
// node's subtree resolves, its bound key (if any) is flattened and pushed
// onto the symbol table, and completed ancestor chains unwind in the same
// step so keys bind at the earliest possible moment, innermost first.
func (t *Tree) Step() (bool, error) {
	if len(t.stack) == 0 {
		if t.root.Expanded() {
			return false, nil
		}

		t.stack = append(t.stack, t.root)
	}

	n := t.stack[len(t.stack)-1]

	if err := n.expand(t); err != nil {
		return false, err
	}

	t.grammar.logger.Trace("expanded node",
		slog.String("fragment", n.text),
		slog.Int("children", len(n.children)),
	)

	pending := n.pendingChildren()
	if len(pending) > 0 {
		// Push in reverse so the leftmost pending child is expanded next:
		// stack pop order is left-to-right document order.
		for i := len(pending) - 1; i >= 0; i-- {
			t.stack = append(t.stack, pending[i])
		}

		return true, nil
	}

	// The node's subtree resolved in this step. Bind its key, then unwind
	// every ancestor whose remaining work was exactly this node.
	t.stack = t.stack[:len(t.stack)-1]

	if err := t.bindKey(n); err != nil {
		return false, err
	}

	resolved := n

	for len(t.stack) > 0 {
		top := t.stack[len(t.stack)-1]
		if top.lastExpandableChild() != resolved {
			break
		}

		t.stack = t.stack[:len(t.stack)-1]

		if err := t.bindKey(top); err != nil {
			return false, err
		}

		resolved = top
	}

	return len(t.stack) > 0, nil
}

// ExpandFully drives Step to completion.
func (t *Tree) ExpandFully() error {
	for {
		more, err := t.Step()
		if err != nil {
			return err
		}

		if !more {
			return nil
		}
	}
}

// Flatten serializes the tree, suppressing hidden subtrees and applying
// modifiers. Partially expanded trees flatten to their current intermediate
// state.
func (t *Tree) Flatten() (string, error) {
	return t.root.flatten(t, true, false)
}

// FlattenWith serializes the tree with explicit control over hidden
// suppression and modifier application. Hosts observing intermediate state,
// such as the step TUI, use it to reveal hidden action subtrees.
func (t *Tree) FlattenWith(ignoreHidden, ignoreModifiers bool) (string, error) {
	return t.root.flatten(t, ignoreHidden, ignoreModifiers)
}

// bindKey pushes the node's flattened value onto the symbol table when the
// node carries a key. The flatten ignores hidden-suppression but honors
// modifiers. An empty key means bind-but-discard: the subtree is still
// resolved (so side-effect modifiers fire) but no binding is recorded.
func (t *Tree) bindKey(n *Node) error {
	key, ok := n.Key()
	if !ok {
		return nil
	}

	value, err := n.flatten(t, false, false)
	if err != nil {
		return err
	}

	if key == "" {
		return nil
	}

	t.grammar.logger.Trace("bound key",
		slog.String("key", key),
		slog.String("value", value),
	)
	t.symbols.Push(key, NewString(value))

	return nil
}

// resolveContent reduces looked-up rule content to the output string a rule
// node expands into. Strings are taken verbatim, arrays select one
// alternative uniformly, and objects dispatch to their named handler. The
// result of every path must be a string.
func (t *Tree) resolveContent(name string, content *Value) (string, error) {
	switch content.Kind {
	case KindString:
		return content.Str, nil

	case KindArray:
		if len(content.Arr) == 0 {
			return "", nil
		}

		pick := content.Arr[t.grammar.rng.IntN(len(content.Arr))]
		if pick.Kind == KindObject {
			return t.invokeHandler(name, pick)
		}

		if pick.Kind != KindString {
			return "", ErrUnexpectedType.
				With(
					slog.String("rule", name),
					slog.String("kind", pick.Kind.String()),
				)
		}

		return pick.Str, nil

	case KindObject:
		return t.invokeHandler(name, content)

	case KindNull, KindNumber:
		fallthrough
	default:
		return "", ErrUnexpectedType.
			With(
				slog.String("rule", name),
				slog.String("kind", content.Kind.String()),
			)
	}
}

// invokeHandler dispatches rule content of object form to its registered
// object handler and validates that the sampled result is a string.
func (t *Tree) invokeHandler(name string, content *Value) (string, error) {
	field, ok := content.Field("handler")
	if !ok || field.Kind != KindString {
		return "", ErrBadHandler.
			With(slog.String("rule", name), slog.String("reason", "missing handler field"))
	}

	handler, ok := t.grammar.handlers[field.Str]
	if !ok {
		return "", ErrBadHandler.
			With(
				slog.String("rule", name),
				slog.String("handler", field.Str),
				slog.String("reason", "handler not registered"),
			)
	}

	result, err := handler(content, t.grammar.rng)
	if err != nil {
		return "", WrapError(err).
			With(
				slog.String("rule", name),
				slog.String("handler", field.Str),
			)
	}

	if result == nil || result.Kind != KindString {
		return "", ErrBadHandler.
			With(
				slog.String("rule", name),
				slog.String("handler", field.Str),
				slog.String("reason", "handler result is not a string"),
			)
	}

	return result.Str, nil
}
