package grammar

import (
	"maps"

	"github.com/caranatar/tracerz/log"
)

// Grammar holds a set of named rules together with the modifier and object
// handler registries and the randomness source used to expand them.
//
// A Grammar is constructed once and is immutable over its lifetime except
// for registry additions performed before use. Registries are read-only once
// expansion begins and may be shared by any number of independent trees, but
// registering is not thread-safe and must happen-before concurrent reads.
type Grammar struct {
	rules     map[string]*Value
	modifiers map[string]*Modifier
	handlers  map[string]Handler
	rng       Source
	logger    log.Logger
}

// Option applies a configuration option to a Grammar under construction.
type Option func(*Grammar)

// WithRandomSource sets the randomness source used for alternative selection
// and object handlers. Supplying a deterministic source makes expansion fully
// reproducible.
func WithRandomSource(src Source) Option {
	return func(g *Grammar) {
		g.rng = src
	}
}

// WithLogger sets the structured logger used for expansion diagnostics, such
// as unknown-modifier warnings. The zero Logger discards everything.
func WithLogger(logger log.Logger) Option {
	return func(g *Grammar) {
		g.logger = logger
	}
}

// New creates a Grammar from structured rule source: an object value mapping
// rule name to rule content. A nil or null source means no rules.
//
// The built-in object handlers (binomial-distribution and
// discrete-distribution) and the built-in tree modifiers (pop!!) are
// registered on every Grammar. English text modifiers live in the english
// package and are added through AddModifiers by callers that want them.
func New(source *Value, opts ...Option) (*Grammar, error) {
	rules := map[string]*Value{}

	if source != nil && source.Kind != KindNull {
		if source.Kind != KindObject {
			return nil, ErrBadGrammar
		}

		rules = maps.Clone(source.Obj)
	}

	g := &Grammar{
		rules:     rules,
		modifiers: builtinModifiers(),
		handlers:  builtinHandlers(),
		rng:       NewSource(),
	}

	for _, opt := range opts {
		opt(g)
	}

	return g, nil
}

// Rules returns the names of all defined rules, in no particular order.
func (g *Grammar) Rules() []string {
	names := make([]string, 0, len(g.rules))
	for name := range g.rules {
		names = append(names, name)
	}

	return names
}

// AddModifier registers a modifier under the given name, replacing any
// existing registration. There is no removal operation.
func (g *Grammar) AddModifier(name string, mod *Modifier) {
	g.modifiers[name] = mod
}

// AddModifiers registers every modifier in the given mapping.
func (g *Grammar) AddModifiers(mods map[string]*Modifier) {
	for name, mod := range mods {
		g.AddModifier(name, mod)
	}
}

// AddHandler registers an object handler under the given name, replacing any
// existing registration. There is no removal operation.
func (g *Grammar) AddHandler(name string, handler Handler) {
	g.handlers[name] = handler
}

// Tree creates a new parse tree rooted at the given start text. The tree
// carries its own symbol table; concurrent trees over one Grammar never
// share runtime state.
func (g *Grammar) Tree(start string) *Tree {
	return &Tree{
		grammar: g,
		root:    newNode(start),
		symbols: newSymbolTable(g.rules),
	}
}

// Flatten builds a tree from the start text, expands it to completion, and
// serializes the result with hidden subtrees suppressed.
func (g *Grammar) Flatten(start string) (string, error) {
	tree := g.Tree(start)

	if err := tree.ExpandFully(); err != nil {
		return "", err
	}

	return tree.Flatten()
}
