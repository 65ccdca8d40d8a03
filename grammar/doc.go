// Package grammar implements a generative-grammar interpreter in the style
// of Tracery: a declarative grammar maps rule names to literal text, weighted
// alternative lists, or handler-driven generators, and a start rule expands
// recursively into a finished string.
//
// # Model
//
// Expansion builds a parse tree. Each node is created from a text fragment
// and classified into one of seven syntactic productions: a bare rule
// reference (#name#, with optional dot-separated modifiers), a rule with
// leading action groups, three bracketed action forms that bind symbol-table
// keys, back-to-back action groups, and mixed text with embedded references.
// Fragments matching none of these are complete and pass through verbatim.
//
// The engine expands the tree depth-first over an explicit stack, one node
// per [Tree.Step], so an embedding host can pace the work and observe
// intermediate state. When a node's subtree resolves, any key it carries is
// bound at that moment, so actions written before a rule are visible to it.
//
// # Scoping
//
// Runtime bindings live in a per-tree [SymbolTable] mapping each key to a
// stack of values: rebinding shadows, and the built-in pop!! modifier
// unwinds. A key with no runtime binding falls back to the static grammar
// rule of the same name, and a name found in neither renders as a visible
// {{name}} placeholder rather than failing the run.
//
// # Extension
//
// Modifiers are named post-processing functions applied to a node's
// flattened text, declared over one of three input kinds (text, tree, or
// node) with a fixed parameter arity. Object handlers turn rule content of
// object form into a sampled value using the grammar's randomness source.
// Both registries are open: see [Grammar.AddModifier] and
// [Grammar.AddHandler]. The english package provides the conventional
// English inflection modifiers.
//
// # Example
//
//	source, _ := grammar.ParseSource([]byte(`
//	  animal: [emu, okapi, unicorn]
//	  origin: "I saw #animal.a#."
//	`))
//	g, _ := grammar.New(source)
//	g.AddModifiers(english.Modifiers())
//	out, _ := g.Flatten("#origin#")
package grammar
