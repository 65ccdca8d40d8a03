package grammar

// SymbolTable is the scoped runtime symbol table of a single expansion: a
// mapping from key name to a stack of structured values.
//
// Binding a key pushes onto its stack, so rebinding shadows rather than
// replaces. Popping restores the shadowed value, and once a key's stack
// empties the key is removed entirely so later lookups fall back to the
// static grammar rule of the same name.
type SymbolTable struct {
	bindings map[string][]*Value
	fallback map[string]*Value
}

func newSymbolTable(rules map[string]*Value) *SymbolTable {
	return &SymbolTable{
		bindings: make(map[string][]*Value),
		fallback: rules,
	}
}

// Push binds key to value, shadowing any current binding.
func (st *SymbolTable) Push(key string, value *Value) {
	st.bindings[key] = append(st.bindings[key], value)
}

// Pop removes the top binding for key. If the key's stack becomes empty the
// key is deleted so lookups fall back to the grammar. Popping an unbound key
// is a no-op.
func (st *SymbolTable) Pop(key string) {
	stack, ok := st.bindings[key]
	if !ok {
		return
	}

	if len(stack) <= 1 {
		delete(st.bindings, key)

		return
	}

	st.bindings[key] = stack[:len(stack)-1]
}

// Lookup returns the current value for key: the top of its binding stack if
// bound, otherwise the grammar rule of the same name.
func (st *SymbolTable) Lookup(key string) (*Value, bool) {
	if stack, ok := st.bindings[key]; ok {
		return stack[len(stack)-1], true
	}

	value, ok := st.fallback[key]

	return value, ok
}

// Bound reports whether key currently has a runtime binding, ignoring the
// grammar fallback.
func (st *SymbolTable) Bound(key string) bool {
	_, ok := st.bindings[key]

	return ok
}
