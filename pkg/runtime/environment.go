package runtime

import "sort"

// Environment holds the variable bindings of one program run. There is a
// single flat namespace: no scope chain and no deletion.
type Environment struct {
	values map[string]Value
}

// NewEnvironment creates an empty environment.
func NewEnvironment() *Environment {
	return &Environment{values: make(map[string]Value)}
}

// Get returns the binding for name, or None when it is unbound.
func (e *Environment) Get(name string) Value {
	if v, ok := e.values[name]; ok {
		return v
	}
	return None
}

// Lookup returns the binding for name and whether it exists.
func (e *Environment) Lookup(name string) (Value, bool) {
	v, ok := e.values[name]
	return v, ok
}

// Set inserts or overwrites a binding.
func (e *Environment) Set(name string, value Value) {
	if value == nil {
		value = None
	}
	e.values[name] = value
}

// Len returns the number of bindings.
func (e *Environment) Len() int {
	return len(e.values)
}

// Keys returns the bound names in sorted order.
func (e *Environment) Keys() []string {
	keys := make([]string, 0, len(e.values))
	for k := range e.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
