// Package symtab implements the assembler's symbol table: an
// insertion-checked mapping from label name to instruction index.
package symtab

import "fmt"

// Table maps label names to the instruction index they were bound to during
// pass one. Iteration order is never meaningful - only Define and Lookup
// are - so a bare map is sufficient (spec.md section 3).
type Table struct {
	index map[string]int
}

// New returns an empty symbol table.
func New() *Table {
	return &Table{index: make(map[string]int)}
}

// Define binds name to an instruction index. Redefining an existing label
// is an error: labels must be unique (spec.md section 3's invariant).
func (t *Table) Define(name string, index int) error {
	if _, exists := t.index[name]; exists {
		return fmt.Errorf("duplicate label: %q", name)
	}
	t.index[name] = index
	return nil
}

// Lookup returns the instruction index bound to name, if any.
func (t *Table) Lookup(name string) (int, bool) {
	idx, ok := t.index[name]
	return idx, ok
}

// Len returns the number of defined labels.
func (t *Table) Len() int {
	return len(t.index)
}

// Names returns every defined label name, in no particular order.
func (t *Table) Names() []string {
	names := make([]string, 0, len(t.index))
	for name := range t.index {
		names = append(names, name)
	}
	return names
}
