// Package modules tracks the finalized definition tables of a compilation
// unit. The registry grows monotonically while the unit is resolved and is
// read-only for downstream stages afterwards.
package modules

import (
	"github.com/funvibe/quill/internal/symbols"
)

// Registry maps module names to their finalized definition tables.
// Keys include synthetic names: a qualified instance or import alias
// registers the derived table under its qualifier so nested composition
// can look it up like any other module.
//
// A registry belongs to exactly one compilation unit and one resolution
// pass; separate units resolve on separate registries with no shared
// state.
type Registry struct {
	tables map[string]*symbols.DefinitionTable
	order  []string
}

func NewRegistry() *Registry {
	return &Registry{tables: make(map[string]*symbols.DefinitionTable)}
}

// Register publishes a finalized table under name. Re-registering an
// existing name overwrites it (last write wins at the registry level;
// the collector reports the redefinition separately).
func (r *Registry) Register(name string, table *symbols.DefinitionTable) {
	if _, ok := r.tables[name]; !ok {
		r.order = append(r.order, name)
	}
	r.tables[name] = table
}

// Lookup returns the finalized table for name. A miss means the module is
// genuinely absent or not yet processed; the caller decides which.
func (r *Registry) Lookup(name string) (*symbols.DefinitionTable, bool) {
	table, ok := r.tables[name]
	return table, ok
}

func (r *Registry) Has(name string) bool {
	_, ok := r.tables[name]
	return ok
}

// ModuleNames returns registered names in registration order.
func (r *Registry) ModuleNames() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

func (r *Registry) Len() int {
	return len(r.tables)
}
