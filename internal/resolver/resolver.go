// Package resolver builds the flat name→definition tables for a
// compilation unit. It is a single deterministic traversal: modules are
// visited in presentation order, declarations in source order, and every
// problem becomes a diagnostic instead of aborting the pass.
package resolver

import (
	"github.com/funvibe/quill/internal/ast"
	"github.com/funvibe/quill/internal/config"
	"github.com/funvibe/quill/internal/diagnostics"
	"github.com/funvibe/quill/internal/modules"
	"github.com/funvibe/quill/internal/symbols"
)

// Resolver collects definitions module by module. The caller must present
// modules in dependency order: a module referenced by import/export/
// instance has to be fully collected already, otherwise the reference
// reports MODULE-NOT-FOUND rather than being deferred.
type Resolver struct {
	registry *modules.Registry
	diags    []*diagnostics.DiagnosticError

	// per-module state, valid between enterModule and exitModule
	table         *symbols.DefinitionTable
	exports       *symbols.DefinitionTable
	currentModule string
	depth         int
}

func New() *Resolver {
	return &Resolver{registry: modules.NewRegistry()}
}

// ResolveUnit collects every module of a unit in order.
func (r *Resolver) ResolveUnit(mods []*ast.Module) {
	for _, m := range mods {
		r.Resolve(m)
	}
}

// Resolve collects a single module and publishes its finalized table.
func (r *Resolver) Resolve(m *ast.Module) {
	r.enterModule(m)
	for _, decl := range m.Decls {
		r.collectDecl(decl)
	}
	r.exitModule(m)
}

// Seed publishes a previously finalized table (typically restored from
// the resolution cache) without re-collecting the module.
func (r *Resolver) Seed(name string, table *symbols.DefinitionTable) {
	r.registry.Register(name, table)
}

func (r *Resolver) enterModule(m *ast.Module) {
	if r.registry.Has(m.Name) {
		r.report(diagnostics.ModuleAlreadyDefined, m.ID,
			"module %q is defined more than once in this unit", m.Name)
	}
	r.table = symbols.NewDefinitionTable()
	r.exports = symbols.NewDefinitionTable()
	r.currentModule = m.Name
	// Depth must not survive a previous traversal; reset it here, not in
	// the constructor.
	r.depth = 0
}

// exitModule publishes the module's table. Exported extras become visible
// to future importers only: they are merged into the published table but
// never into the one the module's own declarations resolved against.
func (r *Resolver) exitModule(m *ast.Module) {
	published := r.table
	if r.exports.Len() > 0 {
		published = r.table.Clone()
		for _, entry := range r.exports.Entries() {
			def := entry.Def
			def.Name = entry.Key
			r.collectInto(published, def)
		}
	}
	published.Freeze()
	if published != r.table {
		r.table.Freeze()
	}
	r.registry.Register(m.Name, published)
	r.table = nil
	r.exports = nil
	r.currentModule = ""
}

// Registry returns the tables finalized so far. A partially populated
// registry is a normal intermediate state for incremental re-resolution.
func (r *Resolver) Registry() *modules.Registry {
	return r.registry
}

// Diagnostics returns every diagnostic accumulated so far, in emission
// order.
func (r *Resolver) Diagnostics() []*diagnostics.DiagnosticError {
	return r.diags
}

// LookupTable flattens the registry into the single artifact downstream
// inference stages consume: every visible identifier of every module,
// qualified by its module name.
func (r *Resolver) LookupTable() map[string]symbols.Definition {
	lookup := make(map[string]symbols.Definition)
	for _, name := range r.registry.ModuleNames() {
		table, _ := r.registry.Lookup(name)
		for _, entry := range table.Entries() {
			lookup[name+config.NamespaceSeparator+entry.Key] = entry.Def
		}
	}
	return lookup
}

func (r *Resolver) report(code diagnostics.Code, ref int, format string, args ...interface{}) {
	r.diags = append(r.diags, diagnostics.New(code, ref, format, args...))
}

// collect applies the conflict policy for the current module's table.
func (r *Resolver) collect(def symbols.Definition) {
	r.collectInto(r.table, def)
}

// collectInto inserts def and turns the table's verdict into diagnostics.
func (r *Resolver) collectInto(table *symbols.DefinitionTable, def symbols.Definition) {
	prev, status := table.Collect(def)
	r.reportCollect(symbols.CollectResult{Def: def, Prev: prev, Status: status})
}

// reportCollect maps an arbitration verdict to diagnostics. A built-in
// shadow reports only the user side (built-ins have no source identity to
// point at); user/user conflicts report both sides so tooling can
// underline each, and the first writer stays bound.
func (r *Resolver) reportCollect(result symbols.CollectResult) {
	switch result.Status {
	case symbols.CollectBuiltin:
		r.report(diagnostics.BuiltinRedefined, result.Def.ID,
			"%q is a built-in name and cannot be redefined", result.Def.Name)
	case symbols.CollectConflict:
		r.report(diagnostics.NameConflict, result.Prev.ID,
			"conflicting definitions for %q", result.Def.Name)
		r.report(diagnostics.NameConflict, result.Def.ID,
			"conflicting definitions for %q", result.Def.Name)
	}
}

// collectDefinitions installs a batch of copied names, keyed by the
// derived table's keys, recording the composition declaration that
// brought them in. Input order drives diagnostic order.
func (r *Resolver) collectDefinitions(copied *symbols.DefinitionTable, from ast.Decl) {
	entries := copied.Entries()
	batch := make([]symbols.Definition, 0, len(entries))
	for _, entry := range entries {
		def := entry.Def
		def.Name = entry.Key
		def.ImportedFrom = from
		batch = append(batch, def)
	}
	for _, result := range r.table.CollectMany(batch) {
		r.reportCollect(result)
	}
}
