package resolver

import (
	"github.com/funvibe/quill/internal/ast"
	"github.com/funvibe/quill/internal/diagnostics"
	"github.com/funvibe/quill/internal/symbols"
)

// collectImport makes another module's definitions visible inside the
// current one. Copies carry both the qualified key and, for names that
// were unqualified in the source module, the bare name.
func (r *Resolver) collectImport(d *ast.ImportDecl) {
	if d.Module == r.currentModule {
		r.report(diagnostics.SelfReference, d.ID,
			"module %q cannot import itself", d.Module)
		return
	}
	table, ok := r.registry.Lookup(d.Module)
	if !ok {
		r.report(diagnostics.ModuleNotFound, d.ID,
			"module %q not found; modules must be defined before they are imported", d.Module)
		return
	}

	// A whole-module qualifier doubles as a module alias: later
	// declarations can import/export/instance the qualifier itself.
	if d.Qualifier != "" && !singleName(d.DefName) {
		r.publishAlias(d.Qualifier, table, d.ID)
	}

	importable := symbols.CopyNames(table, namespaceFor(d.Qualifier, d.Module, d.DefName), true)

	if singleName(d.DefName) {
		def, found := importable.Get(d.DefName)
		if !found {
			r.report(diagnostics.NameNotFound, d.ID,
				"name %q not found in module %q", d.DefName, d.Module)
			return
		}
		def.Name = targetName(d.Qualifier, d.DefName)
		def.ImportedFrom = d
		r.collect(def)
		return
	}

	r.collectDefinitions(importable, d)
}

// collectExport re-exposes another module's definitions to future
// importers of the current module. Exports never change what the current
// module's own declarations see: they accumulate on the side and are
// merged into the published table at module exit.
//
// Unlike imports, exports keep previously-qualified-only names hidden
// unless the whole module is re-exported.
func (r *Resolver) collectExport(d *ast.ExportDecl) {
	if d.Module == r.currentModule {
		r.report(diagnostics.SelfReference, d.ID,
			"module %q cannot export itself", d.Module)
		return
	}
	table, ok := r.registry.Lookup(d.Module)
	if !ok {
		r.report(diagnostics.ModuleNotFound, d.ID,
			"module %q not found; modules must be defined before they are exported", d.Module)
		return
	}

	if d.Qualifier != "" && !singleName(d.DefName) {
		r.publishAlias(d.Qualifier, table, d.ID)
	}

	unhide := d.DefName == ast.ImportAll
	exportable := symbols.CopyNames(table, namespaceFor(d.Qualifier, d.Module, d.DefName), unhide)

	if singleName(d.DefName) {
		def, found := exportable.Get(d.DefName)
		if !found {
			r.report(diagnostics.NameNotFound, d.ID,
				"name %q not found in module %q", d.DefName, d.Module)
			return
		}
		def.Name = targetName(d.Qualifier, d.DefName)
		def.ImportedFrom = d
		r.collectInto(r.exports, def)
		return
	}

	for _, entry := range exportable.Entries() {
		def := entry.Def
		def.Name = entry.Key
		def.ImportedFrom = d
		r.collectInto(r.exports, def)
	}
}

// publishAlias registers a derived table under a synthetic module name.
// Qualifiers share the unit-wide module namespace, so a qualifier that
// collides with an existing module (or another qualifier) is reported.
// Re-publishing the very same table under the same name is a no-op.
func (r *Resolver) publishAlias(name string, table *symbols.DefinitionTable, ref int) {
	if existing, ok := r.registry.Lookup(name); ok {
		if existing != table {
			r.report(diagnostics.ModuleAlreadyDefined, ref,
				"module name %q is already in use", name)
		}
		return
	}
	r.registry.Register(name, table)
}
