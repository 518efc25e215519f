package resolver

import (
	"github.com/funvibe/quill/internal/ast"
	"github.com/funvibe/quill/internal/diagnostics"
	"github.com/funvibe/quill/internal/symbols"
)

// collectInstance copies the instantiated module's definitions with the
// given constants rebound to the override expressions. The copied
// constants resolve to the override's identity, not the original's.
//
// Any malformed override abandons the whole declaration: a half-applied
// instance would be worse than a missing one.
func (r *Resolver) collectInstance(d *ast.InstanceDecl) {
	if d.Module == r.currentModule {
		r.report(diagnostics.SelfReference, d.ID,
			"module %q cannot instantiate itself", d.Module)
		return
	}
	table, ok := r.registry.Lookup(d.Module)
	if !ok {
		r.report(diagnostics.ModuleNotFound, d.ID,
			"module %q not found; modules must be defined before they are instantiated", d.Module)
		return
	}

	overridden := table.Clone()
	for _, override := range d.Overrides {
		def, found := overridden.Get(override.Param)
		if !found {
			r.report(diagnostics.ParamNotFound, override.Value.ID,
				"instantiation parameter %q not found in module %q", override.Param, d.Module)
			return
		}
		if def.Kind != symbols.ConstDef {
			r.report(diagnostics.ParamNotConst, override.Value.ID,
				"%q is a %s, only constants can be overridden", override.Param, def.Kind)
			return
		}
		def.ID = override.Value.ID
		overridden.Rebind(override.Param, def)
	}
	overridden.Freeze()

	// A qualified instance is a module in its own right: nested imports
	// and exports of the qualifier must see the overridden constants.
	if d.Qualifier != "" {
		r.publishAlias(d.Qualifier, overridden, d.ID)
	}

	namespace := d.Qualifier
	if namespace == "" {
		namespace = d.Module
	}
	copied := symbols.CopyNames(overridden, namespace, true)

	// The instantiating module's name is appended to each copy's
	// namespace trail, keeping overridden constants traceable to the
	// instantiation site. Keys are left untouched.
	for _, entry := range copied.Entries() {
		def := entry.Def
		def.Name = entry.Key
		def.Namespaces = append(def.Namespaces, r.currentModule)
		def.ImportedFrom = d
		r.collect(def)
	}
}
