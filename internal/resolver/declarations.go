package resolver

import (
	"github.com/funvibe/quill/internal/ast"
	"github.com/funvibe/quill/internal/symbols"
)

// collectDecl dispatches on the declaration kind. The set of kinds is
// closed, so this switch is exhaustive; a missing arm is a bug, not a
// fallthrough.
func (r *Resolver) collectDecl(decl ast.Decl) {
	switch d := decl.(type) {
	case *ast.VarDecl:
		r.collect(symbols.Definition{Kind: symbols.VarDef, Name: d.Name, ID: d.ID})
	case *ast.ConstDecl:
		r.collect(symbols.Definition{Kind: symbols.ConstDef, Name: d.Name, ID: d.ID})
	case *ast.TypeDecl:
		r.collect(symbols.Definition{Kind: symbols.TypeDef, Name: d.Name, ID: d.ID})
	case *ast.AssumeDecl:
		r.collect(symbols.Definition{Kind: symbols.AssumeDef, Name: d.Name, ID: d.ID})
	case *ast.OpDef:
		r.collectOpDef(d)
	case *ast.ImportDecl:
		r.collectImport(d)
	case *ast.ExportDecl:
		r.collectExport(d)
	case *ast.InstanceDecl:
		r.collectInstance(d)
	}
}

// collectOpDef collects top-level operator definitions only. Nested
// definitions are visible solely inside their enclosing operator and are
// handled by the scoped resolution pass over operator bodies.
//
// The declared type annotation is not carried into the table; inference
// re-derives it from the definition site.
func (r *Resolver) collectOpDef(d *ast.OpDef) {
	if r.depth == 0 {
		r.collect(symbols.Definition{
			Kind:  symbols.OpDefKind,
			Name:  d.Name,
			ID:    d.ID,
			Depth: 0,
		})
	}
	r.depth++
	for _, nested := range d.Nested {
		r.collectOpDef(nested)
	}
	r.depth--
}
