package symbols

import "github.com/funvibe/quill/internal/ast"

type DefKind int

const (
	VarDef DefKind = iota
	ConstDef
	OpDefKind
	TypeDef
	AssumeDef
)

var defKindNames = map[DefKind]string{
	VarDef:    "var",
	ConstDef:  "const",
	OpDefKind: "def",
	TypeDef:   "type",
	AssumeDef: "assume",
}

func (k DefKind) String() string {
	if name, ok := defKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Definition is one named thing visible in a module scope. Definitions are
// value data: collection only ever produces new records (a namespaced copy,
// an overridden constant) and never mutates one in place, so a copy held by
// another table can never be affected through this one.
type Definition struct {
	Kind DefKind `json:"kind"`
	Name string  `json:"name"`

	// ID is the source identity assigned at load time. It is stable across
	// copies and is the unit of "sameness" for conflict detection: two
	// records with equal IDs are the same definition re-entering a table.
	ID int `json:"id"`

	// Depth is the nesting level for operator definitions. Only depth-0
	// definitions are collected here; nested ones belong to the scoped
	// resolution pass that runs over operator bodies.
	Depth int `json:"depth,omitempty"`

	// Namespaces records the qualifier trail attached when the definition
	// was copied across a module boundary, outermost first. For instances
	// the instantiating module's name is appended so overridden constants
	// stay traceable to their instantiation site.
	Namespaces []string `json:"namespaces,omitempty"`

	// ImportedFrom is the import/export/instance declaration that brought
	// this definition into the current scope, if any.
	ImportedFrom ast.Decl `json:"-"`
}

// SameIdentity reports whether two records refer to the same source
// definition. This is identity equality, not structural equality:
// re-importing one definition through two paths must not conflict.
func (d Definition) SameIdentity(other Definition) bool {
	return d.ID == other.ID
}
