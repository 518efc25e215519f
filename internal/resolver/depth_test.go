package resolver

import (
	"testing"

	"github.com/funvibe/quill/internal/ast"
)

func TestNestedDefinitionsAreNotCollected(t *testing.T) {
	r := New()
	r.Resolve(&ast.Module{ID: 1, Name: "M", Decls: []ast.Decl{
		&ast.OpDef{ID: 2, Name: "outer", Nested: []*ast.OpDef{
			{ID: 3, Name: "inner", Depth: 1, Nested: []*ast.OpDef{
				{ID: 4, Name: "innermost", Depth: 2},
			}},
		}},
	}})
	wantCodes(t, r)
	tbl := table(t, r, "M")
	if tbl.Len() != 1 {
		t.Fatalf("expected only the top-level definition, got %v", tbl.Names())
	}
	if _, ok := tbl.Get("outer"); !ok {
		t.Error("top-level definition missing")
	}
}

// Depth must be re-initialized on every module entry, not rely on the
// previous traversal having unwound cleanly.
func TestDepthResetsAcrossTraversals(t *testing.T) {
	r := New()
	r.Resolve(&ast.Module{ID: 1, Name: "A", Decls: []ast.Decl{
		&ast.OpDef{ID: 2, Name: "a", Nested: []*ast.OpDef{
			{ID: 3, Name: "aInner", Depth: 1},
		}},
	}})

	// Simulate a traversal that left depth dirty.
	r.depth = 3

	r.Resolve(&ast.Module{ID: 4, Name: "B", Decls: []ast.Decl{
		&ast.OpDef{ID: 5, Name: "b"},
	}})
	wantCodes(t, r)
	if _, ok := table(t, r, "B").Get("b"); !ok {
		t.Error("top-level definition must be collected after a fresh module entry")
	}
}

func TestNestedNamesDoNotConflictWithTopLevel(t *testing.T) {
	r := New()
	r.Resolve(&ast.Module{ID: 1, Name: "M", Decls: []ast.Decl{
		&ast.OpDef{ID: 2, Name: "f", Nested: []*ast.OpDef{
			{ID: 3, Name: "g", Depth: 1},
		}},
		&ast.OpDef{ID: 4, Name: "g"},
	}})
	// The nested g is scoped to f's body; the top-level g is free to use
	// the name.
	wantCodes(t, r)
	def, ok := table(t, r, "M").Get("g")
	if !ok || def.ID != 4 {
		t.Errorf("expected top-level g with id 4, got %+v (found=%v)", def, ok)
	}
}
