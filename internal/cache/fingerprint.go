package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"

	"github.com/funvibe/quill/internal/ast"
)

// UnitFingerprint folds every module's content hash into one unit-level
// fingerprint guarding the cached snapshot.
func UnitFingerprint(mods []*ast.Module) string {
	hashes := Fingerprints(mods)
	h := sha256.New()
	for _, m := range mods {
		fmt.Fprintf(h, "%s %s\n", m.Name, hashes[m.Name])
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Fingerprints computes a content hash per module. A module's hash folds
// in the hashes of the modules it references, so a change anywhere in the
// dependency chain invalidates every dependent module. Modules must be in
// dependency order, which they already are for resolution.
func Fingerprints(mods []*ast.Module) map[string]string {
	hashes := make(map[string]string, len(mods))
	for _, m := range mods {
		hashes[m.Name] = fingerprint(m, hashes)
	}
	return hashes
}

func fingerprint(m *ast.Module, deps map[string]string) string {
	h := sha256.New()
	fmt.Fprintf(h, "module %s\n", m.Name)
	for _, decl := range m.Decls {
		writeDecl(h, decl)
		if isComposition(decl) {
			if dep, ok := deps[decl.DeclName()]; ok {
				fmt.Fprintf(h, "dep %s %s\n", decl.DeclName(), dep)
			} else {
				fmt.Fprintf(h, "dep %s absent\n", decl.DeclName())
			}
		}
	}
	return hex.EncodeToString(h.Sum(nil))
}

func isComposition(decl ast.Decl) bool {
	switch decl.(type) {
	case *ast.ImportDecl, *ast.ExportDecl, *ast.InstanceDecl:
		return true
	}
	return false
}

func writeDecl(w io.Writer, decl ast.Decl) {
	switch d := decl.(type) {
	case *ast.VarDecl:
		fmt.Fprintf(w, "var %s\n", d.Name)
	case *ast.ConstDecl:
		value := ""
		if d.Value != nil {
			value = d.Value.Text
		}
		fmt.Fprintf(w, "const %s = %s\n", d.Name, value)
	case *ast.TypeDecl:
		fmt.Fprintf(w, "type %s\n", d.Name)
	case *ast.AssumeDecl:
		fmt.Fprintf(w, "assume %s\n", d.Name)
	case *ast.OpDef:
		writeOpDef(w, d)
	case *ast.ImportDecl:
		fmt.Fprintf(w, "import %s.%s as %s\n", d.Module, d.DefName, d.Qualifier)
	case *ast.ExportDecl:
		fmt.Fprintf(w, "export %s.%s as %s\n", d.Module, d.DefName, d.Qualifier)
	case *ast.InstanceDecl:
		fmt.Fprintf(w, "instance %s as %s\n", d.Module, d.Qualifier)
		for _, ov := range d.Overrides {
			fmt.Fprintf(w, "override %s = %s\n", ov.Param, ov.Value.Text)
		}
	}
}

func writeOpDef(w io.Writer, d *ast.OpDef) {
	fmt.Fprintf(w, "def %s : %s @%d\n", d.Name, d.Annotation, d.Depth)
	for _, nested := range d.Nested {
		writeOpDef(w, nested)
	}
}
