// Package loader reads module descriptions from YAML and turns them into
// AST values, assigning the stable source identities the resolver keys
// its diagnostics on. It stands between the surface-language parser
// (which lives outside this repository) and the resolution engine.
package loader

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/funvibe/quill/internal/ast"
)

// UnitSpec is the top-level structure of a unit description file.
type UnitSpec struct {
	// Unit is an optional human-readable unit name.
	Unit string `yaml:"unit,omitempty"`

	// Modules are processed in order; any module referenced by an
	// import/export/instance must appear before its first reference.
	Modules []ModuleSpec `yaml:"modules"`
}

// ModuleSpec describes one module.
type ModuleSpec struct {
	Name  string     `yaml:"name"`
	Decls []DeclSpec `yaml:"decls,omitempty"`
}

// DeclSpec describes one declaration. Which fields apply depends on kind:
//
//	kind: var | const | def | type | assume   -> name (+ value, type, defs)
//	kind: import | export                     -> module, def, as
//	kind: instance                            -> module, as, overrides
type DeclSpec struct {
	Kind  string `yaml:"kind"`
	Name  string `yaml:"name,omitempty"`
	Value string `yaml:"value,omitempty"` // bound expression, textual
	Type  string `yaml:"type,omitempty"`  // def annotation

	Module    string         `yaml:"module,omitempty"`
	Def       string         `yaml:"def,omitempty"` // specific name or "*"
	As        string         `yaml:"as,omitempty"`
	Overrides []OverrideSpec `yaml:"overrides,omitempty"`

	// Defs are operator definitions nested inside a def's body.
	Defs []DeclSpec `yaml:"defs,omitempty"`
}

type OverrideSpec struct {
	Param string `yaml:"param"`
	Value string `yaml:"value"`
}

// Loader assigns source identities sequentially across everything it
// loads, so identities are unique per compilation unit.
type Loader struct {
	nextID int
}

func New() *Loader {
	return &Loader{nextID: 1}
}

func (l *Loader) id() int {
	id := l.nextID
	l.nextID++
	return id
}

// LoadFile reads one unit description file.
func (l *Loader) LoadFile(path string) (*UnitSpec, []*ast.Module, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	spec, mods, err := l.Load(data)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	return spec, mods, nil
}

// Load parses a unit description and builds its modules.
func (l *Loader) Load(data []byte) (*UnitSpec, []*ast.Module, error) {
	var spec UnitSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, nil, fmt.Errorf("parsing unit description: %w", err)
	}
	mods := make([]*ast.Module, 0, len(spec.Modules))
	for i, ms := range spec.Modules {
		if ms.Name == "" {
			return nil, nil, fmt.Errorf("module %d: missing name", i)
		}
		m, err := l.buildModule(ms)
		if err != nil {
			return nil, nil, fmt.Errorf("module %q: %w", ms.Name, err)
		}
		mods = append(mods, m)
	}
	return &spec, mods, nil
}

func (l *Loader) buildModule(ms ModuleSpec) (*ast.Module, error) {
	m := &ast.Module{ID: l.id(), Name: ms.Name}
	for i, ds := range ms.Decls {
		decl, err := l.buildDecl(ds, 0)
		if err != nil {
			return nil, fmt.Errorf("decl %d: %w", i, err)
		}
		m.Decls = append(m.Decls, decl)
	}
	return m, nil
}

func (l *Loader) buildDecl(ds DeclSpec, depth int) (ast.Decl, error) {
	switch ds.Kind {
	case "var":
		if err := named(ds); err != nil {
			return nil, err
		}
		return &ast.VarDecl{ID: l.id(), Name: ds.Name}, nil
	case "const":
		if err := named(ds); err != nil {
			return nil, err
		}
		decl := &ast.ConstDecl{ID: l.id(), Name: ds.Name}
		if ds.Value != "" {
			decl.Value = &ast.Expr{ID: l.id(), Text: ds.Value}
		}
		return decl, nil
	case "type":
		if err := named(ds); err != nil {
			return nil, err
		}
		return &ast.TypeDecl{ID: l.id(), Name: ds.Name}, nil
	case "assume":
		if err := named(ds); err != nil {
			return nil, err
		}
		return &ast.AssumeDecl{ID: l.id(), Name: ds.Name}, nil
	case "def":
		return l.buildOpDef(ds, depth)
	case "import":
		if err := composed(ds); err != nil {
			return nil, err
		}
		return &ast.ImportDecl{ID: l.id(), Module: ds.Module, DefName: ds.Def, Qualifier: ds.As}, nil
	case "export":
		if err := composed(ds); err != nil {
			return nil, err
		}
		return &ast.ExportDecl{ID: l.id(), Module: ds.Module, DefName: ds.Def, Qualifier: ds.As}, nil
	case "instance":
		if err := composed(ds); err != nil {
			return nil, err
		}
		decl := &ast.InstanceDecl{ID: l.id(), Module: ds.Module, Qualifier: ds.As}
		for _, ov := range ds.Overrides {
			if ov.Param == "" {
				return nil, fmt.Errorf("instance of %q: override with empty param", ds.Module)
			}
			decl.Overrides = append(decl.Overrides, ast.Override{
				Param: ov.Param,
				Value: ast.Expr{ID: l.id(), Text: ov.Value},
			})
		}
		return decl, nil
	case "":
		return nil, fmt.Errorf("missing declaration kind")
	default:
		return nil, fmt.Errorf("unknown declaration kind %q", ds.Kind)
	}
}

func (l *Loader) buildOpDef(ds DeclSpec, depth int) (*ast.OpDef, error) {
	if err := named(ds); err != nil {
		return nil, err
	}
	def := &ast.OpDef{
		ID:         l.id(),
		Name:       ds.Name,
		Depth:      depth,
		Annotation: ds.Type,
	}
	for i, nested := range ds.Defs {
		if nested.Kind != "def" {
			return nil, fmt.Errorf("def %q: nested decl %d must be a def, got %q", ds.Name, i, nested.Kind)
		}
		child, err := l.buildOpDef(nested, depth+1)
		if err != nil {
			return nil, err
		}
		def.Nested = append(def.Nested, child)
	}
	return def, nil
}

func named(ds DeclSpec) error {
	if ds.Name == "" {
		return fmt.Errorf("%s declaration is missing a name", ds.Kind)
	}
	return nil
}

func composed(ds DeclSpec) error {
	if ds.Module == "" {
		return fmt.Errorf("%s declaration is missing a module reference", ds.Kind)
	}
	return nil
}
