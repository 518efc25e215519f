package ast

// Decl is the base interface for all module-level declarations.
// The set of declaration kinds is closed: resolution dispatches over it
// with an exhaustive type switch.
type Decl interface {
	declNode()

	// DeclName returns the identifier the declaration introduces, or the
	// referenced module name for import/export/instance declarations.
	DeclName() string

	// Identity returns the stable source identity assigned when the
	// declaration was loaded. Identities start at 1; 0 means "no source".
	Identity() int
}

// Module is a named, top-level container of declarations.
type Module struct {
	ID    int
	Name  string
	Decls []Decl
}

// Expr is a reference to a bound expression. Resolution never evaluates
// expressions; it only tracks their identities, so the textual form is
// carried for display purposes only.
type Expr struct {
	ID   int
	Text string
}

// VarDecl declares a state variable.
// var balance
type VarDecl struct {
	ID   int
	Name string
}

func (d *VarDecl) declNode()        {}
func (d *VarDecl) DeclName() string { return d.Name }
func (d *VarDecl) Identity() int    { return d.ID }

// ConstDecl declares a constant, optionally bound to an expression.
// const limit = 100
type ConstDecl struct {
	ID    int
	Name  string
	Value *Expr
}

func (d *ConstDecl) declNode()        {}
func (d *ConstDecl) DeclName() string { return d.Name }
func (d *ConstDecl) Identity() int    { return d.ID }

// OpDef declares an operator definition. Depth is the nesting level
// assigned at load time: 0 for top-level definitions, >0 for operators
// defined inside another operator's body (carried in Nested).
// def spend(amount) = balance - amount
type OpDef struct {
	ID         int
	Name       string
	Depth      int
	Annotation string // declared type annotation, dropped at collection
	Nested     []*OpDef
}

func (d *OpDef) declNode()        {}
func (d *OpDef) DeclName() string { return d.Name }
func (d *OpDef) Identity() int    { return d.ID }

// TypeDecl declares a type alias.
// type Amount = Int
type TypeDecl struct {
	ID   int
	Name string
}

func (d *TypeDecl) declNode()        {}
func (d *TypeDecl) DeclName() string { return d.Name }
func (d *TypeDecl) Identity() int    { return d.ID }

// AssumeDecl declares a named assumption over constants.
// assume positiveLimit = limit > 0
type AssumeDecl struct {
	ID   int
	Name string
}

func (d *AssumeDecl) declNode()        {}
func (d *AssumeDecl) DeclName() string { return d.Name }
func (d *AssumeDecl) Identity() int    { return d.ID }

// ImportAll is the DefName value for whole-module imports and exports.
const ImportAll = "*"

// ImportDecl brings another module's definitions into scope.
//
//	import Bank            -> Bank::x (and x, unhidden)
//	import Bank.*          -> same, qualified under Bank
//	import Bank as B       -> B::x (and x, unhidden)
//	import Bank.limit as l -> l
type ImportDecl struct {
	ID        int
	Module    string
	DefName   string // specific definition, ImportAll, or "" for the whole module
	Qualifier string
}

func (d *ImportDecl) declNode()        {}
func (d *ImportDecl) DeclName() string { return d.Module }
func (d *ImportDecl) Identity() int    { return d.ID }

// ExportDecl re-exposes another module's definitions to importers of the
// current module, without making them visible inside it.
type ExportDecl struct {
	ID        int
	Module    string
	DefName   string
	Qualifier string
}

func (d *ExportDecl) declNode()        {}
func (d *ExportDecl) DeclName() string { return d.Module }
func (d *ExportDecl) Identity() int    { return d.ID }

// Override replaces a constant of the instantiated module with a
// caller-supplied expression.
type Override struct {
	Param string
	Value Expr
}

// InstanceDecl instantiates a module with constant overrides.
// instance Bank as B2(limit = 100)
type InstanceDecl struct {
	ID        int
	Module    string
	Qualifier string
	Overrides []Override
}

func (d *InstanceDecl) declNode()        {}
func (d *InstanceDecl) DeclName() string { return d.Module }
func (d *InstanceDecl) Identity() int    { return d.ID }
