package symbols

import "sync"

// The reserved vocabulary of the language: prelude types, logical
// connectives, temporal operators and the collection primitives. User
// definitions never shadow these; the prelude entry stays authoritative.
var builtinNames = []string{
	// prelude types
	"Bool", "Int", "Nat", "Str", "Set", "List", "Map", "Rec", "Tup",

	// logical connectives
	"and", "or", "not", "implies", "iff", "ite",

	// equality and ordering
	"eq", "neq", "lt", "lte", "gt", "gte",

	// temporal and action operators
	"always", "eventually", "next", "enabled", "stutter", "unchanged",

	// set and map primitives
	"union", "intersect", "exclude", "contains", "in", "subseteq",
	"keys", "get", "put", "setBy", "mapBy", "powerset", "flatten",
	"allLists", "chooseSome", "oneOf", "isFinite", "size",

	// list primitives
	"append", "concat", "head", "tail", "length", "nth", "indices",
	"replaceAt", "slice", "range", "select", "foldl", "foldr",

	// arithmetic
	"iadd", "isub", "imul", "idiv", "imod", "ipow", "iuminus",

	// structural
	"field", "fieldNames", "with", "item", "tuples", "assign",
	"assert", "fail",
}

var (
	builtinSet  map[string]bool
	builtinOnce sync.Once
)

// IsBuiltin reports whether name belongs to the reserved vocabulary.
// The set is shared across all compilation units.
func IsBuiltin(name string) bool {
	builtinOnce.Do(func() {
		builtinSet = make(map[string]bool, len(builtinNames))
		for _, n := range builtinNames {
			builtinSet[n] = true
		}
	})
	return builtinSet[name]
}
