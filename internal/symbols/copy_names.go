package symbols

import (
	"strings"

	"github.com/funvibe/quill/internal/config"
)

// CopyNames derives a new table from t, re-keying every entry under the
// given namespace. With an empty namespace the copy keeps the original
// keys.
//
// When unhide is true, entries whose original key was unqualified (no
// "::" in it) are additionally bound under their bare name, so both
// "B::limit" and "limit" resolve after an import. Entries that were only
// reachable qualified in the source table stay qualified: a name hidden
// behind a qualifier there does not leak into the bare namespace here.
//
// Imports and instances copy with unhide=true. Exports copy with
// unhide=false unless the whole module is re-exported, keeping the strict
// namespacing discipline for anything not explicitly asked for.
//
// The copy is an independent value: entries keep their source identities
// but mutating the derived table never affects t.
func CopyNames(t *DefinitionTable, namespace string, unhide bool) *DefinitionTable {
	copied := NewDefinitionTable()
	for _, entry := range t.Entries() {
		def := entry.Def
		if namespace != "" {
			def.Namespaces = appendNamespace(def.Namespaces, namespace)
		}
		bind(copied, keyFor(namespace, entry.Key), def)
		if unhide && namespace != "" && !strings.Contains(entry.Key, config.NamespaceSeparator) {
			bind(copied, entry.Key, def)
		}
	}
	return copied
}

// bind inserts directly: source keys are unique, so derived keys cannot
// collide and conflict arbitration does not apply until the copy is
// collected into a module table.
func bind(t *DefinitionTable, key string, def Definition) {
	if _, ok := t.defs[key]; !ok {
		t.order = append(t.order, key)
	}
	t.defs[key] = def
}

func appendNamespace(trail []string, namespace string) []string {
	out := make([]string, 0, len(trail)+1)
	out = append(out, trail...)
	return append(out, namespace)
}
