package symbols

import (
	"github.com/funvibe/quill/internal/config"
)

// CollectStatus is the outcome of one Collect call. The caller turns
// conflicting outcomes into diagnostics; the table itself only applies
// the arbitration policy.
type CollectStatus int

const (
	// CollectInserted: the name was free, the definition is now bound.
	CollectInserted CollectStatus = iota
	// CollectIdentical: the name was already bound to the same source
	// identity. Re-insertion is harmless and idempotent.
	CollectIdentical
	// CollectDiscarded: the discard name "_" is never collected.
	CollectDiscarded
	// CollectConflict: the name is bound to a different source identity.
	// First writer wins, the existing entry is retained.
	CollectConflict
	// CollectBuiltin: the name is reserved by the language. Built-ins are
	// never overridden and have no source identity of their own.
	CollectBuiltin
)

// DefinitionTable maps each visible identifier of one module scope to
// exactly one definition. It is mutable while the owning module is being
// collected and frozen when the module is published.
//
// Insertion order is remembered so derived tables and diagnostics are
// deterministic across runs.
type DefinitionTable struct {
	defs   map[string]Definition
	order  []string
	frozen bool
}

func NewDefinitionTable() *DefinitionTable {
	return &DefinitionTable{defs: make(map[string]Definition)}
}

// Collect binds def under its name. The returned previous definition is
// meaningful only for CollectConflict, where it names the earlier side.
func (t *DefinitionTable) Collect(def Definition) (Definition, CollectStatus) {
	if t.frozen {
		panic("symbols: collect into frozen definition table")
	}
	if def.Name == config.DiscardName {
		return Definition{}, CollectDiscarded
	}
	if IsBuiltin(def.Name) {
		return Definition{}, CollectBuiltin
	}
	prev, exists := t.defs[def.Name]
	if exists {
		if prev.SameIdentity(def) {
			// Same definition arriving through another path. Rebinding an
			// equivalent record keeps the freshest provenance.
			t.defs[def.Name] = def
			return prev, CollectIdentical
		}
		return prev, CollectConflict
	}
	t.defs[def.Name] = def
	t.order = append(t.order, def.Name)
	return Definition{}, CollectInserted
}

// CollectResult pairs a collected definition with its outcome; Prev is
// the earlier side of a CollectConflict.
type CollectResult struct {
	Def    Definition
	Prev   Definition
	Status CollectStatus
}

// CollectMany applies the per-entry policy of Collect to a whole batch.
// The final table content does not depend on batch order (conflicts test
// identity, not order), but results follow input order so diagnostics
// stay deterministic.
func (t *DefinitionTable) CollectMany(defs []Definition) []CollectResult {
	results := make([]CollectResult, 0, len(defs))
	for _, def := range defs {
		prev, status := t.Collect(def)
		results = append(results, CollectResult{Def: def, Prev: prev, Status: status})
	}
	return results
}

// Rebind overwrites an existing entry without conflict arbitration. It is
// the primitive behind instance overrides, where replacing the bound
// identity is the whole point. Rebinding an absent name is a no-op.
func (t *DefinitionTable) Rebind(name string, def Definition) {
	if t.frozen {
		panic("symbols: rebind in frozen definition table")
	}
	if _, ok := t.defs[name]; !ok {
		return
	}
	t.defs[name] = def
}

// Delete removes a binding. Outer scoped passes use it to retract a name
// they temporarily shadowed.
func (t *DefinitionTable) Delete(name string) {
	if t.frozen {
		panic("symbols: delete from frozen definition table")
	}
	if _, ok := t.defs[name]; !ok {
		return
	}
	delete(t.defs, name)
	for i, n := range t.order {
		if n == name {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
}

func (t *DefinitionTable) Get(name string) (Definition, bool) {
	def, ok := t.defs[name]
	return def, ok
}

func (t *DefinitionTable) Len() int {
	return len(t.defs)
}

// Names returns the bound identifiers in insertion order.
func (t *DefinitionTable) Names() []string {
	names := make([]string, len(t.order))
	copy(names, t.order)
	return names
}

// Freeze makes the table read-only. Mutation after freezing is a
// programming error and panics.
func (t *DefinitionTable) Freeze() {
	t.frozen = true
}

func (t *DefinitionTable) Frozen() bool {
	return t.frozen
}

// Clone returns an unfrozen copy. Entries are value copies; mutating the
// clone never affects the original table.
func (t *DefinitionTable) Clone() *DefinitionTable {
	clone := NewDefinitionTable()
	clone.order = make([]string, len(t.order))
	copy(clone.order, t.order)
	for name, def := range t.defs {
		clone.defs[name] = def
	}
	return clone
}

// Entry pairs a table key with its bound definition. The key differs from
// the definition's own name for namespaced copies (key "B::limit", name
// "limit").
type Entry struct {
	Key string     `json:"key"`
	Def Definition `json:"def"`
}

// Entries returns the table contents in insertion order.
func (t *DefinitionTable) Entries() []Entry {
	entries := make([]Entry, 0, len(t.order))
	for _, name := range t.order {
		entries = append(entries, Entry{Key: name, Def: t.defs[name]})
	}
	return entries
}

// TableFromEntries rebuilds a frozen table from a snapshot, bypassing
// collection policy. Used when restoring cached resolution results.
func TableFromEntries(entries []Entry) *DefinitionTable {
	t := NewDefinitionTable()
	for _, e := range entries {
		if _, ok := t.defs[e.Key]; !ok {
			t.order = append(t.order, e.Key)
		}
		t.defs[e.Key] = e.Def
	}
	t.frozen = true
	return t
}

// keyFor returns the key a definition is reachable under inside a derived
// namespace, without touching the table.
func keyFor(namespace, name string) string {
	if namespace == "" {
		return name
	}
	return namespace + config.NamespaceSeparator + name
}
