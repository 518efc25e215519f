package cache

import (
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"github.com/funvibe/quill/internal/ast"
	"github.com/funvibe/quill/internal/modules"
	"github.com/funvibe/quill/internal/symbols"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleRegistry() *modules.Registry {
	table := symbols.NewDefinitionTable()
	table.Collect(symbols.Definition{Kind: symbols.ConstDef, Name: "limit", ID: 1})
	table.Freeze()
	reg := modules.NewRegistry()
	reg.Register("Bank", table)
	return reg
}

func TestPutAndGetUnit(t *testing.T) {
	store := openStore(t)
	unitID := uuid.NewSHA1(uuid.NameSpaceURL, []byte("quill:test"))

	if err := store.PutUnit(unitID, "hash-1", sampleRegistry()); err != nil {
		t.Fatalf("put: %v", err)
	}
	reg, ok, err := store.GetUnit(unitID, "hash-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !ok {
		t.Fatal("expected a snapshot hit")
	}
	table, found := reg.Lookup("Bank")
	if !found {
		t.Fatalf("restored registry misses Bank, has %v", reg.ModuleNames())
	}
	if !table.Frozen() {
		t.Error("restored table must be frozen")
	}
	def, found := table.Get("limit")
	if !found || def.ID != 1 || def.Kind != symbols.ConstDef {
		t.Errorf("restored definition mismatch: %+v (found=%v)", def, found)
	}
}

func TestStaleFingerprintMisses(t *testing.T) {
	store := openStore(t)
	unitID := uuid.NewSHA1(uuid.NameSpaceURL, []byte("quill:test"))
	if err := store.PutUnit(unitID, "hash-1", sampleRegistry()); err != nil {
		t.Fatalf("put: %v", err)
	}
	_, ok, err := store.GetUnit(unitID, "hash-2")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ok {
		t.Error("a changed fingerprint must invalidate the snapshot")
	}
}

func TestUnknownUnitMisses(t *testing.T) {
	store := openStore(t)
	_, ok, err := store.GetUnit(uuid.New(), "hash")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ok {
		t.Error("unknown unit must be a miss")
	}
}

func TestPutUnitReplacesSnapshot(t *testing.T) {
	store := openStore(t)
	unitID := uuid.NewSHA1(uuid.NameSpaceURL, []byte("quill:test"))
	if err := store.PutUnit(unitID, "hash-1", sampleRegistry()); err != nil {
		t.Fatalf("put: %v", err)
	}

	table := symbols.NewDefinitionTable()
	table.Collect(symbols.Definition{Kind: symbols.VarDef, Name: "balance", ID: 2})
	table.Freeze()
	reg := modules.NewRegistry()
	reg.Register("Ledger", table)
	if err := store.PutUnit(unitID, "hash-2", reg); err != nil {
		t.Fatalf("second put: %v", err)
	}

	restored, ok, err := store.GetUnit(unitID, "hash-2")
	if err != nil || !ok {
		t.Fatalf("get after replace: ok=%v err=%v", ok, err)
	}
	if restored.Has("Bank") {
		t.Error("old snapshot rows must be gone")
	}
	if !restored.Has("Ledger") {
		t.Error("new snapshot rows missing")
	}
}

func moduleFixture(value string) []*ast.Module {
	return []*ast.Module{
		{ID: 1, Name: "Bank", Decls: []ast.Decl{
			&ast.ConstDecl{ID: 2, Name: "limit", Value: &ast.Expr{ID: 3, Text: value}},
		}},
		{ID: 4, Name: "Client", Decls: []ast.Decl{
			&ast.ImportDecl{ID: 5, Module: "Bank", DefName: ast.ImportAll},
		}},
	}
}

func TestUnitFingerprintStability(t *testing.T) {
	a := UnitFingerprint(moduleFixture("1000"))
	b := UnitFingerprint(moduleFixture("1000"))
	if a != b {
		t.Error("identical units must fingerprint identically")
	}
}

func TestUnitFingerprintChangesWithContent(t *testing.T) {
	a := UnitFingerprint(moduleFixture("1000"))
	b := UnitFingerprint(moduleFixture("2000"))
	if a == b {
		t.Error("changed content must change the fingerprint")
	}
}

func TestDependencyChangeInvalidatesDependents(t *testing.T) {
	before := Fingerprints(moduleFixture("1000"))
	after := Fingerprints(moduleFixture("2000"))
	if before["Client"] == after["Client"] {
		t.Error("a dependency change must ripple into dependents")
	}
}
