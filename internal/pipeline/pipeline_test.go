package pipeline_test

import (
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/tools/txtar"

	"github.com/funvibe/quill/internal/cache"
	"github.com/funvibe/quill/internal/config"
	"github.com/funvibe/quill/internal/diagnostics"
	"github.com/funvibe/quill/internal/loader"
	"github.com/funvibe/quill/internal/pipeline"
	"github.com/funvibe/quill/internal/resolver"
)

// Fixtures are txtar archives materialized into a temp dir; each file is
// one unit description passed to the loader in order.
const bankFixture = `
-- bank.yaml --
unit: banking
modules:
  - name: Bank
    decls:
      - kind: const
        name: limit
        value: "1000"
      - kind: var
        name: balance
-- client.yaml --
modules:
  - name: Client
    decls:
      - kind: import
        module: Bank
        def: "*"
        as: B
      - kind: instance
        module: Bank
        as: B2
        overrides:
          - param: limit
            value: "100"
`

const brokenFixture = `
-- broken.yaml --
unit: broken
modules:
  - name: M
    decls:
      - kind: import
        module: Ghost
`

func materialize(t *testing.T, fixture string) []string {
	t.Helper()
	dir := t.TempDir()
	archive := txtar.Parse([]byte(fixture))
	paths := make([]string, 0, len(archive.Files))
	for _, file := range archive.Files {
		path := filepath.Join(dir, file.Name)
		if err := os.WriteFile(path, file.Data, 0o644); err != nil {
			t.Fatalf("writing fixture %s: %v", file.Name, err)
		}
		paths = append(paths, path)
	}
	return paths
}

func run(t *testing.T, fixture string, store *cache.Store) *pipeline.Context {
	t.Helper()
	p := pipeline.New(
		&loader.Processor{},
		&cache.LoadProcessor{Store: store},
		&resolver.Processor{},
		&cache.StoreProcessor{Store: store},
	)
	return p.Run(pipeline.NewContext(materialize(t, fixture)))
}

func TestEndToEndResolution(t *testing.T) {
	ctx := run(t, bankFixture, nil)
	if len(ctx.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", ctx.Errors)
	}
	if ctx.UnitName != "banking" {
		t.Errorf("expected unit banking, got %q", ctx.UnitName)
	}

	def, ok := ctx.Lookup["Client"+config.NamespaceSeparator+"B::limit"]
	if !ok {
		t.Fatal("expected Client::B::limit in the lookup table")
	}
	overridden, ok := ctx.Lookup["Client"+config.NamespaceSeparator+"B2::limit"]
	if !ok {
		t.Fatal("expected Client::B2::limit in the lookup table")
	}
	if def.ID == overridden.ID {
		t.Error("instance override must rebind the constant to a new identity")
	}
	// The imported bare name and the instance's unhidden copy collide.
	for _, d := range ctx.Diagnostics {
		if d.Code != diagnostics.NameConflict {
			t.Errorf("unexpected diagnostic: %v", d)
		}
	}
}

func TestEndToEndDiagnostics(t *testing.T) {
	ctx := run(t, brokenFixture, nil)
	if len(ctx.Diagnostics) != 1 || ctx.Diagnostics[0].Code != diagnostics.ModuleNotFound {
		t.Fatalf("expected one MODULE-NOT-FOUND, got %v", ctx.Diagnostics)
	}
}

func TestCachedRerunSkipsCollection(t *testing.T) {
	store, err := cache.Open(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatalf("opening cache: %v", err)
	}
	defer store.Close()

	const fixture = `
-- unit.yaml --
unit: cached
modules:
  - name: A
    decls:
      - kind: const
        name: x
`
	first := run(t, fixture, store)
	if len(first.Errors) != 0 || len(first.Diagnostics) != 0 {
		t.Fatalf("first run not clean: %v %v", first.Errors, first.Diagnostics)
	}
	if first.CachedRegistry != nil {
		t.Fatal("first run must not hit the cache")
	}

	second := run(t, fixture, store)
	if second.CachedRegistry == nil {
		t.Fatal("second run must hit the cache")
	}
	if _, ok := second.Lookup["A"+config.NamespaceSeparator+"x"]; !ok {
		t.Error("restored run must produce the same lookup table")
	}
}

func TestDiagnosedRunsAreNotCached(t *testing.T) {
	store, err := cache.Open(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatalf("opening cache: %v", err)
	}
	defer store.Close()

	first := run(t, brokenFixture, store)
	if len(first.Diagnostics) == 0 {
		t.Fatal("fixture must produce diagnostics")
	}
	second := run(t, brokenFixture, store)
	if second.CachedRegistry != nil {
		t.Error("a run with diagnostics must never be served from cache")
	}
	if len(second.Diagnostics) != len(first.Diagnostics) {
		t.Error("re-runs must re-report diagnostics")
	}
}
