package resolver

import (
	"github.com/funvibe/quill/internal/pipeline"
)

// Processor is the resolution stage. When the cache stage restored a
// registry snapshot the collection pass is skipped entirely; restored
// snapshots only exist for clean runs, so there are no diagnostics to
// replay.
type Processor struct{}

func (p *Processor) Process(ctx *pipeline.Context) *pipeline.Context {
	r := New()
	if ctx.CachedRegistry != nil {
		for _, name := range ctx.CachedRegistry.ModuleNames() {
			table, _ := ctx.CachedRegistry.Lookup(name)
			r.Seed(name, table)
		}
	} else {
		r.ResolveUnit(ctx.Modules)
	}
	ctx.Registry = r.Registry()
	ctx.Lookup = r.LookupTable()
	ctx.Diagnostics = r.Diagnostics()
	return ctx
}
