package cache

import (
	"github.com/funvibe/quill/internal/pipeline"
)

// LoadProcessor runs before resolution and restores the unit's registry
// snapshot when the content fingerprint matches. Cache failures degrade
// to a full resolution, never to a failed run.
type LoadProcessor struct {
	Store *Store
}

func (p *LoadProcessor) Process(ctx *pipeline.Context) *pipeline.Context {
	ctx.UnitHash = UnitFingerprint(ctx.Modules)
	if p.Store == nil {
		return ctx
	}
	reg, ok, err := p.Store.GetUnit(ctx.UnitID, ctx.UnitHash)
	if err != nil {
		ctx.AddError(err)
		return ctx
	}
	if ok {
		ctx.CachedRegistry = reg
	}
	return ctx
}

// StoreProcessor runs after resolution and snapshots clean results. Runs
// with diagnostics are not cached: a hit must never hide problems a fresh
// run would report.
type StoreProcessor struct {
	Store *Store
}

func (p *StoreProcessor) Process(ctx *pipeline.Context) *pipeline.Context {
	if p.Store == nil || ctx.Registry == nil || ctx.CachedRegistry != nil {
		return ctx
	}
	if len(ctx.Diagnostics) > 0 || len(ctx.Errors) > 0 {
		return ctx
	}
	if err := p.Store.PutUnit(ctx.UnitID, ctx.UnitHash, ctx.Registry); err != nil {
		ctx.AddError(err)
	}
	return ctx
}
