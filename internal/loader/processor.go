package loader

import (
	"github.com/google/uuid"

	"github.com/funvibe/quill/internal/pipeline"
)

// Processor is the loading stage: it reads every unit description file
// in order and accumulates their modules into one compilation unit.
type Processor struct{}

func (p *Processor) Process(ctx *pipeline.Context) *pipeline.Context {
	l := New()
	for _, path := range ctx.Paths {
		spec, mods, err := l.LoadFile(path)
		if err != nil {
			ctx.AddError(err)
			continue
		}
		if ctx.UnitName == "" {
			ctx.UnitName = spec.Unit
		}
		ctx.Modules = append(ctx.Modules, mods...)
	}
	if ctx.UnitName == "" && len(ctx.Paths) > 0 {
		ctx.UnitName = ctx.Paths[0]
	}
	// Unit ids are derived, not random, so cache rows stay addressable
	// across runs.
	ctx.UnitID = uuid.NewSHA1(uuid.NameSpaceURL, []byte("quill:unit:"+ctx.UnitName))
	return ctx
}
