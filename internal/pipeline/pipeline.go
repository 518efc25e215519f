// Package pipeline chains the processing stages of one resolution run.
// Stages never short-circuit: every stage runs so a single invocation
// reports everything it can find.
package pipeline

import (
	"github.com/google/uuid"

	"github.com/funvibe/quill/internal/ast"
	"github.com/funvibe/quill/internal/diagnostics"
	"github.com/funvibe/quill/internal/modules"
	"github.com/funvibe/quill/internal/symbols"
)

// Context carries the state of one resolution run across stages.
type Context struct {
	// Inputs
	Paths []string

	// Set by the loading stage
	UnitName string
	UnitID   uuid.UUID
	Modules  []*ast.Module

	// Set by the cache stage on a snapshot hit
	UnitHash       string
	CachedRegistry *modules.Registry

	// Set by the resolution stage
	Registry    *modules.Registry
	Lookup      map[string]symbols.Definition
	Diagnostics []*diagnostics.DiagnosticError

	// Errors are infrastructure failures (unreadable files, malformed
	// descriptions, cache I/O) as opposed to resolution diagnostics.
	Errors []error
}

func NewContext(paths []string) *Context {
	return &Context{Paths: paths}
}

// AddError records an infrastructure failure without stopping the run.
func (c *Context) AddError(err error) {
	if err != nil {
		c.Errors = append(c.Errors, err)
	}
}

// Processor is one stage of the pipeline.
type Processor interface {
	Process(ctx *Context) *Context
}

type Pipeline struct {
	processors []Processor
}

func New(processors ...Processor) *Pipeline {
	return &Pipeline{processors: processors}
}

// Run executes all stages in order. Stages are expected to tolerate
// missing upstream results and simply pass the context through.
func (p *Pipeline) Run(ctx *Context) *Context {
	for _, processor := range p.processors {
		ctx = processor.Process(ctx)
	}
	return ctx
}
