package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/funvibe/quill/internal/cache"
	"github.com/funvibe/quill/internal/config"
	"github.com/funvibe/quill/internal/loader"
	"github.com/funvibe/quill/internal/pipeline"
	"github.com/funvibe/quill/internal/resolver"
	"github.com/funvibe/quill/internal/symbols"
	"github.com/funvibe/quill/pkg/report"
)

func main() {
	var (
		jsonOut   = flag.Bool("json", false, "emit the lookup table and diagnostics as JSON")
		printAll  = flag.Bool("print", false, "print every module's resolved table")
		noCache   = flag.Bool("no-cache", false, "disable the resolution cache")
		cachePath = flag.String("cache", config.DefaultCacheFileName, "resolution cache database path")
	)
	flag.Parse()

	paths := flag.Args()
	if len(paths) == 0 {
		paths = []string{config.ManifestFileName}
	}

	var store *cache.Store
	if !*noCache {
		s, err := cache.Open(*cachePath)
		if err != nil {
			// A broken cache should never block resolution.
			report.PrintErrorMessage("cache", err.Error())
		} else {
			store = s
			defer store.Close()
		}
	}

	p := pipeline.New(
		&loader.Processor{},
		&cache.LoadProcessor{Store: store},
		&resolver.Processor{},
		&cache.StoreProcessor{Store: store},
	)
	ctx := p.Run(pipeline.NewContext(paths))

	for _, err := range ctx.Errors {
		report.PrintErrorMessage("error", err.Error())
	}

	if *jsonOut {
		if err := writeJSON(os.Stdout, ctx); err != nil {
			report.PrintErrorMessage("error", err.Error())
			os.Exit(1)
		}
	} else {
		report.Diagnostics(ctx.Diagnostics)
		if *printAll && ctx.Registry != nil {
			report.Registry(ctx.Registry)
		}
		moduleCount := 0
		if ctx.Registry != nil {
			moduleCount = ctx.Registry.Len()
		}
		report.Summary(ctx.UnitName, moduleCount, len(ctx.Diagnostics))
	}

	if len(ctx.Errors) > 0 || len(ctx.Diagnostics) > 0 {
		os.Exit(1)
	}
}

type jsonResult struct {
	Unit        string                        `json:"unit"`
	UnitID      string                        `json:"unitId"`
	Lookup      map[string]symbols.Definition `json:"lookup"`
	Diagnostics []jsonDiagnostic              `json:"diagnostics"`
}

type jsonDiagnostic struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Reference int    `json:"reference,omitempty"`
}

func writeJSON(w *os.File, ctx *pipeline.Context) error {
	out := jsonResult{
		Unit:   ctx.UnitName,
		UnitID: ctx.UnitID.String(),
		Lookup: ctx.Lookup,
	}
	for _, d := range ctx.Diagnostics {
		out.Diagnostics = append(out.Diagnostics, jsonDiagnostic{
			Code:      string(d.Code),
			Message:   d.Message,
			Reference: d.Reference,
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}
	return nil
}
