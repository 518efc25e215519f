// Package report renders resolution results for the terminal.
package report

import (
	"fmt"
	"os"
	"sort"

	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"

	"github.com/funvibe/quill/internal/diagnostics"
	"github.com/funvibe/quill/internal/modules"
)

var (
	ErrorColorFG = pterm.FgRed
	ErrorStyleBG = pterm.NewStyle(pterm.BgRed, pterm.FgWhite)
	InfoColorFG  = pterm.FgLightGreen
	InfoStyleBG  = pterm.NewStyle(pterm.BgLightGreen, pterm.FgBlack)
	DimColorFG   = pterm.FgGray
)

func init() {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		pterm.DisableColor()
	}
}

// PrintErrorMessage prints a tagged error line.
func PrintErrorMessage(tag string, msg string) {
	ErrorStyleBG.Print(tag)
	ErrorColorFG.Println(" " + msg)
}

// PrintInfoMessage prints a tagged informational line.
func PrintInfoMessage(tag, msg string) {
	InfoStyleBG.Print(tag)
	InfoColorFG.Println(" " + msg)
}

// Diagnostics prints every diagnostic in emission order. The source
// identity anchor is shown so editor tooling (and humans reading logs)
// can map a diagnostic back to its declaration.
func Diagnostics(diags []*diagnostics.DiagnosticError) {
	for _, d := range diags {
		ErrorStyleBG.Print(string(d.Code))
		ErrorColorFG.Print(" " + d.Message)
		if d.Reference != 0 {
			DimColorFG.Printf(" (source id %d)", d.Reference)
		}
		fmt.Println()
	}
}

// Registry prints every finalized table, one block per module, entries
// sorted by key for readability.
func Registry(reg *modules.Registry) {
	for _, name := range reg.ModuleNames() {
		table, _ := reg.Lookup(name)
		PrintInfoMessage("module", fmt.Sprintf("%s (%d names)", name, table.Len()))
		entries := table.Entries()
		sort.Slice(entries, func(i, j int) bool { return entries[i].Key < entries[j].Key })
		for _, entry := range entries {
			fmt.Printf("  %-32s %s (id %d)\n", entry.Key, entry.Def.Kind, entry.Def.ID)
		}
	}
}

// Summary prints the closing line of a run.
func Summary(unit string, moduleCount, diagCount int) {
	if diagCount == 0 {
		PrintInfoMessage("resolved", fmt.Sprintf("%s: %d modules, no issues", unit, moduleCount))
		return
	}
	PrintErrorMessage("resolved", fmt.Sprintf("%s: %d modules, %d diagnostics", unit, moduleCount, diagCount))
}
