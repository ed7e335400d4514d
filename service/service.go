package service

import (
	"io"
	"log"
	"os"

	"github.com/rv32i-tools/rv32asm/assemble"
	"github.com/rv32i-tools/rv32asm/format"
	"github.com/rv32i-tools/rv32asm/tools"
)

// serviceLog is silent by default, matching the teacher's
// service/debugger_service.go package-level logger. Unlike that logger,
// which toggles on an environment variable, SetVerbose switches this one
// on explicitly, since the CLI exposes a -verbose flag for that purpose.
var serviceLog = log.New(io.Discard, "service: ", log.Ltime|log.Lshortfile)

// SetVerbose switches the service layer's logger between silent and
// os.Stderr. Called once from main before any front end runs.
func SetVerbose(verbose bool) {
	if verbose {
		serviceLog.SetOutput(os.Stderr)
		return
	}
	serviceLog.SetOutput(io.Discard)
}

// Assemble runs the two-pass assembler over source and maps the result
// (or its errors) into the front-end-agnostic report shape the TUI, GUI
// and API render from.
func Assemble(source, filename string, strict bool, style format.Style) *AssembleReport {
	serviceLog.Printf("assemble: %s (strict=%t, style=%v)", filename, strict, style)

	a := assemble.New()
	a.Strict = strict
	a.Style = style

	result, errs := a.Assemble([]byte(source), filename)
	if errs.HasErrors() {
		serviceLog.Printf("assemble: %s failed with %d diagnostic(s)", filename, len(errs.Errors))
		report := &AssembleReport{OK: false}
		for _, e := range errs.Errors {
			report.Diagnostics = append(report.Diagnostics, Diagnostic{
				Line:    e.Pos.Line,
				Kind:    e.Kind.String(),
				Token:   e.Token,
				Message: e.Msg,
			})
		}
		return report
	}

	serviceLog.Printf("assemble: %s produced %d instruction(s), %d symbol(s)", filename, len(result.Instructions), result.SymbolCount)
	report := &AssembleReport{OK: true, SymbolCount: result.SymbolCount}
	for _, inst := range result.Instructions {
		report.Instructions = append(report.Instructions, InstructionLine{
			Line:    inst.Line,
			Label:   inst.Label,
			Source:  inst.Source,
			Encoded: format.Line(inst.Word, style),
		})
	}
	return report
}

// Lint runs the linter over source and returns its findings.
func Lint(source string, opts *tools.LintOptions) []*tools.LintIssue {
	issues := tools.Lint(source, opts)
	serviceLog.Printf("lint: %d issue(s)", len(issues))
	return issues
}

// XRef builds the cross-reference table for source.
func XRef(source string) []*tools.Symbol {
	symbols := tools.XRef(source)
	serviceLog.Printf("xref: %d symbol(s)", len(symbols))
	return symbols
}
