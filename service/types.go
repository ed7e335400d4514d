// Package service is the shared business-logic layer that the TUI listing
// browser, the minimal GUI, and the HTTP API call through, so none of them
// duplicates assembly, linting, or cross-referencing logic (spec.md
// section 6's external-interfaces split). The CLI's one-shot file assembly
// and its -lint/-xref output call the assemble and tools packages directly.
package service

// InstructionLine is one assembled instruction, ready for display by any
// front end: its source line, the word it encoded to, and (if present)
// the label bound to it.
type InstructionLine struct {
	Line    int    `json:"line"`
	Label   string `json:"label,omitempty"`
	Source  string `json:"source"`
	Encoded string `json:"encoded"`
}

// Diagnostic is one assembler error surfaced to a front end.
type Diagnostic struct {
	Line    int    `json:"line"`
	Kind    string `json:"kind"`
	Token   string `json:"token,omitempty"`
	Message string `json:"message"`
}

// AssembleReport is the outcome of one assembly run: either a complete
// listing, or a set of diagnostics explaining why it failed.
type AssembleReport struct {
	OK           bool              `json:"ok"`
	Instructions []InstructionLine `json:"instructions,omitempty"`
	SymbolCount  int               `json:"symbol_count,omitempty"`
	Diagnostics  []Diagnostic      `json:"diagnostics,omitempty"`
}
