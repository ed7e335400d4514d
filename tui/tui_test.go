package tui

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/rv32i-tools/rv32asm/service"
)

func TestNewPopulatesViewsOnSuccess(t *testing.T) {
	report := &service.AssembleReport{
		OK:          true,
		SymbolCount: 1,
		Instructions: []service.InstructionLine{
			{Line: 1, Label: "loop", Source: "addi x1, x1, 1", Encoded: "0x00108093"},
			{Line: 2, Source: "bne x1, x2, loop", Encoded: "0xFE209EE3"},
		},
	}

	tui := New(report)

	if tui.App == nil {
		t.Fatal("App is nil")
	}
	if tui.MainLayout == nil {
		t.Fatal("MainLayout is nil")
	}

	source := tui.SourceView.GetText(true)
	if !strings.Contains(source, "loop:") {
		t.Errorf("SourceView = %q, want it to contain the label", source)
	}
	if !strings.Contains(source, "addi x1, x1, 1") {
		t.Errorf("SourceView = %q, want it to contain the source line", source)
	}

	listing := tui.ListingView.GetText(true)
	if !strings.Contains(listing, "0x00108093") {
		t.Errorf("ListingView = %q, want it to contain the encoded word", listing)
	}
	if !strings.Contains(listing, "0xFE209EE3") {
		t.Errorf("ListingView = %q, want it to contain both encoded words", listing)
	}

	status := tui.StatusView.GetText(true)
	if !strings.Contains(status, "2 instruction") {
		t.Errorf("StatusView = %q, want an instruction count", status)
	}
	if !strings.Contains(status, "1 symbol") {
		t.Errorf("StatusView = %q, want a symbol count", status)
	}
}

func TestNewPopulatesViewsOnFailure(t *testing.T) {
	report := &service.AssembleReport{
		OK: false,
		Diagnostics: []service.Diagnostic{
			{Line: 3, Kind: "syntax error", Message: "unexpected token"},
		},
	}

	tui := New(report)

	status := tui.StatusView.GetText(true)
	if !strings.Contains(status, "1 diagnostic") {
		t.Errorf("StatusView = %q, want a diagnostic count", status)
	}

	listing := tui.ListingView.GetText(true)
	if !strings.Contains(listing, "line 3") || !strings.Contains(listing, "unexpected token") {
		t.Errorf("ListingView = %q, want the diagnostic text", listing)
	}

	source := tui.SourceView.GetText(true)
	if source != "" {
		t.Errorf("SourceView = %q, want empty on failure", source)
	}
}

func TestSetupKeyBindingsStopsOnQ(t *testing.T) {
	report := &service.AssembleReport{OK: true}
	tui := New(report)

	capture := tui.App.GetInputCapture()
	if capture == nil {
		t.Fatal("expected an input capture to be installed")
	}
	if got := capture(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)); got != nil {
		t.Errorf("capture('q') = %v, want nil (key consumed by Stop)", got)
	}
}
