// Package tui is a read-only listing browser: source lines on the left,
// their encoded words on the right. It never writes anything - there is
// nothing to step or break on, only a completed assembly to inspect.
package tui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/rv32i-tools/rv32asm/service"
)

// TUI is the split-pane listing browser.
type TUI struct {
	App        *tview.Application
	MainLayout *tview.Flex

	SourceView  *tview.TextView
	ListingView *tview.TextView
	StatusView  *tview.TextView

	report *service.AssembleReport
}

// New builds a TUI over an already-completed assembly report.
func New(report *service.AssembleReport) *TUI {
	t := &TUI{
		App:    tview.NewApplication(),
		report: report,
	}
	t.initializeViews()
	t.buildLayout()
	t.populate()
	t.setupKeyBindings()
	return t
}

func (t *TUI) initializeViews() {
	t.SourceView = tview.NewTextView().SetDynamicColors(true).SetScrollable(true).SetWrap(false)
	t.SourceView.SetBorder(true).SetTitle(" Source ")

	t.ListingView = tview.NewTextView().SetDynamicColors(true).SetScrollable(true).SetWrap(false)
	t.ListingView.SetBorder(true).SetTitle(" Encoded ")

	t.StatusView = tview.NewTextView().SetDynamicColors(true)
	t.StatusView.SetBorder(true).SetTitle(" Status ")
}

func (t *TUI) buildLayout() {
	panes := tview.NewFlex().
		AddItem(t.SourceView, 0, 1, false).
		AddItem(t.ListingView, 0, 1, false)

	t.MainLayout = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(panes, 0, 1, false).
		AddItem(t.StatusView, 3, 0, false)
}

func (t *TUI) populate() {
	if !t.report.OK {
		t.StatusView.SetText(fmt.Sprintf("[red]%d diagnostic(s) - nothing assembled[-]", len(t.report.Diagnostics)))
		var sb strings.Builder
		for _, d := range t.report.Diagnostics {
			fmt.Fprintf(&sb, "line %d: %s: %s\n", d.Line, d.Kind, d.Message)
		}
		t.ListingView.SetText(sb.String())
		return
	}

	var source, listing strings.Builder
	for _, inst := range t.report.Instructions {
		label := ""
		if inst.Label != "" {
			label = inst.Label + ": "
		}
		fmt.Fprintf(&source, "%4d  %s%s\n", inst.Line, label, inst.Source)
		fmt.Fprintf(&listing, "%4d  %s\n", inst.Line, inst.Encoded)
	}
	t.SourceView.SetText(source.String())
	t.ListingView.SetText(listing.String())
	t.StatusView.SetText(fmt.Sprintf("%d instruction(s), %d symbol(s)", len(t.report.Instructions), t.report.SymbolCount))
}

func (t *TUI) setupKeyBindings() {
	t.App.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			t.App.Stop()
			return nil
		}
		if event.Rune() == 'q' {
			t.App.Stop()
			return nil
		}
		return event
	})
}

// Run starts the TUI event loop. It blocks until the user quits.
func (t *TUI) Run() error {
	return t.App.SetRoot(t.MainLayout, true).SetFocus(t.MainLayout).Run()
}
