// Package gui is a minimal fyne front end: a source/output file picker
// pair, a hex/binary radio choice, and an "Assemble" button, mirroring the
// CLI's own <input> <output> <-h|-b> contract. It owns no execution
// state - there is nothing to run, only a listing to display.
package gui

import (
	"fmt"
	"os"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/rv32i-tools/rv32asm/assemble"
	"github.com/rv32i-tools/rv32asm/format"
	"github.com/rv32i-tools/rv32asm/service"
)

// GUI is the application window and its widgets.
type GUI struct {
	App    fyne.App
	Window fyne.Window

	SourcePathLabel *widget.Label
	OutputPathLabel *widget.Label
	StyleChoice     *widget.RadioGroup
	OutputView      *widget.TextGrid
	StatusLabel     *widget.Label

	sourcePath string
	outputPath string

	Strict bool
	Style  format.Style
}

// New creates the window and wires up the file pickers and Assemble button.
func New() *GUI {
	myApp := app.New()
	myWindow := myApp.NewWindow("rv32asm")

	g := &GUI{
		App:    myApp,
		Window: myWindow,
		Strict: true,
		Style:  format.Hex,
	}

	g.initializeViews()
	g.buildLayout()

	myWindow.Resize(fyne.NewSize(900, 600))
	return g
}

func (g *GUI) initializeViews() {
	g.SourcePathLabel = widget.NewLabel("(no source file selected)")
	g.OutputPathLabel = widget.NewLabel("(no output file selected)")

	g.StyleChoice = widget.NewRadioGroup([]string{"hex", "binary"}, func(choice string) {
		if choice == "binary" {
			g.Style = format.Binary
		} else {
			g.Style = format.Hex
		}
	})
	g.StyleChoice.Horizontal = true
	g.StyleChoice.SetSelected("hex")

	g.OutputView = widget.NewTextGrid()
	g.OutputView.SetText("")

	g.StatusLabel = widget.NewLabel("Ready")
}

func (g *GUI) buildLayout() {
	chooseSourceBtn := widget.NewButton("Choose source...", g.chooseSource)
	chooseOutputBtn := widget.NewButton("Choose output...", g.chooseOutput)
	assembleBtn := widget.NewButton("Assemble", g.onAssemble)

	controls := container.NewVBox(
		container.NewBorder(nil, nil, nil, chooseSourceBtn, g.SourcePathLabel),
		container.NewBorder(nil, nil, nil, chooseOutputBtn, g.OutputPathLabel),
		g.StyleChoice,
		assembleBtn,
	)

	right := container.NewScroll(g.OutputView)

	split := container.NewHSplit(controls, right)
	split.Offset = 0.35

	root := container.NewBorder(nil, g.StatusLabel, nil, nil, split)
	g.Window.SetContent(root)
}

func (g *GUI) chooseSource() {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()
		g.sourcePath = reader.URI().Path()
		g.SourcePathLabel.SetText(g.sourcePath)
	}, g.Window)
	d.Show()
}

func (g *GUI) chooseOutput() {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		defer writer.Close()
		g.outputPath = writer.URI().Path()
		g.OutputPathLabel.SetText(g.outputPath)
	}, g.Window)
	d.Show()
}

func (g *GUI) onAssemble() {
	if g.sourcePath == "" {
		g.StatusLabel.SetText("choose a source file first")
		return
	}

	src, err := os.ReadFile(g.sourcePath)
	if err != nil {
		dialog.ShowError(err, g.Window)
		return
	}

	report := service.Assemble(string(src), g.sourcePath, g.Strict, g.Style)
	if !report.OK {
		var sb strings.Builder
		for _, d := range report.Diagnostics {
			fmt.Fprintf(&sb, "line %d: %s: %s\n", d.Line, d.Kind, d.Message)
		}
		g.OutputView.SetText(sb.String())
		g.StatusLabel.SetText(fmt.Sprintf("%d error(s)", len(report.Diagnostics)))
		return
	}

	var sb strings.Builder
	for _, inst := range report.Instructions {
		fmt.Fprintf(&sb, "%4d  %s\n", inst.Line, inst.Encoded)
	}
	g.OutputView.SetText(sb.String())

	if g.outputPath != "" {
		a := assemble.New()
		a.Strict = g.Strict
		a.Style = g.Style
		if _, errs := a.AssembleFile(g.sourcePath, g.outputPath); errs.HasErrors() {
			dialog.ShowError(fmt.Errorf("writing output: %s", errs.Error()), g.Window)
			return
		}
	}

	g.StatusLabel.SetText(fmt.Sprintf("%d instruction(s), %d symbol(s)", len(report.Instructions), report.SymbolCount))
}

// Run shows the window and blocks until it is closed.
func (g *GUI) Run() {
	g.Window.ShowAndRun()
}
