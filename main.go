package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rv32i-tools/rv32asm/api"
	"github.com/rv32i-tools/rv32asm/assemble"
	"github.com/rv32i-tools/rv32asm/config"
	"github.com/rv32i-tools/rv32asm/format"
	"github.com/rv32i-tools/rv32asm/gui"
	"github.com/rv32i-tools/rv32asm/service"
	"github.com/rv32i-tools/rv32asm/tools"
	"github.com/rv32i-tools/rv32asm/tui"
)

// cliLog carries main's own diagnostic output, separate from the
// standard logger api/server.go uses unconditionally - gating this one
// must not silence the API server's always-on startup/request logging.
var cliLog = log.New(io.Discard, "", log.Ltime|log.Lshortfile)

func main() {
	os.Exit(run(os.Args[1:]))
}

// run implements the CLI. It is split out from main so tests can drive it
// without touching os.Exit.
func run(args []string) int {
	fs := flag.NewFlagSet("assembler", flag.ContinueOnError)
	fs.Usage = func() { printUsage(fs) }

	var (
		tuiMode    = fs.Bool("tui", false, "open the assembled listing in the TUI browser instead of writing output")
		guiMode    = fs.Bool("gui", false, "open the minimal GUI instead of assembling from the command line")
		apiServe   = fs.Bool("serve", false, "run the HTTP API server instead of assembling a file")
		apiPort    = fs.Int("port", 0, "API server port (used with -serve; overrides config)")
		lintFlag   = fs.Bool("lint", false, "print lint warnings to stderr alongside normal assembly")
		lintOnly   = fs.Bool("lint-only", false, "print lint warnings and skip assembling entirely")
		xrefFlag   = fs.Bool("xref", false, "print a cross-reference report to stdout after assembling")
		configPath = fs.String("config", "", "path to a TOML config file (default: platform config dir)")
		strictFlag = fs.Bool("strict", false, "hard-error on unrecognised mnemonics in pass one (overrides config)")
		noStrict   = fs.Bool("no-strict", false, "skip unrecognised mnemonics in pass one, matching the original's weaker behaviour (overrides config)")
		verbose    = fs.Bool("verbose", false, "log service-layer activity to stderr")
	)

	if err := fs.Parse(args); err != nil {
		return 1
	}

	service.SetVerbose(*verbose)
	if *verbose {
		cliLog.SetOutput(os.Stderr)
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "assembler: %v\n", err)
		return 1
	}

	strict := cfg.Assemble.StrictUnknownMnemonics
	if *strictFlag {
		strict = true
	}
	if *noStrict {
		strict = false
	}

	if *guiMode {
		gui.New().Run()
		return 0
	}

	if *apiServe {
		port := cfg.API.Port
		if *apiPort != 0 {
			port = *apiPort
		}
		return runAPIServer(port)
	}

	rest := fs.Args()

	if *tuiMode {
		if len(rest) != 1 {
			fmt.Fprintln(os.Stderr, "assembler: -tui takes exactly one input file")
			return 1
		}
		return runTUI(rest[0], strict)
	}

	if *lintOnly {
		if len(rest) != 1 {
			fmt.Fprintln(os.Stderr, "assembler: -lint-only takes exactly one input file")
			return 1
		}
		return runLintOnly(rest[0], lintOptions(cfg))
	}

	// Required positional contract: assembler <input> <output> <-h|-b>.
	if len(rest) != 3 {
		printUsage(fs)
		return 1
	}
	inputPath, outputPath, styleFlag := rest[0], rest[1], rest[2]

	style, err := parseStyleFlag(styleFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "assembler: %v\n", err)
		return 1
	}

	if *lintFlag {
		printLint(inputPath, lintOptions(cfg))
	}

	cliLog.Printf("assembling %s -> %s (strict=%t)", inputPath, outputPath, strict)

	a := assemble.New()
	a.Strict = strict
	a.Style = style

	result, errs := a.AssembleFile(inputPath, outputPath)
	if errs.HasErrors() {
		cliLog.Printf("assembling %s failed with %d diagnostic(s)", inputPath, len(errs.Errors))
		fmt.Fprint(os.Stderr, errs.Error())
		return 1
	}
	cliLog.Printf("assembling %s produced %d instruction(s)", inputPath, result.Count)

	if *xrefFlag {
		printXRef(inputPath)
	}
	return 0
}

func parseStyleFlag(flagArg string) (format.Style, error) {
	switch flagArg {
	case "-h":
		return format.Hex, nil
	case "-b":
		return format.Binary, nil
	default:
		return format.Hex, fmt.Errorf("third argument must be -h or -b, got %q", flagArg)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFrom(path)
	}
	return config.Load()
}

func runTUI(inputPath string, strict bool) int {
	src, err := os.ReadFile(inputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "assembler: %v\n", err)
		return 1
	}
	report := service.Assemble(string(src), inputPath, strict, format.Hex)
	if err := tui.New(report).Run(); err != nil {
		fmt.Fprintf(os.Stderr, "assembler: %v\n", err)
		return 1
	}
	return 0
}

func runLintOnly(inputPath string, opts *tools.LintOptions) int {
	if err := printLint(inputPath, opts); err != nil {
		fmt.Fprintf(os.Stderr, "assembler: %v\n", err)
		return 1
	}
	return 0
}

func printLint(inputPath string, opts *tools.LintOptions) error {
	src, err := os.ReadFile(inputPath)
	if err != nil {
		return err
	}
	for _, issue := range tools.Lint(string(src), opts) {
		fmt.Fprintln(os.Stderr, issue.String())
	}
	return nil
}

// lintOptions translates the config file's [lint] section into the
// options tools.Lint expects.
func lintOptions(cfg *config.Config) *tools.LintOptions {
	return &tools.LintOptions{
		WarnUnusedLabels:  cfg.Lint.WarnUnusedLabels,
		WarnDeadBranches:  cfg.Lint.WarnDeadBranches,
		WarnRegisterTypos: cfg.Lint.WarnRegisterTypos,
	}
}

func printXRef(inputPath string) error {
	src, err := os.ReadFile(inputPath)
	if err != nil {
		return err
	}
	for _, sym := range tools.XRef(string(src)) {
		fmt.Printf("%s: defined line %d, %d reference(s)\n", sym.Name, sym.Definition, len(sym.References))
	}
	return nil
}

func runAPIServer(port int) int {
	server := api.NewServer(port)

	serveErr := make(chan error, 1)
	go func() { serveErr <- server.Start() }()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serveErr:
		if err != nil && err != http.ErrServerClosed {
			fmt.Fprintf(os.Stderr, "assembler: %v\n", err)
			return 1
		}
		return 0
	case <-sigChan:
		fmt.Println("\nshutting down API server...")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "assembler: shutdown: %v\n", err)
			return 1
		}
		return 0
	}
}

func printUsage(fs *flag.FlagSet) {
	fmt.Fprintln(os.Stderr, "usage: assembler [-lint] [-xref] <input> <output> <-h|-b>")
	fmt.Fprintln(os.Stderr, "       assembler -tui <input>")
	fmt.Fprintln(os.Stderr, "       assembler -lint-only <input>")
	fmt.Fprintln(os.Stderr, "       assembler -gui")
	fmt.Fprintln(os.Stderr, "       assembler -serve [-port N]")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "flags:")
	fs.PrintDefaults()
}
