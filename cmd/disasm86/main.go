// Command disasm86 is the CLI driver for the 8086 disassembler and
// simulator: it reads a flat byte file, then either renders it as an
// assembly listing or runs it against machine state, printing whatever
// diagnostics were requested on the command line. It is deliberately a
// thin shell around package engine (spec.md §1's "external collaborator"
// boundary) — all decode/execute semantics live in the engine packages.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/go8086/disasm86/config"
	"github.com/go8086/disasm86/engine"
	"github.com/go8086/disasm86/gui"
	"github.com/go8086/disasm86/internal/xlog"
	"github.com/go8086/disasm86/machine"
	"github.com/go8086/disasm86/stats"
	"github.com/go8086/disasm86/stream"
	"github.com/go8086/disasm86/tui"

	"flag"
)

// Version information, overridable at build time with:
// go build -ldflags "-X main.Version=v1.2.3"
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

var cliLog = xlog.New("cli")

func main() {
	var (
		showVersion = flag.Bool("version", false, "Show version information")
		showHelp    = flag.Bool("help", false, "Show help information")
		simulate    = flag.Bool("simulate", false, "Simulate the program instead of disassembling it")
		tuiMode     = flag.Bool("tui", false, "Start the interactive TUI state inspector")
		guiMode     = flag.Bool("gui", false, "Start the graphical state viewer")
		dumpState   = flag.Bool("dump-state", false, "Print register/segment/flag state after simulating")
		configPath  = flag.String("config", "", "Path to a TOML config file (default: platform config path)")
		traceFlag   = flag.Bool("trace", false, "Enable the engine's debug trace (equivalent to DISASM86_DEBUG=1)")
		statsFlag   = flag.Bool("stats", false, "Print execution statistics after simulating")
		coverageF   = flag.Bool("coverage", false, "Print stream coverage after simulating")
	)

	flag.Parse()

	if *showVersion {
		fmt.Printf("disasm86 %s\n", Version)
		if Commit != "unknown" {
			fmt.Printf("commit: %s\n", Commit)
		}
		if Date != "unknown" {
			fmt.Printf("built: %s\n", Date)
		}
		os.Exit(0)
	}

	if *showHelp || (!*tuiMode && !*guiMode && flag.NArg() == 0) {
		printHelp()
		os.Exit(0)
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	if *tuiMode {
		runFrontend("tui", flag.Args(), cfg)
		return
	}
	if *guiMode {
		runFrontend("gui", flag.Args(), cfg)
		return
	}

	if closeTrace := enableTrace(cfg, *traceFlag); closeTrace != nil {
		defer closeTrace()
	}

	inputFile := flag.Arg(0)
	data, err := os.ReadFile(inputFile) // #nosec G304 -- user-specified input file
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	cliLog.Printf("loaded %d bytes from %s", len(data), inputFile)

	s := stream.New(data)

	if !*simulate {
		listing, err := engine.Disassemble(s)
		if err != nil {
			fmt.Fprintf(os.Stderr, "disassemble error: %v\n", err)
			os.Exit(1)
		}
		fmt.Print(listing)
		return
	}

	st := machine.New()
	result, err := engine.SimulateLimited(s, st, cfg.Execution.MaxInstructions)
	if err != nil {
		fmt.Fprintf(os.Stderr, "simulate error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("cycles: %d\n", result.TotalCycles)

	if *dumpState {
		fmt.Print(formatState(cfg, st))
	}
	if (*statsFlag || cfg.Execution.EnableStats) && result.Stats != nil {
		if err := writeStats(cfg, result.Stats); err != nil {
			fmt.Fprintf(os.Stderr, "stats: %v\n", err)
		}
	}
	if (*coverageF || cfg.Execution.EnableCoverage) && result.Coverage != nil {
		fmt.Print(result.Coverage.String())
	}
}

// enableTrace turns on the engine's execution trace when requested either
// by -trace or by config.Config.Execution.EnableTrace, redirecting it to
// cfg.Trace.OutputFile when one is configured (SPEC_FULL.md §2.3's Trace
// section), the way the teacher's main.go swaps a file-backed writer into
// machine.ExecutionTrace at startup. The returned func closes the trace
// file and must be deferred by the caller; it is nil when tracing wasn't
// enabled or no output file was configured.
func enableTrace(cfg *config.Config, traceFlag bool) func() {
	if !traceFlag && !cfg.Execution.EnableTrace {
		return nil
	}
	_ = os.Setenv("DISASM86_DEBUG", "1")

	if cfg.Trace.OutputFile == "" {
		engine.SetTraceOutput(nil) // rebuild the engine logger now that DISASM86_DEBUG is set
		return nil
	}
	f, err := os.Create(cfg.Trace.OutputFile) // #nosec G304 -- user config file path
	if err != nil {
		fmt.Fprintf(os.Stderr, "trace: create %s: %v\n", cfg.Trace.OutputFile, err)
		return nil
	}
	engine.SetTraceOutput(f)
	return func() {
		engine.SetTraceOutput(nil)
		f.Close()
	}
}

// writeStats renders report per cfg.Statistics.Format ("json" or the
// default text summary) and writes it to cfg.Statistics.OutputFile, or to
// stdout when no output file is configured (SPEC_FULL.md §2.3's
// Statistics section).
func writeStats(cfg *config.Config, report *stats.Report) error {
	var content string
	switch cfg.Statistics.Format {
	case "json":
		b, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal stats: %w", err)
		}
		content = string(b) + "\n"
	default:
		content = report.String()
	}

	if cfg.Statistics.OutputFile == "" {
		fmt.Print(content)
		return nil
	}
	if err := os.WriteFile(cfg.Statistics.OutputFile, []byte(content), 0644); err != nil { // #nosec G306 -- report, not secret
		return fmt.Errorf("write %s: %w", cfg.Statistics.OutputFile, err)
	}
	return nil
}

// formatState renders st's register/segment/flag dump honoring
// cfg.Display.NumberFormat ("hex" or "dec") and cfg.Display.ColorOutput
// (SPEC_FULL.md §2.3's Display section). It reuses the same Map() state
// views the TUI and GUI frontends render from, rather than duplicating
// their presentation.
func formatState(cfg *config.Config, st *machine.State) string {
	hex := cfg.Display.NumberFormat != "dec"
	nameOpen, nameClose := "", ""
	if cfg.Display.ColorOutput {
		nameOpen, nameClose = "\033[36m", "\033[0m"
	}

	var sb strings.Builder
	for _, rv := range st.Registers.Map() {
		if hex {
			fmt.Fprintf(&sb, "%s%-3s%s 0x%04x\n", nameOpen, rv.Name, nameClose, uint16(rv.Value))
		} else {
			fmt.Fprintf(&sb, "%s%-3s%s %d\n", nameOpen, rv.Name, nameClose, rv.Value)
		}
	}
	for _, sv := range st.Segments.Map() {
		if hex {
			fmt.Fprintf(&sb, "%s%-3s%s 0x%04x\n", nameOpen, sv.Name, nameClose, sv.Value)
		} else {
			fmt.Fprintf(&sb, "%s%-3s%s %d\n", nameOpen, sv.Name, nameClose, sv.Value)
		}
	}
	sb.WriteString(st.Flags.String())
	sb.WriteString("\n")
	return sb.String()
}

// runFrontend reads the optional input file (an empty stream if none was
// given, so -tui/-gui can be used to explore an empty machine) and hands
// it to the requested interactive frontend, applying cfg.Frontend's
// startup options (SPEC_FULL.md §2.3).
func runFrontend(mode string, args []string, cfg *config.Config) {
	var data []byte
	if len(args) > 0 {
		var err error
		data, err = os.ReadFile(args[0]) // #nosec G304 -- user-specified input file
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		cliLog.Printf("loaded %d bytes from %s for %s frontend", len(data), args[0], mode)
	}

	var err error
	switch mode {
	case "tui":
		opts := tui.Options{
			StartPaused:   cfg.Frontend.StartPaused,
			ShowMemory:    cfg.Frontend.ShowMemory,
			MemoryColumns: cfg.Frontend.MemoryColumns,
		}
		err = tui.NewWithOptions(data, opts).Run()
	case "gui":
		opts := gui.Options{
			StartPaused:   cfg.Frontend.StartPaused,
			ShowMemory:    cfg.Frontend.ShowMemory,
			MemoryColumns: cfg.Frontend.MemoryColumns,
		}
		err = gui.RunWithOptions(data, opts)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s error: %v\n", mode, err)
		os.Exit(1)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Load()
	}
	return config.LoadFrom(path)
}

func printHelp() {
	fmt.Printf(`disasm86 %s

Usage: disasm86 [options] <input-file>
       disasm86 -tui [input-file]
       disasm86 -gui [input-file]

Options:
  -help              Show this help message
  -version           Show version information
  -simulate          Simulate the program instead of disassembling it
  -dump-state        Print register/segment/flag state after simulating
  -stats             Print execution statistics after simulating
  -coverage          Print stream coverage after simulating
  -trace             Enable the engine's debug trace
  -config FILE       Load settings from a TOML config file
  -tui               Start the interactive TUI state inspector
  -gui               Start the graphical state viewer

Examples:
  disasm86 program.bin
  disasm86 -simulate -dump-state program.bin
  disasm86 -simulate -stats -coverage program.bin
  disasm86 -tui program.bin
`, Version)
}
