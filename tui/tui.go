// Package tui is an interactive terminal state inspector for the engine
// (SPEC_FULL.md §3), adapted from the teacher's debugger/tui.go: it loads
// a byte stream, lets the user step or run it through the decode/execute
// pipeline one instruction at a time, and renders live register/segment/
// flag/memory panels alongside a disassembly view and a watch-expression
// command line.
package tui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/go8086/disasm86/decoder"
	"github.com/go8086/disasm86/executor"
	"github.com/go8086/disasm86/format"
	"github.com/go8086/disasm86/internal/xlog"
	"github.com/go8086/disasm86/machine"
	"github.com/go8086/disasm86/stream"
)

var tuiLog = xlog.New("tui")

// Options configures frontend startup behavior (SPEC_FULL.md §2.3's
// Frontend config section), mirroring the teacher's pattern of threading
// config.Config values into the interactive front-ends at construction
// time rather than hardcoding them.
type Options struct {
	// StartPaused, when true (the default), leaves the machine at its
	// initial state for the user to step/run manually. When false, the
	// whole program is run once before the event loop takes over.
	StartPaused bool
	// ShowMemory controls whether the memory panel is built at all.
	ShowMemory bool
	// MemoryColumns is the number of bytes shown per memory-view row.
	// Values <= 0 fall back to 16.
	MemoryColumns int
}

// DefaultOptions returns the Frontend defaults (config.DefaultConfig's
// Frontend section): start paused, memory panel shown, 16 columns.
func DefaultOptions() Options {
	return Options{StartPaused: true, ShowMemory: true, MemoryColumns: 16}
}

func (o Options) memoryColumns() int {
	if o.MemoryColumns <= 0 {
		return 16
	}
	return o.MemoryColumns
}

// listingLine is one precomputed disassembly line, tagged with the byte
// offset it starts at so the current instruction can be highlighted as
// the stream position advances.
type listingLine struct {
	offset int
	text   string
}

// TUI is the whole inspector: application, layout, and the live machine
// state it steps.
type TUI struct {
	App   *tview.Application
	Pages *tview.Pages

	MainLayout   *tview.Flex
	RegisterView *tview.TextView
	SegmentView  *tview.TextView
	MemoryView   *tview.TextView
	DisasmView   *tview.TextView
	OutputView   *tview.TextView
	CommandInput *tview.InputField

	data    []byte
	listing []listingLine
	opts    Options

	State   *machine.State
	Stream  stream.Stream
	Halted  bool
	MemAddr uint16
}

// New builds a TUI over program, the flat instruction bytes to decode and
// execute, started with the default Frontend options.
func New(program []byte) *TUI {
	return NewWithOptions(program, DefaultOptions())
}

// NewWithOptions builds a TUI the way New does, honoring opts instead of
// the defaults (SPEC_FULL.md §2.3's Frontend config section).
func NewWithOptions(program []byte, opts Options) *TUI {
	t := &TUI{
		App:  tview.NewApplication(),
		data: program,
		opts: opts,
	}
	t.listing = disassembleListing(program)
	t.reset()
	t.initializeViews()
	t.buildLayout()
	t.setupKeyBindings()
	return t
}

// disassembleListing decodes program once, up front, purely for display:
// it never touches the live stepping stream.
func disassembleListing(program []byte) []listingLine {
	var lines []listingLine
	s := stream.New(program)
	for !s.AtEnd() {
		offset := s.Pos()
		inst, err := decoder.Decode(s)
		if err != nil {
			lines = append(lines, listingLine{offset, fmt.Sprintf("??? (%v)", err)})
			break
		}
		lines = append(lines, listingLine{offset, format.Instruction(inst)})
	}
	return lines
}

func (t *TUI) reset() {
	t.State = machine.New()
	t.Stream = stream.New(t.data)
	t.Halted = false
}

func (t *TUI) initializeViews() {
	t.RegisterView = tview.NewTextView().SetDynamicColors(true)
	t.RegisterView.SetBorder(true).SetTitle(" Registers ")

	t.SegmentView = tview.NewTextView().SetDynamicColors(true)
	t.SegmentView.SetBorder(true).SetTitle(" Segments / Flags ")

	t.MemoryView = tview.NewTextView().SetDynamicColors(true).SetScrollable(true).SetWrap(false)
	t.MemoryView.SetBorder(true).SetTitle(" Memory ")

	t.DisasmView = tview.NewTextView().SetDynamicColors(true).SetScrollable(true).SetWrap(false)
	t.DisasmView.SetBorder(true).SetTitle(" Disassembly ")

	t.OutputView = tview.NewTextView().SetDynamicColors(true).SetScrollable(true).SetWrap(true)
	t.OutputView.SetBorder(true).SetTitle(" Output ")

	t.CommandInput = tview.NewInputField().SetLabel("> ").SetFieldWidth(0)
	t.CommandInput.SetBorder(true).SetTitle(" Command (step/run/reset/print EXPR/quit) ")
	t.CommandInput.SetDoneFunc(t.handleCommand)
}

func (t *TUI) buildLayout() {
	left := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(t.DisasmView, 0, 2, false)
	if t.opts.ShowMemory {
		left.AddItem(t.MemoryView, 0, 1, false)
	}

	right := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(t.RegisterView, 10, 0, false).
		AddItem(t.SegmentView, 8, 0, false)

	content := tview.NewFlex().SetDirection(tview.FlexColumn).
		AddItem(left, 0, 2, false).
		AddItem(right, 0, 1, false)

	t.MainLayout = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(content, 0, 4, false).
		AddItem(t.OutputView, 8, 0, false).
		AddItem(t.CommandInput, 3, 0, true)

	t.Pages = tview.NewPages().AddPage("main", t.MainLayout, true, true)
}

func (t *TUI) setupKeyBindings() {
	t.App.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyF5:
			t.executeCommand("run")
			return nil
		case tcell.KeyF11:
			t.executeCommand("step")
			return nil
		case tcell.KeyCtrlC:
			t.App.Stop()
			return nil
		case tcell.KeyCtrlL:
			t.RefreshAll()
			return nil
		}
		return event
	})
}

// handleCommand fires on Enter in the command line. It hands the command
// off to executeCommand in its own goroutine so a slow or looping "run"
// never freezes keyboard input, then clears the field immediately.
func (t *TUI) handleCommand(key tcell.Key) {
	if key != tcell.KeyEnter {
		return
	}
	cmd := t.CommandInput.GetText()
	if cmd == "" {
		return
	}
	t.CommandInput.SetText("")
	go t.executeCommand(cmd)
}

// executeCommand runs cmd and repaints. It may be called from the event
// loop goroutine or, via handleCommand, from a background goroutine, so
// the repaint goes through QueueUpdateDraw rather than App.Draw directly.
func (t *TUI) executeCommand(cmd string) {
	out, err := t.runCommand(cmd)
	t.App.QueueUpdateDraw(func() {
		if err != nil {
			t.writeOutput(fmt.Sprintf("[red]error:[white] %v\n", err))
		} else if out != "" {
			t.writeOutput(out + "\n")
		}
		t.updateRegisterView()
		t.updateSegmentView()
		t.updateMemoryView()
		t.updateDisasmView()
	})
}

// runCommand implements the tiny command language: step, run, reset,
// print/watch EXPR, quit. Unrecognized input is tried as a bare
// expression, the way the teacher's debugger falls back to "print".
func (t *TUI) runCommand(cmd string) (string, error) {
	fields := strings.Fields(cmd)
	if len(fields) == 0 {
		return "", nil
	}

	switch fields[0] {
	case "step", "s":
		return t.step()
	case "run", "r", "c", "continue":
		return t.run()
	case "reset":
		t.reset()
		return "state reset", nil
	case "quit", "q":
		t.App.Stop()
		return "", nil
	case "print", "p", "watch", "w":
		if len(fields) < 2 {
			return "", fmt.Errorf("usage: print EXPR")
		}
		return t.evalAndFormat(strings.Join(fields[1:], " "))
	case "help":
		return "commands: step, run, reset, print EXPR, quit", nil
	default:
		return t.evalAndFormat(cmd)
	}
}

func (t *TUI) evalAndFormat(expr string) (string, error) {
	val, err := Evaluate(expr, t.State)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s = %d (0x%04X)", expr, val, val), nil
}

// step decodes and executes exactly one instruction, mirroring one
// iteration of engine.Simulate's loop body.
func (t *TUI) step() (string, error) {
	if t.Halted {
		return "halted", nil
	}
	if t.Stream.AtEnd() {
		t.Halted = true
		return "end of stream", nil
	}

	offset := t.Stream.Pos()
	inst, err := decoder.Decode(t.Stream)
	if err != nil {
		t.Halted = true
		return "", fmt.Errorf("decode at offset %d: %w", offset, err)
	}

	res, err := executor.Execute(inst, t.Stream, t.State)
	if err != nil {
		t.Halted = true
		return "", fmt.Errorf("execute at offset %d: %w", offset, err)
	}

	tuiLog.Printf("offset=%d %s cycles=%d", offset, format.Instruction(inst), res.Cycles)
	return fmt.Sprintf("%04d: %s  (%d cycles)", offset, format.Instruction(inst), res.Cycles), nil
}

// run steps until end of stream or a decode/execute error, capped at
// 1,000,000 steps to bound pathological backward-jump loops in the UI.
func (t *TUI) run() (string, error) {
	steps := 0
	maxSteps := 1_000_000
	for !t.Stream.AtEnd() && !t.Halted && steps < maxSteps {
		if _, err := t.step(); err != nil {
			return "", err
		}
		steps++
	}
	return fmt.Sprintf("ran %d instructions", steps), nil
}

func (t *TUI) writeOutput(text string) {
	_, _ = t.OutputView.Write([]byte(text))
	t.OutputView.ScrollToEnd()
}

// RefreshAll repaints every panel from current state.
func (t *TUI) RefreshAll() {
	t.updateRegisterView()
	t.updateSegmentView()
	t.updateMemoryView()
	t.updateDisasmView()
	t.App.Draw()
}

func (t *TUI) updateRegisterView() {
	var b strings.Builder
	for _, rv := range t.State.Registers.Map() {
		fmt.Fprintf(&b, "%-3s 0x%04X\n", rv.Name, uint16(rv.Value))
	}
	fmt.Fprintf(&b, "\nPos: %d/%d\n", t.Stream.Pos(), t.Stream.Len())
	t.RegisterView.SetText(b.String())
}

func (t *TUI) updateSegmentView() {
	var b strings.Builder
	b.WriteString(t.State.Segments.String())
	b.WriteString("\n")
	b.WriteString(t.State.Flags.String())
	t.SegmentView.SetText(b.String())
}

func (t *TUI) updateMemoryView() {
	var b strings.Builder
	fmt.Fprintf(&b, "[yellow]Address: 0x%04X[white]\n", t.MemAddr)
	cols := t.opts.memoryColumns()
	for row := 0; row < 8; row++ {
		rowAddr := t.MemAddr + uint16(row*cols)
		fmt.Fprintf(&b, "0x%04X: ", rowAddr)
		var ascii []byte
		for col := 0; col < cols; col++ {
			v := t.State.Memory.ReadByte(rowAddr + uint16(col))
			fmt.Fprintf(&b, "%02X ", v)
			if v >= 32 && v < 127 {
				ascii = append(ascii, v)
			} else {
				ascii = append(ascii, '.')
			}
		}
		b.WriteString(" " + string(ascii) + "\n")
	}
	t.MemoryView.SetText(b.String())
}

func (t *TUI) updateDisasmView() {
	var b strings.Builder
	pos := t.Stream.Pos()
	for _, line := range t.listing {
		marker := "  "
		color := "white"
		if line.offset == pos {
			marker = "->"
			color = "yellow"
		}
		fmt.Fprintf(&b, "[%s]%s %04d: %s[white]\n", color, marker, line.offset, line.text)
	}
	t.DisasmView.SetText(b.String())
}

// Run starts the application event loop. When opts.StartPaused is false
// (SPEC_FULL.md §2.3's Frontend.StartPaused), the whole program is run
// once before the loop takes over, the way a non-interactive trace tool
// would, leaving the user free to inspect the final state.
func (t *TUI) Run() error {
	if !t.opts.StartPaused {
		if _, err := t.run(); err != nil {
			t.writeOutput(fmt.Sprintf("[red]error:[white] %v\n", err))
		}
	}
	t.RefreshAll()
	t.writeOutput("[green]disasm86 TUI[white]  F11=step F5=run Ctrl+C=quit\n\n")
	return t.App.SetRoot(t.Pages, true).SetFocus(t.CommandInput).Run()
}

// Stop stops the application.
func (t *TUI) Stop() { t.App.Stop() }
