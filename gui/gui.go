// Package gui is a minimal graphical state viewer for the engine
// (SPEC_FULL.md §3), adapted from the teacher's debugger/gui.go: a fyne
// window showing register/segment/flag/memory state plus toolbar
// controls to step or run a loaded byte stream, for users without a
// terminal.
package gui

import (
	"fmt"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/go8086/disasm86/decoder"
	"github.com/go8086/disasm86/executor"
	"github.com/go8086/disasm86/format"
	"github.com/go8086/disasm86/internal/xlog"
	"github.com/go8086/disasm86/machine"
	"github.com/go8086/disasm86/stream"
)

var guiLog = xlog.New("gui")

// Options configures frontend startup behavior (SPEC_FULL.md §2.3's
// Frontend config section), the same shape as package tui's Options.
type Options struct {
	// StartPaused, when true (the default), leaves the machine at its
	// initial state. When false, the whole program is run once before
	// the window is shown.
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

// GUI is the graphical state viewer.
type GUI struct {
	App    fyne.App
	Window fyne.Window

	RegisterView *widget.TextGrid
	SegmentView  *widget.TextGrid
	MemoryView   *widget.TextGrid
	DisasmView   *widget.TextGrid
	StatusLabel  *widget.Label
	Toolbar      *widget.Toolbar

	data    []byte
	listing []string
	opts    Options

	state  *machine.State
	stream stream.Stream
	halted bool
}

// Run builds the window over program and blocks until it is closed, using
// the default Frontend options.
func Run(program []byte) error {
	return RunWithOptions(program, DefaultOptions())
}

// RunWithOptions behaves like Run but honors opts instead of the defaults
// (SPEC_FULL.md §2.3's Frontend config section).
func RunWithOptions(program []byte, opts Options) error {
	g := newGUI(program, opts)
	if !opts.StartPaused {
		g.run()
	}
	g.Window.ShowAndRun()
	return nil
}

func newGUI(program []byte, opts Options) *GUI {
	myApp := app.New()
	myWindow := myApp.NewWindow("disasm86 state viewer")

	g := &GUI{
		App:    myApp,
		Window: myWindow,
		data:   program,
		opts:   opts,
	}
	g.listing = disassembleLines(program)
	g.reset()

	g.initializeViews()
	g.buildLayout()
	g.setupToolbar()

	myWindow.Resize(fyne.NewSize(1100, 700))
	return g
}

func disassembleLines(program []byte) []string {
	var lines []string
	s := stream.New(program)
	for !s.AtEnd() {
		inst, err := decoder.Decode(s)
		if err != nil {
			lines = append(lines, fmt.Sprintf("??? (%v)", err))
			break
		}
		lines = append(lines, format.Instruction(inst))
	}
	return lines
}

func (g *GUI) reset() {
	g.state = machine.New()
	g.stream = stream.New(g.data)
	g.halted = false
}

func (g *GUI) initializeViews() {
	g.RegisterView = widget.NewTextGrid()
	g.SegmentView = widget.NewTextGrid()
	g.MemoryView = widget.NewTextGrid()
	g.DisasmView = widget.NewTextGrid()
	g.DisasmView.SetText(strings.Join(g.listing, "\n"))
	g.StatusLabel = widget.NewLabel("Ready")
	g.updateViews()
}

func (g *GUI) buildLayout() {
	disasmPanel := container.NewBorder(widget.NewLabel("Disassembly"), nil, nil, nil,
		container.NewScroll(g.DisasmView))
	registerPanel := container.NewBorder(widget.NewLabel("Registers"), nil, nil, nil,
		container.NewScroll(g.RegisterView))
	segmentPanel := container.NewBorder(widget.NewLabel("Segments / Flags"), nil, nil, nil,
		container.NewScroll(g.SegmentView))

	rightTop := container.NewVSplit(registerPanel, segmentPanel)
	rightTop.SetOffset(0.5)

	var rightPanel fyne.CanvasObject = rightTop
	if g.opts.ShowMemory {
		memoryPanel := container.NewBorder(widget.NewLabel("Memory"), nil, nil, nil,
			container.NewScroll(g.MemoryView))
		split := container.NewVSplit(rightTop, memoryPanel)
		split.SetOffset(0.5)
		rightPanel = split
	}

	mainSplit := container.NewHSplit(disasmPanel, rightPanel)
	mainSplit.SetOffset(0.5)

	statusBar := container.NewBorder(nil, nil, nil, nil, g.StatusLabel)
	content := container.NewBorder(g.Toolbar, statusBar, nil, nil, mainSplit)
	g.Window.SetContent(content)
}

func (g *GUI) setupToolbar() {
	g.Toolbar = widget.NewToolbar(
		widget.NewToolbarAction(theme.MediaSkipNextIcon(), func() { g.step() }),
		widget.NewToolbarAction(theme.MediaPlayIcon(), func() { g.run() }),
		widget.NewToolbarAction(theme.MediaStopIcon(), func() { g.doReset() }),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.ViewRefreshIcon(), func() { g.updateViews() }),
	)
}

func (g *GUI) updateViews() {
	g.updateRegisters()
	g.updateSegments()
	g.updateMemory()
}

func (g *GUI) updateRegisters() {
	var sb strings.Builder
	sb.WriteString(g.state.Registers.String())
	fmt.Fprintf(&sb, "\npos: %d/%d\n", g.stream.Pos(), g.stream.Len())
	g.RegisterView.SetText(sb.String())
}

func (g *GUI) updateSegments() {
	var sb strings.Builder
	sb.WriteString(g.state.Segments.String())
	sb.WriteString("\nflags: ")
	sb.WriteString(g.state.Flags.String())
	g.SegmentView.SetText(sb.String())
}

func (g *GUI) updateMemory() {
	if !g.opts.ShowMemory {
		return
	}
	cols := g.opts.memoryColumns()
	var sb strings.Builder
	for row := 0; row < 16; row++ {
		addr := uint16(row * cols)
		fmt.Fprintf(&sb, "%04X: ", addr)
		for col := 0; col < cols; col++ {
			sb.WriteString(fmt.Sprintf("%02X ", g.state.Memory.ReadByte(addr+uint16(col))))
		}
		sb.WriteString("\n")
	}
	g.MemoryView.SetText(sb.String())
}

func (g *GUI) step() {
	if g.halted || g.stream.AtEnd() {
		g.StatusLabel.SetText("halted")
		return
	}
	offset := g.stream.Pos()
	inst, err := decoder.Decode(g.stream)
	if err != nil {
		g.halted = true
		g.StatusLabel.SetText(fmt.Sprintf("decode error at %d: %v", offset, err))
		return
	}
	res, err := executor.Execute(inst, g.stream, g.state)
	if err != nil {
		g.halted = true
		g.StatusLabel.SetText(fmt.Sprintf("execute error at %d: %v", offset, err))
		return
	}
	guiLog.Printf("offset=%d %s cycles=%d", offset, format.Instruction(inst), res.Cycles)
	g.StatusLabel.SetText(fmt.Sprintf("stepped: %s (%d cycles)", format.Instruction(inst), res.Cycles))
	g.updateViews()
}

func (g *GUI) run() {
	steps := 0
	for !g.stream.AtEnd() && !g.halted && steps < 1_000_000 {
		g.step()
		steps++
	}
	g.StatusLabel.SetText(fmt.Sprintf("ran %d instructions", steps))
}

func (g *GUI) doReset() {
	g.reset()
	g.StatusLabel.SetText("reset")
	g.updateViews()
}
