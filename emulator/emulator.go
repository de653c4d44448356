// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package emulator assembles the axy machine: processor, RAM, and the
// optional character display mapped to the top of RAM.
package emulator

import (
	"fmt"
	"iter"
	"maps"

	"github.com/axyvm/axy/cpu"
	"github.com/axyvm/axy/internal"
	"github.com/axyvm/axy/io"
)

const (
	RAM_SIZE = 65536 // Full address space for the emulated machine.
)

var _emulator_defines = map[string]string{
	"RAM_SIZE": fmt.Sprintf("%v", RAM_SIZE),
}

// Emulator state. CPU + RAM + display.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Reference to the currently running program listing.

	Display *io.Display // Optional display, mapped to the top of RAM.

	displayBase int // RAM offset of the display frame.
}

// NewEmulator creates a new emulator with a full 64KiB address space.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Cpu:     cpu.NewCpu(RAM_SIZE),
		Program: &cpu.Program{},
	}

	return
}

// Attach maps a display to the top of RAM. The frame occupies the last
// Len() bytes of the address space. A nil display detaches.
func (emu *Emulator) Attach(display *io.Display) {
	emu.Display = display
	if display != nil {
		emu.displayBase = len(emu.Cpu.Ram) - display.Len()
	}
}

// Defines returns an iterator over all of the defines, for use as
// assembler predefines.
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	defines := maps.All(_emulator_defines)
	if emu.Display == nil {
		return defines
	}

	return internal.IterSeq2Concat(defines,
		emu.Display.Defines(),
		maps.All(map[string]string{
			"DISPLAY_BASE": fmt.Sprintf("%v", emu.displayBase),
			"DISPLAY_SIZE": fmt.Sprintf("%v", emu.Display.Len()),
		}),
	)
}

// Reset clears the machine and reloads the program at address zero.
func (emu *Emulator) Reset() (err error) {
	emu.Cpu.Verbose = emu.Verbose
	emu.Cpu.Reset()

	err = emu.Cpu.Load(emu.Program.Binary(), 0)

	return
}

// LineNo returns the source line number of the executing instruction, or
// zero when no listing covers the program counter.
func (emu *Emulator) LineNo() int {
	dbg := emu.Program.Debug(emu.Cpu.Pc)
	if dbg.Line == nil {
		return 0
	}

	return dbg.Line.LineNo
}

// frame returns the display's RAM region.
func (emu *Emulator) frame() []uint8 {
	return emu.Cpu.Ram[emu.displayBase : emu.displayBase+emu.Display.Len()]
}

// Tick performs a single step of the emulator, redrawing the display
// after the instruction completes.
func (emu *Emulator) Tick() (done bool, err error) {
	emu.Cpu.Verbose = emu.Verbose

	lineno := emu.LineNo()
	defer func() {
		if err != nil {
			err = &ErrRuntime{LineNo: lineno, Err: err}
		}
	}()

	err = emu.Cpu.Tick()
	if err != nil {
		return
	}

	if emu.Display != nil {
		err = emu.Display.Draw(emu.frame())
		if err != nil {
			return
		}
	}

	done = emu.Cpu.Halted()

	return
}

// Run steps the machine until it halts, the tick budget runs out, or the
// stop channel closes. A budget of zero or less runs without limit.
func (emu *Emulator) Run(budget int, stop <-chan struct{}) (err error) {
	for {
		select {
		case <-stop:
			err = ErrStopped
			return
		default:
		}

		var done bool
		done, err = emu.Tick()
		if err != nil || done {
			return
		}

		if budget > 0 && emu.Cpu.Ticks >= budget {
			err = ErrBudget
			return
		}
	}
}
