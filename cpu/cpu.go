package cpu

import (
	"fmt"
	"log"
	"math/bits"
)

// RAM size limits. Requested sizes are clamped into this range, then
// rounded up to a power of two so addresses wrap with a mask.
const (
	RamSizeMin = 4096
	RamSizeMax = 65536
)

// Cpu is the simulation context for the axy processor.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Catalog *Catalog // Instruction set; Standard() if nil.

	A, X, Y uint8   // General purpose registers.
	Pc      uint16  // Program counter.
	Flags   Flags   // Status flags.
	Ram     []uint8 // Flat byte-addressed memory.

	Ticks int // Instructions executed since reset.
}

// NewCpu creates a new processor with the requested RAM size. The size is
// clamped to [RamSizeMin, RamSizeMax] and rounded up to a power of two.
func NewCpu(size int) (cpu *Cpu) {
	if size < RamSizeMin {
		size = RamSizeMin
	}
	if size > RamSizeMax {
		size = RamSizeMax
	}
	if bits.OnesCount(uint(size)) != 1 {
		size = 1 << bits.Len(uint(size))
	}

	cpu = &Cpu{
		Catalog: Standard(),
		Ram:     make([]uint8, size),
	}

	return
}

// Reset clears the registers, flags, counters, and RAM.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	cpu.A, cpu.X, cpu.Y = 0, 0, 0
	cpu.Pc = 0
	cpu.Flags = 0
	cpu.Ticks = 0
	clear(cpu.Ram)
}

// Load copies data into RAM at the given offset.
func (cpu *Cpu) Load(data []uint8, offset int) (err error) {
	end := offset + len(data)
	if end > len(cpu.Ram) {
		err = ErrLoadSize{End: end, Size: len(cpu.Ram)}
		return
	}

	copy(cpu.Ram[offset:end], data)

	return
}

// Halted returns true once the halt flag is set. A halted processor stays
// halted until the next Reset.
func (cpu *Cpu) Halted() bool {
	return cpu.Flags.Has(FlagHalt)
}

// String returns the current processor state as a string.
func (cpu *Cpu) String() string {
	return fmt.Sprintf("pc:%04x a:%02x x:%02x y:%02x fl:%v",
		cpu.Pc, cpu.A, cpu.X, cpu.Y, cpu.Flags)
}

// wrap folds an address into RAM. RAM sizes are powers of two, so this is
// a mask.
func (cpu *Cpu) wrap(addr int) uint16 {
	return uint16(addr & (len(cpu.Ram) - 1))
}

// peek reads the byte at an address, wrapping around the end of RAM.
func (cpu *Cpu) peek(addr int) uint8 {
	return cpu.Ram[cpu.wrap(addr)]
}

// poke writes the byte at an address, wrapping around the end of RAM.
func (cpu *Cpu) poke(addr int, value uint8) {
	cpu.Ram[cpu.wrap(addr)] = value
}

// peek16 reads a big-endian word at an address.
func (cpu *Cpu) peek16(addr int) int {
	return int(cpu.peek(addr))<<8 | int(cpu.peek(addr+1))
}

// poke16 writes a big-endian word at an address.
func (cpu *Cpu) poke16(addr int, value uint16) {
	cpu.poke(addr, uint8(value>>8))
	cpu.poke(addr+1, uint8(value))
}

// indexed forms the effective address of the indexed mode: X plus 256
// times Y.
func (cpu *Cpu) indexed() int {
	return int(cpu.Y)<<8 | int(cpu.X)
}

// fetch reads the next byte at the program counter and advances it.
func (cpu *Cpu) fetch() (value uint8) {
	value = cpu.Ram[cpu.Pc]
	cpu.Pc = cpu.wrap(int(cpu.Pc) + 1)
	return
}

// Tick fetches, decodes, and executes one instruction.
//
// The program counter advances past the opcode and its operands before the
// instruction executes, so relative jumps and WPC observe the address of
// the next instruction. Flag changes are committed only through the
// instruction's Touch mask; untouched flags survive unchanged.
//
// An opcode with no catalog entry stops execution with ErrOpcodeUnknown,
// leaving the program counter on the bad byte. Once halted, Tick is a
// no-op.
func (cpu *Cpu) Tick() (err error) {
	if cpu.Halted() {
		return
	}

	pc := cpu.Pc
	op := Op(cpu.fetch())

	in, err := cpu.Catalog.Lookup(op)
	if err != nil {
		cpu.Pc = pc
		err = ErrOpcodeUnknown{Op: op, Pc: pc}
		return
	}

	var data [2]uint8
	for n := range in.Length {
		data[n] = cpu.fetch()
	}

	if cpu.Verbose {
		log.Printf("cpu: %04x %v % 02x", pc, in.Name, data[:in.Length])
	}

	delta := in.Exec(cpu, data[:in.Length])
	cpu.Flags = (cpu.Flags &^ in.Touch) | (delta & in.Touch)
	cpu.Ticks++

	return
}
