package cpu

import (
	"iter"
	"sync"
)

// Op is a single opcode byte.
type Op uint8

// Flags is the processor status register, one bit per flag.
type Flags uint8

const (
	FlagZero     = Flags(1 << 0) // Wrapped result was 0.
	FlagOverflow = Flags(1 << 1) // Raw result exceeded 255.
	FlagHalt     = Flags(1 << 2) // Processor halted; terminal.
	FlagNegative = Flags(1 << 3) // True arithmetic result was negative.
)

// Has returns true if all flags in mask are set.
func (fl Flags) Has(mask Flags) bool {
	return fl&mask == mask
}

// String returns the flags as a fixed-width "ZOHN" field, with '-' for
// each clear flag.
func (fl Flags) String() (text string) {
	for _, bit := range []struct {
		flag Flags
		name byte
	}{
		{FlagZero, 'Z'},
		{FlagOverflow, 'O'},
		{FlagHalt, 'H'},
		{FlagNegative, 'N'},
	} {
		if fl.Has(bit.flag) {
			text += string(bit.name)
		} else {
			text += "-"
		}
	}
	return
}

// AddrMode describes how an instruction forms its effective address.
type AddrMode int

//go:generate go tool stringer -linecomment -type=AddrMode
const (
	ModeImplied   = AddrMode(0) // implied
	ModeImmediate = AddrMode(1) // immediate
	ModeDirect    = AddrMode(2) // direct
	ModeIndexed   = AddrMode(3) // indexed
	ModeOffset    = AddrMode(4) // offset
)

// Instruction describes a single opcode: its mnemonic, operand length,
// addressing mode, the flags it is allowed to modify, and its execution
// rule. Descriptors are immutable once the catalog is built.
type Instruction struct {
	Name   string   // Mnemonic, e.g. "LDA".
	Op     Op       // Unique opcode byte.
	Mode   AddrMode // Addressing mode, for listings.
	Length int      // Operand bytes following the opcode (0-2).
	Touch  Flags    // Flags this instruction may modify.

	// Exec applies the instruction to the processor. Operand bytes are in
	// data, and the program counter has already advanced past them. The
	// returned flags are committed only through the Touch mask.
	Exec func(cpu *Cpu, data []uint8) Flags
}

// Catalog is an immutable opcode table. Lookups by opcode drive the
// execution engine; lookups by mnemonic drive the assembler.
type Catalog struct {
	byOp   [256]*Instruction
	byName map[string]*Instruction
	count  int
}

// NewCatalog builds a catalog from a set of instruction descriptors,
// rejecting duplicate opcodes or mnemonics.
func NewCatalog(instructions []Instruction) (cat *Catalog, err error) {
	cat = &Catalog{
		byName: make(map[string]*Instruction, len(instructions)),
	}

	for n := range instructions {
		in := &instructions[n]
		if have := cat.byOp[in.Op]; have != nil {
			err = ErrOpcodeCollision{Op: in.Op, Have: have.Name, Add: in.Name}
			return
		}
		if have, ok := cat.byName[in.Name]; ok {
			err = ErrOpcodeCollision{Op: have.Op, Have: have.Name, Add: in.Name}
			return
		}
		cat.byOp[in.Op] = in
		cat.byName[in.Name] = in
		cat.count++
	}

	return
}

// Lookup returns the descriptor for an opcode byte.
func (cat *Catalog) Lookup(op Op) (in *Instruction, err error) {
	in = cat.byOp[op]
	if in == nil {
		err = ErrOpcodeUnknown{Op: op}
	}
	return
}

// ByName returns the descriptor for a mnemonic.
func (cat *Catalog) ByName(name string) (in *Instruction, ok bool) {
	in, ok = cat.byName[name]
	return
}

// Len returns the number of registered instructions.
func (cat *Catalog) Len() int {
	return cat.count
}

// All returns an iterator over the catalog in opcode order.
func (cat *Catalog) All() iter.Seq[*Instruction] {
	return func(yield func(*Instruction) bool) {
		for _, in := range cat.byOp {
			if in == nil {
				continue
			}
			if !yield(in) {
				return
			}
		}
	}
}

var standard = sync.OnceValue(func() *Catalog {
	cat, err := NewCatalog(standardSet())
	if err != nil {
		// The standard set is static data; a collision is a programming
		// error caught by the test suite.
		panic(err)
	}
	return cat
})

// Standard returns the shared catalog of the standard instruction set.
func Standard() *Catalog {
	return standard()
}
