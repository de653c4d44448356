package cpu

import (
	"iter"
)

// Line is one assembled source line: its location in the source, its
// load offset, the parsed words, and the emitted bytes.
type Line struct {
	LineNo int      // Source line number.
	Offset int      // Load offset of the first byte.
	Words  []string // Parsed words, after equate substitution.
	Bytes  []uint8  // Emitted opcode and operand bytes.
}

// Program is the output of the assembler: the assembled lines plus the
// resolved label table.
type Program struct {
	Lines  []Line
	Labels map[string]uint16
}

// Debug locates an address within its source line.
type Debug struct {
	*Line
	Index int
}

// Debug maps a program counter back to the source line that emitted it.
func (prog *Program) Debug(pc uint16) (dbg Debug) {
	for n, line := range prog.Lines {
		if int(pc) >= line.Offset && int(pc) < line.Offset+len(line.Bytes) {
			dbg = Debug{
				Line:  &prog.Lines[n],
				Index: int(pc) - line.Offset,
			}
			break
		}
	}

	return
}

// Bytes iterates the program's bytes with their load addresses.
func (prog *Program) Bytes() iter.Seq2[uint16, uint8] {
	return func(yield func(addr uint16, value uint8) bool) {
		for _, line := range prog.Lines {
			for n, value := range line.Bytes {
				if !yield(uint16(line.Offset+n), value) {
					return
				}
			}
		}
	}
}

// Binary returns the program as a flat loadable image, zero-filled
// between lines.
func (prog *Program) Binary() (bin []uint8) {
	for addr, value := range prog.Bytes() {
		if int(addr) >= len(bin) {
			bin = append(bin, make([]uint8, int(addr)+1-len(bin))...)
		}
		bin[addr] = value
	}

	return
}
