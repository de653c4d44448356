package cpu

import (
	"fmt"
	"strings"
)

// control transfer mnemonics whose direct operand is a code address,
// worth a synthesized label in listings.
var jumpTargets = map[string]bool{
	"JMP": true,
	"JNZ": true, "JMZ": true,
	"JNN": true, "JMN": true,
	"JNO": true, "JMO": true,
	"JAD": true, "WPC": true, "RPC": true,
}

// Disassembler converts a machine code image back to assembly text.
type Disassembler struct {
	Catalog *Catalog // Instruction set; Standard() if nil.
}

func (dis *Disassembler) catalog() *Catalog {
	if dis.Catalog == nil {
		dis.Catalog = Standard()
	}
	return dis.Catalog
}

// labels scans the image for control transfer targets and names them in
// order of discovery.
func (dis *Disassembler) labels(code []uint8) (labels map[int]string) {
	labels = make(map[int]string)

	pc := 0
	for pc < len(code) {
		in, err := dis.catalog().Lookup(Op(code[pc]))
		if err != nil {
			pc++
			continue
		}

		if jumpTargets[in.Name] && pc+2 < len(code) {
			target := int(code[pc+1])<<8 | int(code[pc+2])
			if _, ok := labels[target]; !ok && target < len(code) {
				labels[target] = fmt.Sprintf("L%d", len(labels)+1)
			}
		}

		pc += 1 + in.Length
	}

	return
}

// Disassemble converts a machine code image to assembly text that the
// assembler accepts back. Control transfer targets become labels; other
// two-byte operands appear as hex literals, one-byte operands as
// decimals. Bytes with no catalog entry appear as data comments.
func (dis *Disassembler) Disassemble(code []uint8) (text string) {
	labels := dis.labels(code)

	var out strings.Builder

	pc := 0
	for pc < len(code) {
		if label, ok := labels[pc]; ok {
			fmt.Fprintf(&out, ":%v\n", label)
		}

		in, err := dis.catalog().Lookup(Op(code[pc]))
		if err != nil || pc+in.Length >= len(code) {
			fmt.Fprintf(&out, "; data %d\n", code[pc])
			pc++
			continue
		}

		switch in.Length {
		case 0:
			fmt.Fprintf(&out, "%v\n", in.Name)
		case 1:
			fmt.Fprintf(&out, "%v %d\n", in.Name, code[pc+1])
		case 2:
			addr := int(code[pc+1])<<8 | int(code[pc+2])
			if label, ok := labels[addr]; ok {
				fmt.Fprintf(&out, "%v %v\n", in.Name, label)
			} else {
				fmt.Fprintf(&out, "%v $%04X\n", in.Name, addr)
			}
		}

		pc += 1 + in.Length
	}

	return out.String()
}
