package cpu

// The standard axy instruction set. Opcode numbering is fixed: the
// assembler, disassembler, and every shipped binary depend on it, so new
// instructions may only be appended.

// arith computes the flag set for a raw (pre-wrap) arithmetic result.
// Negative reflects a true result below zero, Overflow a true result above
// 255, and Zero the wrapped byte; incrementing 255 sets Overflow and Zero.
func arith(v int) (fl Flags) {
	switch {
	case v < 0:
		fl = FlagNegative
	case v == 0:
		fl = FlagZero
	case v > 255:
		fl = FlagOverflow
		if v == 256 {
			fl |= FlagZero
		}
	}
	return
}

// addr16 decodes a two-byte big-endian operand, high byte first.
func addr16(data []uint8) int {
	return int(data[0])<<8 | int(data[1])
}

type regFn func(cpu *Cpu) *uint8

func regA(cpu *Cpu) *uint8 { return &cpu.A }
func regX(cpu *Cpu) *uint8 { return &cpu.X }
func regY(cpu *Cpu) *uint8 { return &cpu.Y }

const touchArith = FlagZero | FlagOverflow | FlagNegative

// alu builds a register/register instruction committing arithmetic flags.
func alu(name string, op Op, dst, src regFn, fn func(a, b int) int) Instruction {
	return Instruction{
		Name: name, Op: op, Mode: ModeImplied, Touch: touchArith,
		Exec: func(cpu *Cpu, _ []uint8) Flags {
			d := dst(cpu)
			v := fn(int(*d), int(*src(cpu)))
			*d = uint8(v)
			return arith(v)
		},
	}
}

// step builds an increment or decrement instruction.
func step(name string, op Op, reg regFn, delta int) Instruction {
	return Instruction{
		Name: name, Op: op, Mode: ModeImplied, Touch: touchArith,
		Exec: func(cpu *Cpu, _ []uint8) Flags {
			r := reg(cpu)
			v := int(*r) + delta
			*r = uint8(v)
			return arith(v)
		},
	}
}

// shl builds a shift-left (double) instruction.
func shl(name string, op Op, reg regFn) Instruction {
	return Instruction{
		Name: name, Op: op, Mode: ModeImplied, Touch: touchArith,
		Exec: func(cpu *Cpu, _ []uint8) Flags {
			r := reg(cpu)
			v := int(*r) << 1
			*r = uint8(v)
			return arith(v)
		},
	}
}

// shr builds a shift-right (halve) instruction. An unsigned halve cannot
// overflow or go negative, so only Zero is touched.
func shr(name string, op Op, reg regFn) Instruction {
	return Instruction{
		Name: name, Op: op, Mode: ModeImplied, Touch: FlagZero,
		Exec: func(cpu *Cpu, _ []uint8) Flags {
			r := reg(cpu)
			*r >>= 1
			return arith(int(*r))
		},
	}
}

// equal builds a register equality comparison setting Zero.
func equal(name string, op Op, a, b regFn) Instruction {
	return Instruction{
		Name: name, Op: op, Mode: ModeImplied, Touch: FlagZero,
		Exec: func(cpu *Cpu, _ []uint8) Flags {
			if *a(cpu) == *b(cpu) {
				return FlagZero
			}
			return 0
		},
	}
}

// move builds a register-to-register copy reporting the copied value.
func move(name string, op Op, dst, src regFn) Instruction {
	return Instruction{
		Name: name, Op: op, Mode: ModeImplied, Touch: touchArith,
		Exec: func(cpu *Cpu, _ []uint8) Flags {
			v := *src(cpu)
			*dst(cpu) = v
			return arith(int(v))
		},
	}
}

// load builds an immediate register load. Loads are data movement and
// leave all flags alone.
func load(name string, op Op, reg regFn) Instruction {
	return Instruction{
		Name: name, Op: op, Mode: ModeImmediate, Length: 1,
		Exec: func(cpu *Cpu, data []uint8) Flags {
			*reg(cpu) = data[0]
			return 0
		},
	}
}

// loadIf builds a conditional immediate load, gated on one flag. The
// tested flag is always cleared afterward.
func loadIf(name string, op Op, reg regFn, flag Flags, want bool) Instruction {
	return Instruction{
		Name: name, Op: op, Mode: ModeImmediate, Length: 1, Touch: flag,
		Exec: func(cpu *Cpu, data []uint8) Flags {
			if cpu.Flags.Has(flag) == want {
				*reg(cpu) = data[0]
			}
			return 0
		},
	}
}

// jumpIf builds a conditional absolute jump, gated on one flag. The
// tested flag is always cleared afterward.
func jumpIf(name string, op Op, flag Flags, want bool) Instruction {
	return Instruction{
		Name: name, Op: op, Mode: ModeDirect, Length: 2, Touch: flag,
		Exec: func(cpu *Cpu, data []uint8) Flags {
			if cpu.Flags.Has(flag) == want {
				cpu.Pc = cpu.wrap(addr16(data))
			}
			return 0
		},
	}
}

// jumpRel builds a register-relative jump, wrapping around RAM.
func jumpRel(name string, op Op, reg regFn, sign int) Instruction {
	return Instruction{
		Name: name, Op: op, Mode: ModeImplied,
		Exec: func(cpu *Cpu, _ []uint8) Flags {
			cpu.Pc = cpu.wrap(int(cpu.Pc) + sign*int(*reg(cpu)))
			return 0
		},
	}
}

// store builds a register write to a direct address.
func store(name string, op Op, reg regFn) Instruction {
	return Instruction{
		Name: name, Op: op, Mode: ModeDirect, Length: 2,
		Exec: func(cpu *Cpu, data []uint8) Flags {
			cpu.poke(addr16(data), *reg(cpu))
			return 0
		},
	}
}

// fetchMem builds a register read from a direct address.
func fetchMem(name string, op Op, reg regFn) Instruction {
	return Instruction{
		Name: name, Op: op, Mode: ModeDirect, Length: 2,
		Exec: func(cpu *Cpu, data []uint8) Flags {
			*reg(cpu) = cpu.peek(addr16(data))
			return 0
		},
	}
}

// standardSet returns the descriptor table for the standard instruction
// set, in opcode order.
func standardSet() []Instruction {
	return []Instruction{
		// Control
		{Name: "HLT", Op: 0, Mode: ModeImplied, Touch: FlagHalt,
			Exec: func(cpu *Cpu, _ []uint8) Flags { return FlagHalt }},
		{Name: "CLR", Op: 1, Mode: ModeImplied, Touch: touchArith,
			Exec: func(cpu *Cpu, _ []uint8) Flags {
				cpu.A, cpu.X, cpu.Y = 0, 0, 0
				return 0
			}},
		{Name: "NOP", Op: 2, Mode: ModeImplied,
			Exec: func(cpu *Cpu, _ []uint8) Flags { return 0 }},

		// Arithmetic
		alu("AAX", 3, regA, regX, func(a, b int) int { return a + b }),
		alu("AAY", 4, regA, regY, func(a, b int) int { return a + b }),
		alu("AXY", 5, regX, regY, func(a, b int) int { return a + b }),
		alu("SAX", 6, regA, regX, func(a, b int) int { return a - b }),
		alu("SAY", 7, regA, regY, func(a, b int) int { return a - b }),
		alu("SXY", 8, regX, regY, func(a, b int) int { return a - b }),
		step("INA", 9, regA, 1),
		step("INX", 10, regX, 1),
		step("INY", 11, regY, 1),
		step("DEA", 12, regA, -1),
		step("DEX", 13, regX, -1),
		step("DEY", 14, regY, -1),

		// Bitwise
		alu("NAX", 15, regA, regX, func(a, b int) int { return a & b }),
		alu("NAY", 16, regA, regY, func(a, b int) int { return a & b }),
		alu("NXY", 17, regX, regY, func(a, b int) int { return a & b }),
		alu("OAX", 18, regA, regX, func(a, b int) int { return a | b }),
		alu("OAY", 19, regA, regY, func(a, b int) int { return a | b }),
		alu("OXY", 20, regX, regY, func(a, b int) int { return a | b }),
		alu("XAX", 21, regA, regX, func(a, b int) int { return a ^ b }),
		alu("XAY", 22, regA, regY, func(a, b int) int { return a ^ b }),
		alu("XXY", 23, regX, regY, func(a, b int) int { return a ^ b }),
		shl("BLA", 24, regA),
		shl("BLX", 25, regX),
		shl("BLY", 26, regY),
		shr("BRA", 27, regA),
		shr("BRX", 28, regX),
		shr("BRY", 29, regY),

		// Comparison
		equal("EAX", 30, regA, regX),
		equal("EAY", 31, regA, regY),
		equal("EXY", 32, regX, regY),

		// Absolute and conditional jumps
		{Name: "JMP", Op: 33, Mode: ModeDirect, Length: 2,
			Exec: func(cpu *Cpu, data []uint8) Flags {
				cpu.Pc = cpu.wrap(addr16(data))
				return 0
			}},
		jumpIf("JNZ", 34, FlagZero, false),
		jumpIf("JMZ", 35, FlagZero, true),
		jumpIf("JNN", 36, FlagNegative, false),
		jumpIf("JMN", 37, FlagNegative, true),
		jumpIf("JNO", 38, FlagOverflow, false),
		jumpIf("JMO", 39, FlagOverflow, true),

		// Relative jumps
		jumpRel("JFA", 40, regA, 1),
		jumpRel("JFX", 41, regX, 1),
		jumpRel("JFY", 42, regY, 1),
		jumpRel("JBA", 43, regA, -1),
		jumpRel("JBX", 44, regX, -1),
		jumpRel("JBY", 45, regY, -1),

		// Indirect control flow
		{Name: "JAD", Op: 46, Mode: ModeDirect, Length: 2,
			Exec: func(cpu *Cpu, data []uint8) Flags {
				cpu.Pc = cpu.wrap(cpu.peek16(addr16(data)))
				return 0
			}},
		{Name: "WPC", Op: 47, Mode: ModeDirect, Length: 2,
			Exec: func(cpu *Cpu, data []uint8) Flags {
				cpu.poke16(addr16(data), cpu.Pc)
				return 0
			}},
		{Name: "RPC", Op: 48, Mode: ModeDirect, Length: 2,
			Exec: func(cpu *Cpu, data []uint8) Flags {
				cpu.Pc = cpu.wrap(cpu.peek16(addr16(data)))
				return 0
			}},

		// Loads and register copies
		load("LDA", 49, regA),
		load("LDX", 50, regX),
		load("LDY", 51, regY),
		move("CAX", 52, regX, regA),
		move("CAY", 53, regY, regA),
		move("CXY", 54, regY, regX),
		move("CYX", 55, regX, regY),
		move("CXA", 56, regA, regX),
		move("CYA", 57, regA, regY),

		// Conditional loads
		loadIf("CAZ", 58, regA, FlagZero, true),
		loadIf("NAZ", 59, regA, FlagZero, false),
		loadIf("CAO", 60, regA, FlagOverflow, true),
		loadIf("NAO", 61, regA, FlagOverflow, false),
		loadIf("CAN", 62, regA, FlagNegative, true),
		loadIf("NAN", 63, regA, FlagNegative, false),
		loadIf("CXZ", 64, regX, FlagZero, true),
		loadIf("NXZ", 65, regX, FlagZero, false),
		loadIf("CXO", 66, regX, FlagOverflow, true),
		loadIf("NXO", 67, regX, FlagOverflow, false),
		loadIf("CXN", 68, regX, FlagNegative, true),
		loadIf("NXN", 69, regX, FlagNegative, false),
		loadIf("CYZ", 70, regY, FlagZero, true),
		loadIf("NYZ", 71, regY, FlagZero, false),
		loadIf("CYO", 72, regY, FlagOverflow, true),
		loadIf("NYO", 73, regY, FlagOverflow, false),
		loadIf("CYN", 74, regY, FlagNegative, true),
		loadIf("NYN", 75, regY, FlagNegative, false),

		// Direct memory access
		store("WMA", 76, regA),
		store("WMX", 77, regX),
		store("WMY", 78, regY),
		fetchMem("RMA", 79, regA),
		fetchMem("RMX", 80, regX),
		fetchMem("RMY", 81, regY),

		// Indexed and offset memory access
		{Name: "RMI", Op: 82, Mode: ModeIndexed, Touch: touchArith,
			Exec: func(cpu *Cpu, _ []uint8) Flags {
				cpu.A = cpu.peek(cpu.indexed())
				return arith(int(cpu.A))
			}},
		{Name: "WMI", Op: 83, Mode: ModeIndexed,
			Exec: func(cpu *Cpu, _ []uint8) Flags {
				cpu.poke(cpu.indexed(), cpu.A)
				return 0
			}},
		{Name: "RMO", Op: 84, Mode: ModeOffset, Length: 2, Touch: touchArith,
			Exec: func(cpu *Cpu, data []uint8) Flags {
				cpu.A = cpu.peek(addr16(data) + int(cpu.X))
				return arith(int(cpu.A))
			}},
		{Name: "WMO", Op: 85, Mode: ModeOffset, Length: 2,
			Exec: func(cpu *Cpu, data []uint8) Flags {
				cpu.poke(addr16(data)+int(cpu.X), cpu.A)
				return 0
			}},

		// Block operations: A bytes starting at the indexed address,
		// wrapping around the end of RAM.
		{Name: "FIL", Op: 86, Mode: ModeIndexed, Length: 1,
			Exec: func(cpu *Cpu, data []uint8) Flags {
				start := cpu.indexed()
				for n := range int(cpu.A) {
					cpu.poke(start+n, data[0])
				}
				return 0
			}},
		{Name: "CMP", Op: 87, Mode: ModeIndexed, Length: 2, Touch: FlagZero,
			Exec: func(cpu *Cpu, data []uint8) Flags {
				src := cpu.indexed()
				cmp := addr16(data)
				for n := range int(cpu.A) {
					if cpu.peek(src+n) != cpu.peek(cmp+n) {
						return 0
					}
				}
				return FlagZero
			}},
		{Name: "CPY", Op: 88, Mode: ModeIndexed, Length: 2,
			Exec: func(cpu *Cpu, data []uint8) Flags {
				src := cpu.indexed()
				dst := addr16(data)
				for n := range int(cpu.A) {
					cpu.poke(dst+n, cpu.peek(src+n))
				}
				return 0
			}},
	}
}
