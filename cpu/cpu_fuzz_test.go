package cpu

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

// FuzzTick runs arbitrary opcode bytes through the engine and checks the
// invariants that hold for every instruction: flags outside the Touch
// mask survive, the tick counter moves only on success, and an unknown
// opcode leaves the program counter on the bad byte.
func FuzzTick(f *testing.F) {
	for op := range 100 {
		f.Add(uint8(op), uint8(0x12), uint8(0x34), uint8(0))
		f.Add(uint8(op), uint8(0xff), uint8(0xff), uint8(0xb))
	}

	f.Fuzz(func(t *testing.T, op, d0, d1, fl uint8) {
		assert := assert.New(t)

		cpu := NewCpu(RamSizeMin)
		cpu.Flags = Flags(fl) & (FlagZero | FlagOverflow | FlagNegative)
		cpu.A, cpu.X, cpu.Y = 3, 5, 7
		cpu.Ram[0] = op
		cpu.Ram[1] = d0
		cpu.Ram[2] = d1

		before := cpu.Flags

		err := cpu.Tick()

		in, lookupErr := cpu.Catalog.Lookup(Op(op))
		if lookupErr != nil {
			assert.True(errors.Is(err, ErrOpcodeUnknown{}))
			assert.Equal(uint16(0), cpu.Pc)
			assert.Equal(0, cpu.Ticks)
			return
		}

		assert.NoError(err)
		assert.Equal(1, cpu.Ticks)
		assert.Equal(before&^in.Touch, cpu.Flags&^in.Touch,
			"%v changed flags outside %v", in.Name, in.Touch)
	})
}
