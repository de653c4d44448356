package cpu

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStandardCatalog(t *testing.T) {
	assert := assert.New(t)

	cat := Standard()
	assert.Equal(89, cat.Len())

	// All iterates in ascending opcode order with unique mnemonics.
	last := -1
	names := map[string]bool{}
	for in := range cat.All() {
		assert.Greater(int(in.Op), last, in.Name)
		assert.False(names[in.Name], in.Name)
		names[in.Name] = true
		last = int(in.Op)

		assert.GreaterOrEqual(in.Length, 0, in.Name)
		assert.LessOrEqual(in.Length, 2, in.Name)
		assert.NotNil(in.Exec, in.Name)
	}

	in, ok := cat.ByName("LDA")
	assert.True(ok)
	assert.Equal(Op(49), in.Op)
	assert.Equal(ModeImmediate, in.Mode)

	_, err := cat.Lookup(Op(200))
	assert.True(errors.Is(err, ErrOpcodeUnknown{}))
}

func TestCatalogCollision(t *testing.T) {
	assert := assert.New(t)

	_, err := NewCatalog([]Instruction{
		{Name: "AAA", Op: 1},
		{Name: "BBB", Op: 1},
	})
	assert.True(errors.Is(err, ErrOpcodeCollision{}))

	_, err = NewCatalog([]Instruction{
		{Name: "AAA", Op: 1},
		{Name: "AAA", Op: 2},
	})
	assert.True(errors.Is(err, ErrOpcodeCollision{}))
}

func TestFlagsString(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("----", Flags(0).String())
	assert.Equal("Z--N", (FlagZero | FlagNegative).String())
	assert.Equal("ZOHN", (FlagZero | FlagOverflow | FlagHalt | FlagNegative).String())
}

func TestAddrModeString(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("implied", ModeImplied.String())
	assert.Equal("indexed", ModeIndexed.String())
	assert.Equal("offset", ModeOffset.String())
}
