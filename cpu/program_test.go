package cpu

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgram_Debug(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	prog, err := asm.Parse(strings.NewReader("LDA 1\nWMA $0100\nHLT"))
	require.NoError(t, err)

	// LDA 1 occupies offsets 0-1.
	dbg := prog.Debug(0)
	assert.NotNil(dbg.Line)
	assert.Equal(1, dbg.Line.LineNo)
	assert.Equal(0, dbg.Index)

	dbg = prog.Debug(1)
	assert.NotNil(dbg.Line)
	assert.Equal(1, dbg.Line.LineNo)
	assert.Equal(1, dbg.Index)

	// WMA $0100 occupies offsets 2-4.
	dbg = prog.Debug(4)
	assert.NotNil(dbg.Line)
	assert.Equal(2, dbg.Line.LineNo)
	assert.Equal(2, dbg.Index)

	dbg = prog.Debug(5)
	assert.NotNil(dbg.Line)
	assert.Equal(3, dbg.Line.LineNo)
}

func TestProgram_Debug_NotFound(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	prog, err := asm.Parse(strings.NewReader("NOP"))
	require.NoError(t, err)

	dbg := prog.Debug(10)
	assert.Nil(dbg.Line)
	assert.Equal(0, dbg.Index)
}

func TestProgram_Bytes(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	prog, err := asm.Parse(strings.NewReader("LDA 7\nHLT"))
	require.NoError(t, err)

	var addrs []uint16
	var values []uint8
	for addr, value := range prog.Bytes() {
		addrs = append(addrs, addr)
		values = append(values, value)
	}

	assert.Equal([]uint16{0, 1, 2}, addrs)
	assert.Equal([]uint8{49, 7, 0}, values)
}

func TestProgram_Binary(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	prog, err := asm.Parse(strings.NewReader("JMP end\nLDA 1\n:end\nHLT"))
	require.NoError(t, err)

	assert.Equal([]uint8{33, 0, 5, 49, 1, 0}, prog.Binary())
}
