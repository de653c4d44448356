package io

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisplayDraw(t *testing.T) {
	assert := assert.New(t)

	out := &bytes.Buffer{}
	disp := NewDisplay(4, 2, out)

	assert.Equal(8, disp.Len())

	err := disp.Draw([]uint8{'H', 'i', '!', ' ', 0, 'o', 'k', 0xff})
	assert.NoError(err)
	assert.Equal("Hi! \n ok \n", out.String())
}

func TestDisplaySize(t *testing.T) {
	assert := assert.New(t)

	disp := NewDisplay(4, 2, &bytes.Buffer{})

	err := disp.Draw([]uint8{1, 2, 3})
	assert.Error(err)
	assert.True(errors.Is(err, ErrDisplaySize{}))
}

type failWriter struct{}

func (failWriter) Write(p []byte) (int, error) {
	return 0, errors.New("closed")
}

func TestDisplayWriteError(t *testing.T) {
	assert := assert.New(t)

	disp := NewDisplay(2, 1, failWriter{})

	err := disp.Draw([]uint8{'a', 'b'})
	assert.ErrorContains(err, "display write")
	assert.ErrorContains(err, "closed")
}

func TestDisplayDefines(t *testing.T) {
	assert := assert.New(t)

	disp := NewDisplay(80, 50, nil)

	defines := map[string]string{}
	for key, value := range disp.Defines() {
		defines[key] = value
	}

	assert.Equal("80", defines["DISPLAY_COLS"])
	assert.Equal("50", defines["DISPLAY_ROWS"])
}
