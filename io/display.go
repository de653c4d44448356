// Package io provides peripheral models for the axy machine.
package io

import (
	"fmt"
	stdio "io"
	"iter"
	"maps"

	"github.com/pkg/errors"
)

// Display is a character cell display. The machine writes bytes into a
// RAM region; the emulator hands that region to Draw after each step.
// Bytes outside the printable ASCII range render as spaces.
type Display struct {
	Cols   int          // Cells per row.
	Rows   int          // Rows per frame.
	Output stdio.Writer // Frame destination.
}

// NewDisplay creates a display with the given geometry.
func NewDisplay(cols, rows int, output stdio.Writer) (disp *Display) {
	disp = &Display{
		Cols:   cols,
		Rows:   rows,
		Output: output,
	}

	return
}

// Len returns the frame size in cells.
func (disp *Display) Len() int {
	return disp.Cols * disp.Rows
}

// Defines for the display geometry.
func (disp *Display) Defines() iter.Seq2[string, string] {
	return maps.All(map[string]string{
		"DISPLAY_COLS": fmt.Sprintf("%v", disp.Cols),
		"DISPLAY_ROWS": fmt.Sprintf("%v", disp.Rows),
	})
}

// Draw renders one frame from a RAM slice. The slice length must match
// the display geometry exactly.
func (disp *Display) Draw(data []uint8) (err error) {
	if len(data) != disp.Len() {
		err = ErrDisplaySize{Want: disp.Len(), Got: len(data)}
		return
	}

	frame := make([]byte, 0, (disp.Cols+1)*disp.Rows)
	for row := range disp.Rows {
		for col := range disp.Cols {
			ch := data[row*disp.Cols+col]
			if ch < 0x20 || ch > 0x7e {
				ch = ' '
			}
			frame = append(frame, ch)
		}
		frame = append(frame, '\n')
	}

	_, err = disp.Output.Write(frame)
	if err != nil {
		err = errors.Wrap(err, "display write")
	}

	return
}
