package io

import (
	"github.com/axyvm/axy/translate"
)

var f = translate.From

// ErrDisplaySize reports a frame slice that does not match the display
// geometry.
type ErrDisplaySize struct {
	Want int
	Got  int
}

func (err ErrDisplaySize) Error() string {
	return f("display wants %d cells, got %d", err.Want, err.Got)
}

func (err ErrDisplaySize) Is(target error) (ok bool) {
	_, ok = target.(ErrDisplaySize)
	return
}
