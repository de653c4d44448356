package cpu

import (
	"errors"

	"github.com/axyvm/axy/translate"
)

var f = translate.From

var (
	// Assembler errors
	ErrEquateSyntax    = errors.New(f(".equ syntax"))
	ErrEquateDuplicate = errors.New(f(".equ duplicated"))
	ErrLabelDuplicate  = errors.New(f("label duplicated"))
	ErrLabelTrailing   = errors.New(f("label must stand alone on its line"))
)

// ErrOpcodeCollision reports two instructions claiming the same opcode byte.
type ErrOpcodeCollision struct {
	Op   Op
	Have string
	Add  string
}

func (err ErrOpcodeCollision) Error() string {
	return f("opcode 0x%02x claimed by both %v and %v", uint8(err.Op), err.Have, err.Add)
}

func (err ErrOpcodeCollision) Is(target error) (ok bool) {
	_, ok = target.(ErrOpcodeCollision)
	return
}

// ErrOpcodeUnknown reports a fetch of an opcode byte with no catalog entry.
// Execution stops immediately; the processor state remains inspectable.
type ErrOpcodeUnknown struct {
	Op Op
	Pc uint16
}

func (err ErrOpcodeUnknown) Error() string {
	return f("unknown opcode 0x%02x at 0x%04x", uint8(err.Op), err.Pc)
}

func (err ErrOpcodeUnknown) Is(target error) (ok bool) {
	_, ok = target.(ErrOpcodeUnknown)
	return
}

// ErrMnemonicUnknown reports a mnemonic with no catalog entry.
type ErrMnemonicUnknown string

func (err ErrMnemonicUnknown) Error() string {
	return f("unknown mnemonic %v", string(err))
}

// ErrLabelMissing reports a label referenced but never defined.
type ErrLabelMissing string

func (err ErrLabelMissing) Error() string {
	return f("label %v missing", string(err))
}

// ErrOperandWidth reports operand bytes that disagree with the
// instruction's declared operand length.
type ErrOperandWidth struct {
	Mnemonic string
	Want     int
	Got      int
}

func (err ErrOperandWidth) Error() string {
	return f("%v wants %d operand bytes, got %d", err.Mnemonic, err.Want, err.Got)
}

func (err ErrOperandWidth) Is(target error) (ok bool) {
	_, ok = target.(ErrOperandWidth)
	return
}

// ErrSyntax wraps an assembly error with its source location.
type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseValue string

func (err ErrParseValue) Error() string {
	return f("'%v' is not a value or label", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

// ErrLoadSize reports program data that does not fit in RAM.
type ErrLoadSize struct {
	End  int
	Size int
}

func (err ErrLoadSize) Error() string {
	return f("data exceeds ram size: %d > %d", err.End, err.Size)
}
