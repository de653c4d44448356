// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO": "0",
}

// Assembler is a two pass assembler for the axy processor.
//
// The first pass parses each line, substitutes equates, evaluates $()
// expressions, and records label offsets. The second pass emits bytes,
// resolving label references, so a label may be used before it is
// defined.
type Assembler struct {
	Verbose bool     // If set, verbosely logs the assembler actions.
	Catalog *Catalog // Instruction set; Standard() if nil.

	predefine map[string]string // Predefines
	Label     map[string]int    // Map of labels to load offsets.
	Equate    map[string]string // Map of equates.
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

func (asm *Assembler) catalog() *Catalog {
	if asm.Catalog == nil {
		asm.Catalog = Standard()
	}
	return asm.Catalog
}

// labelRe matches a word that can only be a label reference.
var labelRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value int, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		v64, _err := strconv.ParseInt(str, 0, 32)
		if _err != nil {
			// Ignore non-integer equates. They may be labels or
			// something else.
			continue
		}
		pred[key] = starlark.MakeInt(int(v64))
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int64, ok := st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value = int(st_int64)
	return
}

// parseLine splits a source line into words, after equate substitution
// and $() evaluation. Directives consume the whole line and return no
// words.
func (asm *Assembler) parseLine(line string, lineno int) (words []string, err error) {
	// Set line number.
	asm.Equate["LINENO"] = fmt.Sprintf("%v", lineno)

	// Do $() evaluations
	re := regexp.MustCompile(`\$\([^\$]*\)`)
	line = re.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return fmt.Sprintf("%v", value)
	})
	if err != nil {
		return
	}

	words = strings.Fields(line)

	if len(words) == 0 {
		return
	}

	// .equ CONST VALUE
	if words[0] == ".equ" {
		if len(words) != 3 {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[words[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[words[1]] = words[2]
		words = words[:0]
		return
	}

	for n, word := range words {
		equate, ok := asm.Equate[word]
		if ok {
			words[n] = equate
		}
	}

	return
}

// width returns the number of bytes a single operand word will emit.
// Hex literals and label references are always two bytes; decimal values
// take one byte up to 255 and two bytes up to 65535.
func (asm *Assembler) width(word string) (size int, err error) {
	switch {
	case strings.HasPrefix(word, "$"):
		_, err = strconv.ParseUint(word[1:], 16, 16)
		if err != nil {
			err = ErrParseNumber(word)
			return
		}
		size = 2
	case word[0] >= '0' && word[0] <= '9':
		var value uint64
		value, err = strconv.ParseUint(word, 10, 16)
		if err != nil {
			err = ErrParseNumber(word)
			return
		}
		size = 1
		if value > 0xff {
			size = 2
		}
	case labelRe.MatchString(word):
		size = 2
	default:
		err = ErrParseValue(word)
	}

	return
}

// encode emits the bytes for a single operand word, resolving label
// references. Two-byte values are emitted high byte first.
func (asm *Assembler) encode(word string) (data []uint8, err error) {
	switch {
	case strings.HasPrefix(word, "$"):
		var value uint64
		value, err = strconv.ParseUint(word[1:], 16, 16)
		if err != nil {
			err = ErrParseNumber(word)
			return
		}
		data = []uint8{uint8(value >> 8), uint8(value)}
	case word[0] >= '0' && word[0] <= '9':
		var value uint64
		value, err = strconv.ParseUint(word, 10, 16)
		if err != nil {
			err = ErrParseNumber(word)
			return
		}
		if value > 0xff {
			data = []uint8{uint8(value >> 8), uint8(value)}
		} else {
			data = []uint8{uint8(value)}
		}
	case labelRe.MatchString(word):
		offset, ok := asm.Label[word]
		if !ok {
			err = ErrLabelMissing(word)
			return
		}
		data = []uint8{uint8(offset >> 8), uint8(offset)}
	default:
		err = ErrParseValue(word)
	}

	return
}

// parseWords sizes one instruction line and records it at the current
// offset. Byte emission waits for the second pass.
func (asm *Assembler) parseWords(words []string, lineno int, offset int) (line Line, err error) {
	in, ok := asm.catalog().ByName(words[0])
	if !ok {
		err = ErrMnemonicUnknown(words[0])
		return
	}

	var got int
	for _, word := range words[1:] {
		var size int
		size, err = asm.width(word)
		if err != nil {
			return
		}
		got += size
	}
	if got != in.Length {
		err = ErrOperandWidth{Mnemonic: in.Name, Want: in.Length, Got: got}
		return
	}

	line = Line{
		LineNo: lineno,
		Offset: offset,
		Words:  words,
	}

	return
}

// Parse assembles an input stream into a Program.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int
	var offset int
	var lines []Line

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	if asm.Label == nil {
		asm.Label = make(map[string]int, 16)
	}
	clear(asm.Label)
	asm.Equate = maps.Clone(sysEquate)
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		text_comment := strings.Split(text, ";")
		line = strings.TrimSpace(text_comment[0])

		var words []string
		words, err = asm.parseLine(line, lineno)
		if err != nil {
			return
		}

		if len(words) == 0 {
			continue
		}

		// :label definitions stand alone on their line.
		if strings.HasPrefix(words[0], ":") {
			label := words[0][1:]
			if !labelRe.MatchString(label) {
				err = ErrParseValue(words[0])
				return
			}
			if len(words) > 1 {
				err = ErrLabelTrailing
				return
			}
			_, ok := asm.Label[label]
			if ok {
				err = ErrLabelDuplicate
				return
			}
			asm.Label[label] = offset
			continue
		}

		var parsed Line
		parsed, err = asm.parseWords(words, lineno, offset)
		if err != nil {
			return
		}

		lines = append(lines, parsed)
		offset += 1
		for _, word := range parsed.Words[1:] {
			size, _ := asm.width(word)
			offset += size
		}
	}
	if err = scanner.Err(); err != nil {
		return
	}

	// Second pass: emit bytes with all labels known.
	for n := range lines {
		emit := &lines[n]
		lineno = emit.LineNo
		line = strings.Join(emit.Words, " ")

		in, _ := asm.catalog().ByName(emit.Words[0])
		emit.Bytes = append(emit.Bytes, uint8(in.Op))
		for _, word := range emit.Words[1:] {
			var data []uint8
			data, err = asm.encode(word)
			if err != nil {
				return
			}
			emit.Bytes = append(emit.Bytes, data...)
		}
	}

	labels := make(map[string]uint16, len(asm.Label))
	for label, at := range asm.Label {
		labels[label] = uint16(at)
	}

	prog = &Program{
		Lines:  lines,
		Labels: labels,
	}

	return
}
