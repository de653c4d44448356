// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/axyvm/axy/cpu"
	"github.com/axyvm/axy/emulator"
	"github.com/axyvm/axy/io"
)

func main() {
	var compile string
	var binary string
	var save bool
	var disassemble string
	var display string
	var budget int
	var verbose bool

	flag.StringVar(&compile, "c", "", ".axy file to assemble")
	flag.StringVar(&binary, "o", "", "Binary file to save or load")
	flag.BoolVar(&save, "s", false, "Save the binary, do not execute")
	flag.StringVar(&disassemble, "d", "", "Binary file to disassemble")
	flag.StringVar(&display, "g", "", "Display geometry, COLSxROWS")
	flag.IntVar(&budget, "t", 0, "Tick budget, 0 for unlimited")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	if len(disassemble) != 0 {
		code, err := os.ReadFile(disassemble)
		if err != nil {
			log.Fatalf("%v: %v", disassemble, err)
		}
		dis := &cpu.Disassembler{}
		os.Stdout.WriteString(dis.Disassemble(code))
		return
	}

	emu := emulator.NewEmulator()
	emu.Verbose = verbose

	if len(display) != 0 {
		cols, rows, err := geometry(display)
		if err != nil {
			log.Fatalf("%v: %v", display, err)
		}
		emu.Attach(io.NewDisplay(cols, rows, os.Stdout))
	}

	// Assemble a new program.
	if len(compile) != 0 {
		inf, err := os.Open(compile)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
		defer inf.Close()

		asm := &cpu.Assembler{Verbose: verbose}
		for key, value := range emu.Defines() {
			asm.Predefine(key, value)
		}

		emu.Program, err = asm.Parse(inf)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}

		if len(binary) != 0 {
			err = os.WriteFile(binary, emu.Program.Binary(), 0o644)
			if err != nil {
				log.Fatalf("%v: %v", binary, err)
			}
		}
	} else if len(binary) != 0 {
		code, err := os.ReadFile(binary)
		if err != nil {
			log.Fatalf("%v: %v", binary, err)
		}
		emu.Program = &cpu.Program{
			Lines: []cpu.Line{{LineNo: 1, Bytes: code}},
		}
	}

	if save {
		return
	}

	err := emu.Reset()
	if err != nil {
		log.Fatal(err)
	}

	err = emu.Run(budget, nil)
	if err != nil {
		log.Fatal(err)
	}

	if verbose {
		log.Printf("axy: %v ticks: %v", emu.Cpu.String(), emu.Cpu.Ticks)
	}
}

// geometry parses a COLSxROWS display size.
func geometry(text string) (cols, rows int, err error) {
	c, r, ok := strings.Cut(text, "x")
	if ok {
		cols, err = strconv.Atoi(c)
		if err == nil {
			rows, err = strconv.Atoi(r)
		}
	}
	if !ok || err != nil || cols <= 0 || rows <= 0 {
		err = errors.Errorf("bad geometry %q", text)
	}
	return
}
