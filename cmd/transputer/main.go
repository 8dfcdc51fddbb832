// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"maps"
	"os"
	"slices"
	"strings"

	"golang.org/x/term"

	"github.com/ezrec/transputer/config"
	"github.com/ezrec/transputer/cpu"
	"github.com/ezrec/transputer/emulator"
	"github.com/ezrec/transputer/internal"
)

// symbols prints the mnemonics, then the sorted predefined equates.
func symbols(out io.Writer, emu *emulator.Emulator) {
	defines := maps.Collect(emu.Defines())
	names := internal.IterSeqConcat(
		internal.IterSeq2Keys(cpu.Mnemonics()),
		slices.Values(slices.Sorted(maps.Keys(defines))),
	)
	for name := range names {
		if value, ok := defines[name]; ok {
			fmt.Fprintf(out, "%v = %v\n", name, value)
		} else {
			def, _ := cpu.Lookup(name)
			fmt.Fprintf(out, "%v (%v 0x%x)\n", name, def.Kind, def.Code)
		}
	}
}

// listing prints the program listing, then the disassembly of its binary.
func listing(out io.Writer, prog *cpu.Program) {
	for _, inst := range prog.Instructions {
		fmt.Fprintf(out, "%4d %04x: % -12x %v\n", inst.LineNo, inst.Offset, inst.Bytes, strings.Join(inst.Words, " "))
	}
	fmt.Fprintln(out)
	for offset, text := range cpu.Disassemble(prog.Binary()) {
		fmt.Fprintf(out, "%04x: %v\n", offset, text)
	}
}

// interactive single-steps the emulator from the keyboard.
//
//	space, enter: step
//	r: run to the end
//	q: quit
func interactive(emu *emulator.Emulator, limit int) (err error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		err = fmt.Errorf("stdin is not a terminal")
		return
	}

	state, err := term.MakeRaw(fd)
	if err != nil {
		return
	}
	defer term.Restore(fd, state)

	crlf := func(text string) string {
		return strings.ReplaceAll(text, "\n", "\r\n")
	}

	key := make([]byte, 1)
	running := false
	for steps := 0; limit == 0 || steps < limit; steps++ {
		if !running {
			inst := emu.Instruction()
			if inst != nil {
				fmt.Printf("%4d: %v\r\n", inst.LineNo, strings.Join(inst.Words, " "))
			}
			fmt.Print(crlf(emu.Cpu.String()))
			fmt.Print("[space] step, [r]un, [q]uit> ")

			_, err = os.Stdin.Read(key)
			if err != nil {
				return
			}
			fmt.Print("\r\n")

			switch key[0] {
			case 'q', 'Q', 0x03:
				return
			case 'r', 'R':
				running = true
			}
		}

		var done bool
		done, err = emu.Tick()
		if done || err != nil {
			return
		}
	}

	return
}

func main() {
	var compile string
	var execute string
	var configFile string
	var list bool
	var syms bool
	var limit int
	var step bool
	var verbose bool

	flag.StringVar(&compile, "c", "", "assembly file to run ('-' for stdin)")
	flag.StringVar(&execute, "e", "", "assembly text to run")
	flag.StringVar(&configFile, "config", "", "TOML configuration file")
	flag.BoolVar(&list, "l", false, "Print listing and disassembly, do not execute")
	flag.BoolVar(&syms, "s", false, "Print mnemonics and predefined equates, do not execute")
	flag.IntVar(&limit, "n", 0, "Step limit (0 for unlimited)")
	flag.BoolVar(&step, "i", false, "Interactive single-step mode")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	if len(compile) != 0 && len(execute) != 0 {
		log.Fatalf("%v: -c and -e are exclusive", os.Args[0])
	}

	cfg := config.Default()
	if len(configFile) != 0 {
		var err error
		cfg, err = config.Load(configFile)
		if err != nil {
			log.Fatalf("%v: %v", configFile, err)
		}
	}
	if verbose {
		cfg.Verbose = true
	}

	source := "-e"
	text := execute
	if len(compile) != 0 {
		source = compile
		var data []byte
		var err error
		if compile == "-" {
			data, err = io.ReadAll(os.Stdin)
		} else {
			data, err = os.ReadFile(compile)
		}
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
		text = string(data)
	}

	emu := emulator.NewEmulator(cfg)

	if syms {
		symbols(os.Stdout, emu)
		return
	}

	err := emu.Assemble(text)
	if err != nil {
		log.Fatalf("%v: %v", source, err)
	}

	if list {
		listing(os.Stdout, emu.Program)
		return
	}

	err = emu.Reset()
	if err != nil {
		log.Fatalf("%v: %v", source, err)
	}

	if step {
		err = interactive(emu, limit)
	} else {
		for steps := 0; limit == 0 || steps < limit; steps++ {
			var done bool
			done, err = emu.Tick()
			if done || err != nil {
				break
			}
		}
	}

	fmt.Print(emu.Cpu.String())

	if err != nil {
		log.Fatalf("%v: %v", source, err)
	}
}
