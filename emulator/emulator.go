// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"fmt"
	"iter"
	"log"
	"maps"
	"strings"

	"github.com/ezrec/transputer/config"
	"github.com/ezrec/transputer/cpu"
	"github.com/ezrec/transputer/internal"
)

var _emulator_defines = map[string]string{
	"TRUE":          fmt.Sprintf("%d", cpu.TRUE),
	"FALSE":         fmt.Sprintf("%d", cpu.FALSE),
	"MOST_NEG":      fmt.Sprintf("%d", cpu.MOST_NEG),
	"MOST_POS":      fmt.Sprintf("%d", cpu.MOST_POS),
	"PRIORITY_HIGH": fmt.Sprintf("%d", cpu.PRIORITY_HIGH),
	"PRIORITY_LOW":  fmt.Sprintf("%d", cpu.PRIORITY_LOW),
}

// Emulator state. CPU + program listing.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Reference to the currently running program listing.

	Config *config.Config // Configuration the emulator was created with.
}

// NewEmulator creates a new emulator. A nil configuration selects the
// defaults.
func NewEmulator(cfg *config.Config) (emu *Emulator) {
	if cfg == nil {
		cfg = config.Default()
	}

	emu = &Emulator{
		Verbose: cfg.Verbose,
		Cpu:     cpu.NewCpu(cfg.Origin(), cfg.Memory.Size),
		Program: &cpu.Program{},
		Config:  cfg,
	}

	emu.Cpu.BootPriority = cfg.BootPriority()

	return
}

// Defines returns an iterator over all of the defines. Configured
// defines come last, so they override the built-in ones.
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(maps.All(_emulator_defines),
		emu.Cpu.Defines(),
		maps.All(emu.Config.Assembler.Defines),
	)
}

// Assemble assembles text as the current program.
func (emu *Emulator) Assemble(text string) (err error) {
	asm := &cpu.Assembler{
		Verbose: emu.Verbose,
		Strict:  emu.Config.Assembler.Strict,
	}
	for equ, value := range emu.Defines() {
		asm.Predefine(equ, value)
	}

	prog, err := asm.Assemble(text)
	if err != nil {
		return
	}

	emu.Program = prog

	return
}

// Reset boots the CPU with the current program.
func (emu *Emulator) Reset() (err error) {
	emu.Cpu.Verbose = emu.Verbose

	err = emu.Cpu.Boot(emu.Program.Binary())
	if err != nil {
		return
	}

	if emu.Verbose {
		log.Printf("emulator: reset, %d instructions", len(emu.Program.Instructions))
	}

	return
}

// Ticks returns the total ticks since a reset.
func (emu *Emulator) Ticks() int {
	return emu.Cpu.Ticks
}

// Debug returns the program location of the instruction pointer.
func (emu *Emulator) Debug() cpu.Debug {
	return emu.Program.Debug(int(emu.Cpu.Iptr() - emu.Cpu.Memory.Origin()))
}

// Instruction returns the program instruction at the instruction pointer,
// or nil if it is outside of the program.
func (emu *Emulator) Instruction() *cpu.Instruction {
	return emu.Debug().Instruction
}

// LineNo returns the current line number for the executing instruction.
func (emu *Emulator) LineNo() int {
	inst := emu.Instruction()
	if inst == nil {
		return 0
	}

	return inst.LineNo
}

// Tick performs a single step of the emulator. Done is set when the CPU
// reaches a breakpoint.
func (emu *Emulator) Tick() (done bool, err error) {
	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose

	inst := emu.Instruction()
	defer func() {
		if err != nil {
			rt := &ErrRuntime{Err: err}
			if inst != nil {
				rt.LineNo = inst.LineNo
				rt.Text = strings.Join(inst.Words, " ")
			}
			err = rt
		}
	}()

	outcome, err := emu.Cpu.Step()
	if err != nil {
		return
	}

	done = outcome == cpu.OUTCOME_BREAKPOINT
	if done && emu.Verbose {
		log.Printf("emulator: breakpoint at line %d, %d ticks", emu.LineNo(), emu.Ticks())
	}

	return
}

// Run ticks the emulator until a breakpoint or a fault.
func (emu *Emulator) Run() (err error) {
	for {
		var done bool
		done, err = emu.Tick()
		if done || err != nil {
			return
		}
	}
}
