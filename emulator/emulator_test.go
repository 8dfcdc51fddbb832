package emulator

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/transputer/config"
	"github.com/ezrec/transputer/cpu"
)

func TestEmulator(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator(nil)

	assert.False(emu.Verbose)
	assert.NotNil(emu.Cpu)
	assert.Equal(cpu.MEM_START, emu.Cpu.Memory.Origin())
	assert.Equal(cpu.MEM_SIZE, emu.Cpu.Memory.Size())
	assert.Equal(cpu.PRIORITY_HIGH, emu.Cpu.BootPriority)
}

func doRunSingle(emu *Emulator, program []string, t *testing.T) {
	assert := assert.New(t)

	err := emu.Assemble(strings.Join(program, "\n"))
	assert.NoError(err)

	err = emu.Reset()
	assert.NoError(err)

	origin := emu.Cpu.Memory.Origin()
	for _, inst := range emu.Program.Instructions {
		assert.Equal(inst.LineNo, emu.LineNo())
		here := program[emu.LineNo()-1]
		for c := range len(inst.Bytes) {
			assert.Equal(origin+int32(inst.Offset+c), emu.Iptr(), here)
			debug := emu.Debug()
			assert.Equal(c, debug.Index, here)
			done, err := emu.Tick()
			if err != nil {
				t.Log(emu.Cpu.String())
				t.Fatalf("%v", err)
			}
			assert.Equal(debug.Bytes[debug.Index], inst.Bytes[c])
			assert.False(done, here)
		}
	}

	done, err := emu.Tick()
	assert.NoError(err)
	assert.True(done)
	assert.Nil(emu.Instruction())
	assert.Equal(0, emu.LineNo())
}

func TestEmulatorProgram(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator(nil)

	program := []string{
		"# Sum of three values",
		"ldc 3",
		"ldc 0x345 ; sum",
		"",
		"ldc -2",
		"sum",
		"ldc MOST_POS",
	}
	doRunSingle(emu, program, t)

	assert.Equal(int32(0x7fffffff), emu.Areg())
	assert.Equal(int32(0x346), emu.Breg())
	assert.Equal(1+3+2+2+2+8, emu.Ticks())
}

func TestEmulatorDefines(t *testing.T) {
	assert := assert.New(t)

	cfg := config.Default()
	cfg.Memory.Start = 0x80001000
	cfg.Assembler.Defines = map[string]string{
		"COUNT":    "12",
		"MOST_POS": "7",
	}
	emu := NewEmulator(cfg)

	defines := map[string]string{}
	for equ, value := range emu.Defines() {
		defines[equ] = value
	}
	assert.Equal("0x80001000", defines["MEM_START"])
	assert.Equal("12", defines["COUNT"])

	err := emu.Assemble("ldc MEM_START; ldc COUNT; ldc MOST_POS; ldc $(COUNT * WORD_SIZE)")
	assert.NoError(err)
	err = emu.Reset()
	assert.NoError(err)
	err = emu.Run()
	assert.NoError(err)

	assert.Equal(int32(48), emu.Areg())
	assert.Equal(int32(7), emu.Breg())
	assert.Equal(int32(12), emu.Creg())
}

func TestEmulatorMemStart(t *testing.T) {
	assert := assert.New(t)

	cfg := config.Default()
	cfg.Memory.Start = 0x80000100
	emu := NewEmulator(cfg)

	err := emu.Assemble("ldmemstartval")
	assert.NoError(err)
	err = emu.Reset()
	assert.NoError(err)
	assert.Equal(int32(-0x80000000+0x100), emu.Iptr())

	err = emu.Run()
	assert.NoError(err)
	assert.Equal(int32(-0x80000000+0x100), emu.Areg())
}

func TestEmulatorPriority(t *testing.T) {
	table := [](struct {
		priority string
		expected int32
	}){
		{config.PRIORITY_HIGH, cpu.PRIORITY_HIGH},
		{config.PRIORITY_LOW, cpu.PRIORITY_LOW},
	}

	for _, entry := range table {
		t.Run(entry.priority, func(t *testing.T) {
			assert := assert.New(t)

			cfg := config.Default()
			cfg.Boot.Priority = entry.priority
			emu := NewEmulator(cfg)

			err := emu.Assemble("ldpri")
			assert.NoError(err)
			err = emu.Reset()
			assert.NoError(err)
			err = emu.Run()
			assert.NoError(err)
			assert.Equal(entry.expected, emu.Areg())
			assert.Equal(entry.expected, emu.Priority())
		})
	}
}

func TestEmulatorFault(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator(nil)

	err := emu.Assemble("ldc 5\nldc 7\n\nldnl  0 # out of bounds\nldc 1")
	assert.NoError(err)
	err = emu.Reset()
	assert.NoError(err)

	err = emu.Run()
	assert.Error(err)

	var rt *ErrRuntime
	assert.True(errors.As(err, &rt))
	assert.Equal(4, rt.LineNo)
	assert.Equal("ldnl 0", rt.Text)
	assert.Equal(cpu.FAULT_MEMORY_BOUNDS, cpu.FaultOf(err))

	var fault *cpu.ErrFault
	assert.True(errors.As(err, &fault))
	assert.Equal(cpu.DIRECT_LDNL, fault.Direct)

	// The faulting instruction is not consumed.
	assert.Equal(4, emu.LineNo())
	assert.Equal(int32(7), emu.Areg())
	assert.Equal(int32(5), emu.Breg())
	assert.Equal(2, emu.Ticks())
}

func TestEmulatorStrict(t *testing.T) {
	assert := assert.New(t)

	cfg := config.Default()
	cfg.Assembler.Strict = true
	emu := NewEmulator(cfg)

	err := emu.Assemble("ldc 1\nbogus")
	assert.ErrorIs(err, cpu.ErrMnemonicUnknown)

	var syntax *cpu.ErrSyntax
	assert.True(errors.As(err, &syntax))
	assert.Equal(2, syntax.LineNo)

	lenient := NewEmulator(nil)
	err = lenient.Assemble("ldc 1\nbogus")
	assert.NoError(err)
	assert.Equal(1, len(lenient.Program.Instructions))
}

func TestEmulatorTooLarge(t *testing.T) {
	assert := assert.New(t)

	cfg := config.Default()
	cfg.Memory.Size = 4
	emu := NewEmulator(cfg)

	err := emu.Assemble("ldc 0x12345678")
	assert.NoError(err)
	err = emu.Reset()
	assert.ErrorIs(err, cpu.ErrProgramTooLarge)
}

func TestErrRuntime(t *testing.T) {
	assert := assert.New(t)

	err := &ErrRuntime{LineNo: 3, Text: "ldnl 0", Err: cpu.ErrIllegalInstruction}
	assert.Equal("line 3: ldnl 0: illegal instruction", err.Error())
	assert.ErrorIs(err, cpu.ErrIllegalInstruction)

	err = &ErrRuntime{LineNo: 0, Err: cpu.ErrIllegalInstruction}
	assert.Equal("line 0: illegal instruction", err.Error())
}
