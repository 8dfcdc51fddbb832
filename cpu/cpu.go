package cpu

import (
	"errors"
	"fmt"
	"iter"
	"log"
	"maps"
	"math"

	"github.com/ezrec/transputer/fpu"
)

// Outcome is the result of a single step.
type Outcome int

//go:generate go tool stringer -linecomment -type=Outcome
const (
	OUTCOME_CONTINUE   = Outcome(0) // continue
	OUTCOME_BREAKPOINT = Outcome(1) // breakpoint
	OUTCOME_FAULT      = Outcome(2) // fault
)

const (
	TRUE  = int32(1)
	FALSE = int32(0)

	MOST_NEG = int32(math.MinInt32)
	MOST_POS = int32(math.MaxInt32)
)

// Cpu is the simulation context for a single transputer.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Registers // Register file.

	Memory *Memory // Memory store, owned by this CPU.
	Fpu    fpu.Fpu // Floating-point unit.

	BootPriority int32 // Priority installed by Boot.

	Ticks int // Completed instruction steps.
}

// NewCpu creates a new CPU with memory of size bytes at origin.
func NewCpu(origin int32, size int) (cpu *Cpu) {
	cpu = &Cpu{
		Memory:       NewMemory(origin, size),
		BootPriority: PRIORITY_HIGH,
	}

	return
}

// Defines for the cpu
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	origin := cpu.Memory.Origin()
	size := cpu.Memory.Size()
	defines := map[string]string{
		"MEM_START": fmt.Sprintf("0x%x", uint32(origin)),
		"MEM_SIZE":  fmt.Sprintf("0x%x", size),
		"MEM_END":   fmt.Sprintf("0x%x", uint32(origin+int32(size))),
		"WORD_SIZE": fmt.Sprintf("%d", WORD_SIZE),
	}
	return maps.All(defines)
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	text = cpu.Registers.String()
	text += fmt.Sprintf("% 6s: %v\n", "round", cpu.Fpu.RoundMode)
	text += fmt.Sprintf("% 6s: %v\n", "fperr", cpu.Fpu.Error)
	text += fmt.Sprintf("% 6s: %v\n", "ticks", cpu.Ticks)
	return
}

// Reset the CPU state.
// - Clears the registers, memory and FPU.
// - Zeros statistics counters.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	cpu.Registers.Reset()
	cpu.Memory.Reset()
	cpu.Fpu.Reset()
	cpu.Ticks = 0
}

// Boot resets the CPU, loads code at the memory origin, and prepares to
// execute it. The workspace starts at the first word after the code.
func (cpu *Cpu) Boot(code []byte) (err error) {
	cpu.Reset()

	origin := cpu.Memory.Origin()
	err = cpu.Memory.Load(origin, code)
	if err != nil {
		err = errors.Join(ErrProgramTooLarge, err)
		return
	}

	cpu.SetIptr(origin)
	wptr := (origin + int32(len(code)) + BYTE_MASK) &^ BYTE_MASK
	cpu.SetWdesc(wptr | (cpu.BootPriority & PRIORITY_LOW))

	if cpu.Verbose {
		log.Printf("cpu: boot %d bytes, iptr 0x%08x, wdesc 0x%08x", len(code), uint32(cpu.Iptr()), uint32(cpu.Wdesc()))
	}

	return
}

// Run steps the CPU until a breakpoint or a fault.
func (cpu *Cpu) Run() (err error) {
	for {
		var outcome Outcome
		outcome, err = cpu.Step()
		if outcome != OUTCOME_CONTINUE {
			return
		}
	}
}

// Step executes a single instruction byte.
//
// A fetched byte of 0x00 is a breakpoint, and leaves the CPU state
// unchanged. On a fault, the registers are restored to their state
// before the step, and the returned error is an *ErrFault.
func (cpu *Cpu) Step() (outcome Outcome, err error) {
	saved := cpu.Registers
	iptr := cpu.Iptr()
	direct := DIRECT_NONE
	operand := cpu.Oreg()

	defer func() {
		if err != nil {
			cpu.Registers = saved
			err = &ErrFault{Iptr: iptr, Direct: direct, Operand: operand, Err: err}
			outcome = OUTCOME_FAULT
		}
	}()

	inst, err := cpu.Memory.LoadByte(iptr)
	if err != nil {
		return
	}

	if inst == 0x00 {
		if cpu.Verbose {
			log.Printf("cpu: 0x%08x: breakpoint", uint32(iptr))
		}
		outcome = OUTCOME_BREAKPOINT
		return
	}

	direct = Direct(inst >> 4)
	operand |= int32(inst & 0xf)
	cpu.SetOreg(operand)

	if cpu.Verbose {
		log.Printf("cpu: 0x%08x: %02x %v 0x%x", uint32(iptr), inst, direct, uint32(operand))
	}

	err = cpu.execute(direct)
	if err != nil {
		return
	}

	cpu.Ticks++
	outcome = OUTCOME_CONTINUE
	return
}

// workspace returns the address of a word offset from the workspace.
func (cpu *Cpu) workspace(offset int32) int32 {
	return cpu.Wptr() + offset*WORD_SIZE
}

// boolean converts a condition to TRUE or FALSE.
func boolean(cond bool) int32 {
	if cond {
		return TRUE
	}
	return FALSE
}

// execute performs a direct function, with the operand accumulated in OREG.
func (cpu *Cpu) execute(direct Direct) (err error) {
	oreg := cpu.Oreg()
	next := cpu.Iptr() + 1

	switch direct {
	case DIRECT_PFIX:
		cpu.SetOreg(oreg << 4)
		cpu.SetIptr(next)
		return
	case DIRECT_NFIX:
		cpu.SetOreg((^oreg) << 4)
		cpu.SetIptr(next)
		return
	case DIRECT_J:
		next += oreg
	case DIRECT_LDLP:
		cpu.Push(cpu.workspace(oreg))
	case DIRECT_LDNL:
		a := cpu.Pop() &^ BYTE_MASK
		var value int32
		value, err = cpu.Memory.LoadWord(a + oreg*WORD_SIZE)
		if err != nil {
			return
		}
		cpu.Push(value)
	case DIRECT_LDC:
		cpu.Push(oreg)
	case DIRECT_LDNLP:
		a := cpu.Pop() &^ BYTE_MASK
		cpu.Push(a + oreg*WORD_SIZE)
	case DIRECT_LDL:
		var value int32
		value, err = cpu.Memory.LoadWord(cpu.workspace(oreg))
		if err != nil {
			return
		}
		cpu.Push(value)
	case DIRECT_ADC:
		result := int64(cpu.Pop()) + int64(oreg)
		if result > int64(MOST_POS) || result < int64(MOST_NEG) {
			cpu.SetFlag(STATUS_ERROR)
		}
		cpu.Push(int32(result))
	case DIRECT_CALL:
		a := cpu.Pop()
		b := cpu.Pop()
		c := cpu.Pop()
		wptr := cpu.Wptr() - 4*WORD_SIZE
		err = cpu.Memory.Check(wptr, 4*WORD_SIZE)
		if err != nil {
			return
		}
		cpu.SetWptr(wptr)
		for n, value := range []int32{next, a, b, c} {
			err = cpu.Memory.StoreWord(cpu.workspace(int32(n)), value)
			if err != nil {
				return
			}
		}
		cpu.Push(next)
		next += oreg
	case DIRECT_CJ:
		if cpu.Top() == 0 {
			next += oreg
		} else {
			cpu.Pop()
		}
	case DIRECT_AJW:
		cpu.SetWptr(cpu.workspace(oreg))
	case DIRECT_EQC:
		cpu.Push(boolean(cpu.Pop() == oreg))
	case DIRECT_STL:
		err = cpu.Memory.StoreWord(cpu.workspace(oreg), cpu.Pop())
		if err != nil {
			return
		}
	case DIRECT_STNL:
		a := cpu.Pop() &^ BYTE_MASK
		b := cpu.Pop()
		err = cpu.Memory.StoreWord(a+oreg*WORD_SIZE, b)
		if err != nil {
			return
		}
	case DIRECT_OPR:
		next, err = cpu.operate(Operation(oreg), next)
		if err != nil {
			return
		}
	default:
		err = ErrIllegalInstruction
		return
	}

	cpu.SetOreg(0)
	cpu.SetIptr(next)

	return
}

// operate performs a secondary function, returning the next IPTR.
func (cpu *Cpu) operate(op Operation, next_in int32) (next int32, err error) {
	next = next_in

	switch op {
	case OP_REV:
		cpu.Rev()
	case OP_DUP:
		cpu.Push(cpu.Top())
	case OP_POP:
		cpu.Pop()
	case OP_AND:
		a := cpu.Pop()
		b := cpu.Pop()
		cpu.Push(a & b)
	case OP_OR:
		a := cpu.Pop()
		b := cpu.Pop()
		cpu.Push(a | b)
	case OP_XOR:
		a := cpu.Pop()
		b := cpu.Pop()
		cpu.Push(a ^ b)
	case OP_NOT:
		cpu.Push(^cpu.Pop())
	case OP_SHL:
		a := cpu.Pop() & 0x1f // clamp to 31 bits of shift
		b := cpu.Pop()
		cpu.Push(int32(uint32(b) << uint32(a)))
	case OP_SHR:
		a := cpu.Pop() & 0x1f // clamp to 31 bits of shift
		b := cpu.Pop()
		cpu.Push(int32(uint32(b) >> uint32(a)))
	case OP_GT:
		a := cpu.Pop()
		b := cpu.Pop()
		cpu.Push(boolean(b > a))
	case OP_MINT:
		cpu.Push(MOST_NEG)
	case OP_SUM:
		a := cpu.Pop()
		b := cpu.Pop()
		cpu.Push(b + a)
	case OP_DIFF:
		a := cpu.Pop()
		b := cpu.Pop()
		cpu.Push(b - a)
	case OP_PROD:
		a := cpu.Pop()
		b := cpu.Pop()
		cpu.Push(b * a)
	case OP_BSUB:
		a := cpu.Pop()
		b := cpu.Pop()
		cpu.Push(a + b)
	case OP_WSUB:
		a := cpu.Pop()
		b := cpu.Pop()
		cpu.Push(a + b*WORD_SIZE)
	case OP_WSUBDB:
		a := cpu.Pop()
		b := cpu.Pop()
		cpu.Push(a + b*2*WORD_SIZE)
	case OP_BCNT:
		cpu.Push(cpu.Pop() * WORD_SIZE)
	case OP_WCNT:
		a := cpu.Pop()
		cpu.Push(a & BYTE_MASK)
		cpu.Push(a >> BYTE_SHIFT)
	case OP_LDPI:
		cpu.Push(next + cpu.Pop())
	case OP_LB:
		var value byte
		value, err = cpu.Memory.LoadByte(cpu.Pop())
		if err != nil {
			return
		}
		cpu.Push(int32(value))
	case OP_SB:
		a := cpu.Pop()
		b := cpu.Pop()
		err = cpu.Memory.StoreByte(a, byte(b))
		if err != nil {
			return
		}
	case OP_GCALL:
		a := cpu.Pop()
		cpu.Push(next)
		next = a
	case OP_GAJW:
		a := cpu.Pop()
		cpu.Push(cpu.Wptr())
		cpu.SetWptr(a &^ BYTE_MASK)
	case OP_RET:
		next, err = cpu.Memory.LoadWord(cpu.workspace(0))
		if err != nil {
			return
		}
		cpu.SetWptr(cpu.workspace(4))
	case OP_SETERR:
		cpu.SetFlag(STATUS_ERROR)
	case OP_TESTERR:
		cpu.Push(boolean(!cpu.TestFlag(STATUS_ERROR)))
		cpu.ClearFlag(STATUS_ERROR)
	case OP_TESTLDS:
		cpu.Push(cpu.Status())
	case OP_TESTSTS:
		cpu.Set(REG_STATUS, cpu.Pop())
	case OP_TESTLDD:
		cpu.Push(cpu.Dreg())
	case OP_TESTSTD:
		cpu.Set(REG_DREG, cpu.Pop())
	case OP_TESTLDE:
		cpu.Push(cpu.Ereg())
	case OP_TESTSTE:
		cpu.Set(REG_EREG, cpu.Pop())
	case OP_CLRHALTERR:
		cpu.ClearFlag(STATUS_HALT_ON_ERROR)
	case OP_SETHALTERR:
		cpu.SetFlag(STATUS_HALT_ON_ERROR)
	case OP_TESTHALTERR:
		cpu.Push(boolean(cpu.TestFlag(STATUS_HALT_ON_ERROR)))
	case OP_CLRJ0BREAK:
		cpu.ClearFlag(STATUS_J0_BREAK)
	case OP_SETJ0BREAK:
		cpu.SetFlag(STATUS_J0_BREAK)
	case OP_TESTJ0BREAK:
		cpu.Push(boolean(cpu.TestFlag(STATUS_J0_BREAK)))
	case OP_LDMEMSTARTVAL:
		cpu.Push(cpu.Memory.Origin())
	case OP_LDPRI:
		cpu.Push(cpu.Priority())
	case OP_STHF:
		cpu.Set(REG_FPTR0, cpu.Pop())
	case OP_STHB:
		cpu.Set(REG_BPTR0, cpu.Pop())
	case OP_STLF:
		cpu.Set(REG_FPTR1, cpu.Pop())
	case OP_STLB:
		cpu.Set(REG_BPTR1, cpu.Pop())
	case OP_SAVEH:
		err = cpu.saveQueue(cpu.Pop(), REG_FPTR0, REG_BPTR0)
	case OP_SAVEL:
		err = cpu.saveQueue(cpu.Pop(), REG_FPTR1, REG_BPTR1)
	case OP_FPENTRY:
		err = cpu.fpentry(fpu.Entry(cpu.Pop()))
	default:
		if op.Known() {
			err = ErrUnimplementedInstruction
		} else {
			err = ErrIllegalInstruction
		}
	}

	return
}

// saveQueue stores the front and back pointers of a process queue at addr.
func (cpu *Cpu) saveQueue(addr int32, front Register, back Register) (err error) {
	err = cpu.Memory.Check(addr, 2*WORD_SIZE)
	if err != nil {
		return
	}

	err = cpu.Memory.StoreWord(addr, cpu.Get(front))
	if err != nil {
		return
	}

	err = cpu.Memory.StoreWord(addr+WORD_SIZE, cpu.Get(back))
	return
}

// fpentry forwards a sub-opcode to the FPU, mapping its errors to CPU faults.
func (cpu *Cpu) fpentry(entry fpu.Entry) (err error) {
	cpu.Fpu.Verbose = cpu.Verbose

	err = cpu.Fpu.Execute(entry)
	switch {
	case err == nil:
	case errors.Is(err, fpu.ErrUnimplemented):
		err = errors.Join(ErrUnimplementedInstruction, err)
	default:
		err = errors.Join(ErrIllegalInstruction, err)
	}

	return
}
