package cpu

import (
	"fmt"
	"strings"
)

// Register is an index into the register file.
type Register int

//go:generate go tool stringer -linecomment -type=Register
const (
	REG_IPTR   = Register(iota) // iptr
	REG_WDESC                   // wdesc
	REG_AREG                    // areg
	REG_BREG                    // breg
	REG_CREG                    // creg
	REG_OREG                    // oreg
	REG_DREG                    // dreg
	REG_EREG                    // ereg
	REG_STATUS                  // status
	REG_FPTR0                   // fptr0
	REG_FPTR1                   // fptr1
	REG_BPTR0                   // bptr0
	REG_BPTR1                   // bptr1
	REG_CLOCK0                  // clock0
	REG_CLOCK1                  // clock1
)

// Number of registers.
const REG_COUNT = 15

// Status register flags.
const (
	STATUS_HALT_ON_ERROR = int32(1 << 7)   // Halt when an error is flagged.
	STATUS_J0_BREAK      = int32(1 << 8)   // 'j 0' acts as a breakpoint.
	STATUS_ERROR         = int32(-1 << 31) // Error flag.
)

// Workspace priorities, held in bit 0 of WDESC.
const (
	PRIORITY_HIGH = int32(0)
	PRIORITY_LOW  = int32(1)
)

// Registers is the register file.
//
// AREG, BREG and CREG are the evaluation stack, AREG being the top.
// WDESC holds the workspace pointer in its upper bits and the process
// priority in bit 0.
type Registers struct {
	Register [REG_COUNT]int32
}

// Get returns the value of a register.
func (r *Registers) Get(reg Register) int32 {
	return r.Register[reg]
}

// Set sets the value of a register.
func (r *Registers) Set(reg Register, value int32) {
	r.Register[reg] = value
}

func (r *Registers) Iptr() int32   { return r.Register[REG_IPTR] }
func (r *Registers) Wdesc() int32  { return r.Register[REG_WDESC] }
func (r *Registers) Areg() int32   { return r.Register[REG_AREG] }
func (r *Registers) Breg() int32   { return r.Register[REG_BREG] }
func (r *Registers) Creg() int32   { return r.Register[REG_CREG] }
func (r *Registers) Oreg() int32   { return r.Register[REG_OREG] }
func (r *Registers) Dreg() int32   { return r.Register[REG_DREG] }
func (r *Registers) Ereg() int32   { return r.Register[REG_EREG] }
func (r *Registers) Status() int32 { return r.Register[REG_STATUS] }

func (r *Registers) SetIptr(value int32)  { r.Register[REG_IPTR] = value }
func (r *Registers) SetWdesc(value int32) { r.Register[REG_WDESC] = value }
func (r *Registers) SetOreg(value int32)  { r.Register[REG_OREG] = value }

// Wptr returns the workspace pointer.
func (r *Registers) Wptr() int32 {
	return r.Register[REG_WDESC] &^ PRIORITY_LOW
}

// SetWptr sets the word-aligned workspace pointer, preserving the priority.
func (r *Registers) SetWptr(wptr int32) {
	r.Register[REG_WDESC] = (wptr &^ BYTE_MASK) | r.Priority()
}

// Priority returns the priority of the current process.
func (r *Registers) Priority() int32 {
	return r.Register[REG_WDESC] & PRIORITY_LOW
}

// SetPriority sets the priority of the current process.
func (r *Registers) SetPriority(priority int32) {
	r.Register[REG_WDESC] = r.Wptr() | (priority & PRIORITY_LOW)
}

// Push a value onto the evaluation stack. CREG is lost.
func (r *Registers) Push(value int32) {
	r.Register[REG_CREG] = r.Register[REG_BREG]
	r.Register[REG_BREG] = r.Register[REG_AREG]
	r.Register[REG_AREG] = value
}

// Pop a value from the evaluation stack. The popped value rotates into CREG.
func (r *Registers) Pop() (value int32) {
	value = r.Register[REG_AREG]
	r.Register[REG_AREG] = r.Register[REG_BREG]
	r.Register[REG_BREG] = r.Register[REG_CREG]
	r.Register[REG_CREG] = value
	return
}

// Top returns the top of the evaluation stack.
func (r *Registers) Top() int32 {
	return r.Register[REG_AREG]
}

// Rev swaps the top two values of the evaluation stack.
func (r *Registers) Rev() {
	r.Register[REG_AREG], r.Register[REG_BREG] = r.Register[REG_BREG], r.Register[REG_AREG]
}

// SetFlag sets status flags.
func (r *Registers) SetFlag(flag int32) {
	r.Register[REG_STATUS] |= flag
}

// ClearFlag clears status flags.
func (r *Registers) ClearFlag(flag int32) {
	r.Register[REG_STATUS] &^= flag
}

// TestFlag returns true if any of the status flags are set.
func (r *Registers) TestFlag(flag int32) bool {
	return (r.Register[REG_STATUS] & flag) != 0
}

// Reset clears all registers.
func (r *Registers) Reset() {
	clear(r.Register[:])
}

// String returns the register file as a string.
func (r *Registers) String() (text string) {
	var sb strings.Builder
	for reg := range Register(REG_COUNT) {
		val := uint32(r.Register[reg])
		var strval string
		switch reg {
		case REG_WDESC:
			pri := "hi"
			if r.Priority() == PRIORITY_LOW {
				pri = "lo"
			}
			strval = fmt.Sprintf("%04X_%04X (%v)", val>>16, val&0xfffe, pri)
		case REG_STATUS:
			var flags []string
			if r.TestFlag(STATUS_ERROR) {
				flags = append(flags, "error")
			}
			if r.TestFlag(STATUS_HALT_ON_ERROR) {
				flags = append(flags, "halt")
			}
			if r.TestFlag(STATUS_J0_BREAK) {
				flags = append(flags, "j0")
			}
			strval = fmt.Sprintf("%04X_%04X %v", val>>16, val&0xffff, flags)
		default:
			strval = fmt.Sprintf("%04X_%04X", val>>16, val&0xffff)
		}
		fmt.Fprintf(&sb, "% 6s: %v\n", reg.String(), strval)
	}

	text = sb.String()
	return
}
