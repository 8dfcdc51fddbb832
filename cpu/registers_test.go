package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegistersStack(t *testing.T) {
	assert := assert.New(t)

	var regs Registers

	// LIFO up to three deep.
	for n := range 3 {
		regs.Push(int32(n + 1))
	}
	assert.Equal(int32(3), regs.Top())
	assert.Equal(int32(3), regs.Pop())
	assert.Equal(int32(2), regs.Pop())
	assert.Equal(int32(1), regs.Pop())

	// Only the three most recent survive.
	regs.Reset()
	for n := range 5 {
		regs.Push(int32(n + 1))
	}
	assert.Equal(int32(5), regs.Areg())
	assert.Equal(int32(4), regs.Breg())
	assert.Equal(int32(3), regs.Creg())

	// Pop rotates the popped value into C.
	assert.Equal(int32(5), regs.Pop())
	assert.Equal(int32(4), regs.Areg())
	assert.Equal(int32(3), regs.Breg())
	assert.Equal(int32(5), regs.Creg())

	regs.Rev()
	assert.Equal(int32(3), regs.Areg())
	assert.Equal(int32(4), regs.Breg())
	assert.Equal(int32(5), regs.Creg())
}

func TestRegistersWorkspace(t *testing.T) {
	assert := assert.New(t)

	var regs Registers

	regs.SetWdesc(0x1001)
	assert.Equal(int32(0x1000), regs.Wptr())
	assert.Equal(PRIORITY_LOW, regs.Priority())

	regs.SetWptr(0x2003)
	assert.Equal(int32(0x2000), regs.Wptr())
	assert.Equal(int32(0x2001), regs.Wdesc())

	regs.SetPriority(PRIORITY_HIGH)
	assert.Equal(int32(0x2000), regs.Wdesc())
	assert.Equal(PRIORITY_HIGH, regs.Priority())
}

func TestRegistersFlags(t *testing.T) {
	assert := assert.New(t)

	var regs Registers

	regs.SetFlag(STATUS_ERROR | STATUS_J0_BREAK)
	assert.True(regs.TestFlag(STATUS_ERROR))
	assert.True(regs.TestFlag(STATUS_J0_BREAK))
	assert.False(regs.TestFlag(STATUS_HALT_ON_ERROR))
	assert.Equal(uint32(0x80000100), uint32(regs.Status()))

	regs.ClearFlag(STATUS_ERROR)
	assert.False(regs.TestFlag(STATUS_ERROR))
	assert.Equal(int32(0x100), regs.Get(REG_STATUS))

	text := regs.String()
	assert.Contains(text, "[j0]")
}

func TestRegisterString(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("iptr", REG_IPTR.String())
	assert.Equal("clock1", REG_CLOCK1.String())
	assert.Equal("Register(99)", Register(99).String())
}
