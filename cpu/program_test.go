package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testProgram() *Program {
	return &Program{
		Instructions: []Instruction{
			{LineNo: 1, Index: 0, Offset: 0, Words: []string{"ldc", "3"}, Bytes: []byte{0x43}},
			{LineNo: 2, Index: 1, Offset: 1, Words: []string{"ldc", "0x345"}, Bytes: []byte{0x23, 0x24, 0x45}},
			{LineNo: 3, Index: 2, Offset: 4, Words: []string{"rev"}, Bytes: []byte{0xF0}},
		},
	}
}

func TestProgram_Debug(t *testing.T) {
	assert := assert.New(t)

	prog := testProgram()

	dbg := prog.Debug(0)
	assert.NotNil(dbg.Instruction)
	assert.Equal(1, dbg.Instruction.LineNo)
	assert.Equal(0, dbg.Index)

	dbg = prog.Debug(2)
	assert.NotNil(dbg.Instruction)
	assert.Equal(2, dbg.Instruction.LineNo)
	assert.Equal(1, dbg.Index)

	dbg = prog.Debug(4)
	assert.NotNil(dbg.Instruction)
	assert.Equal(3, dbg.Instruction.LineNo)
	assert.Equal(0, dbg.Index)
}

func TestProgram_Debug_NotFound(t *testing.T) {
	assert := assert.New(t)

	prog := testProgram()

	dbg := prog.Debug(5)
	assert.Nil(dbg.Instruction)
	assert.Equal(0, dbg.Index)

	dbg = prog.Debug(-1)
	assert.Nil(dbg.Instruction)
}

func TestProgram_Binary(t *testing.T) {
	assert := assert.New(t)

	prog := testProgram()
	assert.Equal([]byte{0x43, 0x23, 0x24, 0x45, 0xF0}, prog.Binary())

	var offsets []int
	for offset := range prog.Codes() {
		offsets = append(offsets, offset)
		if offset == 2 {
			break
		}
	}
	assert.Equal([]int{0, 1, 2}, offsets)

	empty := &Program{}
	assert.Nil(empty.Binary())
}

func TestDecode(t *testing.T) {
	assert := assert.New(t)

	direct, operand, length, err := Decode([]byte{0x23, 0x24, 0x45, 0xF0})
	assert.NoError(err)
	assert.Equal(DIRECT_LDC, direct)
	assert.Equal(int32(0x345), operand)
	assert.Equal(3, length)

	direct, operand, length, err = Decode([]byte{0x60, 0x4E})
	assert.NoError(err)
	assert.Equal(DIRECT_LDC, direct)
	assert.Equal(int32(-2), operand)
	assert.Equal(2, length)

	_, _, _, err = Decode([]byte{0x21, 0x60})
	assert.ErrorIs(err, ErrDecodeTruncated)

	_, _, _, err = Decode(nil)
	assert.ErrorIs(err, ErrDecodeTruncated)
}

func TestDisassemble(t *testing.T) {
	assert := assert.New(t)

	type line struct {
		offset int
		text   string
	}

	var lines []line
	for offset, text := range Disassemble(Assemble("ldc 0x345; rev; ldc -2; lddevid; fpurz; j 0")) {
		lines = append(lines, line{offset, text})
	}

	expected := []line{
		{0, "ldc 837"},
		{3, "rev"},
		{4, "ldc -2"},
		{6, "lddevid"},
		{9, "ldc 6"},
		{10, "fpentry"},
		{12, "j 0"},
	}
	assert.Equal(expected, lines)

	lines = nil
	for offset, text := range Disassemble([]byte{0x41, 0x21}) {
		lines = append(lines, line{offset, text})
	}
	assert.Equal([]line{{0, "ldc 1"}, {1, ".byte 21"}}, lines)
}
