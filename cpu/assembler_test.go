package cpu

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAssemble(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name string
		text string
		code []byte
	}){
		{"1 byte", "ldc 3", []byte{0x43}},
		{"multi-byte", "ldc 0x345", []byte{0x23, 0x24, 0x45}},
		{"negative", "ldc -2", []byte{0x60, 0x4E}},
		{"more than 1", "ldc 3; ldc 4", []byte{0x43, 0x44}},
		{"operation", "rev", []byte{0xF0}},
		{"prefixed operation", "ldpi", []byte{0x21, 0xFB}},
		{"sparse operation", "start", []byte{0x21, 0x2F, 0xFF}},
		{"lddevid", "lddevid", []byte{0x21, 0x27, 0xFC}},
		{"fpentry", "fpurz", []byte{0x46, 0x2A, 0xFB}},
		{"sparse fpentry", "fpuclrerr", []byte{0x29, 0x4C, 0x2A, 0xFB}},
		{"shl", "shl", []byte{0x24, 0xF0}},
		{"shr", "shr", []byte{0x24, 0xF1}},
		{"wraps to minimal chain", "ldc 0xFFFFFFFE", []byte{0x60, 0x4E}},
		{"most negative", "ldc -0x80000000",
			[]byte{0x27, 0x2F, 0x2F, 0x2F, 0x2F, 0x2F, 0x6F, 0x40}},
		{"digit prefix", "ldc 12abc", []byte{0x4C}},
		{"explicit plus", "ldc +7", []byte{0x47}},
		{"missing immediate", "ldc", []byte{0x60, 0x6F, 0x40}},
		{"not a number", "j abc", []byte{0x60, 0x6F, 0x00}},
		{"bare hex prefix", "adc 0x", []byte{0x60, 0x6F, 0x80}},
		{"unknown mnemonic", "bogus; ldc 1", []byte{0x41}},
		{"operation ignores args", "rev 5", []byte{0xF0}},
		{"empty", " ; ", nil},
		{"whitespace", "  ldc\t3  ", []byte{0x43}},
	}

	for _, entry := range table {
		assert.Equal(entry.code, Assemble(entry.text), entry.name)
	}
}

func TestPrefix(t *testing.T) {
	assert := assert.New(t)

	assert.Equal([]byte{0x43}, Prefix(DIRECT_LDC, 3))
	assert.Equal([]byte{0x60, 0x4E}, Prefix(DIRECT_LDC, -2))
	assert.Equal([]byte{0x4F}, Prefix(DIRECT_LDC, 15))
	assert.Equal([]byte{0x21, 0x40}, Prefix(DIRECT_LDC, 16))
	assert.Equal([]byte{0x4F, 0x21, 0x40}, AppendPrefix([]byte{0x4F}, DIRECT_LDC, 16))
	assert.Equal([]byte{0x6F}, Prefix(DIRECT_NFIX, -1)[1:])
}

func TestMnemonics(t *testing.T) {
	assert := assert.New(t)

	count := map[Kind]int{}
	for _, def := range Mnemonics() {
		count[def.Kind]++
	}
	assert.Equal(16, count[KIND_DIRECT])
	assert.Equal(151, count[KIND_OPERATION])
	assert.Equal(19, count[KIND_FPENTRY])

	table := [](struct {
		name string
		kind Kind
		code int
	}){
		{"j", KIND_DIRECT, 0x0},
		{"opr", KIND_DIRECT, 0xF},
		{"dics", KIND_OPERATION, 0x2F},
		{"fpnotfinite", KIND_OPERATION, 0x93},
		{"fpentry", KIND_OPERATION, 0xAB},
		{"lddevid", KIND_OPERATION, 0x17C},
		{"shl", KIND_OPERATION, 0x40},
		{"shr", KIND_OPERATION, 0x41},
		{"start", KIND_OPERATION, 0x1FF},
		{"fpurn", KIND_FPENTRY, 0x22},
		{"fpuclrerr", KIND_FPENTRY, 0x9C},
	}

	for _, entry := range table {
		def, ok := Lookup(entry.name)
		assert.True(ok, entry.name)
		assert.Equal(Definition{Kind: entry.kind, Code: entry.code}, def, entry.name)
	}

	_, ok := Lookup("disc")
	assert.False(ok)
}

func TestAssemblerParse(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	prog, err := asm.Parse(strings.NewReader(""))
	assert.NoError(err)
	assert.Equal(0, len(prog.Instructions))
	assert.Equal("0", asm.Equate["LINENO"])
	assert.Equal("4", asm.Equate["WORD_SIZE"])

	program := []string{
		"# Comment line",
		"ldc 3; ldc 0x345 # trailing comment",
		"",
		"rev",
	}

	prog, err = asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	assert.NoError(err)

	expected := []Instruction{
		{LineNo: 2, Index: 0, Offset: 0, Words: []string{"ldc", "3"}, Bytes: []byte{0x43}},
		{LineNo: 2, Index: 1, Offset: 1, Words: []string{"ldc", "0x345"}, Bytes: []byte{0x23, 0x24, 0x45}},
		{LineNo: 4, Index: 2, Offset: 4, Words: []string{"rev"}, Bytes: []byte{0xF0}},
	}
	assert.Equal(expected, prog.Instructions)
	assert.Equal([]byte{0x43, 0x23, 0x24, 0x45, 0xF0}, prog.Binary())
}

func TestAssemblerEquate(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	asm.Predefine("BASE", "0x100")

	prog, err := asm.Assemble(".equ FIVE 5\nldc FIVE; ldc BASE; ldc $(BASE + FIVE * 2)")
	assert.NoError(err)
	assert.Equal(append(append([]byte{0x45}, Prefix(DIRECT_LDC, 0x100)...), Prefix(DIRECT_LDC, 0x10A)...),
		prog.Binary())

	prog, err = asm.Assemble("ldc $(LINENO)\nldc $(LINENO)")
	assert.NoError(err)
	assert.Equal([]byte{0x41, 0x42}, prog.Binary())

	_, err = asm.Assemble(".equ FIVE 5\n.equ FIVE 6")
	assert.True(errors.Is(err, ErrEquateDuplicate))

	_, err = asm.Assemble(".equ FIVE")
	assert.True(errors.Is(err, ErrEquateSyntax))

	_, err = asm.Assemble("ldc $(1 +)")
	var perr ErrParseExpression
	assert.True(errors.As(err, &perr))

	_, err = asm.Assemble("ldc $('a')")
	assert.True(errors.As(err, &perr))
}

func TestAssemblerStrict(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{Strict: true}

	prog, err := asm.Assemble("ldc -0x10; ldc 0xFFFFFFFE; fpurz")
	assert.NoError(err)
	assert.Equal(append([]byte{0x60, 0x40, 0x60, 0x4E}, Assemble("fpurz")...), prog.Binary())

	table := [](struct {
		name   string
		text   string
		lineno int
		err    error
	}){
		{"unknown", "ldc 1\nbogus", 2, ErrMnemonicUnknown},
		{"missing", "ldc", 1, ErrImmediateMissing},
		{"extra direct", "ldc 1 2", 1, ErrOpcodeExtraArgs},
		{"extra operation", "rev 1", 1, ErrOpcodeExtraArgs},
		{"extra fpentry", "ldc 1; fpurz 1", 1, ErrOpcodeExtraArgs},
	}

	for _, entry := range table {
		_, err := asm.Assemble(entry.text)
		assert.True(errors.Is(err, entry.err), entry.name)

		var serr *ErrSyntax
		if assert.True(errors.As(err, &serr), entry.name) {
			assert.Equal(entry.lineno, serr.LineNo, entry.name)
		}
	}

	_, err = asm.Assemble("ldc 12abc")
	var nerr ErrParseNumber
	assert.True(errors.As(err, &nerr))
	assert.Equal(ErrParseNumber("12abc"), nerr)

	var serr *ErrSyntax
	_, err = asm.Assemble("ldc 1; ldc 2; ldc x")
	assert.True(errors.As(err, &serr))
	assert.Equal(2, serr.Index)
	assert.Equal("ldc x", serr.Text)
}
