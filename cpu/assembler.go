// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"fmt"
	"io"
	"iter"
	"log"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/transputer/fpu"
	"github.com/ezrec/transputer/internal"
)

// Kind is the class of a mnemonic.
type Kind int

//go:generate go tool stringer -linecomment -type=Kind
const (
	KIND_DIRECT    = Kind(0) // direct
	KIND_OPERATION = Kind(1) // operation
	KIND_FPENTRY   = Kind(2) // fpentry
)

// Definition is the encoding of a mnemonic.
type Definition struct {
	Kind Kind // Class of mnemonic.
	Code int  // Direct function, operation or FPENTRY sub-opcode.
}

// defined tags a mnemonic table with its kind.
func defined[T ~int](kind Kind, seq iter.Seq2[string, T]) iter.Seq2[string, Definition] {
	return func(yield func(string, Definition) bool) {
		for name, code := range seq {
			if !yield(name, Definition{Kind: kind, Code: int(code)}) {
				return
			}
		}
	}
}

// Mnemonics iterates every assembler mnemonic: direct functions,
// then operations, then FPENTRY sub-opcodes.
func Mnemonics() iter.Seq2[string, Definition] {
	return internal.IterSeq2Concat(
		defined(KIND_DIRECT, Directs()),
		defined(KIND_OPERATION, Operations()),
		defined(KIND_FPENTRY, fpu.Mnemonics()),
	)
}

var _definitions = maps.Collect(Mnemonics())

// Lookup returns the definition of a mnemonic.
func Lookup(name string) (def Definition, ok bool) {
	def, ok = _definitions[name]
	return
}

// Prefix encodes a direct function with an operand, using the shortest
// chain of PFIX and NFIX prefixes that reconstructs the operand.
func Prefix(op Direct, e int32) []byte {
	return AppendPrefix(nil, op, e)
}

// AppendPrefix appends the encoding of Prefix(op, e) to dst.
func AppendPrefix(dst []byte, op Direct, e int32) []byte {
	switch {
	case e >= 0 && e < 16:
	case e >= 16:
		dst = AppendPrefix(dst, DIRECT_PFIX, e>>4)
	default:
		dst = AppendPrefix(dst, DIRECT_NFIX, (^e)>>4)
	}

	return append(dst, byte(op)<<4|byte(e&0xf))
}

// appendNaN appends the encoding of a direct function with a malformed
// operand: NFIX 0; NFIX 15; op 0.
func appendNaN(dst []byte, op Direct) []byte {
	return append(dst, byte(DIRECT_NFIX)<<4, byte(DIRECT_NFIX)<<4|0xf, byte(op)<<4)
}

// Assemble encodes ';' separated instructions, ignoring unknown
// mnemonics and encoding malformed immediates as-is.
func Assemble(text string) (code []byte) {
	asm := &Assembler{}
	for _, inst := range strings.Split(text, ";") {
		code, _ = asm.encode(code, strings.Fields(inst))
	}

	return
}

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO":    "0",
	"WORD_SIZE": fmt.Sprintf("%d", WORD_SIZE),
}

// Assembler is a single pass assembler for the transputer instruction set.
//
// Instructions are separated by ';' or newlines, and '#' starts a comment.
// The zero value is lenient: unknown mnemonics are ignored, and malformed
// immediates encode as NFIX 0; NFIX 15; op 0.
type Assembler struct {
	Verbose bool // If set, verbosely logs the assembler actions.
	Strict  bool // If set, malformed instructions are errors.

	Instruction []Instruction // List of generated instructions.

	predefine map[string]string // Predefines
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

// Assemble parses assembly text into a Program.
func (asm *Assembler) Assemble(text string) (prog *Program, err error) {
	return asm.Parse(strings.NewReader(text))
}

// parseImmediate scans a leading integer: an optional sign, an optional
// '0x' prefix, then the longest run of digits. Overflow wraps to 32 bits.
func parseImmediate(word string) (value int32, ok bool) {
	str := word
	negative := false
	if len(str) > 0 && (str[0] == '-' || str[0] == '+') {
		negative = str[0] == '-'
		str = str[1:]
	}

	base := uint32(10)
	if len(str) > 1 && str[0] == '0' && (str[1] == 'x' || str[1] == 'X') {
		base = 16
		str = str[2:]
	}

	var acc uint32
	for _, ch := range str {
		var digit uint32
		switch {
		case ch >= '0' && ch <= '9':
			digit = uint32(ch - '0')
		case ch >= 'a' && ch <= 'f':
			digit = uint32(ch-'a') + 10
		case ch >= 'A' && ch <= 'F':
			digit = uint32(ch-'A') + 10
		default:
			digit = base
		}
		if digit >= base {
			break
		}
		acc = acc*base + digit
		ok = true
	}

	if negative {
		acc = -acc
	}

	value = int32(acc)
	return
}

// valueOf returns the value of a strict immediate.
func (asm *Assembler) valueOf(word string) (value int32, err error) {
	v64, err := strconv.ParseInt(word, 0, 64)
	if err != nil {
		v64u, err_u := strconv.ParseUint(word, 0, 64)
		if err_u != nil {
			err = ErrParseNumber(word)
			return
		}
		v64 = int64(v64u)
		err = nil
	}

	value = int32(v64)
	return
}

// encode appends the encoding of an instruction's words to code.
func (asm *Assembler) encode(code_in []byte, words []string) (code []byte, err error) {
	code = code_in

	if len(words) == 0 {
		return
	}

	def, ok := Lookup(words[0])
	if !ok {
		if asm.Strict {
			err = ErrMnemonicUnknown
		}
		return
	}

	args := words[1:]
	if asm.Strict {
		switch {
		case def.Kind == KIND_DIRECT && len(args) == 0:
			err = ErrImmediateMissing
			return
		case def.Kind == KIND_DIRECT && len(args) > 1:
			err = ErrOpcodeExtraArgs
			return
		case def.Kind != KIND_DIRECT && len(args) > 0:
			err = ErrOpcodeExtraArgs
			return
		}
	}

	switch def.Kind {
	case KIND_DIRECT:
		op := Direct(def.Code)
		if len(args) == 0 {
			code = appendNaN(code, op)
			return
		}
		var e int32
		if asm.Strict {
			e, err = asm.valueOf(args[0])
			if err != nil {
				return
			}
		} else {
			e, ok = parseImmediate(args[0])
			if !ok {
				code = appendNaN(code, op)
				return
			}
		}
		code = AppendPrefix(code, op, e)
	case KIND_OPERATION:
		code = AppendPrefix(code, DIRECT_OPR, int32(def.Code))
	case KIND_FPENTRY:
		code = AppendPrefix(code, DIRECT_LDC, int32(def.Code))
		code = AppendPrefix(code, DIRECT_OPR, int32(OP_FPENTRY))
	}

	return
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value int64, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		v64, err := strconv.ParseInt(str, 0, 64)
		if err != nil {
			// Ignore non-integer equates.
			continue
		}
		pred[key] = starlark.MakeInt64(v64)
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrParseExpression(expr), err)
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
	value, ok = st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	return
}

var reParenEval = regexp.MustCompile(`\$\([^\$]*\)`)

// parseInstruction splits a single instruction into words, applying
// equates and expressions.
func (asm *Assembler) parseInstruction(text string, lineno int) (words []string, err error) {
	// Set line number.
	asm.Equate["LINENO"] = fmt.Sprintf("%v", lineno)

	// Do $() evaluations
	text = reParenEval.ReplaceAllStringFunc(text, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return fmt.Sprintf("%d", value)
	})
	if err != nil {
		return
	}

	words = strings.Fields(text)
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

// currentOffset gets the byte offset of the next instruction.
func (asm *Assembler) currentOffset() int {
	if len(asm.Instruction) == 0 {
		return 0
	}

	last := asm.Instruction[len(asm.Instruction)-1]

	return last.Offset + len(last.Bytes)
}

// Parse parses an input stream into a Program.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	var text string
	var lineno int

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Index: len(asm.Instruction), Text: text, Err: err}
		}
	}()

	asm.Instruction = asm.Instruction[:0]
	asm.Equate = maps.Clone(sysEquate)
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}

	for scanner.Scan() {
		line := scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("asm: %v: %v\n", lineno, line)
		}

		line, _, _ = strings.Cut(line, "#")

		for _, inst := range strings.Split(line, ";") {
			text = strings.TrimSpace(inst)

			var words []string
			words, err = asm.parseInstruction(text, lineno)
			if err != nil {
				return
			}

			var code []byte
			code, err = asm.encode(nil, words)
			if err != nil {
				return
			}

			if len(code) == 0 {
				continue
			}

			asm.Instruction = append(asm.Instruction, Instruction{
				LineNo: lineno,
				Index:  len(asm.Instruction),
				Offset: asm.currentOffset(),
				Words:  words,
				Bytes:  code,
			})
		}
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	prog = &Program{
		Instructions: slices.Clone(asm.Instruction),
	}

	return
}
