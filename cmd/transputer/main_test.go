package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/transputer/emulator"
)

func TestListing(t *testing.T) {
	assert := assert.New(t)

	emu := emulator.NewEmulator(nil)
	err := emu.Assemble("ldc 0x345\nrev # swap\nfpurz")
	assert.NoError(err)

	out := &bytes.Buffer{}
	listing(out, emu.Program)

	text := out.String()
	assert.Contains(text, "ldc 0x345\n")
	assert.Contains(text, "0000: ldc 837\n")
	assert.Contains(text, "0003: rev\n")
	assert.Contains(text, "0004: ldc 6\n")
	assert.Contains(text, "0005: fpentry\n")
}

func TestSymbols(t *testing.T) {
	assert := assert.New(t)

	emu := emulator.NewEmulator(nil)

	out := &bytes.Buffer{}
	symbols(out, emu)

	text := out.String()
	assert.Contains(text, "ldc (direct 0x4)\n")
	assert.Contains(text, "rev (operation 0x0)\n")
	assert.Contains(text, "fpurz (fpentry 0x6)\n")
	assert.Contains(text, "MEM_START = 0x80000070\n")
	assert.Contains(text, "WORD_SIZE = 4\n")
}
