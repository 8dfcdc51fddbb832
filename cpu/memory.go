package cpu

import (
	"encoding/binary"
)

const (
	MEM_START  = int32(-0x80000000 + 0x70) // First user address, 0x80000070.
	MEM_SIZE   = 4096                      // Default memory capacity, in bytes.
	WORD_SIZE  = 4                         // Bytes per word.
	BYTE_SHIFT = 2                         // Bits of byte selector in an address.
	BYTE_MASK  = int32(WORD_SIZE - 1)      // Mask of the byte selector.
)

// Memory is a flat byte store addressed relative to an origin.
type Memory struct {
	origin int32
	data   []byte
}

// NewMemory creates a memory of a fixed capacity starting at origin.
func NewMemory(origin int32, size int) (mem *Memory) {
	mem = &Memory{
		origin: origin,
		data:   make([]byte, size),
	}

	return
}

// Origin returns the address of the first byte of memory.
func (mem *Memory) Origin() int32 {
	return mem.origin
}

// Size returns the memory capacity in bytes.
func (mem *Memory) Size() int {
	return len(mem.data)
}

// Reset zeroes the memory contents.
func (mem *Memory) Reset() {
	clear(mem.data)
}

// offset translates an address to a store offset, checking that width
// bytes are available from there.
func (mem *Memory) offset(addr int32, width int) (off int, err error) {
	rel := uint64(uint32(addr - mem.origin))
	if rel+uint64(width) > uint64(len(mem.data)) {
		err = ErrMemoryBounds{Address: addr, Width: width}
		return
	}

	off = int(rel)
	return
}

// Check returns an error if any of the count bytes starting at addr is
// outside of the memory.
func (mem *Memory) Check(addr int32, count int) (err error) {
	_, err = mem.offset(addr, count)
	return
}

// LoadByte reads the byte at addr.
func (mem *Memory) LoadByte(addr int32) (value byte, err error) {
	off, err := mem.offset(addr, 1)
	if err != nil {
		return
	}

	value = mem.data[off]
	return
}

// StoreByte writes the byte at addr.
func (mem *Memory) StoreByte(addr int32, value byte) (err error) {
	off, err := mem.offset(addr, 1)
	if err != nil {
		return
	}

	mem.data[off] = value
	return
}

// LoadWord reads the little-endian word at addr. The address need not be aligned.
func (mem *Memory) LoadWord(addr int32) (value int32, err error) {
	off, err := mem.offset(addr, WORD_SIZE)
	if err != nil {
		return
	}

	value = int32(binary.LittleEndian.Uint32(mem.data[off:]))
	return
}

// StoreWord writes the little-endian word at addr. The address need not be aligned.
func (mem *Memory) StoreWord(addr int32, value int32) (err error) {
	off, err := mem.offset(addr, WORD_SIZE)
	if err != nil {
		return
	}

	binary.LittleEndian.PutUint32(mem.data[off:], uint32(value))
	return
}

// Load copies data into memory starting at addr.
func (mem *Memory) Load(addr int32, data []byte) (err error) {
	off, err := mem.offset(addr, len(data))
	if err != nil {
		return
	}

	copy(mem.data[off:], data)
	return
}

// Bytes returns a copy of count bytes starting at addr.
func (mem *Memory) Bytes(addr int32, count int) (data []byte, err error) {
	off, err := mem.offset(addr, count)
	if err != nil {
		return
	}

	data = make([]byte, count)
	copy(data, mem.data[off:])
	return
}
