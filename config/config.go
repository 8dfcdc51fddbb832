// Package config loads the emulator configuration from TOML.
//
// An example configuration:
//
//	verbose = false
//
//	[memory]
//	start = 0x80000070
//	size = 4096
//
//	[boot]
//	priority = "high"
//
//	[assembler]
//	strict = true
//	defines = { STACK = "0x80000f00" }
package config

import (
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strings"
	"unicode"

	"github.com/BurntSushi/toml"

	"github.com/ezrec/transputer/cpu"
)

const (
	// Largest supported memory store, in bytes.
	MEMORY_SIZE_MAX = 1 << 24

	PRIORITY_HIGH = "high"
	PRIORITY_LOW  = "low"
)

// Config is the emulator configuration.
type Config struct {
	Memory    Memory    `toml:"memory"`
	Boot      Boot      `toml:"boot"`
	Assembler Assembler `toml:"assembler"`
	Verbose   bool      `toml:"verbose"` // Verbose logging of all components.
}

// Memory configures the memory store.
type Memory struct {
	Start int64 `toml:"start"` // Origin address, as an unsigned 32-bit value.
	Size  int   `toml:"size"`  // Capacity in bytes.
}

// Boot configures the boot process.
type Boot struct {
	Priority string `toml:"priority"` // "high" or "low".
}

// Assembler configures the assembler.
type Assembler struct {
	Strict  bool              `toml:"strict"`  // Malformed instructions are errors.
	Defines map[string]string `toml:"defines"` // Predefined equates.
}

// Default returns the default configuration.
func Default() (cfg *Config) {
	cfg = &Config{
		Memory: Memory{
			Start: int64(cpu.MEM_START) & 0xffffffff,
			Size:  cpu.MEM_SIZE,
		},
		Boot: Boot{
			Priority: PRIORITY_HIGH,
		},
	}

	return
}

// Load reads and validates a configuration file.
func Load(path string) (cfg *Config, err error) {
	file, err := os.Open(path)
	if err != nil {
		return
	}
	defer file.Close()

	cfg, err = Decode(file)
	if err != nil {
		err = &ErrConfig{Path: path, Err: err}
		cfg = nil
		return
	}

	return
}

// Decode reads and validates a configuration. Keys missing from the
// input keep their default values.
func Decode(input io.Reader) (cfg *Config, err error) {
	cfg = Default()

	meta, err := toml.NewDecoder(input).Decode(cfg)
	if err != nil {
		cfg = nil
		return
	}

	undecoded := meta.Undecoded()
	if len(undecoded) != 0 {
		keys := make([]string, len(undecoded))
		for n, key := range undecoded {
			keys[n] = key.String()
		}
		err = fmt.Errorf("%w: %v", ErrUndecodedKeys, strings.Join(keys, ", "))
		cfg = nil
		return
	}

	err = cfg.Validate()
	if err != nil {
		cfg = nil
		return
	}

	return
}

// Validate checks the configuration for consistency.
func (cfg *Config) Validate() (err error) {
	mem := cfg.Memory
	if mem.Size <= 0 || mem.Size > MEMORY_SIZE_MAX {
		err = fmt.Errorf("%w: %d", ErrMemorySize, mem.Size)
		return
	}

	if mem.Start < 0 || mem.Start > 0xffffffff || mem.Start%cpu.WORD_SIZE != 0 {
		err = fmt.Errorf("%w: 0x%x", ErrMemoryStart, mem.Start)
		return
	}

	if mem.Start+int64(mem.Size) > 1<<32 {
		err = fmt.Errorf("%w: 0x%x+0x%x", ErrMemoryRange, mem.Start, mem.Size)
		return
	}

	switch cfg.Boot.Priority {
	case "", PRIORITY_HIGH, PRIORITY_LOW:
	default:
		err = fmt.Errorf("%w: %q", ErrBootPriority, cfg.Boot.Priority)
		return
	}

	for _, name := range slices.Sorted(maps.Keys(cfg.Assembler.Defines)) {
		if !validName(name) {
			err = fmt.Errorf("%w: %q", ErrDefineName, name)
			return
		}
	}

	return
}

// validName is true for an identifier that can appear as a single
// assembler word.
func validName(name string) bool {
	if len(name) == 0 {
		return false
	}
	for n, ch := range name {
		switch {
		case ch == '_' || unicode.IsLetter(ch):
		case n > 0 && unicode.IsDigit(ch):
		default:
			return false
		}
	}
	return true
}

// Origin returns the memory origin as a CPU address.
func (cfg *Config) Origin() int32 {
	return int32(uint32(cfg.Memory.Start))
}

// BootPriority returns the WDESC priority bit selected for boot.
func (cfg *Config) BootPriority() int32 {
	if cfg.Boot.Priority == PRIORITY_LOW {
		return cpu.PRIORITY_LOW
	}
	return cpu.PRIORITY_HIGH
}
