// Package core holds the circular memory array redcode warriors fight
// over, and the modular arithmetic the rest of the simulator builds on.
package core

import (
	"fmt"

	"github.com/corewars/go-mars/pkg/redcode"
)

// Battlefield is the simulator's core memory: a fixed-size ring of
// instructions addressed modulo its size.
type Battlefield struct {
	mem []redcode.Instruction
}

// New allocates a battlefield of the given size, cleared to DAT.F $0, $0.
func New(size int) (*Battlefield, error) {
	if size <= 0 {
		return nil, fmt.Errorf("core: size must be positive, got %d", size)
	}
	bf := &Battlefield{mem: make([]redcode.Instruction, size)}
	return bf, nil
}

// Size returns the number of cells in the core.
func (bf *Battlefield) Size() int { return len(bf.mem) }

// Clear resets every cell to DAT.F $0, $0, matching sim_clear_core.
func (bf *Battlefield) Clear() {
	for i := range bf.mem {
		bf.mem[i] = redcode.Instruction{}
	}
}

// Norm reduces addr into [0, size) using mathematical (always
// non-negative) modulo.
func (bf *Battlefield) Norm(addr int) int {
	size := len(bf.mem)
	addr %= size
	if addr < 0 {
		addr += size
	}
	return addr
}

// Add computes (x+y) mod size.
func (bf *Battlefield) Add(x, y int) int { return bf.Norm(x + y) }

// Sub computes (x-y) mod size.
func (bf *Battlefield) Sub(x, y int) int { return bf.Norm(x - y) }

// Inc returns (x+1) mod size.
func (bf *Battlefield) Inc(x int) int { return bf.Add(x, 1) }

// Dec returns (x-1) mod size.
func (bf *Battlefield) Dec(x int) int { return bf.Sub(x, 1) }

// Get returns the instruction at addr, normalized modulo the core size.
func (bf *Battlefield) Get(addr int) redcode.Instruction {
	return bf.mem[bf.Norm(addr)]
}

// Set stores instr at addr, normalized modulo the core size.
func (bf *Battlefield) Set(addr int, instr redcode.Instruction) {
	bf.mem[bf.Norm(addr)] = instr
}

// SetA stores v as the a-field of the instruction at addr.
func (bf *Battlefield) SetA(addr int, v uint16) {
	i := bf.Norm(addr)
	bf.mem[i].A = v
}

// SetB stores v as the b-field of the instruction at addr.
func (bf *Battlefield) SetB(addr int, v uint16) {
	i := bf.Norm(addr)
	bf.mem[i].B = v
}

// Load copies code into core starting at pos (wrapping modulo core size),
// stripping any flag bits, matching sim_load_warrior.
func (bf *Battlefield) Load(pos int, code []redcode.Instruction) error {
	if len(code) > len(bf.mem) {
		return fmt.Errorf("core: warrior length %d exceeds core size %d", len(code), len(bf.mem))
	}
	for i, instr := range code {
		k := bf.Norm(pos + i)
		bf.mem[k] = redcode.Instruction{
			In: redcode.StripFlags(instr.In),
			A:  instr.A,
			B:  instr.B,
		}
	}
	return nil
}
