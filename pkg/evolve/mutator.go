// Package evolve searches for effective warriors by stochastic mutation
// and battle-outcome scoring, the redcode-domain analog of the teacher's
// STOKE-style superoptimizer: instead of hill-climbing towards
// CPU-state equivalence with a target sequence, it hill-climbs towards
// a high win rate against a panel of reference warriors.
package evolve

import (
	"math/rand/v2"

	"github.com/corewars/go-mars/pkg/redcode"
)

var allOpcodes = []redcode.OpCode{
	redcode.DAT, redcode.SPL, redcode.MOV, redcode.DJN, redcode.ADD, redcode.JMZ,
	redcode.SUB, redcode.SEQ, redcode.SNE, redcode.SLT, redcode.JMN, redcode.JMP,
	redcode.NOP, redcode.MUL, redcode.MODM, redcode.DIV,
}

var allModifiers = []redcode.Modifier{
	redcode.ModF, redcode.ModA, redcode.ModB, redcode.ModAB, redcode.ModBA, redcode.ModX, redcode.ModI,
}

var allModes = []redcode.AddrMode{
	redcode.Direct, redcode.Immediate, redcode.BIndirect, redcode.BPredec,
	redcode.BPostinc, redcode.AIndirect, redcode.APredec, redcode.APostinc,
}

// Mutator applies random edits to a warrior's instruction sequence,
// grounded on pkg/stoke.Mutator's weighted replace/swap/delete/insert/
// change-operand scheme.
type Mutator struct {
	rng      *rand.Rand
	coreSize int
	maxLen   int
}

// NewMutator creates a Mutator whose random operand values stay within
// [0, coreSize) and whose sequences never grow past maxLen.
func NewMutator(rng *rand.Rand, coreSize, maxLen int) *Mutator {
	return &Mutator{rng: rng, coreSize: coreSize, maxLen: maxLen}
}

// Mutate applies one randomly chosen edit to seq and returns a new
// sequence; seq itself is left untouched. Weighting matches the
// teacher's stoke.Mutator.Mutate: 40% replace, 20% swap, 20% delete,
// 10% insert, 10% change-operand.
func (m *Mutator) Mutate(seq []redcode.Instruction) []redcode.Instruction {
	r := m.rng.IntN(100)
	switch {
	case r < 40:
		return m.Replace(seq)
	case r < 60:
		return m.Swap(seq)
	case r < 80:
		return m.Delete(seq)
	case r < 90:
		return m.Insert(seq)
	default:
		return m.ChangeOperand(seq)
	}
}

// Replace overwrites one instruction with a freshly random one.
func (m *Mutator) Replace(seq []redcode.Instruction) []redcode.Instruction {
	out := copySeq(seq)
	if len(out) == 0 {
		return out
	}
	out[m.rng.IntN(len(out))] = m.randomInstruction()
	return out
}

// Swap exchanges two adjacent instructions.
func (m *Mutator) Swap(seq []redcode.Instruction) []redcode.Instruction {
	out := copySeq(seq)
	if len(out) < 2 {
		return out
	}
	i := m.rng.IntN(len(out) - 1)
	out[i], out[i+1] = out[i+1], out[i]
	return out
}

// Delete removes one instruction, leaving at least one behind.
func (m *Mutator) Delete(seq []redcode.Instruction) []redcode.Instruction {
	if len(seq) <= 1 {
		return copySeq(seq)
	}
	pos := m.rng.IntN(len(seq))
	out := make([]redcode.Instruction, 0, len(seq)-1)
	out = append(out, seq[:pos]...)
	out = append(out, seq[pos+1:]...)
	return out
}

// Insert adds a random instruction at a random position, falling back to
// Replace once the sequence has hit its length cap.
func (m *Mutator) Insert(seq []redcode.Instruction) []redcode.Instruction {
	if len(seq) >= m.maxLen {
		return m.Replace(seq)
	}
	pos := m.rng.IntN(len(seq) + 1)
	out := make([]redcode.Instruction, 0, len(seq)+1)
	out = append(out, seq[:pos]...)
	out = append(out, m.randomInstruction())
	out = append(out, seq[pos:]...)
	return out
}

// ChangeOperand randomizes one instruction's a- or b-field.
func (m *Mutator) ChangeOperand(seq []redcode.Instruction) []redcode.Instruction {
	out := copySeq(seq)
	if len(out) == 0 {
		return out
	}
	pos := m.rng.IntN(len(out))
	v := uint16(m.rng.IntN(m.coreSize))
	if m.rng.IntN(2) == 0 {
		out[pos].A = v
	} else {
		out[pos].B = v
	}
	return out
}

func (m *Mutator) randomInstruction() redcode.Instruction {
	op := allOpcodes[m.rng.IntN(len(allOpcodes))]
	mod := allModifiers[m.rng.IntN(len(allModifiers))]
	aMode := allModes[m.rng.IntN(len(allModes))]
	bMode := allModes[m.rng.IntN(len(allModes))]
	return redcode.Instruction{
		In: redcode.Encode(op, mod, aMode, bMode),
		A:  uint16(m.rng.IntN(m.coreSize)),
		B:  uint16(m.rng.IntN(m.coreSize)),
	}
}

func copySeq(seq []redcode.Instruction) []redcode.Instruction {
	out := make([]redcode.Instruction, len(seq))
	copy(out, seq)
	return out
}
