package evolve

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/corewars/go-mars/pkg/redcode"
)

func testMutator() *Mutator {
	rng := rand.New(rand.NewPCG(1, 2))
	return NewMutator(rng, 16, 8)
}

func baseSeq() []redcode.Instruction {
	return []redcode.Instruction{
		{In: redcode.Encode(redcode.MOV, redcode.ModI, redcode.Direct, redcode.Direct), A: 0, B: 1},
		{In: redcode.Encode(redcode.DAT, redcode.ModF, redcode.Direct, redcode.Direct), A: 0, B: 0},
	}
}

func TestReplaceChangesAtMostOneInstruction(t *testing.T) {
	m := testMutator()
	seq := baseSeq()
	out := m.Replace(seq)

	assert.Len(t, out, len(seq))
	diff := 0
	for i := range seq {
		if out[i] != seq[i] {
			diff++
		}
	}
	assert.LessOrEqual(t, diff, 1)
	assert.Equal(t, seq, baseSeq(), "Replace must not mutate its input")
}

func TestSwapIsNoOpBelowTwoInstructions(t *testing.T) {
	m := testMutator()
	seq := baseSeq()[:1]
	out := m.Swap(seq)
	assert.Equal(t, seq, out)
}

func TestDeleteNeverEmptiesASingleInstructionSeq(t *testing.T) {
	m := testMutator()
	seq := baseSeq()[:1]
	out := m.Delete(seq)
	assert.Len(t, out, 1)
}

func TestDeleteShrinksByOne(t *testing.T) {
	m := testMutator()
	seq := baseSeq()
	out := m.Delete(seq)
	assert.Len(t, out, len(seq)-1)
}

func TestInsertGrowsByOneUnlessAtCap(t *testing.T) {
	m := testMutator()
	seq := baseSeq()
	out := m.Insert(seq)
	assert.Len(t, out, len(seq)+1)
}

func TestInsertFallsBackToReplaceAtMaxLen(t *testing.T) {
	m := NewMutator(rand.New(rand.NewPCG(1, 2)), 16, 2)
	seq := baseSeq() // already at maxLen=2
	out := m.Insert(seq)
	assert.Len(t, out, len(seq), "Insert must not exceed maxLen")
}

func TestChangeOperandStaysWithinCoreSize(t *testing.T) {
	m := NewMutator(rand.New(rand.NewPCG(1, 2)), 16, 8)
	seq := baseSeq()
	for i := 0; i < 50; i++ {
		out := m.ChangeOperand(seq)
		for _, instr := range out {
			assert.Less(t, instr.A, uint16(16))
			assert.Less(t, instr.B, uint16(16))
		}
	}
}

func TestMutateNeverPanicsOnSingleInstructionSeq(t *testing.T) {
	m := testMutator()
	seq := baseSeq()[:1]
	for i := 0; i < 200; i++ {
		seq = m.Mutate(seq)
		assert.GreaterOrEqual(t, len(seq), 1)
	}
}
