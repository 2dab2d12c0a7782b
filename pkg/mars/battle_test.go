package mars

import (
	"testing"

	"github.com/corewars/go-mars/pkg/mars/queue"
	"github.com/corewars/go-mars/pkg/mars/ring"
	"github.com/corewars/go-mars/pkg/redcode"
)

// mkins builds a redcode.Instruction from its mnemonic parts, mirroring
// how a warrior's assembled code arrives at LoadWarrior.
func mkins(op redcode.OpCode, mod redcode.Modifier, aMode redcode.AddrMode, a uint16, bMode redcode.AddrMode, b uint16) redcode.Instruction {
	return redcode.Instruction{In: redcode.Encode(op, mod, aMode, bMode), A: a, B: b}
}

func newHandle(t *testing.T, warriors, coreSize, processes, cycles int) *Handle {
	t.Helper()
	h, err := Allocate(Config{Warriors: warriors, CoreSize: coreSize, Processes: processes, Cycles: cycles})
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}
	return h
}

// TestImpAdvancesThroughCore: MOV.I $0, $1 at position 0, one warrior,
// 16 cycles of an 8-cell core. Every cell ends up holding a copy of the
// imp instruction, and the warrior survives.
func TestImpAdvancesThroughCore(t *testing.T) {
	h := newHandle(t, 1, 8, 1, 16)
	imp := mkins(redcode.MOV, redcode.ModI, redcode.Direct, 0, redcode.Direct, 1)
	if err := h.LoadWarrior(0, []redcode.Instruction{imp}); err != nil {
		t.Fatal(err)
	}
	alive, deaths, err := h.RunBattle([]int{0})
	if err != nil {
		t.Fatalf("RunBattle: %v", err)
	}
	if alive != 1 {
		t.Fatalf("alive = %d, want 1 (deaths=%v)", alive, deaths)
	}
	for i := 0; i < 8; i++ {
		got := h.Core.Get(i)
		if got != imp {
			t.Errorf("core[%d] = %+v, want %+v", i, got, imp)
		}
	}
}

// TestSelfKillViaDAT: a lone DAT at position 0 kills the warrior on its
// first and only turn.
func TestSelfKillViaDAT(t *testing.T) {
	h := newHandle(t, 1, 8, 1, 10)
	dat := mkins(redcode.DAT, redcode.ModF, redcode.Direct, 0, redcode.Direct, 0)
	if err := h.LoadWarrior(0, []redcode.Instruction{dat}); err != nil {
		t.Fatal(err)
	}
	alive, deaths, err := h.RunBattle([]int{0})
	if err != nil {
		t.Fatalf("RunBattle: %v", err)
	}
	if alive != 0 {
		t.Fatalf("alive = %d, want 0", alive)
	}
	if len(deaths) != 1 || deaths[0] != 0 {
		t.Fatalf("deaths = %v, want [0]", deaths)
	}
}

// TestSPLExplosionBoundedByCap: SPL.B $0, $0 spawning at itself, capped
// at 4 live processes. Five SPL executions must leave process_count at
// the cap (4), never 5 -- execSPL is called directly, the same call
// step() makes on every SPL dispatch, so as to isolate the cap check
// from the fate of the advancing copy wandering through the rest of an
// otherwise-empty (DAT-filled) core.
func TestSPLExplosionBoundedByCap(t *testing.T) {
	h := newHandle(t, 1, 8, 4, 100)
	spl := mkins(redcode.SPL, redcode.ModB, redcode.Direct, 0, redcode.Direct, 0)
	if err := h.LoadWarrior(0, []redcode.Instruction{spl}); err != nil {
		t.Fatal(err)
	}

	b := &battle{
		Handle:       h,
		queue:        queue.New(1, h.cfg.Processes, []int{0}),
		ring:         ring.New(1),
		nprocs:       []int{1},
		processes:    h.cfg.Processes,
		cyclesLeft:   100,
		aliveCnt:     1,
		maxAliveProc: h.cfg.Processes,
	}
	for i := 0; i < 5; i++ {
		b.execSPL(0, 0, 0)
	}
	if b.nprocs[0] != 4 {
		t.Fatalf("process_count after 5 SPLs = %d, want 4 (capped)", b.nprocs[0])
	}
}

// TestPostIncrementCachesPreMutationValue pins down the in-register rule
// on its most degenerate case: MOV.I $0, >0 both reads and writes
// position 0 itself (a-mode DIRECT offset 0 and b-mode B-POSTINC offset
// 0 both resolve to the instruction's own address). The post-increment
// side effect transiently bumps position 0's b-field to 1, but the
// dispatcher writes through the (a,b) cache captured *before* that
// mutation -- so the instruction ends up an exact, unchanged copy of
// itself: the mutation never survives past the instruction that caused
// it, exactly the invariant the cache exists to enforce.
func TestPostIncrementCachesPreMutationValue(t *testing.T) {
	h := newHandle(t, 1, 8, 1, 1)
	original := mkins(redcode.MOV, redcode.ModI, redcode.Direct, 0, redcode.BPostinc, 0)
	if err := h.LoadWarrior(0, []redcode.Instruction{original}); err != nil {
		t.Fatal(err)
	}
	if _, _, err := h.RunBattle([]int{0}); err != nil {
		t.Fatalf("RunBattle: %v", err)
	}
	self := h.Core.Get(0)
	if self != original {
		t.Errorf("position 0 = %+v, want unchanged %+v (cache beats its own mutation)", self, original)
	}
}

// TestPostIncrementMutationPersistsOnDistinctCell shows the other half
// of the in-register rule: unlike the self-referential case above, a
// post-increment that lands on a *different* cell than the executing
// instruction is a real, lasting change to the battlefield. NOP.F $0,
// >1 never uses its resolved operand values, but resolving its b-operand
// still chases position 1's own b-field and increments it -- a mutation
// nothing overwrites afterward, so it must survive.
func TestPostIncrementMutationPersistsOnDistinctCell(t *testing.T) {
	h := newHandle(t, 1, 8, 1, 1)
	nop := mkins(redcode.NOP, redcode.ModF, redcode.Direct, 0, redcode.BPostinc, 1)
	if err := h.LoadWarrior(0, []redcode.Instruction{nop}); err != nil {
		t.Fatal(err)
	}
	if _, _, err := h.RunBattle([]int{0}); err != nil {
		t.Fatalf("RunBattle: %v", err)
	}
	target := h.Core.Get(1)
	if target.B != 1 {
		t.Errorf("position 1's b-field = %d, want 1 (post-increment side effect persists)", target.B)
	}
}

// TestDivFByZeroPartialWrite: DIV.F #2, *0 against a target with a
// nonzero a-divisor (2) and a zero b-divisor (the instruction's own
// b-field) must still write the target's a-field before the process
// dies, leaving its b-field untouched. The B-operand uses A-INDIRECT
// with offset 0 so it chases through the instruction's own a-field (2)
// to reach a distinct target cell at position 2, while keeping the
// instruction's b-field at 0 to supply the zero divisor.
func TestDivFByZeroPartialWrite(t *testing.T) {
	h := newHandle(t, 1, 8, 1, 10)
	div := mkins(redcode.DIV, redcode.ModF, redcode.Immediate, 2, redcode.AIndirect, 0)
	target := mkins(redcode.DAT, redcode.ModF, redcode.Direct, 6, redcode.Direct, 8)
	if err := h.LoadWarrior(0, []redcode.Instruction{div}); err != nil {
		t.Fatal(err)
	}
	if err := h.LoadWarrior(2, []redcode.Instruction{target}); err != nil {
		t.Fatal(err)
	}
	alive, deaths, err := h.RunBattle([]int{0})
	if err != nil {
		t.Fatalf("RunBattle: %v", err)
	}
	if alive != 0 || len(deaths) != 1 {
		t.Fatalf("alive=%d deaths=%v, want the lone warrior dead (div-by-zero on b)", alive, deaths)
	}
	got := h.Core.Get(2)
	if got.A != 3 {
		t.Errorf("target a-field = %d, want 3 (6/2, written before death)", got.A)
	}
	if got.B != 8 {
		t.Errorf("target b-field = %d, want 8 (untouched: divisor was zero)", got.B)
	}
}

// TestTwoWarriorTieExhaustsCycles: two imps at opposite ends of an
// 8-cell core never reach each other within a small cycle budget, so
// the battle ends as a tie with both still alive.
func TestTwoWarriorTieExhaustsCycles(t *testing.T) {
	h := newHandle(t, 2, 8, 1, 10)
	imp := mkins(redcode.MOV, redcode.ModI, redcode.Direct, 0, redcode.Direct, 1)
	if err := h.LoadWarrior(0, []redcode.Instruction{imp}); err != nil {
		t.Fatal(err)
	}
	if err := h.LoadWarrior(4, []redcode.Instruction{imp}); err != nil {
		t.Fatal(err)
	}
	alive, deaths, err := h.RunBattle([]int{0, 4})
	if err != nil {
		t.Fatalf("RunBattle: %v", err)
	}
	if alive != 2 {
		t.Fatalf("alive = %d, want 2 (tie)", alive)
	}
	if len(deaths) != 0 {
		t.Fatalf("deaths = %v, want none", deaths)
	}
}

// TestDeterminism: identical inputs must produce identical death order
// and alive count across repeated runs.
func TestDeterminism(t *testing.T) {
	run := func() (int, []int) {
		h := newHandle(t, 2, 16, 2, 200)
		imp := mkins(redcode.MOV, redcode.ModI, redcode.Direct, 0, redcode.Direct, 1)
		bomber := mkins(redcode.DAT, redcode.ModF, redcode.Direct, 2, redcode.Direct, 2)
		if err := h.LoadWarrior(0, []redcode.Instruction{bomber}); err != nil {
			t.Fatal(err)
		}
		if err := h.LoadWarrior(8, []redcode.Instruction{imp}); err != nil {
			t.Fatal(err)
		}
		alive, deaths, err := h.RunBattle([]int{0, 8})
		if err != nil {
			t.Fatalf("RunBattle: %v", err)
		}
		return alive, deaths
	}
	a1, d1 := run()
	a2, d2 := run()
	if a1 != a2 || len(d1) != len(d2) {
		t.Fatalf("nondeterministic: (%d,%v) vs (%d,%v)", a1, d1, a2, d2)
	}
	for i := range d1 {
		if d1[i] != d2[i] {
			t.Fatalf("death order differs: %v vs %v", d1, d2)
		}
	}
}

// TestModularFieldsStayInRange spot-checks that a tight add/jump loop
// repeatedly wrapping a field past the core size boundary always leaves
// every field normalized into [0, coresize).
func TestModularFieldsStayInRange(t *testing.T) {
	h := newHandle(t, 1, 8, 1, 20)
	// pos 0: ADD.AB #7, $0 -- adds 7 into its own b-field every pass,
	// wrapping past the 8-cell boundary repeatedly.
	// pos 1: JMP $7, $0 -- branches back to pos 0 (offset -1 mod 8).
	add := mkins(redcode.ADD, redcode.ModAB, redcode.Immediate, 7, redcode.Direct, 0)
	jmp := mkins(redcode.JMP, redcode.ModB, redcode.Direct, 7, redcode.Direct, 0)
	if err := h.LoadWarrior(0, []redcode.Instruction{add, jmp}); err != nil {
		t.Fatal(err)
	}
	if _, _, err := h.RunBattle([]int{0}); err != nil {
		t.Fatalf("RunBattle: %v", err)
	}
	for i := 0; i < 8; i++ {
		c := h.Core.Get(i)
		if c.A >= 8 || c.B >= 8 {
			t.Fatalf("core[%d] = %+v, field out of [0,8)", i, c)
		}
	}
}
