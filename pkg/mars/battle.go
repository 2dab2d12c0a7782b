package mars

import (
	"github.com/corewars/go-mars/pkg/mars/queue"
	"github.com/corewars/go-mars/pkg/mars/ring"
	"github.com/corewars/go-mars/pkg/redcode"
)

// outcome tells run's scheduler what to do with the process that just
// executed, replacing the original simulator's goto-based control flow
// with an explicit, switchable value.
type outcome int

const (
	outcomeAdvance outcome = iota // requeue ip+1
	outcomeSkip                   // requeue ip+2 (a comparison matched)
	outcomeBranch                 // requeue pta, ip itself is not requeued
)

// battle holds the state of one in-progress fight: the shared process
// queue, the warrior ring, and the cycle/alive-count bookkeeping the
// scheduler and death handling update as warriors die.
type battle struct {
	*Handle
	queue *queue.Buffer
	ring  *ring.Ring

	nprocs       []int
	processes    int
	cyclesLeft   int
	aliveCnt     int
	maxAliveProc int
	current      int
	deaths       []int
}

// run executes the fetch/resolve/dispatch loop until a tie is declared,
// every warrior but one dies, or the cycle budget is exhausted.
func (b *battle) run() (int, []int, error) {
	for {
		w := b.current
		ip := b.queue.Dequeue(w)

		out, err := b.step(w, ip)
		if err != nil {
			return 0, nil, err
		}
		if out {
			break
		}

		b.cyclesLeft--
		if b.cyclesLeft <= 0 {
			break
		}
		b.current = b.ring.Successor(w)
	}
	return b.aliveCnt, b.deaths, nil
}

// step fetches and executes one instruction for warrior w at core
// address ip. It returns true if the battle must stop immediately
// (a tie was detected, or only one warrior remains).
func (b *battle) step(w, ip int) (stop bool, err error) {
	instr := b.Core.Get(ip)
	in := redcode.StripFlags(instr.In)
	a0, b0 := instr.A, instr.B

	op, mod, aMode, bMode := redcode.Decode(in)

	ptA, raA, raB := b.resolveOperand(ip, aMode, a0, a0, b0)

	if op == redcode.MOV && mod == redcode.ModI {
		ptB, _, _ := b.resolveOperand(ip, bMode, b0, a0, b0)
		srcIn := b.Core.Get(ptA).In
		b.Core.Set(ptB, redcode.Instruction{In: srcIn, A: raA, B: raB})
		b.queue.Enqueue(w, b.Core.Inc(ip))
		return false, nil
	}

	if op == redcode.DAT || op == redcode.SPL {
		b.applyBSideEffect(ip, bMode, b0)
		if op == redcode.SPL {
			return b.execSPL(w, ip, ptA), nil
		}
		return b.kill(w), nil
	}

	ptB, rbA, rbB := b.resolveOperand(ip, bMode, b0, a0, b0)

	out, died, err := b.dispatch(op, mod, ptA, ptB, raA, raB, rbA, rbB)
	if err != nil {
		return false, err
	}
	if died {
		return b.kill(w), nil
	}

	switch out {
	case outcomeBranch:
		b.queue.Enqueue(w, ptA)
	case outcomeSkip:
		b.queue.Enqueue(w, b.Core.Inc(b.Core.Inc(ip)))
	default:
		b.queue.Enqueue(w, b.Core.Inc(ip))
	}
	return false, nil
}

// execSPL spawns a new process at ptA (if under the process cap) and
// requeues the current one at ip+1, then checks whether every remaining
// warrior now has more live processes than there are cycles left to run
// them all once -- if so the battle can never do anything but tie, and
// ends immediately.
func (b *battle) execSPL(w, ip, ptA int) (stop bool) {
	b.queue.Enqueue(w, b.Core.Inc(ip))
	if b.nprocs[w] < b.processes {
		b.nprocs[w]++
		b.queue.Enqueue(w, ptA)
	}

	if b.cyclesLeft >= b.maxAliveProc {
		return false
	}
	canContinue := false
	b.ring.Walk(b.ring.Successor(w), func(id int) bool {
		if b.nprocs[id]*b.aliveCnt <= b.cyclesLeft {
			canContinue = true
			return true
		}
		return false
	})
	return !canContinue
}

// kill removes one process from warrior w. If that was its last process
// the warrior itself dies: it is unlinked from the ring, its cycle
// budget is folded back into what remains (nC+k -> (n-1)C+k), and the
// return value signals whether only one warrior (or none) is left.
func (b *battle) kill(w int) (stop bool) {
	b.nprocs[w]--
	if b.nprocs[w] > 0 {
		return false
	}
	b.ring.Remove(w)
	b.deaths = append(b.deaths, w)
	b.cyclesLeft -= b.cyclesLeft / b.aliveCnt
	b.maxAliveProc = b.aliveCnt * b.processes
	b.aliveCnt--
	return b.aliveCnt <= 1
}
