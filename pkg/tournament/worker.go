package tournament

import (
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/corewars/go-mars/pkg/mars"
	"github.com/corewars/go-mars/pkg/redcode"
)

// Warrior is one named, loadable competitor in a round-robin.
type Warrior struct {
	Name string
	Code []redcode.Instruction
}

// Pairing is one scheduled match between two warriors.
type Pairing struct {
	A, B Warrior
}

// WorkerPool fans pairings out across goroutines, each running its own
// mars.Handle so no battle state ever crosses a goroutine boundary --
// grounded on pkg/search.WorkerPool, substituting battle pairings for
// instruction-sequence search tasks.
type WorkerPool struct {
	NumWorkers int
	Config     mars.Config
	Table      *Table

	completed atomic.Int64
}

// NewWorkerPool creates a pool sized to the machine's CPUs unless
// numWorkers is positive.
func NewWorkerPool(numWorkers int, cfg mars.Config, names []string) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	return &WorkerPool{
		NumWorkers: numWorkers,
		Config:     cfg,
		Table:      NewTable(names),
	}
}

// Run plays every pairing to completion and tallies the results into
// wp.Table. It reports progress every 10 seconds when verbose is set,
// the same cadence pkg/search.WorkerPool.RunTasks uses.
func (wp *WorkerPool) Run(pairings []Pairing, verbose bool) error {
	total := int64(len(pairings))
	ch := make(chan Pairing, len(pairings))
	for _, p := range pairings {
		ch <- p
	}
	close(ch)

	done := make(chan struct{})
	start := time.Now()
	if verbose {
		go func() {
			ticker := time.NewTicker(10 * time.Second)
			defer ticker.Stop()
			for {
				select {
				case <-done:
					return
				case <-ticker.C:
					comp := wp.completed.Load()
					fmt.Printf("  [%s] %d/%d battles complete\n", time.Since(start).Round(time.Second), comp, total)
				}
			}
		}()
	}

	errs := make(chan error, wp.NumWorkers)
	var wg sync.WaitGroup
	for i := 0; i < wp.NumWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for p := range ch {
				if err := wp.runPairing(p); err != nil {
					errs <- err
					return
				}
				wp.completed.Add(1)
			}
		}()
	}
	wg.Wait()
	close(done)
	close(errs)

	for err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

func (wp *WorkerPool) runPairing(p Pairing) error {
	h, err := mars.Allocate(wp.Config)
	if err != nil {
		return fmt.Errorf("tournament: allocate for %s vs %s: %w", p.A.Name, p.B.Name, err)
	}
	defer h.Free()

	h.ClearCore()
	spacing := wp.Config.CoreSize / 2
	if err := h.LoadWarrior(0, p.A.Code); err != nil {
		return err
	}
	if err := h.LoadWarrior(spacing, p.B.Code); err != nil {
		return err
	}

	_, deaths, err := h.RunBattle([]int{0, spacing})
	if err != nil {
		return fmt.Errorf("tournament: %s vs %s: %w", p.A.Name, p.B.Name, err)
	}

	var outcome Outcome
	switch {
	case len(deaths) == 0:
		outcome = Tie // both still alive when the cycle budget ran out
	case len(deaths) == 1 && deaths[0] == 0:
		outcome = Loss // A died, B wins
	case len(deaths) == 1 && deaths[0] == 1:
		outcome = Win // B died, A wins
	default:
		outcome = Tie // both died
	}

	wp.Table.Add(p.A.Name, p.B.Name, outcome)
	return nil
}
