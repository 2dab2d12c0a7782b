// Package mars implements the allocate/load/run_battle/free core of a
// '94-draft redcode MARS: the effective-address engine, the instruction
// dispatcher, and the round-robin scheduler that walks the warrior ring
// until one side wins, all warriors die, or the cycle budget runs out.
//
// Grounded on the "exhaust" memory array redcode simulator's sim_proper,
// restructured the way oisee-z80-optimizer's pkg/cpu.Exec restructures a
// CPU's instruction set: one dispatch switch, explicit outcome values
// instead of goto, per-instruction helper functions for the arithmetic.
package mars

import (
	"fmt"

	"github.com/corewars/go-mars/pkg/mars/core"
	"github.com/corewars/go-mars/pkg/mars/queue"
	"github.com/corewars/go-mars/pkg/mars/ring"
	"github.com/corewars/go-mars/pkg/redcode"
)

// Config describes the shape of a battle: core size, warrior count,
// per-warrior process cap, and the cycle budget. Field names and
// defaults follow the original simulator's DEF_* constants.
type Config struct {
	Warriors  int // number of warriors in the battle
	CoreSize  int // size of the circular core
	Processes int // max processes per warrior
	Cycles    int // cycles to play per warrior before declaring a tie
}

// DefaultConfig returns the original simulator's pMARS-standard defaults:
// two warriors, an 8000-cell core, 8000 processes, 80000 cycles.
func DefaultConfig() Config {
	return Config{Warriors: 2, CoreSize: 8000, Processes: 8000, Cycles: 80000}
}

func (c Config) validate() error {
	if c.Warriors <= 0 {
		return fmt.Errorf("mars: Warriors must be positive, got %d", c.Warriors)
	}
	if c.CoreSize <= 0 {
		return fmt.Errorf("mars: CoreSize must be positive, got %d", c.CoreSize)
	}
	if c.Processes <= 0 {
		return fmt.Errorf("mars: Processes must be positive, got %d", c.Processes)
	}
	if c.Cycles <= 0 {
		return fmt.Errorf("mars: Cycles must be positive, got %d", c.Cycles)
	}
	return nil
}

// Handle is one allocated MARS instance: a core plus the configuration
// used to size a battle's process queue and cycle budget. It corresponds
// to the original simulator's mars_t.
type Handle struct {
	cfg  Config
	Core *core.Battlefield
}

// Allocate allocates a core of the configured size. It is the Go analog
// of sim_alloc_bufs, minus the queue and warrior-table memory, which
// RunBattle allocates fresh for each battle since their shape depends on
// the starting positions given to it.
func Allocate(cfg Config) (*Handle, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	bf, err := core.New(cfg.CoreSize)
	if err != nil {
		return nil, err
	}
	return &Handle{cfg: cfg, Core: bf}, nil
}

// ClearCore resets every cell of the core to DAT.F $0, $0.
func (h *Handle) ClearCore() {
	h.Core.Clear()
}

// LoadWarrior copies code into the core at pos, wrapping modulo the core
// size and stripping any flag bits, matching sim_load_warrior.
func (h *Handle) LoadWarrior(pos int, code []redcode.Instruction) error {
	return h.Core.Load(pos, code)
}

// Free releases the handle's core. Go's GC reclaims the backing slice on
// its own; Free exists so a caller's intent to stop using the handle is
// explicit, matching the external-interface shape of sim_free_bufs.
func (h *Handle) Free() {
	h.Core = nil
}

// RunBattle runs one battle to completion: startPositions[i] is the
// address of warrior i's first process. It returns the number of
// warriors still alive when the battle ended and the indices of warriors
// that died, in the order they died.
func (h *Handle) RunBattle(startPositions []int) (aliveCount int, deaths []int, err error) {
	nwar := len(startPositions)
	if nwar != h.cfg.Warriors {
		return 0, nil, fmt.Errorf("mars: RunBattle got %d start positions, configured for %d warriors", nwar, h.cfg.Warriors)
	}

	b := &battle{
		Handle:       h,
		queue:        queue.New(nwar, h.cfg.Processes, startPositions),
		ring:         ring.New(nwar),
		nprocs:       make([]int, nwar),
		processes:    h.cfg.Processes,
		cyclesLeft:   nwar * h.cfg.Cycles,
		aliveCnt:     nwar,
		maxAliveProc: nwar * h.cfg.Processes,
	}
	for i := range b.nprocs {
		b.nprocs[i] = 1
	}

	return b.run()
}
