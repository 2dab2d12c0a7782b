package evolve

import (
	"fmt"
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/corewars/go-mars/pkg/mars"
	"github.com/corewars/go-mars/pkg/redcode"
)

// Config holds a warrior-evolution search's configuration, grounded on
// stoke.Config.
type Config struct {
	Core       mars.Config
	Seed       []redcode.Instruction // starting point for every chain
	Chains     int                   // independent goroutines
	Iterations int                   // mutation steps per chain
	Decay      float64               // acceptance temperature decay per step
	MaxLen     int                   // cap on warrior length
	Panel      []Reference           // opponents scored against
	Verbose    bool
}

// Result is one chain's best candidate at the time it finished.
type Result struct {
	ChainID int
	Code    []redcode.Instruction
	Cost    float64
}

// Run launches cfg.Chains independent simulated-annealing-style chains
// in parallel, each mutating cfg.Seed and accepting improving (or,
// with shrinking probability, non-improving) moves, exactly the control
// flow of stoke.Run: a sync.WaitGroup fan-out, per-chain RNG streams
// derived from one base seed, and a 10-second verbose progress ticker.
func Run(cfg Config) []Result {
	if cfg.Chains <= 0 {
		cfg.Chains = 1
	}
	if cfg.Iterations <= 0 {
		cfg.Iterations = 10_000
	}
	if cfg.Decay <= 0 || cfg.Decay >= 1 {
		cfg.Decay = 0.999
	}
	if cfg.MaxLen <= 0 {
		cfg.MaxLen = 64
	}

	baseSeed := rand.Uint64()
	start := time.Now()
	done := make(chan struct{})

	var mu sync.Mutex
	results := make([]Result, cfg.Chains)

	if cfg.Verbose {
		go func() {
			ticker := time.NewTicker(10 * time.Second)
			defer ticker.Stop()
			for {
				select {
				case <-done:
					return
				case <-ticker.C:
					fmt.Printf("  [%s] evolve running\n", time.Since(start).Round(time.Second))
				}
			}
		}()
	}

	var wg sync.WaitGroup
	for i := 0; i < cfg.Chains; i++ {
		wg.Add(1)
		go func(chainID int) {
			defer wg.Done()
			seed := baseSeed + uint64(chainID)*0x9E3779B97F4A7C15
			rng := rand.New(rand.NewPCG(seed, seed>>1|1))
			mut := NewMutator(rng, cfg.Core.CoreSize, cfg.MaxLen)

			current := copySeq(cfg.Seed)
			currentCost, err := Cost(cfg.Core, current, cfg.Panel)
			if err != nil {
				return
			}
			best := copySeq(current)
			bestCost := currentCost
			temperature := 1.0

			for iter := 0; iter < cfg.Iterations; iter++ {
				candidate := mut.Mutate(current)
				candCost, err := Cost(cfg.Core, candidate, cfg.Panel)
				if err != nil {
					continue
				}
				if accept(currentCost, candCost, temperature, rng) {
					current = candidate
					currentCost = candCost
					if currentCost < bestCost {
						best = copySeq(current)
						bestCost = currentCost
					}
				}
				temperature *= cfg.Decay
			}

			mu.Lock()
			results[chainID] = Result{ChainID: chainID, Code: best, Cost: bestCost}
			mu.Unlock()
		}(i)
	}
	wg.Wait()
	close(done)

	if cfg.Verbose {
		fmt.Printf("evolve complete in %s\n", time.Since(start).Round(time.Millisecond))
	}
	return results
}

// accept implements the Metropolis criterion: always take an improving
// move, sometimes take a worsening one, with probability shrinking as
// temperature decays.
func accept(currentCost, candidateCost, temperature float64, rng *rand.Rand) bool {
	if candidateCost <= currentCost {
		return true
	}
	if temperature <= 0 {
		return false
	}
	delta := candidateCost - currentCost
	p := math.Exp(-delta / (temperature * 100))
	return rng.Float64() < p
}
