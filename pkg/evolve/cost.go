package evolve

import (
	"github.com/corewars/go-mars/pkg/mars"
	"github.com/corewars/go-mars/pkg/redcode"
)

// Reference is one fixed opponent a candidate warrior is scored against,
// the redcode analog of stoke.Cost's fixed test-vector panel.
type Reference struct {
	Name string
	Code []redcode.Instruction
}

// Imp is the smallest possible warrior: MOV 0, 1 copies itself one cell
// forward forever.
func Imp() Reference {
	return Reference{
		Name: "imp",
		Code: []redcode.Instruction{
			{In: redcode.Encode(redcode.MOV, redcode.ModI, redcode.Direct, redcode.Direct), A: 0, B: 1},
		},
	}
}

// Dwarf is a classic bomber: it walks the core planting DAT bombs at a
// fixed stride. coreSize is needed to encode its backward jump as a
// field value that wraps correctly in modular core arithmetic.
func Dwarf(coreSize int) Reference {
	const step = 4
	back := uint16(normMod(-2, coreSize))
	return Reference{
		Name: "dwarf",
		Code: []redcode.Instruction{
			{In: redcode.Encode(redcode.ADD, redcode.ModAB, redcode.Immediate, redcode.Direct), A: step, B: 3},
			{In: redcode.Encode(redcode.MOV, redcode.ModI, redcode.Direct, redcode.BIndirect), A: 2, B: 2},
			{In: redcode.Encode(redcode.JMP, redcode.ModB, redcode.Direct, redcode.Direct), A: back, B: 0},
			{In: redcode.Encode(redcode.DAT, redcode.ModF, redcode.Immediate, redcode.Immediate), A: 0, B: 0},
		},
	}
}

func normMod(x, m int) int {
	x %= m
	if x < 0 {
		x += m
	}
	return x
}

// Cost scores a candidate warrior by battling it against every reference
// in panel once and combining win rate with code size: shorter, more
// effective warriors score lower (Cost is minimized), mirroring the
// teacher's Cost function returning 0 for a perfect candidate.
func Cost(cfg mars.Config, candidate []redcode.Instruction, panel []Reference) (float64, error) {
	wins, ties, total := 0, 0, len(panel)
	for _, ref := range panel {
		outcome, err := fight(cfg, candidate, ref.Code)
		if err != nil {
			return 0, err
		}
		switch outcome {
		case 1:
			wins++
		case 0:
			ties++
		}
	}
	if total == 0 {
		return float64(len(candidate)), nil
	}
	winRate := float64(wins) + 0.5*float64(ties)
	winRate /= float64(total)
	// Lower is better: 1000 times the fraction of matches not won (a tie
	// counts as half a win), plus 0.01 per instruction as a small
	// pressure towards shorter code.
	return 1000*(1-winRate) + float64(len(candidate))*0.01, nil
}

// fight runs one battle of candidate against opponent and returns 1 if
// candidate won, -1 if it lost, 0 on a tie.
func fight(cfg mars.Config, candidate, opponent []redcode.Instruction) (int, error) {
	h, err := mars.Allocate(cfg)
	if err != nil {
		return 0, err
	}
	defer h.Free()

	h.ClearCore()
	spacing := cfg.CoreSize / 2
	if err := h.LoadWarrior(0, candidate); err != nil {
		return 0, err
	}
	if err := h.LoadWarrior(spacing, opponent); err != nil {
		return 0, err
	}
	_, deaths, err := h.RunBattle([]int{0, spacing})
	if err != nil {
		return 0, err
	}
	switch {
	case len(deaths) == 1 && deaths[0] == 0:
		return -1, nil
	case len(deaths) == 1 && deaths[0] == 1:
		return 1, nil
	default:
		return 0, nil
	}
}
