package mars

import "github.com/corewars/go-mars/pkg/redcode"

// dispatch executes every opcode except DAT, SPL and MOV.I, which step
// handles directly (DAT/SPL never touch the resolved b-operand the way
// the rest of the instruction set does; MOV.I has its own fast path).
// ptA/ptB are the effective addresses of the resolved operands; raA/raB
// and rbA/rbB are their cached in-register values at the moment of
// dispatch, captured before this instruction makes any writes.
//
// Grounded on sim_proper's big `switch (in>>(mBITS*2))`, opcode by
// opcode and modifier by modifier, including its fallthrough groups.
func (b *battle) dispatch(op redcode.OpCode, mod redcode.Modifier, ptA, ptB int, raA, raB, rbA, rbB uint16) (out outcome, died bool, err error) {
	switch op {
	case redcode.MOV:
		return b.execMOV(mod, ptB, raA, raB)
	case redcode.DJN:
		return b.execDJN(mod, ptB, rbA, rbB)
	case redcode.ADD:
		b.execADD(mod, ptB, raA, raB, rbA, rbB)
		return outcomeAdvance, false, nil
	case redcode.JMZ:
		return b.execJMZ(mod, rbA, rbB), false, nil
	case redcode.SUB:
		b.execSUB(mod, ptB, raA, raB, rbA, rbB)
		return outcomeAdvance, false, nil
	case redcode.SEQ:
		return b.execSEQ(mod, ptA, ptB, raA, raB, rbA, rbB), false, nil
	case redcode.SNE:
		return b.execSNE(mod, ptA, ptB, raA, raB, rbA, rbB), false, nil
	case redcode.SLT:
		return b.execSLT(mod, raA, raB, rbA, rbB), false, nil
	case redcode.JMN:
		return b.execJMN(mod, rbA, rbB), false, nil
	case redcode.JMP:
		return outcomeBranch, false, nil
	case redcode.NOP:
		return outcomeAdvance, false, nil
	case redcode.MUL:
		b.execMUL(mod, ptB, raA, raB, rbA, rbB)
		return outcomeAdvance, false, nil
	case redcode.MODM:
		died = b.execMODM(mod, ptB, raA, raB, rbA, rbB)
		return outcomeAdvance, died, nil
	case redcode.DIV:
		died = b.execDIV(mod, ptB, raA, raB, rbA, rbB)
		return outcomeAdvance, died, nil
	}
	return outcomeAdvance, false, ErrInvariantViolation
}

func (b *battle) execMOV(mod redcode.Modifier, ptB int, raA, raB uint16) (outcome, bool, error) {
	switch mod {
	case redcode.ModA:
		b.Core.SetA(ptB, raA)
	case redcode.ModF:
		b.Core.SetA(ptB, raA)
		b.Core.SetB(ptB, raB)
	case redcode.ModB:
		b.Core.SetB(ptB, raB)
	case redcode.ModAB:
		b.Core.SetB(ptB, raA)
	case redcode.ModX:
		b.Core.SetB(ptB, raA)
		b.Core.SetA(ptB, raB)
	case redcode.ModBA:
		b.Core.SetA(ptB, raB)
	default:
		return outcomeAdvance, false, ErrInvariantViolation
	}
	return outcomeAdvance, false, nil
}

func (b *battle) execDJN(mod redcode.Modifier, ptB int, rbA, rbB uint16) (outcome, bool, error) {
	switch mod {
	case redcode.ModBA, redcode.ModA:
		b.Core.SetA(ptB, uint16(b.Core.Dec(int(b.Core.Get(ptB).A))))
		if rbA == 1 {
			return outcomeAdvance, false, nil
		}
		return outcomeBranch, false, nil
	case redcode.ModAB, redcode.ModB:
		b.Core.SetB(ptB, uint16(b.Core.Dec(int(b.Core.Get(ptB).B))))
		if rbB == 1 {
			return outcomeAdvance, false, nil
		}
		return outcomeBranch, false, nil
	case redcode.ModX, redcode.ModI, redcode.ModF:
		b.Core.SetA(ptB, uint16(b.Core.Dec(int(b.Core.Get(ptB).A))))
		b.Core.SetB(ptB, uint16(b.Core.Dec(int(b.Core.Get(ptB).B))))
		if rbA == 1 && rbB == 1 {
			return outcomeAdvance, false, nil
		}
		return outcomeBranch, false, nil
	}
	return outcomeAdvance, false, ErrInvariantViolation
}

func (b *battle) execADD(mod redcode.Modifier, ptB int, raA, raB, rbA, rbB uint16) {
	switch mod {
	case redcode.ModI, redcode.ModF:
		b.Core.SetB(ptB, uint16(b.Core.Add(int(raB), int(rbB))))
		b.Core.SetA(ptB, uint16(b.Core.Add(int(raA), int(rbA))))
	case redcode.ModA:
		b.Core.SetA(ptB, uint16(b.Core.Add(int(raA), int(rbA))))
	case redcode.ModB:
		b.Core.SetB(ptB, uint16(b.Core.Add(int(raB), int(rbB))))
	case redcode.ModX:
		b.Core.SetA(ptB, uint16(b.Core.Add(int(raB), int(rbA))))
		b.Core.SetB(ptB, uint16(b.Core.Add(int(raA), int(rbB))))
	case redcode.ModAB:
		b.Core.SetB(ptB, uint16(b.Core.Add(int(raA), int(rbB))))
	case redcode.ModBA:
		b.Core.SetA(ptB, uint16(b.Core.Add(int(raB), int(rbA))))
	}
}

func (b *battle) execSUB(mod redcode.Modifier, ptB int, raA, raB, rbA, rbB uint16) {
	switch mod {
	case redcode.ModI, redcode.ModF:
		b.Core.SetB(ptB, uint16(b.Core.Sub(int(rbB), int(raB))))
		b.Core.SetA(ptB, uint16(b.Core.Sub(int(rbA), int(raA))))
	case redcode.ModA:
		b.Core.SetA(ptB, uint16(b.Core.Sub(int(rbA), int(raA))))
	case redcode.ModB:
		b.Core.SetB(ptB, uint16(b.Core.Sub(int(rbB), int(raB))))
	case redcode.ModX:
		b.Core.SetA(ptB, uint16(b.Core.Sub(int(rbA), int(raB))))
		b.Core.SetB(ptB, uint16(b.Core.Sub(int(rbB), int(raA))))
	case redcode.ModAB:
		b.Core.SetB(ptB, uint16(b.Core.Sub(int(rbB), int(raA))))
	case redcode.ModBA:
		b.Core.SetA(ptB, uint16(b.Core.Sub(int(rbA), int(raB))))
	}
}

func (b *battle) execMUL(mod redcode.Modifier, ptB int, raA, raB, rbA, rbB uint16) {
	size := b.Core.Size()
	mul := func(x, y uint16) uint16 { return uint16((int(x) * int(y)) % size) }
	switch mod {
	case redcode.ModI, redcode.ModF:
		b.Core.SetB(ptB, mul(rbB, raB))
		b.Core.SetA(ptB, mul(rbA, raA))
	case redcode.ModA:
		b.Core.SetA(ptB, mul(rbA, raA))
	case redcode.ModB:
		b.Core.SetB(ptB, mul(rbB, raB))
	case redcode.ModX:
		b.Core.SetA(ptB, mul(rbA, raB))
		b.Core.SetB(ptB, mul(rbB, raA))
	case redcode.ModAB:
		b.Core.SetB(ptB, mul(rbB, raA))
	case redcode.ModBA:
		b.Core.SetA(ptB, mul(rbA, raB))
	}
}

// execMODM returns true if the process must die: the destination would
// have divided by the source's zero field. Writes to the field(s) that
// have a nonzero divisor still happen before the death is reported,
// matching sim_proper's partial-write-before-death behaviour exactly.
func (b *battle) execMODM(mod redcode.Modifier, ptB int, raA, raB, rbA, rbB uint16) (died bool) {
	switch mod {
	case redcode.ModI, redcode.ModF:
		if raA != 0 {
			b.Core.SetA(ptB, rbA%raA)
		}
		if raB != 0 {
			b.Core.SetB(ptB, rbB%raB)
		}
		return raA == 0 || raB == 0
	case redcode.ModX:
		if raB != 0 {
			b.Core.SetA(ptB, rbA%raB)
		}
		if raA != 0 {
			b.Core.SetB(ptB, rbB%raA)
		}
		return raB == 0 || raA == 0
	case redcode.ModA:
		if raA == 0 {
			return true
		}
		b.Core.SetA(ptB, rbA%raA)
	case redcode.ModB:
		if raB == 0 {
			return true
		}
		b.Core.SetB(ptB, rbB%raB)
	case redcode.ModAB:
		if raA == 0 {
			return true
		}
		b.Core.SetB(ptB, rbB%raA)
	case redcode.ModBA:
		if raB == 0 {
			return true
		}
		b.Core.SetA(ptB, rbA%raB)
	}
	return false
}

// execDIV mirrors execMODM with integer division in place of modulo.
func (b *battle) execDIV(mod redcode.Modifier, ptB int, raA, raB, rbA, rbB uint16) (died bool) {
	switch mod {
	case redcode.ModI, redcode.ModF:
		if raA != 0 {
			b.Core.SetA(ptB, rbA/raA)
		}
		if raB != 0 {
			b.Core.SetB(ptB, rbB/raB)
		}
		return raA == 0 || raB == 0
	case redcode.ModX:
		if raB != 0 {
			b.Core.SetA(ptB, rbA/raB)
		}
		if raA != 0 {
			b.Core.SetB(ptB, rbB/raA)
		}
		return raB == 0 || raA == 0
	case redcode.ModA:
		if raA == 0 {
			return true
		}
		b.Core.SetA(ptB, rbA/raA)
	case redcode.ModB:
		if raB == 0 {
			return true
		}
		b.Core.SetB(ptB, rbB/raB)
	case redcode.ModAB:
		if raA == 0 {
			return true
		}
		b.Core.SetB(ptB, rbB/raA)
	case redcode.ModBA:
		if raB == 0 {
			return true
		}
		b.Core.SetA(ptB, rbA/raB)
	}
	return false
}

func (b *battle) execJMZ(mod redcode.Modifier, rbA, rbB uint16) outcome {
	switch mod {
	case redcode.ModBA, redcode.ModA:
		if rbA == 0 {
			return outcomeBranch
		}
	case redcode.ModAB, redcode.ModB:
		if rbB == 0 {
			return outcomeBranch
		}
	default: // X, F, I
		if rbA == 0 && rbB == 0 {
			return outcomeBranch
		}
	}
	return outcomeAdvance
}

func (b *battle) execJMN(mod redcode.Modifier, rbA, rbB uint16) outcome {
	switch mod {
	case redcode.ModBA, redcode.ModA:
		if rbA != 0 {
			return outcomeBranch
		}
	case redcode.ModAB, redcode.ModB:
		if rbB != 0 {
			return outcomeBranch
		}
	default: // X, F, I
		if rbA != 0 || rbB != 0 {
			return outcomeBranch
		}
	}
	return outcomeAdvance
}

func (b *battle) execSLT(mod redcode.Modifier, raA, raB, rbA, rbB uint16) outcome {
	taken := false
	switch mod {
	case redcode.ModA:
		taken = raA < rbA
	case redcode.ModAB:
		taken = raA < rbB
	case redcode.ModB:
		taken = raB < rbB
	case redcode.ModBA:
		taken = raB < rbA
	case redcode.ModI, redcode.ModF:
		taken = raA < rbA && raB < rbB
	case redcode.ModX:
		taken = raA < rbB && raB < rbA
	}
	if taken {
		return outcomeSkip
	}
	return outcomeAdvance
}

func (b *battle) execSEQ(mod redcode.Modifier, ptA, ptB int, raA, raB, rbA, rbB uint16) outcome {
	eq := false
	switch mod {
	case redcode.ModA:
		eq = raA == rbA
	case redcode.ModB:
		eq = raB == rbB
	case redcode.ModAB:
		eq = raA == rbB
	case redcode.ModBA:
		eq = raB == rbA
	case redcode.ModI:
		if b.Core.Get(ptA).In != b.Core.Get(ptB).In {
			return outcomeAdvance
		}
		eq = raA == rbA && raB == rbB
	case redcode.ModF:
		eq = raA == rbA && raB == rbB
	case redcode.ModX:
		eq = raA == rbB && raB == rbA
	}
	if eq {
		return outcomeSkip
	}
	return outcomeAdvance
}

func (b *battle) execSNE(mod redcode.Modifier, ptA, ptB int, raA, raB, rbA, rbB uint16) outcome {
	neq := false
	switch mod {
	case redcode.ModA:
		neq = raA != rbA
	case redcode.ModB:
		neq = raB != rbB
	case redcode.ModAB:
		neq = raA != rbB
	case redcode.ModBA:
		neq = raB != rbA
	case redcode.ModI:
		if b.Core.Get(ptA).In != b.Core.Get(ptB).In {
			return outcomeSkip
		}
		neq = raA != rbA || raB != rbB
	case redcode.ModF:
		neq = raA != rbA || raB != rbB
	case redcode.ModX:
		neq = raA != rbB || raB != rbA
	}
	if neq {
		return outcomeSkip
	}
	return outcomeAdvance
}
