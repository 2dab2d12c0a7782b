package mars

import "github.com/corewars/go-mars/pkg/redcode"

// resolveOperand computes an operand's effective address and the cached
// (a,b) values found there, following the '94-draft in-register model:
// every mode except immediate chases one or two levels of indirection
// from ip, and pre-decrement/post-increment mutate the first-level cell
// before or after that chase, never the current instruction's own cached
// registers. offset is the raw field value (a0 for an a-mode resolution,
// b0 for a b-mode one); a0/b0 are the current instruction's own fields,
// needed verbatim for the immediate case.
//
// Grounded on sim_proper's a-mode and b-mode calculation blocks, which
// are identical in shape and differ only in which field seeds the first
// hop; this collapses both into one function parameterized on offset.
func (b *battle) resolveOperand(ip int, mode redcode.AddrMode, offset, a0, b0 uint16) (ptr int, fa, fb uint16) {
	switch mode {
	case redcode.Immediate:
		return ip, a0, b0

	case redcode.Direct:
		ptr = b.Core.Add(ip, int(offset))
		ins := b.Core.Get(ptr)
		return ptr, ins.A, ins.B

	case redcode.BIndirect:
		first := b.Core.Add(ip, int(offset))
		ptr = b.Core.Add(first, int(b.Core.Get(first).B))
		ins := b.Core.Get(ptr)
		return ptr, ins.A, ins.B

	case redcode.AIndirect:
		first := b.Core.Add(ip, int(offset))
		ptr = b.Core.Add(first, int(b.Core.Get(first).A))
		ins := b.Core.Get(ptr)
		return ptr, ins.A, ins.B

	case redcode.APostinc:
		first := b.Core.Add(ip, int(offset))
		off := b.Core.Get(first).A
		ptr = b.Core.Add(first, int(off))
		ins := b.Core.Get(ptr)
		b.Core.SetA(first, uint16(b.Core.Inc(int(off))))
		return ptr, ins.A, ins.B

	case redcode.BPostinc:
		first := b.Core.Add(ip, int(offset))
		off := b.Core.Get(first).B
		ptr = b.Core.Add(first, int(off))
		ins := b.Core.Get(ptr)
		b.Core.SetB(first, uint16(b.Core.Inc(int(off))))
		return ptr, ins.A, ins.B

	case redcode.APredec:
		first := b.Core.Add(ip, int(offset))
		nv := uint16(b.Core.Dec(int(b.Core.Get(first).A)))
		b.Core.SetA(first, nv)
		ptr = b.Core.Add(first, int(nv))
		ins := b.Core.Get(ptr)
		return ptr, ins.A, ins.B

	case redcode.BPredec:
		first := b.Core.Add(ip, int(offset))
		nv := uint16(b.Core.Dec(int(b.Core.Get(first).B)))
		b.Core.SetB(first, nv)
		ptr = b.Core.Add(first, int(nv))
		ins := b.Core.Get(ptr)
		return ptr, ins.A, ins.B
	}
	panic("mars: unreachable addressing mode")
}

// applyBSideEffect performs only the pre-decrement/post-increment side
// effect of a b-mode resolution, without chasing the second indirection
// hop. DAT and SPL never read or write through the resolved operand, but
// still have to pay the addressing mode's mutation, exactly as
// sim_proper's DAT/SPL special case does.
func (b *battle) applyBSideEffect(ip int, mode redcode.AddrMode, offset uint16) {
	switch mode {
	case redcode.BPostinc:
		first := b.Core.Add(ip, int(offset))
		b.Core.SetB(first, uint16(b.Core.Inc(int(b.Core.Get(first).B))))
	case redcode.BPredec:
		first := b.Core.Add(ip, int(offset))
		b.Core.SetB(first, uint16(b.Core.Dec(int(b.Core.Get(first).B))))
	case redcode.APredec:
		first := b.Core.Add(ip, int(offset))
		b.Core.SetA(first, uint16(b.Core.Dec(int(b.Core.Get(first).A))))
	case redcode.APostinc:
		first := b.Core.Add(ip, int(offset))
		b.Core.SetA(first, uint16(b.Core.Inc(int(b.Core.Get(first).A))))
	}
	// Direct, Immediate, BIndirect, AIndirect: no side effect.
}
