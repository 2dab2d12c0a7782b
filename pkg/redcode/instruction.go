// Package redcode defines the '94-draft redcode instruction encoding: the
// packed 16-bit `in` field (flags, opcode, modifier, b-mode, a-mode) plus
// the a- and b-value fields, and the bit arithmetic to build and take them
// apart.
package redcode

import "fmt"

// OpCode identifies a redcode operation. Values match the enum ordering of
// the original 'exhaust' simulator (DAT must be 0).
type OpCode uint8

const (
	DAT  OpCode = iota // must be 0
	SPL
	MOV
	DJN
	ADD
	JMZ
	SUB
	SEQ
	SNE
	SLT
	JMN
	JMP
	NOP
	MUL
	MODM
	DIV
	opCodeCount
)

var opNames = [opCodeCount]string{
	DAT: "DAT", SPL: "SPL", MOV: "MOV", DJN: "DJN", ADD: "ADD", JMZ: "JMZ",
	SUB: "SUB", SEQ: "SEQ", SNE: "SNE", SLT: "SLT", JMN: "JMN", JMP: "JMP",
	NOP: "NOP", MUL: "MUL", MODM: "MODM", DIV: "DIV",
}

func (o OpCode) String() string {
	if int(o) < len(opNames) {
		return opNames[o]
	}
	return fmt.Sprintf("OpCode(%d)", o)
}

// Modifier selects which field(s) of the source/destination an opcode acts
// on. The ordering is the one the original simulator's enum uses.
type Modifier uint8

const (
	ModF Modifier = iota
	ModA
	ModB
	ModAB
	ModBA
	ModX
	ModI
	modifierCount
)

var modNames = [modifierCount]string{"F", "A", "B", "AB", "BA", "X", "I"}

func (m Modifier) String() string {
	if int(m) < len(modNames) {
		return modNames[m]
	}
	return fmt.Sprintf("Modifier(%d)", m)
}

// AddrMode is one of the eight addressing modes. The ordering must start
// from 0 and follow this exact sequence: it is baked into the bit layout
// and into every mode-dispatch switch in pkg/mars.
type AddrMode uint8

const (
	Direct    AddrMode = iota // $
	Immediate                 // #
	BIndirect                 // @
	BPredec                   // <
	BPostinc                  // >
	AIndirect                 // *
	APredec                   // {
	APostinc                  // }
	addrModeCount
)

var modeNames = [addrModeCount]string{"$", "#", "@", "<", ">", "*", "{", "}"}

func (m AddrMode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return fmt.Sprintf("AddrMode(%d)", m)
}

// Bit layout of the packed `in` field, least significant bit first:
//
//	bit   15 14 | 13 12 11 10 9 | 8 7 6 | 5 4 3 | 2 1 0
//	field flags |   opcode (5)  | mod(3)| bmode | amode
const (
	aModeBits = 3
	bModeBits = 3
	modBits   = 3
	opBits    = 5
	flagBits  = 2

	aModePos = 0
	bModePos = aModePos + aModeBits
	modPos   = bModePos + bModeBits
	opPos    = modPos + modBits
	flagPos  = opPos + opBits

	aModeMask = (1 << aModeBits) - 1
	bModeMask = (1 << bModeBits) - 1
	modMask   = (1 << modBits) - 1
	opMask    = (1 << opBits) - 1
	flagMask  = (1 << flagBits) - 1

	// FlagsMask masks off everything but the flag bits of a packed `in`
	// field; StripMask masks off the flags, leaving opcode/modifier/modes.
	FlagsMask = flagMask << flagPos
	StripMask = (1 << flagPos) - 1
)

// Instruction is one redcode word: the packed opcode/modifier/mode field
// and the two operand fields.
type Instruction struct {
	In uint16
	A  uint16
	B  uint16
}

// Encode packs an opcode, modifier and pair of addressing modes into an
// `in` field with no flags set.
func Encode(op OpCode, mod Modifier, aMode, bMode AddrMode) uint16 {
	return uint16(op&opMask)<<opPos |
		uint16(mod&modMask)<<modPos |
		uint16(bMode&bModeMask)<<bModePos |
		uint16(aMode&aModeMask)<<aModePos
}

// Decode unpacks an `in` field (flags must already be stripped) into its
// opcode, modifier and addressing modes.
func Decode(in uint16) (op OpCode, mod Modifier, aMode, bMode AddrMode) {
	op = OpCode((in >> opPos) & opMask)
	mod = Modifier((in >> modPos) & modMask)
	bMode = AddrMode((in >> bModePos) & bModeMask)
	aMode = AddrMode((in >> aModePos) & aModeMask)
	return
}

// OpMod packs just the (opcode, modifier) pair into the bits a dispatch
// switch keys on, i.e. `in` with the addressing modes shifted out.
func OpMod(in uint16) uint16 {
	return in >> modPos
}

// Flags extracts the flag bits of an `in` field.
func Flags(in uint16) uint16 {
	return (in >> flagPos) & flagMask
}

// StripFlags clears the flag bits of an `in` field, the operation the
// loader applies to every instruction copied into core.
func StripFlags(in uint16) uint16 {
	return in & StripMask
}

func (i Instruction) String() string {
	op, mod, aMode, bMode := Decode(StripFlags(i.In))
	return fmt.Sprintf("%s.%s %s%d, %s%d", op, mod, aMode, i.A, bMode, i.B)
}
